package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hearth-budget/backend/internal/models"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the base URL of the exchange rate API.
const DefaultBaseURL = "https://v6.exchangerate-api.com/v6"

var ErrRateFetch = errors.New("could not fetch exchange rates")

// Fetcher fetches exchange rates from an external source.
type Fetcher interface {
	Latest(ctx context.Context, base string) (models.Rates, error)
	Historical(ctx context.Context, base string, date time.Time) (models.Rates, error)
}

// Client is a Fetcher for the exchangerate-api.com v6 API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient returns a client for the API at baseURL. If httpClient is nil,
// a client with a 10 second timeout is used.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type apiResponse struct {
	Result          string       `json:"result"`
	ErrorType       string       `json:"error-type"`
	ConversionRates models.Rates `json:"conversion_rates"`
	Rates           models.Rates `json:"rates"`
}

// Latest returns today's rates for the base currency.
func (c *Client) Latest(ctx context.Context, base string) (models.Rates, error) {
	return c.get(ctx, fmt.Sprintf("%s/%s/latest/%s", c.baseURL, c.apiKey, strings.ToUpper(base)))
}

// Historical returns the rates for the base currency on a specific date.
func (c *Client) Historical(ctx context.Context, base string, date time.Time) (models.Rates, error) {
	return c.get(ctx, fmt.Sprintf("%s/%s/history/%s/%d/%d/%d", c.baseURL, c.apiKey, strings.ToUpper(base), date.Year(), date.Month(), date.Day()))
}

func (c *Client) get(ctx context.Context, url string) (models.Rates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRateFetch, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRateFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: the API responded with status %d", ErrRateFetch, resp.StatusCode)
	}

	var body apiResponse
	err = json.NewDecoder(resp.Body).Decode(&body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRateFetch, err)
	}

	rates := body.ConversionRates
	if len(rates) == 0 {
		rates = body.Rates
	}

	if len(rates) == 0 {
		log.Debug().Str("result", body.Result).Str("error-type", body.ErrorType).Msg("Exchange rates")
		return nil, fmt.Errorf("%w: the response contains no rates", ErrRateFetch)
	}

	return rates, nil
}
