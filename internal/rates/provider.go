// Package rates provides exchange rates with a persistent cache in front of
// an external rate API.
package rates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hearth-budget/backend/internal/funding"
	"github.com/hearth-budget/backend/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// DateLayout is the layout of dates used as cache keys.
const DateLayout = "2006-01-02"

// fetchTimeout bounds a shared lookup independent of its callers.
const fetchTimeout = 30 * time.Second

var lookups = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "exchange_rate_lookups_total",
		Help: "How many exchange rate lookups were processed, partitioned by result.",
	},
	[]string{"result"},
)

// Collectors contains the Prometheus metrics of the package.
var Collectors = []prometheus.Collector{lookups}

// Provider returns exchange rates. Rates are read from the database cache
// first and fetched from the Fetcher on a miss.
type Provider struct {
	db      *gorm.DB
	fetcher Fetcher
	group   singleflight.Group
	now     func() time.Time
}

// NewProvider returns a provider caching in db.
func NewProvider(db *gorm.DB, fetcher Fetcher) *Provider {
	return &Provider{
		db:      db,
		fetcher: fetcher,
		now:     time.Now,
	}
}

// WithClock replaces the clock used to determine today's date.
func (p *Provider) WithClock(now func() time.Time) *Provider {
	p.now = now
	return p
}

// Rates returns the rates for the base currency on date.
//
// Concurrent lookups for the same base and date share a single fetch.
// Each caller only waits as long as its own context allows.
// When fetching a historical date fails, today's rates are returned
// instead. Those are cached under today's date, never under the requested one.
func (p *Provider) Rates(ctx context.Context, base string, date time.Time) (models.Rates, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	day := date.UTC().Format(DateLayout)

	// The shared lookup does not inherit the cancellation of the caller
	// that started it
	ch := p.group.DoChan(base+"/"+day, func() (any, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		return p.lookup(ctx, base, date.UTC(), day)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(models.Rates), nil
	}
}

// Rate returns the rate of 1 unit of the pair's source currency in its
// target currency on date.
func (p *Provider) Rate(ctx context.Context, pair funding.Pair, date time.Time) (decimal.Decimal, error) {
	rates, err := p.Rates(ctx, pair.Source, date)
	if err != nil {
		return decimal.Zero, err
	}

	rate, ok := rates[pair.Target]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no rate for %s to %s", ErrRateFetch, pair.Source, pair.Target)
	}

	return rate, nil
}

func (p *Provider) lookup(ctx context.Context, base string, date time.Time, day string) (models.Rates, error) {
	cached, err := models.CachedRates(p.db, base, day)
	if err == nil {
		lookups.WithLabelValues("cache_hit").Inc()
		return cached.Rates, nil
	}

	if !errors.Is(err, models.ErrResourceNotFound) {
		log.Warn().Err(err).Str("base", base).Str("date", day).Msg("Exchange rate cache")
	}

	today := p.now().UTC().Format(DateLayout)
	if day == today {
		return p.fetchLatest(ctx, base, today)
	}

	rates, err := p.fetcher.Historical(ctx, base, date)
	if err != nil {
		log.Warn().Err(err).Str("base", base).Str("date", day).Msg("Historical exchange rates unavailable, falling back to latest")
		lookups.WithLabelValues("fallback").Inc()
		return p.fetchLatest(ctx, base, today)
	}

	lookups.WithLabelValues("fetched").Inc()
	p.store(base, day, rates)
	return rates, nil
}

func (p *Provider) fetchLatest(ctx context.Context, base, today string) (models.Rates, error) {
	rates, err := p.fetcher.Latest(ctx, base)
	if err != nil {
		lookups.WithLabelValues("error").Inc()
		return nil, err
	}

	lookups.WithLabelValues("fetched").Inc()
	p.store(base, today, rates)
	return rates, nil
}

// store writes rates to the cache. Failures are logged, the rates are
// still usable.
func (p *Provider) store(base, day string, rates models.Rates) {
	err := models.StoreRates(p.db, base, day, rates)
	if err != nil {
		log.Error().Err(err).Str("base", base).Str("date", day).Msg("Exchange rate cache")
	}
}
