package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearth-budget/backend/internal/httputil"
	"github.com/hearth-budget/backend/internal/models"
	"github.com/hearth-budget/backend/internal/rates"
)

// ExchangeRate is the conversion table of a base currency on a day.
type ExchangeRate struct {
	Base  string       `json:"base" example:"SEK"`        // The base currency
	Date  string       `json:"date" example:"2024-03-01"` // The day of the rates
	Rates models.Rates `json:"rates"`                     // Amount of each currency one unit of the base currency buys
}

type ExchangeRateResponse struct {
	Data  *ExchangeRate `json:"data"`                                           // Data for the exchange rates
	Error *string       `json:"error" example:"could not fetch exchange rates"` // The error, if any occurred
}

// RegisterExchangeRateRoutes registers the routes for exchange rates with
// the RouterGroup that is passed.
func (co Controller) RegisterExchangeRateRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:base/:date", co.OptionsExchangeRate)
	r.GET("/:base/:date", co.GetExchangeRate)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Exchange Rates
// @Success		204
// @Param			base	path	string	true	"Base currency"
// @Param			date	path	string	true	"The day in YYYY-MM-DD format"
// @Router			/v1/exchange-rates/{base}/{date} [options]
func (co Controller) OptionsExchangeRate(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get exchange rates
// @Description	Returns the exchange rates of a base currency on a day. Rates are cached. If the rates for a past day cannot be fetched, the latest rates are returned.
// @Tags			Exchange Rates
// @Produce		json
// @Success		200		{object}	ExchangeRateResponse
// @Failure		400		{object}	ExchangeRateResponse
// @Failure		502		{object}	ExchangeRateResponse
// @Param			base	path		string	true	"Base currency"
// @Param			date	path		string	true	"The day in YYYY-MM-DD format"
// @Router			/v1/exchange-rates/{base}/{date} [get]
func (co Controller) GetExchangeRate(c *gin.Context) {
	var uri URIExchangeRate
	if err := c.ShouldBindUri(&uri); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ExchangeRateResponse{
			Error: &s,
		})
		return
	}

	base, err := models.NormalizeCurrency(uri.Base)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExchangeRateResponse{
			Error: &s,
		})
		return
	}

	r, err := co.Rates.Rates(c.Request.Context(), base, uri.Date)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExchangeRateResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ExchangeRateResponse{Data: &ExchangeRate{
		Base:  base,
		Date:  uri.Date.UTC().Format(rates.DateLayout),
		Rates: r,
	}})
}
