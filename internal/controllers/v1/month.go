package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearth-budget/backend/internal/httputil"
	"github.com/hearth-budget/backend/internal/models"
)

type MonthLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/months/550dc009-cea6-4c12-b2a5-03446eb7b7cf/2024-03"`                       // The month summary itself
	Expenses string `json:"expenses" example:"https://example.com/api/v1/expenses?household=550dc009-cea6-4c12-b2a5-03446eb7b7cf&month=2024-03"` // Expenses of the month
	Snapshot string `json:"snapshot" example:"https://example.com/api/v1/snapshots/550dc009-cea6-4c12-b2a5-03446eb7b7cf/2024-03"`                // Balances recorded for the month
}

// Month is the API v1 representation of a month summary.
type Month struct {
	models.MonthSummary
	Links MonthLinks `json:"links"`
}

type MonthResponse struct {
	Data  *Month  `json:"data"`                                                          // Data for the month
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// RegisterMonthRoutes registers the routes for month summaries with
// the RouterGroup that is passed.
func (co Controller) RegisterMonthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:householdId/:month", co.OptionsMonth)
	r.GET("/:householdId/:month", co.GetMonth)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Param			householdId	path	string	true	"ID of the household"
// @Param			month		path	string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{householdId}/{month} [options]
func (co Controller) OptionsMonth(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get month summary
// @Description	Returns the planned, paid and total expenses of a month per currency
// @Tags			Months
// @Produce		json
// @Success		200			{object}	MonthResponse
// @Failure		400			{object}	MonthResponse
// @Failure		404			{object}	MonthResponse
// @Failure		500			{object}	MonthResponse
// @Param			householdId	path		string	true	"ID of the household"
// @Param			month		path		string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{householdId}/{month} [get]
func (co Controller) GetMonth(c *gin.Context) {
	var uri URIHouseholdMonth
	if err := c.ShouldBindUri(&uri); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, MonthResponse{
			Error: &s,
		})
		return
	}

	summary, err := models.Summary(models.DB, uri.HouseholdID.UUID, uri.Month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &s,
		})
		return
	}

	url := c.GetString(string(models.DBContextURL))
	c.JSON(http.StatusOK, MonthResponse{Data: &Month{
		MonthSummary: summary,
		Links: MonthLinks{
			Self:     fmt.Sprintf("%s/v1/months/%s/%s", url, summary.HouseholdID, summary.Month),
			Expenses: fmt.Sprintf("%s/v1/expenses?household=%s&month=%s", url, summary.HouseholdID, summary.Month),
			Snapshot: fmt.Sprintf("%s/v1/snapshots/%s/%s", url, summary.HouseholdID, summary.Month),
		},
	}})
}
