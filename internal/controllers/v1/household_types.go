package v1

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hearth-budget/backend/internal/models"
)

type HouseholdEditable struct {
	Name           string `json:"name" example:"Home" default:""`             // Name of the household
	SourceCurrency string `json:"sourceCurrency" example:"SEK" default:"SEK"` // Currency money is transferred from
	TargetCurrency string `json:"targetCurrency" example:"INR" default:"INR"` // Currency money is transferred to
}

// model returns the database resource for the editable fields
func (editable HouseholdEditable) model() models.Household {
	return models.Household{
		Name:           editable.Name,
		SourceCurrency: editable.SourceCurrency,
		TargetCurrency: editable.TargetCurrency,
	}
}

type HouseholdLinks struct {
	Self               string `json:"self" example:"https://example.com/api/v1/households/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`                                  // The household itself
	Accounts           string `json:"accounts" example:"https://example.com/api/v1/accounts?household=550dc009-cea6-4c12-b2a5-03446eb7b7cf"`                      // Bank accounts of the household
	Expenses           string `json:"expenses" example:"https://example.com/api/v1/expenses?household=550dc009-cea6-4c12-b2a5-03446eb7b7cf"`                      // Expenses of the household
	RecurringTemplates string `json:"recurringTemplates" example:"https://example.com/api/v1/recurring-templates?household=550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // Recurring templates of the household
	Categories         string `json:"categories" example:"https://example.com/api/v1/categories?household=550dc009-cea6-4c12-b2a5-03446eb7b7cf"`                  // Categories of the household
	Snapshots          string `json:"snapshots" example:"https://example.com/api/v1/snapshots/550dc009-cea6-4c12-b2a5-03446eb7b7cf/YYYY-MM"`                      // Snapshots of the household. This is an incomplete link, YYYY-MM must be replaced
	Months             string `json:"months" example:"https://example.com/api/v1/months/550dc009-cea6-4c12-b2a5-03446eb7b7cf/YYYY-MM"`                            // Month summaries of the household. This is an incomplete link, YYYY-MM must be replaced
}

// Household is the API v1 representation of a Household.
type Household struct {
	models.DefaultModel
	HouseholdEditable
	Links HouseholdLinks `json:"links"`
}

func newHousehold(c *gin.Context, model models.Household) Household {
	url := c.GetString(string(models.DBContextURL))

	return Household{
		DefaultModel: model.DefaultModel,
		HouseholdEditable: HouseholdEditable{
			Name:           model.Name,
			SourceCurrency: model.SourceCurrency,
			TargetCurrency: model.TargetCurrency,
		},
		Links: HouseholdLinks{
			Self:               fmt.Sprintf("%s/v1/households/%s", url, model.ID),
			Accounts:           fmt.Sprintf("%s/v1/accounts?household=%s", url, model.ID),
			Expenses:           fmt.Sprintf("%s/v1/expenses?household=%s", url, model.ID),
			RecurringTemplates: fmt.Sprintf("%s/v1/recurring-templates?household=%s", url, model.ID),
			Categories:         fmt.Sprintf("%s/v1/categories?household=%s", url, model.ID),
			Snapshots:          fmt.Sprintf("%s/v1/snapshots/%s/YYYY-MM", url, model.ID),
			Months:             fmt.Sprintf("%s/v1/months/%s/YYYY-MM", url, model.ID),
		},
	}
}

type HouseholdListResponse struct {
	Data       []Household `json:"data"`                                                          // List of households
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type HouseholdCreateResponse struct {
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []HouseholdResponse `json:"data"`                                                          // List of created households
}

func (h *HouseholdCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	h.Data = append(h.Data, HouseholdResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type HouseholdResponse struct {
	Data  *Household `json:"data"`                                                          // Data for the household
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this household
}

type HouseholdQueryFilter struct {
	Name           string `form:"name" filterField:"false"`   // Fuzzy filter for the household name
	SourceCurrency string `form:"sourceCurrency"`             // By source currency
	TargetCurrency string `form:"targetCurrency"`             // By target currency
	Offset         uint   `form:"offset" filterField:"false"` // The offset of the first household returned. Defaults to 0.
	Limit          int    `form:"limit" filterField:"false"`  // Maximum number of households to return. Defaults to 50.
}

func (f HouseholdQueryFilter) model() models.Household {
	return models.Household{
		SourceCurrency: strings.ToUpper(f.SourceCurrency),
		TargetCurrency: strings.ToUpper(f.TargetCurrency),
	}
}
