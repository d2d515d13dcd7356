package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hearth-budget/backend/internal/httputil"
	"github.com/hearth-budget/backend/internal/models"
	"github.com/hearth-budget/backend/internal/types"
	"github.com/shopspring/decimal"
)

type RecurringTemplateEditable struct {
	HouseholdID   uuid.UUID       `json:"householdId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"`   // ID of the household
	Name          string          `json:"name" example:"Electricity" default:""`                        // Name of the generated expenses
	Amount        decimal.Decimal `json:"amount" example:"2300" minimum:"0"`                            // Amount of the generated expenses
	Category      string          `json:"category" example:"Utilities" default:""`                      // Category of the generated expenses
	BankAccountID uuid.UUID       `json:"bankAccountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // ID of the bank account the expenses are paid from
}

// model returns the database resource for the editable fields
func (editable RecurringTemplateEditable) model() models.RecurringTemplate {
	return models.RecurringTemplate{
		HouseholdID:   editable.HouseholdID,
		Name:          editable.Name,
		Amount:        editable.Amount,
		Category:      editable.Category,
		BankAccountID: editable.BankAccountID,
	}
}

type RecurringTemplateLinks struct {
	Self   string `json:"self" example:"https://example.com/api/v1/recurring-templates/8f3a1b36-6f3f-4d7d-92b4-5b06c2d1e0a7"` // The recurring template itself
	Import string `json:"import" example:"https://example.com/api/v1/recurring-templates/import"`                             // Endpoint to create expenses from recurring templates
}

// RecurringTemplate is the API v1 representation of a RecurringTemplate.
type RecurringTemplate struct {
	models.DefaultModel
	RecurringTemplateEditable
	Currency string                 `json:"currency" example:"INR"` // Currency of the bank account
	Links    RecurringTemplateLinks `json:"links"`
}

func newRecurringTemplate(c *gin.Context, model models.RecurringTemplate) RecurringTemplate {
	url := c.GetString(string(models.DBContextURL))

	return RecurringTemplate{
		DefaultModel: model.DefaultModel,
		RecurringTemplateEditable: RecurringTemplateEditable{
			HouseholdID:   model.HouseholdID,
			Name:          model.Name,
			Amount:        model.Amount,
			Category:      model.Category,
			BankAccountID: model.BankAccountID,
		},
		Currency: model.Currency,
		Links: RecurringTemplateLinks{
			Self:   fmt.Sprintf("%s/v1/recurring-templates/%s", url, model.ID),
			Import: fmt.Sprintf("%s/v1/recurring-templates/import", url),
		},
	}
}

type RecurringTemplateListResponse struct {
	Data       []RecurringTemplate `json:"data"`                                                          // List of recurring templates
	Error      *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination         `json:"pagination"`                                                    // Pagination information
}

type RecurringTemplateCreateResponse struct {
	Error *string                     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []RecurringTemplateResponse `json:"data"`                                                          // List of created recurring templates
}

func (r *RecurringTemplateCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, RecurringTemplateResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RecurringTemplateResponse struct {
	Data  *RecurringTemplate `json:"data"`                                                          // Data for the recurring template
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this recurring template
}

type RecurringTemplateQueryFilter struct {
	Name          string `form:"name" filterField:"false"`   // Fuzzy filter for the name
	HouseholdID   string `form:"household"`                  // By household ID
	BankAccountID string `form:"account"`                    // By bank account ID
	Category      string `form:"category"`                   // By category
	Offset        uint   `form:"offset" filterField:"false"` // The offset of the first recurring template returned. Defaults to 0.
	Limit         int    `form:"limit" filterField:"false"`  // Maximum number of recurring templates to return. Defaults to 50.
}

func (f RecurringTemplateQueryFilter) model() (models.RecurringTemplate, error) {
	householdID, err := httputil.UUIDFromString(f.HouseholdID)
	if err != nil {
		return models.RecurringTemplate{}, err
	}

	accountID, err := httputil.UUIDFromString(f.BankAccountID)
	if err != nil {
		return models.RecurringTemplate{}, err
	}

	return models.RecurringTemplate{
		HouseholdID:   householdID,
		BankAccountID: accountID,
		Category:      f.Category,
	}, nil
}

// RecurringTemplateImport selects the recurring templates to create expenses from.
type RecurringTemplateImport struct {
	HouseholdID uuid.UUID   `json:"householdId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // ID of the household
	Month       types.Month `json:"month" example:"2024-03"`                                    // Month to create the expenses in
	TemplateIDs []uuid.UUID `json:"templateIds"`                                                // IDs of the templates to import. If empty, all templates whose name is not used by an expense in the month yet are imported
}

type RecurringTemplateImportResponse struct {
	Data  []Expense `json:"data"`                                  // The created expenses
	Error *string   `json:"error" example:"the month must be set"` // The error, if any occurred
}
