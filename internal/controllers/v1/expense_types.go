package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hearth-budget/backend/internal/httputil"
	"github.com/hearth-budget/backend/internal/models"
	"github.com/hearth-budget/backend/internal/types"
	"github.com/shopspring/decimal"
)

type ExpenseEditable struct {
	HouseholdID   uuid.UUID            `json:"householdId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"`      // ID of the household
	Month         types.Month          `json:"month" example:"2024-03"`                                         // Month of the expense. Defaults to the month of the date
	Name          string               `json:"name" example:"Rent" default:""`                                  // Name of the expense
	Amount        decimal.Decimal      `json:"amount" example:"14500" minimum:"0"`                              // Amount in the currency of the expense
	Currency      string               `json:"currency" example:"INR"`                                          // ISO 4217 code. Defaults to the currency of the bank account
	Category      string               `json:"category" example:"Housing" default:""`                           // Free-text category
	Date          time.Time            `json:"date" example:"2024-03-01T00:00:00Z"`                             // Date of the expense. Defaults to the first day of the month
	BankAccountID uuid.UUID            `json:"bankAccountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`    // ID of the bank account the expense is paid from
	IsRecurring   bool                 `json:"isRecurring" example:"false" default:"false"`                     // Was the expense created from a recurring template?
	Status        models.ExpenseStatus `json:"status" example:"planned" enums:"planned,paid" default:"planned"` // Status of the expense
}

// model returns the database resource for the editable fields
func (editable ExpenseEditable) model() models.Expense {
	return models.Expense{
		HouseholdID:   editable.HouseholdID,
		Month:         editable.Month,
		Name:          editable.Name,
		Amount:        editable.Amount,
		Currency:      editable.Currency,
		Category:      editable.Category,
		Date:          editable.Date,
		BankAccountID: editable.BankAccountID,
		IsRecurring:   editable.IsRecurring,
		Status:        editable.Status,
	}
}

type ExpenseLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/expenses/a5f7f7e6-a5ac-4b44-b1e8-a8bfc7f0c9c1"`        // The expense itself
	BankAccount string `json:"bankAccount" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // The bank account the expense is paid from
}

// Expense is the API v1 representation of an Expense.
type Expense struct {
	models.DefaultModel
	ExpenseEditable
	Links ExpenseLinks `json:"links"`
}

func newExpense(c *gin.Context, model models.Expense) Expense {
	url := c.GetString(string(models.DBContextURL))

	return Expense{
		DefaultModel: model.DefaultModel,
		ExpenseEditable: ExpenseEditable{
			HouseholdID:   model.HouseholdID,
			Month:         model.Month,
			Name:          model.Name,
			Amount:        model.Amount,
			Currency:      model.Currency,
			Category:      model.Category,
			Date:          model.Date,
			BankAccountID: model.BankAccountID,
			IsRecurring:   model.IsRecurring,
			Status:        model.Status,
		},
		Links: ExpenseLinks{
			Self:        fmt.Sprintf("%s/v1/expenses/%s", url, model.ID),
			BankAccount: fmt.Sprintf("%s/v1/accounts/%s", url, model.BankAccountID),
		},
	}
}

type ExpenseListResponse struct {
	Data       []Expense   `json:"data"`                                                          // List of expenses
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ExpenseCreateResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []ExpenseResponse `json:"data"`                                                          // List of created expenses
}

func (e *ExpenseCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	e.Data = append(e.Data, ExpenseResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ExpenseResponse struct {
	Data  *Expense `json:"data"`                                                          // Data for the expense
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this expense
}

type ExpenseQueryFilter struct {
	Name          string               `form:"name" filterField:"false"`   // Case-insensitive glob pattern for the name, e.g. "electricity*"
	HouseholdID   string               `form:"household"`                  // By household ID
	Month         types.Month          `form:"month"`                      // By month
	Status        models.ExpenseStatus `form:"status"`                     // By status
	BankAccountID string               `form:"account"`                    // By bank account ID
	Category      string               `form:"category"`                   // By category
	IsRecurring   bool                 `form:"recurring"`                  // Was the expense created from a recurring template?
	Offset        uint                 `form:"offset" filterField:"false"` // The offset of the first expense returned. Defaults to 0.
	Limit         int                  `form:"limit" filterField:"false"`  // Maximum number of expenses to return. Defaults to 50.
}

func (f ExpenseQueryFilter) model() (models.Expense, error) {
	householdID, err := httputil.UUIDFromString(f.HouseholdID)
	if err != nil {
		return models.Expense{}, err
	}

	accountID, err := httputil.UUIDFromString(f.BankAccountID)
	if err != nil {
		return models.Expense{}, err
	}

	return models.Expense{
		HouseholdID:   householdID,
		Month:         f.Month,
		Status:        f.Status,
		BankAccountID: accountID,
		Category:      f.Category,
		IsRecurring:   f.IsRecurring,
	}, nil
}

type ExpenseSuggestionQuery struct {
	HouseholdID string `form:"household"` // ID of the household
	Name        string `form:"name"`      // Exact name of the expense
}
