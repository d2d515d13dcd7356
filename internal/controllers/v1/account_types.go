package v1

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hearth-budget/backend/internal/httputil"
	"github.com/hearth-budget/backend/internal/models"
	"github.com/shopspring/decimal"
)

type AccountEditable struct {
	HouseholdID uuid.UUID       `json:"householdId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // ID of the household this account belongs to
	Name        string          `json:"name" example:"ICICI Savings" default:""`                    // Name of the account
	Currency    string          `json:"currency" example:"INR"`                                     // ISO 4217 code of the account currency
	MinBalance  decimal.Decimal `json:"minBalance" example:"1000" default:"0" minimum:"0"`          // Balance that must remain on the account after all expenses of a month
	IsPrimary   bool            `json:"isPrimary" example:"false" default:"false"`                  // Is this the primary account for its currency? Transfers go from the primary source account to the primary target account
	Color       string          `json:"color" example:"#3366ff" default:""`                         // Color used to display the account
}

// model returns the database resource for the editable fields
func (editable AccountEditable) model() models.BankAccount {
	return models.BankAccount{
		HouseholdID: editable.HouseholdID,
		Name:        editable.Name,
		Currency:    editable.Currency,
		MinBalance:  editable.MinBalance,
		IsPrimary:   editable.IsPrimary,
		Color:       editable.Color,
	}
}

type AccountLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`             // The account itself
	Expenses string `json:"expenses" example:"https://example.com/api/v1/expenses?account=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // Expenses paid from the account
}

// Account is the API v1 representation of a BankAccount.
type Account struct {
	models.DefaultModel
	AccountEditable
	Links AccountLinks `json:"links"`
}

func newAccount(c *gin.Context, model models.BankAccount) Account {
	url := c.GetString(string(models.DBContextURL))

	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			HouseholdID: model.HouseholdID,
			Name:        model.Name,
			Currency:    model.Currency,
			MinBalance:  model.MinBalance,
			IsPrimary:   model.IsPrimary,
			Color:       model.Color,
		},
		Links: AccountLinks{
			Self:     fmt.Sprintf("%s/v1/accounts/%s", url, model.ID),
			Expenses: fmt.Sprintf("%s/v1/expenses?account=%s", url, model.ID),
		},
	}
}

type AccountListResponse struct {
	Data       []Account   `json:"data"`                                                          // List of accounts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AccountCreateResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []AccountResponse `json:"data"`                                                          // List of created accounts
}

func (a *AccountCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AccountResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AccountResponse struct {
	Data  *Account `json:"data"`                                                          // Data for the account
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this account
}

type AccountQueryFilter struct {
	Name        string `form:"name" filterField:"false"`   // Fuzzy filter for the account name
	HouseholdID string `form:"household"`                  // By household ID
	Currency    string `form:"currency"`                   // By currency
	IsPrimary   bool   `form:"primary"`                    // Is the account the primary account for its currency?
	Offset      uint   `form:"offset" filterField:"false"` // The offset of the first account returned. Defaults to 0.
	Limit       int    `form:"limit" filterField:"false"`  // Maximum number of accounts to return. Defaults to 50.
}

func (f AccountQueryFilter) model() (models.BankAccount, error) {
	householdID, err := httputil.UUIDFromString(f.HouseholdID)
	if err != nil {
		return models.BankAccount{}, err
	}

	return models.BankAccount{
		HouseholdID: householdID,
		Currency:    strings.ToUpper(f.Currency),
		IsPrimary:   f.IsPrimary,
	}, nil
}
