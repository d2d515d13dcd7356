package v1_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/hearth-budget/backend/internal/controllers/v1"
	"github.com/hearth-budget/backend/internal/models"
	"github.com/hearth-budget/backend/internal/types"
	"github.com/hearth-budget/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var may2024 = types.NewMonth(2024, time.May)

func (suite *TestSuiteStandard) createTestExpense(t *testing.T, e v1.ExpenseEditable, expectedStatus ...int) v1.ExpenseResponse {
	if e.BankAccountID == uuid.Nil {
		e.BankAccountID = suite.createTestAccount(t, v1.AccountEditable{HouseholdID: e.HouseholdID}).Data.ID
	}

	// The account creates a household if none is given, use that one
	if e.HouseholdID == uuid.Nil {
		var account models.BankAccount
		err := models.DB.First(&account, "id = ?", e.BankAccountID).Error
		if err != nil {
			assert.FailNow(t, "Bank account for expense could not be loaded", err)
		}
		e.HouseholdID = account.HouseholdID
	}

	if e.Name == "" {
		e.Name = uuid.NewString()
	}

	if e.Month.IsZero() && e.Date.IsZero() {
		e.Month = may2024
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, suite.co, http.MethodPost, "http://example.com/v1/expenses", []v1.ExpenseEditable{e})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.ExpenseCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.ExpenseResponse{}
}

func (suite *TestSuiteStandard) TestExpensesCreateDefaults() {
	a := suite.createTestAccount(suite.T(), v1.AccountEditable{Currency: "SEK"})

	e := suite.createTestExpense(suite.T(), v1.ExpenseEditable{
		HouseholdID:   a.Data.HouseholdID,
		BankAccountID: a.Data.ID,
		Name:          "  Electricity  ",
		Amount:        decimal.NewFromInt(450),
		Category:      "Utilities",
		Date:          time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(suite.T(), "Electricity", e.Data.Name)
	assert.Equal(suite.T(), "SEK", e.Data.Currency, "currency must default to the account currency")
	assert.Equal(suite.T(), "2024-03", e.Data.Month.String(), "month must default to the month of the date")
	assert.Equal(suite.T(), models.StatusPlanned, e.Data.Status)

	// The category is mirrored into the household's categories
	r := test.Request(suite.T(), suite.co, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories?household=%s", a.Data.HouseholdID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var categories v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &categories)
	if assert.Len(suite.T(), categories.Data, 1) {
		assert.Equal(suite.T(), "Utilities", categories.Data[0].Name)
	}
}

func (suite *TestSuiteStandard) TestExpensesCreateFails() {
	a := suite.createTestAccount(suite.T(), v1.AccountEditable{})
	foreign := suite.createTestAccount(suite.T(), v1.AccountEditable{})

	tests := []struct {
		name     string
		editable v1.ExpenseEditable
		status   int
		err      error
	}{
		{"Account of other household", v1.ExpenseEditable{HouseholdID: a.Data.HouseholdID, BankAccountID: foreign.Data.ID, Name: "Rent", Month: may2024}, http.StatusBadRequest, models.ErrAccountHouseholdMismatch},
		{"No month and date", v1.ExpenseEditable{HouseholdID: a.Data.HouseholdID, BankAccountID: a.Data.ID, Name: "Rent"}, http.StatusBadRequest, models.ErrMonthMissing},
		{"Negative amount", v1.ExpenseEditable{HouseholdID: a.Data.HouseholdID, BankAccountID: a.Data.ID, Name: "Rent", Month: may2024, Amount: decimal.NewFromInt(-5)}, http.StatusBadRequest, models.ErrAmountNegative},
		{"Invalid status", v1.ExpenseEditable{HouseholdID: a.Data.HouseholdID, BankAccountID: a.Data.ID, Name: "Rent", Month: may2024, Status: "cancelled"}, http.StatusBadRequest, models.ErrExpenseStatusInvalid},
		{"Account does not exist", v1.ExpenseEditable{HouseholdID: a.Data.HouseholdID, BankAccountID: uuid.New(), Name: "Rent", Month: may2024}, http.StatusNotFound, models.ErrResourceNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.co, http.MethodPost, "http://example.com/v1/expenses", []v1.ExpenseEditable{tt.editable})
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.ExpenseCreateResponse
			test.DecodeResponse(t, &r, &response)
			assert.Contains(t, *response.Data[0].Error, tt.err.Error())
		})
	}
}

func (suite *TestSuiteStandard) TestExpensesGetFilter() {
	a := suite.createTestAccount(suite.T(), v1.AccountEditable{})
	h := a.Data.HouseholdID
	b := suite.createTestAccount(suite.T(), v1.AccountEditable{HouseholdID: h})

	_ = suite.createTestExpense(suite.T(), v1.ExpenseEditable{HouseholdID: h, BankAccountID: a.Data.ID, Name: "Electricity April", Month: types.NewMonth(2024, time.April), Category: "Utilities"})
	_ = suite.createTestExpense(suite.T(), v1.ExpenseEditable{HouseholdID: h, BankAccountID: a.Data.ID, Name: "Electricity May", Month: may2024, Category: "Utilities", Status: models.StatusPaid})
	_ = suite.createTestExpense(suite.T(), v1.ExpenseEditable{HouseholdID: h, BankAccountID: b.Data.ID, Name: "Rent", Month: may2024, IsRecurring: true})
	_ = suite.createTestExpense(suite.T(), v1.ExpenseEditable{HouseholdID: h, BankAccountID: b.Data.ID, Name: "School fees", Month: may2024})

	tests := []struct {
		name  string
		query string
		len   int
		total int64
	}{
		{"All", "", 4, 4},
		{"Month", "month=2024-05", 3, 3},
		{"Household", fmt.Sprintf("household=%s", h), 4, 4},
		{"Account", fmt.Sprintf("account=%s", b.Data.ID), 2, 2},
		{"Status paid", "status=paid", 1, 1},
		{"Category", "category=Utilities", 2, 2},
		{"Recurring", "recurring=true", 1, 1},
		{"Glob prefix", fmt.Sprintf("name=%s", url.QueryEscape("electricity*")), 2, 2},
		{"Glob with month", fmt.Sprintf("name=%s&month=2024-05", url.QueryEscape("*may")), 1, 1},
		{"Glob without wildcard", "name=rent", 1, 1},
		{"Glob no match", "name=rent*x", 0, 0},
		{"Limit", "limit=1", 1, 4},
		{"Offset beyond end", "offset=10", 0, 4},
		{"Limit and offset", "offset=1&limit=2", 2, 4},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.co, http.MethodGet, fmt.Sprintf("http://example.com/v1/expenses?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ExpenseListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
			assert.Equal(t, tt.total, response.Pagination.Total)
		})
	}

	r := test.Request(suite.T(), suite.co, http.MethodGet, "http://example.com/v1/expenses?month=2024-13", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestExpensesSuggestion() {
	a := suite.createTestAccount(suite.T(), v1.AccountEditable{})
	h := a.Data.HouseholdID

	_ = suite.createTestExpense(suite.T(), v1.ExpenseEditable{HouseholdID: h, BankAccountID: a.Data.ID, Name: "Internet", Amount: decimal.NewFromInt(999), Month: types.NewMonth(2024, time.March)})
	_ = suite.createTestExpense(suite.T(), v1.ExpenseEditable{HouseholdID: h, BankAccountID: a.Data.ID, Name: "Internet", Amount: decimal.NewFromInt(1199), Category: "Utilities", Month: types.NewMonth(2024, time.April)})

	tests := []struct {
		name   string
		query  string
		status int
		amount decimal.Decimal
	}{
		{"Most recent", fmt.Sprintf("household=%s&name=Internet", h), http.StatusOK, decimal.NewFromInt(1199)},
		{"Unknown name", fmt.Sprintf("household=%s&name=Water", h), http.StatusNotFound, decimal.Zero},
		{"Other household", fmt.Sprintf("household=%s&name=Internet", uuid.New()), http.StatusNotFound, decimal.Zero},
		{"No household", "name=Internet", http.StatusBadRequest, decimal.Zero},
		{"No name", fmt.Sprintf("household=%s", h), http.StatusBadRequest, decimal.Zero},
		{"Invalid household", "household=abc&name=Internet", http.StatusBadRequest, decimal.Zero},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.co, http.MethodGet, fmt.Sprintf("http://example.com/v1/expenses/suggestion?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status != http.StatusOK {
				return
			}

			var response v1.ExpenseResponse
			test.DecodeResponse(t, &r, &response)
			assert.True(t, tt.amount.Equal(response.Data.Amount), "amount is %s, expected %s", response.Data.Amount, tt.amount)
			assert.Equal(t, "Utilities", response.Data.Category)
		})
	}
}

func (suite *TestSuiteStandard) TestExpensesUpdate() {
	e := suite.createTestExpense(suite.T(), v1.ExpenseEditable{Name: "Groceries", Amount: decimal.NewFromInt(3000)})

	r := test.Request(suite.T(), suite.co, http.MethodPatch, e.Data.Links.Self, map[string]any{
		"status": "paid",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), models.StatusPaid, updated.Data.Status)
	assert.Equal(suite.T(), "Groceries", updated.Data.Name)
	assert.True(suite.T(), decimal.NewFromInt(3000).Equal(updated.Data.Amount))

	r = test.Request(suite.T(), suite.co, http.MethodPatch, e.Data.Links.Self, `{ "name": "" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), suite.co, http.MethodDelete, e.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), suite.co, http.MethodGet, e.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestExpensesUpdateMonthAndDate() {
	e := suite.createTestExpense(suite.T(), v1.ExpenseEditable{Name: "Dentist"})

	r := test.Request(suite.T(), suite.co, http.MethodPatch, e.Data.Links.Self, map[string]any{
		"date": "2024-06-14T00:00:00Z",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "2024-06", updated.Data.Month.String(), "Month must follow a changed date")

	r = test.Request(suite.T(), suite.co, http.MethodPatch, e.Data.Links.Self, map[string]any{
		"month": "2024-08",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "2024-08", updated.Data.Month.String())
	assert.True(suite.T(), updated.Data.Date.Equal(time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)), "date is %s", updated.Data.Date)
}
