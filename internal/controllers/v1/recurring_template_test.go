package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/hearth-budget/backend/internal/controllers/v1"
	"github.com/hearth-budget/backend/internal/models"
	"github.com/hearth-budget/backend/internal/types"
	"github.com/hearth-budget/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) createTestRecurringTemplate(t *testing.T, rt v1.RecurringTemplateEditable, expectedStatus ...int) v1.RecurringTemplateResponse {
	if rt.BankAccountID == uuid.Nil {
		a := suite.createTestAccount(t, v1.AccountEditable{HouseholdID: rt.HouseholdID})
		rt.BankAccountID = a.Data.ID
		rt.HouseholdID = a.Data.HouseholdID
	}

	if rt.Name == "" {
		rt.Name = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, suite.co, http.MethodPost, "http://example.com/v1/recurring-templates", []v1.RecurringTemplateEditable{rt})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.RecurringTemplateCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.RecurringTemplateResponse{}
}

func (suite *TestSuiteStandard) importTemplates(t *testing.T, body v1.RecurringTemplateImport, expectedStatus int) v1.RecurringTemplateImportResponse {
	r := test.Request(t, suite.co, http.MethodPost, "http://example.com/v1/recurring-templates/import", body)
	test.AssertHTTPStatus(t, &r, expectedStatus)

	var response v1.RecurringTemplateImportResponse
	test.DecodeResponse(t, &r, &response)
	return response
}

func (suite *TestSuiteStandard) TestRecurringTemplatesCurrencyFromAccount() {
	a := suite.createTestAccount(suite.T(), v1.AccountEditable{Currency: "SEK"})
	rt := suite.createTestRecurringTemplate(suite.T(), v1.RecurringTemplateEditable{
		HouseholdID:   a.Data.HouseholdID,
		BankAccountID: a.Data.ID,
		Name:          "Gym",
		Amount:        decimal.NewFromInt(399),
		Category:      "Health",
	})

	assert.Equal(suite.T(), "SEK", rt.Data.Currency)
	assert.Equal(suite.T(), "http://example.com/v1/recurring-templates/import", rt.Data.Links.Import)

	// Changing the account changes the currency
	b := suite.createTestAccount(suite.T(), v1.AccountEditable{HouseholdID: a.Data.HouseholdID, Currency: "INR"})
	r := test.Request(suite.T(), suite.co, http.MethodPatch, rt.Data.Links.Self, map[string]any{
		"bankAccountId": b.Data.ID,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.RecurringTemplateResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "INR", updated.Data.Currency)
	assert.Equal(suite.T(), "Gym", updated.Data.Name)
}

func (suite *TestSuiteStandard) TestRecurringTemplatesCreateFails() {
	a := suite.createTestAccount(suite.T(), v1.AccountEditable{})

	_ = suite.createTestRecurringTemplate(suite.T(), v1.RecurringTemplateEditable{HouseholdID: a.Data.HouseholdID, BankAccountID: a.Data.ID, Name: " "}, http.StatusBadRequest)
	_ = suite.createTestRecurringTemplate(suite.T(), v1.RecurringTemplateEditable{HouseholdID: a.Data.HouseholdID, BankAccountID: a.Data.ID, Amount: decimal.NewFromInt(-1)}, http.StatusBadRequest)
	_ = suite.createTestRecurringTemplate(suite.T(), v1.RecurringTemplateEditable{HouseholdID: uuid.New(), BankAccountID: a.Data.ID}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestRecurringTemplatesImport() {
	a := suite.createTestAccount(suite.T(), v1.AccountEditable{})
	h := a.Data.HouseholdID

	rent := suite.createTestRecurringTemplate(suite.T(), v1.RecurringTemplateEditable{HouseholdID: h, BankAccountID: a.Data.ID, Name: "Rent", Amount: decimal.NewFromInt(14500), Category: "Housing"})
	_ = suite.createTestRecurringTemplate(suite.T(), v1.RecurringTemplateEditable{HouseholdID: h, BankAccountID: a.Data.ID, Name: "Maid", Amount: decimal.NewFromInt(3000)})
	foreign := suite.createTestRecurringTemplate(suite.T(), v1.RecurringTemplateEditable{Name: "Other household"})

	// An expense with the name of a template already exists in June
	june := types.NewMonth(2024, time.June)
	_ = suite.createTestExpense(suite.T(), v1.ExpenseEditable{HouseholdID: h, BankAccountID: a.Data.ID, Name: "Maid", Month: june})

	suite.T().Run("All templates", func(t *testing.T) {
		response := suite.importTemplates(t, v1.RecurringTemplateImport{HouseholdID: h, Month: may2024}, http.StatusCreated)
		require.Len(t, response.Data, 2)

		// Sorted by name
		assert.Equal(t, "Maid", response.Data[0].Name)
		assert.Equal(t, "Rent", response.Data[1].Name)

		rentExpense := response.Data[1]
		assert.True(t, rentExpense.IsRecurring)
		assert.Equal(t, models.StatusPlanned, rentExpense.Status)
		assert.Equal(t, "Housing", rentExpense.Category)
		assert.Equal(t, may2024.FirstDay().Unix(), rentExpense.Date.Unix())
		assert.True(t, decimal.NewFromInt(14500).Equal(rentExpense.Amount))
	})

	suite.T().Run("Existing names are skipped", func(t *testing.T) {
		response := suite.importTemplates(t, v1.RecurringTemplateImport{HouseholdID: h, Month: june}, http.StatusCreated)
		require.Len(t, response.Data, 1)
		assert.Equal(t, "Rent", response.Data[0].Name)
	})

	suite.T().Run("Selected templates", func(t *testing.T) {
		july := types.NewMonth(2024, time.July)
		response := suite.importTemplates(t, v1.RecurringTemplateImport{HouseholdID: h, Month: july, TemplateIDs: []uuid.UUID{rent.Data.ID, foreign.Data.ID}}, http.StatusCreated)
		require.Len(t, response.Data, 1, "templates of other households must not be imported")
		assert.Equal(t, "Rent", response.Data[0].Name)
	})

	suite.T().Run("No month", func(t *testing.T) {
		response := suite.importTemplates(t, v1.RecurringTemplateImport{HouseholdID: h}, http.StatusBadRequest)
		assert.Contains(t, *response.Error, models.ErrMonthMissing.Error())
	})

	suite.T().Run("Household does not exist", func(t *testing.T) {
		_ = suite.importTemplates(t, v1.RecurringTemplateImport{HouseholdID: uuid.New(), Month: may2024}, http.StatusNotFound)
	})

	suite.T().Run("Expenses are listed", func(t *testing.T) {
		r := test.Request(t, suite.co, http.MethodGet, fmt.Sprintf("http://example.com/v1/expenses?household=%s&recurring=true", h), "")
		test.AssertHTTPStatus(t, &r, http.StatusOK)

		var response v1.ExpenseListResponse
		test.DecodeResponse(t, &r, &response)
		assert.Len(t, response.Data, 4)
	})
}

func (suite *TestSuiteStandard) TestRecurringTemplatesGetFilter() {
	a := suite.createTestAccount(suite.T(), v1.AccountEditable{})
	h := a.Data.HouseholdID

	_ = suite.createTestRecurringTemplate(suite.T(), v1.RecurringTemplateEditable{HouseholdID: h, BankAccountID: a.Data.ID, Name: "Rent", Category: "Housing"})
	_ = suite.createTestRecurringTemplate(suite.T(), v1.RecurringTemplateEditable{HouseholdID: h, BankAccountID: a.Data.ID, Name: "Maintenance", Category: "Housing"})
	_ = suite.createTestRecurringTemplate(suite.T(), v1.RecurringTemplateEditable{Name: "Rent"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Household", fmt.Sprintf("household=%s", h), 2},
		{"Account", fmt.Sprintf("account=%s", a.Data.ID), 2},
		{"Category", "category=Housing", 2},
		{"Name", "name=ren", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.co, http.MethodGet, fmt.Sprintf("http://example.com/v1/recurring-templates?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.RecurringTemplateListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}
