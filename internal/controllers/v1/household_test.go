package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/hearth-budget/backend/internal/controllers/v1"
	"github.com/hearth-budget/backend/internal/models"
	"github.com/hearth-budget/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) createTestHousehold(t *testing.T, h v1.HouseholdEditable, expectedStatus ...int) v1.HouseholdResponse {
	if h.Name == "" {
		h.Name = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, suite.co, http.MethodPost, "http://example.com/v1/households", []v1.HouseholdEditable{h})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.HouseholdCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.HouseholdResponse{}
}

// TestHouseholdsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestHouseholdsDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				suite.createTestHousehold(t, v1.HouseholdEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, suite.co, http.MethodGet, "http://example.com/v1/households", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.HouseholdListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

func (suite *TestSuiteStandard) TestHouseholdsCreate() {
	tests := []struct {
		name     string
		editable v1.HouseholdEditable
		status   int
		source   string
		target   string
	}{
		{"Defaults", v1.HouseholdEditable{Name: "Home"}, http.StatusCreated, "SEK", "INR"},
		{"Lowercase currencies", v1.HouseholdEditable{Name: "Abroad", SourceCurrency: "eur", TargetCurrency: "inr"}, http.StatusCreated, "EUR", "INR"},
		{"Same currencies", v1.HouseholdEditable{Name: "Same", SourceCurrency: "INR", TargetCurrency: "INR"}, http.StatusBadRequest, "", ""},
		{"Invalid currency", v1.HouseholdEditable{Name: "Invalid", SourceCurrency: "XYZW"}, http.StatusBadRequest, "", ""},
		{"Whitespace name", v1.HouseholdEditable{Name: "   "}, http.StatusBadRequest, "", ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			h := suite.createTestHousehold(t, tt.editable, tt.status)
			if tt.status != http.StatusCreated {
				return
			}

			assert.Equal(t, tt.source, h.Data.SourceCurrency)
			assert.Equal(t, tt.target, h.Data.TargetCurrency)
			assert.Equal(t, fmt.Sprintf("http://example.com/v1/accounts?household=%s", h.Data.ID), h.Data.Links.Accounts)
		})
	}
}

func (suite *TestSuiteStandard) TestHouseholdsCreateInvalidBody() {
	r := test.Request(suite.T(), suite.co, http.MethodPost, "http://example.com/v1/households", `[{ "name": 2 }]`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), suite.co, http.MethodPost, "http://example.com/v1/households", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestHouseholdsGetSingle() {
	h := suite.createTestHousehold(suite.T(), v1.HouseholdEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing Household", h.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET ID nil", uuid.Nil.String(), http.StatusNotFound, http.MethodGet},
		{"GET No Household with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (positive number)", "23", http.StatusBadRequest, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodPatch},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
		{"DELETE No Household with this ID", uuid.New().String(), http.StatusNotFound, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.co, tt.method, fmt.Sprintf("http://example.com/v1/households/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestHouseholdsGetFilter() {
	_ = suite.createTestHousehold(suite.T(), v1.HouseholdEditable{Name: "Stockholm flat"})
	_ = suite.createTestHousehold(suite.T(), v1.HouseholdEditable{Name: "Pune house"})
	_ = suite.createTestHousehold(suite.T(), v1.HouseholdEditable{Name: "Berlin", SourceCurrency: "EUR"})

	tests := []struct {
		name  string
		query string
		len   int
		total int64
	}{
		{"All", "", 3, 3},
		{"Name fuzzy", "name=house", 1, 1},
		{"Source currency", "sourceCurrency=sek", 2, 2},
		{"Target currency", "targetCurrency=INR", 3, 3},
		{"Limit", "limit=2", 2, 3},
		{"Offset", "offset=2", 1, 3},
		{"Limit 0", "limit=0", 0, 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.co, http.MethodGet, fmt.Sprintf("http://example.com/v1/households?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.HouseholdListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
			assert.Equal(t, tt.total, response.Pagination.Total)
		})
	}
}

func (suite *TestSuiteStandard) TestHouseholdsUpdate() {
	h := suite.createTestHousehold(suite.T(), v1.HouseholdEditable{Name: "Home"})

	r := test.Request(suite.T(), suite.co, http.MethodPatch, h.Data.Links.Self, map[string]any{
		"name": "Family",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.HouseholdResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "Family", updated.Data.Name)
	assert.Equal(suite.T(), "SEK", updated.Data.SourceCurrency, "fields not in the body must keep their value")
	assert.Equal(suite.T(), h.Data.CreatedAt.Unix(), updated.Data.CreatedAt.Unix())

	r = test.Request(suite.T(), suite.co, http.MethodPatch, h.Data.Links.Self, map[string]any{
		"targetCurrency": "SEK",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestHouseholdsDeleteCascades() {
	h := suite.createTestHousehold(suite.T(), v1.HouseholdEditable{})
	a := suite.createTestAccount(suite.T(), v1.AccountEditable{HouseholdID: h.Data.ID})
	_ = suite.createTestExpense(suite.T(), v1.ExpenseEditable{HouseholdID: h.Data.ID, BankAccountID: a.Data.ID})

	r := test.Request(suite.T(), suite.co, http.MethodDelete, h.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), suite.co, http.MethodGet, a.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.Expense{}).Count(&count).Error)
	assert.Zero(suite.T(), count)
}
