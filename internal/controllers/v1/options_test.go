package v1_test

import (
	"net/http"
	"testing"

	"github.com/hearth-budget/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOptionsHeaderResources() {
	optionsHeaderTests := []struct {
		path     string
		response string
	}{
		{"http://example.com/v1/households", "OPTIONS, GET, POST"},
		{"http://example.com/v1/accounts", "OPTIONS, GET, POST"},
		{"http://example.com/v1/expenses", "OPTIONS, GET, POST"},
		{"http://example.com/v1/expenses/suggestion", "OPTIONS, GET"},
		{"http://example.com/v1/recurring-templates", "OPTIONS, GET, POST"},
		{"http://example.com/v1/recurring-templates/import", "OPTIONS, POST"},
		{"http://example.com/v1/categories", "OPTIONS, GET, POST"},
		{"http://example.com/v1/snapshots/0a8e6c5b-5a6b-4cd1-9c4c-6d7f8e9a0b1c/2024-05", "OPTIONS, GET, PUT"},
		{"http://example.com/v1/months/0a8e6c5b-5a6b-4cd1-9c4c-6d7f8e9a0b1c/2024-05", "OPTIONS, GET"},
		{"http://example.com/v1/exchange-rates/SEK/2024-05-01", "OPTIONS, GET"},
		{"http://example.com/v1/transfer-wizards", "OPTIONS, POST"},
		{"http://example.com/v1/transfer-wizards/f2f9d3a9-3d1f-4c64-a19f-1bd5b2c6f4f0/confirm", "OPTIONS, POST"},
		{"http://example.com/v1/transfer-wizards/f2f9d3a9-3d1f-4c64-a19f-1bd5b2c6f4f0/rate", "OPTIONS, PUT"},
	}

	for _, tt := range optionsHeaderTests {
		suite.T().Run(tt.path, func(t *testing.T) {
			recorder := test.Request(t, suite.co, http.MethodOptions, tt.path, "")

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			assert.Equal(t, tt.response, recorder.Header().Get("allow"))
		})
	}
}
