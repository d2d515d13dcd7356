package models_test

import (
	"github.com/hearth-budget/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestHouseholdDefaultCurrencies() {
	h := suite.createTestHousehold(models.Household{Name: "  Home  "})

	assert.Equal(suite.T(), "Home", h.Name)
	assert.Equal(suite.T(), models.DefaultSourceCurrency, h.SourceCurrency)
	assert.Equal(suite.T(), models.DefaultTargetCurrency, h.TargetCurrency)
}

func (suite *TestSuiteStandard) TestHouseholdValidation() {
	tests := []struct {
		name      string
		household models.Household
		err       error
	}{
		{"Name missing", models.Household{Name: "   "}, models.ErrHouseholdNameMissing},
		{"Same currencies", models.Household{Name: "Home", SourceCurrency: "EUR", TargetCurrency: "eur"}, models.ErrHouseholdSameCurrencies},
		{"Invalid currency", models.Household{Name: "Home", SourceCurrency: "XYZW"}, models.ErrCurrencyInvalid},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := models.DB.Create(&tt.household).Error
			assert.ErrorIs(suite.T(), err, tt.err)
			assert.ErrorIs(suite.T(), err, models.ErrValidation)
		})
	}
}

func (suite *TestSuiteStandard) TestNormalizeCurrency() {
	c, err := models.NormalizeCurrency(" usd ")
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), "USD", c)

	_, err = models.NormalizeCurrency("")
	assert.ErrorIs(suite.T(), err, models.ErrCurrencyInvalid)
}

func (suite *TestSuiteStandard) TestHouseholdDBClosed() {
	suite.CloseDB()

	err := models.DB.Create(&models.Household{Name: "Closed"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestHouseholdNotFound() {
	var h models.Household
	err := models.DB.First(&h, "id = ?", "00000000-0000-0000-0000-000000000001").Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Contains(suite.T(), err.Error(), "household")
}
