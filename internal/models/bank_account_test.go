package models_test

import (
	"github.com/google/uuid"
	"github.com/hearth-budget/backend/internal/models"
	"github.com/hearth-budget/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestBankAccountTrimWhitespace() {
	account := suite.createTestAccount(models.BankAccount{
		Name:     "\t Salary   ",
		Color:    "  #ff0000 ",
		Currency: "sek",
	})

	assert.Equal(suite.T(), "Salary", account.Name)
	assert.Equal(suite.T(), "#ff0000", account.Color)
	assert.Equal(suite.T(), "SEK", account.Currency)
}

func (suite *TestSuiteStandard) TestBankAccountValidation() {
	household := suite.createTestHousehold(models.Household{})

	tests := []struct {
		name    string
		account models.BankAccount
		err     error
	}{
		{"Name missing", models.BankAccount{HouseholdID: household.ID, Currency: "SEK"}, models.ErrAccountNameMissing},
		{"Invalid currency", models.BankAccount{HouseholdID: household.ID, Name: "A", Currency: "??"}, models.ErrCurrencyInvalid},
		{"Negative minimum balance", models.BankAccount{HouseholdID: household.ID, Name: "A", Currency: "SEK", MinBalance: decimal.NewFromInt(-1)}, models.ErrMinBalanceNegative},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := models.DB.Create(&tt.account).Error
			assert.ErrorIs(suite.T(), err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestBankAccountHouseholdMissing() {
	err := models.DB.Create(&models.BankAccount{HouseholdID: uuid.New(), Name: "Orphan", Currency: "SEK"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestBankAccountNameUnique() {
	household := suite.createTestHousehold(models.Household{})
	_ = suite.createTestAccount(models.BankAccount{HouseholdID: household.ID, Name: "Savings"})

	err := models.DB.Create(&models.BankAccount{HouseholdID: household.ID, Name: "Savings", Currency: "INR"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrAccountNameNotUnique)

	// Other households can use the same name
	_ = suite.createTestAccount(models.BankAccount{Name: "Savings"})
}

func (suite *TestSuiteStandard) TestBankAccountSinglePrimaryPerCurrency() {
	household := suite.createTestHousehold(models.Household{})
	primary := suite.createTestAccount(models.BankAccount{HouseholdID: household.ID, Name: "Main", IsPrimary: true})

	err := models.DB.Create(&models.BankAccount{HouseholdID: household.ID, Name: "Second", Currency: "SEK", IsPrimary: true}).Error
	assert.ErrorIs(suite.T(), err, models.ErrPrimaryAccountExists)

	// A primary account in another currency is fine
	_ = suite.createTestAccount(models.BankAccount{HouseholdID: household.ID, Name: "India", Currency: "INR", IsPrimary: true})

	// Saving the primary account itself again must not conflict with itself
	primary.Color = "blue"
	err = models.DB.Save(&primary).Error
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestBankAccountDeleteInUse() {
	household := suite.createTestHousehold(models.Household{})
	used := suite.createTestAccount(models.BankAccount{HouseholdID: household.ID})
	templated := suite.createTestAccount(models.BankAccount{HouseholdID: household.ID})
	unused := suite.createTestAccount(models.BankAccount{HouseholdID: household.ID})

	_ = suite.createTestExpense(models.Expense{
		HouseholdID:   household.ID,
		BankAccountID: used.ID,
		Month:         types.NewMonth(2024, 3),
	})

	_ = suite.createTestTemplate(models.RecurringTemplate{
		HouseholdID:   household.ID,
		BankAccountID: templated.ID,
		Amount:        decimal.NewFromInt(10),
	})

	assert.ErrorIs(suite.T(), models.DB.Delete(&used).Error, models.ErrAccountInUse)
	assert.ErrorIs(suite.T(), models.DB.Delete(&templated).Error, models.ErrAccountInUse)
	assert.Nil(suite.T(), models.DB.Delete(&unused).Error)
}

func (suite *TestSuiteStandard) TestAccountsSorted() {
	household := suite.createTestHousehold(models.Household{})
	_ = suite.createTestAccount(models.BankAccount{HouseholdID: household.ID, Name: "b"})
	_ = suite.createTestAccount(models.BankAccount{HouseholdID: household.ID, Name: "a"})
	_ = suite.createTestAccount(models.BankAccount{Name: "other household"})

	accounts, err := models.Accounts(models.DB, household.ID)
	assert.Nil(suite.T(), err)
	if assert.Len(suite.T(), accounts, 2) {
		assert.Equal(suite.T(), "a", accounts[0].Name)
		assert.Equal(suite.T(), "b", accounts[1].Name)
	}
}
