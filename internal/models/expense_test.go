package models_test

import (
	"time"

	"github.com/hearth-budget/backend/internal/models"
	"github.com/hearth-budget/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestExpenseDefaults() {
	account := suite.createTestAccount(models.BankAccount{Currency: "INR"})

	expense := suite.createTestExpense(models.Expense{
		HouseholdID:   account.HouseholdID,
		BankAccountID: account.ID,
		Name:          "  Rent ",
		Category:      " Housing ",
		Date:          time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(suite.T(), "Rent", expense.Name)
	assert.Equal(suite.T(), "Housing", expense.Category)
	assert.Equal(suite.T(), "INR", expense.Currency, "Currency must default to the account currency")
	assert.Equal(suite.T(), models.StatusPlanned, expense.Status)
	assert.Equal(suite.T(), "2024-03", expense.Month.String())
}

func (suite *TestSuiteStandard) TestExpenseDateFromMonth() {
	account := suite.createTestAccount(models.BankAccount{})

	expense := suite.createTestExpense(models.Expense{
		HouseholdID:   account.HouseholdID,
		BankAccountID: account.ID,
		Month:         types.NewMonth(2024, 5),
	})

	assert.Equal(suite.T(), time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), expense.Date)
}

func (suite *TestSuiteStandard) TestExpenseMonthFromDate() {
	account := suite.createTestAccount(models.BankAccount{})

	expense := suite.createTestExpense(models.Expense{
		HouseholdID:   account.HouseholdID,
		BankAccountID: account.ID,
		Month:         types.NewMonth(2024, 5),
		Date:          time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
	})
	assert.Equal(suite.T(), "2024-06", expense.Month.String(), "Month must follow the date")

	expense.Date = time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC)
	err := models.DB.Save(&expense).Error
	require.Nil(suite.T(), err)

	var reloaded models.Expense
	require.Nil(suite.T(), models.DB.First(&reloaded, "id = ?", expense.ID).Error)
	assert.Equal(suite.T(), "2024-07", reloaded.Month.String())
}

func (suite *TestSuiteStandard) TestExpenseValidation() {
	account := suite.createTestAccount(models.BankAccount{})
	foreign := suite.createTestAccount(models.BankAccount{})
	month := types.NewMonth(2024, 3)

	tests := []struct {
		name    string
		expense models.Expense
		err     error
	}{
		{"Name missing", models.Expense{HouseholdID: account.HouseholdID, BankAccountID: account.ID, Month: month}, models.ErrExpenseNameMissing},
		{"Account missing", models.Expense{HouseholdID: account.HouseholdID, Name: "x", Month: month}, models.ErrExpenseAccountMissing},
		{"Negative amount", models.Expense{HouseholdID: account.HouseholdID, BankAccountID: account.ID, Name: "x", Month: month, Amount: decimal.NewFromInt(-5)}, models.ErrAmountNegative},
		{"Invalid status", models.Expense{HouseholdID: account.HouseholdID, BankAccountID: account.ID, Name: "x", Month: month, Status: "cancelled"}, models.ErrExpenseStatusInvalid},
		{"Month missing", models.Expense{HouseholdID: account.HouseholdID, BankAccountID: account.ID, Name: "x"}, models.ErrMonthMissing},
		{"Account of other household", models.Expense{HouseholdID: account.HouseholdID, BankAccountID: foreign.ID, Name: "x", Month: month}, models.ErrAccountHouseholdMismatch},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := models.DB.Create(&tt.expense).Error
			assert.ErrorIs(suite.T(), err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestExpenseMirrorsCategory() {
	account := suite.createTestAccount(models.BankAccount{})

	for i := 0; i < 3; i++ {
		_ = suite.createTestExpense(models.Expense{
			HouseholdID:   account.HouseholdID,
			BankAccountID: account.ID,
			Month:         types.NewMonth(2024, 3),
			Category:      "Groceries",
		})
	}

	categories, err := models.Categories(models.DB, account.HouseholdID)
	assert.Nil(suite.T(), err)
	if assert.Len(suite.T(), categories, 1) {
		assert.Equal(suite.T(), "Groceries", categories[0].Name)
	}
}

func (suite *TestSuiteStandard) TestExpensesForMonth() {
	account := suite.createTestAccount(models.BankAccount{})

	_ = suite.createTestExpense(models.Expense{HouseholdID: account.HouseholdID, BankAccountID: account.ID, Name: "b", Date: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)})
	_ = suite.createTestExpense(models.Expense{HouseholdID: account.HouseholdID, BankAccountID: account.ID, Name: "a", Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)})
	_ = suite.createTestExpense(models.Expense{HouseholdID: account.HouseholdID, BankAccountID: account.ID, Name: "c", Date: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)})

	expenses, err := models.Expenses(models.DB, account.HouseholdID, types.NewMonth(2024, 3))
	assert.Nil(suite.T(), err)
	if assert.Len(suite.T(), expenses, 2) {
		assert.Equal(suite.T(), "a", expenses[0].Name)
		assert.Equal(suite.T(), "b", expenses[1].Name)
	}
}

func (suite *TestSuiteStandard) TestRecentExpenseByName() {
	account := suite.createTestAccount(models.BankAccount{})

	_ = suite.createTestExpense(models.Expense{HouseholdID: account.HouseholdID, BankAccountID: account.ID, Name: "Internet", Amount: decimal.NewFromInt(399), Month: types.NewMonth(2024, 1)})
	_ = suite.createTestExpense(models.Expense{HouseholdID: account.HouseholdID, BankAccountID: account.ID, Name: "Internet", Amount: decimal.NewFromInt(449), Month: types.NewMonth(2024, 2)})

	recent, err := models.RecentExpenseByName(models.DB, account.HouseholdID, "Internet")
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), recent.Amount.Equal(decimal.NewFromInt(449)), "Got %s", recent.Amount)

	_, err = models.RecentExpenseByName(models.DB, account.HouseholdID, "Unknown")
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}
