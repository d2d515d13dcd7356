package models_test

import (
	"sync"

	"github.com/google/uuid"
	"github.com/hearth-budget/backend/internal/models"
	"github.com/hearth-budget/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestBalancesGet() {
	id := uuid.New()
	b := models.Balances{id: decimal.NewFromInt(5)}

	assert.True(suite.T(), b.Get(id).Equal(decimal.NewFromInt(5)))
	assert.True(suite.T(), b.Get(uuid.New()).IsZero())
}

// TestSnapshotUpsert verifies that saving a snapshot twice keeps exactly one
// snapshot with the latest balances.
func (suite *TestSuiteStandard) TestSnapshotUpsert() {
	account := suite.createTestAccount(models.BankAccount{})
	month := types.NewMonth(2024, 3)

	_, err := models.SaveSnapshot(models.DB, account.HouseholdID, month, models.Balances{account.ID: decimal.NewFromInt(100)})
	require.Nil(suite.T(), err)

	saved, err := models.SaveSnapshot(models.DB, account.HouseholdID, month, models.Balances{account.ID: decimal.NewFromInt(250)})
	require.Nil(suite.T(), err)
	assert.True(suite.T(), saved.Balances.Get(account.ID).Equal(decimal.NewFromInt(250)))

	// Idempotent
	_, err = models.SaveSnapshot(models.DB, account.HouseholdID, month, models.Balances{account.ID: decimal.NewFromInt(250)})
	require.Nil(suite.T(), err)

	var count int64
	models.DB.Model(&models.MonthlySnapshot{}).Where("household_id = ?", account.HouseholdID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)

	snapshot, err := models.Snapshot(models.DB, account.HouseholdID, month)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), snapshot.Balances.Get(account.ID).Equal(decimal.NewFromInt(250)))
}

func (suite *TestSuiteStandard) TestSnapshotConcurrentSaves() {
	account := suite.createTestAccount(models.BankAccount{})
	month := types.NewMonth(2024, 3)

	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := models.SaveSnapshot(models.DB, account.HouseholdID, month, models.Balances{account.ID: decimal.NewFromInt(int64(i))})
			assert.Nil(suite.T(), err)
		}(i)
	}
	wg.Wait()

	var count int64
	models.DB.Model(&models.MonthlySnapshot{}).Where("household_id = ?", account.HouseholdID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TestSuiteStandard) TestSnapshotNotFound() {
	household := suite.createTestHousehold(models.Household{})

	_, err := models.Snapshot(models.DB, household.ID, types.NewMonth(2024, 3))
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestSnapshotForeignAccount() {
	household := suite.createTestHousehold(models.Household{})
	foreign := suite.createTestAccount(models.BankAccount{})

	_, err := models.SaveSnapshot(models.DB, household.ID, types.NewMonth(2024, 3), models.Balances{foreign.ID: decimal.NewFromInt(1)})
	assert.ErrorIs(suite.T(), err, models.ErrSnapshotAccountNotInHouse)
}

func (suite *TestSuiteStandard) TestSnapshotMonthMissing() {
	household := suite.createTestHousehold(models.Household{})

	_, err := models.SaveSnapshot(models.DB, household.ID, types.Month{}, nil)
	assert.ErrorIs(suite.T(), err, models.ErrMonthMissing)
}

func (suite *TestSuiteStandard) TestExchangeRateCache() {
	err := models.StoreRates(models.DB, "sek", "2024-03-01", models.Rates{"INR": decimal.RequireFromString("7.9")})
	require.Nil(suite.T(), err)

	// A second write for the same key is ignored
	err = models.StoreRates(models.DB, "SEK", "2024-03-01", models.Rates{"INR": decimal.RequireFromString("1")})
	require.Nil(suite.T(), err)

	rate, err := models.CachedRates(models.DB, "SEK", "2024-03-01")
	require.Nil(suite.T(), err)
	assert.True(suite.T(), rate.Rates["INR"].Equal(decimal.RequireFromString("7.9")))

	_, err = models.CachedRates(models.DB, "SEK", "2024-03-02")
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestSummary() {
	account := suite.createTestAccount(models.BankAccount{Currency: "SEK"})
	inr := suite.createTestAccount(models.BankAccount{HouseholdID: account.HouseholdID, Currency: "INR"})
	month := types.NewMonth(2024, 3)

	_ = suite.createTestExpense(models.Expense{HouseholdID: account.HouseholdID, BankAccountID: account.ID, Month: month, Amount: decimal.NewFromInt(100)})
	_ = suite.createTestExpense(models.Expense{HouseholdID: account.HouseholdID, BankAccountID: account.ID, Month: month, Amount: decimal.NewFromInt(50), Status: models.StatusPaid})
	_ = suite.createTestExpense(models.Expense{HouseholdID: account.HouseholdID, BankAccountID: inr.ID, Month: month, Amount: decimal.NewFromInt(7000)})

	summary, err := models.Summary(models.DB, account.HouseholdID, month)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 3, summary.Expenses)
	require.Len(suite.T(), summary.Totals, 2)

	assert.Equal(suite.T(), "INR", summary.Totals[0].Currency)
	assert.True(suite.T(), summary.Totals[0].Planned.Equal(decimal.NewFromInt(7000)))

	assert.Equal(suite.T(), "SEK", summary.Totals[1].Currency)
	assert.True(suite.T(), summary.Totals[1].Planned.Equal(decimal.NewFromInt(100)))
	assert.True(suite.T(), summary.Totals[1].Paid.Equal(decimal.NewFromInt(50)))
	assert.True(suite.T(), summary.Totals[1].Total.Equal(decimal.NewFromInt(150)))
}
