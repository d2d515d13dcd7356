package wizard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hearth-budget/backend/internal/funding"
	"github.com/hearth-budget/backend/internal/models"
	"github.com/hearth-budget/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ledger gives the wizard access to the stored household data.
//
// Snapshot returns an error wrapping models.ErrResourceNotFound if there is
// no snapshot for the month.
type Ledger interface {
	Household(ctx context.Context, id uuid.UUID) (models.Household, error)
	Accounts(ctx context.Context, householdID uuid.UUID) ([]models.BankAccount, error)
	Expenses(ctx context.Context, householdID uuid.UUID, month types.Month) ([]models.Expense, error)
	Snapshot(ctx context.Context, householdID uuid.UUID, month types.Month) (models.MonthlySnapshot, error)
	SaveSnapshot(ctx context.Context, householdID uuid.UUID, month types.Month, balances models.Balances) (models.MonthlySnapshot, error)
}

// RateSource returns the exchange rate for a currency pair.
type RateSource interface {
	Rate(ctx context.Context, pair funding.Pair, date time.Time) (decimal.Decimal, error)
}

// GormLedger is the Ledger backed by the database.
type GormLedger struct {
	DB *gorm.DB
}

func (l GormLedger) Household(ctx context.Context, id uuid.UUID) (models.Household, error) {
	var household models.Household
	err := l.DB.WithContext(ctx).First(&household, "id = ?", id).Error
	return household, err
}

func (l GormLedger) Accounts(ctx context.Context, householdID uuid.UUID) ([]models.BankAccount, error) {
	return models.Accounts(l.DB.WithContext(ctx), householdID)
}

func (l GormLedger) Expenses(ctx context.Context, householdID uuid.UUID, month types.Month) ([]models.Expense, error) {
	return models.Expenses(l.DB.WithContext(ctx), householdID, month)
}

func (l GormLedger) Snapshot(ctx context.Context, householdID uuid.UUID, month types.Month) (models.MonthlySnapshot, error) {
	return models.Snapshot(l.DB.WithContext(ctx), householdID, month)
}

func (l GormLedger) SaveSnapshot(ctx context.Context, householdID uuid.UUID, month types.Month, balances models.Balances) (models.MonthlySnapshot, error) {
	return models.SaveSnapshot(l.DB.WithContext(ctx), householdID, month, balances)
}
