package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hearth-budget/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// swagger:enum ExpenseStatus
type ExpenseStatus string

const (
	StatusPlanned ExpenseStatus = "planned"
	StatusPaid    ExpenseStatus = "paid"
)

// Expense is a planned or paid obligation of a household in a month.
type Expense struct {
	DefaultModel
	Household     Household       `gorm:"constraint:OnDelete:CASCADE"`
	HouseholdID   uuid.UUID       `gorm:"index:expense_household_month"`
	Month         types.Month     `gorm:"index:expense_household_month"`
	Name          string          `gorm:"index"`
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Currency      string
	Category      string
	Date          time.Time
	BankAccountID uuid.UUID `gorm:"index"`
	IsRecurring   bool
	Status        ExpenseStatus
}

// BeforeSave validates the expense and fills in defaults.
//
// The currency defaults to the currency of the linked account, the month to the
// month of the date and the date to the first day of the month.
func (e *Expense) BeforeSave(tx *gorm.DB) error {
	e.Name = strings.TrimSpace(e.Name)
	e.Category = strings.TrimSpace(e.Category)

	if e.Name == "" {
		return ErrExpenseNameMissing
	}

	if e.BankAccountID == uuid.Nil {
		return ErrExpenseAccountMissing
	}

	if e.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if e.Status == "" {
		e.Status = StatusPlanned
	}

	if e.Status != StatusPlanned && e.Status != StatusPaid {
		return ErrExpenseStatusInvalid
	}

	// The date, when set, determines the month
	switch {
	case e.Month.IsZero() && e.Date.IsZero():
		return ErrMonthMissing
	case e.Date.IsZero():
		e.Date = e.Month.FirstDay()
	default:
		e.Month = types.MonthOf(e.Date)
	}

	account, err := linkedAccount(tx, e.HouseholdID, e.BankAccountID)
	if err != nil {
		return err
	}

	if e.Currency == "" {
		e.Currency = account.Currency
	}

	e.Currency, err = NormalizeCurrency(e.Currency)
	return err
}

// AfterSave mirrors the category into the household's category set.
func (e *Expense) AfterSave(tx *gorm.DB) error {
	return EnsureCategory(tx, e.HouseholdID, e.Category)
}

// Expenses returns all expenses of a household for a month.
func Expenses(db *gorm.DB, householdID uuid.UUID, month types.Month) ([]Expense, error) {
	var expenses []Expense
	err := db.
		Where("household_id = ? AND month = ?", householdID, month).
		Order("date ASC, name ASC").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	return expenses, nil
}

// RecentExpenseByName returns the most recent expense of the household
// with exactly the given name. It is used to pre-fill new expenses.
func RecentExpenseByName(db *gorm.DB, householdID uuid.UUID, name string) (Expense, error) {
	var expense Expense
	err := db.
		Where(&Expense{HouseholdID: householdID, Name: strings.TrimSpace(name)}).
		Order("date DESC, created_at DESC").
		First(&expense).Error
	return expense, err
}
