package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BankAccount represents a bank account of a household in a single currency.
type BankAccount struct {
	DefaultModel
	Household   Household       `gorm:"constraint:OnDelete:CASCADE"`
	HouseholdID uuid.UUID       `gorm:"uniqueIndex:bank_account_household_name"`
	Name        string          `gorm:"uniqueIndex:bank_account_household_name"`
	Currency    string          `gorm:"index"`
	MinBalance  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	IsPrimary   bool
	Color       string
}

// BeforeSave ensures consistency for the account
//
// It trims whitespace from all strings, normalizes the currency and
// verifies that there is at most one primary account per currency
// in the household.
func (a *BankAccount) BeforeSave(tx *gorm.DB) (err error) {
	a.Name = strings.TrimSpace(a.Name)
	a.Color = strings.TrimSpace(a.Color)

	if a.Name == "" {
		return ErrAccountNameMissing
	}

	a.Currency, err = NormalizeCurrency(a.Currency)
	if err != nil {
		return err
	}

	if a.MinBalance.IsNegative() {
		return ErrMinBalanceNegative
	}

	if !a.IsPrimary {
		return nil
	}

	var count int64
	err = tx.Model(&BankAccount{}).
		Where("household_id = ? AND currency = ? AND is_primary = ? AND id <> ?", a.HouseholdID, a.Currency, true, a.ID).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrPrimaryAccountExists
	}

	return nil
}

func (a *BankAccount) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)
	return tx.First(&Household{}, "id = ?", a.HouseholdID).Error
}

// BeforeDelete blocks the deletion of accounts that are still referenced
// by expenses or recurring templates.
func (a *BankAccount) BeforeDelete(tx *gorm.DB) error {
	var expenses, templates int64

	err := tx.Model(&Expense{}).Where("bank_account_id = ?", a.ID).Count(&expenses).Error
	if err != nil {
		return err
	}

	err = tx.Model(&RecurringTemplate{}).Where("bank_account_id = ?", a.ID).Count(&templates).Error
	if err != nil {
		return err
	}

	if expenses > 0 || templates > 0 {
		return ErrAccountInUse
	}

	return nil
}

// Accounts returns all bank accounts of a household, sorted by name.
func Accounts(db *gorm.DB, householdID uuid.UUID) ([]BankAccount, error) {
	var accounts []BankAccount
	err := db.Where(&BankAccount{HouseholdID: householdID}).Order("name ASC").Find(&accounts).Error
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

// linkedAccount loads the account referenced by an expense or template
// and verifies that it belongs to the household.
func linkedAccount(tx *gorm.DB, householdID, accountID uuid.UUID) (BankAccount, error) {
	var account BankAccount
	err := tx.First(&account, "id = ?", accountID).Error
	if err != nil {
		return BankAccount{}, err
	}

	if account.HouseholdID != householdID {
		return BankAccount{}, ErrAccountHouseholdMismatch
	}

	return account, nil
}
