package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/hearth-budget/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurringTemplate is a blueprint used to stamp out the same expense
// every month.
type RecurringTemplate struct {
	DefaultModel
	Household     Household `gorm:"constraint:OnDelete:CASCADE"`
	HouseholdID   uuid.UUID `gorm:"index"`
	Name          string
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Currency      string
	Category      string
	BankAccountID uuid.UUID `gorm:"index"`
}

// BeforeSave validates the template. The currency is always
// taken from the linked account.
func (r *RecurringTemplate) BeforeSave(tx *gorm.DB) error {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)

	if r.Name == "" {
		return ErrTemplateNameMissing
	}

	if r.BankAccountID == uuid.Nil {
		return ErrTemplateAccountMissing
	}

	if r.Amount.IsNegative() {
		return ErrAmountNegative
	}

	account, err := linkedAccount(tx, r.HouseholdID, r.BankAccountID)
	if err != nil {
		return err
	}
	r.Currency = account.Currency

	return nil
}

func (r *RecurringTemplate) AfterSave(tx *gorm.DB) error {
	return EnsureCategory(tx, r.HouseholdID, r.Category)
}

// Expense returns the planned expense this template generates for a month.
// It is dated on the first day of the month.
func (r RecurringTemplate) Expense(month types.Month) Expense {
	return Expense{
		HouseholdID:   r.HouseholdID,
		Month:         month,
		Name:          r.Name,
		Amount:        r.Amount,
		Currency:      r.Currency,
		Category:      r.Category,
		Date:          month.FirstDay(),
		BankAccountID: r.BankAccountID,
		IsRecurring:   true,
		Status:        StatusPlanned,
	}
}

// ImportTemplates creates expenses in a month from recurring templates of a household.
//
// If templateIDs is empty, all templates whose name does not match an
// expense already present in the month are imported. Templates of other
// households are never imported. All expenses are created in a single transaction.
func ImportTemplates(db *gorm.DB, householdID uuid.UUID, month types.Month, templateIDs []uuid.UUID) ([]Expense, error) {
	if month.IsZero() {
		return nil, ErrMonthMissing
	}

	err := db.First(&Household{}, "id = ?", householdID).Error
	if err != nil {
		return nil, err
	}

	var templates []RecurringTemplate
	query := db.Where(&RecurringTemplate{HouseholdID: householdID}).Order("name ASC")
	if len(templateIDs) > 0 {
		query = query.Where("id IN ?", templateIDs)
	}

	err = query.Find(&templates).Error
	if err != nil {
		return nil, err
	}

	if len(templateIDs) == 0 {
		templates, err = notYetImported(db, householdID, month, templates)
		if err != nil {
			return nil, err
		}
	}

	created := make([]Expense, 0, len(templates))
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, template := range templates {
			expense := template.Expense(month)
			if err := tx.Create(&expense).Error; err != nil {
				return err
			}
			created = append(created, expense)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// notYetImported filters out templates whose name is already used by an
// expense in the month.
func notYetImported(db *gorm.DB, householdID uuid.UUID, month types.Month, templates []RecurringTemplate) ([]RecurringTemplate, error) {
	existing, err := Expenses(db, householdID, month)
	if err != nil {
		return nil, err
	}

	names := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		names[e.Name] = struct{}{}
	}

	var filtered []RecurringTemplate
	for _, t := range templates {
		if _, ok := names[t.Name]; !ok {
			filtered = append(filtered, t)
		}
	}

	return filtered, nil
}
