package models

import (
	"sort"

	"github.com/google/uuid"
	"github.com/hearth-budget/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CurrencyTotal sums up the expenses of a month in one currency.
type CurrencyTotal struct {
	Currency string          `json:"currency" example:"SEK"`
	Planned  decimal.Decimal `json:"planned" example:"1200"`
	Paid     decimal.Decimal `json:"paid" example:"800"`
	Total    decimal.Decimal `json:"total" example:"2000"`
}

// MonthSummary is the per-currency overview of a household's month.
type MonthSummary struct {
	HouseholdID uuid.UUID       `json:"householdId"`
	Month       types.Month     `json:"month"`
	Expenses    int             `json:"expenses" example:"12"`
	Totals      []CurrencyTotal `json:"totals"`
}

// Summary computes the month summary for a household. Totals are sorted by
// currency code.
func Summary(db *gorm.DB, householdID uuid.UUID, month types.Month) (MonthSummary, error) {
	err := db.First(&Household{}, "id = ?", householdID).Error
	if err != nil {
		return MonthSummary{}, err
	}

	expenses, err := Expenses(db, householdID, month)
	if err != nil {
		return MonthSummary{}, err
	}

	byCurrency := make(map[string]*CurrencyTotal)
	for _, e := range expenses {
		total, ok := byCurrency[e.Currency]
		if !ok {
			total = &CurrencyTotal{Currency: e.Currency}
			byCurrency[e.Currency] = total
		}

		if e.Status == StatusPaid {
			total.Paid = total.Paid.Add(e.Amount)
		} else {
			total.Planned = total.Planned.Add(e.Amount)
		}
		total.Total = total.Total.Add(e.Amount)
	}

	totals := make([]CurrencyTotal, 0, len(byCurrency))
	for _, t := range byCurrency {
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Currency < totals[j].Currency })

	return MonthSummary{
		HouseholdID: householdID,
		Month:       month,
		Expenses:    len(expenses),
		Totals:      totals,
	}, nil
}
