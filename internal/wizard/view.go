package wizard

import (
	"github.com/google/uuid"
	"github.com/hearth-budget/backend/internal/funding"
	"github.com/hearth-budget/backend/internal/types"
	"github.com/shopspring/decimal"
)

// AccountBalance is an account as shown while entering balances.
type AccountBalance struct {
	ID         uuid.UUID       `json:"id" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
	Name       string          `json:"name" example:"Household expenses"`
	Currency   string          `json:"currency" example:"INR"`
	IsPrimary  bool            `json:"isPrimary" example:"false"`
	MinBalance decimal.Decimal `json:"minBalance" example:"1000"`
	Expenses   decimal.Decimal `json:"expenses" example:"4000"` // Sum of the account's expenses in the month
	Balance    decimal.Decimal `json:"balance" example:"2000"`  // Currently entered balance
}

// View is a read-only copy of the wizard state.
type View struct {
	ID          uuid.UUID        `json:"id" example:"f2f9d3a9-3d1f-4c64-a19f-1bd5b2c6f4f0"`
	HouseholdID uuid.UUID        `json:"householdId" example:"0a8e6c5b-5a6b-4cd1-9c4c-6d7f8e9a0b1c"`
	Month       types.Month      `json:"month" example:"2024-03"`
	State       State            `json:"state" example:"enteringBalances"`
	Pair        funding.Pair     `json:"pair"`
	Rate        decimal.Decimal  `json:"rate" example:"7.95"`
	Accounts    []AccountBalance `json:"accounts"`
	Plan        *funding.Plan    `json:"plan"` // Only set in reviewingTransfer
}

// View returns the current state of the wizard.
func (w *Wizard) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	spent := make(map[uuid.UUID]decimal.Decimal)
	for _, e := range w.expenses {
		spent[e.BankAccountID] = spent[e.BankAccountID].Add(e.Amount)
	}

	accounts := make([]AccountBalance, 0, len(w.accounts))
	for _, a := range w.accounts {
		accounts = append(accounts, AccountBalance{
			ID:         a.ID,
			Name:       a.Name,
			Currency:   a.Currency,
			IsPrimary:  a.IsPrimary,
			MinBalance: a.MinBalance,
			Expenses:   spent[a.ID],
			Balance:    w.balances.Get(a.ID),
		})
	}

	v := View{
		ID:          w.id,
		HouseholdID: w.householdID,
		Month:       w.month,
		State:       w.state,
		Pair:        w.pair,
		Rate:        w.rate,
		Accounts:    accounts,
	}

	if w.state == ReviewingTransfer && w.plan != nil {
		plan := *w.plan
		v.Plan = &plan
	}

	return v
}
