// Package funding computes how much money has to be moved from the primary
// source currency account to the primary target currency account so that
// all accounts in the target currency can cover a month's expenses.
package funding

import (
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/hearth-budget/backend/internal/models"
	"github.com/shopspring/decimal"
)

var ErrInvalidRate = errors.New("the exchange rate must be a positive number")

// roundingStep is the unit the transfer amount is rounded up to.
var roundingStep = decimal.NewFromInt(100)

// Pair is the currency pair of a transfer. Money moves from Source to Target.
type Pair struct {
	Source string `json:"source" example:"SEK"`
	Target string `json:"target" example:"INR"`
}

// DefaultPair is used when no household specific pair is configured.
var DefaultPair = Pair{Source: models.DefaultSourceCurrency, Target: models.DefaultTargetCurrency}

// PairOf returns the currency pair configured for a household.
func PairOf(h models.Household) Pair {
	p := Pair{Source: h.SourceCurrency, Target: h.TargetCurrency}
	if p.Source == "" {
		p.Source = DefaultPair.Source
	}

	if p.Target == "" {
		p.Target = DefaultPair.Target
	}

	return p
}

// TopUp is the amount an account in the target currency needs to receive.
type TopUp struct {
	AccountID  uuid.UUID       `json:"accountId" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
	Name       string          `json:"name" example:"Household expenses"`
	IsPrimary  bool            `json:"isPrimary" example:"false"`
	Expenses   decimal.Decimal `json:"expenses" example:"4000"`   // Sum of the account's expenses in the month
	MinBalance decimal.Decimal `json:"minBalance" example:"1000"` // Minimum balance of the account
	Balance    decimal.Decimal `json:"balance" example:"2000"`    // Balance entered for the month
	Amount     decimal.Decimal `json:"amount" example:"3000"`     // max(0, expenses + minBalance - balance)
}

// Plan is the result of a funding calculation.
type Plan struct {
	Pair          Pair            `json:"pair"`
	Rate          decimal.Decimal `json:"rate" example:"7.95"`                 // 1 unit of the source currency in the target currency
	TopUps        []TopUp         `json:"topUps"`                              // Top-ups for all accounts in the target currency
	TotalNeeded   decimal.Decimal `json:"totalNeeded" example:"3000"`          // Total needed at the primary target account, in the target currency
	SourceNeeded  decimal.Decimal `json:"sourceNeeded" example:"377.35849057"` // Exact amount to transfer, in the source currency
	RoundedSource decimal.Decimal `json:"roundedSource" example:"400"`         // SourceNeeded rounded up to the next multiple of 100
	FromAccount   string          `json:"fromAccount" example:"Sweden Bank"`   // Name of the primary source account, empty if there is none
	ToAccount     string          `json:"toAccount" example:"NRE Account"`     // Name of the primary target account, empty if there is none
}

// TopUpFor returns the top-up for an account. Accounts without a top-up
// return zero.
func (p Plan) TopUpFor(id uuid.UUID) decimal.Decimal {
	for _, t := range p.TopUps {
		if t.AccountID == id {
			return t.Amount
		}
	}
	return decimal.Zero
}

// ValidateRate rejects rates that cannot be used to convert amounts.
func ValidateRate(rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return ErrInvalidRate
	}
	return nil
}

// Calculate computes the funding plan for a month.
//
// Every account in the target currency gets a top-up of
// max(0, sum of its expenses + minimum balance - balance). Missing balances
// count as zero. The sum of all top-ups is converted to the source currency
// with rate and rounded up to the next multiple of 100.
//
// Calculate does not modify its inputs.
func Calculate(accounts []models.BankAccount, expenses []models.Expense, balances models.Balances, rate decimal.Decimal, pair Pair) (Plan, error) {
	if err := ValidateRate(rate); err != nil {
		return Plan{}, err
	}

	spent := make(map[uuid.UUID]decimal.Decimal)
	for _, e := range expenses {
		spent[e.BankAccountID] = spent[e.BankAccountID].Add(e.Amount)
	}

	plan := Plan{
		Pair:        pair,
		Rate:        rate,
		TopUps:      []TopUp{},
		TotalNeeded: decimal.Zero,
	}

	primaryTarget := false
	for _, account := range accounts {
		switch account.Currency {
		case pair.Source:
			if account.IsPrimary && plan.FromAccount == "" {
				plan.FromAccount = account.Name
			}
			continue
		case pair.Target:
		default:
			continue
		}

		// Only the first primary target account is counted
		if account.IsPrimary {
			if primaryTarget {
				continue
			}
			primaryTarget = true
			plan.ToAccount = account.Name
		}

		t := topUp(account, spent[account.ID], balances.Get(account.ID))
		plan.TopUps = append(plan.TopUps, t)
		plan.TotalNeeded = plan.TotalNeeded.Add(t.Amount)
	}

	sortTopUps(plan.TopUps)

	plan.SourceNeeded = plan.TotalNeeded.Div(rate)
	plan.RoundedSource = RoundUp(plan.SourceNeeded)

	return plan, nil
}

func topUp(account models.BankAccount, spent, balance decimal.Decimal) TopUp {
	amount := spent.Add(account.MinBalance).Sub(balance)
	if amount.IsNegative() {
		amount = decimal.Zero
	}

	return TopUp{
		AccountID:  account.ID,
		Name:       account.Name,
		IsPrimary:  account.IsPrimary,
		Expenses:   spent,
		MinBalance: account.MinBalance,
		Balance:    balance,
		Amount:     amount,
	}
}

// sortTopUps orders secondary accounts by name and puts the primary
// account last.
func sortTopUps(topUps []TopUp) {
	sort.SliceStable(topUps, func(i, j int) bool {
		if topUps[i].IsPrimary != topUps[j].IsPrimary {
			return !topUps[i].IsPrimary
		}

		if topUps[i].Name != topUps[j].Name {
			return topUps[i].Name < topUps[j].Name
		}

		return topUps[i].AccountID.String() < topUps[j].AccountID.String()
	})
}

// RoundUp rounds an amount up to the next multiple of 100.
func RoundUp(amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}
	return amount.Div(roundingStep).Ceil().Mul(roundingStep)
}
