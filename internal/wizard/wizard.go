// Package wizard implements the transfer wizard.
//
// A wizard starts in EnteringBalances, where the balances of all accounts
// for the month are entered. Confirming saves them as the month's snapshot
// and computes the funding plan, moving the wizard to ReviewingTransfer.
// From there, the wizard can go back without losing anything, and the
// exchange rate can be overridden to recompute the plan.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hearth-budget/backend/internal/events"
	"github.com/hearth-budget/backend/internal/funding"
	"github.com/hearth-budget/backend/internal/models"
	"github.com/hearth-budget/backend/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// State is the state of a wizard.
type State string

const (
	EnteringBalances  State = "enteringBalances"
	ReviewingTransfer State = "reviewingTransfer"
)

// DefaultTimeout bounds every transition that accesses storage or the rate API.
const DefaultTimeout = 10 * time.Second

var (
	ErrTimeout        = errors.New("the transfer wizard timed out while loading or saving data")
	ErrWrongState     = errors.New("this action is not possible in the current state of the transfer wizard")
	ErrNotLoaded      = errors.New("the transfer wizard has not been loaded yet")
	ErrUnknownAccount = fmt.Errorf("%w: the bank account is not part of the household", models.ErrValidation)
)

// Options configures a wizard.
type Options struct {
	Timeout time.Duration    // Timeout for each transition, DefaultTimeout if zero
	Events  events.Publisher // Publisher for snapshot and transfer events, events.Nop if nil
	Now     func() time.Time // Clock used for the rate date, time.Now if nil
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}

	if o.Events == nil {
		o.Events = events.Nop{}
	}

	if o.Now == nil {
		o.Now = time.Now
	}

	return o
}

// Wizard is one transfer wizard session for a household and month.
//
// All methods are safe for concurrent use. Transitions of the same wizard
// are serialized.
type Wizard struct {
	mu sync.Mutex

	id          uuid.UUID
	householdID uuid.UUID
	month       types.Month
	ledger      Ledger
	rates       RateSource
	opts        Options
	lastUsed    time.Time

	state    State
	loaded   bool
	pair     funding.Pair
	accounts []models.BankAccount
	expenses []models.Expense
	balances models.Balances
	rate     decimal.Decimal
	plan     *funding.Plan
}

// New returns a wizard in EnteringBalances. It must be loaded before use.
func New(householdID uuid.UUID, month types.Month, ledger Ledger, rates RateSource, opts Options) *Wizard {
	opts = opts.withDefaults()

	return &Wizard{
		id:          uuid.New(),
		householdID: householdID,
		month:       month,
		ledger:      ledger,
		rates:       rates,
		opts:        opts,
		lastUsed:    opts.Now(),
		state:       EnteringBalances,
		pair:        funding.DefaultPair,
		balances:    models.Balances{},
	}
}

func (w *Wizard) ID() uuid.UUID {
	return w.id
}

// withTimeout runs fn with the transition timeout. An expired deadline
// is reported as ErrTimeout.
func (w *Wizard) withTimeout(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, w.opts.Timeout)
	defer cancel()

	err := fn(ctx)
	if err != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	return err
}

// Load fetches everything the wizard needs and resets it to EnteringBalances.
//
// Accounts, expenses, the month's snapshot and today's exchange rate are
// loaded concurrently. Without a snapshot, all balances are zero. If
// anything fails, the wizard keeps its previous data and state.
func (w *Wizard) Load(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastUsed = w.opts.Now()

	var (
		household models.Household
		accounts  []models.BankAccount
		expenses  []models.Expense
		snapshot  models.MonthlySnapshot
		rate      decimal.Decimal
	)

	err := w.withTimeout(ctx, func(ctx context.Context) error {
		var err error
		household, err = w.ledger.Household(ctx, w.householdID)
		if err != nil {
			return err
		}
		pair := funding.PairOf(household)

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			accounts, err = w.ledger.Accounts(ctx, w.householdID)
			return
		})
		g.Go(func() (err error) {
			expenses, err = w.ledger.Expenses(ctx, w.householdID, w.month)
			return
		})
		g.Go(func() (err error) {
			snapshot, err = w.ledger.Snapshot(ctx, w.householdID, w.month)
			if errors.Is(err, models.ErrResourceNotFound) {
				snapshot, err = models.MonthlySnapshot{}, nil
			}
			return
		})
		g.Go(func() (err error) {
			rate, err = w.rates.Rate(ctx, pair, w.opts.Now())
			return
		})

		return g.Wait()
	})
	if err != nil {
		transitions.WithLabelValues("load", "error").Inc()
		return err
	}

	balances := make(models.Balances, len(accounts))
	for _, a := range accounts {
		balances[a.ID] = snapshot.Balances.Get(a.ID)
	}

	w.pair = funding.PairOf(household)
	w.accounts = accounts
	w.expenses = expenses
	w.balances = balances
	w.rate = rate
	w.plan = nil
	w.state = EnteringBalances
	w.loaded = true

	transitions.WithLabelValues("load", "success").Inc()
	return nil
}

// SetBalance sets the balance of one account. Balances may be negative.
func (w *Wizard) SetBalance(accountID uuid.UUID, balance decimal.Decimal) error {
	return w.SetBalances(models.Balances{accountID: balance})
}

// SetBalances sets the balances of several accounts. Accounts not
// contained keep their balance. Either all or none of the balances are set.
func (w *Wizard) SetBalances(balances models.Balances) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastUsed = w.opts.Now()

	if err := w.check(EnteringBalances); err != nil {
		return err
	}

	for id := range balances {
		if _, ok := w.balances[id]; !ok {
			return ErrUnknownAccount
		}
	}

	for id, balance := range balances {
		w.balances[id] = balance
	}

	return nil
}

// Confirm saves the balances as the month's snapshot, computes the funding
// plan and moves the wizard to ReviewingTransfer.
//
// The plan is only computed after the snapshot has been saved. If saving
// fails, the wizard stays in EnteringBalances.
func (w *Wizard) Confirm(ctx context.Context) (funding.Plan, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastUsed = w.opts.Now()

	if err := w.check(EnteringBalances); err != nil {
		return funding.Plan{}, err
	}

	if err := funding.ValidateRate(w.rate); err != nil {
		return funding.Plan{}, err
	}

	balances := make(models.Balances, len(w.balances))
	for id, b := range w.balances {
		balances[id] = b
	}

	err := w.withTimeout(ctx, func(ctx context.Context) error {
		_, err := w.ledger.SaveSnapshot(ctx, w.householdID, w.month, balances)
		return err
	})
	if err != nil {
		transitions.WithLabelValues("confirm", "error").Inc()
		return funding.Plan{}, err
	}
	w.publish(ctx, events.SnapshotSaved, balances)

	plan, err := funding.Calculate(w.accounts, w.expenses, balances, w.rate, w.pair)
	if err != nil {
		transitions.WithLabelValues("confirm", "error").Inc()
		return funding.Plan{}, err
	}

	w.plan = &plan
	w.state = ReviewingTransfer
	w.publish(ctx, events.TransferComputed, plan)

	transitions.WithLabelValues("confirm", "success").Inc()
	return plan, nil
}

// Back returns to EnteringBalances. Nothing is fetched or discarded.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastUsed = w.opts.Now()

	if err := w.check(ReviewingTransfer); err != nil {
		return err
	}

	w.state = EnteringBalances
	transitions.WithLabelValues("back", "success").Inc()
	return nil
}

// OverrideRate replaces the exchange rate and recomputes the plan. Invalid
// rates are rejected and the previous plan is kept.
func (w *Wizard) OverrideRate(rate decimal.Decimal) (funding.Plan, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastUsed = w.opts.Now()

	if err := w.check(ReviewingTransfer); err != nil {
		return funding.Plan{}, err
	}

	plan, err := funding.Calculate(w.accounts, w.expenses, w.balances, rate, w.pair)
	if err != nil {
		return *w.plan, err
	}

	w.rate = rate
	w.plan = &plan
	return plan, nil
}

func (w *Wizard) check(state State) error {
	if !w.loaded {
		return ErrNotLoaded
	}

	if w.state != state {
		return fmt.Errorf("%w: the wizard is in state %s", ErrWrongState, w.state)
	}

	return nil
}

// publish sends an event. Failures are logged only.
func (w *Wizard) publish(ctx context.Context, eventType string, payload any) {
	err := w.opts.Events.Publish(ctx, events.New(eventType, w.householdID, w.month, payload))
	if err != nil {
		log.Error().Err(err).Str("event", eventType).Str("wizard", w.id.String()).Msg("Transfer wizard")
	}
}

func (w *Wizard) idleSince(t time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastUsed.Before(t)
}
