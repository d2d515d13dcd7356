package wizard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hearth-budget/backend/internal/models"
	"github.com/hearth-budget/backend/internal/types"
	"github.com/prometheus/client_golang/prometheus"
)

// MaxIdle is the time after which unused wizards are removed from a Registry.
const MaxIdle = 24 * time.Hour

var ErrWizardNotFound = fmt.Errorf("%w transfer wizard matching your query", models.ErrResourceNotFound)

var transitions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "transfer_wizard_transitions_total",
		Help: "How many transfer wizard transitions were processed, partitioned by transition and result.",
	},
	[]string{"transition", "result"},
)

var sessions = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "transfer_wizard_sessions",
		Help: "How many transfer wizards are currently open.",
	},
)

// Collectors contains the Prometheus metrics of the package.
var Collectors = []prometheus.Collector{transitions, sessions}

// Registry holds the open wizards.
type Registry struct {
	mu      sync.RWMutex
	wizards map[uuid.UUID]*Wizard

	ledger Ledger
	rates  RateSource
	opts   Options
}

func NewRegistry(ledger Ledger, rates RateSource, opts Options) *Registry {
	return &Registry{
		wizards: make(map[uuid.UUID]*Wizard),
		ledger:  ledger,
		rates:   rates,
		opts:    opts.withDefaults(),
	}
}

// Open creates and loads a new wizard. The wizard is only registered if
// loading succeeds.
func (r *Registry) Open(ctx context.Context, householdID uuid.UUID, month types.Month) (*Wizard, error) {
	if month.IsZero() {
		return nil, models.ErrMonthMissing
	}

	r.prune()

	w := New(householdID, month, r.ledger, r.rates, r.opts)
	err := w.Load(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.wizards[w.id] = w
	sessions.Set(float64(len(r.wizards)))
	r.mu.Unlock()

	return w, nil
}

// Get returns an open wizard.
func (r *Registry) Get(id uuid.UUID) (*Wizard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.wizards[id]
	if !ok {
		return nil, ErrWizardNotFound
	}

	return w, nil
}

// Close removes a wizard. The snapshot it saved is kept.
func (r *Registry) Close(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.wizards[id]; !ok {
		return ErrWizardNotFound
	}

	delete(r.wizards, id)
	sessions.Set(float64(len(r.wizards)))
	return nil
}

// prune removes all wizards that have not been used for MaxIdle.
func (r *Registry) prune() {
	cutoff := r.opts.Now().Add(-MaxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, w := range r.wizards {
		if w.idleSince(cutoff) {
			delete(r.wizards, id)
		}
	}
	sessions.Set(float64(len(r.wizards)))
}
