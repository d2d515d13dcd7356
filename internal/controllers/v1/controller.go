// Package v1 contains the handlers of the v1 API.
package v1

import (
	"context"
	"time"

	"github.com/hearth-budget/backend/internal/events"
	"github.com/hearth-budget/backend/internal/models"
	"github.com/hearth-budget/backend/internal/wizard"
)

// RateProvider looks up exchange rates for a base currency on a date.
type RateProvider interface {
	Rates(ctx context.Context, base string, date time.Time) (models.Rates, error)
}

// Controller holds the collaborators of the handlers that do not only
// work on the database.
type Controller struct {
	Rates   RateProvider
	Wizards *wizard.Registry
	Events  events.Publisher
}

// publisher returns the configured publisher or a no-op one.
func (co Controller) publisher() events.Publisher {
	if co.Events == nil {
		return events.Nop{}
	}
	return co.Events
}
