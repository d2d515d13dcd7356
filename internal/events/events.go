// Package events publishes domain events to a message broker.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hearth-budget/backend/internal/types"
)

// Routing keys of the published events.
const (
	SnapshotSaved    = "snapshot.saved"
	TransferComputed = "transfer.computed"
)

// Event is the envelope of every published message.
type Event struct {
	Type        string      `json:"type"`
	HouseholdID uuid.UUID   `json:"householdId"`
	Month       types.Month `json:"month"`
	OccurredAt  time.Time   `json:"occurredAt"`
	Payload     any         `json:"payload"`
}

// New returns an event of the given type occurring now.
func New(eventType string, householdID uuid.UUID, month types.Month, payload any) Event {
	return Event{
		Type:        eventType,
		HouseholdID: householdID,
		Month:       month,
		OccurredAt:  time.Now().UTC(),
		Payload:     payload,
	}
}

// Publisher publishes events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop discards all events. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

func (Nop) Close() error { return nil }
