package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventID returns the unique identifier of the event.
	EventID() string
	// EventName returns the name of the event.
	EventName() string
	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time
	// AggregateID returns the ID of the entity that raised the event.
	AggregateID() string
}

// CatalogID is the aggregate id used by whole-catalog events.
const CatalogID = "catalog"

// Base contains common fields for all events.
type Base struct {
	ID          string    `json:"event_id"`
	OccurredAtT time.Time `json:"occurred_at"`
	Aggregate   string    `json:"aggregate_id"`
}

// NewBase creates a new base event.
func NewBase(aggregateID string) Base {
	return Base{
		ID:          uuid.Must(uuid.NewV7()).String(),
		OccurredAtT: time.Now().UTC(),
		Aggregate:   aggregateID,
	}
}

func (e Base) EventID() string { return e.ID }

func (e Base) OccurredAt() time.Time { return e.OccurredAtT }

func (e Base) AggregateID() string { return e.Aggregate }
