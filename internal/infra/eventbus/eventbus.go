package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"link-catalog/internal/domain"
	"link-catalog/internal/domain/event"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// CatalogEventsTopic carries every catalog and selection event.
const CatalogEventsTopic = "catalog.events"

// Message metadata keys. The payload is the event itself as JSON.
const (
	MetadataEventName   = "event_name"
	MetadataAggregateID = "aggregate_id"
	MetadataOccurredAt  = "occurred_at"
)

var ErrMissingEventName = errors.New("message has no event name")

var _ domain.EventPublisher = (*EventBus)(nil)

// EventBus is an in-process watermill pub/sub for domain events.
// Delivery is at-most-once: events published while no handler is subscribed are dropped.
type EventBus struct {
	pubsub *gochannel.GoChannel
}

func NewEventBus(logger watermill.LoggerAdapter) *EventBus {
	return &EventBus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 256}, logger),
	}
}

func (b *EventBus) Subscriber() message.Subscriber {
	return b.pubsub
}

// Publish publishes e on CatalogEventsTopic. The message context is detached
// from ctx so handlers outlive the request that raised the event.
func (b *EventBus) Publish(ctx context.Context, e event.Event) error {
	msg, err := EventToMessage(e)
	if err != nil {
		return err
	}
	msg.SetContext(context.WithoutCancel(ctx))

	if err := b.pubsub.Publish(CatalogEventsTopic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", e.EventName(), err)
	}
	return nil
}

func (b *EventBus) Close() error {
	return b.pubsub.Close()
}

// EventEnvelope is a received event: its identity from the message metadata
// and the undecoded payload.
type EventEnvelope struct {
	EventID     string
	EventName   string
	AggregateID string
	OccurredAt  time.Time
	Payload     json.RawMessage
}

// Decode unmarshals the payload into v, normally a pointer to the concrete event type.
func (e *EventEnvelope) Decode(v any) error {
	return json.Unmarshal(e.Payload, v)
}

func EventToMessage(e event.Event) (*message.Message, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", e.EventName(), err)
	}

	msg := message.NewMessage(e.EventID(), payload)
	msg.Metadata.Set(MetadataEventName, e.EventName())
	msg.Metadata.Set(MetadataAggregateID, e.AggregateID())
	msg.Metadata.Set(MetadataOccurredAt, e.OccurredAt().UTC().Format(time.RFC3339Nano))
	return msg, nil
}

func MessageToEnvelope(msg *message.Message) (*EventEnvelope, error) {
	name := msg.Metadata.Get(MetadataEventName)
	if name == "" {
		return nil, ErrMissingEventName
	}

	envelope := &EventEnvelope{
		EventID:     msg.UUID,
		EventName:   name,
		AggregateID: msg.Metadata.Get(MetadataAggregateID),
		Payload:     json.RawMessage(msg.Payload),
	}
	if raw := msg.Metadata.Get(MetadataOccurredAt); raw != "" {
		occurredAt, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", MetadataOccurredAt, err)
		}
		envelope.OccurredAt = occurredAt
	}
	return envelope, nil
}
