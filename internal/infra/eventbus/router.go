package eventbus

import (
	"context"
	"slices"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// EventHandler consumes events from the bus.
type EventHandler interface {
	// HandlerName must be unique per router.
	HandlerName() string
	// EventNames lists the events the handler wants; other events are skipped.
	EventNames() []string
	Handle(ctx context.Context, envelope *EventEnvelope) error
}

// Router dispatches bus messages to registered handlers.
type Router struct {
	router   *message.Router
	eventBus *EventBus
	retry    middleware.Retry
	logger   watermill.LoggerAdapter
}

// NewRouter creates a router bound to eventBus. A failing handler is retried
// a few times, then the event is logged and dropped.
func NewRouter(eventBus *EventBus, logger watermill.LoggerAdapter) (*Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return nil, err
	}
	router.AddMiddleware(middleware.Recoverer)

	return &Router{
		router:   router,
		eventBus: eventBus,
		retry: middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 50 * time.Millisecond,
			MaxInterval:     time.Second,
			Multiplier:      2,
			Logger:          logger,
		},
		logger: logger,
	}, nil
}

// AddHandler registers handler. It must be called before Run.
func (r *Router) AddHandler(handler EventHandler) {
	r.router.AddNoPublisherHandler(
		handler.HandlerName(),
		CatalogEventsTopic,
		r.eventBus.Subscriber(),
		r.createHandlerFunc(handler),
	)
}

func (r *Router) createHandlerFunc(handler EventHandler) message.NoPublishHandlerFunc {
	names := handler.EventNames()

	handle := r.retry.Middleware(func(msg *message.Message) ([]*message.Message, error) {
		if !slices.Contains(names, msg.Metadata.Get(MetadataEventName)) {
			return nil, nil
		}
		envelope, err := MessageToEnvelope(msg)
		if err != nil {
			r.logger.Error("failed to parse message", err, watermill.LogFields{"message_uuid": msg.UUID})
			return nil, nil
		}
		return nil, handler.Handle(msg.Context(), envelope)
	})

	return func(msg *message.Message) error {
		if _, err := handle(msg); err != nil {
			r.logger.Error("dropping event after retries", err, watermill.LogFields{
				"handler":      handler.HandlerName(),
				"message_uuid": msg.UUID,
				"event_name":   msg.Metadata.Get(MetadataEventName),
			})
		}
		return nil
	}
}

// Run blocks until ctx is done or Close is called.
func (r *Router) Run(ctx context.Context) error {
	return r.router.Run(ctx)
}

// Running is closed once all handlers are subscribed.
func (r *Router) Running() chan struct{} {
	return r.router.Running()
}

func (r *Router) Close() error {
	return r.router.Close()
}
