package biz

import (
	"context"

	"link-catalog/internal/domain"
	"link-catalog/internal/domain/event"
	"link-catalog/internal/infra/eventbus"

	"github.com/go-kratos/kratos/v2/log"
)

var (
	_ eventbus.EventHandler = (*LoggingEventHandler)(nil)
	_ eventbus.EventHandler = (*HitCounterHandler)(nil)
)

// LoggingEventHandler logs every domain event.
type LoggingEventHandler struct {
	log *log.Helper
}

func NewLoggingEventHandler(logger log.Logger) *LoggingEventHandler {
	return &LoggingEventHandler{log: log.NewHelper(log.With(logger, "module", "events"))}
}

func (h *LoggingEventHandler) HandlerName() string {
	return "logging_handler"
}

func (h *LoggingEventHandler) EventNames() []string {
	return event.Names
}

func (h *LoggingEventHandler) Handle(ctx context.Context, envelope *eventbus.EventEnvelope) error {
	l := h.log.WithContext(ctx)
	switch envelope.EventName {
	case event.NameLinkSelected:
		var evt event.LinkSelected
		if err := envelope.Decode(&evt); err != nil {
			return err
		}
		l.Debugf("[Event] link selected: %s (tag %s)", evt.URL, evt.Tag)
	case event.NameCatalogReplaced:
		var evt event.CatalogReplaced
		if err := envelope.Decode(&evt); err != nil {
			return err
		}
		l.Infof("[Event] catalog replaced: %d of %d records stored", evt.Stored, evt.Submitted)
	case event.NameLinksAppended:
		var evt event.LinksAppended
		if err := envelope.Decode(&evt); err != nil {
			return err
		}
		l.Infof("[Event] links appended: %d of %d added, total %d", evt.Added, evt.Submitted, evt.Total)
	case event.NameLinksDeleted:
		var evt event.LinksDeleted
		if err := envelope.Decode(&evt); err != nil {
			return err
		}
		l.Infof("[Event] links deleted: %d removed, %d remaining", evt.Removed, evt.Remaining)
	case event.NameCatalogSwept:
		var evt event.CatalogSwept
		if err := envelope.Decode(&evt); err != nil {
			return err
		}
		l.Infof("[Event] catalog swept: %d of %d removed in %s", evt.Removed, evt.Checked, evt.Duration)
	default:
		l.Infof("[Event] %s: %s", envelope.EventName, envelope.AggregateID)
	}
	return nil
}

// HitCounterHandler bumps the hit counter for every selected link.
// The increment is a plain read then write, so simultaneous selections can undercount.
type HitCounterHandler struct {
	hits domain.HitCounterRepository
	log  *log.Helper
}

func NewHitCounterHandler(hits domain.HitCounterRepository, logger log.Logger) *HitCounterHandler {
	return &HitCounterHandler{
		hits: hits,
		log:  log.NewHelper(log.With(logger, "module", "events")),
	}
}

func (h *HitCounterHandler) HandlerName() string {
	return "hit_counter_handler"
}

func (h *HitCounterHandler) EventNames() []string {
	return []string{event.NameLinkSelected}
}

func (h *HitCounterHandler) Handle(ctx context.Context, _ *eventbus.EventEnvelope) error {
	previous, err := h.hits.Load(ctx)
	if err != nil {
		return err
	}

	current := previous + 1
	if err := h.hits.Save(ctx, current); err != nil {
		return err
	}

	if milestone := event.CheckMilestone(previous, current); milestone > 0 {
		h.log.WithContext(ctx).Infof("hit counter reached %d", milestone)
	}
	return nil
}

// RegisterEventHandlers registers all event handlers with the router.
func RegisterEventHandlers(router *eventbus.Router, hits domain.HitCounterRepository, logger log.Logger) {
	router.AddHandler(NewLoggingEventHandler(logger))
	router.AddHandler(NewHitCounterHandler(hits, logger))
}
