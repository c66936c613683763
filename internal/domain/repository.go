package domain

import (
	"context"
	"time"

	"link-catalog/internal/domain/event"
)

// CatalogRepository persists the catalog as a single document.
// Every operation loads the whole catalog and saves the whole catalog back;
// there is no version check, so concurrent writers can lose updates.
// A compare-and-swap on a document version is the extension point if
// multi-writer correctness is ever required.
type CatalogRepository interface {
	// Load returns the stored catalog, or an empty catalog if none was saved yet.
	Load(ctx context.Context) (Catalog, error)

	// Save overwrites the stored catalog in one atomic put.
	Save(ctx context.Context, catalog Catalog) error

	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
}

// HitCounterRepository stores the random-selection hit counter.
type HitCounterRepository interface {
	// Load returns the current counter, 0 if never written.
	Load(ctx context.Context) (int64, error)

	// Save overwrites the counter.
	Save(ctx context.Context, hits int64) error
}

// SessionRepository tracks administrator sessions by id.
type SessionRepository interface {
	// Create marks the session as valid for ttl.
	Create(ctx context.Context, id string, ttl time.Duration) error

	// Valid reports whether the session exists and has not expired.
	Valid(ctx context.Context, id string) (bool, error)

	// Delete revokes the session.
	Delete(ctx context.Context, id string) error
}

// EventPublisher publishes domain events.
type EventPublisher interface {
	Publish(ctx context.Context, e event.Event) error
}

// Prober checks whether a link is still reachable.
// Any failure, including a timeout, is reported as false.
type Prober interface {
	Probe(ctx context.Context, url string) bool
}
