package domain

import "errors"

var (
	// ErrInvalidFormat is returned when an input payload has the wrong shape,
	// e.g. a record batch that is not a JSON array.
	ErrInvalidFormat = errors.New("invalid input format")
	// ErrUnauthorized is returned when the caller is not an authenticated administrator.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned when a batch delete matched no catalog entry.
	ErrNotFound = errors.New("none of the provided urls were found")
	// ErrStorageUnavailable wraps any failure of the backing key-value store.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrEmptyCatalog is returned by selection when the catalog has no records.
	ErrEmptyCatalog = errors.New("no images available")

	// ErrInvalidRecord marks a single record that failed normalization.
	// Batch operations drop such records instead of failing.
	ErrInvalidRecord = errors.New("invalid link record")
)

// IsInvalidFormat reports whether err is a malformed-input condition.
func IsInvalidFormat(err error) bool { return errors.Is(err, ErrInvalidFormat) }

// IsUnauthorized reports whether err is an authorization failure.
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }

// IsNotFound reports whether err is a not-found condition.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsStorageUnavailable reports whether err came from the backing store.
func IsStorageUnavailable(err error) bool { return errors.Is(err, ErrStorageUnavailable) }

// IsEmptyCatalog reports whether err signals an empty catalog.
func IsEmptyCatalog(err error) bool { return errors.Is(err, ErrEmptyCatalog) }
