package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorHelpers_MatchWrapped(t *testing.T) {
	wrap := func(err error) error { return fmt.Errorf("load catalog: %w", err) }

	assert.True(t, IsInvalidFormat(wrap(ErrInvalidFormat)))
	assert.True(t, IsUnauthorized(wrap(ErrUnauthorized)))
	assert.True(t, IsNotFound(wrap(ErrNotFound)))
	assert.True(t, IsStorageUnavailable(wrap(ErrStorageUnavailable)))
	assert.True(t, IsEmptyCatalog(wrap(ErrEmptyCatalog)))

	assert.False(t, IsNotFound(ErrEmptyCatalog))
	assert.False(t, IsInvalidFormat(ErrInvalidRecord))
}
