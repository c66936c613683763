package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"link-catalog/internal/domain"
)

const (
	sessionKeyPrefix = "session_"
	sessionValid     = "valid"
)

var _ domain.SessionRepository = (*sessionRepo)(nil)

type sessionRepo struct {
	data *Data
}

// NewSessionRepo stores each session under session_<id> with the session TTL.
func NewSessionRepo(data *Data) domain.SessionRepository {
	return &sessionRepo{data: data}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (r *sessionRepo) Create(ctx context.Context, id string, ttl time.Duration) error {
	if err := r.data.kv.PutTTL(ctx, sessionKey(id), []byte(sessionValid), ttl); err != nil {
		return fmt.Errorf("%w: create session: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func (r *sessionRepo) Valid(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	raw, err := r.data.kv.Get(ctx, sessionKey(id))
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: load session: %w", domain.ErrStorageUnavailable, err)
	}
	return string(raw) == sessionValid, nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	if err := r.data.kv.Delete(ctx, sessionKey(id)); err != nil {
		return fmt.Errorf("%w: delete session: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}
