package data

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"link-catalog/internal/domain"
)

const hitCounterKey = "api_hits"

var _ domain.HitCounterRepository = (*hitCounterRepo)(nil)

type hitCounterRepo struct {
	data *Data
}

// NewHitCounterRepo stores the counter as a decimal string.
func NewHitCounterRepo(data *Data) domain.HitCounterRepository {
	return &hitCounterRepo{data: data}
}

// Load returns 0 for a missing or unparseable counter.
func (r *hitCounterRepo) Load(ctx context.Context) (int64, error) {
	raw, err := r.data.kv.Get(ctx, hitCounterKey)
	if errors.Is(err, ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: load hit counter: %w", domain.ErrStorageUnavailable, err)
	}

	hits, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil || hits < 0 {
		return 0, nil
	}
	return hits, nil
}

func (r *hitCounterRepo) Save(ctx context.Context, hits int64) error {
	if err := r.data.kv.Put(ctx, hitCounterKey, []byte(strconv.FormatInt(hits, 10))); err != nil {
		return fmt.Errorf("%w: save hit counter: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}
