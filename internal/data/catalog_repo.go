package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"link-catalog/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
)

const catalogKey = "images_list"

var _ domain.CatalogRepository = (*catalogRepo)(nil)

type catalogRepo struct {
	data *Data
	log  *log.Helper
}

// NewCatalogRepo stores the catalog as one JSON array under a single key.
func NewCatalogRepo(data *Data, logger log.Logger) domain.CatalogRepository {
	return &catalogRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *catalogRepo) Load(ctx context.Context) (domain.Catalog, error) {
	raw, err := r.data.kv.Get(ctx, catalogKey)
	if errors.Is(err, ErrKeyNotFound) {
		return domain.Catalog{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load catalog: %w", domain.ErrStorageUnavailable, err)
	}

	var catalog domain.Catalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		r.log.WithContext(ctx).Errorf("stored catalog is not valid JSON: %v", err)
		return nil, fmt.Errorf("%w: decode catalog: %w", domain.ErrStorageUnavailable, err)
	}
	if catalog == nil {
		catalog = domain.Catalog{}
	}
	return catalog, nil
}

func (r *catalogRepo) Save(ctx context.Context, catalog domain.Catalog) error {
	if catalog == nil {
		catalog = domain.Catalog{}
	}
	raw, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := r.data.kv.Put(ctx, catalogKey, raw); err != nil {
		return fmt.Errorf("%w: save catalog: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func (r *catalogRepo) Ping(ctx context.Context) error {
	if err := r.data.kv.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}
