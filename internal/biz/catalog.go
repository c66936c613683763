package biz

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"link-catalog/internal/domain"
	"link-catalog/internal/domain/event"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/samber/lo"
)

// ReplaceResult reports the outcome of ReplaceAll.
type ReplaceResult struct {
	Submitted int
	Stored    int
}

func (r *ReplaceResult) Message() string {
	return fmt.Sprintf("Image list replaced successfully. Stored %d unique links.", r.Stored)
}

// AppendResult reports the outcome of AppendUnique.
type AppendResult struct {
	Submitted int
	Added     int
	Total     int
}

func (r *AppendResult) Message() string {
	return fmt.Sprintf("Successfully added %d new links. Total links: %d.", r.Added, r.Total)
}

// DeleteResult reports the outcome of BatchDelete.
type DeleteResult struct {
	Removed   int
	Remaining int
}

func (r *DeleteResult) Message() string {
	return fmt.Sprintf("Successfully deleted %d links. Remaining: %d.", r.Removed, r.Remaining)
}

// TagCount is the number of records carrying a tag.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// CatalogUsecase implements the catalog mutations and administrative reads.
// Every call loads the whole catalog and, for mutations, saves it back.
type CatalogUsecase struct {
	catalog   domain.CatalogRepository
	hits      domain.HitCounterRepository
	publisher domain.EventPublisher
	log       *log.Helper
}

func NewCatalogUsecase(
	catalog domain.CatalogRepository,
	hits domain.HitCounterRepository,
	publisher domain.EventPublisher,
	logger log.Logger,
) *CatalogUsecase {
	return &CatalogUsecase{
		catalog:   catalog,
		hits:      hits,
		publisher: publisher,
		log:       log.NewHelper(log.With(logger, "module", "biz/catalog")),
	}
}

// ReplaceAll discards the stored catalog and stores the valid, first-seen unique
// records of the batch. A nil batch is ErrInvalidFormat.
func (uc *CatalogUsecase) ReplaceAll(ctx context.Context, records []domain.RawRecord) (*ReplaceResult, error) {
	if records == nil {
		return nil, fmt.Errorf("%w: expected an array of records", domain.ErrInvalidFormat)
	}

	catalog := appendUnique(domain.Catalog{}, records)
	if err := uc.catalog.Save(ctx, catalog); err != nil {
		return nil, err
	}

	result := &ReplaceResult{Submitted: len(records), Stored: len(catalog)}
	uc.log.WithContext(ctx).Infof("catalog replaced: submitted=%d stored=%d", result.Submitted, result.Stored)
	uc.publish(ctx, event.NewCatalogReplaced(result.Submitted, result.Stored))
	return result, nil
}

// AppendUnique appends the valid records of the batch whose URLs are not yet
// in the catalog, keeping batch order. A nil batch is ErrInvalidFormat.
func (uc *CatalogUsecase) AppendUnique(ctx context.Context, records []domain.RawRecord) (*AppendResult, error) {
	if records == nil {
		return nil, fmt.Errorf("%w: expected an array of records", domain.ErrInvalidFormat)
	}

	existing, err := uc.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}

	before := len(existing)
	catalog := appendUnique(existing, records)
	if err := uc.catalog.Save(ctx, catalog); err != nil {
		return nil, err
	}

	result := &AppendResult{Submitted: len(records), Added: len(catalog) - before, Total: len(catalog)}
	uc.log.WithContext(ctx).Infof("links appended: submitted=%d added=%d total=%d", result.Submitted, result.Added, result.Total)
	uc.publish(ctx, event.NewLinksAppended(result.Submitted, result.Added, result.Total))
	return result, nil
}

// BatchDelete removes every record whose URL is in urls. URLs are compared
// after trimming. ErrNotFound is returned, and nothing is saved, when no record matched.
func (uc *CatalogUsecase) BatchDelete(ctx context.Context, urls []string) (*DeleteResult, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: expected a non-empty array of urls", domain.ErrInvalidFormat)
	}

	catalog, err := uc.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}

	doomed := lo.SliceToMap(urls, func(u string) (string, struct{}) {
		return domain.NormalizeURL(u), struct{}{}
	})
	kept := lo.Reject(catalog, func(r domain.LinkRecord, _ int) bool {
		_, ok := doomed[domain.NormalizeURL(r.URL)]
		return ok
	})

	removed := len(catalog) - len(kept)
	if removed == 0 {
		return nil, domain.ErrNotFound
	}
	if err := uc.catalog.Save(ctx, kept); err != nil {
		return nil, err
	}

	result := &DeleteResult{Removed: removed, Remaining: len(kept)}
	uc.log.WithContext(ctx).Infof("links deleted: removed=%d remaining=%d", result.Removed, result.Remaining)
	uc.publish(ctx, event.NewLinksDeleted(result.Removed, result.Remaining))
	return result, nil
}

// List returns the catalog together with the hit counter.
func (uc *CatalogUsecase) List(ctx context.Context) (domain.Catalog, int64, error) {
	catalog, err := uc.catalog.Load(ctx)
	if err != nil {
		return nil, 0, err
	}
	hits, err := uc.hits.Load(ctx)
	if err != nil {
		return nil, 0, err
	}
	return catalog, hits, nil
}

// Export returns the stored catalog as is.
func (uc *CatalogUsecase) Export(ctx context.Context) (domain.Catalog, error) {
	return uc.catalog.Load(ctx)
}

// Tags counts records per tag, most used first, ties broken by tag name.
func (uc *CatalogUsecase) Tags(ctx context.Context) ([]TagCount, error) {
	catalog, err := uc.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}

	counts := lo.CountValuesBy(catalog, func(r domain.LinkRecord) string { return r.Tag })
	tags := lo.MapToSlice(counts, func(tag string, n int) TagCount {
		return TagCount{Tag: tag, Count: n}
	})
	slices.SortFunc(tags, func(a, b TagCount) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Tag, b.Tag))
	})
	return tags, nil
}

// Ping reports whether the catalog store is reachable.
func (uc *CatalogUsecase) Ping(ctx context.Context) error {
	return uc.catalog.Ping(ctx)
}

func (uc *CatalogUsecase) publish(ctx context.Context, e event.Event) {
	if err := uc.publisher.Publish(ctx, e); err != nil {
		uc.log.WithContext(ctx).Warnf("failed to publish %s: %v", e.EventName(), err)
	}
}

// appendUnique normalizes records and appends those whose URL is new to
// catalog, including URLs added earlier in the same batch. Invalid records are dropped.
func appendUnique(catalog domain.Catalog, records []domain.RawRecord) domain.Catalog {
	seen := catalog.URLSet()
	for _, raw := range records {
		record, err := domain.NormalizeRecord(raw)
		if err != nil {
			continue
		}
		if _, dup := seen[record.URL]; dup {
			continue
		}
		seen[record.URL] = struct{}{}
		catalog = append(catalog, record)
	}
	return catalog
}
