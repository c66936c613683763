package biz

import (
	"context"
	"math/rand/v2"

	"link-catalog/internal/domain"
	"link-catalog/internal/domain/event"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/samber/lo"
)

// SelectionUsecase picks random records for the public endpoints.
type SelectionUsecase struct {
	catalog   domain.CatalogRepository
	publisher domain.EventPublisher
	log       *log.Helper
	intn      func(n int) int
}

func NewSelectionUsecase(catalog domain.CatalogRepository, publisher domain.EventPublisher, logger log.Logger) *SelectionUsecase {
	return &SelectionUsecase{
		catalog:   catalog,
		publisher: publisher,
		log:       log.NewHelper(log.With(logger, "module", "biz/selection")),
		intn:      rand.IntN,
	}
}

// Select loads the catalog and picks a record for the tag and ratio filters.
// Empty filters are ignored. ErrEmptyCatalog is returned for an empty catalog.
func (uc *SelectionUsecase) Select(ctx context.Context, tag, ratio string) (domain.LinkRecord, error) {
	catalog, err := uc.catalog.Load(ctx)
	if err != nil {
		return domain.LinkRecord{}, err
	}
	return SelectRecord(catalog, tag, ratio, uc.intn)
}

// Redirect is Select for the redirecting endpoint; a successful pick raises
// LinkSelected, which drives the hit counter.
func (uc *SelectionUsecase) Redirect(ctx context.Context, tag, ratio string) (domain.LinkRecord, error) {
	record, err := uc.Select(ctx, tag, ratio)
	if err != nil {
		return domain.LinkRecord{}, err
	}
	if err := uc.publisher.Publish(ctx, event.NewLinkSelected(record.URL, record.Tag)); err != nil {
		uc.log.WithContext(ctx).Warnf("failed to publish %s: %v", event.NameLinkSelected, err)
	}
	return record, nil
}

// SelectRecord applies the filters and picks uniformly with intn.
//
// The tag filter is exact and does not fall back on its own. The ratio filter
// keeps records within domain.RatioTolerance and is ignored when nothing
// matches or the ratio is malformed. If the candidates end up empty the whole
// catalog is used, so a non-empty catalog always yields a record.
func SelectRecord(catalog domain.Catalog, tag, ratio string, intn func(int) int) (domain.LinkRecord, error) {
	if len(catalog) == 0 {
		return domain.LinkRecord{}, domain.ErrEmptyCatalog
	}

	candidates := catalog
	if tag != "" {
		candidates = lo.Filter(candidates, func(r domain.LinkRecord, _ int) bool {
			return r.Tag == tag
		})
	}

	if want, ok := domain.ParseRatio(ratio); ok {
		matching := lo.Filter(candidates, func(r domain.LinkRecord, _ int) bool {
			return r.MatchesRatio(want)
		})
		if len(matching) > 0 {
			candidates = matching
		}
	}

	if len(candidates) == 0 {
		candidates = catalog
	}
	return candidates[intn(len(candidates))], nil
}
