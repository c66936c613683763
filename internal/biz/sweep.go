package biz

import (
	"context"
	"fmt"
	"time"

	"link-catalog/internal/conf"
	"link-catalog/internal/domain"
	"link-catalog/internal/domain/event"

	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/sync/errgroup"
)

// SweepResult reports the outcome of a liveness sweep.
type SweepResult struct {
	Checked   int
	Removed   int
	Remaining int
	Duration  time.Duration
}

func (r *SweepResult) Message() string {
	return fmt.Sprintf("Maintenance finished. Total links removed: %d. Remaining: %d.", r.Removed, r.Remaining)
}

// SweepUsecase removes unreachable links from the catalog.
type SweepUsecase struct {
	catalog     domain.CatalogRepository
	prober      domain.Prober
	publisher   domain.EventPublisher
	concurrency int
	log         *log.Helper
}

func NewSweepUsecase(
	c *conf.Sweep,
	catalog domain.CatalogRepository,
	prober domain.Prober,
	publisher domain.EventPublisher,
	logger log.Logger,
) *SweepUsecase {
	uc := &SweepUsecase{
		catalog:   catalog,
		prober:    prober,
		publisher: publisher,
		log:       log.NewHelper(log.With(logger, "module", "biz/sweep")),
	}
	if c != nil {
		uc.concurrency = c.Concurrency
	}
	return uc
}

// Sweep probes every record and saves the reachable subset in original order.
// Probing ignores cancellation of ctx: once started, every probe runs to its
// own timeout. scheduled only marks the published event.
func (uc *SweepUsecase) Sweep(ctx context.Context, scheduled bool) (*SweepResult, error) {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	catalog, err := uc.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}

	alive := SweepCatalog(ctx, catalog, uc.prober, uc.concurrency)
	if err := uc.catalog.Save(ctx, alive); err != nil {
		return nil, err
	}

	result := &SweepResult{
		Checked:   len(catalog),
		Removed:   len(catalog) - len(alive),
		Remaining: len(alive),
		Duration:  time.Since(start),
	}
	uc.log.WithContext(ctx).Infof("sweep finished: checked=%d removed=%d remaining=%d duration=%s scheduled=%t",
		result.Checked, result.Removed, result.Remaining, result.Duration, scheduled)

	e := event.NewCatalogSwept(result.Checked, result.Removed, result.Remaining, result.Duration, scheduled)
	if err := uc.publisher.Publish(ctx, e); err != nil {
		uc.log.WithContext(ctx).Warnf("failed to publish %s: %v", e.EventName(), err)
	}
	return result, nil
}

// SweepCatalog probes all records concurrently and returns the reachable ones
// in catalog order. concurrency <= 0 starts every probe at once.
func SweepCatalog(ctx context.Context, catalog domain.Catalog, prober domain.Prober, concurrency int) domain.Catalog {
	alive := make([]bool, len(catalog))

	var g errgroup.Group
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, record := range catalog {
		g.Go(func() error {
			alive[i] = prober.Probe(ctx, record.URL)
			return nil
		})
	}
	_ = g.Wait()

	kept := make(domain.Catalog, 0, len(catalog))
	for i, record := range catalog {
		if alive[i] {
			kept = append(kept, record)
		}
	}
	return kept
}
