package server

import (
	"context"
	"sync"
	"time"

	"link-catalog/internal/biz"
	"link-catalog/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport"
)

var _ transport.Server = (*SweepScheduler)(nil)

type sweeper interface {
	Sweep(ctx context.Context, scheduled bool) (*biz.SweepResult, error)
}

// SweepScheduler runs the maintenance sweep every interval for the lifetime of the app.
type SweepScheduler struct {
	interval time.Duration
	sweeper  sweeper
	log      *log.Helper

	stop     chan struct{}
	stopOnce sync.Once
}

// NewSweepScheduler builds the scheduler from sweep.interval; a zero interval disables it.
func NewSweepScheduler(c *conf.Sweep, uc *biz.SweepUsecase, logger log.Logger) *SweepScheduler {
	var interval time.Duration
	if c != nil {
		interval = c.Interval.AsDuration()
	}
	return newSweepScheduler(interval, uc, logger)
}

func newSweepScheduler(interval time.Duration, s sweeper, logger log.Logger) *SweepScheduler {
	return &SweepScheduler{
		interval: interval,
		sweeper:  s,
		log:      log.NewHelper(log.With(logger, "module", "server/scheduler")),
		stop:     make(chan struct{}),
	}
}

// Start blocks until Stop is called or ctx is done.
func (s *SweepScheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		s.log.Info("scheduled sweep disabled")
		return nil
	}

	s.log.Infof("scheduled sweep every %s", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.stop:
			return nil
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *SweepScheduler) Stop(context.Context) error {
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}

func (s *SweepScheduler) run(ctx context.Context) {
	result, err := s.sweeper.Sweep(ctx, true)
	if err != nil {
		s.log.WithContext(ctx).Errorf("scheduled sweep failed: %v", err)
		return
	}
	s.log.WithContext(ctx).Infow(
		"msg", result.Message(),
		"checked", result.Checked,
		"removed", result.Removed,
		"remaining", result.Remaining,
		"duration", result.Duration.String(),
	)
}
