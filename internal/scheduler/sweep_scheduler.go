package scheduler

import (
	"context"
	"sync"
	"time"

	"hostelhub/pkg/logger"
	"hostelhub/pkg/utils"
)

type placementSweeper interface {
	Sweep(ctx context.Context, now time.Time) (int, error)
}

type subscriptionExpirer interface {
	ExpireStale(ctx context.Context) (int64, error)
}

type keyPurger interface {
	Purge() int
}

// SweepScheduler periodically runs the placement expiry sweep.
// - Runs once on start so windows that ended while the process was down are cleared
// - Expires stale subscriptions on the same tick
// - Drops expired contact-reveal dedupe keys
type SweepScheduler struct {
	sweeper  placementSweeper
	expirer  subscriptionExpirer
	purger   keyPurger
	clock    utils.Clock
	logger   logger.Interface
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	interval time.Duration
}

func NewSweepScheduler(
	sweeper placementSweeper,
	expirer subscriptionExpirer,
	purger keyPurger,
	clock utils.Clock,
	interval time.Duration,
	log logger.Interface,
) *SweepScheduler {
	return &SweepScheduler{
		sweeper:  sweeper,
		expirer:  expirer,
		purger:   purger,
		clock:    clock,
		logger:   log.Named("sweep_scheduler"),
		stopChan: make(chan struct{}),
		interval: interval,
	}
}

// Start launches the loop in a goroutine. A non-positive interval leaves the scheduler idle.
func (s *SweepScheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Infow("sweep scheduler disabled")
		return
	}
	s.logger.Infow("starting sweep scheduler", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx)
	}()
}

// Stop is safe to call more than once.
func (s *SweepScheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("sweep scheduler stopped")
	})
}

func (s *SweepScheduler) runLoop(ctx context.Context) {
	s.RunOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("sweep scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single tick synchronously.
func (s *SweepScheduler) RunOnce(ctx context.Context) {
	startTime := time.Now()
	now := s.clock.Now()

	transitioned, err := s.sweeper.Sweep(ctx, now)
	if err != nil {
		s.logger.Errorw("placement sweep failed",
			"error", err,
			"transitioned", transitioned,
			"duration", time.Since(startTime),
		)
	} else if transitioned > 0 {
		s.logger.Infow("placement sweep completed",
			"transitioned", transitioned,
			"duration", time.Since(startTime),
		)
	}

	if s.expirer != nil {
		expired, err := s.expirer.ExpireStale(ctx)
		if err != nil {
			s.logger.Errorw("subscription expiry failed", "error", err)
		} else if expired > 0 {
			s.logger.Infow("subscriptions expired", "count", expired)
		}
	}

	if s.purger != nil {
		if n := s.purger.Purge(); n > 0 {
			s.logger.Debugw("purged reveal dedupe keys", "count", n)
		}
	}
}
