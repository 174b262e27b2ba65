package scheduler_fx

import (
	"context"

	"go.uber.org/fx"

	"hostelhub/internal/config"
	"hostelhub/internal/scheduler"
	"hostelhub/internal/services"
	"hostelhub/pkg/logger"
	mem "hostelhub/pkg/memcache"
	"hostelhub/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(provideSweepScheduler),
	fx.Invoke(startSweepScheduler),
)

func provideSweepScheduler(
	placements services.PlacementServiceInterface,
	subscriptions services.SubscriptionServiceInterface,
	reveals mem.TTLStore,
	clock utils.Clock,
	cfg *config.Config,
	log logger.Interface,
) *scheduler.SweepScheduler {
	return scheduler.NewSweepScheduler(placements, subscriptions, reveals, clock, cfg.Placement.SweepInterval, log)
}

func startSweepScheduler(lc fx.Lifecycle, s *scheduler.SweepScheduler) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			s.Start(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			s.Stop()
			return nil
		},
	})
}
