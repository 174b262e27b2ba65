package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"hostelhub/cmd/fx/account_fx"
	"hostelhub/cmd/fx/core_fx"
	"hostelhub/cmd/fx/db_fx"
	"hostelhub/cmd/fx/hostel_fx"
	"hostelhub/cmd/fx/memcache_fx"
	"hostelhub/cmd/fx/notification_fx"
	"hostelhub/cmd/fx/placement_fx"
	"hostelhub/internal/config"
	"hostelhub/pkg/logger"
	"hostelhub/pkg/utils"
)

// bootstrap loads configuration and initializes process-wide logging and the business timezone.
func bootstrap() (*config.Config, logger.Interface, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if _, err := logger.Init(logger.Options{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		OutputPath: cfg.Logger.OutputPath,
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := utils.SetBusinessLocation(cfg.Subscription.Timezone); err != nil {
		return nil, nil, fmt.Errorf("invalid subscription.timezone %q: %w", cfg.Subscription.Timezone, err)
	}

	return cfg, logger.NewLogger(), nil
}

// domainModules is everything below the HTTP layer.
func domainModules(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.SlogLogger{Logger: logger.Get()}
			l.UseLogLevel(slog.LevelDebug)
			return l
		}),
		core_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		account_fx.Module,
		notification_fx.Module,
		hostel_fx.Module,
		placement_fx.Module,
	)
}

// runJob starts the domain graph, hands the populated targets to fn and shuts the graph down.
func runJob(cfg *config.Config, fn func(ctx context.Context) error, targets ...interface{}) error {
	app := fx.New(
		domainModules(cfg),
		fx.Populate(targets...),
	)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = app.Stop(stopCtx)
	}()

	return fn(context.Background())
}
