package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"hostelhub/internal/services"
	"hostelhub/pkg/utils"
)

var (
	sweepAt  string
	seedDemo bool
)

func newSweepCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Expire featured placements whose window has ended",
		Long:  `Run one expiry sweep and exit. Safe to run from cron at any frequency; repeated runs are no-ops.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}

			var (
				placements services.PlacementServiceInterface
				clock      utils.Clock
			)
			return runJob(cfg, func(ctx context.Context) error {
				at := clock.Now()
				if sweepAt != "" {
					parsed, err := time.Parse(time.RFC3339, sweepAt)
					if err != nil {
						return fmt.Errorf("--at must be RFC3339: %w", err)
					}
					at = parsed.UTC()
				}

				n, err := placements.Sweep(ctx, at)
				log.Infow("sweep finished", "at", at, "transitioned", n)
				return err
			}, &placements, &clock)
		},
	}
	cmd.Flags().StringVar(&sweepAt, "at", "", "Sweep as of this RFC3339 instant instead of now")
	return cmd
}

func newExpireSubscriptionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "expire-subscriptions",
		Short: "Mark active subscriptions past their end date as expired",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}

			var subscriptions services.SubscriptionServiceInterface
			return runJob(cfg, func(ctx context.Context) error {
				n, err := subscriptions.ExpireStale(ctx)
				log.Infow("subscription expiry finished", "expired", n)
				return err
			}, &subscriptions)
		},
	}
}

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the default plan catalog and admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := bootstrap()
			if err != nil {
				return err
			}

			var seeder *services.SeedService
			return runJob(cfg, func(ctx context.Context) error {
				_, err := seeder.Run(ctx, seedDemo)
				return err
			}, &seeder)
		},
	}
	cmd.Flags().BoolVar(&seedDemo, "demo", false, "Also create a demo owner and hostel")
	return cmd
}
