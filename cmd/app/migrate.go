package main

import (
	"context"

	"github.com/spf13/cobra"

	"hostelhub/internal/infra"
)

var migrateSteps int

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply, roll back or inspect the embedded SQL migrations.`,
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE: withMigrator(func(ctx context.Context, m *infra.Migrator) error {
			return m.Down(ctx, migrateSteps)
		}),
	}
	down.Flags().IntVarP(&migrateSteps, "steps", "n", 1, "Number of migrations to rollback")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Run all pending migrations",
			RunE: withMigrator(func(ctx context.Context, m *infra.Migrator) error {
				return m.Up(ctx)
			}),
		},
		down,
		&cobra.Command{
			Use:   "status",
			Short: "Show migration status",
			RunE: withMigrator(func(ctx context.Context, m *infra.Migrator) error {
				return m.Status(ctx)
			}),
		},
	)

	return cmd
}

func withMigrator(fn func(ctx context.Context, m *infra.Migrator) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}

		m, err := infra.NewMigrator(cfg.Database.DSN, log)
		if err != nil {
			return err
		}
		defer m.Close()

		if err := fn(cmd.Context(), m); err != nil {
			log.Errorw("migration failed", "error", err)
			return err
		}
		return nil
	}
}
