package infra

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"hostelhub/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const migrationDir = "migrations"

// Migrator applies the embedded goose migrations over a lib/pq connection.
type Migrator struct {
	db     *sql.DB
	logger logger.Interface
}

func NewMigrator(dsn string, log logger.Interface) (*Migrator, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open migration connection: %w", err)
	}

	goose.SetBaseFS(migrationFS)
	goose.SetLogger(&gooseLogger{log: log})
	if err := goose.SetDialect("postgres"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return &Migrator{db: db, logger: log.With("component", "migration.goose")}, nil
}

func (m *Migrator) Close() error {
	return m.db.Close()
}

func (m *Migrator) Up(ctx context.Context) error {
	from, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	if err := goose.UpContext(ctx, m.db, migrationDir); err != nil {
		m.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	to, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	m.logger.Infow("migration completed successfully", "from_version", from, "to_version", to)
	return nil
}

func (m *Migrator) Down(ctx context.Context, steps int) error {
	for i := 0; i < steps; i++ {
		if err := goose.DownContext(ctx, m.db, migrationDir); err != nil {
			m.logger.Errorw("down migration failed", "error", err, "step", i+1)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}
	m.logger.Infow("down migration completed successfully", "steps", steps)
	return nil
}

func (m *Migrator) Status(ctx context.Context) error {
	return goose.StatusContext(ctx, m.db, migrationDir)
}

type gooseLogger struct {
	log logger.Interface
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Infow(fmt.Sprintf(format, v...))
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Errorw(fmt.Sprintf(format, v...))
	os.Exit(1)
}
