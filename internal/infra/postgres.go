package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hostelhub/internal/config"
	"hostelhub/pkg/logger"
)

func InitPostgresql(cfg config.DatabaseConfig, log logger.Interface) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.LogQueries {
		level = gormlogger.Info
	}

	gormLog := gormlogger.New(&slogWriter{log: log.Named("gorm")}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})

	connectionPool, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := connectionPool.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Infow("PostgreSQL connection established")
	return connectionPool, nil
}

func ClosePostgresql(db *gorm.DB, log logger.Interface) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Errorw("error getting database instance", "error", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Errorw("error closing database connection", "error", err)
	} else {
		log.Infow("PostgreSQL database connection closed successfully")
	}
}

// slogWriter adapts gorm's Printf-style logger to the structured logger.
type slogWriter struct {
	log logger.Interface
}

func (w *slogWriter) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "error"):
		w.log.Errorw("database error", "details", msg)
	case strings.Contains(lower, "slow sql"):
		w.log.Warnw("slow query", "details", msg)
	default:
		w.log.Debugw("database query", "details", msg)
	}
}
