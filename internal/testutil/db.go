// Package testutil builds in-memory databases and fixtures for service and handler tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hostelhub/internal/config"
	"hostelhub/internal/models/db_models"
)

// NewTestDB opens a private in-memory SQLite database with every table migrated.
// A single connection keeps the database alive and serializes transactions.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=0", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(db_models.AllModels()...))
	return db
}

// Config returns settings suitable for tests: no background sweeper and a short dedupe window.
func Config() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 0, Mode: "test", AllowedOrigins: []string{"*"}},
		Auth:   config.AuthConfig{JWTSecret: "test-secret", TokenTTLMinutes: 60},
		Placement: config.PlacementConfig{
			Currency:           "PKR",
			RevealDedupeWindow: time.Hour,
		},
		Subscription: config.SubscriptionConfig{MonthlyFeeMinor: 899900, Timezone: "Asia/Karachi"},
		Seed:         config.SeedConfig{AdminEmail: "admin@hostelhub.local", AdminPassword: "admin12345"},
	}
}
