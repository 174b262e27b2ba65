package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hostelhub/internal/models/db_models"
	"hostelhub/pkg/utils"
)

func CreateAccount(t *testing.T, db *gorm.DB, role string) *db_models.Account {
	t.Helper()
	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	acc := &db_models.Account{
		Name:         role + " user",
		Email:        role + "-" + uuid.NewString()[:8] + "@example.com",
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, db.Create(acc).Error)
	return acc
}

func CreateHostel(t *testing.T, db *gorm.DB, ownerID uuid.UUID) *db_models.Hostel {
	t.Helper()
	h := &db_models.Hostel{
		OwnerID:        ownerID,
		Name:           "Test Hostel",
		Slug:           "test-hostel-" + uuid.NewString()[:8],
		City:           "Lahore",
		Address:        "12 Mall Road",
		ContactPhone:   "+92-300-0000000",
		ContactEmail:   "desk@example.com",
		WhatsappNumber: "+92-300-0000001",
		IsActive:       true,
	}
	require.NoError(t, db.Create(h).Error)
	return h
}

func CreatePlan(t *testing.T, db *gorm.DB, code string, days int, priceMinor int64, active bool) *db_models.PlacementPlan {
	t.Helper()
	p := &db_models.PlacementPlan{
		Code:         code,
		Name:         code,
		DurationDays: days,
		PriceMinor:   priceMinor,
		Currency:     "PKR",
		IsActive:     active,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// Reload fetches the current row for dest's primary key.
func Reload[T any](t *testing.T, db *gorm.DB, id uuid.UUID) *T {
	t.Helper()
	var row T
	require.NoError(t, db.First(&row, "id = ?", id).Error)
	return &row
}
