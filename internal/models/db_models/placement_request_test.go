package db_models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func approvedWindow(start time.Time, days int) *PlacementRequest {
	end := start.AddDate(0, 0, days)
	return &PlacementRequest{
		Status:           PlacementApproved,
		PlanDurationDays: days,
		PriceMinor:       250000,
		FeaturedStartAt:  &start,
		FeaturedEndAt:    &end,
	}
}

func TestPlacementStatus_Transitions(t *testing.T) {
	assert.True(t, PlacementPending.CanTransitionTo(PlacementApproved))
	assert.True(t, PlacementPending.CanTransitionTo(PlacementRejected))
	assert.True(t, PlacementApproved.CanTransitionTo(PlacementExpired))

	assert.False(t, PlacementPending.CanTransitionTo(PlacementExpired))
	assert.False(t, PlacementApproved.CanTransitionTo(PlacementRejected))
	assert.False(t, PlacementRejected.CanTransitionTo(PlacementApproved))
	assert.False(t, PlacementExpired.CanTransitionTo(PlacementApproved))

	assert.True(t, PlacementRejected.Terminal())
	assert.True(t, PlacementExpired.Terminal())
	assert.False(t, PlacementApproved.Terminal())
	assert.False(t, PlacementStatus("paused").Valid())
}

func TestPlacementRequest_IsActiveAt(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	r := approvedWindow(start, 7)

	assert.False(t, r.IsActiveAt(start.Add(-time.Second)))
	assert.True(t, r.IsActiveAt(start))
	assert.True(t, r.IsActiveAt(start.AddDate(0, 0, 7)))
	assert.False(t, r.IsActiveAt(start.AddDate(0, 0, 7).Add(time.Second)))

	r.Status = PlacementExpired
	assert.False(t, r.IsActiveAt(start.Add(time.Hour)))

	pending := &PlacementRequest{Status: PlacementPending}
	assert.False(t, pending.IsActiveAt(start))
}

func TestPlacementRequest_DaysRemaining(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	r := approvedWindow(start, 7)

	t.Run("floors partial days", func(t *testing.T) {
		assert.Equal(t, 7, r.DaysRemaining(start))
		assert.Equal(t, 6, r.DaysRemaining(start.Add(time.Minute)))
		assert.Equal(t, 0, r.DaysRemaining(start.AddDate(0, 0, 7).Add(-time.Hour)))
	})

	t.Run("never negative", func(t *testing.T) {
		for _, d := range []time.Duration{0, time.Hour, 30 * 24 * time.Hour, 10 * 365 * 24 * time.Hour} {
			assert.Equal(t, 0, r.DaysRemaining(start.AddDate(0, 0, 7).Add(d)))
		}
	})

	t.Run("zero unless approved", func(t *testing.T) {
		assert.Equal(t, 0, (&PlacementRequest{Status: PlacementPending}).DaysRemaining(start))

		expired := approvedWindow(start, 7)
		expired.Status = PlacementExpired
		assert.Equal(t, 0, expired.DaysRemaining(start))
	})
}

func TestPlacementRequest_WindowAndAmount(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	r := &PlacementRequest{PlanDurationDays: 7, PriceMinor: 250000}

	start, end := r.WindowFor(now)
	assert.Equal(t, now, start)
	assert.Equal(t, now.Add(7*24*time.Hour), end)
	assert.Equal(t, int64(250000), r.TotalAmount())
}
