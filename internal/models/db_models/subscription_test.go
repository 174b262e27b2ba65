package db_models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscription_IsActive(t *testing.T) {
	loc := time.FixedZone("PKT", 5*3600)
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, loc)
	end := today

	sub := &Subscription{Status: SubStatusActive, EndDate: &end}
	assert.True(t, sub.IsActive(today), "end date equal to today is still active")
	assert.False(t, sub.IsActive(today.AddDate(0, 0, 1)))

	sub.Status = SubStatusCancelled
	assert.False(t, sub.IsActive(today))

	assert.False(t, (&Subscription{Status: SubStatusActive}).IsActive(today))
}

func TestSubscription_DaysUntilExpiry(t *testing.T) {
	loc := time.FixedZone("PKT", 5*3600)
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, loc)

	assert.Nil(t, (&Subscription{}).DaysUntilExpiry(today))

	end := today.AddDate(0, 0, 10).UTC()
	days := (&Subscription{EndDate: &end}).DaysUntilExpiry(today)
	require.NotNil(t, days)
	assert.Equal(t, 10, *days)

	past := today.AddDate(0, 0, -3)
	days = (&Subscription{EndDate: &past}).DaysUntilExpiry(today)
	require.NotNil(t, days)
	assert.Equal(t, -3, *days)
}

func TestSubscriptionStatus_Transitions(t *testing.T) {
	assert.True(t, SubStatusPending.CanTransitionTo(SubStatusActive))
	assert.True(t, SubStatusActive.CanTransitionTo(SubStatusExpired))
	assert.True(t, SubStatusExpired.CanTransitionTo(SubStatusActive))
	assert.False(t, SubStatusCancelled.CanTransitionTo(SubStatusActive))
	assert.False(t, SubStatusExpired.CanTransitionTo(SubStatusCancelled))
	assert.False(t, SubStatusPending.CanTransitionTo(SubStatusExpired))
}
