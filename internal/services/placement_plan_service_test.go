package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostelhub/internal/models/request_models"
	"hostelhub/internal/testutil"
	"hostelhub/pkg/utils"
)

func TestPlacementPlanService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	off := false
	created, err := h.plans.CreatePlan(ctx, request_models.CreatePlanRequest{
		Code: " 3-Day-Spotlight ", Name: "3 Day Spotlight", DurationDays: 3, PriceMinor: 120000,
	})
	require.NoError(t, err)
	assert.Equal(t, "3-day-spotlight", created.Code)
	assert.Equal(t, "PKR", created.Currency)
	assert.True(t, created.IsActive)

	_, err = h.plans.CreatePlan(ctx, request_models.CreatePlanRequest{
		Code: "hidden", Name: "Hidden", DurationDays: 10, PriceMinor: 1, Currency: "usd", IsActive: &off,
	})
	require.NoError(t, err)

	t.Run("duplicate code", func(t *testing.T) {
		_, err := h.plans.CreatePlan(ctx, request_models.CreatePlanRequest{
			Code: "3-day-spotlight", Name: "Another", DurationDays: 3, PriceMinor: 1,
		})
		assert.True(t, utils.IsValidationError(err))
	})

	t.Run("zero duration", func(t *testing.T) {
		_, err := h.plans.CreatePlan(ctx, request_models.CreatePlanRequest{Code: "x", Name: "X", DurationDays: 0})
		assert.True(t, utils.IsValidationError(err))
	})

	active, err := h.plans.ListPlans(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, created.ID, active[0].ID)

	all, err := h.plans.ListPlans(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPlacementPlanService_ReferencedPlansAreFrozen(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	owner := testutil.CreateAccount(t, h.db, "owner")
	hostel := testutil.CreateHostel(t, h.db, owner.ID)
	used := testutil.CreatePlan(t, h.db, "1-week-premium", 7, 250000, true)
	unused := testutil.CreatePlan(t, h.db, "1-day-boost", 1, 50000, true)

	_, err := h.placements.Submit(ctx, owner.ID, submitReq(hostel.ID, used.ID))
	require.NoError(t, err)

	price := int64(1)
	_, err = h.plans.UpdatePlan(ctx, used.ID, request_models.UpdatePlanRequest{PriceMinor: &price})
	assert.ErrorIs(t, err, utils.ErrPlanInUse)
	assert.ErrorIs(t, h.plans.DeletePlan(ctx, used.ID), utils.ErrPlanInUse)

	t.Run("deactivation is still allowed", func(t *testing.T) {
		got, err := h.plans.SetPlanActive(ctx, used.ID, false)
		require.NoError(t, err)
		assert.False(t, got.IsActive)

		reloaded, err := h.plans.GetPlanInfoById(ctx, used.ID)
		require.NoError(t, err)
		assert.False(t, reloaded.IsActive)
	})

	t.Run("unreferenced plans can change", func(t *testing.T) {
		name := "Daily Boost"
		got, err := h.plans.UpdatePlan(ctx, unused.ID, request_models.UpdatePlanRequest{Name: &name, PriceMinor: &price})
		require.NoError(t, err)
		assert.Equal(t, "Daily Boost", got.Name)
		assert.Equal(t, int64(1), got.PriceMinor)

		require.NoError(t, h.plans.DeletePlan(ctx, unused.ID))
		_, err = h.plans.GetPlanInfoById(ctx, unused.ID)
		assert.ErrorIs(t, err, utils.ErrRecordNotFound)
	})

	t.Run("unknown plan", func(t *testing.T) {
		_, err := h.plans.SetPlanActive(ctx, uuid.New(), true)
		assert.ErrorIs(t, err, utils.ErrRecordNotFound)
	})
}
