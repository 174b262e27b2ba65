package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostelhub/internal/models/db_models"
	"hostelhub/internal/models/request_models"
	"hostelhub/internal/testutil"
	"hostelhub/pkg/utils"
)

func submitReq(hostelID, planID uuid.UUID) request_models.SubmitPlacementRequest {
	return request_models.SubmitPlacementRequest{
		HostelID:         hostelID.String(),
		PlanID:           planID.String(),
		ContactName:      "Ali Raza",
		ContactPhone:     "+92-300-1234567",
		ContactEmail:     "ali@example.com",
		PaymentMethod:    "bank_transfer",
		PaymentReference: "TRX-889",
	}
}

var (
	approve = request_models.ReviewPlacementRequest{Decision: request_models.DecisionApprove}
	reject  = request_models.ReviewPlacementRequest{Decision: request_models.DecisionReject, AdminNotes: "payment not received"}
)

func TestPlacementService_Submit(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	owner := testutil.CreateAccount(t, h.db, "owner")
	hostel := testutil.CreateHostel(t, h.db, owner.ID)
	plan := testutil.CreatePlan(t, h.db, "1-week-premium", 7, 250000, true)

	t.Run("creates a pending request with a plan snapshot", func(t *testing.T) {
		got, err := h.placements.Submit(ctx, owner.ID, submitReq(hostel.ID, plan.ID))
		require.NoError(t, err)

		assert.Equal(t, string(db_models.PlacementPending), got.Status)
		assert.Equal(t, "1-week-premium", got.PlanName)
		assert.Equal(t, 7, got.PlanDurationDays)
		assert.Equal(t, int64(250000), got.TotalAmount)
		assert.Equal(t, "PKR", got.Currency)
		assert.True(t, got.RequestedAt.Equal(t0))
		assert.False(t, got.IsActive)
		assert.Nil(t, got.FeaturedStartAt)

		// Later price changes do not touch the submitted request.
		require.NoError(t, h.db.Model(plan).Update("price_minor", 999).Error)
		amount, err := h.placements.TotalAmount(ctx, got.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(250000), amount)
	})

	t.Run("second pending request for the same hostel is rejected", func(t *testing.T) {
		_, err := h.placements.Submit(ctx, owner.ID, submitReq(hostel.ID, plan.ID))
		assert.ErrorIs(t, err, utils.ErrDuplicateRequest)
	})

	t.Run("caller must own the hostel", func(t *testing.T) {
		other := testutil.CreateAccount(t, h.db, "owner")
		otherHostel := testutil.CreateHostel(t, h.db, owner.ID)
		_, err := h.placements.Submit(ctx, other.ID, submitReq(otherHostel.ID, plan.ID))
		assert.ErrorIs(t, err, utils.ErrNotHostelOwner)
	})

	t.Run("inactive plan", func(t *testing.T) {
		retired := testutil.CreatePlan(t, h.db, "retired", 3, 1000, false)
		fresh := testutil.CreateHostel(t, h.db, owner.ID)
		_, err := h.placements.Submit(ctx, owner.ID, submitReq(fresh.ID, retired.ID))
		require.Error(t, err)
		assert.True(t, utils.IsValidationError(err))
	})

	t.Run("unknown hostel and plan", func(t *testing.T) {
		_, err := h.placements.Submit(ctx, owner.ID, submitReq(uuid.New(), plan.ID))
		assert.ErrorIs(t, err, utils.ErrRecordNotFound)

		fresh := testutil.CreateHostel(t, h.db, owner.ID)
		_, err = h.placements.Submit(ctx, owner.ID, submitReq(fresh.ID, uuid.New()))
		assert.ErrorIs(t, err, utils.ErrRecordNotFound)
	})

	t.Run("missing required fields", func(t *testing.T) {
		req := submitReq(hostel.ID, plan.ID)
		req.ContactPhone = ""
		_, err := h.placements.Submit(ctx, owner.ID, req)
		require.Error(t, err)
		assert.True(t, utils.IsValidationError(err))
	})
}

func TestPlacementService_ReviewApprove(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	admin := testutil.CreateAccount(t, h.db, "admin")
	owner := testutil.CreateAccount(t, h.db, "owner")
	hostel := testutil.CreateHostel(t, h.db, owner.ID)
	plan := testutil.CreatePlan(t, h.db, "1-week-premium", 7, 250000, true)

	submitted, err := h.placements.Submit(ctx, owner.ID, submitReq(hostel.ID, plan.ID))
	require.NoError(t, err)

	h.clock.Advance(2 * time.Hour)
	approvedAt := h.clock.Now()

	got, err := h.placements.Review(ctx, submitted.ID, admin.ID, approve)
	require.NoError(t, err)

	assert.Equal(t, string(db_models.PlacementApproved), got.Status)
	require.NotNil(t, got.FeaturedStartAt)
	require.NotNil(t, got.FeaturedEndAt)
	assert.True(t, got.FeaturedStartAt.Equal(approvedAt))
	assert.True(t, got.FeaturedEndAt.Equal(approvedAt.AddDate(0, 0, 7)))
	assert.True(t, got.IsActive)
	assert.Equal(t, 7, got.DaysRemaining)
	require.NotNil(t, got.ReviewedBy)
	assert.Equal(t, admin.ID, *got.ReviewedBy)

	t.Run("hostel flag is set", func(t *testing.T) {
		reloaded := testutil.Reload[db_models.Hostel](t, h.db, hostel.ID)
		assert.True(t, reloaded.IsFeatured)

		active, err := h.placements.IsCurrentlyActive(ctx, hostel.ID)
		require.NoError(t, err)
		assert.True(t, active)

		status, err := h.placements.FeaturedStatus(ctx, hostel.ID)
		require.NoError(t, err)
		assert.True(t, status.CachedFlag)
		assert.True(t, status.IsFeatured)
		require.NotNil(t, status.CurrentRequestID)
		assert.Equal(t, submitted.ID, *status.CurrentRequestID)
	})

	t.Run("history row carries the snapshot price", func(t *testing.T) {
		rows, err := h.placements.ListHistory(ctx, hostel.ID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, submitted.ID, rows[0].RequestID)
		assert.Equal(t, int64(250000), rows[0].AmountMinor)
		assert.Equal(t, "1-week-premium", rows[0].PlanName)
		assert.True(t, rows[0].StartAt.Equal(approvedAt))
	})

	t.Run("owner is notified", func(t *testing.T) {
		inbox, err := h.notifications.List(ctx, owner.ID, true, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), inbox.Unread)
		require.Len(t, inbox.Items, 1)
		assert.Equal(t, db_models.NotifyPlacementApproved, inbox.Items[0].Kind)
	})

	t.Run("reviewing again fails", func(t *testing.T) {
		_, err := h.placements.Review(ctx, submitted.ID, admin.ID, reject)
		assert.ErrorIs(t, err, utils.ErrAlreadyReviewed)
	})

	t.Run("owner can submit again once nothing is pending", func(t *testing.T) {
		_, err := h.placements.Submit(ctx, owner.ID, submitReq(hostel.ID, plan.ID))
		assert.NoError(t, err)
	})
}

func TestPlacementService_ReviewReject(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	admin := testutil.CreateAccount(t, h.db, "admin")
	owner := testutil.CreateAccount(t, h.db, "owner")
	hostel := testutil.CreateHostel(t, h.db, owner.ID)
	plan := testutil.CreatePlan(t, h.db, "1-day-boost", 1, 50000, true)

	submitted, err := h.placements.Submit(ctx, owner.ID, submitReq(hostel.ID, plan.ID))
	require.NoError(t, err)

	got, err := h.placements.Review(ctx, submitted.ID, admin.ID, reject)
	require.NoError(t, err)
	assert.Equal(t, string(db_models.PlacementRejected), got.Status)
	assert.Equal(t, "payment not received", got.AdminNotes)
	assert.Nil(t, got.FeaturedStartAt)
	assert.Nil(t, got.FeaturedEndAt)

	reloaded := testutil.Reload[db_models.Hostel](t, h.db, hostel.ID)
	assert.False(t, reloaded.IsFeatured)

	rows, err := h.placements.ListHistory(ctx, hostel.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	inbox, err := h.notifications.List(ctx, owner.ID, false, 1, 10)
	require.NoError(t, err)
	require.Len(t, inbox.Items, 1)
	assert.Equal(t, db_models.NotifyPlacementRejected, inbox.Items[0].Kind)
	assert.Contains(t, inbox.Items[0].Message, "payment not received")

	t.Run("unknown request", func(t *testing.T) {
		_, err := h.placements.Review(ctx, uuid.New(), admin.ID, approve)
		assert.ErrorIs(t, err, utils.ErrRecordNotFound)
	})

	t.Run("invalid decision", func(t *testing.T) {
		_, err := h.placements.Review(ctx, submitted.ID, admin.ID, request_models.ReviewPlacementRequest{Decision: "maybe"})
		assert.True(t, utils.IsValidationError(err))
	})
}

func TestPlacementService_ConcurrentApprove(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	owner := testutil.CreateAccount(t, h.db, "owner")
	hostel := testutil.CreateHostel(t, h.db, owner.ID)
	plan := testutil.CreatePlan(t, h.db, "1-week-premium", 7, 250000, true)

	submitted, err := h.placements.Submit(ctx, owner.ID, submitReq(hostel.ID, plan.ID))
	require.NoError(t, err)

	const reviewers = 4
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
		errs []error
	)
	for i := 0; i < reviewers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.placements.Review(ctx, submitted.ID, uuid.New(), approve)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
				return
			}
			errs = append(errs, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	require.Len(t, errs, reviewers-1)
	for _, err := range errs {
		assert.True(t, errors.Is(err, utils.ErrAlreadyReviewed), err)
	}

	rows, err := h.placements.ListHistory(ctx, hostel.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestPlacementService_Sweep(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	admin := testutil.CreateAccount(t, h.db, "admin")
	owner := testutil.CreateAccount(t, h.db, "owner")
	hostel := testutil.CreateHostel(t, h.db, owner.ID)
	boost := testutil.CreatePlan(t, h.db, "1-day-boost", 1, 50000, true)

	req, err := h.placements.Submit(ctx, owner.ID, submitReq(hostel.ID, boost.ID))
	require.NoError(t, err)
	_, err = h.placements.Review(ctx, req.ID, admin.ID, approve)
	require.NoError(t, err)

	t.Run("nothing to do while the window is open", func(t *testing.T) {
		n, err := h.placements.Sweep(ctx, t0.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("expires the request and clears the flag", func(t *testing.T) {
		h.clock.Set(t0.AddDate(0, 0, 2))
		n, err := h.placements.Sweep(ctx, h.clock.Now())
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		got, err := h.placements.GetRequest(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, string(db_models.PlacementExpired), got.Status)
		assert.False(t, got.IsActive)
		assert.Zero(t, got.DaysRemaining)

		reloaded := testutil.Reload[db_models.Hostel](t, h.db, hostel.ID)
		assert.False(t, reloaded.IsFeatured)
	})

	t.Run("is idempotent", func(t *testing.T) {
		n, err := h.placements.Sweep(ctx, h.clock.Now())
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestPlacementService_SweepKeepsFlagForOverlappingWindow(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	admin := testutil.CreateAccount(t, h.db, "admin")
	owner := testutil.CreateAccount(t, h.db, "owner")
	hostel := testutil.CreateHostel(t, h.db, owner.ID)
	boost := testutil.CreatePlan(t, h.db, "1-day-boost", 1, 50000, true)
	week := testutil.CreatePlan(t, h.db, "1-week-premium", 7, 250000, true)

	short, err := h.placements.Submit(ctx, owner.ID, submitReq(hostel.ID, boost.ID))
	require.NoError(t, err)
	_, err = h.placements.Review(ctx, short.ID, admin.ID, approve)
	require.NoError(t, err)

	h.clock.Advance(time.Hour)
	long, err := h.placements.Submit(ctx, owner.ID, submitReq(hostel.ID, week.ID))
	require.NoError(t, err)
	_, err = h.placements.Review(ctx, long.ID, admin.ID, approve)
	require.NoError(t, err)

	h.clock.Set(t0.AddDate(0, 0, 2))
	n, err := h.placements.Sweep(ctx, h.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	reloaded := testutil.Reload[db_models.Hostel](t, h.db, hostel.ID)
	assert.True(t, reloaded.IsFeatured)

	current, err := h.placements.CurrentRequest(ctx, hostel.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, long.ID, current.ID)

	history, err := h.placements.ListOwnerHistory(ctx, owner.ID, hostel.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestPlacementService_OwnerQueries(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	owner := testutil.CreateAccount(t, h.db, "owner")
	stranger := testutil.CreateAccount(t, h.db, "owner")
	hostel := testutil.CreateHostel(t, h.db, owner.ID)
	plan := testutil.CreatePlan(t, h.db, "1-week-premium", 7, 250000, true)

	submitted, err := h.placements.Submit(ctx, owner.ID, submitReq(hostel.ID, plan.ID))
	require.NoError(t, err)

	page, err := h.placements.ListOwnerRequests(ctx, owner.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	_, err = h.placements.GetOwnerRequest(ctx, stranger.ID, submitted.ID)
	assert.ErrorIs(t, err, utils.ErrNotHostelOwner)

	_, err = h.placements.ListOwnerHistory(ctx, stranger.ID, hostel.ID)
	assert.ErrorIs(t, err, utils.ErrNotHostelOwner)

	pending, err := h.placements.ListRequests(ctx, "pending", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending.Total)

	_, err = h.placements.ListRequests(ctx, "paused", 1, 10)
	assert.True(t, utils.IsValidationError(err))

	days, err := h.placements.DaysRemaining(ctx, submitted.ID)
	require.NoError(t, err)
	assert.Zero(t, days)

	current, err := h.placements.CurrentRequest(ctx, hostel.ID)
	require.NoError(t, err)
	assert.Nil(t, current)
}
