package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostelhub/internal/models/db_models"
	"hostelhub/internal/testutil"
	"hostelhub/pkg/utils"
)

func countRows[T any](t *testing.T, h *harness) int64 {
	t.Helper()
	var n int64
	require.NoError(t, h.db.Model(new(T)).Count(&n).Error)
	return n
}

func TestAnalyticsService_CountersFollowFeaturedWindow(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	admin := testutil.CreateAccount(t, h.db, "admin")
	owner := testutil.CreateAccount(t, h.db, "owner")
	hostel := testutil.CreateHostel(t, h.db, owner.ID)
	plan := testutil.CreatePlan(t, h.db, "1-day-boost", 1, 50000, true)

	// Before any placement: raw events only.
	require.NoError(t, h.analytics.RecordView(ctx, hostel.ID, nil, "10.0.0.1", "curl"))

	req, err := h.placements.Submit(ctx, owner.ID, submitReq(hostel.ID, plan.ID))
	require.NoError(t, err)
	_, err = h.placements.Review(ctx, req.ID, admin.ID, approve)
	require.NoError(t, err)

	h.clock.Advance(time.Hour)
	viewer := uuid.New()
	require.NoError(t, h.analytics.RecordView(ctx, hostel.ID, &viewer, "10.0.0.2", "firefox"))
	require.NoError(t, h.analytics.RecordView(ctx, hostel.ID, nil, "10.0.0.3", "safari"))

	contact, err := h.analytics.RevealContact(ctx, hostel.ID, nil, "10.0.0.2")
	require.NoError(t, err)
	assert.Equal(t, hostel.ContactPhone, contact.ContactPhone)
	assert.Equal(t, hostel.WhatsappNumber, contact.WhatsappNumber)

	// After the window: counted as raw events, not against the placement.
	h.clock.Set(t0.AddDate(0, 0, 3))
	require.NoError(t, h.analytics.RecordView(ctx, hostel.ID, nil, "10.0.0.4", "edge"))

	history, err := h.placements.ListHistory(ctx, hostel.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int64(2), history[0].ViewsDuringPeriod)
	assert.Equal(t, int64(1), history[0].ContactsRevealedDuringPeriod)

	assert.Equal(t, int64(4), countRows[db_models.HostelView](t, h))
	assert.Equal(t, int64(1), countRows[db_models.ContactReveal](t, h))
}

func TestAnalyticsService_RevealDedupe(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	owner := testutil.CreateAccount(t, h.db, "owner")
	hostel := testutil.CreateHostel(t, h.db, owner.ID)

	for i := 0; i < 3; i++ {
		got, err := h.analytics.RevealContact(ctx, hostel.ID, nil, "192.168.1.10")
		require.NoError(t, err)
		assert.Equal(t, hostel.ContactEmail, got.ContactEmail)
	}
	assert.Equal(t, int64(1), countRows[db_models.ContactReveal](t, h))

	_, err := h.analytics.RevealContact(ctx, hostel.ID, nil, "192.168.1.11")
	require.NoError(t, err)
	assert.Equal(t, int64(2), countRows[db_models.ContactReveal](t, h))

	h.clock.Advance(h.cfg.Placement.RevealDedupeWindow + time.Second)
	_, err = h.analytics.RevealContact(ctx, hostel.ID, nil, "192.168.1.10")
	require.NoError(t, err)
	assert.Equal(t, int64(3), countRows[db_models.ContactReveal](t, h))
}

func TestAnalyticsService_HiddenHostel(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	owner := testutil.CreateAccount(t, h.db, "owner")
	hostel := testutil.CreateHostel(t, h.db, owner.ID)
	require.NoError(t, h.db.Model(hostel).Update("is_active", false).Error)

	err := h.analytics.RecordView(ctx, hostel.ID, nil, "10.0.0.1", "")
	assert.ErrorIs(t, err, utils.ErrRecordNotFound)

	_, err = h.analytics.RevealContact(ctx, uuid.New(), nil, "10.0.0.1")
	assert.ErrorIs(t, err, utils.ErrRecordNotFound)
}
