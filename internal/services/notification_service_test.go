package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostelhub/internal/models/db_models"
	"hostelhub/pkg/utils"
)

func TestNotificationService_InboxAndMarkRead(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	me, other := uuid.New(), uuid.New()

	require.NoError(t, h.notifications.Notify(ctx, me, db_models.NotifyPlacementApproved, "one", "first", map[string]interface{}{"k": "v"}))
	require.NoError(t, h.notifications.Notify(ctx, me, db_models.NotifyPlacementRejected, "two", "second", nil))
	require.NoError(t, h.notifications.Notify(ctx, other, db_models.NotifyPlacementRejected, "x", "not mine", nil))

	inbox, err := h.notifications.List(ctx, me, false, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), inbox.Unread)
	require.Len(t, inbox.Items, 2)

	target := inbox.Items[0].ID
	require.NoError(t, h.notifications.MarkRead(ctx, me, target))
	// Marking twice is harmless.
	require.NoError(t, h.notifications.MarkRead(ctx, me, target))

	unread, err := h.notifications.List(ctx, me, true, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread.Unread)
	require.Len(t, unread.Items, 1)
	assert.NotEqual(t, target, unread.Items[0].ID)

	t.Run("cannot touch another account's notification", func(t *testing.T) {
		theirs, err := h.notifications.List(ctx, other, false, 1, 10)
		require.NoError(t, err)
		require.Len(t, theirs.Items, 1)

		err = h.notifications.MarkRead(ctx, me, theirs.Items[0].ID)
		assert.ErrorIs(t, err, utils.ErrRecordNotFound)
	})
}
