package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLKeys_MarkAndExpire(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewTTLKeys(func() time.Time { return now })

	assert.False(t, store.Mark("hostel:ip", time.Minute))
	assert.True(t, store.Mark("hostel:ip", time.Minute))
	assert.True(t, store.Seen("hostel:ip"))
	assert.False(t, store.Seen("other"))

	now = now.Add(time.Minute)
	assert.False(t, store.Seen("hostel:ip"))
	assert.False(t, store.Mark("hostel:ip", time.Minute), "expired key is treated as new")
}

func TestTTLKeys_Purge(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewTTLKeys(func() time.Time { return now })

	store.Mark("a", time.Second)
	store.Mark("b", time.Hour)

	now = now.Add(2 * time.Second)
	assert.Equal(t, 1, store.Purge())
	assert.True(t, store.Seen("b"))
}
