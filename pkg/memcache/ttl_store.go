package mem

import (
	"sync"
	"time"
)

// TTLStore remembers keys for a bounded time. It backs contact-reveal de-duplication.
type TTLStore interface {
	// Mark records key until ttl elapses. It reports whether the key was already live.
	Mark(key string, ttl time.Duration) bool

	// Seen reports whether key is live without touching it.
	Seen(key string) bool

	// Purge drops expired keys and returns how many were removed.
	Purge() int
}

type entry struct {
	expiresAt time.Time
}

type TTLKeys struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewTTLKeys(now func() time.Time) *TTLKeys {
	if now == nil {
		now = time.Now
	}
	return &TTLKeys{
		data: make(map[string]entry),
		now:  now,
	}
}

func (s *TTLKeys) Mark(key string, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.data[key]; ok && now.Before(e.expiresAt) {
		return true
	}
	s.data[key] = entry{expiresAt: now.Add(ttl)}
	return false
}

func (s *TTLKeys) Seen(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	return ok && s.now().Before(e.expiresAt)
}

func (s *TTLKeys) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for k, e := range s.data {
		if !now.Before(e.expiresAt) {
			delete(s.data, k)
			removed++
		}
	}
	return removed
}
