package utils

import (
	"sync"
	"time"
)

// Pakistan Standard Time (+05:00); used only for date boundaries of subscriptions.
var pkLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Karachi"); err == nil {
		return loc
	}
	return time.FixedZone("PKT", 5*3600)
}()

// Clock is the single source of "now" for placement windows and subscription dates.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

func NewSystemClock() Clock { return systemClock{} }

// FixedClock is a settable clock for tests and replayed sweeps.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t.UTC()}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t.UTC()
	c.mu.Unlock()
}

func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// BusinessLocation returns the timezone used for date-granularity checks.
func BusinessLocation() *time.Location { return pkLoc }

// SetBusinessLocation overrides the business timezone; call once at startup.
func SetBusinessLocation(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	pkLoc = loc
	return nil
}

// DateOf truncates t to midnight of its calendar day in the business timezone.
func DateOf(t time.Time) time.Time {
	local := t.In(pkLoc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, pkLoc)
}

// WholeDaysBetween returns floor((to-from)/24h); negative when to is before from.
func WholeDaysBetween(from, to time.Time) int {
	d := to.Sub(from)
	days := int(d / (24 * time.Hour))
	if d < 0 && d%(24*time.Hour) != 0 {
		days--
	}
	return days
}

func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
