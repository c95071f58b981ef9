package ratelimit

import (
	"sync"
	"time"
)

const (
	// DefaultLimit is the maximum number of queries admitted within
	// one window.
	DefaultLimit = 30

	// DefaultWindow is the trailing window queries are counted over.
	DefaultWindow = time.Minute
)

// Limiter is a sliding-window admission counter over outbound queries.
// Bursts within the window are capped but not smoothed; this is not a
// token bucket.
//
// A Limiter is safe for concurrent use. It is the only cross-query shared
// mutable state besides the lifecycle flag, so the lock is held for the
// whole check-and-append.
type Limiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	events []time.Time
	now    func() time.Time
}

// New returns a Limiter admitting at most limit queries per window.
// Non-positive arguments fall back to the defaults.
func New(limit int, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Admit reports whether one more query may go out now. On acceptance the
// admission is recorded; a rejection leaves the window untouched.
func (l *Limiter) Admit() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evict(now)

	if len(l.events) >= l.limit {
		return false
	}

	l.events = append(l.events, now)
	return true
}

// Remaining returns how many more queries would currently be admitted.
func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.evict(l.now())
	return l.limit - len(l.events)
}

// evict drops admissions older than the window. Entries are time ordered,
// so everything after the first survivor stays.
func (l *Limiter) evict(now time.Time) {
	cutoff := now.Add(-l.window)

	i := 0
	for i < len(l.events) && !l.events[i].After(cutoff) {
		i++
	}

	if i > 0 {
		l.events = append(l.events[:0], l.events[i:]...)
	}
}
