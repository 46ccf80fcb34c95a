// Package ratelimit implements an in-memory sliding-window admission gate
// keyed by caller identity (user id or client IP).
//
// Each key owns a monotonic-time-ordered queue of admission timestamps. On
// every check, entries older than the window are evicted lazily; if the
// remaining count is at or above the configured limit the request is rejected
// without being recorded, otherwise the current timestamp is appended and the
// request admitted.
//
// The limiter is process-local and best-effort: buckets do not survive a
// restart. For horizontally scaled deployments a distributed limiter would be
// required to enforce global limits.
package ratelimit

import (
	"sync"
	"time"
)

// Decision is the outcome of a single admission check.
type Decision struct {
	Allowed bool
	Limit   int
	// Count is the number of admissions currently inside the window,
	// including this one when Allowed is true.
	Count int
}

// bucket holds one identity's admission timestamps. Each bucket carries its
// own mutex so the evict-compare-append sequence for one key never contends
// with checks for other keys.
type bucket struct {
	mu       sync.Mutex
	times    []time.Time
	lastSeen time.Time
}

// Limiter is a sliding-window rate limiter. Safe for concurrent use.
type Limiter struct {
	window time.Duration
	limit  int

	mu       sync.RWMutex
	buckets  map[string]*bucket
	now      func() time.Time
	idleTTL  time.Duration
	lookupsN uint64
}

// Option customizes a Limiter.
type Option func(*Limiter)

// WithClock installs an alternative time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// New constructs a Limiter admitting at most limit requests per key within
// window. A limit <= 0 is coerced to 1; a window <= 0 defaults to one minute.
func New(limit int, window time.Duration, opts ...Option) *Limiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	l := &Limiter{
		window:  window,
		limit:   limit,
		buckets: make(map[string]*bucket),
		now:     time.Now,
		idleTTL: 10 * time.Minute,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Limit returns the configured per-window admission ceiling.
func (l *Limiter) Limit() int { return l.limit }

// Window returns the configured window duration.
func (l *Limiter) Window() time.Duration { return l.window }

// Allow runs one admission check for key. Rejections are deterministic and
// side-effect free: a rejected request is not recorded against the window.
func (l *Limiter) Allow(key string) Decision {
	now := l.now()
	b := l.getBucket(key, now)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastSeen = now

	// Evict timestamps that fell out of the window. The queue is ordered,
	// so only the front needs inspection.
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(b.times) && !b.times[i].After(cutoff) {
		i++
	}
	if i > 0 {
		b.times = append(b.times[:0], b.times[i:]...)
	}

	if len(b.times) >= l.limit {
		return Decision{Allowed: false, Limit: l.limit, Count: len(b.times)}
	}
	b.times = append(b.times, now)
	return Decision{Allowed: true, Limit: l.limit, Count: len(b.times)}
}

// getBucket fetches or creates the bucket for key. Idle buckets are evicted
// opportunistically after a threshold of lookups to bound memory, before the
// requested bucket is touched so even the fetched key can expire.
func (l *Limiter) getBucket(key string, now time.Time) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.lookupsN++
	if l.lookupsN >= 5000 {
		for k, bb := range l.buckets {
			bb.mu.Lock()
			idle := now.Sub(bb.lastSeen) >= l.idleTTL
			bb.mu.Unlock()
			if idle {
				delete(l.buckets, k)
			}
		}
		l.lookupsN = 0
	}

	if b, ok = l.buckets[key]; ok {
		return b
	}
	b = &bucket{lastSeen: now}
	l.buckets[key] = b
	return b
}
