package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/clock"
)

// MemoryLimiter is an in-process fixed-window limiter.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   int
	window  time.Duration
	clock   clock.Clocker
}

type bucket struct {
	count int
	reset time.Time
}

// NewMemoryLimiter creates a limiter permitting limit actions per window.
func NewMemoryLimiter(limit int, window time.Duration, clk clock.Clocker) *MemoryLimiter {
	return &MemoryLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		window:  window,
		clock:   clk,
	}
}

// Allow reports whether key may act within the current window.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok || !now.Before(b.reset) {
		l.sweepLocked(now)
		b = &bucket{reset: now.Add(l.window)}
		l.buckets[key] = b
	}

	b.count++

	return b.count <= l.limit, nil
}

// sweepLocked drops buckets whose window already closed. Called with the
// mutex held, piggybacking on window rollovers so no janitor is needed.
func (l *MemoryLimiter) sweepLocked(now time.Time) {
	for key, b := range l.buckets {
		if !now.Before(b.reset) {
			delete(l.buckets, key)
		}
	}
}
