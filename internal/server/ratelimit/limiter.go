// Package ratelimit implements a fixed-window attempt counter keyed by
// client identity. It protects the authentication endpoints against
// brute-force and enumeration abuse.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter tracks attempt timestamps per key within a trailing window.
// It is owned by the application and handed to the HTTP layer via dependency
// injection; all state is local to the instance.
//
// The zero value is not usable, call New.
type Limiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	window   time.Duration
	limit    int

	// now is an indirection for tests.
	now func() time.Time
}

// New creates a Limiter allowing at most limit attempts per key within
// window.
func New(window time.Duration, limit int) *Limiter {
	return &Limiter{
		attempts: make(map[string][]time.Time),
		window:   window,
		limit:    limit,
		now:      time.Now,
	}
}

// Allow reports whether another attempt is permitted for key, and records it
// if so. Rejected attempts are not recorded.
//
// The read-filter-append sequence runs under the lock; concurrent requests
// for the same key cannot slip past the threshold between the read and the
// write.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	valid := filterByTime(l.attempts[key], cutoff)
	if len(valid) >= l.limit {
		l.attempts[key] = valid
		return false
	}

	l.attempts[key] = append(valid, now)
	return true
}

// StartSweep launches a background goroutine that periodically drops keys
// with no attempts left in the window, so idle clients do not accumulate in
// memory. It stops when ctx is cancelled.
func (l *Limiter) StartSweep(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.sweep()
			}
		}
	}()
}

func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for key, times := range l.attempts {
		valid := filterByTime(times, cutoff)
		if len(valid) == 0 {
			delete(l.attempts, key)
		} else {
			l.attempts[key] = valid
		}
	}
}

func filterByTime(times []time.Time, cutoff time.Time) []time.Time {
	var result []time.Time
	for _, t := range times {
		if t.After(cutoff) {
			result = append(result, t)
		}
	}
	return result
}
