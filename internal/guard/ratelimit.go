package guard

import (
	"sync"
	"time"
)

// RateLimiter implements a sliding window rate limiter, keyed by caller IP.
// It throttles the unauthenticated submission endpoints.
type RateLimiter struct {
	mu        sync.Mutex
	windows   map[string][]time.Time
	limit     int
	window    time.Duration
	lastSweep time.Time
}

// NewRateLimiter creates a rate limiter with the given limit per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		windows:   make(map[string][]time.Time),
		limit:     limit,
		window:    window,
		lastSweep: time.Now(),
	}
}

// Allow reports whether the key is within rate limits, recording the hit
// when it is.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	// Drop idle keys once per window so the map stays bounded.
	if now.Sub(rl.lastSweep) >= rl.window {
		for k, entries := range rl.windows {
			if len(entries) == 0 || !entries[len(entries)-1].After(cutoff) {
				delete(rl.windows, k)
			}
		}
		rl.lastSweep = now
	}

	entries := rl.windows[key]
	valid := entries[:0]
	for _, t := range entries {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= rl.limit {
		rl.windows[key] = valid
		return false
	}

	rl.windows[key] = append(valid, now)
	return true
}
