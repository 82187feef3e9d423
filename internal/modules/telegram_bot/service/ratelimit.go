package service

import (
	"sync"
	"time"
)

// rateLimiter — one message per window per user.
type rateLimiter struct {
	mu     sync.Mutex
	last   map[int64]time.Time
	window time.Duration
	now    func() time.Time
}

func newRateLimiter(window time.Duration) *rateLimiter {
	return &rateLimiter{
		last:   make(map[int64]time.Time),
		window: window,
		now:    time.Now,
	}
}

func (r *rateLimiter) Allow(userID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if prev, ok := r.last[userID]; ok && now.Sub(prev) < r.window {
		return false
	}
	r.last[userID] = now
	return true
}
