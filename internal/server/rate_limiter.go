package server

import (
	"sync"
	"time"
)

// rateLimiter counts requests per client address in fixed windows. The
// interaction endpoint sits behind it so a misbehaving client cannot
// flood signature verification.
type rateLimiter struct {
	limit   int
	window  time.Duration
	mu      sync.Mutex
	buckets map[string]*rateWindow
}

type rateWindow struct {
	start time.Time
	count int
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*rateWindow),
	}
}

// Allow records one request for key and reports whether it fits the
// current window.
func (r *rateLimiter) Allow(key string) bool {
	if key == "" {
		return false
	}

	now := time.Now().UTC()
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket := r.buckets[key]
	if bucket == nil || now.Sub(bucket.start) > r.window {
		bucket = &rateWindow{start: now}
		r.buckets[key] = bucket
	}

	if bucket.count >= r.limit {
		return false
	}

	bucket.count++
	return true
}
