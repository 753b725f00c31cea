// Package ratelimit implements a fixed-window request counter keyed by API key.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

// Result reports the outcome of a rate limit check.
type Result struct {
	Allowed    bool
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration // populated on deny, whole seconds, rounded up
}

type window struct {
	count   int
	resetAt time.Time
}

// Limiter is a fixed-window counter keyed by API key. State lives in
// memory only, so a process restart clears all counters.
type Limiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	entries map[string]*window
	now     func() time.Time
}

// New creates a Limiter allowing max requests per window per key.
func New(max int, windowDur time.Duration) *Limiter {
	return &Limiter{
		max:     max,
		window:  windowDur,
		entries: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow records one request for the key and reports whether it fits in
// the current window. Safe for concurrent use.
func (l *Limiter) Allow(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	e, ok := l.entries[key]
	if !ok || now.After(e.resetAt) {
		e = &window{count: 1, resetAt: now.Add(l.window)}
		l.entries[key] = e
		return Result{Allowed: true, Remaining: l.max - 1, ResetAt: e.resetAt}
	}

	if e.count < l.max {
		e.count++
		return Result{Allowed: true, Remaining: l.max - e.count, ResetAt: e.resetAt}
	}

	retry := time.Duration(math.Ceil(e.resetAt.Sub(now).Seconds())) * time.Second
	if retry <= 0 {
		retry = time.Second
	}

	return Result{Allowed: false, ResetAt: e.resetAt, RetryAfter: retry}
}

// Purge drops expired windows. Called opportunistically so the map does
// not grow without bound under churning keys.
func (l *Limiter) Purge() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, key)
		}
	}
}
