package ratelimit

import (
	"sync"
	"time"
)

type submitBucket struct {
	count         int
	windowStart   time.Time
	cooldownUntil time.Time
}

// SubmitRateLimiter throttles content submission per user. Up to maxPerWindow
// submissions pass per window; the next one starts a cooldown during which
// everything is rejected.
//
// One instance is keyed by a scope as well as the user, so reply and chat
// budgets are independent:
//
//	limiter.Allow("comment", userID)
//	limiter.Allow("chat", userID)
type SubmitRateLimiter struct {
	mu           sync.RWMutex
	buckets      map[string]*submitBucket
	maxPerWindow int
	window       time.Duration
	cooldown     time.Duration
	now          func() time.Time
	stopCleanup  chan struct{}
	closeOnce    sync.Once
}

// NewSubmitRateLimiter starts a limiter and its sweep goroutine.
func NewSubmitRateLimiter(maxPerWindow int, window, cooldown time.Duration) *SubmitRateLimiter {
	rl := &SubmitRateLimiter{
		buckets:      make(map[string]*submitBucket),
		maxPerWindow: maxPerWindow,
		window:       window,
		cooldown:     cooldown,
		now:          time.Now,
		stopCleanup:  make(chan struct{}),
	}
	go sweep(30*time.Second, rl.stopCleanup, rl.cleanup)
	return rl
}

func submitKey(scope, userID string) string {
	return scope + ":" + userID
}

// Allow records a submission and reports whether it may proceed.
func (rl *SubmitRateLimiter) Allow(scope, userID string) bool {
	now := rl.now()
	key := submitKey(scope, userID)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[key]
	if !exists {
		rl.buckets[key] = &submitBucket{count: 1, windowStart: now}
		return true
	}

	if !b.cooldownUntil.IsZero() {
		if now.Before(b.cooldownUntil) {
			return false
		}
		b.count = 1
		b.windowStart = now
		b.cooldownUntil = time.Time{}
		return true
	}

	if now.Sub(b.windowStart) > rl.window {
		b.count = 1
		b.windowStart = now
		return true
	}

	b.count++
	if b.count > rl.maxPerWindow {
		b.cooldownUntil = now.Add(rl.cooldown)
		return false
	}
	return true
}

// Refund takes back one submission recorded by Allow, for a request that
// turned out to repeat an earlier one. A running cooldown is not lifted.
func (rl *SubmitRateLimiter) Refund(scope, userID string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[submitKey(scope, userID)]
	if !exists || !b.cooldownUntil.IsZero() || b.count == 0 {
		return
	}
	b.count--
}

// CooldownSeconds is the Retry-After value for a throttled user, rounded
// up. Zero when not in cooldown.
func (rl *SubmitRateLimiter) CooldownSeconds(scope, userID string) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	b, exists := rl.buckets[submitKey(scope, userID)]
	if !exists || b.cooldownUntil.IsZero() {
		return 0
	}

	remaining := b.cooldownUntil.Sub(rl.now())
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1
}

// Close stops the sweep goroutine.
func (rl *SubmitRateLimiter) Close() {
	rl.closeOnce.Do(func() { close(rl.stopCleanup) })
}

// cleanup keeps buckets still in their window or cooldown.
func (rl *SubmitRateLimiter) cleanup() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, b := range rl.buckets {
		windowExpired := now.Sub(b.windowStart) > rl.window
		cooldownExpired := b.cooldownUntil.IsZero() || now.After(b.cooldownUntil)

		if windowExpired && cooldownExpired {
			delete(rl.buckets, key)
		}
	}
}
