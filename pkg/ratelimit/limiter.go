package ratelimit

import (
	"sync"
	"time"

	"igspyglass/pkg/config"
)

// Limiter paces outbound remote calls.
type Limiter interface {
	// Allow reports whether a call may proceed right now.
	Allow() bool
	// Wait blocks until a call may proceed.
	Wait()
	// Reset restores the limiter to its initial state.
	Reset()
}

// TokenBucket is a token bucket limiter. Tokens accrue continuously at the
// configured rate up to the burst capacity, so short bursts are absorbed
// without letting the sustained rate creep above the budget.
type TokenBucket struct {
	mu         sync.Mutex
	capacity   float64
	tokens     float64
	perSecond  float64
	lastUpdate time.Time
}

// NewTokenBucket creates a bucket that sustains ratePerMinute calls with
// bursts up to burst.
func NewTokenBucket(ratePerMinute, burst int) *TokenBucket {
	if burst < 1 {
		burst = 1
	}
	return &TokenBucket{
		capacity:   float64(burst),
		tokens:     float64(burst),
		perSecond:  float64(ratePerMinute) / 60.0,
		lastUpdate: time.Now(),
	}
}

// NewFromConfig builds the default limiter from rate limit settings.
func NewFromConfig(cfg *config.RateLimitConfig) Limiter {
	return NewTokenBucket(cfg.RequestsPerMinute, cfg.BurstSize)
}

// Allow consumes a token when one is available.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.advance(time.Now())
	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// Wait blocks until a token can be consumed.
func (tb *TokenBucket) Wait() {
	for {
		tb.mu.Lock()
		tb.advance(time.Now())
		if tb.tokens >= 1 {
			tb.tokens--
			tb.mu.Unlock()
			return
		}
		deficit := 1 - tb.tokens
		wait := time.Duration(deficit / tb.perSecond * float64(time.Second))
		tb.mu.Unlock()

		if wait < 10*time.Millisecond {
			wait = 10 * time.Millisecond
		}
		time.Sleep(wait)
	}
}

// Reset refills the bucket to capacity.
func (tb *TokenBucket) Reset() {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.tokens = tb.capacity
	tb.lastUpdate = time.Now()
}

// advance accrues tokens for the elapsed time. Callers hold the mutex.
func (tb *TokenBucket) advance(now time.Time) {
	elapsed := now.Sub(tb.lastUpdate).Seconds()
	if elapsed <= 0 {
		return
	}
	tb.tokens += elapsed * tb.perSecond
	if tb.tokens > tb.capacity {
		tb.tokens = tb.capacity
	}
	tb.lastUpdate = now
}

// Unlimited is a no-op limiter for tests and offline tooling.
type Unlimited struct{}

func (Unlimited) Allow() bool { return true }
func (Unlimited) Wait()       {}
func (Unlimited) Reset()      {}
