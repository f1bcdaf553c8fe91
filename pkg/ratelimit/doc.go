// Package ratelimit paces outbound remote calls.
//
// The TokenBucket limiter accrues tokens continuously at the configured
// per-minute rate up to a burst capacity, so a short burst is absorbed while
// the sustained rate stays within budget. Unlimited is a no-op limiter for
// tests and offline tooling.
//
// Usage:
//
//	limiter := ratelimit.NewTokenBucket(60, 10)
//	limiter.Wait() // blocks until a call may proceed
package ratelimit
