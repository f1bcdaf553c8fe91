package retry

import (
	"context"
	stderrors "errors"
	"fmt"
	"math/rand"
	"time"

	"igspyglass/pkg/config"
	"igspyglass/pkg/errors"
	"igspyglass/pkg/logger"
)

// Operation is a unit of work that may be repeated from the top. Retrying
// happens only at this whole-call level; the resolution strategies inside a
// call each run exactly once per attempt.
type Operation func() error

// Config controls retry behaviour.
type Config struct {
	// MaxAttempts caps the total number of attempts, first try included.
	MaxAttempts int
	// Backoff computes the delay before each retry.
	Backoff BackoffStrategy
	// RetryIf decides whether an error is worth another attempt.
	RetryIf func(error) bool
	// Context cancels waiting between attempts.
	Context context.Context
	// Logger records retry activity.
	Logger logger.Logger
}

// DefaultConfig returns retry settings matching the engine defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts: 3,
		Backoff:     DefaultExponentialBackoff(),
		RetryIf:     DefaultRetryIf,
		Context:     context.Background(),
		Logger:      logger.GetLogger(),
	}
}

// FromConfig builds retry settings from the application config.
func FromConfig(cfg *config.RetryConfig, log logger.Logger) *Config {
	return &Config{
		MaxAttempts: cfg.MaxAttempts,
		Backoff: &ExponentialBackoff{
			BaseDelay:    cfg.BaseDelay,
			MaxDelay:     cfg.MaxDelay,
			Multiplier:   2.0,
			JitterFactor: 0.1,
		},
		RetryIf: DefaultRetryIf,
		Context: context.Background(),
		Logger:  log,
	}
}

// DefaultRetryIf retries transient failures and gives up on definitive ones.
func DefaultRetryIf(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *errors.Error
	if stderrors.As(err, &apiErr) {
		return errors.IsRetryable(apiErr.Type)
	}

	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return false
	}

	return true
}

// Do runs op until it succeeds, the predicate declines, or attempts run out.
func Do(op Operation, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}

	var lastErr error
	for attempt := 1; cfg.MaxAttempts <= 0 || attempt <= cfg.MaxAttempts; attempt++ {
		err := op()
		if err == nil {
			if attempt > 1 && cfg.Logger != nil {
				cfg.Logger.DebugWithFields("operation succeeded after retry", map[string]interface{}{
					"attempt": attempt,
				})
			}
			return nil
		}
		lastErr = err

		if cfg.RetryIf != nil && !cfg.RetryIf(err) {
			return err
		}
		if cfg.MaxAttempts > 0 && attempt == cfg.MaxAttempts {
			break
		}

		delay := time.Duration(0)
		if cfg.Backoff != nil {
			delay = cfg.Backoff.Delay(attempt)
		}
		if cfg.Logger != nil {
			cfg.Logger.DebugWithFields("retrying operation", map[string]interface{}{
				"attempt": attempt,
				"delay":   delay.String(),
				"error":   err.Error(),
			})
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("max retry attempts (%d) exceeded: %w", cfg.MaxAttempts, lastErr)
}

// BackoffStrategy computes the wait before the next attempt. attempt is
// 1-based and counts the try that just failed.
type BackoffStrategy interface {
	Delay(attempt int) time.Duration
}

// ExponentialBackoff grows the delay geometrically with optional jitter.
type ExponentialBackoff struct {
	BaseDelay    time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	JitterFactor float64
}

// DefaultExponentialBackoff returns the standard backoff curve.
func DefaultExponentialBackoff() *ExponentialBackoff {
	return &ExponentialBackoff{
		BaseDelay:    2 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.1,
	}
}

// Delay implements BackoffStrategy.
func (eb *ExponentialBackoff) Delay(attempt int) time.Duration {
	delay := float64(eb.BaseDelay)
	for i := 1; i < attempt; i++ {
		delay *= eb.Multiplier
		if time.Duration(delay) >= eb.MaxDelay {
			delay = float64(eb.MaxDelay)
			break
		}
	}

	if eb.JitterFactor > 0 {
		jitter := delay * eb.JitterFactor * (2*rand.Float64() - 1)
		delay += jitter
	}
	if delay < 0 {
		delay = 0
	}
	if time.Duration(delay) > eb.MaxDelay {
		delay = float64(eb.MaxDelay)
	}
	return time.Duration(delay)
}

// ConstantBackoff waits the same interval every time.
type ConstantBackoff struct {
	Interval time.Duration
}

// Delay implements BackoffStrategy.
func (cb *ConstantBackoff) Delay(int) time.Duration {
	return cb.Interval
}
