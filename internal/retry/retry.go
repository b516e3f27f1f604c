// Package retry implements exponential backoff with jitter for transient
// Slides and Drive API failures. Only whole-call failures are retried; a
// batchUpdate that partially applied reports a non-retryable status and is
// surfaced unchanged.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"time"
)

// ErrExhausted is wrapped into the returned error when every attempt failed
// with a retryable status.
var ErrExhausted = errors.New("retry attempts exhausted")

// Config holds the backoff policy.
type Config struct {
	// MaxRetries is the number of retries after the first attempt (default 5).
	MaxRetries int
	// InitialDelay is the delay before the first retry (default 1s).
	InitialDelay time.Duration
	// MaxDelay caps the delay between retries (default 16s).
	MaxDelay time.Duration
	// Multiplier grows the delay between consecutive retries (default 2.0).
	Multiplier float64
	// JitterFactor randomizes each delay into [d*(1-f), d*(1+f)] (default 0.2).
	JitterFactor float64
	// RetryableStatusCodes lists the HTTP statuses worth retrying.
	// Defaults to 429 and the transient 5xx family.
	RetryableStatusCodes []int
	// Logger receives retry diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
}

// DefaultConfig returns the policy used against the Google APIs: up to five
// retries, 1s doubling to 16s, 20% jitter.
func DefaultConfig() Config {
	return Config{
		MaxRetries:   5,
		InitialDelay: 1 * time.Second,
		MaxDelay:     16 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.2,
		RetryableStatusCodes: []int{
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
		Logger: slog.Default(),
	}
}

// Retryer applies a backoff policy to operations that report an HTTP status.
type Retryer struct {
	cfg       Config
	retryable map[int]bool
}

// New returns a Retryer, replacing out-of-range config values with defaults.
func New(cfg Config) *Retryer {
	def := DefaultConfig()
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = def.MaxRetries
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = def.InitialDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = def.MaxDelay
	}
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = def.Multiplier
	}
	if cfg.JitterFactor <= 0 || cfg.JitterFactor > 1 {
		cfg.JitterFactor = def.JitterFactor
	}
	if len(cfg.RetryableStatusCodes) == 0 {
		cfg.RetryableStatusCodes = def.RetryableStatusCodes
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	retryable := make(map[int]bool, len(cfg.RetryableStatusCodes))
	for _, code := range cfg.RetryableStatusCodes {
		retryable[code] = true
	}
	return &Retryer{cfg: cfg, retryable: retryable}
}

// StatusError is the terminal failure of a retried operation: the last HTTP
// status, how many attempts were made, and the last underlying error. When
// the attempts ran out, Err also wraps ErrExhausted.
type StatusError struct {
	StatusCode int
	Attempts   int
	Err        error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d after %d attempt(s): %v", e.StatusCode, e.Attempts, e.Err)
}

func (e *StatusError) Unwrap() error { return e.Err }

// IsRetryable reports whether the policy retries the given HTTP status.
func (r *Retryer) IsRetryable(statusCode int) bool {
	return r.retryable[statusCode]
}

// Delay returns the jittered backoff delay before retry number attempt
// (1-based). Attempt 0 and below yield no delay.
func (r *Retryer) Delay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	d := float64(r.cfg.InitialDelay)
	for i := 1; i < attempt; i++ {
		d *= r.cfg.Multiplier
	}
	if d > float64(r.cfg.MaxDelay) {
		d = float64(r.cfg.MaxDelay)
	}
	spread := d * r.cfg.JitterFactor
	d += rand.Float64()*2*spread - spread
	if d < float64(time.Millisecond) {
		d = float64(time.Millisecond)
	}
	return time.Duration(d)
}

// Do retries op until it succeeds, fails with a non-retryable status, or the
// attempts run out. op reports the HTTP status of the failed call; the status
// is ignored when err is nil.
func (r *Retryer) Do(ctx context.Context, op func(ctx context.Context) (int, error)) error {
	_, err := DoWithResult(ctx, r, func(ctx context.Context) (struct{}, int, error) {
		status, err := op(ctx)
		return struct{}{}, status, err
	})
	return err
}

// DoWithResult is Do for operations that produce a value. On failure the
// zero (or last partial) result is returned alongside a *StatusError.
func DoWithResult[T any](ctx context.Context, r *Retryer, op func(ctx context.Context) (T, int, error)) (T, error) {
	var (
		result     T
		lastErr    error
		lastStatus int
	)

	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		res, status, err := op(ctx)
		if err == nil {
			if attempt > 0 {
				r.cfg.Logger.Info("call succeeded after retry", slog.Int("attempts", attempt+1))
			}
			return res, nil
		}
		result, lastErr, lastStatus = res, err, status

		if !r.IsRetryable(status) {
			r.cfg.Logger.Debug("not retrying",
				slog.Int("status_code", status),
				slog.String("error", err.Error()),
			)
			return result, &StatusError{StatusCode: status, Attempts: attempt + 1, Err: err}
		}
		if attempt >= r.cfg.MaxRetries {
			break
		}

		delay := r.Delay(attempt + 1)
		r.cfg.Logger.Warn("retrying call",
			slog.Int("attempt", attempt+1),
			slog.Int("max_retries", r.cfg.MaxRetries),
			slog.Int("status_code", status),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()),
		)
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(delay):
		}
	}

	r.cfg.Logger.Error("retry attempts exhausted",
		slog.Int("max_retries", r.cfg.MaxRetries),
		slog.Int("last_status_code", lastStatus),
		slog.String("last_error", lastErr.Error()),
	)
	return result, &StatusError{
		StatusCode: lastStatus,
		Attempts:   r.cfg.MaxRetries + 1,
		Err:        errors.Join(ErrExhausted, lastErr),
	}
}
