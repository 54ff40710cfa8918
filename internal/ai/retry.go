package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// RetryConfig controls retry and throttling around a Completer.
type RetryConfig struct {
	MaxRetries         int
	InitialBackoff     time.Duration
	MaxBackoff         time.Duration
	BackoffMultiplier  float64
	Timeout            time.Duration // per attempt
	MaxConcurrentCalls int64
	RequestsPerSecond  float64 // 0 disables the rate limiter
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:         3,
		InitialBackoff:     1 * time.Second,
		MaxBackoff:         30 * time.Second,
		BackoffMultiplier:  2.0,
		Timeout:            60 * time.Second,
		MaxConcurrentCalls: 3,
	}
}

// RetryingCompleter retries transient failures of an inner Completer with
// exponential backoff, bounds concurrent calls and optionally rate limits.
type RetryingCompleter struct {
	inner   Completer
	cfg     RetryConfig
	sem     *semaphore.Weighted
	limiter *rate.Limiter
	logger  *slog.Logger
}

func NewRetryingCompleter(inner Completer, cfg RetryConfig, logger *slog.Logger) *RetryingCompleter {
	if cfg.MaxConcurrentCalls <= 0 {
		cfg.MaxConcurrentCalls = 1
	}
	if cfg.BackoffMultiplier < 1 {
		cfg.BackoffMultiplier = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	r := &RetryingCompleter{
		inner:  inner,
		cfg:    cfg,
		sem:    semaphore.NewWeighted(cfg.MaxConcurrentCalls),
		logger: logger,
	}
	if cfg.RequestsPerSecond > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return r
}

func (r *RetryingCompleter) Model() string { return r.inner.Model() }

func (r *RetryingCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("acquire completion slot: %w", err)
	}
	defer r.sem.Release(1)

	var lastErr error
	backoff := r.cfg.InitialBackoff

	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			r.logger.Warn("retrying completion",
				"model", r.inner.Model(), "attempt", attempt+1, "backoff", backoff, "error", lastErr)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			backoff = time.Duration(float64(backoff) * r.cfg.BackoffMultiplier)
			if r.cfg.MaxBackoff > 0 && backoff > r.cfg.MaxBackoff {
				backoff = r.cfg.MaxBackoff
			}
		}

		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return "", err
			}
		}

		text, err := r.attempt(ctx, req)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !IsRetriable(err) {
			return "", err
		}
	}

	return "", fmt.Errorf("completion failed after %d attempts: %w", r.cfg.MaxRetries+1, lastErr)
}

func (r *RetryingCompleter) attempt(ctx context.Context, req CompletionRequest) (string, error) {
	if r.cfg.Timeout <= 0 {
		return r.inner.Complete(ctx, req)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()
	return r.inner.Complete(attemptCtx, req)
}
