package ocr

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/kupendrav/K-Pdf-s/internal/logger"
)

const (
	// 1.8M tokens/min leaves headroom under the 2M tokens/min account limit
	tokensPerSecond = 30000
	// Burst allows short bursts above the sustained rate
	burstTokens = 60000

	// Estimated tokens for one image plus the extracted text
	estimatedTokensPerImage = 2000

	// Retry configuration
	maxRetries     = 5
	baseRetryDelay = 1 * time.Second
	maxRetryDelay  = 32 * time.Second
)

// newLimiter returns the token bucket shared by all calls of one Client
func newLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Limit(tokensPerSecond), burstTokens)
}

// RateLimitedCall wraps an API call with rate limiting and retry logic.
// It waits for rate limiter approval before making the call, and retries on 429 errors.
func RateLimitedCall[T any](ctx context.Context, limiter *rate.Limiter, estimatedTokens int, log logger.Logger, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	err := limiter.WaitN(ctx, min(estimatedTokens, limiter.Burst()))
	if err != nil {
		return zero, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := retryDelay(attempt)
			log.Info("Retry attempt %d/%d after %v delay", attempt, maxRetries, delay)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}

		result, err := fn(ctx)
		if err == nil {
			if attempt > 0 {
				log.Info("Retry succeeded on attempt %d", attempt)
			}
			return result, nil
		}

		lastErr = err

		if !isRateLimitError(err) {
			return zero, err
		}

		log.Warn("Rate limit error (429) on attempt %d/%d: %v", attempt+1, maxRetries+1, err)
	}

	return zero, fmt.Errorf("max retries (%d) exceeded, last error: %w", maxRetries, lastErr)
}

// retryDelay is the exponential backoff before the given attempt, capped at maxRetryDelay
func retryDelay(attempt int) time.Duration {
	delay := time.Duration(float64(baseRetryDelay) * math.Pow(2, float64(attempt-1)))
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return delay
}

// isRateLimitError checks if an error is a 429 rate limit error from OpenAI
func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	for _, marker := range []string{"429", "rate limit", "rate_limit_exceeded", "Too Many Requests"} {
		if strings.Contains(errStr, marker) {
			return true
		}
	}
	return false
}
