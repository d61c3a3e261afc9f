package ocr

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kupendrav/K-Pdf-s/internal/logger"
)

func TestRateLimitedCall_Success(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNoOpLogger()

	result, err := RateLimitedCall(ctx, newLimiter(), 100, log, func(ctx context.Context) (string, error) {
		return "success", nil
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result != "success" {
		t.Errorf("Expected 'success', got: %s", result)
	}
}

func TestRateLimitedCall_NonRateLimitError(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNoOpLogger()

	// Test non-rate-limit error (should not retry)
	testErr := errors.New("some other error")
	calls := 0
	_, err := RateLimitedCall(ctx, newLimiter(), 100, log, func(ctx context.Context) (string, error) {
		calls++
		return "", testErr
	})

	if err != testErr {
		t.Errorf("Expected original error, got: %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got: %d", calls)
	}
}

func TestRateLimitedCall_RateLimitRetry(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping retry test in short mode")
	}

	ctx := context.Background()
	log := logger.NewNoOpLogger()

	callCount := 0
	result, err := RateLimitedCall(ctx, newLimiter(), 100, log, func(ctx context.Context) (string, error) {
		callCount++
		if callCount < 3 {
			return "", errors.New("429 Too Many Requests")
		}
		return "success after retry", nil
	})

	if err != nil {
		t.Fatalf("Expected no error after retry, got: %v", err)
	}

	if result != "success after retry" {
		t.Errorf("Expected 'success after retry', got: %s", result)
	}

	if callCount != 3 {
		t.Errorf("Expected 3 calls, got: %d", callCount)
	}
}

func TestRateLimitedCall_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	log := logger.NewNoOpLogger()

	cancel()

	_, err := RateLimitedCall(ctx, newLimiter(), 100, log, func(ctx context.Context) (string, error) {
		t.Error("Function should not be called with cancelled context")
		return "", nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
}

func TestRateLimitedCall_CancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	log := logger.NewNoOpLogger()

	_, err := RateLimitedCall(ctx, newLimiter(), 100, log, func(ctx context.Context) (string, error) {
		return "", errors.New("rate_limit_exceeded")
	})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context.DeadlineExceeded, got: %v", err)
	}
}

func TestRetryDelay(t *testing.T) {
	tests := map[int]time.Duration{
		1: time.Second,
		2: 2 * time.Second,
		5: 16 * time.Second,
		6: 32 * time.Second,
		9: 32 * time.Second,
	}
	for attempt, want := range tests {
		if got := retryDelay(attempt); got != want {
			t.Errorf("retryDelay(%d) = %v, want %v", attempt, got, want)
		}
	}
}

func TestIsRateLimitError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"429 error", errors.New("429 Too Many Requests"), true},
		{"rate limit text", errors.New("rate limit exceeded"), true},
		{"rate_limit_exceeded", errors.New("rate_limit_exceeded"), true},
		{"other error", errors.New("some other error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isRateLimitError(tt.err)
			if result != tt.expected {
				t.Errorf("isRateLimitError(%v) = %v, want %v", tt.err, result, tt.expected)
			}
		})
	}
}
