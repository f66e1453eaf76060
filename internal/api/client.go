package api

import (
	"context"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/dmateos/tagsync/internal/logging"
	"github.com/dmateos/tagsync/internal/types"
	"github.com/dmateos/tagsync/internal/utils"
	"github.com/google/uuid"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

// Client wraps the Drive API with retry logic
type Client struct {
	service    *drive.Service
	maxRetries int
	retryDelay time.Duration
	logger     logging.Logger
}

// NewClient creates a new Drive API client
func NewClient(service *drive.Service, maxRetries int, retryDelayMs int, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &Client{
		service:    service,
		maxRetries: maxRetries,
		retryDelay: time.Duration(retryDelayMs) * time.Millisecond,
		logger:     logger,
	}
}

// NewRequestContext creates a new request context with trace ID
func NewRequestContext(profile string, requestType types.RequestType) *types.RequestContext {
	return &types.RequestContext{
		Profile:     profile,
		RequestType: requestType,
		TraceID:     uuid.New().String(),
	}
}

// ExecuteWithRetry executes an API call with retry logic
func ExecuteWithRetry[T any](ctx context.Context, client *Client, reqCtx *types.RequestContext, fn func() (T, error)) (T, error) {
	var result T
	var lastErr error

	logger := client.logger.WithTraceID(reqCtx.TraceID)
	logger.Debug("API operation starting",
		logging.F("requestType", reqCtx.RequestType),
		logging.F("profile", reqCtx.Profile),
	)

	start := time.Now()

	for attempt := 0; attempt <= client.maxRetries; attempt++ {
		result, lastErr = fn()
		if lastErr == nil {
			logger.Debug("API operation completed",
				logging.F("duration_ms", time.Since(start).Milliseconds()),
				logging.F("attempts", attempt+1),
			)
			return result, nil
		}

		if !isRetryable(lastErr) {
			logger.Error("API operation failed (non-retryable)",
				logging.F("error", lastErr.Error()),
				logging.F("attempts", attempt+1),
			)
			return result, classifyError(lastErr)
		}

		if attempt < client.maxRetries {
			delay := calculateBackoff(client.retryDelay, attempt, lastErr)
			logger.Warn("API operation failed (retryable)",
				logging.F("attempt", attempt+1),
				logging.F("delay_ms", delay.Milliseconds()),
				logging.F("error", lastErr.Error()),
			)
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	logger.Error("API operation failed after max retries",
		logging.F("duration_ms", time.Since(start).Milliseconds()),
		logging.F("attempts", client.maxRetries+1),
		logging.F("error", lastErr.Error()),
	)

	return result, classifyError(lastErr)
}

// isRetryable checks if an error is retryable
func isRetryable(err error) bool {
	if apiErr, ok := err.(*googleapi.Error); ok {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return true
		}
	}
	return false
}

// calculateBackoff calculates the retry delay with exponential backoff
func calculateBackoff(baseDelay time.Duration, attempt int, err error) time.Duration {
	// Honor Retry-After when the API provides one
	if apiErr, ok := err.(*googleapi.Error); ok {
		retryAfter := apiErr.Header.Get("Retry-After")
		if retryAfter != "" {
			if seconds, err := strconv.Atoi(retryAfter); err == nil {
				delay := time.Duration(seconds) * time.Second
				if delay > time.Duration(utils.MaxRetryDelayMs)*time.Millisecond {
					return time.Duration(utils.MaxRetryDelayMs) * time.Millisecond
				}
				return delay
			}
		}
	}

	delay := baseDelay * time.Duration(math.Pow(2, float64(attempt)))
	if delay > time.Duration(utils.MaxRetryDelayMs)*time.Millisecond {
		delay = time.Duration(utils.MaxRetryDelayMs) * time.Millisecond
	}

	// Jitter within ±25% of the delay
	jitterRange := delay / 4
	jitter := time.Duration(rand.Int63n(int64(jitterRange*2))) - jitterRange
	delay = delay + jitter

	if delay < 0 {
		delay = baseDelay
	}

	return delay
}

// Service returns the underlying Drive service
func (c *Client) Service() *drive.Service {
	return c.service
}

// Logger returns the client's logger
func (c *Client) Logger() logging.Logger {
	return c.logger
}
