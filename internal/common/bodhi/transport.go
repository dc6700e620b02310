package bodhi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrMaxRetriesExceeded is returned when all retry attempts have failed
var ErrMaxRetriesExceeded = errors.New("max retries exceeded")

// RetryConfig holds configuration for retry behavior.
type RetryConfig struct {
	// MaxRetries is the number of additional attempts after the first (default: 0)
	MaxRetries int
	// BaseDelay is the initial delay before first retry (default: 1s)
	BaseDelay time.Duration
	// MaxDelay is the maximum delay between retries (default: 4s)
	MaxDelay time.Duration
	// Timeout is the timeout for each individual request (default: 60s)
	Timeout time.Duration
}

// DefaultRetryConfig returns the default configuration: one attempt, no retries.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 0,
		BaseDelay:  1 * time.Second,
		MaxDelay:   4 * time.Second,
		Timeout:    60 * time.Second,
	}
}

// RetryableHTTPClient wraps an HTTP client with optional retries using
// exponential backoff.
type RetryableHTTPClient struct {
	client *http.Client
	config RetryConfig
	// delayFunc allows overriding the delay function for testing
	delayFunc func(time.Duration)
}

// NewRetryableHTTPClient creates a new HTTP client with the given retry configuration.
func NewRetryableHTTPClient(config RetryConfig) *RetryableHTTPClient {
	return &RetryableHTTPClient{
		client: &http.Client{
			Timeout: config.Timeout,
		},
		config:    config,
		delayFunc: time.Sleep,
	}
}

// SetHTTPClient sets a custom underlying HTTP client (useful for testing).
func (c *RetryableHTTPClient) SetHTTPClient(client *http.Client) {
	c.client = client
}

// SetDelayFunc sets a custom delay function (useful for testing).
func (c *RetryableHTTPClient) SetDelayFunc(fn func(time.Duration)) {
	c.delayFunc = fn
}

// Do executes req, retrying network errors, 5xx and 429 responses.
func (c *RetryableHTTPClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt > 0 {
			c.delayFunc(c.calculateDelay(attempt))
		}

		resp, err := c.client.Do(req.Clone(ctx))
		if err != nil {
			lastErr = err
			continue
		}

		if c.shouldRetry(resp.StatusCode) && attempt < c.config.MaxRetries {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: status %d", resp.StatusCode)
			continue
		}

		return resp, nil
	}

	if c.config.MaxRetries == 0 {
		return nil, lastErr
	}
	return nil, fmt.Errorf("%w: %v", ErrMaxRetriesExceeded, lastErr)
}

// calculateDelay returns baseDelay * 2^(attempt-1), capped at MaxDelay.
func (c *RetryableHTTPClient) calculateDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	delay := c.config.BaseDelay * time.Duration(1<<(attempt-1))
	if delay > c.config.MaxDelay {
		delay = c.config.MaxDelay
	}
	return delay
}

// shouldRetry retries on 5xx server errors and 429 (Too Many Requests).
func (c *RetryableHTTPClient) shouldRetry(statusCode int) bool {
	if statusCode >= 500 && statusCode < 600 {
		return true
	}
	return statusCode == http.StatusTooManyRequests
}
