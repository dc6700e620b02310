package bodhi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRetryConfigDoesNotRetry(t *testing.T) {
	cfg := DefaultRetryConfig()
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.BaseDelay)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
}

func TestCalculateDelay(t *testing.T) {
	c := NewRetryableHTTPClient(RetryConfig{MaxRetries: 5, BaseDelay: time.Second, MaxDelay: 4 * time.Second})

	assert.Equal(t, time.Duration(0), c.calculateDelay(0))
	assert.Equal(t, 1*time.Second, c.calculateDelay(1))
	assert.Equal(t, 2*time.Second, c.calculateDelay(2))
	assert.Equal(t, 4*time.Second, c.calculateDelay(3))
	assert.Equal(t, 4*time.Second, c.calculateDelay(4))
}

func TestNoRetryReturnsServerErrorResponse(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewRetryableHTTPClient(DefaultRetryConfig())
	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := c.Do(context.Background(), req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRetriesServerErrorsWithBackoff(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var delays []time.Duration
	c := NewRetryableHTTPClient(RetryConfig{MaxRetries: 3, BaseDelay: time.Second, MaxDelay: 4 * time.Second})
	c.SetDelayFunc(func(d time.Duration) { delays = append(delays, d) })

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := c.Do(context.Background(), req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)
}

func TestRetriesExhaustedOnNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := NewRetryableHTTPClient(RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond})
	c.SetDelayFunc(func(time.Duration) {})

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)

	_, err = c.Do(context.Background(), req)
	assert.ErrorIs(t, err, ErrMaxRetriesExceeded)
}

func TestCancelledContextStopsBeforeRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewRetryableHTTPClient(DefaultRetryConfig())
	req, err := http.NewRequest(http.MethodGet, "http://127.0.0.1:1", nil)
	require.NoError(t, err)

	_, err = c.Do(ctx, req)
	assert.ErrorIs(t, err, context.Canceled)
}
