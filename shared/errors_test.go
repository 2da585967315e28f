package shared

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAPIErrorDefaults(t *testing.T) {
	err := NewAPIError(http.StatusBadGateway, "", "", nil)
	assert.Equal(t, UnknownErrorCode, err.Code)
	assert.Equal(t, "HTTP 502", err.Message)
	assert.Equal(t, "[502:UNKNOWN_ERROR] HTTP 502", err.Error())
}

func TestRetryableStatusBoundaries(t *testing.T) {
	assert.False(t, RetryableStatus(400))
	assert.False(t, RetryableStatus(404))
	assert.False(t, RetryableStatus(499))
	assert.True(t, RetryableStatus(500))
	assert.True(t, RetryableStatus(503))
}

func TestIsRetryableClassification(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(NewAPIError(404, "NOT_FOUND", "", nil)))
	assert.True(t, IsRetryable(NewAPIError(503, "", "", nil)))

	// Transport failures carry no status and are always retryable.
	assert.True(t, IsRetryable(errors.New("connection refused")))

	// Wrapped API errors are still classified by status.
	wrapped := fmt.Errorf("GET /gold/prices: %w", NewAPIError(422, "VALIDATION", "", nil))
	assert.False(t, IsRetryable(wrapped))
}

func TestFetchMetricsSnapshot(t *testing.T) {
	metrics := NewFetchMetrics()
	metrics.RecordFetch("gold_prices", nil)
	metrics.RecordFetch("gold_prices", errors.New("feed down"))

	snapshot := metrics.Snapshot()
	stats := snapshot["gold_prices"]
	assert.Equal(t, int64(2), stats.TotalFetches)
	assert.Equal(t, int64(1), stats.SuccessfulFetches)
	assert.Equal(t, int64(1), stats.FailedFetches)
	assert.Equal(t, "feed down", stats.LastError)
	assert.InDelta(t, 50.0, stats.SuccessRate(), 0.01)
}
