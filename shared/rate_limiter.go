package shared

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// PollRateLimiter enforces a minimum spacing between upstream API requests
// so the refresh loop stays polite toward the pricing service. A zero
// spacing disables it.
type PollRateLimiter struct {
	minimumSpacing  time.Duration
	lastRequestTime time.Time
	mutex           sync.Mutex
	requestCount    int64
}

// NewPollRateLimiter creates a rate limiter with the given minimum spacing.
func NewPollRateLimiter(minimumSpacing time.Duration) *PollRateLimiter {
	return &PollRateLimiter{
		minimumSpacing: minimumSpacing,
	}
}

// Wait blocks until the minimum spacing since the previous request has
// elapsed, then records the new request.
func (limiter *PollRateLimiter) Wait() {
	limiter.mutex.Lock()
	defer limiter.mutex.Unlock()

	if limiter.minimumSpacing > 0 && !limiter.lastRequestTime.IsZero() {
		elapsed := time.Since(limiter.lastRequestTime)
		if elapsed < limiter.minimumSpacing {
			remaining := limiter.minimumSpacing - elapsed

			logrus.WithFields(logrus.Fields{
				"component":       "PollRateLimiter",
				"elapsed_time":    elapsed,
				"minimum_spacing": limiter.minimumSpacing,
				"remaining_delay": remaining,
				"request_count":   limiter.requestCount + 1,
			}).Debug("Enforcing request spacing delay")

			time.Sleep(remaining)
		}
	}

	limiter.lastRequestTime = time.Now()
	limiter.requestCount++
}

// RequestCount returns the total number of requests processed.
func (limiter *PollRateLimiter) RequestCount() int64 {
	limiter.mutex.Lock()
	defer limiter.mutex.Unlock()
	return limiter.requestCount
}
