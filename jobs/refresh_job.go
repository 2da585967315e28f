package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Refresher is the refresh entry point the job drives.
type Refresher interface {
	RefreshAll(ctx context.Context)
}

// RefreshJob re-fetches the live data on a fixed interval. It is independent
// from the clock job and individually cancellable.
type RefreshJob struct {
	target   Refresher
	interval time.Duration

	mutex  sync.Mutex
	ticker *time.Ticker
	done   chan struct{}
}

func NewRefreshJob(target Refresher, interval time.Duration) *RefreshJob {
	return &RefreshJob{
		target:   target,
		interval: interval,
	}
}

// Start begins the periodic refresh loop. Calling Start on a running job is
// a no-op.
func (j *RefreshJob) Start() {
	j.mutex.Lock()
	if j.ticker != nil {
		j.mutex.Unlock()
		return
	}
	j.ticker = time.NewTicker(j.interval)
	j.done = make(chan struct{})
	ticker, done := j.ticker, j.done
	j.mutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"component": "RefreshJob",
		"interval":  j.interval,
	}).Info("Starting data refresh job")

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				j.target.RefreshAll(context.Background())
			}
		}
	}()
}

// Stop cancels the refresh loop. Idempotent: stopping an already-stopped or
// never-started job is safe. In-flight fetches are not aborted; their
// results simply stop mattering.
func (j *RefreshJob) Stop() {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	if j.ticker == nil {
		return
	}
	j.ticker.Stop()
	close(j.done)
	j.ticker = nil
	j.done = nil

	logrus.WithField("component", "RefreshJob").Info("Stopped data refresh job")
}

// Running reports whether the job's ticker is active.
func (j *RefreshJob) Running() bool {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	return j.ticker != nil
}
