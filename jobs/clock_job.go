package jobs

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Ticker receives wall-clock updates.
type Ticker interface {
	Tick(now time.Time)
}

// ClockJob drives the clock display once per interval. The time source is
// injectable so tests can run without real wall-clock reads.
type ClockJob struct {
	target   Ticker
	interval time.Duration
	now      func() time.Time

	mutex  sync.Mutex
	ticker *time.Ticker
	done   chan struct{}
}

func NewClockJob(target Ticker, interval time.Duration) *ClockJob {
	return &ClockJob{
		target:   target,
		interval: interval,
		now:      time.Now,
	}
}

// Start begins the clock loop with an immediate first tick so the display is
// never blank. Calling Start on a running job is a no-op.
func (j *ClockJob) Start() {
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
		"component": "ClockJob",
		"interval":  j.interval,
	}).Info("Starting clock job")

	j.target.Tick(j.now())

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				j.target.Tick(j.now())
			}
		}
	}()
}

// Stop cancels the clock loop. Idempotent and safe when never started.
func (j *ClockJob) Stop() {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	if j.ticker == nil {
		return
	}
	j.ticker.Stop()
	close(j.done)
	j.ticker = nil
	j.done = nil

	logrus.WithField("component", "ClockJob").Info("Stopped clock job")
}

// Running reports whether the job's ticker is active.
func (j *ClockJob) Running() bool {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	return j.ticker != nil
}
