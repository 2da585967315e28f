package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingRefresher struct {
	mutex sync.Mutex
	calls int
}

func (r *countingRefresher) RefreshAll(ctx context.Context) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.calls++
}

func (r *countingRefresher) count() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.calls
}

type recordingTicker struct {
	mutex sync.Mutex
	times []time.Time
}

func (r *recordingTicker) Tick(now time.Time) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.times = append(r.times, now)
}

func (r *recordingTicker) count() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.times)
}

func TestRefreshJobFiresOnInterval(t *testing.T) {
	refresher := &countingRefresher{}
	job := NewRefreshJob(refresher, 10*time.Millisecond)
	job.Start()
	defer job.Stop()

	assert.Eventually(t, func() bool {
		return refresher.count() >= 2
	}, 2*time.Second, 5*time.Millisecond)
}

func TestRefreshJobStopIsIdempotent(t *testing.T) {
	job := NewRefreshJob(&countingRefresher{}, 10*time.Millisecond)
	job.Start()

	job.Stop()
	job.Stop()
	assert.False(t, job.Running())
}

func TestRefreshJobStopWithoutStart(t *testing.T) {
	job := NewRefreshJob(&countingRefresher{}, 10*time.Millisecond)
	job.Stop()
	assert.False(t, job.Running())
}

func TestRefreshJobStopsFiring(t *testing.T) {
	refresher := &countingRefresher{}
	job := NewRefreshJob(refresher, 10*time.Millisecond)
	job.Start()

	assert.Eventually(t, func() bool {
		return refresher.count() >= 1
	}, 2*time.Second, 5*time.Millisecond)

	job.Stop()
	stopped := refresher.count()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, stopped, refresher.count())
}

func TestClockJobTicksImmediatelyAndOnInterval(t *testing.T) {
	target := &recordingTicker{}
	job := NewClockJob(target, 10*time.Millisecond)
	fixed := time.Date(2026, 8, 23, 12, 0, 0, 0, time.Local)
	job.now = func() time.Time { return fixed }

	job.Start()
	defer job.Stop()

	// First tick fires synchronously on Start.
	assert.GreaterOrEqual(t, target.count(), 1)
	target.mutex.Lock()
	first := target.times[0]
	target.mutex.Unlock()
	assert.Equal(t, fixed, first)

	assert.Eventually(t, func() bool {
		return target.count() >= 3
	}, 2*time.Second, 5*time.Millisecond)
}

func TestClockJobStopIsIdempotent(t *testing.T) {
	job := NewClockJob(&recordingTicker{}, 10*time.Millisecond)
	job.Start()

	job.Stop()
	job.Stop()
	assert.False(t, job.Running())
}

func TestBothJobsStopIndividually(t *testing.T) {
	refresher := &countingRefresher{}
	ticker := &recordingTicker{}
	refreshJob := NewRefreshJob(refresher, 10*time.Millisecond)
	clockJob := NewClockJob(ticker, 10*time.Millisecond)

	refreshJob.Start()
	clockJob.Start()

	// Stopping the data refresh leaves the clock running.
	refreshJob.Stop()
	assert.False(t, refreshJob.Running())
	assert.True(t, clockJob.Running())

	clockJob.Stop()
	assert.False(t, clockJob.Running())
}
