package shared

import (
	"sync"
	"time"
)

// EntityFetchStats tracks fetch outcomes for one entity (gold prices,
// currency rates, market status, store info).
type EntityFetchStats struct {
	TotalFetches      int64     `json:"total_fetches"`
	SuccessfulFetches int64     `json:"successful_fetches"`
	FailedFetches     int64     `json:"failed_fetches"`
	LastSuccess       time.Time `json:"last_success,omitempty"`
	LastError         string    `json:"last_error,omitempty"`
	LastErrorAt       time.Time `json:"last_error_at,omitempty"`
}

// SuccessRate returns the success rate as a percentage.
func (s EntityFetchStats) SuccessRate() float64 {
	if s.TotalFetches == 0 {
		return 0.0
	}
	return float64(s.SuccessfulFetches) / float64(s.TotalFetches) * 100.0
}

// FetchMetrics is a thread-safe per-entity fetch outcome tracker.
type FetchMetrics struct {
	mutex    sync.RWMutex
	entities map[string]*EntityFetchStats
}

// NewFetchMetrics creates an empty metrics tracker.
func NewFetchMetrics() *FetchMetrics {
	return &FetchMetrics{
		entities: make(map[string]*EntityFetchStats),
	}
}

// RecordFetch records the outcome of one fetch for the named entity.
func (m *FetchMetrics) RecordFetch(entity string, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	stats, exists := m.entities[entity]
	if !exists {
		stats = &EntityFetchStats{}
		m.entities[entity] = stats
	}

	stats.TotalFetches++
	if err != nil {
		stats.FailedFetches++
		stats.LastError = err.Error()
		stats.LastErrorAt = time.Now()
		return
	}
	stats.SuccessfulFetches++
	stats.LastSuccess = time.Now()
}

// Snapshot returns a copy of the current per-entity stats.
func (m *FetchMetrics) Snapshot() map[string]EntityFetchStats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snapshot := make(map[string]EntityFetchStats, len(m.entities))
	for entity, stats := range m.entities {
		snapshot[entity] = *stats
	}
	return snapshot
}
