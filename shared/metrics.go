package shared

import "sync"

// CacheMetrics tracks hit/miss counters for the daily history cache.
// Exposed through the /health endpoint for observability.
type CacheMetrics struct {
	mutex     sync.Mutex
	hits      int64
	misses    int64
	fetchErrs int64
}

// NewCacheMetrics creates a new metrics collector
func NewCacheMetrics() *CacheMetrics {
	return &CacheMetrics{}
}

// RecordHit increments the cache hit counter
func (m *CacheMetrics) RecordHit() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.hits++
}

// RecordMiss increments the cache miss counter
func (m *CacheMetrics) RecordMiss() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.misses++
}

// RecordFetchError increments the upstream fetch error counter
func (m *CacheMetrics) RecordFetchError() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.fetchErrs++
}

// Snapshot returns the current counter values
func (m *CacheMetrics) Snapshot() map[string]int64 {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return map[string]int64{
		"hits":         m.hits,
		"misses":       m.misses,
		"fetch_errors": m.fetchErrs,
	}
}
