package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	HTTPRequests              uint64
	InstanceListSuccess       uint64
	InstanceListFailure       uint64
	InstanceListCached        uint64
	InstanceListDurationCount uint64
	InstanceListDurationTotal time.Duration
	InstanceCacheHits         uint64
	InstanceCacheMisses       uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	httpRequests              atomic.Uint64
	instanceListSuccess       atomic.Uint64
	instanceListFailure       atomic.Uint64
	instanceListCached        atomic.Uint64
	instanceListDurationCount atomic.Uint64
	instanceListDurationNs    atomic.Int64
	instanceCacheHits         atomic.Uint64
	instanceCacheMisses       atomic.Uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		HTTPRequests:              m.httpRequests.Load(),
		InstanceListSuccess:       m.instanceListSuccess.Load(),
		InstanceListFailure:       m.instanceListFailure.Load(),
		InstanceListCached:        m.instanceListCached.Load(),
		InstanceListDurationCount: m.instanceListDurationCount.Load(),
		InstanceListDurationTotal: time.Duration(m.instanceListDurationNs.Load()),
		InstanceCacheHits:         m.instanceCacheHits.Load(),
		InstanceCacheMisses:       m.instanceCacheMisses.Load(),
	}
}

// ObserveHTTPRequest counts a served request.
func (m *InMemoryRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequests.Add(1)
}

// IncInstanceList increments the counter for outcome. Unknown outcomes are ignored.
func (m *InMemoryRecorder) IncInstanceList(outcome string) {
	switch outcome {
	case OutcomeSuccess:
		m.instanceListSuccess.Add(1)
	case OutcomeFailure:
		m.instanceListFailure.Add(1)
	case OutcomeCached:
		m.instanceListCached.Add(1)
	}
}

// ObserveInstanceListDuration records listing duration.
func (m *InMemoryRecorder) ObserveInstanceListDuration(duration time.Duration) {
	m.instanceListDurationCount.Add(1)
	m.instanceListDurationNs.Add(duration.Nanoseconds())
}

// IncInstanceCacheHit increments cache hit counter.
func (m *InMemoryRecorder) IncInstanceCacheHit() {
	m.instanceCacheHits.Add(1)
}

// IncInstanceCacheMiss increments cache miss counter.
func (m *InMemoryRecorder) IncInstanceCacheMiss() {
	m.instanceCacheMisses.Add(1)
}
