// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Instance listing outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeCached  = "cached"
)

// Recorder captures metric events for the application.
type Recorder interface {
	// HTTP metrics
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)

	// Database instance listing metrics
	IncInstanceList(outcome string) // outcome: "success", "failure" or "cached"
	ObserveInstanceListDuration(duration time.Duration)

	// Listing cache metrics
	IncInstanceCacheHit()
	IncInstanceCacheMiss()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
