package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// ObserveHTTPRequest is a no-op.
func (n *NoopRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {}

// IncInstanceList is a no-op.
func (n *NoopRecorder) IncInstanceList(outcome string) {}

// ObserveInstanceListDuration is a no-op.
func (n *NoopRecorder) ObserveInstanceListDuration(duration time.Duration) {}

// IncInstanceCacheHit is a no-op.
func (n *NoopRecorder) IncInstanceCacheHit() {}

// IncInstanceCacheMiss is a no-op.
func (n *NoopRecorder) IncInstanceCacheMiss() {}
