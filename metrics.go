package authgate

import "sync/atomic"

// MetricID identifies one engine counter.
type MetricID uint16

const (
	// MetricIssueSuccess counts successful token issuances.
	MetricIssueSuccess MetricID = iota
	// MetricIssueFailure counts credential mismatches at issuance.
	MetricIssueFailure
	// MetricVerifySuccess counts tokens that decoded and passed every check.
	MetricVerifySuccess
	// MetricVerifyInvalid counts decode/structural/expiry failures.
	MetricVerifyInvalid
	// MetricVerifyRevoked counts tokens rejected or discarded as revoked.
	MetricVerifyRevoked
	// MetricRevocations counts Revoke calls that reached the store.
	MetricRevocations
	// MetricAnonymous counts requests resolved to the anonymous principal.
	MetricAnonymous
	// MetricRejected counts gateway rejections.
	MetricRejected

	metricIDCount
)

// paddedCounter keeps hot counters on separate cache lines.
type paddedCounter struct {
	value uint64
	_     [7]uint64
}

// Metrics is a fixed table of atomic counters. All methods are safe for
// concurrent use and are no-ops when disabled.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]paddedCounter
}

// MetricsSnapshot is a point-in-time copy of every counter.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// NewMetrics returns a counter table honoring cfg.Enabled.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Enabled reports whether counters are being recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc adds one to the counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Value reads a single counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies all counters. Counters may advance between individual
// loads; the snapshot is not a consistent cut.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{Counters: make(map[MetricID]uint64, int(metricIDCount))}
	if m == nil || !m.enabled {
		return s
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	return s
}
