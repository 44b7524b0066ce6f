package observability

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects in-process counters for scheduler operations.
type Metrics struct {
	requestTotal  atomic.Int64
	requestFailed atomic.Int64

	reviewsCompleted  atomic.Int64
	versionConflicts  atomic.Int64
	dashboardRequests atomic.Int64

	mu           sync.Mutex
	durations    []time.Duration
	maxDurations int
}

// MetricsSnapshot is a point-in-time view of the counters.
type MetricsSnapshot struct {
	RequestTotal      int64 `json:"request_total"`
	RequestFailed     int64 `json:"request_failed"`
	ReviewsCompleted  int64 `json:"reviews_completed"`
	VersionConflicts  int64 `json:"version_conflicts"`
	DashboardRequests int64 `json:"dashboard_requests"`
	AvgDurationMs     int64 `json:"avg_duration_ms"`
}

// NewMetrics creates a metrics collector keeping at most maxDurations recent
// request durations for the average.
func NewMetrics(maxDurations int) *Metrics {
	if maxDurations <= 0 {
		maxDurations = 1000
	}
	return &Metrics{
		durations:    make([]time.Duration, 0, maxDurations),
		maxDurations: maxDurations,
	}
}

var globalMetrics = NewMetrics(1000)

// GlobalMetrics returns the process-wide metrics instance.
func GlobalMetrics() *Metrics {
	return globalMetrics
}

// RecordRequest records one handled HTTP request and its duration.
func (m *Metrics) RecordRequest(duration time.Duration, failed bool) {
	m.requestTotal.Add(1)
	if failed {
		m.requestFailed.Add(1)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.durations) >= m.maxDurations {
		// Keep the window bounded; drop the oldest half.
		m.durations = m.durations[len(m.durations)/2:]
	}
	m.durations = append(m.durations, duration)
}

// RecordReviewCompleted counts a successful review completion.
func (m *Metrics) RecordReviewCompleted() {
	m.reviewsCompleted.Add(1)
}

// RecordVersionConflict counts an optimistic-lock conflict.
func (m *Metrics) RecordVersionConflict() {
	m.versionConflicts.Add(1)
}

// RecordDashboardRequest counts a dashboard computation.
func (m *Metrics) RecordDashboardRequest() {
	m.dashboardRequests.Add(1)
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() *MetricsSnapshot {
	m.mu.Lock()
	var total time.Duration
	for _, d := range m.durations {
		total += d
	}
	var avgMs int64
	if len(m.durations) > 0 {
		avgMs = (total / time.Duration(len(m.durations))).Milliseconds()
	}
	m.mu.Unlock()

	return &MetricsSnapshot{
		RequestTotal:      m.requestTotal.Load(),
		RequestFailed:     m.requestFailed.Load(),
		ReviewsCompleted:  m.reviewsCompleted.Load(),
		VersionConflicts:  m.versionConflicts.Load(),
		DashboardRequests: m.dashboardRequests.Load(),
		AvgDurationMs:     avgMs,
	}
}
