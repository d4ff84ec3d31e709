package metrics

import "github.com/prometheus/client_golang/prometheus"

// Submission outcomes used as the "outcome" label.
const (
	OutcomeStored     = "stored"
	OutcomeInvalid    = "invalid"
	OutcomeStoreError = "store_error"
)

// SubmissionMetrics exposes counters/histograms for form submissions.
type SubmissionMetrics struct {
	submissionsTotal *prometheus.CounterVec
	insertLatency    *prometheus.HistogramVec
}

func NewSubmissionMetrics(reg prometheus.Registerer) *SubmissionMetrics {
	m := &SubmissionMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "landlordlink",
			Subsystem: "submissions",
			Name:      "total",
			Help:      "Total form submissions by collection and outcome",
		}, []string{"collection", "outcome"}),
		insertLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "landlordlink",
			Subsystem: "submissions",
			Name:      "store_insert_seconds",
			Help:      "Latency of document store inserts",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collection"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.insertLatency)
	return m
}

func (m *SubmissionMetrics) ObserveSubmission(collection, outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(collection, outcome).Inc()
}

func (m *SubmissionMetrics) ObserveInsertLatency(collection string, seconds float64) {
	if m == nil {
		return
	}
	m.insertLatency.WithLabelValues(collection).Observe(seconds)
}
