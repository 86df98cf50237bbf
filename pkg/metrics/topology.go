// Package metrics instruments graph construction and layout.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Build operation metrics
	buildTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "spyglass_build_total",
		Help: "Total number of topology graph builds",
	}, []string{"result"})

	buildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "spyglass_build_duration_seconds",
		Help:    "Duration of topology graph builds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~1.6s
	})

	// Layout operation metrics
	layoutTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "spyglass_layout_total",
		Help: "Total number of layout passes",
	}, []string{"strategy"})

	layoutDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "spyglass_layout_duration_seconds",
		Help:    "Duration of layout passes",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~6.5s
	}, []string{"strategy"})
)

func init() {
	prometheus.MustRegister(
		buildTotal,
		buildDuration,
		layoutTotal,
		layoutDuration,
	)
}

// RecordBuild records one graph build
// result: "success" (builds cannot fail, but the label leaves room)
func RecordBuild(result string, durationSeconds float64) {
	buildTotal.WithLabelValues(result).Inc()
	buildDuration.Observe(durationSeconds)
}

// RecordLayout records one layout pass
// strategy: "hierarchical", "force", "circular", or "grid"
func RecordLayout(strategy string, durationSeconds float64) {
	layoutTotal.WithLabelValues(strategy).Inc()
	layoutDuration.WithLabelValues(strategy).Observe(durationSeconds)
}
