// Package monitoring provides kivi.Metrics implementations: a Prometheus
// collector suitable for scraping, and a no-op sink for tests and embedders
// that don't want the overhead.
package monitoring

import (
	"github.com/gernest/kivi"
	"github.com/prometheus/client_golang/prometheus"
)

// NoopFrameMetrics discards every event. It is the zero-cost default a
// Runtime falls back to implicitly (kivi treats a nil Metrics the same way),
// but is useful to wire explicitly when code wants a non-nil kivi.Metrics.
type NoopFrameMetrics struct{}

var _ kivi.Metrics = NoopFrameMetrics{}

func (NoopFrameMetrics) RecordFrame(clock int, durationMS float64) {}
func (NoopFrameMetrics) RecordComponentUpdate(depth int)           {}

// PrometheusFrameMetrics records scheduler frame cadence and component
// update depth as Prometheus metrics, registered against a caller-supplied
// registerer (prometheus.DefaultRegisterer is a reasonable default).
type PrometheusFrameMetrics struct {
	frames           prometheus.Counter
	frameTimeLeft    prometheus.Histogram
	componentUpdates *prometheus.CounterVec
}

var _ kivi.Metrics = (*PrometheusFrameMetrics)(nil)

// NewPrometheusFrameMetrics registers its collectors on reg and returns a
// ready-to-use sink. reg may be nil, in which case the collectors are left
// unregistered (useful in tests that only want the RecordX behavior).
func NewPrometheusFrameMetrics(reg prometheus.Registerer) *PrometheusFrameMetrics {
	m := &PrometheusFrameMetrics{
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kivi",
			Subsystem: "scheduler",
			Name:      "frames_total",
			Help:      "Number of frame ticks processed by the scheduler.",
		}),
		frameTimeLeft: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "kivi",
			Subsystem: "scheduler",
			Name:      "frame_time_remaining_ms",
			Help:      "FrameTimeRemaining sampled at the end of each tick.",
			Buckets:   []float64{0, 1, 2, 4, 6, 8, 10, 12, 16},
		}),
		componentUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kivi",
			Subsystem: "component",
			Name:      "updates_total",
			Help:      "Component updates run, labeled by tree depth.",
		}, []string{"depth"}),
	}
	if reg != nil {
		reg.MustRegister(m.frames, m.frameTimeLeft, m.componentUpdates)
	}
	return m
}

func (m *PrometheusFrameMetrics) RecordFrame(clock int, durationMS float64) {
	m.frames.Inc()
	m.frameTimeLeft.Observe(durationMS)
}

func (m *PrometheusFrameMetrics) RecordComponentUpdate(depth int) {
	m.componentUpdates.WithLabelValues(depthLabel(depth)).Inc()
}

// depthLabel caps the cardinality of the depth label: deep trees collapse
// into a single "16+" bucket rather than minting a new label per depth.
func depthLabel(depth int) string {
	if depth >= 16 {
		return "16+"
	}
	const digits = "0123456789"
	if depth < 10 {
		return string(digits[depth])
	}
	return string(digits[depth/10]) + string(digits[depth%10])
}
