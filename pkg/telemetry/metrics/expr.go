package metrics

import (
	"time"

	"mackerel-hq/mmpp/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ExprMetrics tracks parsing and rendering.
//
// Metrics:
//   - mmpp_expr_parses_total: parses by result ("ok" or error category)
//   - mmpp_expr_parse_duration_seconds: parse duration histogram
//   - mmpp_expr_render_duration_seconds: render duration histogram
//   - mmpp_expr_render_depth: depth of rendered trees
type ExprMetrics struct {
	parsesTotal    *prometheus.CounterVec
	parseDuration  prometheus.Histogram
	renderDuration prometheus.Histogram
	renderDepth    prometheus.Histogram
}

// NewExprMetrics creates and registers expression metrics with the provided registry.
func NewExprMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ExprMetrics {
	em := &ExprMetrics{
		parsesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parses_total",
				Help:      "Total number of expressions parsed, by result",
			},
			[]string{"result"},
		),

		parseDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_duration_seconds",
				Help:      "Duration of expression parsing in seconds",
				Buckets:   cfg.DurationBuckets,
			},
		),

		renderDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "render_duration_seconds",
				Help:      "Duration of expression rendering in seconds",
				Buckets:   cfg.DurationBuckets,
			},
		),

		renderDepth: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "render_depth",
				Help:      "Depth of rendered expression trees",
				Buckets:   prometheus.LinearBuckets(1, 1, 8),
			},
		),
	}

	registry.MustRegister(
		em.parsesTotal,
		em.parseDuration,
		em.renderDuration,
		em.renderDepth,
	)

	return em
}

// RecordParse records a parse with its result label.
func (em *ExprMetrics) RecordParse(result string, duration time.Duration) {
	em.parsesTotal.WithLabelValues(result).Inc()
	em.parseDuration.Observe(duration.Seconds())
}

// RecordRender records a render.
func (em *ExprMetrics) RecordRender(duration time.Duration, depth int) {
	em.renderDuration.Observe(duration.Seconds())
	em.renderDepth.Observe(float64(depth))
}
