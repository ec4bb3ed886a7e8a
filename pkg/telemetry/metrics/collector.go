package metrics

import (
	"sync/atomic"
	"time"

	"mackerel-hq/mmpp/pkg/config"
	exprErrors "mackerel-hq/mmpp/pkg/expr/errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns every mmpp metric and the registry they live in.
//
// It satisfies expr.Observer, so a Formatter reports parse and render
// outcomes to it directly. While recording is disabled every method is a
// no-op.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry
	enabled  atomic.Bool

	exprMetrics *ExprMetrics
	fileMetrics *FileMetrics
}

// NewCollector creates a collector and registers its metrics with registry.
// A nil registry gets a fresh one, so that the Go runtime collectors of the
// default registry never end up in textfile output.
//
// Example:
//
//	cfg := config.DefaultConfig().Telemetry.Metrics
//	cfg.Enabled = true
//	collector := metrics.NewCollector(&cfg, nil)
//	f := expr.NewFormatter(expr.Options{}).WithObserver(collector)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = append([]float64(nil), config.DefaultDurationBuckets...)
	}

	c := &Collector{
		config:      cfg,
		registry:    registry,
		exprMetrics: NewExprMetrics(cfg, registry),
		fileMetrics: NewFileMetrics(cfg, registry),
	}
	c.enabled.Store(cfg.Enabled)
	return c
}

// Enabled reports whether the collector records anything.
func (c *Collector) Enabled() bool {
	return c.enabled.Load()
}

// Enable turns recording on, e.g. when metrics are served over HTTP
// without being enabled in the configuration.
func (c *Collector) Enable() {
	c.enabled.Store(true)
}

// ObserveParse records the outcome and duration of a parse.
func (c *Collector) ObserveParse(duration time.Duration, err error) {
	if !c.Enabled() {
		return
	}

	c.exprMetrics.RecordParse(parseResult(err), duration)
}

// ObserveRender records the duration and tree depth of a render.
func (c *Collector) ObserveRender(duration time.Duration, depth int) {
	if !c.Enabled() {
		return
	}

	c.exprMetrics.RecordRender(duration, depth)
}

// RecordFile records one file handled by a command.
//
// Parameters:
//   - command: CLI command ("fmt", "lint", "watch")
//   - result: one of the Result* constants
func (c *Collector) RecordFile(command, result string) {
	if !c.Enabled() {
		return
	}

	c.fileMetrics.RecordFile(command, result)
}

// RecordWatchEvent records a file system event seen by the watcher.
func (c *Collector) RecordWatchEvent(op string) {
	if !c.Enabled() {
		return
	}

	c.fileMetrics.RecordWatchEvent(op)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Flush writes the registry to the configured textfile path. It does
// nothing when metrics are disabled or no textfile path is configured.
func (c *Collector) Flush() error {
	if !c.Enabled() || c.config.TextfilePath == "" {
		return nil
	}
	return c.WriteTextfile(c.config.TextfilePath)
}

// parseResult maps a parse error onto the result label: "ok" or the error
// category.
func parseResult(err error) string {
	if err == nil {
		return ResultOK
	}
	if t := exprErrors.TypeOf(err); t != "" {
		return string(t)
	}
	return "unknown"
}
