package metrics

import (
	"mackerel-hq/mmpp/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Results of handling one file.
const (
	ResultOK          = "ok"
	ResultUnchanged   = "unchanged"
	ResultReformatted = "reformatted"
	ResultInvalid     = "invalid"
	ResultError       = "error"
)

// FileMetrics tracks files handled by the CLI commands.
//
// Metrics:
//   - mmpp_expr_files_total: files by command and result
//   - mmpp_expr_watch_events_total: file system events seen by the watcher
type FileMetrics struct {
	filesTotal  *prometheus.CounterVec
	watchEvents *prometheus.CounterVec
}

// NewFileMetrics creates and registers file metrics with the provided registry.
func NewFileMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *FileMetrics {
	fm := &FileMetrics{
		filesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "files_total",
				Help:      "Total number of expression files handled, by command and result",
			},
			[]string{"command", "result"},
		),

		watchEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "watch_events_total",
				Help:      "Total number of file system events seen by the watcher",
			},
			[]string{"op"},
		),
	}

	registry.MustRegister(fm.filesTotal, fm.watchEvents)

	return fm
}

// RecordFile increments the file counter.
func (fm *FileMetrics) RecordFile(command, result string) {
	fm.filesTotal.WithLabelValues(command, result).Inc()
}

// RecordWatchEvent increments the watch event counter.
func (fm *FileMetrics) RecordWatchEvent(op string) {
	fm.watchEvents.WithLabelValues(op).Inc()
}
