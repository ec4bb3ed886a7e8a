// Package metrics records Prometheus metrics for parsing, rendering and the
// files the CLI handles.
//
// A Collector implements expr.Observer:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	f := expr.NewFormatter(opts).WithObserver(collector)
//	...
//	collector.RecordFile("fmt", metrics.ResultReformatted)
//	err := collector.Flush()
//
// mmpp is mostly a short-lived command, so metrics are written to a file for
// the node_exporter textfile collector (Flush, WriteTextfile). The watch
// command can also serve them over HTTP (Handler).
//
// All metric names are prefixed with the configured namespace and subsystem,
// "mmpp_expr_" by default.
package metrics
