// Package telemetry groups the observability packages of mmpp.
//
//   - logging: structured logging on log/slog, to stderr
//   - metrics: Prometheus counters and histograms for parsing, rendering
//     and file handling, written as a node_exporter textfile
//
// Both are configured from the telemetry section of pkg/config.
package telemetry
