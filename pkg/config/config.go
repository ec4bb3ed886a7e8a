package config

import "time"

// Config is the root configuration structure for mmpp.
// It contains the parser limits, formatting behaviour of the file commands
// and telemetry settings.
type Config struct {
	// Parser contains limits applied to every parsed expression.
	Parser ParserConfig `yaml:"parser"`

	// Format contains settings for the fmt, lint and watch commands, which
	// operate on expression files.
	Format FormatConfig `yaml:"format"`

	// Telemetry contains configuration for logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ParserConfig contains parser limits.
type ParserConfig struct {
	// MaxDepth is the maximum nesting depth of function forms.
	// Default: 128
	MaxDepth int `yaml:"max_depth"`

	// MaxInputBytes is the maximum size of one expression.
	// Default: 1048576 (1MB)
	MaxInputBytes int `yaml:"max_input_bytes"`
}

// FormatConfig contains settings for commands that work on files.
type FormatConfig struct {
	// Extensions lists the file extensions treated as expression files when
	// walking a directory. Each entry starts with a dot.
	// Default: [".graph", ".mmpp"]
	Extensions []string `yaml:"extensions"`

	// DebounceInterval is how long the watch command waits after the last
	// change to a file before reformatting it.
	// Default: 100ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`

	// IncludeHidden makes directory walks descend into hidden directories
	// and pick up hidden files.
	// Default: false
	IncludeHidden bool `yaml:"include_hidden"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "warn"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
// Metrics are written once per run to a file in the Prometheus text
// format, for the node exporter textfile collector.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and written.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "mmpp"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "expr"
	Subsystem string `yaml:"subsystem"`

	// TextfilePath is the file metrics are written to.
	// Empty means metrics are only served over HTTP, if at all.
	TextfilePath string `yaml:"textfile_path"`

	// DurationBuckets defines histogram buckets for parse and render
	// durations (seconds).
	// Default: [0.00001, 0.0001, 0.001, 0.01, 0.1, 1]
	DurationBuckets []float64 `yaml:"duration_buckets"`
}
