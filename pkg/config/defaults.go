package config

import "time"

// Default values for configuration fields.
const (
	// Parser defaults
	DefaultMaxDepth      = 128
	DefaultMaxInputBytes = 1048576 // 1MB

	// Format defaults
	DefaultDebounceInterval = 100 * time.Millisecond
	DefaultIncludeHidden    = false

	// Telemetry defaults
	DefaultLoggingLevel     = "warn"
	DefaultLoggingFormat    = "text"
	DefaultMetricsEnabled   = false
	DefaultMetricsNamespace = "mmpp"
	DefaultMetricsSubsystem = "expr"
)

// DefaultExtensions are the file extensions of expression files.
var DefaultExtensions = []string{".graph", ".mmpp"}

// DefaultDurationBuckets are the histogram buckets for parse and render
// durations. Expressions are small, so most observations fall far below a
// millisecond.
var DefaultDurationBuckets = []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1}

// DefaultConfig returns a configuration with every default applied.
// It is used when no configuration file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Parser defaults
	if cfg.Parser.MaxDepth == 0 {
		cfg.Parser.MaxDepth = DefaultMaxDepth
	}
	if cfg.Parser.MaxInputBytes == 0 {
		cfg.Parser.MaxInputBytes = DefaultMaxInputBytes
	}

	// Format defaults
	if len(cfg.Format.Extensions) == 0 {
		cfg.Format.Extensions = append([]string(nil), DefaultExtensions...)
	}
	if cfg.Format.DebounceInterval == 0 {
		cfg.Format.DebounceInterval = DefaultDebounceInterval
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Telemetry.Metrics.DurationBuckets) == 0 {
		cfg.Telemetry.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}
}
