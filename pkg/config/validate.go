package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// metricNamePartPattern matches a Prometheus metric name component.
var metricNamePartPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "parser.max_depth").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateParser(&cfg.Parser)...)
	errs = append(errs, validateFormat(&cfg.Format)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validateParser(cfg *ParserConfig) []FieldError {
	var errs []FieldError

	if cfg.MaxDepth < 1 {
		errs = append(errs, FieldError{
			Field:   "parser.max_depth",
			Message: fmt.Sprintf("max depth must be at least 1, got %d", cfg.MaxDepth),
		})
	} else if cfg.MaxDepth > 10000 {
		errs = append(errs, FieldError{
			Field:   "parser.max_depth",
			Message: fmt.Sprintf("max depth must be at most 10000, got %d", cfg.MaxDepth),
		})
	}

	// host(a, b) is the shortest expression
	if cfg.MaxInputBytes < len("host(a, b)") {
		errs = append(errs, FieldError{
			Field:   "parser.max_input_bytes",
			Message: fmt.Sprintf("max input bytes must be at least %d, got %d", len("host(a, b)"), cfg.MaxInputBytes),
		})
	}

	return errs
}

func validateFormat(cfg *FormatConfig) []FieldError {
	var errs []FieldError

	if len(cfg.Extensions) == 0 {
		errs = append(errs, FieldError{
			Field:   "format.extensions",
			Message: "at least one file extension is required",
		})
	}
	seen := make(map[string]bool, len(cfg.Extensions))
	for i, ext := range cfg.Extensions {
		field := fmt.Sprintf("format.extensions[%d]", i)
		switch {
		case !strings.HasPrefix(ext, ".") || len(ext) < 2:
			errs = append(errs, FieldError{
				Field:   field,
				Message: fmt.Sprintf("extension %q must start with '.' and name a suffix", ext),
			})
		case strings.ContainsRune(ext, filepath.Separator):
			errs = append(errs, FieldError{
				Field:   field,
				Message: fmt.Sprintf("extension %q must not contain a path separator", ext),
			})
		case seen[ext]:
			errs = append(errs, FieldError{
				Field:   field,
				Message: fmt.Sprintf("duplicate extension %q", ext),
			})
		}
		seen[ext] = true
	}

	if cfg.DebounceInterval < 0 {
		errs = append(errs, FieldError{
			Field:   "format.debounce_interval",
			Message: "debounce interval must not be negative",
		})
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	// Validate logging level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if cfg.Logging.Level == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: "logging level is required",
		})
	} else if !validLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	// Validate logging format
	validFormats := map[string]bool{"json": true, "text": true, "console": true}
	if cfg.Logging.Format == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: "logging format is required",
		})
	} else if !validFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'json', 'text', or 'console'", cfg.Logging.Format),
		})
	}

	// Validate metrics
	for _, part := range []struct{ field, name string }{
		{"telemetry.metrics.namespace", cfg.Metrics.Namespace},
		{"telemetry.metrics.subsystem", cfg.Metrics.Subsystem},
	} {
		if part.name != "" && !metricNamePartPattern.MatchString(part.name) {
			errs = append(errs, FieldError{
				Field:   part.field,
				Message: fmt.Sprintf("%q is not a valid metric name component", part.name),
			})
		}
	}
	if !sort.Float64sAreSorted(cfg.Metrics.DurationBuckets) {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.duration_buckets",
			Message: "buckets must be in increasing order",
		})
	}

	return errs
}
