package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:      "zero max depth",
			modify:    func(c *Config) { c.Parser.MaxDepth = 0 },
			wantField: "parser.max_depth",
		},
		{
			name:      "huge max depth",
			modify:    func(c *Config) { c.Parser.MaxDepth = 1 << 20 },
			wantField: "parser.max_depth",
		},
		{
			name:      "tiny input limit",
			modify:    func(c *Config) { c.Parser.MaxInputBytes = 4 },
			wantField: "parser.max_input_bytes",
		},
		{
			name:      "no extensions",
			modify:    func(c *Config) { c.Format.Extensions = nil },
			wantField: "format.extensions",
		},
		{
			name:      "extension without dot",
			modify:    func(c *Config) { c.Format.Extensions = []string{"graph"} },
			wantField: "format.extensions[0]",
		},
		{
			name:      "bare dot extension",
			modify:    func(c *Config) { c.Format.Extensions = []string{"."} },
			wantField: "format.extensions[0]",
		},
		{
			name:      "duplicate extension",
			modify:    func(c *Config) { c.Format.Extensions = []string{".graph", ".graph"} },
			wantField: "format.extensions[1]",
		},
		{
			name:      "negative debounce",
			modify:    func(c *Config) { c.Format.DebounceInterval = -1 },
			wantField: "format.debounce_interval",
		},
		{
			name:      "invalid logging level",
			modify:    func(c *Config) { c.Telemetry.Logging.Level = "trace" },
			wantField: "telemetry.logging.level",
		},
		{
			name:      "invalid logging format",
			modify:    func(c *Config) { c.Telemetry.Logging.Format = "xml" },
			wantField: "telemetry.logging.format",
		},
		{
			name:   "metrics without textfile",
			modify: func(c *Config) { c.Telemetry.Metrics.Enabled = true },
		},
		{
			name:      "invalid namespace",
			modify:    func(c *Config) { c.Telemetry.Metrics.Namespace = "my-app" },
			wantField: "telemetry.metrics.namespace",
		},
		{
			name:      "unsorted buckets",
			modify:    func(c *Config) { c.Telemetry.Metrics.DurationBuckets = []float64{1, 0.1} },
			wantField: "telemetry.metrics.duration_buckets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := Validate(cfg)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			validationErr, ok := err.(ValidationError)
			if !ok {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
			found := false
			for _, fe := range validationErr.Errors {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error for field %q, got %v", tt.wantField, validationErr.Errors)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{Field: "parser.max_depth", Message: "too small"}}}
	if got := single.Error(); got != "configuration validation failed: parser.max_depth: too small" {
		t.Errorf("unexpected message: %q", got)
	}

	multi := ValidationError{Errors: []FieldError{
		{Field: "a", Message: "x"},
		{Field: "b", Message: "y"},
	}}
	got := multi.Error()
	if !strings.Contains(got, "2 errors") || !strings.Contains(got, "  - a: x") || !strings.Contains(got, "  - b: y") {
		t.Errorf("unexpected message: %q", got)
	}
}
