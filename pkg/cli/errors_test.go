package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := &ConfigError{
		Field:   "format",
		Message: "unknown output format",
	}

	expected := "config error in format: unknown output format"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("field", "message")
	if err.Field != "field" {
		t.Errorf("Field = %q, want %q", err.Field, "field")
	}
	if err.Message != "message" {
		t.Errorf("Message = %q, want %q", err.Message, "message")
	}
}

func TestCommandError(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	err := NewCommandError("fmt", underlyingErr)

	expected := "command fmt failed: underlying error"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, underlyingErr) {
		t.Error("errors.Is() should work with CommandError.Unwrap()")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantReport bool
	}{
		{name: "nil", err: nil, wantCode: 0, wantReport: false},
		{name: "plain error", err: errors.New("boom"), wantCode: 1, wantReport: true},
		{name: "quiet exit", err: &ExitError{Code: 1}, wantCode: 1, wantReport: false},
		{name: "exit with message", err: &ExitError{Code: 2, Err: errors.New("usage")}, wantCode: 2, wantReport: true},
		{name: "wrapped exit", err: fmt.Errorf("lint: %w", &ExitError{Code: 3}), wantCode: 3, wantReport: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.wantCode {
				t.Errorf("ExitCode() = %d, want %d", got, tt.wantCode)
			}
			if got := ShouldReport(tt.err); got != tt.wantReport {
				t.Errorf("ShouldReport() = %v, want %v", got, tt.wantReport)
			}
		})
	}
}

func TestExitError_Error(t *testing.T) {
	if got := (&ExitError{Code: 1}).Error(); got != "exit status 1" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&ExitError{Code: 1, Err: errors.New("x")}).Error(); got != "x" {
		t.Errorf("Error() = %q", got)
	}
}
