package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mackerel-hq/mmpp/pkg/cli"
	exprErrors "mackerel-hq/mmpp/pkg/expr/errors"
	"mackerel-hq/mmpp/pkg/files"
	"mackerel-hq/mmpp/pkg/telemetry/logging"
	"mackerel-hq/mmpp/pkg/telemetry/metrics"
)

// lintOptions are the lint command flags.
type lintOptions struct {
	file   string
	dir    string
	format string
}

var lintFlags lintOptions

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate expression files",
	Long: `Validate metric expression files.

The lint command parses each file and validates the resulting tree:
  - Syntax (unknown functions, argument counts, parentheses)
  - Literal shapes (factors, percentages, durations)
  - Identifiers that would not survive formatting

Examples:
  # Lint single file
  mmpp lint --file graphs/cpu.graph

  # Lint directory
  mmpp lint --dir graphs/

  # JSON output for CI/CD
  mmpp lint --dir graphs/ --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := current.context(cmd.Context(), "lint")
		return runLint(ctx, current, streams{out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()}, lintFlags)
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "expression file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of expression files")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// LintResult is the validation result for a single file.
type LintResult struct {
	File   string      `json:"file"`
	Valid  bool        `json:"valid"`
	Errors []LintError `json:"errors,omitempty"`
}

// LintError is a single problem found in a file.
type LintError struct {
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Type       string `json:"type,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// String renders the result for text output.
func (r LintResult) String() string {
	if r.Valid {
		return fmt.Sprintf("✓ %s", r.File)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("✗ %s", r.File))
	for _, e := range r.Errors {
		sb.WriteString("\n  ")
		if e.Line > 0 {
			sb.WriteString(fmt.Sprintf("%d:%d: ", e.Line, e.Column))
		}
		if e.Type != "" {
			sb.WriteString(fmt.Sprintf("[%s] ", e.Type))
		}
		sb.WriteString(e.Message)
		if e.Suggestion != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", e.Suggestion))
		}
	}
	return sb.String()
}

func runLint(ctx context.Context, a *app, s streams, opts lintOptions) error {
	format, err := cli.ParseOutputFormat(opts.format)
	if err != nil {
		return err
	}

	if opts.file == "" && opts.dir == "" {
		return cli.NewConfigError("file", "either --file or --dir must be specified")
	}

	var paths []string
	if opts.file != "" {
		paths = append(paths, opts.file)
	}
	if opts.dir != "" {
		paths = append(paths, opts.dir)
	}

	targets, err := a.loader.Collect(paths...)
	if err != nil {
		return cli.NewCommandError("lint", err)
	}
	if len(targets) == 0 {
		return cli.NewCommandError("lint", fmt.Errorf("no expression files found"))
	}

	results := make([]LintResult, 0, len(targets))
	invalid := 0
	for _, path := range targets {
		result := lintFile(a, path)
		if result.Valid {
			a.metrics.RecordFile("lint", metrics.ResultOK)
		} else {
			invalid++
			a.metrics.RecordFile("lint", metrics.ResultInvalid)
		}
		a.logger.DebugContext(logging.WithSource(ctx, path), "linted expression file", "valid", result.Valid)
		results = append(results, result)
	}

	var output any = results
	if format == cli.FormatText {
		lines := make([]fmt.Stringer, 0, len(results)+1)
		for _, r := range results {
			lines = append(lines, r)
		}
		lines = append(lines, lintSummary{files: len(results), invalid: invalid})
		output = lines
	}
	if err := cli.NewFormatter(format).FormatTo(s.out, output); err != nil {
		return err
	}

	if invalid > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

type lintSummary struct {
	files   int
	invalid int
}

func (s lintSummary) String() string {
	if s.invalid == 0 {
		return fmt.Sprintf("\n%d file(s) valid", s.files)
	}
	return fmt.Sprintf("\n%d of %d file(s) invalid", s.invalid, s.files)
}

func lintFile(a *app, path string) LintResult {
	result := LintResult{File: path, Valid: true}

	if _, err := a.loader.Lint(path); err != nil {
		result.Valid = false
		result.Errors = lintErrors(err)
	}
	return result
}

// lintErrors flattens err into report entries.
func lintErrors(err error) []LintError {
	var errList *exprErrors.ErrorList
	if errors.As(err, &errList) {
		out := make([]LintError, 0, len(errList.Errors))
		for _, e := range errList.Errors {
			out = append(out, fromExprError(e))
		}
		return out
	}

	var exprErr *exprErrors.Error
	if errors.As(err, &exprErr) {
		return []LintError{fromExprError(exprErr)}
	}

	var loadErr *files.LoadError
	if errors.As(err, &loadErr) {
		return []LintError{{Type: string(exprErrors.ErrorTypeIO), Message: loadErr.Error()}}
	}

	return []LintError{{Message: err.Error()}}
}

func fromExprError(e *exprErrors.Error) LintError {
	return LintError{
		Line:       e.Location.Line,
		Column:     e.Location.Column,
		Type:       string(e.Type),
		Message:    e.Message,
		Suggestion: e.Suggestion,
	}
}
