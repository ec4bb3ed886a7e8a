// Package expr parses metric expressions and renders them in canonical form.
//
// The package-level functions use default limits:
//
//	text, err := expr.Format("avg(group(host(h1, loadavg5), host(h2, loadavg5)))")
//
// A Formatter carries configured limits and an optional Observer that is
// told about every parse and render, which is how the command line tool
// records metrics.
package expr

import (
	"time"

	"mackerel-hq/mmpp/pkg/expr/ast"
	exprErrors "mackerel-hq/mmpp/pkg/expr/errors"
	"mackerel-hq/mmpp/pkg/expr/parser"
	"mackerel-hq/mmpp/pkg/expr/printer"
	"mackerel-hq/mmpp/pkg/expr/validator"
)

// Parse parses text into a metric tree.
func Parse(text string) (ast.Metric, error) {
	return parser.NewParser().Parse(text)
}

// Render returns the canonical text of m.
func Render(m ast.Metric) (string, error) {
	return printer.Render(m)
}

// Format parses text and renders it in canonical form.
func Format(text string) (string, error) {
	return NewFormatter(Options{}).Format("", text)
}

// ParseAndValidate parses text and validates the resulting tree.
func ParseAndValidate(text string) (ast.Metric, error) {
	return NewFormatter(Options{}).ParseAndValidate("", text)
}

// Options configure a Formatter. Zero values select the parser defaults.
type Options struct {
	MaxDepth      int
	MaxInputBytes int
}

// Observer is notified of parse and render outcomes.
type Observer interface {
	// ObserveParse is called after every parse. err is nil on success.
	ObserveParse(duration time.Duration, err error)

	// ObserveRender is called after every successful render with the depth
	// of the rendered tree.
	ObserveRender(duration time.Duration, depth int)
}

// Formatter parses and renders expressions with fixed limits. It is safe
// for concurrent use if its Observer is.
type Formatter struct {
	opts     Options
	observer Observer
}

// NewFormatter creates a formatter.
func NewFormatter(opts Options) *Formatter {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = parser.DefaultMaxDepth
	}
	if opts.MaxInputBytes <= 0 {
		opts.MaxInputBytes = parser.DefaultMaxInputBytes
	}
	return &Formatter{opts: opts}
}

// WithObserver sets the observer and returns the formatter.
func (f *Formatter) WithObserver(o Observer) *Formatter {
	f.observer = o
	return f
}

// Parse parses src. source names the input in error locations; empty means
// "<input>".
func (f *Formatter) Parse(source, src string) (ast.Metric, error) {
	p := parser.NewParser().
		WithMaxDepth(f.opts.MaxDepth).
		WithMaxInputBytes(f.opts.MaxInputBytes)
	if source != "" {
		p = p.WithSourceName(source)
	}

	start := time.Now()
	m, err := p.Parse(src)
	if f.observer != nil {
		f.observer.ObserveParse(time.Since(start), err)
	}
	return m, err
}

// Render renders m in canonical form.
func (f *Formatter) Render(m ast.Metric) (string, error) {
	start := time.Now()
	out, err := printer.Render(m)
	if err != nil {
		return "", err
	}
	if f.observer != nil {
		depth, _ := printer.Depth(m)
		f.observer.ObserveRender(time.Since(start), depth)
	}
	return out, nil
}

// Format parses src and renders it in canonical form.
func (f *Formatter) Format(source, src string) (string, error) {
	m, err := f.Parse(source, src)
	if err != nil {
		return "", err
	}
	return f.Render(m)
}

// ParseAndValidate parses src and validates the tree. Besides parse errors
// it reports quoted identifiers whose canonical bare form would not parse
// back, such as host('my host', cpu).
func (f *Formatter) ParseAndValidate(source, src string) (ast.Metric, error) {
	m, err := f.Parse(source, src)
	if err != nil {
		return nil, err
	}
	if err := validator.NewValidator().Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// IsCanonical reports whether src is already in canonical form, ignoring
// one trailing newline. It returns the canonical text as well.
func (f *Formatter) IsCanonical(source, src string) (bool, string, error) {
	out, err := f.Format(source, src)
	if err != nil {
		return false, "", err
	}
	return trimNewline(src) == out, out, nil
}

func trimNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
		if n := len(s); n > 0 && s[n-1] == '\r' {
			s = s[:n-1]
		}
	}
	return s
}

// ErrorType returns the category of an error returned by this package, or
// "" for other errors.
func ErrorType(err error) exprErrors.ErrorType {
	return exprErrors.TypeOf(err)
}
