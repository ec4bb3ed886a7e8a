package validator

import (
	"fmt"
	"strings"

	"mackerel-hq/mmpp/pkg/expr/ast"
	exprErrors "mackerel-hq/mmpp/pkg/expr/errors"
	"mackerel-hq/mmpp/pkg/expr/parser"
)

// LiteralValidator checks that identifiers and literal parameters survive
// a render and re-parse unchanged.
//
// The printer writes identifiers bare, so an identifier holding a space, a
// quote or another character outside [A-Za-z0-9._*-] renders to text that
// does not parse back. Role parts must additionally be trimmed and free of
// ':'.
type LiteralValidator struct {
	errors *exprErrors.ErrorList
}

// NewLiteralValidator creates a new literal validator.
func NewLiteralValidator() *LiteralValidator {
	return &LiteralValidator{
		errors: exprErrors.NewErrorList(),
	}
}

// Validate checks every identifier and literal of m. Nil nodes are skipped;
// they are reported by the structural validator.
func (v *LiteralValidator) Validate(m ast.Metric) error {
	v.errors = exprErrors.NewErrorList()

	_ = ast.Walk(m, func(node ast.Metric) error {
		v.validateNode(node)
		return nil
	})

	return v.errors.ToError()
}

func (v *LiteralValidator) validateNode(m ast.Metric) {
	fn := m.Func()

	switch n := m.(type) {
	case *ast.Host:
		v.validateIdentifier(fn, "host id", n.HostID)
		v.validateIdentifier(fn, "metric name", n.MetricName)
	case *ast.Service:
		v.validateIdentifier(fn, "service name", n.ServiceName)
		v.validateIdentifier(fn, "metric name", n.MetricName)
	case *ast.Role:
		v.validateRolePart(fn, "service name", n.ServiceName)
		v.validateRolePart(fn, "role name", n.RoleName)
		v.validateIdentifier(fn, "metric name", n.MetricName)
	case *ast.RoleSlots:
		v.validateRolePart(fn, "service name", n.ServiceName)
		v.validateRolePart(fn, "role name", n.RoleName)
		v.validateIdentifier(fn, "metric name", n.MetricName)
	case *ast.Scale:
		v.validateFactor(fn, n.Factor)
	case *ast.Offset:
		v.validateFactor(fn, n.Factor)
	case *ast.Percentile:
		if !parser.IsDouble(string(n.Percentage)) {
			v.shapeError(fn, "percentage", string(n.Percentage), "A percentage is a number such as 75 or 99.9")
		}
	case *ast.TimeShift:
		v.validateDuration(fn, n.Duration)
	case *ast.MovingAverage:
		v.validateDuration(fn, n.Duration)
	case *ast.LinearRegression:
		v.validateDuration(fn, n.Duration)
	case *ast.TimeLeftForecast:
		v.validateDuration(fn, n.Duration)
		v.validateFactor(fn, n.Factor)
	}
}

func (v *LiteralValidator) validateIdentifier(fn ast.Func, field, value string) {
	if value == "" {
		v.errors.AddError(exprErrors.ErrorTypeShape,
			fmt.Sprintf("Empty %s in %s", field, fn), ast.Location{})
		return
	}
	if !parser.IsBareIdentifier(value) {
		v.errors.AddErrorWithSuggestion(exprErrors.ErrorTypeShape,
			fmt.Sprintf("%s %q in %s cannot be written as a bare identifier", capitalize(field), value, fn),
			ast.Location{},
			"Identifiers may contain letters, digits, '.', '_', '-' and '*'")
	}
}

func (v *LiteralValidator) validateRolePart(fn ast.Func, field, value string) {
	if strings.Contains(value, ":") {
		v.errors.AddError(exprErrors.ErrorTypeShape,
			fmt.Sprintf("%s %q in %s contains ':'", capitalize(field), value, fn), ast.Location{})
		return
	}
	if value != strings.TrimSpace(value) {
		v.errors.AddError(exprErrors.ErrorTypeShape,
			fmt.Sprintf("%s %q in %s has surrounding whitespace", capitalize(field), value, fn), ast.Location{})
		return
	}
	v.validateIdentifier(fn, field, value)
}

// validateFactor checks a non-nil factor. A nil factor is a structural
// problem.
func (v *LiteralValidator) validateFactor(fn ast.Func, f ast.Factor) {
	switch f := f.(type) {
	case ast.Double:
		if !parser.IsDouble(f.Text) {
			v.shapeError(fn, "factor", f.Text, "A factor is a number such as 10, -31.4 or 3.14e10")
		}
	case ast.Fraction:
		if !parser.IsDouble(f.Numerator) || !parser.IsDouble(f.Denominator) {
			v.shapeError(fn, "factor", f.String(), "A fraction is two numbers separated by '/', such as 1/3")
		}
	}
}

func (v *LiteralValidator) validateDuration(fn ast.Func, d ast.Duration) {
	if !parser.IsDuration(string(d)) {
		v.shapeError(fn, "duration", string(d), "A duration is a number followed by a unit such as 1d, 12h or 3mo")
	}
}

func (v *LiteralValidator) shapeError(fn ast.Func, category, text, suggestion string) {
	v.errors.AddErrorWithSuggestion(exprErrors.ErrorTypeShape,
		fmt.Sprintf("Invalid %s %q in %s", category, text, fn), ast.Location{}, suggestion)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
