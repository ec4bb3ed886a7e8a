package printer

import (
	"strings"

	"mackerel-hq/mmpp/pkg/expr/ast"
	exprErrors "mackerel-hq/mmpp/pkg/expr/errors"
)

const (
	// Indent is the indentation unit of one nesting level.
	Indent = "  "

	// MaxInlineDepth is the largest depth at which unary forms stay on one line.
	MaxInlineDepth = 2
)

// Render returns the canonical text of m. The result has no trailing
// newline.
//
// The depth of m is computed once. Every child is rendered at its parent's
// depth minus one, so whether a form is inlined depends on where it sits in
// the tree, not only on its own subtree.
//
// Render is total over trees produced by the parser. A hand-built tree with
// a nil node, a nil factor or an empty group is rejected with a structural
// error.
func Render(m ast.Metric) (string, error) {
	depth, err := Depth(m)
	if err != nil {
		return "", err
	}
	lines, err := render(m, depth)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// render lays out m at the given depth. The lines are relative to m's own
// indentation.
func render(m ast.Metric, depth int) ([]string, error) {
	if ast.IsNil(m) {
		return nil, nilMetricError()
	}

	switch n := m.(type) {
	case *ast.Host:
		return leaf(n.Func(), n.HostID, n.MetricName), nil
	case *ast.Service:
		return leaf(n.Func(), n.ServiceName, n.MetricName), nil
	case *ast.Role:
		return leaf(n.Func(), n.ServiceName+":"+n.RoleName, n.MetricName), nil
	case *ast.RoleSlots:
		return leaf(n.Func(), n.ServiceName+":"+n.RoleName, n.MetricName), nil

	case *ast.Avg:
		return unary(n.Func(), depth, n.Child)
	case *ast.Max:
		return unary(n.Func(), depth, n.Child)
	case *ast.Min:
		return unary(n.Func(), depth, n.Child)
	case *ast.Product:
		return unary(n.Func(), depth, n.Child)
	case *ast.Stack:
		return unary(n.Func(), depth, n.Child)

	case *ast.Diff:
		return multiline(n.Func(), depth, []ast.Metric{n.Left, n.Right})
	case *ast.Divide:
		return multiline(n.Func(), depth, []ast.Metric{n.Left, n.Right})

	case *ast.Scale:
		if n.Factor == nil {
			return nil, nilParamError(n.Func(), "factor")
		}
		return unaryParam(n.Func(), depth, n.Child, n.Factor.String())
	case *ast.Offset:
		if n.Factor == nil {
			return nil, nilParamError(n.Func(), "factor")
		}
		return unaryParam(n.Func(), depth, n.Child, n.Factor.String())
	case *ast.Percentile:
		return unaryParam(n.Func(), depth, n.Child, n.Percentage.String())
	case *ast.TimeShift:
		return unaryParam(n.Func(), depth, n.Child, n.Duration.String())
	case *ast.MovingAverage:
		return unaryParam(n.Func(), depth, n.Child, n.Duration.String())
	case *ast.LinearRegression:
		return unaryParam(n.Func(), depth, n.Child, n.Duration.String())

	case *ast.TimeLeftForecast:
		if n.Factor == nil {
			return nil, nilParamError(n.Func(), "factor")
		}
		return multiline(n.Func(), depth, []ast.Metric{n.Child}, n.Duration.String(), n.Factor.String())

	case *ast.Group:
		if len(n.Children) == 0 {
			return nil, emptyGroupError()
		}
		return multiline(n.Func(), depth, n.Children)
	}

	return nil, unknownMetricError(m)
}

func leaf(fn ast.Func, first, second string) []string {
	return []string{string(fn) + "(" + first + ", " + second + ")"}
}

// unary renders avg, max, min, product and stack.
func unary(fn ast.Func, depth int, child ast.Metric) ([]string, error) {
	c, err := render(child, depth-1)
	if err != nil {
		return nil, err
	}
	if depth <= MaxInlineDepth && len(c) == 1 {
		return []string{string(fn) + "(" + c[0] + ")"}, nil
	}
	return wrap(fn, c), nil
}

// unaryParam renders a unary form with one trailing parameter. The
// multi-line form puts the parameter on its own line.
func unaryParam(fn ast.Func, depth int, child ast.Metric, param string) ([]string, error) {
	c, err := render(child, depth-1)
	if err != nil {
		return nil, err
	}
	if depth <= MaxInlineDepth && len(c) == 1 {
		return []string{string(fn) + "(" + c[0] + ", " + param + ")"}, nil
	}
	return wrap(fn, withComma(c), []string{param}), nil
}

// multiline renders a form that is never inlined: every metric child and
// then every parameter on its own lines, separated by commas.
func multiline(fn ast.Func, depth int, children []ast.Metric, params ...string) ([]string, error) {
	args := make([][]string, 0, len(children)+len(params))
	for _, child := range children {
		c, err := render(child, depth-1)
		if err != nil {
			return nil, err
		}
		args = append(args, c)
	}
	for _, param := range params {
		args = append(args, []string{param})
	}

	for i := 0; i < len(args)-1; i++ {
		args[i] = withComma(args[i])
	}
	return wrap(fn, args...), nil
}

// wrap returns "fn(", the argument lines one level deeper, and ")" at the
// form's own level.
func wrap(fn ast.Func, args ...[]string) []string {
	lines := []string{string(fn) + "("}
	for _, arg := range args {
		for _, line := range arg {
			lines = append(lines, Indent+line)
		}
	}
	return append(lines, ")")
}

// withComma returns a copy of lines with a comma after the last line.
func withComma(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	out[len(out)-1] += ","
	return out
}

func nilParamError(fn ast.Func, param string) *exprErrors.Error {
	return exprErrors.New(exprErrors.ErrorTypeStructural, ast.Location{}, "%s has no %s", fn, param)
}
