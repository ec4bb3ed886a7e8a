package parser

import (
	"regexp"

	"mackerel-hq/mmpp/pkg/expr/ast"
	exprErrors "mackerel-hq/mmpp/pkg/expr/errors"
)

const number = `[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)`

var (
	doubleRe   = regexp.MustCompile(`^` + number + `(?:[eE][+-]?[0-9]+)?$`)
	durationRe = regexp.MustCompile(`^` + number + `[A-Za-z]+$`)
)

// IsDouble reports whether text is a decimal literal such as "10.0",
// "3.140e10" or "-31.4".
func IsDouble(text string) bool {
	return doubleRe.MatchString(text)
}

// IsDuration reports whether text is a number immediately followed by a
// unit suffix such as "1d", "30m" or "3mo". Units are not enumerated.
func IsDuration(text string) bool {
	return durationRe.MatchString(text)
}

// builder constructs AST nodes from a parse tree.
type builder struct{}

// newBuilder creates a new AST builder.
func newBuilder() *builder {
	return &builder{}
}

// build converts a function node into a Metric, converting metric arguments
// depth-first, left to right.
func (b *builder) build(n *Node) (ast.Metric, error) {
	if err := b.checkArity(n); err != nil {
		return nil, err
	}

	switch n.Rule {
	case RuleHost:
		return &ast.Host{HostID: n.Children[0].Text, MetricName: n.Children[1].Text}, nil
	case RuleService:
		return &ast.Service{ServiceName: n.Children[0].Text, MetricName: n.Children[1].Text}, nil
	case RuleRole:
		service, role, err := b.roleParts(n.Children[0])
		if err != nil {
			return nil, err
		}
		return &ast.Role{ServiceName: service, RoleName: role, MetricName: n.Children[1].Text}, nil
	case RuleRoleSlots:
		service, role, err := b.roleParts(n.Children[0])
		if err != nil {
			return nil, err
		}
		return &ast.RoleSlots{ServiceName: service, RoleName: role, MetricName: n.Children[1].Text}, nil

	case RuleAvg, RuleMax, RuleMin, RuleProduct, RuleStack:
		child, err := b.build(n.Children[0])
		if err != nil {
			return nil, err
		}
		return wrapUnary(n.Rule, child), nil

	case RuleDiff, RuleDivide:
		left, err := b.build(n.Children[0])
		if err != nil {
			return nil, err
		}
		right, err := b.build(n.Children[1])
		if err != nil {
			return nil, err
		}
		if n.Rule == RuleDiff {
			return &ast.Diff{Left: left, Right: right}, nil
		}
		return &ast.Divide{Left: left, Right: right}, nil

	case RuleScale, RuleOffset:
		child, err := b.build(n.Children[0])
		if err != nil {
			return nil, err
		}
		factor, err := b.factor(n.Children[1])
		if err != nil {
			return nil, err
		}
		if n.Rule == RuleScale {
			return &ast.Scale{Child: child, Factor: factor}, nil
		}
		return &ast.Offset{Child: child, Factor: factor}, nil

	case RulePercentile:
		child, err := b.build(n.Children[0])
		if err != nil {
			return nil, err
		}
		lit := n.Children[1]
		if lit.Rule != RuleLiteral || !IsDouble(lit.Text) {
			return nil, b.shapeError(lit, "percentage")
		}
		return &ast.Percentile{Child: child, Percentage: ast.Percentage(lit.Text)}, nil

	case RuleTimeShift, RuleMovingAverage, RuleLinearRegression:
		child, err := b.build(n.Children[0])
		if err != nil {
			return nil, err
		}
		duration, err := b.duration(n.Children[1])
		if err != nil {
			return nil, err
		}
		switch n.Rule {
		case RuleTimeShift:
			return &ast.TimeShift{Child: child, Duration: duration}, nil
		case RuleMovingAverage:
			return &ast.MovingAverage{Child: child, Duration: duration}, nil
		default:
			return &ast.LinearRegression{Child: child, Duration: duration}, nil
		}

	case RuleTimeLeftForecast:
		child, err := b.build(n.Children[0])
		if err != nil {
			return nil, err
		}
		duration, err := b.duration(n.Children[1])
		if err != nil {
			return nil, err
		}
		factor, err := b.factor(n.Children[2])
		if err != nil {
			return nil, err
		}
		return &ast.TimeLeftForecast{Child: child, Duration: duration, Factor: factor}, nil

	case RuleGroup:
		children := make([]ast.Metric, 0, len(n.Children))
		for _, c := range n.Children {
			child, err := b.build(c)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return &ast.Group{Children: children}, nil
	}

	return nil, exprErrors.New(exprErrors.ErrorTypeInternal, n.Location,
		"unexpected parse tree rule %s", n.Rule)
}

// checkArity verifies that a function node has the children its signature
// requires. The grammar guarantees this for trees produced by ParseTree.
func (b *builder) checkArity(n *Node) error {
	sig, ok := signatureOf(n.Rule)
	if !ok {
		return exprErrors.New(exprErrors.ErrorTypeInternal, n.Location,
			"unexpected parse tree rule %s", n.Rule)
	}
	if len(n.Children) == len(sig.Args) || (sig.Variadic && len(n.Children) >= len(sig.Args)) {
		return nil
	}
	return exprErrors.New(exprErrors.ErrorTypeInternal, n.Location,
		"%s node has %d children, want %d", n.Rule, len(n.Children), len(sig.Args))
}

func wrapUnary(rule Rule, child ast.Metric) ast.Metric {
	switch rule {
	case RuleAvg:
		return &ast.Avg{Child: child}
	case RuleMax:
		return &ast.Max{Child: child}
	case RuleMin:
		return &ast.Min{Child: child}
	case RuleProduct:
		return &ast.Product{Child: child}
	default:
		return &ast.Stack{Child: child}
	}
}

func (b *builder) roleParts(n *Node) (string, string, error) {
	if n.Rule != RuleRoleIdentifier || len(n.Children) != 2 {
		return "", "", exprErrors.New(exprErrors.ErrorTypeInternal, n.Location,
			"expected role identifier node, got %s", n.Rule)
	}
	return n.Children[0].Text, n.Children[1].Text, nil
}

// factor converts a literal or fraction node into a Factor. Anything that is
// not a double or a ratio of doubles is rejected.
func (b *builder) factor(n *Node) (ast.Factor, error) {
	switch n.Rule {
	case RuleLiteral:
		if IsDouble(n.Text) {
			return ast.Double{Text: n.Text}, nil
		}
	case RuleFraction:
		if len(n.Children) == 2 && IsDouble(n.Children[0].Text) && IsDouble(n.Children[1].Text) {
			return ast.Fraction{Numerator: n.Children[0].Text, Denominator: n.Children[1].Text}, nil
		}
	}
	return nil, b.shapeError(n, "factor")
}

func (b *builder) duration(n *Node) (ast.Duration, error) {
	if n.Rule != RuleLiteral || !IsDuration(n.Text) {
		return "", b.shapeError(n, "duration")
	}
	return ast.Duration(n.Text), nil
}

func (b *builder) shapeError(n *Node, category string) *exprErrors.Error {
	err := exprErrors.New(exprErrors.ErrorTypeShape, n.Location, "invalid %s %q", category, n.Text)
	switch category {
	case "factor":
		err.Suggestion = "A factor is a number such as 10, -31.4 or 3.14e10, or a fraction such as 1/3"
	case "percentage":
		err.Suggestion = "A percentage is a number such as 75 or 99.9"
	case "duration":
		err.Suggestion = "A duration is a number followed by a unit such as 1d, 12h or 3mo"
	}
	return err
}
