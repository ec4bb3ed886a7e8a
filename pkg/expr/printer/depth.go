package printer

import (
	"mackerel-hq/mmpp/pkg/expr/ast"
	exprErrors "mackerel-hq/mmpp/pkg/expr/errors"
)

// Depth returns the depth of the tree rooted at m. A leaf has depth 1 and
// every other node is one deeper than its deepest metric child. Parameters
// do not contribute.
//
// Depth fails on a nil node or an empty group, which have no defined depth.
func Depth(m ast.Metric) (int, error) {
	if ast.IsNil(m) {
		return 0, nilMetricError()
	}
	if ast.IsLeaf(m) {
		return 1, nil
	}

	children := ast.Children(m)
	if len(children) == 0 {
		if _, ok := m.(*ast.Group); ok {
			return 0, emptyGroupError()
		}
		return 0, unknownMetricError(m)
	}

	deepest := 0
	for _, child := range children {
		d, err := Depth(child)
		if err != nil {
			return 0, err
		}
		deepest = max(deepest, d)
	}
	return deepest + 1, nil
}

func nilMetricError() *exprErrors.Error {
	return exprErrors.New(exprErrors.ErrorTypeStructural, ast.Location{}, "nil metric in expression tree")
}

func emptyGroupError() *exprErrors.Error {
	return exprErrors.New(exprErrors.ErrorTypeStructural, ast.Location{}, "group has no children").
		WithSuggestion("group takes at least one metric expression")
}

func unknownMetricError(m ast.Metric) *exprErrors.Error {
	return exprErrors.New(exprErrors.ErrorTypeInternal, ast.Location{}, "unexpected metric node %T", m)
}
