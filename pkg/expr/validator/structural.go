package validator

import (
	"fmt"

	"mackerel-hq/mmpp/pkg/expr/ast"
	exprErrors "mackerel-hq/mmpp/pkg/expr/errors"
)

// StructuralValidator checks that a tree can be rendered at all: no nil
// nodes, no nil factors and no empty groups.
type StructuralValidator struct {
	errors *exprErrors.ErrorList
}

// NewStructuralValidator creates a new structural validator.
func NewStructuralValidator() *StructuralValidator {
	return &StructuralValidator{
		errors: exprErrors.NewErrorList(),
	}
}

// Validate performs structural validation on a tree.
// It returns an ErrorList containing all structural errors found.
func (v *StructuralValidator) Validate(m ast.Metric) error {
	v.errors = exprErrors.NewErrorList()

	if ast.IsNil(m) {
		v.errors.AddError(exprErrors.ErrorTypeStructural, "Expression is empty", ast.Location{})
		return v.errors.ToError()
	}

	v.validateMetric(m, "")
	return v.errors.ToError()
}

// validateMetric checks m, a non-nil node reached through parent.
func (v *StructuralValidator) validateMetric(m ast.Metric, parent string) {
	path := string(m.Func())
	if parent != "" {
		path = parent + " > " + path
	}

	switch n := m.(type) {
	case *ast.Group:
		if len(n.Children) == 0 {
			v.errors.AddErrorWithSuggestion(
				exprErrors.ErrorTypeStructural,
				fmt.Sprintf("Group at %s has no children", path),
				ast.Location{},
				"group takes at least one metric expression",
			)
		}
	case *ast.Scale:
		v.validateFactor(n.Factor, path)
	case *ast.Offset:
		v.validateFactor(n.Factor, path)
	case *ast.TimeLeftForecast:
		v.validateFactor(n.Factor, path)
	}

	for i, child := range ast.Children(m) {
		if ast.IsNil(child) {
			v.errors.AddError(
				exprErrors.ErrorTypeStructural,
				fmt.Sprintf("Missing metric in argument %d of %s", i+1, path),
				ast.Location{},
			)
			continue
		}
		v.validateMetric(child, path)
	}
}

func (v *StructuralValidator) validateFactor(f ast.Factor, path string) {
	if f == nil {
		v.errors.AddError(
			exprErrors.ErrorTypeStructural,
			fmt.Sprintf("Missing factor in %s", path),
			ast.Location{},
		)
	}
}
