package validator

import (
	"mackerel-hq/mmpp/pkg/expr/ast"
	exprErrors "mackerel-hq/mmpp/pkg/expr/errors"
)

// Validator is the main validator that orchestrates all validation passes.
// It runs structural and literal validation in sequence.
type Validator struct {
	structural *StructuralValidator
	literals   *LiteralValidator
}

// NewValidator creates a new validator with all validation passes.
func NewValidator() *Validator {
	return &Validator{
		structural: NewStructuralValidator(),
		literals:   NewLiteralValidator(),
	}
}

// Validate runs all validation passes on an expression tree and returns
// every problem found as an *errors.ErrorList, or nil.
func (v *Validator) Validate(m ast.Metric) error {
	errors := exprErrors.NewErrorList()

	if err := v.structural.Validate(m); err != nil {
		if errList, ok := err.(*exprErrors.ErrorList); ok {
			errors.Errors = append(errors.Errors, errList.Errors...)
		}
	}

	// Literal checks assume a well-formed tree
	if !errors.HasErrorType(exprErrors.ErrorTypeStructural) {
		if err := v.literals.Validate(m); err != nil {
			if errList, ok := err.(*exprErrors.ErrorList); ok {
				errors.Errors = append(errors.Errors, errList.Errors...)
			}
		}
	}

	return errors.ToError()
}

// ValidateStructural runs only structural validation.
func (v *Validator) ValidateStructural(m ast.Metric) error {
	return v.structural.Validate(m)
}

// ValidateLiterals runs only identifier and literal validation.
func (v *Validator) ValidateLiterals(m ast.Metric) error {
	return v.literals.Validate(m)
}
