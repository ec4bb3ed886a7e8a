package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"mackerel-hq/mmpp/pkg/expr/ast"
)

// ErrorType categorizes the type of error encountered while parsing,
// validating or rendering an expression.
type ErrorType string

const (
	ErrorTypeSyntax     ErrorType = "syntax"     // Input does not match the grammar
	ErrorTypeShape      ErrorType = "shape"      // Literal has the wrong shape for its argument
	ErrorTypeLimit      ErrorType = "limit"      // Input size or nesting depth exceeded
	ErrorTypeStructural ErrorType = "structural" // Malformed tree (empty group, nil child)
	ErrorTypeInternal   ErrorType = "internal"   // Broken internal invariant
	ErrorTypeIO         ErrorType = "io"         // Reading a source failed
)

// Error represents a rich error with location, context, and suggestions.
type Error struct {
	Type       ErrorType    // Category of error
	Message    string       // Error message
	Location   ast.Location // Source location (line, column)
	Context    string       // Source excerpt with a caret under the column
	Suggestion string       // Suggested fix (optional)
}

// Error implements the error interface.
// It returns a formatted error message with location and context.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s\n", e.Type, e.Message))

	if e.Location.IsValid() {
		sb.WriteString(fmt.Sprintf("  --> %s\n", e.Location.String()))
	}

	if e.Context != "" {
		sb.WriteString("  |\n")
		sb.WriteString(e.Context)
		sb.WriteString("  |\n")
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  = suggestion: %s\n", e.Suggestion))
	}

	return sb.String()
}

// New creates an error of the given type.
func New(errType ErrorType, location ast.Location, format string, args ...any) *Error {
	return &Error{
		Type:     errType,
		Message:  fmt.Sprintf(format, args...),
		Location: location,
	}
}

// WithSuggestion sets the suggestion and returns the error.
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestion = suggestion
	return e
}

// ErrorList represents a collection of errors.
// It allows accumulating multiple errors instead of failing on the first error.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and adds a new error with the given parameters.
func (el *ErrorList) AddError(errType ErrorType, message string, location ast.Location) {
	el.Add(&Error{
		Type:     errType,
		Message:  message,
		Location: location,
	})
}

// AddErrorWithSuggestion creates and adds a new error with a suggestion.
func (el *ErrorList) AddErrorWithSuggestion(errType ErrorType, message string, location ast.Location, suggestion string) {
	el.Add(&Error{
		Type:       errType,
		Message:    message,
		Location:   location,
		Suggestion: suggestion,
	})
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("Error %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToError returns nil if the error list is empty, otherwise returns the error list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// HasErrorType returns true if the error list contains at least one error of the given type.
func (el *ErrorList) HasErrorType(errType ErrorType) bool {
	for _, err := range el.Errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}

// TypeOf returns the ErrorType of err, looking through wrapped errors.
// The first entry decides for an ErrorList. It returns "" for foreign errors.
func TypeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	var el *ErrorList
	if stderrors.As(err, &el) && el.HasErrors() {
		return el.Errors[0].Type
	}
	return ""
}

// IsSyntax reports whether err is a syntax error.
func IsSyntax(err error) bool {
	return TypeOf(err) == ErrorTypeSyntax
}

// IsShape reports whether err is a literal shape error.
func IsShape(err error) bool {
	return TypeOf(err) == ErrorTypeShape
}

// Flatten returns the individual errors held by err: the entries of an
// ErrorList, a single *Error, or nil for foreign errors.
func Flatten(err error) []*Error {
	var el *ErrorList
	if stderrors.As(err, &el) {
		return el.Errors
	}
	var e *Error
	if stderrors.As(err, &e) {
		return []*Error{e}
	}
	return nil
}
