package errors

import (
	"fmt"
	"strings"

	"mackerel-hq/mmpp/pkg/expr/ast"
)

// ExtractContext extracts the lines surrounding location from src for
// error display. It returns a formatted excerpt with line numbers and a
// caret under the error column.
func ExtractContext(src string, location ast.Location, contextLines int) string {
	if !location.IsValid() {
		return ""
	}

	lines := strings.Split(src, "\n")

	errorLine := location.Line - 1
	if errorLine >= len(lines) {
		return ""
	}
	startLine := errorLine - contextLines
	endLine := errorLine + contextLines

	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	var sb strings.Builder
	maxLineNumWidth := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		lineNumStr := fmt.Sprintf("%*d", maxLineNumWidth, i+1)
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}

		sb.WriteString(fmt.Sprintf("%s %s | %s\n", prefix, lineNumStr, lines[i]))

		if i == errorLine && location.Column > 0 {
			padding := strings.Repeat(" ", location.Column-1)
			sb.WriteString(fmt.Sprintf("   %s | %s^\n", strings.Repeat(" ", maxLineNumWidth), padding))
		}
	}

	return sb.String()
}

// WithContext attaches a source excerpt to err.
func WithContext(err *Error, src string, contextLines int) *Error {
	if err.Location.IsValid() {
		err.Context = ExtractContext(src, err.Location, contextLines)
	}
	return err
}

// AddContextToError attaches the error line of src to err. Expressions are
// short, so no surrounding lines are shown.
func AddContextToError(err *Error, src string) *Error {
	return WithContext(err, src, 0)
}
