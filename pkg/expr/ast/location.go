package ast

import "fmt"

// Location represents a position in the source text of an expression.
// It enables precise error reporting with line and column information.
type Location struct {
	Source string // Name of the source ("<stdin>", a file path)
	Offset int    // Byte offset (0-based)
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
}

// String returns a human-readable representation of the location.
// Format: "source:line:column"
func (l Location) String() string {
	source := l.Source
	if source == "" {
		source = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", source, l.Line, l.Column)
}

// IsValid returns true if the location has line information.
func (l Location) IsValid() bool {
	return l.Line > 0
}
