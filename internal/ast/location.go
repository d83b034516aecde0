package ast

import "fmt"

// Location describes a position range in a source file.
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// String renders a location the way diagnostics print it: "file:line:col".
func (l Location) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.StartLine, l.StartCol)
}

// IsZero reports whether the location carries no position information.
func (l Location) IsZero() bool {
	return l.File == "" && l.StartLine == 0 && l.StartCol == 0
}
