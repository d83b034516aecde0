package module

import "fmt"

// ParseError is surfaced from an external SourceParser; it carries a
// location and message (spec.md §7).
type ParseError struct {
	File    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.File, e.Message)
}

// ImportFailure covers both "not found in search dirs" and "import cycle
// detected during eager inclusion" (spec.md §7).
type ImportFailure struct {
	Name   string
	Scope  string
	Reason string
}

func (e *ImportFailure) Error() string {
	return fmt.Sprintf("failed to import %q (scope %q): %s", e.Name, e.Scope, e.Reason)
}

// DuplicateModule is raised when a module would collide with an
// already-indexed UID/path/(id,scope) key (spec.md §4.3 invariant).
type DuplicateModule struct {
	UID UID
}

func (e *DuplicateModule) Error() string {
	return fmt.Sprintf("duplicate module: %s", e.UID)
}
