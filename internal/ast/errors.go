package ast

import "fmt"

// InvariantViolation signals a broken structural invariant of the node
// graph (two parents, out-of-range child index, missing canonical ID).
// Per spec it is fatal: callers must not attempt to recover the AST from
// whatever state triggered it. It is returned, never silently swallowed;
// internal/driver is the only place it is allowed to become a panic/recover
// pair at the outermost boundary.
type InvariantViolation struct {
	Op      string
	Detail  string
	AtNode  *Node
}

func (e *InvariantViolation) Error() string {
	if e.AtNode != nil {
		return fmt.Sprintf("invariant violation in %s at %s: %s", e.Op, e.AtNode.Location, e.Detail)
	}
	return fmt.Sprintf("invariant violation in %s: %s", e.Op, e.Detail)
}

func newInvariant(op, detail string, at *Node) error {
	return &InvariantViolation{Op: op, Detail: detail, AtNode: at}
}
