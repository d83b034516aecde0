package ast

// ResolvedOperator is the weak link an operator expression node carries
// once internal/operator has matched it to a registered descriptor
// (spec.md §4.5). It lives here, not in internal/operator, because Node
// holds a direct pointer to it and ast must not import operator (operator
// imports ast for Node/QualifiedType).
type ResolvedOperator struct {
	// Kind mirrors operator.Descriptor.Kind, duplicated here as a string
	// so this package has no compile-time dependency on internal/operator.
	Kind string
	// DeclRef is the weak link to the declaration that contributed this
	// operator overload, nil for built-ins.
	DeclRef *Node
	// ResultType is the qualified type the resolved call produces.
	ResultType QualifiedType
	// Coercions holds one entry per original operand, non-nil where an
	// implicit coercion was inserted to reach the matched signature.
	Coercions []*Node
}
