// Package ast implements the universal node substrate (C1), the type
// system (C2), and the AST entity kinds (C3) of the HIL/SPD front end.
//
// A Node is the single concrete cell every tree entity is built from, the
// same way the teacher's parser.Node underlies every Python AST shape: one
// struct, a Kind tag, and a set of optional fields that only one family of
// kinds ever populates. Declarations, types, and productions all embed or
// reference a *Node for their place in the tree; nothing in this package
// uses Go inheritance to fake the "closed tagged union" called for by the
// design notes — Kind plus typed accessor methods stands in for it.
package ast

// Node is the universal AST tree cell (C1).
type Node struct {
	Kind     Kind
	Children []*Node
	Location Location
	Parent   *Node

	// Properties is the string -> atomic value bag used for diagnostics
	// and dumping (spec.md §3). Lazily allocated.
	Properties map[string]interface{}

	ctx *Context

	// Decl is non-nil iff Kind.IsDeclaration(). It carries the naming and
	// linkage metadata that distinguishes a declaration from a plain node.
	Decl *DeclInfo

	// TypeData is non-nil iff Kind.IsType().
	TypeData *TypeData

	// scope is non-nil for container nodes (module, struct, block,
	// function) once buildScopes has visited them.
	scope *Scope

	// Weak back-references (never owning, never visited by traversal).
	nameRef     *Node            // expr.name / type.name -> resolved declaration node
	operatorRef *ResolvedOperator // resolved operator expression

	// Convenience literal-ish fields, mirroring the density of fields the
	// teacher's parser.Node carries for its own literal/operator nodes.
	Name    string
	Op      string
	Literal interface{}

	// Attrs holds the node's `&tag(...)` attribute list (spec.md §3).
	Attrs Attributes
}

// NewNode allocates a bare node of the given kind, owned by ctx.
func NewNode(ctx *Context, kind Kind) *Node {
	n := &Node{Kind: kind, ctx: ctx}
	if ctx != nil {
		ctx.track(n)
	}
	return n
}

// Context returns the AST context this node was allocated in.
func (n *Node) Context() *Context { return n.ctx }

// rawChildren returns the node's child slots, including nil slots.
func (n *Node) rawChildren() []*Node { return n.Children }

// ChildrenOf returns the non-nil children in order, skipping empty slots.
// Pass includeEmpty=true to get the raw, possibly-nil-containing slice,
// needed by callers that must preserve fixed positional indices (e.g. a
// mutating visitor replacing "the type of this declaration" in place).
func (n *Node) ChildrenOf(includeEmpty bool) []*Node {
	if includeEmpty {
		return n.rawChildren()
	}
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the child at position i, or nil if the slot is out of
// range or empty. Null slots are a normal, documented state (spec.md §9
// "Open question"): callers that need to distinguish "out of range" from
// "explicit empty slot" should compare i against len(n.Children) first.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// AddChild appends a new trailing child, taking ownership of it.
func (n *Node) AddChild(child *Node) error {
	if child == nil {
		n.Children = append(n.Children, nil)
		return nil
	}
	if child.Parent != nil {
		return newInvariant("AddChild", "child already has a parent", child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
	return nil
}

// SetChild replaces slot i. The old occupant, if any, is detached; the
// incoming node must not already be parented elsewhere (InvariantViolation
// otherwise), matching spec.md §4.1.
func (n *Node) SetChild(i int, next *Node) error {
	if i < 0 {
		return newInvariant("SetChild", "negative index", n)
	}
	for len(n.Children) <= i {
		n.Children = append(n.Children, nil)
	}
	if next != nil && next.Parent != nil && next.Parent != n {
		return newInvariant("SetChild", "new child is already parented", next)
	}
	if old := n.Children[i]; old != nil && old != next {
		old.Parent = nil
	}
	if next != nil {
		next.Parent = n
	}
	n.Children[i] = next
	return nil
}

// RemoveChildren truncates the trailing region [from:] of the children
// vector, detaching every removed node.
func (n *Node) RemoveChildren(from int) {
	if from < 0 || from >= len(n.Children) {
		return
	}
	for _, c := range n.Children[from:] {
		if c != nil {
			c.Parent = nil
		}
	}
	n.Children = n.Children[:from]
}

// SetProperty stores an atomic diagnostic/dump value under key.
func (n *Node) SetProperty(key string, value interface{}) {
	if n.Properties == nil {
		n.Properties = make(map[string]interface{})
	}
	n.Properties[key] = value
}

// Property retrieves a previously stored diagnostic value.
func (n *Node) Property(key string) (interface{}, bool) {
	if n.Properties == nil {
		return nil, false
	}
	v, ok := n.Properties[key]
	return v, ok
}

// ResolvedDeclaration returns the weak declaration link set on name
// expressions and name types once the resolver has matched them. A nil
// result means "not-yet-resolved", never an error by itself.
func (n *Node) ResolvedDeclaration() *Declaration {
	if n.nameRef == nil || n.nameRef.Decl == nil {
		return nil
	}
	return &Declaration{Node: n.nameRef}
}

// SetResolvedDeclaration stamps the weak declaration link. For a Name
// type (as opposed to a name expression, which carries no TypeData),
// this is also the point at which its shape becomes fixed, so it marks
// TypeData.Resolved true here rather than at construction.
func (n *Node) SetResolvedDeclaration(target *Node) {
	n.nameRef = target
	if n.TypeData != nil {
		n.TypeData.Resolved = true
	}
}

// ResolvedOperatorRef returns the weak operator resolution, if any.
func (n *Node) ResolvedOperatorRef() *ResolvedOperator { return n.operatorRef }

// SetResolvedOperatorRef stamps the weak operator resolution.
func (n *Node) SetResolvedOperatorRef(op *ResolvedOperator) { n.operatorRef = op }

// Scope returns the symbol table attached to a container node, if any.
func (n *Node) Scope() *Scope { return n.scope }

// EnsureScope returns the node's scope table, creating an empty one the
// first time a container node is visited by buildScopes.
func (n *Node) EnsureScope(parent *Scope) *Scope {
	if n.scope == nil {
		n.scope = newScope(parent)
	}
	return n.scope
}

// String gives a short, teacher-style rendering for logs and diagnostics.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.Name != "" {
		return string(n.Kind) + "(" + n.Name + ")"
	}
	return string(n.Kind)
}

// Walk performs a pre-order depth-first traversal, skipping nil slots.
// visitor returning false stops descent into that node's children but not
// the overall walk (matches Node.Accept in the teacher's visitor.go).
func (n *Node) Walk(visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		if c != nil {
			c.Walk(visit)
		}
	}
}
