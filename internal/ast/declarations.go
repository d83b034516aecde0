package ast

// Linkage is the visibility/role a declaration was written with.
type Linkage string

const (
	LinkagePrivate Linkage = "private"
	LinkagePublic  Linkage = "public"
	LinkageStruct  Linkage = "struct"
	LinkageInit    Linkage = "init"
	LinkagePreInit Linkage = "pre_init"
)

// DeclInfo carries the naming/linkage/ID metadata shared by every
// declaration subkind (spec.md §3). It lives on Node.Decl and is non-nil
// iff the node's Kind.IsDeclaration() is true.
type DeclInfo struct {
	ID               string
	Linkage          Linkage
	FullyQualifiedID string
	CanonicalID      string
	Doc              string
}

// Declaration is a typed view over a declaration node. It never owns the
// underlying node; it is a convenience wrapper so call sites that only
// ever deal with declarations don't have to type-assert Node.Decl != nil
// everywhere. Two Declaration values wrapping the same *Node compare
// equal by their Node pointers.
type Declaration struct {
	*Node
}

// AsDeclaration returns a Declaration view of n, or nil if n is not a
// declaration node.
func AsDeclaration(n *Node) *Declaration {
	if n == nil || n.Decl == nil {
		return nil
	}
	return &Declaration{Node: n}
}

// ID returns the short name as written.
func (d *Declaration) ID() string { return d.Decl.ID }

// Linkage returns the declaration's linkage.
func (d *Declaration) Linkage() Linkage { return d.Decl.Linkage }

// CanonicalID returns the globally unique, stable identifier assigned by
// the ID assigner (C7), or "" if assignment has not run yet.
func (d *Declaration) CanonicalID() string { return d.Decl.CanonicalID }

// FullyQualifiedID returns "<module>::<scope-path>::<id>", or "" if the
// ID assigner has not run yet.
func (d *Declaration) FullyQualifiedID() string { return d.Decl.FullyQualifiedID }

// NewDeclaration allocates a declaration node of the given kind and ID,
// panicking (via a returned error instead, per this codebase's "no
// exceptions for control flow" rule) if kind is not a declaration kind.
func NewDeclaration(ctx *Context, kind Kind, id string, linkage Linkage) (*Node, error) {
	if !kind.IsDeclaration() {
		return nil, newInvariant("NewDeclaration", "kind is not a declaration kind: "+string(kind), nil)
	}
	n := NewNode(ctx, kind)
	n.Decl = &DeclInfo{ID: id, Linkage: linkage}
	n.Name = id
	return n, nil
}
