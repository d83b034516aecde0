package ast

// This file provides constructors for the built-in type kinds enumerated
// in spec.md §4.9. Each constructor fixes the meaning of Children[i] for
// its kind; accessor methods below give that position a name instead of
// making callers remember magic indices.

// NewPrimitiveType builds a type node with no children (void, null,
// unknown, error, bool, string, bytes, address, port, interval, time).
func NewPrimitiveType(ctx *Context, kind Kind) (*Node, error) {
	n, err := NewType(ctx, kind, string(kind))
	if err != nil {
		return nil, err
	}
	n.TypeData.Resolved = true
	return n, nil
}

// NewIntType builds an integer type with the given bit width and
// signedness, e.g. int<32> / uint<64>.
func NewIntType(ctx *Context, width int, signed bool) (*Node, error) {
	n, err := NewType(ctx, KindTypeInt, "int")
	if err != nil {
		return nil, err
	}
	n.TypeData.Width = width
	n.TypeData.Signed = signed
	n.TypeData.Resolved = true
	n.TypeData.Sortable = true
	return n, nil
}

// NewRealType builds a floating-point type of the given width.
func NewRealType(ctx *Context, width int) (*Node, error) {
	n, err := NewType(ctx, KindTypeReal, "real")
	if err != nil {
		return nil, err
	}
	n.TypeData.Width = width
	n.TypeData.Resolved = true
	n.TypeData.Sortable = true
	return n, nil
}

// containerSlotElem is the fixed slot for the element type of every
// single-parameter container type (list, vector, set, stream, optional).
const containerSlotElem = 0

// NewContainerType builds list<T>/vector<T>/set<T>/stream<T>/optional<T>.
// It only establishes the structural child slot; elem's constness is left
// as it is, also when the caller wraps the result in a QualifiedType.
func NewContainerType(ctx *Context, kind Kind, elem *Node) (*Node, error) {
	switch kind {
	case KindTypeList, KindTypeVector, KindTypeSet, KindTypeStream, KindTypeOptional:
	default:
		return nil, newInvariant("NewContainerType", "not a single-parameter container kind", nil)
	}
	n, err := NewType(ctx, kind, string(kind))
	if err != nil {
		return nil, err
	}
	if err := n.SetChild(containerSlotElem, elem); err != nil {
		return nil, err
	}
	n.TypeData.Allocable = true
	n.TypeData.Resolved = true
	return n, nil
}

// Elem returns the element type of a single-parameter container type.
func (n *Node) Elem() *Node { return n.Child(containerSlotElem) }

const (
	mapSlotKey = 0
	mapSlotVal = 1
)

// NewMapType builds map<K,V>. Iterator sub-types (spec.md §4.9) are
// synthesized lazily by the resolver the first time they're requested,
// via MapIteratorType, rather than stored eagerly on every map node.
func NewMapType(ctx *Context, key, val *Node) (*Node, error) {
	n, err := NewType(ctx, KindTypeMap, "map")
	if err != nil {
		return nil, err
	}
	if err := n.SetChild(mapSlotKey, key); err != nil {
		return nil, err
	}
	if err := n.SetChild(mapSlotVal, val); err != nil {
		return nil, err
	}
	n.TypeData.Allocable = true
	n.TypeData.Resolved = true
	return n, nil
}

// Key returns a map type's key type.
func (n *Node) Key() *Node { return n.Child(mapSlotKey) }

// Val returns a map type's value type.
func (n *Node) Val() *Node { return n.Child(mapSlotVal) }

// RefStyle distinguishes the three reference type flavors (spec.md §4.9).
type RefStyle string

const (
	RefStrong RefStyle = "strong"
	RefWeak   RefStyle = "weak"
	RefValue  RefStyle = "value"
)

const refSlotTarget = 0

// NewRefType builds strong_ref<T>/weak_ref<T>/value_ref<T>.
func NewRefType(ctx *Context, style RefStyle, target *Node) (*Node, error) {
	n, err := NewType(ctx, KindTypeRefKind, "ref."+string(style))
	if err != nil {
		return nil, err
	}
	if err := n.SetChild(refSlotTarget, target); err != nil {
		return nil, err
	}
	n.TypeData.ReferenceType = true
	n.TypeData.Resolved = true
	n.SetProperty("ref_style", string(style))
	return n, nil
}

// RefTarget returns the pointee type of a reference type.
func (n *Node) RefTarget() *Node { return n.Child(refSlotTarget) }

// RefStyleOf returns the reference flavor of a type.ref node.
func (n *Node) RefStyleOf() RefStyle {
	v, _ := n.Property("ref_style")
	s, _ := v.(string)
	return RefStyle(s)
}

// NewStructType builds an empty struct type; fields, parameters, and the
// $self declaration are added with AddField/AddParam/SetSelf. The struct
// is a NameType (compared nominally) per spec.md §3.
func NewStructType(ctx *Context, name string) (*Node, error) {
	n, err := NewType(ctx, KindTypeStruct, "struct")
	if err != nil {
		return nil, err
	}
	n.Name = name
	n.TypeData.NameType = true
	n.TypeData.Allocable = true
	n.TypeData.Mutable = true
	n.TypeData.Resolved = true
	return n, nil
}

// AddField appends a field declaration to a struct/union type.
func (n *Node) AddField(field *Node) error { return n.AddChild(field) }

// Fields returns a struct/union type's field declarations.
func (n *Node) Fields() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c != nil && c.Kind == KindFieldDecl {
			out = append(out, c)
		}
	}
	return out
}

// NewEnumType builds an enum type; labels are added with AddLabel.
func NewEnumType(ctx *Context, name string) (*Node, error) {
	n, err := NewType(ctx, KindTypeEnum, "enum")
	if err != nil {
		return nil, err
	}
	n.Name = name
	n.TypeData.NameType = true
	n.TypeData.Sortable = true
	n.TypeData.Resolved = true
	return n, nil
}

// AddLabel appends an enum label declaration.
func (n *Node) AddLabel(label *Node) error { return n.AddChild(label) }

// Labels returns an enum type's label declarations.
func (n *Node) Labels() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c != nil && c.Kind == KindEnumLabel {
			out = append(out, c)
		}
	}
	return out
}

// NewNameType builds an unresolved reference to a type declared
// elsewhere, by name. TypeData.Resolved stays false until the resolver
// calls n.SetResolvedDeclaration, which stamps it once the name is found
// in scope — unlike every other type kind here, a Name type's shape
// isn't fixed at construction.
func NewNameType(ctx *Context, name string) (*Node, error) {
	n, err := NewType(ctx, KindTypeName, "name")
	if err != nil {
		return nil, err
	}
	n.Name = name
	n.TypeData.IsWildcard = false
	return n, nil
}

// NewFunctionType builds a function type from parameter types and a
// result type. Parameters are Children[:len-1], the result type is the
// last child, so arity is implicit in len(Children)-1.
func NewFunctionType(ctx *Context, params []*Node, result *Node) (*Node, error) {
	n, err := NewType(ctx, KindTypeFunc, "func")
	if err != nil {
		return nil, err
	}
	for _, p := range params {
		if err := n.AddChild(p); err != nil {
			return nil, err
		}
	}
	if err := n.AddChild(result); err != nil {
		return nil, err
	}
	n.TypeData.Resolved = true
	return n, nil
}

// Params returns a function type's parameter types.
func (n *Node) Params() []*Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[:len(n.Children)-1]
}

// Result returns a function type's result type.
func (n *Node) Result() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// NewWildcardType builds an open type used in overload signatures, e.g.
// "any vector". It matches any instance of its TypeClass via Same.
func NewWildcardType(ctx *Context, kind Kind, typeClass string) (*Node, error) {
	n, err := NewType(ctx, kind, typeClass)
	if err != nil {
		return nil, err
	}
	n.TypeData.IsWildcard = true
	n.TypeData.Resolved = true
	return n, nil
}
