package ast

// Literal constructor nodes (spec.md §4.9 "Ctors"). Scalars carry their
// value in Node.Literal; compound ctors carry their elements in Children.

// NewBoolCtor builds a bool literal.
func NewBoolCtor(ctx *Context, v bool) *Node {
	n := NewNode(ctx, KindCtorBool)
	n.Literal = v
	return n
}

// NewIntCtor builds an integer literal with a configurable bit width,
// matching the type system's int<width> (spec.md §4.9).
func NewIntCtor(ctx *Context, v int64, width int, signed bool) *Node {
	n := NewNode(ctx, KindCtorInt)
	n.Literal = v
	n.SetProperty("width", width)
	n.SetProperty("signed", signed)
	return n
}

// NewRealCtor builds a floating-point literal.
func NewRealCtor(ctx *Context, v float64) *Node {
	n := NewNode(ctx, KindCtorReal)
	n.Literal = v
	return n
}

// NewStringCtor builds a string literal.
func NewStringCtor(ctx *Context, v string) *Node {
	n := NewNode(ctx, KindCtorString)
	n.Literal = v
	return n
}

// NewBytesCtor builds a bytes literal.
func NewBytesCtor(ctx *Context, v []byte) *Node {
	n := NewNode(ctx, KindCtorBytes)
	n.Literal = v
	return n
}

// NewRegexpCtor builds a regexp literal. nosub marks the &nosub
// attribute (spec.md §4.9) that suppresses capture-group allocation.
func NewRegexpCtor(ctx *Context, pattern string, nosub bool) *Node {
	n := NewNode(ctx, KindCtorRegexp)
	n.Literal = pattern
	n.SetProperty("nosub", nosub)
	return n
}

// NewListCtor/NewVectorCtor/NewSetCtor build a compound literal whose
// Children are its elements in order.
func newCompoundCtor(ctx *Context, kind Kind, elems []*Node) (*Node, error) {
	n := NewNode(ctx, kind)
	for _, e := range elems {
		if err := n.AddChild(e); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func NewListCtor(ctx *Context, elems []*Node) (*Node, error) {
	return newCompoundCtor(ctx, KindCtorList, elems)
}

func NewVectorCtor(ctx *Context, elems []*Node) (*Node, error) {
	return newCompoundCtor(ctx, KindCtorVector, elems)
}

func NewSetCtor(ctx *Context, elems []*Node) (*Node, error) {
	return newCompoundCtor(ctx, KindCtorSet, elems)
}

func NewTupleCtor(ctx *Context, elems []*Node) (*Node, error) {
	return newCompoundCtor(ctx, KindCtorTuple, elems)
}

// NewMapCtor builds a map literal from alternating key/value children:
// Children[2i] is the i-th key, Children[2i+1] is the i-th value.
func NewMapCtor(ctx *Context, keys, vals []*Node) (*Node, error) {
	if len(keys) != len(vals) {
		return nil, newInvariant("NewMapCtor", "keys/values length mismatch", nil)
	}
	n := NewNode(ctx, KindCtorMap)
	for i := range keys {
		if err := n.AddChild(keys[i]); err != nil {
			return nil, err
		}
		if err := n.AddChild(vals[i]); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// MapCtorEntries returns the (key, value) pairs of a map literal.
func (n *Node) MapCtorEntries() [][2]*Node {
	out := make([][2]*Node, 0, len(n.Children)/2)
	for i := 0; i+1 < len(n.Children); i += 2 {
		out = append(out, [2]*Node{n.Children[i], n.Children[i+1]})
	}
	return out
}

const optionalCtorSlotValue = 0

// NewOptionalCtorSet builds a set optional(value).
func NewOptionalCtorSet(ctx *Context, value *Node) (*Node, error) {
	n := NewNode(ctx, KindCtorOptional)
	n.SetProperty("optional_set", true)
	if err := n.SetChild(optionalCtorSlotValue, value); err != nil {
		return nil, err
	}
	return n, nil
}

// NewOptionalCtorUnset builds an unset optional.
func NewOptionalCtorUnset(ctx *Context) *Node {
	n := NewNode(ctx, KindCtorOptional)
	n.SetProperty("optional_set", false)
	return n
}

// OptionalIsSet reports whether an optional ctor carries a value.
func (n *Node) OptionalIsSet() bool {
	v, _ := n.Property("optional_set")
	b, _ := v.(bool)
	return b
}

// OptionalValue returns the wrapped value of a set optional ctor, or nil.
func (n *Node) OptionalValue() *Node { return n.Child(optionalCtorSlotValue) }

const (
	structCtorFieldName = "field_names"
)

// NewStructCtor builds a struct literal; fieldNames[i] names the value in
// Children[i].
func NewStructCtor(ctx *Context, fieldNames []string, values []*Node) (*Node, error) {
	if len(fieldNames) != len(values) {
		return nil, newInvariant("NewStructCtor", "names/values length mismatch", nil)
	}
	n := NewNode(ctx, KindCtorStruct)
	for _, v := range values {
		if err := n.AddChild(v); err != nil {
			return nil, err
		}
	}
	n.SetProperty(structCtorFieldName, append([]string{}, fieldNames...))
	return n, nil
}

// StructCtorFieldNames returns the field names of a struct literal, in
// the same order as Children.
func (n *Node) StructCtorFieldNames() []string {
	v, _ := n.Property(structCtorFieldName)
	names, _ := v.([]string)
	return names
}

const enumCtorSlotLabel = 0

// NewEnumCtor builds an enum(Label) constructor, referring to the label
// by name until the resolver fixes up the weak label reference.
func NewEnumCtor(ctx *Context, labelName string) *Node {
	n := NewNode(ctx, KindCtorEnum)
	n.Name = labelName
	return n
}

// NewRefCtor builds a strong/weak/value reference literal wrapping value.
func NewRefCtor(ctx *Context, style RefStyle, value *Node) (*Node, error) {
	n := NewNode(ctx, KindCtorRef)
	n.SetProperty("ref_style", string(style))
	if err := n.SetChild(0, value); err != nil {
		return nil, err
	}
	return n, nil
}
