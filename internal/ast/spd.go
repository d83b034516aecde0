package ast

// This file covers the SPD (parser-description language) extension node
// kinds of spec.md §4.9: unit types and their fields/sinks/hooks, plus
// the grammar production nodes synthesized when a unit is lowered to HIL.

// NewUnitType builds an empty SPD unit type. Members (fields, local
// variables, sinks, switches, hooks, properties) are all appended as
// Children; each member's own Kind says which kind of member it is, so a
// single ordered Children vector preserves declaration order across all
// of them, matching how the grammar is actually laid out on the page.
func NewUnitType(ctx *Context, name string) (*Node, error) {
	n, err := NewType(ctx, KindSPDUnit, "unit")
	if err != nil {
		return nil, err
	}
	n.Name = name
	n.TypeData.NameType = true
	return n, nil
}

// AddMember appends a field/variable/sink/switch/hook/property to a unit
// type, in declaration order.
func (n *Node) AddMember(member *Node) error { return n.AddChild(member) }

// Members returns a unit type's members in declaration order.
func (n *Node) Members() []*Node { return n.Children }

// MembersOfKind filters a unit type's members by kind.
func (n *Node) MembersOfKind(kind Kind) []*Node {
	var out []*Node
	for _, m := range n.Children {
		if m != nil && m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

const (
	fieldSlotType  = 0
	fieldSlotGuard = 1
)

// NewUnitField builds a ctor- or type-driven unit field. repeat, when
// non-nil, is the container-repeat count/condition expression (spec.md
// §4.9 "optional container repeat"). guard is the field's optional
// condition. args are constructor/type arguments.
func NewUnitField(ctx *Context, name string, fieldType *Node, guard *Node, repeat *Node, args []*Node) (*Node, error) {
	n := NewNode(ctx, KindSPDField)
	n.Name = name
	if err := n.SetChild(fieldSlotType, fieldType); err != nil {
		return nil, err
	}
	if guard != nil {
		if err := n.SetChild(fieldSlotGuard, guard); err != nil {
			return nil, err
		}
	}
	if repeat != nil {
		n.SetProperty("repeat", repeat)
	}
	for _, a := range args {
		if err := n.AddChild(a); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// FieldType returns a unit field's ctor- or type-driven type.
func (n *Node) FieldType() *Node { return n.Child(fieldSlotType) }

// FieldGuard returns a unit field's optional guard condition, or nil.
func (n *Node) FieldGuard() *Node { return n.Child(fieldSlotGuard) }

// FieldRepeat returns a unit field's container-repeat expression, if any.
func (n *Node) FieldRepeat() *Node {
	v, _ := n.Property("repeat")
	r, _ := v.(*Node)
	return r
}

// NewUnresolvedField builds a field that is name-only until the resolver
// matches the name to a type or ctor (spec.md §4.9 "unresolved field").
func NewUnresolvedField(ctx *Context, name string) *Node {
	n := NewNode(ctx, KindSPDUnresField)
	n.Name = name
	return n
}

// NewPropertyItem builds one `&tag = value;` unit property.
func NewPropertyItem(ctx *Context, tag string, value *Node) (*Node, error) {
	n := NewNode(ctx, KindSPDProperty)
	n.Name = tag
	if err := n.SetChild(0, value); err != nil {
		return nil, err
	}
	return n, nil
}

// NewSinkType builds a unit sink declaration.
func NewSinkType(ctx *Context, name string, sinkType *Node) (*Node, error) {
	n := NewNode(ctx, KindSPDSink)
	n.Name = name
	if err := n.SetChild(0, sinkType); err != nil {
		return nil, err
	}
	return n, nil
}

// HookEngine names the evaluation engine a hook runs under.
type HookEngine string

const (
	HookEngineHIL    HookEngine = "hil"
	HookEngineNative HookEngine = "native"
)

// NewHookDecl builds a hook declaration bound to a unit member.
func NewHookDecl(ctx *Context, engine HookEngine, body *Node) (*Node, error) {
	n := NewNode(ctx, KindSPDHook)
	n.SetProperty("engine", string(engine))
	if err := n.SetChild(0, body); err != nil {
		return nil, err
	}
	return n, nil
}

// HookEngineOf returns a hook declaration's engine kind.
func (n *Node) HookEngineOf() HookEngine {
	v, _ := n.Property("engine")
	s, _ := v.(string)
	return HookEngine(s)
}

// --- Grammar production nodes (the lowering target of a unit) ---

// NewAtomicProduction builds a leaf production matching a single ctor or
// type directly (no sub-productions).
func NewAtomicProduction(ctx *Context, fieldRef *Node) (*Node, error) {
	n := NewNode(ctx, KindProdAtomic)
	if err := n.SetChild(0, fieldRef); err != nil {
		return nil, err
	}
	return n, nil
}

// NewSequenceProduction builds an ordered sequence of sub-productions.
func NewSequenceProduction(ctx *Context, parts []*Node) (*Node, error) {
	n := NewNode(ctx, KindProdSequence)
	for _, p := range parts {
		if err := n.AddChild(p); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// NewChoiceProduction builds a guarded choice among alternatives, one
// per switch case.
func NewChoiceProduction(ctx *Context, alternatives []*Node) (*Node, error) {
	n := NewNode(ctx, KindProdChoice)
	for _, a := range alternatives {
		if err := n.AddChild(a); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// NewLookAheadProduction builds a zero-width look-ahead assertion.
func NewLookAheadProduction(ctx *Context, inner *Node) (*Node, error) {
	n := NewNode(ctx, KindProdLookAhead)
	if err := n.SetChild(0, inner); err != nil {
		return nil, err
	}
	return n, nil
}

// NewCounterProduction builds a counted repetition of inner, count times.
func NewCounterProduction(ctx *Context, count, inner *Node) (*Node, error) {
	n := NewNode(ctx, KindProdCounter)
	if err := n.SetChild(0, count); err != nil {
		return nil, err
	}
	if err := n.SetChild(1, inner); err != nil {
		return nil, err
	}
	return n, nil
}

// NewByteBlockProduction builds a fixed/size-expression-driven raw byte
// run, the lowering target of `bytes &size=x` fields.
func NewByteBlockProduction(ctx *Context, size *Node) (*Node, error) {
	n := NewNode(ctx, KindProdByteBlock)
	if err := n.SetChild(0, size); err != nil {
		return nil, err
	}
	return n, nil
}

// NewEpsilonProduction builds the empty production.
func NewEpsilonProduction(ctx *Context) *Node { return NewNode(ctx, KindProdEpsilon) }

// NewWhileProduction builds a condition-driven repetition.
func NewWhileProduction(ctx *Context, cond, body *Node) (*Node, error) {
	n := NewNode(ctx, KindProdWhile)
	if err := n.SetChild(0, cond); err != nil {
		return nil, err
	}
	if err := n.SetChild(1, body); err != nil {
		return nil, err
	}
	return n, nil
}

// NewSwitchProduction builds a value-driven dispatch among productions,
// one per case plus an optional default (last child if present and
// tagged via SetProperty("has_default", true)).
func NewSwitchProduction(ctx *Context, subject *Node, cases []*Node, hasDefault bool) (*Node, error) {
	n := NewNode(ctx, KindProdSwitch)
	if err := n.SetChild(0, subject); err != nil {
		return nil, err
	}
	for _, c := range cases {
		if err := n.AddChild(c); err != nil {
			return nil, err
		}
	}
	n.SetProperty("has_default", hasDefault)
	return n, nil
}

// NewReferenceProduction builds a reference to another unit's production
// by name, resolved once that unit has also been lowered.
func NewReferenceProduction(ctx *Context, unitName string) *Node {
	n := NewNode(ctx, KindProdReference)
	n.Name = unitName
	return n
}

// NewPlaceholderProduction builds a resolved-placeholder node: a
// reference production that has been matched to its target unit's
// synthesized parse function.
func NewPlaceholderProduction(ctx *Context, target *Node) (*Node, error) {
	n := NewNode(ctx, KindProdPlaceholder)
	if err := n.SetChild(0, target); err != nil {
		return nil, err
	}
	return n, nil
}
