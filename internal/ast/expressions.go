package ast

// NewNameExpr builds an unresolved reference to a declaration by name.
// The resolver fills the weak link via SetResolvedDeclaration.
func NewNameExpr(ctx *Context, name string) *Node {
	n := NewNode(ctx, KindExprName)
	n.Name = name
	return n
}

const memberSlotBase = 0

// NewMemberExpr builds base.field.
func NewMemberExpr(ctx *Context, base *Node, field string) (*Node, error) {
	n := NewNode(ctx, KindExprMember)
	n.Name = field
	if err := n.SetChild(memberSlotBase, base); err != nil {
		return nil, err
	}
	return n, nil
}

// Base returns a member expression's base operand.
func (n *Node) Base() *Node { return n.Child(memberSlotBase) }

// NewUnresolvedOperator builds an operator-expression node before the
// resolver has matched it to a registered operator.Descriptor. operands
// become Children in call/signature order.
func NewUnresolvedOperator(ctx *Context, opKind string, operands []*Node) (*Node, error) {
	n := NewNode(ctx, KindExprOpUnres)
	n.Op = opKind
	for _, o := range operands {
		if err := n.AddChild(o); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// Operands returns the operand expressions of an (un)resolved operator
// node.
func (n *Node) Operands() []*Node { return n.Children }

// LogicalKind distinguishes && from ||.
type LogicalKind string

const (
	LogicalAnd LogicalKind = "&&"
	LogicalOr  LogicalKind = "||"
)

const (
	logicalSlotLeft  = 0
	logicalSlotRight = 1
)

// NewLogicalExpr builds a short-circuiting &&/|| expression.
func NewLogicalExpr(ctx *Context, kind LogicalKind, left, right *Node) (*Node, error) {
	n := NewNode(ctx, KindExprLogical)
	n.Op = string(kind)
	if err := n.SetChild(logicalSlotLeft, left); err != nil {
		return nil, err
	}
	if err := n.SetChild(logicalSlotRight, right); err != nil {
		return nil, err
	}
	return n, nil
}

// Left returns the left operand of a binary expression (logical or
// resolved/unresolved binary operator).
func (n *Node) Left() *Node { return n.Child(0) }

// Right returns the right operand of a binary expression.
func (n *Node) Right() *Node { return n.Child(1) }

const castSlotTarget = 0
const castSlotValue = 1

// NewCastExpr builds a type-wrapped (cast) expression: (T)value.
func NewCastExpr(ctx *Context, targetType, value *Node) (*Node, error) {
	n := NewNode(ctx, KindExprCast)
	if err := n.SetChild(castSlotTarget, targetType); err != nil {
		return nil, err
	}
	if err := n.SetChild(castSlotValue, value); err != nil {
		return nil, err
	}
	return n, nil
}

// CastTarget returns a cast expression's destination type.
func (n *Node) CastTarget() *Node { return n.Child(castSlotTarget) }

// CastValue returns a cast expression's source value.
func (n *Node) CastValue() *Node { return n.Child(castSlotValue) }

// NewVoidExpr builds the void placeholder expression.
func NewVoidExpr(ctx *Context) *Node { return NewNode(ctx, KindExprVoid) }

const typeInfoSlotType = 0

// NewTypeInfoExpr builds a type-info expression (reflective access to a
// type's runtime descriptor).
func NewTypeInfoExpr(ctx *Context, t *Node) (*Node, error) {
	n := NewNode(ctx, KindExprTypeInfo)
	if err := n.SetChild(typeInfoSlotType, t); err != nil {
		return nil, err
	}
	return n, nil
}

// Keyword identifies a keyword expression ($self, $input, $$).
type Keyword string

const (
	KeywordSelf  Keyword = "$self"
	KeywordInput Keyword = "$input"
	KeywordDollarDollar Keyword = "$$"
)

// NewKeywordExpr builds a keyword placeholder expression.
func NewKeywordExpr(ctx *Context, kw Keyword) *Node {
	n := NewNode(ctx, KindExprKeyword)
	n.Name = string(kw)
	return n
}
