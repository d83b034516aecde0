package ast

// NewBlockStmt builds a block of statements; Children are the statements
// in source order.
func NewBlockStmt(ctx *Context, stmts []*Node) (*Node, error) {
	n := NewNode(ctx, KindStmtBlock)
	for _, s := range stmts {
		if err := n.AddChild(s); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// Statements returns a block's statements in source order.
func (n *Node) Statements() []*Node { return n.Children }

const declStmtSlotDecl = 0

// NewDeclStmt wraps a local/const declaration as a statement so it can
// appear in a block's Children alongside other statements.
func NewDeclStmt(ctx *Context, decl *Node) (*Node, error) {
	n := NewNode(ctx, KindStmtDecl)
	if err := n.SetChild(declStmtSlotDecl, decl); err != nil {
		return nil, err
	}
	return n, nil
}

// InnerDecl returns the declaration wrapped by a decl statement.
func (n *Node) InnerDecl() *Node { return n.Child(declStmtSlotDecl) }

const (
	ifSlotTest = 0
	ifSlotThen = 1
	ifSlotElse = 2 // nil when there is no else branch
)

// NewIfStmt builds an if/else statement. elseBody may be nil.
func NewIfStmt(ctx *Context, test, thenBody, elseBody *Node) (*Node, error) {
	n := NewNode(ctx, KindStmtIf)
	if err := n.SetChild(ifSlotTest, test); err != nil {
		return nil, err
	}
	if err := n.SetChild(ifSlotThen, thenBody); err != nil {
		return nil, err
	}
	if elseBody != nil {
		if err := n.SetChild(ifSlotElse, elseBody); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// Test returns the condition expression of an if/while statement.
func (n *Node) Test() *Node { return n.Child(ifSlotTest) }

// Then returns the then-branch of an if statement.
func (n *Node) Then() *Node { return n.Child(ifSlotThen) }

// Else returns the else-branch of an if statement, or nil.
func (n *Node) Else() *Node { return n.Child(ifSlotElse) }

const (
	forSlotTarget = 0
	forSlotIter   = 1
	forSlotBody   = 2
)

// NewForStmt builds a for (target : iter) body statement.
func NewForStmt(ctx *Context, target, iter, body *Node) (*Node, error) {
	n := NewNode(ctx, KindStmtFor)
	if err := n.SetChild(forSlotTarget, target); err != nil {
		return nil, err
	}
	if err := n.SetChild(forSlotIter, iter); err != nil {
		return nil, err
	}
	if err := n.SetChild(forSlotBody, body); err != nil {
		return nil, err
	}
	return n, nil
}

// ForTarget returns a for statement's loop variable declaration.
func (n *Node) ForTarget() *Node { return n.Child(forSlotTarget) }

// ForIter returns a for statement's iterable expression.
func (n *Node) ForIter() *Node { return n.Child(forSlotIter) }

// ForBody returns a for statement's body.
func (n *Node) ForBody() *Node { return n.Child(forSlotBody) }

// NewWhileStmt builds a while (test) body statement, reusing the
// if-statement's Test accessor slot for the condition.
func NewWhileStmt(ctx *Context, test, body *Node) (*Node, error) {
	n := NewNode(ctx, KindStmtWhile)
	if err := n.SetChild(ifSlotTest, test); err != nil {
		return nil, err
	}
	if err := n.SetChild(ifSlotThen, body); err != nil {
		return nil, err
	}
	return n, nil
}

// WhileBody returns a while statement's body.
func (n *Node) WhileBody() *Node { return n.Child(ifSlotThen) }

const switchSlotSubject = 0

// NewSwitchStmt builds a switch (subject) { cases... } statement. cases
// are appended after the subject in Children.
func NewSwitchStmt(ctx *Context, subject *Node, cases []*Node) (*Node, error) {
	n := NewNode(ctx, KindStmtSwitch)
	if err := n.SetChild(switchSlotSubject, subject); err != nil {
		return nil, err
	}
	for _, c := range cases {
		if err := n.AddChild(c); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// Subject returns a switch statement's scrutinee.
func (n *Node) Subject() *Node { return n.Child(switchSlotSubject) }

// Cases returns a switch statement's case clauses.
func (n *Node) Cases() []*Node {
	if len(n.Children) <= 1 {
		return nil
	}
	return n.Children[1:]
}

const (
	caseSlotExpr = 0
	caseSlotBody = 1
)

// NewCaseClause builds one switch case. The label expression is stored as
// written; neither this constructor nor the hilcore resolver rewrites it
// into a `__x == E` comparison against the switch subject.
func NewCaseClause(ctx *Context, label, body *Node) (*Node, error) {
	n := NewNode(ctx, KindStmtCase)
	if err := n.SetChild(caseSlotExpr, label); err != nil {
		return nil, err
	}
	if err := n.SetChild(caseSlotBody, body); err != nil {
		return nil, err
	}
	return n, nil
}

// CaseLabel returns a case clause's label expression.
func (n *Node) CaseLabel() *Node { return n.Child(caseSlotExpr) }

// CaseBody returns a case clause's body.
func (n *Node) CaseBody() *Node { return n.Child(caseSlotBody) }

const tryBodySlot = 0

// NewTryStmt builds try { body } catch(...) ... . catches are appended
// after the body in Children.
func NewTryStmt(ctx *Context, body *Node, catches []*Node) (*Node, error) {
	n := NewNode(ctx, KindStmtTry)
	if err := n.SetChild(tryBodySlot, body); err != nil {
		return nil, err
	}
	for _, c := range catches {
		if err := n.AddChild(c); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// TryBody returns a try statement's protected body.
func (n *Node) TryBody() *Node { return n.Child(tryBodySlot) }

// Catches returns a try statement's catch clauses.
func (n *Node) Catches() []*Node {
	if len(n.Children) <= 1 {
		return nil
	}
	return n.Children[1:]
}

const (
	catchSlotParam = 0
	catchSlotBody  = 1
)

// NewCatchClause builds catch(param) body. param is a typed parameter
// declaration (spec.md §4.9 "parameter-typed catches").
func NewCatchClause(ctx *Context, param, body *Node) (*Node, error) {
	n := NewNode(ctx, KindStmtCatch)
	if err := n.SetChild(catchSlotParam, param); err != nil {
		return nil, err
	}
	if err := n.SetChild(catchSlotBody, body); err != nil {
		return nil, err
	}
	return n, nil
}

// CatchParam returns a catch clause's typed parameter.
func (n *Node) CatchParam() *Node { return n.Child(catchSlotParam) }

// CatchBody returns a catch clause's body.
func (n *Node) CatchBody() *Node { return n.Child(catchSlotBody) }

const returnSlotValue = 0

// NewReturnStmt builds return [value]; value may be nil for a bare return.
func NewReturnStmt(ctx *Context, value *Node) (*Node, error) {
	n := NewNode(ctx, KindStmtReturn)
	if value != nil {
		if err := n.SetChild(returnSlotValue, value); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// ReturnValue returns a return statement's value, or nil.
func (n *Node) ReturnValue() *Node { return n.Child(returnSlotValue) }

// NewYieldStmt builds yield value (also used for suspend).
func NewYieldStmt(ctx *Context, value *Node) (*Node, error) {
	n := NewNode(ctx, KindStmtYield)
	if err := n.SetChild(0, value); err != nil {
		return nil, err
	}
	return n, nil
}

// NewThrowStmt builds throw value.
func NewThrowStmt(ctx *Context, value *Node) (*Node, error) {
	n := NewNode(ctx, KindStmtThrow)
	if err := n.SetChild(0, value); err != nil {
		return nil, err
	}
	return n, nil
}

const (
	assertSlotCond = 0
	assertSlotMsg  = 1
)

// NewAssertStmt builds assert cond [: msg].
func NewAssertStmt(ctx *Context, cond, msg *Node) (*Node, error) {
	n := NewNode(ctx, KindStmtAssert)
	if err := n.SetChild(assertSlotCond, cond); err != nil {
		return nil, err
	}
	if msg != nil {
		if err := n.SetChild(assertSlotMsg, msg); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// AssertCond returns an assert statement's condition.
func (n *Node) AssertCond() *Node { return n.Child(assertSlotCond) }

// AssertMsg returns an assert statement's optional message, or nil.
func (n *Node) AssertMsg() *Node { return n.Child(assertSlotMsg) }
