package service

import (
	"github.com/hilcore/hilc/internal/hilcore"
	"github.com/hilcore/hilc/internal/operator"
)

// RegisterBuiltinOperators seeds ops with the arithmetic/comparison
// overloads every HIL program can rely on without declaring its own.
// These builtins are the only overloads registered: the resolver does
// not register user-declared operator overloads (spec.md §4.5). This
// function only ever runs once, at driver setup. The
// operand types reused here are the same hilcore builtin singletons
// exprType resolves a literal's static type to, so ast.Same matches
// them without needing either side to pass through a real ast.Context.
func RegisterBuiltinOperators(ops *operator.Registry) {
	builtinInt := hilcore.BuiltinInt
	builtinReal := hilcore.BuiltinReal
	builtinBool := hilcore.BuiltinBool
	builtinString := hilcore.BuiltinString

	arith := []string{"+", "-", "*", "/", "%"}
	for _, op := range arith {
		ops.Register(op, operator.Signature{
			Operands: []operator.Operand{{Type: builtinInt}, {Type: builtinInt}},
			Result:   builtinInt,
		})
		ops.Register(op, operator.Signature{
			Operands: []operator.Operand{{Type: builtinReal}, {Type: builtinReal}},
			Result:   builtinReal,
			Coerce:   operator.CoerceWiden,
		})
	}

	cmp := []string{"==", "!=", "<", "<=", ">", ">="}
	for _, op := range cmp {
		ops.Register(op, operator.Signature{
			Operands: []operator.Operand{{Type: builtinInt}, {Type: builtinInt}},
			Result:   builtinBool,
		})
		ops.Register(op, operator.Signature{
			Operands: []operator.Operand{{Type: builtinReal}, {Type: builtinReal}},
			Result:   builtinBool,
			Coerce:   operator.CoerceWiden,
		})
	}

	ops.Register("+", operator.Signature{
		Operands: []operator.Operand{{Type: builtinString}, {Type: builtinString}},
		Result:   builtinString,
	})
}
