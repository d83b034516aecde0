// Package operator implements the operator and coercion registry (C9):
// descriptors for built-in and user-defined operator overloads, and the
// scoring-based resolution spec.md §4.5 describes — exact match beats an
// implicit coercion beats a variadic match. It mirrors the way the
// teacher's internal/analyzer resolves Python's dunder-method dispatch
// against a fixed table of candidates, generalized to this language's
// richer operand/coercion model.
package operator

import (
	"fmt"
	"sort"

	"github.com/hilcore/hilc/internal/ast"
)

// CoercionStyle is a bitmask describing how an operand may be implicitly
// widened to reach a signature (spec.md §4.5).
type CoercionStyle uint8

const (
	CoerceNone CoercionStyle = 0
	// CoerceWiden allows a narrower numeric type to widen (int<32> ->
	// int<64>, int -> real).
	CoerceWiden CoercionStyle = 1 << iota
	// CoerceConstDrop allows a const operand to satisfy a non-const
	// parameter (never the reverse).
	CoerceConstDrop
	// CoerceRefDeref allows a reference operand to auto-dereference to
	// its pointee type.
	CoerceRefDeref
	// CoerceNameFollow allows a Name type operand to follow its chain to
	// the underlying structural type.
	CoerceNameFollow
)

// Operand describes one parameter slot of a signature.
type Operand struct {
	Type     *ast.Node // qualified via Const below; unqualified type node
	Const    ast.Constness
	Variadic bool // true only for the last operand: matches zero or more
}

// Signature is one overload of an Operator.
type Signature struct {
	Operands []Operand
	Result   *ast.Node // unqualified result type
	DeclRef  *ast.Node // weak; nil for built-ins
	Coerce   CoercionStyle
}

// Descriptor is a registered operator: a kind tag ("+", "==", "[]", ...)
// plus every signature overloading it.
type Descriptor struct {
	Kind       string
	Signatures []Signature
}

// Registry holds every registered operator descriptor, keyed by kind.
type Registry struct {
	byKind map[string]*Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKind: make(map[string]*Descriptor)}
}

// Register adds sig as an overload of opKind, creating the descriptor if
// this is the first overload seen for that kind.
func (r *Registry) Register(opKind string, sig Signature) {
	d, ok := r.byKind[opKind]
	if !ok {
		d = &Descriptor{Kind: opKind}
		r.byKind[opKind] = d
	}
	d.Signatures = append(d.Signatures, sig)
}

// Descriptor returns the registered descriptor for opKind, or nil.
func (r *Registry) Descriptor(opKind string) *Descriptor { return r.byKind[opKind] }

// AmbiguousOperator is raised when two or more signatures tie for best
// score on the same call (spec.md §4.5, scenario S5).
type AmbiguousOperator struct {
	Kind   string
	AtNode *ast.Node
	Count  int
}

func (e *AmbiguousOperator) Error() string {
	return fmt.Sprintf("ambiguous operator %q at %s: %d equally-good overloads", e.Kind, e.AtNode, e.Count)
}

// UnresolvedOperator is raised when no registered overload of opKind
// accepts the given operand types at all.
type UnresolvedOperator struct {
	Kind   string
	AtNode *ast.Node
}

func (e *UnresolvedOperator) Error() string {
	return fmt.Sprintf("no overload of operator %q matches operand types at %s", e.Kind, e.AtNode)
}

// CoercionFailure is raised when a signature was the unique best match
// but an individual coercion node could not actually be synthesized
// (e.g. a declared-type widening rule has no concrete conversion ctor).
type CoercionFailure struct {
	Kind   string
	Index  int
	AtNode *ast.Node
}

func (e *CoercionFailure) Error() string {
	return fmt.Sprintf("operator %q: could not coerce operand %d at %s", e.Kind, e.Index, e.AtNode)
}

// candidate is an internal scoring record.
type candidate struct {
	sig   Signature
	score int
}

// Score values: higher wins. Exact match beats any coercion; a plain
// coercion beats a variadic-absorbed match; the variadic floor is lowest
// so a fixed-arity exact match is always preferred to a same-looking
// variadic one (spec.md §4.5 "preference order").
const (
	scoreExact    = 1000
	scoreCoerced  = 100
	scoreVariadic = 1
)

// Resolve matches call-site operand types against every signature
// registered for opKind, returning the best Signature. Ties are reported
// as AmbiguousOperator; a total mismatch as UnresolvedOperator.
func (r *Registry) Resolve(atNode *ast.Node, opKind string, operandTypes []*ast.Node, operandConst []ast.Constness) (*Signature, []*ast.Node, error) {
	d := r.byKind[opKind]
	if d == nil {
		return nil, nil, &UnresolvedOperator{Kind: opKind, AtNode: atNode}
	}

	var best []candidate
	bestScore := -1
	for _, sig := range d.Signatures {
		score, coercions, ok := matchSignature(sig, operandTypes, operandConst)
		if !ok {
			continue
		}
		_ = coercions
		if score > bestScore {
			bestScore = score
			best = []candidate{{sig: sig, score: score}}
		} else if score == bestScore {
			best = append(best, candidate{sig: sig, score: score})
		}
	}

	if len(best) == 0 {
		return nil, nil, &UnresolvedOperator{Kind: opKind, AtNode: atNode}
	}
	if len(best) > 1 {
		return nil, nil, &AmbiguousOperator{Kind: opKind, AtNode: atNode, Count: len(best)}
	}

	winner := best[0].sig
	_, coercionTypes, _ := matchSignature(winner, operandTypes, operandConst)
	return &winner, coercionTypes, nil
}

// matchSignature scores a single signature against the call-site operand
// types, returning ok=false if it cannot accept them at all. coercions[i]
// is non-nil with the target type an implicit coercion must produce for
// operand i.
func matchSignature(sig Signature, operandTypes []*ast.Node, operandConst []ast.Constness) (int, []*ast.Node, bool) {
	fixed := sig.Operands
	variadic := len(fixed) > 0 && fixed[len(fixed)-1].Variadic
	if variadic {
		fixed = fixed[:len(fixed)-1]
	}
	if !variadic && len(operandTypes) != len(sig.Operands) {
		return 0, nil, false
	}
	if variadic && len(operandTypes) < len(fixed) {
		return 0, nil, false
	}

	score := 0
	coercions := make([]*ast.Node, len(operandTypes))
	for i, t := range operandTypes {
		var operand Operand
		isVariadicSlot := false
		if i < len(fixed) {
			operand = fixed[i]
		} else {
			operand = sig.Operands[len(sig.Operands)-1]
			isVariadicSlot = true
		}

		if ast.Same(t, operand.Type) {
			if operandConst[i] == ast.Const && operand.Const != ast.Const && sig.Coerce&CoerceConstDrop == 0 {
				return 0, nil, false
			}
			if isVariadicSlot {
				score += scoreVariadic
			} else {
				score += scoreExact
			}
			continue
		}

		if sig.Coerce == CoerceNone {
			return 0, nil, false
		}
		if !canCoerce(sig.Coerce, t, operand.Type) {
			return 0, nil, false
		}
		coercions[i] = operand.Type
		if isVariadicSlot {
			score += scoreVariadic
		} else {
			score += scoreCoerced
		}
	}
	return score, coercions, true
}

// canCoerce reports whether from can reach to under the signature's
// declared coercion style. This is intentionally conservative: widening
// is permitted only between the primitive numeric families, matching
// spec.md §4.5's "no coercion silently changes a type's structural
// family".
func canCoerce(style CoercionStyle, from, to *ast.Node) bool {
	from = ast.Follow(from)
	to = ast.Follow(to)
	if from == nil || to == nil || from.TypeData == nil || to.TypeData == nil {
		return false
	}
	if style&CoerceWiden != 0 {
		if from.Kind == ast.KindTypeInt && to.Kind == ast.KindTypeInt && to.TypeData.Width >= from.TypeData.Width {
			return true
		}
		if from.Kind == ast.KindTypeInt && to.Kind == ast.KindTypeReal {
			return true
		}
		if from.Kind == ast.KindTypeReal && to.Kind == ast.KindTypeReal && to.TypeData.Width >= from.TypeData.Width {
			return true
		}
	}
	if style&CoerceRefDeref != 0 && from.Kind == ast.KindTypeRefKind {
		return ast.Same(from.RefTarget(), to)
	}
	return false
}

// Kinds returns every registered operator kind, sorted, for diagnostics.
func (r *Registry) Kinds() []string {
	out := make([]string, 0, len(r.byKind))
	for k := range r.byKind {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
