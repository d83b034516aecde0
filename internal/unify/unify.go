// Package unify implements the type unifier (C6): it assigns every
// resolved type node a canonical serialization string by depth-first
// structural walk, the way the teacher's internal/analyzer CFG builder
// walks parser.Node trees to assign block identities — here the identity
// assigned is a string two types can compare equal or not-equal by,
// rather than a basic-block label.
package unify

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hilcore/hilc/internal/ast"
)

// Unifier runs the fixed-point structural unification pass described in
// spec.md §4.6. It is re-entrant across driver iterations: types already
// carrying a set UnificationState are never re-serialized (idempotence,
// spec.md §8 property 3), and a cycle encountered mid-walk defers that
// type to the next round rather than guessing.
type Unifier struct {
	// inFlight marks nodes currently being serialized in this call stack,
	// for cycle detection (spec.md §4.6 "a type that recursively contains
	// itself before any member has a canonical string is deferred").
	inFlight map[*ast.Node]bool
	// deferred collects types that hit a cycle this round, so the driver
	// can tell whether progress is still being made.
	deferred []*ast.Node
}

// New creates an empty Unifier.
func New() *Unifier {
	return &Unifier{inFlight: make(map[*ast.Node]bool)}
}

// Run walks every type-kind node in ctx.AllNodes, computing a canonical
// string for any that don't have one yet. It returns the number of types
// newly unified this round; the driver treats zero progress alongside
// remaining unresolved types as a stuck fixed point, not an error.
func (u *Unifier) Run(ctx *ast.Context) int {
	u.deferred = u.deferred[:0]
	progressed := 0
	for _, n := range ctx.AllNodes() {
		if n == nil || n.TypeData == nil {
			continue
		}
		if n.TypeData.Unification.IsSet() {
			continue
		}
		before := n.TypeData.Unification.IsSet()
		u.serialize(n)
		if !before && n.TypeData.Unification.IsSet() {
			progressed++
		}
	}
	return progressed
}

// Deferred returns the types that could not be unified this round because
// they were reached through a cycle before any member had a canonical
// string. A non-empty Deferred with zero progress this round means the
// fixed point is genuinely stuck (spec.md §4.6 "unresolvable cycle").
func (u *Unifier) Deferred() []*ast.Node { return u.deferred }

// serialize computes and stamps n.TypeData.Unification, recursing into
// structural children as needed. It never overwrites an already-set
// state (idempotence).
func (u *Unifier) serialize(n *ast.Node) {
	if n == nil || n.TypeData == nil || n.TypeData.Unification.IsSet() {
		return
	}
	if u.inFlight[n] {
		u.deferred = append(u.deferred, n)
		return
	}
	if !n.TypeData.Resolved {
		// An unresolved type (e.g. a Name type whose target hasn't been
		// found by the name resolver yet) cannot be serialized this
		// round; the driver will call Run again once more things
		// resolve.
		return
	}

	u.inFlight[n] = true
	defer delete(u.inFlight, n)

	if n.TypeData.IsWildcard {
		n.TypeData.Unification = ast.SetUnification("wildcard:" + n.TypeData.TypeClass)
		return
	}

	var sb strings.Builder
	sb.WriteString(n.TypeData.TypeClass)

	switch n.Kind {
	case ast.KindTypeInt:
		sb.WriteByte('<')
		sb.WriteString(strconv.Itoa(n.TypeData.Width))
		if n.TypeData.Signed {
			sb.WriteString(",s")
		} else {
			sb.WriteString(",u")
		}
		sb.WriteByte('>')

	case ast.KindTypeReal:
		sb.WriteByte('<')
		sb.WriteString(strconv.Itoa(n.TypeData.Width))
		sb.WriteByte('>')

	case ast.KindTypeList, ast.KindTypeVector, ast.KindTypeSet, ast.KindTypeStream, ast.KindTypeOptional:
		if !u.child(n.Elem(), &sb) {
			n.TypeData.Unification = ast.UnsetUnification
			return
		}

	case ast.KindTypeMap:
		sb.WriteByte('[')
		if !u.child(n.Key(), &sb) {
			return
		}
		sb.WriteByte(',')
		if !u.child(n.Val(), &sb) {
			return
		}
		sb.WriteByte(']')

	case ast.KindTypeRefKind:
		sb.WriteByte('.')
		sb.WriteString(string(n.RefStyleOf()))
		sb.WriteByte('<')
		if !u.child(n.RefTarget(), &sb) {
			return
		}
		sb.WriteByte('>')

	case ast.KindTypeStruct:
		// Nominal: a struct unifies by declared name, not structurally,
		// per spec.md §3 "struct is a NameType". Fields are NOT folded
		// into the canonical string, which is what lets a struct type
		// reference itself recursively without ever hitting this walk's
		// cycle guard.
		sb.WriteByte(':')
		sb.WriteString(n.Name)

	case ast.KindTypeEnum:
		sb.WriteByte(':')
		sb.WriteString(n.Name)

	case ast.KindTypeName:
		target := ast.Follow(n)
		if target == nil || target == n {
			return // unresolved Name chain; try again next round
		}
		u.serialize(target)
		if !target.TypeData.Unification.IsSet() {
			return
		}
		if target.TypeData.Unification.IsNeverMatch() {
			n.TypeData.Unification = ast.NeverMatchUnification()
			return
		}
		n.TypeData.Unification = target.TypeData.Unification
		return

	case ast.KindTypeFunc:
		sb.WriteByte('(')
		params := n.Params()
		strs := make([]string, 0, len(params))
		for _, p := range params {
			var psb strings.Builder
			if !u.child(p, &psb) {
				return
			}
			strs = append(strs, psb.String())
		}
		sb.WriteString(strings.Join(strs, ","))
		sb.WriteString(")->")
		if !u.child(n.Result(), &sb) {
			return
		}

	default:
		// Primitive types and SPD unit/sink types: the TypeClass tag
		// alone is the canonical string.
	}

	n.TypeData.Unification = ast.SetUnification(sb.String())
}

// child serializes dst (if needed) and appends its canonical string to
// sb, returning false if dst couldn't be serialized yet (unresolved or
// deferred by a cycle — the caller must leave its own state unset).
func (u *Unifier) child(dst *ast.Node, sb *strings.Builder) bool {
	if dst == nil {
		sb.WriteString("?")
		return true
	}
	u.serialize(dst)
	if dst.TypeData == nil || !dst.TypeData.Unification.IsSet() {
		return false
	}
	if dst.TypeData.Unification.IsNeverMatch() {
		sb.WriteString("!never")
		return true
	}
	sb.WriteString(dst.TypeData.Unification.String())
	return true
}

// SortedDeferredNames returns the names of deferred types, sorted, for
// stable diagnostics and tests.
func SortedDeferredNames(nodes []*ast.Node) []string {
	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, n.String())
	}
	sort.Strings(names)
	return names
}
