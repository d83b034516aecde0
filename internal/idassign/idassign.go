// Package idassign implements the ID assigner (C7): it stamps every
// declaration node with a fully-qualified ID and a canonical ID, in the
// same fixed-point style as the teacher's internal/analyzer symbol
// tagging passes but producing identifiers instead of complexity scores.
package idassign

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/hilcore/hilc/internal/ast"
	"github.com/hilcore/hilc/internal/module"
)

// Diverged is returned when debug mode is enabled and a declaration is
// still missing a FullyQualifiedID/CanonicalID after the driver's
// fixed-point loop has otherwise settled (spec.md §4.7 "debug-mode
// abort").
type Diverged struct {
	Node *ast.Node
}

func (e *Diverged) Error() string {
	return fmt.Sprintf("id assigner: %s never received an ID", e.Node)
}

// Assigner computes fully-qualified and canonical IDs for declarations.
type Assigner struct {
	// DebugMode, when true, makes Run return a Diverged error for any
	// declaration still unassignable once nothing more can be assigned
	// this round (spec.md §4.7).
	DebugMode bool

	// canonical tracks every canonical ID assigned so far, across all
	// modules and all Run calls, to enforce spec.md §8 property: "no two
	// declarations share a canonical ID".
	canonical map[string]*ast.Node
}

// New creates an Assigner.
func New() *Assigner {
	return &Assigner{canonical: make(map[string]*ast.Node)}
}

// Run assigns IDs to every not-yet-assigned declaration reachable from
// mod's body, returning the number of declarations newly assigned this
// round. It is idempotent: a declaration that already has both IDs is
// left untouched (spec.md §8 property 3).
func (a *Assigner) Run(mod *module.Module) (int, error) {
	assigned := 0
	var walkErr error
	mod.Decl.Walk(func(n *ast.Node) bool {
		if walkErr != nil {
			return false
		}
		if n.Decl == nil || n == mod.Decl {
			return true
		}
		if n.Decl.FullyQualifiedID != "" && n.Decl.CanonicalID != "" {
			return true
		}
		ok, err := a.assignOne(mod, n)
		if err != nil {
			walkErr = err
			return false
		}
		if ok {
			assigned++
		}
		return true
	})
	if walkErr != nil {
		return assigned, walkErr
	}
	if a.DebugMode {
		var stuck *ast.Node
		mod.Decl.Walk(func(n *ast.Node) bool {
			if stuck != nil {
				return false
			}
			if n != mod.Decl && n.Decl != nil && (n.Decl.FullyQualifiedID == "" || n.Decl.CanonicalID == "") {
				stuck = n
			}
			return true
		})
		if stuck != nil {
			return assigned, &Diverged{Node: stuck}
		}
	}
	return assigned, nil
}

// assignOne computes and stamps n's IDs. A declaration's fully-qualified
// ID is "<module>::<scope-path>::<id>" (spec.md §4.7); the canonical ID
// is the same string, further disambiguated with a "#<n>" suffix for the
// Nth overload sharing that fully-qualified prefix (spec.md §4.7
// "overload disambiguation").
func (a *Assigner) assignOne(mod *module.Module, n *ast.Node) (bool, error) {
	scopePath, ok := scopePathOf(n)
	if !ok {
		// An ancestor declaration hasn't been assigned a scope path yet
		// (e.g. it's itself waiting on something); defer to a later
		// round.
		return false, nil
	}
	fq := mod.UID.Name
	if scopePath != "" {
		fq += "::" + scopePath
	}
	fq += "::" + n.Decl.ID

	n.Decl.FullyQualifiedID = fq
	n.Decl.CanonicalID = a.disambiguate(fq, n)
	return true, nil
}

// scopePathOf walks n's ancestor declarations other than the module
// declaration, joining their short IDs with "::" into the scope path used
// in a fully-qualified ID. It needs only the ancestors' short IDs, so it
// always reports ok=true.
func scopePathOf(n *ast.Node) (string, bool) {
	var segments []string
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Decl == nil || p.Kind == ast.KindModuleDecl {
			continue
		}
		if p.Decl.ID == "" {
			continue
		}
		segments = append([]string{p.Decl.ID}, segments...)
	}
	return joinScope(segments), true
}

func joinScope(segments []string) string {
	out := ""
	for i, s := range segments {
		if i > 0 {
			out += "::"
		}
		out += s
	}
	return out
}

// disambiguate returns fq unchanged if it is not yet taken, otherwise
// appends "#<k>" for the smallest k that makes it unique (spec.md §4.7:
// this is how two overloads of the same function name end up with
// distinct canonical IDs while sharing a fully-qualified one).
func (a *Assigner) disambiguate(fq string, n *ast.Node) string {
	if existing, taken := a.canonical[fq]; !taken || existing == n {
		a.canonical[fq] = n
		return fq
	}
	for k := 2; ; k++ {
		candidate := fq + "#" + strconv.Itoa(k)
		if existing, taken := a.canonical[candidate]; !taken || existing == n {
			a.canonical[candidate] = n
			return candidate
		}
	}
}

// AllCanonicalIDs returns every canonical ID assigned so far, sorted,
// for diagnostics and tests.
func (a *Assigner) AllCanonicalIDs() []string {
	ids := make([]string, 0, len(a.canonical))
	for id := range a.canonical {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
