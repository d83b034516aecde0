package module

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/hilcore/hilc/internal/ast"
)

// ParsedModule is what an external SourceParser hands back: a raw module
// declaration node (no canonical IDs, no scope tables, no resolved
// types — spec.md §6) plus the names it imports at top level.
type ParsedModule struct {
	Decl    *ast.Node
	Imports []string
}

// SourceParser is the inbound parser collaborator named in spec.md §6.
// Parsing itself is out of scope for this module; Registry only ever
// calls through this interface.
type SourceParser interface {
	Parse(ctx context.Context, filename string, r io.Reader) (*ParsedModule, error)
}

// Registry is the module registry (C4): it owns an ast.Context and the
// three indices spec.md §4.3 requires to stay consistent with each other.
type Registry struct {
	astCtx *ast.Context

	byUID      map[UID]*Module
	byPath     map[string]*Module
	byIDScope  map[string]*Module

	parsers     map[string]SourceParser // parse-extension -> parser
	searchDirs  []string
	insertOrder []*Module
}

// NewRegistry creates an empty registry backed by the given ast.Context.
func NewRegistry(astCtx *ast.Context) *Registry {
	return &Registry{
		astCtx:    astCtx,
		byUID:     make(map[UID]*Module),
		byPath:    make(map[string]*Module),
		byIDScope: make(map[string]*Module),
		parsers:   make(map[string]SourceParser),
	}
}

// Context returns the registry's underlying AST context.
func (r *Registry) Context() *ast.Context { return r.astCtx }

// RegisterParser binds a SourceParser to a parse-extension (".hil",
// ".spd", ...). The plugin surface (spec.md §6) calls this once per
// plugin at driver setup time.
func (r *Registry) RegisterParser(parseExt string, p SourceParser) {
	r.parsers[parseExt] = p
}

// AddSearchDir appends a directory (or doublestar glob root) to the
// set importModule searches when a name isn't already indexed.
func (r *Registry) AddSearchDir(dir string) {
	r.searchDirs = append(r.searchDirs, dir)
}

// ParseSource implements spec.md §6 `parseSource(path, processExt?)`.
func (r *Registry) ParseSource(ctx context.Context, path string, processExt string) (UID, error) {
	if existing, ok := r.byPath[path]; ok {
		return existing.UID, nil
	}
	parseExt := extOf(path)
	parser, ok := r.parsers[parseExt]
	if !ok {
		return UID{}, &ImportFailure{Name: path, Reason: "no parser registered for extension " + parseExt}
	}
	f, err := os.Open(path)
	if err != nil {
		return UID{}, &ImportFailure{Name: path, Reason: err.Error()}
	}
	defer f.Close()

	parsed, err := parser.Parse(ctx, path, f)
	if err != nil {
		return UID{}, err
	}
	uid := UID{Name: parsed.Decl.Name, Path: path, ParseExt: parseExt, ProcessExt: processExt}
	if err := r.addModuleToAST(uid, parsed); err != nil {
		return UID{}, err
	}
	return uid, nil
}

// ImportModule implements spec.md §6 `importModule(...)`.
func (r *Registry) ImportModule(ctx context.Context, id, scope, parseExt, processExt string, extraSearchDirs []string) (UID, error) {
	key := idScopeKey(id, scope)
	if existing, ok := r.byIDScope[key]; ok {
		return existing.UID, nil
	}

	dirs := append(append([]string{}, extraSearchDirs...), r.searchDirs...)
	pattern := id + parseExt
	for _, dir := range dirs {
		matches, _ := doublestar.Glob(os.DirFS(dir), "**/"+pattern)
		if len(matches) == 0 {
			// Also try a direct, non-recursive join for plain directories.
			direct := dir + string(os.PathSeparator) + pattern
			if _, err := os.Stat(direct); err == nil {
				matches = []string{pattern}
			} else {
				continue
			}
		}
		sort.Strings(matches)
		fullPath := dir + string(os.PathSeparator) + matches[0]
		uid, err := r.ParseSource(ctx, fullPath, processExt)
		if err != nil {
			return UID{}, err
		}
		mod := r.byUID[uid]
		r.byIDScope[key] = mod
		return uid, nil
	}
	return UID{}, &ImportFailure{Name: id, Scope: scope, Reason: "not found in search directories"}
}

// addModuleToAST enforces spec.md §4.3's "the returned module is not yet
// part of any AST" and keeps the three indices consistent (spec.md §4.3
// invariant / §8 property 5).
func (r *Registry) addModuleToAST(uid UID, parsed *ParsedModule) error {
	if parsed.Decl.Parent != nil {
		return &DuplicateModule{UID: uid}
	}
	if _, exists := r.byUID[uid]; exists {
		return &DuplicateModule{UID: uid}
	}
	if _, exists := r.byPath[uid.Path]; uid.Path != "" && exists {
		return &DuplicateModule{UID: uid}
	}
	key := idScopeKey(uid.Name, uid.Scope)
	if _, exists := r.byIDScope[key]; exists {
		return &DuplicateModule{UID: uid}
	}

	if err := r.astCtx.Root().AddChild(parsed.Decl); err != nil {
		return err
	}
	r.astCtx.AdoptSubtree(parsed.Decl)
	mod := &Module{UID: uid, Decl: parsed.Decl}
	mod.SetImports(parsed.Imports)

	r.byUID[uid] = mod
	if uid.Path != "" {
		r.byPath[uid.Path] = mod
	}
	r.byIDScope[key] = mod
	r.insertOrder = append(r.insertOrder, mod)
	r.astCtx.RebuildScopes = true
	return nil
}

// GetModule implements spec.md §6 `getModule(uid)`: direct index lookup,
// nil on miss.
func (r *Registry) GetModule(uid UID) *Module {
	return r.byUID[uid]
}

// GetModuleByPath looks a module up by its source file path.
func (r *Registry) GetModuleByPath(path string) *Module {
	return r.byPath[path]
}

// Modules returns every module currently registered, in insertion order
// (spec.md §5 "modules are processed in insertion order").
func (r *Registry) Modules() []*Module {
	return r.insertOrder
}

// Dependencies implements spec.md §4.3 `dependencies(uid, recursive)`.
// Available only once the driver has finished a successful ProcessAST
// (r.astCtx.Resolved); otherwise it returns an empty slice, per spec.
func (r *Registry) Dependencies(uid UID, recursive bool) []UID {
	if !r.astCtx.Resolved {
		return nil
	}
	mod := r.byUID[uid]
	if mod == nil {
		return nil
	}
	direct := r.directDependencies(mod)
	if !recursive {
		return direct
	}
	seen := make(map[UID]bool)
	var order []UID
	var visit func(UID)
	visit = func(u UID) {
		if seen[u] {
			return
		}
		seen[u] = true
		order = append(order, u)
		m := r.byUID[u]
		if m == nil {
			return
		}
		for _, d := range r.directDependencies(m) {
			visit(d)
		}
	}
	for _, d := range direct {
		visit(d)
	}
	return order
}

func (r *Registry) directDependencies(mod *Module) []UID {
	var out []UID
	for _, name := range mod.Imports() {
		key := idScopeKey(name, mod.UID.Scope)
		if dep, ok := r.byIDScope[key]; ok {
			out = append(out, dep.UID)
			continue
		}
		// Fall back to global scope for modules imported without a
		// scope qualifier.
		if dep, ok := r.byIDScope[idScopeKey(name, "")]; ok {
			out = append(out, dep.UID)
		}
	}
	return out
}

func extOf(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/' && path[i] != '\\'; i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}
	return ""
}

// ErrNoParser is a sentinel for a file with no registered SourceParser for
// its extension. ParseSource does not return it: it reports that case as
// an *ImportFailure whose Reason names the extension.
var ErrNoParser = fmt.Errorf("no parser registered")
