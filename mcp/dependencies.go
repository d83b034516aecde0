// Package mcp exposes the compiler core's six-call surface (spec.md §6)
// as Model Context Protocol tools, the introspection layer SPEC_FULL.md
// §4 adds on top of an already-completed processAST run. It mirrors the
// teacher's mcp package: a Dependencies struct holding shared wiring, a
// HandlerSet of tool handlers built from it, and a RegisterTools that
// binds each handler to its mcp.Tool schema.
package mcp

import (
	"github.com/hilcore/hilc/app"
	"github.com/hilcore/hilc/internal/module"
	"github.com/hilcore/hilc/internal/module/testparser"
	"github.com/hilcore/hilc/service"
)

// Dependencies aggregates the shared wiring every MCP handler needs: the
// parsers registered per parse-extension and the compile service they
// run through. Unlike the teacher's Dependencies (one long-lived
// analyzer config), each tool call here builds its own module.Registry
// from scratch, since spec.md's Non-goals exclude incremental
// recompilation — there is no cached AST to reuse between calls.
type Dependencies struct {
	parsers map[string]module.SourceParser
}

// NewDependencies constructs the dependency set. parsers may be nil, in
// which case only the test-fixture ".hilfix" extension is registered —
// the core ships no real grammar (SPEC_FULL.md §6), so a real deployment
// is expected to pass its own parser map in.
func NewDependencies(parsers map[string]module.SourceParser) *Dependencies {
	if parsers == nil {
		parsers = map[string]module.SourceParser{".hilfix": testparser.New()}
	}
	return &Dependencies{parsers: parsers}
}

// BuildCompileUseCase assembles a fresh CompileUseCase over d's parsers.
func (d *Dependencies) BuildCompileUseCase() *app.CompileUseCase {
	return app.NewCompileUseCase(service.NewCompileService(nil), d.parsers)
}
