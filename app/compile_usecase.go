// Package app wires the CLI/MCP-facing request/response types in domain
// to service.CompileService, the way the teacher's app package sits
// between cmd/pyscn and service.AnalyzeService. Every use case here
// exposes exactly one of the six operations named in spec.md §6.
package app

import (
	"context"
	"fmt"

	"github.com/hilcore/hilc/domain"
	"github.com/hilcore/hilc/internal/module"
	"github.com/hilcore/hilc/service"
)

// CompileUseCase orchestrates one end-to-end compile: parseSource over
// every entry path followed by processAST.
type CompileUseCase struct {
	compiler *service.CompileService
	parsers  map[string]module.SourceParser
}

// NewCompileUseCase creates a CompileUseCase bound to compiler and the
// parsers registered per parse-extension.
func NewCompileUseCase(compiler *service.CompileService, parsers map[string]module.SourceParser) *CompileUseCase {
	return &CompileUseCase{compiler: compiler, parsers: parsers}
}

// Execute runs the compile and returns both the CLI/MCP-facing result
// and the module.Registry it built, so a follow-on DepsUseCase or
// DumpUseCase call can query the same resolved AST without recompiling.
func (uc *CompileUseCase) Execute(ctx context.Context, req domain.CompileRequest) (*domain.CompileResult, *module.Registry, error) {
	if len(req.EntryPaths) == 0 {
		return nil, nil, fmt.Errorf("no entry paths given")
	}
	return uc.compiler.Compile(ctx, req, uc.parsers)
}
