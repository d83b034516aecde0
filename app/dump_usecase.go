package app

import (
	"context"
	"path/filepath"

	"github.com/hilcore/hilc/domain"
	"github.com/hilcore/hilc/internal/config"
	"github.com/hilcore/hilc/internal/debugstream"
)

// DumpUseCase exposes spec.md §6's `dumpAST` debug facility over a
// CLI/MCP-facing request: compile, then serialize the target module's
// final resolved tree as a .txt/.yaml pair under DumpDir.
type DumpUseCase struct {
	compile *CompileUseCase
}

// NewDumpUseCase creates a DumpUseCase layered on top of compile.
func NewDumpUseCase(compile *CompileUseCase) *DumpUseCase {
	return &DumpUseCase{compile: compile}
}

// Execute runs the compile, then dumps req.TargetPath's module.Decl
// tree. DumpDir defaults to the current directory if unset.
func (uc *DumpUseCase) Execute(ctx context.Context, req domain.DumpRequest) (*domain.DumpResult, error) {
	compileReq := domain.CompileRequest{EntryPaths: req.EntryPaths, ConfigPath: req.ConfigPath}
	result, reg, err := uc.compile.Execute(ctx, compileReq)
	if err != nil {
		return nil, err
	}

	out := &domain.DumpResult{Target: req.TargetPath, Diagnostics: result.Diagnostics, Succeeded: result.Succeeded}
	if !result.Succeeded {
		return out, nil
	}

	mod := reg.GetModuleByPath(req.TargetPath)
	if mod == nil {
		out.Succeeded = false
		out.Diagnostics = append(out.Diagnostics, domain.Diagnostic{
			Severity: domain.SeverityFatal,
			Message:  "no such module: " + req.TargetPath,
		})
		return out, nil
	}

	dumpDir := req.DumpDir
	if dumpDir == "" {
		dumpDir = "."
	}
	cfg, err := config.LoadDriverConfig(req.ConfigPath)
	if err != nil {
		return nil, domain.NewConfigError("loading driver config", err)
	}
	// ast-dump is always active here: it's what this use case exists to
	// write. cfg.DebugStreams layers in whatever other channels the
	// caller wants logging from during the compile that already ran.
	streams := append([]string{"ast-dump"}, cfg.DebugStreams...)
	dbg := debugstream.NewRegistry(streams, nil, dumpDir)
	if err := dbg.DumpIteration("final", 0, "ast", mod.Decl); err != nil {
		return nil, domain.NewInternalError("writing AST dump", err)
	}

	base := filepath.Join(dumpDir, "final-000-ast")
	out.TextPath = base + ".txt"
	out.YAMLPath = base + ".yaml"
	return out, nil
}
