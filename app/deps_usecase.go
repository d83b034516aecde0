package app

import (
	"context"

	"github.com/hilcore/hilc/domain"
)

// DepsUseCase exposes spec.md §6's `dependencies(uid, recursive)` over a
// CLI/MCP-facing request: it runs a full compile of req.EntryPaths, then
// looks req.TargetPath up in the resulting registry and reports the
// modules it depends on.
type DepsUseCase struct {
	compile *CompileUseCase
}

// NewDepsUseCase creates a DepsUseCase layered on top of compile.
func NewDepsUseCase(compile *CompileUseCase) *DepsUseCase {
	return &DepsUseCase{compile: compile}
}

// Execute runs the compile, then resolves req.TargetPath's dependency
// list. If the compile itself failed, DepsResult.Succeeded is false and
// Dependencies is empty, carrying the compile's diagnostics forward.
func (uc *DepsUseCase) Execute(ctx context.Context, req domain.DepsRequest) (*domain.DepsResult, error) {
	compileReq := domain.CompileRequest{EntryPaths: req.EntryPaths, ConfigPath: req.ConfigPath}
	result, reg, err := uc.compile.Execute(ctx, compileReq)
	if err != nil {
		return nil, err
	}

	out := &domain.DepsResult{Target: req.TargetPath, Diagnostics: result.Diagnostics, Succeeded: result.Succeeded}
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

	for _, uid := range reg.Dependencies(mod.UID, req.Recursive) {
		out.Dependencies = append(out.Dependencies, uid.String())
	}
	return out, nil
}
