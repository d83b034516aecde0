package app

import (
	"context"

	"github.com/hilcore/hilc/domain"
)

// ModuleUseCase exposes spec.md §6's `getModule(uid)` over a CLI/MCP-facing
// request: it runs a full compile of req.EntryPaths, then reports
// req.TargetPath's declarations the way DepsUseCase reports its imports.
type ModuleUseCase struct {
	compile *CompileUseCase
}

// NewModuleUseCase creates a ModuleUseCase layered on top of compile.
func NewModuleUseCase(compile *CompileUseCase) *ModuleUseCase {
	return &ModuleUseCase{compile: compile}
}

// Execute runs the compile, then looks req.TargetPath up in the resulting
// registry and lists its top-level declarations.
func (uc *ModuleUseCase) Execute(ctx context.Context, req domain.ModuleRequest) (*domain.ModuleResult, error) {
	compileReq := domain.CompileRequest{EntryPaths: req.EntryPaths, ConfigPath: req.ConfigPath}
	result, reg, err := uc.compile.Execute(ctx, compileReq)
	if err != nil {
		return nil, err
	}

	out := &domain.ModuleResult{Path: req.TargetPath, Diagnostics: result.Diagnostics, Succeeded: result.Succeeded}
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

	out.UID = mod.UID.String()
	out.Imports = mod.Imports()
	for _, decl := range mod.Body() {
		if decl.Decl == nil {
			continue
		}
		out.Declarations = append(out.Declarations, domain.DeclarationInfo{
			ID:          decl.Decl.ID,
			Kind:        string(decl.Kind),
			CanonicalID: decl.Decl.CanonicalID,
		})
	}
	return out, nil
}
