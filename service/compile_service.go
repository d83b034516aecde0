package service

import (
	"context"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/hilcore/hilc/domain"
	"github.com/hilcore/hilc/internal/ast"
	cfgpkg "github.com/hilcore/hilc/internal/config"
	"github.com/hilcore/hilc/internal/driver"
	"github.com/hilcore/hilc/internal/hilcore"
	"github.com/hilcore/hilc/internal/module"
	"github.com/hilcore/hilc/internal/operator"
	"github.com/hilcore/hilc/internal/spd"
)

// CompileService owns one compile run end to end: loading configuration,
// wiring the registry/driver/plugins, parsing every entry path, and
// running processAST to completion. It plays the role the teacher's
// service.AnalyzeService plays over a set of Python files, generalized
// to the compiler core's six-call surface (spec.md §6).
type CompileService struct {
	Progress domain.ProgressReporter
}

// NewCompileService creates a CompileService. progress may be nil, in
// which case a domain.NoopProgressReporter is used.
func NewCompileService(progress domain.ProgressReporter) *CompileService {
	if progress == nil {
		progress = domain.NoopProgressReporter{}
	}
	return &CompileService{Progress: progress}
}

// Compile runs one full compile: parse every entry path, resolve
// modules, and run the driver's fixed point to completion. It returns
// the module.Registry it built alongside the result so a caller (e.g.
// app.DepsUseCase) can query dependencies()/getModule() against the
// same resolved AST without re-running the compile.
func (s *CompileService) Compile(ctx context.Context, req domain.CompileRequest, parsers map[string]module.SourceParser) (*domain.CompileResult, *module.Registry, error) {
	start := time.Now()

	cfg, err := cfgpkg.LoadDriverConfig(req.ConfigPath)
	if err != nil {
		return nil, nil, domain.NewConfigError("loading driver config", err)
	}

	astCtx := ast.NewContext()
	reg := module.NewRegistry(astCtx)
	for ext, p := range parsers {
		reg.RegisterParser(ext, p)
	}
	for _, dir := range cfg.SearchDirs {
		reg.AddSearchDir(dir)
	}

	ops := operator.NewRegistry()
	RegisterBuiltinOperators(ops)

	drv := driver.New(reg, ops)
	drv.SetMaxIterations(cfg.IterationCap)
	for _, p := range pluginsInOrder(cfg.PluginOrder, reg, ops) {
		drv.Use(p)
	}

	result := &domain.CompileResult{}

	s.Progress.StartStep("registry", "parseSource", len(req.EntryPaths))
	for _, path := range expandEntryPaths(req.EntryPaths) {
		if _, err := reg.ParseSource(ctx, path, ""); err != nil {
			result.Diagnostics = append(result.Diagnostics, domain.Diagnostic{
				Severity: domain.SeverityFatal,
				Message:  err.Error(),
			})
			if cfg.FailFast {
				s.Progress.FinishStep()
				result.Duration = time.Since(start)
				return result, reg, nil
			}
		}
		s.Progress.Advance(1)
	}
	s.Progress.FinishStep()

	s.Progress.StartStep("driver", "processAST", 1)
	err = drv.ProcessAST(ctx, req.DebugMode)
	s.Progress.FinishStep()

	result.ModuleCount = len(reg.Modules())
	result.Duration = time.Since(start)

	if err != nil {
		result.Diagnostics = append(result.Diagnostics, domain.Diagnostic{
			Severity: domain.SeverityFatal,
			Message:  err.Error(),
		})
		result.Succeeded = false
		return result, reg, nil
	}

	result.Succeeded = true
	return result, reg, nil
}

// pluginsInOrder builds the driver's plugin set in the order named by
// order (config.DriverConfig.PluginOrder), falling back to hil-then-spd
// if order is empty or names a plugin this binary doesn't know about.
func pluginsInOrder(order []string, reg *module.Registry, ops *operator.Registry) []driver.Plugin {
	available := map[string]driver.Plugin{
		"hil": hilcore.New(reg, ops),
		"spd": spd.New(),
	}
	if len(order) == 0 {
		order = []string{"hil", "spd"}
	}
	for _, name := range order {
		if _, ok := available[name]; !ok {
			order = []string{"hil", "spd"}
			break
		}
	}
	plugins := make([]driver.Plugin, 0, len(order))
	for _, name := range order {
		if p, ok := available[name]; ok {
			plugins = append(plugins, p)
		}
	}
	return plugins
}

// expandEntryPaths resolves any glob-like entry path (doublestar syntax)
// against the working directory, the same library the teacher's
// module_analyzer.go uses for include/exclude matching.
func expandEntryPaths(paths []string) []string {
	var out []string
	for _, p := range paths {
		matches, err := doublestar.FilepathGlob(p)
		if err != nil || len(matches) == 0 {
			out = append(out, p)
			continue
		}
		out = append(out, matches...)
	}
	return out
}
