// Package driver implements the pass driver (C8): the fixed-point state
// machine that takes a freshly parsed module from raw AST through scope
// building, name/type/operator resolution, validation, transformation,
// and optimization, the way the teacher's internal/analyzer.Analyzer
// sequences CFG construction, metric passes, and report assembly over a
// parsed Python file — generalized here to a convergence loop instead of
// a single linear sweep, because HIL/SPD resolution is mutually
// recursive across declarations.
package driver

import (
	"context"
	"fmt"

	"github.com/hilcore/hilc/internal/ast"
	"github.com/hilcore/hilc/internal/idassign"
	"github.com/hilcore/hilc/internal/module"
	"github.com/hilcore/hilc/internal/operator"
	"github.com/hilcore/hilc/internal/unify"
)

// State is the driver's coarse lifecycle position (spec.md §5).
type State int

const (
	Idle State = iota
	Parsing
	ProcessingState
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Parsing:
		return "parsing"
	case ProcessingState:
		return "processing"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Plugin is the per-language extension surface (spec.md §5/§6): it hooks
// every step of the fixed-point loop for one module kind (HIL itself, or
// an extension such as SPD lowering). Steps that don't apply to a given
// plugin should just return zero-value success.
type Plugin interface {
	// Name identifies the plugin in diagnostics and debug streams.
	Name() string

	// BuildScopes populates scope tables for mod's declarations. Called
	// once per module, before the resolve loop starts, and again whenever
	// ctx.RebuildScopes is set (e.g. after ImportModule adds a sibling).
	BuildScopes(ctx *ast.Context, mod *module.Module) error

	// ValidatePre runs structural checks that must hold before resolution
	// starts (e.g. "no two params share a name"). Returned errors are
	// collected, not fatal to other plugins/modules.
	ValidatePre(ctx *ast.Context, mod *module.Module) []error

	// Resolve performs one round of name/operator resolution, reporting
	// how many previously-unresolved references it fixed this round.
	Resolve(ctx *ast.Context, mod *module.Module) (progressed int, err error)

	// ValidatePost runs checks that require resolution to have completed
	// (type mismatches, missing overloads).
	ValidatePost(ctx *ast.Context, mod *module.Module) []error

	// Transform lowers/desugars resolved AST into its final shape (e.g.
	// SPD unit -> HIL grammar productions). Returns whether it changed
	// anything, since a transform can itself unlock further resolution.
	Transform(ctx *ast.Context, mod *module.Module) (changed bool, err error)

	// Optimize performs non-semantic cleanup once the AST is final.
	Optimize(ctx *ast.Context, mod *module.Module) (changed bool, err error)
}

// DefaultMaxIterations bounds the resolve/transform/optimize loops when
// the driver isn't given a narrower cap; exceeding it without reaching a
// fixed point means the language's own declarations are not well-founded
// (a genuine cycle, not a driver bug) and is reported as ResolverDiverged
// rather than looping forever (spec.md §4.4 "a bounded number of rounds").
const DefaultMaxIterations = 256

// ResolverDiverged is returned when the resolve loop hits the driver's
// iteration cap without reaching a fixed point.
type ResolverDiverged struct {
	Iterations int
	Remaining  []*ast.Node // types still missing a canonical string
}

func (e *ResolverDiverged) Error() string {
	return fmt.Sprintf("resolver did not converge after %d iterations (%d types still unresolved)", e.Iterations, len(e.Remaining))
}

// ValidationFailed aggregates every error a validation step reported.
type ValidationFailed struct {
	Step   string
	Errors []error
}

func (e *ValidationFailed) Error() string {
	return fmt.Sprintf("%s: %d validation error(s) (first: %v)", e.Step, len(e.Errors), e.Errors[0])
}

// Driver owns the registry, unifier, ID assigner, and operator table for
// one compilation and runs plugins over it to a fixed point.
type Driver struct {
	Registry *module.Registry
	Operators *operator.Registry

	plugins []Plugin

	state State

	currentPlugin string
	currentStep   string

	maxIterations int
}

// New creates a Driver bound to reg and op, idle until ProcessAST runs.
func New(reg *module.Registry, op *operator.Registry) *Driver {
	return &Driver{Registry: reg, Operators: op, state: Idle, maxIterations: DefaultMaxIterations}
}

// SetMaxIterations overrides the resolve/transform/optimize iteration
// bound, e.g. from config.DriverConfig.IterationCap. n <= 0 is ignored,
// leaving the previous (default DefaultMaxIterations) cap in place.
func (d *Driver) SetMaxIterations(n int) {
	if n > 0 {
		d.maxIterations = n
	}
}

// Use registers a plugin. Plugins run in registration order within each
// step, across all modules, matching spec.md §5 "modules are processed
// in insertion order" extended to the plugin dimension.
func (d *Driver) Use(p Plugin) { d.plugins = append(d.plugins, p) }

// State returns the driver's current lifecycle state.
func (d *Driver) State() State { return d.state }

// CurrentPlugin implements ast.ActiveDriver.
func (d *Driver) CurrentPlugin() string { return d.currentPlugin }

// CurrentStep implements ast.ActiveDriver.
func (d *Driver) CurrentStep() string { return d.currentStep }

// ProcessAST runs the full pipeline over every module currently in the
// registry: buildScopes, validate-pre, the resolve fixed point (unify +
// assignIDs + each plugin's Resolve), validate-post, transform, and
// optimize (spec.md §5). It recovers InvariantViolation panics at this
// outermost boundary and turns them back into an error, per ast/errors.go's
// documented contract.
func (d *Driver) ProcessAST(pctx context.Context, debugMode bool) (err error) {
	astCtx := d.Registry.Context()
	astCtx.SetActiveDriver(d)
	defer astCtx.SetActiveDriver(nil)

	d.state = Parsing
	defer func() {
		if r := recover(); r != nil {
			if iv, ok := r.(*ast.InvariantViolation); ok {
				err = iv
			} else {
				err = fmt.Errorf("panic during ProcessAST: %v", r)
			}
			d.state = Failed
		}
	}()

	d.state = ProcessingState

	for astCtx.RebuildScopes {
		astCtx.RebuildScopes = false
		if err := d.forEachPlugin("buildScopes", func(p Plugin, mod *module.Module) error {
			return p.BuildScopes(astCtx, mod)
		}); err != nil {
			d.state = Failed
			return err
		}
	}

	if errs := d.collectValidation("validate-pre", func(p Plugin, mod *module.Module) []error {
		return p.ValidatePre(astCtx, mod)
	}); len(errs) > 0 {
		d.state = Failed
		return &ValidationFailed{Step: "validate-pre", Errors: errs}
	}

	u := unify.New()
	assigner := idassign.New()
	assigner.DebugMode = debugMode

	iteration := 0
	for {
		if err := pctx.Err(); err != nil {
			d.state = Failed
			return err
		}
		iteration++
		if iteration > d.maxIterations {
			d.state = Failed
			return &ResolverDiverged{Iterations: iteration, Remaining: u.Deferred()}
		}

		progressed := 0
		progressed += u.Run(astCtx)

		for _, mod := range d.Registry.Modules() {
			n, err := assigner.Run(mod)
			if err != nil {
				d.state = Failed
				return err
			}
			progressed += n
		}

		if err := d.forEachPlugin("resolve", func(p Plugin, mod *module.Module) error {
			n, err := p.Resolve(astCtx, mod)
			progressed += n
			return err
		}); err != nil {
			d.state = Failed
			return err
		}

		if astCtx.RebuildScopes {
			astCtx.RebuildScopes = false
			if err := d.forEachPlugin("buildScopes", func(p Plugin, mod *module.Module) error {
				return p.BuildScopes(astCtx, mod)
			}); err != nil {
				d.state = Failed
				return err
			}
			continue
		}

		if progressed == 0 {
			break
		}
	}

	if len(u.Deferred()) > 0 {
		d.state = Failed
		return &ResolverDiverged{Iterations: iteration, Remaining: u.Deferred()}
	}

	if errs := d.collectValidation("validate-post", func(p Plugin, mod *module.Module) []error {
		return p.ValidatePost(astCtx, mod)
	}); len(errs) > 0 {
		d.state = Failed
		return &ValidationFailed{Step: "validate-post", Errors: errs}
	}

	if err := d.runUntilStable("transform", d.plugins, func(p Plugin, mod *module.Module) (bool, error) {
		return p.Transform(astCtx, mod)
	}); err != nil {
		d.state = Failed
		return err
	}

	// Optimize is scoped to the final plugin only (spec.md §4.8 step 6):
	// earlier plugins' lowering/transform output is what gets optimized,
	// not re-optimized once per plugin in the pipeline.
	if err := d.runUntilStable("optimize", d.finalPlugin(), func(p Plugin, mod *module.Module) (bool, error) {
		return p.Optimize(astCtx, mod)
	}); err != nil {
		d.state = Failed
		return err
	}

	astCtx.Resolved = true
	d.state = Done
	return nil
}

func (d *Driver) forEachPlugin(step string, fn func(Plugin, *module.Module) error) error {
	d.currentStep = step
	defer func() { d.currentStep = "" }()
	for _, p := range d.plugins {
		d.currentPlugin = p.Name()
		for _, mod := range d.Registry.Modules() {
			if err := fn(p, mod); err != nil {
				d.currentPlugin = ""
				return err
			}
		}
	}
	d.currentPlugin = ""
	return nil
}

func (d *Driver) collectValidation(step string, fn func(Plugin, *module.Module) []error) []error {
	d.currentStep = step
	defer func() { d.currentStep = "" }()
	var all []error
	for _, p := range d.plugins {
		d.currentPlugin = p.Name()
		for _, mod := range d.Registry.Modules() {
			all = append(all, fn(p, mod)...)
		}
	}
	d.currentPlugin = ""
	return all
}

// finalPlugin returns the last-registered plugin alone, the scope
// spec.md §4.8 step 6 gives the optimize step.
func (d *Driver) finalPlugin() []Plugin {
	if len(d.plugins) == 0 {
		return nil
	}
	return d.plugins[len(d.plugins)-1:]
}

// runUntilStable re-runs a step across plugins/modules until a full pass
// makes no further change, bounded by d.maxIterations the same as the
// resolve loop (transform/optimize can each only fire a bounded number
// of times before they must be idempotent, spec.md §4.4).
func (d *Driver) runUntilStable(step string, plugins []Plugin, fn func(Plugin, *module.Module) (bool, error)) error {
	d.currentStep = step
	defer func() { d.currentStep = "" }()
	for i := 0; i < d.maxIterations; i++ {
		anyChanged := false
		for _, p := range plugins {
			d.currentPlugin = p.Name()
			for _, mod := range d.Registry.Modules() {
				changed, err := fn(p, mod)
				if err != nil {
					d.currentPlugin = ""
					return err
				}
				anyChanged = anyChanged || changed
			}
		}
		d.currentPlugin = ""
		if !anyChanged {
			return nil
		}
	}
	return fmt.Errorf("%s did not stabilize after %d iterations", step, d.maxIterations)
}
