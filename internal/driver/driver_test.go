package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hilcore/hilc/internal/ast"
	"github.com/hilcore/hilc/internal/driver"
	"github.com/hilcore/hilc/internal/hilcore"
	"github.com/hilcore/hilc/internal/module"
	"github.com/hilcore/hilc/internal/module/testparser"
	"github.com/hilcore/hilc/internal/operator"
)

func writeFile(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func newDriver(t *testing.T) (*driver.Driver, *module.Registry) {
	t.Helper()
	reg := module.NewRegistry(ast.NewContext())
	reg.RegisterParser(".hilfix", testparser.New())
	ops := operator.NewRegistry()
	ops.Register("+", operator.Signature{
		Operands: []operator.Operand{{Type: hilcore.BuiltinInt}, {Type: hilcore.BuiltinInt}},
		Result:   hilcore.BuiltinInt,
	})
	d := driver.New(reg, ops)
	d.Use(hilcore.New(reg, ops))
	return d, reg
}

func TestProcessASTSucceedsOnWellFormedModule(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.hilfix", `(module main
  (func add ((param a int) (param b int)) int
    (return (op + (name a) (name b)))))`)

	d, reg := newDriver(t)
	if _, err := reg.ParseSource(context.Background(), path, ""); err != nil {
		t.Fatalf("ParseSource: %v", err)
	}

	if err := d.ProcessAST(context.Background(), false); err != nil {
		t.Fatalf("ProcessAST: %v", err)
	}
	if d.State() != driver.Done {
		t.Fatalf("expected Done state, got %v", d.State())
	}
	if !reg.Context().Resolved {
		t.Fatalf("expected ctx.Resolved to be set once ProcessAST succeeds")
	}
}

func TestProcessASTFailsValidationPreOnDuplicateParam(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.hilfix", `(module bad
  (func f ((param a int) (param a int)) int (return (name a))))`)

	d, reg := newDriver(t)
	if _, err := reg.ParseSource(context.Background(), path, ""); err != nil {
		t.Fatalf("ParseSource: %v", err)
	}

	err := d.ProcessAST(context.Background(), false)
	if err == nil {
		t.Fatalf("expected a validate-pre failure")
	}
	vf, ok := err.(*driver.ValidationFailed)
	if !ok {
		t.Fatalf("expected *driver.ValidationFailed, got %T: %v", err, err)
	}
	if vf.Step != "validate-pre" {
		t.Fatalf("expected validate-pre step, got %q", vf.Step)
	}
	if d.State() != driver.Failed {
		t.Fatalf("expected Failed state, got %v", d.State())
	}
}

func TestProcessASTFailsValidationPostOnUnresolvedName(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.hilfix", `(module bad
  (func f () int (return (name missing))))`)

	d, reg := newDriver(t)
	if _, err := reg.ParseSource(context.Background(), path, ""); err != nil {
		t.Fatalf("ParseSource: %v", err)
	}

	err := d.ProcessAST(context.Background(), false)
	if err == nil {
		t.Fatalf("expected a validate-post failure")
	}
	vf, ok := err.(*driver.ValidationFailed)
	if !ok {
		t.Fatalf("expected *driver.ValidationFailed, got %T: %v", err, err)
	}
	if vf.Step != "validate-post" {
		t.Fatalf("expected validate-post step, got %q", vf.Step)
	}
}

func TestProcessASTResolvesCrossModuleDependencyAfterImport(t *testing.T) {
	dir := t.TempDir()
	utilPath := writeFile(t, dir, "util.hilfix", `(module util
  (global shared int (int 7)))`)
	mainPath := writeFile(t, dir, "main.hilfix", `(module main
  (import util)
  (func get () int (return (name shared))))`)

	d, reg := newDriver(t)
	if _, err := reg.ParseSource(context.Background(), utilPath, ""); err != nil {
		t.Fatalf("ParseSource util: %v", err)
	}
	if _, err := reg.ParseSource(context.Background(), mainPath, ""); err != nil {
		t.Fatalf("ParseSource main: %v", err)
	}

	if err := d.ProcessAST(context.Background(), false); err != nil {
		t.Fatalf("ProcessAST: %v", err)
	}

	mainMod := reg.GetModuleByPath(mainPath)
	deps := reg.Dependencies(mainMod.UID, false)
	if len(deps) != 1 || deps[0].Name != "util" {
		t.Fatalf("expected main to depend on util, got %v", deps)
	}
}

// stubPlugin is a minimal driver.Plugin for exercising driver-level
// control flow (optimize scoping, iteration caps) without a real
// language's resolution logic.
type stubPlugin struct {
	name          string
	optimizeCalls int
	optimize      func() (bool, error)
}

func (s *stubPlugin) Name() string                                               { return s.name }
func (s *stubPlugin) BuildScopes(ctx *ast.Context, mod *module.Module) error      { return nil }
func (s *stubPlugin) ValidatePre(ctx *ast.Context, mod *module.Module) []error    { return nil }
func (s *stubPlugin) Resolve(ctx *ast.Context, mod *module.Module) (int, error)   { return 0, nil }
func (s *stubPlugin) ValidatePost(ctx *ast.Context, mod *module.Module) []error   { return nil }
func (s *stubPlugin) Transform(ctx *ast.Context, mod *module.Module) (bool, error) {
	return false, nil
}
func (s *stubPlugin) Optimize(ctx *ast.Context, mod *module.Module) (bool, error) {
	s.optimizeCalls++
	if s.optimize != nil {
		return s.optimize()
	}
	return false, nil
}

func TestProcessASTOnlyOptimizesTheFinalPlugin(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.hilfix", `(module main
  (func zero () int (return (int 0))))`)

	reg := module.NewRegistry(ast.NewContext())
	reg.RegisterParser(".hilfix", testparser.New())
	if _, err := reg.ParseSource(context.Background(), path, ""); err != nil {
		t.Fatalf("ParseSource: %v", err)
	}

	ops := operator.NewRegistry()
	first := &stubPlugin{name: "first"}
	last := &stubPlugin{name: "last"}
	d := driver.New(reg, ops)
	d.Use(hilcore.New(reg, ops))
	d.Use(first)
	d.Use(last)

	if err := d.ProcessAST(context.Background(), false); err != nil {
		t.Fatalf("ProcessAST: %v", err)
	}
	if first.optimizeCalls != 0 {
		t.Fatalf("expected a non-final plugin's Optimize never to run, got %d calls", first.optimizeCalls)
	}
	if last.optimizeCalls == 0 {
		t.Fatalf("expected the final plugin's Optimize to run at least once")
	}
}

func TestSetMaxIterationsBoundsOptimizeStabilization(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.hilfix", `(module main
  (func zero () int (return (int 0))))`)

	reg := module.NewRegistry(ast.NewContext())
	reg.RegisterParser(".hilfix", testparser.New())
	if _, err := reg.ParseSource(context.Background(), path, ""); err != nil {
		t.Fatalf("ParseSource: %v", err)
	}

	ops := operator.NewRegistry()
	neverStable := &stubPlugin{name: "churn", optimize: func() (bool, error) { return true, nil }}
	d := driver.New(reg, ops)
	d.Use(hilcore.New(reg, ops))
	d.Use(neverStable)
	d.SetMaxIterations(3)

	err := d.ProcessAST(context.Background(), false)
	if err == nil {
		t.Fatalf("expected ProcessAST to fail once optimize can't stabilize within the cap")
	}
	if neverStable.optimizeCalls != 3 {
		t.Fatalf("expected exactly 3 Optimize calls bounded by SetMaxIterations(3), got %d", neverStable.optimizeCalls)
	}
}

func TestProcessASTRespectsContextCancellation(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.hilfix", `(module main
  (func zero () int (return (int 0))))`)

	d, reg := newDriver(t)
	if _, err := reg.ParseSource(context.Background(), path, ""); err != nil {
		t.Fatalf("ParseSource: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := d.ProcessAST(ctx, false)
	if err == nil {
		t.Fatalf("expected an error from an already-cancelled context")
	}
}
