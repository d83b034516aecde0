// Package spd implements the reference driver.Plugin that lowers SPD
// (parser-description language) unit declarations into HIL: a struct
// mirror for each unit's data fields, and a function whose body is a
// grammar production tree built from the ast.Prod* node kinds. It plays
// the same role in this codebase that the teacher's analyzer plugins
// play over a parsed Python file — a self-contained pass bolted onto
// the shared driver through one interface.
package spd

import (
	"fmt"

	"github.com/hilcore/hilc/internal/ast"
	"github.com/hilcore/hilc/internal/module"
)

// RuntimeModuleName is the implicit HIL runtime-library module every
// lowered SPD module depends on (spec.md scenario S6: "dependencies
// report HIL's runtime library module").
const RuntimeModuleName = "spd_rt"

// loweredAttr tags a unit declaration that has already been lowered,
// both to make Transform idempotent and so later dumps/diagnostics can
// still find the source-level unit.
const loweredAttr = "lowered"

// Plugin lowers SPD unit types to HIL struct + parse-function pairs.
type Plugin struct{}

// New creates the SPD lowering plugin.
func New() *Plugin { return &Plugin{} }

// Name implements driver.Plugin.
func (p *Plugin) Name() string { return "spd" }

// BuildScopes implements driver.Plugin. Unit types declare no scope of
// their own beyond what the core HIL plugin already builds for every
// declaration container; SPD has nothing extra to contribute here.
func (p *Plugin) BuildScopes(ctx *ast.Context, mod *module.Module) error { return nil }

// ValidatePre implements driver.Plugin: every unit field must resolve
// to either a declared type or a ctor before lowering can proceed.
func (p *Plugin) ValidatePre(ctx *ast.Context, mod *module.Module) []error {
	var errs []error
	for _, unit := range unitsOf(mod) {
		for _, m := range unit.MembersOfKind(ast.KindSPDUnresField) {
			if m.ResolvedDeclaration() == nil {
				errs = append(errs, fmt.Errorf("%s: field %q is unresolved", unit, m.Name))
			}
		}
	}
	return errs
}

// Resolve implements driver.Plugin and resolves nothing. Neither this
// plugin nor the core resolver sets the ResolvedDeclaration link of a
// KindSPDUnresField; ValidatePre reports those left unset. This plugin's
// own work is folded into Transform, which only fires once everything
// else has settled.
func (p *Plugin) Resolve(ctx *ast.Context, mod *module.Module) (int, error) { return 0, nil }

// ValidatePost implements driver.Plugin: after resolution, every unit's
// fields must have a concrete, resolved type.
func (p *Plugin) ValidatePost(ctx *ast.Context, mod *module.Module) []error {
	var errs []error
	for _, unit := range unitsOf(mod) {
		for _, f := range unit.MembersOfKind(ast.KindSPDField) {
			t := f.FieldType()
			if t == nil || t.TypeData == nil || !t.TypeData.Resolved {
				errs = append(errs, fmt.Errorf("%s: field %q has an unresolved type", unit, f.Name))
			}
		}
	}
	return errs
}

// Transform implements driver.Plugin: lowers every not-yet-lowered unit
// type into a struct declaration plus a parse function, and registers
// the spd_rt runtime dependency on the module.
func (p *Plugin) Transform(ctx *ast.Context, mod *module.Module) (bool, error) {
	changed := false
	for _, unit := range unitsOf(mod) {
		if unit.Attrs.Has(loweredAttr) {
			continue
		}
		if err := p.lowerUnit(ctx, mod, unit); err != nil {
			return changed, err
		}
		unit.Attrs.Add(loweredAttr, nil)
		changed = true
	}
	if changed {
		p.addRuntimeImport(mod)
	}
	return changed, nil
}

// Optimize implements driver.Plugin: dead-field elimination over already
// lowered units (spec.md §4.8 step 6). A field consumed only as another
// field's guard/repeat condition, and never read back by a hook, is
// parse-time scratch — the grammar still parses it, but the mirrored
// $data struct has no reason to carry a slot for it.
func (p *Plugin) Optimize(ctx *ast.Context, mod *module.Module) (bool, error) {
	changed := false
	for _, unit := range unitsOf(mod) {
		if !unit.Attrs.Has(loweredAttr) {
			continue
		}
		structDecl := p.dataStructDecl(mod, unit)
		if structDecl == nil {
			continue
		}
		structType := structDecl.DeclaredType()
		for _, name := range deadFields(unit) {
			if removeFieldByName(structType, name) {
				changed = true
			}
		}
	}
	return changed, nil
}

// dataStructDecl finds the struct mirror lowerUnit synthesized for unit.
func (p *Plugin) dataStructDecl(mod *module.Module, unit *ast.Node) *ast.Node {
	target := unit.Name + "$data"
	for _, c := range mod.Body() {
		if c.Kind == ast.KindTypeDecl && c.Name == target {
			return c
		}
	}
	return nil
}

// deadFields returns the unit field names referenced only from another
// field's guard/repeat expression, with no hook ever reading them back.
func deadFields(unit *ast.Node) []string {
	fields := unit.MembersOfKind(ast.KindSPDField)

	controlRefs := make(map[string]bool)
	for _, f := range fields {
		if guard := f.FieldGuard(); guard != nil {
			collectNameRefs(guard, controlRefs)
		}
		if repeat := f.FieldRepeat(); repeat != nil {
			collectNameRefs(repeat, controlRefs)
		}
	}

	hookRefs := make(map[string]bool)
	for _, h := range unit.MembersOfKind(ast.KindSPDHook) {
		collectNameRefs(h, hookRefs)
	}

	var dead []string
	for _, f := range fields {
		if controlRefs[f.Name] && !hookRefs[f.Name] {
			dead = append(dead, f.Name)
		}
	}
	return dead
}

// collectNameRefs walks n for KindExprName leaves and records their names.
func collectNameRefs(n *ast.Node, into map[string]bool) {
	ast.Accept(n, ast.PreOrder, ast.NewFuncVisitor(func(m *ast.Node) bool {
		if m.Kind == ast.KindExprName {
			into[m.Name] = true
		}
		return true
	}), false)
}

// removeFieldByName detaches the named field from a struct type's
// children, reporting whether a field was found and removed.
func removeFieldByName(structType *ast.Node, name string) bool {
	for i, c := range structType.Children {
		if c != nil && c.Kind == ast.KindFieldDecl && c.Name == name {
			c.Parent = nil
			structType.Children = append(structType.Children[:i], structType.Children[i+1:]...)
			return true
		}
	}
	return false
}

// unitsOf returns every SPD unit type declared (directly or nested) in
// mod's body.
func unitsOf(mod *module.Module) []*ast.Node {
	var units []*ast.Node
	for _, decl := range mod.Body() {
		ast.Accept(decl, ast.PreOrder, ast.NewFuncVisitor(func(n *ast.Node) bool {
			if n.Kind == ast.KindSPDUnit {
				units = append(units, n)
			}
			return true
		}), false)
	}
	return units
}

// lowerUnit synthesizes the struct mirror and parse function for one
// unit type, appending both as siblings of the unit declaration's
// enclosing module (spec.md §4.9's "Parser-description extensions").
func (p *Plugin) lowerUnit(ctx *ast.Context, mod *module.Module, unit *ast.Node) error {
	structType, err := ast.NewStructType(ctx, unit.Name+"$data")
	if err != nil {
		return err
	}
	for _, f := range unit.MembersOfKind(ast.KindSPDField) {
		// The unit field's type node is already parented under f; the
		// mirror struct needs its own copy, not a second parent for it.
		fieldType, err := ast.CloneType(ctx, f.FieldType())
		if err != nil {
			return err
		}
		field, err := ast.NewFieldDecl(ctx, f.Name, fieldType)
		if err != nil {
			return err
		}
		if err := structType.AddField(field); err != nil {
			return err
		}
	}

	structDecl, err := ast.NewTypeDecl(ctx, unit.Name+"$data", ast.LinkagePublic, structType)
	if err != nil {
		return err
	}

	production, err := p.buildProduction(ctx, unit)
	if err != nil {
		return err
	}

	voidResult, err := ast.NewPrimitiveType(ctx, ast.KindTypeVoid)
	if err != nil {
		return err
	}
	funcType, err := ast.NewFunctionType(ctx, nil, voidResult)
	if err != nil {
		return err
	}
	block, err := ast.NewBlockStmt(ctx, nil)
	if err != nil {
		return err
	}
	// The production tree isn't a HIL statement/expression; it is the
	// grammar the synthesized function implements. It rides along as a
	// property rather than forcing a fake statement shape onto it.
	block.SetProperty("production", production)
	parseFn, err := ast.NewFunctionDecl(ctx, unit.Name+"$parse", ast.LinkagePublic, funcType, nil, block)
	if err != nil {
		return err
	}

	if err := mod.Decl.AddChild(structDecl); err != nil {
		return err
	}
	if err := mod.Decl.AddChild(parseFn); err != nil {
		return err
	}
	return nil
}

// buildProduction turns a unit's ordered field list into a sequence
// production with one part per field: a guarded field becomes a
// one-alternative choice, a repeated field a counter, any other field an
// atomic production, and a unit with no fields an epsilon. No look-ahead,
// while, switch, byte-block or reference productions are built here or
// anywhere else.
func (p *Plugin) buildProduction(ctx *ast.Context, unit *ast.Node) (*ast.Node, error) {
	fields := unit.MembersOfKind(ast.KindSPDField)
	if len(fields) == 0 {
		return ast.NewEpsilonProduction(ctx), nil
	}
	var parts []*ast.Node
	for _, f := range fields {
		ref := ast.NewNameExpr(ctx, f.Name)
		atom, err := ast.NewAtomicProduction(ctx, ref)
		if err != nil {
			return nil, err
		}
		if guard := f.FieldGuard(); guard != nil {
			choice, err := ast.NewChoiceProduction(ctx, []*ast.Node{atom})
			if err != nil {
				return nil, err
			}
			parts = append(parts, choice)
			continue
		}
		if repeat := f.FieldRepeat(); repeat != nil {
			loop, err := ast.NewCounterProduction(ctx, repeat, atom)
			if err != nil {
				return nil, err
			}
			parts = append(parts, loop)
			continue
		}
		parts = append(parts, atom)
	}
	return ast.NewSequenceProduction(ctx, parts)
}

// addRuntimeImport stamps the implicit spd_rt dependency onto mod's
// import list if it isn't already present.
func (p *Plugin) addRuntimeImport(mod *module.Module) {
	imports := mod.Imports()
	for _, name := range imports {
		if name == RuntimeModuleName {
			return
		}
	}
	mod.SetImports(append(imports, RuntimeModuleName))
}
