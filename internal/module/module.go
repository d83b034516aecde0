package module

import "github.com/hilcore/hilc/internal/ast"

// Module is a top-level declaration identified by UID (spec.md §3). Its
// Decl is the module declaration stored as a child of the AST context's
// root node; its Body is the module's own declarations.
type Module struct {
	UID  UID
	Decl *ast.Node // Kind == ast.KindModuleDecl
}

// Body returns the module's own top-level declarations, i.e. the
// children of its module declaration node.
func (m *Module) Body() []*ast.Node {
	if m.Decl == nil {
		return nil
	}
	return m.Decl.Children
}

// Imports returns the names of modules this module's source named in its
// own top-level import statements, read back from properties stamped by
// the external parser (spec.md §4.3 "direct set = modules named in uid's
// top-level imports").
func (m *Module) Imports() []string {
	if m.Decl == nil {
		return nil
	}
	v, ok := m.Decl.Property("imports")
	if !ok {
		return nil
	}
	names, _ := v.([]string)
	return names
}

// SetImports stamps the module's declared import names. Called by the
// registry right after a module is produced by the external parser.
func (m *Module) SetImports(names []string) {
	if m.Decl != nil {
		m.Decl.SetProperty("imports", names)
	}
}
