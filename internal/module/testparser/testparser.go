// Package testparser implements a module.SourceParser over a tiny
// s-expression fixture format, used by this package's own tests and by
// internal/spd's tests to exercise the registry/driver pipeline without
// a real HIL/SPD grammar (out of scope per spec.md §1). It is not meant
// to resemble production parser output; text/scanner is good enough for
// a format this small.
//
// Grammar (one module per file):
//
//	(module <name>
//	  (import <name>)*
//	  (global <id> <type> <init>?)
//	  (type <id> (struct (field <id> <type>)*))
//	  (func <id> ((param <id> <type>)*) <resultType> <stmt>*)
//	  ...)
//
// Types: int, real, bool, string, (list <type>), or a bare name
// referencing a type declared elsewhere. Statements: (return <expr>?),
// (local <id> <type> <init>). Expressions: (name <id>), (int <n>),
// (real <n>), (bool true|false), (string "..."), (op <sym> <expr>
// <expr>...).
package testparser

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/scanner"

	"github.com/hilcore/hilc/internal/ast"
	"github.com/hilcore/hilc/internal/module"
)

// Parser implements module.SourceParser for the s-expression fixture
// format.
type Parser struct{}

// New creates a fixture Parser.
func New() *Parser { return &Parser{} }

var _ module.SourceParser = (*Parser)(nil)

// Parse implements module.SourceParser.
func (p *Parser) Parse(ctx context.Context, filename string, r io.Reader) (*module.ParsedModule, error) {
	var sc scanner.Scanner
	sc.Init(r)
	sc.Filename = filename
	sc.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats | scanner.ScanStrings | scanner.ScanComments | scanner.SkipComments

	px := &px{sc: &sc, filename: filename}
	px.next()
	return px.parseModule()
}

// px ("parser context") walks the token stream with one token of
// lookahead, the same single-token-lookahead discipline the teacher's
// own recursive-descent helpers use.
type px struct {
	sc       *scanner.Scanner
	tok      rune
	text     string
	filename string
}

func (x *px) next() {
	x.tok = x.sc.Scan()
	x.text = x.sc.TokenText()
}

func (x *px) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%s:%d: %s", x.filename, x.sc.Line, fmt.Sprintf(format, args...))
}

func (x *px) expect(r rune) error {
	if x.tok != r {
		return x.errorf("expected %q, got %q", r, x.text)
	}
	x.next()
	return nil
}

func (x *px) expectIdent(word string) error {
	if x.tok != scanner.Ident || x.text != word {
		return x.errorf("expected %q, got %q", word, x.text)
	}
	x.next()
	return nil
}

func (x *px) ident() (string, error) {
	if x.tok != scanner.Ident {
		return "", x.errorf("expected identifier, got %q", x.text)
	}
	s := x.text
	x.next()
	return s, nil
}

// parseModule parses `(module <name> <top-level-form>*)`.
func (x *px) parseModule() (*module.ParsedModule, error) {
	if err := x.expect('('); err != nil {
		return nil, err
	}
	if err := x.expectIdent("module"); err != nil {
		return nil, err
	}
	name, err := x.ident()
	if err != nil {
		return nil, err
	}
	decl, err := ast.NewModuleDecl(nil, name, ast.LinkagePublic)
	if err != nil {
		return nil, err
	}

	var imports []string
	for x.tok != ')' {
		if x.tok == scanner.EOF {
			return nil, x.errorf("unexpected end of input in module %q", name)
		}
		if err := x.expect('('); err != nil {
			return nil, err
		}
		keyword, err := x.ident()
		if err != nil {
			return nil, err
		}
		switch keyword {
		case "import":
			imp, err := x.ident()
			if err != nil {
				return nil, err
			}
			imports = append(imports, imp)
			if err := x.expect(')'); err != nil {
				return nil, err
			}
		case "global":
			d, err := x.parseGlobal()
			if err != nil {
				return nil, err
			}
			if err := decl.AddChild(d); err != nil {
				return nil, err
			}
		case "type":
			d, err := x.parseTypeDecl()
			if err != nil {
				return nil, err
			}
			if err := decl.AddChild(d); err != nil {
				return nil, err
			}
		case "func":
			d, err := x.parseFunc()
			if err != nil {
				return nil, err
			}
			if err := decl.AddChild(d); err != nil {
				return nil, err
			}
		default:
			return nil, x.errorf("unknown top-level form %q", keyword)
		}
	}
	if err := x.expect(')'); err != nil {
		return nil, err
	}
	return &module.ParsedModule{Decl: decl, Imports: imports}, nil
}

// parseGlobal parses `<id> <type> <init>?)`, the opening "(global" and
// the closing ")" are consumed by the caller/here respectively.
func (x *px) parseGlobal() (*ast.Node, error) {
	id, err := x.ident()
	if err != nil {
		return nil, err
	}
	typ, err := x.parseType()
	if err != nil {
		return nil, err
	}
	var init *ast.Node
	if x.tok != ')' {
		init, err = x.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if err := x.expect(')'); err != nil {
		return nil, err
	}
	return ast.NewGlobalVarDecl(nil, id, ast.LinkagePublic, typ, init)
}

// parseTypeDecl parses `<id> (struct (field <id> <type>)*))`.
func (x *px) parseTypeDecl() (*ast.Node, error) {
	id, err := x.ident()
	if err != nil {
		return nil, err
	}
	if err := x.expect('('); err != nil {
		return nil, err
	}
	if err := x.expectIdent("struct"); err != nil {
		return nil, err
	}
	st, err := ast.NewStructType(nil, id)
	if err != nil {
		return nil, err
	}
	for x.tok != ')' {
		if err := x.expect('('); err != nil {
			return nil, err
		}
		if err := x.expectIdent("field"); err != nil {
			return nil, err
		}
		fname, err := x.ident()
		if err != nil {
			return nil, err
		}
		ftype, err := x.parseType()
		if err != nil {
			return nil, err
		}
		field, err := ast.NewFieldDecl(nil, fname, ftype)
		if err != nil {
			return nil, err
		}
		if err := st.AddField(field); err != nil {
			return nil, err
		}
		if err := x.expect(')'); err != nil {
			return nil, err
		}
	}
	if err := x.expect(')'); err != nil { // close struct form
		return nil, err
	}
	if err := x.expect(')'); err != nil { // close type form
		return nil, err
	}
	return ast.NewTypeDecl(nil, id, ast.LinkagePublic, st)
}

// parseFunc parses `<id> (<param>*) <resultType> <stmt>*)`.
func (x *px) parseFunc() (*ast.Node, error) {
	id, err := x.ident()
	if err != nil {
		return nil, err
	}
	if err := x.expect('('); err != nil {
		return nil, err
	}
	var paramDecls []*ast.Node
	var paramTypes []*ast.Node
	for x.tok != ')' {
		if err := x.expect('('); err != nil {
			return nil, err
		}
		if err := x.expectIdent("param"); err != nil {
			return nil, err
		}
		pname, err := x.ident()
		if err != nil {
			return nil, err
		}
		ptype, err := x.parseType()
		if err != nil {
			return nil, err
		}
		if err := x.expect(')'); err != nil {
			return nil, err
		}
		pdecl, err := ast.NewParamDecl(nil, pname, ptype, nil)
		if err != nil {
			return nil, err
		}
		paramDecls = append(paramDecls, pdecl)
		pt, cerr := ast.CloneType(nil, ptype)
		if cerr != nil {
			return nil, cerr
		}
		paramTypes = append(paramTypes, pt)
	}
	if err := x.expect(')'); err != nil {
		return nil, err
	}
	resultType, err := x.parseType()
	if err != nil {
		return nil, err
	}
	funcType, err := ast.NewFunctionType(nil, paramTypes, resultType)
	if err != nil {
		return nil, err
	}
	var stmts []*ast.Node
	for x.tok != ')' {
		stmt, err := x.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if err := x.expect(')'); err != nil {
		return nil, err
	}
	body, err := ast.NewBlockStmt(nil, stmts)
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionDecl(nil, id, ast.LinkagePublic, funcType, paramDecls, body)
}

// parseType parses a bare type name, one of the built-in scalar
// keywords, or a `(list <type>)` container form.
func (x *px) parseType() (*ast.Node, error) {
	if x.tok == '(' {
		x.next()
		if err := x.expectIdent("list"); err != nil {
			return nil, err
		}
		elem, err := x.parseType()
		if err != nil {
			return nil, err
		}
		if err := x.expect(')'); err != nil {
			return nil, err
		}
		return ast.NewContainerType(nil, ast.KindTypeList, elem)
	}
	name, err := x.ident()
	if err != nil {
		return nil, err
	}
	switch name {
	case "int":
		return ast.NewIntType(nil, 64, true)
	case "real":
		return ast.NewRealType(nil, 64)
	case "bool":
		return ast.NewPrimitiveType(nil, ast.KindTypeBool)
	case "string":
		return ast.NewPrimitiveType(nil, ast.KindTypeString)
	default:
		return ast.NewNameType(nil, name)
	}
}

// parseStmt parses `(return <expr>?)` or `(local <id> <type> <init>)`.
func (x *px) parseStmt() (*ast.Node, error) {
	if err := x.expect('('); err != nil {
		return nil, err
	}
	keyword, err := x.ident()
	if err != nil {
		return nil, err
	}
	switch keyword {
	case "return":
		var value *ast.Node
		if x.tok != ')' {
			value, err = x.parseExpr()
			if err != nil {
				return nil, err
			}
		}
		if err := x.expect(')'); err != nil {
			return nil, err
		}
		return ast.NewReturnStmt(nil, value)
	case "local":
		id, err := x.ident()
		if err != nil {
			return nil, err
		}
		typ, err := x.parseType()
		if err != nil {
			return nil, err
		}
		init, err := x.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := x.expect(')'); err != nil {
			return nil, err
		}
		decl, err := ast.NewLocalVarDecl(nil, id, typ, init)
		if err != nil {
			return nil, err
		}
		return ast.NewDeclStmt(nil, decl)
	default:
		return nil, x.errorf("unknown statement form %q", keyword)
	}
}

// parseExpr parses `(name <id>)`, `(int <n>)`, `(real <n>)`, `(bool
// true|false)`, `(string "...")`, or `(op <sym> <expr>+)`.
func (x *px) parseExpr() (*ast.Node, error) {
	if err := x.expect('('); err != nil {
		return nil, err
	}
	keyword, err := x.ident()
	if err != nil {
		return nil, err
	}
	switch keyword {
	case "name":
		id, err := x.ident()
		if err != nil {
			return nil, err
		}
		if err := x.expect(')'); err != nil {
			return nil, err
		}
		return ast.NewNameExpr(nil, id), nil
	case "int":
		n, err := x.intLiteral()
		if err != nil {
			return nil, err
		}
		if err := x.expect(')'); err != nil {
			return nil, err
		}
		return ast.NewIntCtor(nil, n, 64, true), nil
	case "real":
		f, err := x.realLiteral()
		if err != nil {
			return nil, err
		}
		if err := x.expect(')'); err != nil {
			return nil, err
		}
		return ast.NewRealCtor(nil, f), nil
	case "bool":
		id, err := x.ident()
		if err != nil {
			return nil, err
		}
		if err := x.expect(')'); err != nil {
			return nil, err
		}
		return ast.NewBoolCtor(nil, id == "true"), nil
	case "string":
		if x.tok != scanner.String {
			return nil, x.errorf("expected string literal, got %q", x.text)
		}
		s, err := strconv.Unquote(x.text)
		if err != nil {
			return nil, x.errorf("invalid string literal: %v", err)
		}
		x.next()
		if err := x.expect(')'); err != nil {
			return nil, err
		}
		return ast.NewStringCtor(nil, s), nil
	case "op":
		op := x.text
		if r := x.sc.Peek(); combinesOp(x.tok, r) {
			op += string(r)
			x.sc.Next()
		}
		x.next()
		var operands []*ast.Node
		for x.tok != ')' {
			operand, err := x.parseExpr()
			if err != nil {
				return nil, err
			}
			operands = append(operands, operand)
		}
		if err := x.expect(')'); err != nil {
			return nil, err
		}
		return ast.NewUnresolvedOperator(nil, op, operands)
	default:
		return nil, x.errorf("unknown expression form %q", keyword)
	}
}

// combinesOp reports whether first/second form one of the two-character
// operator tokens the fixture format accepts; scanner.Scanner otherwise
// returns each of these as a separate single-rune token.
func combinesOp(first, second rune) bool {
	switch [2]rune{first, second} {
	case [2]rune{'=', '='}, [2]rune{'!', '='}, [2]rune{'<', '='}, [2]rune{'>', '='},
		[2]rune{'&', '&'}, [2]rune{'|', '|'}:
		return true
	default:
		return false
	}
}

func (x *px) intLiteral() (int64, error) {
	neg := false
	if x.tok == '-' {
		neg = true
		x.next()
	}
	if x.tok != scanner.Int {
		return 0, x.errorf("expected integer literal, got %q", x.text)
	}
	n, err := strconv.ParseInt(x.text, 10, 64)
	if err != nil {
		return 0, x.errorf("invalid integer literal %q: %v", x.text, err)
	}
	x.next()
	if neg {
		n = -n
	}
	return n, nil
}

func (x *px) realLiteral() (float64, error) {
	neg := false
	if x.tok == '-' {
		neg = true
		x.next()
	}
	if x.tok != scanner.Float && x.tok != scanner.Int {
		return 0, x.errorf("expected real literal, got %q", x.text)
	}
	f, err := strconv.ParseFloat(x.text, 64)
	if err != nil {
		return 0, x.errorf("invalid real literal %q: %v", x.text, err)
	}
	x.next()
	if neg {
		f = -f
	}
	return f, nil
}
