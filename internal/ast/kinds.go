package ast

// Kind identifies the variant of a Node. The implementer is expected to
// provide exhaustive dispatch over these values (see Visitor); adding a
// kind without updating every switch is a bug, not a missing-case panic
// waiting to happen in production.
type Kind string

const (
	// Structure
	KindRoot   Kind = "root"
	KindModule Kind = "module"

	// Declarations (C3 subkinds)
	KindModuleDecl   Kind = "decl.module"
	KindTypeDecl     Kind = "decl.type"
	KindGlobalVar    Kind = "decl.global"
	KindLocalVar     Kind = "decl.local"
	KindParam        Kind = "decl.param"
	KindConstDecl    Kind = "decl.const"
	KindFuncDecl     Kind = "decl.func"
	KindFieldDecl    Kind = "decl.field"
	KindEnumLabel    Kind = "decl.enumlabel"
	KindExprAliasDec Kind = "decl.exprAlias"

	// Ctors (literal constructors)
	KindCtorBool     Kind = "ctor.bool"
	KindCtorInt      Kind = "ctor.int"
	KindCtorReal     Kind = "ctor.real"
	KindCtorString   Kind = "ctor.string"
	KindCtorBytes    Kind = "ctor.bytes"
	KindCtorAddress  Kind = "ctor.address"
	KindCtorPort     Kind = "ctor.port"
	KindCtorInterval Kind = "ctor.interval"
	KindCtorTime     Kind = "ctor.time"
	KindCtorRegexp   Kind = "ctor.regexp"
	KindCtorList     Kind = "ctor.list"
	KindCtorVector   Kind = "ctor.vector"
	KindCtorSet      Kind = "ctor.set"
	KindCtorMap      Kind = "ctor.map"
	KindCtorTuple    Kind = "ctor.tuple"
	KindCtorStruct   Kind = "ctor.struct"
	KindCtorUnion    Kind = "ctor.union"
	KindCtorEnum     Kind = "ctor.enum"
	KindCtorOptional Kind = "ctor.optional"
	KindCtorRef      Kind = "ctor.ref"
	KindCtorStream   Kind = "ctor.stream"
	KindCtorError    Kind = "ctor.error"

	// Expressions
	KindExprName       Kind = "expr.name"
	KindExprMember     Kind = "expr.member"
	KindExprOpUnres    Kind = "expr.op.unresolved"
	KindExprOpResolved Kind = "expr.op.resolved"
	KindExprLogical    Kind = "expr.logical"
	KindExprCast       Kind = "expr.cast"
	KindExprVoid       Kind = "expr.void"
	KindExprTypeInfo   Kind = "expr.typeinfo"
	KindExprKeyword    Kind = "expr.keyword"

	// Statements
	KindStmtBlock  Kind = "stmt.block"
	KindStmtDecl   Kind = "stmt.decl"
	KindStmtIf     Kind = "stmt.if"
	KindStmtFor    Kind = "stmt.for"
	KindStmtWhile  Kind = "stmt.while"
	KindStmtSwitch Kind = "stmt.switch"
	KindStmtCase   Kind = "stmt.case"
	KindStmtTry    Kind = "stmt.try"
	KindStmtCatch  Kind = "stmt.catch"
	KindStmtReturn Kind = "stmt.return"
	KindStmtYield  Kind = "stmt.yield"
	KindStmtThrow  Kind = "stmt.throw"
	KindStmtAssert Kind = "stmt.assert"

	// Types
	KindTypeVoid     Kind = "type.void"
	KindTypeNull     Kind = "type.null"
	KindTypeUnknown  Kind = "type.unknown"
	KindTypeError    Kind = "type.error"
	KindTypeBool     Kind = "type.bool"
	KindTypeInt      Kind = "type.int"
	KindTypeReal     Kind = "type.real"
	KindTypeString   Kind = "type.string"
	KindTypeBytes    Kind = "type.bytes"
	KindTypeAddress  Kind = "type.address"
	KindTypePort     Kind = "type.port"
	KindTypeInterval Kind = "type.interval"
	KindTypeTime     Kind = "type.time"
	KindTypeRegexp   Kind = "type.regexp"
	KindTypeTuple    Kind = "type.tuple"
	KindTypeList     Kind = "type.list"
	KindTypeVector   Kind = "type.vector"
	KindTypeSet      Kind = "type.set"
	KindTypeMap      Kind = "type.map"
	KindTypeStream   Kind = "type.stream"
	KindTypeOptional Kind = "type.optional"
	KindTypeResult   Kind = "type.result"
	KindTypeRefKind  Kind = "type.ref"
	KindTypeStruct   Kind = "type.struct"
	KindTypeUnion    Kind = "type.union"
	KindTypeEnum     Kind = "type.enum"
	KindTypeBitfield Kind = "type.bitfield"
	KindTypeFunc     Kind = "type.func"
	KindTypeName     Kind = "type.name"
	KindTypeMember   Kind = "type.member"
	KindTypeValue    Kind = "type.typevalue"
	KindTypeLibrary  Kind = "type.library"
	KindTypeOperands Kind = "type.operandlist"

	// Parser-description (SPD) extensions
	KindSPDUnit       Kind = "spd.unit"
	KindSPDField      Kind = "spd.field"
	KindSPDUnresField Kind = "spd.field.unresolved"
	KindSPDProperty   Kind = "spd.property"
	KindSPDSink       Kind = "spd.sink"
	KindSPDHook       Kind = "spd.hook"

	// SPD production nodes (grammar graph)
	KindProdAtomic      Kind = "prod.atomic"
	KindProdSequence    Kind = "prod.sequence"
	KindProdChoice      Kind = "prod.choice"
	KindProdLookAhead   Kind = "prod.lookahead"
	KindProdCounter     Kind = "prod.counter"
	KindProdByteBlock   Kind = "prod.byteblock"
	KindProdEpsilon     Kind = "prod.epsilon"
	KindProdWhile       Kind = "prod.while"
	KindProdSwitch      Kind = "prod.switch"
	KindProdReference   Kind = "prod.reference"
	KindProdPlaceholder Kind = "prod.placeholder"
)

// IsType reports whether k denotes one of the type-system node kinds (C2).
func (k Kind) IsType() bool {
	switch k {
	case KindTypeVoid, KindTypeNull, KindTypeUnknown, KindTypeError, KindTypeBool,
		KindTypeInt, KindTypeReal, KindTypeString, KindTypeBytes, KindTypeAddress,
		KindTypePort, KindTypeInterval, KindTypeTime, KindTypeRegexp, KindTypeTuple,
		KindTypeList, KindTypeVector, KindTypeSet, KindTypeMap, KindTypeStream,
		KindTypeOptional, KindTypeResult, KindTypeRefKind, KindTypeStruct,
		KindTypeUnion, KindTypeEnum, KindTypeBitfield, KindTypeFunc, KindTypeName,
		KindTypeMember, KindTypeValue, KindTypeLibrary, KindTypeOperands, KindSPDUnit:
		return true
	default:
		return false
	}
}

// IsDeclaration reports whether k denotes one of the declaration subkinds (C3).
func (k Kind) IsDeclaration() bool {
	switch k {
	case KindModuleDecl, KindTypeDecl, KindGlobalVar, KindLocalVar, KindParam,
		KindConstDecl, KindFuncDecl, KindFieldDecl, KindEnumLabel, KindExprAliasDec:
		return true
	default:
		return false
	}
}

// IsStatement reports whether k denotes a statement kind.
func (k Kind) IsStatement() bool {
	switch k {
	case KindStmtBlock, KindStmtDecl, KindStmtIf, KindStmtFor, KindStmtWhile,
		KindStmtSwitch, KindStmtCase, KindStmtTry, KindStmtCatch, KindStmtReturn,
		KindStmtYield, KindStmtThrow, KindStmtAssert:
		return true
	default:
		return false
	}
}

// IsExpression reports whether k denotes an expression kind (ctors included).
func (k Kind) IsExpression() bool {
	if k.IsCtor() {
		return true
	}
	switch k {
	case KindExprName, KindExprMember, KindExprOpUnres, KindExprOpResolved,
		KindExprLogical, KindExprCast, KindExprVoid, KindExprTypeInfo, KindExprKeyword:
		return true
	default:
		return false
	}
}

// IsCtor reports whether k denotes a literal constructor kind.
func (k Kind) IsCtor() bool {
	switch k {
	case KindCtorBool, KindCtorInt, KindCtorReal, KindCtorString, KindCtorBytes,
		KindCtorAddress, KindCtorPort, KindCtorInterval, KindCtorTime, KindCtorRegexp,
		KindCtorList, KindCtorVector, KindCtorSet, KindCtorMap, KindCtorTuple,
		KindCtorStruct, KindCtorUnion, KindCtorEnum, KindCtorOptional, KindCtorRef,
		KindCtorStream, KindCtorError:
		return true
	default:
		return false
	}
}

// IsProduction reports whether k denotes an SPD grammar production node.
func (k Kind) IsProduction() bool {
	switch k {
	case KindProdAtomic, KindProdSequence, KindProdChoice, KindProdLookAhead,
		KindProdCounter, KindProdByteBlock, KindProdEpsilon, KindProdWhile,
		KindProdSwitch, KindProdReference, KindProdPlaceholder:
		return true
	default:
		return false
	}
}
