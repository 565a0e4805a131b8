// Package elaborate walks language-specific parser ASTs and produces a
// unified ir.Design, parameterized by module name and parameter-binding
// deduplication (§4.F). The parsers themselves are out of scope (§1); this
// file defines only the structural input contract they are expected to
// populate (§6).
package elaborate

import "github.com/Stateford/aion-sub002/source"

// ParsedDesign bundles the three language-specific AST lists the
// elaborator consumes (§6). A concrete parser may attach richer data to
// each declaration, but must not reorder or elide the fields below.
type ParsedDesign struct {
	VerilogFiles []VerilogFile
	SvFiles      []SvFile
	VhdlFiles    []VhdlFile
}

// VerilogFile is one parsed Verilog-2005 source file.
type VerilogFile struct {
	Modules []ModuleDecl
}

// SvFile is one parsed SystemVerilog source file.
type SvFile struct {
	Modules []ModuleDecl
}

// VhdlFile is one parsed VHDL-2008 source file. Entities and their
// architectures are listed separately because a single entity may have
// multiple architectures; §4.F's "last-declared architecture wins" rule
// operates over this pairing.
type VhdlFile struct {
	Entities      []ModuleDecl
	Architectures []VhdlArchitecture
}

// VhdlArchitecture is one `architecture ... of <entity> is ... end` block.
type VhdlArchitecture struct {
	EntityName string
	Body       []BodyItem
	Span       source.Span
}

// ModuleDecl is the language-neutral shape of a module/entity declaration:
// name, parameter/generic list, port list, and an opaque body (§6). VHDL
// entities populate everything except Body (their body lives in the
// associated VhdlArchitecture and is merged in by the registry).
type ModuleDecl struct {
	Name   string
	Params []ParamDecl
	Ports  []PortDecl
	Body   []BodyItem
	Span   source.Span
}

// ParamDecl is a parameter/generic declaration: a name, an optional
// default expression, and an optional explicit type.
type ParamDecl struct {
	Name    string
	Default *Expr
	Type    *TypeRef
	Span    source.Span
}

// PortDecl is a port declaration: name, direction, type, and an optional
// default expression (VHDL generics-as-ports, SV default port values).
type PortDecl struct {
	Name      string
	Direction PortDir
	Type      TypeRef
	Default   *Expr
	Span      source.Span
}

// PortDir mirrors ir.PortDirection at the AST layer, independent of the IR
// so the elaborator's type-resolution code is the only place the mapping
// is made.
type PortDir int

const (
	DirIn PortDir = iota
	DirOut
	DirInOut
)

// TypeRefKind enumerates every source-language type construct the type
// resolution table (§6) maps from.
type TypeRefKind int

const (
	// Verilog.
	TypeVerilogWireNoRange TypeRefKind = iota
	TypeVerilogWireRanged
	TypeVerilogInteger
	TypeVerilogReal

	// SystemVerilog.
	TypeSvLogicNoRange
	TypeSvInt
	TypeSvByte
	TypeSvShortInt
	TypeSvLongInt

	// VHDL.
	TypeVhdlStdLogic
	TypeVhdlStdLogicVector
	TypeVhdlSigned
	TypeVhdlInteger
	TypeVhdlReal
	TypeVhdlBoolean
	TypeVhdlString

	// Anything the table does not recognize.
	TypeUnknown
)

// TypeRef is a source-specific type descriptor as the parser would emit
// it; High/Low are expressions so ranges may reference parameters
// (e.g. `wire [WIDTH-1:0]`).
type TypeRef struct {
	Kind TypeRefKind
	High *Expr
	Low  *Expr
}

// ExprKind enumerates the small expression grammar the elaborator's
// constant evaluator understands: literals, parameter references, bit
// slices, concatenation, and binary arithmetic (enough to resolve array
// bounds, parameter defaults, and instance overrides, §4.F.c).
type ExprKind int

const (
	ExprIntLit ExprKind = iota
	ExprRealLit
	ExprBoolLit
	ExprStrLit
	ExprIdent
	ExprBinary
	ExprSlice
	ExprConcat
	ExprSignalRef // reference to a signal declared earlier in the body
)

// BinaryOp enumerates the arithmetic/logical operators Expr can combine.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpShl
	OpShr
	OpAnd
	OpOr
	OpXor
	OpEq
	OpLt
)

// Expr is the opaque body expression node (§6): every AST node the
// elaborator walks carries a span.
type Expr struct {
	Kind  ExprKind
	Int   int64
	Real  float64
	Bool  bool
	Str   string
	Ident string

	Op          BinaryOp
	Left, Right *Expr

	Target   *Expr // ExprSlice, ExprSignalRef base
	High, Low *Expr

	Parts []Expr // ExprConcat, MSB-first

	Span source.Span
}

// BodyItem is one statement in a module body, in source order (§4.F.d).
type BodyItem struct {
	Kind        BodyItemKind
	SignalDecl  *SignalDeclItem
	Assign      *AssignItem
	Instance    *InstanceItem
	ProcessDecl *ProcessItem
	Span        source.Span
}

// BodyItemKind discriminates BodyItem's payload.
type BodyItemKind int

const (
	ItemSignalDecl BodyItemKind = iota
	ItemAssign
	ItemInstance
	ItemProcess
)

// SignalDeclItem declares a wire/reg/variable with an optional init.
type SignalDeclItem struct {
	Name string
	Type TypeRef
	Kind SignalDeclKind
	Init *Expr
}

// SignalDeclKind distinguishes wire/net from reg/variable declarations.
type SignalDeclKind int

const (
	DeclWire SignalDeclKind = iota
	DeclReg
)

// AssignItem is a continuous assignment `lhs = rhs`.
type AssignItem struct {
	LHS Expr
	RHS Expr
}

// InstanceItem instantiates another module/entity by name.
type InstanceItem struct {
	ModuleName     string
	InstanceName   string
	ParamOverrides []ParamOverride
	Ports          []PortConnection
}

// ParamOverride overrides one parameter at an instantiation site.
type ParamOverride struct {
	Name  string
	Value Expr
}

// PortConnection binds one instance port to a caller-side expression.
type PortConnection struct {
	PortName string
	Value    Expr
	Dir      PortDir
}

// ProcessItem is a behavioral block; its sensitivity list names signals,
// and its body is opaque to elaboration (only simulation interprets it).
type ProcessItem struct {
	Name        string
	Sensitivity []string
	Body        any
}
