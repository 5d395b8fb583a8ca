package ast

import "antimony/internal/source"

// ExprKind enumerates expression kinds.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprInt
	ExprString
	ExprBool
	ExprSelf
	ExprArray
	ExprVariable
	ExprCall
	ExprBinary
	ExprIndex
	ExprField
	ExprStructLit
)

func (k ExprKind) String() string {
	switch k {
	case ExprInt:
		return "Int"
	case ExprString:
		return "String"
	case ExprBool:
		return "Bool"
	case ExprSelf:
		return "Self"
	case ExprArray:
		return "Array"
	case ExprVariable:
		return "Variable"
	case ExprCall:
		return "Call"
	case ExprBinary:
		return "Binary"
	case ExprIndex:
		return "Index"
	case ExprField:
		return "Field"
	case ExprStructLit:
		return "StructLit"
	default:
		return "Invalid"
	}
}

// Expr is an untyped expression node. Data holds the kind-specific
// payload; Self carries none.
type Expr struct {
	Span source.Span
	Kind ExprKind
	Data ExprData
}

// ExprData is the kind-specific expression payload.
type ExprData interface {
	exprData()
}

type IntData struct {
	Value int64
}

type StringData struct {
	Value string
}

type BoolData struct {
	Value bool
}

type ArrayData struct {
	Elems []Expr
}

type VariableData struct {
	Name string
}

// CallData covers both function calls (Callee is a Variable) and method
// calls (Callee is a Field access on the receiver).
type CallData struct {
	Callee *Expr
	Args   []Expr
}

type BinaryData struct {
	Op  BinOp
	LHS *Expr
	RHS *Expr
}

type IndexData struct {
	Target *Expr
	Index  *Expr
}

type FieldData struct {
	Target *Expr
	Field  string
}

type StructLitData struct {
	Name   string
	Fields []FieldInit
}

// FieldInit is one key/value entry of a struct literal.
type FieldInit struct {
	Span  source.Span
	Name  string
	Value Expr
}

func (IntData) exprData()       {}
func (StringData) exprData()    {}
func (BoolData) exprData()      {}
func (ArrayData) exprData()     {}
func (VariableData) exprData()  {}
func (CallData) exprData()      {}
func (BinaryData) exprData()    {}
func (IndexData) exprData()     {}
func (FieldData) exprData()     {}
func (StructLitData) exprData() {}
