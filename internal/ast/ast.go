package ast

import "antimony/internal/source"

// Module is a syntactically valid but unchecked compilation unit, as
// produced by the parser.
type Module struct {
	Imports   []string
	Functions []Function
	Structs   []StructDef
	Globals   []string
}

// Merge appends another module's declarations, used when several source
// files form one compilation unit.
func (m *Module) Merge(other Module) {
	m.Functions = append(m.Functions, other.Functions...)
	m.Structs = append(m.Structs, other.Structs...)
	m.Globals = append(m.Globals, other.Globals...)
}

// Callable is the shared shape of free functions and methods: a name,
// parameters and an optional return type.
type Callable struct {
	Span   source.Span
	Name   string
	Params []TypedVariable
	Return *Type // nil means void
}

// Function is a top-level function. Body is nil for declarations without
// a body.
type Function struct {
	Callable Callable
	Body     *Stmt
}

// StructDef declares a nominal struct with fields and methods.
type StructDef struct {
	Span    source.Span
	Name    string
	Fields  []TypedVariable
	Methods []Method
}

// Method is a function attached to a struct.
type Method struct {
	Callable Callable
	Body     Stmt
}

// TypedVariable is a name with an explicit type: struct fields and
// parameters.
type TypedVariable struct {
	Span source.Span
	Name string
	Type Type
}

// Variable is a declaration target. Type is nil when it is inferred from
// the initializer.
type Variable struct {
	Span source.Span
	Name string
	Type *Type
}
