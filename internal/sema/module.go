package sema

import (
	"antimony/internal/scope"
	"antimony/internal/source"
	"antimony/internal/types"
)

// Module is a fully resolved, typed program: every name bound to a storage
// slot, every expression annotated with a type identity, every struct laid
// out in memory. The tables are owned by the module and immutable once
// checking returns.
type Module struct {
	Types     *types.Table
	Scopes    *scope.Table
	Functions []Function
	Structs   []Struct
}

// Struct pairs a registered struct type with its checked method bodies.
type Struct struct {
	Type    types.TypeID
	Methods []Method
}

// Callable is the checked shape shared by functions and methods.
type Callable struct {
	Span   source.Span
	Scope  scope.ID
	Name   string
	Params []scope.VariableID
	Return types.TypeID
}

// Function is a checked top-level function. Body is nil for bodyless
// declarations.
type Function struct {
	Callable Callable
	Body     *Stmt
}

// Method is a checked struct method with its implicit self slot.
type Method struct {
	Callable Callable
	Self     scope.VariableID
	Body     Stmt
}
