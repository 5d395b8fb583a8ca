package ast

import "antimony/internal/source"

// TypeKind enumerates surface type syntax shapes.
type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	TypeAny
	TypeInt
	TypeString
	TypeBool
	TypeArray
	TypeNamed
)

func (k TypeKind) String() string {
	switch k {
	case TypeAny:
		return "any"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeArray:
		return "array"
	case TypeNamed:
		return "named"
	default:
		return "invalid"
	}
}

// DynamicLength marks array syntax without a compile-time length (T[]).
const DynamicLength = ^uint32(0)

// Type is a surface type expression.
type Type struct {
	Span   source.Span
	Kind   TypeKind
	Elem   *Type  // TypeArray
	Length uint32 // TypeArray; DynamicLength for T[]
	Name   string // TypeNamed
}

// TypeFromName maps a surface identifier to a type expression. Unrecognized
// names refer to struct types.
func TypeFromName(span source.Span, name string) Type {
	switch name {
	case "any":
		return Type{Span: span, Kind: TypeAny}
	case "int":
		return Type{Span: span, Kind: TypeInt}
	case "string":
		return Type{Span: span, Kind: TypeString}
	case "bool":
		return Type{Span: span, Kind: TypeBool}
	default:
		return Type{Span: span, Kind: TypeNamed, Name: name}
	}
}
