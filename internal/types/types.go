package types

import "fmt"

// TypeID uniquely identifies a type inside the table.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// IsValid reports whether the ID refers to an allocated type.
func (id TypeID) IsValid() bool { return id != NoTypeID }

// Kind enumerates the structural shapes a type can take.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindAny
	KindVoid
	KindInt
	KindString
	KindBool
	KindArray        // fixed length
	KindDynamicArray // unsized fat-pointer view
	KindStruct
	KindNamed
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindVoid:
		return "void"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindDynamicArray:
		return "dynamic-array"
	case KindStruct:
		return "struct"
	case KindNamed:
		return "named"
	case KindFunction:
		return "function"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact structural descriptor. Variable-size payloads (struct
// layouts, nominal wrappers, function signatures) live in side tables
// addressed by Payload.
type Type struct {
	Kind    Kind
	Elem    TypeID // array member type
	Count   uint32 // fixed array length
	Payload uint32 // side-table slot for struct/named/function
}

// Dimensions is the computed size and alignment of a type in bytes.
type Dimensions struct {
	Size  int
	Align int
}

// Defined reports whether the type has a meaningful in-memory layout.
// Function types and 'any' do not; void has size 0 and no alignment.
func (d Dimensions) Defined() bool {
	return d.Size >= 0 && d.Align > 0
}

// UndefinedDimensions marks types without an in-memory layout.
func UndefinedDimensions() Dimensions {
	return Dimensions{Size: -1, Align: -1}
}

// StructField describes one field of a struct, with its resolved type and
// byte offset inside the struct.
type StructField struct {
	Name   string
	Type   TypeID
	Offset int
}

// StructInfo stores the field layout and method set of a struct shape.
type StructInfo struct {
	Fields  []StructField     // declaration order
	Methods map[string]TypeID // method name -> function type
}

// Field looks a field up by name.
func (si *StructInfo) Field(name string) (StructField, bool) {
	for _, f := range si.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return StructField{}, false
}

// Method looks a method's function type up by name.
func (si *StructInfo) Method(name string) (TypeID, bool) {
	id, ok := si.Methods[name]
	return id, ok
}

// NamedInfo stores a nominal wrapper around a structural type.
type NamedInfo struct {
	Name  string
	Inner TypeID
}

// FnInfo stores a function signature.
type FnInfo struct {
	Params []TypeID
	Result TypeID
}
