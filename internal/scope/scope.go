package scope

import "antimony/internal/types"

// Kind enumerates scope categories.
type Kind uint8

const (
	KindInvalid  Kind = iota
	KindRoot          // one per module
	KindBlock         // plain nesting
	KindLoop          // break/continue target
	KindFunction      // records the enclosing return type
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindBlock:
		return "block"
	case KindLoop:
		return "loop"
	case KindFunction:
		return "function"
	default:
		return "invalid"
	}
}

// ID identifies a scope in the table's arena.
type ID uint32

// NoID marks the absence of a scope reference.
const NoID ID = 0

// IsValid reports whether the ID refers to an allocated scope.
func (id ID) IsValid() bool { return id != NoID }

// Local is one declared (name, type) slot. Slots are append-only; a
// shadowed slot stays allocated for the scope's lifetime.
type Local struct {
	Name string
	Type types.TypeID
}

// Scope is one node of the lexical scope tree.
type Scope struct {
	Kind   Kind
	Parent ID
	Return types.TypeID // KindFunction only
	Locals []Local
}

// VariableID names a declared variable by its scope and slot, making a
// variable reference self-describing without a pointer chain.
type VariableID struct {
	Scope ID
	Slot  uint32
}
