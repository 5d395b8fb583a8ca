package scope

import (
	"fmt"

	"fortio.org/safecast"

	"antimony/internal/types"
)

// Table stores all scopes of one module in a flat, append-only arena. It
// grows monotonically during checking and is never mutated afterwards.
type Table struct {
	scopes []Scope
}

// NewTable creates an empty table with the index-0 sentinel reserved.
func NewTable() *Table {
	return &Table{scopes: make([]Scope, 1, 33)}
}

// AddRoot allocates the module-level scope.
func (t *Table) AddRoot() ID {
	return t.add(Scope{Kind: KindRoot})
}

// Push allocates a plain block scope under parent.
func (t *Table) Push(parent ID) ID {
	return t.add(Scope{Kind: KindBlock, Parent: parent})
}

// PushFunction allocates a function scope recording its return type.
func (t *Table) PushFunction(parent ID, ret types.TypeID) ID {
	return t.add(Scope{Kind: KindFunction, Parent: parent, Return: ret})
}

// PushLoop allocates a loop scope, the target of break/continue.
func (t *Table) PushLoop(parent ID) ID {
	return t.add(Scope{Kind: KindLoop, Parent: parent})
}

func (t *Table) add(s Scope) ID {
	value, err := safecast.Conv[uint32](len(t.scopes))
	if err != nil {
		panic(fmt.Errorf("scope arena overflow: %w", err))
	}
	t.scopes = append(t.scopes, s)
	return ID(value)
}

// Get returns the scope for id, or nil for an invalid id.
func (t *Table) Get(id ID) *Scope {
	if !id.IsValid() || int(id) >= len(t.scopes) {
		return nil
	}
	return &t.scopes[id]
}

// Len reports the number of scopes excluding the sentinel.
func (t *Table) Len() int { return len(t.scopes) - 1 }

// Insert appends a new (name, type) slot. Redeclaring a name shadows the
// previous slot without removing it.
func (t *Table) Insert(id ID, name string, ty types.TypeID) VariableID {
	sc := t.Get(id)
	if sc == nil {
		panic(fmt.Sprintf("scope: insert into invalid scope %d", id))
	}
	slot, err := safecast.Conv[uint32](len(sc.Locals))
	if err != nil {
		panic(fmt.Errorf("scope slot overflow: %w", err))
	}
	sc.Locals = append(sc.Locals, Local{Name: name, Type: ty})
	return VariableID{Scope: id, Slot: slot}
}

// LookupLocal probes only the given scope's slots, newest first.
func (t *Table) LookupLocal(id ID, name string) (VariableID, types.TypeID, bool) {
	sc := t.Get(id)
	if sc == nil {
		return VariableID{}, types.NoTypeID, false
	}
	for i := len(sc.Locals) - 1; i >= 0; i-- {
		if sc.Locals[i].Name == name {
			return VariableID{Scope: id, Slot: uint32(i)}, sc.Locals[i].Type, true
		}
	}
	return VariableID{}, types.NoTypeID, false
}

// Lookup resolves name from the given scope outwards and returns the
// innermost match.
func (t *Table) Lookup(id ID, name string) (VariableID, types.TypeID, bool) {
	for id.IsValid() {
		if v, ty, ok := t.LookupLocal(id, name); ok {
			return v, ty, true
		}
		sc := t.Get(id)
		if sc == nil {
			break
		}
		id = sc.Parent
	}
	return VariableID{}, types.NoTypeID, false
}

// NearestLoop walks outwards to the innermost enclosing loop scope, the
// jump target of break/continue.
func (t *Table) NearestLoop(id ID) (ID, bool) {
	for id.IsValid() {
		sc := t.Get(id)
		if sc == nil {
			break
		}
		if sc.Kind == KindLoop {
			return id, true
		}
		id = sc.Parent
	}
	return NoID, false
}

// ReturnType walks outwards to the nearest function scope's return type.
// A miss means the position is not inside a function.
func (t *Table) ReturnType(id ID) (types.TypeID, bool) {
	for id.IsValid() {
		sc := t.Get(id)
		if sc == nil {
			break
		}
		if sc.Kind == KindFunction {
			return sc.Return, true
		}
		id = sc.Parent
	}
	return types.NoTypeID, false
}

// TypeOf returns the declared type of a resolved variable.
func (t *Table) TypeOf(v VariableID) types.TypeID {
	sc := t.Get(v.Scope)
	if sc == nil || int(v.Slot) >= len(sc.Locals) {
		return types.NoTypeID
	}
	return sc.Locals[v.Slot].Type
}
