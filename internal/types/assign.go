package types

// Dealias follows named wrappers to the underlying structural type.
// Idempotent: dealiasing an already structural ID returns it unchanged.
func (t *Table) Dealias(id TypeID) TypeID {
	for {
		tt, ok := t.Lookup(id)
		if !ok || tt.Kind != KindNamed {
			return id
		}
		id = t.named[tt.Payload].Inner
	}
}

// DealiasedLookup returns the structural descriptor behind any nominal
// wrappers, used whenever shape matters rather than nominal identity.
func (t *Table) DealiasedLookup(id TypeID) (Type, bool) {
	return t.Lookup(t.Dealias(id))
}

// Assignable implements the language's only coercion rule: a value of type
// right may be used where left is expected when the types are identical,
// when left is 'any', or when a fixed array decays into a dynamic array
// view of the same member type. Nothing else coerces.
func (t *Table) Assignable(left, right TypeID) bool {
	if left == right {
		return true
	}
	lt, lok := t.Lookup(left)
	rt, rok := t.Lookup(right)
	if !lok || !rok {
		return false
	}
	switch {
	case lt.Kind == KindAny:
		return true
	case lt.Kind == KindDynamicArray && rt.Kind == KindArray && lt.Elem == rt.Elem:
		return true
	default:
		return false
	}
}
