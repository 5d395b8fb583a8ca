package types

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"fortio.org/safecast"

	"antimony/internal/target"
)

// Builtins stores the five TypeIDs fixed at table construction.
type Builtins struct {
	Any    TypeID
	Void   TypeID
	Int    TypeID
	String TypeID
	Bool   TypeID
}

// Table canonicalizes every type that appears in a module into a stable
// TypeID and records its computed size and alignment. Inserting a
// structural shape that already exists returns the existing ID; named
// types are never deduplicated and must be unique by name.
type Table struct {
	target   target.Target
	types    []Type
	dims     []Dimensions
	index    map[Type]TypeID // fixed-shape descriptors only
	structs  []StructInfo
	named    []NamedInfo
	fns      []FnInfo
	byName   map[string]TypeID
	builtins Builtins
}

// ErrZeroLengthArray rejects fixed arrays of length 0.
var ErrZeroLengthArray = errors.New("array length must not be 0")

// NewTable builds a table for the default 64-bit target.
func NewTable() *Table {
	return NewTableFor(target.X86_64())
}

// NewTableFor builds a table whose layout arithmetic follows tgt.
func NewTableFor(tgt target.Target) *Table {
	t := &Table{
		target: tgt,
		index:  make(map[Type]TypeID, 64),
		byName: make(map[string]TypeID, 8),
	}
	t.types = append(t.types, Type{}) // reserve 0 as invalid sentinel
	t.dims = append(t.dims, Dimensions{})
	t.structs = append(t.structs, StructInfo{}) // side-table sentinels
	t.named = append(t.named, NamedInfo{})
	t.fns = append(t.fns, FnInfo{})
	t.builtins = Builtins{
		Any:    t.intern(Type{Kind: KindAny}, UndefinedDimensions()),
		Void:   t.intern(Type{Kind: KindVoid}, Dimensions{}),
		Int:    t.intern(Type{Kind: KindInt}, Dimensions{Size: tgt.IntSize, Align: tgt.IntAlign}),
		String: t.intern(Type{Kind: KindString}, Dimensions{Size: tgt.PtrSize, Align: tgt.PtrAlign}),
		Bool:   t.intern(Type{Kind: KindBool}, Dimensions{Size: 1, Align: 1}),
	}
	return t
}

// Builtins returns the fixed builtin TypeIDs.
func (t *Table) Builtins() Builtins { return t.builtins }

// Len reports the number of interned types excluding the sentinel.
func (t *Table) Len() int { return len(t.types) - 1 }

// Lookup returns the structural descriptor for id.
func (t *Table) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(t.types) {
		return Type{}, false
	}
	return t.types[id], true
}

// MustLookup panics when id is not an allocated type.
func (t *Table) MustLookup(id TypeID) Type {
	tt, ok := t.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Dimensions returns the computed size/alignment for id. Queries are O(1)
// field reads.
func (t *Table) Dimensions(id TypeID) Dimensions {
	if id == NoTypeID || int(id) >= len(t.dims) {
		return UndefinedDimensions()
	}
	return t.dims[id]
}

// intern dedups fixed-shape descriptors through the map index.
func (t *Table) intern(ty Type, d Dimensions) TypeID {
	if id, ok := t.index[ty]; ok {
		return id
	}
	return t.internRaw(ty, d)
}

// internRaw appends without consulting the map. Named, struct and function
// descriptors take this path: their identity lives in side-table payloads,
// so a nominal wrapper never collapses into its structural equivalent.
func (t *Table) internRaw(ty Type, d Dimensions) TypeID {
	value, err := safecast.Conv[uint32](len(t.types))
	if err != nil {
		panic(fmt.Errorf("type table overflow: %w", err))
	}
	id := TypeID(value)
	t.types = append(t.types, ty)
	t.dims = append(t.dims, d)
	switch ty.Kind {
	case KindNamed, KindStruct, KindFunction:
	default:
		t.index[ty] = id
	}
	return id
}

// InsertArray interns a fixed-length array type. Its size is length times
// the member size; its alignment is the member alignment.
func (t *Table) InsertArray(member TypeID, length int) (TypeID, error) {
	if length == 0 {
		return NoTypeID, ErrZeroLengthArray
	}
	count, err := safecast.Conv[uint32](length)
	if err != nil {
		return NoTypeID, fmt.Errorf("array length %d: %w", length, err)
	}
	md := t.Dimensions(member)
	d := UndefinedDimensions()
	if md.Defined() {
		d = Dimensions{Size: length * md.Size, Align: md.Align}
	}
	return t.intern(Type{Kind: KindArray, Elem: member, Count: count}, d), nil
}

// InsertDynamicArray interns the fat-pointer view type over member: a data
// handle plus a length, pointer-aligned.
func (t *Table) InsertDynamicArray(member TypeID) TypeID {
	d := Dimensions{Size: 2 * t.target.PtrSize, Align: t.target.PtrAlign}
	return t.intern(Type{Kind: KindDynamicArray, Elem: member}, d)
}

// InsertNamed registers a nominal wrapper for inner. Each name may be
// registered once; the wrapper shares the inner type's dimensions.
func (t *Table) InsertNamed(name string, inner TypeID) (TypeID, error) {
	if _, ok := t.byName[name]; ok {
		return NoTypeID, fmt.Errorf("redefinition of type '%s'", name)
	}
	slot := t.appendNamedInfo(NamedInfo{Name: name, Inner: inner})
	id := t.internRaw(Type{Kind: KindNamed, Payload: slot}, t.Dimensions(inner))
	t.byName[name] = id
	return id, nil
}

// ByName resolves a registered nominal type.
func (t *Table) ByName(name string) (TypeID, bool) {
	id, ok := t.byName[name]
	return id, ok
}

// InsertFunction interns a function signature type. Signatures with equal
// parameters and result share one ID.
func (t *Table) InsertFunction(params []TypeID, result TypeID) TypeID {
	for id := TypeID(1); int(id) < len(t.types); id++ {
		tt := t.types[id]
		if tt.Kind != KindFunction {
			continue
		}
		info := t.fns[tt.Payload]
		if info.Result == result && slices.Equal(info.Params, params) {
			return id
		}
	}
	slot := t.appendFnInfo(FnInfo{Params: slices.Clone(params), Result: result})
	return t.internRaw(Type{Kind: KindFunction, Payload: slot}, UndefinedDimensions())
}

// insertStruct interns a structural struct shape. Shapes with equal field
// layouts and method sets share one ID; nominal identity comes from the
// named wrapper on top.
func (t *Table) insertStruct(info StructInfo, d Dimensions) TypeID {
	for id := TypeID(1); int(id) < len(t.types); id++ {
		tt := t.types[id]
		if tt.Kind != KindStruct {
			continue
		}
		existing := t.structs[tt.Payload]
		if slices.Equal(existing.Fields, info.Fields) && maps.Equal(existing.Methods, info.Methods) {
			return id
		}
	}
	slot := t.appendStructInfo(info)
	return t.internRaw(Type{Kind: KindStruct, Payload: slot}, d)
}

// StructInfo returns field/method metadata when id is a struct shape.
func (t *Table) StructInfo(id TypeID) (*StructInfo, bool) {
	tt, ok := t.Lookup(id)
	if !ok || tt.Kind != KindStruct {
		return nil, false
	}
	return &t.structs[tt.Payload], true
}

// NamedInfo returns the nominal wrapper metadata for id.
func (t *Table) NamedInfo(id TypeID) (*NamedInfo, bool) {
	tt, ok := t.Lookup(id)
	if !ok || tt.Kind != KindNamed {
		return nil, false
	}
	return &t.named[tt.Payload], true
}

// FnInfo returns the signature metadata when id is a function type.
func (t *Table) FnInfo(id TypeID) (*FnInfo, bool) {
	tt, ok := t.Lookup(id)
	if !ok || tt.Kind != KindFunction {
		return nil, false
	}
	return &t.fns[tt.Payload], true
}

func (t *Table) appendStructInfo(info StructInfo) uint32 {
	t.structs = append(t.structs, info)
	slot, err := safecast.Conv[uint32](len(t.structs) - 1)
	if err != nil {
		panic(fmt.Errorf("struct info overflow: %w", err))
	}
	return slot
}

func (t *Table) appendNamedInfo(info NamedInfo) uint32 {
	t.named = append(t.named, info)
	slot, err := safecast.Conv[uint32](len(t.named) - 1)
	if err != nil {
		panic(fmt.Errorf("named info overflow: %w", err))
	}
	return slot
}

func (t *Table) appendFnInfo(info FnInfo) uint32 {
	t.fns = append(t.fns, info)
	slot, err := safecast.Conv[uint32](len(t.fns) - 1)
	if err != nil {
		panic(fmt.Errorf("fn info overflow: %w", err))
	}
	return slot
}
