package artifact

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"antimony/internal/sema"
	"antimony/internal/types"
)

// Current schema version - increment when the Snapshot format changes.
const schemaVersion uint16 = 1

// Digest identifies a snapshot's source content.
type Digest = [sha256.Size]byte

// Snapshot is the portable view of a checked module: the interned type
// table plus the resolved signatures and layouts. Bodies and scopes are
// not cached.
type Snapshot struct {
	Schema    uint16
	Types     []TypeRecord
	Structs   []StructRecord
	Functions []FunctionRecord
}

// TypeRecord serializes one interned type with its computed dimensions.
type TypeRecord struct {
	Kind  uint8
	Elem  uint32
	Count uint32
	Size  int
	Align int
}

// StructRecord serializes a registered struct's layout and method set.
type StructRecord struct {
	Name    string
	Type    uint32
	Size    int
	Align   int
	Fields  []FieldRecord
	Methods []string
}

// FieldRecord serializes one laid-out struct field.
type FieldRecord struct {
	Name   string
	Type   uint32
	Offset int
}

// FunctionRecord serializes a top-level function signature.
type FunctionRecord struct {
	Name   string
	Params []uint32
	Return uint32
}

// NewSnapshot extracts the cacheable parts of a checked module.
func NewSnapshot(mod *sema.Module) *Snapshot {
	snap := &Snapshot{Schema: schemaVersion}

	snap.Types = make([]TypeRecord, 0, mod.Types.Len())
	for id := types.TypeID(1); int(id) <= mod.Types.Len(); id++ {
		tt := mod.Types.MustLookup(id)
		d := mod.Types.Dimensions(id)
		snap.Types = append(snap.Types, TypeRecord{
			Kind:  uint8(tt.Kind),
			Elem:  uint32(tt.Elem),
			Count: tt.Count,
			Size:  d.Size,
			Align: d.Align,
		})
	}

	snap.Structs = make([]StructRecord, 0, len(mod.Structs))
	for _, st := range mod.Structs {
		inner := mod.Types.Dealias(st.Type)
		info, ok := mod.Types.StructInfo(inner)
		if !ok {
			panic("artifact: module struct is not a struct type")
		}
		name := ""
		if ni, ok := mod.Types.NamedInfo(st.Type); ok {
			name = ni.Name
		}
		d := mod.Types.Dimensions(st.Type)
		rec := StructRecord{
			Name:  name,
			Type:  uint32(st.Type),
			Size:  d.Size,
			Align: d.Align,
		}
		rec.Fields = make([]FieldRecord, 0, len(info.Fields))
		for _, f := range info.Fields {
			rec.Fields = append(rec.Fields, FieldRecord{
				Name:   f.Name,
				Type:   uint32(f.Type),
				Offset: f.Offset,
			})
		}
		rec.Methods = make([]string, 0, len(info.Methods))
		for m := range info.Methods {
			rec.Methods = append(rec.Methods, m)
		}
		sort.Strings(rec.Methods)
		snap.Structs = append(snap.Structs, rec)
	}

	snap.Functions = make([]FunctionRecord, 0, len(mod.Functions))
	for _, fn := range mod.Functions {
		rec := FunctionRecord{
			Name:   fn.Callable.Name,
			Return: uint32(fn.Callable.Return),
		}
		rec.Params = make([]uint32, 0, len(fn.Callable.Params))
		for _, p := range fn.Callable.Params {
			rec.Params = append(rec.Params, uint32(mod.Scopes.TypeOf(p)))
		}
		snap.Functions = append(snap.Functions, rec)
	}

	return snap
}

// Encode serializes the snapshot.
func (s *Snapshot) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot deserializes a snapshot, rejecting mismatched schemas.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&snap); err != nil {
		return nil, err
	}
	if snap.Schema != schemaVersion {
		return nil, fmt.Errorf("artifact: schema %d, want %d", snap.Schema, schemaVersion)
	}
	return &snap, nil
}

// SumDigest computes the cache key for a source text.
func SumDigest(src []byte) Digest {
	return sha256.Sum256(src)
}
