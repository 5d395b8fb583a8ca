package types

import (
	"fmt"

	"antimony/internal/ast"
	"antimony/internal/diag"
)

// InsertASTType translates surface type syntax into a table entry.
func (t *Table) InsertASTType(ty *ast.Type) (TypeID, error) {
	switch ty.Kind {
	case ast.TypeAny:
		return t.builtins.Any, nil
	case ast.TypeInt:
		return t.builtins.Int, nil
	case ast.TypeString:
		return t.builtins.String, nil
	case ast.TypeBool:
		return t.builtins.Bool, nil
	case ast.TypeArray:
		member, err := t.InsertASTType(ty.Elem)
		if err != nil {
			return NoTypeID, err
		}
		if ty.Length == ast.DynamicLength {
			return t.InsertDynamicArray(member), nil
		}
		id, err := t.InsertArray(member, int(ty.Length))
		if err != nil {
			return NoTypeID, diag.Newf(diag.StructuralError, ty.Span, "%v", err)
		}
		return id, nil
	case ast.TypeNamed:
		if id, ok := t.byName[ty.Name]; ok {
			return id, nil
		}
		return NoTypeID, diag.Newf(diag.UndefinedSymbol, ty.Span, "could not resolve type '%s'", ty.Name)
	default:
		// The parser never emits other kinds.
		panic(fmt.Sprintf("types: invalid surface type kind %v", ty.Kind))
	}
}

// InsertASTCallable interns the function type of a callable signature.
// A missing return type means void.
func (t *Table) InsertASTCallable(c *ast.Callable) (TypeID, error) {
	params := make([]TypeID, 0, len(c.Params))
	for i := range c.Params {
		id, err := t.InsertASTType(&c.Params[i].Type)
		if err != nil {
			return NoTypeID, err
		}
		params = append(params, id)
	}
	result := t.builtins.Void
	if c.Return != nil {
		id, err := t.InsertASTType(c.Return)
		if err != nil {
			return NoTypeID, err
		}
		result = id
	}
	return t.InsertFunction(params, result), nil
}

// InsertASTStruct computes the struct's field layout and method signatures
// and registers the result under the struct's name. Fields are laid out in
// declaration order, each padded to its own alignment; the struct's
// alignment is the maximum field alignment and its size the final offset.
func (t *Table) InsertASTStruct(def *ast.StructDef) (TypeID, error) {
	offset := 0
	align := 1
	fields := make([]StructField, 0, len(def.Fields))
	for i := range def.Fields {
		f := &def.Fields[i]
		if _, dup := lookupField(fields, f.Name); dup {
			return NoTypeID, diag.Newf(diag.StructuralError, f.Span, "duplicate field '%s'", f.Name)
		}
		ft, err := t.InsertASTType(&f.Type)
		if err != nil {
			return NoTypeID, err
		}
		d := t.Dimensions(ft)
		if !d.Defined() || d.Size == 0 {
			return NoTypeID, diag.Newf(diag.StructuralError, f.Span,
				"field '%s' has a type with no in-memory representation", f.Name)
		}
		offset = roundUp(offset, d.Align)
		fields = append(fields, StructField{Name: f.Name, Type: ft, Offset: offset})
		offset += d.Size
		if d.Align > align {
			align = d.Align
		}
	}
	if len(fields) == 0 {
		return NoTypeID, diag.Newf(diag.StructuralError, def.Span,
			"struct '%s' must declare at least one field", def.Name)
	}

	methods := make(map[string]TypeID, len(def.Methods))
	for i := range def.Methods {
		m := &def.Methods[i]
		id, err := t.InsertASTCallable(&m.Callable)
		if err != nil {
			return NoTypeID, err
		}
		methods[m.Callable.Name] = id
	}

	structID := t.insertStruct(StructInfo{Fields: fields, Methods: methods},
		Dimensions{Size: offset, Align: align})
	named, err := t.InsertNamed(def.Name, structID)
	if err != nil {
		return NoTypeID, diag.Newf(diag.StructuralError, def.Span, "%v", err)
	}
	return named, nil
}

func lookupField(fields []StructField, name string) (StructField, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return StructField{}, false
}

func roundUp(n, align int) int {
	if align <= 1 {
		return n
	}
	r := n % align
	if r == 0 {
		return n
	}
	return n + (align - r)
}
