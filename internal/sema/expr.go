package sema

import (
	"fmt"

	"antimony/internal/ast"
	"antimony/internal/diag"
	"antimony/internal/scope"
	"antimony/internal/source"
	"antimony/internal/types"
)

// ExprKind enumerates checked expression kinds. Self references resolve to
// plain variables during checking.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprInt
	ExprString
	ExprBool
	ExprArray
	ExprVariable
	ExprCall
	ExprMethodCall
	ExprBinary
	ExprIndex
	ExprField
	ExprStructLit
)

func (k ExprKind) String() string {
	switch k {
	case ExprInt:
		return "Int"
	case ExprString:
		return "String"
	case ExprBool:
		return "Bool"
	case ExprArray:
		return "Array"
	case ExprVariable:
		return "Variable"
	case ExprCall:
		return "Call"
	case ExprMethodCall:
		return "MethodCall"
	case ExprBinary:
		return "Binary"
	case ExprIndex:
		return "Index"
	case ExprField:
		return "Field"
	case ExprStructLit:
		return "StructLit"
	default:
		return "Invalid"
	}
}

// Expr is a checked expression carrying its resolved result type.
type Expr struct {
	Span   source.Span
	Kind   ExprKind
	Result types.TypeID
	Data   ExprData
}

// ExprData is the kind-specific checked payload.
type ExprData interface {
	exprData()
}

type IntData struct {
	Value int64
}

type StringData struct {
	Value string
}

type BoolData struct {
	Value bool
}

type ArrayData struct {
	Elems []Expr
}

type VariableData struct {
	Variable scope.VariableID
}

type CallData struct {
	Name string
	Args []Expr
}

type MethodCallData struct {
	Instance *Expr
	Method   string
	Args     []Expr
}

type BinaryData struct {
	Op  ast.BinOp
	LHS *Expr
	RHS *Expr
}

type IndexData struct {
	Target *Expr
	Index  *Expr
}

type FieldData struct {
	Target *Expr
	Field  string
}

type StructLitData struct {
	Type   types.TypeID
	Fields []FieldInit
}

// FieldInit is one checked key/value entry of a struct literal.
type FieldInit struct {
	Name  string
	Value Expr
}

func (IntData) exprData()        {}
func (StringData) exprData()     {}
func (BoolData) exprData()       {}
func (ArrayData) exprData()      {}
func (VariableData) exprData()   {}
func (CallData) exprData()       {}
func (MethodCallData) exprData() {}
func (BinaryData) exprData()     {}
func (IndexData) exprData()      {}
func (FieldData) exprData()      {}
func (StructLitData) exprData()  {}

func (c *checker) checkExpr(sc scope.ID, e *ast.Expr) (Expr, error) {
	b := c.types.Builtins()
	switch e.Kind {
	case ast.ExprInt:
		data := e.Data.(ast.IntData)
		return Expr{Span: e.Span, Kind: ExprInt, Result: b.Int, Data: IntData{Value: data.Value}}, nil
	case ast.ExprString:
		data := e.Data.(ast.StringData)
		return Expr{Span: e.Span, Kind: ExprString, Result: b.String, Data: StringData{Value: data.Value}}, nil
	case ast.ExprBool:
		data := e.Data.(ast.BoolData)
		return Expr{Span: e.Span, Kind: ExprBool, Result: b.Bool, Data: BoolData{Value: data.Value}}, nil
	case ast.ExprSelf:
		return c.checkSelf(sc, e)
	case ast.ExprArray:
		return c.checkArrayLit(sc, e)
	case ast.ExprVariable:
		return c.checkVariable(sc, e)
	case ast.ExprCall:
		return c.checkCall(sc, e)
	case ast.ExprBinary:
		return c.checkBinary(sc, e)
	case ast.ExprIndex:
		return c.checkIndex(sc, e)
	case ast.ExprField:
		return c.checkFieldAccess(sc, e)
	case ast.ExprStructLit:
		return c.checkStructLit(sc, e)
	default:
		panic(fmt.Sprintf("sema: invalid expression kind %v", e.Kind))
	}
}

func (c *checker) checkVariable(sc scope.ID, e *ast.Expr) (Expr, error) {
	data := e.Data.(ast.VariableData)
	v, ty, ok := c.scopes.Lookup(sc, data.Name)
	if !ok {
		return Expr{}, diag.Newf(diag.UndefinedSymbol, e.Span, "undefined variable '%s'", data.Name)
	}
	return Expr{Span: e.Span, Kind: ExprVariable, Result: ty, Data: VariableData{Variable: v}}, nil
}

func (c *checker) checkSelf(sc scope.ID, e *ast.Expr) (Expr, error) {
	v, ty, ok := c.scopes.Lookup(sc, "self")
	if !ok {
		return Expr{}, diag.Newf(diag.UndefinedSymbol, e.Span, "'self' is not allowed outside of a method")
	}
	return Expr{Span: e.Span, Kind: ExprVariable, Result: ty, Data: VariableData{Variable: v}}, nil
}

func (c *checker) checkCall(sc scope.ID, e *ast.Expr) (Expr, error) {
	data := e.Data.(ast.CallData)
	switch data.Callee.Kind {
	case ast.ExprVariable:
		callee := data.Callee.Data.(ast.VariableData)
		return c.checkFunctionCall(sc, e.Span, callee.Name, data.Args)
	case ast.ExprField:
		callee := data.Callee.Data.(ast.FieldData)
		instance, err := c.checkExpr(sc, callee.Target)
		if err != nil {
			return Expr{}, err
		}
		return c.checkMethodCall(sc, e.Span, instance, callee.Field, data.Args)
	default:
		return Expr{}, diag.Newf(diag.TypeMismatch, data.Callee.Span, "expression is not callable")
	}
}

func (c *checker) checkFunctionCall(sc scope.ID, span source.Span, name string, args []ast.Expr) (Expr, error) {
	_, fnType, ok := c.scopes.Lookup(sc, name)
	if !ok {
		return Expr{}, diag.Newf(diag.UndefinedSymbol, span, "undefined function '%s'", name)
	}
	checked, result, err := c.checkCallArgs(sc, span, fnType, args)
	if err != nil {
		return Expr{}, err
	}
	return Expr{Span: span, Kind: ExprCall, Result: result, Data: CallData{Name: name, Args: checked}}, nil
}

func (c *checker) checkMethodCall(sc scope.ID, span source.Span, instance Expr, method string, args []ast.Expr) (Expr, error) {
	structID := c.types.Dealias(instance.Result)
	info, ok := c.types.StructInfo(structID)
	if !ok {
		return Expr{}, diag.Newf(diag.TypeMismatch, span, "cannot call a method on a non-struct value")
	}
	fnType, ok := info.Method(method)
	if !ok {
		return Expr{}, diag.Newf(diag.UndefinedSymbol, span, "no such method '%s'", method)
	}
	checked, result, err := c.checkCallArgs(sc, span, fnType, args)
	if err != nil {
		return Expr{}, err
	}
	return Expr{
		Span:   span,
		Kind:   ExprMethodCall,
		Result: result,
		Data:   MethodCallData{Instance: &instance, Method: method, Args: checked},
	}, nil
}

// checkCallArgs validates the callee's shape, the exact argument count and
// the positional assignability of each argument.
func (c *checker) checkCallArgs(sc scope.ID, span source.Span, fnType types.TypeID, args []ast.Expr) ([]Expr, types.TypeID, error) {
	info, ok := c.types.FnInfo(fnType)
	if !ok {
		return nil, types.NoTypeID, diag.Newf(diag.TypeMismatch, span, "cannot call a non-function value")
	}
	if len(args) < len(info.Params) {
		return nil, types.NoTypeID, diag.Newf(diag.ArityMismatch, span,
			"not enough arguments: expected %d, got %d", len(info.Params), len(args))
	}
	if len(args) > len(info.Params) {
		return nil, types.NoTypeID, diag.Newf(diag.ArityMismatch, span,
			"too many arguments: expected %d, got %d", len(info.Params), len(args))
	}
	checked := make([]Expr, 0, len(args))
	for i := range args {
		arg, err := c.checkExpr(sc, &args[i])
		if err != nil {
			return nil, types.NoTypeID, err
		}
		if !c.types.Assignable(info.Params[i], arg.Result) {
			return nil, types.NoTypeID, diag.Newf(diag.TypeMismatch, arg.Span,
				"argument is not assignable to parameter type")
		}
		checked = append(checked, arg)
	}
	return checked, info.Result, nil
}

// checkArrayLit requires a non-empty literal with one uniform element
// type; the first element is authoritative.
func (c *checker) checkArrayLit(sc scope.ID, e *ast.Expr) (Expr, error) {
	data := e.Data.(ast.ArrayData)
	if len(data.Elems) == 0 {
		return Expr{}, diag.Newf(diag.StructuralError, e.Span, "array literal must not be empty")
	}
	member := types.NoTypeID
	elems := make([]Expr, 0, len(data.Elems))
	for i := range data.Elems {
		elem, err := c.checkExpr(sc, &data.Elems[i])
		if err != nil {
			return Expr{}, err
		}
		if member == types.NoTypeID {
			member = elem.Result
		} else if elem.Result != member {
			return Expr{}, diag.Newf(diag.TypeMismatch, elem.Span,
				"array elements must have a uniform type")
		}
		elems = append(elems, elem)
	}
	arrType, err := c.types.InsertArray(member, len(elems))
	if err != nil {
		// Unreachable: the literal is non-empty.
		panic(err)
	}
	return Expr{Span: e.Span, Kind: ExprArray, Result: arrType, Data: ArrayData{Elems: elems}}, nil
}

func (c *checker) checkBinary(sc scope.ID, e *ast.Expr) (Expr, error) {
	data := e.Data.(ast.BinaryData)
	lhs, err := c.checkExpr(sc, data.LHS)
	if err != nil {
		return Expr{}, err
	}
	rhs, err := c.checkExpr(sc, data.RHS)
	if err != nil {
		return Expr{}, err
	}
	b := c.types.Builtins()
	var result types.TypeID
	switch data.Op {
	case ast.BinEq, ast.BinNotEq:
		if lhs.Result != rhs.Result {
			return Expr{}, diag.Newf(diag.TypeMismatch, e.Span,
				"cannot compare values of different types")
		}
		result = b.Bool
	case ast.BinAnd, ast.BinOr:
		if lhs.Result != b.Bool {
			return Expr{}, diag.Newf(diag.TypeMismatch, lhs.Span,
				"left side of '%s' must be a bool", data.Op)
		}
		if rhs.Result != b.Bool {
			return Expr{}, diag.Newf(diag.TypeMismatch, rhs.Span,
				"right side of '%s' must be a bool", data.Op)
		}
		result = b.Bool
	case ast.BinAdd:
		switch lhs.Result {
		case b.Int:
			if rhs.Result != b.Int {
				return Expr{}, diag.Newf(diag.TypeMismatch, rhs.Span,
					"right side of '+' must be an int")
			}
			result = b.Int
		case b.String:
			if rhs.Result != b.Int && rhs.Result != b.Bool && rhs.Result != b.String {
				return Expr{}, diag.Newf(diag.TypeMismatch, rhs.Span,
					"cannot concatenate 'string' with this value")
			}
			result = b.String
		default:
			return Expr{}, diag.Newf(diag.TypeMismatch, e.Span,
				"operator '+' cannot be applied to these types")
		}
	default:
		// Remaining arithmetic and comparisons work on ints only.
		if lhs.Result != b.Int {
			return Expr{}, diag.Newf(diag.TypeMismatch, lhs.Span,
				"left side of '%s' must be an int", data.Op)
		}
		if rhs.Result != b.Int {
			return Expr{}, diag.Newf(diag.TypeMismatch, rhs.Span,
				"right side of '%s' must be an int", data.Op)
		}
		if data.Op.IsRelational() {
			result = b.Bool
		} else {
			result = b.Int
		}
	}
	return Expr{
		Span:   e.Span,
		Kind:   ExprBinary,
		Result: result,
		Data:   BinaryData{Op: data.Op, LHS: &lhs, RHS: &rhs},
	}, nil
}

func (c *checker) checkIndex(sc scope.ID, e *ast.Expr) (Expr, error) {
	data := e.Data.(ast.IndexData)
	target, err := c.checkExpr(sc, data.Target)
	if err != nil {
		return Expr{}, err
	}
	index, err := c.checkExpr(sc, data.Index)
	if err != nil {
		return Expr{}, err
	}
	shape, ok := c.types.DealiasedLookup(target.Result)
	if !ok || (shape.Kind != types.KindArray && shape.Kind != types.KindDynamicArray) {
		return Expr{}, diag.Newf(diag.TypeMismatch, e.Span, "cannot index a value of non-array type")
	}
	if index.Result != c.types.Builtins().Int {
		return Expr{}, diag.Newf(diag.TypeMismatch, index.Span, "index must be an 'int'")
	}
	return Expr{
		Span:   e.Span,
		Kind:   ExprIndex,
		Result: shape.Elem,
		Data:   IndexData{Target: &target, Index: &index},
	}, nil
}

func (c *checker) checkFieldAccess(sc scope.ID, e *ast.Expr) (Expr, error) {
	data := e.Data.(ast.FieldData)
	target, err := c.checkExpr(sc, data.Target)
	if err != nil {
		return Expr{}, err
	}
	info, ok := c.types.StructInfo(c.types.Dealias(target.Result))
	if !ok {
		return Expr{}, diag.Newf(diag.TypeMismatch, e.Span, "cannot access a field of a non-struct value")
	}
	field, ok := info.Field(data.Field)
	if !ok {
		return Expr{}, diag.Newf(diag.UndefinedSymbol, e.Span, "no such field '%s'", data.Field)
	}
	return Expr{
		Span:   e.Span,
		Kind:   ExprField,
		Result: field.Type,
		Data:   FieldData{Target: &target, Field: data.Field},
	}, nil
}

// checkStructLit resolves the struct by name, validates every supplied key
// against the declared fields and every value against the field's type.
// The literal's type is the named struct type.
func (c *checker) checkStructLit(sc scope.ID, e *ast.Expr) (Expr, error) {
	data := e.Data.(ast.StructLitData)
	ty, ok := c.types.ByName(data.Name)
	if !ok {
		return Expr{}, diag.Newf(diag.UndefinedSymbol, e.Span, "no such struct '%s'", data.Name)
	}
	info, ok := c.types.StructInfo(c.types.Dealias(ty))
	if !ok {
		// Only struct definitions register named types.
		panic("sema: named type does not wrap a struct")
	}
	fields := make([]FieldInit, 0, len(data.Fields))
	for i := range data.Fields {
		fi := &data.Fields[i]
		field, ok := info.Field(fi.Name)
		if !ok {
			return Expr{}, diag.Newf(diag.UndefinedSymbol, fi.Span, "unknown field '%s'", fi.Name)
		}
		value, err := c.checkExpr(sc, &fi.Value)
		if err != nil {
			return Expr{}, err
		}
		if !c.types.Assignable(field.Type, value.Result) {
			return Expr{}, diag.Newf(diag.TypeMismatch, value.Span,
				"initializer is not assignable to field type")
		}
		fields = append(fields, FieldInit{Name: fi.Name, Value: value})
	}
	return Expr{
		Span:   e.Span,
		Kind:   ExprStructLit,
		Result: ty,
		Data:   StructLitData{Type: ty, Fields: fields},
	}, nil
}
