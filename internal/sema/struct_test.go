package sema

import (
	"testing"

	"antimony/internal/ast"
	"antimony/internal/diag"
	"antimony/internal/types"
)

// pointStruct declares Point { x: int, y: int } with methods
// sum(): int { return self.x + self.y } and
// scale(f: int) { self.x *= f }.
func pointStruct() ast.StructDef {
	return ast.StructDef{
		Name: "Point",
		Fields: []ast.TypedVariable{
			param("x", intType()),
			param("y", intType()),
		},
		Methods: []ast.Method{
			{
				Callable: ast.Callable{Name: "sum", Return: typePtr(intType())},
				Body: block(ret(binary(ast.BinAdd,
					fieldAccess(selfRef(), "x"),
					fieldAccess(selfRef(), "y")))),
			},
			{
				Callable: ast.Callable{Name: "scale", Params: []ast.TypedVariable{param("f", intType())}},
				Body: block(assign(ast.AssignMul,
					fieldAccess(selfRef(), "x"), varRef("f"))),
			},
		},
	}
}

func pointLit(x, y int64) ast.Expr {
	return structLit("Point", fieldInit("x", intLit(x)), fieldInit("y", intLit(y)))
}

func TestStructLiteral(t *testing.T) {
	mod := check(t, ast.Module{
		Structs: []ast.StructDef{pointStruct()},
		Functions: []ast.Function{
			mainFn(declare("p", nil, pointLit(1, 2))),
		},
	})

	decl := mod.Functions[0].Body.Data.(BlockData).Stmts[0].Data.(DeclareData)
	pt, ok := mod.Types.ByName("Point")
	if !ok || decl.Value.Result != pt {
		t.Fatalf("literal type %d, want the registered Point type %d", decl.Value.Result, pt)
	}
	if d := mod.Types.Dimensions(pt); d != (types.Dimensions{Size: 8, Align: 4}) {
		t.Fatalf("Point dimensions %+v, want {8 4}", d)
	}
}

func TestStructLiteralUnknownStruct(t *testing.T) {
	checkFails(t, ast.Module{Functions: []ast.Function{
		mainFn(exprStmt(structLit("Ghost"))),
	}}, diag.UndefinedSymbol)
}

func TestStructLiteralUnknownField(t *testing.T) {
	checkFails(t, ast.Module{
		Structs: []ast.StructDef{pointStruct()},
		Functions: []ast.Function{
			mainFn(exprStmt(structLit("Point", fieldInit("z", intLit(1))))),
		},
	}, diag.UndefinedSymbol)
}

func TestStructLiteralFieldTypeMismatch(t *testing.T) {
	checkFails(t, ast.Module{
		Structs: []ast.StructDef{pointStruct()},
		Functions: []ast.Function{
			mainFn(exprStmt(structLit("Point", fieldInit("x", strLit("1"))))),
		},
	}, diag.TypeMismatch)
}

func TestFieldAccess(t *testing.T) {
	mod := check(t, ast.Module{
		Structs: []ast.StructDef{pointStruct()},
		Functions: []ast.Function{
			mainFn(
				declare("p", nil, pointLit(1, 2)),
				declare("x", nil, fieldAccess(varRef("p"), "x")),
			),
		},
	})

	stmts := mod.Functions[0].Body.Data.(BlockData).Stmts
	decl := stmts[1].Data.(DeclareData)
	if mod.Scopes.TypeOf(decl.Variable) != mod.Types.Builtins().Int {
		t.Fatalf("p.x must be an int")
	}
}

func TestFieldAccessUnknownField(t *testing.T) {
	checkFails(t, ast.Module{
		Structs: []ast.StructDef{pointStruct()},
		Functions: []ast.Function{
			mainFn(
				declare("p", nil, pointLit(1, 2)),
				exprStmt(fieldAccess(varRef("p"), "z")),
			),
		},
	}, diag.UndefinedSymbol)
}

func TestFieldAccessOnNonStruct(t *testing.T) {
	checkFails(t, ast.Module{Functions: []ast.Function{
		mainFn(
			declare("n", nil, intLit(1)),
			exprStmt(fieldAccess(varRef("n"), "x")),
		),
	}}, diag.TypeMismatch)
}

func TestMethodCall(t *testing.T) {
	mod := check(t, ast.Module{
		Structs: []ast.StructDef{pointStruct()},
		Functions: []ast.Function{
			mainFn(
				declare("p", nil, pointLit(1, 2)),
				declare("s", nil, methodCall(varRef("p"), "sum")),
				exprStmt(methodCall(varRef("p"), "scale", intLit(3))),
			),
		},
	})

	stmts := mod.Functions[0].Body.Data.(BlockData).Stmts
	decl := stmts[1].Data.(DeclareData)
	if mod.Scopes.TypeOf(decl.Variable) != mod.Types.Builtins().Int {
		t.Fatalf("p.sum() must yield int")
	}
}

func TestMethodCallUnknownMethod(t *testing.T) {
	checkFails(t, ast.Module{
		Structs: []ast.StructDef{pointStruct()},
		Functions: []ast.Function{
			mainFn(
				declare("p", nil, pointLit(1, 2)),
				exprStmt(methodCall(varRef("p"), "area")),
			),
		},
	}, diag.UndefinedSymbol)
}

func TestMethodCallArity(t *testing.T) {
	checkFails(t, ast.Module{
		Structs: []ast.StructDef{pointStruct()},
		Functions: []ast.Function{
			mainFn(
				declare("p", nil, pointLit(1, 2)),
				exprStmt(methodCall(varRef("p"), "scale")),
			),
		},
	}, diag.ArityMismatch)
}

func TestMethodCallOnNonStruct(t *testing.T) {
	checkFails(t, ast.Module{Functions: []ast.Function{
		mainFn(
			declare("n", nil, intLit(1)),
			exprStmt(methodCall(varRef("n"), "sum")),
		),
	}}, diag.TypeMismatch)
}

func TestMethodBodyCallsFreeFunction(t *testing.T) {
	// Functions are pre-declared before any body is checked, so a method
	// can call a free function declared after its struct.
	check(t, ast.Module{
		Structs: []ast.StructDef{{
			Name:   "Counter",
			Fields: []ast.TypedVariable{param("n", intType())},
			Methods: []ast.Method{{
				Callable: ast.Callable{Name: "bump", Return: typePtr(intType())},
				Body:     block(ret(call("inc", fieldAccess(selfRef(), "n")))),
			}},
		}},
		Functions: []ast.Function{
			fn("inc", []ast.TypedVariable{param("n", intType())}, typePtr(intType()),
				block(ret(binary(ast.BinAdd, varRef("n"), intLit(1))))),
		},
	})
}

func TestStructTypeInSignature(t *testing.T) {
	mod := check(t, ast.Module{
		Structs: []ast.StructDef{pointStruct()},
		Functions: []ast.Function{
			fn("sum", []ast.TypedVariable{param("p", namedType("Point"))}, typePtr(intType()),
				block(ret(methodCall(varRef("p"), "sum")))),
			mainFn(
				declare("s", nil, call("sum", pointLit(3, 4))),
			),
		},
	})

	decl := mod.Functions[1].Body.Data.(BlockData).Stmts[0].Data.(DeclareData)
	if mod.Scopes.TypeOf(decl.Variable) != mod.Types.Builtins().Int {
		t.Fatalf("sum(Point) must yield int")
	}
}

func TestDuplicateStructRejected(t *testing.T) {
	checkFails(t, ast.Module{
		Structs: []ast.StructDef{pointStruct(), pointStruct()},
	}, diag.StructuralError)
}

func TestStructFieldOfStructType(t *testing.T) {
	mod := check(t, ast.Module{
		Structs: []ast.StructDef{
			pointStruct(),
			{
				Name: "Line",
				Fields: []ast.TypedVariable{
					param("from", namedType("Point")),
					param("to", namedType("Point")),
				},
			},
		},
		Functions: []ast.Function{
			mainFn(
				declare("l", nil, structLit("Line",
					fieldInit("from", pointLit(0, 0)),
					fieldInit("to", pointLit(1, 1)))),
				declare("x", nil, fieldAccess(fieldAccess(varRef("l"), "to"), "x")),
			),
		},
	})

	line, _ := mod.Types.ByName("Line")
	if d := mod.Types.Dimensions(line); d != (types.Dimensions{Size: 16, Align: 4}) {
		t.Fatalf("Line dimensions %+v, want {16 4}", d)
	}
	info, _ := mod.Types.StructInfo(mod.Types.Dealias(line))
	to, _ := info.Field("to")
	if to.Offset != 8 {
		t.Fatalf("Line.to offset %d, want 8", to.Offset)
	}
}
