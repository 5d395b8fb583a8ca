package sema

import (
	"antimony/internal/ast"
)

// Expression builders. Tests assemble untyped trees directly instead of
// going through a parser.

func intLit(v int64) ast.Expr {
	return ast.Expr{Kind: ast.ExprInt, Data: ast.IntData{Value: v}}
}

func strLit(v string) ast.Expr {
	return ast.Expr{Kind: ast.ExprString, Data: ast.StringData{Value: v}}
}

func boolLit(v bool) ast.Expr {
	return ast.Expr{Kind: ast.ExprBool, Data: ast.BoolData{Value: v}}
}

func selfRef() ast.Expr {
	return ast.Expr{Kind: ast.ExprSelf}
}

func varRef(name string) ast.Expr {
	return ast.Expr{Kind: ast.ExprVariable, Data: ast.VariableData{Name: name}}
}

func arrayLit(elems ...ast.Expr) ast.Expr {
	return ast.Expr{Kind: ast.ExprArray, Data: ast.ArrayData{Elems: elems}}
}

func call(name string, args ...ast.Expr) ast.Expr {
	callee := varRef(name)
	return ast.Expr{Kind: ast.ExprCall, Data: ast.CallData{Callee: &callee, Args: args}}
}

func methodCall(target ast.Expr, method string, args ...ast.Expr) ast.Expr {
	callee := fieldAccess(target, method)
	return ast.Expr{Kind: ast.ExprCall, Data: ast.CallData{Callee: &callee, Args: args}}
}

func binary(op ast.BinOp, lhs, rhs ast.Expr) ast.Expr {
	return ast.Expr{Kind: ast.ExprBinary, Data: ast.BinaryData{Op: op, LHS: &lhs, RHS: &rhs}}
}

func indexExpr(target, idx ast.Expr) ast.Expr {
	return ast.Expr{Kind: ast.ExprIndex, Data: ast.IndexData{Target: &target, Index: &idx}}
}

func fieldAccess(target ast.Expr, field string) ast.Expr {
	return ast.Expr{Kind: ast.ExprField, Data: ast.FieldData{Target: &target, Field: field}}
}

func structLit(name string, fields ...ast.FieldInit) ast.Expr {
	return ast.Expr{Kind: ast.ExprStructLit, Data: ast.StructLitData{Name: name, Fields: fields}}
}

func fieldInit(name string, value ast.Expr) ast.FieldInit {
	return ast.FieldInit{Name: name, Value: value}
}

// Statement builders.

func block(stmts ...ast.Stmt) ast.Stmt {
	return ast.Stmt{Kind: ast.StmtBlock, Data: ast.BlockData{Stmts: stmts}}
}

func declare(name string, ty *ast.Type, value ast.Expr) ast.Stmt {
	return ast.Stmt{Kind: ast.StmtDeclare, Data: ast.DeclareData{
		Variable: ast.Variable{Name: name, Type: ty},
		Value:    &value,
	}}
}

func declareBare(name string, ty ast.Type) ast.Stmt {
	return ast.Stmt{Kind: ast.StmtDeclare, Data: ast.DeclareData{
		Variable: ast.Variable{Name: name, Type: &ty},
	}}
}

func assign(op ast.AssignOp, lhs, rhs ast.Expr) ast.Stmt {
	return ast.Stmt{Kind: ast.StmtAssign, Data: ast.AssignData{Op: op, LHS: lhs, RHS: rhs}}
}

func ret(value ast.Expr) ast.Stmt {
	return ast.Stmt{Kind: ast.StmtReturn, Data: ast.ReturnData{Value: &value}}
}

func retVoid() ast.Stmt {
	return ast.Stmt{Kind: ast.StmtReturn, Data: ast.ReturnData{}}
}

func ifStmt(cond ast.Expr, then ast.Stmt) ast.Stmt {
	return ast.Stmt{Kind: ast.StmtIf, Data: ast.IfData{Cond: cond, Then: &then}}
}

func whileStmt(cond ast.Expr, body ast.Stmt) ast.Stmt {
	return ast.Stmt{Kind: ast.StmtWhile, Data: ast.WhileData{Cond: cond, Body: &body}}
}

func forStmt(name string, iter ast.Expr, body ast.Stmt) ast.Stmt {
	return ast.Stmt{Kind: ast.StmtFor, Data: ast.ForData{
		Variable: ast.Variable{Name: name},
		Expr:     iter,
		Body:     &body,
	}}
}

func matchStmt(subject ast.Expr, arms ...ast.MatchArm) ast.Stmt {
	return ast.Stmt{Kind: ast.StmtMatch, Data: ast.MatchData{Subject: subject, Arms: arms}}
}

func matchArm(cond ast.Expr, body ast.Stmt) ast.MatchArm {
	return ast.MatchArm{Cond: &cond, Body: body}
}

func matchElse(body ast.Stmt) ast.MatchArm {
	return ast.MatchArm{Body: body}
}

func breakStmt() ast.Stmt {
	return ast.Stmt{Kind: ast.StmtBreak}
}

func continueStmt() ast.Stmt {
	return ast.Stmt{Kind: ast.StmtContinue}
}

func exprStmt(e ast.Expr) ast.Stmt {
	return ast.Stmt{Kind: ast.StmtExpr, Data: ast.ExprStmtData{Expr: e}}
}

// Declaration builders.

func param(name string, ty ast.Type) ast.TypedVariable {
	return ast.TypedVariable{Name: name, Type: ty}
}

func fn(name string, params []ast.TypedVariable, ret *ast.Type, body ast.Stmt) ast.Function {
	return ast.Function{
		Callable: ast.Callable{Name: name, Params: params, Return: ret},
		Body:     &body,
	}
}

func intType() ast.Type { return ast.Type{Kind: ast.TypeInt} }

func typePtr(ty ast.Type) *ast.Type { return &ty }

func fixedArrayType(elem ast.Type, length uint32) ast.Type {
	return ast.Type{Kind: ast.TypeArray, Elem: &elem, Length: length}
}

func dynArrayType(elem ast.Type) ast.Type {
	return ast.Type{Kind: ast.TypeArray, Elem: &elem, Length: ast.DynamicLength}
}

func namedType(name string) ast.Type {
	return ast.Type{Kind: ast.TypeNamed, Name: name}
}
