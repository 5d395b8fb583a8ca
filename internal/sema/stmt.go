package sema

import (
	"fmt"

	"antimony/internal/ast"
	"antimony/internal/diag"
	"antimony/internal/scope"
	"antimony/internal/source"
	"antimony/internal/types"
)

// StmtKind enumerates checked statement kinds.
type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtBlock
	StmtDeclare
	StmtAssign
	StmtReturn
	StmtIf
	StmtMatch
	StmtWhile
	StmtFor
	StmtBreak
	StmtContinue
	StmtExpr
)

func (k StmtKind) String() string {
	switch k {
	case StmtBlock:
		return "Block"
	case StmtDeclare:
		return "Declare"
	case StmtAssign:
		return "Assign"
	case StmtReturn:
		return "Return"
	case StmtIf:
		return "If"
	case StmtMatch:
		return "Match"
	case StmtWhile:
		return "While"
	case StmtFor:
		return "For"
	case StmtBreak:
		return "Break"
	case StmtContinue:
		return "Continue"
	case StmtExpr:
		return "Expr"
	default:
		return "Invalid"
	}
}

// Stmt is a checked statement. Statements that open or target a scope
// carry its resolved ID for stack-frame layout and jump resolution.
type Stmt struct {
	Span source.Span
	Kind StmtKind
	Data StmtData
}

// StmtData is the kind-specific checked payload.
type StmtData interface {
	stmtData()
}

type BlockData struct {
	Scope scope.ID
	Stmts []Stmt
}

type DeclareData struct {
	Variable scope.VariableID
	Value    *Expr
}

type AssignData struct {
	Op  ast.AssignOp
	LHS Expr
	RHS Expr
}

type ReturnData struct {
	Value *Expr
}

type IfData struct {
	Cond Expr
	Then *Stmt
	Else *Stmt
}

type MatchData struct {
	Subject Expr
	Arms    []MatchArm
	Else    *Stmt
}

// MatchArm is one checked case arm; the optional else arm lives on
// MatchData.
type MatchArm struct {
	Cond Expr
	Body Stmt
}

type WhileData struct {
	Scope scope.ID
	Cond  Expr
	Body  *Stmt
}

type ForData struct {
	Scope    scope.ID
	Variable scope.VariableID
	Expr     Expr
	Body     *Stmt
}

type BreakData struct {
	Loop scope.ID
}

type ContinueData struct {
	Loop scope.ID
}

type ExprStmtData struct {
	Expr Expr
}

func (BlockData) stmtData()    {}
func (DeclareData) stmtData()  {}
func (AssignData) stmtData()   {}
func (ReturnData) stmtData()   {}
func (IfData) stmtData()       {}
func (MatchData) stmtData()    {}
func (WhileData) stmtData()    {}
func (ForData) stmtData()      {}
func (BreakData) stmtData()    {}
func (ContinueData) stmtData() {}
func (ExprStmtData) stmtData() {}

func (c *checker) checkStmt(sc scope.ID, st *ast.Stmt) (Stmt, error) {
	switch st.Kind {
	case ast.StmtBlock:
		return c.checkBlock(sc, st)
	case ast.StmtDeclare:
		return c.checkDeclare(sc, st)
	case ast.StmtAssign:
		return c.checkAssign(sc, st)
	case ast.StmtReturn:
		return c.checkReturn(sc, st)
	case ast.StmtIf:
		return c.checkIf(sc, st)
	case ast.StmtMatch:
		return c.checkMatch(sc, st)
	case ast.StmtWhile:
		return c.checkWhile(sc, st)
	case ast.StmtFor:
		return c.checkFor(sc, st)
	case ast.StmtBreak:
		return c.checkBreak(sc, st)
	case ast.StmtContinue:
		return c.checkContinue(sc, st)
	case ast.StmtExpr:
		data := st.Data.(ast.ExprStmtData)
		e, err := c.checkExpr(sc, &data.Expr)
		if err != nil {
			return Stmt{}, err
		}
		return Stmt{Span: st.Span, Kind: StmtExpr, Data: ExprStmtData{Expr: e}}, nil
	default:
		panic(fmt.Sprintf("sema: invalid statement kind %v", st.Kind))
	}
}

func (c *checker) checkBlock(sc scope.ID, st *ast.Stmt) (Stmt, error) {
	data := st.Data.(ast.BlockData)
	inner := c.scopes.Push(sc)
	stmts := make([]Stmt, 0, len(data.Stmts))
	for i := range data.Stmts {
		checked, err := c.checkStmt(inner, &data.Stmts[i])
		if err != nil {
			return Stmt{}, err
		}
		stmts = append(stmts, checked)
	}
	return Stmt{Span: st.Span, Kind: StmtBlock, Data: BlockData{Scope: inner, Stmts: stmts}}, nil
}

// checkDeclare checks the initializer before declaring the name, so the
// initializer still sees any shadowed outer binding. An omitted type is
// inferred as exactly the initializer's type.
func (c *checker) checkDeclare(sc scope.ID, st *ast.Stmt) (Stmt, error) {
	data := st.Data.(ast.DeclareData)
	var value *Expr
	if data.Value != nil {
		e, err := c.checkExpr(sc, data.Value)
		if err != nil {
			return Stmt{}, err
		}
		value = &e
	}
	var ty types.TypeID
	switch {
	case data.Variable.Type != nil:
		id, err := c.types.InsertASTType(data.Variable.Type)
		if err != nil {
			return Stmt{}, err
		}
		ty = id
	case value != nil:
		ty = value.Result
	default:
		// The parser guarantees a declaration has a type or an initializer.
		panic("sema: declaration without type or initializer")
	}
	if value != nil && !c.types.Assignable(ty, value.Result) {
		return Stmt{}, diag.Newf(diag.TypeMismatch, value.Span,
			"initializer is not assignable to variable type")
	}
	v := c.scopes.Insert(sc, data.Variable.Name, ty)
	return Stmt{Span: st.Span, Kind: StmtDeclare, Data: DeclareData{Variable: v, Value: value}}, nil
}

func (c *checker) checkAssign(sc scope.ID, st *ast.Stmt) (Stmt, error) {
	data := st.Data.(ast.AssignData)
	lhs, err := c.checkExpr(sc, &data.LHS)
	if err != nil {
		return Stmt{}, err
	}
	rhs, err := c.checkExpr(sc, &data.RHS)
	if err != nil {
		return Stmt{}, err
	}
	switch lhs.Kind {
	case ExprVariable, ExprField, ExprIndex:
	default:
		return Stmt{}, diag.Newf(diag.TypeMismatch, lhs.Span,
			"left side of assignment must be a variable, field access or array access")
	}

	b := c.types.Builtins()
	switch data.Op {
	case ast.AssignSet:
		if !c.types.Assignable(lhs.Result, rhs.Result) {
			return Stmt{}, diag.Newf(diag.TypeMismatch, rhs.Span,
				"value is not assignable to variable or field type")
		}
	case ast.AssignAdd:
		switch lhs.Result {
		case b.Int:
			if rhs.Result != b.Int {
				return Stmt{}, diag.Newf(diag.TypeMismatch, rhs.Span,
					"right side of '+=' must be an int")
			}
		case b.String:
			if rhs.Result != b.Int && rhs.Result != b.Bool && rhs.Result != b.String {
				return Stmt{}, diag.Newf(diag.TypeMismatch, rhs.Span,
					"right side of '+=' cannot be concatenated to a string")
			}
		default:
			return Stmt{}, diag.Newf(diag.TypeMismatch, st.Span,
				"'+=' requires an int or string on the left side")
		}
	case ast.AssignSub, ast.AssignMul, ast.AssignDiv:
		if rhs.Result != b.Int {
			return Stmt{}, diag.Newf(diag.TypeMismatch, rhs.Span,
				"right side of '%s' must be an int", data.Op)
		}
	}
	return Stmt{Span: st.Span, Kind: StmtAssign, Data: AssignData{Op: data.Op, LHS: lhs, RHS: rhs}}, nil
}

func (c *checker) checkReturn(sc scope.ID, st *ast.Stmt) (Stmt, error) {
	data := st.Data.(ast.ReturnData)
	var value *Expr
	if data.Value != nil {
		e, err := c.checkExpr(sc, data.Value)
		if err != nil {
			return Stmt{}, err
		}
		value = &e
	}
	ret, ok := c.scopes.ReturnType(sc)
	if !ok {
		return Stmt{}, diag.Newf(diag.ContextError, st.Span, "'return' used outside of a function")
	}
	if value != nil {
		if !c.types.Assignable(ret, value.Result) {
			return Stmt{}, diag.Newf(diag.TypeMismatch, value.Span,
				"value is not assignable to function return type")
		}
	} else if ret != c.types.Builtins().Void {
		return Stmt{}, diag.Newf(diag.TypeMismatch, st.Span, "function must return a value")
	}
	return Stmt{Span: st.Span, Kind: StmtReturn, Data: ReturnData{Value: value}}, nil
}

func (c *checker) checkIf(sc scope.ID, st *ast.Stmt) (Stmt, error) {
	data := st.Data.(ast.IfData)
	cond, err := c.checkExpr(sc, &data.Cond)
	if err != nil {
		return Stmt{}, err
	}
	if cond.Result != c.types.Builtins().Bool {
		return Stmt{}, diag.Newf(diag.TypeMismatch, cond.Span, "condition must be a 'bool'")
	}
	then, err := c.checkStmt(sc, data.Then)
	if err != nil {
		return Stmt{}, err
	}
	var els *Stmt
	if data.Else != nil {
		checked, err := c.checkStmt(sc, data.Else)
		if err != nil {
			return Stmt{}, err
		}
		els = &checked
	}
	return Stmt{Span: st.Span, Kind: StmtIf, Data: IfData{Cond: cond, Then: &then, Else: els}}, nil
}

// checkMatch checks the subject and every case condition against one
// shared result type; no coercion applies between them.
func (c *checker) checkMatch(sc scope.ID, st *ast.Stmt) (Stmt, error) {
	data := st.Data.(ast.MatchData)
	subject, err := c.checkExpr(sc, &data.Subject)
	if err != nil {
		return Stmt{}, err
	}
	arms := make([]MatchArm, 0, len(data.Arms))
	var els *Stmt
	for i := range data.Arms {
		arm := &data.Arms[i]
		if arm.Cond == nil {
			if els != nil {
				// The parser guarantees at most one else arm.
				panic("sema: multiple else arms in match")
			}
			body, err := c.checkStmt(sc, &arm.Body)
			if err != nil {
				return Stmt{}, err
			}
			els = &body
			continue
		}
		cond, err := c.checkExpr(sc, arm.Cond)
		if err != nil {
			return Stmt{}, err
		}
		if cond.Result != subject.Result {
			return Stmt{}, diag.Newf(diag.TypeMismatch, cond.Span,
				"match arm condition does not match subject type")
		}
		body, err := c.checkStmt(sc, &arm.Body)
		if err != nil {
			return Stmt{}, err
		}
		arms = append(arms, MatchArm{Cond: cond, Body: body})
	}
	return Stmt{Span: st.Span, Kind: StmtMatch, Data: MatchData{Subject: subject, Arms: arms, Else: els}}, nil
}

func (c *checker) checkWhile(sc scope.ID, st *ast.Stmt) (Stmt, error) {
	data := st.Data.(ast.WhileData)
	cond, err := c.checkExpr(sc, &data.Cond)
	if err != nil {
		return Stmt{}, err
	}
	if cond.Result != c.types.Builtins().Bool {
		return Stmt{}, diag.Newf(diag.TypeMismatch, cond.Span, "condition must be a 'bool'")
	}
	loop := c.scopes.PushLoop(sc)
	body, err := c.checkStmt(loop, data.Body)
	if err != nil {
		return Stmt{}, err
	}
	return Stmt{Span: st.Span, Kind: StmtWhile, Data: WhileData{Scope: loop, Cond: cond, Body: &body}}, nil
}

// checkFor requires a fixed-size array; the bound variable receives the
// member type inside a fresh loop scope. Dynamic arrays are not iterable.
func (c *checker) checkFor(sc scope.ID, st *ast.Stmt) (Stmt, error) {
	data := st.Data.(ast.ForData)
	iter, err := c.checkExpr(sc, &data.Expr)
	if err != nil {
		return Stmt{}, err
	}
	shape, ok := c.types.DealiasedLookup(iter.Result)
	if !ok || shape.Kind != types.KindArray {
		return Stmt{}, diag.Newf(diag.TypeMismatch, iter.Span,
			"'for' must iterate over a fixed-size array")
	}
	loop := c.scopes.PushLoop(sc)
	v := c.scopes.Insert(loop, data.Variable.Name, shape.Elem)
	body, err := c.checkStmt(loop, data.Body)
	if err != nil {
		return Stmt{}, err
	}
	return Stmt{Span: st.Span, Kind: StmtFor, Data: ForData{Scope: loop, Variable: v, Expr: iter, Body: &body}}, nil
}

func (c *checker) checkBreak(sc scope.ID, st *ast.Stmt) (Stmt, error) {
	loop, ok := c.scopes.NearestLoop(sc)
	if !ok {
		return Stmt{}, diag.Newf(diag.ContextError, st.Span, "'break' must be used within a loop")
	}
	return Stmt{Span: st.Span, Kind: StmtBreak, Data: BreakData{Loop: loop}}, nil
}

func (c *checker) checkContinue(sc scope.ID, st *ast.Stmt) (Stmt, error) {
	loop, ok := c.scopes.NearestLoop(sc)
	if !ok {
		return Stmt{}, diag.Newf(diag.ContextError, st.Span, "'continue' must be used within a loop")
	}
	return Stmt{Span: st.Span, Kind: StmtContinue, Data: ContinueData{Loop: loop}}, nil
}
