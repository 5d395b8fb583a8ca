package ast

import "antimony/internal/source"

// StmtKind enumerates statement kinds.
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

// Stmt is an untyped statement node. Data holds the kind-specific payload;
// Break and Continue carry none.
type Stmt struct {
	Span source.Span
	Kind StmtKind
	Data StmtData
}

// StmtData is the kind-specific statement payload.
type StmtData interface {
	stmtData()
}

type BlockData struct {
	Stmts []Stmt
}

type DeclareData struct {
	Variable Variable
	Value    *Expr
}

type AssignData struct {
	Op  AssignOp
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
}

// MatchArm is one arm of a match statement. Cond is nil for the else arm;
// the parser guarantees at most one else arm per match.
type MatchArm struct {
	Cond *Expr
	Body Stmt
}

type WhileData struct {
	Cond Expr
	Body *Stmt
}

type ForData struct {
	Variable Variable
	Expr     Expr
	Body     *Stmt
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
func (ExprStmtData) stmtData() {}
