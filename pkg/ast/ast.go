package ast

import "github.com/suryamajhi/rlox/pkg/token"

type NodeType string

const (
	NodeLiteralExpr    NodeType = "LiteralExpr"
	NodeVariableExpr   NodeType = "VariableExpr"
	NodeAssignExpr     NodeType = "AssignExpr"
	NodeLogicalExpr    NodeType = "LogicalExpr"
	NodeBinaryExpr     NodeType = "BinaryExpr"
	NodeUnaryExpr      NodeType = "UnaryExpr"
	NodeCallExpr       NodeType = "CallExpr"
	NodeGetExpr        NodeType = "GetExpr"
	NodeSetExpr        NodeType = "SetExpr"
	NodeThisExpr       NodeType = "ThisExpr"
	NodeSuperExpr      NodeType = "SuperExpr"
	NodeGroupingExpr   NodeType = "GroupingExpr"
	NodeExpressionStmt NodeType = "ExpressionStmt"
	NodePrintStmt      NodeType = "PrintStmt"
	NodeVarStmt        NodeType = "VarStmt"
	NodeBlockStmt      NodeType = "BlockStmt"
	NodeIfStmt         NodeType = "IfStmt"
	NodeWhileStmt      NodeType = "WhileStmt"
	NodeFunctionStmt   NodeType = "FunctionStmt"
	NodeReturnStmt     NodeType = "ReturnStmt"
	NodeClassStmt      NodeType = "ClassStmt"
)

// Node is the shared behaviour of every AST node. Nodes are always handled
// through pointers, so a node's address doubles as its stable identity for
// side tables keyed per reference.
type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Expr is the expression node family.
type Expr interface {
	Node
	exprNode()
}

type exprMarker struct{}

func (exprMarker) exprNode() {}

// Stmt is the statement node family.
type Stmt interface {
	Node
	stmtNode()
}

type stmtMarker struct{}

func (stmtMarker) stmtNode() {}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

// LiteralExpr carries the already-decoded literal value: float64, string,
// bool, or nil.
type LiteralExpr struct {
	nodeImpl
	exprMarker

	Value any
}

func NewLiteralExpr(value any) *LiteralExpr {
	return &LiteralExpr{nodeImpl: newNodeImpl(NodeLiteralExpr), Value: value}
}

type VariableExpr struct {
	nodeImpl
	exprMarker

	Name token.Token
}

func NewVariableExpr(name token.Token) *VariableExpr {
	return &VariableExpr{nodeImpl: newNodeImpl(NodeVariableExpr), Name: name}
}

type AssignExpr struct {
	nodeImpl
	exprMarker

	Name  token.Token
	Value Expr
}

func NewAssignExpr(name token.Token, value Expr) *AssignExpr {
	return &AssignExpr{nodeImpl: newNodeImpl(NodeAssignExpr), Name: name, Value: value}
}

// LogicalExpr is a short-circuiting `or`/`and`.
type LogicalExpr struct {
	nodeImpl
	exprMarker

	Left     Expr
	Operator token.Token
	Right    Expr
}

func NewLogicalExpr(left Expr, operator token.Token, right Expr) *LogicalExpr {
	return &LogicalExpr{nodeImpl: newNodeImpl(NodeLogicalExpr), Left: left, Operator: operator, Right: right}
}

type BinaryExpr struct {
	nodeImpl
	exprMarker

	Left     Expr
	Operator token.Token
	Right    Expr
}

func NewBinaryExpr(left Expr, operator token.Token, right Expr) *BinaryExpr {
	return &BinaryExpr{nodeImpl: newNodeImpl(NodeBinaryExpr), Left: left, Operator: operator, Right: right}
}

type UnaryExpr struct {
	nodeImpl
	exprMarker

	Operator token.Token
	Right    Expr
}

func NewUnaryExpr(operator token.Token, right Expr) *UnaryExpr {
	return &UnaryExpr{nodeImpl: newNodeImpl(NodeUnaryExpr), Operator: operator, Right: right}
}

// CallExpr records the closing parenthesis token so runtime errors can point
// at the call site.
type CallExpr struct {
	nodeImpl
	exprMarker

	Callee    Expr
	Paren     token.Token
	Arguments []Expr
}

func NewCallExpr(callee Expr, paren token.Token, arguments []Expr) *CallExpr {
	return &CallExpr{nodeImpl: newNodeImpl(NodeCallExpr), Callee: callee, Paren: paren, Arguments: arguments}
}

type GetExpr struct {
	nodeImpl
	exprMarker

	Object Expr
	Name   token.Token
}

func NewGetExpr(object Expr, name token.Token) *GetExpr {
	return &GetExpr{nodeImpl: newNodeImpl(NodeGetExpr), Object: object, Name: name}
}

type SetExpr struct {
	nodeImpl
	exprMarker

	Object Expr
	Name   token.Token
	Value  Expr
}

func NewSetExpr(object Expr, name token.Token, value Expr) *SetExpr {
	return &SetExpr{nodeImpl: newNodeImpl(NodeSetExpr), Object: object, Name: name, Value: value}
}

type ThisExpr struct {
	nodeImpl
	exprMarker

	Keyword token.Token
}

func NewThisExpr(keyword token.Token) *ThisExpr {
	return &ThisExpr{nodeImpl: newNodeImpl(NodeThisExpr), Keyword: keyword}
}

type SuperExpr struct {
	nodeImpl
	exprMarker

	Keyword token.Token
	Method  token.Token
}

func NewSuperExpr(keyword, method token.Token) *SuperExpr {
	return &SuperExpr{nodeImpl: newNodeImpl(NodeSuperExpr), Keyword: keyword, Method: method}
}

type GroupingExpr struct {
	nodeImpl
	exprMarker

	Expression Expr
}

func NewGroupingExpr(expression Expr) *GroupingExpr {
	return &GroupingExpr{nodeImpl: newNodeImpl(NodeGroupingExpr), Expression: expression}
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

type ExpressionStmt struct {
	nodeImpl
	stmtMarker

	Expression Expr
}

func NewExpressionStmt(expression Expr) *ExpressionStmt {
	return &ExpressionStmt{nodeImpl: newNodeImpl(NodeExpressionStmt), Expression: expression}
}

type PrintStmt struct {
	nodeImpl
	stmtMarker

	Expression Expr
}

func NewPrintStmt(expression Expr) *PrintStmt {
	return &PrintStmt{nodeImpl: newNodeImpl(NodePrintStmt), Expression: expression}
}

// VarStmt declares a variable; Initializer is nil for a bare `var x;`.
type VarStmt struct {
	nodeImpl
	stmtMarker

	Name        token.Token
	Initializer Expr
}

func NewVarStmt(name token.Token, initializer Expr) *VarStmt {
	return &VarStmt{nodeImpl: newNodeImpl(NodeVarStmt), Name: name, Initializer: initializer}
}

type BlockStmt struct {
	nodeImpl
	stmtMarker

	Statements []Stmt
}

func NewBlockStmt(statements []Stmt) *BlockStmt {
	return &BlockStmt{nodeImpl: newNodeImpl(NodeBlockStmt), Statements: statements}
}

type IfStmt struct {
	nodeImpl
	stmtMarker

	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt
}

func NewIfStmt(condition Expr, thenBranch, elseBranch Stmt) *IfStmt {
	return &IfStmt{nodeImpl: newNodeImpl(NodeIfStmt), Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

type WhileStmt struct {
	nodeImpl
	stmtMarker

	Condition Expr
	Body      Stmt
}

func NewWhileStmt(condition Expr, body Stmt) *WhileStmt {
	return &WhileStmt{nodeImpl: newNodeImpl(NodeWhileStmt), Condition: condition, Body: body}
}

type FunctionStmt struct {
	nodeImpl
	stmtMarker

	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

func NewFunctionStmt(name token.Token, params []token.Token, body []Stmt) *FunctionStmt {
	return &FunctionStmt{nodeImpl: newNodeImpl(NodeFunctionStmt), Name: name, Params: params, Body: body}
}

// ReturnStmt keeps the `return` keyword token so static and runtime errors
// can report its line.
type ReturnStmt struct {
	nodeImpl
	stmtMarker

	Keyword token.Token
	Value   Expr
}

func NewReturnStmt(keyword token.Token, value Expr) *ReturnStmt {
	return &ReturnStmt{nodeImpl: newNodeImpl(NodeReturnStmt), Keyword: keyword, Value: value}
}

// ClassStmt declares a class; Superclass is nil when no `<` clause was given.
type ClassStmt struct {
	nodeImpl
	stmtMarker

	Name       token.Token
	Superclass *VariableExpr
	Methods    []*FunctionStmt
}

func NewClassStmt(name token.Token, superclass *VariableExpr, methods []*FunctionStmt) *ClassStmt {
	return &ClassStmt{nodeImpl: newNodeImpl(NodeClassStmt), Name: name, Superclass: superclass, Methods: methods}
}
