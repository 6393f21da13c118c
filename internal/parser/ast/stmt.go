package ast

import (
	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/semantic/types"
)

// Statement nodes represent actions.

// ExprStmt wraps an expression used as a statement: print(x), i++.
type ExprStmt struct {
	Expression Expr
}

func (s *ExprStmt) Pos() lexer.Position { return s.Expression.Pos() }
func (s *ExprStmt) stmtNode()           {}

// VarDecl represents a variable declaration:
//
//	var name : type [= initializer]
type VarDecl struct {
	Keyword     lexer.Token // the 'var' token
	Name        lexer.Token
	DeclType    types.Type
	Initializer Expr // nil when declared without a value
}

func (s *VarDecl) Pos() lexer.Position { return s.Keyword.Position }
func (s *VarDecl) stmtNode()           {}

// Param is one function parameter: name and declared type, in order.
type Param struct {
	Name lexer.Token
	Type types.Type
}

// FuncDecl represents a function declaration:
//
//	fn name(a : int, b : int) : int => ...
//
// Body holds the statements of the (indented or single-statement) body.
// The parser registers the signature in the symbol table before parsing
// the body, so the body can call the function recursively.
type FuncDecl struct {
	Keyword    lexer.Token // the 'fn' token
	Name       lexer.Token
	Params     []Param
	ReturnType types.Type // Void when omitted
	Body       []Stmt
}

func (s *FuncDecl) Pos() lexer.Position { return s.Keyword.Position }
func (s *FuncDecl) stmtNode()           {}

// Return represents a return statement with an optional value.
type Return struct {
	Keyword lexer.Token
	Value   Expr // nil for a bare return
}

func (s *Return) Pos() lexer.Position { return s.Keyword.Position }
func (s *Return) stmtNode()           {}

// Block is an ordered sequence of statements forming one lexical region.
type Block struct {
	Statements []Stmt
}

func (s *Block) Pos() lexer.Position {
	if len(s.Statements) > 0 {
		return s.Statements[0].Pos()
	}
	return lexer.Position{}
}
func (s *Block) stmtNode() {}

// If represents a conditional with an optional else branch.
type If struct {
	Keyword   lexer.Token
	Condition Expr
	Then      Stmt
	Else      Stmt // nil when absent
}

func (s *If) Pos() lexer.Position { return s.Keyword.Position }
func (s *If) stmtNode()           {}

// While represents a while loop.
type While struct {
	Keyword   lexer.Token
	Condition Expr
	Body      Stmt
}

func (s *While) Pos() lexer.Position { return s.Keyword.Position }
func (s *While) stmtNode()           {}

// For represents a C-style loop: for [init]; [cond]; [post] => body.
// All three header slots are optional.
type For struct {
	Keyword   lexer.Token
	Init      Stmt // var decl or expression statement, nil when omitted
	Condition Expr // nil means loop forever
	Post      Expr // nil when omitted
	Body      Stmt
}

func (s *For) Pos() lexer.Position { return s.Keyword.Position }
func (s *For) stmtNode()           {}

// Import records an import statement. The named module resolves at link
// time; the compiler only carries the name through.
type Import struct {
	Keyword lexer.Token
	Path    lexer.Token // the module-name string literal
}

func (s *Import) Pos() lexer.Position { return s.Keyword.Position }
func (s *Import) stmtNode()           {}
