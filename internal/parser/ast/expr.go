package ast

import (
	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/semantic/types"
)

// Expression nodes represent values and computations.

// Binary represents a binary operation: left op right
// Examples: 2 + 3, x * y, a == b, p && q
//
// DESIGN CHOICE: Single node type for all binary operators, including the
// logical ones. The operator token distinguishes them, and they all lower
// through the same evaluate-right-then-left path in the generator, so a
// separate logical node would buy nothing here.
type Binary struct {
	exprType
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (b *Binary) Pos() lexer.Position { return b.Left.Pos() }
func (b *Binary) Token() lexer.Token  { return b.Operator }
func (b *Binary) exprNode()           {}

// Unary represents a prefix operation: -x, !flag
type Unary struct {
	exprType
	Operator lexer.Token
	Operand  Expr
}

func (u *Unary) Pos() lexer.Position { return u.Operator.Position }
func (u *Unary) Token() lexer.Token  { return u.Operator }
func (u *Unary) exprNode()           {}

// Literal represents a literal value: 42, 1.5, 'c', "hello", true.
//
// The decoded value comes straight off the token (int64, float64, rune,
// string or bool), and the type is set at construction time - literals are
// the one expression kind whose type the parser already knows.
type Literal struct {
	exprType
	Tok   lexer.Token
	Value interface{}
}

// NewLiteral builds a literal node with its type pre-resolved.
func NewLiteral(tok lexer.Token, value interface{}, t types.Type) *Literal {
	lit := &Literal{Tok: tok, Value: value}
	lit.SetType(t)
	return lit
}

func (l *Literal) Pos() lexer.Position { return l.Tok.Position }
func (l *Literal) Token() lexer.Token  { return l.Tok }
func (l *Literal) exprNode()           {}

// Variable represents a variable reference by name.
//
// Separate from Literal even though both are leaves: variables need name
// resolution against the symbol table, literals do not.
type Variable struct {
	exprType
	Tok  lexer.Token
	Name string
}

func (v *Variable) Pos() lexer.Position { return v.Tok.Position }
func (v *Variable) Token() lexer.Token  { return v.Tok }
func (v *Variable) exprNode()           {}

// Assign represents assignment to a bare variable: x = expr.
//
// DESIGN CHOICE: The target is a name, not an Expr. The language only
// allows assignment to variables; holding the name token directly means
// the checker and generator never have to pattern-match a target tree.
type Assign struct {
	exprType
	Tok   lexer.Token // the target name token
	Name  string
	Value Expr
}

func (a *Assign) Pos() lexer.Position { return a.Tok.Position }
func (a *Assign) Token() lexer.Token  { return a.Tok }
func (a *Assign) exprNode()           {}

// Call represents a function call: foo(1, 2, 3).
type Call struct {
	exprType
	Callee     Expr
	LeftParen  lexer.Token
	Args       []Expr
	RightParen lexer.Token
}

func (c *Call) Pos() lexer.Position { return c.Callee.Pos() }
func (c *Call) Token() lexer.Token  { return c.LeftParen }
func (c *Call) exprNode()           {}

// Array represents an array literal: [1, 2, 3].
// Accepted by the front end; the generator lowers it to a placeholder.
type Array struct {
	exprType
	LeftBracket  lexer.Token
	Elements     []Expr
	RightBracket lexer.Token
}

func (a *Array) Pos() lexer.Position { return a.LeftBracket.Position }
func (a *Array) Token() lexer.Token  { return a.LeftBracket }
func (a *Array) exprNode()           {}

// Index represents array indexing: arr[i].
type Index struct {
	exprType
	Object       Expr
	LeftBracket  lexer.Token
	Index        Expr
	RightBracket lexer.Token
}

func (i *Index) Pos() lexer.Position { return i.Object.Pos() }
func (i *Index) Token() lexer.Token  { return i.LeftBracket }
func (i *Index) exprNode()           {}

// IncDec represents a postfix increment or decrement: i++, i--.
// The operator token distinguishes the two.
type IncDec struct {
	exprType
	Operator lexer.Token
	Operand  Expr
}

func (i *IncDec) Pos() lexer.Position { return i.Operand.Pos() }
func (i *IncDec) Token() lexer.Token  { return i.Operator }
func (i *IncDec) exprNode()           {}

// Interp represents an interpolated string: $"total {1+2}\n".
//
// Parts alternate literal string segments and embedded expressions in
// source order; the parser produced each part by re-lexing the raw literal
// body, so by the time the checker sees this node it is ordinary
// expressions all the way down.
type Interp struct {
	exprType
	Tok   lexer.Token
	Parts []Expr
}

func (i *Interp) Pos() lexer.Position { return i.Tok.Position }
func (i *Interp) Token() lexer.Token  { return i.Tok }
func (i *Interp) exprNode()           {}
