// Package ast defines the Abstract Syntax Tree node types for the Sable
// compiler.
//
// DESIGN PHILOSOPHY:
// The AST is a tree representation of the program's structure. It:
// 1. Preserves program semantics (but not all syntax details)
// 2. Is easy to traverse and analyze
// 3. Maintains position information for error reporting
//
// KEY DESIGN CHOICES:
// - Expr and Stmt are closed interface sums with marker methods; every
//   consumer traverses them with an exhaustive type switch. A missing case
//   is caught by the default branch at the traversal site instead of being
//   spread across a wide visitor interface.
// - Every expression node carries its originating token (for diagnostics)
//   and a Type field that the checker fills in. The generator reads the
//   memoized Type instead of re-deriving it.
// - Nodes are pointers: they are built once by the parser and then
//   annotated in place by later phases.
package ast

import (
	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/semantic/types"
)

// Node is the base interface for all AST nodes.
// Every node reports its position for error messages.
type Node interface {
	// Pos returns the starting position of this node in the source.
	Pos() lexer.Position
}

// Expr is the interface for all expression nodes.
//
// An expression produces a value: 2 + 3, foo(), x, "hello".
// Separate from Stmt for type safety - a statement cannot appear where an
// expression is expected.
type Expr interface {
	Node

	// Token returns the token the expression originates from, used to
	// position diagnostics about the expression.
	Token() lexer.Token

	// ResolvedType returns the type the checker annotated this expression
	// with, or nil if the expression has not been checked (or failed to
	// check).
	ResolvedType() types.Type

	// SetType records the checker's verdict on the node.
	SetType(t types.Type)

	exprNode() // Marker method to prevent accidental interface satisfaction
}

// Stmt is the interface for all statement nodes.
//
// A statement performs an action and has no value: var x : int, return x,
// if ... => ...
type Stmt interface {
	Node
	stmtNode() // Marker method
}

// Module is the root of the AST: the ordered top-level statements of one
// source file.
//
// DESIGN CHOICE: The root is a Module (one file), not a Program, because a
// compilation processes exactly one file; multi-file programs are linked
// from separately produced objects.
type Module struct {
	// Filename is the name of the source file.
	Filename string

	// Statements are the top-level statements in source order. Appended to
	// during parsing, immutable afterwards.
	Statements []Stmt
}

// exprType is embedded by every expression node to carry the memoized
// checker result. It keeps the SetType/ResolvedType plumbing in one place.
type exprType struct {
	typ types.Type
}

func (e *exprType) ResolvedType() types.Type { return e.typ }
func (e *exprType) SetType(t types.Type)     { e.typ = t }
