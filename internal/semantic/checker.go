// Package semantic implements the type checker for the Sable compiler.
//
// DESIGN PHILOSOPHY:
// One full walk of the AST, after parsing and before code generation.
// The checker does three things at once:
// 1. Resolves every name against the shared symbol table
// 2. Annotates every expression node with its resolved type
// 3. Validates statement rules (conditions are bool, returns match, ...)
//
// ERROR HANDLING STRATEGY:
// Accumulate and continue. A type error never stops the pass; the failing
// expression simply yields no type, which short-circuits only the checks
// that directly depend on it. The caller gets every independent error in
// one run and aborts compilation only after the walk completes.
package semantic

import (
	"fmt"

	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/parser/ast"
	"github.com/sable-lang/sable/internal/semantic/types"
	"github.com/sable-lang/sable/internal/symtab"
)

// Checker performs type checking over a module.
//
// It shares the symbol table the parser populated: function signatures
// are already registered, and re-declaring them here is deliberately
// idempotent (only the type field updates). Variables, by contrast, are
// first declared here - declaration order inside a function is a
// semantic matter, not a syntactic one.
type Checker struct {
	// table is the symbol table shared across the pipeline.
	table *symtab.Table

	// errors accumulates all type errors found during the walk.
	errors []error

	// returnType is the declared return type of the function being
	// checked; Void at top level. Threaded through the statement walk so
	// return statements can be validated without searching upward.
	returnType types.Type
}

// NewChecker creates a checker over the given symbol table.
func NewChecker(table *symtab.Table) *Checker {
	return &Checker{
		table:      table,
		errors:     make([]error, 0),
		returnType: types.Void,
	}
}

// Check walks the whole module. Returns true if no type errors were
// found; the individual errors are available via Errors.
func (c *Checker) Check(module *ast.Module) bool {
	for _, stmt := range module.Statements {
		c.checkStmt(stmt)
	}
	return len(c.errors) == 0
}

// Errors returns all accumulated type errors.
func (c *Checker) Errors() []error {
	return c.errors
}

// checkStmt validates one statement and recurses into its children.
func (c *Checker) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		c.checkExpr(s.Expression)

	case *ast.VarDecl:
		c.checkVarDecl(s)

	case *ast.FuncDecl:
		c.checkFuncDecl(s)

	case *ast.Return:
		c.checkReturn(s)

	case *ast.Block:
		c.table.PushScope()
		for _, inner := range s.Statements {
			c.checkStmt(inner)
		}
		c.table.PopScope()

	case *ast.If:
		c.checkCondition(s.Condition, "if")
		c.checkStmt(s.Then)
		if s.Else != nil {
			c.checkStmt(s.Else)
		}

	case *ast.While:
		c.checkCondition(s.Condition, "while")
		c.checkStmt(s.Body)

	case *ast.For:
		// The loop header gets its own scope so an initializer variable
		// is visible in the condition, post expression and body but not
		// after the loop.
		c.table.PushScope()
		if s.Init != nil {
			c.checkStmt(s.Init)
		}
		if s.Condition != nil {
			c.checkCondition(s.Condition, "for")
		}
		if s.Post != nil {
			c.checkExpr(s.Post)
		}
		c.checkStmt(s.Body)
		c.table.PopScope()

	case *ast.Import:
		// Imports resolve at link time; nothing to check here.

	default:
		panic(fmt.Sprintf("internal compiler error: unhandled statement %T", stmt))
	}
}

// checkVarDecl validates an initializer against the declared type, then
// declares the variable in the current scope.
func (c *Checker) checkVarDecl(s *ast.VarDecl) {
	if s.Initializer != nil {
		valueType := c.checkExpr(s.Initializer)
		if valueType != nil && !valueType.Equals(s.DeclType) {
			c.errorAt(s.Name, fmt.Sprintf(
				"type mismatch: cannot initialize '%s' of type %s with a value of type %s",
				s.Name.Lexeme, s.DeclType.String(), valueType.String()))
		}
	}

	c.table.Define(s.Name.Lexeme, s.Name, s.DeclType, symtab.SymbolLocal)
}

// checkFuncDecl checks a function body in a fresh function scope with
// the parameters declared and the return type threaded through.
func (c *Checker) checkFuncDecl(s *ast.FuncDecl) {
	paramTypes := make([]types.Type, len(s.Params))
	for i, param := range s.Params {
		paramTypes[i] = param.Type
	}
	c.table.Define(s.Name.Lexeme, s.Name,
		types.NewFunction(paramTypes, s.ReturnType), symtab.SymbolGlobal)

	c.table.PushFunctionScope()
	for _, param := range s.Params {
		c.table.Define(param.Name.Lexeme, param.Name, param.Type, symtab.SymbolParam)
	}

	enclosing := c.returnType
	c.returnType = s.ReturnType
	for _, stmt := range s.Body {
		c.checkStmt(stmt)
	}
	c.returnType = enclosing

	c.table.PopScope()
}

// checkReturn validates the returned value (or its absence) against the
// enclosing function's declared return type.
func (c *Checker) checkReturn(s *ast.Return) {
	valueType := types.Type(types.Void)
	if s.Value != nil {
		valueType = c.checkExpr(s.Value)
		if valueType == nil {
			return // the value already failed; one error is enough
		}
	}

	if !valueType.Equals(c.returnType) {
		c.errorAt(s.Keyword, fmt.Sprintf(
			"return type mismatch: function returns %s, got %s",
			c.returnType.String(), valueType.String()))
	}
}

// checkCondition requires a bool-typed condition expression.
func (c *Checker) checkCondition(cond ast.Expr, context string) {
	condType := c.checkExpr(cond)
	if condType != nil && !condType.Equals(types.Bool) {
		c.errorAt(cond.Token(), fmt.Sprintf(
			"%s condition must be bool, got %s", context, condType.String()))
	}
}

// errorAt records a type error positioned at the given token.
func (c *Checker) errorAt(tok lexer.Token, message string) {
	c.errors = append(c.errors,
		fmt.Errorf("%s: %s", tok.Position.String(), message))
}
