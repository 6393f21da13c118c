package semantic

import (
	"fmt"

	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/parser/ast"
	"github.com/sable-lang/sable/internal/semantic/types"
)

// checkExpr resolves the type of one expression, memoizes it on the node
// and returns it. A nil result means the expression (or a sub-expression)
// failed to check; the error has already been recorded, and callers
// short-circuit only the checks that depend on the missing type.
func (c *Checker) checkExpr(expr ast.Expr) types.Type {
	switch e := expr.(type) {
	case *ast.Literal:
		// Literals carry their type from construction.
		return e.ResolvedType()

	case *ast.Variable:
		return c.checkVariable(e)

	case *ast.Assign:
		return c.checkAssign(e)

	case *ast.Binary:
		return c.checkBinary(e)

	case *ast.Unary:
		return c.checkUnary(e)

	case *ast.IncDec:
		return c.checkIncDec(e)

	case *ast.Call:
		return c.checkCall(e)

	case *ast.Array:
		return c.checkArray(e)

	case *ast.Index:
		return c.checkIndex(e)

	case *ast.Interp:
		return c.checkInterp(e)

	default:
		panic(fmt.Sprintf("internal compiler error: unhandled expression %T", expr))
	}
}

func (c *Checker) checkVariable(e *ast.Variable) types.Type {
	sym := c.table.Lookup(e.Name)
	if sym == nil {
		c.errorAt(e.Tok, fmt.Sprintf("undefined variable '%s'", e.Name))
		return nil
	}
	e.SetType(sym.Type)
	return sym.Type
}

func (c *Checker) checkAssign(e *ast.Assign) types.Type {
	valueType := c.checkExpr(e.Value)

	sym := c.table.Lookup(e.Name)
	if sym == nil {
		c.errorAt(e.Tok, fmt.Sprintf("undefined variable '%s'", e.Name))
		return nil
	}

	if valueType != nil && !valueType.Equals(sym.Type) {
		c.errorAt(e.Tok, fmt.Sprintf(
			"type mismatch: cannot assign %s to '%s' of type %s",
			valueType.String(), e.Name, sym.Type.String()))
	}

	// An assignment evaluates to the target's declared type either way;
	// reporting nil here would only produce follow-on noise.
	e.SetType(sym.Type)
	return sym.Type
}

// checkBinary applies the per-operator rules. Operand types must always
// be structurally equal; what the pair may be depends on the operator.
func (c *Checker) checkBinary(e *ast.Binary) types.Type {
	leftType := c.checkExpr(e.Left)
	rightType := c.checkExpr(e.Right)
	if leftType == nil || rightType == nil {
		return nil
	}

	if !leftType.Equals(rightType) {
		c.errorAt(e.Operator, fmt.Sprintf(
			"operator '%s' requires matching operand types, got %s and %s",
			e.Operator.Lexeme, leftType.String(), rightType.String()))
		return nil
	}

	switch e.Operator.Type {
	case lexer.TokenPlus:
		// '+' doubles as string concatenation.
		if types.IsNumeric(leftType) || leftType.Equals(types.String) {
			e.SetType(leftType)
			return leftType
		}

	case lexer.TokenMinus, lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent:
		if types.IsNumeric(leftType) {
			e.SetType(leftType)
			return leftType
		}

	case lexer.TokenEqual, lexer.TokenNotEqual, lexer.TokenLess,
		lexer.TokenLessEqual, lexer.TokenGreater, lexer.TokenGreaterEqual:
		e.SetType(types.Bool)
		return types.Bool

	case lexer.TokenAnd, lexer.TokenOr:
		if leftType.Equals(types.Bool) {
			e.SetType(types.Bool)
			return types.Bool
		}

	default:
		panic(fmt.Sprintf("internal compiler error: unhandled binary operator %s",
			e.Operator.Type))
	}

	c.errorAt(e.Operator, fmt.Sprintf(
		"operator '%s' cannot be applied to %s operands",
		e.Operator.Lexeme, leftType.String()))
	return nil
}

func (c *Checker) checkUnary(e *ast.Unary) types.Type {
	operandType := c.checkExpr(e.Operand)
	if operandType == nil {
		return nil
	}

	switch e.Operator.Type {
	case lexer.TokenMinus:
		if !types.IsNumeric(operandType) {
			c.errorAt(e.Operator, fmt.Sprintf(
				"unary '-' requires a numeric operand, got %s", operandType.String()))
			return nil
		}
		e.SetType(operandType)
		return operandType

	case lexer.TokenNot:
		if !operandType.Equals(types.Bool) {
			c.errorAt(e.Operator, fmt.Sprintf(
				"unary '!' requires a bool operand, got %s", operandType.String()))
			return nil
		}
		e.SetType(types.Bool)
		return types.Bool

	default:
		panic(fmt.Sprintf("internal compiler error: unhandled unary operator %s",
			e.Operator.Type))
	}
}

func (c *Checker) checkIncDec(e *ast.IncDec) types.Type {
	operandType := c.checkExpr(e.Operand)
	if operandType == nil {
		return nil
	}

	if !types.IsNumeric(operandType) {
		c.errorAt(e.Operator, fmt.Sprintf(
			"'%s' requires a numeric operand, got %s",
			e.Operator.Lexeme, operandType.String()))
		return nil
	}

	e.SetType(operandType)
	return operandType
}

// checkCall validates callee, arity and per-argument types. The built-in
// print is special-cased: it is not in the symbol table and accepts
// exactly one argument of any printable primitive type.
func (c *Checker) checkCall(e *ast.Call) types.Type {
	if callee, ok := e.Callee.(*ast.Variable); ok && callee.Name == "print" {
		return c.checkPrint(e)
	}

	calleeType := c.checkExpr(e.Callee)
	if calleeType == nil {
		return nil
	}

	fnType, ok := calleeType.(*types.FunctionType)
	if !ok {
		c.errorAt(e.Callee.Token(), fmt.Sprintf(
			"cannot call a value of type %s", calleeType.String()))
		return nil
	}

	if len(e.Args) != len(fnType.Parameters) {
		c.errorAt(e.LeftParen, fmt.Sprintf(
			"wrong number of arguments: expected %d, got %d",
			len(fnType.Parameters), len(e.Args)))
		return nil
	}

	for i, arg := range e.Args {
		argType := c.checkExpr(arg)
		if argType == nil {
			continue
		}
		if !argType.Equals(fnType.Parameters[i]) {
			c.errorAt(arg.Token(), fmt.Sprintf(
				"argument %d type mismatch: expected %s, got %s",
				i+1, fnType.Parameters[i].String(), argType.String()))
		}
	}

	e.SetType(fnType.ReturnType)
	return fnType.ReturnType
}

func (c *Checker) checkPrint(e *ast.Call) types.Type {
	if len(e.Args) != 1 {
		c.errorAt(e.LeftParen, fmt.Sprintf(
			"print takes exactly one argument, got %d", len(e.Args)))
		return nil
	}

	argType := c.checkExpr(e.Args[0])
	if argType != nil && !types.IsPrintable(argType) {
		c.errorAt(e.Args[0].Token(), fmt.Sprintf(
			"cannot print a value of type %s", argType.String()))
	}

	e.SetType(types.Void)
	return types.Void
}

// checkArray types an array literal from its first element; all elements
// must agree.
func (c *Checker) checkArray(e *ast.Array) types.Type {
	if len(e.Elements) == 0 {
		c.errorAt(e.LeftBracket, "cannot infer the type of an empty array literal")
		return nil
	}

	elementType := c.checkExpr(e.Elements[0])
	if elementType == nil {
		return nil
	}

	for _, element := range e.Elements[1:] {
		t := c.checkExpr(element)
		if t != nil && !t.Equals(elementType) {
			c.errorAt(element.Token(), fmt.Sprintf(
				"array element type mismatch: expected %s, got %s",
				elementType.String(), t.String()))
		}
	}

	arrayType := types.NewArray(elementType)
	e.SetType(arrayType)
	return arrayType
}

func (c *Checker) checkIndex(e *ast.Index) types.Type {
	objectType := c.checkExpr(e.Object)
	indexType := c.checkExpr(e.Index)

	if indexType != nil && !indexType.Equals(types.Int) {
		c.errorAt(e.Index.Token(), fmt.Sprintf(
			"array index must be int, got %s", indexType.String()))
	}

	if objectType == nil {
		return nil
	}
	arrayType, ok := objectType.(*types.ArrayType)
	if !ok {
		c.errorAt(e.LeftBracket, fmt.Sprintf(
			"cannot index a value of type %s", objectType.String()))
		return nil
	}

	e.SetType(arrayType.ElementType)
	return arrayType.ElementType
}

// checkInterp requires every part of an interpolated string to be
// printable; the literal as a whole is a string.
func (c *Checker) checkInterp(e *ast.Interp) types.Type {
	for _, part := range e.Parts {
		partType := c.checkExpr(part)
		if partType != nil && !types.IsPrintable(partType) {
			c.errorAt(part.Token(), fmt.Sprintf(
				"cannot interpolate a value of type %s", partType.String()))
		}
	}

	e.SetType(types.String)
	return types.String
}
