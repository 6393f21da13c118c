// Package parser implements a recursive descent parser for the Sable
// compiler.
//
// PARSING STRATEGY:
// Pure recursive descent, for statements and expressions alike. The
// expression grammar is encoded structurally: one function per precedence
// level, each calling the next-tighter level for its operands. The call
// graph IS the precedence table, which keeps the grammar legible and easy
// to line up against test scenarios.
//
// ERROR HANDLING STRATEGY:
// - Report errors but continue parsing (find multiple errors in one pass)
// - Use panic/recover for error recovery at statement boundaries
// - Panic mode suppresses cascading diagnostics from one root cause
//
// The parser also begins symbol table population: function signatures are
// registered before their bodies are parsed, so bodies can call their own
// function recursively and later code can call earlier functions without
// a separate declaration pass.
package parser

import (
	"fmt"

	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/parser/ast"
	"github.com/sable-lang/sable/internal/semantic/types"
	"github.com/sable-lang/sable/internal/symtab"
)

// Parser converts a stream of tokens into an Abstract Syntax Tree.
type Parser struct {
	// lexer is the source of tokens.
	lexer *lexer.Lexer

	// table is the symbol table shared with the later phases. The parser
	// only registers function signatures in it; nested interpolation
	// parsers receive the same table so placeholder expressions resolve
	// against the enclosing scopes.
	table *symtab.Table

	// current is the token being examined.
	current lexer.Token

	// previous is the last token consumed (useful for error messages).
	previous lexer.Token

	// errors accumulates all parsing errors. Accumulating rather than
	// stopping at the first error gives the developer every independent
	// error in one run.
	errors []error

	// panicMode is set after an error until the next synchronization
	// point; while set, further diagnostics are suppressed.
	panicMode bool
}

// New creates a new parser reading from l and registering signatures in
// table.
func New(l *lexer.Lexer, table *symtab.Table) *Parser {
	p := &Parser{
		lexer:  l,
		table:  table,
		errors: make([]error, 0),
	}
	// Prime the parser by reading the first token.
	p.advance()
	return p
}

// Parse parses a complete module.
//
// Returns the module and all errors encountered. The module is returned
// even when errors were recorded: statements that parsed cleanly are
// present, so diagnostics-only consumers still get a tree. Callers decide
// failure by checking the error slice.
func (p *Parser) Parse(filename string) (*ast.Module, []error) {
	module := &ast.Module{
		Filename:   filename,
		Statements: make([]ast.Stmt, 0),
	}

	for !p.isAtEnd() {
		// Blank lines, stray terminators and layout tokens left over from
		// recovery are not statements.
		if p.match(lexer.TokenNewline, lexer.TokenSemicolon,
			lexer.TokenIndent, lexer.TokenDedent) {
			continue
		}

		if stmt := p.declaration(); stmt != nil {
			module.Statements = append(module.Statements, stmt)
		}
	}

	return module, p.errors
}

// declaration parses one statement with error recovery: a panic raised
// anywhere below is caught here, the parser resynchronizes, and parsing
// resumes with the next statement.
func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			p.synchronize()
			stmt = nil
		}
	}()

	return p.parseStatement()
}

// parseStatement dispatches on the statement-introducing token.
//
// GRAMMAR:
//
//	statement = varDecl | funcDecl | return | if | while | for
//	          | import | exprStmt
func (p *Parser) parseStatement() ast.Stmt {
	switch {
	case p.match(lexer.TokenVar):
		return p.parseVarDecl()
	case p.match(lexer.TokenFn):
		return p.parseFuncDecl()
	case p.match(lexer.TokenReturn):
		return p.parseReturn()
	case p.match(lexer.TokenIf):
		return p.parseIf()
	case p.match(lexer.TokenWhile):
		return p.parseWhile()
	case p.match(lexer.TokenFor):
		return p.parseFor()
	case p.match(lexer.TokenImport):
		return p.parseImport()
	default:
		return p.parseExprStmt()
	}
}

// parseVarDecl parses "var name : type [= value]" plus its terminator.
func (p *Parser) parseVarDecl() *ast.VarDecl {
	decl := p.parseVarDeclHeader()
	p.terminator()
	return decl
}

// parseVarDeclHeader parses a variable declaration without consuming the
// statement terminator, so for-loop headers can reuse it ("for var i ...;").
func (p *Parser) parseVarDeclHeader() *ast.VarDecl {
	keyword := p.previous

	if !p.check(lexer.TokenIdentifier) {
		p.error("expected variable name after 'var'")
		panic("invalid variable declaration")
	}
	name := p.current
	p.advance()

	p.consume(lexer.TokenColon, "expected ':' after variable name")
	declType := p.parseType()

	var initializer ast.Expr
	if p.match(lexer.TokenAssign) {
		initializer = p.parseExpression()
	}

	return &ast.VarDecl{
		Keyword:     keyword,
		Name:        name,
		DeclType:    declType,
		Initializer: initializer,
	}
}

// parseFuncDecl parses a function declaration:
//
//	fn name(a : int, b : int) : int => body
//
// The signature is registered in the symbol table BEFORE the body is
// parsed, which is what makes recursive and forward calls work without a
// separate declaration pass.
func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	keyword := p.previous

	if !p.check(lexer.TokenIdentifier) {
		p.error("expected function name after 'fn'")
		panic("invalid function declaration")
	}
	name := p.current
	p.advance()

	p.consume(lexer.TokenLeftParen, "expected '(' after function name")

	params := make([]ast.Param, 0)
	for !p.check(lexer.TokenRightParen) && !p.isAtEnd() {
		if !p.check(lexer.TokenIdentifier) {
			p.error("expected parameter name")
			panic("invalid parameter list")
		}
		paramName := p.current
		p.advance()

		p.consume(lexer.TokenColon, "expected ':' after parameter name")
		paramType := p.parseType()

		params = append(params, ast.Param{Name: paramName, Type: paramType})

		if !p.match(lexer.TokenComma) {
			break
		}
	}
	p.consume(lexer.TokenRightParen, "expected ')' after parameters")

	returnType := types.Type(types.Void)
	if p.match(lexer.TokenColon) {
		returnType = p.parseType()
	}

	paramTypes := make([]types.Type, len(params))
	for i, param := range params {
		paramTypes[i] = param.Type
	}
	p.table.Define(name.Lexeme, name,
		types.NewFunction(paramTypes, returnType), symtab.SymbolGlobal)

	p.consume(lexer.TokenFatArrow, "expected '=>' before function body")
	body := p.parseBody()

	return &ast.FuncDecl{
		Keyword:    keyword,
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Body:       bodyStatements(body),
	}
}

// bodyStatements flattens a parsed body into a statement list.
func bodyStatements(body ast.Stmt) []ast.Stmt {
	if block, ok := body.(*ast.Block); ok {
		return block.Statements
	}
	if body == nil {
		return nil
	}
	return []ast.Stmt{body}
}

// parseReturn parses "return [value]".
func (p *Parser) parseReturn() *ast.Return {
	keyword := p.previous

	var value ast.Expr
	if !p.check(lexer.TokenNewline) && !p.check(lexer.TokenSemicolon) &&
		!p.check(lexer.TokenDedent) && !p.isAtEnd() {
		value = p.parseExpression()
	}
	p.terminator()

	return &ast.Return{Keyword: keyword, Value: value}
}

// parseIf parses "if condition => body [else => body]".
func (p *Parser) parseIf() *ast.If {
	keyword := p.previous

	condition := p.parseExpression()
	p.consume(lexer.TokenFatArrow, "expected '=>' after if condition")
	then := p.parseBody()

	var elseBranch ast.Stmt
	if p.match(lexer.TokenElse) {
		p.consume(lexer.TokenFatArrow, "expected '=>' after 'else'")
		elseBranch = p.parseBody()
	}

	return &ast.If{
		Keyword:   keyword,
		Condition: condition,
		Then:      then,
		Else:      elseBranch,
	}
}

// parseWhile parses "while condition => body".
func (p *Parser) parseWhile() *ast.While {
	keyword := p.previous

	condition := p.parseExpression()
	p.consume(lexer.TokenFatArrow, "expected '=>' after while condition")
	body := p.parseBody()

	return &ast.While{Keyword: keyword, Condition: condition, Body: body}
}

// parseFor parses "for [init]; [condition]; [post] => body".
// All three header slots may be empty; the initializer may be a variable
// declaration or an expression.
func (p *Parser) parseFor() *ast.For {
	keyword := p.previous

	var init ast.Stmt
	if p.match(lexer.TokenSemicolon) {
		// no initializer
	} else {
		if p.match(lexer.TokenVar) {
			init = p.parseVarDeclHeader()
		} else {
			init = &ast.ExprStmt{Expression: p.parseExpression()}
		}
		p.consume(lexer.TokenSemicolon, "expected ';' after for initializer")
	}

	var condition ast.Expr
	if !p.check(lexer.TokenSemicolon) {
		condition = p.parseExpression()
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after for condition")

	var post ast.Expr
	if !p.check(lexer.TokenFatArrow) {
		post = p.parseExpression()
	}
	p.consume(lexer.TokenFatArrow, "expected '=>' before for body")

	body := p.parseBody()

	return &ast.For{
		Keyword:   keyword,
		Init:      init,
		Condition: condition,
		Post:      post,
		Body:      body,
	}
}

// parseImport parses `import "name"`.
func (p *Parser) parseImport() *ast.Import {
	keyword := p.previous

	if !p.check(lexer.TokenString) {
		p.error("expected module name string after 'import'")
		panic("invalid import")
	}
	path := p.current
	p.advance()
	p.terminator()

	return &ast.Import{Keyword: keyword, Path: path}
}

// parseExprStmt parses a bare expression used as a statement.
func (p *Parser) parseExprStmt() *ast.ExprStmt {
	expr := p.parseExpression()
	p.terminator()
	return &ast.ExprStmt{Expression: expr}
}

// parseBody parses the body after '=>': either an indented block on the
// following lines, or a single statement on the same line.
//
// TOLERANCE: if a single-statement body is followed by an unexpected
// Indent, the statement and the indented block are merged into one
// two-element block. This accepts the formatting
//
//	if ready => start()
//	    log()
//
// instead of reporting a spurious indentation error.
func (p *Parser) parseBody() ast.Stmt {
	if p.match(lexer.TokenNewline) {
		p.consume(lexer.TokenIndent, "expected an indented block")
		return p.parseBlock()
	}

	stmt := p.parseStatement()

	if p.match(lexer.TokenIndent) {
		block := p.parseBlock()
		return &ast.Block{Statements: []ast.Stmt{stmt, block}}
	}
	return stmt
}

// parseBlock parses statements until the matching Dedent (or EOF, for
// sources ending mid-block). The opening Indent is already consumed.
func (p *Parser) parseBlock() *ast.Block {
	statements := make([]ast.Stmt, 0)

	for !p.check(lexer.TokenDedent) && !p.isAtEnd() {
		if p.match(lexer.TokenNewline, lexer.TokenSemicolon) {
			continue
		}
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	p.match(lexer.TokenDedent)

	return &ast.Block{Statements: statements}
}

// parseType parses a type name with optional array suffixes: int, int[],
// int[][].
func (p *Parser) parseType() types.Type {
	if !p.check(lexer.TokenIdentifier) {
		p.error("expected type name")
		panic("invalid type")
	}
	name := p.current.Lexeme
	p.advance()

	var t types.Type
	switch name {
	case "int":
		t = types.Int
	case "long":
		t = types.Long
	case "double":
		t = types.Double
	case "char":
		t = types.Char
	case "string":
		t = types.String
	case "bool":
		t = types.Bool
	case "void":
		t = types.Void
	default:
		p.error(fmt.Sprintf("unknown type '%s'", name))
		panic("invalid type")
	}

	for p.match(lexer.TokenLeftBracket) {
		p.consume(lexer.TokenRightBracket, "expected ']' in array type")
		t = types.NewArray(t)
	}
	return t
}

// Expression parsing.
//
// One function per precedence level, loosest first; each level parses its
// operands at the next-tighter level:
//
//	assignment -> or -> and -> equality -> comparison -> term -> factor
//	           -> unary -> postfix -> primary

// parseExpression parses an expression at the loosest precedence.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseAssignment()
}

// parseAssignment parses "target = value" (right-associative) or passes
// through. The target must be a bare variable; anything else is a syntax
// error, but the right-hand value is still returned so the enclosing
// parse can continue with a best-effort expression.
func (p *Parser) parseAssignment() ast.Expr {
	expr := p.parseOr()

	if p.match(lexer.TokenAssign) {
		value := p.parseAssignment()

		if target, ok := expr.(*ast.Variable); ok {
			return &ast.Assign{Tok: target.Tok, Name: target.Name, Value: value}
		}

		p.error("invalid assignment target")
		p.panicMode = false // recoverable in place; keep later diagnostics
		return value
	}

	return expr
}

// parseOr parses "a || b" (left-associative).
func (p *Parser) parseOr() ast.Expr {
	expr := p.parseAnd()

	for p.check(lexer.TokenOr) {
		operator := p.current
		p.advance()
		right := p.parseAnd()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

// parseAnd parses "a && b".
func (p *Parser) parseAnd() ast.Expr {
	expr := p.parseEquality()

	for p.check(lexer.TokenAnd) {
		operator := p.current
		p.advance()
		right := p.parseEquality()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

// parseEquality parses "a == b" and "a != b".
func (p *Parser) parseEquality() ast.Expr {
	expr := p.parseComparison()

	for p.check(lexer.TokenEqual) || p.check(lexer.TokenNotEqual) {
		operator := p.current
		p.advance()
		right := p.parseComparison()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

// parseComparison parses "<", "<=", ">", ">=".
func (p *Parser) parseComparison() ast.Expr {
	expr := p.parseTerm()

	for p.check(lexer.TokenLess) || p.check(lexer.TokenLessEqual) ||
		p.check(lexer.TokenGreater) || p.check(lexer.TokenGreaterEqual) {
		operator := p.current
		p.advance()
		right := p.parseTerm()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

// parseTerm parses "+" and "-".
func (p *Parser) parseTerm() ast.Expr {
	expr := p.parseFactor()

	for p.check(lexer.TokenPlus) || p.check(lexer.TokenMinus) {
		operator := p.current
		p.advance()
		right := p.parseFactor()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

// parseFactor parses "*", "/" and "%".
func (p *Parser) parseFactor() ast.Expr {
	expr := p.parseUnary()

	for p.check(lexer.TokenStar) || p.check(lexer.TokenSlash) ||
		p.check(lexer.TokenPercent) {
		operator := p.current
		p.advance()
		right := p.parseUnary()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

// parseUnary parses prefix "!" and "-".
func (p *Parser) parseUnary() ast.Expr {
	if p.check(lexer.TokenNot) || p.check(lexer.TokenMinus) {
		operator := p.current
		p.advance()
		operand := p.parseUnary()
		return &ast.Unary{Operator: operator, Operand: operand}
	}
	return p.parsePostfix()
}

// parsePostfix parses call, index and postfix increment/decrement
// suffixes, which all bind tighter than any prefix or binary operator.
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()

	for {
		switch {
		case p.check(lexer.TokenLeftParen):
			leftParen := p.current
			p.advance()

			args := make([]ast.Expr, 0)
			for !p.check(lexer.TokenRightParen) && !p.isAtEnd() {
				args = append(args, p.parseExpression())
				if !p.match(lexer.TokenComma) {
					break
				}
			}
			rightParen := p.current
			p.consume(lexer.TokenRightParen, "expected ')' after arguments")

			expr = &ast.Call{
				Callee:     expr,
				LeftParen:  leftParen,
				Args:       args,
				RightParen: rightParen,
			}

		case p.check(lexer.TokenLeftBracket):
			leftBracket := p.current
			p.advance()
			index := p.parseExpression()
			rightBracket := p.current
			p.consume(lexer.TokenRightBracket, "expected ']' after index")

			expr = &ast.Index{
				Object:       expr,
				LeftBracket:  leftBracket,
				Index:        index,
				RightBracket: rightBracket,
			}

		case p.check(lexer.TokenPlusPlus) || p.check(lexer.TokenMinusMinus):
			operator := p.current
			p.advance()
			expr = &ast.IncDec{Operator: operator, Operand: expr}

		default:
			return expr
		}
	}
}

// parsePrimary parses the leaves of the grammar: literals, variables,
// grouping, array literals and interpolated strings.
func (p *Parser) parsePrimary() ast.Expr {
	switch {
	case p.match(lexer.TokenInt):
		return ast.NewLiteral(p.previous, p.previous.Literal, types.Int)
	case p.match(lexer.TokenLong):
		return ast.NewLiteral(p.previous, p.previous.Literal, types.Long)
	case p.match(lexer.TokenDouble):
		return ast.NewLiteral(p.previous, p.previous.Literal, types.Double)
	case p.match(lexer.TokenChar):
		return ast.NewLiteral(p.previous, p.previous.Literal, types.Char)
	case p.match(lexer.TokenString):
		return ast.NewLiteral(p.previous, p.previous.Literal, types.String)
	case p.match(lexer.TokenTrue), p.match(lexer.TokenFalse):
		return ast.NewLiteral(p.previous, p.previous.Literal, types.Bool)
	case p.match(lexer.TokenNil):
		return ast.NewLiteral(p.previous, nil, types.Nil)

	case p.match(lexer.TokenInterpString):
		return p.parseInterp()

	case p.match(lexer.TokenIdentifier):
		return &ast.Variable{Tok: p.previous, Name: p.previous.Lexeme}

	case p.match(lexer.TokenLeftParen):
		expr := p.parseExpression()
		p.consume(lexer.TokenRightParen, "expected ')' after expression")
		return expr

	case p.check(lexer.TokenLeftBracket):
		leftBracket := p.current
		p.advance()

		elements := make([]ast.Expr, 0)
		for !p.check(lexer.TokenRightBracket) && !p.isAtEnd() {
			elements = append(elements, p.parseExpression())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
		rightBracket := p.current
		p.consume(lexer.TokenRightBracket, "expected ']' after array elements")

		return &ast.Array{
			LeftBracket:  leftBracket,
			Elements:     elements,
			RightBracket: rightBracket,
		}

	default:
		p.error(fmt.Sprintf("unexpected token %s", p.current.Type))
		panic("invalid expression")
	}
}

// parseInterp lowers an interpolated string literal. The raw body was
// captured verbatim by the lexer; here it is split into literal runs and
// {...} placeholders. Each placeholder is parsed by a fresh nested
// Lexer+Parser over just its substring, sharing this parser's symbol
// table; the resulting expressions are spliced between the literal runs
// in source order.
func (p *Parser) parseInterp() ast.Expr {
	tok := p.previous
	raw, _ := tok.Literal.(string)

	interp := &ast.Interp{Tok: tok, Parts: make([]ast.Expr, 0)}

	emitLiteral := func(segment string) {
		if segment == "" {
			return
		}
		decoded, ok := lexer.DecodeText(segment)
		if !ok {
			p.error("invalid escape sequence in interpolated string")
			decoded = ""
		}
		interp.Parts = append(interp.Parts,
			ast.NewLiteral(tok, decoded, types.String))
	}

	start := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] != '{' {
			continue
		}

		emitLiteral(raw[start:i])

		// Find the matching close brace; nested braces can appear when a
		// placeholder itself contains an interpolated string.
		depth := 1
		j := i + 1
		for j < len(raw) && depth > 0 {
			switch raw[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
			j++
		}

		if depth != 0 {
			p.error("unterminated '{' in interpolated string")
			p.panicMode = false
			interp.Parts = append(interp.Parts,
				ast.NewLiteral(tok, "", types.String))
			return interp
		}

		expr := p.parsePlaceholder(raw[i+1 : j-1])
		interp.Parts = append(interp.Parts, expr)

		i = j - 1
		start = j
	}
	emitLiteral(raw[start:])

	return interp
}

// parsePlaceholder parses one {...} substring with an independent nested
// Lexer+Parser. A malformed placeholder reports its errors and yields an
// empty string literal so the outer parse can continue.
func (p *Parser) parsePlaceholder(source string) ast.Expr {
	sub := New(lexer.New(source, p.previous.Position.Filename), p.table)
	expr, errs := sub.parseWholeExpression()
	p.errors = append(p.errors, errs...)

	if expr == nil {
		return ast.NewLiteral(p.previous, "", types.String)
	}
	return expr
}

// parseWholeExpression parses the parser's entire input as one
// expression. Used only for interpolation placeholders.
func (p *Parser) parseWholeExpression() (expr ast.Expr, errs []error) {
	defer func() {
		if r := recover(); r != nil {
			expr = nil
			errs = p.errors
		}
	}()

	e := p.parseExpression()
	if !p.isAtEnd() && !p.check(lexer.TokenNewline) {
		p.error("unexpected text after interpolated expression")
	}
	if len(p.errors) > 0 {
		return nil, p.errors
	}
	return e, nil
}

// Parser helpers

// advance moves to the next token. A lexical error is recorded once and
// its Invalid token becomes the current token, so the grammar code above
// reports and recovers at the point of use.
func (p *Parser) advance() {
	p.previous = p.current
	token, err := p.lexer.NextToken()
	if err != nil {
		p.lexError(err)
	}
	p.current = token
}

// check returns true if the current token has the given type.
func (p *Parser) check(tokenType lexer.TokenType) bool {
	return p.current.Type == tokenType
}

// match consumes the current token if it has one of the given types.
func (p *Parser) match(tokenTypes ...lexer.TokenType) bool {
	for _, tokenType := range tokenTypes {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past a required token or reports message and panics
// into recovery.
func (p *Parser) consume(tokenType lexer.TokenType, message string) {
	if p.check(tokenType) {
		p.advance()
		return
	}
	p.error(message)
	panic(message)
}

// terminator consumes a statement terminator: a newline or ';'. EOF and
// a block-closing Dedent also terminate the last statement of their
// region.
func (p *Parser) terminator() {
	if p.match(lexer.TokenNewline, lexer.TokenSemicolon) {
		return
	}
	if p.check(lexer.TokenEOF) || p.check(lexer.TokenDedent) {
		return
	}
	p.error("expected newline or ';' after statement")
	panic("missing statement terminator")
}

// isAtEnd returns true when the token stream is exhausted.
func (p *Parser) isAtEnd() bool {
	return p.current.Type == lexer.TokenEOF
}

// error records a parse error at the current token unless panic mode is
// already suppressing diagnostics.
func (p *Parser) error(message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	err := fmt.Errorf("%s: %s", p.current.Position.String(), message)
	p.errors = append(p.errors, err)
}

// lexError records an error the lexer already formatted with a position.
func (p *Parser) lexError(err error) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.errors = append(p.errors, err)
}

// synchronize discards tokens until a likely statement boundary, then
// clears panic mode so diagnostics resume.
//
// The lexer's indentation stack is collapsed to top level first: a
// malformed statement often leaves the lexer mid-block, and without the
// reset every following line would report false indentation errors.
func (p *Parser) synchronize() {
	p.panicMode = false
	p.lexer.ResetIndentation()

	for !p.isAtEnd() {
		if p.previous.Type == lexer.TokenSemicolon ||
			p.previous.Type == lexer.TokenNewline {
			return
		}

		// These tokens start new statements.
		switch p.current.Type {
		case lexer.TokenVar, lexer.TokenFn, lexer.TokenReturn,
			lexer.TokenIf, lexer.TokenWhile, lexer.TokenFor,
			lexer.TokenImport:
			return
		}

		p.advance()
	}
}
