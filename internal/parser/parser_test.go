package parser

import (
	"testing"

	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/parser/ast"
	"github.com/sable-lang/sable/internal/semantic/types"
	"github.com/sable-lang/sable/internal/symtab"
)

func parseSource(t *testing.T, source string) (*ast.Module, []error, *symtab.Table) {
	t.Helper()
	table := symtab.NewTable()
	p := New(lexer.New(source, "test.sbl"), table)
	module, errs := p.Parse("test.sbl")
	if module == nil {
		t.Fatal("Parse returned a nil module")
	}
	return module, errs, table
}

func parseClean(t *testing.T, source string) *ast.Module {
	t.Helper()
	module, errs, _ := parseSource(t, source)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return module
}

// firstExpr digs the expression out of the module's first statement.
func firstExpr(t *testing.T, module *ast.Module) ast.Expr {
	t.Helper()
	if len(module.Statements) == 0 {
		t.Fatal("module has no statements")
	}
	stmt, ok := module.Statements[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("first statement is %T, want *ast.ExprStmt", module.Statements[0])
	}
	return stmt.Expression
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		source string
		// checks walk the root node
		check func(t *testing.T, expr ast.Expr)
	}{
		{
			name:   "factor binds tighter than term",
			source: "1 + 2 * 3\n",
			check: func(t *testing.T, expr ast.Expr) {
				root, ok := expr.(*ast.Binary)
				if !ok || root.Operator.Type != lexer.TokenPlus {
					t.Fatalf("root = %T, want + binary", expr)
				}
				right, ok := root.Right.(*ast.Binary)
				if !ok || right.Operator.Type != lexer.TokenStar {
					t.Fatalf("right operand = %T, want * binary", root.Right)
				}
			},
		},
		{
			name:   "term is left associative",
			source: "1 - 2 - 3\n",
			check: func(t *testing.T, expr ast.Expr) {
				root := expr.(*ast.Binary)
				if _, ok := root.Left.(*ast.Binary); !ok {
					t.Fatalf("left operand = %T, want nested binary", root.Left)
				}
			},
		},
		{
			name:   "comparison binds looser than term",
			source: "a + 1 < b * 2\n",
			check: func(t *testing.T, expr ast.Expr) {
				root := expr.(*ast.Binary)
				if root.Operator.Type != lexer.TokenLess {
					t.Fatalf("root operator = %s, want <", root.Operator.Type)
				}
			},
		},
		{
			name:   "logical or is loosest",
			source: "a == 1 && b == 2 || c == 3\n",
			check: func(t *testing.T, expr ast.Expr) {
				root := expr.(*ast.Binary)
				if root.Operator.Type != lexer.TokenOr {
					t.Fatalf("root operator = %s, want ||", root.Operator.Type)
				}
				left := root.Left.(*ast.Binary)
				if left.Operator.Type != lexer.TokenAnd {
					t.Fatalf("left operator = %s, want &&", left.Operator.Type)
				}
			},
		},
		{
			name:   "unary binds tighter than factor",
			source: "-a * b\n",
			check: func(t *testing.T, expr ast.Expr) {
				root := expr.(*ast.Binary)
				if root.Operator.Type != lexer.TokenStar {
					t.Fatalf("root operator = %s, want *", root.Operator.Type)
				}
				if _, ok := root.Left.(*ast.Unary); !ok {
					t.Fatalf("left operand = %T, want unary", root.Left)
				}
			},
		},
		{
			name:   "assignment is right associative",
			source: "x = y = 1\n",
			check: func(t *testing.T, expr ast.Expr) {
				root, ok := expr.(*ast.Assign)
				if !ok || root.Name != "x" {
					t.Fatalf("root = %T, want assignment to x", expr)
				}
				inner, ok := root.Value.(*ast.Assign)
				if !ok || inner.Name != "y" {
					t.Fatalf("value = %T, want assignment to y", root.Value)
				}
			},
		},
		{
			name:   "postfix call then increment",
			source: "f(1)[0]++\n",
			check: func(t *testing.T, expr ast.Expr) {
				incdec, ok := expr.(*ast.IncDec)
				if !ok {
					t.Fatalf("root = %T, want IncDec", expr)
				}
				if _, ok := incdec.Operand.(*ast.Index); !ok {
					t.Fatalf("operand = %T, want Index", incdec.Operand)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			module := parseClean(t, tt.source)
			tt.check(t, firstExpr(t, module))
		})
	}
}

func TestRecoveryReportsAllIndependentErrors(t *testing.T) {
	// Two malformed declarations separated by a valid one: both are
	// reported and the valid statement survives in the module.
	source := "var : int\nvar ok : int\nvar : int\n"
	module, errs, _ := parseSource(t, source)

	if len(errs) != 2 {
		t.Fatalf("got %d errors (%v), want 2", len(errs), errs)
	}

	if len(module.Statements) != 1 {
		t.Fatalf("module has %d statements, want 1", len(module.Statements))
	}
	decl, ok := module.Statements[0].(*ast.VarDecl)
	if !ok || decl.Name.Lexeme != "ok" {
		t.Errorf("surviving statement = %+v, want var ok", module.Statements[0])
	}
}

func TestFunctionSignatureRegisteredBeforeBody(t *testing.T) {
	source := "fn add(x : int, y : int) : int => return x + y\n"
	_, errs, table := parseSource(t, source)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	sym := table.Lookup("add")
	if sym == nil {
		t.Fatal("function 'add' not registered in the symbol table")
	}
	if sym.Kind != symtab.SymbolGlobal {
		t.Errorf("kind = %s, want global", sym.Kind)
	}

	want := types.NewFunction([]types.Type{types.Int, types.Int}, types.Int)
	if !sym.Type.Equals(want) {
		t.Errorf("registered type = %s, want %s", sym.Type, want)
	}
}

func TestRecursiveCallParses(t *testing.T) {
	source := "fn fact(n : int) : int =>\n    if n <= 1 =>\n        return 1\n    return n * fact(n - 1)\n"
	parseClean(t, source)
}

func TestInterpolationLowering(t *testing.T) {
	// "Total: {1+2}\n" lowers to three ordered parts.
	module := parseClean(t, "$\"Total: {1+2}\\n\"\n")

	interp, ok := firstExpr(t, module).(*ast.Interp)
	if !ok {
		t.Fatalf("expression = %T, want *ast.Interp", firstExpr(t, module))
	}
	if len(interp.Parts) != 3 {
		t.Fatalf("got %d parts, want 3", len(interp.Parts))
	}

	head, ok := interp.Parts[0].(*ast.Literal)
	if !ok || head.Value != "Total: " {
		t.Errorf("part 0 = %+v, want literal %q", interp.Parts[0], "Total: ")
	}

	sum, ok := interp.Parts[1].(*ast.Binary)
	if !ok || sum.Operator.Type != lexer.TokenPlus {
		t.Fatalf("part 1 = %T, want + binary", interp.Parts[1])
	}
	left, ok := sum.Left.(*ast.Literal)
	if !ok || left.Value != int64(1) {
		t.Errorf("sum left = %+v, want literal 1", sum.Left)
	}
	right, ok := sum.Right.(*ast.Literal)
	if !ok || right.Value != int64(2) {
		t.Errorf("sum right = %+v, want literal 2", sum.Right)
	}

	tail, ok := interp.Parts[2].(*ast.Literal)
	if !ok || tail.Value != "\n" {
		t.Errorf("part 2 = %+v, want literal newline", interp.Parts[2])
	}
}

func TestMalformedPlaceholderSubstitutesEmptyString(t *testing.T) {
	module, errs, _ := parseSource(t, "$\"x {1+} y\"\n")

	if len(errs) == 0 {
		t.Fatal("expected an error for the malformed placeholder")
	}

	interp, ok := firstExpr(t, module).(*ast.Interp)
	if !ok {
		t.Fatalf("expression = %T, want *ast.Interp", firstExpr(t, module))
	}
	// Parts: "x ", substituted empty literal, " y".
	if len(interp.Parts) != 3 {
		t.Fatalf("got %d parts, want 3", len(interp.Parts))
	}
	sub, ok := interp.Parts[1].(*ast.Literal)
	if !ok || sub.Value != "" {
		t.Errorf("part 1 = %+v, want empty string literal", interp.Parts[1])
	}
}

func TestPlaceholderSharesSymbolTable(t *testing.T) {
	// The placeholder references a function registered by the outer
	// parse; the nested parser must see it through the shared table.
	source := "fn f() : int => return 1\n$\"{f()}\"\n"
	module := parseClean(t, source)

	if len(module.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(module.Statements))
	}
	stmt := module.Statements[1].(*ast.ExprStmt)
	interp := stmt.Expression.(*ast.Interp)
	if len(interp.Parts) != 1 {
		t.Fatalf("got %d parts, want 1", len(interp.Parts))
	}
	if _, ok := interp.Parts[0].(*ast.Call); !ok {
		t.Errorf("part 0 = %T, want *ast.Call", interp.Parts[0])
	}
}

func TestMergeBlockAfterSingleStatementBody(t *testing.T) {
	// A single-statement body followed by an unexpected indented block is
	// merged into one two-element block.
	source := "if ready => start()\n    log()\n"
	module := parseClean(t, source)

	ifStmt, ok := module.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("statement = %T, want *ast.If", module.Statements[0])
	}
	block, ok := ifStmt.Then.(*ast.Block)
	if !ok {
		t.Fatalf("then branch = %T, want merged *ast.Block", ifStmt.Then)
	}
	if len(block.Statements) != 2 {
		t.Fatalf("merged block has %d statements, want 2", len(block.Statements))
	}
	if _, ok := block.Statements[0].(*ast.ExprStmt); !ok {
		t.Errorf("first merged statement = %T, want *ast.ExprStmt", block.Statements[0])
	}
	if _, ok := block.Statements[1].(*ast.Block); !ok {
		t.Errorf("second merged statement = %T, want *ast.Block", block.Statements[1])
	}
}

func TestInvalidAssignmentTargetContinues(t *testing.T) {
	module, errs, _ := parseSource(t, "1 = 2\n")

	if len(errs) != 1 {
		t.Fatalf("got %d errors (%v), want 1", len(errs), errs)
	}

	// The right-hand value survives as a best-effort expression.
	lit, ok := firstExpr(t, module).(*ast.Literal)
	if !ok || lit.Value != int64(2) {
		t.Errorf("expression = %+v, want literal 2", firstExpr(t, module))
	}
}

func TestForHeader(t *testing.T) {
	source := "for var i : int = 0; i < 10; i++ =>\n    print(i)\n"
	module := parseClean(t, source)

	forStmt, ok := module.Statements[0].(*ast.For)
	if !ok {
		t.Fatalf("statement = %T, want *ast.For", module.Statements[0])
	}
	if _, ok := forStmt.Init.(*ast.VarDecl); !ok {
		t.Errorf("init = %T, want *ast.VarDecl", forStmt.Init)
	}
	if _, ok := forStmt.Condition.(*ast.Binary); !ok {
		t.Errorf("condition = %T, want *ast.Binary", forStmt.Condition)
	}
	if _, ok := forStmt.Post.(*ast.IncDec); !ok {
		t.Errorf("post = %T, want *ast.IncDec", forStmt.Post)
	}
}

func TestEmptyForHeader(t *testing.T) {
	module := parseClean(t, "for ;; =>\n    print(1)\n")

	forStmt := module.Statements[0].(*ast.For)
	if forStmt.Init != nil || forStmt.Condition != nil || forStmt.Post != nil {
		t.Error("empty for header should leave all three slots nil")
	}
}

func TestSemicolonTerminators(t *testing.T) {
	module := parseClean(t, "var x : int = 1; var y : int = 2\n")
	if len(module.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(module.Statements))
	}
}

func TestVarDeclWithoutInitializer(t *testing.T) {
	module := parseClean(t, "var x : int\n")
	decl := module.Statements[0].(*ast.VarDecl)
	if decl.Initializer != nil {
		t.Error("initializer should be nil")
	}
	if !decl.DeclType.Equals(types.Int) {
		t.Errorf("declared type = %s, want int", decl.DeclType)
	}
}

func TestArrayTypeSuffix(t *testing.T) {
	module := parseClean(t, "var xs : int[]\n")
	decl := module.Statements[0].(*ast.VarDecl)
	if !decl.DeclType.Equals(types.NewArray(types.Int)) {
		t.Errorf("declared type = %s, want int[]", decl.DeclType)
	}
}

func TestImport(t *testing.T) {
	module := parseClean(t, "import \"runtime\"\n")
	imp, ok := module.Statements[0].(*ast.Import)
	if !ok {
		t.Fatalf("statement = %T, want *ast.Import", module.Statements[0])
	}
	if imp.Path.Literal != "runtime" {
		t.Errorf("path = %v, want runtime", imp.Path.Literal)
	}
}
