package semantic

import (
	"strings"
	"testing"

	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/parser"
	"github.com/sable-lang/sable/internal/parser/ast"
	"github.com/sable-lang/sable/internal/semantic/types"
	"github.com/sable-lang/sable/internal/symtab"
)

// checkSource parses and type-checks a program. The source must be
// syntactically valid; these tests exercise semantic rules only.
func checkSource(t *testing.T, source string) (*ast.Module, []error) {
	t.Helper()
	table := symtab.NewTable()
	p := parser.New(lexer.New(source, "test.sbl"), table)
	module, parseErrs := p.Parse("test.sbl")
	if len(parseErrs) > 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}

	checker := NewChecker(table)
	checker.Check(module)
	return module, checker.Errors()
}

func wantClean(t *testing.T, source string) *ast.Module {
	t.Helper()
	module, errs := checkSource(t, source)
	if len(errs) > 0 {
		t.Fatalf("unexpected type errors: %v", errs)
	}
	return module
}

// wantErrors asserts the number of errors and that each expected
// fragment appears in the corresponding error, in order.
func wantErrors(t *testing.T, source string, fragments ...string) {
	t.Helper()
	_, errs := checkSource(t, source)
	if len(errs) != len(fragments) {
		t.Fatalf("got %d errors (%v), want %d", len(errs), errs, len(fragments))
	}
	for i, fragment := range fragments {
		if !strings.Contains(errs[i].Error(), fragment) {
			t.Errorf("error %d = %q, want it to contain %q", i, errs[i], fragment)
		}
	}
}

func TestCleanProgram(t *testing.T) {
	wantClean(t, `fn add(x : int, y : int) : int => return x + y
var total : int = add(1, 2)
print(total)
fn main() : void => print(add(total, 3))
`)
}

func TestVarDeclInitializerMismatch(t *testing.T) {
	// The declaration fails but checking continues: the variable is still
	// declared with its stated type, so later uses produce no extra noise.
	wantErrors(t,
		"var z : int = \"oops\"\nvar w : int = z + 1\nprint(w)\n",
		"type mismatch: cannot initialize 'z' of type int")
}

func TestMultipleIndependentErrors(t *testing.T) {
	wantErrors(t,
		"var a : int = \"one\"\nvar b : int = 1\nvar c : bool = 2\n",
		"cannot initialize 'a'",
		"cannot initialize 'c'")
}

func TestUndefinedVariable(t *testing.T) {
	wantErrors(t, "print(missing)\n", "undefined variable 'missing'")
}

func TestAssignmentRules(t *testing.T) {
	t.Run("type mismatch", func(t *testing.T) {
		wantErrors(t,
			"var x : int = 1\nx = \"s\"\n",
			"cannot assign string to 'x' of type int")
	})
	t.Run("undefined target", func(t *testing.T) {
		wantErrors(t, "y = 1\n", "undefined variable 'y'")
	})
	t.Run("assignment yields the target type", func(t *testing.T) {
		// x = 2 evaluates to int, so the outer initializer checks out.
		wantClean(t, "var x : int = 1\nvar y : int = x = 2\n")
	})
}

func TestConditionMustBeBool(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"if", "if 1 =>\n    print(1)\n", "if condition must be bool, got int"},
		{"while", "while \"s\" =>\n    print(1)\n", "while condition must be bool, got string"},
		{"for", "for var i : int = 0; i; i++ =>\n    print(i)\n", "for condition must be bool, got int"},
		{"comparison is fine", "if 1 < 2 =>\n    print(1)\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.want == "" {
				wantClean(t, tt.source)
				return
			}
			wantErrors(t, tt.source, tt.want)
		})
	}
}

func TestReturnRules(t *testing.T) {
	t.Run("value type must match", func(t *testing.T) {
		wantErrors(t,
			"fn f() : int => return \"s\"\n",
			"return type mismatch: function returns int, got string")
	})
	t.Run("bare return from a value function", func(t *testing.T) {
		wantErrors(t,
			"fn g() : int => return\n",
			"function returns int, got void")
	})
	t.Run("bare return from a void function", func(t *testing.T) {
		wantClean(t, "fn h() : void => return\n")
	})
	t.Run("top level returns are void", func(t *testing.T) {
		wantErrors(t, "return 1\n", "function returns void, got int")
	})
}

func TestCallRules(t *testing.T) {
	const header = "fn add(x : int, y : int) : int => return x + y\n"

	t.Run("arity", func(t *testing.T) {
		wantErrors(t, header+"add(1)\n",
			"wrong number of arguments: expected 2, got 1")
	})
	t.Run("argument type", func(t *testing.T) {
		wantErrors(t, header+"add(1, \"s\")\n",
			"argument 2 type mismatch: expected int, got string")
	})
	t.Run("result type feeds the caller", func(t *testing.T) {
		wantClean(t, header+"var r : int = add(1, 2)\n")
	})
	t.Run("zero arguments", func(t *testing.T) {
		wantClean(t, "fn answer() : int => return 42\nvar r : int = answer()\n")
	})
	t.Run("callee must be a function", func(t *testing.T) {
		wantErrors(t, "var x : int = 1\nx(1)\n",
			"cannot call a value of type int")
	})
}

func TestPrintRules(t *testing.T) {
	t.Run("exactly one argument", func(t *testing.T) {
		wantErrors(t, "print()\n", "print takes exactly one argument, got 0")
		wantErrors(t, "print(1, 2)\n", "print takes exactly one argument, got 2")
	})
	t.Run("argument must be printable", func(t *testing.T) {
		wantErrors(t, "var xs : int[] = [1]\nprint(xs)\n",
			"cannot print a value of type int[]")
	})
	t.Run("printable primitives pass", func(t *testing.T) {
		wantClean(t, "print(1)\nprint(1.5)\nprint('c')\nprint(\"s\")\nprint(true)\n")
	})
}

func TestBinaryOperatorRules(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"operand types must match", "var x : int = 1 + 1.5\n",
			"operator '+' requires matching operand types, got int and double"},
		{"plus concatenates strings", "var s : string = \"a\" + \"b\"\n", ""},
		{"plus rejects bools", "var b : bool = true + false\n",
			"operator '+' cannot be applied to bool operands"},
		{"minus rejects strings", "var s : string = \"a\" - \"b\"\n",
			"operator '-' cannot be applied to string operands"},
		{"comparison yields bool", "var b : bool = 1 < 2\n", ""},
		{"equality on strings yields bool", "var b : bool = \"a\" == \"b\"\n", ""},
		{"logical needs bool", "var b : bool = 1 && 2\n",
			"operator '&&' cannot be applied to int operands"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.want == "" {
				wantClean(t, tt.source)
				return
			}
			wantErrors(t, tt.source, tt.want)
		})
	}
}

func TestUnaryOperatorRules(t *testing.T) {
	wantClean(t, "var x : int = -1\nvar b : bool = !true\n")
	wantErrors(t, "var b : bool = !1\n", "unary '!' requires a bool operand, got int")
	wantErrors(t, "var s : string = -\"s\"\n", "unary '-' requires a numeric operand")
}

func TestIncDecRequiresNumeric(t *testing.T) {
	wantClean(t, "var i : int = 0\ni++\ni--\n")
	wantErrors(t, "var b : bool = true\nb++\n",
		"'++' requires a numeric operand, got bool")
}

func TestShadowingResolvesInnermost(t *testing.T) {
	// The parameter shadows the top-level variable of the same name.
	wantClean(t, "var x : int = 1\nfn f(x : string) : string => return x\n")

	// Inside a block the inner declaration wins; outside it the outer
	// binding is back.
	wantClean(t, `var x : int = 1
if true =>
    var x : string = "inner"
    print(x + "!")
var y : int = x + 1
`)
}

func TestForLoopVariableScope(t *testing.T) {
	wantErrors(t, `for var i : int = 0; i < 3; i++ =>
    print(i)
print(i)
`, "undefined variable 'i'")
}

func TestArrayRules(t *testing.T) {
	t.Run("literal and index", func(t *testing.T) {
		wantClean(t, "var xs : int[] = [1, 2, 3]\nvar x : int = xs[0]\n")
	})
	t.Run("empty literal has no type", func(t *testing.T) {
		wantErrors(t, "var xs : int[] = []\n",
			"cannot infer the type of an empty array literal")
	})
	t.Run("elements must agree", func(t *testing.T) {
		wantErrors(t, "var xs : int[] = [1, \"s\"]\n",
			"array element type mismatch: expected int, got string")
	})
	t.Run("index must be int", func(t *testing.T) {
		wantErrors(t, "var xs : int[] = [1]\nvar x : int = xs[\"a\"]\n",
			"array index must be int, got string")
	})
	t.Run("only arrays are indexable", func(t *testing.T) {
		wantErrors(t, "var y : int = 1\nvar x : int = y[0]\n",
			"cannot index a value of type int")
	})
}

func TestInterpolation(t *testing.T) {
	t.Run("whole literal is a string", func(t *testing.T) {
		wantClean(t, "var s : string = $\"Total: {1+2}\\n\"\n")
	})
	t.Run("parts must be printable", func(t *testing.T) {
		wantErrors(t, "var xs : int[] = [1]\nvar s : string = $\"{xs}\"\n",
			"cannot interpolate a value of type int[]")
	})
}

func TestExpressionTypesAreMemoized(t *testing.T) {
	module := wantClean(t, "var x : int = 1 + 2\n")

	decl := module.Statements[0].(*ast.VarDecl)
	sum := decl.Initializer.(*ast.Binary)
	if sum.ResolvedType() == nil || !sum.ResolvedType().Equals(types.Int) {
		t.Errorf("resolved type = %v, want int", sum.ResolvedType())
	}
}
