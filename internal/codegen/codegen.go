// Package codegen lowers a type-checked AST to x86-64 assembly text
// (AT&T syntax, GNU as, Linux).
//
// REGISTER CONVENTION:
// One implicit accumulator, %rax, holds the value of the expression just
// evaluated; %rcx is the scratch register for the other operand of a
// binary operation. Binary expressions evaluate the RIGHT operand first,
// push it, evaluate the left operand into the accumulator, then pop the
// right operand into the scratch register and combine. The right-then-
// left order is observable when operands have side effects and must not
// be changed.
//
// FRAME CONVENTION:
// Every function reserves a fixed 208-byte local block instead of sizing
// the frame from its locals. A known limitation carried deliberately:
// the frame layout below it (parameter slots at -8..-48, locals from -56
// down) depends on the reservation being large enough, and real frame
// sizing is a separate project.
//
// All generator state (label counter, string pool, push depth) lives on
// the Generator value; nothing here is package-global, so a compilation
// is fully self-contained.
package codegen

import (
	"fmt"
	"strings"

	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/parser/ast"
	"github.com/sable-lang/sable/internal/semantic/types"
	"github.com/sable-lang/sable/internal/symtab"
)

// frameSize is the fixed per-function local reservation. Multiple of 16
// so the prologue preserves stack alignment.
const frameSize = 208

// argRegisters is the System V argument register sequence. The first six
// arguments travel in these; the rest go on the stack.
var argRegisters = [6]string{"%rdi", "%rsi", "%rdx", "%rcx", "%r8", "%r9"}

// Generator emits assembly for one module.
//
// The generator re-walks the tree with its own scopes on the shared
// symbol table, re-declaring the same names the checker declared; the
// table's idempotent Define guarantees it sees the same offsets. A name
// that fails to resolve here is a pipeline bug, not a user error, and
// aborts generation with a panic.
type Generator struct {
	table *symtab.Table

	// out is the builder currently being emitted into: function bodies
	// go to functions, top-level statement code goes to startup.
	out       *strings.Builder
	functions strings.Builder
	startup   strings.Builder

	// labelCount feeds monotonically increasing .L<n> labels, globally
	// unique within one compilation and never reused.
	labelCount int

	// stringPool deduplicates string literal contents; each distinct
	// content is emitted once in .data under a stable .LS<n> label.
	stringPool  map[string]string
	stringOrder []string

	// pushDepth counts words currently pushed beyond the frame, so call
	// sites know how to pad %rsp to a 16-byte boundary.
	pushDepth int

	// returnLabel is the epilogue label of the function being emitted;
	// return statements jump here.
	returnLabel string
}

// New creates a generator over the symbol table the earlier phases
// populated.
func New(table *symtab.Table) *Generator {
	return &Generator{
		table:      table,
		stringPool: make(map[string]string),
	}
}

// Generate emits the complete assembly text for a type-checked module.
//
// Layout of the artifact: a data section holding the fixed format-string
// constants and the string-literal pool, then a text section with every
// function in source order followed by _start. Top-level statements
// (including top-level var initializers) run inside _start's frame before
// main is called; _start exits via the exit syscall with status 0.
func (g *Generator) Generate(module *ast.Module) string {
	g.genStartupProlog()

	for _, stmt := range module.Statements {
		if fn, ok := stmt.(*ast.FuncDecl); ok {
			g.out = &g.functions
			g.genFunction(fn)
			continue
		}
		g.out = &g.startup
		g.genStmt(stmt)
	}

	g.genStartupEpilog()

	var sb strings.Builder
	sb.WriteString(".section .data\n")
	sb.WriteString(".LCfmt_int:\n\t.asciz \"%ld\\n\"\n")
	sb.WriteString(".LCfmt_double:\n\t.asciz \"%f\\n\"\n")
	sb.WriteString(".LCfmt_char:\n\t.asciz \"%c\\n\"\n")
	sb.WriteString(".LCfmt_str:\n\t.asciz \"%s\\n\"\n")
	for _, content := range g.stringOrder {
		sb.WriteString(g.stringPool[content] + ":\n")
		sb.WriteString("\t.asciz \"" + escapeAsm(content) + "\"\n")
	}

	sb.WriteString("\n.section .text\n")
	sb.WriteString(".global _start\n")
	sb.WriteString(".global main\n\n")
	sb.WriteString(g.functions.String())
	sb.WriteString(g.startup.String())

	return sb.String()
}

// genStartupProlog opens _start: establish a frame for top-level code.
// The return label is allocated up front so a top-level return statement
// can jump to the exit sequence.
func (g *Generator) genStartupProlog() {
	g.out = &g.startup
	g.returnLabel = g.newLabel()

	g.label("_start")
	g.emit("pushq %rbp")
	g.emit("movq %rsp, %rbp")
	g.emitf("subq $%d, %%rsp", frameSize)
}

// genStartupEpilog closes _start: call main, then exit(0).
func (g *Generator) genStartupEpilog() {
	g.out = &g.startup
	g.emit("call main")
	g.label(g.returnLabel)
	g.emit("movq %rbp, %rsp")
	g.emit("popq %rbp")
	g.emit("movq $60, %rax")
	g.emit("xorq %rdi, %rdi")
	g.emit("syscall")
}

// genFunction emits one function: prologue, parameter spill, body,
// shared epilogue.
func (g *Generator) genFunction(fn *ast.FuncDecl) {
	g.label(fn.Name.Lexeme)
	g.emit("pushq %rbp")
	g.emit("movq %rsp, %rbp")
	g.emitf("subq $%d, %%rsp", frameSize)

	enclosingReturn := g.returnLabel
	g.returnLabel = g.newLabel()

	g.table.PushFunctionScope()

	// Spill incoming parameters to their assigned slots so every later
	// access goes through the frame, register or stack passed alike.
	// Stack-passed parameters (the seventh onward) sit above the saved
	// %rbp and return address in the caller's pushes.
	for i, param := range fn.Params {
		sym := g.table.Define(param.Name.Lexeme, param.Name, param.Type, symtab.SymbolParam)
		if i < len(argRegisters) {
			g.emitf("movq %s, -%d(%%rbp)", argRegisters[i], sym.Offset)
		} else {
			g.emitf("movq %d(%%rbp), %%rax", 16+8*(i-len(argRegisters)))
			g.emitf("movq %%rax, -%d(%%rbp)", sym.Offset)
		}
	}

	for _, stmt := range fn.Body {
		g.genStmt(stmt)
	}

	g.table.PopScope()

	g.label(g.returnLabel)
	g.emit("movq %rbp, %rsp")
	g.emit("popq %rbp")
	g.emit("ret")
	g.out.WriteString("\n")

	g.returnLabel = enclosingReturn
}

// genStmt emits one statement.
func (g *Generator) genStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		g.genExpr(s.Expression)

	case *ast.VarDecl:
		sym := g.table.Define(s.Name.Lexeme, s.Name, s.DeclType, symtab.SymbolLocal)
		if s.Initializer != nil {
			g.genExpr(s.Initializer)
			g.emitf("movq %%rax, -%d(%%rbp)", sym.Offset)
		}

	case *ast.FuncDecl:
		// Nested functions are not in the language; a FuncDecl below the
		// top level slipping through is a front-end bug.
		panic("internal compiler error: nested function declaration")

	case *ast.Return:
		if s.Value != nil {
			g.genExpr(s.Value)
		}
		g.emitf("jmp %s", g.returnLabel)

	case *ast.Block:
		g.table.PushScope()
		for _, inner := range s.Statements {
			g.genStmt(inner)
		}
		g.table.PopScope()

	case *ast.If:
		g.genIf(s)

	case *ast.While:
		g.genWhile(s)

	case *ast.For:
		g.genFor(s)

	case *ast.Import:
		g.emitf("# import \"%s\" resolved at link time", s.Path.Literal)

	default:
		panic(fmt.Sprintf("internal compiler error: unhandled statement %T", stmt))
	}
}

func (g *Generator) genIf(s *ast.If) {
	elseLabel := g.newLabel()
	endLabel := g.newLabel()

	g.genExpr(s.Condition)
	g.emit("cmpq $0, %rax")
	g.emitf("je %s", elseLabel)

	g.genStmt(s.Then)
	g.emitf("jmp %s", endLabel)

	g.label(elseLabel)
	if s.Else != nil {
		g.genStmt(s.Else)
	}
	g.label(endLabel)
}

func (g *Generator) genWhile(s *ast.While) {
	condLabel := g.newLabel()
	endLabel := g.newLabel()

	g.label(condLabel)
	g.genExpr(s.Condition)
	g.emit("cmpq $0, %rax")
	g.emitf("je %s", endLabel)

	g.genStmt(s.Body)
	g.emitf("jmp %s", condLabel)
	g.label(endLabel)
}

func (g *Generator) genFor(s *ast.For) {
	condLabel := g.newLabel()
	endLabel := g.newLabel()

	g.table.PushScope()
	if s.Init != nil {
		g.genStmt(s.Init)
	}

	g.label(condLabel)
	if s.Condition != nil {
		g.genExpr(s.Condition)
		g.emit("cmpq $0, %rax")
		g.emitf("je %s", endLabel)
	}

	g.genStmt(s.Body)
	if s.Post != nil {
		g.genExpr(s.Post)
	}
	g.emitf("jmp %s", condLabel)
	g.label(endLabel)

	g.table.PopScope()
}

// genExpr emits code leaving the expression's value in %rax.
func (g *Generator) genExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Literal:
		g.genLiteral(e)

	case *ast.Variable:
		sym := g.resolve(e.Name, e.Tok)
		if sym.Kind == symtab.SymbolGlobal {
			panic(fmt.Sprintf(
				"internal compiler error: global '%s' used as a value", e.Name))
		}
		g.emitf("movq -%d(%%rbp), %%rax", sym.Offset)

	case *ast.Assign:
		g.genExpr(e.Value)
		sym := g.resolve(e.Name, e.Tok)
		g.emitf("movq %%rax, -%d(%%rbp)", sym.Offset)

	case *ast.Binary:
		g.genBinary(e)

	case *ast.Unary:
		g.genExpr(e.Operand)
		switch e.Operator.Type {
		case lexer.TokenMinus:
			g.emit("negq %rax")
		case lexer.TokenNot:
			g.emit("xorq $1, %rax")
		default:
			panic(fmt.Sprintf("internal compiler error: unhandled unary operator %s",
				e.Operator.Type))
		}

	case *ast.IncDec:
		g.genIncDec(e)

	case *ast.Call:
		g.genCall(e)

	case *ast.Interp:
		g.genInterp(e)

	case *ast.Array:
		g.emit("# array literals are not supported yet")
		g.emit("xorq %rax, %rax")

	case *ast.Index:
		g.emit("# array indexing is not supported yet")
		g.emit("xorq %rax, %rax")

	default:
		panic(fmt.Sprintf("internal compiler error: unhandled expression %T", expr))
	}
}

func (g *Generator) genLiteral(e *ast.Literal) {
	switch v := e.Value.(type) {
	case int64:
		g.emitf("movq $%d, %%rax", v)
	case float64:
		// Doubles truncate to their integer part; real floating point
		// codegen is not implemented.
		g.emitf("movq $%d, %%rax", int64(v))
	case rune:
		g.emitf("movq $%d, %%rax", v)
	case bool:
		if v {
			g.emit("movq $1, %rax")
		} else {
			g.emit("movq $0, %rax")
		}
	case string:
		g.emitf("leaq %s(%%rip), %%rax", g.stringLabel(v))
	case nil:
		g.emit("xorq %rax, %rax")
	default:
		panic(fmt.Sprintf("internal compiler error: unhandled literal value %T", e.Value))
	}
}

// genBinary emits the canonical binary sequence: right operand first,
// pushed; left operand into the accumulator; right popped into scratch;
// combine.
func (g *Generator) genBinary(e *ast.Binary) {
	// String concatenation reaches here well-typed but is not lowered.
	if e.Operator.Type == lexer.TokenPlus && e.ResolvedType() != nil &&
		e.ResolvedType().Equals(types.String) {
		g.emit("# string concatenation is not supported yet")
		g.emit("xorq %rax, %rax")
		return
	}

	g.genExpr(e.Right)
	g.push("%rax")
	g.genExpr(e.Left)
	g.pop("%rcx")

	switch e.Operator.Type {
	case lexer.TokenPlus:
		g.emit("addq %rcx, %rax")
	case lexer.TokenMinus:
		g.emit("subq %rcx, %rax")
	case lexer.TokenStar:
		g.emit("imulq %rcx, %rax")
	case lexer.TokenSlash:
		g.emit("cqto")
		g.emit("idivq %rcx")
	case lexer.TokenPercent:
		g.emit("cqto")
		g.emit("idivq %rcx")
		g.emit("movq %rdx, %rax")

	case lexer.TokenEqual:
		g.genCompare("sete")
	case lexer.TokenNotEqual:
		g.genCompare("setne")
	case lexer.TokenLess:
		g.genCompare("setl")
	case lexer.TokenLessEqual:
		g.genCompare("setle")
	case lexer.TokenGreater:
		g.genCompare("setg")
	case lexer.TokenGreaterEqual:
		g.genCompare("setge")

	case lexer.TokenAnd:
		// Operands are 0/1 by the bool convention, so plain bitwise ops
		// implement the logical operators (no short circuit).
		g.emit("andq %rcx, %rax")
	case lexer.TokenOr:
		g.emit("orq %rcx, %rax")

	default:
		panic(fmt.Sprintf("internal compiler error: unhandled binary operator %s",
			e.Operator.Type))
	}
}

// genCompare materializes a comparison result as 0/1 in the accumulator.
func (g *Generator) genCompare(setInstr string) {
	g.emit("cmpq %rcx, %rax")
	g.emitf("%s %%al", setInstr)
	g.emit("movzbq %al, %rax")
}

// genIncDec emits a postfix increment/decrement: the accumulator keeps
// the value from before the update.
func (g *Generator) genIncDec(e *ast.IncDec) {
	target, ok := e.Operand.(*ast.Variable)
	if !ok {
		// A non-variable operand has no storage to update; its value is
		// the result and the operator is a no-op.
		g.genExpr(e.Operand)
		return
	}

	sym := g.resolve(target.Name, target.Tok)
	g.emitf("movq -%d(%%rbp), %%rax", sym.Offset)
	g.emit("movq %rax, %rcx")
	if e.Operator.Type == lexer.TokenPlusPlus {
		g.emit("incq %rcx")
	} else {
		g.emit("decq %rcx")
	}
	g.emitf("movq %%rcx, -%d(%%rbp)", sym.Offset)
}

// genCall emits a function call.
//
// Arguments are evaluated in reverse order (last first) and pushed; the
// first six are then popped into the argument registers, leaving any
// stack-passed arguments on top of the stack in ascending order. The
// stack pointer is padded to a 16-byte boundary before the arguments are
// pushed when the outstanding push depth plus the stack arguments would
// leave it misaligned at the call. The caller removes stack arguments
// and padding afterwards.
func (g *Generator) genCall(e *ast.Call) {
	if callee, ok := e.Callee.(*ast.Variable); ok && callee.Name == "print" {
		g.genPrint(e)
		return
	}

	callee, ok := e.Callee.(*ast.Variable)
	if !ok {
		panic("internal compiler error: call target is not a function name")
	}
	sym := g.resolve(callee.Name, callee.Tok)
	if sym.Kind != symtab.SymbolGlobal {
		panic(fmt.Sprintf("internal compiler error: '%s' is not a function", callee.Name))
	}

	stackArgs := 0
	if len(e.Args) > len(argRegisters) {
		stackArgs = len(e.Args) - len(argRegisters)
	}

	padded := false
	if (g.pushDepth+stackArgs)%2 == 1 {
		g.emit("subq $8, %rsp")
		g.pushDepth++
		padded = true
	}

	for i := len(e.Args) - 1; i >= 0; i-- {
		g.genExpr(e.Args[i])
		g.push("%rax")
	}
	for i := 0; i < len(e.Args) && i < len(argRegisters); i++ {
		g.pop(argRegisters[i])
	}

	g.emitf("call %s", callee.Name)

	cleanup := stackArgs
	if padded {
		cleanup++
	}
	if cleanup > 0 {
		g.emitf("addq $%d, %%rsp", 8*cleanup)
		g.pushDepth -= cleanup
	}
}

// genPrint lowers the built-in print to the runtime helper for the
// argument's type. The helpers take their value in %rdi and are defined
// by the runtime library linked into the final binary.
func (g *Generator) genPrint(e *ast.Call) {
	arg := e.Args[0]
	g.genExpr(arg)
	g.emit("movq %rax, %rdi")
	g.call(printHelper(arg.ResolvedType()))
}

func printHelper(t types.Type) string {
	switch t.(type) {
	case *types.IntType:
		return "sable_print_int"
	case *types.LongType:
		return "sable_print_long"
	case *types.DoubleType:
		return "sable_print_double"
	case *types.CharType:
		return "sable_print_char"
	case *types.StringType:
		return "sable_print_str"
	case *types.BoolType:
		return "sable_print_bool"
	default:
		panic(fmt.Sprintf("internal compiler error: print of unprintable type %v", t))
	}
}

// genInterp lowers an interpolated string: each part is rendered to a
// string (non-string parts go through a runtime conversion helper) and
// the results are folded left with sable_str_concat.
func (g *Generator) genInterp(e *ast.Interp) {
	if len(e.Parts) == 0 {
		g.emitf("leaq %s(%%rip), %%rax", g.stringLabel(""))
		return
	}

	g.genInterpPart(e.Parts[0])
	for _, part := range e.Parts[1:] {
		g.push("%rax")
		g.genInterpPart(part)
		g.emit("movq %rax, %rsi")
		g.pop("%rdi")
		g.call("sable_str_concat")
	}
}

// genInterpPart leaves a string pointer for one part in the accumulator.
func (g *Generator) genInterpPart(part ast.Expr) {
	g.genExpr(part)

	helper := ""
	switch part.ResolvedType().(type) {
	case *types.StringType:
		return // already a string pointer
	case *types.IntType:
		helper = "sable_int_to_str"
	case *types.LongType:
		helper = "sable_long_to_str"
	case *types.DoubleType:
		helper = "sable_double_to_str"
	case *types.CharType:
		helper = "sable_char_to_str"
	case *types.BoolType:
		helper = "sable_bool_to_str"
	default:
		panic(fmt.Sprintf("internal compiler error: interpolation of type %v",
			part.ResolvedType()))
	}

	g.emit("movq %rax, %rdi")
	g.call(helper)
}

// Emission helpers

// resolve looks up a name that earlier phases already validated. Failure
// means the checker and generator disagree about scope contents, which
// is fatal by design.
func (g *Generator) resolve(name string, tok lexer.Token) *symtab.Symbol {
	sym := g.table.Lookup(name)
	if sym == nil {
		panic(fmt.Sprintf(
			"internal compiler error: undefined symbol '%s' at %s during code generation",
			name, tok.Position.String()))
	}
	return sym
}

// newLabel returns the next .L<n> label. Labels are globally unique
// within a compilation and never reused.
func (g *Generator) newLabel() string {
	label := fmt.Sprintf(".L%d", g.labelCount)
	g.labelCount++
	return label
}

// stringLabel interns a string literal's content and returns its pool
// label.
func (g *Generator) stringLabel(content string) string {
	if label, ok := g.stringPool[content]; ok {
		return label
	}
	label := fmt.Sprintf(".LS%d", len(g.stringOrder))
	g.stringPool[content] = label
	g.stringOrder = append(g.stringOrder, content)
	return label
}

// push emits a push and tracks the depth for call-site alignment.
func (g *Generator) push(reg string) {
	g.emitf("pushq %s", reg)
	g.pushDepth++
}

// pop emits a pop and tracks the depth.
func (g *Generator) pop(reg string) {
	g.emitf("popq %s", reg)
	g.pushDepth--
}

// call emits a call to a runtime helper, padding the stack pointer to a
// 16-byte boundary when the outstanding push depth is odd.
func (g *Generator) call(symbol string) {
	padded := false
	if g.pushDepth%2 == 1 {
		g.emit("subq $8, %rsp")
		padded = true
	}
	g.emitf("call %s", symbol)
	if padded {
		g.emit("addq $8, %rsp")
	}
}

// emit writes one instruction line.
func (g *Generator) emit(line string) {
	g.out.WriteString("\t")
	g.out.WriteString(line)
	g.out.WriteString("\n")
}

// emitf writes one formatted instruction line.
func (g *Generator) emitf(format string, args ...interface{}) {
	g.emit(fmt.Sprintf(format, args...))
}

// label writes a label line.
func (g *Generator) label(name string) {
	g.out.WriteString(name)
	g.out.WriteString(":\n")
}

// escapeAsm escapes string content for a .asciz directive.
func escapeAsm(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b == '"':
			sb.WriteString("\\\"")
		case b == '\\':
			sb.WriteString("\\\\")
		case b == '\n':
			sb.WriteString("\\n")
		case b == '\t':
			sb.WriteString("\\t")
		case b == '\r':
			sb.WriteString("\\r")
		case b < 0x20 || b >= 0x7f:
			sb.WriteString(fmt.Sprintf("\\%03o", b))
		default:
			sb.WriteByte(b)
		}
	}
	return sb.String()
}
