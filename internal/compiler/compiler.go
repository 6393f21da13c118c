// Package compiler drives a complete compilation: read the source file,
// run the phases in order, and write the assembly artifact.
//
// The pipeline is strictly linear: lexing is pulled on demand by the
// parser, then one full type-check pass, then one full code-generation
// pass. All shared state (the symbol table, the generator's label counter
// and string pool) belongs to one compilation; running two compilations
// concurrently is safe because nothing here is package-global.
package compiler

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/sable-lang/sable/internal/codegen"
	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/parser"
	"github.com/sable-lang/sable/internal/semantic"
	"github.com/sable-lang/sable/internal/symtab"
)

// Options configures one compilation.
type Options struct {
	// Source is the path of the Sable source file.
	Source string

	// Output is the path of the assembly artifact. Empty means the
	// source name with its extension replaced by ".s".
	Output string

	// Verbose prints per-phase progress, and additionally assembles,
	// links and runs the produced artifact.
	Verbose bool
}

// OutputName derives the artifact name from the source name: the
// extension is replaced by ".s" (appended when there is none).
func OutputName(source string) string {
	if dot := strings.LastIndexByte(source, '.'); dot > strings.LastIndexByte(source, '/') {
		return source[:dot] + ".s"
	}
	return source + ".s"
}

// Compile runs the full pipeline. It returns the errors of the first
// failing phase: read errors, then all syntax errors, then all type
// errors. On success it writes the assembly text to the output file and
// returns nil.
func Compile(opts Options) []error {
	source, err := os.ReadFile(opts.Source)
	if err != nil {
		return []error{fmt.Errorf("reading %s: %w", opts.Source, err)}
	}

	table := symtab.NewTable()

	lex := lexer.New(string(source), opts.Source)
	p := parser.New(lex, table)
	module, parseErrors := p.Parse(opts.Source)
	if len(parseErrors) > 0 {
		return parseErrors
	}
	progress(opts, "parsed %s", opts.Source)

	checker := semantic.NewChecker(table)
	if !checker.Check(module) {
		return checker.Errors()
	}
	progress(opts, "type check passed")

	asm := codegen.New(table).Generate(module)

	output := opts.Output
	if output == "" {
		output = OutputName(opts.Source)
	}
	if err := os.WriteFile(output, []byte(asm), 0o644); err != nil {
		return []error{fmt.Errorf("writing %s: %w", output, err)}
	}
	progress(opts, "wrote %s", output)

	if opts.Verbose {
		if err := assembleAndRun(output); err != nil {
			return []error{err}
		}
	}
	return nil
}

func progress(opts Options, format string, args ...interface{}) {
	if opts.Verbose {
		fmt.Printf(format+"\n", args...)
	}
}

// assembleAndRun invokes the external assembler and linker on the
// artifact and executes the produced binary, echoing its output. The
// runtime library object provides the sable_* helper symbols the
// generated code calls.
func assembleAndRun(asmPath string) error {
	base := strings.TrimSuffix(asmPath, ".s")
	objPath := base + ".o"

	if out, err := exec.Command("as", "-o", objPath, asmPath).CombinedOutput(); err != nil {
		return fmt.Errorf("as failed: %v\n%s", err, out)
	}

	ldArgs := []string{"-o", base, objPath}
	if runtimeObj := os.Getenv("SABLE_RUNTIME"); runtimeObj != "" {
		ldArgs = append(ldArgs, runtimeObj)
	}
	if out, err := exec.Command("ld", ldArgs...).CombinedOutput(); err != nil {
		return fmt.Errorf("ld failed: %v\n%s", err, out)
	}

	out, err := exec.Command(base).CombinedOutput()
	os.Stdout.Write(out)
	if err != nil {
		return fmt.Errorf("%s failed: %v", base, err)
	}
	return nil
}
