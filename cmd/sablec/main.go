// Command sablec compiles Sable source files to x86-64 assembly.
//
// Usage:
//
//	sablec <source-file> [-o <output-file>] [-v]
//
// The default output name is the source name with its extension replaced
// by ".s". With -v the compiler prints per-phase progress and assembles,
// links and runs the produced artifact.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sable-lang/sable/internal/compiler"
)

func main() {
	flags := flag.NewFlagSet("sablec", flag.ExitOnError)
	output := flags.String("o", "", "output file (default: source with .s extension)")
	verbose := flags.Bool("v", false, "verbose: print phases, then assemble, link and run")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <source-file> [-o <output-file>] [-v]\n", os.Args[0])
		flags.PrintDefaults()
	}

	// Accept the source file before the flags, compile-style.
	args := os.Args[1:]
	if len(args) < 1 || args[0] == "-h" || args[0] == "--help" {
		flags.Usage()
		os.Exit(1)
	}
	source := args[0]
	flags.Parse(args[1:])

	errs := compiler.Compile(compiler.Options{
		Source:  source,
		Output:  *output,
		Verbose: *verbose,
	})
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
