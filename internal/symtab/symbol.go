// Package symtab implements symbol table management for name resolution,
// scoping and stack-frame layout.
//
// DESIGN PHILOSOPHY:
// The symbol table is shared mutable state across the whole pipeline. The
// parser registers function signatures in it, the type checker resolves
// names and declares variables through it, and the code generator reads
// the stack offsets it assigned. It is therefore the one structure where
// re-declaration must be idempotent (see Table.Define).
//
// KEY DESIGN CHOICES:
// - Lexical scoping: inner scopes shadow outer scopes.
// - The table, not the generator, owns frame layout: a symbol's stack
//   offset is assigned once at declaration time and never recomputed.
package symtab

import (
	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/semantic/types"
)

// SymbolKind represents the kind of symbol.
type SymbolKind int

const (
	// SymbolGlobal is a module-level name (functions). Globals are
	// addressed by label, not by frame offset.
	SymbolGlobal SymbolKind = iota

	// SymbolLocal is a stack-allocated variable.
	SymbolLocal

	// SymbolParam is a function parameter. Distinguished from locals
	// because parameters live in a separate region of the frame and are
	// filled from the argument registers at function entry.
	SymbolParam
)

// String returns a human-readable representation of the symbol kind.
func (sk SymbolKind) String() string {
	switch sk {
	case SymbolGlobal:
		return "global"
	case SymbolLocal:
		return "local"
	case SymbolParam:
		return "parameter"
	default:
		return "unknown"
	}
}

// Symbol represents a named entity in the program.
//
// DESIGN CHOICE: One struct for all kinds rather than per-kind structs:
// all symbols carry the same information, and consumers switch on Kind
// where it matters. Offset is meaningless for globals (always 0).
type Symbol struct {
	// Name is the symbol's identifier.
	Name string

	// Tok is the declaring token, kept for error messages
	// ("x already declared at line 10").
	Tok lexer.Token

	// Type is the symbol's type (variable type or function signature).
	Type types.Type

	// Kind is what kind of symbol this is.
	Kind SymbolKind

	// Offset is the byte distance below the frame pointer at which this
	// symbol is stored. Assigned at declaration time for locals and
	// parameters; 0 for globals.
	Offset int
}

// String returns "kind name: type", e.g. "local x: int".
func (s *Symbol) String() string {
	return s.Kind.String() + " " + s.Name + ": " + s.Type.String()
}
