package symtab

import (
	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/semantic/types"
)

// Frame layout constants. Parameters and locals occupy disjoint,
// downward-growing regions below the frame pointer: the first parameter
// spills to -8(%rbp), the sixth to -48(%rbp), and locals start at
// -56(%rbp). Everything is word-sized and word-aligned.
const (
	// ParamOffsetBase is the offset of the first parameter slot.
	ParamOffsetBase = 8

	// LocalOffsetBase is the offset of the first local slot, leaving room
	// for six spilled register parameters above it.
	LocalOffsetBase = 56

	// OffsetStride is the size of one slot.
	OffsetStride = 8
)

// frame holds the offset counters for one function's stack frame.
// Block scopes inside the function share their function's frame, so
// variables declared in nested blocks still get unique slots.
type frame struct {
	nextParam int
	nextLocal int
}

func newFrame() *frame {
	return &frame{
		nextParam: ParamOffsetBase,
		nextLocal: LocalOffsetBase,
	}
}

// Scope represents one lexical region: a name->symbol map plus a link to
// the enclosing scope.
//
// DESIGN CHOICE: Parent pointers rather than a slice-of-maps stack. The
// chain is the natural shape for lexical nesting, and Lookup is a simple
// walk toward the root.
type Scope struct {
	// Parent is the enclosing scope (nil for the global scope).
	Parent *Scope

	// symbols maps names to their symbols in this scope.
	symbols map[string]*Symbol

	// frame is the offset state of the enclosing function. Function
	// scopes (and the global scope, whose top-level code runs in the
	// startup frame) own a fresh frame; block scopes borrow the parent's.
	frame *frame
}

// Table is a scope chain with a current-scope pointer.
//
// The same Table instance is threaded through parsing, checking and code
// generation. Each phase pushes and pops its own scopes; Define is
// idempotent precisely so the later phases can re-declare the names the
// parser already registered without disturbing their offsets.
type Table struct {
	current *Scope
	global  *Scope
}

// NewTable creates a table holding only the global scope.
// The global scope carries a frame of its own: top-level statements
// execute in the startup routine's stack frame, so top-level variables
// are laid out exactly like locals.
func NewTable() *Table {
	global := &Scope{
		symbols: make(map[string]*Symbol),
		frame:   newFrame(),
	}
	return &Table{current: global, global: global}
}

// PushScope enters a new block scope. Variables declared inside it share
// the enclosing function's frame.
func (t *Table) PushScope() {
	t.current = &Scope{
		Parent:  t.current,
		symbols: make(map[string]*Symbol),
		frame:   t.current.frame,
	}
}

// PushFunctionScope enters a new function scope with fresh offset
// counters: the first parameter defined in it lands at ParamOffsetBase,
// the first local at LocalOffsetBase.
func (t *Table) PushFunctionScope() {
	t.current = &Scope{
		Parent:  t.current,
		symbols: make(map[string]*Symbol),
		frame:   newFrame(),
	}
}

// PopScope leaves the innermost scope, discarding its symbols.
// Popping the global scope is a caller bug.
func (t *Table) PopScope() {
	if t.current.Parent == nil {
		panic("internal compiler error: popping the global scope")
	}
	t.current = t.current.Parent
}

// Depth returns the number of open scopes (1 when only the global scope
// is open). Used by tests and debugging output.
func (t *Table) Depth() int {
	depth := 0
	for s := t.current; s != nil; s = s.Parent {
		depth++
	}
	return depth
}

// Define inserts a symbol into the current scope, or updates it.
//
// REDECLARATION POLICY: If the name already exists in the current scope,
// only its Type is updated - kind and offset are preserved. This is not
// a convenience: the parser pre-registers parameters and signatures, and
// the checker and generator later re-add the same names when they walk
// the tree with their own scopes. The second and third Define of a name
// must land on the slot the first one allocated.
func (t *Table) Define(name string, tok lexer.Token, typ types.Type, kind SymbolKind) *Symbol {
	if existing, ok := t.current.symbols[name]; ok {
		existing.Type = typ
		return existing
	}

	sym := &Symbol{
		Name: name,
		Tok:  tok,
		Type: typ,
		Kind: kind,
	}

	switch kind {
	case SymbolParam:
		sym.Offset = t.current.frame.nextParam
		t.current.frame.nextParam += OffsetStride
	case SymbolLocal:
		sym.Offset = t.current.frame.nextLocal
		t.current.frame.nextLocal += OffsetStride
	case SymbolGlobal:
		// Globals are addressed by label; no slot.
	}

	t.current.symbols[name] = sym
	return sym
}

// Lookup finds a symbol by name, searching innermost-to-outermost scope.
// The first match wins, giving standard lexical shadowing. Returns nil if
// the name is not bound anywhere.
func (t *Table) Lookup(name string) *Symbol {
	for s := t.current; s != nil; s = s.Parent {
		if sym, ok := s.symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// LookupLocal finds a symbol only in the current scope. Used to detect
// redeclarations without being fooled by shadowed outer bindings.
func (t *Table) LookupLocal(name string) *Symbol {
	return t.current.symbols[name]
}
