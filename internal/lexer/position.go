// Package lexer provides lexical analysis (tokenization) for the Sable
// compiler. It transforms raw source text into a stream of tokens, including
// the synthetic Indent/Dedent/Newline tokens that carry the language's
// indentation structure to the parser.
package lexer

// Position represents a location in the source code.
//
// DESIGN CHOICE: Position is a value type (not a pointer) because:
// 1. It's small (a string header plus three integers)
// 2. It's immutable once created
// 3. Copying is cheap and avoids pointer chasing
// 4. No need for nil state - invalid positions can use zero values
type Position struct {
	// Filename is the name of the source file.
	// We store this in every Position rather than using a file ID because
	// it makes error messages self-contained and easier to read.
	Filename string

	// Line is the 1-based line number.
	// 1-based because that is how editors display line numbers, and the
	// zero value can represent "no line" / invalid position.
	Line int

	// Column is the 1-based column number, counted in runes.
	Column int

	// Offset is the 0-based byte offset from the start of the file.
	// Used for fast slicing into the source buffer and for span lengths.
	Offset int
}

// String returns a human-readable representation of the position.
// Format: "filename:line:column", the GCC/Clang convention, so editors and
// CI systems can turn diagnostics into clickable links.
func (p Position) String() string {
	return p.Filename + ":" + itoa(p.Line) + ":" + itoa(p.Column)
}

// IsValid returns true if the position has a line number.
// Line is the minimum information needed for error reporting, so the zero
// value Position{} correctly reports as invalid.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before returns true if this position comes before the other position.
// Positions are compared by offset: it is a single comparison and offset is
// the source of truth (line/column are derived from it).
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// After returns true if this position comes after the other position.
func (p Position) After(other Position) bool {
	return p.Offset > other.Offset
}

// itoa is a simple integer to ASCII conversion.
// Implemented locally to avoid importing strconv for the hot error-message
// path; line/column numbers are small.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}

	negative := false
	if n < 0 {
		negative = true
		n = -n
	}

	buf := make([]byte, 0, 12)
	for n > 0 {
		buf = append(buf, byte('0'+n%10))
		n /= 10
	}

	if negative {
		buf = append(buf, '-')
	}

	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf)
}

// Span represents a range in the source code from Start to End (inclusive).
// Used for error underlining and for extracting source excerpts.
type Span struct {
	Start Position
	End   Position
}

// String returns "filename:startLine:startCol-endLine:endCol", collapsing
// single-line spans to "filename:line:col1-col2".
func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		return s.Start.Filename + ":" + itoa(s.Start.Line) + ":" +
			itoa(s.Start.Column) + "-" + itoa(s.End.Column)
	}
	return s.Start.String() + "-" + itoa(s.End.Line) + ":" + itoa(s.End.Column)
}

// IsValid returns true if both positions are valid and ordered correctly.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() && !s.End.Before(s.Start)
}

// Contains returns true if the given position is within this span (inclusive).
func (s Span) Contains(pos Position) bool {
	return !pos.Before(s.Start) && !pos.After(s.End)
}

// Length returns the number of bytes covered by this span.
func (s Span) Length() int {
	if !s.IsValid() {
		return 0
	}
	return s.End.Offset - s.Start.Offset
}
