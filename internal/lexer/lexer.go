package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// maxNumberLen bounds the source text of a numeric literal. Longer literals
// could never fit the target's 64-bit numeric types anyway, so they are
// reported at scan time.
const maxNumberLen = 64

// Lexer performs lexical analysis on Sable source, converting it into a
// stream of tokens.
//
// Besides ordinary scanning, the lexer owns the language's layout rules:
// it measures leading whitespace at each line start against an indentation
// stack and synthesizes Indent/Dedent tokens, so the parser sees explicit
// block structure. Blank lines and comment-only lines are invisible to the
// layout algorithm.
//
// DESIGN CHOICE: A struct with methods rather than a functional approach:
// state management is clearer (cursor, line, indentation stack), and it
// matches Go idioms (similar to bufio.Scanner).
type Lexer struct {
	// source is the complete source code being lexed.
	// The entire source is held in memory: lookahead and position tracking
	// are simpler, and error reporting can show context.
	source string

	// filename is the name of the source file (for error reporting).
	filename string

	// start is the byte offset of the token being scanned; the lexeme is
	// source[start:current].
	start int

	// current is the byte offset being examined.
	current int

	// line is the current line number (1-based).
	line int

	// lineStart is the byte offset where the current line started.
	// Column numbers are computed on demand: column = start - lineStart + 1.
	lineStart int

	// indents is the stack of active indentation widths. It always holds
	// at least the base level 0; it grows strictly while lexing nested
	// blocks, and every dedent must land exactly on a stacked width.
	indents []int

	// atLineStart is true when the next scan must first measure leading
	// whitespace against the indentation stack.
	atLineStart bool

	// pendingDedents counts Dedent tokens still owed after a multi-level
	// dedent; one is emitted per NextToken call.
	pendingDedents int
}

// New creates a new Lexer for the given source code.
func New(source, filename string) *Lexer {
	return &Lexer{
		source:      source,
		filename:    filename,
		line:        1, // Lines are 1-based
		indents:     []int{0},
		atLineStart: true,
	}
}

// NextToken returns the next token from the source.
//
// This is the main entry point; the parser calls it repeatedly until it
// gets TokenEOF. Lexical errors do not halt scanning: the call returns a
// TokenInvalid token whose Lexeme is the message, together with a non-nil
// error, and the next call resumes after the offending input. The parser
// decides how to surface and recover.
func (l *Lexer) NextToken() (Token, error) {
	// Owed dedents are drained one per call before anything else.
	if l.pendingDedents > 0 {
		l.pendingDedents--
		l.start = l.current
		return l.makeToken(TokenDedent, ""), nil
	}

	if l.atLineStart {
		if tok, emitted, err := l.handleLineStart(); emitted {
			return tok, err
		}
	}

	l.skipWhitespace()
	l.start = l.current

	if l.isAtEnd() {
		// Close any still-open blocks before the final EOF so Indent and
		// Dedent counts balance even when the source ends mid-block.
		if len(l.indents) > 1 {
			l.indents = l.indents[:len(l.indents)-1]
			return l.makeToken(TokenDedent, ""), nil
		}
		return l.makeToken(TokenEOF, ""), nil
	}

	ch, _ := l.advance()

	if ch == '\n' {
		l.line++
		l.lineStart = l.current
		l.atLineStart = true
		return l.makeToken(TokenNewline, "\\n"), nil
	}

	if isLetter(ch) {
		return l.scanIdentifier(), nil
	}

	if isDigit(ch) {
		return l.scanNumber()
	}

	switch ch {
	case '(':
		return l.makeToken(TokenLeftParen, "("), nil
	case ')':
		return l.makeToken(TokenRightParen, ")"), nil
	case '[':
		return l.makeToken(TokenLeftBracket, "["), nil
	case ']':
		return l.makeToken(TokenRightBracket, "]"), nil
	case ':':
		return l.makeToken(TokenColon, ":"), nil
	case ',':
		return l.makeToken(TokenComma, ","), nil
	case ';':
		return l.makeToken(TokenSemicolon, ";"), nil

	case '+':
		if l.match('+') {
			return l.makeToken(TokenPlusPlus, "++"), nil
		}
		return l.makeToken(TokenPlus, "+"), nil

	case '-':
		if l.match('-') {
			return l.makeToken(TokenMinusMinus, "--"), nil
		} else if l.match('>') {
			return l.makeToken(TokenArrow, "->"), nil
		}
		return l.makeToken(TokenMinus, "-"), nil

	case '*':
		return l.makeToken(TokenStar, "*"), nil

	case '/':
		// '//' comments are consumed in skipWhitespace; a surviving '/'
		// is always the division operator.
		return l.makeToken(TokenSlash, "/"), nil

	case '%':
		return l.makeToken(TokenPercent, "%"), nil

	case '=':
		if l.match('=') {
			return l.makeToken(TokenEqual, "=="), nil
		} else if l.match('>') {
			return l.makeToken(TokenFatArrow, "=>"), nil
		}
		return l.makeToken(TokenAssign, "="), nil

	case '!':
		if l.match('=') {
			return l.makeToken(TokenNotEqual, "!="), nil
		}
		return l.makeToken(TokenNot, "!"), nil

	case '<':
		if l.match('=') {
			return l.makeToken(TokenLessEqual, "<="), nil
		}
		return l.makeToken(TokenLess, "<"), nil

	case '>':
		if l.match('=') {
			return l.makeToken(TokenGreaterEqual, ">="), nil
		}
		return l.makeToken(TokenGreater, ">"), nil

	case '&':
		if l.match('&') {
			return l.makeToken(TokenAnd, "&&"), nil
		}
		return l.errorToken("Unexpected character '&'")

	case '|':
		if l.match('|') {
			return l.makeToken(TokenOr, "||"), nil
		}
		return l.errorToken("Unexpected character '|'")

	case '"':
		return l.scanString()

	case '$':
		if l.match('"') {
			return l.scanInterpString()
		}
		return l.errorToken("Unexpected character '$'")

	case '\'':
		return l.scanChar()

	default:
		return l.errorToken(fmt.Sprintf("Unexpected character %q", ch))
	}
}

// ResetIndentation collapses the indentation stack back to the base level
// and drops any owed dedents. The parser calls this during panic-mode
// recovery so one malformed statement cannot cascade into a file full of
// spurious indentation errors; subsequent lines are treated as top-level.
func (l *Lexer) ResetIndentation() {
	l.indents = l.indents[:1]
	l.pendingDedents = 0
}

// IndentDepth returns the current depth of the indentation stack
// (1 when only the base level is active).
func (l *Lexer) IndentDepth() int {
	return len(l.indents)
}

// handleLineStart measures the leading whitespace of the current line
// against the indentation stack. It returns (token, true, err) when a
// layout token (or layout error) must be emitted before normal scanning;
// (Token{}, false, nil) when scanning should proceed on this line.
//
// Blank lines and comment-only lines produce no layout tokens at all:
// they are skipped here and the following line is measured instead.
func (l *Lexer) handleLineStart() (Token, bool, error) {
	for {
		if l.isAtEnd() {
			l.atLineStart = false
			return Token{}, false, nil
		}

		// Measure leading whitespace width.
		width := 0
		for !l.isAtEnd() {
			ch := l.peek()
			if ch == ' ' || ch == '\t' {
				l.advance()
				width++
			} else if ch == '\r' {
				l.advance()
			} else {
				break
			}
		}

		// A blank or comment-only line is invisible to the layout
		// algorithm: consume it and measure the next line.
		if l.isAtEnd() {
			l.atLineStart = false
			return Token{}, false, nil
		}
		if l.peek() == '\n' {
			l.advance()
			l.line++
			l.lineStart = l.current
			continue
		}
		if l.peek() == '/' && l.peekNext() == '/' {
			for !l.isAtEnd() && l.peek() != '\n' {
				l.advance()
			}
			continue
		}

		l.atLineStart = false
		l.start = l.current
		top := l.indents[len(l.indents)-1]

		switch {
		case width == top:
			return Token{}, false, nil

		case width > top:
			l.indents = append(l.indents, width)
			return l.makeToken(TokenIndent, ""), true, nil

		default:
			// Pop levels until the stack top is at or below the new
			// width; landing between two stacked levels is an error.
			pops := 0
			for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
				l.indents = l.indents[:len(l.indents)-1]
				pops++
			}
			if l.indents[len(l.indents)-1] != width {
				tok, err := l.errorToken(fmt.Sprintf(
					"Inconsistent indentation: no enclosing block at width %d (outer block is at width %d)",
					width, l.indents[len(l.indents)-1]))
				// The popped levels are still owed so Indent/Dedent
				// counts stay balanced for the rest of the file.
				l.pendingDedents = pops
				return tok, true, err
			}
			l.pendingDedents = pops - 1
			return l.makeToken(TokenDedent, ""), true, nil
		}
	}
}

// advance reads and returns the next character, advancing the cursor.
// Returns both the rune and its byte size; "世界" is two characters.
func (l *Lexer) advance() (rune, int) {
	if l.isAtEnd() {
		return 0, 0
	}
	ch, size := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += size
	return ch, size
}

// peek returns the current character without advancing; 0 at end of input.
func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return ch
}

// peekNext returns the character after the current one without advancing.
func (l *Lexer) peekNext() rune {
	if l.current >= len(l.source) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.current:])
	if l.current+size >= len(l.source) {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.current+size:])
	return ch
}

// match consumes the current character if it equals expected.
func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() {
		return false
	}
	ch, size := utf8.DecodeRuneInString(l.source[l.current:])
	if ch != expected {
		return false
	}
	l.current += size
	return true
}

// isAtEnd returns true if all source has been consumed.
func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

// skipWhitespace skips spaces, tabs, carriage returns and '//' comments.
// Newlines are NOT skipped: they are statement terminators and are
// tokenized by NextToken.
func (l *Lexer) skipWhitespace() {
	for {
		if l.isAtEnd() {
			return
		}

		ch := l.peek()
		switch ch {
		case ' ', '\r', '\t':
			l.advance()
		case '/':
			if l.peekNext() == '/' {
				// Line comment: consume up to (not including) the newline
				// so the terminator is still emitted.
				for !l.isAtEnd() && l.peek() != '\n' {
					l.advance()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

// scanIdentifier scans an identifier or keyword.
// Starts with a letter or underscore, continues with letters, digits or
// underscores. true/false become boolean literal tokens with a decoded
// payload.
func (l *Lexer) scanIdentifier() Token {
	for !l.isAtEnd() {
		ch := l.peek()
		if isLetter(ch) || isDigit(ch) {
			l.advance()
		} else {
			break
		}
	}

	text := l.source[l.start:l.current]
	tokenType := LookupKeyword(text)

	tok := l.makeToken(tokenType, text)
	switch tokenType {
	case TokenTrue:
		tok.Literal = true
	case TokenFalse:
		tok.Literal = false
	}
	return tok
}

// scanNumber scans a numeric literal.
//
// FORMATS:
//   - 123         int
//   - 123l        long
//   - 1.5, 1.5d   double (a fractional part or 'd' suffix both make one)
//
// The lexer, not the parser, decides the numeric kind, because the kind is
// purely lexical (suffix/fraction) and the decoded value rides on the token.
func (l *Lexer) scanNumber() (Token, error) {
	for !l.isAtEnd() && isDigit(l.peek()) {
		l.advance()
	}

	isDouble := false
	if !l.isAtEnd() && l.peek() == '.' && isDigit(l.peekNext()) {
		isDouble = true
		l.advance() // consume '.'
		for !l.isAtEnd() && isDigit(l.peek()) {
			l.advance()
		}
	}

	text := l.source[l.start:l.current]
	if len(text) > maxNumberLen {
		return l.errorToken("Number literal too long")
	}

	if isDouble {
		// Optional 'd' suffix is accepted and ignored; the literal is a
		// double either way.
		l.match('d')
		value, err := parseFloat(text)
		if err != nil {
			return l.errorToken(fmt.Sprintf("Invalid number literal '%s'", text))
		}
		tok := l.makeToken(TokenDouble, text)
		tok.Literal = value
		return tok, nil
	}

	if l.match('d') {
		value, err := parseFloat(text)
		if err != nil {
			return l.errorToken(fmt.Sprintf("Invalid number literal '%s'", text))
		}
		tok := l.makeToken(TokenDouble, text)
		tok.Literal = value
		return tok, nil
	}

	value, err := parseInt(text)
	if err != nil {
		return l.errorToken(fmt.Sprintf("Invalid number literal '%s'", text))
	}

	if l.match('l') {
		tok := l.makeToken(TokenLong, text)
		tok.Literal = value
		return tok, nil
	}

	tok := l.makeToken(TokenInt, text)
	tok.Literal = value
	return tok, nil
}

// scanString scans a plain string literal, decoding escape sequences into
// the token's Literal payload. The text may span multiple lines; embedded
// newlines advance the line counter.
func (l *Lexer) scanString() (Token, error) {
	var decoded []byte

	for !l.isAtEnd() {
		ch := l.peek()

		if ch == '"' {
			l.advance()
			tok := l.makeToken(TokenString, l.source[l.start:l.current])
			tok.Literal = string(decoded)
			return tok, nil
		}

		if ch == '\\' {
			l.advance()
			esc, ok := l.decodeEscape()
			if !ok {
				return l.errorToken(fmt.Sprintf("Invalid escape sequence '\\%c'", esc))
			}
			decoded = append(decoded, byte(esc))
			continue
		}

		if ch == '\n' {
			l.line++
			l.lineStart = l.current + 1
		}
		r, _ := l.advance()
		decoded = utf8.AppendRune(decoded, r)
	}

	return l.errorToken("Unterminated string")
}

// scanInterpString scans an interpolated string literal ($"..."). The same
// quoting and escape rules as scanString apply to finding the end of the
// literal, but the body (including {expr} placeholders and escape
// sequences) is captured verbatim: the parser re-lexes it segment by
// segment when lowering the literal.
func (l *Lexer) scanInterpString() (Token, error) {
	bodyStart := l.current

	for !l.isAtEnd() {
		ch := l.peek()

		if ch == '"' {
			raw := l.source[bodyStart:l.current]
			l.advance()
			tok := l.makeToken(TokenInterpString, raw)
			tok.Literal = raw
			return tok, nil
		}

		if ch == '\\' {
			l.advance()
			if esc, ok := l.decodeEscape(); !ok {
				return l.errorToken(fmt.Sprintf("Invalid escape sequence '\\%c'", esc))
			}
			continue
		}

		if ch == '\n' {
			l.line++
			l.lineStart = l.current + 1
		}
		l.advance()
	}

	return l.errorToken("Unterminated string")
}

// decodeEscape consumes the character after a backslash and returns its
// decoded value. Returns (offending rune, false) for unknown escapes.
func (l *Lexer) decodeEscape() (rune, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch, _ := l.advance()
	switch ch {
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case '\\':
		return '\\', true
	case '"':
		return '"', true
	case '\'':
		return '\'', true
	case '0':
		return 0, true
	default:
		return ch, false
	}
}

// DecodeText decodes the escape sequences of a raw interpolated-string
// segment using the same rules as plain string literals. The parser uses
// this when lowering the literal runs of an interpolated string.
func DecodeText(raw string) (string, bool) {
	var out []byte
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' {
			out = append(out, raw[i])
			continue
		}
		i++
		if i >= len(raw) {
			return "", false
		}
		switch raw[i] {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case '\\':
			out = append(out, '\\')
		case '"':
			out = append(out, '"')
		case '\'':
			out = append(out, '\'')
		case '0':
			out = append(out, 0)
		default:
			return "", false
		}
	}
	return string(out), true
}

// scanChar scans a character literal: 'a', '\n', '\t', ...
// Exactly one character (after escaping); empty or unterminated literals
// are errors.
func (l *Lexer) scanChar() (Token, error) {
	if l.isAtEnd() {
		return l.errorToken("Unterminated character literal")
	}

	ch := l.peek()
	if ch == '\'' {
		l.advance()
		return l.errorToken("Empty character literal")
	}
	if ch == '\n' {
		return l.errorToken("Unterminated character literal")
	}

	var value rune
	if ch == '\\' {
		l.advance()
		esc, ok := l.decodeEscape()
		if !ok {
			return l.errorToken(fmt.Sprintf("Invalid escape sequence '\\%c'", esc))
		}
		value = esc
	} else {
		value, _ = l.advance()
	}

	if l.isAtEnd() || l.peek() != '\'' {
		return l.errorToken("Unterminated character literal")
	}
	l.advance()

	tok := l.makeToken(TokenChar, string(value))
	tok.Literal = value
	return tok, nil
}

// makeToken creates a token with the current position information.
func (l *Lexer) makeToken(tokenType TokenType, lexeme string) Token {
	return Token{
		Type:     tokenType,
		Lexeme:   lexeme,
		Position: l.currentPosition(),
		Length:   l.current - l.start,
	}
}

// errorToken creates a TokenInvalid carrying message, plus a matching
// error value with the position prefixed.
func (l *Lexer) errorToken(message string) (Token, error) {
	tok := l.makeToken(TokenInvalid, message)
	return tok, fmt.Errorf("%s: %s", l.currentPosition().String(), message)
}

// currentPosition returns the position of the token being scanned.
func (l *Lexer) currentPosition() Position {
	return Position{
		Filename: l.filename,
		Line:     l.line,
		Column:   l.start - l.lineStart + 1,
		Offset:   l.start,
	}
}

// parseInt converts decimal literal text to an int64.
// Hand-rolled because literal text is already validated to be digits only.
func parseInt(text string) (int64, error) {
	var n int64
	for i := 0; i < len(text); i++ {
		d := int64(text[i] - '0')
		if n > (1<<63-1-d)/10 {
			return 0, fmt.Errorf("integer literal overflows 64 bits")
		}
		n = n*10 + d
	}
	return n, nil
}

// parseFloat converts decimal literal text (digits with an optional single
// fraction) to a float64.
func parseFloat(text string) (float64, error) {
	var whole float64
	i := 0
	for i < len(text) && text[i] != '.' {
		whole = whole*10 + float64(text[i]-'0')
		i++
	}
	if i == len(text) {
		return whole, nil
	}
	i++ // skip '.'
	frac, scale := 0.0, 1.0
	for ; i < len(text); i++ {
		if !isDigit(rune(text[i])) {
			return 0, fmt.Errorf("malformed fraction")
		}
		frac = frac*10 + float64(text[i]-'0')
		scale *= 10
	}
	return whole + frac/scale, nil
}

// Character classification helpers

// isLetter returns true if the rune is a letter or underscore.
// Unicode letter classification: inclusive, and Go provides it for free.
func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

// isDigit returns true for ASCII decimal digits; numeric literals are
// ASCII only, like most languages.
func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
