package lexer

import (
	"strings"
	"testing"
)

// scanAll collects every token up to and including EOF. The iteration cap
// guards against a lexer that stops making progress.
func scanAll(t *testing.T, source string) []Token {
	t.Helper()
	l := New(source, "test.sbl")

	tokens := make([]Token, 0)
	for i := 0; i < 10000; i++ {
		tok, _ := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
	t.Fatal("lexer did not reach EOF within 10000 tokens")
	return nil
}

func tokenTypes(tokens []Token) []TokenType {
	result := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		result[i] = tok.Type
	}
	return result
}

func countType(tokens []Token, tt TokenType) int {
	count := 0
	for _, tok := range tokens {
		if tok.Type == tt {
			count++
		}
	}
	return count
}

func TestIndentDedentBalance(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{
			name:   "single block",
			source: "fn main() =>\n    print(1)\nvar x : int\n",
		},
		{
			name:   "nested blocks",
			source: "if a =>\n    if b =>\n        print(1)\n    print(2)\nprint(3)\n",
		},
		{
			name:   "ends mid block",
			source: "if a =>\n    if b =>\n        print(1)",
		},
		{
			name:   "blank and comment lines between levels",
			source: "if a =>\n    print(1)\n\n// comment\n    print(2)\nprint(3)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := scanAll(t, tt.source)

			indents := countType(tokens, TokenIndent)
			dedents := countType(tokens, TokenDedent)
			if indents != dedents {
				t.Errorf("indent/dedent imbalance: %d INDENT, %d DEDENT", indents, dedents)
			}
		})
	}
}

func TestPendingDedentsAtEOF(t *testing.T) {
	// Two open blocks at EOF must be closed before the EOF token.
	tokens := scanAll(t, "a\n    b\n        c")

	n := len(tokens)
	if n < 4 {
		t.Fatalf("got %d tokens, want at least 4", n)
	}
	if tokens[n-1].Type != TokenEOF {
		t.Fatalf("last token = %s, want EOF", tokens[n-1].Type)
	}
	if tokens[n-2].Type != TokenDedent || tokens[n-3].Type != TokenDedent {
		t.Errorf("tokens before EOF = %s, %s, want DEDENT, DEDENT",
			tokens[n-3].Type, tokens[n-2].Type)
	}
}

func TestMultiLevelDedentOnePerCall(t *testing.T) {
	source := "a\n    b\n        c\nd\n"
	tokens := scanAll(t, source)

	// Dedenting from depth 3 to 1 must yield two consecutive DEDENTs
	// right before the final identifier.
	types := tokenTypes(tokens)
	for i := 0; i < len(types)-2; i++ {
		if types[i] == TokenDedent && types[i+1] == TokenDedent &&
			types[i+2] == TokenIdentifier {
			return
		}
	}
	t.Errorf("expected DEDENT DEDENT IDENTIFIER sequence, got %v", types)
}

func TestInconsistentIndentation(t *testing.T) {
	// Widths 0, 2, 4 are pushed; dedenting to 3 matches none of them.
	source := "a\n  b\n    c\n   d\n"
	l := New(source, "test.sbl")

	var gotErr error
	var invalid Token
	for i := 0; i < 100; i++ {
		tok, err := l.NextToken()
		if err != nil {
			gotErr = err
			invalid = tok
			break
		}
		if tok.Type == TokenEOF {
			break
		}
	}

	if gotErr == nil {
		t.Fatal("expected an inconsistent-indentation error, got none")
	}
	if invalid.Type != TokenInvalid {
		t.Errorf("error token type = %s, want INVALID", invalid.Type)
	}
	if !strings.Contains(invalid.Lexeme, "Inconsistent indentation") {
		t.Errorf("error message = %q, want it to mention inconsistent indentation", invalid.Lexeme)
	}
	if !strings.Contains(invalid.Lexeme, "3") || !strings.Contains(invalid.Lexeme, "2") {
		t.Errorf("error message = %q, want both widths named", invalid.Lexeme)
	}
}

func TestBlankAndCommentLinesInvisible(t *testing.T) {
	source := "var x : int\n\n// a comment at the margin\n        // an indented comment\nvar y : int\n"
	tokens := scanAll(t, source)

	if n := countType(tokens, TokenIndent); n != 0 {
		t.Errorf("got %d INDENT tokens from blank/comment lines, want 0", n)
	}
	if n := countType(tokens, TokenDedent); n != 0 {
		t.Errorf("got %d DEDENT tokens from blank/comment lines, want 0", n)
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		wantType TokenType
		want     interface{}
	}{
		{"int", "123", TokenInt, int64(123)},
		{"long suffix", "123l", TokenLong, int64(123)},
		{"double fraction", "1.5", TokenDouble, 1.5},
		{"double fraction with suffix", "2.5d", TokenDouble, 2.5},
		{"double suffix only", "7d", TokenDouble, 7.0},
		{"zero", "0", TokenInt, int64(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.source, "test.sbl")
			tok, err := l.NextToken()
			if err != nil {
				t.Fatalf("NextToken() error: %v", err)
			}
			if tok.Type != tt.wantType {
				t.Errorf("token type = %s, want %s", tok.Type, tt.wantType)
			}
			if tok.Literal != tt.want {
				t.Errorf("literal payload = %v (%T), want %v (%T)",
					tok.Literal, tok.Literal, tt.want, tt.want)
			}
		})
	}
}

func TestStringLiteral(t *testing.T) {
	l := New(`"hello\tworld\n"`, "test.sbl")
	tok, err := l.NextToken()
	if err != nil {
		t.Fatalf("NextToken() error: %v", err)
	}
	if tok.Type != TokenString {
		t.Fatalf("token type = %s, want STRING", tok.Type)
	}
	if tok.Literal != "hello\tworld\n" {
		t.Errorf("decoded payload = %q, want %q", tok.Literal, "hello\tworld\n")
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"abc`, "test.sbl")

	tok, err := l.NextToken()
	if err == nil {
		t.Fatal("expected an error for unterminated string")
	}
	if tok.Type != TokenInvalid {
		t.Errorf("token type = %s, want INVALID", tok.Type)
	}
	if tok.Lexeme != "Unterminated string" {
		t.Errorf("message = %q, want %q", tok.Lexeme, "Unterminated string")
	}

	// The lexer must not hang: the next token is EOF.
	next, _ := l.NextToken()
	if next.Type != TokenEOF {
		t.Errorf("token after error = %s, want EOF", next.Type)
	}
}

func TestInvalidEscape(t *testing.T) {
	l := New(`"a\qb"`, "test.sbl")
	tok, err := l.NextToken()
	if err == nil {
		t.Fatal("expected an error for invalid escape")
	}
	if !strings.Contains(tok.Lexeme, "Invalid escape sequence") {
		t.Errorf("message = %q, want invalid-escape message", tok.Lexeme)
	}
}

func TestInterpolatedStringCapturedVerbatim(t *testing.T) {
	l := New(`$"total {1+2}\n"`, "test.sbl")
	tok, err := l.NextToken()
	if err != nil {
		t.Fatalf("NextToken() error: %v", err)
	}
	if tok.Type != TokenInterpString {
		t.Fatalf("token type = %s, want INTERPSTRING", tok.Type)
	}
	// The body is raw: placeholder braces and escape sequences intact.
	if tok.Literal != `total {1+2}\n` {
		t.Errorf("raw payload = %q, want %q", tok.Literal, `total {1+2}\n`)
	}
}

func TestCharLiterals(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		want    rune
		wantErr bool
	}{
		{"plain", "'a'", 'a', false},
		{"escape", `'\n'`, '\n', false},
		{"quote escape", `'\''`, '\'', false},
		{"empty", "''", 0, true},
		{"unterminated", "'a", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.source, "test.sbl")
			tok, err := l.NextToken()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error for %q", tt.source)
				}
				return
			}
			if err != nil {
				t.Fatalf("NextToken() error: %v", err)
			}
			if tok.Type != TokenChar {
				t.Fatalf("token type = %s, want CHAR", tok.Type)
			}
			if tok.Literal != tt.want {
				t.Errorf("payload = %q, want %q", tok.Literal, tt.want)
			}
		})
	}
}

func TestTwoCharOperators(t *testing.T) {
	source := "== != <= >= ++ -- -> => = < > ! + -"
	want := []TokenType{
		TokenEqual, TokenNotEqual, TokenLessEqual, TokenGreaterEqual,
		TokenPlusPlus, TokenMinusMinus, TokenArrow, TokenFatArrow,
		TokenAssign, TokenLess, TokenGreater, TokenNot, TokenPlus, TokenMinus,
		TokenEOF,
	}

	tokens := scanAll(t, source)
	got := tokenTypes(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	tokens := scanAll(t, "var fn return if else while for import foo true false nil")
	want := []TokenType{
		TokenVar, TokenFn, TokenReturn, TokenIf, TokenElse, TokenWhile,
		TokenFor, TokenImport, TokenIdentifier, TokenTrue, TokenFalse,
		TokenNil, TokenEOF,
	}

	got := tokenTypes(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %d tokens", got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %s, want %s", i, got[i], want[i])
		}
	}

	if tokens[9].Literal != true || tokens[10].Literal != false {
		t.Errorf("boolean literal payloads = %v, %v, want true, false",
			tokens[9].Literal, tokens[10].Literal)
	}
}

func TestResetIndentation(t *testing.T) {
	l := New("if a =>\n    b\nc\n", "test.sbl")

	// Scan into the indented block.
	for {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("NextToken() error: %v", err)
		}
		if tok.Type == TokenIndent {
			break
		}
		if tok.Type == TokenEOF {
			t.Fatal("no INDENT found")
		}
	}

	l.ResetIndentation()
	if l.IndentDepth() != 1 {
		t.Errorf("IndentDepth() after reset = %d, want 1", l.IndentDepth())
	}

	// The rest of the file must scan to EOF without emitting a DEDENT for
	// the collapsed level.
	for i := 0; i < 100; i++ {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("NextToken() after reset error: %v", err)
		}
		if tok.Type == TokenDedent {
			t.Fatal("got DEDENT after ResetIndentation")
		}
		if tok.Type == TokenEOF {
			return
		}
	}
	t.Fatal("lexer did not reach EOF")
}

func TestPositions(t *testing.T) {
	l := New("var x\nfoo", "test.sbl")

	tok, _ := l.NextToken()
	if tok.Position.Line != 1 || tok.Position.Column != 1 {
		t.Errorf("'var' at %d:%d, want 1:1", tok.Position.Line, tok.Position.Column)
	}

	tok, _ = l.NextToken()
	if tok.Position.Line != 1 || tok.Position.Column != 5 {
		t.Errorf("'x' at %d:%d, want 1:5", tok.Position.Line, tok.Position.Column)
	}

	tok, _ = l.NextToken() // newline
	tok, _ = l.NextToken()
	if tok.Lexeme != "foo" {
		t.Fatalf("token = %q, want foo", tok.Lexeme)
	}
	if tok.Position.Line != 2 || tok.Position.Column != 1 {
		t.Errorf("'foo' at %d:%d, want 2:1", tok.Position.Line, tok.Position.Column)
	}
	if tok.Position.String() != "test.sbl:2:1" {
		t.Errorf("Position.String() = %q, want %q", tok.Position.String(), "test.sbl:2:1")
	}
}
