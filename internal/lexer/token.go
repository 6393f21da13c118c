package lexer

// TokenType represents the type of a token.
//
// DESIGN CHOICE: We use an int-based enum (via iota) rather than strings because:
// 1. Faster comparisons (integer vs string comparison)
// 2. Less memory (1 int vs string pointer + length + data)
// 3. Type safety (compiler catches typos)
//
// The downside is a verbose String() implementation, but that is only used
// for debugging and error messages, not hot paths.
type TokenType int

// Token type enumeration.
//
// ORGANIZATION: Tokens are grouped logically:
// 1. Special tokens (EOF, Invalid, layout tokens)
// 2. Literals
// 3. Identifiers and keywords
// 4. Operators
// 5. Delimiters
const (
	// Special tokens

	// TokenEOF marks the end of the input.
	// A token rather than nil/error: it simplifies parser logic, it has a
	// position (useful for "unexpected end of file" errors), and it is
	// consistent with how most compilers work.
	TokenEOF TokenType = iota

	// TokenInvalid represents a lexical error.
	// We use this instead of aborting immediately because:
	// - It allows the lexer to continue and find more errors
	// - Parser can recover and report multiple errors in one pass
	// - The error message is stored in Token.Lexeme
	TokenInvalid

	// Layout tokens. Sable is indentation-sensitive, so the lexer
	// synthesizes block structure rather than reading braces:
	// TokenIndent opens a block, TokenDedent closes one, and TokenNewline
	// terminates a statement (interchangeable with ';').
	TokenNewline
	TokenIndent
	TokenDedent

	// Literals

	// TokenInt, TokenLong and TokenDouble are numeric literals. The lexer
	// (not the parser) decides the numeric kind: a fractional part or a 'd'
	// suffix makes a double, an 'l' suffix makes a long. The decoded value
	// is carried in Token.Literal.
	TokenInt
	TokenLong
	TokenDouble

	// TokenString is a plain string literal; Token.Literal holds the
	// decoded (unescaped) text while Token.Lexeme keeps the raw source.
	TokenString

	// TokenInterpString is an interpolated string literal ($"..{expr}..").
	// The body is captured verbatim in Token.Literal, including the {expr}
	// placeholders; the parser re-lexes the placeholders later. The lexer
	// only handles quoting and escapes here.
	TokenInterpString

	// TokenChar is a character literal; Token.Literal holds the rune.
	TokenChar

	// TokenTrue and TokenFalse are boolean literals carrying their decoded
	// value, so the parser never needs a string comparison.
	TokenTrue
	TokenFalse

	// TokenNil is the nil literal
	TokenNil

	// Identifiers and keywords

	// TokenIdentifier represents a variable/function/type name.
	TokenIdentifier

	TokenVar
	TokenFn
	TokenReturn
	TokenIf
	TokenElse
	TokenWhile
	TokenFor
	TokenImport

	// Operators
	// Separate tokens per operator keep the parser switch-based and avoid
	// string comparisons in the hot path.

	TokenPlus    // +
	TokenMinus   // -
	TokenStar    // *
	TokenSlash   // /
	TokenPercent // %

	TokenEqual        // ==
	TokenNotEqual     // !=
	TokenLess         // <
	TokenLessEqual    // <=
	TokenGreater      // >
	TokenGreaterEqual // >=

	TokenAnd // &&
	TokenOr  // ||
	TokenNot // !

	TokenAssign // =

	TokenPlusPlus   // ++
	TokenMinusMinus // --

	TokenArrow    // ->
	TokenFatArrow // => (introduces a block body)

	// Delimiters
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBracket  // [
	TokenRightBracket // ]
	TokenColon        // :
	TokenComma        // ,
	TokenSemicolon    // ;
)

// Token represents a single lexical token.
//
// DESIGN CHOICE: Token is a value type (not pointer) because:
// 1. Tokens are small and cheap to copy
// 2. No need for sharing/mutation after creation
// 3. Avoids GC pressure (no allocations for token values)
type Token struct {
	// Type is the token type.
	Type TokenType

	// Lexeme is the actual text from the source code. For identifiers this
	// is the name; for TokenInvalid it is the error message. For tokens
	// where the type is sufficient (keywords, operators), it is the
	// expected string (e.g. "if", "==").
	Lexeme string

	// Literal carries the decoded value for literal tokens:
	// int64 for int/long, float64 for double, rune for char, string for
	// string and interpolated string bodies, bool for true/false.
	// Nil for non-literal tokens.
	Literal interface{}

	// Position is where this token appears in the source.
	Position Position

	// Length is the length of the token in bytes. Stored rather than
	// computed from Lexeme because the lexeme of a decoded literal can
	// differ from the source text it covers.
	Length int
}

// String returns a human-readable representation of the token.
// Format: "TYPE(lexeme) at position", primarily for debugging.
func (t Token) String() string {
	return t.Type.String() + "(" + t.Lexeme + ") at " + t.Position.String()
}

// Span returns the source span covered by this token.
func (t Token) Span() Span {
	return Span{
		Start: t.Position,
		End: Position{
			Filename: t.Position.Filename,
			Line:     t.Position.Line,
			Column:   t.Position.Column + runeCount(t.Lexeme),
			Offset:   t.Position.Offset + t.Length,
		},
	}
}

// runeCount returns the number of runes in s; columns count runes, not bytes.
func runeCount(s string) int {
	count := 0
	for range s {
		count++
	}
	return count
}

// String returns the string representation of a token type.
// Implemented manually rather than with stringer: full control over the
// output used in error messages, and no generated files to keep in sync.
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenInvalid:
		return "INVALID"
	case TokenNewline:
		return "NEWLINE"
	case TokenIndent:
		return "INDENT"
	case TokenDedent:
		return "DEDENT"
	case TokenInt:
		return "INT"
	case TokenLong:
		return "LONG"
	case TokenDouble:
		return "DOUBLE"
	case TokenString:
		return "STRING"
	case TokenInterpString:
		return "INTERPSTRING"
	case TokenChar:
		return "CHAR"
	case TokenTrue:
		return "TRUE"
	case TokenFalse:
		return "FALSE"
	case TokenNil:
		return "NIL"
	case TokenIdentifier:
		return "IDENTIFIER"
	case TokenVar:
		return "VAR"
	case TokenFn:
		return "FN"
	case TokenReturn:
		return "RETURN"
	case TokenIf:
		return "IF"
	case TokenElse:
		return "ELSE"
	case TokenWhile:
		return "WHILE"
	case TokenFor:
		return "FOR"
	case TokenImport:
		return "IMPORT"
	case TokenPlus:
		return "PLUS"
	case TokenMinus:
		return "MINUS"
	case TokenStar:
		return "STAR"
	case TokenSlash:
		return "SLASH"
	case TokenPercent:
		return "PERCENT"
	case TokenEqual:
		return "EQUAL"
	case TokenNotEqual:
		return "NOTEQUAL"
	case TokenLess:
		return "LESS"
	case TokenLessEqual:
		return "LESSEQUAL"
	case TokenGreater:
		return "GREATER"
	case TokenGreaterEqual:
		return "GREATEREQUAL"
	case TokenAnd:
		return "AND"
	case TokenOr:
		return "OR"
	case TokenNot:
		return "NOT"
	case TokenAssign:
		return "ASSIGN"
	case TokenPlusPlus:
		return "PLUSPLUS"
	case TokenMinusMinus:
		return "MINUSMINUS"
	case TokenArrow:
		return "ARROW"
	case TokenFatArrow:
		return "FATARROW"
	case TokenLeftParen:
		return "LPAREN"
	case TokenRightParen:
		return "RPAREN"
	case TokenLeftBracket:
		return "LBRACKET"
	case TokenRightBracket:
		return "RBRACKET"
	case TokenColon:
		return "COLON"
	case TokenComma:
		return "COMMA"
	case TokenSemicolon:
		return "SEMICOLON"
	default:
		return "UNKNOWN"
	}
}

// keywords maps keyword strings to their token types.
// A map for O(1) lookup; initialized once and never modified.
var keywords = map[string]TokenType{
	"var":    TokenVar,
	"fn":     TokenFn,
	"return": TokenReturn,
	"if":     TokenIf,
	"else":   TokenElse,
	"while":  TokenWhile,
	"for":    TokenFor,
	"import": TokenImport,
	"true":   TokenTrue,
	"false":  TokenFalse,
	"nil":    TokenNil,
}

// LookupKeyword checks if an identifier is actually a keyword.
// Returns the keyword token type if it is, or TokenIdentifier if not.
// A function rather than an exposed map: it encapsulates the table and
// prevents accidental modification.
func LookupKeyword(identifier string) TokenType {
	if tokenType, ok := keywords[identifier]; ok {
		return tokenType
	}
	return TokenIdentifier
}

// IsKeyword returns true if the token is a keyword.
// Useful for parser error recovery and syntax highlighting.
func (tt TokenType) IsKeyword() bool {
	return tt >= TokenVar && tt <= TokenImport
}

// IsLiteral returns true if the token is a literal value.
func (tt TokenType) IsLiteral() bool {
	return tt >= TokenInt && tt <= TokenNil
}
