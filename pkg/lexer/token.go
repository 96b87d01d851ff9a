package lexer

import "fmt"

// TokenType classifies a lexical token produced by the Lexer.
type TokenType int

// Token type constants. The lexer reserves no keywords: quote, if,
// define, and every other special form are bare SYMBOL tokens and
// acquire meaning only when the evaluator dispatches on them.
const (
	TOKEN_EOF     TokenType = iota // end of input
	TOKEN_ILLEGAL                  // unmatched character sequence

	TOKEN_INT    // [0-9]+
	TOKEN_FLOAT  // [0-9]+\.[0-9]+
	TOKEN_STRING // "..." with \" and \n escapes resolved
	TOKEN_SYMBOL // one or more of [^ \t\n()'`@,]

	TOKEN_LPAREN         // (
	TOKEN_RPAREN         // )
	TOKEN_QUOTE          // '
	TOKEN_QUASIQUOTE     // `
	TOKEN_UNQUOTE        // ,
	TOKEN_UNQUOTE_SPLICE // @
)

var tokenNames = map[TokenType]string{
	TOKEN_EOF:            "EOF",
	TOKEN_ILLEGAL:        "ILLEGAL",
	TOKEN_INT:            "INT",
	TOKEN_FLOAT:          "FLOAT",
	TOKEN_STRING:         "STRING",
	TOKEN_SYMBOL:         "SYMBOL",
	TOKEN_LPAREN:         "LPAREN",
	TOKEN_RPAREN:         "RPAREN",
	TOKEN_QUOTE:          "QUOTE",
	TOKEN_QUASIQUOTE:     "QUASIQUOTE",
	TOKEN_UNQUOTE:        "UNQUOTE",
	TOKEN_UNQUOTE_SPLICE: "UNQUOTE_SPLICE",
}

// String implements fmt.Stringer for error messages and debugging.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is one lexical unit: its kind, the literal text it was produced
// from (already escape-resolved for STRING), and its source position.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// isDigit reports whether ch is a decimal digit.
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// isSpace reports whether ch is lexer-significant whitespace.
func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// isDelimiter reports whether ch terminates a SYMBOL token: whitespace,
// parens, or one of the reader-macro prefix characters.
func isDelimiter(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '(', ')', '\'', '`', '@', ',':
		return true
	default:
		return false
	}
}
