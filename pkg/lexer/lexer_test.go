package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `(define x 3.14)
'(1 2 3)
` + "`(+ 1 ,x @y)" + `
"hello\nworld"`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TOKEN_LPAREN, "("},
		{TOKEN_SYMBOL, "define"},
		{TOKEN_SYMBOL, "x"},
		{TOKEN_FLOAT, "3.14"},
		{TOKEN_RPAREN, ")"},
		{TOKEN_QUOTE, "'"},
		{TOKEN_LPAREN, "("},
		{TOKEN_INT, "1"},
		{TOKEN_INT, "2"},
		{TOKEN_INT, "3"},
		{TOKEN_RPAREN, ")"},
		{TOKEN_QUASIQUOTE, "`"},
		{TOKEN_LPAREN, "("},
		{TOKEN_SYMBOL, "+"},
		{TOKEN_INT, "1"},
		{TOKEN_UNQUOTE, ","},
		{TOKEN_SYMBOL, "x"},
		{TOKEN_UNQUOTE_SPLICE, "@"},
		{TOKEN_SYMBOL, "y"},
		{TOKEN_RPAREN, ")"},
		{TOKEN_STRING, "hello\nworld"},
		{TOKEN_EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestSymbolDelimitedByPrefix(t *testing.T) {
	l := New("foo'bar")

	tok := l.NextToken()
	if tok.Type != TOKEN_SYMBOL || tok.Literal != "foo" {
		t.Fatalf("expected SYMBOL %q, got %q %q", "foo", tok.Type, tok.Literal)
	}

	tok = l.NextToken()
	if tok.Type != TOKEN_QUOTE {
		t.Fatalf("expected QUOTE, got %q", tok.Type)
	}
}

func TestUnterminatedStringIsIllegal(t *testing.T) {
	l := New(`"unterminated`)

	tok := l.NextToken()
	if tok.Type != TOKEN_ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %q", tok.Type)
	}
}

func TestSymbolScanning(t *testing.T) {
	l := New("abc")
	tok := l.NextToken()
	if tok.Type != TOKEN_SYMBOL || tok.Literal != "abc" {
		t.Fatalf("expected SYMBOL %q, got %q %q", "abc", tok.Type, tok.Literal)
	}
}
