package reader

import (
	"github.com/conneroisu/golisp/internal/lerr"
	"github.com/conneroisu/golisp/internal/value"
	"github.com/conneroisu/golisp/pkg/lexer"
)

// Reader reads one or more top-level terms from a token stream.
type Reader struct {
	l    *lexer.Lexer
	cur  lexer.Token
	peek lexer.Token
}

// New creates a Reader over the given Lexer, priming the one-token
// lookahead window.
func New(l *lexer.Lexer) *Reader {
	r := &Reader{l: l}
	r.advance()
	r.advance()

	return r
}

func (r *Reader) advance() {
	r.cur = r.peek
	r.peek = r.l.NextToken()
}

// AtEOF reports whether the stream has been fully consumed.
func (r *Reader) AtEOF() bool {
	return r.cur.Type == lexer.TOKEN_EOF
}

// prefixForms maps each reader-macro prefix token to the special-form
// symbol name it desugars to.
var prefixForms = map[lexer.TokenType]string{
	lexer.TOKEN_QUOTE:          "quote",
	lexer.TOKEN_QUASIQUOTE:     "quasiquote",
	lexer.TOKEN_UNQUOTE:        "unquote",
	lexer.TOKEN_UNQUOTE_SPLICE: "unquote-splicing",
}

// Read consumes and returns exactly one top-level term.
func (r *Reader) Read() (value.Value, error) {
	tok := r.cur

	switch tok.Type {
	case lexer.TOKEN_EOF:
		return nil, lerr.New(lerr.KindParse, "unexpected end of input")
	case lexer.TOKEN_ILLEGAL:
		r.advance()

		return nil, lerr.New(lerr.KindLex, "unrecognized input %q at line %d, column %d", tok.Literal, tok.Line, tok.Column)
	case lexer.TOKEN_LPAREN:
		return r.readList()
	case lexer.TOKEN_RPAREN:
		return nil, lerr.New(lerr.KindParse, "unexpected %q at line %d, column %d", ")", tok.Line, tok.Column)
	case lexer.TOKEN_QUOTE, lexer.TOKEN_QUASIQUOTE, lexer.TOKEN_UNQUOTE, lexer.TOKEN_UNQUOTE_SPLICE:
		r.advance()

		inner, err := r.Read()
		if err != nil {
			return nil, err
		}

		return value.NewList(value.Sym(prefixForms[tok.Type]), inner), nil
	case lexer.TOKEN_INT:
		r.advance()

		return parseInt(tok)
	case lexer.TOKEN_FLOAT:
		r.advance()

		return parseFloat(tok)
	case lexer.TOKEN_STRING:
		r.advance()

		return value.Str(tok.Literal), nil
	case lexer.TOKEN_SYMBOL:
		r.advance()

		return value.Sym(tok.Literal), nil
	default:
		r.advance()

		return nil, lerr.New(lerr.KindParse, "unexpected token %s at line %d, column %d", tok.Type, tok.Line, tok.Column)
	}
}

// readList reads terms until a matching RPAREN, failing ParseError
// (UnbalancedList) if EOF is reached first.
func (r *Reader) readList() (value.Value, error) {
	openLine, openCol := r.cur.Line, r.cur.Column
	r.advance() // consume '('

	var elems []value.Value

	for {
		if r.cur.Type == lexer.TOKEN_RPAREN {
			r.advance()

			return value.NewList(elems...), nil
		}
		if r.cur.Type == lexer.TOKEN_EOF {
			return nil, lerr.New(lerr.KindParse, "unbalanced list opened at line %d, column %d", openLine, openCol)
		}

		term, err := r.Read()
		if err != nil {
			return nil, err
		}
		elems = append(elems, term)
	}
}

// Program reads every top-level term until the stream is exhausted.
func (r *Reader) Program() ([]value.Value, error) {
	var terms []value.Value
	for !r.AtEOF() {
		term, err := r.Read()
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}

	return terms, nil
}
