package reader

import (
	"strconv"

	"github.com/conneroisu/golisp/internal/lerr"
	"github.com/conneroisu/golisp/internal/value"
	"github.com/conneroisu/golisp/pkg/lexer"
)

func parseInt(tok lexer.Token) (value.Value, error) {
	n, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		return nil, lerr.New(lerr.KindParse, "could not parse %q as integer at line %d", tok.Literal, tok.Line)
	}

	return value.Int(n), nil
}

func parseFloat(tok lexer.Token) (value.Value, error) {
	f, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return nil, lerr.New(lerr.KindParse, "could not parse %q as float at line %d", tok.Literal, tok.Line)
	}

	return value.Float(f), nil
}
