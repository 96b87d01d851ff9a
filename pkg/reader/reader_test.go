package reader

import (
	"testing"

	"github.com/conneroisu/golisp/internal/value"
	"github.com/conneroisu/golisp/pkg/lexer"
)

func testIntLiteral(t *testing.T, v value.Value, want int64) bool {
	i, ok := v.(value.Int)
	if !ok {
		t.Errorf("v not value.Int. got=%T", v)

		return false
	}
	if int64(i) != want {
		t.Errorf("i not %d. got=%d", want, i)

		return false
	}

	return true
}

func testSym(t *testing.T, v value.Value, want string) bool {
	s, ok := v.(value.Sym)
	if !ok {
		t.Errorf("v not value.Sym. got=%T", v)

		return false
	}
	if string(s) != want {
		t.Errorf("s not %q. got=%q", want, s)

		return false
	}

	return true
}

func readOne(t *testing.T, input string) value.Value {
	t.Helper()

	r := New(lexer.New(input))
	term, err := r.Read()
	if err != nil {
		t.Fatalf("Read() returned error: %v", err)
	}

	return term
}

func TestReadAtoms(t *testing.T) {
	testIntLiteral(t, readOne(t, "42"), 42)
	testSym(t, readOne(t, "foo"), "foo")

	f, ok := readOne(t, "3.5").(value.Float)
	if !ok || float64(f) != 3.5 {
		t.Fatalf("expected Float(3.5), got %#v", f)
	}

	s, ok := readOne(t, `"hi"`).(value.Str)
	if !ok || string(s) != "hi" {
		t.Fatalf("expected Str(hi), got %#v", s)
	}
}

func TestReadList(t *testing.T) {
	lst, ok := readOne(t, "(1 2 3)").(*value.List)
	if !ok {
		t.Fatalf("expected *value.List, got %T", lst)
	}
	if lst.Len() != 3 {
		t.Fatalf("expected 3 elements, got %d", lst.Len())
	}
	testIntLiteral(t, lst.Elems[0], 1)
	testIntLiteral(t, lst.Elems[1], 2)
	testIntLiteral(t, lst.Elems[2], 3)
}

func TestReaderMacroPrefixes(t *testing.T) {
	tests := []struct {
		input string
		head  string
	}{
		{"'x", "quote"},
		{"`x", "quasiquote"},
		{",x", "unquote"},
		{"@x", "unquote-splicing"},
	}

	for _, tt := range tests {
		lst, ok := readOne(t, tt.input).(*value.List)
		if !ok || lst.Len() != 2 {
			t.Fatalf("%s: expected a 2-element list, got %#v", tt.input, lst)
		}
		testSym(t, lst.Elems[0], tt.head)
		testSym(t, lst.Elems[1], "x")
	}
}

func TestUnbalancedListIsParseError(t *testing.T) {
	r := New(lexer.New("(1 2"))
	if _, err := r.Read(); err == nil {
		t.Fatal("expected an unbalanced-list error, got nil")
	}
}

func TestProgramReadsMultipleTerms(t *testing.T) {
	r := New(lexer.New("(define x 1) x"))
	terms, err := r.Program()
	if err != nil {
		t.Fatalf("Program() returned error: %v", err)
	}
	if len(terms) != 2 {
		t.Fatalf("expected 2 top-level terms, got %d", len(terms))
	}
}
