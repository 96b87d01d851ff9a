package eval

import (
	"testing"

	"github.com/conneroisu/golisp/internal/lerr"
	"github.com/conneroisu/golisp/internal/value"
	"github.com/conneroisu/golisp/pkg/lexer"
	"github.com/conneroisu/golisp/pkg/reader"
)

// run evaluates every top-level term in src against a fresh Evaluator's
// global environment and returns the last result, the way the batch-mode
// CLI driver does.
func run(t *testing.T, src string) (value.Value, error) {
	t.Helper()

	r := reader.New(lexer.New(src))
	terms, err := r.Program()
	if err != nil {
		t.Fatalf("Program() returned error: %v", err)
	}

	ev := New(t.TempDir())

	var result value.Value = value.Nil{}
	for _, term := range terms {
		result, err = ev.Eval(term, ev.Global)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func mustRun(t *testing.T, src string) value.Value {
	t.Helper()

	v, err := run(t, src)
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", src, err)
	}

	return v
}

func testInt(t *testing.T, v value.Value, want int64) {
	t.Helper()

	i, ok := v.(value.Int)
	if !ok || int64(i) != want {
		t.Fatalf("expected Int(%d), got %#v", want, v)
	}
}

func testBool(t *testing.T, v value.Value, want bool) {
	t.Helper()

	b, ok := v.(value.Bool)
	if !ok || bool(b) != want {
		t.Fatalf("expected Bool(%v), got %#v", want, v)
	}
}

func TestArithmeticAndDefine(t *testing.T) {
	testInt(t, mustRun(t, "(define x 10) (+ x 5)"), 15)
}

func TestIfTruthiness(t *testing.T) {
	testInt(t, mustRun(t, "(if 0 1 2)"), 1)
	testInt(t, mustRun(t, "(if false 1 2)"), 2)
}

func TestLambdaClosureCapturesByReference(t *testing.T) {
	testInt(t, mustRun(t, `
		(define counter
		  (let ((n 0))
		    (lambda () (begin (set! n (+ n 1)) n))))
		(counter)
		(counter)
		(counter)
	`), 3)
}

func TestLetBindsSimultaneouslyFromOuterScope(t *testing.T) {
	testInt(t, mustRun(t, "(define x 1) (let ((x 2) (y x)) y)"), 1)
}

func TestLetStarBindsSequentially(t *testing.T) {
	testInt(t, mustRun(t, "(let* ((x 2) (y x)) y)"), 2)
}

func TestQuoteRoundTrip(t *testing.T) {
	lst, ok := mustRun(t, "(quote (1 2 3))").(*value.List)
	if !ok || lst.Len() != 3 {
		t.Fatalf("expected a 3-element list, got %#v", lst)
	}
	testInt(t, lst.Elems[0], 1)
}

func TestQuasiquoteUnquote(t *testing.T) {
	testInt(t, mustRun(t, "(define x 3) (eval `(+ 1 ,x))"), 4)
}

func TestQuasiquoteSplice(t *testing.T) {
	testInt(t, mustRun(t, "(define x (list 1 2)) (eval `(+ @x))"), 3)
}

func TestCarCdr(t *testing.T) {
	testInt(t, mustRun(t, "(car (list 1 2 3))"), 1)

	lst, ok := mustRun(t, "(cdr (list 1 2 3))").(*value.List)
	if !ok || lst.Len() != 2 {
		t.Fatalf("expected a 2-element list, got %#v", lst)
	}
}

func TestMixedArithmeticCoercesToFloat(t *testing.T) {
	f, ok := mustRun(t, "(+ 1 2.5)").(value.Float)
	if !ok || float64(f) != 3.5 {
		t.Fatalf("expected Float(3.5), got %#v", f)
	}
}

func TestComparisons(t *testing.T) {
	testBool(t, mustRun(t, "(< 1 2)"), true)
	testBool(t, mustRun(t, "(> 1 2)"), false)
}

func TestEvalIdempotentOnSelfEvaluatingResult(t *testing.T) {
	testInt(t, mustRun(t, "(eval (eval (quote 5)))"), 5)
}

func TestUnboundSymbolIsUnboundSymbolError(t *testing.T) {
	_, err := run(t, "nope")
	if err == nil || lerr.KindOf(err) != lerr.KindUnboundSymbol {
		t.Fatalf("expected KindUnboundSymbol, got %v", err)
	}
}

func TestDefineInsideLambdaBodyIsSyntaxError(t *testing.T) {
	_, err := run(t, "((lambda () (define x 1)))")
	if err == nil || lerr.KindOf(err) != lerr.KindSyntax {
		t.Fatalf("expected KindSyntax, got %v", err)
	}
}

func TestCarOfEmptyListIsTypeError(t *testing.T) {
	_, err := run(t, "(car (list))")
	if err == nil || lerr.KindOf(err) != lerr.KindType {
		t.Fatalf("expected KindType, got %v", err)
	}
}

func TestDivisionByZeroIsTypeError(t *testing.T) {
	_, err := run(t, "(/ 1 0)")
	if err == nil || lerr.KindOf(err) != lerr.KindType {
		t.Fatalf("expected KindType, got %v", err)
	}
}

func TestWrongArityIsArityError(t *testing.T) {
	_, err := run(t, "((lambda (x y) x) 1)")
	if err == nil || lerr.KindOf(err) != lerr.KindArity {
		t.Fatalf("expected KindArity, got %v", err)
	}
}

func TestCallingANonCallableIsTypeError(t *testing.T) {
	_, err := run(t, "(define x 5) (x 1)")
	if err == nil || lerr.KindOf(err) != lerr.KindType {
		t.Fatalf("expected KindType, got %v", err)
	}
}

func TestUnquoteOutsideQuasiquoteIsSyntaxError(t *testing.T) {
	_, err := run(t, "(unquote 1)")
	if err == nil || lerr.KindOf(err) != lerr.KindSyntax {
		t.Fatalf("expected KindSyntax, got %v", err)
	}
}

func TestAndOrBitwiseFold(t *testing.T) {
	testBool(t, mustRun(t, "(and true false)"), false)
	testBool(t, mustRun(t, "(or false true)"), true)
}

func TestTypePredicates(t *testing.T) {
	testBool(t, mustRun(t, "(list? (quote (1 2)))"), true)
	// Predicates inspect their raw operand: (quote x) arrives as a
	// two-element list, not as the symbol x.
	testBool(t, mustRun(t, "(symbol? (quote x))"), false)
	testBool(t, mustRun(t, "(int? 1)"), true)
}

func TestFormatPlaceholder(t *testing.T) {
	s, ok := mustRun(t, `(format "x=~A y=~A" 1 2)`).(value.Str)
	if !ok || string(s) != "x=1 y=2" {
		t.Fatalf("expected Str(\"x=1 y=2\"), got %#v", s)
	}
}
