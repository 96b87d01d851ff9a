package eval

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/conneroisu/golisp/internal/lerr"
	"github.com/conneroisu/golisp/internal/logging"
	"github.com/conneroisu/golisp/internal/value"
	"github.com/conneroisu/golisp/pkg/lexer"
	"github.com/conneroisu/golisp/pkg/reader"
)

// registerBuiltin installs one Builtin into the global environment.
func (ev *Evaluator) registerBuiltin(name string, evaluateArgs, boxReturn, receiveEnv bool, fn value.BuiltinFn) {
	ev.Global.Define(name, &value.Builtin{
		Name:         name,
		Fn:           fn,
		EvaluateArgs: evaluateArgs,
		BoxReturn:    boxReturn,
		ReceiveEnv:   receiveEnv,
	})
}

// registerBuiltins installs the initial global environment's primitive
// registry: arithmetic, the and/or bitwise-fold quirk, comparisons, list
// operations, type predicates, and the meta/process primitives.
func (ev *Evaluator) registerBuiltins() {
	ev.registerArithmetic()
	ev.registerLogicalFold()
	ev.registerComparisons()
	ev.registerListOps()
	ev.registerPredicates()
	ev.registerMeta()
}

func toFloat(a any) (float64, error) {
	switch v := a.(type) {
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, lerr.New(lerr.KindType, "expected a number, got %T", a)
	}
}

// arith builds a left-fold arithmetic primitive. With one operand it
// returns that operand unchanged; mixed int/float operands coerce the
// whole fold to float64, matching the host arithmetic's own promotion
// rather than rejecting the mix with a TypeError.
func arith(name string, intOp func(a, b int64) int64, floatOp func(a, b float64) float64) value.BuiltinFn {
	return func(args []any) (any, error) {
		if len(args) == 0 {
			return nil, lerr.New(lerr.KindArity, "%s requires at least 1 operand", name)
		}
		if len(args) == 1 {
			return args[0], nil
		}

		allInt := true
		for _, a := range args {
			if _, ok := a.(int64); !ok {
				allInt = false

				break
			}
		}

		if allInt {
			acc := args[0].(int64)
			for _, a := range args[1:] {
				acc = intOp(acc, a.(int64))
			}

			return acc, nil
		}

		acc, err := toFloat(args[0])
		if err != nil {
			return nil, err
		}
		for _, a := range args[1:] {
			f, err := toFloat(a)
			if err != nil {
				return nil, err
			}
			acc = floatOp(acc, f)
		}

		return acc, nil
	}
}

func (ev *Evaluator) registerArithmetic() {
	ev.registerBuiltin("+", true, true, false, arith("+",
		func(a, b int64) int64 { return a + b },
		func(a, b float64) float64 { return a + b }))
	ev.registerBuiltin("-", true, true, false, arith("-",
		func(a, b int64) int64 { return a - b },
		func(a, b float64) float64 { return a - b }))
	ev.registerBuiltin("*", true, true, false, arith("*",
		func(a, b int64) int64 { return a * b },
		func(a, b float64) float64 { return a * b }))
	ev.registerBuiltin("/", true, true, false, func(args []any) (any, error) {
		if len(args) == 0 {
			return nil, lerr.New(lerr.KindArity, "/ requires at least 1 operand")
		}
		if len(args) == 1 {
			return args[0], nil
		}

		allInt := true
		for _, a := range args {
			if _, ok := a.(int64); !ok {
				allInt = false

				break
			}
		}

		if allInt {
			acc := args[0].(int64)
			for _, a := range args[1:] {
				b := a.(int64)
				if b == 0 {
					return nil, lerr.New(lerr.KindType, "division by zero")
				}
				acc /= b
			}

			return acc, nil
		}

		acc, err := toFloat(args[0])
		if err != nil {
			return nil, err
		}
		for _, a := range args[1:] {
			f, err := toFloat(a)
			if err != nil {
				return nil, err
			}
			if f == 0 {
				return nil, lerr.New(lerr.KindType, "division by zero")
			}
			acc /= f
		}

		return acc, nil
	})
}

// toBit coerces a bool or int64 operand into an int64 so and/or can fold
// over either with the same bitwise operator, matching the source
// program's reduce(operator.and_/or_, ...) behavior across both types.
func toBit(a any) (int64, error) {
	switch v := a.(type) {
	case int64:
		return v, nil
	case bool:
		if v {
			return 1, nil
		}

		return 0, nil
	default:
		return 0, lerr.New(lerr.KindType, "and/or operands must be int or bool, got %T", a)
	}
}

// registerLogicalFold installs `and`/`or` as a left-fold over the
// bitwise & / | operators rather than short-circuiting logical
// operators. This is a documented quirk inherited unmodified from the
// interpreter this was migrated from, not a bug introduced here.
func (ev *Evaluator) registerLogicalFold() {
	fold := func(name string, op func(a, b int64) int64) value.BuiltinFn {
		return func(args []any) (any, error) {
			if len(args) == 0 {
				return nil, lerr.New(lerr.KindArity, "%s requires at least 1 operand", name)
			}

			allBool := true
			for _, a := range args {
				if _, ok := a.(bool); !ok {
					allBool = false

					break
				}
			}

			acc, err := toBit(args[0])
			if err != nil {
				return nil, err
			}
			for _, a := range args[1:] {
				b, err := toBit(a)
				if err != nil {
					return nil, err
				}
				acc = op(acc, b)
			}

			if allBool {
				return acc != 0, nil
			}

			return acc, nil
		}
	}

	ev.registerBuiltin("and", true, true, false, fold("and", func(a, b int64) int64 { return a & b }))
	ev.registerBuiltin("or", true, true, false, fold("or", func(a, b int64) int64 { return a | b }))
}

func (ev *Evaluator) registerComparisons() {
	cmp := func(name string, cmpInt func(a, b int64) bool, cmpFloat func(a, b float64) bool) value.BuiltinFn {
		return func(args []any) (any, error) {
			if len(args) != 2 {
				return nil, lerr.New(lerr.KindArity, "%s requires exactly 2 operands, got %d", name, len(args))
			}

			ai, aok := args[0].(int64)
			bi, bok := args[1].(int64)
			if aok && bok {
				return cmpInt(ai, bi), nil
			}

			af, err := toFloat(args[0])
			if err != nil {
				return nil, err
			}
			bf, err := toFloat(args[1])
			if err != nil {
				return nil, err
			}

			return cmpFloat(af, bf), nil
		}
	}

	ev.registerBuiltin("<", true, true, false, cmp("<",
		func(a, b int64) bool { return a < b }, func(a, b float64) bool { return a < b }))
	ev.registerBuiltin(">", true, true, false, cmp(">",
		func(a, b int64) bool { return a > b }, func(a, b float64) bool { return a > b }))
	ev.registerBuiltin("<=", true, true, false, cmp("<=",
		func(a, b int64) bool { return a <= b }, func(a, b float64) bool { return a <= b }))
	ev.registerBuiltin(">=", true, true, false, cmp(">=",
		func(a, b int64) bool { return a >= b }, func(a, b float64) bool { return a >= b }))
	ev.registerBuiltin("=", true, true, false, cmp("=",
		func(a, b int64) bool { return a == b }, func(a, b float64) bool { return a == b }))
}

// registerListOps installs car, cdr, and list. car/cdr evaluate their
// single operand (so their native-projected form is already the
// underlying []value.Value sequence) and hand back a real Value
// verbatim (box_return=false). list, per the source invocation table,
// receives its operands UNEVALUATED (evaluate_args=false): on literal
// arguments this is indistinguishable from evaluating them first, since
// literals are self-evaluating, but (list x) with a bound variable x
// returns the symbol itself rather than its value — an inherited quirk,
// not a mistake introduced here.
func (ev *Evaluator) registerListOps() {
	ev.registerBuiltin("car", true, false, false, func(args []any) (any, error) {
		if len(args) != 1 {
			return nil, lerr.New(lerr.KindArity, "car requires exactly 1 operand, got %d", len(args))
		}
		elems, ok := args[0].([]value.Value)
		if !ok {
			return nil, lerr.New(lerr.KindType, "car requires a list operand")
		}
		if len(elems) == 0 {
			return nil, lerr.New(lerr.KindType, "car of an empty list")
		}

		return elems[0], nil
	})

	ev.registerBuiltin("cdr", true, false, false, func(args []any) (any, error) {
		if len(args) != 1 {
			return nil, lerr.New(lerr.KindArity, "cdr requires exactly 1 operand, got %d", len(args))
		}
		elems, ok := args[0].([]value.Value)
		if !ok {
			return nil, lerr.New(lerr.KindType, "cdr requires a list operand")
		}
		if len(elems) == 0 {
			return value.NewList(), nil
		}

		return value.NewList(elems[1:]...), nil
	})

	ev.registerBuiltin("list", false, false, false, func(args []any) (any, error) {
		elems := make([]value.Value, len(args))
		for i, a := range args {
			v, ok := a.(value.Value)
			if !ok {
				return nil, lerr.New(lerr.KindInternal, "list: operand %d is not a Value", i)
			}
			elems[i] = v
		}

		return value.NewList(elems...), nil
	})
}

// registerPredicates installs the type predicates. Each receives its
// operand as a raw, unevaluated Value (evaluate_args=false): a literal
// operand is inspected as itself, a quoted operand arrives as its
// (quote X) list form, and, like `list` above, a bound variable's raw Sym
// form, not its looked-up value, is what gets inspected.
func (ev *Evaluator) registerPredicates() {
	pred := func(name string, check func(value.Value) bool) value.BuiltinFn {
		return func(args []any) (any, error) {
			if len(args) != 1 {
				return nil, lerr.New(lerr.KindArity, "%s requires exactly 1 operand, got %d", name, len(args))
			}
			v, ok := args[0].(value.Value)
			if !ok {
				return nil, lerr.New(lerr.KindInternal, "%s: operand is not a Value", name)
			}

			return check(v), nil
		}
	}

	ev.registerBuiltin("list?", false, true, false, pred("list?", func(v value.Value) bool {
		_, ok := v.(*value.List)

		return ok
	}))
	ev.registerBuiltin("symbol?", false, true, false, pred("symbol?", func(v value.Value) bool {
		_, ok := v.(value.Sym)

		return ok
	}))
	ev.registerBuiltin("int?", false, true, false, pred("int?", func(v value.Value) bool {
		_, ok := v.(value.Int)

		return ok
	}))
	ev.registerBuiltin("float?", false, true, false, pred("float?", func(v value.Value) bool {
		_, ok := v.(value.Float)

		return ok
	}))
	ev.registerBuiltin("string?", false, true, false, pred("string?", func(v value.Value) bool {
		_, ok := v.(value.Str)

		return ok
	}))
}

// renderNative turns a native-projected argument back into display text,
// for print and format — the same scalar/list rendering rules as
// value.Value.Render, applied to the post-projection Go type since these
// two primitives never need the original Value back. The one difference
// is nil, which renders as empty text here rather than Nil's "()".
func renderNative(a any) string {
	switch v := a.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		if v {
			return "true"
		}

		return "false"
	case string:
		return v
	case []value.Value:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = e.Render()
		}

		return "(" + strings.Join(parts, " ") + ")"
	default:
		return fmt.Sprint(v)
	}
}

func (ev *Evaluator) registerMeta() {
	ev.Global.Define("true", value.Bool(true))
	ev.Global.Define("false", value.Bool(false))
	ev.Global.Define("nil", value.Nil{})

	ev.registerBuiltin("eval", false, false, true, func(args []any) (any, error) {
		if len(args) != 2 {
			return nil, lerr.New(lerr.KindArity, "eval requires exactly 1 operand, got %d", len(args)-1)
		}
		env := args[0].(*value.Env)
		term, ok := args[1].(value.Value)
		if !ok {
			return nil, lerr.New(lerr.KindInternal, "eval: operand is not a Value")
		}

		// eval's own operand is itself evaluated once to produce a value
		// (this is where a quasiquote template resolves its unquotes into
		// plain data); that value is then evaluated a SECOND time as code,
		// exactly as the two-step real_args-then-lisp_eval dispatch the
		// original interpreter does. Without the second pass, `(eval
		// `(+ 1 ,x))` would return the reconstructed data list (+ 1 3)
		// instead of running it and returning 4.
		built, err := ev.Eval(term, env)
		if err != nil {
			return nil, err
		}

		return ev.Eval(built, env)
	})

	ev.registerBuiltin("load", true, false, true, func(args []any) (any, error) {
		if len(args) != 2 {
			return nil, lerr.New(lerr.KindArity, "load requires exactly 1 operand, got %d", len(args)-1)
		}
		env := args[0].(*value.Env)
		filename, ok := args[1].(string)
		if !ok {
			return nil, lerr.New(lerr.KindType, "load requires a string filename")
		}

		if err := ev.loadFile(filename, env); err != nil {
			return nil, err
		}

		return value.Nil{}, nil
	})

	ev.registerBuiltin("debug", true, false, false, func(args []any) (any, error) {
		if len(args) != 1 {
			return nil, lerr.New(lerr.KindArity, "debug requires exactly 1 operand, got %d", len(args))
		}
		level, ok := args[0].(string)
		if !ok {
			return nil, lerr.New(lerr.KindType, "debug requires a string level")
		}
		if !logging.SetLevel(level) {
			return nil, lerr.New(lerr.KindSyntax, "unknown log level %q", level)
		}

		return value.Nil{}, nil
	})

	ev.registerBuiltin("print", true, false, false, func(args []any) (any, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = renderNative(a)
		}
		fmt.Println(strings.Join(parts, " "))

		return value.Nil{}, nil
	})

	ev.registerBuiltin("format", true, true, true, func(args []any) (any, error) {
		if len(args) < 2 {
			return nil, lerr.New(lerr.KindArity, "format requires at least a format string")
		}
		format, ok := args[1].(string)
		if !ok {
			return nil, lerr.New(lerr.KindType, "format requires a string as its first operand")
		}
		rest := args[2:]

		segments := strings.Split(format, "~A")
		var b strings.Builder
		for i, seg := range segments {
			b.WriteString(seg)
			if i < len(segments)-1 && i < len(rest) {
				b.WriteString(renderNative(rest[i]))
			}
		}

		return b.String(), nil
	})

	ev.registerBuiltin("exit", true, false, false, func(_ []any) (any, error) {
		fmt.Println("Bye!")
		os.Exit(0)

		return value.Nil{}, nil
	})
}

// loadFile reads, parses, and sequentially evaluates every top-level
// term in filename against env, guaranteeing the file handle releases
// even if a term's evaluation fails partway through. Relative paths
// resolve against the evaluator's baseDir, mirroring how the CLI
// resolves a script's own directory.
func (ev *Evaluator) loadFile(filename string, env *value.Env) error {
	path := filename
	if !filepath.IsAbs(path) {
		path = filepath.Join(ev.baseDir, path)
	}

	content, err := ev.cache.Read(path)
	if err != nil {
		return lerr.Wrap(lerr.KindIO, err)
	}

	r := reader.New(lexer.New(content))
	terms, err := r.Program()
	if err != nil {
		return lerr.Wrap(lerr.KindSyntax, err)
	}

	for _, term := range terms {
		if _, err := ev.Eval(term, env); err != nil {
			return lerr.Wrap(lerr.KindSyntax, err)
		}
	}

	return nil
}
