package eval

import (
	"github.com/conneroisu/golisp/internal/lerr"
	"github.com/conneroisu/golisp/internal/value"
)

// specialForm implements one entry of the closed special-form table: it
// receives its operand expressions UNEVALUATED and decides for itself
// what, if anything, to evaluate.
type specialForm func(ev *Evaluator, env *value.Env, rest []value.Value) (value.Value, error)

// specialForms is the fixed dispatch table. Only primitives are
// extensible; this table never grows at runtime. It is filled in init
// because the forms call back into Eval, which itself reads the table.
var specialForms map[string]specialForm

func init() {
	specialForms = map[string]specialForm{
		"quote":            sfQuote,
		"if":               sfIf,
		"define":           sfDefine,
		"set!":             sfSet,
		"let":              sfLet,
		"let*":             sfLetStar,
		"begin":            sfBegin,
		"lambda":           sfLambda,
		"quasiquote":       sfQuasiquote,
		"unquote":          sfUnquoteOutsideQQ,
		"unquote-splicing": sfUnquoteSplicingOutsideQQ,
	}
}

func sfQuote(_ *Evaluator, _ *value.Env, rest []value.Value) (value.Value, error) {
	if len(rest) != 1 {
		return nil, lerr.New(lerr.KindSyntax, "quote requires exactly 1 operand, got %d", len(rest))
	}

	return rest[0], nil
}

// truthy implements the "only Bool(false) is false" rule: everything
// else, including Nil and Int(0), is truthy.
func truthy(v value.Value) bool {
	b, ok := v.(value.Bool)

	return !ok || bool(b)
}

func sfIf(ev *Evaluator, env *value.Env, rest []value.Value) (value.Value, error) {
	if len(rest) != 3 {
		return nil, lerr.New(lerr.KindSyntax, "if requires exactly 3 operands, got %d", len(rest))
	}

	test, err := ev.Eval(rest[0], env)
	if err != nil {
		return nil, err
	}

	if truthy(test) {
		return ev.Eval(rest[1], env)
	}

	return ev.Eval(rest[2], env)
}

func sfDefine(ev *Evaluator, env *value.Env, rest []value.Value) (value.Value, error) {
	if len(rest) != 2 {
		return nil, lerr.New(lerr.KindSyntax, "define requires exactly 2 operands, got %d", len(rest))
	}

	sym, ok := rest[0].(value.Sym)
	if !ok {
		return nil, lerr.New(lerr.KindSyntax, "define requires a symbol name, got %s", rest[0].Render())
	}

	if !env.IsRoot() {
		return nil, lerr.New(lerr.KindSyntax, "define is only valid at the top level")
	}

	v, err := ev.Eval(rest[1], env)
	if err != nil {
		return nil, err
	}

	env.Define(string(sym), v)

	return value.Nil{}, nil
}

func sfSet(ev *Evaluator, env *value.Env, rest []value.Value) (value.Value, error) {
	if len(rest) != 2 {
		return nil, lerr.New(lerr.KindSyntax, "set! requires exactly 2 operands, got %d", len(rest))
	}

	sym, ok := rest[0].(value.Sym)
	if !ok {
		return nil, lerr.New(lerr.KindSyntax, "set! requires a symbol name, got %s", rest[0].Render())
	}

	v, err := ev.Eval(rest[1], env)
	if err != nil {
		return nil, err
	}

	if !env.Assign(string(sym), v, false) {
		return nil, lerr.New(lerr.KindUnboundSymbol, "set!: unbound symbol %s", sym)
	}

	return value.Nil{}, nil
}

// bindingPairs validates the (k v) ... binding list shared by let/let*.
func bindingPairs(form string, bindings value.Value) ([]*value.List, error) {
	lst, ok := bindings.(*value.List)
	if !ok {
		return nil, lerr.New(lerr.KindSyntax, "%s requires a list of bindings", form)
	}

	pairs := make([]*value.List, len(lst.Elems))
	for i, b := range lst.Elems {
		pair, ok := b.(*value.List)
		if !ok || pair.Len() != 2 {
			return nil, lerr.New(lerr.KindSyntax, "%s binding %d must be a (symbol expr) pair", form, i)
		}
		if _, ok := pair.Elems[0].(value.Sym); !ok {
			return nil, lerr.New(lerr.KindSyntax, "%s binding %d must start with a symbol", form, i)
		}
		pairs[i] = pair
	}

	return pairs, nil
}

// sfLet evaluates every initializer in the CURRENT environment, then
// binds all names simultaneously in one fresh child frame: (let ((x 1)
// (y x)) y) sees the OUTER x for y's initializer, not the new frame's x.
func sfLet(ev *Evaluator, env *value.Env, rest []value.Value) (value.Value, error) {
	if len(rest) != 2 {
		return nil, lerr.New(lerr.KindSyntax, "let requires a binding list and a body, got %d operands", len(rest))
	}

	pairs, err := bindingPairs("let", rest[0])
	if err != nil {
		return nil, err
	}

	vals := make([]value.Value, len(pairs))
	for i, p := range pairs {
		v, err := ev.Eval(p.Elems[1], env)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}

	child := env.Extend()
	for i, p := range pairs {
		child.Define(string(p.Elems[0].(value.Sym)), vals[i])
	}

	return ev.Eval(rest[1], child)
}

// sfLetStar creates the child frame up front and evaluates each
// initializer in it in order, so later initializers see earlier
// bindings: (let* ((x 1) (y x)) y) => 1.
func sfLetStar(ev *Evaluator, env *value.Env, rest []value.Value) (value.Value, error) {
	if len(rest) != 2 {
		return nil, lerr.New(lerr.KindSyntax, "let* requires a binding list and a body, got %d operands", len(rest))
	}

	pairs, err := bindingPairs("let*", rest[0])
	if err != nil {
		return nil, err
	}

	child := env.Extend()
	for _, p := range pairs {
		v, err := ev.Eval(p.Elems[1], child)
		if err != nil {
			return nil, err
		}
		child.Define(string(p.Elems[0].(value.Sym)), v)
	}

	return ev.Eval(rest[1], child)
}

func sfBegin(ev *Evaluator, env *value.Env, rest []value.Value) (value.Value, error) {
	if len(rest) == 0 {
		return value.Nil{}, nil
	}

	var result value.Value = value.Nil{}
	for _, e := range rest {
		v, err := ev.Eval(e, env)
		if err != nil {
			return nil, err
		}
		result = v
	}

	return result, nil
}

func sfLambda(_ *Evaluator, env *value.Env, rest []value.Value) (value.Value, error) {
	if len(rest) != 2 {
		return nil, lerr.New(lerr.KindSyntax, "lambda requires a formals list and a body, got %d operands", len(rest))
	}

	formalsList, ok := rest[0].(*value.List)
	if !ok {
		return nil, lerr.New(lerr.KindSyntax, "lambda formals must be a list")
	}

	formals := make([]string, len(formalsList.Elems))
	for i, f := range formalsList.Elems {
		sym, ok := f.(value.Sym)
		if !ok {
			return nil, lerr.New(lerr.KindSyntax, "lambda formal %d must be a symbol", i)
		}
		formals[i] = string(sym)
	}

	return value.NewLambda(formals, rest[1], env), nil
}

func sfQuasiquote(ev *Evaluator, env *value.Env, rest []value.Value) (value.Value, error) {
	if len(rest) != 1 {
		return nil, lerr.New(lerr.KindSyntax, "quasiquote requires exactly 1 operand, got %d", len(rest))
	}

	return ev.qq(env, rest[0])
}

func sfUnquoteOutsideQQ(_ *Evaluator, _ *value.Env, _ []value.Value) (value.Value, error) {
	return nil, lerr.New(lerr.KindSyntax, "unquote used outside quasiquote")
}

func sfUnquoteSplicingOutsideQQ(_ *Evaluator, _ *value.Env, _ []value.Value) (value.Value, error) {
	return nil, lerr.New(lerr.KindSyntax, "unquote-splicing used outside quasiquote")
}
