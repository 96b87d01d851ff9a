package eval

import (
	"github.com/conneroisu/golisp/internal/lerr"
	"github.com/conneroisu/golisp/internal/logging"
	"github.com/conneroisu/golisp/internal/value"
	"github.com/conneroisu/golisp/pkg/loadcache"
)

// Evaluator holds the state threaded through a sequence of top-level
// evaluations: the global (root) environment and a cache of previously
// loaded files for the `load` primitive.
type Evaluator struct {
	Global *value.Env
	cache  *loadcache.Cache
	// baseDir resolves relative paths given to `load`, mirroring how the
	// CLI driver resolves a script's own directory.
	baseDir string
}

// New creates an Evaluator with a fresh global environment seeded with
// the primitive registry.
func New(baseDir string) *Evaluator {
	ev := &Evaluator{
		Global:  value.NewEnv(),
		cache:   loadcache.New(),
		baseDir: baseDir,
	}
	ev.registerBuiltins()

	return ev
}

// Eval dispatches on term's Kind against env. Atoms other than Sym and
// List evaluate to themselves; Sym resolves by lookup; List applies its
// head (a special form or a callable) to its tail.
func (ev *Evaluator) Eval(term value.Value, env *value.Env) (value.Value, error) {
	switch t := term.(type) {
	case value.Sym:
		logging.Log.Debug("symbol lookup", "name", string(t))
		v, ok := env.Lookup(string(t))
		if !ok {
			return nil, lerr.New(lerr.KindUnboundSymbol, "unbound symbol: %s", t)
		}

		return v, nil
	case *value.List:
		return ev.evalList(t, env)
	default:
		// Int, Float, Str, Bool, Nil, *Lambda, *Builtin evaluate to
		// themselves.
		return term, nil
	}
}

func (ev *Evaluator) evalList(lst *value.List, env *value.Env) (value.Value, error) {
	head, ok := lst.Head()
	if !ok {
		return nil, lerr.New(lerr.KindSyntax, "the empty list is not a valid form")
	}
	rest := lst.Tail().Elems

	if sym, ok := head.(value.Sym); ok {
		if form, ok := specialForms[string(sym)]; ok {
			logging.Log.Debug("special form", "name", string(sym), "operands", len(rest))

			return form(ev, env, rest)
		}
	}

	fn, err := ev.Eval(head, env)
	if err != nil {
		return nil, err
	}

	return ev.apply(fn, rest, env)
}

// apply invokes a previously evaluated callable against unevaluated
// operand expressions, per the closure/builtin invocation rules.
func (ev *Evaluator) apply(fn value.Value, operands []value.Value, env *value.Env) (value.Value, error) {
	switch f := fn.(type) {
	case *value.Lambda:
		return ev.applyLambda(f, operands, env)
	case *value.Builtin:
		logging.Log.Info("builtin invocation", "name", f.Name, "operands", len(operands))

		return ev.applyBuiltin(f, operands, env)
	default:
		return nil, lerr.New(lerr.KindType, "%s is not callable", fn.Render())
	}
}

func (ev *Evaluator) applyLambda(fn *value.Lambda, operands []value.Value, callerEnv *value.Env) (value.Value, error) {
	if len(operands) != len(fn.Formals) {
		return nil, lerr.New(lerr.KindArity, "lambda expects %d argument(s), got %d", len(fn.Formals), len(operands))
	}

	args := make([]value.Value, len(operands))
	for i, o := range operands {
		v, err := ev.Eval(o, callerEnv)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	frame := fn.Env.Extend()
	for i, name := range fn.Formals {
		frame.Define(name, args[i])
	}

	return ev.Eval(fn.Body, frame)
}
