package eval

import (
	"github.com/conneroisu/golisp/internal/lerr"
	"github.com/conneroisu/golisp/internal/value"
)

// project converts a Value to its native Go form, as used when invoking
// a builtin configured to evaluate its arguments:
//
//   - Int/Float/Str/Bool -> their contained scalar (int64/float64/string/bool)
//   - *List              -> its underlying []value.Value sequence
//   - Nil                -> nil
//   - Sym                 -> a SECOND projection pass: look the symbol up
//     in env, then project whatever it resolves to (failing if that is
//     itself callable)
//   - *Lambda/*Builtin   -> TypeError, functions cannot cross into native form
func project(env *value.Env, v value.Value) (any, error) {
	switch t := v.(type) {
	case value.Int:
		return int64(t), nil
	case value.Float:
		return float64(t), nil
	case value.Str:
		return string(t), nil
	case value.Bool:
		return bool(t), nil
	case value.Nil:
		return nil, nil
	case *value.List:
		return t.Elems, nil
	case value.Sym:
		resolved, ok := env.Lookup(string(t))
		if !ok {
			return nil, lerr.New(lerr.KindUnboundSymbol, "unbound symbol: %s", t)
		}

		return project(env, resolved)
	case *value.Lambda, *value.Builtin:
		return nil, lerr.New(lerr.KindType, "cannot pass a function to a native primitive")
	default:
		return nil, lerr.New(lerr.KindType, "value of kind %s has no native projection", v.Kind())
	}
}

// box wraps a native Go result back into the matching Value variant, the
// inverse of project for a builtin's RETURN value: int64->Int,
// float64->Float, bool->Bool, string->Str, nil->Nil. []value.Value boxes
// to a List, a natural completion of the same rule for a boxing builtin
// that hands back a native slice rather than a pre-built Value (such as
// a one-operand arithmetic fold returning its projected list operand).
func box(native any) (value.Value, error) {
	switch v := native.(type) {
	case nil:
		return value.Nil{}, nil
	case int64:
		return value.Int(v), nil
	case float64:
		return value.Float(v), nil
	case bool:
		return value.Bool(v), nil
	case string:
		return value.Str(v), nil
	case []value.Value:
		return value.NewList(v...), nil
	case value.Value:
		return v, nil
	default:
		return nil, lerr.New(lerr.KindType, "cannot box native value of type %T", native)
	}
}

// Project exposes the native-projection rule to callers outside this
// package, such as the CLI's `-p` flag, which prints a top-level
// result's native form instead of its Lisp syntax.
func (ev *Evaluator) Project(v value.Value) (any, error) {
	return project(ev.Global, v)
}

// applyBuiltin invokes a Builtin against unevaluated operand
// expressions, honoring its three configuration flags.
func (ev *Evaluator) applyBuiltin(b *value.Builtin, operands []value.Value, env *value.Env) (value.Value, error) {
	var args []any

	if b.EvaluateArgs {
		args = make([]any, len(operands))
		for i, o := range operands {
			v, err := ev.Eval(o, env)
			if err != nil {
				return nil, err
			}
			native, err := project(env, v)
			if err != nil {
				return nil, err
			}
			args[i] = native
		}
	} else {
		args = make([]any, len(operands))
		for i, o := range operands {
			args[i] = o
		}
	}

	if b.ReceiveEnv {
		args = append([]any{env}, args...)
	}

	result, err := b.Fn(args)
	if err != nil {
		return nil, err
	}

	if b.BoxReturn {
		return box(result)
	}

	v, ok := result.(value.Value)
	if !ok {
		return nil, lerr.New(lerr.KindInternal, "builtin %s: box_return=false but returned non-Value %T", b.Name, result)
	}

	return v, nil
}
