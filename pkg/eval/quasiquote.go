package eval

import (
	"github.com/conneroisu/golisp/internal/lerr"
	"github.com/conneroisu/golisp/internal/value"
)

// qq walks a quasiquote template T and returns the Value it denotes.
// Non-list terms pass through unchanged; (unquote U) evaluates U;
// (unquote-splicing U) may only appear as a LIST ELEMENT, where its
// evaluated list is spliced into the surrounding sequence rather than
// appended as one item.
func (ev *Evaluator) qq(env *value.Env, t value.Value) (value.Value, error) {
	lst, ok := t.(*value.List)
	if !ok {
		return t, nil
	}

	if head, ok := lst.Head(); ok {
		if sym, ok := head.(value.Sym); ok {
			switch sym {
			case "unquote":
				if lst.Len() != 2 {
					return nil, lerr.New(lerr.KindSyntax, "unquote requires exactly 1 operand")
				}

				return ev.Eval(lst.Elems[1], env)
			case "unquote-splicing":
				return nil, lerr.New(lerr.KindSyntax, "unquote-splicing must appear as a list element")
			}
		}
	}

	var out []value.Value
	for _, elem := range lst.Elems {
		if spliced, handled, err := ev.qqSplice(env, elem); handled {
			if err != nil {
				return nil, err
			}
			out = append(out, spliced...)

			continue
		}

		qv, err := ev.qq(env, elem)
		if err != nil {
			return nil, err
		}
		out = append(out, qv)
	}

	return value.NewList(out...), nil
}

// qqSplice recognizes a (unquote-splicing U) list element, evaluates U
// (which must evaluate to a List), and returns its elements to be
// flattened into the parent sequence. handled is false for every other
// element shape.
func (ev *Evaluator) qqSplice(env *value.Env, elem value.Value) (spliced []value.Value, handled bool, err error) {
	lst, ok := elem.(*value.List)
	if !ok {
		return nil, false, nil
	}
	head, ok := lst.Head()
	if !ok {
		return nil, false, nil
	}
	sym, ok := head.(value.Sym)
	if !ok || sym != "unquote-splicing" {
		return nil, false, nil
	}
	if lst.Len() != 2 {
		return nil, true, lerr.New(lerr.KindSyntax, "unquote-splicing requires exactly 1 operand")
	}

	v, err := ev.Eval(lst.Elems[1], env)
	if err != nil {
		return nil, true, err
	}

	inner, ok := v.(*value.List)
	if !ok {
		return nil, true, lerr.New(lerr.KindType, "unquote-splicing requires its operand to evaluate to a list, got %s", v.Render())
	}

	return inner.Elems, true, nil
}
