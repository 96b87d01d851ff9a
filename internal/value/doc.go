// Package value provides the single tagged value model shared by parsed
// syntax and runtime data for the interpreter.
//
// There is deliberately no separate AST hierarchy: a List read from
// source text is the same concrete type as a List produced by evaluating
// (list 1 2 3). The evaluator's job is entirely a switch on Kind() plus,
// for List, inspection of the head element.
//
// Variants:
//   - Nil: absence of a value, the result of effectful forms.
//   - Bool: boolean result of predicates and comparisons.
//   - Int, Float: numeric constants.
//   - Str: string constant.
//   - Sym: identifier / bare symbol, resolved by environment lookup.
//   - List: ordered sequence of Values, both s-expression form and
//     runtime list.
//   - Lambda: user-defined closure capturing its formals, body, and
//     defining environment frame by reference.
//   - Builtin: a native primitive with its invocation flags.
//
// Env implements the linked-frame lexical scope chain: lookup walks from
// a frame to the root; Assign mutates the nearest enclosing binding (or
// creates one in the current frame when asked to); Define always targets
// the current frame outright, used by the root environment's `define`.
// Frames are shared by reference, so closures that capture the same frame
// observe each other's mutations.
//
// Memory management: values and frames use Go's garbage collector.
// Cyclic graphs (a closure that captures a frame that in turn binds that
// same closure) are unremarkable here — nothing about them needs special
// handling, unlike in a language without a tracing collector.
package value
