// Package eval implements the tree-walking evaluator: dispatch over
// value.Value variants, the closed table of special forms, closure and
// builtin invocation (including native projection), the quasiquote
// transformer, and the primitive registry installed into every fresh
// global environment.
package eval
