// Package lexer converts Lisp source text into a stream of tokens.
//
// Token kinds: INT ([0-9]+), FLOAT ([0-9]+.[0-9]+, tried ahead of INT via
// a single maximal-munch pass with a dot-lookahead), STRING (escape-aware,
// quotes stripped), SYMBOL (anything else up to the next delimiter), and
// the six bare punctuation tokens ( ) ' ` , @. Whitespace is skipped;
// there are no comments and no reserved keywords — every special form is
// just a SYMBOL token until the evaluator dispatches on it.
package lexer
