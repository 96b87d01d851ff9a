// Package main implements the golisp command-line interface.
//
// golisp is a tree-walking interpreter for a small Lisp dialect. It
// provides a complete lexer, reader, and evaluator supporting
// arithmetic, closures, quasiquotation, and a handful of native
// primitives.
//
// The CLI supports three modes of operation:
//   - Interactive REPL mode (default, no flags)
//   - Expression evaluation mode (-e)
//   - File evaluation mode (-f)
//
// Examples:
//
//	golisp -e "(+ 1 2)"              # Evaluate an expression
//	golisp -f program.lisp           # Evaluate a file
//	golisp                           # Start the REPL
//	golisp -e "(+ 1 2)" -p           # Print the native-projected result
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/conneroisu/golisp/internal/lerr"
	"github.com/conneroisu/golisp/internal/value"
	"github.com/conneroisu/golisp/pkg/eval"
	"github.com/conneroisu/golisp/pkg/lexer"
	"github.com/conneroisu/golisp/pkg/reader"
)

func main() {
	var (
		expr    string
		file    string
		project bool
	)

	root := &cobra.Command{
		Use:   "golisp",
		Short: "golisp - a small Lisp interpreter",
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(expr, file, project, os.Stdin, os.Stdout, os.Stderr)
		},
	}

	root.Flags().StringVarP(&expr, "expression", "e", "", "evaluate an expression")
	root.Flags().StringVarP(&file, "file", "f", "", "evaluate a file")
	root.Flags().BoolVarP(&project, "project", "p", false, "print the native-projected result instead of Lisp syntax")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// run holds all CLI dispatch logic free of direct os.Exit calls, so it
// can be driven by tests against in-memory reader/writers instead of the
// real process's stdio. A non-nil return is the reason Execute exits 1.
func run(expr, file string, project bool, in io.Reader, out, errOut io.Writer) error {
	if expr != "" && file != "" {
		fmt.Fprintln(errOut, "Error: -e and -f are mutually exclusive")

		return fmt.Errorf("-e and -f are mutually exclusive")
	}

	switch {
	case expr != "":
		return runBatch(expr, ".", project, out, errOut)
	case file != "":
		content, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)

			return err
		}

		return runBatch(string(content), filepath.Dir(file), project, out, errOut)
	default:
		runREPL(project, in, out, errOut)

		return nil
	}
}

// runBatch evaluates every top-level term in src and prints only the
// final result, mirroring how the interpreter this was migrated
// alongside handles -e/-f: every term runs for effect, but only the
// last value is shown.
func runBatch(src, baseDir string, project bool, out, errOut io.Writer) error {
	terms, err := parseAll(src)
	if err != nil {
		report(errOut, err)

		return err
	}

	ev := eval.New(baseDir)

	var result value.Value = value.Nil{}
	for _, term := range terms {
		result, err = ev.Eval(term, ev.Global)
		if err != nil {
			report(errOut, err)

			return err
		}
	}

	rendered, err := display(ev, result, project)
	if err != nil {
		report(errOut, err)

		return err
	}
	fmt.Fprintln(out, rendered)

	return nil
}

// runREPL reads one line at a time, evaluating each top-level term it
// contains and printing every non-Nil result, so bindings persist
// across lines within one session.
func runREPL(project bool, in io.Reader, out, errOut io.Writer) {
	ev := eval.New(".")
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "golisp> ")
		if !scanner.Scan() {
			break
		}

		terms, err := parseAll(scanner.Text())
		if err != nil {
			report(errOut, err)

			continue
		}

		for _, term := range terms {
			result, err := ev.Eval(term, ev.Global)
			if err != nil {
				report(errOut, err)

				break
			}
			if _, isNil := result.(value.Nil); !isNil {
				rendered, err := display(ev, result, project)
				if err != nil {
					report(errOut, err)

					break
				}
				fmt.Fprintln(out, rendered)
			}
		}
	}
}

func parseAll(src string) ([]value.Value, error) {
	r := reader.New(lexer.New(src))

	return r.Program()
}

// display renders result either as Lisp syntax or, when project is set,
// as its native-projected form.
func display(ev *eval.Evaluator, result value.Value, project bool) (string, error) {
	if !project {
		return result.Render(), nil
	}

	native, err := ev.Project(result)
	if err != nil {
		return "", err
	}

	return renderNativeForCLI(native), nil
}

func renderNativeForCLI(native any) string {
	switch v := native.(type) {
	case nil:
		return "nil"
	case []value.Value:
		out := "("
		for i, e := range v {
			if i > 0 {
				out += " "
			}
			out += e.Render()
		}

		return out + ")"
	default:
		return fmt.Sprint(v)
	}
}

// report prints an error using the interpreter's standard distinction:
// every lerr.Kind other than KindInternal is a property of the user's
// program and prints as "Error:"; KindInternal marks a defect in the
// interpreter itself and prints as "Internal Error:".
func report(errOut io.Writer, err error) {
	if lerr.KindOf(err) == lerr.KindInternal {
		fmt.Fprintf(errOut, "Internal Error: %v\n", err)

		return
	}

	fmt.Fprintf(errOut, "Error: %v\n", err)
}
