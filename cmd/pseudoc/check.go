package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/pseudo/internal/syntax"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Report syntax errors and statement counts",
	Long: `Parses each input and reports the first syntax error, or a summary
of what the program declares. Structural problems such as a return
outside any function are reported as warnings.

Examples:
  pseudoc check program.pseudo
  pseudoc check --strict *.pseudo`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "treat warnings as errors")
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	pal := newPalette(out, cfg.Output.Color)
	errPal := newPalette(cmd.ErrOrStderr(), cfg.Output.Color)

	failed := false
	for _, name := range inputNames(args) {
		src, err := readSource(name, cmd.InOrStdin())
		if err != nil {
			return err
		}

		prog, err := parseSource(src)
		if err != nil {
			report(cmd.ErrOrStderr(), errPal, name, src, err)
			failed = true
			continue
		}

		warnings := lint(prog, src)
		for _, w := range warnings {
			fmt.Fprintf(out, "%s:%s: %s\n", name, w.Pos, pal.literal.Render("warning: "+w.Msg))
		}
		if checkStrict && len(warnings) > 0 {
			failed = true
		}

		fmt.Fprintf(out, "%s %s\n", pal.ok.Render(name+": ok"), pal.muted.Render("("+collectStats(prog).String()+")"))
	}
	if failed {
		return errReported
	}
	return nil
}

// stats counts the declarations and statements of a program.
type stats struct {
	Stmts      int // top-level statements
	Functions  int
	Procedures int
	Assigns    int
	Globals    int
	Ifs        int
	Returns    int
	Calls      int
}

func collectStats(prog *syntax.Program) stats {
	st := stats{Stmts: len(prog.Stmts)}
	syntax.Inspect(prog, func(n syntax.Node) bool {
		switch n := n.(type) {
		case *syntax.FuncStmt:
			if n.IsProcedure {
				st.Procedures++
			} else {
				st.Functions++
			}
		case *syntax.AssignStmt:
			st.Assigns++
			if n.Global {
				st.Globals++
			}
		case *syntax.IfStmt:
			st.Ifs++
		case *syntax.ReturnStmt:
			st.Returns++
		case *syntax.CallExpr:
			st.Calls++
		}
		return true
	})
	return st
}

func (s stats) String() string {
	parts := []string{plural(s.Stmts, "statement")}
	add := func(n int, what string) {
		if n > 0 {
			parts = append(parts, plural(n, what))
		}
	}
	add(s.Functions, "function")
	add(s.Procedures, "procedure")
	add(s.Assigns, "assignment")
	add(s.Globals, "global")
	add(s.Ifs, "if")
	add(s.Returns, "return")
	add(s.Calls, "call")
	return strings.Join(parts, ", ")
}

func plural(n int, what string) string {
	if n == 1 {
		return "1 " + what
	}
	return fmt.Sprintf("%d %ss", n, what)
}

// warning is a structural problem that does not stop parsing.
type warning struct {
	Pos syntax.Pos
	Msg string
}

// lint reports returns outside any function, procedures that return a
// value and functions declared more than once.
func lint(prog *syntax.Program, src string) []warning {
	var warnings []warning
	warn := func(n syntax.Node, format string, args ...any) {
		warnings = append(warnings, warning{
			Pos: syntax.PosAt(src, n.Token().Offs),
			Msg: fmt.Sprintf(format, args...),
		})
	}

	declared := make(map[string]syntax.Pos)

	var check func(stmts []syntax.Stmt, fn *syntax.FuncStmt)
	check = func(stmts []syntax.Stmt, fn *syntax.FuncStmt) {
		for _, s := range stmts {
			syntax.Walk(s, func(n syntax.Node) bool {
				switch n := n.(type) {
				case *syntax.FuncStmt:
					if prev, ok := declared[n.Name.Value]; ok {
						warn(n, "%s redeclared (previous declaration at %s)", n.Name.Value, prev)
					} else {
						declared[n.Name.Value] = syntax.PosAt(src, n.Tok.Offs)
					}
					check(n.Body.Stmts, n)
					return false
				case *syntax.ReturnStmt:
					if fn == nil {
						warn(n, "return outside function")
					} else if fn.IsProcedure && n.Value != nil {
						warn(n, "procedure %s returns a value", fn.Name.Value)
					}
				}
				return true
			})
		}
	}
	check(prog.Stmts, nil)
	return warnings
}

// writeStats is used by the REPL to summarise an entry.
func writeStats(w io.Writer, prog *syntax.Program) {
	fmt.Fprintln(w, collectStats(prog))
}
