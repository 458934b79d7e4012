package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/pseudo/internal/syntax"
)

var astFormat string

var astCmd = &cobra.Command{
	Use:   "ast [file...]",
	Short: "Print the syntax tree",
	Long: `Parses each input and prints its syntax tree.

Formats:
  tree      - indented node dump (default)
  text      - compact canonical source
  brackets  - canonical source with every operation parenthesised
  json      - JSON document
  yaml      - YAML document

Examples:
  pseudoc ast program.pseudo
  pseudoc ast --format brackets program.pseudo
  echo '5+5*5' | pseudoc ast -f brackets`,
	RunE: runAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
	astCmd.Flags().StringVarP(&astFormat, "format", "f", "", "output format: tree, text, brackets, json or yaml (default from config)")
}

func runAST(cmd *cobra.Command, args []string) error {
	format := astFormat
	if format == "" {
		format = cfg.Output.Format
	}
	errPal := newPalette(cmd.ErrOrStderr(), cfg.Output.Color)

	failed := false
	for _, name := range inputNames(args) {
		src, err := readSource(name, cmd.InOrStdin())
		if err != nil {
			return err
		}

		start := time.Now()
		prog, err := parseSource(src)
		if err != nil {
			report(cmd.ErrOrStderr(), errPal, name, src, err)
			failed = true
			continue
		}
		logger.Debug("parsed", "input", name, "statements", len(prog.Stmts), "elapsed", time.Since(start))

		if err := writeAST(cmd.OutOrStdout(), prog, format); err != nil {
			return err
		}
	}
	if failed {
		return errReported
	}
	return nil
}

// writeAST renders prog in the named format.
func writeAST(w io.Writer, prog *syntax.Program, format string) error {
	switch format {
	case "tree":
		syntax.Fprint(w, prog)
	case "text":
		writeLines(w, prog.String())
	case "brackets":
		writeLines(w, prog.Bracketed())
	case "json":
		return syntax.FprintJSON(w, prog)
	case "yaml":
		return syntax.FprintYAML(w, prog)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

// writeLines writes s followed by a newline unless s is empty.
func writeLines(w io.Writer, s string) {
	if s != "" {
		fmt.Fprintln(w, s)
	}
}
