package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/pseudo/internal/syntax"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file...]",
	Short: "Print the token stream",
	Long: `Scans each input and prints one token per line with its position.
With no file, or with "-", standard input is read.

Examples:
  pseudoc tokens program.pseudo
  echo 'x = 1' | pseudoc tokens`,
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	pal := newPalette(out, cfg.Output.Color)
	errPal := newPalette(cmd.ErrOrStderr(), cfg.Output.Color)

	failed := false
	for _, name := range inputNames(args) {
		src, err := readSource(name, cmd.InOrStdin())
		if err != nil {
			return err
		}
		if err := writeTokens(out, pal, src); err != nil {
			report(cmd.ErrOrStderr(), errPal, name, src, err)
			failed = true
		}
	}
	if failed {
		return errReported
	}
	return nil
}

// writeTokens prints the tokens of src as a table. Tokens scanned before
// an error are printed before it is returned.
func writeTokens(w io.Writer, pal *palette, src string) error {
	toks, err := syntax.Tokens(src)

	fmt.Fprintf(w, "%-10s %-14s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Fprintf(w, "%-10s %-14s %s\n", strings.Repeat("-", 10), strings.Repeat("-", 14), strings.Repeat("-", 20))

	for _, tok := range toks {
		pos := syntax.PosAt(src, tok.Offs)
		kind := pal.kind(tok.Kind, fmt.Sprintf("%-14s", tok.Kind))
		lit := ""
		if tok.Kind.IsLiteral() {
			lit = formatLiteral(tok.Lit)
		}
		fmt.Fprintf(w, "%-10s %s %s\n", pos, kind, lit)
	}
	return err
}

// formatLiteral quotes lit with control characters made visible.
func formatLiteral(lit string) string {
	if lit == "" {
		return "\"\""
	}

	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\r':
			b.WriteString("\\r")
		case '"':
			b.WriteString("\\\"")
		case 0:
			b.WriteString("\\0")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}
