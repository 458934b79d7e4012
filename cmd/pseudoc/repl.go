package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/you-not-fish/pseudo/internal/syntax"
)

var replFormat string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive parser",
	Long: `Reads pseudocode interactively and prints each entry's syntax tree.
An entry that ends inside an open block or string continues on the next
line. History is kept in the file named by repl.history_file.

Commands:
  :format NAME   switch output (tree, text, brackets, json, yaml)
  :tokens SRC    print the tokens of SRC
  :stats SRC     summarise SRC
  :help          show this help
  :quit          leave`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().StringVarP(&replFormat, "format", "f", "brackets", "output format: tree, text, brackets, json or yaml")
}

const replHelp = `:format NAME   switch output (tree, text, brackets, json, yaml)
:tokens SRC    print the tokens of SRC
:stats SRC     summarise SRC
:help          show this help
:quit          leave`

func runREPL(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "pseudoc %s - type :help for commands, :quit to exit\n", Version)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if path := cfg.REPL.HistoryFile; path != "" {
		if f, err := os.Open(path); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(path)
			if err != nil {
				logger.Debug("cannot save history", "path", path, "err", err)
				return
			}
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	s := newSession(out, cmd.ErrOrStderr(), replFormat)
	for {
		src, ok := readEntry(ln, cfg.REPL.Prompt, cfg.REPL.Continuation)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if s.eval(src) {
			return nil
		}
	}
}

// lineReader is the part of liner.State used to read entries.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

// readEntry reads lines until they form a complete entry: one that parses
// or fails for a reason other than running out of input. ok is false at
// end of input. An aborted prompt yields an empty entry.
func readEntry(r lineReader, prompt, cont string) (src string, ok bool) {
	var b strings.Builder

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := r.Prompt(p)
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return line, true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, err := syntax.Parse(src); err != nil && syntax.IsIncomplete(err) {
			continue
		}
		return src, true
	}
}

// session holds the state of one interactive run.
type session struct {
	out, errOut io.Writer
	pal, errPal *palette
	format      string
}

func newSession(out, errOut io.Writer, format string) *session {
	return &session{
		out:    out,
		errOut: errOut,
		pal:    newPalette(out, cfg.Output.Color),
		errPal: newPalette(errOut, cfg.Output.Color),
		format: format,
	}
}

// eval handles one entry and reports whether the session should end.
func (s *session) eval(src string) (quit bool) {
	trimmed := strings.TrimSpace(src)
	if strings.HasPrefix(trimmed, ":") {
		return s.command(trimmed)
	}

	prog, err := parseSource(src)
	if err != nil {
		report(s.errOut, s.errPal, "<repl>", src, err)
		return false
	}
	if err := writeAST(s.out, prog, s.format); err != nil {
		fmt.Fprintln(s.errOut, s.errPal.errorLine(err.Error()))
	}
	return false
}

func (s *session) command(line string) (quit bool) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case ":quit", ":q", ":exit":
		return true

	case ":help":
		fmt.Fprintln(s.out, replHelp)

	case ":format":
		switch arg {
		case "tree", "text", "brackets", "json", "yaml":
			s.format = arg
		case "":
			fmt.Fprintln(s.out, s.format)
		default:
			fmt.Fprintln(s.errOut, s.errPal.errorLine(fmt.Sprintf("unknown format %q", arg)))
		}

	case ":tokens":
		if err := writeTokens(s.out, s.pal, arg); err != nil {
			report(s.errOut, s.errPal, "<repl>", arg, err)
		}

	case ":stats":
		prog, err := parseSource(arg)
		if err != nil {
			report(s.errOut, s.errPal, "<repl>", arg, err)
			break
		}
		writeStats(s.out, prog)

	default:
		fmt.Fprintf(s.out, "unknown command %s. Type :help for a list.\n", name)
	}
	return false
}
