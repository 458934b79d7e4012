package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/pseudo/internal/config"
	"github.com/you-not-fish/pseudo/internal/syntax"
)

var (
	cfgFile  string
	verbose  bool
	maxDepth int
	color    string
)

// cfg is the active configuration. Commands read it after the persistent
// pre-run hook has merged the config file and flags.
var cfg = config.Default()

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// errReported marks a failure whose diagnostic has already been printed.
var errReported = errors.New("failed")

var rootCmd = &cobra.Command{
	Use:   "pseudoc",
	Short: "Parser toolkit for exam-board pseudocode",
	Long: `pseudoc tokenizes, parses and pretty-prints structured pseudocode
as used in school exam boards.

Commands:
  tokens   - print the token stream
  ast      - print the syntax tree (tree, text, brackets, json, yaml)
  fmt      - rewrite sources in canonical form
  check    - report syntax errors and statement counts
  repl     - interactive parser`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $PSEUDOC_CONFIG or ./pseudoc.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", 0, "nesting limit for the parser (default from config)")
	rootCmd.PersistentFlags().StringVar(&color, "color", "", "colour output: auto, always or never")
}

// setup loads the configuration, applies flag overrides and configures
// logging.
func setup(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.Discover()
	}

	loaded := config.Default()
	if path != "" {
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		loaded = c
	}

	if maxDepth != 0 {
		loaded.Parser.MaxDepth = maxDepth
	}
	if color != "" {
		loaded.Output.Color = color
	}
	if verbose {
		loaded.Log.Level = "debug"
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	logger = newLogger(cmd.ErrOrStderr(), cfg.Log.Level)
	if path != "" {
		logger.Debug("loaded config", "path", path)
	}
	return nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

// readSource returns the contents of name, or of stdin when name is "-".
func readSource(name string, stdin io.Reader) (string, error) {
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// inputNames returns args, or "-" for stdin when there are none.
func inputNames(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

// parseSource parses src with the configured nesting limit.
func parseSource(src string) (*syntax.Program, error) {
	p, err := syntax.NewParser(syntax.NewScanner(src))
	if err != nil {
		return nil, err
	}
	p.SetMaxDepth(cfg.Parser.MaxDepth)
	return p.Parse()
}

// report prints err for the named input. Syntax errors get a source
// snippet.
func report(w io.Writer, pal *palette, name, src string, err error) {
	if name == "-" {
		name = "<stdin>"
	}
	var se *syntax.SyntaxError
	if errors.As(err, &se) {
		fmt.Fprint(w, pal.diagnostic(name, syntax.Snippet(err, src)))
		return
	}
	fmt.Fprintln(w, pal.errorLine(fmt.Sprintf("%s: %v", name, err)))
}
