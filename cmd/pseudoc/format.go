package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	fmtWrite bool
	fmtList  bool
	fmtCheck bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [file...]",
	Short: "Rewrite sources in canonical form",
	Long: `Parses each input and prints it in canonical form: one statement per
line, no indentation, minimal spacing and parentheses. Comments are not
preserved.

Examples:
  pseudoc fmt program.pseudo
  pseudoc fmt -w *.pseudo
  pseudoc fmt --check *.pseudo`,
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write result to the source file instead of stdout")
	fmtCmd.Flags().BoolVarP(&fmtList, "list", "l", false, "list files whose formatting differs")
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "exit with an error if any file would change")
}

func runFmt(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	errPal := newPalette(cmd.ErrOrStderr(), cfg.Output.Color)

	failed, changed := false, 0
	for _, name := range inputNames(args) {
		src, err := readSource(name, cmd.InOrStdin())
		if err != nil {
			return err
		}

		res, err := formatSource(src)
		if err != nil {
			report(cmd.ErrOrStderr(), errPal, name, src, err)
			failed = true
			continue
		}

		if res != src {
			changed++
			if fmtList || fmtCheck {
				fmt.Fprintln(out, name)
			}
		}

		switch {
		case fmtWrite && name != "-":
			if res == src {
				continue
			}
			info, err := os.Stat(name)
			if err != nil {
				return err
			}
			if err := os.WriteFile(name, []byte(res), info.Mode().Perm()); err != nil {
				return err
			}
			logger.Debug("rewrote file", "path", name)
		case !fmtList && !fmtCheck:
			fmt.Fprint(out, res)
		}
	}

	if failed {
		return errReported
	}
	if fmtCheck && changed > 0 {
		return fmt.Errorf("%d file(s) not formatted", changed)
	}
	return nil
}

// formatSource returns the canonical form of src, ending in a newline
// unless the program is empty.
func formatSource(src string) (string, error) {
	prog, err := parseSource(src)
	if err != nil {
		return "", err
	}
	s := prog.String()
	if s == "" {
		return "", nil
	}
	return s + "\n", nil
}
