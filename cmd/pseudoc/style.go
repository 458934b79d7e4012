package main

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/you-not-fish/pseudo/internal/syntax"
)

// Color palette
var (
	colorError    = lipgloss.Color("#EF4444") // Red
	colorKeyword  = lipgloss.Color("#8B5CF6") // Violet
	colorOperator = lipgloss.Color("#06B6D4") // Cyan
	colorLiteral  = lipgloss.Color("#F59E0B") // Amber
	colorSuccess  = lipgloss.Color("#10B981") // Emerald
	colorMuted    = lipgloss.Color("#6B7280") // Gray
)

// palette holds the styles for one output stream.
type palette struct {
	err      lipgloss.Style
	caret    lipgloss.Style
	ok       lipgloss.Style
	muted    lipgloss.Style
	keyword  lipgloss.Style
	operator lipgloss.Style
	literal  lipgloss.Style
}

// newPalette builds styles for w. mode is auto, always or never; auto
// colours only when w is a terminal.
func newPalette(w io.Writer, mode string) *palette {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case "always":
		r.SetColorProfile(termenv.ANSI256)
	case "never":
		r.SetColorProfile(termenv.Ascii)
	}

	return &palette{
		err:      r.NewStyle().Foreground(colorError).Bold(true),
		caret:    r.NewStyle().Foreground(colorError),
		ok:       r.NewStyle().Foreground(colorSuccess),
		muted:    r.NewStyle().Foreground(colorMuted),
		keyword:  r.NewStyle().Foreground(colorKeyword).Bold(true),
		operator: r.NewStyle().Foreground(colorOperator),
		literal:  r.NewStyle().Foreground(colorLiteral),
	}
}

func (p *palette) errorLine(s string) string {
	return p.err.Render(s)
}

// diagnostic styles a snippet from syntax.Snippet and prefixes the input
// name to its header.
func (p *palette) diagnostic(name, snippet string) string {
	lines := strings.Split(strings.TrimSuffix(snippet, "\n"), "\n")
	for i, line := range lines {
		switch {
		case i == 0:
			lines[i] = p.err.Render(name + ": " + line)
		case strings.HasSuffix(line, "^"):
			bar := strings.LastIndex(line, "|")
			lines[i] = p.muted.Render(line[:bar+1]) + p.caret.Render(line[bar+1:])
		case strings.Contains(line, " | "):
			bar := strings.Index(line, " | ")
			lines[i] = p.muted.Render(line[:bar+2]) + line[bar+2:]
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// kind styles s according to the class of k.
func (p *palette) kind(k syntax.Kind, s string) string {
	switch {
	case k.IsKeyword():
		return p.keyword.Render(s)
	case k.IsOperator():
		return p.operator.Render(s)
	case k.IsLiteral():
		return p.literal.Render(s)
	}
	return p.muted.Render(s)
}
