package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorPass = lipgloss.Color("#10b981") // green-500
	colorFail = lipgloss.Color("#ef4444") // red-500
	colorDim  = lipgloss.Color("#6b7280") // gray-500
)

// styles holds the lipgloss styles for CLI output. Styling is disabled
// when the output is not a terminal so piped output stays plain.
type styles struct {
	Pass lipgloss.Style
	Fail lipgloss.Style
	Dim  lipgloss.Style
	Bold lipgloss.Style

	SymbolPass string
	SymbolFail string
}

func newStyles(w io.Writer) *styles {
	s := &styles{
		SymbolPass: "✓",
		SymbolFail: "✗",
	}

	if f, ok := w.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		plain := lipgloss.NewStyle()
		s.Pass = plain
		s.Fail = plain
		s.Dim = plain
		s.Bold = plain

		return s
	}

	s.Pass = lipgloss.NewStyle().Foreground(colorPass).Bold(true)
	s.Fail = lipgloss.NewStyle().Foreground(colorFail).Bold(true)
	s.Dim = lipgloss.NewStyle().Foreground(colorDim)
	s.Bold = lipgloss.NewStyle().Bold(true)

	return s
}
