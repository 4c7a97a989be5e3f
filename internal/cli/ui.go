package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette. ANSI 256 codes chosen to read on dark and light terminals.
var (
	colorTeal  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorRed   = lipgloss.Color("167")
	colorSky   = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	// StyleTitle renders headings and the viewer banner.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)

	// StyleLink renders addresses the user can open.
	StyleLink = lipgloss.NewStyle().Foreground(colorSky).Underline(true)

	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning = lipgloss.NewStyle().Foreground(colorAmber)

	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleMuted   = lipgloss.NewStyle().Foreground(colorGray)
	styleSpinner = lipgloss.NewStyle().Foreground(colorTeal)
	styleCommand = lipgloss.NewStyle().Foreground(colorSky)
	styleLabel   = lipgloss.NewStyle().Foreground(colorGray).Width(10)
)

const (
	markOK    = "✓"
	markFail  = "✗"
	markWarn  = "!"
	markInfo  = "›"
	markArrow = "→"
	separator = " · "
)

// status writes human-facing progress lines. Data goes to the command
// output; status lines go here so piped output stays clean.
type status struct {
	w io.Writer
}

func (s status) line(mark lipgloss.Style, icon, msg string) {
	fmt.Fprintln(s.w, mark.Render(icon)+" "+msg)
}

func (s status) success(format string, args ...any) {
	s.line(StyleSuccess, markOK, fmt.Sprintf(format, args...))
}

func (s status) fail(format string, args ...any) {
	s.line(styleError, markFail, fmt.Sprintf(format, args...))
}

func (s status) warn(format string, args ...any) {
	s.line(StyleWarning, markWarn, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (s status) info(format string, args ...any) {
	s.line(styleMuted, markInfo, fmt.Sprintf(format, args...))
}

// detail prints an indented, muted line.
func (s status) detail(format string, args ...any) {
	fmt.Fprintln(s.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints a written path under the preceding status line.
func (s status) file(path string) {
	fmt.Fprintln(s.w, "  "+StyleDim.Render(markArrow)+" "+StyleValue.Render(path))
}

func (s status) field(label, value string) {
	fmt.Fprintln(s.w, styleLabel.Render(label)+" "+StyleValue.Render(value))
}

// chainStats prints "N units · M bonds · fresh|cached".
func (s status) chainStats(units, bonds int, cached bool) {
	parts := []string{StyleDim.Render(fmt.Sprintf("%d units", units))}
	if bonds > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d bonds", bonds)))
	}
	if cached {
		parts = append(parts, StyleSuccess.Render("cached"))
	} else {
		parts = append(parts, styleMuted.Render("fresh"))
	}
	fmt.Fprintln(s.w, "  "+strings.Join(parts, StyleDim.Render(separator)))
}

// hint suggests a follow-up command.
func (s status) hint(description, cmd string) {
	fmt.Fprintln(s.w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
