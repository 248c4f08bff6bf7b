// Package output renders rule sets, asset listings, and batch results
// for the terminal. Styling degrades to plain text when stdout is not
// a terminal or NO_COLOR is set.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Status classifies a rendered line.
type Status string

const (
	StatusOK       Status = "ok"       // asset modified
	StatusFailed   Status = "failed"   // commit failed
	StatusSkipped  Status = "skipped"  // nothing to change
	StatusDisabled Status = "disabled" // rule is disabled
	StatusWarning  Status = "warning"  // metadata unavailable
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
)

// StatusStyle returns the pterm style for a status.
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusOK:
		return pterm.NewStyle(pterm.FgGreen)
	case StatusFailed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case StatusWarning:
		return pterm.NewStyle(pterm.FgYellow)
	case StatusDisabled:
		return pterm.NewStyle(pterm.FgGray)
	default:
		return pterm.NewStyle(pterm.FgDefault)
	}
}

// ColorEnabled reports whether styled output should be produced.
// NO_COLOR and CLICOLOR are honored via termenv.
func ColorEnabled() bool {
	if termenv.EnvNoColor() {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
