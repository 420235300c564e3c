package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals outside this block.
var (
	// ColorCyan is used for identifiable nouns: template names, paths.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the DONE banner and succeeded steps.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for skipped steps.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for the ERROR banner and failed steps.
	ColorBoldRed = lipgloss.Color("204")

	// ColorDimGray is used for tree connectors and skip messages.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (template names, directories).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleDone styles the success banner label.
	StyleDone = lipgloss.NewStyle().Bold(true).Foreground(ColorGreen)

	// StyleError styles the error banner label.
	StyleError = lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
)

// Step status constants, as shown in the task list.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// statusStyle returns the lipgloss style for a step status.
// Unknown statuses return an unstyled default.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusSucceeded:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusSkipped:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	case StatusRunning:
		return lipgloss.NewStyle().Faint(true)
	default:
		return lipgloss.NewStyle()
	}
}

// statusSymbol returns the list marker for a step status.
func statusSymbol(status string) string {
	switch status {
	case StatusSucceeded:
		return "✔"
	case StatusSkipped:
		return "↓"
	case StatusFailed:
		return "✖"
	default:
		return "›"
	}
}

// FormatStepLine renders a task step line: a colored marker, the title and,
// for skipped steps, the skip reason.
func FormatStepLine(title, status, detail string) string {
	style := statusStyle(status)
	line := style.Render(statusSymbol(status)) + " " + title
	if status == StatusSkipped {
		line += " " + style.Render("[skipped]")
	}
	if detail != "" {
		line += "\n  " + StyleDim.Render("→ "+detail)
	}
	return line
}

// PrintDone writes the success banner, e.g. "DONE Project ready".
func PrintDone(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", StyleDone.Render("DONE"), msg)
}

// PrintError writes the error banner, e.g. "ERROR Invalid template name".
func PrintError(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", StyleError.Render("ERROR"), msg)
}
