// Package cli holds shared terminal output styling for the fomu command.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#00CED1") // Fomu cyan
	errorColor   = lipgloss.Color("#CC3333")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)
)

// PrintVersion prints version information
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render("Fomu"))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
}

// PrintError prints an error message to stderr
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintInfo prints a key-value pair
func PrintInfo(key, value string) {
	fmt.Printf("%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}
