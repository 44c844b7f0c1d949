package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)

	counts = message.NewPrinter(language.English)
)

func printSuccess(w io.Writer, label, msg string) {
	fmt.Fprintf(w, "%s %s\n", successStyle.Render(label), msg)
}

func printWarning(w io.Writer, msg string) {
	fmt.Fprintln(w, warningStyle.Render(msg))
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorStyle.Render("Error:"), err)
}

func printMuted(w io.Writer, msg string) {
	fmt.Fprintln(w, mutedStyle.Render(msg))
}

// pluralFiles formats a file count with thousands separators.
func pluralFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return counts.Sprintf("%d files", n)
}
