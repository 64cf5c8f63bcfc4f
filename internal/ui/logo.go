package ui

import (
	"os/exec"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const appName = "chromaview"

// createLogo returns the connect screen banner, using figlet when it is
// installed and the plain name otherwise.
func createLogo() string {
	cmd := exec.Command("figlet", "-f", "slant", appName)
	output, err := cmd.Output()
	if err == nil && len(output) > 0 {
		return trimBlankLines(string(output))
	}
	return strings.ToUpper(appName)
}

// renderLogo paints each banner line with the logo style.
func renderLogo(logo string, style lipgloss.Style) string {
	lines := strings.Split(logo, "\n")
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}

func trimBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, strings.TrimRight(line, " "))
		}
	}
	return strings.Join(out, "\n")
}
