package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// helpSectionTitles names the groups of keyMap.FullHelp in order.
var helpSectionTitles = []string{"Navigation", "Movement", "Collections", "Data grid", "Home", "General"}

const helpKeyWidth = 10

// renderHelp lays the FullHelp groups out in two columns inside a modal.
func (m Model) renderHelp() string {
	groups := m.keys.FullHelp()
	half := (len(groups) + 1) / 2
	colWidth := (modalWidth - 6) / 2

	left := m.renderHelpColumn(groups[:half], helpSectionTitles[:half], colWidth)
	right := m.renderHelpColumn(groups[half:], helpSectionTitles[half:], colWidth)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	return placeModal(m.theme, m.width, m.height, m.theme.Accent, "Keyboard Shortcuts", body, "any key to close")
}

func (m Model) renderHelpColumn(groups [][]key.Binding, titles []string, width int) string {
	styles := m.theme.Styles()
	keyStyle := fg(m.theme.Warning).Width(helpKeyWidth)

	var lines []string
	for i, group := range groups {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, styles.AccentText.Bold(true).Render(titles[i]))
		for _, b := range group {
			h := b.Help()
			if h.Key == "" {
				continue
			}
			lines = append(lines, keyStyle.Render(h.Key)+styles.Text.Render(truncate(h.Desc, width-helpKeyWidth-1)))
		}
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}
