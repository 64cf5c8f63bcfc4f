package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// handleSettingsKey moves through the theme list and applies a theme.
func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	names := m.themes.names()
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.settingsCursor < len(names)-1 {
			m.settingsCursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
	case key.Matches(msg, m.keys.Open):
		m.setTheme(names[clampInt(m.settingsCursor, 0, len(names)-1)])
		m.setFlash("Theme "+m.theme.Name, false)
	}
	return m, nil
}

// renderSettings renders the theme picker and the active configuration.
func (m Model) renderSettings() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)

	var lines []string
	lines = append(lines, bg.Render("Theme", styles.AccentText.Bold(true)))
	for i, name := range m.themes.names() {
		marker := "  "
		if name == m.theme.Name {
			marker = "● "
		}
		t := m.themes.get(name)
		swatch := ""
		for _, c := range []string{t.Accent, t.Success, t.Warning, t.Danger, t.Info} {
			swatch += lipgloss.NewStyle().Background(lipgloss.Color(c)).Render("  ")
		}
		text := fit(marker+name, 16)
		if i == m.settingsCursor {
			lines = append(lines, styles.Selected.Render(text)+bg.Space()+swatch)
		} else {
			lines = append(lines, bg.Render(text, styles.Text)+bg.Space()+swatch)
		}
	}
	lines = append(lines, "")

	label := func(s string) string { return bg.Cell(s, 14, styles.MutedText) }
	value := func(s, fallback string) string {
		if s == "" {
			return bg.Render(fallback, styles.FaintText)
		}
		return bg.Render(truncateMiddle(s, maxInt(m.width-20, 10)), styles.Text)
	}

	lines = append(lines, bg.Render("Configuration", styles.AccentText.Bold(true)))
	lines = append(lines, label("Theme file")+value(m.themeFile, "none"))
	if m.themeErr != "" {
		lines = append(lines, label("")+bg.Render(m.themeErr, styles.DangerText))
	}
	lines = append(lines, label("Log file")+value(m.logPath, "off"))
	lines = append(lines, label("Page size")+bg.Render(fmt.Sprint(m.data.PageSize()), styles.Text))
	if m.prefs != nil {
		url, tenant, db := m.prefs.LastConnection()
		if url != "" {
			lines = append(lines, label("Last server")+value(url+" "+tenant+"/"+db, ""))
		}
		if n := len(m.prefs.FavoriteNames(m.endpoint)); n > 0 {
			lines = append(lines, label("Favorites")+bg.Render(pluralize(n, "collection"), styles.Text))
		}
	}

	lines = append(lines, "")
	lines = append(lines, bg.Render("enter apply · T cycle · themes are saved to preferences", styles.FaintText))

	return m.renderTitledBox("Settings", strings.Join(lines, "\n"), m.width, m.contentHeight(), true)
}
