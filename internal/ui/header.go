package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/chromaview/internal/state"
)

// healthStatus maps the heartbeat record to a badge key in StatusColors.
func healthStatus(snap state.Snapshot) string {
	switch {
	case !snap.Connected:
		return "connecting"
	case snap.IsOffline():
		return "offline"
	case snap.LastError != nil:
		return "degraded"
	default:
		return "online"
	}
}

// renderHeader renders the status bar with all information.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	snap := m.snapshot

	var parts []string
	parts = append(parts, bg.Render(appName, styles.Logo))

	status := healthStatus(snap)
	label := strings.ToUpper(status)
	if status == "connecting" {
		label = "DISCONNECTED"
	}
	if status == "offline" && snap.LastError != nil {
		label = classifyConnectionError(snap.LastError)
	}
	parts = append(parts, styles.StatusStyle(status).Render(label))

	urlWidth := 40
	if compact {
		urlWidth = 24
	}
	parts = append(parts, bg.Render(truncateMiddle(snap.Endpoint.URL, urlWidth), styles.Text))

	if !compact {
		parts = append(parts,
			bg.Render(snap.Endpoint.Tenant, styles.MutedText)+bg.Render("/", styles.FaintText)+
				bg.Render(snap.Endpoint.Database, styles.MutedText))
	}

	if snap.Version != "" {
		parts = append(parts, bg.Render("v"+snap.Version, styles.InfoText))
	}

	// Menu tabs
	var tabs []string
	for i, menu := range state.Menus() {
		tab := fmt.Sprintf("%d %s", i+1, menu)
		if menu == snap.Menu {
			tabs = append(tabs, bg.Render("["+tab+"]", styles.AccentText.Bold(true)))
		} else {
			tabs = append(tabs, bg.Render(tab, styles.MutedText))
		}
	}
	parts = append(parts, strings.Join(tabs, bg.Space()))

	if ts := formatChecked(snap.LastChecked); ts != "" && !compact {
		parts = append(parts, bg.Render(ts, styles.FaintText))
	}

	if m.flash.text != "" {
		maxFlash := 60
		if compact {
			maxFlash = 30
		}
		style := styles.SuccessText
		if m.flash.isErr {
			style = styles.WarningText
		}
		parts = append(parts, bg.Render(truncate(m.flash.text, maxFlash), style))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		MaxWidth(m.width).
		Render(bg.Join(parts, "  "))
}

// formatChecked formats the last heartbeat time with a relative indicator.
func formatChecked(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	since := time.Since(t)
	s := "checked " + t.Format("15:04:05")
	switch {
	case since < time.Minute:
	case since < time.Hour:
		s += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	default:
		s += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return s
}

// classifyConnectionError returns a short description of the connection error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "401"), strings.Contains(msg, "403"):
		return "UNAUTHORIZED"
	default:
		return "OFFLINE"
	}
}

// renderCommandBar renders the key hints for the active menu and pane.
func (m Model) renderCommandBar() string {
	// Command bar uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.snapshot.Menu {
	case state.MenuCollections:
		switch m.focus {
		case paneGrid:
			commands = []cmd{
				{"enter", "Select"},
				{"s", "Sort"},
				{"/", "Filter"},
				{"v", "Column"},
				{"[ ]", "Page"},
				{"z", fmt.Sprintf("Size %d", m.data.PageSize())},
				{"c", "Copy"},
				{"r", "Refresh"},
			}
		case paneDetail:
			commands = []cmd{
				{"j/k", "Scroll"},
				{"c", "Copy"},
				{"esc", "Clear"},
			}
		default:
			commands = []cmd{
				{"enter", "Open"},
				{"space", "Mark"},
				{"f", "Favorite"},
				{"/", "Filter"},
				{"n", "New"},
				{"d", "Delete"},
				{"i", "Info"},
			}
		}
		commands = append(commands, cmd{"Tab", "Focus"})
	case state.MenuSettings:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Apply theme"},
		}
	default:
		commands = []cmd{
			{"t", "Test"},
			{"R", "Reset"},
			{"X", "Disconnect"},
			{"2", "Collections"},
		}
	}
	commands = append(commands, cmd{"L", "Logs"}, cmd{"?", "More"})

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Add theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(strings.Join(segments, sep))
}
