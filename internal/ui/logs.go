package ui

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/chromaview/internal/logtail"
)

// logPanel is the resizable tail of chromaview's own log file shown under
// the main content.
type logPanel struct {
	visible  bool
	height   int
	entries  []logtail.Entry
	err      string
	minLevel string
	viewport viewport.Model
}

func newLogPanel() logPanel {
	return logPanel{
		height:   DefaultLogPanelHeight,
		viewport: viewport.New(0, 0),
	}
}

// apply stores a fresh read of the log file.
func (p *logPanel) apply(msg logLinesMsg) {
	if msg.err != nil {
		p.err = msg.err.Error()
		return
	}
	p.err = ""
	p.entries = logtail.ParseAll(msg.lines)
}

func (p *logPanel) cycleLevel() {
	p.minLevel = nextLogLevel(p.minLevel)
}

// shown is the entries that pass the level filter.
func (p logPanel) shown() []logtail.Entry {
	return logtail.AtLeast(p.entries, p.minLevel)
}

// updateLogViewport sizes the viewport to the panel and re-renders it,
// keeping the newest line in view.
func (m *Model) updateLogViewport() {
	m.logs.viewport.Width = maxInt(m.width-2, 1)
	m.logs.viewport.Height = maxInt(m.logs.height-2, 1)
	m.logs.viewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.SurfaceAlt))
	m.logs.viewport.SetContent(m.renderLogContent())
	m.logs.viewport.GotoBottom()
}

// resizeLogs grows or shrinks the panel and remembers the height for the
// endpoint.
func (m *Model) resizeLogs(delta int) {
	if !m.logs.visible {
		return
	}
	h := clampInt(m.logs.height+delta, MinLogPanelHeight, MaxLogPanelHeight)
	if maxH := m.height - 8; h > maxH {
		h = maxInt(maxH, MinLogPanelHeight)
	}
	if h == m.logs.height {
		return
	}
	m.logs.height = h
	if m.prefs != nil && m.endpoint != "" {
		if err := m.prefs.SetLogPanelHeight(m.endpoint, h); err != nil {
			m.setFlash("Could not save panel height: "+err.Error(), true)
		}
	}
	m.resize()
}

// renderLogs renders the log panel box.
func (m Model) renderLogs() string {
	return m.renderTitledBox(m.logTitle(), m.logs.viewport.View(), m.width, m.logs.height, false)
}

func (m Model) logTitle() string {
	if m.logPath == "" {
		return "Log"
	}
	title := "Log · " + filepath.Base(m.logPath)
	if m.logs.minLevel != "" {
		title += " · ≥ " + m.logs.minLevel
	}
	return title + " · " + pluralize(len(m.logs.shown()), "line")
}

// renderLogContent renders the colorized log lines.
func (m Model) renderLogContent() string {
	bg := NewBgStyle(m.theme.SurfaceAlt)
	styles := m.theme.Styles()
	width := m.logs.viewport.Width

	switch {
	case m.logPath == "":
		return bg.FillLine(bg.Render("File logging is off; start with --log-file to see logs here", styles.MutedText), width)
	case m.logs.err != "":
		return bg.FillLine(bg.Render(m.logs.err, styles.DangerText), width)
	}

	entries := m.logs.shown()
	if len(entries) == 0 {
		return bg.FillLine(bg.Render("No log entries", styles.MutedText), width)
	}

	now := time.Now()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, bg.FillLine(m.colorizeEntry(e, now, styles, bg), width))
	}
	return strings.Join(lines, "\n")
}

// colorizeEntry styles each part of a parsed entry. Unparsed lines such as
// stack traces are indented and muted.
func (m Model) colorizeEntry(e logtail.Entry, now time.Time, styles Styles, bg BgStyle) string {
	if !e.Parsed() {
		return bg.Spaces(4) + bg.Render(truncate(e.Raw, maxInt(m.logs.viewport.Width-4, 1)), styles.MutedText)
	}

	var b strings.Builder
	b.WriteString(bg.Render(shortTime(e.Time, now), styles.FaintText))
	b.WriteString(bg.Space())
	b.WriteString(bg.Render(padRight(e.Level, 5), levelStyle(e.Level, styles).Bold(true)))
	if e.Logger != "" {
		b.WriteString(bg.Space())
		b.WriteString(bg.Render(e.Logger, styles.AccentText))
	}
	b.WriteString(bg.Space())
	b.WriteString(bg.Render("–", styles.FaintText))
	b.WriteString(bg.Space())
	b.WriteString(bg.Render(strings.TrimSpace(e.Message), styles.Text))
	if e.Fields != "" {
		b.WriteString(bg.Space())
		b.WriteString(bg.Render(e.Fields, styles.MutedText))
	}
	return b.String()
}

// levelStyle returns the style for a log level.
func levelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "INFO":
		return styles.SuccessText
	case "WARN":
		return styles.WarningText
	case "ERROR", "DPANIC", "PANIC", "FATAL":
		return styles.DangerText
	case "DEBUG":
		return styles.InfoText
	default:
		return styles.Text
	}
}
