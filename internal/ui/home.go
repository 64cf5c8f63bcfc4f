package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/chromaview/internal/explorer"
	"github.com/five82/chromaview/internal/logging"
	"github.com/five82/chromaview/internal/state"
)

// handleHomeKey processes keyboard input for the Home menu.
func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.TestConnection):
		if m.home.testing {
			return m, nil
		}
		m.home.testing = true
		m.home.testResult = ""
		return m, tea.Batch(m.spinner.Tick, healthCmd(m.ctx, m.bridge))

	case key.Matches(msg, m.keys.Reset):
		body := []string{
			"This deletes every collection in the database:",
			m.snapshot.Endpoint.Tenant + "/" + m.snapshot.Endpoint.Database,
		}
		m.modal = newConfirmModal("Reset database", body, "Reset", m.startReset())
		return m, nil

	case key.Matches(msg, m.keys.Disconnect):
		return m.disconnect()

	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(versionCmd(m.ctx, m.bridge), fetchCollectionsCmd(m.ctx, m.bridge))
	}
	return m, nil
}

// startReset returns the reset command; the Home view shows progress until
// resetDoneMsg arrives.
func (m Model) startReset() tea.Cmd {
	return tea.Sequence(func() tea.Msg { return resetStartedMsg{} }, resetCmd(m.ctx, m.bridge))
}

type resetStartedMsg struct{}

func (m Model) handleResetDone(msg resetDoneMsg) (tea.Model, tea.Cmd) {
	m.home.resetting = false
	if !msg.res.OK() {
		logging.FromContext(m.ctx).Warn("reset database", zap.String("error", msg.res.Err))
		m.modal = newErrorModal("Reset failed", msg.res.Err, m.startReset())
		return m, nil
	}

	m.dispatch(state.SelectCollection{})
	m.data.Clear()
	m.grid = &explorer.Grid{}
	m.collections.ClearSelection()
	m.updateDetailViewport()
	m.setFlash("Database reset", false)
	return m, fetchCollectionsCmd(m.ctx, m.bridge)
}

// renderHome renders the server overview.
func (m Model) renderHome() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)
	snap := m.snapshot
	width := m.width - 2

	label := func(s string) string { return bg.Cell(s, 14, styles.MutedText) }

	var lines []string
	lines = append(lines, renderLogo(m.logo, styles.Logo))
	lines = append(lines, "")

	lines = append(lines, label("Server")+bg.Render(snap.Endpoint.URL, styles.Text))
	lines = append(lines, label("Tenant")+bg.Render(snap.Endpoint.Tenant, styles.Text))
	lines = append(lines, label("Database")+bg.Render(snap.Endpoint.Database, styles.Text))

	version := snap.Version
	if version == "" {
		version = "unknown"
	}
	lines = append(lines, label("Version")+bg.Render(version, styles.InfoText))
	lines = append(lines, label("Collections")+bg.Render(fmt.Sprint(m.collections.Len()), styles.Text))

	status := healthStatus(snap)
	health := styles.StatusStyle(status).Render(strings.ToUpper(status))
	if snap.LastError != nil {
		health += bg.Space() + bg.Render(truncate(snap.LastError.Error(), maxInt(width-30, 10)), styles.DangerText)
	}
	lines = append(lines, label("Health")+health)
	if ts := formatChecked(snap.LastChecked); ts != "" {
		lines = append(lines, label("")+bg.Render(ts, styles.FaintText))
	}
	lines = append(lines, "")

	switch {
	case m.home.testing:
		lines = append(lines, label("Test")+m.spinner.View()+bg.Render(" Checking...", styles.WarningText))
	case m.home.testResult != "":
		style := styles.SuccessText
		if m.home.testErr {
			style = styles.DangerText
		}
		lines = append(lines, label("Test")+bg.Render(truncate(m.home.testResult, maxInt(width-16, 10)), style))
	}
	if m.home.resetting {
		lines = append(lines, label("Reset")+m.spinner.View()+bg.Render(" Resetting database...", styles.WarningText))
	}

	lines = append(lines, "")
	lines = append(lines, bg.Render("t test connection · R reset database · X disconnect · 2 browse collections", styles.FaintText))

	return m.renderTitledBox("Home", strings.Join(lines, "\n"), m.width, m.contentHeight(), true)
}
