package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/chromaview/internal/explorer"
)

// vectorColumns is how many components the vector view prints per line.
const vectorColumns = 4

func (m Model) detailTitle() string {
	ref, ok := m.grid.SelectedCell()
	if !ok {
		return "Detail"
	}
	v := m.grid.SelectedValue()
	title := ref.Column.String() + " · " + truncateMiddle(ref.RowID, 24)
	switch v.Kind {
	case explorer.KindVector:
		title += fmt.Sprintf(" · %d dims", len(v.Vector))
	case explorer.KindText:
		title += " · " + pluralize(len([]rune(v.Text)), "char")
	}
	return title
}

// updateDetailViewport re-renders the inspector into its viewport. Call it
// whenever the selection, the records or the layout change.
func (m *Model) updateDetailViewport() {
	_, detailHeight := m.rightHeights()
	width := maxInt(m.width-m.listWidth()-2, 1)
	m.detailViewport.Width = width
	m.detailViewport.Height = maxInt(detailHeight-2, 1)
	m.detailViewport.SetContent(m.renderDetailBody(width))
	m.detailViewport.GotoTop()
}

// renderDetailBody renders the selected cell value by kind.
func (m Model) renderDetailBody(width int) string {
	styles := m.theme.Styles()
	v := m.grid.SelectedValue()

	badge := styles.KindBadge(v.Kind) + "\n"
	switch v.Kind {
	case explorer.KindText:
		return badge + wrapText(v.Text, width)

	case explorer.KindVector:
		return badge + m.renderVector(v.Vector, width)

	case explorer.KindJSON:
		return badge + v.PrettyJSON()

	default:
		return styles.MutedText.Render(explorer.DetailPlaceholder)
	}
}

// renderVector lays the components out in indexed columns.
func (m Model) renderVector(vec []float64, width int) string {
	styles := m.theme.Styles()
	if len(vec) == 0 {
		return styles.MutedText.Render("[]")
	}

	cols := vectorColumns
	if width < 60 {
		cols = 2
	}
	cellWidth := maxInt(width/cols, 12)

	var b strings.Builder
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("%d components · c copies all", len(vec))))
	b.WriteString("\n")
	for i, f := range vec {
		idx := styles.FaintText.Render(fmt.Sprintf("%4d ", i))
		val := explorer.JoinVector([]float64{f}, "")
		b.WriteString(idx + padRight(truncate(val, cellWidth-6), cellWidth-5))
		if (i+1)%cols == 0 || i == len(vec)-1 {
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// wrapText hard-wraps s to width, keeping existing newlines.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	var out []string
	for _, line := range strings.Split(s, "\n") {
		r := []rune(line)
		for len(r) > width {
			out = append(out, string(r[:width]))
			r = r[width:]
		}
		out = append(out, string(r))
	}
	return strings.Join(out, "\n")
}

// handleDetailKey scrolls the inspector and copies its value.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.detailViewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.detailViewport.ScrollUp(1)
	case key.Matches(msg, m.keys.PageDown):
		m.detailViewport.HalfPageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.detailViewport.HalfPageUp()
	case key.Matches(msg, m.keys.Top):
		m.detailViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.detailViewport.GotoBottom()
	case key.Matches(msg, m.keys.Copy):
		return m.copySelected()
	case key.Matches(msg, m.keys.Escape):
		m.grid.ClearSelection()
		m.updateDetailViewport()
		m.focus = paneGrid
	}
	return m, nil
}

// copySelected puts the selected cell value on the clipboard.
func (m Model) copySelected() (tea.Model, tea.Cmd) {
	v := m.grid.SelectedValue()
	if v.Kind == explorer.KindNone {
		m.setFlash("Nothing selected to copy", true)
		return m, nil
	}
	return m, copyCmd(m.copyText, v.CopyText())
}
