package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/chromaview/internal/explorer"
)

// Grid column widths before the remaining space is shared out.
const (
	gridIDWidth  = 18
	gridMinWidth = 10
)

// cursorColumn is the visible column under the grid cursor.
func (m Model) cursorColumn() explorer.Column {
	cols := m.grid.VisibleColumns()
	if len(cols) == 0 {
		return explorer.ColID
	}
	return cols[clampInt(m.gridCol, 0, len(cols)-1)]
}

// clampGrid keeps the grid cursor inside the visible rows and columns.
func (m *Model) clampGrid() {
	rows := m.grid.Rows()
	m.gridRow = clampInt(m.gridRow, 0, maxInt(len(rows)-1, 0))
	m.gridCol = clampInt(m.gridCol, 0, maxInt(len(m.grid.VisibleColumns())-1, 0))
}

// handleGridKey processes keyboard input for the data grid pane.
func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.grid.Rows()

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.gridRow < len(rows)-1 {
			m.gridRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.gridRow > 0 {
			m.gridRow--
		}
	case key.Matches(msg, m.keys.Right):
		if m.gridCol < len(m.grid.VisibleColumns())-1 {
			m.gridCol++
		}
	case key.Matches(msg, m.keys.Left):
		if m.gridCol > 0 {
			m.gridCol--
		}
	case key.Matches(msg, m.keys.Top):
		m.gridRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.gridRow = maxInt(len(rows)-1, 0)

	case key.Matches(msg, m.keys.Open):
		if m.gridRow < len(rows) {
			ref := explorer.CellRef{RowID: rows[m.gridRow].ID, Column: m.cursorColumn()}
			m.grid.SelectCell(ref)
			m.updateDetailViewport()
		}

	case key.Matches(msg, m.keys.Sort):
		m.grid.ToggleSort(m.cursorColumn())
		m.clampGrid()

	case key.Matches(msg, m.keys.Filter):
		m.gridEditing = true
		m.gridInput.Placeholder = "filter " + m.cursorColumn().String()
		m.gridInput.SetValue(m.grid.Filter(m.cursorColumn()))
		m.gridInput.CursorEnd()
		return m, m.gridInput.Focus()

	case key.Matches(msg, m.keys.ToggleColumn):
		m.grid.ToggleColumn(m.cursorColumn())
		m.clampGrid()

	case key.Matches(msg, m.keys.NextPage):
		if f, ok := m.data.Next(); ok {
			return m, tea.Batch(m.spinner.Tick, runFetch(m.ctx, m.bridge, f))
		}

	case key.Matches(msg, m.keys.PrevPage):
		if f, ok := m.data.Prev(); ok {
			return m, tea.Batch(m.spinner.Tick, runFetch(m.ctx, m.bridge, f))
		}

	case key.Matches(msg, m.keys.PageSize):
		fetches := m.data.CyclePageSize()
		m.setFlash(fmt.Sprintf("Page size %d", m.data.PageSize()), false)
		return m, runFetches(m.ctx, m.bridge, fetches...)

	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(m.spinner.Tick, runFetches(m.ctx, m.bridge, m.data.Refresh()...))

	case key.Matches(msg, m.keys.Copy):
		return m.copySelected()

	case key.Matches(msg, m.keys.Escape):
		m.grid.ClearSelection()
		m.updateDetailViewport()
	}
	return m, nil
}

// handleGridFilterKey edits the filter of the cursor column.
func (m Model) handleGridFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	col := m.cursorColumn()
	switch msg.Type {
	case tea.KeyEnter:
		m.gridEditing = false
		m.gridInput.Blur()
		return m, nil
	case tea.KeyEsc:
		m.gridEditing = false
		m.gridInput.Blur()
		m.gridInput.SetValue("")
		m.grid.SetFilter(col, "")
		m.clampGrid()
		return m, nil
	}
	var cmd tea.Cmd
	m.gridInput, cmd = m.gridInput.Update(msg)
	m.grid.SetFilter(col, m.gridInput.Value())
	m.clampGrid()
	return m, cmd
}

func (m Model) gridTitle() string {
	name := m.data.Collection()
	if name == "" {
		return "Data"
	}
	title := name
	if n, ok := m.data.RowCount(); ok {
		title += " · " + pluralize(n, "record")
	}
	if dims := m.data.Dimensions(); dims > 0 {
		title += fmt.Sprintf(" · %dd", dims)
	}
	return title + " · " + m.data.PageLabel()
}

// renderGrid renders the data pane body for the current controller view.
func (m Model) renderGrid(width, height int) string {
	bg := m.paneBg(m.focus == paneGrid)
	styles := m.theme.Styles()

	switch m.data.View() {
	case explorer.ViewNoSelection:
		return bg.Render("Select a collection to browse its records", styles.MutedText)
	case explorer.ViewLoading:
		return m.spinner.View() + bg.Render(" Loading...", styles.WarningText)
	case explorer.ViewError:
		return bg.Render("Error: "+truncate(m.data.Err(), maxInt(width-7, 1)), styles.DangerText) +
			"\n" + bg.Render("r to retry", styles.FaintText)
	case explorer.ViewEmpty:
		if m.data.TableLoading() {
			return m.spinner.View() + bg.Render(" Loading records...", styles.WarningText)
		}
		return bg.Render("No records in this collection", styles.MutedText)
	}

	cols := m.grid.VisibleColumns()
	widths := gridWidths(cols, width)
	sortCol, sortDir := m.grid.Sort()

	var lines []string

	// Column headers carry sort and filter markers.
	var header []string
	for i, c := range cols {
		label := c.String()
		if c == sortCol {
			switch sortDir {
			case explorer.SortAsc:
				label += " ▲"
			case explorer.SortDesc:
				label += " ▼"
			}
		}
		if m.grid.Filter(c) != "" {
			label += " ⧩"
		}
		style := styles.MutedText.Bold(true)
		if i == m.gridCol && m.focus == paneGrid {
			style = styles.AccentText.Bold(true)
		}
		header = append(header, bg.Cell(label, widths[i], style))
	}
	lines = append(lines, bg.Row(header))

	if m.gridEditing {
		lines = append(lines, m.gridInput.View())
	}

	rows := m.grid.Rows()
	if len(rows) == 0 {
		lines = append(lines, bg.Render("No rows match the filter", styles.MutedText))
		return strings.Join(lines, "\n")
	}

	visible := maxInt(height-len(lines)-1, 1)
	start := 0
	if m.gridRow >= visible {
		start = m.gridRow - visible + 1
	}
	end := minInt(start+visible, len(rows))

	selected, hasSel := m.grid.SelectedCell()
	cursorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.SelectionText)).
		Background(lipgloss.Color(m.theme.SelectionBg))
	selectedStyle := cursorStyle.Bold(true).Underline(true)

	for r := start; r < end; r++ {
		row := rows[r]
		var cells []string
		for i, c := range cols {
			text := row.Cell(c).Display
			if text == "" {
				text = "-"
			}
			style := styles.Text
			if c == explorer.ColID {
				style = styles.AccentText
			}
			isCursor := r == m.gridRow && i == m.gridCol && m.focus == paneGrid
			isSelected := hasSel && selected.RowID == row.ID && selected.Column == c
			switch {
			case isSelected:
				cells = append(cells, selectedStyle.Width(widths[i]).MaxWidth(widths[i]).Render(truncate(text, widths[i])))
			case isCursor:
				cells = append(cells, cursorStyle.Width(widths[i]).MaxWidth(widths[i]).Render(truncate(text, widths[i])))
			default:
				cells = append(cells, bg.Cell(text, widths[i], style))
			}
		}
		lines = append(lines, bg.Row(cells))
	}

	footer := fmt.Sprintf("row %d/%d", m.gridRow+1, len(rows))
	if len(rows) != m.grid.Len() {
		footer += fmt.Sprintf(" (of %d)", m.grid.Len())
	}
	if m.data.TableLoading() {
		footer = m.spinner.View() + " " + footer
	}
	lines = append(lines, bg.Render(footer, styles.FaintText))
	return strings.Join(lines, "\n")
}

// gridWidths shares width between cols. The id column is fixed; the others
// split what remains, with metadata and document favored over embedding.
func gridWidths(cols []explorer.Column, width int) []int {
	widths := make([]int, len(cols))
	avail := width - (len(cols) - 1)
	weights := 0
	for i, c := range cols {
		if c == explorer.ColID && len(cols) > 1 {
			widths[i] = minInt(gridIDWidth, maxInt(avail/len(cols), gridMinWidth))
			avail -= widths[i]
			continue
		}
		weights += columnWeight(c)
	}
	if weights == 0 {
		return widths
	}
	remaining := maxInt(avail, 0)
	last := -1
	for i, c := range cols {
		if c == explorer.ColID && len(cols) > 1 {
			continue
		}
		widths[i] = maxInt(avail*columnWeight(c)/weights, 1)
		remaining -= widths[i]
		last = i
	}
	if last >= 0 && remaining > 0 {
		widths[last] += remaining
	}
	return widths
}

func columnWeight(c explorer.Column) int {
	switch c {
	case explorer.ColEmbedding:
		return 2
	case explorer.ColID:
		return 1
	default:
		return 3
	}
}
