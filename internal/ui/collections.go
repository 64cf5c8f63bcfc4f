package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/chromaview/internal/explorer"
	"github.com/five82/chromaview/internal/logging"
	"github.com/five82/chromaview/internal/state"
)

// displayCollections is the filtered, favorites-first list as shown.
func (m Model) displayCollections() []explorer.Collection {
	return m.collections.Display(m.favorites())
}

// cursorCollection returns the collection under the list cursor.
func (m Model) cursorCollection() (explorer.Collection, bool) {
	items := m.displayCollections()
	if m.listCursor < 0 || m.listCursor >= len(items) {
		return explorer.Collection{}, false
	}
	return items[m.listCursor], true
}

// handleCollections applies a fetch_collections result. Failures keep the
// previous list.
func (m Model) handleCollections(msg collectionsMsg) (tea.Model, tea.Cmd) {
	if !msg.res.OK() {
		logging.FromContext(m.ctx).Warn("fetch collections", zap.String("error", msg.res.Err))
		m.setFlash("Could not load collections: "+msg.res.Err, true)
		return m, nil
	}

	// Keep the cursor on the same collection when it survives the refresh.
	var keepID string
	if c, ok := m.cursorCollection(); ok {
		keepID = c.ID
	}
	m.collections.Replace(explorer.FromChroma(msg.res.Value))
	m.listCursor = 0
	for i, c := range m.displayCollections() {
		if c.ID == keepID {
			m.listCursor = i
			break
		}
	}
	m.clampList()
	return m, nil
}

func (m *Model) clampList() {
	n := len(m.displayCollections())
	if n == 0 {
		m.listCursor = 0
		return
	}
	m.listCursor = clampInt(m.listCursor, 0, n-1)
}

// handleCollectionsKey processes keyboard input for the Collections menu.
func (m Model) handleCollectionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Tab):
		m.focus = (m.focus + 1) % paneCount
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.focus = (m.focus + paneCount - 1) % paneCount
		return m, nil
	}

	switch m.focus {
	case paneGrid:
		return m.handleGridKey(msg)
	case paneDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

// handleListKey processes keyboard input for the collection list pane.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.displayCollections()

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.listCursor < len(items)-1 {
			m.listCursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.listCursor > 0 {
			m.listCursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.listCursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.listCursor = maxInt(len(items)-1, 0)

	case key.Matches(msg, m.keys.Open):
		if c, ok := m.cursorCollection(); ok {
			return m.openCollection(c.Name)
		}

	case key.Matches(msg, m.keys.Select):
		if c, ok := m.cursorCollection(); ok {
			m.collections.ToggleSelected(c.ID)
			if m.listCursor < len(items)-1 {
				m.listCursor++
			}
		}

	case key.Matches(msg, m.keys.Favorite):
		if c, ok := m.cursorCollection(); ok {
			return m.toggleFavorite(c.Name)
		}

	case key.Matches(msg, m.keys.Filter):
		m.listEditing = true
		m.listInput.SetValue(m.collections.Filter())
		m.listInput.CursorEnd()
		return m, m.listInput.Focus()

	case key.Matches(msg, m.keys.Create):
		m.modal = newCreateModal(m.ctx, m.bridge)
		return m, m.modal.(*createModal).focusCmd()

	case key.Matches(msg, m.keys.Delete):
		c, _ := m.cursorCollection()
		return m.confirmDelete(c.ID)

	case key.Matches(msg, m.keys.Info):
		if c, ok := m.cursorCollection(); ok {
			m.modal = newInfoModal(c.Name)
			return m, fetchInfoCmd(m.ctx, m.bridge, c.Name)
		}

	case key.Matches(msg, m.keys.Refresh):
		return m, fetchCollectionsCmd(m.ctx, m.bridge)

	case key.Matches(msg, m.keys.Escape):
		m.collections.ClearSelection()
		m.collections.SetFilter("")
		m.clampList()
	}
	return m, nil
}

// handleListFilterKey edits the collection name filter.
func (m Model) handleListFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.listEditing = false
		m.listInput.Blur()
		return m, nil
	case tea.KeyEsc:
		m.listEditing = false
		m.listInput.Blur()
		m.listInput.SetValue("")
		m.collections.SetFilter("")
		m.clampList()
		return m, nil
	}
	var cmd tea.Cmd
	m.listInput, cmd = m.listInput.Update(msg)
	m.collections.SetFilter(m.listInput.Value())
	m.clampList()
	return m, cmd
}

// openCollection makes name the browsed collection and starts its fetches.
func (m Model) openCollection(name string) (tea.Model, tea.Cmd) {
	m.dispatch(state.SelectCollection{Name: name})
	fetches := m.data.Select(name)
	m.grid = &explorer.Grid{}
	m.gridRow, m.gridCol = 0, 0
	m.focus = paneGrid
	m.updateDetailViewport()
	return m, tea.Batch(m.spinner.Tick, runFetches(m.ctx, m.bridge, fetches...))
}

func (m Model) toggleFavorite(name string) (tea.Model, tea.Cmd) {
	pinned, err := m.favorites().ToggleFavorite(name)
	if err != nil {
		m.setFlash("Could not save favorite: "+err.Error(), true)
		return m, nil
	}
	m.setFlash(ternary(pinned, "Pinned ", "Unpinned ")+name, false)
	// Favorites reorder the list; follow the toggled entry.
	for i, c := range m.displayCollections() {
		if c.Name == name {
			m.listCursor = i
			break
		}
	}
	return m, nil
}

// confirmDelete resolves the deletion targets and asks for confirmation. An
// unresolvable id aborts before anything reaches the backend.
func (m Model) confirmDelete(targetID string) (tea.Model, tea.Cmd) {
	names, err := m.collections.ResolveDeletion(targetID)
	if err != nil {
		m.setFlash("Delete failed: "+err.Error(), true)
		return m, nil
	}
	title := "Delete collection"
	if len(names) > 1 {
		title = fmt.Sprintf("Delete %d collections", len(names))
	}
	body := append([]string{"This permanently removes:"}, names...)
	m.modal = newConfirmModal(title, body, "Delete", deleteCollectionsCmd(m.ctx, m.bridge, names))
	return m, nil
}

func (m Model) handleDeleteDone(msg deleteDoneMsg) (tea.Model, tea.Cmd) {
	refresh := fetchCollectionsCmd(m.ctx, m.bridge)
	if !msg.res.OK() {
		logging.FromContext(m.ctx).Warn("delete collections",
			zap.Strings("names", msg.names), zap.String("error", msg.res.Err))
		m.modal = newErrorModal("Delete failed", msg.res.Err, deleteCollectionsCmd(m.ctx, m.bridge, msg.names))
		return m, refresh
	}

	m.dispatch(state.CollectionsDeleted{Names: msg.names})
	if m.snapshot.CurrentCollection == "" && m.data.Collection() != "" {
		m.data.Clear()
		m.grid = &explorer.Grid{}
		m.updateDetailViewport()
	}
	m.collections.ClearSelection()
	m.setFlash(explorer.DeletedMessage(msg.names), false)
	return m, refresh
}

// renderCollections renders the list, grid and detail panes.
func (m Model) renderCollections() string {
	height := m.contentHeight()
	listWidth := m.listWidth()
	rightWidth := m.width - listWidth

	list := m.renderTitledBox(m.listTitle(), m.renderCollectionList(listWidth-2, height-2), listWidth, height, m.focus == paneList)

	gridHeight, detailHeight := m.rightHeights()
	grid := m.renderTitledBox(m.gridTitle(), m.renderGrid(rightWidth-2, gridHeight-2), rightWidth, gridHeight, m.focus == paneGrid)
	detail := m.renderTitledBox(m.detailTitle(), m.detailViewport.View(), rightWidth, detailHeight, m.focus == paneDetail)

	return lipgloss.JoinHorizontal(lipgloss.Top, list, lipgloss.JoinVertical(lipgloss.Left, grid, detail))
}

func (m Model) listWidth() int {
	pct := 28
	if m.width >= LayoutExtraWideWidth {
		pct = 22
	}
	return clampInt(m.width*pct/100, ListPaneMinWidth, maxInt(m.width/2, ListPaneMinWidth))
}

// rightHeights splits the right column between grid and detail.
func (m Model) rightHeights() (grid, detail int) {
	h := m.contentHeight()
	grid = h * 3 / 5
	if grid < 5 {
		grid = minInt(5, h)
	}
	return grid, h - grid
}

func (m Model) listTitle() string {
	n := m.collections.Len()
	title := "Collections (" + fmt.Sprint(n) + ")"
	if sel := len(m.collections.Selected()); sel > 0 {
		title += fmt.Sprintf(" · %d marked", sel)
	}
	return title
}

// renderCollectionList renders the list pane body.
func (m Model) renderCollectionList(width, height int) string {
	bg := m.paneBg(m.focus == paneList)
	styles := m.theme.Styles()

	var lines []string
	if m.listEditing {
		lines = append(lines, m.listInput.View())
	} else if f := m.collections.Filter(); f != "" {
		lines = append(lines, bg.Render("/ "+f, styles.AccentText))
	}

	items := m.displayCollections()
	if len(items) == 0 {
		msg := "No collections"
		if m.collections.Filter() != "" {
			msg = "No collections match the filter"
		}
		lines = append(lines, bg.Render(msg, styles.MutedText))
		return strings.Join(lines, "\n")
	}

	rows := maxInt(height-len(lines), 1)
	start := 0
	if m.listCursor >= rows {
		start = m.listCursor - rows + 1
	}
	end := minInt(start+rows, len(items))

	for i := start; i < end; i++ {
		c := items[i]
		mark := "  "
		if m.collections.IsSelected(c.ID) {
			mark = "✓ "
		}
		star := "  "
		if c.IsFavorite {
			star = "★ "
		}
		name := truncate(c.Name, maxInt(width-4, 1))

		if i == m.listCursor && m.focus == paneList {
			lines = append(lines, styles.Selected.Width(width).Render(mark+star+name))
			continue
		}
		nameStyle := styles.Text
		if c.Name == m.data.Collection() {
			nameStyle = styles.AccentText.Bold(true)
		}
		line := bg.Render(mark, styles.SuccessText) + bg.Render(star, styles.Favorite) + bg.Render(name, nameStyle)
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// minInt returns the smaller of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
