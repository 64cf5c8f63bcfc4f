package explorer

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/five82/chromaview/internal/chroma"
)

// Column is one of the fixed grid columns.
type Column int

const (
	ColID Column = iota
	ColDocument
	ColEmbedding
	ColMetadata
	columnCount
)

// Columns lists the grid columns in display order.
func Columns() []Column {
	return []Column{ColID, ColDocument, ColEmbedding, ColMetadata}
}

func (c Column) String() string {
	switch c {
	case ColID:
		return "id"
	case ColDocument:
		return "document"
	case ColEmbedding:
		return "embedding"
	case ColMetadata:
		return "metadata"
	default:
		return fmt.Sprintf("Column(%d)", int(c))
	}
}

// SortDir is a column's sort direction.
type SortDir int

const (
	SortNone SortDir = iota
	SortAsc
	SortDesc
)

// Cell is one grid cell: the text shown in the table and the classified raw
// value used by the inspector.
type Cell struct {
	Display string
	Value   CellValue
}

// Row is one record rendered into cells.
type Row struct {
	ID    string
	Cells [columnCount]Cell
}

// Cell returns the cell for col.
func (r Row) Cell(col Column) Cell { return r.Cells[col] }

// CellRef addresses one cell by record id and column.
type CellRef struct {
	RowID  string
	Column Column
}

// DocumentPreviewLen bounds the document column's display text.
const DocumentPreviewLen = 80

// Grid is the table over the current page. Sorting, filtering and column
// visibility apply only to the rows already fetched; the grid never pages.
type Grid struct {
	rows     []Row
	sortCol  Column
	sortDir  SortDir
	filters  [columnCount]string
	hidden   [columnCount]bool
	selected *CellRef
}

// SetRecords rebuilds the rows. The cell selection survives only if its row
// is still present.
func (g *Grid) SetRecords(records []chroma.Record) {
	g.rows = make([]Row, len(records))
	for i, rec := range records {
		g.rows[i] = buildRow(rec)
	}
	if g.selected != nil {
		if _, ok := g.row(g.selected.RowID); !ok {
			g.selected = nil
		}
	}
}

func buildRow(rec chroma.Record) Row {
	var r Row
	r.ID = rec.ID
	r.Cells[ColID] = Cell{Display: rec.ID, Value: Classify(rec.ID)}

	r.Cells[ColDocument] = Cell{Display: Truncate(rec.Document, DocumentPreviewLen), Value: Classify(rec.Document)}
	r.Cells[ColEmbedding] = Cell{Display: FormatEmbedding(rec.Embedding), Value: Classify(rec.Embedding)}
	r.Cells[ColMetadata] = Cell{Display: FormatMetadata(rec.Metadata), Value: Classify(rec.Metadata)}
	return r
}

// Len is the number of rows before filtering.
func (g *Grid) Len() int { return len(g.rows) }

// Rows returns the filtered and sorted rows.
func (g *Grid) Rows() []Row {
	out := make([]Row, 0, len(g.rows))
	for _, r := range g.rows {
		if g.matches(r) {
			out = append(out, r)
		}
	}
	if g.sortDir != SortNone {
		col := g.sortCol
		desc := g.sortDir == SortDesc
		slices.SortStableFunc(out, func(a, b Row) int {
			c := cmp.Compare(a.Cells[col].Display, b.Cells[col].Display)
			if desc {
				return -c
			}
			return c
		})
	}
	return out
}

func (g *Grid) matches(r Row) bool {
	for col, f := range g.filters {
		if f != "" && !strings.Contains(r.Cells[col].Display, f) {
			return false
		}
	}
	return true
}

// ToggleSort cycles col through ascending, descending and unsorted. Sorting
// a different column starts at ascending.
func (g *Grid) ToggleSort(col Column) {
	if col != g.sortCol {
		g.sortCol = col
		g.sortDir = SortAsc
		return
	}
	g.sortDir = (g.sortDir + 1) % 3
}

// Sort returns the active sort column and direction.
func (g *Grid) Sort() (Column, SortDir) { return g.sortCol, g.sortDir }

// SetFilter sets a substring filter on col. Empty clears it.
func (g *Grid) SetFilter(col Column, text string) {
	if col < 0 || col >= columnCount {
		return
	}
	g.filters[col] = text
}

// Filter returns the filter on col.
func (g *Grid) Filter(col Column) string {
	if col < 0 || col >= columnCount {
		return ""
	}
	return g.filters[col]
}

// ToggleColumn shows or hides col. The last visible column cannot be hidden.
func (g *Grid) ToggleColumn(col Column) {
	if col < 0 || col >= columnCount {
		return
	}
	if !g.hidden[col] && len(g.VisibleColumns()) == 1 {
		return
	}
	g.hidden[col] = !g.hidden[col]
}

// VisibleColumns lists the shown columns in order.
func (g *Grid) VisibleColumns() []Column {
	var out []Column
	for _, c := range Columns() {
		if !g.hidden[c] {
			out = append(out, c)
		}
	}
	return out
}

// SelectCell toggles the selection of ref; selecting the selected cell
// clears it. It reports whether a cell is selected afterwards.
func (g *Grid) SelectCell(ref CellRef) bool {
	if g.selected != nil && *g.selected == ref {
		g.selected = nil
		return false
	}
	if _, ok := g.row(ref.RowID); !ok {
		return g.selected != nil
	}
	g.selected = &ref
	return true
}

// SelectedCell returns the selected cell reference.
func (g *Grid) SelectedCell() (CellRef, bool) {
	if g.selected == nil {
		return CellRef{}, false
	}
	return *g.selected, true
}

// ClearSelection deselects any cell.
func (g *Grid) ClearSelection() { g.selected = nil }

// SelectedValue is the classified value of the selected cell, or a KindNone
// value when nothing is selected.
func (g *Grid) SelectedValue() CellValue {
	if g.selected == nil {
		return CellValue{}
	}
	r, ok := g.row(g.selected.RowID)
	if !ok {
		return CellValue{}
	}
	return r.Cells[g.selected.Column].Value
}

func (g *Grid) row(id string) (Row, bool) {
	for _, r := range g.rows {
		if r.ID == id {
			return r, true
		}
	}
	return Row{}, false
}

// FormatEmbedding renders each component with two decimals, comma-joined.
func FormatEmbedding(vec []float64) string {
	parts := make([]string, len(vec))
	for i, f := range vec {
		parts[i] = fmt.Sprintf("%.2f", f)
	}
	return strings.Join(parts, ", ")
}

// FormatMetadata renders metadata as compact JSON with sorted keys.
func FormatMetadata(m map[string]any) string {
	if m == nil {
		return ""
	}
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Sprintf("%v", m)
	}
	return string(b)
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
// Newlines are flattened to spaces.
func Truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
