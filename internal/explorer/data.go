package explorer

import (
	"fmt"

	"github.com/five82/chromaview/internal/bridge"
	"github.com/five82/chromaview/internal/chroma"
)

// PageSizes are the selectable page sizes.
var PageSizes = []int{10, 25, 50, 100}

// DefaultPageSize is used when an unsupported size is requested.
const DefaultPageSize = 10

// FetchKind identifies one of the three independent data fetches.
type FetchKind int

const (
	FetchDetail FetchKind = iota
	FetchRowCount
	FetchRecords
	fetchKinds
)

func (k FetchKind) String() string {
	switch k {
	case FetchDetail:
		return "detail"
	case FetchRowCount:
		return "row count"
	case FetchRecords:
		return "records"
	default:
		return fmt.Sprintf("FetchKind(%d)", int(k))
	}
}

// Fetch is a request the caller must run and report back. Token ties the
// eventual result to this request.
type Fetch struct {
	Kind       FetchKind
	Token      uint64
	Collection string
	PageIndex  int
	PageSize   int
}

// Command is the bridge command serving the fetch.
func (f Fetch) Command() bridge.Command {
	switch f.Kind {
	case FetchDetail:
		return bridge.FetchCollectionData
	case FetchRowCount:
		return bridge.FetchRowCount
	default:
		return bridge.FetchEmbeddings
	}
}

// Args are the bridge arguments. For records the offset is the page index.
func (f Fetch) Args() bridge.Args {
	args := bridge.Args{"collectionName": f.Collection}
	if f.Kind == FetchRecords {
		args["limit"] = f.PageSize
		args["offset"] = f.PageIndex
	}
	return args
}

// View is the resolved display state of the data panel.
type View int

const (
	ViewNoSelection View = iota
	ViewLoading
	ViewError
	ViewEmpty
	ViewReady
)

func (v View) String() string {
	switch v {
	case ViewNoSelection:
		return "no selection"
	case ViewLoading:
		return "loading"
	case ViewError:
		return "error"
	case ViewEmpty:
		return "empty"
	case ViewReady:
		return "ready"
	default:
		return fmt.Sprintf("View(%d)", int(v))
	}
}

// DataController keeps the selected collection's detail, row count and
// current page consistent with (collection, page index, page size).
//
// Every issued Fetch carries a token. A result is committed only when its
// token is the latest for its kind and it names the active collection, so
// responses that arrive after the selection moved on are dropped.
type DataController struct {
	collection string
	pageIndex  int
	pageSize   int

	tokens  [fetchKinds]uint64
	pending [fetchKinds]bool
	errs    [fetchKinds]string

	detail        *chroma.Collection
	rowCount      int
	rowCountKnown bool
	records       []chroma.Record
}

// NewDataController returns a controller with no selection.
func NewDataController(pageSize int) *DataController {
	return &DataController{pageSize: normalizePageSize(pageSize)}
}

// Collection is the active collection name, empty when none is selected.
func (d *DataController) Collection() string { return d.collection }

// PageIndex is the zero-based current page.
func (d *DataController) PageIndex() int { return d.pageIndex }

// PageSize is the current page size.
func (d *DataController) PageSize() int { return d.pageSize }

// Select makes name the active collection. All state from the previous
// selection is discarded and the three fetches are issued.
func (d *DataController) Select(name string) []Fetch {
	d.collection = name
	d.pageIndex = 0
	d.detail = nil
	d.rowCount = 0
	d.rowCountKnown = false
	d.records = nil
	d.errs = [fetchKinds]string{}
	if name == "" {
		for k := range d.pending {
			d.tokens[k]++
			d.pending[k] = false
		}
		return nil
	}
	return []Fetch{d.issue(FetchDetail), d.issue(FetchRowCount), d.issue(FetchRecords)}
}

// Clear drops the selection.
func (d *DataController) Clear() {
	d.Select("")
}

// Refresh re-issues all three fetches for the active collection and page.
func (d *DataController) Refresh() []Fetch {
	if d.collection == "" {
		return nil
	}
	return []Fetch{d.issue(FetchDetail), d.issue(FetchRowCount), d.issue(FetchRecords)}
}

// SetPageSize changes the page size. The page index is re-clamped against
// the known row count rather than reset.
func (d *DataController) SetPageSize(size int) []Fetch {
	size = normalizePageSize(size)
	if size == d.pageSize {
		return nil
	}
	d.pageSize = size
	d.clamp()
	if d.collection == "" {
		return nil
	}
	return []Fetch{d.issue(FetchRowCount), d.issue(FetchRecords)}
}

// CyclePageSize moves to the next size in PageSizes.
func (d *DataController) CyclePageSize() []Fetch {
	next := PageSizes[0]
	for i, s := range PageSizes {
		if s == d.pageSize {
			next = PageSizes[(i+1)%len(PageSizes)]
			break
		}
	}
	return d.SetPageSize(next)
}

// CanPrev reports whether the previous page exists.
func (d *DataController) CanPrev() bool { return d.pageIndex > 0 }

// CanNext reports whether the next page exists.
func (d *DataController) CanNext() bool {
	return d.pageIndex+1 < d.PageCount()
}

// Next advances one page.
func (d *DataController) Next() (Fetch, bool) {
	if d.collection == "" || !d.CanNext() {
		return Fetch{}, false
	}
	d.pageIndex++
	return d.issue(FetchRecords), true
}

// Prev goes back one page.
func (d *DataController) Prev() (Fetch, bool) {
	if d.collection == "" || !d.CanPrev() {
		return Fetch{}, false
	}
	d.pageIndex--
	return d.issue(FetchRecords), true
}

// PageCount is ceil(rowCount / pageSize), or 1 when the count is unknown or
// zero.
func (d *DataController) PageCount() int {
	if !d.rowCountKnown || d.rowCount <= 0 {
		return 1
	}
	return (d.rowCount + d.pageSize - 1) / d.pageSize
}

// PageLabel renders the one-based "Page X / Y" indicator.
func (d *DataController) PageLabel() string {
	return fmt.Sprintf("Page %d / %d", d.pageIndex+1, d.PageCount())
}

// ApplyDetail commits a fetch_collection_data result.
func (d *DataController) ApplyDetail(f Fetch, res bridge.Result[chroma.Collection]) bool {
	if !d.accept(f, FetchDetail) {
		return false
	}
	if !res.OK() {
		d.errs[FetchDetail] = res.Err
		return true
	}
	detail := res.Value
	d.detail = &detail
	d.errs[FetchDetail] = ""
	return true
}

// ApplyRowCount commits a fetch_row_count result. When the new count moves
// the page index back inside its bounds, a records fetch for the clamped page
// is returned.
func (d *DataController) ApplyRowCount(f Fetch, res bridge.Result[int]) (bool, []Fetch) {
	if !d.accept(f, FetchRowCount) {
		return false, nil
	}
	if !res.OK() {
		d.errs[FetchRowCount] = res.Err
		return true, nil
	}
	d.rowCount = res.Value
	d.rowCountKnown = true
	d.errs[FetchRowCount] = ""
	if d.clamp() {
		return true, []Fetch{d.issue(FetchRecords)}
	}
	return true, nil
}

// ApplyRecords commits a fetch_embeddings result. On failure the previous
// records are kept but hidden behind the error.
func (d *DataController) ApplyRecords(f Fetch, res bridge.Result[[]chroma.Record]) bool {
	if !d.accept(f, FetchRecords) {
		return false
	}
	if !res.OK() {
		d.errs[FetchRecords] = res.Err
		return true
	}
	d.records = res.Value
	d.errs[FetchRecords] = ""
	return true
}

// View resolves the panel state. The first match wins: no selection, row
// count loading, any error, empty page, ready.
func (d *DataController) View() View {
	switch {
	case d.collection == "":
		return ViewNoSelection
	case d.pending[FetchRowCount]:
		return ViewLoading
	case d.Err() != "":
		return ViewError
	case len(d.records) == 0:
		return ViewEmpty
	default:
		return ViewReady
	}
}

// Err returns the first fetch error in detail, row count, records order.
func (d *DataController) Err() string {
	for _, e := range d.errs {
		if e != "" {
			return e
		}
	}
	return ""
}

// TableLoading reports whether a records fetch is in flight.
func (d *DataController) TableLoading() bool { return d.pending[FetchRecords] }

// Detail returns the fetched collection detail.
func (d *DataController) Detail() (chroma.Collection, bool) {
	if d.detail == nil {
		return chroma.Collection{}, false
	}
	return *d.detail, true
}

// RowCount returns the backend row count once known.
func (d *DataController) RowCount() (int, bool) { return d.rowCount, d.rowCountKnown }

// Records is the current page.
func (d *DataController) Records() []chroma.Record { return d.records }

// Dimensions is the embedding length of the first record, or 0.
func (d *DataController) Dimensions() int {
	if len(d.records) == 0 {
		return 0
	}
	return len(d.records[0].Embedding)
}

func (d *DataController) issue(kind FetchKind) Fetch {
	d.tokens[kind]++
	d.pending[kind] = true
	return Fetch{
		Kind:       kind,
		Token:      d.tokens[kind],
		Collection: d.collection,
		PageIndex:  d.pageIndex,
		PageSize:   d.pageSize,
	}
}

func (d *DataController) accept(f Fetch, kind FetchKind) bool {
	if f.Kind != kind || f.Token != d.tokens[kind] || f.Collection != d.collection || d.collection == "" {
		return false
	}
	d.pending[kind] = false
	return true
}

// clamp pulls the page index back inside [0, PageCount) and reports whether
// it moved.
func (d *DataController) clamp() bool {
	last := d.PageCount() - 1
	if d.pageIndex > last {
		d.pageIndex = last
		return true
	}
	return false
}

func normalizePageSize(size int) int {
	for _, s := range PageSizes {
		if s == size {
			return size
		}
	}
	return DefaultPageSize
}
