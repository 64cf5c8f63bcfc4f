package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/chromaview/internal/bridge"
	"github.com/five82/chromaview/internal/chroma"
)

func byKind(fs []Fetch) map[FetchKind]Fetch {
	out := make(map[FetchKind]Fetch, len(fs))
	for _, f := range fs {
		out[f.Kind] = f
	}
	return out
}

func records(n int) []chroma.Record {
	out := make([]chroma.Record, n)
	for i := range out {
		out[i] = chroma.Record{ID: string(rune('a' + i)), Embedding: []float64{1, 2, 3}}
	}
	return out
}

func TestDataController_NoSelection(t *testing.T) {
	d := NewDataController(10)
	assert.Equal(t, ViewNoSelection, d.View())
	assert.Nil(t, d.Refresh())
}

func TestDataController_SelectIssuesThreeFetches(t *testing.T) {
	d := NewDataController(25)
	fs := byKind(d.Select("docs"))
	require.Len(t, fs, 3)

	rec := fs[FetchRecords]
	assert.Equal(t, bridge.FetchEmbeddings, rec.Command())
	assert.Equal(t, bridge.Args{"collectionName": "docs", "limit": 25, "offset": 0}, rec.Args())
	assert.Equal(t, bridge.FetchRowCount, fs[FetchRowCount].Command())
	assert.Equal(t, bridge.Args{"collectionName": "docs"}, fs[FetchDetail].Args())
	assert.Equal(t, ViewLoading, d.View())
}

func TestDataController_PaginationBoundary(t *testing.T) {
	d := NewDataController(10)
	fs := byKind(d.Select("docs"))
	_, _ = d.ApplyRowCount(fs[FetchRowCount], bridge.Ok(20))
	d.ApplyRecords(fs[FetchRecords], bridge.Ok(records(10)))

	assert.Equal(t, "Page 1 / 2", d.PageLabel())
	assert.False(t, d.CanPrev())
	assert.True(t, d.CanNext())

	next, ok := d.Next()
	require.True(t, ok)
	assert.Equal(t, 1, next.Args()["offset"], "offset carries the page index")
	assert.Equal(t, "Page 2 / 2", d.PageLabel())
	assert.False(t, d.CanNext())
	assert.True(t, d.CanPrev())
	_, ok = d.Next()
	assert.False(t, ok)

	_, ok = d.Prev()
	require.True(t, ok)
	assert.Equal(t, "Page 1 / 2", d.PageLabel())
	assert.False(t, d.CanPrev())
}

func TestDataController_EmptyCollectionView(t *testing.T) {
	d := NewDataController(10)
	fs := byKind(d.Select("empty"))

	d.ApplyRecords(fs[FetchRecords], bridge.Ok([]chroma.Record{}))
	assert.Equal(t, ViewLoading, d.View(), "row count still pending")

	_, _ = d.ApplyRowCount(fs[FetchRowCount], bridge.Ok(0))
	d.ApplyDetail(fs[FetchDetail], bridge.Ok(chroma.Collection{ID: "x", Name: "empty"}))
	assert.Equal(t, ViewEmpty, d.View())
	assert.Equal(t, "Page 1 / 1", d.PageLabel())
}

func TestDataController_ErrorPrecedence(t *testing.T) {
	d := NewDataController(10)
	fs := byKind(d.Select("docs"))
	_, _ = d.ApplyRowCount(fs[FetchRowCount], bridge.Ok(5))
	d.ApplyRecords(fs[FetchRecords], bridge.Ok(records(5)))
	assert.Equal(t, ViewReady, d.View())

	d.ApplyDetail(fs[FetchDetail], bridge.Fail[chroma.Collection]("Collection docs does not exist."))
	assert.Equal(t, ViewError, d.View())
	assert.Equal(t, "Collection docs does not exist.", d.Err())
	assert.Len(t, d.Records(), 5, "records are retained but hidden")
}

func TestDataController_RowCountFailureStillClearsLoading(t *testing.T) {
	d := NewDataController(10)
	fs := byKind(d.Select("docs"))
	_, _ = d.ApplyRowCount(fs[FetchRowCount], bridge.Fail[int]("boom"))
	assert.Equal(t, ViewError, d.View())
	_, known := d.RowCount()
	assert.False(t, known)
}

func TestDataController_StaleResponsesAreDropped(t *testing.T) {
	d := NewDataController(10)
	a := byKind(d.Select("A"))
	b := byKind(d.Select("B"))

	assert.False(t, d.ApplyRecords(a[FetchRecords], bridge.Ok(records(3))))
	applied, _ := d.ApplyRowCount(a[FetchRowCount], bridge.Ok(99))
	assert.False(t, applied)
	assert.False(t, d.ApplyDetail(a[FetchDetail], bridge.Ok(chroma.Collection{ID: "a"})))

	_, _ = d.ApplyRowCount(b[FetchRowCount], bridge.Ok(1))
	assert.True(t, d.ApplyRecords(b[FetchRecords], bridge.Ok(records(1))))
	assert.True(t, d.ApplyDetail(b[FetchDetail], bridge.Ok(chroma.Collection{ID: "b"})))

	n, _ := d.RowCount()
	assert.Equal(t, 1, n)
	detail, _ := d.Detail()
	assert.Equal(t, "b", detail.ID)
	assert.Len(t, d.Records(), 1)
}

func TestDataController_SameCollectionOlderPageIsDropped(t *testing.T) {
	d := NewDataController(10)
	fs := byKind(d.Select("docs"))
	_, _ = d.ApplyRowCount(fs[FetchRowCount], bridge.Ok(30))
	first, _ := d.Next()
	second, _ := d.Next()

	assert.False(t, d.ApplyRecords(first, bridge.Ok(records(2))))
	assert.True(t, d.ApplyRecords(second, bridge.Ok(records(4))))
	assert.Len(t, d.Records(), 4)
}

func TestDataController_PageSizeReclampsInsteadOfResetting(t *testing.T) {
	d := NewDataController(10)
	fs := byKind(d.Select("docs"))
	_, _ = d.ApplyRowCount(fs[FetchRowCount], bridge.Ok(95))
	for range 5 {
		_, ok := d.Next()
		require.True(t, ok)
	}
	require.Equal(t, 5, d.PageIndex())

	more := byKind(d.SetPageSize(25))
	require.Len(t, more, 2)
	assert.Equal(t, 3, d.PageIndex(), "clamped to the last page of 4")
	assert.Equal(t, 25, more[FetchRecords].Args()["limit"])
	assert.Equal(t, 3, more[FetchRecords].Args()["offset"])

	d.SetPageSize(10)
	assert.Equal(t, 3, d.PageIndex(), "growing the page count keeps the index")
}

func TestDataController_ShrinkingRowCountRefetchesClampedPage(t *testing.T) {
	d := NewDataController(10)
	fs := byKind(d.Select("docs"))
	_, _ = d.ApplyRowCount(fs[FetchRowCount], bridge.Ok(50))
	for range 4 {
		d.Next()
	}
	refresh := byKind(d.Refresh())
	applied, follow := d.ApplyRowCount(refresh[FetchRowCount], bridge.Ok(12))
	require.True(t, applied)
	require.Len(t, follow, 1)
	assert.Equal(t, 1, d.PageIndex())
	assert.Equal(t, 1, follow[0].PageIndex)

	assert.False(t, d.ApplyRecords(refresh[FetchRecords], bridge.Ok(records(1))), "superseded by the clamped fetch")
}

func TestDataController_UnsupportedPageSize(t *testing.T) {
	d := NewDataController(33)
	assert.Equal(t, DefaultPageSize, d.PageSize())

	d.Select("docs")
	assert.Len(t, d.CyclePageSize(), 2)
	assert.Equal(t, 25, d.PageSize())
}

func TestDataController_Dimensions(t *testing.T) {
	d := NewDataController(10)
	assert.Equal(t, 0, d.Dimensions())
	fs := byKind(d.Select("docs"))
	d.ApplyRecords(fs[FetchRecords], bridge.Ok(records(2)))
	assert.Equal(t, 3, d.Dimensions())
	assert.False(t, d.TableLoading())
}
