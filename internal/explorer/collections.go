package explorer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/five82/chromaview/internal/chroma"
)

// Collection is one entry of the collection list. IsFavorite is derived at
// display time and is never authoritative on a stored entry.
type Collection struct {
	ID         string
	Name       string
	IsFavorite bool
}

// FavoriteLookup answers whether a collection name is pinned.
type FavoriteLookup interface {
	IsFavorite(name string) bool
}

// FavoriteStore is a FavoriteLookup that can also flip a pin.
type FavoriteStore interface {
	FavoriteLookup
	ToggleFavorite(name string) (bool, error)
}

// CollectionList tracks the fetched collections, the name filter and the
// multi-select set.
type CollectionList struct {
	items    []Collection
	filter   string
	selected map[string]struct{}
}

// NewCollectionList returns an empty list.
func NewCollectionList() *CollectionList {
	return &CollectionList{selected: make(map[string]struct{})}
}

// FromChroma converts backend collections into list entries.
func FromChroma(cols []chroma.Collection) []Collection {
	out := make([]Collection, len(cols))
	for i, c := range cols {
		out[i] = Collection{ID: c.ID, Name: c.Name}
	}
	return out
}

// Replace swaps in a freshly fetched list. Selected ids that no longer exist
// are dropped.
func (l *CollectionList) Replace(cols []Collection) {
	l.items = make([]Collection, len(cols))
	for i, c := range cols {
		c.IsFavorite = false
		l.items[i] = c
	}
	for id := range l.selected {
		if _, ok := l.byID(id); !ok {
			delete(l.selected, id)
		}
	}
}

// All returns the list in backend order.
func (l *CollectionList) All() []Collection {
	return slices.Clone(l.items)
}

// Len is the number of fetched collections, ignoring the filter.
func (l *CollectionList) Len() int { return len(l.items) }

// Filter returns the current filter text.
func (l *CollectionList) Filter() string { return l.filter }

// SetFilter sets the case-sensitive name substring filter.
func (l *CollectionList) SetFilter(text string) { l.filter = text }

// Display filters by name and orders favorites first, preserving backend
// order within each group.
func (l *CollectionList) Display(favorites FavoriteLookup) []Collection {
	out := make([]Collection, 0, len(l.items))
	for _, c := range l.items {
		if !strings.Contains(c.Name, l.filter) {
			continue
		}
		c.IsFavorite = favorites != nil && favorites.IsFavorite(c.Name)
		out = append(out, c)
	}
	slices.SortStableFunc(out, func(a, b Collection) int {
		switch {
		case a.IsFavorite == b.IsFavorite:
			return 0
		case a.IsFavorite:
			return -1
		default:
			return 1
		}
	})
	return out
}

// Find returns the collection with the given id.
func (l *CollectionList) Find(id string) (Collection, bool) {
	return l.byID(id)
}

// FindByName returns the collection with the given name.
func (l *CollectionList) FindByName(name string) (Collection, bool) {
	for _, c := range l.items {
		if c.Name == name {
			return c, true
		}
	}
	return Collection{}, false
}

// ToggleSelected flips id's membership in the selection and reports the new
// state.
func (l *CollectionList) ToggleSelected(id string) bool {
	if l.selected == nil {
		l.selected = make(map[string]struct{})
	}
	if _, ok := l.selected[id]; ok {
		delete(l.selected, id)
		return false
	}
	l.selected[id] = struct{}{}
	return true
}

// IsSelected reports whether id is in the selection.
func (l *CollectionList) IsSelected(id string) bool {
	_, ok := l.selected[id]
	return ok
}

// Selected returns the selected ids in backend order. Ids that are selected
// but unknown to the list come last, sorted.
func (l *CollectionList) Selected() []string {
	out := make([]string, 0, len(l.selected))
	seen := make(map[string]struct{}, len(l.selected))
	for _, c := range l.items {
		if _, ok := l.selected[c.ID]; ok {
			out = append(out, c.ID)
			seen[c.ID] = struct{}{}
		}
	}
	var rest []string
	for id := range l.selected {
		if _, ok := seen[id]; !ok {
			rest = append(rest, id)
		}
	}
	slices.Sort(rest)
	return append(out, rest...)
}

// ClearSelection empties the selection.
func (l *CollectionList) ClearSelection() {
	clear(l.selected)
}

// ResolveDeletion returns the collection names to delete: the whole
// selection when it is non-empty, else the single target id. If any id does
// not resolve, nothing must be deleted.
func (l *CollectionList) ResolveDeletion(targetID string) ([]string, error) {
	ids := l.Selected()
	if len(ids) == 0 {
		if targetID == "" {
			return nil, fmt.Errorf("no collection selected")
		}
		ids = []string{targetID}
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		c, ok := l.byID(id)
		if !ok {
			return nil, fmt.Errorf("collection %s not found", id)
		}
		names = append(names, c.Name)
	}
	return names, nil
}

// DeletedMessage is the notification text after a successful delete.
func DeletedMessage(names []string) string {
	if len(names) == 1 {
		return fmt.Sprintf("Collection %s deleted", names[0])
	}
	return fmt.Sprintf("%d collections deleted", len(names))
}

func (l *CollectionList) byID(id string) (Collection, bool) {
	for _, c := range l.items {
		if c.ID == id {
			return c, true
		}
	}
	return Collection{}, false
}
