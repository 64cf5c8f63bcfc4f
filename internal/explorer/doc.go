// Package explorer holds the terminal-independent state behind the
// collection browser.
//
// # Overview
//
// Nothing in this package performs I/O. Controllers describe the backend
// work they need as values (Fetch, deletion name lists, create requests) and
// accept the outcomes as bridge.Result values. The UI layer runs the actual
// commands as bubbletea commands and feeds the results back.
//
// # Components
//
//   - CollectionList: the list of collections with favorites-first ordering,
//     a case-sensitive name filter and multi-select.
//   - CreateFlow and ValidateName: the create-collection dialog state.
//   - DataController: the selected collection's detail, row count and current
//     page of records, with per-fetch request tokens so late responses for a
//     previous selection are dropped.
//   - Grid: the four-column table over the current page with client-side
//     sort, filter and column visibility.
//   - CellValue: a cell's value classified once into text, vector or JSON.
package explorer
