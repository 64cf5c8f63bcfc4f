// Package ui provides the terminal user interface for chromaview.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea model. Every backend call goes through the
// bridge as a tea.Cmd and comes back as a message, so Update is the only
// place state changes. Domain rules live in the explorer package; this
// package owns layout, keys and rendering.
//
// # Screens
//
//   - Connect: URL, tenant, database and optional token. Enter runs the
//     connect sequence; the bridge's create_window step switches to Main.
//   - Main: a header with the health badge and menu tabs, a command bar,
//     the active menu and an optional log panel.
//
// # Menus
//
//   - Home: server facts, connection test, database reset and disconnect.
//   - Collections: the collection list, the paged data grid and the detail
//     inspector. Tab cycles focus between the three panes.
//   - Settings: theme picker and the active configuration.
//
// # Package Structure
//
//   - app.go: Model, Update routing, screen and menu switching, Run
//   - commands.go: messages and the tea.Cmds that call the bridge
//   - connect.go: connect screen form
//   - collections.go, grid.go, detail.go: the Collections panes
//   - create.go, modal.go: dialogs (create, confirm, error, info, welcome)
//   - home.go, settings.go: the other menus
//   - header.go, logs.go, log_format.go: status bar and log panel
//   - theme.go, theme_file.go: built-in palettes and YAML overrides
//
// # Stale Responses
//
// Data fetches carry the token the explorer.DataController issued. The
// controller drops results whose token is no longer current, so switching
// collections or pages quickly never shows another request's rows.
//
// # Key Bindings
//
//   - 1/2/3: Home, Collections, Settings
//   - Tab / Shift+Tab: Cycle panes
//   - enter: Open collection, select cell, confirm
//   - space: Mark a collection for bulk delete
//   - f: Toggle favorite
//   - n / d / i: New, delete, info
//   - s / v / [ ] / z: Sort, hide column, page, page size
//   - c: Copy the selected value
//   - L, +, -, F: Log panel, resize, minimum level
//   - T: Cycle theme
//   - ?: Help
//   - e or Ctrl+C: Exit
package ui
