package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding
	ToggleLogs key.Binding
	GrowLogs   key.Binding
	ShrinkLogs key.Binding
	LogLevel   key.Binding

	// Menus
	MenuHome        key.Binding
	MenuCollections key.Binding
	MenuSettings    key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Collection list
	Open     key.Binding
	Select   key.Binding
	Favorite key.Binding
	Filter   key.Binding
	Create   key.Binding
	Delete   key.Binding
	Info     key.Binding
	Refresh  key.Binding

	// Grid
	Sort         key.Binding
	ToggleColumn key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	PageSize     key.Binding

	// Detail
	Copy key.Binding

	// Home
	TestConnection key.Binding
	Reset          key.Binding
	Disconnect     key.Binding

	// Dialogs
	Confirm key.Binding
	Retry   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next pane"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous pane"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel / clear"),
		),
		ToggleLogs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Toggle log panel"),
		),
		GrowLogs: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "Grow log panel"),
		),
		ShrinkLogs: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Shrink log panel"),
		),
		LogLevel: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "Cycle log level"),
		),

		// Menus
		MenuHome: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Home"),
		),
		MenuCollections: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Collections"),
		),
		MenuSettings: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Settings"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "Previous column"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "Next column"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("ctrl+u", "Scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("ctrl+d", "Scroll down"),
		),

		// Collection list
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open / select cell"),
		),
		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Mark for bulk delete"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Toggle favorite"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Filter"),
		),
		Create: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New collection"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Delete"),
		),
		Info: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Collection info"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),

		// Grid
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Sort column"),
		),
		ToggleColumn: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Hide/show column"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous page"),
		),
		PageSize: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "Cycle page size"),
		),

		// Detail
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Copy value"),
		),

		// Home
		TestConnection: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Test connection"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Reset database"),
		),
		Disconnect: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Disconnect"),
		),

		// Dialogs
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Retry"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.MenuHome, k.MenuCollections, k.MenuSettings, k.Tab, k.ShiftTab, k.Escape},
		{k.Up, k.Down, k.Left, k.Right, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.Open, k.Select, k.Favorite, k.Filter, k.Create, k.Delete, k.Info, k.Refresh},
		{k.Sort, k.ToggleColumn, k.PrevPage, k.NextPage, k.PageSize, k.Copy},
		{k.TestConnection, k.Reset, k.Disconnect},
		{k.ToggleLogs, k.GrowLogs, k.ShrinkLogs, k.LogLevel, k.CycleTheme, k.Help, k.Quit},
	}
}
