package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/chromaview/internal/explorer"
)

// Theme is a resolved color set. Theme files override individual fields.
type Theme struct {
	Name string

	Background string
	Surface    string
	SurfaceAlt string
	FocusBg    string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderMuted string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// StatusColors maps badge keys to colors: connection health
	// (online, degraded, offline, connecting), cell kinds (text, vector,
	// json, none) and favorite.
	StatusColors map[string]string
}

// palette is the compact form the built-in themes are written in.
type palette struct {
	bg     [4]string // background, surface, surface alt, focus
	sel    [2]string // selection background, selection text
	border [3]string // default, muted, focus
	text   [3]string // text, muted, faint

	accent, success, warning, danger, info string

	// vector and json are the detail badge colors for those cell kinds.
	vector, json string
}

func (p palette) theme(name string) Theme {
	return Theme{
		Name:          name,
		Background:    p.bg[0],
		Surface:       p.bg[1],
		SurfaceAlt:    p.bg[2],
		FocusBg:       p.bg[3],
		SelectionBg:   p.sel[0],
		SelectionText: p.sel[1],
		Border:        p.border[0],
		BorderMuted:   p.border[1],
		BorderFocus:   p.border[2],
		Text:          p.text[0],
		Muted:         p.text[1],
		Faint:         p.text[2],
		Accent:        p.accent,
		Success:       p.success,
		Warning:       p.warning,
		Danger:        p.danger,
		Info:          p.info,
		StatusColors: map[string]string{
			"online":     p.success,
			"degraded":   p.warning,
			"offline":    p.danger,
			"connecting": p.text[2],
			"text":       p.accent,
			"vector":     p.vector,
			"json":       p.json,
			"none":       p.text[2],
			"favorite":   p.warning,
		},
	}
}

// builtinThemes lists the shipped themes in cycle order. Nightfox is the
// default.
var builtinThemes = []struct {
	name string
	p    palette
}{
	{"Nightfox", palette{ // github.com/EdenEast/nightfox.nvim
		bg:      [4]string{"#131a24", "#192330", "#212e3f", "#29394f"},
		sel:     [2]string{"#2b3b51", "#cdcecf"},
		border:  [3]string{"#39506d", "#212e3f", "#719cd6"},
		text:    [3]string{"#cdcecf", "#738091", "#71839b"},
		accent:  "#719cd6",
		success: "#81b29a",
		warning: "#dbc074",
		danger:  "#c94f6d",
		info:    "#63cdcf",
		vector:  "#9d79d6",
		json:    "#f4a261",
	}},
	{"Kanagawa", palette{ // github.com/rebelot/kanagawa.nvim
		bg:      [4]string{"#16161D", "#1F1F28", "#2A2A37", "#2A2A37"},
		sel:     [2]string{"#2D4F67", "#DCD7BA"},
		border:  [3]string{"#54546D", "#2A2A37", "#7E9CD8"},
		text:    [3]string{"#DCD7BA", "#C8C093", "#727169"},
		accent:  "#7E9CD8",
		success: "#98BB6C",
		warning: "#E6C384",
		danger:  "#E46876",
		info:    "#7FB4CA",
		vector:  "#957FB8",
		json:    "#FFA066",
	}},
	{"Slate", palette{ // tailwind slate and sky
		bg:      [4]string{"#020617", "#0f172a", "#1e293b", "#283548"},
		sel:     [2]string{"#0284c7", "#f8fafc"},
		border:  [3]string{"#334155", "#1e293b", "#38bdf8"},
		text:    [3]string{"#f1f5f9", "#94a3b8", "#64748b"},
		accent:  "#38bdf8",
		success: "#22c55e",
		warning: "#f59e0b",
		danger:  "#ef4444",
		info:    "#06b6d4",
		vector:  "#06b6d4",
		json:    "#f59e0b",
	}},
}

// GetTheme returns a built-in theme by name, falling back to Nightfox.
func GetTheme(name string) Theme {
	for _, b := range builtinThemes {
		if b.name == name {
			return b.p.theme(b.name)
		}
	}
	return builtinThemes[0].p.theme(builtinThemes[0].name)
}

func isBuiltinTheme(name string) bool {
	for _, b := range builtinThemes {
		if b.name == name {
			return true
		}
	}
	return false
}

// NextTheme returns the built-in theme after current, wrapping around.
func NextTheme(current string) string {
	names := ThemeNames()
	for i, name := range names {
		if name == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

// ThemeNames returns the built-in theme names in cycle order.
func ThemeNames() []string {
	names := make([]string, len(builtinThemes))
	for i, b := range builtinThemes {
		names[i] = b.name
	}
	return names
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Background lipgloss.Style
	Surface    lipgloss.Style
	SurfaceAlt lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style
	Favorite lipgloss.Style

	badges     map[string]string
	badgeText  string
	badgeEmpty string
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func (t Theme) Styles() Styles {
	on := func(bg, text string) lipgloss.Style {
		return fg(text).Background(lipgloss.Color(bg))
	}
	return Styles{
		Background: lipgloss.NewStyle().Background(lipgloss.Color(t.Background)),
		Surface:    on(t.Surface, t.Text),
		SurfaceAlt: on(t.SurfaceAlt, t.Text),

		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header:   on(t.Surface, t.Text).Padding(0, 1),
		Footer:   on(t.Surface, t.Muted).Padding(0, 1),
		Logo:     fg(t.Warning).Bold(true),
		Selected: on(t.SelectionBg, t.SelectionText),
		Favorite: fg(t.StatusColors["favorite"]),

		badges:     t.StatusColors,
		badgeText:  t.Background,
		badgeEmpty: t.Muted,
	}
}

// StatusStyle returns the badge style for a status key, or a muted badge for
// unknown keys.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	color, ok := s.badges[status]
	if !ok || color == "" {
		color = s.badgeEmpty
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.badgeText)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// KindBadge renders the cell kind as a badge.
func (s Styles) KindBadge(kind explorer.CellKind) string {
	return s.StatusStyle(kind.String()).Render(kind.String())
}

// WithBackground sets bgColor on every style so text never renders on the
// terminal's default background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Background, &out.Surface, &out.SurfaceAlt,
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText, &out.InfoText,
		&out.Header, &out.Footer, &out.Logo, &out.Selected, &out.Favorite,
	} {
		*st = st.Background(bg)
	}
	return out
}
