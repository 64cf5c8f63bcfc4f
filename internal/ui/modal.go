package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/chromaview/internal/chroma"
	"github.com/five82/chromaview/internal/explorer"
	"github.com/five82/chromaview/internal/prefs"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

const modalWidth = 60

// placeModal centers a bordered dialog on the screen.
func placeModal(theme Theme, width, height int, border, title, body, hint string) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", modalWidth-6)))
	b.WriteString("\n\n")
	b.WriteString(body)
	if hint != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.FaintText.Render(hint))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(1, 2).
		Width(modalWidth).
		MaxHeight(maxInt(height, 3))

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

// confirmModal asks before a destructive action.
type confirmModal struct {
	title     string
	body      []string
	action    string
	onConfirm tea.Cmd
}

func newConfirmModal(title string, body []string, action string, onConfirm tea.Cmd) *confirmModal {
	return &confirmModal{title: title, body: body, action: action, onConfirm: onConfirm}
}

func (c *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(km, keys.Confirm), km.String() == "y":
		return c, c.onConfirm, true
	case key.Matches(km, keys.Escape), km.String() == "n", km.String() == "q":
		return c, nil, true
	}
	return c, nil, false
}

func (c *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	lines := make([]string, 0, len(c.body))
	for i, l := range c.body {
		if i == 0 {
			lines = append(lines, styles.Text.Render(l))
			continue
		}
		lines = append(lines, styles.DangerText.Render("  • "+l))
	}
	hint := "enter/y " + strings.ToLower(c.action) + " · esc/n cancel"
	return placeModal(theme, width, height, theme.Danger, c.title, strings.Join(lines, "\n"), hint)
}

// errorModal reports a failed action and can retry it.
type errorModal struct {
	title string
	err   string
	retry tea.Cmd
}

func newErrorModal(title, err string, retry tea.Cmd) *errorModal {
	return &errorModal{title: title, err: err, retry: retry}
}

func (e *errorModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return e, nil, false
	}
	switch {
	case e.retry != nil && key.Matches(km, keys.Retry):
		return e, e.retry, true
	case key.Matches(km, keys.Escape), key.Matches(km, keys.Confirm):
		return e, nil, true
	}
	return e, nil, false
}

func (e *errorModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	hint := "esc close"
	if e.retry != nil {
		hint = "r retry · " + hint
	}
	return placeModal(theme, width, height, theme.Danger, e.title, styles.DangerText.Render(e.err), hint)
}

// infoModal shows a collection's id, metadata and configuration.
type infoModal struct {
	name    string
	loading bool
	info    chroma.Collection
	err     string
}

func newInfoModal(name string) *infoModal {
	return &infoModal{name: name, loading: true}
}

func (i *infoModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case infoMsg:
		if msg.name != i.name {
			return i, nil, false
		}
		i.loading = false
		if !msg.res.OK() {
			i.err = msg.res.Err
			return i, nil, false
		}
		i.info = msg.res.Value
	case tea.KeyMsg:
		if key.Matches(msg, keys.Escape) || key.Matches(msg, keys.Confirm) || key.Matches(msg, keys.Info) {
			return i, nil, true
		}
	}
	return i, nil, false
}

func (i *infoModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var body string
	switch {
	case i.loading:
		body = styles.WarningText.Render("Loading...")
	case i.err != "":
		body = styles.DangerText.Render(i.err)
	default:
		body = renderCollectionInfo(i.info, styles)
	}
	return placeModal(theme, width, height, theme.Accent, "Collection · "+i.name, body, "esc close")
}

func renderCollectionInfo(c chroma.Collection, styles Styles) string {
	label := styles.MutedText.Width(11)
	var b strings.Builder
	row := func(k, v string) {
		b.WriteString(label.Render(k))
		b.WriteString(styles.Text.Render(v))
		b.WriteString("\n")
	}
	row("ID", c.ID)
	row("Name", c.Name)
	if c.Tenant != "" {
		row("Tenant", c.Tenant)
	}
	if c.Database != "" {
		row("Database", c.Database)
	}
	if c.Dimension != nil {
		row("Dimension", pluralize(*c.Dimension, "dim"))
	}

	b.WriteString("\n")
	b.WriteString(styles.AccentText.Bold(true).Render("Metadata"))
	b.WriteString("\n")
	b.WriteString(renderMap(c.Metadata, styles))
	b.WriteString("\n")
	b.WriteString(styles.AccentText.Bold(true).Render("Configuration"))
	b.WriteString("\n")
	b.WriteString(renderMap(c.Configuration, styles))
	return strings.TrimRight(b.String(), "\n")
}

// renderMap prints a map as indented JSON, or a muted dash when empty.
func renderMap(m map[string]any, styles Styles) string {
	if len(m) == 0 {
		return styles.FaintText.Render("-")
	}
	return styles.Text.Render(explorer.Classify(m).PrettyJSON())
}

// guideModal is the one-time welcome popup for an endpoint. Closing it
// records the dismissal.
type guideModal struct {
	endpoint string
	prefs    *prefs.Store
}

func newGuideModal(endpoint string, p *prefs.Store) *guideModal {
	return &guideModal{endpoint: endpoint, prefs: p}
}

func (g *guideModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil, false
	}
	if key.Matches(km, keys.Escape) || key.Matches(km, keys.Confirm) {
		return g, g.dismiss(), true
	}
	return g, nil, false
}

func (g *guideModal) dismiss() tea.Cmd {
	if g.prefs == nil {
		return nil
	}
	if err := g.prefs.DismissGuide(g.endpoint, guideWelcome); err != nil {
		return flashCmd("Could not save preferences: "+err.Error(), true)
	}
	return nil
}

func (g *guideModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Warning)).Width(8)
	steps := []struct{ key, desc string }{
		{"2", "Browse collections"},
		{"enter", "Open a collection, then select a cell"},
		{"n", "Create a collection"},
		{"f", "Pin a collection to the top"},
		{"L", "Show the log panel"},
		{"?", "All shortcuts"},
	}
	var b strings.Builder
	b.WriteString(styles.Text.Render("Connected to " + truncateMiddle(g.endpoint, 40)))
	b.WriteString("\n\n")
	for _, s := range steps {
		b.WriteString(keyStyle.Render(s.key))
		b.WriteString(styles.Text.Render(s.desc))
		b.WriteString("\n")
	}
	body := strings.TrimRight(b.String(), "\n")
	return placeModal(theme, width, height, theme.Accent, "Welcome to "+appName, body, "enter close · shown once per server")
}
