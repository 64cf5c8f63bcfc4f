package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/chromaview/internal/bridge"
	"github.com/five82/chromaview/internal/explorer"
)

// createModal is the create-collection dialog: a name with live rule
// checks and optional JSON metadata.
type createModal struct {
	ctx    context.Context
	bridge *bridge.Bridge

	flow     explorer.CreateFlow
	name     textinput.Model
	metadata textarea.Model
	onMeta   bool
}

func newCreateModal(ctx context.Context, b *bridge.Bridge) *createModal {
	name := textinput.New()
	name.Placeholder = "my-collection"
	name.Prompt = ""
	name.CharLimit = 63
	name.Width = modalWidth - 8

	meta := textarea.New()
	meta.Placeholder = `{"source": "docs"}`
	meta.ShowLineNumbers = false
	meta.SetWidth(modalWidth - 6)
	meta.SetHeight(4)

	c := &createModal{ctx: ctx, bridge: b, name: name, metadata: meta}
	c.name.Focus()
	return c
}

func (c *createModal) focusCmd() tea.Cmd {
	return textinput.Blink
}

// close resets the flow and refreshes the list so a created collection
// shows up.
func (c *createModal) close() (Modal, tea.Cmd, bool) {
	c.flow.Reset()
	return c, fetchCollectionsCmd(c.ctx, c.bridge), true
}

func (c *createModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case createDoneMsg:
		c.flow.Complete(msg.res)
		return c, nil, false
	case tea.KeyMsg:
		return c.handleKey(msg, keys)
	}

	// Cursor blink and other input messages.
	var cmd tea.Cmd
	if c.onMeta {
		c.metadata, cmd = c.metadata.Update(msg)
	} else {
		c.name, cmd = c.name.Update(msg)
	}
	return c, cmd, false
}

func (c *createModal) handleKey(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool) {
	if key.Matches(msg, keys.Escape) {
		return c.close()
	}

	switch c.flow.Status() {
	case explorer.CreateLoading:
		return c, nil, false
	case explorer.CreateFinished:
		if key.Matches(msg, keys.Confirm) {
			return c.close()
		}
		return c, nil, false
	case explorer.CreateError:
		if key.Matches(msg, keys.Retry) {
			c.flow.Retry()
		}
		return c, nil, false
	}

	switch {
	case key.Matches(msg, keys.Tab), key.Matches(msg, keys.ShiftTab):
		c.onMeta = !c.onMeta
		if c.onMeta {
			c.name.Blur()
			return c, c.metadata.Focus(), false
		}
		c.metadata.Blur()
		return c, c.name.Focus(), false
	case msg.String() == "ctrl+s", !c.onMeta && key.Matches(msg, keys.Confirm):
		return c.submit()
	}

	var cmd tea.Cmd
	if c.onMeta {
		c.metadata, cmd = c.metadata.Update(msg)
	} else {
		c.name, cmd = c.name.Update(msg)
		c.flow.SetName(c.name.Value())
	}
	return c, cmd, false
}

func (c *createModal) submit() (Modal, tea.Cmd, bool) {
	if !c.flow.CanSubmit() {
		return c, nil, false
	}
	req, err := c.flow.Submit(c.metadata.Value())
	if err != nil {
		// The flow keeps the metadata error for inline display.
		return c, nil, false
	}
	return c, createCollectionCmd(c.ctx, c.bridge, req), false
}

func (c *createModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder

	label := func(text string, active bool) string {
		if active {
			return styles.AccentText.Bold(true).Render(text)
		}
		return styles.MutedText.Render(text)
	}

	b.WriteString(label("Name", !c.onMeta))
	b.WriteString("\n")
	b.WriteString(c.name.View())
	b.WriteString("\n\n")

	if v, ok := c.flow.Validation(); ok {
		for _, r := range v.Rules() {
			if r.OK {
				b.WriteString(styles.SuccessText.Render("✓ "))
				b.WriteString(styles.MutedText.Render(r.Label))
			} else {
				b.WriteString(styles.DangerText.Render("✗ "))
				b.WriteString(styles.Text.Render(r.Label))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(label("Metadata (JSON object, optional)", c.onMeta))
	b.WriteString("\n")
	b.WriteString(c.metadata.View())
	if e := c.flow.MetadataError(); e != "" {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(e))
	}
	b.WriteString("\n\n")

	var hint string
	switch c.flow.Status() {
	case explorer.CreateLoading:
		b.WriteString(styles.WarningText.Render("Creating..."))
	case explorer.CreateFinished:
		b.WriteString(styles.SuccessText.Render("Collection created"))
		hint = "enter close"
	case explorer.CreateError:
		b.WriteString(styles.DangerText.Render(c.flow.Message()))
		hint = "r try again · esc close"
	default:
		if c.flow.CanSubmit() {
			b.WriteString(styles.SuccessText.Render("Ready to create"))
		} else {
			b.WriteString(styles.FaintText.Render("Enter a valid name to create"))
		}
		hint = "enter/ctrl+s create · tab switch field · esc cancel"
	}

	return placeModal(theme, width, height, theme.Accent, "New collection", b.String(), hint)
}
