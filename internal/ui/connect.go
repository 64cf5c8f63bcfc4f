package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/chromaview/internal/bridge"
	"github.com/five82/chromaview/internal/chroma"
)

// Connect form fields.
const (
	fieldURL = iota
	fieldTenant
	fieldDatabase
	fieldToken
	fieldCount
)

var fieldLabels = [fieldCount]string{"URL", "Tenant", "Database", "Token"}

// connectForm is the connect screen: four inputs, an inline error and a
// busy flag while the connect sequence runs.
type connectForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
	busy   bool
	err    string

	// configured carries credentials from the config file. A token typed
	// into the form replaces it.
	configured chroma.Auth
}

func newConnectForm(p bridge.ConnectParams) connectForm {
	f := connectForm{configured: p.Auth}
	placeholders := [fieldCount]string{
		chroma.DefaultURL,
		chroma.DefaultTenant,
		chroma.DefaultDatabase,
		"optional",
	}
	values := [fieldCount]string{p.URL, p.Tenant, p.Database, ""}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 256
		ti.Width = 40
		ti.SetValue(values[i])
		f.inputs[i] = ti
	}
	if p.Auth.Header != "" {
		f.inputs[fieldToken].Placeholder = "from config"
	}
	f.inputs[fieldToken].EchoMode = textinput.EchoPassword
	f.inputs[fieldToken].EchoCharacter = '•'
	f.inputs[fieldURL].Focus()
	return f
}

func (f connectForm) focusCmd() tea.Cmd {
	return textinput.Blink
}

// params builds the connect parameters from the current input values.
func (f connectForm) params() bridge.ConnectParams {
	p := bridge.ConnectParams{
		URL:      f.inputs[fieldURL].Value(),
		Tenant:   f.inputs[fieldTenant].Value(),
		Database: f.inputs[fieldDatabase].Value(),
		Auth:     f.configured,
	}
	if token := strings.TrimSpace(f.inputs[fieldToken].Value()); token != "" {
		if f.configured.Header == "X-Chroma-Token" {
			p.Auth = chroma.Auth{Header: "X-Chroma-Token", Value: token}
		} else {
			p.Auth = chroma.Auth{Header: "Authorization", Value: "Bearer " + token}
		}
	}
	return p.WithDefaults()
}

func (f connectForm) setFocus(i int) connectForm {
	f.inputs[f.focus].Blur()
	f.focus = (i + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
	return f
}

func (f connectForm) update(msg tea.Msg) (connectForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// handleConnectKey processes keyboard input on the connect screen.
func (m Model) handleConnectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.connect.busy {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Tab), msg.String() == "down":
		m.connect = m.connect.setFocus(m.connect.focus + 1)
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab), msg.String() == "up":
		m.connect = m.connect.setFocus(m.connect.focus - 1)
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.connect.err = ""
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		if m.bridge == nil {
			m.connect.err = "no backend available"
			return m, nil
		}
		m.connect.busy = true
		m.connect.err = ""
		return m, tea.Batch(
			m.spinner.Tick,
			connectCmd(m.ctx, m.bridge, m.store, m.prefs, m.connect.params()),
		)
	}
	var cmd tea.Cmd
	m.connect, cmd = m.connect.update(msg)
	if m.connect.err != "" && msg.Type == tea.KeyRunes {
		m.connect.err = ""
	}
	return m, cmd
}

// renderConnect renders the connect screen.
func (m Model) renderConnect() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(renderLogo(m.logo, styles.Logo))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Connect to a Chroma server"))
	b.WriteString("\n\n")

	labelStyle := styles.MutedText.Width(10)
	for i, in := range m.connect.inputs {
		label := labelStyle.Render(fieldLabels[i])
		if i == m.connect.focus {
			label = styles.AccentText.Bold(true).Width(10).Render(fieldLabels[i])
		}
		b.WriteString(label)
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.connect.busy:
		b.WriteString(m.spinner.View() + " " + styles.WarningText.Render("Connecting..."))
	case m.connect.err != "":
		b.WriteString(styles.DangerText.Render(truncate(m.connect.err, 60)))
	default:
		b.WriteString(styles.FaintText.Render("enter connect · tab next field · ctrl+c quit"))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
