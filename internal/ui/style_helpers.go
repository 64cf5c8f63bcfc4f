package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle paints chromaview's pane content on one background: collection
// list rows and grid cells on FocusBg or SurfaceAlt depending on focus, the
// header tabs on Surface, and the home, settings and logs lines on
// SurfaceAlt. Every padding space, column gap and separator goes through it
// so a row never shows the terminal's default background between cells.
type BgStyle struct {
	bg    lipgloss.Color
	space string // cached styled space
}

// NewBgStyle creates a BgStyle for the given color.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	return BgStyle{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Render renders text with style, painting every character including spaces.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	if !strings.Contains(text, " ") {
		return style.Background(b.bg).Render(text)
	}

	wordStyle := style.Background(b.bg)
	words := strings.Split(text, " ")
	result := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			result = append(result, wordStyle.Render(w))
		} else {
			result = append(result, "")
		}
	}
	return strings.Join(result, b.space)
}

// Cell renders text truncated and padded to exactly width cells.
func (b BgStyle) Cell(text string, width int, style lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	text = truncate(text, width)
	pad := width - lipgloss.Width(text)
	return b.Render(text, style) + b.Spaces(pad)
}

// Space returns a single styled space.
func (b BgStyle) Space() string {
	return b.space
}

// Spaces returns n styled spaces.
func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Background(b.bg).Render(strings.Repeat(" ", n))
}

// Sep returns a styled separator string.
func (b BgStyle) Sep(sep string) string {
	return lipgloss.NewStyle().Background(b.bg).Render(sep)
}

// Row joins cells that were already padded by Cell with a one-space gap, as
// the grid header and record rows are laid out.
func (b BgStyle) Row(cells []string) string {
	return strings.Join(cells, b.space)
}

// Join joins parts with a styled separator.
func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, b.Sep(sep))
}

// Color returns the background color.
func (b BgStyle) Color() lipgloss.Color {
	return b.bg
}

// FillLine pads rendered content to width with the background color.
func (b BgStyle) FillLine(content string, width int) string {
	return lipgloss.NewStyle().Background(b.bg).Width(width).Render(content)
}

// paneBg is the background of a bordered pane: FocusBg while it holds focus,
// SurfaceAlt otherwise.
func (m Model) paneBg(focused bool) BgStyle {
	return NewBgStyle(ternary(focused, m.theme.FocusBg, m.theme.SurfaceAlt))
}
