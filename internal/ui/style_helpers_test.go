package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestBgStyleRowKeepsCellWidths(t *testing.T) {
	bg := NewBgStyle("#112233")
	style := lipgloss.NewStyle()

	cells := []string{bg.Cell("id-1", 6, style), bg.Cell("a long document", 8, style), bg.Cell("", 3, style)}
	row := bg.Row(cells)
	if got := lipgloss.Width(row); got != 6+8+3+2 {
		t.Fatalf("row width = %d, want %d", got, 6+8+3+2)
	}
	if got := bg.Cell("x", 0, style); got != "" {
		t.Fatalf("zero-width cell = %q, want empty", got)
	}
	if got := bg.Spaces(-1); got != "" {
		t.Fatalf("negative spaces = %q, want empty", got)
	}
}

func TestPaneBgFollowsFocus(t *testing.T) {
	m := Model{theme: GetTheme("Nightfox")}
	if got := m.paneBg(true).Color(); string(got) != m.theme.FocusBg {
		t.Fatalf("focused pane bg = %q, want %q", got, m.theme.FocusBg)
	}
	if got := m.paneBg(false).Color(); string(got) != m.theme.SurfaceAlt {
		t.Fatalf("unfocused pane bg = %q, want %q", got, m.theme.SurfaceAlt)
	}
}
