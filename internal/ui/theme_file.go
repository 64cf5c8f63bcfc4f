package ui

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// themeFile is the YAML layout of a palette override:
//
//	name: Midnight
//	base: Slate
//	colors:
//	  accent: "#ff79c6"
//	  selection_bg: "#44475a"
//	status_colors:
//	  vector: "#bd93f9"
type themeFile struct {
	Name         string            `yaml:"name"`
	Base         string            `yaml:"base"`
	Colors       map[string]string `yaml:"colors"`
	StatusColors map[string]string `yaml:"status_colors"`
}

const customThemeName = "Custom"

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadThemeOverrides reads a YAML palette override and returns the resulting
// theme. ok is false when path is empty or the file does not exist.
func LoadThemeOverrides(path string) (theme Theme, ok bool, err error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Theme{}, false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Theme{}, false, nil
		}
		return Theme{}, false, fmt.Errorf("read theme file: %w", err)
	}

	var tf themeFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return Theme{}, false, fmt.Errorf("parse theme file: %w", err)
	}
	t, err := tf.apply()
	if err != nil {
		return Theme{}, false, fmt.Errorf("theme file %s: %w", path, err)
	}
	return t, true, nil
}

func (tf themeFile) apply() (Theme, error) {
	t := GetTheme(strings.TrimSpace(tf.Base))
	t.Name = strings.TrimSpace(tf.Name)
	if t.Name == "" {
		t.Name = customThemeName
	}
	if isBuiltinTheme(t.Name) {
		return Theme{}, fmt.Errorf("name %q shadows a built-in theme", t.Name)
	}

	fields := map[string]*string{
		"background":     &t.Background,
		"surface":        &t.Surface,
		"surface_alt":    &t.SurfaceAlt,
		"focus_bg":       &t.FocusBg,
		"selection_bg":   &t.SelectionBg,
		"selection_text": &t.SelectionText,
		"border":         &t.Border,
		"border_muted":   &t.BorderMuted,
		"border_focus":   &t.BorderFocus,
		"text":           &t.Text,
		"muted":          &t.Muted,
		"faint":          &t.Faint,
		"accent":         &t.Accent,
		"success":        &t.Success,
		"warning":        &t.Warning,
		"danger":         &t.Danger,
		"info":           &t.Info,
	}
	for key, value := range tf.Colors {
		dst, ok := fields[strings.ToLower(strings.TrimSpace(key))]
		if !ok {
			return Theme{}, fmt.Errorf("unknown color %q", key)
		}
		if !hexColorRe.MatchString(value) {
			return Theme{}, fmt.Errorf("color %s: %q is not #rrggbb", key, value)
		}
		*dst = value
	}

	statuses := make(map[string]string, len(t.StatusColors))
	for k, v := range t.StatusColors {
		statuses[k] = v
	}
	for key, value := range tf.StatusColors {
		if !hexColorRe.MatchString(value) {
			return Theme{}, fmt.Errorf("status color %s: %q is not #rrggbb", key, value)
		}
		statuses[strings.ToLower(strings.TrimSpace(key))] = value
	}
	t.StatusColors = statuses
	return t, nil
}

// themeRing is the cycle order for T: the built-ins plus an optional custom
// theme loaded from disk.
type themeRing struct {
	custom *Theme
}

func (r themeRing) names() []string {
	names := append([]string(nil), ThemeNames()...)
	if r.custom != nil {
		names = append(names, r.custom.Name)
	}
	return names
}

func (r themeRing) get(name string) Theme {
	if r.custom != nil && name == r.custom.Name {
		return *r.custom
	}
	return GetTheme(name)
}

func (r themeRing) next(current string) string {
	names := r.names()
	for i, name := range names {
		if name == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
