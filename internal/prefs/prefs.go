// Package prefs handles chromaview user preferences persistence.
// Preferences are stored in ~/.config/chromaview/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for chromaview.
type Prefs struct {
	Theme        string              `toml:"theme"`
	LastURL      string              `toml:"last_url"`
	LastTenant   string              `toml:"last_tenant"`
	LastDatabase string              `toml:"last_database"`
	Endpoints    map[string]Endpoint `toml:"endpoints"`
}

// Endpoint holds preferences scoped to one Chroma URL.
type Endpoint struct {
	Favorites       []string `toml:"favorites"`
	LogPanelHeight  int      `toml:"log_panel_height"`
	DismissedGuides []string `toml:"dismissed_guides"`
}

const (
	defaultPrefsPath = "~/.config/chromaview/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path, falling back to defaults if missing.
func Load(path string) (Prefs, error) {
	prefs := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs, nil
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs, nil // Graceful degradation
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Prefs{Theme: defaultTheme}, nil // Graceful degradation
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}

	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// Store is the process-wide preferences handle. Every mutation is written
// through to disk; concurrent writers are serialized and the last one wins.
type Store struct {
	mu    sync.Mutex
	path  string
	prefs Prefs
}

// Open loads preferences from path and returns a write-through store.
func Open(path string) *Store {
	p, _ := Load(path)
	return &Store{path: path, prefs: p}
}

// Snapshot returns a copy of the current preferences.
func (s *Store) Snapshot() Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.prefs
	out.Endpoints = make(map[string]Endpoint, len(s.prefs.Endpoints))
	for k, v := range s.prefs.Endpoints {
		v.Favorites = slices.Clone(v.Favorites)
		v.DismissedGuides = slices.Clone(v.DismissedGuides)
		out.Endpoints[k] = v
	}
	return out
}

// Theme returns the persisted theme name.
func (s *Store) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.Theme
}

// SetTheme persists the theme name.
func (s *Store) SetTheme(name string) error {
	return s.mutate(func(p *Prefs) {
		p.Theme = name
	})
}

// LastConnection returns the most recently used URL, tenant and database.
func (s *Store) LastConnection() (url, tenant, database string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.LastURL, s.prefs.LastTenant, s.prefs.LastDatabase
}

// SetLastConnection persists the connection used for the current session.
func (s *Store) SetLastConnection(url, tenant, database string) error {
	return s.mutate(func(p *Prefs) {
		p.LastURL = url
		p.LastTenant = tenant
		p.LastDatabase = database
	})
}

// IsFavorite reports whether name is pinned for endpoint.
func (s *Store) IsFavorite(endpoint, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.prefs.Endpoints[endpoint].Favorites, name)
}

// FavoriteNames returns the pinned collection names for endpoint.
func (s *Store) FavoriteNames(endpoint string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.prefs.Endpoints[endpoint].Favorites)
}

// ToggleFavorite adds name to the endpoint's favorites, or removes it when
// already present. It returns the new state.
func (s *Store) ToggleFavorite(endpoint, name string) (bool, error) {
	var pinned bool
	err := s.mutate(func(p *Prefs) {
		ep := p.Endpoints[endpoint]
		if i := slices.Index(ep.Favorites, name); i >= 0 {
			ep.Favorites = slices.Delete(ep.Favorites, i, i+1)
		} else {
			ep.Favorites = append(ep.Favorites, name)
			pinned = true
		}
		p.Endpoints[endpoint] = ep
	})
	return pinned, err
}

// LogPanelHeight returns the saved log panel height for endpoint, or fallback.
func (s *Store) LogPanelHeight(endpoint string, fallback int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h := s.prefs.Endpoints[endpoint].LogPanelHeight; h > 0 {
		return h
	}
	return fallback
}

// SetLogPanelHeight persists the log panel height for endpoint.
func (s *Store) SetLogPanelHeight(endpoint string, height int) error {
	return s.mutate(func(p *Prefs) {
		ep := p.Endpoints[endpoint]
		ep.LogPanelHeight = height
		p.Endpoints[endpoint] = ep
	})
}

// GuideDismissed reports whether the named one-time guide was closed before.
func (s *Store) GuideDismissed(endpoint, guide string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.prefs.Endpoints[endpoint].DismissedGuides, guide)
}

// DismissGuide records that the named guide should not be shown again.
func (s *Store) DismissGuide(endpoint, guide string) error {
	return s.mutate(func(p *Prefs) {
		ep := p.Endpoints[endpoint]
		if !slices.Contains(ep.DismissedGuides, guide) {
			ep.DismissedGuides = append(ep.DismissedGuides, guide)
		}
		p.Endpoints[endpoint] = ep
	})
}

// Favorites binds the store to one endpoint.
func (s *Store) Favorites(endpoint string) Favorites {
	return Favorites{store: s, endpoint: endpoint}
}

// Favorites is an endpoint-scoped view over the favorites set.
type Favorites struct {
	store    *Store
	endpoint string
}

// IsFavorite reports whether name is pinned.
func (f Favorites) IsFavorite(name string) bool {
	if f.store == nil {
		return false
	}
	return f.store.IsFavorite(f.endpoint, name)
}

// ToggleFavorite flips the pinned state of name.
func (f Favorites) ToggleFavorite(name string) (bool, error) {
	if f.store == nil {
		return false, fmt.Errorf("prefs store is nil")
	}
	return f.store.ToggleFavorite(f.endpoint, name)
}

func (s *Store) mutate(fn func(p *Prefs)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prefs.Endpoints == nil {
		s.prefs.Endpoints = make(map[string]Endpoint)
	}
	fn(&s.prefs)
	if s.path == "" {
		return nil
	}
	return Save(s.path, s.prefs)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
