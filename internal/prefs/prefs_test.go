package prefs

import (
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "chromaview")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	content := `theme = "Slate"
last_url = "http://localhost:8000"

[endpoints."http://localhost:8000"]
favorites = ["docs", "images"]
log_panel_height = 12
`
	if err := os.WriteFile(prefsFile, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Slate")
	}
	ep := p.Endpoints["http://localhost:8000"]
	if !reflect.DeepEqual(ep.Favorites, []string{"docs", "images"}) {
		t.Fatalf("Favorites = %v, want [docs images]", ep.Favorites)
	}
	if ep.LogPanelHeight != 12 {
		t.Fatalf("LogPanelHeight = %d, want 12", ep.LogPanelHeight)
	}
}

func TestLoad_CorruptFileDegradesToDefaults(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = ["), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestStore_ToggleFavoriteIsSymmetricAndPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")
	s := Open(path)

	pinned, err := s.ToggleFavorite("http://a", "docs")
	if err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	if !pinned || !s.IsFavorite("http://a", "docs") {
		t.Fatalf("docs should be pinned after first toggle")
	}
	if s.IsFavorite("http://b", "docs") {
		t.Fatalf("favorites must be scoped per endpoint")
	}

	reopened := Open(path)
	if !reopened.IsFavorite("http://a", "docs") {
		t.Fatalf("favorite not persisted to %s", path)
	}

	pinned, err = s.ToggleFavorite("http://a", "docs")
	if err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	if pinned || s.IsFavorite("http://a", "docs") {
		t.Fatalf("docs should be unpinned after second toggle")
	}
}

func TestStore_ConcurrentTogglesAreSerialized(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "prefs.toml"))

	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func(n string) {
			defer wg.Done()
			_, _ = s.ToggleFavorite("ep", n)
		}(name)
	}
	wg.Wait()

	if got := len(s.FavoriteNames("ep")); got != len(names) {
		t.Fatalf("len(FavoriteNames) = %d, want %d", got, len(names))
	}
}

func TestStore_LogPanelHeightAndGuides(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "prefs.toml"))

	if got := s.LogPanelHeight("ep", 8); got != 8 {
		t.Fatalf("LogPanelHeight fallback = %d, want 8", got)
	}
	if err := s.SetLogPanelHeight("ep", 14); err != nil {
		t.Fatalf("SetLogPanelHeight: %v", err)
	}
	if got := s.LogPanelHeight("ep", 8); got != 14 {
		t.Fatalf("LogPanelHeight = %d, want 14", got)
	}

	if s.GuideDismissed("ep", "welcome") {
		t.Fatalf("guide should not start dismissed")
	}
	if err := s.DismissGuide("ep", "welcome"); err != nil {
		t.Fatalf("DismissGuide: %v", err)
	}
	if err := s.DismissGuide("ep", "welcome"); err != nil {
		t.Fatalf("DismissGuide: %v", err)
	}
	if !s.GuideDismissed("ep", "welcome") {
		t.Fatalf("guide should be dismissed")
	}
	if got := s.Snapshot().Endpoints["ep"].DismissedGuides; len(got) != 1 {
		t.Fatalf("DismissedGuides = %v, want one entry", got)
	}
}

func TestStore_LastConnectionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	s := Open(path)
	if err := s.SetLastConnection("http://h:8000", "t", "d"); err != nil {
		t.Fatalf("SetLastConnection: %v", err)
	}
	url, tenant, db := Open(path).LastConnection()
	if url != "http://h:8000" || tenant != "t" || db != "d" {
		t.Fatalf("LastConnection = %q %q %q", url, tenant, db)
	}
}

func TestFavorites_ZeroValueIsInert(t *testing.T) {
	var f Favorites
	if f.IsFavorite("x") {
		t.Fatalf("zero Favorites should report nothing pinned")
	}
	if _, err := f.ToggleFavorite("x"); err == nil {
		t.Fatalf("zero Favorites ToggleFavorite should error")
	}
}
