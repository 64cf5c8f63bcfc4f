package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearChromaEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvURL, EnvTenant, EnvDatabase, EnvToken} {
		t.Setenv(key, "")
	}
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearChromaEnv(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.URL != "http://localhost:8000" {
		t.Fatalf("URL = %q, want http://localhost:8000", cfg.URL)
	}
	if cfg.Tenant != "default_tenant" || cfg.Database != "default_database" {
		t.Fatalf("tenant/database = %q/%q, want defaults", cfg.Tenant, cfg.Database)
	}
	if cfg.PageSize != 10 {
		t.Fatalf("PageSize = %d, want 10", cfg.PageSize)
	}
	if cfg.Auth.Provider != "none" {
		t.Fatalf("Auth.Provider = %q, want none", cfg.Auth.Provider)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearChromaEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
url = "  http://10.0.0.5:9999  "
tenant = " acme "
page_size = 50
log_file = "  ~/logs/cv.log  "

[auth]
provider = "token"
token = "secret"
token_header = "X-Chroma-Token"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.URL != "http://10.0.0.5:9999" {
		t.Fatalf("URL = %q, want %q", cfg.URL, "http://10.0.0.5:9999")
	}
	if cfg.Tenant != "acme" {
		t.Fatalf("Tenant = %q, want acme", cfg.Tenant)
	}
	if cfg.Database != "default_database" {
		t.Fatalf("Database = %q, want default_database", cfg.Database)
	}
	if cfg.PageSize != 50 {
		t.Fatalf("PageSize = %d, want 50", cfg.PageSize)
	}
	if cfg.LogFile != filepath.Join(home, "logs/cv.log") {
		t.Fatalf("LogFile = %q, want it under HOME", cfg.LogFile)
	}
	name, value := cfg.Auth.Header()
	if name != "X-Chroma-Token" || value != "secret" {
		t.Fatalf("Header() = %q=%q, want X-Chroma-Token=secret", name, value)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearChromaEnv(t)
	t.Setenv(EnvURL, "https://chroma.example.com")
	t.Setenv(EnvDatabase, "prod")
	t.Setenv(EnvToken, "tok")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`url = "http://localhost:1"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.URL != "https://chroma.example.com" {
		t.Fatalf("URL = %q, want env override", cfg.URL)
	}
	if cfg.Database != "prod" {
		t.Fatalf("Database = %q, want prod", cfg.Database)
	}
	if cfg.Auth.Provider != "token" {
		t.Fatalf("Auth.Provider = %q, want token when CHROMA_TOKEN is set", cfg.Auth.Provider)
	}
	name, value := cfg.Auth.Header()
	if name != "Authorization" || value != "Bearer tok" {
		t.Fatalf("Header() = %q=%q, want bearer token", name, value)
	}
}

func TestLoad_RejectsUnsupportedPageSize(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearChromaEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`page_size = 33`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want validation error")
	}
	if !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("Load error = %q, want it to mention invalid config", err.Error())
	}
}

func TestLoad_BasicAuthRequiresUsername(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearChromaEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[auth]\nprovider = \"basic\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load returned nil error, want username required")
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`url = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("LoadDotEnv returned error: %v", err)
	}
}

func TestLoadDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	t.Setenv(EnvTenant, "from-env")
	t.Setenv(EnvDatabase, "")
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("CHROMA_TENANT=from-file\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv returned error: %v", err)
	}
	if got := os.Getenv(EnvTenant); got != "from-env" {
		t.Fatalf("%s = %q, want from-env", EnvTenant, got)
	}
}

func TestAuthHeader_Basic(t *testing.T) {
	a := AuthConfig{Provider: "basic", Username: "admin", Password: "pw"}
	name, value := a.Header()
	if name != "Authorization" || value != "Basic YWRtaW46cHc=" {
		t.Fatalf("Header() = %q=%q", name, value)
	}
	if n, v := (AuthConfig{Provider: "none"}).Header(); n != "" || v != "" {
		t.Fatalf("none provider Header() = %q=%q, want empty", n, v)
	}

	creds := a.Credentials()
	if creds.Username != "admin" || creds.Password != "pw" || creds.Header != "Authorization" {
		t.Fatalf("Credentials() = %+v, want basic username and password", creds)
	}
	if tok := (AuthConfig{Provider: "token", Token: "t", TokenHeader: "X-Chroma-Token"}).Credentials(); tok.Username != "" || tok.Value != "t" {
		t.Fatalf("token Credentials() = %+v", tok)
	}
}

func TestDurations_DefaultWhenUnset(t *testing.T) {
	var cfg Config
	if cfg.RequestTimeout() != 10*time.Second {
		t.Fatalf("RequestTimeout = %v, want 10s", cfg.RequestTimeout())
	}
	if cfg.HealthInterval() != 5*time.Second {
		t.Fatalf("HealthInterval = %v, want 5s", cfg.HealthInterval())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
