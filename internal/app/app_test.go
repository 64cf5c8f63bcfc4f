package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/five82/chromaview/internal/config"
)

func setupEnv(t *testing.T, configBody string, opts Options) *Env {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{config.EnvURL, config.EnvTenant, config.EnvDatabase, config.EnvToken} {
		t.Setenv(key, "")
	}

	dir := t.TempDir()
	opts.ConfigPath = filepath.Join(dir, "config.toml")
	if configBody != "" {
		if err := os.WriteFile(opts.ConfigPath, []byte(configBody), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	opts.PrefsPath = filepath.Join(dir, "prefs.toml")
	opts.EnvFile = filepath.Join(dir, ".env")
	opts.LogFile = filepath.Join(dir, "logs", "chromaview.log")

	env, err := Setup(opts)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	t.Cleanup(env.Close)
	return env
}

func TestSetup_BuildsEnv(t *testing.T) {
	env := setupEnv(t, "page_size = 25\n", Options{})
	if env.Config.PageSize != 25 {
		t.Fatalf("PageSize = %d, want 25", env.Config.PageSize)
	}
	if env.Bridge == nil || env.Prefs == nil || env.Registry == nil {
		t.Fatalf("Setup left dependencies nil: %#v", env)
	}
	env.Logger.Info("hello")
	_ = env.Logger.Sync()
	if _, err := os.Stat(env.Config.LogFile); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
}

func TestSetup_InvalidConfigFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("page_size = 7\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Setup(Options{ConfigPath: path, EnvFile: filepath.Join(t.TempDir(), ".env")}); err == nil {
		t.Fatalf("Setup returned nil error for invalid page size")
	}
}

func TestConnectParams_Precedence(t *testing.T) {
	env := setupEnv(t, "", Options{})
	p := env.ConnectParams()
	if p.URL != "http://localhost:8000" || p.Tenant != "default_tenant" {
		t.Fatalf("defaults = %#v", p)
	}

	if err := env.Prefs.SetLastConnection("http://last:8000", "last_tenant", "last_db"); err != nil {
		t.Fatalf("SetLastConnection: %v", err)
	}
	p = env.ConnectParams()
	if p.URL != "http://last:8000" || p.Tenant != "last_tenant" || p.Database != "last_db" {
		t.Fatalf("last connection not used: %#v", p)
	}

	env = setupEnv(t, "url = \"http://configured:9000\"\n[auth]\nprovider = \"token\"\ntoken = \"tok\"\n", Options{Tenant: "flag_tenant"})
	_ = env.Prefs.SetLastConnection("http://last:8000", "last_tenant", "last_db")
	p = env.ConnectParams()
	if p.URL != "http://configured:9000" {
		t.Fatalf("URL = %q, want configured value", p.URL)
	}
	if p.Tenant != "flag_tenant" {
		t.Fatalf("Tenant = %q, want flag value", p.Tenant)
	}
	if p.Database != "last_db" {
		t.Fatalf("Database = %q, want last used", p.Database)
	}
	if p.Auth.Header != "Authorization" || p.Auth.Value != "Bearer tok" {
		t.Fatalf("Auth = %#v, want bearer token", p.Auth)
	}
}
