package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/chromaview/internal/config"
)

func TestConfirm(t *testing.T) {
	cases := map[string]bool{
		"y\n":    true,
		"YES\n":  true,
		"n\n":    false,
		"\n":     false,
		"":       false,
		" yes  ": true,
	}
	for input, want := range cases {
		var out bytes.Buffer
		got, err := confirm(strings.NewReader(input), &out, "sure? ")
		if err != nil {
			t.Fatalf("confirm(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("confirm(%q) = %v, want %v", input, got, want)
		}
		if out.String() != "sure? " {
			t.Fatalf("prompt = %q", out.String())
		}
	}
}

// execute runs the command tree with isolated config, prefs and env files.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{config.EnvURL, config.EnvTenant, config.EnvDatabase, config.EnvToken} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	args = append(args,
		"--config", filepath.Join(dir, "config.toml"),
		"--prefs", filepath.Join(dir, "prefs.toml"),
		"--env-file", filepath.Join(dir, ".env"),
		"--log-file", filepath.Join(dir, "chromaview.log"),
	)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/heartbeat", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"nanosecond heartbeat": 1}`))
	})
	mux.HandleFunc("/api/v2/tenants/default_tenant", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"name":"default_tenant"}`))
	})
	mux.HandleFunc("/api/v2/tenants/default_tenant/databases/default_database", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"name":"default_database"}`))
	})
	mux.HandleFunc("/api/v2/tenants/default_tenant/databases/default_database/collections", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"6f1c1d0e-3c1a-4b8e-9a51-0d2a4f6a1b01","name":"docs"}]`))
	})
	mux.HandleFunc("/api/v2/version", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`"1.0.15"`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCollectionsCommand(t *testing.T) {
	srv := newServer(t)
	out, err := execute(t, "", "collections", "--url", srv.URL)
	if err != nil {
		t.Fatalf("collections: %v", err)
	}
	if !strings.Contains(out, "docs\t6f1c1d0e-3c1a-4b8e-9a51-0d2a4f6a1b01") {
		t.Fatalf("output = %q", out)
	}

	out, err = execute(t, "", "collections", "--ids", "--url", srv.URL)
	if err != nil {
		t.Fatalf("collections --ids: %v", err)
	}
	if strings.TrimSpace(out) != "6f1c1d0e-3c1a-4b8e-9a51-0d2a4f6a1b01" {
		t.Fatalf("output = %q", out)
	}
}

func TestResetCommand_DeclinedPrompt(t *testing.T) {
	srv := newServer(t)
	_, err := execute(t, "n\n", "reset", "--url", srv.URL)
	if err == nil || err.Error() != "reset cancelled" {
		t.Fatalf("err = %v, want reset cancelled", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version", "--offline")
	if err != nil {
		t.Fatalf("version --offline: %v", err)
	}
	if strings.TrimSpace(out) != "chromaview dev" {
		t.Fatalf("output = %q", out)
	}

	srv := newServer(t)
	out, err = execute(t, "", "version", "--url", srv.URL)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "chroma 1.0.15") {
		t.Fatalf("output = %q", out)
	}
}
