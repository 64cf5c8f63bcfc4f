package logging

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_WritesConsoleLinesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "chromaview.log")

	logger, err := New(path, "info")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("collections fetched", zap.Int("count", 3))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "collections fetched") {
		t.Fatalf("log output = %q, want INFO line", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at info level: %q", out)
	}
}

func TestNew_EmptyPathIsNop(t *testing.T) {
	logger, err := New("  ", "debug")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if logger.Core().Enabled(zap.ErrorLevel) {
		t.Fatalf("empty path should produce a no-op logger")
	}
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "x.log"), "chatty"); err == nil {
		t.Fatalf("New returned nil error for unknown level")
	}
}

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatalf("FromContext without logger returned nil")
	}
	l := zap.NewExample()
	ctx := ContextWithLogger(context.Background(), l)
	if FromContext(ctx) != l {
		t.Fatalf("FromContext did not return stored logger")
	}
}
