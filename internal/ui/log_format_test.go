package ui

import (
	"testing"
	"time"

	"github.com/five82/chromaview/internal/logtail"
)

func TestNextLogLevel(t *testing.T) {
	got := []string{}
	level := ""
	for range logLevelFilters {
		level = nextLogLevel(level)
		got = append(got, level)
	}
	want := []string{"INFO", "WARN", "ERROR", ""}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cycle = %v, want %v", got, want)
		}
	}
	if nextLogLevel("TRACE") != "" {
		t.Fatalf("unknown level should restart the cycle")
	}
}

func TestShortTime(t *testing.T) {
	now := time.Date(2025, 12, 13, 18, 0, 0, 0, time.Local)
	if got := shortTime("2025-12-13 10:11:12", now); got != "10:11:12" {
		t.Fatalf("shortTime today = %q, want 10:11:12", got)
	}
	if got := shortTime("2025-12-12 10:11:12", now); got != "12-12 10:11" {
		t.Fatalf("shortTime yesterday = %q, want 12-12 10:11", got)
	}
	if got := shortTime("not a time", now); got != "not a time" {
		t.Fatalf("shortTime invalid = %q, want passthrough", got)
	}
}

func TestFormatEntry(t *testing.T) {
	now := time.Date(2025, 12, 13, 18, 0, 0, 0, time.Local)

	e := logtail.Parse("2025-12-13 10:11:12\tWARN\tbridge\tinvoke failed\t{\"command\": \"health_check\"}")
	got := formatEntry(e, now)
	want := "10:11:12 WARN bridge – invoke failed {\"command\": \"health_check\"}"
	if got != want {
		t.Fatalf("formatEntry = %q, want %q", got, want)
	}

	raw := logtail.Parse("goroutine 1 [running]:")
	if got := formatEntry(raw, now); got != "goroutine 1 [running]:" {
		t.Fatalf("formatEntry unparsed = %q", got)
	}
}
