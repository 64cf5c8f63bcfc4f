package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v; want nil, nil", got, err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Entry
	}{
		{
			name:  "plain text",
			input: "goroutine 1 [running]:",
			want:  Entry{Raw: "goroutine 1 [running]:", Message: "goroutine 1 [running]:"},
		},
		{
			name:  "message only",
			input: "2026-10-16 14:02:11\tINFO\tconnected",
			want:  Entry{Raw: "2026-10-16 14:02:11\tINFO\tconnected", Time: "2026-10-16 14:02:11", Level: "INFO", Message: "connected"},
		},
		{
			name:  "message with fields",
			input: "2026-10-16 14:02:11\tWARN\tcommand failed\t{\"command\": \"health_check\"}",
			want: Entry{
				Raw:     "2026-10-16 14:02:11\tWARN\tcommand failed\t{\"command\": \"health_check\"}",
				Time:    "2026-10-16 14:02:11",
				Level:   "WARN",
				Message: "command failed",
				Fields:  "{\"command\": \"health_check\"}",
			},
		},
		{
			name:  "named logger",
			input: "2026-10-16 14:02:11\tDEBUG\tbridge\tcommand completed\t{\"elapsed\": \"3ms\"}",
			want: Entry{
				Raw:     "2026-10-16 14:02:11\tDEBUG\tbridge\tcommand completed\t{\"elapsed\": \"3ms\"}",
				Time:    "2026-10-16 14:02:11",
				Level:   "DEBUG",
				Logger:  "bridge",
				Message: "command completed",
				Fields:  "{\"elapsed\": \"3ms\"}",
			},
		},
		{
			name:  "unknown level",
			input: "a\tNOPE\tc",
			want:  Entry{Raw: "a\tNOPE\tc", Message: "a\tNOPE\tc"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.input); got != tt.want {
				t.Errorf("Parse() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestAtLeast(t *testing.T) {
	entries := ParseAll([]string{
		"t\tDEBUG\tone",
		"t\tINFO\ttwo",
		"stack line",
		"t\tERROR\tthree",
	})

	got := AtLeast(entries, "warn")
	if len(got) != 2 || got[0].Message != "stack line" || got[1].Message != "three" {
		t.Fatalf("AtLeast(warn) = %#v", got)
	}
	if got := AtLeast(entries, "bogus"); len(got) != 4 {
		t.Fatalf("AtLeast(bogus) kept %d entries, want 4", len(got))
	}
}
