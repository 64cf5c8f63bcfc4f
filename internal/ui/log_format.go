package ui

import (
	"strings"
	"time"

	"github.com/five82/chromaview/internal/logging"
	"github.com/five82/chromaview/internal/logtail"
)

// logLevelFilters is the cycle order of the log panel's minimum level. The
// empty entry shows everything.
var logLevelFilters = []string{"", "INFO", "WARN", "ERROR"}

func nextLogLevel(current string) string {
	for i, l := range logLevelFilters {
		if l == current {
			return logLevelFilters[(i+1)%len(logLevelFilters)]
		}
	}
	return logLevelFilters[0]
}

// shortTime keeps only the clock part of a log timestamp written today.
func shortTime(ts string, now time.Time) string {
	t, err := time.ParseInLocation(logging.TimeLayout, ts, time.Local)
	if err != nil {
		return ts
	}
	if y, m, d := now.Date(); t.Year() == y && t.Month() == m && t.Day() == d {
		return t.Format("15:04:05")
	}
	return t.Format("01-02 15:04")
}

// formatEntry renders one parsed entry as plain text:
// "15:04:05 WARN bridge – message {fields}".
func formatEntry(e logtail.Entry, now time.Time) string {
	if !e.Parsed() {
		return e.Raw
	}
	parts := []string{shortTime(e.Time, now), e.Level}
	if e.Logger != "" {
		parts = append(parts, e.Logger)
	}
	line := strings.Join(parts, " ")
	if msg := strings.TrimSpace(e.Message); msg != "" {
		line += " – " + msg
	}
	if e.Fields != "" {
		line += " " + e.Fields
	}
	return line
}
