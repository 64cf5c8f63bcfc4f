// Package logtail reads and parses the tail of chromaview's log file.
//
// # Overview
//
// The TUI owns the terminal, so the logger writes to a file and the log panel
// shows its last lines. Read extracts those lines; Parse splits each one into
// the fields zap's console encoder writes:
//
//	2026-10-16 14:02:11	WARN	command failed	{"command": "fetch_row_count", "error": "..."}
//
// # Reading Log Files
//
// Read keeps a ring buffer of maxLines entries while scanning, so memory use
// is bounded by the requested line count rather than the file size. Lines
// come back in chronological order. A missing file returns no lines and no
// error, which is the normal state before the first log write.
//
// Lines longer than 1MB cause bufio.ErrTooLong and Read returns an error.
//
// # Parsing
//
// Parse expects tab-separated time, level, optional logger name, message and
// an optional trailing JSON object of fields. Anything else is returned as an
// unparsed Entry whose Message is the raw line, so the panel can still show it.
//
// AtLeast filters parsed entries by level using zap's level names.
package logtail
