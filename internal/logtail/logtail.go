package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one parsed log line. Lines that are not in the logger's console
// format come back with only Raw and Message set.
type Entry struct {
	Raw     string
	Time    string
	Level   string
	Logger  string
	Message string
	Fields  string
}

// Parsed reports whether the line matched the console format.
func (e Entry) Parsed() bool { return e.Level != "" }

var levels = map[string]int{
	"DEBUG":  0,
	"INFO":   1,
	"WARN":   2,
	"ERROR":  3,
	"DPANIC": 4,
	"PANIC":  5,
	"FATAL":  6,
}

// Parse splits a tab-separated zap console line into its parts.
func Parse(line string) Entry {
	e := Entry{Raw: line, Message: line}
	parts := strings.Split(line, "\t")
	if len(parts) < 3 {
		return e
	}
	if _, ok := levels[parts[1]]; !ok {
		return e
	}
	e.Time = parts[0]
	e.Level = parts[1]
	rest := parts[2:]
	if n := len(rest); n > 1 && strings.HasPrefix(rest[n-1], "{") {
		e.Fields = rest[n-1]
		rest = rest[:n-1]
	}
	if len(rest) > 1 {
		e.Logger = rest[0]
		rest = rest[1:]
	}
	e.Message = strings.Join(rest, " ")
	return e
}

// ParseAll parses every line.
func ParseAll(lines []string) []Entry {
	out := make([]Entry, len(lines))
	for i, l := range lines {
		out[i] = Parse(l)
	}
	return out
}

// AtLeast keeps entries at or above minLevel. Unparsed lines are kept so
// multi-line output such as stack traces stays visible. An unknown minLevel
// keeps everything.
func AtLeast(entries []Entry, minLevel string) []Entry {
	floor, ok := levels[strings.ToUpper(strings.TrimSpace(minLevel))]
	if !ok {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !e.Parsed() || levels[e.Level] >= floor {
			out = append(out, e)
		}
	}
	return out
}
