package explorer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	nameCharset = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*[a-zA-Z0-9]$`)
	ipv4Shape   = regexp.MustCompile(`\d+\.\d+\.\d+\.\d+`)
)

// NameValidation holds the independent collection name rules.
type NameValidation struct {
	Length      bool
	Charset     bool
	NoDoubleDot bool
	NotIPv4     bool
}

// NameRule pairs a rule description with its outcome.
type NameRule struct {
	Label string
	OK    bool
}

// ValidateName evaluates every rule against name. Length is counted in
// characters.
func ValidateName(name string) NameValidation {
	n := utf8.RuneCountInString(name)
	return NameValidation{
		Length:      n >= 3 && n <= 63,
		Charset:     nameCharset.MatchString(name),
		NoDoubleDot: !strings.Contains(name, ".."),
		NotIPv4:     !ipv4Shape.MatchString(name),
	}
}

// Valid reports whether all rules hold.
func (v NameValidation) Valid() bool {
	return v.Length && v.Charset && v.NoDoubleDot && v.NotIPv4
}

// Rules lists the rules in display order.
func (v NameValidation) Rules() []NameRule {
	return []NameRule{
		{Label: "contains 3-63 characters", OK: v.Length},
		{Label: "starts and ends with an alphanumeric character, otherwise contains only alphanumeric characters, underscores or hyphens", OK: v.Charset},
		{Label: "contains no two consecutive periods", OK: v.NoDoubleDot},
		{Label: "not a valid IPv4 address", OK: v.NotIPv4},
	}
}
