package chroma

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver"
)

// MinServerVersion is the oldest Chroma release exposing the v2 API.
const MinServerVersion = "0.6.0"

var minServerConstraint = mustConstraint(">= " + MinServerVersion)

// CheckServerVersion returns an error when version predates the v2 API.
// Unparseable versions are accepted since some builds report git hashes.
func CheckServerVersion(version string) error {
	v, err := semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(version), "v"))
	if err != nil {
		return nil
	}
	if !minServerConstraint.Check(v) {
		return fmt.Errorf("chroma %s is not supported, need %s or newer", v.String(), MinServerVersion)
	}
	return nil
}

func mustConstraint(expr string) *semver.Constraints {
	c, err := semver.NewConstraint(expr)
	if err != nil {
		panic(err)
	}
	return c
}
