// Package version orders release tags for display in the interactive UI.
package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// NormalizeTag strips a single leading "v" or "V" from a git tag for display.
//
// Examples:
//   - "v0.6.5" -> "0.6.5"
//   - "V1.2"   -> "1.2"
//   - "1.2"    -> "1.2"
func NormalizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	if len(tag) > 1 && (tag[0] == 'v' || tag[0] == 'V') {
		return tag[1:]
	}
	return tag
}

// Greater returns true if a should sort ahead of b in descending order.
//
// Tags that parse as semantic versions (leading "v" tolerated) are compared
// by semver precedence and sort ahead of tags that do not. Non-version tags
// fall back to lexical descending order.
func Greater(a, b string) bool {
	av, aErr := semver.NewVersion(NormalizeTag(a))
	bv, bErr := semver.NewVersion(NormalizeTag(b))

	switch {
	case aErr == nil && bErr != nil:
		return true
	case aErr != nil && bErr == nil:
		return false
	case aErr != nil && bErr != nil:
		return a > b
	}
	if av.Equal(bv) {
		return a > b
	}
	return av.GreaterThan(bv)
}
