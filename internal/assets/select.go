// Package assets selects a single release asset by wildcard pattern.
//
// Patterns support a single operator: '*' matches any run of characters,
// including none. Every other character matches itself, case-sensitively.
// Selection deliberately requires exactly one match; zero or multiple matches
// are errors that carry the release's full asset name list so the caller can
// show what was available.
package assets

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/goughy12/Get-GithubRelease/internal/ghrel"
)

// NoMatchError reports that no asset name matched the pattern.
type NoMatchError struct {
	Pattern   string
	Available []string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no asset matches pattern %q; available assets:\n%s",
		e.Pattern, bulletList(e.Available))
}

// AmbiguousMatchError reports that more than one asset name matched the
// pattern.
type AmbiguousMatchError struct {
	Pattern   string
	Matches   []string
	Available []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("pattern %q matches %d assets, expected exactly one; available assets:\n%s",
		e.Pattern, len(e.Matches), bulletList(e.Available))
}

func bulletList(names []string) string {
	var b strings.Builder
	for _, n := range names {
		b.WriteString("  - ")
		b.WriteString(n)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Compile builds a matcher for pattern. Only '*' is treated as an operator;
// characters that are special to the underlying glob syntax are quoted so
// they match literally.
func Compile(pattern string) (glob.Glob, error) {
	parts := strings.Split(pattern, "*")
	for i, p := range parts {
		parts[i] = glob.QuoteMeta(p)
	}
	g, err := glob.Compile(strings.Join(parts, "*"))
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	return g, nil
}

// Select returns the single asset of rel whose name matches pattern.
func Select(rel ghrel.Release, pattern string) (ghrel.Asset, error) {
	g, err := Compile(pattern)
	if err != nil {
		return ghrel.Asset{}, err
	}

	available := make([]string, 0, len(rel.Assets))
	var matches []ghrel.Asset
	for _, a := range rel.Assets {
		available = append(available, a.Name)
		if g.Match(a.Name) {
			matches = append(matches, a)
		}
	}

	switch len(matches) {
	case 0:
		return ghrel.Asset{}, &NoMatchError{Pattern: pattern, Available: available}
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, a := range matches {
			names[i] = a.Name
		}
		return ghrel.Asset{}, &AmbiguousMatchError{Pattern: pattern, Matches: names, Available: available}
	}
}
