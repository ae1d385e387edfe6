// Package repo parses the "owner/name" repository identifier accepted on the
// command line.
package repo

import (
	"fmt"
	"strings"
)

// Ref identifies a GitHub repository. Immutable once parsed.
type Ref struct {
	Owner string
	Name  string
}

// Parse splits a single "owner/name" string into a Ref. Exactly one slash
// with non-empty halves is required.
func Parse(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Ref{}, fmt.Errorf("invalid repository %q: expected owner/name", s)
	}
	return Ref{Owner: parts[0], Name: parts[1]}, nil
}

// String returns the canonical owner/name form.
func (r Ref) String() string {
	return r.Owner + "/" + r.Name
}
