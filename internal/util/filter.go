package util

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// NameFilter matches texture names against a set of glob patterns.
// An empty filter matches everything.
type NameFilter struct {
	patterns []string
	globs    []glob.Glob
}

// NewNameFilter compiles the given patterns. Blank patterns are ignored.
func NewNameFilter(patterns []string) (*NameFilter, error) {
	f := &NameFilter{}
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			return nil, fmt.Errorf("malformed name pattern %q: %w", pattern, err)
		}
		f.patterns = append(f.patterns, pattern)
		f.globs = append(f.globs, g)
	}
	return f, nil
}

// Empty reports whether the filter has no patterns.
func (f *NameFilter) Empty() bool {
	return len(f.globs) == 0
}

// Match reports whether name matches any pattern.
func (f *NameFilter) Match(name string) bool {
	if f.Empty() {
		return true
	}
	lower := strings.ToLower(name)
	for _, g := range f.globs {
		if g.Match(lower) {
			return true
		}
	}
	return false
}

// IsPattern reports whether s contains glob metacharacters.
func IsPattern(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
