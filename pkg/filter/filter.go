// Package filter decides which filenames a run should touch, based on
// include and exclude glob patterns.
package filter

import (
	"github.com/bmatcuk/doublestar/v4"
)

// 🎯 Filter holds the include/exclude glob sets applied to bare filenames.
type Filter struct {
	includes []string
	excludes []string
}

// 🏭 New creates a filter. An empty include set defaults to matching
// everything; an empty exclude set excludes nothing.
func New(includes, excludes []string) *Filter {
	if len(includes) == 0 {
		includes = []string{"*"}
	}
	return &Filter{
		includes: includes,
		excludes: excludes,
	}
}

// 🔍 Included reports whether a bare filename (not a path) passes the
// filter: it must match at least one include glob and no exclude glob.
// Matching is case-sensitive shell glob semantics (`*`, `?`, `[seq]`).
func (f *Filter) Included(filename string) bool {
	return matchesAny(filename, f.includes) && !matchesAny(filename, f.excludes)
}

// matchesAny reports whether any pattern matches the filename.
func matchesAny(filename string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, filename)
		if err != nil {
			// Malformed globs never match.
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
