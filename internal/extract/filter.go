package extract

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// PathFilter keeps errors whose file matches at least one glob pattern.
// Patterns use doublestar syntax, so "crates/**/*.rs" spans directories.
// A nil *PathFilter matches everything.
type PathFilter struct {
	patterns []string
}

// NewPathFilter validates patterns and builds a filter.
// It returns nil when no patterns are given.
func NewPathFilter(patterns []string) (*PathFilter, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	clean := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = filepath.ToSlash(p)
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid path pattern %q", p)
		}
		clean = append(clean, p)
	}

	return &PathFilter{patterns: clean}, nil
}

// Match reports whether file passes the filter. Errors without a file
// only pass a nil filter.
func (f *PathFilter) Match(file *string) bool {
	if f == nil {
		return true
	}
	if file == nil {
		return false
	}

	path := filepath.ToSlash(*file)
	for _, p := range f.patterns {
		// Patterns were validated up front, so Match cannot fail here.
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}
	return false
}
