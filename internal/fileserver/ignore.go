package fileserver

import (
	"path"
	"strings"
)

// GlobIgnore is the default IgnoreMatcher: a fixed list of shell glob
// patterns (as understood by path.Match) checked against the sanitized
// logical path. A match is treated identically to a traversal attempt
// (see DESIGN.md Open Question #1 on --ignore-file semantics).
type GlobIgnore struct {
	Patterns []string
}

// NewGlobIgnore parses a newline-separated pattern list, skipping blank
// lines and lines starting with "#".
func NewGlobIgnore(raw string) GlobIgnore {
	var patterns []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return GlobIgnore{Patterns: patterns}
}

// Match reports whether logicalPath matches any configured pattern,
// trying both the full path and its base name so a pattern like
// "*.bak" matches regardless of directory depth.
func (g GlobIgnore) Match(logicalPath string) bool {
	base := path.Base(logicalPath)
	for _, pattern := range g.Patterns {
		if ok, err := path.Match(pattern, logicalPath); err == nil && ok {
			return true
		}
		if ok, err := path.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
