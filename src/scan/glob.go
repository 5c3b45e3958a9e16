package scan

import (
	"path/filepath"
	"strings"
)

// excluded reports whether a slash-separated relative path matches any
// pattern. Patterns containing "/" or "**" are matched against the whole
// path; bare patterns match the base name only.
func excluded(patterns []string, relPath string) bool {
	if len(patterns) == 0 {
		return false
	}
	p := strings.TrimPrefix(filepath.ToSlash(relPath), "./")
	base := filepath.Base(p)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		target := base
		if strings.Contains(pattern, "/") || strings.Contains(pattern, "**") {
			target = p
		}
		if matchGlob(pattern, target) {
			return true
		}
	}
	return false
}

// matchGlob is filepath.Match plus "**", which spans zero or more segments.
func matchGlob(pattern, path string) bool {
	head, tail, found := strings.Cut(pattern, "**")
	if !found {
		ok, _ := filepath.Match(pattern, path)
		return ok
	}

	if head = strings.TrimRight(head, "/"); head != "" {
		switch rest, ok := strings.CutPrefix(path, head+"/"); {
		case ok:
			path = rest
		case path == head:
			path = ""
		default:
			return false
		}
	}

	tail = strings.TrimLeft(tail, "/")
	if tail == "" {
		return true
	}

	segs := strings.Split(path, "/")
	for i := range len(segs) + 1 {
		if matchGlob(tail, strings.Join(segs[i:], "/")) {
			return true
		}
	}
	return false
}
