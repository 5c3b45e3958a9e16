package registry

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/lo"
)

// Selector picks the "latest" tag from a registry tag list.
type Selector func(tags []string) (string, bool)

// SelectorFor returns the selector for a tag policy name.
func SelectorFor(policy string) (Selector, error) {
	switch policy {
	case "", "lexical":
		return SelectLexical, nil
	case "semver":
		return SelectSemver, nil
	default:
		return nil, fmt.Errorf("registry: unknown tag policy %q (valid: lexical, semver)", policy)
	}
}

// versioned keeps tags containing at least one digit; floating names such
// as "latest" or "dev" are never candidates.
func versioned(tags []string) []string {
	return lo.Filter(tags, func(t string, _ int) bool {
		return strings.ContainsFunc(t, unicode.IsDigit)
	})
}

// SelectLexical returns the lexicographically greatest digit-bearing tag.
// Tags are compared as strings, so "9.0" sorts above "10.0".
func SelectLexical(tags []string) (string, bool) {
	candidates := versioned(tags)
	if len(candidates) == 0 {
		return "", false
	}
	return lo.Max(candidates), true
}

// SelectSemver returns the highest digit-bearing tag that parses as a
// semantic version. Equal versions ("1.2", "1.2.0") resolve to the
// lexicographically greater spelling. Falls back to SelectLexical when no
// tag parses.
func SelectSemver(tags []string) (string, bool) {
	var (
		best    string
		bestVer *semver.Version
	)
	for _, t := range versioned(tags) {
		v, err := semver.NewVersion(t)
		if err != nil {
			continue
		}
		if bestVer == nil || v.GreaterThan(bestVer) || (v.Equal(bestVer) && t > best) {
			best, bestVer = t, v
		}
	}
	if bestVer == nil {
		return SelectLexical(tags)
	}
	return best, true
}
