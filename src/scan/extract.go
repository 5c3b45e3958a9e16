package scan

import (
	"errors"
	"iter"
	"regexp"
	"strings"
)

var (
	// linePattern selects candidate lines: "docker" followed by a double quote.
	linePattern = regexp.MustCompile(`.*docker.*"`)
	// tokenPattern captures the quoted image token on a candidate line.
	tokenPattern = regexp.MustCompile(`docker.*"(\S*?)"`)
)

var (
	// ErrNoToken means a candidate line carries no quoted token.
	ErrNoToken = errors.New("no quoted image token")
	// ErrNoTag means the quoted token has no ":" separating a tag.
	ErrNoTag = errors.New("image token has no tag")
)

// Line is a candidate line from a workflow file.
type Line struct {
	Number int    // 1-based
	Text   string // trimmed line text
}

// MatchingLines yields every line of content that mentions docker followed
// by a double quote. Lines are produced lazily in file order.
func MatchingLines(content string) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		n := 0
		for raw := range strings.Lines(content) {
			n++
			if !linePattern.MatchString(raw) {
				continue
			}
			if !yield(Line{Number: n, Text: strings.TrimSpace(raw)}) {
				return
			}
		}
	}
}

// ParseLine extracts the image reference declared on a candidate line.
func ParseLine(line Line, sourceFile string) (ImageReference, error) {
	m := tokenPattern.FindStringSubmatch(line.Text)
	if m == nil {
		return ImageReference{}, ErrNoToken
	}

	image, tag, err := ParseToken(m[1])
	if err != nil {
		return ImageReference{}, err
	}

	return ImageReference{
		ImagePath:  image,
		UsedTag:    tag,
		SourceFile: sourceFile,
		SourceLine: line.Number,
	}, nil
}

// ParseToken splits "registry/repo:tag" at the last colon.
// "quay.io/biocontainers/samtools:1.17--h00cdaf9_0" → ("quay.io/biocontainers/samtools", "1.17--h00cdaf9_0").
func ParseToken(token string) (image, tag string, err error) {
	idx := strings.LastIndex(token, ":")
	if idx < 0 {
		return "", "", ErrNoTag
	}
	return token[:idx], token[idx+1:], nil
}
