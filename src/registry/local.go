package registry

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// versionMarker introduces the image version in a build Makefile.
const versionMarker = "VERSION ="

// Local resolves tags from locally maintained image build directories:
// <dir>/<image short name>/*Makefile containing a "VERSION = x" line.
type Local struct {
	dir string
}

func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

func (l *Local) Name() string { return "local" }

// Resolve never fails; a missing directory or Makefile means Absent.
// When several VERSION lines match, the last one read wins.
func (l *Local) Resolve(_ context.Context, image string) Result {
	short, ok := shortName(image)
	if !ok {
		return absent(l.Name())
	}
	imageDir := filepath.Join(l.dir, short)
	if info, err := os.Stat(imageDir); err != nil || !info.IsDir() {
		return absent(l.Name())
	}

	entries, err := os.ReadDir(imageDir)
	if err != nil {
		return absent(l.Name())
	}

	var version string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), "Makefile") {
			continue
		}
		if v, ok := makefileVersion(filepath.Join(imageDir, e.Name())); ok {
			version = v
		}
	}

	return resolved(l.Name(), version)
}

// shortName returns the last "/" segment of image. Segments that are empty
// or name the current or parent directory cannot match a build directory.
func shortName(image string) (string, bool) {
	short := image[strings.LastIndex(image, "/")+1:]
	switch short {
	case "", ".", "..":
		return "", false
	}
	if strings.ContainsAny(short, `/\`) {
		return "", false
	}
	return short, true
}

// makefileVersion returns the value of the last VERSION line in a Makefile.
func makefileVersion(file string) (string, bool) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", false
	}

	var (
		version string
		found   bool
	)
	for line := range strings.Lines(string(data)) {
		if !strings.Contains(line, versionMarker) {
			continue
		}
		version = strings.TrimSpace(line[strings.LastIndex(line, "=")+1:])
		found = true
	}
	return version, found
}
