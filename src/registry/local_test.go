package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMakefile(t *testing.T, dir, image, name, content string) {
	t.Helper()
	imageDir := filepath.Join(dir, image)
	require.NoError(t, os.MkdirAll(imageDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(imageDir, name), []byte(content), 0o644))
}

func TestLocal_Resolve(t *testing.T) {
	dir := t.TempDir()
	writeMakefile(t, dir, "bwa", "Makefile", "IMAGE = bwa\nVERSION = 0.7.17\n\nbuild:\n\tdocker build .\n")

	res := NewLocal(dir).Resolve(context.Background(), "us.gcr.io/broad-gotc-prod/bwa")
	assert.Equal(t, Resolved, res.Status)
	assert.Equal(t, "0.7.17", res.Tag)
	assert.Equal(t, "local", res.Source)
}

func TestLocal_LastVersionLineWins(t *testing.T) {
	dir := t.TempDir()
	writeMakefile(t, dir, "samtools", "Makefile", "VERSION = 1.16\n# bumped\nVERSION = 1.17\n")

	res := NewLocal(dir).Resolve(context.Background(), "quay.io/biocontainers/samtools")
	assert.Equal(t, "1.17", res.TagOrNA())
}

func TestLocal_LastMakefileWins(t *testing.T) {
	dir := t.TempDir()
	writeMakefile(t, dir, "gatk", "A.Makefile", "VERSION = 4.2.0\n")
	writeMakefile(t, dir, "gatk", "Makefile", "VERSION = 4.5.0\n")
	writeMakefile(t, dir, "gatk", "README.md", "VERSION = 9.9.9\n")

	res := NewLocal(dir).Resolve(context.Background(), "broadinstitute/gatk")
	assert.Equal(t, "4.5.0", res.TagOrNA())
}

func TestLocal_ValueAfterLastEquals(t *testing.T) {
	dir := t.TempDir()
	writeMakefile(t, dir, "tool", "Makefile", "export VERSION = TAG=2.0\n")

	res := NewLocal(dir).Resolve(context.Background(), "org/tool")
	assert.Equal(t, "2.0", res.TagOrNA())
}

func TestLocal_Absent(t *testing.T) {
	dir := t.TempDir()
	// Makefiles outside any image directory must never be read.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Makefile"), []byte("VERSION = 7.7\n"), 0o644))
	writeMakefile(t, dir, "noversion", "Makefile", "IMAGE = noversion\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plainfile"), []byte("VERSION = 1\n"), 0o644))

	tests := []struct {
		name string
		dir  string
		img  string
	}{
		{"missing build dir", filepath.Join(dir, "nope"), "org/bwa"},
		{"missing image dir", dir, "org/bwa"},
		{"no version line", dir, "org/noversion"},
		{"image name is a file", dir, "org/plainfile"},
		{"empty image", dir, ""},
		{"trailing slash", dir, "org/"},
		{"current dir segment", dir, "."},
		{"parent dir segment", filepath.Join(dir, "noversion"), "org/.."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewLocal(tt.dir).Resolve(context.Background(), tt.img)
			assert.Equal(t, Absent, res.Status)
			assert.Equal(t, NotAvailable, res.TagOrNA())
			assert.NoError(t, res.Err)
		})
	}
}

func TestShortName(t *testing.T) {
	short, ok := shortName("us.gcr.io/broad-gotc-prod/bwa")
	assert.True(t, ok)
	assert.Equal(t, "bwa", short)

	short, ok = shortName("ubuntu")
	assert.True(t, ok)
	assert.Equal(t, "ubuntu", short)

	for _, image := range []string{"", ".", "..", "org/", "org/.", "org/..", `org/a\b`} {
		_, ok := shortName(image)
		assert.False(t, ok, image)
	}
}
