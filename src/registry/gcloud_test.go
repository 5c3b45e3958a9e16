package registry

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	versionErr error
	out        string
	err        error
	calls      [][]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if len(args) == 1 && args[0] == "--version" {
		return []byte("Google Cloud SDK 470.0.0\n"), f.versionErr
	}
	return []byte(f.out), f.err
}

func TestGCloud_Resolve(t *testing.T) {
	r := &fakeRunner{out: "\n2.1.0;latest\n"}
	g := NewGCloud("", r)

	res := g.Resolve(context.Background(), "us.gcr.io/broad-dsp-lrma/lr-utils")
	assert.Equal(t, Resolved, res.Status)
	assert.Equal(t, "2.1.0;latest", res.Tag)
	assert.Equal(t, "gcloud", res.Source)

	require.Len(t, r.calls, 2)
	assert.Equal(t, []string{"gcloud", "--version"}, r.calls[0])
	assert.Equal(t, []string{
		"gcloud", "container", "images", "list-tags", "us.gcr.io/broad-dsp-lrma/lr-utils",
		"--format=get(tags)", "--limit=1", "--sort-by=~timestamp.datetime", "--filter=tags:*",
	}, r.calls[1])
}

func TestGCloud_ProbeRunsOnce(t *testing.T) {
	r := &fakeRunner{out: "1.0\n"}
	g := NewGCloud("/opt/gcloud/bin/gcloud", r)

	g.Resolve(context.Background(), "gcr.io/a/b")
	g.Resolve(context.Background(), "gcr.io/a/c")

	probes := 0
	for _, c := range r.calls {
		assert.Equal(t, "/opt/gcloud/bin/gcloud", c[0])
		if strings.Join(c[1:], " ") == "--version" {
			probes++
		}
	}
	assert.Equal(t, 1, probes)
}

func TestGCloud_NotInstalled(t *testing.T) {
	r := &fakeRunner{versionErr: errors.New("executable file not found in $PATH")}
	res := NewGCloud("", r).Resolve(context.Background(), "gcr.io/a/b")

	assert.Equal(t, Absent, res.Status)
	assert.Len(t, r.calls, 1, "list-tags must not run without gcloud")
}

func TestGCloud_CommandFails(t *testing.T) {
	r := &fakeRunner{err: errors.New("exit status 1")}
	res := NewGCloud("", r).Resolve(context.Background(), "gcr.io/a/b")

	assert.Equal(t, Failed, res.Status)
	assert.ErrorContains(t, res.Err, "gcr.io/a/b")
}

func TestGCloud_EmptyOutput(t *testing.T) {
	res := NewGCloud("", &fakeRunner{out: "  \n"}).Resolve(context.Background(), "gcr.io/a/b")
	assert.Equal(t, Absent, res.Status)
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), "dockertags-no-such-binary", "--version")
	assert.Error(t, err)
}
