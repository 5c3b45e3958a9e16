package registry

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// Runner executes an external command and returns its stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		return stdout.Bytes(), fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
	}
	return stdout.Bytes(), nil
}

// GCloud resolves the newest tagged image with the gcloud CLI. It is the
// fallback for GCR-style registries when the tag-list endpoint yields nothing.
type GCloud struct {
	bin    string
	runner Runner

	probe     sync.Once
	installed bool
}

// NewGCloud creates a gcloud resolver. An empty bin uses "gcloud" from PATH;
// a nil runner executes real processes.
func NewGCloud(bin string, runner Runner) *GCloud {
	if bin == "" {
		bin = "gcloud"
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &GCloud{bin: bin, runner: runner}
}

func (g *GCloud) Name() string { return "gcloud" }

// Installed reports whether "gcloud --version" succeeds. The probe runs once.
func (g *GCloud) Installed(ctx context.Context) bool {
	g.probe.Do(func() {
		_, err := g.runner.Run(ctx, g.bin, "--version")
		g.installed = err == nil
	})
	return g.installed
}

func (g *GCloud) Resolve(ctx context.Context, image string) Result {
	if !g.Installed(ctx) {
		return absent(g.Name())
	}

	out, err := g.runner.Run(ctx, g.bin,
		"container", "images", "list-tags", image,
		"--format=get(tags)",
		"--limit=1",
		"--sort-by=~timestamp.datetime",
		"--filter=tags:*",
	)
	if err != nil {
		return failed(g.Name(), fmt.Errorf("gcloud: listing tags for %s: %w", image, err))
	}

	output := strings.TrimSpace(string(out))
	if output == "" {
		return absent(g.Name())
	}
	first, _, _ := strings.Cut(output, "\n")
	return resolved(g.Name(), strings.TrimSpace(first))
}
