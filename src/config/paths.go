package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

const outputName = "dockers.in_use.tsv"

// RepoRoot returns the working tree root of the git repository containing
// dir. When dir is not inside a repository, dir itself is returned.
func RepoRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return abs, nil
		}
		return "", fmt.Errorf("opening repository at %s: %w", abs, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no worktree; scan from dir.
		return abs, nil
	}
	return wt.Filesystem.Root(), nil
}

// ResolvePaths fills empty scan paths from the repository layout:
//
//	<root>/wdl                              workflow files
//	<root>/scripts/docker                   per-image build directories
//	<root>/scripts/docker/dockers.in_use.tsv report
//
// Relative configured paths are resolved against root.
func (s *ScanConfig) ResolvePaths(root string) {
	buildDir := filepath.Join(root, "scripts", "docker")

	s.WDLDir = orDefault(root, s.WDLDir, filepath.Join(root, "wdl"))
	s.DockerDir = orDefault(root, s.DockerDir, buildDir)
	s.Output = orDefault(root, s.Output, filepath.Join(buildDir, outputName))
}

func orDefault(root, value, def string) string {
	if value == "" {
		return def
	}
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(root, value)
}
