package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/sofmeright/dockertags/src/logger"
	"github.com/sofmeright/dockertags/src/registry"
)

// Engine finds image references in workflow files and resolves the latest
// tag for each one, one file and one reference at a time.
type Engine struct {
	RootDir   string   // workflow tree root
	Extension string   // file suffix to scan, e.g. ".wdl"
	Exclude   []string // glob patterns relative to RootDir
	Resolver  registry.Resolver

	// Progress, if set, is called after each file with the number of
	// files finished and the total.
	Progress func(done, total int)
}

// CollectFiles walks the root directory and returns the workflow files in
// walk order. Hidden directories are skipped. Symlinks to regular files are
// included; symlinked directories are not descended into.
func (e *Engine) CollectFiles() ([]FileInfo, error) {
	root, err := filepath.Abs(e.RootDir)
	if err != nil {
		return nil, err
	}
	reportBase := filepath.Dir(root)

	var files []FileInfo
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if d.IsDir() {
			base := filepath.Base(rel)
			if strings.HasPrefix(base, ".") && base != "." {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), e.Extension) || !regularFile(path, d) {
			return nil
		}
		if excluded(e.Exclude, rel) {
			logger.Debug().Str("file", rel).Msg("excluded")
			return nil
		}

		reportRel, err := filepath.Rel(reportBase, path)
		if err != nil {
			return err
		}

		files = append(files, FileInfo{
			Path:       filepath.ToSlash(rel),
			AbsPath:    path,
			ReportPath: "/" + filepath.ToSlash(reportRel),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", e.RootDir, err)
	}
	return files, nil
}

// regularFile reports whether d is a regular file or a symlink to one.
func regularFile(path string, d os.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Run scans every file and returns one FileResult per readable file, in
// input order. Unreadable files are skipped and reported in the returned
// error; the results gathered so far remain valid.
func (e *Engine) Run(ctx context.Context, files []FileInfo) ([]FileResult, Stats, error) {
	stats := Stats{BySource: map[string]int{}}
	var (
		results []FileResult
		errs    *multierror.Error
	)

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return results, stats, err
		}

		content, err := os.ReadFile(f.AbsPath)
		if err != nil {
			logger.Warn().Str("file", f.Path).Err(err).Msg("skipping unreadable file")
			stats.ReadErrors++
			errs = multierror.Append(errs, fmt.Errorf("reading %s: %w", f.Path, err))
		} else {
			res := e.scanContent(ctx, f, string(content), &stats)
			results = append(results, res)
			stats.Files++
		}

		if e.Progress != nil {
			e.Progress(i+1, len(files))
		}
	}

	return results, stats, errs.ErrorOrNil()
}

func (e *Engine) scanContent(ctx context.Context, f FileInfo, content string, stats *Stats) FileResult {
	res := FileResult{File: f}

	for line := range MatchingLines(content) {
		ref, err := ParseLine(line, f.ReportPath)
		switch {
		case errors.Is(err, ErrNoToken):
			continue
		case err != nil:
			logger.Debug().
				Str("file", f.Path).
				Int("line", line.Number).
				Str("text", line.Text).
				Err(err).
				Msg("skipping line")
			stats.Skipped++
			continue
		}

		stats.References++
		tr := e.resolve(ctx, ref)
		if tr.Source == "" {
			stats.Missing++
		} else {
			stats.BySource[tr.Source]++
		}
		res.Resolutions = append(res.Resolutions, tr)
	}

	return res
}

func (e *Engine) resolve(ctx context.Context, ref ImageReference) TagResolution {
	tr := TagResolution{
		ImagePath:  ref.ImagePath,
		UsedTag:    ref.UsedTag,
		LatestTag:  registry.NotAvailable,
		SourceFile: ref.SourceFile,
		SourceLine: ref.SourceLine,
	}
	if e.Resolver == nil {
		return tr
	}

	result := e.Resolver.Resolve(ctx, ref.ImagePath)
	tr.LatestTag = result.TagOrNA()
	switch result.Status {
	case registry.Resolved:
		tr.Source = result.Source
	case registry.Failed:
		logger.Warn().
			Str("image", ref.ImagePath).
			Str("file", ref.SourceFile).
			Int("line", ref.SourceLine).
			Err(result.Err).
			Msg("latest tag not available")
	default:
		logger.Debug().Str("image", ref.ImagePath).Msg("latest tag not found")
	}
	return tr
}
