package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/sofmeright/dockertags/src/scan"
)

// ReportHeader is the first line of every report.
const ReportHeader = "DOCKER_NAME\tUSED_TAG\tLATEST_TAG\tFILE_LINE\tWDL_PATH"

// Row formats one resolution as a tab-separated report line.
func Row(r scan.TagResolution) string {
	return strings.Join([]string{
		r.ImagePath,
		r.UsedTag,
		r.LatestTag,
		strconv.Itoa(r.SourceLine),
		r.SourceFile,
	}, "\t")
}

// ReportRows returns the report body in output order. Rows are sorted
// within each file; file groups are then ordered by comparing their sorted
// rows element by element, so a group that is a prefix of another comes
// first. Files without rows contribute nothing.
func ReportRows(results []scan.FileResult) []string {
	groups := make([][]string, 0, len(results))
	for _, res := range results {
		if len(res.Resolutions) == 0 {
			continue
		}
		rows := make([]string, len(res.Resolutions))
		for i, r := range res.Resolutions {
			rows[i] = Row(r)
		}
		slices.Sort(rows)
		groups = append(groups, rows)
	}

	slices.SortStableFunc(groups, func(a, b []string) int {
		return slices.Compare(a, b)
	})

	return slices.Concat(groups...)
}

// WriteReport writes the header and all rows to w.
func WriteReport(w io.Writer, results []scan.FileResult) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, ReportHeader); err != nil {
		return err
	}
	for _, row := range ReportRows(results) {
		if _, err := fmt.Fprintln(bw, row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteReportFile writes the report to path, creating parent directories.
func WriteReportFile(path string, results []scan.FileResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := WriteReport(f, results); err != nil {
		f.Close()
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return f.Close()
}

// RemoveReport deletes a report left by a previous run. A missing file is
// not an error.
func RemoveReport(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing previous report: %w", err)
	}
	return nil
}
