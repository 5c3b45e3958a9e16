package output

import (
	"io"
	"maps"
	"slices"
	"time"

	"github.com/sofmeright/dockertags/src/scan"
)

// Summary renders the framed run summary.
func Summary(w io.Writer, stats scan.Stats, elapsed time.Duration, useColor bool) {
	sec := NewSection(w, "Images", elapsed, useColor)

	sec.Row("%-16s%6d", "files", stats.Files)
	sec.Row("%-16s%6d", "references", stats.References)
	if stats.Skipped > 0 {
		sec.Row("%-16s%6d  %s", "skipped", stats.Skipped, Dimmed("no tag in token", useColor))
	}
	if stats.ReadErrors > 0 {
		sec.Row("%-16s%6d  %s", "unreadable", stats.ReadErrors, StatusIcon("failed", useColor))
	}

	sec.Separator()
	for _, source := range slices.Sorted(maps.Keys(stats.BySource)) {
		sec.Row("%-16s%6d  %s", source, stats.BySource[source], StatusIcon("success", useColor))
	}
	status := "success"
	if stats.Missing > 0 {
		status = "skipped"
	}
	sec.Row("%-16s%6d  %s", "not available", stats.Missing, StatusIcon(status, useColor))
	sec.Close()
}
