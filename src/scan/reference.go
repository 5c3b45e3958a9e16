package scan

// FileInfo identifies one workflow file.
type FileInfo struct {
	Path       string // relative path from the WDL root
	AbsPath    string // absolute path on disk
	ReportPath string // path written to the report, e.g. "/wdl/tasks/align.wdl"
}

// ImageReference is a container image pinned on one line of a workflow file.
type ImageReference struct {
	ImagePath  string // registry/repository path without the tag
	UsedTag    string
	SourceFile string // FileInfo.ReportPath of the declaring file
	SourceLine int
}

// TagResolution pairs a reference with the latest tag found for it.
// LatestTag is registry.NotAvailable when no resolver produced a tag.
type TagResolution struct {
	ImagePath  string
	UsedTag    string
	LatestTag  string
	SourceFile string
	SourceLine int
	Source     string // resolver that produced LatestTag; empty when not available
}

// FileResult holds the resolutions for one workflow file, in line order.
type FileResult struct {
	File        FileInfo
	Resolutions []TagResolution
}

// Stats summarises a scan run.
type Stats struct {
	Files      int
	References int
	Skipped    int            // lines with a quoted token that had no tag
	BySource   map[string]int // resolved tags per resolver name
	Missing    int            // references reported as not available
	ReadErrors int
}
