package output

import (
	"fmt"
	"io"
	"os"
	"time"
)

// IsGitLabCI reports whether the process runs in a GitLab CI job.
func IsGitLabCI() bool {
	return os.Getenv("GITLAB_CI") == "true"
}

// FoldSection opens a collapsible GitLab job-log section and returns the
// function that closes it. Outside GitLab CI nothing is written.
func FoldSection(w io.Writer, id, name string, collapsed bool) (end func()) {
	if !IsGitLabCI() {
		return func() {}
	}

	opts := ""
	if collapsed {
		opts = "[collapsed=true]"
	}
	fmt.Fprintf(w, "\033[0Ksection_start:%d:%s%s\r\033[0K%s\n", time.Now().Unix(), id, opts, name)
	return func() {
		fmt.Fprintf(w, "\033[0Ksection_end:%d:%s\r\033[0K\n", time.Now().Unix(), id)
	}
}
