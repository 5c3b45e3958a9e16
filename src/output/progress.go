package output

import (
	"fmt"
	"io"
)

// Progress draws a single self-overwriting "Progress: NN.NN%" line.
type Progress struct {
	w       io.Writer
	enabled bool
	drawn   bool
}

// NewProgress returns a progress printer; a disabled one prints nothing.
func NewProgress(w io.Writer, enabled bool) *Progress {
	return &Progress{w: w, enabled: enabled}
}

// Update redraws the line for done of total files.
func (p *Progress) Update(done, total int) {
	if !p.enabled || total <= 0 {
		return
	}
	fmt.Fprintf(p.w, "Progress: %.2f%%\r", float64(done)/float64(total)*100)
	p.drawn = true
}

// Finish moves past the progress line so later output starts on a new line.
func (p *Progress) Finish() {
	if p.drawn {
		fmt.Fprintln(p.w)
		p.drawn = false
	}
}

// Start prints the opening banner.
func Start(w io.Writer) {
	fmt.Fprintln(w, "COLLECTING DOCKERS IN USE...")
}

// Done prints the closing banner pointing at the report.
func Done(w io.Writer, reportPath string) {
	fmt.Fprintf(w, "DONE. PLEASE CHECKOUT TSV FILE: %s\n", reportPath)
}
