// internal/cmdutil/progress.go
package cmdutil

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v2"
)

// Progress counts finished units of work. The zero value is a no-op.
type Progress struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

// NewProgress draws a bar on w when enabled and w is a terminal.
func NewProgress(w io.Writer, enabled bool, total int, desc string) *Progress {
	if !enabled || total <= 0 || !IsTerminal(w) {
		return &Progress{}
	}
	return &Progress{w: w, bar: progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetRenderBlankState(true),
	)}
}

// Add marks one unit done.
func (p *Progress) Add() {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

// Finish completes the bar and moves to a fresh line.
func (p *Progress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
		_, _ = io.WriteString(p.w, "\n")
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
