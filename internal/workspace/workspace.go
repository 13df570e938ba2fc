// Package workspace owns the scratch directory of one run: fragment files,
// decompressed genomes and tool outputs. Close removes it on every exit path.
package workspace

import (
	"os"

	"github.com/pkg/errors"
)

type Workspace struct {
	dir  string
	keep bool
}

// New creates a fresh directory under parent (the system temp dir when
// empty). With keep set, Close leaves it in place for inspection.
func New(parent, runID string, keep bool) (*Workspace, error) {
	dir, err := os.MkdirTemp(parent, "refseek-"+runID+"-")
	if err != nil {
		return nil, errors.Wrap(err, "create scratch workspace")
	}
	return &Workspace{dir: dir, keep: keep}, nil
}

func (w *Workspace) Dir() string { return w.dir }

// Sub creates a unique subdirectory for one task.
func (w *Workspace) Sub(prefix string) (string, error) {
	d, err := os.MkdirTemp(w.dir, prefix+"-")
	return d, errors.Wrap(err, "create task directory")
}

// Close removes the workspace unless it was created with keep. Safe to call
// more than once.
func (w *Workspace) Close() error {
	if w == nil || w.keep || w.dir == "" {
		return nil
	}
	err := os.RemoveAll(w.dir)
	w.dir = ""
	return err
}
