// Package tools resolves the external binaries the run depends on. A share/
// directory next to the executable (bundled binaries) takes precedence over
// PATH; the process environment is never modified.
package tools

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
)

// Binary names.
const (
	Mash        = "mash"
	Nucmer      = "nucmer"
	DeltaFilter = "delta-filter"
)

// Required lists every binary a run needs.
var Required = []string{Mash, Nucmer, DeltaFilter}

// Resolver finds binaries in ShareDir first, then on PATH.
type Resolver struct {
	ShareDir string
}

// Default returns a Resolver for <dir of executable>/../share.
func Default() Resolver {
	exe, err := os.Executable()
	if err != nil {
		return Resolver{}
	}
	return Resolver{ShareDir: filepath.Join(filepath.Dir(filepath.Dir(exe)), "share")}
}

// Resolve returns the absolute path of name.
func (r Resolver) Resolve(name string) (string, error) {
	if r.ShareDir != "" {
		p := filepath.Join(r.ShareDir, name)
		if st, err := os.Stat(p); err == nil && !st.IsDir() && st.Mode()&0o111 != 0 {
			return p, nil
		}
	}
	p, err := exec.LookPath(name)
	if err != nil {
		return "", errors.Errorf("'%s' was not found", name)
	}
	return p, nil
}

// ResolveAll resolves every name, failing on the first missing one.
func (r Resolver) ResolveAll(names ...string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	for _, n := range names {
		p, err := r.Resolve(n)
		if err != nil {
			return nil, err
		}
		out[n] = p
	}
	return out, nil
}

// CheckBinaries resolves every Required binary.
func CheckBinaries(r Resolver) (map[string]string, error) {
	return r.ResolveAll(Required...)
}
