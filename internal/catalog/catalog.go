// internal/catalog/catalog.go
package catalog

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"refseek/internal/engine"
)

// Database layout.
const (
	MetadataFile = "db.tsv"
	SketchFile   = "db.msh"
)

// Catalog is the read-only reference database: metadata by id plus the
// on-disk location of sketch and genome files.
type Catalog struct {
	Dir     string
	entries map[string]engine.ReferenceCandidate
}

// Load reads <dir>/db.tsv. Lines starting with '#' are comments; data lines
// are tab separated: id, taxonomy id, assembly status, organism name.
func Load(dir string) (*Catalog, error) {
	if err := CheckPath(dir, "database directory"); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, MetadataFile)
	if err := CheckPath(path, "database metadata"); err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(engine.ErrInputUnavailable, "%s: %v", path, err)
	}
	defer fh.Close()

	c := &Catalog{Dir: dir, entries: map[string]engine.ReferenceCandidate{}}
	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 64<<10), 1<<20)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) == "" || line[0] == '#' {
			continue
		}
		f := strings.Split(line, "\t")
		if len(f) < 4 || strings.TrimSpace(f[0]) == "" {
			return nil, errors.Wrapf(engine.ErrMalformedCatalogEntry, "%s:%d want 4 tab-separated fields, got %d", path, ln, len(f))
		}
		id := strings.TrimSpace(f[0])
		c.entries[id] = engine.ReferenceCandidate{
			ID:             id,
			TaxonomyID:     strings.TrimSpace(f[1]),
			AssemblyStatus: strings.TrimSpace(f[2]),
			OrganismName:   strings.TrimSpace(f[3]),
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(engine.ErrMalformedCatalogEntry, "%s: %v", path, err)
	}
	return c, nil
}

// FromEntries builds an in-memory catalog rooted at dir.
func FromEntries(dir string, list []engine.ReferenceCandidate) *Catalog {
	c := &Catalog{Dir: dir, entries: make(map[string]engine.ReferenceCandidate, len(list))}
	for _, e := range list {
		c.entries[e.ID] = e
	}
	return c
}

func (c *Catalog) Len() int { return len(c.entries) }

// Get returns the entry for id.
func (c *Catalog) Get(id string) (engine.ReferenceCandidate, bool) {
	e, ok := c.entries[id]
	return e, ok
}

// Lookup returns the entry for id, or a bare entry carrying only the id.
func (c *Catalog) Lookup(id string) engine.ReferenceCandidate {
	if e, ok := c.entries[id]; ok {
		return e
	}
	return engine.ReferenceCandidate{ID: id}
}

// SketchPath is the distance-tool sketch of every reference.
func (c *Catalog) SketchPath() string { return filepath.Join(c.Dir, SketchFile) }

// GenomePath locates the sequence of reference id: <dir>/<id>.fna, falling
// back to <dir>/<id>.fna.gz.
func (c *Catalog) GenomePath(id string) (string, error) {
	for _, name := range []string{id + ".fna", id + ".fna.gz"} {
		p := filepath.Join(c.Dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", errors.Wrapf(engine.ErrInputUnavailable, "reference genome %s not found in %s", id, c.Dir)
}
