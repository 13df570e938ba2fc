package integration

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakeMash prints $FAKE_MASH_OUT once the sketch ($6) and every query are
// readable from its working directory.
const fakeMash = `#!/bin/sh
shift 5
for f in "$@"; do
  [ -r "$f" ] || { echo "Could not open $f" >&2; exit 1; }
done
cat "$FAKE_MASH_OUT"
`

// fakeNucmer writes one full-length alignment per query record. References
// named B align at about 92% identity, C makes the tool fail and $FAKE_NUCMER_SLEEP
// stalls it.
const fakeNucmer = `#!/bin/sh
prefix="$3"; ref="$4"; qry="$5"
if [ -n "$FAKE_NUCMER_SLEEP" ]; then exec sleep "$FAKE_NUCMER_SLEEP"; fi
for f in "$ref" "$qry"; do
  [ -r "$f" ] || { echo "ERROR: could not open $f" >&2; exit 1; }
done
case "$ref $qry" in *C.fna*|*C-reverse*) echo "ERROR: could not parse $ref" >&2; exit 1;; esac
rate=0
case "$ref $qry" in *B.fna*|*B-reverse*) rate=8;; esac
{
  echo "$ref $qry"
  echo "NUCMER"
  awk -v rate="$rate" '
    function emit() { e = int(len * rate / 100); print ">r " id " 100000 " len; print "1 " len " 1 " len " " e " " e " 0"; print "0" }
    /^>/ { if (id != "") emit(); id = substr($1, 2); len = 0; next }
    { len += length($0) }
    END { if (id != "") emit() }
  ' "$qry"
} > "$prefix.delta"
`

const fakeDeltaFilter = `#!/bin/sh
cat "$2"
`

type fixture struct {
	bin     string
	db      string
	genomes string
}

func write(t *testing.T, fn, data string, mode os.FileMode) string {
	t.Helper()
	if err := os.WriteFile(fn, []byte(data), mode); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func genomeText(seed string, n int) string {
	return ">" + seed + "\n" + strings.Repeat("ACGT", n/4) + "\n"
}

// newFixture installs the fake tools on PATH and builds a database with
// references A, B and C.
func newFixture(t *testing.T, skip ...string) fixture {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes")
	}
	bin := t.TempDir()
	tools := map[string]string{"mash": fakeMash, "nucmer": fakeNucmer, "delta-filter": fakeDeltaFilter}
	for _, s := range skip {
		delete(tools, s)
	}
	for name, body := range tools {
		write(t, filepath.Join(bin, name), body, 0o755)
	}
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))

	f := fixture{bin: bin, db: t.TempDir(), genomes: t.TempDir()}
	write(t, filepath.Join(f.db, "db.tsv"),
		"#id\ttax\tstatus\torganism\n"+
			"A\t562\tcomplete\tEscherichia coli A\n"+
			"B\t562\tcontig\tEscherichia coli B\n"+
			"C\t573\tcomplete\tKlebsiella C\n", 0o644)
	write(t, filepath.Join(f.db, "db.msh"), "sketch", 0o644)
	for _, id := range []string{"A", "B", "C"} {
		write(t, filepath.Join(f.db, id+".fna"), genomeText(id, 2400), 0o644)
	}
	return f
}

func (f fixture) genome(t *testing.T, name string) string {
	t.Helper()
	return write(t, filepath.Join(f.genomes, name), genomeText(name, 3000), 0o644)
}

// mashOut sets the fake mash output: one "ref query dist" triple per entry.
func mashOut(t *testing.T, rows ...[3]string) {
	t.Helper()
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(r[0] + "\t" + r[1] + "\t" + r[2] + "\t0\t900/1000\n")
	}
	p := write(t, filepath.Join(t.TempDir(), "mash.txt"), b.String(), 0o644)
	t.Setenv("FAKE_MASH_OUT", p)
}
