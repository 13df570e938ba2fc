package nucmer

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refseek/internal/engine"
	"refseek/internal/fasta"
	"refseek/internal/pipeline"
)

var _ pipeline.PairwiseAligner = Aligner{}

type genomes map[string]string

func (g genomes) GenomePath(id string) (string, error) {
	p, ok := g[id]
	if !ok {
		return "", errors.Wrapf(engine.ErrInputUnavailable, "no genome for %s", id)
	}
	return p, nil
}

// fakeTools installs nucmer and delta-filter scripts. nucmer writes a fixed
// delta for fragments "1" and "2" and records its arguments.
func fakeTools(t *testing.T, nucmerExit int) (nucmer, deltaFilter string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes")
	}
	dir := t.TempDir()
	nucmer = filepath.Join(dir, "nucmer")
	script := `#!/bin/sh
prefix="$3"
echo "$@" > "$prefix.args"
printf '%s %s\nNUCMER\n>r 1 9000 1020\n1 1020 1 1020 0 0 0\n0\n>r 2 9000 1020\n1 1020 1 1020 204 204 0\n0\n' "$4" "$5" > "$prefix.delta"
`
	if nucmerExit != 0 {
		script = "#!/bin/sh\necho 'nucmer: bad input' >&2\nexit 1\n"
	}
	require.NoError(t, os.WriteFile(nucmer, []byte(script), 0o755))
	deltaFilter = filepath.Join(dir, "delta-filter")
	require.NoError(t, os.WriteFile(deltaFilter, []byte("#!/bin/sh\ncat \"$2\"\n"), 0o755))
	return nucmer, deltaFilter
}

func writeGenome(t *testing.T, dir string, n int) string {
	t.Helper()
	p := filepath.Join(dir, "ref.fna")
	require.NoError(t, os.WriteFile(p, []byte(">r\n"+strings.Repeat("A", n)+"\n"), 0o644))
	return p
}

func newTask(t *testing.T, d engine.Direction) (pipeline.Task, genomes) {
	dir := t.TempDir()
	q := &pipeline.Query{
		ID:            "q.fna",
		GenomePath:    filepath.Join(dir, "q.fna"),
		FragmentsPath: filepath.Join(dir, "q.frags.fna"),
		Fragments:     []fasta.Fragment{{ID: 1, Length: 1020}, {ID: 2, Length: 1020}},
		ScratchDir:    dir,
	}
	return pipeline.Task{Query: q, CandidateID: "GCF_1", Direction: d},
		genomes{"GCF_1": writeGenome(t, t.TempDir(), 2040)}
}

func TestAlignForward(t *testing.T) {
	nb, df := fakeTools(t, 0)
	task, g := newTask(t, engine.Forward)
	m, err := Aligner{Nucmer: nb, DeltaFilter: df, Genomes: g}.Align(context.Background(), task)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, m.Similarity, 1e-12)
	assert.InDelta(t, 0.5, m.ConservedFraction, 1e-12)

	args, err := filepath.Glob(filepath.Join(task.Query.ScratchDir, "GCF_1-forward-*", "aln.args"))
	require.NoError(t, err)
	require.Len(t, args, 1)
	b, err := os.ReadFile(args[0])
	require.NoError(t, err)
	fields := strings.Fields(string(b))
	assert.Equal(t, "--threads=1", fields[0])
	assert.Equal(t, g["GCF_1"], fields[3])
	assert.Equal(t, task.Query.FragmentsPath, fields[4])
}

func TestAlignReverseFragmentsReference(t *testing.T) {
	nb, df := fakeTools(t, 0)
	task, g := newTask(t, engine.Reverse)
	task.Query.Fragments = nil
	m, err := Aligner{Nucmer: nb, DeltaFilter: df, Genomes: g}.Align(context.Background(), task)
	require.NoError(t, err)
	// 2040 bp reference -> two 1020 bp fragments
	assert.InDelta(t, 0.9, m.Similarity, 1e-12)
	assert.InDelta(t, 0.5, m.ConservedFraction, 1e-12)

	dirs, err := filepath.Glob(filepath.Join(task.Query.ScratchDir, "GCF_1-reverse-*"))
	require.NoError(t, err)
	require.Len(t, dirs, 1)
	assert.FileExists(t, filepath.Join(dirs[0], "fragments.fna"))
	b, err := os.ReadFile(filepath.Join(dirs[0], "aln.args"))
	require.NoError(t, err)
	assert.Equal(t, task.Query.GenomePath, strings.Fields(string(b))[3])
}

func TestAlignToolFailure(t *testing.T) {
	nb, df := fakeTools(t, 1)
	task, g := newTask(t, engine.Forward)
	_, err := Aligner{Nucmer: nb, DeltaFilter: df, Genomes: g}.Align(context.Background(), task)
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrAlignerFailure))
	assert.Contains(t, err.Error(), "nucmer: bad input")
}

func TestAlignMissingGenome(t *testing.T) {
	nb, df := fakeTools(t, 0)
	task, _ := newTask(t, engine.Forward)
	_, err := Aligner{Nucmer: nb, DeltaFilter: df, Genomes: genomes{}}.Align(context.Background(), task)
	assert.True(t, errors.Is(err, engine.ErrAlignerFailure))
}
