// Package nucmer computes ANI and conserved DNA with MUMmer's nucmer and
// delta-filter.
package nucmer

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"refseek/internal/engine"
	"refseek/internal/fasta"
	"refseek/internal/pipeline"
)

// GenomeLocator finds reference genome files by catalog id.
type GenomeLocator interface {
	GenomePath(id string) (string, error)
}

// Aligner satisfies pipeline.PairwiseAligner. It is stateless and safe for
// concurrent use; every call works in its own scratch subdirectory.
type Aligner struct {
	Nucmer      string // resolved binaries
	DeltaFilter string
	Genomes     GenomeLocator
}

// Align runs one task. Forward aligns the query fragments against the
// reference genome; Reverse fragments the reference and aligns those
// fragments against the whole query genome.
func (a Aligner) Align(ctx context.Context, t pipeline.Task) (engine.PairwiseMetric, error) {
	fail := func(err error) (engine.PairwiseMetric, error) {
		return engine.PairwiseMetric{}, errors.Wrapf(engine.ErrAlignerFailure, "%v", err)
	}

	dir, err := os.MkdirTemp(t.Query.ScratchDir, safeName(t.CandidateID)+"-"+t.Direction.String()+"-")
	if err != nil {
		return fail(err)
	}
	refPath, err := a.Genomes.GenomePath(t.CandidateID)
	if err != nil {
		return fail(err)
	}
	ref, err := fasta.Materialize(refPath, dir)
	if err != nil {
		return fail(err)
	}

	var (
		target, fragsPath string
		frags             []fasta.Fragment
	)
	switch t.Direction {
	case engine.Reverse:
		fragsPath = filepath.Join(dir, "fragments.fna")
		if frags, err = fasta.BuildFragments(ref, fragsPath); err != nil {
			return fail(err)
		}
		target = t.Query.GenomePath
	default:
		target, fragsPath, frags = ref, t.Query.FragmentsPath, t.Query.Fragments
	}

	alns, err := a.run(ctx, dir, target, fragsPath)
	if err != nil {
		return fail(err)
	}
	return Compute(frags, alns), nil
}

// run aligns query against target and returns the filtered alignments.
func (a Aligner) run(ctx context.Context, dir, target, query string) ([]Alignment, error) {
	prefix := filepath.Join(dir, "aln")
	if err := execTool(ctx, dir, nil, a.Nucmer, "--threads=1", "-p", prefix, target, query); err != nil {
		return nil, err
	}

	filtered := prefix + ".filtered.delta"
	fh, err := os.Create(filtered)
	if err != nil {
		return nil, err
	}
	err = execTool(ctx, dir, fh, a.DeltaFilter, "-q", prefix+".delta")
	if cerr := fh.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}

	rd, err := os.Open(filtered)
	if err != nil {
		return nil, err
	}
	defer rd.Close()
	return ParseDelta(rd)
}

func execTool(ctx context.Context, dir string, stdout *os.File, bin string, args ...string) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	if stdout != nil {
		cmd.Stdout = stdout
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if i := strings.IndexByte(msg, '\n'); i >= 0 {
			msg = msg[:i]
		}
		return errors.Errorf("%s %s: %v %s", filepath.Base(bin), strings.Join(args, " "), err, msg)
	}
	return nil
}

// safeName keeps catalog ids usable as directory name prefixes.
func safeName(id string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator || r == '*' {
			return '_'
		}
		return r
	}, id)
}
