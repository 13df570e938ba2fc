// internal/pipeline/aligner.go
package pipeline

import (
	"context"

	"refseek/internal/engine"
	"refseek/internal/fasta"
)

// Query is the read-only input shared by every task of one query genome.
type Query struct {
	ID            string // id reported by the distance tool
	GenomePath    string // plain FASTA of the whole genome
	FragmentsPath string // FASTA of the genome's DNA fragments
	Fragments     []fasta.Fragment
	ScratchDir    string // tasks create their own subdirectories here
}

// Task is one (query, candidate, direction) computation.
type Task struct {
	Query       *Query
	CandidateID string
	Direction   engine.Direction
}

// PairwiseAligner is the minimal capability the pipeline needs.
// Any aligner (including fakes in tests) can satisfy this. Implementations
// must be safe for concurrent use.
type PairwiseAligner interface {
	Align(ctx context.Context, t Task) (engine.PairwiseMetric, error)
}

// AlignerFunc adapts a function to PairwiseAligner.
type AlignerFunc func(ctx context.Context, t Task) (engine.PairwiseMetric, error)

func (f AlignerFunc) Align(ctx context.Context, t Task) (engine.PairwiseMetric, error) {
	return f(ctx, t)
}
