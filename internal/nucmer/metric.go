// internal/nucmer/metric.go
package nucmer

import (
	"strconv"

	"refseek/internal/engine"
	"refseek/internal/fasta"
)

// Fragment match criteria.
const (
	MinAlignedFraction   = 0.35 // aligned span / fragment length, for ANI
	MaxNonIdentity       = 0.30 // errors / aligned span, for ANI
	MinConservedIdentity = 0.90 // identity for a fragment to count as conserved
)

// best keeps the longest alignment per fragment; ties go to fewer errors.
func best(alns []Alignment) map[string]Alignment {
	m := make(map[string]Alignment, len(alns))
	for _, a := range alns {
		cur, ok := m[a.QueryID]
		if !ok || a.Length() > cur.Length() || (a.Length() == cur.Length() && a.Errors < cur.Errors) {
			m[a.QueryID] = a
		}
	}
	return m
}

// Compute derives ANI and conserved DNA for a set of fragments from their
// alignments. ANI is the mean identity of well aligned fragments; conserved
// DNA is the share of fragment bases aligned above MinConservedIdentity.
func Compute(frags []fasta.Fragment, alns []Alignment) engine.PairwiseMetric {
	matches := best(alns)
	var (
		total, conserved int
		idSum            float64
		idN              int
	)
	for _, f := range frags {
		total += f.Length
		a, ok := matches[strconv.Itoa(f.ID)]
		if !ok || f.Length == 0 {
			continue
		}
		span := min(a.Length(), f.Length)
		if float64(span)/float64(f.Length) > MinAlignedFraction &&
			float64(a.Errors)/float64(a.Length()) < MaxNonIdentity {
			idSum += a.Identity()
			idN++
		}
		if a.Identity() > MinConservedIdentity {
			conserved += span
		}
	}
	var m engine.PairwiseMetric
	if idN > 0 {
		m.Similarity = idSum / float64(idN)
	}
	if total > 0 {
		m.ConservedFraction = float64(conserved) / float64(total)
	}
	return m
}
