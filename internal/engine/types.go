// internal/engine/types.go
package engine

// ReferenceCandidate is one catalog entry. Loaded once, never mutated.
type ReferenceCandidate struct {
	ID             string
	TaxonomyID     string
	AssemblyStatus string
	OrganismName   string
}

// DistanceEstimate is one record of the distance tool.
type DistanceEstimate struct {
	CandidateID string
	QueryID     string
	Distance    float64
}

// Direction of a pairwise computation.
type Direction int

const (
	Forward Direction = iota // query fragments -> reference
	Reverse                  // reference fragments -> query
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// PairwiseMetric is what the aligner reports for one (query, candidate, direction).
type PairwiseMetric struct {
	Similarity        float64
	ConservedFraction float64
}

// CandidateResult holds the metrics of one candidate for one query.
// Reverse is only set in bidirectional mode.
type CandidateResult struct {
	Forward *PairwiseMetric
	Reverse *PairwiseMetric
}

// Set stores m in the slot for d. Merging is order-independent.
func (r *CandidateResult) Set(d Direction, m PairwiseMetric) {
	if d == Reverse {
		r.Reverse = &m
		return
	}
	r.Forward = &m
}

// Samples returns the available metrics, forward first.
func (r CandidateResult) Samples() []PairwiseMetric {
	out := make([]PairwiseMetric, 0, 2)
	if r.Forward != nil {
		out = append(out, *r.Forward)
	}
	if r.Reverse != nil {
		out = append(out, *r.Reverse)
	}
	return out
}

// QueryResults accumulates everything computed for one query genome during
// one screen/align cycle. It is owned by that cycle and handed to the
// aggregator afterwards; it is never reused for another query.
type QueryResults struct {
	QueryID   string
	Distances map[string]float64
	Results   map[string]CandidateResult
}

func NewQueryResults(queryID string) *QueryResults {
	return &QueryResults{
		QueryID:   queryID,
		Distances: map[string]float64{},
		Results:   map[string]CandidateResult{},
	}
}

// Merge records m for (candidateID, d).
func (q *QueryResults) Merge(candidateID string, d Direction, m PairwiseMetric) {
	r := q.Results[candidateID]
	r.Set(d, m)
	q.Results[candidateID] = r
}

// AggregatedScore is the cohort-level score of one common candidate.
type AggregatedScore struct {
	Similarity        float64
	ConservedFraction float64
	Combined          float64
}

// RankedCandidate is one row of the final report.
type RankedCandidate struct {
	Reference ReferenceCandidate
	Distance  float64 // representative distance (first query)
	Score     AggregatedScore
}
