// internal/engine/filter.go
package engine

import (
	"sort"

	"github.com/samber/lo"
)

// Thresholds decides whether a candidate is close enough to one query.
type Thresholds struct {
	ANI           float64
	ConservedDNA  float64
	Unfiltered    bool
	Bidirectional bool
}

func (t Thresholds) metricPasses(m *PairwiseMetric) bool {
	return m != nil && m.Similarity >= t.ANI && m.ConservedFraction >= t.ConservedDNA
}

// Passes reports whether r satisfies the thresholds. In bidirectional mode
// both directions must pass on their own.
func (t Thresholds) Passes(r CandidateResult) bool {
	if t.Unfiltered {
		return true
	}
	if !t.metricPasses(r.Forward) {
		return false
	}
	if t.Bidirectional {
		return t.metricPasses(r.Reverse)
	}
	return true
}

// FilterQuery returns the ids of q's candidates that pass t, sorted.
func FilterQuery(q *QueryResults, t Thresholds) []string {
	ids := lo.Filter(lo.Keys(q.Results), func(id string, _ int) bool {
		return t.Passes(q.Results[id])
	})
	sort.Strings(ids)
	return ids
}
