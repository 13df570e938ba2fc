// internal/engine/rank.go
package engine

import (
	"sort"

	"github.com/pkg/errors"
)

// LessRanked orders by combined score descending, then id ascending.
func LessRanked(a, b RankedCandidate) bool {
	if a.Score.Combined != b.Score.Combined {
		return a.Score.Combined > b.Score.Combined
	}
	return a.Reference.ID < b.Reference.ID
}

func SortRanked(list []RankedCandidate) {
	sort.Slice(list, func(i, j int) bool { return LessRanked(list[i], list[j]) })
}

// Rank aggregates every common candidate over all queries and sorts the
// result. lookup supplies catalog metadata; the representative distance is
// taken from the first query.
func Rank(common []string, perQuery []*QueryResults, s Strategy, lookup func(id string) ReferenceCandidate) ([]RankedCandidate, error) {
	out := make([]RankedCandidate, 0, len(common))
	for _, id := range common {
		results := make([]CandidateResult, 0, len(perQuery))
		for _, q := range perQuery {
			r, ok := q.Results[id]
			if !ok {
				return nil, errors.Errorf("candidate %s missing from results of %s", id, q.QueryID)
			}
			results = append(results, r)
		}
		score, err := Aggregate(results, s)
		if err != nil {
			return nil, errors.Wrapf(err, "candidate %s", id)
		}
		rc := RankedCandidate{Reference: lookup(id), Score: score}
		rc.Reference.ID = id
		if len(perQuery) > 0 {
			rc.Distance = perQuery[0].Distances[id]
		}
		out = append(out, rc)
	}
	SortRanked(out)
	return out, nil
}
