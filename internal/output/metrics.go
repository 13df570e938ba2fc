// internal/output/metrics.go
package output

import (
	"refseek/internal/engine"
	"refseek/pkg/api"
)

func toAPIMetric(m *engine.PairwiseMetric) *api.MetricV1 {
	if m == nil {
		return nil
	}
	return &api.MetricV1{ANI: m.Similarity, ConservedDNA: m.ConservedFraction}
}

// ToAPIMetrics collects the raw per-query results of a run. Candidates that
// were screened but never aligned are left out.
func ToAPIMetrics(runID string, s engine.Strategy, bidirectional bool, perQuery []*engine.QueryResults) api.MetricsV1 {
	m := api.MetricsV1{
		RunID:         runID,
		Strategy:      s.String(),
		Bidirectional: bidirectional,
		Queries:       make(map[string]map[string]api.CandidateMetricsV1, len(perQuery)),
	}
	for _, q := range perQuery {
		cands := make(map[string]api.CandidateMetricsV1, len(q.Results))
		for id, r := range q.Results {
			cands[id] = api.CandidateMetricsV1{
				MashDistance: q.Distances[id],
				Forward:      toAPIMetric(r.Forward),
				Reverse:      toAPIMetric(r.Reverse),
			}
		}
		m.Queries[q.QueryID] = cands
	}
	return m
}
