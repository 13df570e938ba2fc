// internal/output/json.go
package output

import (
	"io"

	"refseek/internal/engine"
	"refseek/internal/jsonutil"
	"refseek/pkg/api"
)

// ToAPIRow converts a ranked candidate to the stable wire schema (v1).
func ToAPIRow(r engine.RankedCandidate) api.ReportRowV1 {
	return api.ReportRowV1{
		ID:             r.Reference.ID,
		MashDistance:   r.Distance,
		ANI:            r.Score.Similarity,
		ConservedDNA:   r.Score.ConservedFraction,
		Combined:       r.Score.Combined,
		TaxonomyID:     r.Reference.TaxonomyID,
		AssemblyStatus: r.Reference.AssemblyStatus,
		Organism:       r.Reference.OrganismName,
	}
}

func toAPIRows(list []engine.RankedCandidate) []api.ReportRowV1 {
	out := make([]api.ReportRowV1, 0, len(list))
	for _, r := range list {
		out = append(out, ToAPIRow(r))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 rows (pretty-indented). An
// empty report is written as [].
func WriteJSON(w io.Writer, list []engine.RankedCandidate) error {
	return jsonutil.EncodePretty(w, toAPIRows(list))
}
