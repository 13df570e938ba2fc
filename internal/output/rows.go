// internal/output/rows.go
package output

import (
	"fmt"

	"refseek/internal/engine"
)

// FormatRowTSV returns one report row (no trailing newline). Similarity
// columns are percentages with two decimals.
func FormatRowTSV(r engine.RankedCandidate) string {
	return fmt.Sprintf("%s\t%1.5f\t%2.2f\t%2.2f\t%2.2f\t%s\t%s\t%s",
		r.Reference.ID, r.Distance,
		r.Score.Similarity*100, r.Score.ConservedFraction*100, r.Score.Combined*100,
		r.Reference.TaxonomyID, r.Reference.AssemblyStatus, r.Reference.OrganismName,
	)
}
