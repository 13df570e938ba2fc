package output

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// TSVHeader is the canonical header row for the text report.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "#ID\tMash Distance\tANI\tCon. DNA\tANIconDNA-coefficient\tTaxonomy ID\tAssembly Status\tOrganism"
