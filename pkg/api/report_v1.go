// pkg/api/report_v1.go
package api

// ReportRowV1 is the stable JSON/JSONL schema for one ranked reference.
// Fractions are in [0,1]; the text report prints them as percentages.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ReportRowV1 struct {
	ID             string  `json:"id"`
	MashDistance   float64 `json:"mash_distance"`
	ANI            float64 `json:"ani"`
	ConservedDNA   float64 `json:"conserved_dna"`
	Combined       float64 `json:"ani_con_dna_coefficient"`
	TaxonomyID     string  `json:"taxonomy_id"`
	AssemblyStatus string  `json:"assembly_status"`
	Organism       string  `json:"organism"`
}

// MetricsV1 is the intermediate per-query, per-candidate metrics artifact.
type MetricsV1 struct {
	RunID         string                                   `yaml:"run_id" json:"run_id"`
	Strategy      string                                   `yaml:"strategy" json:"strategy"`
	Bidirectional bool                                     `yaml:"bidirectional" json:"bidirectional"`
	Queries       map[string]map[string]CandidateMetricsV1 `yaml:"queries" json:"queries"`
}

// CandidateMetricsV1 holds the raw metrics of one query/candidate pair.
type CandidateMetricsV1 struct {
	MashDistance float64   `yaml:"mash_distance" json:"mash_distance"`
	Forward      *MetricV1 `yaml:"forward,omitempty" json:"forward,omitempty"`
	Reverse      *MetricV1 `yaml:"reverse,omitempty" json:"reverse,omitempty"`
}

// MetricV1 is one directional alignment result.
type MetricV1 struct {
	ANI          float64 `yaml:"ani" json:"ani"`
	ConservedDNA float64 `yaml:"conserved_dna" json:"conserved_dna"`
}
