// Package engine contains the reference-selection core: screening of distance
// estimates, per-query threshold filtering, cohort consensus, score
// aggregation and ranking. It never imports app, writers, cli, or pipeline;
// keep it domain-only.
//
// External outputs must not depend on the internal shape here; use pkg/api
// for stable wire types (JSON/JSONL/YAML v1).
package engine
