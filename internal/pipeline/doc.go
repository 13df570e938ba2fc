// Package pipeline runs the pairwise similarity computations of one query on
// a bounded worker pool and merges the results into a per-query accumulator.
//
// The only contract to implement is PairwiseAligner (Align).
// This keeps the pipeline swappable and testable.
package pipeline
