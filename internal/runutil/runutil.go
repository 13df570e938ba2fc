// internal/runutil/runutil.go
package runutil

import "runtime"

// EffectiveThreads returns the worker count to use: threads when positive,
// otherwise every CPU.
func EffectiveThreads(threads int) int {
	if threads > 0 {
		return threads
	}
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}

// BatchSize is the number of alignment tasks one query schedules.
func BatchSize(candidates int, bidirectional bool) int {
	if bidirectional {
		return 2 * candidates
	}
	return candidates
}
