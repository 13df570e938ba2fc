// internal/engine/consensus.go
package engine

import (
	"sort"

	"github.com/samber/lo"
)

// Intersect returns the ids present in every set, sorted. With a single set
// it is that set (deduplicated). No sets, or any empty set, yields an empty
// result.
func Intersect(sets ...[]string) []string {
	if len(sets) == 0 {
		return []string{}
	}
	common := lo.Uniq(sets[0])
	for _, s := range sets[1:] {
		if len(common) == 0 {
			break
		}
		common = lo.Uniq(lo.Intersect(common, s))
	}
	out := append([]string{}, common...)
	sort.Strings(out)
	return out
}
