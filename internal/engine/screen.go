// internal/engine/screen.go
package engine

import (
	"bufio"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseDistances reads distance-tool output: whitespace separated
// "candidate query distance [p-value shared-hashes]" records, one per line.
// Records are returned in emission order.
func ParseDistances(r io.Reader) ([]DistanceEstimate, error) {
	var out []DistanceEstimate
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64<<10), 4<<20)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 3 {
			return nil, errors.Wrapf(ErrMalformedDistanceOutput, "line %d: want at least 3 fields, got %d", ln, len(f))
		}
		d, err := strconv.ParseFloat(f[2], 64)
		if err != nil || math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, errors.Wrapf(ErrMalformedDistanceOutput, "line %d: bad distance %q", ln, f[2])
		}
		out = append(out, DistanceEstimate{CandidateID: f[0], QueryID: f[1], Distance: d})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read distance output")
	}
	return out, nil
}

// GroupByQuery splits estimates per query, keeping emission order inside
// each group.
func GroupByQuery(list []DistanceEstimate) map[string][]DistanceEstimate {
	out := map[string][]DistanceEstimate{}
	for _, e := range list {
		out[e.QueryID] = append(out[e.QueryID], e)
	}
	return out
}

// CandidateShortlist is the screened candidate list of one query.
type CandidateShortlist struct {
	QueryID   string
	IDs       []string // ascending by distance
	Distances map[string]float64
}

// Shortlist sorts estimates ascending by distance (stable, so ties keep
// emission order) and keeps the first maxCandidates. maxCandidates <= 0
// disables the cap. A candidate listed twice keeps its first record.
func Shortlist(queryID string, list []DistanceEstimate, maxCandidates int) CandidateShortlist {
	seen := make(map[string]struct{}, len(list))
	uniq := make([]DistanceEstimate, 0, len(list))
	for _, e := range list {
		if _, dup := seen[e.CandidateID]; dup {
			continue
		}
		seen[e.CandidateID] = struct{}{}
		uniq = append(uniq, e)
	}
	sort.SliceStable(uniq, func(i, j int) bool { return uniq[i].Distance < uniq[j].Distance })
	if maxCandidates > 0 && len(uniq) > maxCandidates {
		uniq = uniq[:maxCandidates]
	}

	sl := CandidateShortlist{
		QueryID:   queryID,
		IDs:       make([]string, len(uniq)),
		Distances: make(map[string]float64, len(uniq)),
	}
	for i, e := range uniq {
		sl.IDs[i] = e.CandidateID
		sl.Distances[e.CandidateID] = e.Distance
	}
	return sl
}
