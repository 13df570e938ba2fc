// internal/nucmer/delta.go
package nucmer

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Alignment is one alignment block of a delta file. Coordinates are 1-based
// and inclusive; the query side may run backwards on the reverse strand.
type Alignment struct {
	RefID, QueryID       string
	RefStart, RefEnd     int
	QueryStart, QueryEnd int
	Errors               int // mismatches + indels
}

// Length is the aligned span on the query.
func (a Alignment) Length() int {
	if a.QueryEnd >= a.QueryStart {
		return a.QueryEnd - a.QueryStart + 1
	}
	return a.QueryStart - a.QueryEnd + 1
}

// Identity is the fraction of identical positions over Length.
func (a Alignment) Identity() float64 {
	n := a.Length()
	if n == 0 {
		return 0
	}
	e := min(a.Errors, n)
	return float64(n-e) / float64(n)
}

// ParseDelta reads a nucmer / delta-filter delta file.
func ParseDelta(r io.Reader) ([]Alignment, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64<<10), 1<<20)
	var (
		out        []Alignment
		ref, qry   string
		ln         int
		haveHeader bool
	)
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if ln <= 2 || line == "" {
			// file paths, then program name
			continue
		}
		if line[0] == '>' {
			f := strings.Fields(line[1:])
			if len(f) < 4 {
				return nil, errors.Errorf("delta line %d: bad sequence header", ln)
			}
			ref, qry, haveHeader = f[0], f[1], true
			continue
		}
		f := strings.Fields(line)
		switch len(f) {
		case 1:
			// indel position; 0 terminates the block
			if _, err := strconv.Atoi(f[0]); err != nil {
				return nil, errors.Errorf("delta line %d: bad indel %q", ln, f[0])
			}
		case 7:
			if !haveHeader {
				return nil, errors.Errorf("delta line %d: alignment before sequence header", ln)
			}
			var v [5]int
			for i := 0; i < 5; i++ {
				n, err := strconv.Atoi(f[i])
				if err != nil {
					return nil, errors.Errorf("delta line %d: bad field %q", ln, f[i])
				}
				v[i] = n
			}
			out = append(out, Alignment{
				RefID: ref, QueryID: qry,
				RefStart: v[0], RefEnd: v[1],
				QueryStart: v[2], QueryEnd: v[3],
				Errors: v[4],
			})
		default:
			return nil, errors.Errorf("delta line %d: unexpected %d fields", ln, len(f))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read delta")
	}
	return out, nil
}
