// internal/output/text.go
package output

import (
	"bufio"
	"io"

	"refseek/internal/engine"
)

// WriteText prints the tab-separated report in the given order.
func WriteText(w io.Writer, list []engine.RankedCandidate, header bool) error {
	bw := bufio.NewWriter(w)
	if header {
		if _, err := bw.WriteString(TSVHeader + "\n"); err != nil {
			return err
		}
	}
	for _, r := range list {
		if _, err := bw.WriteString(FormatRowTSV(r) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
