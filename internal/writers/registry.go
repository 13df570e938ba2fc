// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"

	"refseek/internal/engine"
)

// ReportFunc writes a complete, already ranked report.
type ReportFunc func(w io.Writer, list []engine.RankedCandidate, header bool) error

// ReportWriters maps an output format to its handler. Register in init()
// blocks.
var ReportWriters = map[string]ReportFunc{}

// RegisterReport adds or replaces the handler for format.
func RegisterReport(format string, fn ReportFunc) { ReportWriters[format] = fn }

// WriteReport dispatches to the registered handler.
func WriteReport(format string, w io.Writer, list []engine.RankedCandidate, header bool) error {
	fn, ok := ReportWriters[format]
	if !ok {
		return fmt.Errorf("unknown report format %q (no writer registered)", format)
	}
	return fn(w, list, header)
}
