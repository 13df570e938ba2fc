// internal/writers/report.go
package writers

import (
	"io"

	jsoniter "github.com/json-iterator/go"

	"refseek/internal/engine"
	"refseek/internal/jsonlutil"
	"refseek/internal/output"
)

func init() {
	RegisterReport(output.FormatText, output.WriteText)
	RegisterReport(output.FormatJSON, func(w io.Writer, list []engine.RankedCandidate, _ bool) error {
		return output.WriteJSON(w, list)
	})
	RegisterReport(output.FormatJSONL, func(w io.Writer, list []engine.RankedCandidate, _ bool) error {
		in, done := StartReportJSONLWriter(w, len(list))
		for _, r := range list {
			in <- r
		}
		close(in)
		return <-done
	})
}

// StartReportJSONLWriter streams each ranked reference as one JSON line (v1).
func StartReportJSONLWriter(out io.Writer, bufSize int) (chan<- engine.RankedCandidate, <-chan error) {
	return jsonlutil.Start[engine.RankedCandidate](out, bufSize,
		func(enc *jsoniter.Encoder, r engine.RankedCandidate) error {
			return enc.Encode(output.ToAPIRow(r))
		},
		IsBrokenPipe,
	)
}

// StartReportWriter spins up a writer goroutine for the final report. Rows
// must be sent in rank order. JSONL rows stream as they arrive; other
// formats are written once the input is closed. A broken pipe is not an
// error.
func StartReportWriter(out io.Writer, format string, header bool, bufSize int) (chan<- engine.RankedCandidate, <-chan error) {
	if format == output.FormatJSONL {
		return StartReportJSONLWriter(out, bufSize)
	}
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan engine.RankedCandidate, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var buf []engine.RankedCandidate
		for r := range in {
			buf = append(buf, r)
		}
		err := WriteReport(format, out, buf, header)
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()

	return in, errCh
}
