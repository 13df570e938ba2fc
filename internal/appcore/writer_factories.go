package appcore

import (
	"io"

	"refseek/internal/engine"
	"refseek/internal/writers"
)

// ReportWriterFactory starts the report writer for one output format.
type ReportWriterFactory struct {
	Format string
	Header bool
}

func (w ReportWriterFactory) Start(out io.Writer, bufSize int) (chan<- engine.RankedCandidate, <-chan error) {
	return writers.StartReportWriter(out, w.Format, w.Header, bufSize)
}
