// internal/writers/metrics.go
package writers

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"refseek/pkg/api"
)

// WriteMetricsYAML writes the per-query metrics artifact. Map keys come out
// sorted, so equal runs produce identical files.
func WriteMetricsYAML(w io.Writer, m api.MetricsV1) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return errors.Wrap(err, "encode metrics")
	}
	return enc.Close()
}

// WriteMetricsFile writes the artifact to path, replacing any existing file.
func WriteMetricsFile(path string, m api.MetricsV1) error {
	fh, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create metrics file")
	}
	bw := bufio.NewWriter(fh)
	if err := WriteMetricsYAML(bw, m); err != nil {
		fh.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		fh.Close()
		return errors.Wrap(err, "write metrics file")
	}
	return fh.Close()
}
