// internal/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNotFASTA is returned when the first data line is not a '>' header.
var ErrNotFASTA = errors.New("not in FASTA format")

// Record is one FASTA entry with an upper-cased sequence.
type Record struct {
	ID  string
	Seq []byte
}

// ForEachRecord calls fn for every record of path in file order. Gzip input
// is detected by the ".gz" suffix. fn may keep rec.Seq.
func ForEachRecord(path string, fn func(rec Record) error) error {
	rc, err := openReader(path)
	if err != nil {
		return err
	}
	defer rc.Close()

	r := bufio.NewReaderSize(rc, 1<<16)
	var (
		id  string
		buf []byte
		ln  int
	)
	flush := func() error {
		if id == "" {
			return nil
		}
		return fn(Record{ID: id, Seq: buf})
	}
	for {
		line, err := r.ReadBytes('\n')
		eof := err == io.EOF
		if err != nil && !eof {
			return err
		}
		ln++
		line = bytes.TrimRight(line, "\r\n")
		switch {
		case len(line) == 0:
		case line[0] == '>':
			if err := flush(); err != nil {
				return err
			}
			f := strings.Fields(string(line[1:]))
			if len(f) == 0 {
				return fmt.Errorf("%s:%d empty FASTA header", path, ln)
			}
			id = f[0]
			buf = nil
		default:
			if id == "" {
				return fmt.Errorf("%s:%d %w", path, ln, ErrNotFASTA)
			}
			buf = append(buf, bytes.ToUpper(line)...)
		}
		if eof {
			break
		}
	}
	if id == "" {
		return fmt.Errorf("%s: %w", path, ErrNotFASTA)
	}
	return flush()
}

/* ---------------- small helpers ---------------- */

// multiReadCloser closes every closer in order; the first error wins.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func openReader(path string) (io.ReadCloser, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}

// Materialize returns a plain-text path for src: src itself, or a
// decompressed copy inside dir when src is gzip compressed. External
// aligners cannot read gzip input.
func Materialize(src, dir string) (string, error) {
	if !strings.HasSuffix(src, ".gz") {
		return src, nil
	}
	rc, err := openReader(src)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	out, err := os.CreateTemp(dir, strings.TrimSuffix(baseName(src), ".gz")+"-*.fna")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return "", err
	}
	return out.Name(), out.Close()
}

func baseName(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}
