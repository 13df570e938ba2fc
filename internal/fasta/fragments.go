// internal/fasta/fragments.go
package fasta

import (
	"bufio"
	"os"
	"strconv"
)

// Fragment sizes used for ANI estimation.
const (
	FragmentSize    = 1020
	MinFragmentSize = 100
)

// Fragment describes one written DNA fragment. IDs start at 1 and are
// unique within one fragments file.
type Fragment struct {
	ID     int
	Length int
}

// BuildFragments splits every record of genomePath into FragmentSize-bp
// pieces written to outPath. A record tail is only cut when at least
// MinFragmentSize bp would remain, so the last piece of a record is between
// MinFragmentSize and FragmentSize+MinFragmentSize bp (or the whole record
// when it is shorter).
func BuildFragments(genomePath, outPath string) ([]Fragment, error) {
	fh, err := os.Create(outPath)
	if err != nil {
		return nil, err
	}
	w := bufio.NewWriterSize(fh, 1<<16)

	var frags []Fragment
	emit := func(seq []byte) error {
		f := Fragment{ID: len(frags) + 1, Length: len(seq)}
		frags = append(frags, f)
		if _, err := w.WriteString(">" + strconv.Itoa(f.ID) + "\n"); err != nil {
			return err
		}
		if _, err := w.Write(seq); err != nil {
			return err
		}
		return w.WriteByte('\n')
	}

	err = ForEachRecord(genomePath, func(rec Record) error {
		seq := rec.Seq
		for len(seq) > FragmentSize+MinFragmentSize {
			if err := emit(seq[:FragmentSize]); err != nil {
				return err
			}
			seq = seq[FragmentSize:]
		}
		return emit(seq)
	})
	if err != nil {
		fh.Close()
		return nil, err
	}
	if err := w.Flush(); err != nil {
		fh.Close()
		return nil, err
	}
	return frags, fh.Close()
}
