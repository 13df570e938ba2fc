// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"io"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"refseek/internal/jsonutil"
)

// Reuse a 64 KiB buffered writer across JSONL writers to avoid per-writer mallocs.
// Encoder itself is tiny and tied to an io.Writer, so we (re)create it per goroutine.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Start spins up a JSONL encoder goroutine for values of type T.
//   - encode: fn to encode one value (convert to wire type & enc.Encode)
//   - isBroken: recognizer for broken/closed pipe errors to suppress them
//
// The goroutine keeps draining the input after an encode error so senders
// never block; the first error is reported once the input is closed.
func Start[T any](out io.Writer, bufSize int, encode func(*jsoniter.Encoder, T) error, isBroken func(error) bool) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		enc := jsonutil.JSON.NewEncoder(bw)

		var err error
		for v := range in {
			if err != nil {
				continue
			}
			err = encode(enc, v)
		}
		if err == nil {
			err = bw.Flush()
		}
		if err != nil && isBroken(err) {
			err = nil
		}
		done <- err
	}()

	return in, done
}
