// internal/jsonutil/json.go
package jsonutil

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

// JSON is the encoding/json compatible codec used for every JSON output.
var JSON = jsoniter.ConfigCompatibleWithStandardLibrary

// EncodePretty writes v as indented JSON to w.
func EncodePretty(w io.Writer, v any) error {
	enc := JSON.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
