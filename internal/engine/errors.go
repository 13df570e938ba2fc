// internal/engine/errors.go
package engine

import "github.com/pkg/errors"

// Fatal error classes. Callers wrap these with context and test with errors.Is.
var (
	ErrInputUnavailable        = errors.New("input unavailable")
	ErrMalformedDistanceOutput = errors.New("malformed distance output")
	ErrMalformedCatalogEntry   = errors.New("malformed catalog entry")
	ErrAlignerFailure          = errors.New("aligner failure")
	ErrInvalidMetricValue      = errors.New("invalid metric value")
)
