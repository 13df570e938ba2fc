// Package mash runs the Mash distance tool against the catalog sketch and
// turns its output into distance estimates.
package mash

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"refseek/internal/engine"
)

// OutputFile is the raw tool output kept inside the scratch directory.
const OutputFile = "mash.out"

// Estimator satisfies appcore.DistanceEstimator.
type Estimator struct {
	Binary  string  // resolved mash executable
	Sketch  string  // <db>/db.msh
	Ceiling float64 // maximum reported distance
	Threads int
}

// Args returns the command line (without the binary) for queries.
func (e Estimator) Args(queries []string) []string {
	args := []string{
		"dist",
		"-d", strconv.FormatFloat(e.Ceiling, 'g', -1, 64),
		"-p", strconv.Itoa(max(e.Threads, 1)),
		e.Sketch,
	}
	return append(args, queries...)
}

// Estimate runs mash in dir, stores its output in dir/mash.out and parses it.
// Query ids in the result are the paths as passed in queries.
func (e Estimator) Estimate(ctx context.Context, dir string, queries []string) ([]engine.DistanceEstimate, error) {
	outPath := filepath.Join(dir, OutputFile)
	fh, err := os.Create(outPath)
	if err != nil {
		return nil, errors.Wrap(err, "create mash output")
	}

	args := e.Args(queries)
	cmd := exec.CommandContext(ctx, e.Binary, args...)
	cmd.Dir = dir
	cmd.Stdout = fh
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	runErr := cmd.Run()
	if cerr := fh.Close(); runErr == nil {
		runErr = cerr
	}
	if runErr != nil {
		return nil, errors.Errorf("failed to execute mash: %v; cmd=%s %s; %s",
			runErr, e.Binary, strings.Join(args, " "), firstLine(stderr.String()))
	}

	rd, err := os.Open(outPath)
	if err != nil {
		return nil, errors.Wrap(err, "open mash output")
	}
	defer rd.Close()
	list, err := engine.ParseDistances(rd)
	return list, errors.Wrap(err, "mash output")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
