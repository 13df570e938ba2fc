// internal/pipeline/pipeline.go
package pipeline

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"refseek/internal/engine"
)

// Config controls the alignment pool.
type Config struct {
	Threads       int  // number of concurrent tasks (>=1)
	Bidirectional bool // also align candidate fragments against the query
}

type outcome struct {
	candidateID string
	direction   engine.Direction
	metric      engine.PairwiseMetric
}

// Tasks expands candidates into the task list of one query: forward for
// every candidate, then reverse when bidirectional.
func Tasks(q *Query, candidates []string, bidirectional bool) []Task {
	tasks := make([]Task, 0, 2*len(candidates))
	for _, id := range candidates {
		tasks = append(tasks, Task{Query: q, CandidateID: id, Direction: engine.Forward})
	}
	if bidirectional {
		for _, id := range candidates {
			tasks = append(tasks, Task{Query: q, CandidateID: id, Direction: engine.Reverse})
		}
	}
	return tasks
}

// Run aligns q against every candidate and returns a fresh accumulator
// holding one CandidateResult per candidate. Tasks run at most cfg.Threads at
// a time; results are merged on the calling goroutine as they complete.
// The first failing task cancels the rest and its error is returned; no
// partial results are returned. done, when non-nil, is called after each
// merged task.
func Run(ctx context.Context, cfg Config, q *Query, candidates []string, al PairwiseAligner, done func()) (*engine.QueryResults, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	tasks := Tasks(q, candidates, cfg.Bidirectional)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)
	results := make(chan outcome, cfg.Threads)
	waitErr := make(chan error, 1)

	// Feed work
	go func() {
		for _, t := range tasks {
			t := t
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				m, err := al.Align(gctx, t)
				if err != nil {
					if errors.Is(err, engine.ErrAlignerFailure) {
						return errors.Wrapf(err, "%s vs %s (%s)", t.Query.ID, t.CandidateID, t.Direction)
					}
					return errors.Wrapf(engine.ErrAlignerFailure, "%s vs %s (%s): %v", t.Query.ID, t.CandidateID, t.Direction, err)
				}
				select {
				case results <- outcome{candidateID: t.CandidateID, direction: t.Direction, metric: m}:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}
		waitErr <- g.Wait()
		close(results)
	}()

	// Collector
	acc := engine.NewQueryResults(q.ID)
	for o := range results {
		acc.Merge(o.candidateID, o.direction, o.metric)
		if done != nil {
			done()
		}
	}
	if err := <-waitErr; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return acc, nil
}
