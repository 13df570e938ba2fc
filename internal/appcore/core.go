// Package appcore runs one screening cycle end to end: screen, fragment,
// align, filter, intersect, aggregate, rank and write.
package appcore

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"refseek/internal/catalog"
	"refseek/internal/cmdutil"
	"refseek/internal/config"
	"refseek/internal/engine"
	"refseek/internal/fasta"
	"refseek/internal/output"
	"refseek/internal/pipeline"
	"refseek/internal/runutil"
	"refseek/internal/workspace"
	"refseek/internal/writers"
	"refseek/pkg/api"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitInput     = 2
	ExitRuntime   = 3
	ExitCancelled = 130
)

// DistanceEstimator produces candidate distances for every query in one
// call. dir is scratch space it may write to.
type DistanceEstimator interface {
	Estimate(ctx context.Context, dir string, queries []string) ([]engine.DistanceEstimate, error)
}

// Collaborators are the external pieces one run depends on.
type Collaborators struct {
	Catalog   *catalog.Catalog
	Estimator DistanceEstimator
	Aligner   pipeline.PairwiseAligner
}

// Env carries the diagnostics sinks of a run.
type Env struct {
	Log      *zap.Logger
	Progress io.Writer // progress bars, usually stderr
}

// Report is everything a finished run produced.
type Report struct {
	RunID   string
	Config  config.Config
	Queries []*engine.QueryResults
	Ranked  []engine.RankedCandidate
}

// Metrics returns the intermediate artifact of r.
func (r *Report) Metrics() api.MetricsV1 {
	return output.ToAPIMetrics(r.RunID, r.Config.Strategy, r.Config.Bidirectional, r.Queries)
}

// Execute runs the whole cycle for queries. Queries are processed one after
// the other; alignments of one query run on a pool of cfg threads. The
// scratch workspace is removed before Execute returns unless cfg.KeepTmp.
func Execute(ctx context.Context, cfg config.Config, c Collaborators, queries []string, env Env) (*Report, error) {
	log := env.Log
	if log == nil {
		log = zap.NewNop()
	}
	rep := &Report{RunID: uuid.NewString(), Config: cfg}

	ws, err := workspace.New(cfg.TmpDir, rep.RunID[:8], cfg.KeepTmp)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := ws.Close(); err != nil {
			log.Warn("failed to remove scratch workspace", zap.String("dir", ws.Dir()), zap.Error(err))
		}
	}()
	if cfg.KeepTmp {
		log.Info("keeping scratch workspace", zap.String("dir", ws.Dir()))
	}

	log.Info("screening candidates", zap.Int("queries", len(queries)), zap.Float64("max_distance", cfg.MashCeiling()))
	ests, err := c.Estimator.Estimate(ctx, ws.Dir(), queries)
	if err != nil {
		return nil, err
	}
	byQuery := engine.GroupByQuery(ests)

	sets := make([][]string, 0, len(queries))
	for i, q := range queries {
		res, err := runQuery(ctx, cfg, c, ws, i, q, byQuery[q], env, log)
		if err != nil {
			return nil, err
		}
		kept := engine.FilterQuery(res, cfg.Thresholds())
		log.Info("filtered candidates", zap.String("query", q), zap.Int("aligned", len(res.Results)), zap.Int("kept", len(kept)))
		rep.Queries = append(rep.Queries, res)
		sets = append(sets, kept)
	}

	common := engine.Intersect(sets...)
	log.Info("consensus", zap.Int("common", len(common)))

	rep.Ranked, err = engine.Rank(common, rep.Queries, cfg.Strategy, c.Catalog.Lookup)
	if err != nil {
		return nil, err
	}
	return rep, nil
}

// runQuery screens, fragments and aligns a single query genome.
func runQuery(ctx context.Context, cfg config.Config, c Collaborators, ws *workspace.Workspace, idx int, q string, ests []engine.DistanceEstimate, env Env, log *zap.Logger) (*engine.QueryResults, error) {
	sl := engine.Shortlist(q, ests, cfg.MaxCandidates)
	ids := lo.Filter(sl.IDs, func(id string, _ int) bool {
		if _, ok := c.Catalog.Get(id); ok {
			return true
		}
		log.Warn("candidate missing from catalog, skipped", zap.String("query", q), zap.String("candidate", id))
		return false
	})
	log.Info("screened candidates", zap.String("query", q), zap.Int("estimates", len(ests)), zap.Int("candidates", len(ids)))

	dir, err := ws.Sub(fmt.Sprintf("q%d", idx+1))
	if err != nil {
		return nil, err
	}
	genome, err := fasta.Materialize(q, dir)
	if err != nil {
		return nil, errors.Wrapf(engine.ErrInputUnavailable, "read genome %s: %v", q, err)
	}
	fragsPath := filepath.Join(dir, "fragments.fna")
	frags, err := fasta.BuildFragments(genome, fragsPath)
	if err != nil {
		return nil, errors.Wrapf(engine.ErrInputUnavailable, "fragment genome %s: %v", q, err)
	}
	query := &pipeline.Query{
		ID:            q,
		GenomePath:    genome,
		FragmentsPath: fragsPath,
		Fragments:     frags,
		ScratchDir:    dir,
	}

	pcfg := pipeline.Config{Threads: cfg.EffectiveThreads(), Bidirectional: cfg.Bidirectional}
	n := runutil.BatchSize(len(ids), cfg.Bidirectional)
	log.Info("aligning", zap.String("query", q), zap.Int("fragments", len(frags)), zap.Int("tasks", n), zap.Int("threads", pcfg.Threads))
	bar := cmdutil.NewProgress(env.Progress, cfg.Verbose && !cfg.Quiet, n, filepath.Base(q))
	res, err := pipeline.Run(ctx, pcfg, query, ids, c.Aligner, bar.Add)
	bar.Finish()
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		res.Distances[id] = sl.Distances[id]
	}
	return res, nil
}

// ExitCode maps a run error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCancelled
	case errors.Is(err, engine.ErrInputUnavailable), errors.Is(err, engine.ErrMalformedCatalogEntry):
		return ExitInput
	default:
		return ExitRuntime
	}
}

// Run executes the cycle and writes the report to stdout. Fatal errors are
// logged as a single line and nothing is written to stdout.
func Run(ctx context.Context, stdout io.Writer, cfg config.Config, c Collaborators, queries []string, env Env) int {
	log := env.Log
	if log == nil {
		log = zap.NewNop()
	}
	rep, err := Execute(ctx, cfg, c, queries, env)
	if err != nil {
		if ctx.Err() != nil || ExitCode(err) == ExitCancelled {
			return ExitCancelled
		}
		log.Error(err.Error())
		return ExitCode(err)
	}

	if cfg.MetricsPath != "" {
		if err := writers.WriteMetricsFile(cfg.MetricsPath, rep.Metrics()); err != nil {
			log.Error(err.Error())
			return ExitRuntime
		}
		log.Info("wrote metrics", zap.String("path", cfg.MetricsPath))
	}

	outw := bufio.NewWriter(stdout)
	wf := ReportWriterFactory{Format: cfg.Output, Header: cfg.Header}
	in, done := wf.Start(outw, len(rep.Ranked))
	for _, r := range rep.Ranked {
		in <- r
	}
	close(in)
	if werr := <-done; writers.IsBrokenPipe(werr) {
		return ExitOK
	} else if werr != nil {
		log.Error(werr.Error())
		return ExitRuntime
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return ExitOK
	} else if e != nil {
		log.Error(e.Error())
		return ExitRuntime
	}
	return ExitOK
}
