// Package stability quantifies how stable a learned network structure is
// under resampling: a fixed fraction of rows is drawn without replacement,
// structure is relearned on the draw, and per-edge prevalence is
// aggregated over all iterations.
//
// Reproducibility invariant: the same inputs and run seed produce a
// byte-identical prevalence table and score log, independent of the
// worker count, because each iteration's random stream is derived from
// (run seed, iteration index) and edge counting is commutative.
//
// Failure policy: an engine failure on any iteration aborts the whole
// run. A prevalence table with silently missing iterations would not be
// reproducible, so partial results are never returned.
package stability

import (
	"context"
	"errors"
	"fmt"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/dbnstab/blacklist"
	"github.com/katalvlaran/dbnstab/core"
	"github.com/katalvlaran/dbnstab/dataset"
	"github.com/katalvlaran/dbnstab/learn"
	"github.com/katalvlaran/dbnstab/rng"
	"github.com/katalvlaran/dbnstab/search"
	"github.com/katalvlaran/dbnstab/seedgraph"
	"github.com/katalvlaran/dbnstab/variables"
)

// ResampleFraction is the share of rows drawn (without replacement) per
// iteration. Fixed by the statistical design; change it only as a
// deliberate redesign of the resampling scheme.
const ResampleFraction = 0.6

// Sentinel errors for run configuration.
var (
	// ErrNilLearner indicates NewAnalyzer was called without a learner.
	ErrNilLearner = errors.New("stability: nil learner")

	// ErrBadIterations indicates Iterations < 1.
	ErrBadIterations = errors.New("stability: iterations must be at least 1")

	// ErrEmptyData indicates a nil or zero-row dataset.
	ErrEmptyData = errors.New("stability: empty dataset")
)

// Config describes one stability-analysis run for one configuration.
type Config struct {
	// Data is the full lagged dataset.
	Data *dataset.Dataset

	// NumLags is the number of lag slices in Data.
	NumLags int

	// IDColumns are identifier columns excluded from modeling (e.g. the
	// game id the lag expansion grouped by).
	IDColumns []string

	// Algorithm, Criterion and Params define the configuration under test.
	Algorithm search.Algorithm
	Criterion search.Criterion
	Params    search.Hyperparameters

	// SeedEdges optionally seed every iteration's search with a starting
	// graph; empty means the empty graph.
	SeedEdges []core.Edge

	// Iterations is the number of resample/relearn cycles.
	Iterations int

	// RandomSeed seeds the whole run; 0 selects a fixed default.
	RandomSeed int64

	// Workers bounds parallel iterations; values < 2 run sequentially.
	// Parallelism cannot change the result.
	Workers int
}

// Result is the outcome of one stability run.
type Result struct {
	// Table holds per-edge prevalence for the run's configuration.
	Table *PrevalenceTable

	// Scores is the per-iteration score log, ordered by iteration.
	Scores []ScoreRecord
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for run progress. Nil has no effect.
func WithLogger(log logrus.FieldLogger) Option {
	return func(a *Analyzer) {
		if log != nil {
			a.log = log
		}
	}
}

// Analyzer drives resample -> relearn -> edge-collection cycles.
type Analyzer struct {
	learner *learn.Learner
	log     logrus.FieldLogger
}

// NewAnalyzer builds an Analyzer around a learner.
func NewAnalyzer(learner *learn.Learner, opts ...Option) (*Analyzer, error) {
	if learner == nil {
		return nil, ErrNilLearner
	}
	quiet := logrus.New()
	quiet.SetOutput(nopWriter{})
	a := &Analyzer{learner: learner, log: quiet}
	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Analyze runs one configuration and aggregates edge prevalence.
//
// The blacklist and optional seed graph are built once and shared
// read-only by every iteration. Configuration errors (bad iteration
// count, unknown algorithm, missing imaginary sample size) surface before
// any iteration is scheduled.
func (a *Analyzer) Analyze(ctx context.Context, cfg Config) (*Result, error) {
	req, modelData, err := a.prepare(cfg)
	if err != nil {
		return nil, err
	}
	configID := req.ConfigID()

	counts := xsync.NewMapOf[core.Edge, *xsync.Counter]()
	scores := make([]ScoreRecord, cfg.Iterations)

	grp, grpCtx := errgroup.WithContext(ctx)
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	grp.SetLimit(workers)

	for i := 1; i <= cfg.Iterations; i++ {
		iteration := i
		grp.Go(func() error {
			stream := rng.Stream(cfg.RandomSeed, iteration)
			sub, serr := modelData.Subsample(stream, ResampleFraction)
			if serr != nil {
				return fmt.Errorf("stability: iteration %d: %w", iteration, serr)
			}

			res, lerr := a.learner.Learn(grpCtx, sub, req)
			if lerr != nil {
				return fmt.Errorf("stability: iteration %d: %w", iteration, lerr)
			}

			for _, e := range res.Graph.Edges() {
				c, _ := counts.LoadOrCompute(e, func() *xsync.Counter {
					return xsync.NewCounter()
				})
				c.Inc()
			}
			scores[iteration-1] = ScoreRecord{
				Iteration: iteration,
				ConfigID:  configID,
				Score:     res.Score,
			}

			return nil
		})
	}
	if err = grp.Wait(); err != nil {
		return nil, err
	}

	final := make(map[core.Edge]int64, counts.Size())
	counts.Range(func(e core.Edge, c *xsync.Counter) bool {
		final[e] = c.Value()

		return true
	})

	a.log.WithFields(logrus.Fields{
		"configuration": configID,
		"iterations":    cfg.Iterations,
		"edges":         len(final),
		"seed":          cfg.RandomSeed,
	}).Info("stability run complete")

	return &Result{
		Table:  newTable(configID, cfg.Iterations, final),
		Scores: scores,
	}, nil
}

// AnalyzeMany runs several configurations over the same data and merges
// their prevalence columns into one table. Score logs concatenate in
// configuration order.
func (a *Analyzer) AnalyzeMany(ctx context.Context, cfgs []Config) (*Result, error) {
	var merged *Result
	for _, cfg := range cfgs {
		res, err := a.Analyze(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if merged == nil {
			merged = res
			continue
		}
		if err = merged.Table.Merge(res.Table); err != nil {
			return nil, err
		}
		merged.Scores = append(merged.Scores, res.Scores...)
	}

	return merged, nil
}

// prepare validates the configuration and builds the shared request:
// partition, blacklist, optional seed graph, modeling-column projection.
func (a *Analyzer) prepare(cfg Config) (search.Request, *dataset.Dataset, error) {
	var none search.Request

	if cfg.Data == nil || cfg.Data.NumRows() == 0 {
		return none, nil, ErrEmptyData
	}
	if cfg.Iterations < 1 {
		return none, nil, fmt.Errorf("%w: %d", ErrBadIterations, cfg.Iterations)
	}

	p, err := variables.Classify(cfg.Data.Columns(), cfg.NumLags, cfg.IDColumns...)
	if err != nil {
		return none, nil, err
	}
	bl, err := blacklist.Build(p)
	if err != nil {
		return none, nil, err
	}

	var seed *core.DAG
	if len(cfg.SeedEdges) > 0 {
		if seed, err = seedgraph.Load(cfg.SeedEdges, p.Names()); err != nil {
			return none, nil, err
		}
	}

	modelData, err := cfg.Data.Select(p.Names())
	if err != nil {
		return none, nil, err
	}

	req := search.Request{
		Algorithm: cfg.Algorithm,
		Criterion: cfg.Criterion,
		Blacklist: bl,
		Seed:      seed,
		Params:    cfg.Params,
	}
	req.Normalize()
	if err = req.Validate(); err != nil {
		return none, nil, err
	}

	return req, modelData, nil
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
