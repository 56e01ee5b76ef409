// Package crossval estimates the out-of-sample loss of a learned network
// by repeated hold-out cross validation: each run splits the data into a
// train and a hold-out partition, learns structure on the train partition
// under the shared blacklist and optional seed graph, fits parameters with
// the configured method, and evaluates log-likelihood loss on the
// hold-out partition.
//
// Runs are independent and execute across a bounded worker pool scoped to
// one CrossValidate call. Each run's random split is derived from the run
// seed and run index, so the report is reproducible regardless of worker
// count.
//
// Failure policy: a failed run is recorded and skipped, not fatal; the
// report carries per-run errors and the count of failures. Only a
// configuration error, or every run failing, aborts the invocation.
package crossval

import (
	"context"
	"errors"
	"fmt"
	"runtime"

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

// DefaultHoldoutFraction is the share of rows withheld for evaluation
// when the configuration leaves HoldoutFraction at zero.
const DefaultHoldoutFraction = 0.25

// Sentinel errors for run configuration and aggregation.
var (
	// ErrNilLearner indicates NewValidator was called without a learner.
	ErrNilLearner = errors.New("crossval: nil learner")

	// ErrNilEvaluator indicates NewValidator was called without an evaluator.
	ErrNilEvaluator = errors.New("crossval: nil evaluator")

	// ErrBadRuns indicates Runs < 1.
	ErrBadRuns = errors.New("crossval: runs must be at least 1")

	// ErrBadHoldout indicates a hold-out fraction outside (0, 1).
	ErrBadHoldout = errors.New("crossval: hold-out fraction must be in (0, 1)")

	// ErrEmptyData indicates a nil or zero-row dataset.
	ErrEmptyData = errors.New("crossval: empty dataset")

	// ErrAllRunsFailed indicates no run produced a loss value.
	ErrAllRunsFailed = errors.New("crossval: all runs failed")
)

// Config describes one cross-validation invocation for one configuration.
type Config struct {
	// Data is the full lagged dataset.
	Data *dataset.Dataset

	// NumLags is the number of lag slices in Data.
	NumLags int

	// IDColumns are identifier columns excluded from modeling.
	IDColumns []string

	// Algorithm, Criterion and Params define the configuration under test.
	Algorithm search.Algorithm
	Criterion search.Criterion
	Params    search.Hyperparameters

	// FitMethod selects parameter fitting before hold-out evaluation.
	// FitBayes requires Params.ImaginarySampleSize > 0.
	FitMethod search.FitMethod

	// SeedEdges optionally seed every run's search with a starting graph.
	SeedEdges []core.Edge

	// Runs is the number of hold-out split/learn/fit/evaluate cycles.
	Runs int

	// HoldoutFraction is the share of rows withheld per run; 0 selects
	// DefaultHoldoutFraction.
	HoldoutFraction float64

	// RandomSeed seeds the whole invocation; 0 selects a fixed default.
	RandomSeed int64

	// Workers bounds the pool; values < 1 select cores minus two, with a
	// floor of one.
	Workers int
}

// Validator drives hold-out split -> learn -> fit -> evaluate cycles.
type Validator struct {
	learner   *learn.Learner
	evaluator search.Evaluator
	log       logrus.FieldLogger
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger used for run progress. Nil has no effect.
func WithLogger(log logrus.FieldLogger) Option {
	return func(v *Validator) {
		if log != nil {
			v.log = log
		}
	}
}

// NewValidator builds a Validator around a learner and an evaluator.
func NewValidator(learner *learn.Learner, evaluator search.Evaluator, opts ...Option) (*Validator, error) {
	if learner == nil {
		return nil, ErrNilLearner
	}
	if evaluator == nil {
		return nil, ErrNilEvaluator
	}
	quiet := logrus.New()
	quiet.SetOutput(nopWriter{})
	v := &Validator{learner: learner, evaluator: evaluator, log: quiet}
	for _, opt := range opts {
		opt(v)
	}

	return v, nil
}

// CrossValidate runs the configured number of hold-out cycles and reports
// per-run losses.
//
// The blacklist and optional seed graph are built once and shared
// read-only by every run. Configuration errors (bad run count, unknown
// fit method, missing imaginary sample size) surface before any run is
// scheduled. The pool exists only for the duration of this call.
func (v *Validator) CrossValidate(ctx context.Context, cfg Config) (*LossReport, error) {
	req, modelData, holdout, err := v.prepare(cfg)
	if err != nil {
		return nil, err
	}
	configID := req.ConfigID()

	results := make([]RunResult, cfg.Runs)

	grp, grpCtx := errgroup.WithContext(ctx)
	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU() - 2
		if workers < 1 {
			workers = 1
		}
	}
	grp.SetLimit(workers)

	for i := 1; i <= cfg.Runs; i++ {
		run := i
		grp.Go(func() error {
			loss, rerr := v.runOnce(grpCtx, modelData, req, cfg, holdout, run)
			results[run-1] = RunResult{Run: run, ConfigID: configID, Loss: loss, Err: rerr}

			return nil
		})
	}
	// Workers record failures instead of returning them; Wait only drains
	// the pool.
	_ = grp.Wait()

	report := &LossReport{ConfigID: configID, FitMethod: cfg.FitMethod, Runs: results}
	if report.Failed() == cfg.Runs {
		return nil, fmt.Errorf("%w: %v", ErrAllRunsFailed, report.Err())
	}

	v.log.WithFields(logrus.Fields{
		"configuration": configID,
		"fit_method":    cfg.FitMethod,
		"runs":          cfg.Runs,
		"failed":        report.Failed(),
		"mean_loss":     report.MeanLoss(),
		"seed":          cfg.RandomSeed,
	}).Info("cross-validation complete")

	return report, nil
}

// runOnce executes one split/learn/fit/evaluate cycle.
func (v *Validator) runOnce(ctx context.Context, data *dataset.Dataset, req search.Request, cfg Config, holdout float64, run int) (float64, error) {
	stream := rng.Stream(cfg.RandomSeed, run)
	train, hold, err := data.Split(stream, holdout)
	if err != nil {
		return 0, fmt.Errorf("crossval: run %d: split: %w", run, err)
	}

	res, err := v.learner.Learn(ctx, train, req)
	if err != nil {
		return 0, fmt.Errorf("crossval: run %d: %w", run, err)
	}

	loss, err := v.evaluator.FitAndScore(ctx, res.Graph, train, hold, cfg.FitMethod, req.Params)
	if err != nil {
		return 0, fmt.Errorf("crossval: run %d: evaluate: %w", run, err)
	}

	return loss, nil
}

// prepare validates the configuration and builds the shared request:
// partition, blacklist, optional seed graph, modeling-column projection.
func (v *Validator) prepare(cfg Config) (search.Request, *dataset.Dataset, float64, error) {
	var none search.Request

	if cfg.Data == nil || cfg.Data.NumRows() == 0 {
		return none, nil, 0, ErrEmptyData
	}
	if cfg.Runs < 1 {
		return none, nil, 0, fmt.Errorf("%w: %d", ErrBadRuns, cfg.Runs)
	}
	holdout := cfg.HoldoutFraction
	if holdout == 0 {
		holdout = DefaultHoldoutFraction
	}
	if holdout <= 0 || holdout >= 1 {
		return none, nil, 0, fmt.Errorf("%w: %g", ErrBadHoldout, holdout)
	}

	p, err := variables.Classify(cfg.Data.Columns(), cfg.NumLags, cfg.IDColumns...)
	if err != nil {
		return none, nil, 0, err
	}
	bl, err := blacklist.Build(p)
	if err != nil {
		return none, nil, 0, err
	}

	var seed *core.DAG
	if len(cfg.SeedEdges) > 0 {
		if seed, err = seedgraph.Load(cfg.SeedEdges, p.Names()); err != nil {
			return none, nil, 0, err
		}
	}

	modelData, err := cfg.Data.Select(p.Names())
	if err != nil {
		return none, nil, 0, err
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
		return none, nil, 0, err
	}
	if err = cfg.FitMethod.Validate(req.Params); err != nil {
		return none, nil, 0, err
	}

	return req, modelData, holdout, nil
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
