// Package learn wraps the external search engine into the harness's
// structure-learning step.
//
// Learner.Learn drives one search under a blacklist and optional seed
// graph, then re-scores the winning graph on the full dataset with the
// same criterion: the engine may have scored internal candidates on
// cached statistics, and report-time scores must never diverge from
// search-time inputs. The result is verified to be acyclic and free of
// blacklisted edges before it is trusted.
package learn

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/dbnstab/dataset"
	"github.com/katalvlaran/dbnstab/search"
)

// Sentinel errors for the learning step.
var (
	// ErrNilEngine indicates NewLearner was called without an engine.
	ErrNilEngine = errors.New("learn: nil engine")

	// ErrEmptyData indicates a nil or zero-row dataset.
	ErrEmptyData = errors.New("learn: empty dataset")

	// ErrNilResult indicates the engine returned no graph without an error.
	ErrNilResult = errors.New("learn: engine returned nil graph")

	// ErrConstraintViolated indicates the engine returned a graph containing
	// a blacklisted edge, breaking its contract.
	ErrConstraintViolated = errors.New("learn: engine result violates blacklist")
)

// Option configures a Learner.
type Option func(*Learner)

// WithLogger sets the logger used for progress lines.
// Passing nil has no effect.
func WithLogger(log logrus.FieldLogger) Option {
	return func(l *Learner) {
		if log != nil {
			l.log = log
		}
	}
}

// Learner runs constrained structure searches through an external engine.
// Safe for concurrent use as long as the engine is.
type Learner struct {
	engine search.Engine
	log    logrus.FieldLogger
}

// NewLearner builds a Learner around the given engine.
func NewLearner(engine search.Engine, opts ...Option) (*Learner, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}
	l := &Learner{engine: engine, log: discardLogger()}
	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// Learn executes one structure search and returns the verified, re-scored
// result. The request is normalized (tabu defaults) and validated first;
// configuration errors surface before the engine is touched.
func (l *Learner) Learn(ctx context.Context, data *dataset.Dataset, req search.Request) (search.ScoredGraph, error) {
	var none search.ScoredGraph

	req.Normalize()
	if err := req.Validate(); err != nil {
		return none, err
	}
	if data == nil || data.NumRows() == 0 {
		return none, ErrEmptyData
	}

	g, searchScore, err := l.engine.Search(ctx, data, req)
	if err != nil {
		return none, fmt.Errorf("learn: %s search: %w", req.Algorithm, err)
	}
	if g == nil {
		return none, ErrNilResult
	}

	// Trust but verify: the engine contract demands an acyclic,
	// blacklist-clean graph.
	if _, err = g.TopologicalSort(); err != nil {
		return none, fmt.Errorf("learn: engine result: %w", err)
	}
	if violations := req.Blacklist.Violations(g); len(violations) > 0 {
		return none, fmt.Errorf("%w: %s", ErrConstraintViolated, violations[0])
	}

	// Re-score on the full dataset so the reported score matches the data
	// the caller handed in, not whatever the engine sampled internally.
	score, err := l.engine.Score(ctx, g, data, req.Criterion, req.Params)
	if err != nil {
		return none, fmt.Errorf("learn: re-score under %s: %w", req.Criterion, err)
	}

	l.log.WithFields(logrus.Fields{
		"run":           uuid.NewString(),
		"algorithm":     req.Algorithm,
		"criterion":     req.Criterion,
		"configuration": req.ConfigID(),
		"edges":         g.EdgeCount(),
		"search_score":  searchScore,
		"score":         score,
	}).Info("structure learned")

	return search.ScoredGraph{Graph: g, Score: score, Criterion: req.Criterion}, nil
}

// discardLogger returns a logger that drops everything; callers opt into
// output with WithLogger.
func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(nopWriter{})

	return log
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
