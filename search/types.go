package search

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/dbnstab/blacklist"
	"github.com/katalvlaran/dbnstab/core"
)

// Algorithm selects the structure-search procedure an engine should run.
type Algorithm string

const (
	// AlgorithmHillClimb is greedy score ascent.
	AlgorithmHillClimb Algorithm = "hc"

	// AlgorithmTabu is tabu search with a bounded move history.
	AlgorithmTabu Algorithm = "tabu"
)

// Criterion selects the network scoring criterion.
type Criterion string

const (
	// CriterionAIC is the Akaike information criterion.
	CriterionAIC Criterion = "aic"

	// CriterionBIC is the Bayesian information criterion.
	CriterionBIC Criterion = "bic"

	// CriterionBDe is the Bayesian Dirichlet equivalent score; it reads
	// Hyperparameters.ImaginarySampleSize.
	CriterionBDe Criterion = "bde"
)

// FitMethod selects how parameters are fitted before loss evaluation.
type FitMethod string

const (
	// FitMLE is maximum-likelihood parameter fitting.
	FitMLE FitMethod = "mle"

	// FitBayes is Bayesian fitting with an imaginary sample size; a
	// configuration using it without a positive ImaginarySampleSize is
	// rejected before any work is scheduled.
	FitBayes FitMethod = "bayes"
)

// Sentinel errors for request validation.
var (
	// ErrUnknownAlgorithm indicates an unrecognized Algorithm value.
	ErrUnknownAlgorithm = errors.New("search: unknown algorithm")

	// ErrUnknownCriterion indicates an unrecognized Criterion value.
	ErrUnknownCriterion = errors.New("search: unknown scoring criterion")

	// ErrUnknownFitMethod indicates an unrecognized FitMethod value.
	ErrUnknownFitMethod = errors.New("search: unknown fit method")

	// ErrMissingImaginarySampleSize indicates Bayesian fitting (or the BDe
	// criterion) was requested without a positive imaginary sample size.
	ErrMissingImaginarySampleSize = errors.New("search: imaginary sample size required")
)

// Defaults applied by Request.Normalize for tabu search.
const (
	// DefaultTabuListSize bounds the forbidden-move history.
	DefaultTabuListSize = 10

	// DefaultTabuMaxIterations bounds non-improving tabu iterations.
	DefaultTabuMaxIterations = 10
)

// Hyperparameters carries algorithm- and criterion-specific knobs.
// Zero values mean "use the engine default" except where noted.
type Hyperparameters struct {
	// TabuListSize is the tabu move-history length (tabu search only).
	TabuListSize int `mapstructure:"tabu_list_size"`

	// TabuMaxIterations bounds non-improving tabu iterations (tabu only).
	TabuMaxIterations int `mapstructure:"tabu_max_iterations"`

	// ImaginarySampleSize is the equivalent sample size for BDe scoring
	// and Bayesian fitting. Required (> 0) whenever either is selected.
	ImaginarySampleSize float64 `mapstructure:"imaginary_sample_size"`

	// MaxParents caps the in-degree during search; 0 means unbounded.
	MaxParents int `mapstructure:"max_parents"`

	// Restarts is the number of random restarts for hill climbing.
	Restarts int `mapstructure:"restarts"`
}

// Request is one structure-search invocation: what to search over and
// under which constraints.
type Request struct {
	// Algorithm is the search procedure.
	Algorithm Algorithm

	// Criterion is the scoring criterion used during search and re-scoring.
	Criterion Criterion

	// Blacklist is the forbidden edge set; never nil for a valid request.
	Blacklist *blacklist.Blacklist

	// Seed is the optional starting graph; nil means the empty graph.
	Seed *core.DAG

	// Params are the algorithm hyperparameters.
	Params Hyperparameters
}

// Normalize fills tabu defaults in place. Safe to call on any request.
func (r *Request) Normalize() {
	if r.Algorithm != AlgorithmTabu {
		return
	}
	if r.Params.TabuListSize <= 0 {
		r.Params.TabuListSize = DefaultTabuListSize
	}
	if r.Params.TabuMaxIterations <= 0 {
		r.Params.TabuMaxIterations = DefaultTabuMaxIterations
	}
}

// Validate checks the request against the taxonomy above.
// It does not touch the data; configuration errors must surface before any
// work is scheduled.
func (r *Request) Validate() error {
	switch r.Algorithm {
	case AlgorithmHillClimb, AlgorithmTabu:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, r.Algorithm)
	}
	switch r.Criterion {
	case CriterionAIC, CriterionBIC:
	case CriterionBDe:
		if r.Params.ImaginarySampleSize <= 0 {
			return fmt.Errorf("%w: criterion %q", ErrMissingImaginarySampleSize, r.Criterion)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCriterion, r.Criterion)
	}
	if r.Blacklist == nil {
		return errors.New("search: nil blacklist")
	}

	return nil
}

// Validate checks the fit method against the hyperparameters. Bayesian
// fitting without a positive imaginary sample size is a configuration
// error and must surface before any work is scheduled.
func (m FitMethod) Validate(p Hyperparameters) error {
	switch m {
	case FitMLE:
	case FitBayes:
		if p.ImaginarySampleSize <= 0 {
			return fmt.Errorf("%w: fit method %q", ErrMissingImaginarySampleSize, m)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFitMethod, m)
	}

	return nil
}

// ConfigID renders the configuration identifier that keys prevalence-table
// columns and score-log rows: algorithm, tabu bounds when relevant, the
// criterion, and the imaginary sample size when BDe is in play.
func (r *Request) ConfigID() string {
	id := string(r.Algorithm)
	if r.Algorithm == AlgorithmTabu {
		id = fmt.Sprintf("%s%d", id, r.Params.TabuListSize)
	}
	id = fmt.Sprintf("%s_%s", id, r.Criterion)
	if r.Criterion == CriterionBDe {
		id = fmt.Sprintf("%s_iss%g", id, r.Params.ImaginarySampleSize)
	}

	return id
}

// ScoredGraph pairs a learned graph with its score under a criterion.
// Immutable once returned: the caller owns the graph and must not hand it
// back to the engine for mutation.
type ScoredGraph struct {
	// Graph is the learned structure.
	Graph *core.DAG

	// Score is the network score over the full dataset.
	Score float64

	// Criterion identifies how Score was computed.
	Criterion Criterion
}
