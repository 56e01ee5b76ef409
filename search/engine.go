package search

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/katalvlaran/dbnstab/core"
	"github.com/katalvlaran/dbnstab/dataset"
)

// Engine is the external graph-search collaborator.
//
// Search must return a best-scoring acyclic graph that contains no edge of
// req.Blacklist; the seed graph, when present, is its starting point.
// Score evaluates an existing graph over data under the given criterion,
// so callers can re-score a search result on the full dataset.
type Engine interface {
	Search(ctx context.Context, data *dataset.Dataset, req Request) (*core.DAG, float64, error)
	Score(ctx context.Context, g *core.DAG, data *dataset.Dataset, criterion Criterion, params Hyperparameters) (float64, error)
}

// Evaluator is the external fitting collaborator: fit parameters of g on
// train with the given method, then return the log-likelihood loss of the
// fitted model on holdout.
type Evaluator interface {
	FitAndScore(ctx context.Context, g *core.DAG, train, holdout *dataset.Dataset, method FitMethod, params Hyperparameters) (float64, error)
}

// DecodeHyperparameters decodes a loose map (parsed flags, JSON, etc.)
// into a typed Hyperparameters value, rejecting unknown keys so a typoed
// knob fails loudly instead of silently running engine defaults.
func DecodeHyperparameters(raw map[string]interface{}) (Hyperparameters, error) {
	var hp Hyperparameters
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &hp,
		ErrorUnused: true,
	})
	if err != nil {
		return Hyperparameters{}, fmt.Errorf("search: build decoder: %w", err)
	}
	if err = dec.Decode(raw); err != nil {
		return Hyperparameters{}, fmt.Errorf("search: decode hyperparameters: %w", err)
	}

	return hp, nil
}
