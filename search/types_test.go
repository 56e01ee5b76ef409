package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbnstab/blacklist"
	"github.com/katalvlaran/dbnstab/search"
)

// TestRequest_Validate covers the configuration-error taxonomy.
func TestRequest_Validate(t *testing.T) {
	bl := blacklist.New()

	ok := search.Request{Algorithm: search.AlgorithmHillClimb, Criterion: search.CriterionBIC, Blacklist: bl}
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.Algorithm = "simulated-annealing"
	assert.ErrorIs(t, bad.Validate(), search.ErrUnknownAlgorithm)

	bad = ok
	bad.Criterion = "loglik"
	assert.ErrorIs(t, bad.Validate(), search.ErrUnknownCriterion)

	bad = ok
	bad.Criterion = search.CriterionBDe
	assert.ErrorIs(t, bad.Validate(), search.ErrMissingImaginarySampleSize)

	bad.Params.ImaginarySampleSize = 5
	assert.NoError(t, bad.Validate())

	bad = ok
	bad.Blacklist = nil
	assert.Error(t, bad.Validate())
}

// TestRequest_Normalize fills tabu defaults and leaves hc untouched.
func TestRequest_Normalize(t *testing.T) {
	r := search.Request{Algorithm: search.AlgorithmTabu}
	r.Normalize()
	assert.Equal(t, search.DefaultTabuListSize, r.Params.TabuListSize)
	assert.Equal(t, search.DefaultTabuMaxIterations, r.Params.TabuMaxIterations)

	h := search.Request{Algorithm: search.AlgorithmHillClimb}
	h.Normalize()
	assert.Zero(t, h.Params.TabuListSize)
}

// TestRequest_ConfigID checks the identifier layout per configuration.
func TestRequest_ConfigID(t *testing.T) {
	r := search.Request{Algorithm: search.AlgorithmHillClimb, Criterion: search.CriterionBIC}
	assert.Equal(t, "hc_bic", r.ConfigID())

	r = search.Request{
		Algorithm: search.AlgorithmTabu,
		Criterion: search.CriterionBDe,
		Params:    search.Hyperparameters{TabuListSize: 15, ImaginarySampleSize: 10},
	}
	assert.Equal(t, "tabu15_bde_iss10", r.ConfigID())
}

// TestDecodeHyperparameters decodes loose maps and rejects unknown keys.
func TestDecodeHyperparameters(t *testing.T) {
	hp, err := search.DecodeHyperparameters(map[string]interface{}{
		"tabu_list_size":        20,
		"imaginary_sample_size": 2.5,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, hp.TabuListSize)
	assert.Equal(t, 2.5, hp.ImaginarySampleSize)

	_, err = search.DecodeHyperparameters(map[string]interface{}{"tabu_size": 20})
	assert.Error(t, err, "unknown keys must fail loudly")
}
