package dataset_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbnstab/dataset"
)

// TestLoadFeatureSelection parses rows, skipping a header.
func TestLoadFeatureSelection(t *testing.T) {
	in := "feature,include\nSteal_home,true\nBlock_home,false\n3PT_Make,1\n"
	sel, err := dataset.LoadFeatureSelection(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, sel, 3)

	assert.Equal(t, dataset.Selection{Feature: "Steal_home", Include: true}, sel[0])
	assert.Equal(t, dataset.Selection{Feature: "Block_home", Include: false}, sel[1])
	// Normalized on load.
	assert.Equal(t, dataset.Selection{Feature: "X3PT_Make", Include: true}, sel[2])
}

// TestLoadFeatureSelection_BadRow rejects non-boolean flags past the header.
func TestLoadFeatureSelection_BadRow(t *testing.T) {
	in := "feature,include\nSteal_home,maybe\n"
	_, err := dataset.LoadFeatureSelection(strings.NewReader(in))
	assert.ErrorIs(t, err, dataset.ErrBadSelectionRow)
}

// TestApplyFeatureSelection keeps flagged features plus lagged companions.
func TestApplyFeatureSelection(t *testing.T) {
	d := table(t,
		[]string{"gameid", "Steal_home", "Steal_home_lag1", "Block_home", "Block_home_lag1"},
		[][]string{{"g1", "1", "0", "2", "1"}},
	)
	sel := []dataset.Selection{
		{Feature: "Steal_home", Include: true},
		{Feature: "Block_home", Include: false},
		{Feature: "NotInDataset", Include: true}, // silently skipped
	}

	out, err := d.ApplyFeatureSelection(sel, "gameid")
	require.NoError(t, err)
	assert.Equal(t, []string{"gameid", "Steal_home", "Steal_home_lag1"}, out.Columns())
}

// TestApplyFeatureSelection_NoMatch fails when nothing survives.
func TestApplyFeatureSelection_NoMatch(t *testing.T) {
	d := table(t, []string{"A"}, [][]string{{"1"}})
	_, err := d.ApplyFeatureSelection([]dataset.Selection{{Feature: "Z", Include: true}})
	assert.ErrorIs(t, err, dataset.ErrNoFeaturesSelected)
}

// TestAddLags shifts within groups and blanks group boundaries.
func TestAddLags(t *testing.T) {
	d := table(t,
		[]string{"gameid", "A"},
		[][]string{
			{"g1", "a0"},
			{"g1", "a1"},
			{"g1", "a2"},
			{"g2", "b0"},
			{"g2", "b1"},
		},
	)

	lagged, err := d.AddLags(2, "gameid")
	require.NoError(t, err)
	assert.Equal(t, []string{"gameid", "A", "A_lag1", "A_lag2"}, lagged.Columns())

	lag1, err := lagged.Column("A_lag1")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "a0", "a1", "", "b0"}, lag1)

	lag2, err := lagged.Column("A_lag2")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "", "a0", "", ""}, lag2)

	// Complete keeps only rows with both lags populated.
	assert.Equal(t, 1, lagged.Complete().NumRows())
}

// TestAddLags_SkipsLaggedColumns ensures lag columns are not lagged again.
func TestAddLags_SkipsLaggedColumns(t *testing.T) {
	d := table(t,
		[]string{"gameid", "A", "A_lag1"},
		[][]string{{"g1", "a0", ""}, {"g1", "a1", "a0"}},
	)
	lagged, err := d.AddLags(1, "gameid")
	require.NoError(t, err)
	// A_lag1 already exists, so nothing is added and nothing is re-lagged.
	assert.Equal(t, []string{"gameid", "A", "A_lag1"}, lagged.Columns())
}

// TestAddLags_Errors covers parameter validation.
func TestAddLags_Errors(t *testing.T) {
	d := table(t, []string{"gameid", "A"}, nil)
	_, err := d.AddLags(0, "gameid")
	assert.ErrorIs(t, err, dataset.ErrBadLagCount)

	_, err = d.AddLags(1, "missing")
	assert.ErrorIs(t, err, dataset.ErrColumnNotFound)
}
