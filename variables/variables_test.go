package variables_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbnstab/variables"
)

// TestNormalize_DigitPrefix checks digit-leading names gain the X prefix.
func TestNormalize_DigitPrefix(t *testing.T) {
	assert.Equal(t, "X3PT_Make_home", variables.Normalize("3PT_Make_home"))
	assert.Equal(t, "Steal_home", variables.Normalize("Steal_home"))
	assert.Equal(t, "", variables.Normalize(""))
}

// TestParseLag covers valid suffixes and near-miss names.
func TestParseLag(t *testing.T) {
	base, lag := variables.ParseLag("Steal_home_lag2")
	assert.Equal(t, "Steal_home", base)
	assert.Equal(t, 2, lag)

	base, lag = variables.ParseLag("Steal_home")
	assert.Equal(t, "Steal_home", base)
	assert.Equal(t, 0, lag)

	// "_lag" with no digits is not a lag suffix.
	_, lag = variables.ParseLag("weird_lag")
	assert.Equal(t, 0, lag)

	// "_lagX" is not a lag suffix either.
	_, lag = variables.ParseLag("weird_lagX")
	assert.Equal(t, 0, lag)
}

// TestClassify_Slices verifies every variable lands in exactly one slice.
func TestClassify_Slices(t *testing.T) {
	cols := []string{"A", "A_lag1", "A_lag2", "B_BUCKET", "B_BUCKET_lag1", "C"}
	p, err := variables.Classify(cols, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B_BUCKET", "C"}, p.Current())
	assert.Equal(t, []string{"A_lag1", "B_BUCKET_lag1"}, p.Slice(1))
	assert.Equal(t, []string{"A_lag2"}, p.Slice(2))
	assert.Nil(t, p.Slice(3))

	total := len(p.Current()) + len(p.Slice(1)) + len(p.Slice(2))
	assert.Equal(t, len(cols), total)
}

// TestClassify_Groups checks the lineup/other partition and Group values.
func TestClassify_Groups(t *testing.T) {
	p, err := variables.Classify([]string{"A", "B_BUCKET", "C_lag1"}, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"B_BUCKET"}, p.Lineup())
	assert.Equal(t, []string{"A", "C_lag1"}, p.Others())

	v, ok := p.Lookup("B_BUCKET")
	require.True(t, ok)
	assert.Equal(t, variables.GroupLineup, v.Group)
	assert.Equal(t, "lineup-statistic", v.Group.String())

	v, ok = p.Lookup("C_lag1")
	require.True(t, ok)
	assert.Equal(t, variables.GroupEvent, v.Group)
	assert.Equal(t, 1, v.Lag)
}

// TestClassify_IdentifierColumns ensures id columns stay out of every partition.
func TestClassify_IdentifierColumns(t *testing.T) {
	p, err := variables.Classify([]string{"gameid", "time_window", "A"}, 0,
		"gameid", "time_window")
	require.NoError(t, err)

	assert.Equal(t, []string{"A"}, p.Names())
	v, ok := p.Lookup("gameid")
	require.True(t, ok)
	assert.Equal(t, variables.GroupUnclassified, v.Group)
}

// TestClassify_NormalizesDigitNames checks normalization inside Classify.
func TestClassify_NormalizesDigitNames(t *testing.T) {
	p, err := variables.Classify([]string{"3PT_Make", "3PT_Make_lag1"}, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"X3PT_Make"}, p.Current())
	assert.Equal(t, []string{"X3PT_Make_lag1"}, p.Slice(1))

	// Lookup accepts the raw form too.
	_, ok := p.Lookup("3PT_Make")
	assert.True(t, ok)
}

// TestClassify_Errors covers the failure modes.
func TestClassify_Errors(t *testing.T) {
	_, err := variables.Classify(nil, 1)
	assert.ErrorIs(t, err, variables.ErrNoColumns)

	_, err = variables.Classify([]string{"A"}, -1)
	assert.ErrorIs(t, err, variables.ErrNegativeLagCount)

	_, err = variables.Classify([]string{"A", "A"}, 1)
	assert.ErrorIs(t, err, variables.ErrDuplicateColumn)

	_, err = variables.Classify([]string{"A", "A_lag3"}, 2)
	assert.ErrorIs(t, err, variables.ErrLagOutOfRange)
}

// TestSliceName checks the conventional labels.
func TestSliceName(t *testing.T) {
	assert.Equal(t, "current", variables.SliceName(0))
	assert.Equal(t, "lag_2", variables.SliceName(2))
}
