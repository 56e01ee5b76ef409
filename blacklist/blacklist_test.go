package blacklist_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbnstab/blacklist"
	"github.com/katalvlaran/dbnstab/core"
	"github.com/katalvlaran/dbnstab/variables"
)

// classify is a test helper for building partitions.
func classify(t *testing.T, numLags int, cols ...string) *variables.Partition {
	t.Helper()
	p, err := variables.Classify(cols, numLags)
	require.NoError(t, err)

	return p
}

// TestBuild_NilPartition verifies the guard on a missing partition.
func TestBuild_NilPartition(t *testing.T) {
	_, err := blacklist.Build(nil)
	assert.ErrorIs(t, err, blacklist.ErrNilPartition)
}

// TestBuild_LineupPairsBothDirections covers rule 1: any two distinct
// lineup statistics are mutually forbidden.
func TestBuild_LineupPairsBothDirections(t *testing.T) {
	p := classify(t, 0, "A_BUCKET", "B_BUCKET", "C_BUCKET", "D")
	bl, err := blacklist.Build(p)
	require.NoError(t, err)

	lineup := []string{"A_BUCKET", "B_BUCKET", "C_BUCKET"}
	for _, u := range lineup {
		for _, v := range lineup {
			if u == v {
				continue
			}
			assert.True(t, bl.Contains(u, v), "%s -> %s must be forbidden", u, v)
		}
	}
}

// TestBuild_NonLineupIntoLineup covers rule 2 and its one-sidedness.
func TestBuild_NonLineupIntoLineup(t *testing.T) {
	p := classify(t, 0, "A", "C", "B_BUCKET")
	bl, err := blacklist.Build(p)
	require.NoError(t, err)

	assert.True(t, bl.Contains("A", "B_BUCKET"))
	assert.True(t, bl.Contains("C", "B_BUCKET"))
	// lineup -> non-lineup is NOT forbidden by rule 2.
	assert.False(t, bl.Contains("B_BUCKET", "A"))
	assert.False(t, bl.Contains("B_BUCKET", "C"))
}

// TestBuild_TemporalOrdering covers rule 3: only past -> present survives.
func TestBuild_TemporalOrdering(t *testing.T) {
	p := classify(t, 2, "A", "B", "A_lag1", "B_lag1", "A_lag2")
	bl, err := blacklist.Build(p)
	require.NoError(t, err)

	// Present never points at the past.
	assert.True(t, bl.Contains("A", "A_lag1"))
	assert.True(t, bl.Contains("A", "B_lag1"))
	assert.True(t, bl.Contains("B", "A_lag2"))
	assert.True(t, bl.Contains("A_lag1", "A_lag2"))

	// The past pointing forward stays allowed.
	assert.False(t, bl.Contains("A_lag1", "A"))
	assert.False(t, bl.Contains("A_lag2", "B"))
	assert.False(t, bl.Contains("A_lag2", "B_lag1"))
}

// TestBuild_WithinLaggedSlice covers rule 4 and the current-slice exemption.
func TestBuild_WithinLaggedSlice(t *testing.T) {
	p := classify(t, 1, "A", "B", "A_lag1", "B_lag1")
	bl, err := blacklist.Build(p)
	require.NoError(t, err)

	// Contemporaneous lagged pairs: both directions forbidden.
	assert.True(t, bl.Contains("A_lag1", "B_lag1"))
	assert.True(t, bl.Contains("B_lag1", "A_lag1"))

	// Current slice is exempt.
	assert.False(t, bl.Contains("A", "B"))
	assert.False(t, bl.Contains("B", "A"))
}

// TestBuild_SpecimenDataset exercises the four-variable reference scenario:
// A, A_lag1, B_BUCKET, C with one lag slice.
func TestBuild_SpecimenDataset(t *testing.T) {
	p := classify(t, 1, "A", "A_lag1", "B_BUCKET", "C")
	bl, err := blacklist.Build(p)
	require.NoError(t, err)

	// No self-pairs, ever.
	assert.False(t, bl.Contains("B_BUCKET", "B_BUCKET"))
	for _, e := range bl.Edges() {
		assert.NotEqual(t, e.From, e.To)
	}

	assert.True(t, bl.Contains("A", "B_BUCKET"))
	assert.True(t, bl.Contains("C", "B_BUCKET"))
	assert.True(t, bl.Contains("A", "A_lag1"), "later -> earlier is forbidden")
	assert.False(t, bl.Contains("A_lag1", "A"), "earlier -> later is allowed")
}

// TestBuild_Deduplicated checks overlapping rules collapse to unique edges.
func TestBuild_Deduplicated(t *testing.T) {
	// A_BUCKET_lag1 vs B_BUCKET_lag1 is forbidden by rules 1, 3/4 at once.
	p := classify(t, 1, "A_BUCKET_lag1", "B_BUCKET_lag1")
	bl, err := blacklist.Build(p)
	require.NoError(t, err)

	seen := make(map[core.Edge]int)
	for _, e := range bl.Edges() {
		seen[e]++
	}
	for e, n := range seen {
		assert.Equal(t, 1, n, "edge %s appears %d times", e, n)
	}
	assert.Equal(t, 2, bl.Len())
}

// TestBlacklist_Violations flags forbidden edges present in a graph.
func TestBlacklist_Violations(t *testing.T) {
	bl := blacklist.New(core.Edge{From: "A", To: "B"})

	g := core.NewDAG()
	require.NoError(t, g.AddVertex("A"))
	require.NoError(t, g.AddVertex("B"))
	require.NoError(t, g.AddEdge("A", "B"))

	violations := bl.Violations(g)
	require.Len(t, violations, 1)
	assert.Equal(t, core.Edge{From: "A", To: "B"}, violations[0])

	g.RemoveEdge("A", "B")
	require.NoError(t, g.AddEdge("B", "A"))
	assert.Empty(t, bl.Violations(g))
}

// TestBlacklist_WriteCSV checks the deterministic export format.
func TestBlacklist_WriteCSV(t *testing.T) {
	bl := blacklist.New(
		core.Edge{From: "B", To: "A"},
		core.Edge{From: "A", To: "B"},
		core.Edge{From: "X", To: "X"}, // self-pair must be dropped
	)

	var buf bytes.Buffer
	require.NoError(t, bl.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{"from,to", "A,B", "B,A"}, lines)
}
