package seedgraph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbnstab/core"
	"github.com/katalvlaran/dbnstab/seedgraph"
)

// TestLoad_Basic builds a graph with exactly the listed edges and all vertices.
func TestLoad_Basic(t *testing.T) {
	g, err := seedgraph.Load(
		[]core.Edge{{From: "A", To: "B"}, {From: "B", To: "C"}},
		[]string{"A", "B", "C", "D"},
	)
	require.NoError(t, err)

	assert.Equal(t, 4, g.VertexCount(), "isolated variables must be present")
	assert.Equal(t, 2, g.EdgeCount())
	assert.True(t, g.HasEdge("A", "B"))
	assert.True(t, g.HasEdge("B", "C"))
}

// TestLoad_EmptyVariableSet rejects a missing variable universe.
func TestLoad_EmptyVariableSet(t *testing.T) {
	_, err := seedgraph.Load(nil, nil)
	assert.ErrorIs(t, err, seedgraph.ErrNoVariables)
}

// TestLoad_UnknownNode fails fatally and names the offending edge.
func TestLoad_UnknownNode(t *testing.T) {
	g, err := seedgraph.Load(
		[]core.Edge{{From: "A", To: "Z"}},
		[]string{"A", "B"},
	)
	assert.Nil(t, g, "no partial graph is usable")
	require.ErrorIs(t, err, core.ErrVertexNotFound)
	assert.Contains(t, err.Error(), "A -> Z")
}

// TestLoad_ThreeCycle fails fatally on a cyclic edge list.
func TestLoad_ThreeCycle(t *testing.T) {
	g, err := seedgraph.Load(
		[]core.Edge{
			{From: "A", To: "B"},
			{From: "B", To: "C"},
			{From: "C", To: "A"},
		},
		[]string{"A", "B", "C"},
	)
	assert.Nil(t, g)
	require.ErrorIs(t, err, core.ErrCycleDetected)
	assert.Contains(t, err.Error(), "C -> A")
}

// TestLoad_NormalizesNames verifies digit-leading names match on both sides.
func TestLoad_NormalizesNames(t *testing.T) {
	g, err := seedgraph.Load(
		[]core.Edge{{From: "3PT_Make", To: "A"}},
		[]string{"3PT_Make", "A"},
	)
	require.NoError(t, err)
	assert.True(t, g.HasEdge("X3PT_Make", "A"))
}

// TestParseCSV reads an edge list, skipping the conventional header.
func TestParseCSV(t *testing.T) {
	edges, err := seedgraph.ParseCSV(strings.NewReader("from,to\nA,B\nB,C\n"))
	require.NoError(t, err)
	assert.Equal(t, []core.Edge{{From: "A", To: "B"}, {From: "B", To: "C"}}, edges)

	// Headerless files work too.
	edges, err = seedgraph.ParseCSV(strings.NewReader("A,B\n"))
	require.NoError(t, err)
	assert.Equal(t, []core.Edge{{From: "A", To: "B"}}, edges)
}

// TestLoadCSV ties parsing and validation together.
func TestLoadCSV(t *testing.T) {
	g, err := seedgraph.LoadCSV(strings.NewReader("from,to\nA,B\n"), []string{"A", "B"})
	require.NoError(t, err)
	assert.True(t, g.HasEdge("A", "B"))

	_, err = seedgraph.LoadCSV(strings.NewReader("A,B\nB,A\n"), []string{"A", "B"})
	assert.ErrorIs(t, err, core.ErrCycleDetected)
}
