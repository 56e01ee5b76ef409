// Package seedgraph builds a validated acyclic starting graph from a
// user-supplied edge list.
//
// Construction is all-or-nothing: an edge that references an unknown
// variable or would close a cycle fails the whole build, and the error
// names the offending edge and the reason. No partially built graph is
// ever returned: a learning run seeded from a broken list must abort.
//
// Edge-list names pass through the same digit-prefix normalization as
// dataset columns, so "3PT_Make" in a file matches the "X3PT_Make" column.
package seedgraph

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/dbnstab/core"
	"github.com/katalvlaran/dbnstab/variables"
)

// ErrNoVariables indicates Load was called with an empty variable set.
var ErrNoVariables = errors.New("seedgraph: empty variable set")

// Load builds a DAG over vars containing exactly the given edges.
// Every vertex of the variable set is present in the result, including
// isolated ones, so the engine sees the full node universe.
//
// Complexity: O(V + E·(V+E)) worst case (cycle check per insertion).
func Load(edges []core.Edge, vars []string) (*core.DAG, error) {
	if len(vars) == 0 {
		return nil, ErrNoVariables
	}

	g := core.NewDAG()
	for _, v := range vars {
		if err := g.AddVertex(variables.Normalize(v)); err != nil {
			return nil, fmt.Errorf("seedgraph: add variable %q: %w", v, err)
		}
	}

	for _, e := range edges {
		from := variables.Normalize(e.From)
		to := variables.Normalize(e.To)
		if err := g.AddEdge(from, to); err != nil {
			return nil, fmt.Errorf("seedgraph: edge %s: %w",
				core.Edge{From: from, To: to}, err)
		}
	}

	return g, nil
}

// ParseCSV reads "from,to" rows into an edge list. A header row named
// exactly "from,to" is tolerated and skipped.
func ParseCSV(r io.Reader) ([]core.Edge, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("seedgraph: read edge list: %w", err)
	}

	edges := make([]core.Edge, 0, len(records))
	for i, rec := range records {
		if i == 0 && rec[0] == "from" && rec[1] == "to" {
			continue
		}
		edges = append(edges, core.Edge{From: rec[0], To: rec[1]})
	}

	return edges, nil
}

// LoadCSV combines ParseCSV and Load.
func LoadCSV(r io.Reader, vars []string) (*core.DAG, error) {
	edges, err := ParseCSV(r)
	if err != nil {
		return nil, err
	}

	return Load(edges, vars)
}
