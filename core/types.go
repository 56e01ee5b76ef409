package core

import (
	"errors"
	"fmt"
	"sync"
)

// Sentinel errors for DAG operations.
var (
	// ErrEmptyVertexID indicates an empty string was used as a vertex ID.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrLoopNotAllowed indicates a self-loop (From == To) was attempted.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrCycleDetected indicates an edge insertion would close a directed cycle.
	ErrCycleDetected = errors.New("core: cycle detected")
)

// Edge is an ordered pair of vertex IDs. It is a plain value type so it can
// serve directly as a map key in blacklists and prevalence tables.
type Edge struct {
	// From is the source vertex ID.
	From string

	// To is the destination vertex ID.
	To string
}

// String renders the edge as "from -> to" for diagnostics.
func (e Edge) String() string {
	return fmt.Sprintf("%s -> %s", e.From, e.To)
}

// DAG is a mutable directed acyclic graph over string vertex IDs.
//
// Invariant: acyclic at all times. AddEdge performs the cycle check before
// any mutation, so a rejected insertion never leaves the graph partially
// modified.
type DAG struct {
	mu sync.RWMutex

	// children[u] is the set of v with an edge u->v;
	// parents[v] is the set of u with an edge u->v.
	children map[string]map[string]struct{}
	parents  map[string]map[string]struct{}

	edgeCount int
}

// NewDAG creates an empty DAG.
// Complexity: O(1).
func NewDAG() *DAG {
	return &DAG{
		children: make(map[string]map[string]struct{}),
		parents:  make(map[string]map[string]struct{}),
	}
}
