package core

import "sort"

// AddVertex inserts a vertex with the given ID if absent.
// Adding an existing vertex is a no-op.
// Thread-safe: acquires a write lock.
//
// Complexity: O(1).
func (g *DAG) AddVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.children[id]; exists {
		return nil
	}
	g.children[id] = make(map[string]struct{})
	g.parents[id] = make(map[string]struct{})

	return nil
}

// HasVertex reports whether the graph contains the given vertex ID.
// Thread-safe: acquires a read lock.
//
// Complexity: O(1).
func (g *DAG) HasVertex(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.children[id]

	return ok
}

// AddEdge inserts a directed edge from -> to.
//
// Both endpoints must already exist (ErrVertexNotFound otherwise); the DAG
// never auto-creates vertices, so a typo in an edge list surfaces as an
// error instead of a silent new node. Self-loops return ErrLoopNotAllowed.
// If the edge would close a directed cycle, ErrCycleDetected is returned
// and the graph is left exactly as it was. Re-adding an existing edge is a
// no-op.
//
// Thread-safe: acquires a write lock.
//
// Complexity: O(V + E) worst case for the reachability check.
func (g *DAG) AddEdge(from, to string) error {
	if from == "" || to == "" {
		return ErrEmptyVertexID
	}
	if from == to {
		return ErrLoopNotAllowed
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.children[from]; !ok {
		return ErrVertexNotFound
	}
	if _, ok := g.children[to]; !ok {
		return ErrVertexNotFound
	}
	if _, dup := g.children[from][to]; dup {
		return nil
	}
	// The edge from->to closes a cycle iff from is already reachable
	// from to. Checked before any mutation so rejection is atomic.
	if g.reachableLocked(to, from) {
		return ErrCycleDetected
	}

	g.children[from][to] = struct{}{}
	g.parents[to][from] = struct{}{}
	g.edgeCount++

	return nil
}

// RemoveEdge deletes the edge from -> to if present; absent edges are a no-op.
// Thread-safe: acquires a write lock.
//
// Complexity: O(1).
func (g *DAG) RemoveEdge(from, to string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.children[from][to]; !ok {
		return
	}
	delete(g.children[from], to)
	delete(g.parents[to], from)
	g.edgeCount--
}

// HasEdge reports whether the edge from -> to exists.
// Thread-safe: acquires a read lock.
//
// Complexity: O(1).
func (g *DAG) HasEdge(from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.children[from][to]

	return ok
}

// VertexCount returns the number of vertices.
// Thread-safe: acquires a read lock.
func (g *DAG) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.children)
}

// EdgeCount returns the number of edges.
// Thread-safe: acquires a read lock.
func (g *DAG) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edgeCount
}

// Vertices returns all vertex IDs in ascending order.
// The sorted order keeps every traversal in this module deterministic.
// Thread-safe: acquires a read lock.
//
// Complexity: O(V log V).
func (g *DAG) Vertices() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.verticesLocked()
}

func (g *DAG) verticesLocked() []string {
	ids := make([]string, 0, len(g.children))
	for id := range g.children {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Edges returns all edges ordered by (From, To).
// Thread-safe: acquires a read lock.
//
// Complexity: O(E log E).
func (g *DAG) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	edges := make([]Edge, 0, g.edgeCount)
	for from, tos := range g.children {
		for to := range tos {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}

		return edges[i].To < edges[j].To
	})

	return edges
}

// Children returns the direct successors of id in ascending order,
// or nil if the vertex does not exist.
// Thread-safe: acquires a read lock.
func (g *DAG) Children(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return sortedKeys(g.children[id])
}

// Parents returns the direct predecessors of id in ascending order,
// or nil if the vertex does not exist.
// Thread-safe: acquires a read lock.
func (g *DAG) Parents(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return sortedKeys(g.parents[id])
}

// Clone returns a deep copy of the graph. The copy shares no state with
// the original and may be mutated independently.
// Thread-safe: acquires a read lock on the source.
//
// Complexity: O(V + E).
func (g *DAG) Clone() *DAG {
	g.mu.RLock()
	defer g.mu.RUnlock()

	cp := NewDAG()
	for id := range g.children {
		cp.children[id] = make(map[string]struct{}, len(g.children[id]))
		cp.parents[id] = make(map[string]struct{}, len(g.parents[id]))
	}
	for from, tos := range g.children {
		for to := range tos {
			cp.children[from][to] = struct{}{}
			cp.parents[to][from] = struct{}{}
		}
	}
	cp.edgeCount = g.edgeCount

	return cp
}

// reachableLocked reports whether dst is reachable from src following
// directed edges. Caller must hold at least a read lock.
//
// Iterative DFS; O(V + E) time, O(V) space.
func (g *DAG) reachableLocked(src, dst string) bool {
	if src == dst {
		return true
	}
	seen := map[string]struct{}{src: {}}
	stack := []string{src}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for next := range g.children[v] {
			if next == dst {
				return true
			}
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			stack = append(stack, next)
		}
	}

	return false
}

func sortedKeys(set map[string]struct{}) []string {
	if set == nil {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}
