package core

// Vertex visitation states for the topological DFS.
const (
	white = iota // not visited yet
	gray         // in the recursion stack
	black        // fully explored
)

// TopologicalSort computes a linear ordering of the vertices such that for
// every edge u -> v, u appears before v. Vertices are visited in ascending
// ID order, so the result is deterministic for a given graph.
//
// A well-formed DAG can never fail this call, since AddEdge rejects cycles;
// ErrCycleDetected is still returned defensively if the invariant was
// somehow broken.
//
// Complexity: O(V + E) time, O(V) space.
func (g *DAG) TopologicalSort() ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	verts := g.verticesLocked()
	state := make(map[string]int, len(verts))
	order := make([]string, 0, len(verts))

	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case gray:
			return ErrCycleDetected
		case black:
			return nil
		}
		state[id] = gray
		for _, next := range sortedKeys(g.children[id]) {
			if err := visit(next); err != nil {
				return err
			}
		}
		state[id] = black
		order = append(order, id)

		return nil
	}

	for _, v := range verts {
		if state[v] == white {
			if err := visit(v); err != nil {
				return nil, err
			}
		}
	}

	// Reverse the post-order to obtain the topological order.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	return order, nil
}
