package blacklist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/katalvlaran/dbnstab/core"
	"github.com/katalvlaran/dbnstab/variables"
)

// ErrNilPartition indicates Build was called without a classified partition.
var ErrNilPartition = errors.New("blacklist: nil partition")

// Blacklist is an immutable set of forbidden directed edges.
// The zero value is not usable; obtain instances from Build or New.
type Blacklist struct {
	set map[core.Edge]struct{}
}

// New constructs a Blacklist from explicit edges, deduplicating and
// dropping self-pairs. Intended for tests and for engines that need a
// hand-rolled constraint set.
func New(edges ...core.Edge) *Blacklist {
	bl := &Blacklist{set: make(map[core.Edge]struct{}, len(edges))}
	for _, e := range edges {
		if e.From == e.To {
			continue
		}
		bl.set[e] = struct{}{}
	}

	return bl
}

// Build derives the full forbidden edge set from a classified partition.
//
// The temporal rule is derived directly from its statement (for every
// ordered variable pair, the edge is forbidden whenever the source lies in
// a strictly less-lagged slice than the destination) rather than from a
// pairwise loop over slice indices, so there is no boundary slice to
// mis-handle.
//
// Complexity: O(V²) over the modeling variables; quadratic is acceptable
// at the tens-to-low-hundreds of columns this harness sees.
func Build(p *variables.Partition) (*Blacklist, error) {
	if p == nil {
		return nil, ErrNilPartition
	}

	lineup := p.Lineup()
	others := p.Others()
	bl := &Blacklist{set: make(map[core.Edge]struct{}, estimateSize(p))}

	// Rule 1: no edges in either direction between lineup statistics.
	for _, u := range lineup {
		for _, v := range lineup {
			if u == v {
				continue
			}
			bl.add(u, v)
		}
	}

	// Rule 2: nothing points into a lineup statistic from outside the group.
	for _, a := range others {
		for _, b := range lineup {
			bl.add(a, b)
		}
	}

	// Rule 3: no edge from a less-lagged slice into a more-lagged slice.
	// Rule 4: no contemporaneous edges within any lagged slice.
	for i := 0; i <= p.NumLags(); i++ {
		src := p.Slice(i)
		for j := i; j <= p.NumLags(); j++ {
			if i == j {
				if i == 0 {
					continue // current slice is exempt from rule 4
				}
				for _, u := range src {
					for _, v := range src {
						if u == v {
							continue
						}
						bl.add(u, v)
					}
				}
				continue
			}
			for _, u := range src {
				for _, v := range p.Slice(j) {
					bl.add(u, v)
				}
			}
		}
	}

	return bl, nil
}

// add inserts the edge, skipping self-pairs; duplicates collapse in the set.
func (b *Blacklist) add(from, to string) {
	if from == to {
		return
	}
	b.set[core.Edge{From: from, To: to}] = struct{}{}
}

// Contains reports whether the directed edge from -> to is forbidden.
func (b *Blacklist) Contains(from, to string) bool {
	_, ok := b.set[core.Edge{From: from, To: to}]

	return ok
}

// ContainsEdge reports whether e is forbidden.
func (b *Blacklist) ContainsEdge(e core.Edge) bool {
	_, ok := b.set[e]

	return ok
}

// Len returns the number of forbidden edges.
func (b *Blacklist) Len() int { return len(b.set) }

// Edges returns every forbidden edge ordered by (From, To).
func (b *Blacklist) Edges() []core.Edge {
	edges := make([]core.Edge, 0, len(b.set))
	for e := range b.set {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}

		return edges[i].To < edges[j].To
	})

	return edges
}

// Violations returns every edge of g that the blacklist forbids, ordered
// by (From, To). A compliant graph yields an empty slice.
func (b *Blacklist) Violations(g *core.DAG) []core.Edge {
	var out []core.Edge
	for _, e := range g.Edges() {
		if b.ContainsEdge(e) {
			out = append(out, e)
		}
	}

	return out
}

// WriteCSV emits the forbidden edges as "from,to" rows with a header,
// in deterministic (From, To) order.
func (b *Blacklist) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"from", "to"}); err != nil {
		return fmt.Errorf("blacklist: write header: %w", err)
	}
	for _, e := range b.Edges() {
		if err := cw.Write([]string{e.From, e.To}); err != nil {
			return fmt.Errorf("blacklist: write edge %s: %w", e, err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// estimateSize pre-sizes the set: rule 3 dominates with the cross-slice
// product, rules 1-2 add the lineup column. An estimate only; the map
// grows if the rules overlap less than expected.
func estimateSize(p *variables.Partition) int {
	var perSlice []int
	for i := 0; i <= p.NumLags(); i++ {
		perSlice = append(perSlice, len(p.Slice(i)))
	}
	n := 0
	for i, si := range perSlice {
		for j, sj := range perSlice {
			if j > i {
				n += si * sj
			}
		}
		if i > 0 {
			n += si * (si - 1)
		}
	}
	n += len(p.Lineup()) * (len(p.Lineup()) - 1)
	n += len(p.Others()) * len(p.Lineup())

	return n
}
