package stability

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/katalvlaran/dbnstab/core"
)

// ErrDuplicateConfig indicates two prevalence columns share a
// configuration identifier.
var ErrDuplicateConfig = errors.New("stability: duplicate configuration identifier")

// PrevalenceTable maps (edge, configuration) to the fraction of resampling
// iterations in which the edge appeared. Only edges observed at least once
// are materialized; Rate returns 0 for everything else, which is what a
// dense export fills in.
//
// Finalized once per run; immutable afterwards.
type PrevalenceTable struct {
	configs []string
	rows    map[core.Edge]map[string]float64
}

// newTable finalizes one configuration's edge counts into a table column.
func newTable(configID string, iterations int, counts map[core.Edge]int64) *PrevalenceTable {
	t := &PrevalenceTable{
		configs: []string{configID},
		rows:    make(map[core.Edge]map[string]float64, len(counts)),
	}
	for e, n := range counts {
		t.rows[e] = map[string]float64{
			configID: float64(n) / float64(iterations),
		}
	}

	return t
}

// Configs returns the configuration identifiers (column order).
func (t *PrevalenceTable) Configs() []string { return t.configs }

// Edges returns every observed edge ordered by (From, To).
func (t *PrevalenceTable) Edges() []core.Edge {
	edges := make([]core.Edge, 0, len(t.rows))
	for e := range t.rows {
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

// Rate returns the prevalence of e under the given configuration, or 0
// when the edge was never observed there.
func (t *PrevalenceTable) Rate(e core.Edge, configID string) float64 {
	return t.rows[e][configID]
}

// Merge appends the columns of other into t. Configuration identifiers
// must stay unique across the merged table.
func (t *PrevalenceTable) Merge(other *PrevalenceTable) error {
	for _, c := range other.configs {
		for _, existing := range t.configs {
			if c == existing {
				return fmt.Errorf("%w: %q", ErrDuplicateConfig, c)
			}
		}
	}
	t.configs = append(t.configs, other.configs...)
	for e, byConfig := range other.rows {
		if t.rows[e] == nil {
			t.rows[e] = make(map[string]float64, len(byConfig))
		}
		for c, rate := range byConfig {
			t.rows[e][c] = rate
		}
	}

	return nil
}

// WriteCSV emits one row per observed edge with a column per
// configuration, zeros filled in explicitly, in deterministic order.
func (t *PrevalenceTable) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := append([]string{"from", "to"}, t.configs...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("stability: write header: %w", err)
	}
	for _, e := range t.Edges() {
		rec := make([]string, 0, len(header))
		rec = append(rec, e.From, e.To)
		for _, c := range t.configs {
			rec = append(rec, strconv.FormatFloat(t.Rate(e, c), 'g', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("stability: write edge %s: %w", e, err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// ScoreRecord is one row of the per-iteration score log.
type ScoreRecord struct {
	// Iteration is the 1-based iteration index.
	Iteration int

	// ConfigID identifies the configuration the iteration belongs to.
	ConfigID string

	// Score is the network score of the iteration's learned structure.
	Score float64
}

// WriteScoreLogCSV emits "iteration,configuration,score" rows in their
// recorded order.
func WriteScoreLogCSV(w io.Writer, records []ScoreRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"iteration", "configuration", "score"}); err != nil {
		return fmt.Errorf("stability: write score header: %w", err)
	}
	for _, r := range records {
		rec := []string{
			strconv.Itoa(r.Iteration),
			r.ConfigID,
			strconv.FormatFloat(r.Score, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("stability: write score row %d: %w", r.Iteration, err)
		}
	}
	cw.Flush()

	return cw.Error()
}
