package dataset

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/dbnstab/variables"
)

// ErrBadLagCount indicates AddLags was called with numLags < 1.
var ErrBadLagCount = errors.New("dataset: lag count must be at least 1")

// AddLags appends "<col>_lag<N>" columns for N in 1..numLags, shifting each
// non-identifier column N rows down within runs of equal groupBy values
// (rows are assumed ordered by group and then by time, as the loaders
// produce them). The first N rows of every group get an empty level; use
// Complete to drop those rows before learning.
//
// Identifier columns and already-lagged columns are not lagged again.
func (d *Dataset) AddLags(numLags int, groupBy string, idColumns ...string) (*Dataset, error) {
	if numLags < 1 {
		return nil, ErrBadLagCount
	}
	groupIdx, ok := d.colIndex[variables.Normalize(groupBy)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, groupBy)
	}

	skip := map[string]struct{}{d.cols[groupIdx]: {}}
	for _, id := range idColumns {
		skip[variables.Normalize(id)] = struct{}{}
	}

	var lagSources []int
	for j, col := range d.cols {
		if _, s := skip[col]; s {
			continue
		}
		if _, lag := variables.ParseLag(col); lag > 0 {
			continue
		}
		lagSources = append(lagSources, j)
	}

	// One (source column, lag) pair per new column; names already present
	// in the dataset are left alone rather than regenerated.
	type lagCol struct {
		src int
		lag int
	}
	var newCols []lagCol
	cols := make([]string, 0, len(d.cols)+len(lagSources)*numLags)
	cols = append(cols, d.cols...)
	for lag := 1; lag <= numLags; lag++ {
		for _, j := range lagSources {
			name := fmt.Sprintf("%s%s%d", d.cols[j], variables.LagMarker, lag)
			if _, exists := d.colIndex[name]; exists {
				continue
			}
			cols = append(cols, name)
			newCols = append(newCols, lagCol{src: j, lag: lag})
		}
	}

	rows := make([][]string, len(d.rows))
	for i := range d.rows {
		row := make([]string, 0, len(cols))
		row = append(row, d.rows[i]...)
		for _, lc := range newCols {
			src := i - lc.lag
			if src >= 0 && d.rows[src][groupIdx] == d.rows[i][groupIdx] {
				row = append(row, d.rows[src][lc.src])
			} else {
				row = append(row, "")
			}
		}
		rows[i] = row
	}

	return New(cols, rows)
}
