package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/katalvlaran/dbnstab/variables"
)

// Sentinel errors for dataset construction and derivation.
var (
	// ErrNoColumns indicates a dataset with an empty header.
	ErrNoColumns = errors.New("dataset: no columns")

	// ErrDuplicateColumn indicates two columns share a normalized name.
	ErrDuplicateColumn = errors.New("dataset: duplicate column name")

	// ErrRaggedRow indicates a row whose width differs from the header.
	ErrRaggedRow = errors.New("dataset: row width differs from header")

	// ErrColumnNotFound indicates a referenced column does not exist.
	ErrColumnNotFound = errors.New("dataset: column not found")

	// ErrRowOutOfRange indicates a row index outside [0, NumRows).
	ErrRowOutOfRange = errors.New("dataset: row index out of range")
)

// Dataset is an immutable-by-convention table of categorical levels.
type Dataset struct {
	cols     []string
	colIndex map[string]int
	rows     [][]string // rows[i][j] is the level of column j in row i
}

// New constructs a Dataset from a header and rows. Column names are
// normalized (digit-prefix rule) and must be unique afterwards; every row
// must match the header width. The caller must not mutate columns or rows
// after the call.
func New(columns []string, rows [][]string) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	d := &Dataset{
		cols:     make([]string, len(columns)),
		colIndex: make(map[string]int, len(columns)),
		rows:     rows,
	}
	for i, raw := range columns {
		name := variables.Normalize(raw)
		if _, dup := d.colIndex[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		d.cols[i] = name
		d.colIndex[name] = i
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d",
				ErrRaggedRow, i, len(row), len(columns))
		}
	}

	return d, nil
}

// FromCSV reads a header plus data rows.
func FromCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoColumns
	}

	return New(records[0], records[1:])
}

// Columns returns the normalized column names in table order.
// The returned slice must not be mutated.
func (d *Dataset) Columns() []string { return d.cols }

// NumColumns returns the number of columns.
func (d *Dataset) NumColumns() int { return len(d.cols) }

// NumRows returns the number of rows.
func (d *Dataset) NumRows() int { return len(d.rows) }

// HasColumn reports whether the (normalized) column exists.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.colIndex[variables.Normalize(name)]

	return ok
}

// Value returns the level at (row, column).
func (d *Dataset) Value(row int, column string) (string, error) {
	if row < 0 || row >= len(d.rows) {
		return "", fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}
	idx, ok := d.colIndex[variables.Normalize(column)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}

	return d.rows[row][idx], nil
}

// Column returns all levels of one column in row order.
func (d *Dataset) Column(name string) ([]string, error) {
	idx, ok := d.colIndex[variables.Normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	out := make([]string, len(d.rows))
	for i, row := range d.rows {
		out[i] = row[idx]
	}

	return out, nil
}

// Select projects the dataset onto the given columns, in the given order.
func (d *Dataset) Select(names []string) (*Dataset, error) {
	idx := make([]int, len(names))
	cols := make([]string, len(names))
	for i, raw := range names {
		name := variables.Normalize(raw)
		j, ok := d.colIndex[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
		}
		idx[i] = j
		cols[i] = name
	}
	rows := make([][]string, len(d.rows))
	for r, row := range d.rows {
		proj := make([]string, len(idx))
		for i, j := range idx {
			proj[i] = row[j]
		}
		rows[r] = proj
	}

	return New(cols, rows)
}

// Subset returns the rows at the given indices, in the given order.
// Row storage is shared with the receiver.
func (d *Dataset) Subset(indices []int) (*Dataset, error) {
	rows := make([][]string, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(d.rows) {
			return nil, fmt.Errorf("%w: %d", ErrRowOutOfRange, idx)
		}
		rows[i] = d.rows[idx]
	}

	return &Dataset{cols: d.cols, colIndex: d.colIndex, rows: rows}, nil
}

// Complete returns only the rows with no empty level: the rows a lag
// expansion left partially filled at each group boundary.
func (d *Dataset) Complete() *Dataset {
	rows := make([][]string, 0, len(d.rows))
	for _, row := range d.rows {
		full := true
		for _, v := range row {
			if v == "" {
				full = false
				break
			}
		}
		if full {
			rows = append(rows, row)
		}
	}

	return &Dataset{cols: d.cols, colIndex: d.colIndex, rows: rows}
}

// WriteCSV emits the header and rows.
func (d *Dataset) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(d.cols); err != nil {
		return fmt.Errorf("dataset: write header: %w", err)
	}
	for i, row := range d.rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("dataset: write row %d: %w", i, err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// sortedInts returns a sorted copy of idx.
func sortedInts(idx []int) []int {
	out := make([]int, len(idx))
	copy(out, idx)
	sort.Ints(out)

	return out
}
