package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/dbnstab/variables"
)

// Selection is one row of a feature-selection file.
type Selection struct {
	// Feature is the base feature name (normalized on load).
	Feature string

	// Include reports whether the feature was flagged for modeling.
	Include bool
}

// Sentinel errors for feature-selection handling.
var (
	// ErrBadSelectionRow indicates a malformed feature-selection row.
	ErrBadSelectionRow = errors.New("dataset: malformed feature-selection row")

	// ErrNoFeaturesSelected indicates the filter would keep no columns.
	ErrNoFeaturesSelected = errors.New("dataset: no selected feature present in dataset")
)

// LoadFeatureSelection reads "feature,include" rows. A header row whose
// second field does not parse as a boolean is tolerated and skipped.
func LoadFeatureSelection(r io.Reader) ([]Selection, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: read feature selection: %w", err)
	}

	out := make([]Selection, 0, len(records))
	for i, rec := range records {
		include, perr := strconv.ParseBool(strings.TrimSpace(rec[1]))
		if perr != nil {
			if i == 0 {
				continue // header
			}
			return nil, fmt.Errorf("%w: line %d: %q", ErrBadSelectionRow, i+1, rec[1])
		}
		out = append(out, Selection{
			Feature: variables.Normalize(strings.TrimSpace(rec[0])),
			Include: include,
		})
	}

	return out, nil
}

// ApplyFeatureSelection projects the dataset onto the included features,
// each together with its lagged companion columns, plus the given
// identifier columns. A flagged feature with no matching column is skipped
// silently; selection files legitimately list features absent from some
// datasets. Column order of the receiver is preserved.
func (d *Dataset) ApplyFeatureSelection(sel []Selection, idColumns ...string) (*Dataset, error) {
	keepIDs := make(map[string]struct{}, len(idColumns))
	for _, id := range idColumns {
		keepIDs[variables.Normalize(id)] = struct{}{}
	}

	keep := make([]string, 0, len(d.cols))
	matched := false
	for _, col := range d.cols {
		if _, isID := keepIDs[col]; isID {
			keep = append(keep, col)
			continue
		}
		for _, s := range sel {
			if !s.Include {
				continue
			}
			if matchesFeature(col, s.Feature) {
				keep = append(keep, col)
				matched = true
				break
			}
		}
	}
	if !matched {
		return nil, ErrNoFeaturesSelected
	}

	return d.Select(keep)
}

// matchesFeature reports whether col is the feature itself or one of its
// lagged companions ("<feature>...lag..." names).
func matchesFeature(col, feature string) bool {
	if col == feature {
		return true
	}
	if !strings.HasPrefix(col, feature) {
		return false
	}

	return strings.Contains(col[len(feature):], "lag")
}
