package variables

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Naming-convention markers shared by the dataset loader, the classifier,
// and the seed-graph loader.
const (
	// LagMarker is the literal infix introducing a lag suffix: "<name>_lag<N>".
	LagMarker = "_lag"

	// LineupMarker is the substring tagging season-to-date lineup statistics.
	LineupMarker = "BUCKET"

	// DigitPrefix is prepended to any name that begins with a digit, applied
	// consistently to data columns and edge-list names so references match.
	DigitPrefix = "X"
)

// Sentinel errors for classification.
var (
	// ErrNoColumns indicates an empty column set was passed to Classify.
	ErrNoColumns = errors.New("variables: no columns to classify")

	// ErrNegativeLagCount indicates numLags < 0.
	ErrNegativeLagCount = errors.New("variables: negative lag count")

	// ErrDuplicateColumn indicates the same (normalized) name appears twice.
	ErrDuplicateColumn = errors.New("variables: duplicate column name")

	// ErrLagOutOfRange indicates a column's lag suffix exceeds the declared
	// number of lag slices.
	ErrLagOutOfRange = errors.New("variables: lag suffix exceeds lag count")
)

// Group is the semantic group of a variable.
type Group int

const (
	// GroupUnclassified marks identifier columns excluded from modeling.
	GroupUnclassified Group = iota

	// GroupLineup marks season-to-date lineup statistics (LineupMarker names).
	GroupLineup

	// GroupEvent marks event-driven interval features (everything else).
	GroupEvent
)

// String returns the group name used in exports and log fields.
func (g Group) String() string {
	switch g {
	case GroupLineup:
		return "lineup-statistic"
	case GroupEvent:
		return "event-driven"
	default:
		return "unclassified"
	}
}

// Variable is one dataset column with its derived time lag and group.
type Variable struct {
	// Name is the normalized column name.
	Name string

	// Lag is the number of time steps in the past; 0 means the current slice.
	Lag int

	// Group is the semantic group derived from the name.
	Group Group
}

// Normalize returns name with DigitPrefix prepended when the first rune is
// a digit, and name unchanged otherwise.
func Normalize(name string) string {
	if name == "" {
		return name
	}
	if unicode.IsDigit(rune(name[0])) {
		return DigitPrefix + name
	}

	return name
}

// ParseLag splits a column name into its base and lag index.
// "Steal_home_lag2" yields ("Steal_home", 2); a name without a valid
// "_lag<N>" suffix yields (name, 0).
func ParseLag(name string) (string, int) {
	idx := strings.LastIndex(name, LagMarker)
	if idx < 0 {
		return name, 0
	}
	digits := name[idx+len(LagMarker):]
	if digits == "" {
		return name, 0
	}
	lag, err := strconv.Atoi(digits)
	if err != nil || lag <= 0 {
		return name, 0
	}

	return name[:idx], lag
}

// Partition is the immutable classification of one column set: the slice
// partition {current, lag_1..lag_L} plus the lineup/other split.
type Partition struct {
	numLags int
	slices  [][]string // slices[i] holds the names in slice lag_i (0 = current)
	lineup  []string
	other   []string
	byName  map[string]Variable
}

// Classify derives a Partition from the given column names and lag count.
//
// Names are normalized first. Identifier columns (exactly matching an entry
// of idColumns) are recorded as unclassified and excluded from every
// partition; they carry no temporal or group semantics. A lag suffix larger
// than numLags is a configuration mismatch and fails the call.
//
// Complexity: O(C log C) for C columns.
func Classify(columns []string, numLags int, idColumns ...string) (*Partition, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	if numLags < 0 {
		return nil, ErrNegativeLagCount
	}

	ids := make(map[string]struct{}, len(idColumns))
	for _, id := range idColumns {
		ids[Normalize(id)] = struct{}{}
	}

	p := &Partition{
		numLags: numLags,
		slices:  make([][]string, numLags+1),
		byName:  make(map[string]Variable, len(columns)),
	}
	for _, raw := range columns {
		name := Normalize(raw)
		if _, dup := p.byName[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		if _, isID := ids[name]; isID {
			p.byName[name] = Variable{Name: name, Group: GroupUnclassified}
			continue
		}

		_, lag := ParseLag(name)
		if lag > numLags {
			return nil, fmt.Errorf("%w: %q has lag %d, want at most %d",
				ErrLagOutOfRange, name, lag, numLags)
		}

		group := GroupEvent
		if strings.Contains(name, LineupMarker) {
			group = GroupLineup
		}

		p.byName[name] = Variable{Name: name, Lag: lag, Group: group}
		p.slices[lag] = append(p.slices[lag], name)
		if group == GroupLineup {
			p.lineup = append(p.lineup, name)
		} else {
			p.other = append(p.other, name)
		}
	}

	for i := range p.slices {
		sort.Strings(p.slices[i])
	}
	sort.Strings(p.lineup)
	sort.Strings(p.other)

	return p, nil
}

// NumLags returns the declared number of lag slices L.
func (p *Partition) NumLags() int { return p.numLags }

// Slice returns the sorted variable names in slice lag_i; lag 0 is the
// current slice. Out-of-range lags yield nil.
func (p *Partition) Slice(lag int) []string {
	if lag < 0 || lag >= len(p.slices) {
		return nil
	}

	return p.slices[lag]
}

// Current returns the sorted names of the current (lag 0) slice.
func (p *Partition) Current() []string { return p.Slice(0) }

// Lineup returns the sorted lineup-statistic variable names.
func (p *Partition) Lineup() []string { return p.lineup }

// Others returns the sorted non-lineup modeling variable names.
func (p *Partition) Others() []string { return p.other }

// Names returns every modeling variable name (all slices, no identifier
// columns) in ascending order.
func (p *Partition) Names() []string {
	out := make([]string, 0, len(p.lineup)+len(p.other))
	out = append(out, p.lineup...)
	out = append(out, p.other...)
	sort.Strings(out)

	return out
}

// Lookup returns the classified variable for name (after normalization).
func (p *Partition) Lookup(name string) (Variable, bool) {
	v, ok := p.byName[Normalize(name)]

	return v, ok
}

// SliceName renders the conventional slice label: "current" or "lag_<i>".
func SliceName(lag int) string {
	if lag == 0 {
		return "current"
	}

	return fmt.Sprintf("lag_%d", lag)
}
