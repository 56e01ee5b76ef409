package dataset

import (
	"errors"
	"fmt"
	"math/rand"
)

// Sentinel errors for sampling.
var (
	// ErrBadFraction indicates a sampling fraction outside (0, 1].
	ErrBadFraction = errors.New("dataset: fraction must be in (0, 1]")

	// ErrNilRand indicates a nil random source was passed to a sampler.
	ErrNilRand = errors.New("dataset: nil random source")
)

// Subsample draws floor(frac * NumRows) rows without replacement using rng,
// and returns them in their original row order. The draw consumes rng
// deterministically, so the same seeded source always selects the same rows.
//
// Complexity: O(n) time via a partial Fisher-Yates over the index vector.
func (d *Dataset) Subsample(rng *rand.Rand, frac float64) (*Dataset, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	if frac <= 0 || frac > 1 {
		return nil, fmt.Errorf("%w: %v", ErrBadFraction, frac)
	}
	n := len(d.rows)
	k := int(frac * float64(n))
	if k == 0 && n > 0 {
		k = 1
	}

	idx := permutationPrefix(rng, n, k)

	return d.Subset(sortedInts(idx))
}

// Split partitions the rows into a training set and a hold-out set of
// floor(testFrac * NumRows) rows (at least 1 when the dataset is non-empty),
// drawn without replacement using rng. Both partitions keep original row
// order and are disjoint.
func (d *Dataset) Split(rng *rand.Rand, testFrac float64) (train, test *Dataset, err error) {
	if rng == nil {
		return nil, nil, ErrNilRand
	}
	if testFrac <= 0 || testFrac >= 1 {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadFraction, testFrac)
	}
	n := len(d.rows)
	k := int(testFrac * float64(n))
	if k == 0 && n > 0 {
		k = 1
	}

	perm := permutationPrefix(rng, n, n)
	test, err = d.Subset(sortedInts(perm[:k]))
	if err != nil {
		return nil, nil, err
	}
	train, err = d.Subset(sortedInts(perm[k:]))
	if err != nil {
		return nil, nil, err
	}

	return train, test, nil
}

// permutationPrefix runs k steps of a Fisher-Yates shuffle over 0..n-1 and
// returns the full shuffled vector; the first k entries are a uniform
// without-replacement draw. Callers slice as needed.
func permutationPrefix(rng *rand.Rand, n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k && i < n-1; i++ {
		j := i + rng.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}

	return idx[:k]
}
