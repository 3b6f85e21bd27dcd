package dataset

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/akitsu-lab/stabsel/core/random"
	"github.com/akitsu-lab/stabsel/pkg/errors"
)

// BalanceClasses builds a class-balanced row subset for classification:
// every positive index is paired with an equal-size uniform sample, drawn
// without replacement, from the negative pool (all rows not in positives).
// The returned slice is positives followed by the sampled negatives.
func BalanceClasses(rng *rand.Rand, n int, positives []int) ([]int, error) {
	if len(positives) == 0 {
		return nil, errors.NewConfigurationError("positiveIndices",
			"classification requires a non-empty positive index set", positives)
	}
	isPositive := make(map[int]bool, len(positives))
	for _, idx := range positives {
		if idx < 0 || idx >= n {
			return nil, errors.NewConfigurationError("positiveIndices", "index out of range", idx)
		}
		isPositive[idx] = true
	}
	pool := make([]int, 0, n-len(isPositive))
	for i := 0; i < n; i++ {
		if !isPositive[i] {
			pool = append(pool, i)
		}
	}
	if len(pool) < len(positives) {
		return nil, errors.NewConfigurationError("positiveIndices",
			"negative pool smaller than positive set", len(pool))
	}

	sampled := random.SampleWithoutReplacement(rng, pool, len(positives))
	out := make([]int, 0, 2*len(positives))
	out = append(out, positives...)
	out = append(out, sampled...)
	return out, nil
}

// SplitTrainTest partitions rows into disjoint train and test index sets by
// uniform random sampling without replacement. The train size is
// trainFraction*len(rows) rounded to the nearest integer; the test set is
// the remainder. Both sets preserve ascending row order so a fixed seed
// yields byte-identical splits.
func SplitTrainTest(rng *rand.Rand, rows []int, trainFraction float64) (train, test []int, err error) {
	if trainFraction <= 0 || trainFraction > 1 {
		return nil, nil, errors.NewConfigurationError("trainFraction",
			"must be in (0, 1]", trainFraction)
	}
	trainSize := int(math.Round(trainFraction * float64(len(rows))))
	if trainSize > len(rows) {
		trainSize = len(rows)
	}

	train = random.SampleWithoutReplacement(rng, rows, trainSize)
	inTrain := make(map[int]bool, len(train))
	for _, idx := range train {
		inTrain[idx] = true
	}
	test = make([]int, 0, len(rows)-trainSize)
	for _, idx := range rows {
		if !inTrain[idx] {
			test = append(test, idx)
		}
	}
	sort.Ints(train)
	sort.Ints(test)
	return train, test, nil
}
