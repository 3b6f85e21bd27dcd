package dataset

import (
	"github.com/akitsu-lab/stabsel/pkg/errors"
)

// TaskKind discriminates the two supported modeling tasks.
type TaskKind int

const (
	// Regression fits a continuous response with a gaussian family.
	Regression TaskKind = iota
	// Classification fits binary labels with a binomial family.
	Classification
)

// String returns the task name.
func (k TaskKind) String() string {
	switch k {
	case Regression:
		return "regression"
	case Classification:
		return "classification"
	default:
		return "unknown"
	}
}

// Task is a tagged variant describing the modeling task. The classification
// arm carries its required positive row-index set, enforced at construction
// rather than checked ad hoc downstream.
type Task struct {
	kind      TaskKind
	positives []int
}

// RegressionTask returns the regression task.
func RegressionTask() Task {
	return Task{kind: Regression}
}

// ClassificationTask returns a classification task over the given positive
// row indices. The set must be non-empty; the complement within the matrix
// forms the negative pool and is validated against the matrix at fit time.
func ClassificationTask(positiveIndices []int) (Task, error) {
	if len(positiveIndices) == 0 {
		return Task{}, errors.NewConfigurationError("positiveIndices",
			"classification requires a non-empty positive index set", positiveIndices)
	}
	owned := make([]int, len(positiveIndices))
	copy(owned, positiveIndices)
	return Task{kind: Classification, positives: owned}, nil
}

// Kind returns the task kind.
func (t Task) Kind() TaskKind {
	return t.kind
}

// Positives returns the positive row indices for a classification task, or
// nil for regression.
func (t Task) Positives() []int {
	if t.positives == nil {
		return nil
	}
	out := make([]int, len(t.positives))
	copy(out, t.positives)
	return out
}

// Validate checks the task against a matrix with n rows: every positive
// index must be in range and the negative complement must be non-empty.
func (t Task) Validate(n int) error {
	if t.kind != Classification {
		return nil
	}
	for _, idx := range t.positives {
		if idx < 0 || idx >= n {
			return errors.NewConfigurationError("positiveIndices",
				"index out of range", idx)
		}
	}
	if len(t.positives) >= n {
		return errors.NewConfigurationError("positiveIndices",
			"no negative rows remain in the matrix", len(t.positives))
	}
	return nil
}
