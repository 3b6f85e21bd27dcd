package solver

import (
	"github.com/akitsu-lab/stabsel/pkg/errors"
)

// LambdaCriterion selects one lambda from a fitted path.
type LambdaCriterion int

const (
	// OneStandardError picks the largest lambda whose cross-validated error
	// is within one standard error of the minimum, favoring simpler models.
	OneStandardError LambdaCriterion = iota
	// Minimum picks the lambda at the minimum cross-validated error.
	Minimum
)

// String returns the criterion name.
func (c LambdaCriterion) String() string {
	switch c {
	case OneStandardError:
		return "lambda.1se"
	case Minimum:
		return "lambda.min"
	default:
		return "unknown"
	}
}

// Selected identifies one lambda chosen from a FittedPath.
type Selected struct {
	Index   int
	Lambda  float64
	CVError float64
}

// SelectLambda applies the criterion to a fitted path. Non-finite error
// entries are skipped; if no entry has a finite error the path is unusable
// and a SolverFailureError is returned. On exact ties the largest
// qualifying lambda (earliest path entry) wins.
func SelectLambda(path *FittedPath, criterion LambdaCriterion) (Selected, error) {
	if err := path.Validate(); err != nil {
		return Selected{}, err
	}

	minIdx := -1
	for i, e := range path.CVError {
		if errors.CheckScalar("SelectLambda", e) != nil {
			continue
		}
		if minIdx < 0 || e < path.CVError[minIdx] {
			minIdx = i
		}
	}
	if minIdx < 0 {
		return Selected{}, errors.NewSolverFailureError("SelectLambda",
			"no lambda produced a finite cross-validated error", nil)
	}

	idx := minIdx
	if criterion == OneStandardError {
		threshold := path.CVError[minIdx] + path.CVStdError[minIdx]
		for i := 0; i < len(path.Lambdas); i++ {
			e := path.CVError[i]
			if errors.CheckScalar("SelectLambda", e) != nil {
				continue
			}
			if e <= threshold {
				idx = i
				break
			}
		}
	}

	return Selected{Index: idx, Lambda: path.Lambdas[idx], CVError: path.CVError[idx]}, nil
}
