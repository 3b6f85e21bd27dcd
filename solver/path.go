package solver

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/akitsu-lab/stabsel/pkg/errors"
)

// FittedPath is the result of one cross-validated fit: the candidate lambda
// sequence in strictly decreasing order, the per-lambda cross-validated
// error estimate with its standard error, and the per-lambda coefficient
// vectors (p+1 entries, intercept at index 0).
type FittedPath struct {
	Lambdas      []float64
	CVError      []float64
	CVStdError   []float64
	Coefficients [][]float64
}

// Validate checks the structural invariants of the path: non-empty,
// strictly decreasing lambdas and aligned slice lengths.
func (p *FittedPath) Validate() error {
	n := len(p.Lambdas)
	if n == 0 {
		return errors.NewValueError("FittedPath.Validate", "empty lambda path")
	}
	if len(p.CVError) != n {
		return errors.NewDimensionError("FittedPath.Validate", n, len(p.CVError), 0)
	}
	if len(p.CVStdError) != n {
		return errors.NewDimensionError("FittedPath.Validate", n, len(p.CVStdError), 0)
	}
	if len(p.Coefficients) != n {
		return errors.NewDimensionError("FittedPath.Validate", n, len(p.Coefficients), 0)
	}
	for i := 1; i < n; i++ {
		if !(p.Lambdas[i] < p.Lambdas[i-1]) {
			return errors.NewValueError("FittedPath.Validate", "lambda path is not strictly decreasing")
		}
	}
	return nil
}

// NumFeatures returns p, the coefficient count excluding the intercept.
func (p *FittedPath) NumFeatures() int {
	if len(p.Coefficients) == 0 {
		return 0
	}
	return len(p.Coefficients[0]) - 1
}

// PredictAt computes the linear predictor for every row of X at the path
// entry idx. For the Binomial family the result is mapped through the
// logistic function, giving the predicted positive-class probability.
func (p *FittedPath) PredictAt(idx int, X mat.Matrix, family Family) ([]float64, error) {
	if idx < 0 || idx >= len(p.Coefficients) {
		return nil, errors.NewValueError("FittedPath.PredictAt", "lambda index out of range")
	}
	return Predict(X, p.Coefficients[idx], family)
}

// Predict applies a coefficient vector (p+1 entries, intercept first) to
// every row of X. Binomial predictions are probabilities, not thresholded
// labels.
func Predict(X mat.Matrix, coef []float64, family Family) ([]float64, error) {
	n, p := X.Dims()
	if len(coef) != p+1 {
		return nil, errors.NewDimensionError("solver.Predict", p+1, len(coef), 1)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		eta := coef[0]
		for j := 0; j < p; j++ {
			eta += coef[j+1] * X.At(i, j)
		}
		if family == Binomial {
			out[i] = 1.0 / (1.0 + math.Exp(-eta))
		} else {
			out[i] = eta
		}
	}
	return out, nil
}
