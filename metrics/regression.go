// Package metrics computes the performance measures used by the evaluation
// components: Pearson correlation for regression trials, ROC curves and AUC
// for classification trials.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/akitsu-lab/stabsel/pkg/errors"
)

// PearsonCorrelation computes the Pearson correlation between predicted and
// observed values. When either input has zero variance the correlation is
// undefined; 0 is returned in that case so a degenerate trial does not
// poison downstream aggregation.
func PearsonCorrelation(yTrue, yPred []float64) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "PearsonCorrelation")
	}
	if len(yPred) != n {
		return 0, errors.NewDimensionError("PearsonCorrelation", n, len(yPred), 0)
	}
	if n < 2 {
		return 0, errors.NewValueError("PearsonCorrelation", "need at least 2 observations")
	}

	r := stat.Correlation(yTrue, yPred, nil)
	if math.IsNaN(r) {
		return 0, nil
	}
	return r, nil
}

// MSE computes the mean squared error.
func MSE(yTrue, yPred []float64) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "MSE")
	}
	if len(yPred) != n {
		return 0, errors.NewDimensionError("MSE", n, len(yPred), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue[i] - yPred[i]
		sum += diff * diff
	}
	return sum / float64(n), nil
}
