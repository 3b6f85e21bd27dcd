// Package stability estimates feature-selection stability: it bootstraps
// the coefficient vectors of L1-regularized fits over a fixed lambda
// sequence into a three-dimensional tensor, then reduces that tensor into
// per-feature stability scores and directional z-scores.
package stability

import (
	"github.com/akitsu-lab/stabsel/pkg/errors"
)

// CoefficientTensor holds bootstrap coefficients with shape
// [features x lambdas x replicates]. Each slice along the replicate axis is
// one bootstrap model's coefficient vector (intercept excluded) evaluated
// at every lambda of the shared sequence. Values are written once during
// estimation and never mutated afterwards.
type CoefficientTensor struct {
	data       []float64
	features   int
	lambdas    int
	replicates int
}

// NewCoefficientTensor allocates a zeroed tensor.
func NewCoefficientTensor(features, lambdas, replicates int) (*CoefficientTensor, error) {
	if features <= 0 || lambdas <= 0 || replicates <= 0 {
		return nil, errors.NewValueError("NewCoefficientTensor", "all dimensions must be positive")
	}
	return &CoefficientTensor{
		data:       make([]float64, features*lambdas*replicates),
		features:   features,
		lambdas:    lambdas,
		replicates: replicates,
	}, nil
}

// Dims returns (features, lambdas, replicates).
func (t *CoefficientTensor) Dims() (int, int, int) {
	return t.features, t.lambdas, t.replicates
}

func (t *CoefficientTensor) offset(feature, lambda, replicate int) int {
	return (feature*t.lambdas+lambda)*t.replicates + replicate
}

// At returns the coefficient of feature at the given lambda index in the
// given replicate.
func (t *CoefficientTensor) At(feature, lambda, replicate int) float64 {
	return t.data[t.offset(feature, lambda, replicate)]
}

func (t *CoefficientTensor) set(feature, lambda, replicate int, v float64) {
	t.data[t.offset(feature, lambda, replicate)] = v
}

// FeatureCells returns a copy of every (lambda x replicate) cell of one
// feature flattened into a single slice, lambda-major. This is the
// collection the selector reduces and the one handed to downstream
// distribution rendering.
func (t *CoefficientTensor) FeatureCells(feature int) []float64 {
	start := feature * t.lambdas * t.replicates
	out := make([]float64, t.lambdas*t.replicates)
	copy(out, t.data[start:start+len(out)])
	return out
}
