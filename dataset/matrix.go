// Package dataset holds the in-memory data model shared by the fitting and
// stability components: a named feature matrix, a response vector, and the
// task description. Values are immutable after construction; every
// transformation returns a new value and row selection is always by an
// explicit index set.
package dataset

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/akitsu-lab/stabsel/pkg/errors"
)

// FeatureMatrix is an n x p matrix of named numeric features. Missing
// entries are represented as NaN.
type FeatureMatrix struct {
	data  *mat.Dense
	names []string
}

// NewFeatureMatrix wraps data with feature names. If names is nil, columns
// are named x0..x{p-1}. The matrix is copied so later mutation of data does
// not leak into the FeatureMatrix.
func NewFeatureMatrix(data *mat.Dense, names []string) (*FeatureMatrix, error) {
	if data == nil {
		return nil, errors.Wrap(errors.ErrEmptyData, "NewFeatureMatrix")
	}
	rows, cols := data.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "NewFeatureMatrix")
	}
	if names == nil {
		names = make([]string, cols)
		for j := range names {
			names[j] = fmt.Sprintf("x%d", j)
		}
	}
	if len(names) != cols {
		return nil, errors.NewDimensionError("NewFeatureMatrix", cols, len(names), 1)
	}
	owned := make([]string, len(names))
	copy(owned, names)
	return &FeatureMatrix{data: mat.DenseCopyOf(data), names: owned}, nil
}

// Rows returns the observation count.
func (m *FeatureMatrix) Rows() int {
	r, _ := m.data.Dims()
	return r
}

// Cols returns the feature count.
func (m *FeatureMatrix) Cols() int {
	_, c := m.data.Dims()
	return c
}

// Names returns the feature names in column order.
func (m *FeatureMatrix) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// At returns the value at row i, column j.
func (m *FeatureMatrix) At(i, j int) float64 {
	return m.data.At(i, j)
}

// RawMatrix returns a read-only view of the backing matrix for linear
// algebra. Callers must not mutate it.
func (m *FeatureMatrix) RawMatrix() mat.Matrix {
	return m.data
}

// RowHasMissing reports whether any entry in row i is NaN.
func (m *FeatureMatrix) RowHasMissing(i int) bool {
	_, c := m.data.Dims()
	for j := 0; j < c; j++ {
		if math.IsNaN(m.data.At(i, j)) {
			return true
		}
	}
	return false
}

// Subset returns a new FeatureMatrix containing the given rows in the given
// order. Duplicate indices are allowed (bootstrap resampling relies on it).
func (m *FeatureMatrix) Subset(rows []int) *FeatureMatrix {
	_, c := m.data.Dims()
	out := mat.NewDense(len(rows), c, nil)
	for i, idx := range rows {
		for j := 0; j < c; j++ {
			out.Set(i, j, m.data.At(idx, j))
		}
	}
	names := make([]string, len(m.names))
	copy(names, m.names)
	return &FeatureMatrix{data: out, names: names}
}

// Response is the length-n response vector aligned row-for-row with a
// FeatureMatrix. Values are continuous for regression and {0,1} labels for
// classification.
type Response []float64

// Subset returns a new Response with the given rows in the given order.
func (r Response) Subset(rows []int) Response {
	out := make(Response, len(rows))
	for i, idx := range rows {
		out[i] = r[idx]
	}
	return out
}

// HasMissing reports whether the value at row i is NaN.
func (r Response) HasMissing(i int) bool {
	return math.IsNaN(r[i])
}
