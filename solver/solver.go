// Package solver defines the boundary to the L1 regularization path solver.
// The coordinate-descent solver itself is an external capability; this
// package holds the contract it must satisfy, the FittedPath value it
// produces, and the lambda selection rules applied to that path.
package solver

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Family selects the response family for a fit.
type Family int

const (
	// Gaussian fits a continuous response (linear model).
	Gaussian Family = iota
	// Binomial fits binary labels (logistic model).
	Binomial
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case Gaussian:
		return "gaussian"
	case Binomial:
		return "binomial"
	default:
		return "unknown"
	}
}

// PathSolver is the contract consumed by the fitting components. An
// implementation must support both families and is expected to return a
// SolverFailureError (pkg/errors) when the design matrix is rank-deficient
// beyond recovery or no lambda yields a finite error estimate.
type PathSolver interface {
	// FitCV derives a lambda path from the data, estimates per-lambda error
	// by k-fold cross-validation on (X, y), and returns the full path with
	// per-lambda coefficients. Fold assignment randomness must come from
	// rng so trials stay reproducible.
	FitCV(X mat.Matrix, y []float64, family Family, folds int, rng *rand.Rand) (*FittedPath, error)

	// FitPath fits a plain (non-cross-validated) model at every lambda in
	// the supplied sequence, in the supplied order, and returns one
	// coefficient vector per lambda. Each vector has p+1 entries with the
	// intercept at index 0.
	FitPath(X mat.Matrix, y []float64, family Family, lambdas []float64) ([][]float64, error)
}
