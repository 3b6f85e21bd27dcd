package solvertest

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/akitsu-lab/stabsel/core/random"
	"github.com/akitsu-lab/stabsel/pkg/errors"
	"github.com/akitsu-lab/stabsel/solver"
)

func syntheticData(n int) (*mat.Dense, []float64) {
	rng := random.New(123, 0)
	X := mat.NewDense(n, 3, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x0 := rng.NormFloat64()
		x1 := rng.NormFloat64()
		x2 := rng.NormFloat64()
		X.Set(i, 0, x0)
		X.Set(i, 1, x1)
		X.Set(i, 2, x2)
		y[i] = 2*x0 - 1.5*x1 + 0.1*rng.NormFloat64()
	}
	return X, y
}

func TestFitCVPathShape(t *testing.T) {
	X, y := syntheticData(80)
	s := New()

	path, err := s.FitCV(X, y, solver.Gaussian, 10, random.New(1, 0))
	if err != nil {
		t.Fatalf("FitCV() error = %v", err)
	}
	if err := path.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(path.Lambdas) != 20 {
		t.Errorf("path length = %d, want 20", len(path.Lambdas))
	}
	if path.NumFeatures() != 3 {
		t.Errorf("NumFeatures() = %d, want 3", path.NumFeatures())
	}

	// At the largest lambda every coefficient is shrunk to zero.
	for j, c := range path.Coefficients[0][1:] {
		if c != 0 {
			t.Errorf("coefficient %d at lambda max = %v, want 0", j, c)
		}
	}

	// With a strong linear signal the error at the end of the path is far
	// below the all-zero fit at lambda max.
	if path.CVError[len(path.CVError)-1] >= path.CVError[0]/2 {
		t.Errorf("error barely improved along path: %v -> %v",
			path.CVError[0], path.CVError[len(path.CVError)-1])
	}
	for _, e := range path.CVError {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			t.Fatalf("non-finite CV error in path: %v", path.CVError)
		}
	}
}

func TestFitPathMatchesSequence(t *testing.T) {
	X, y := syntheticData(60)
	s := New()

	lambdas := []float64{1.0, 0.5, 0.1, 0.01}
	coefs, err := s.FitPath(X, y, solver.Gaussian, lambdas)
	if err != nil {
		t.Fatalf("FitPath() error = %v", err)
	}
	if len(coefs) != len(lambdas) {
		t.Fatalf("len(coefs) = %d, want %d", len(coefs), len(lambdas))
	}
	for i, coef := range coefs {
		if len(coef) != 4 {
			t.Errorf("coefs[%d] has %d entries, want 4", i, len(coef))
		}
	}

	// Smaller lambda never produces a smaller-magnitude active coefficient.
	for j := 1; j < 4; j++ {
		if math.Abs(coefs[3][j]) < math.Abs(coefs[0][j]) {
			t.Errorf("coefficient %d shrank as lambda decreased", j)
		}
	}
}

func TestFailFirst(t *testing.T) {
	X, y := syntheticData(40)
	s := New()
	s.FailFirst = 2

	for i := 0; i < 2; i++ {
		_, err := s.FitCV(X, y, solver.Gaussian, 5, random.New(1, 0))
		var solverErr *errors.SolverFailureError
		if !errors.As(err, &solverErr) {
			t.Fatalf("call %d: error = %v, want SolverFailureError", i, err)
		}
	}
	if _, err := s.FitCV(X, y, solver.Gaussian, 5, random.New(1, 0)); err != nil {
		t.Fatalf("third call should succeed, got %v", err)
	}
}
