// Package solvertest provides a deterministic PathSolver double for tests.
// It fits one univariate soft-thresholded coefficient per feature, which is
// cheap, fully reproducible, and shrinks coefficients to exactly zero as
// lambda grows — enough structure to exercise lambda selection, bootstrap
// tensors and stability scoring without the production solver.
package solvertest

import (
	"math"
	"math/rand/v2"
	"sync/atomic"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/akitsu-lab/stabsel/pkg/errors"
	"github.com/akitsu-lab/stabsel/solver"
)

// Solver is a deterministic PathSolver double.
type Solver struct {
	// PathLength is the number of lambdas FitCV generates (default 20).
	PathLength int
	// FailFirst makes the first N FitCV/FitPath calls return a
	// SolverFailureError, for exercising missing-trial handling.
	FailFirst int32

	calls atomic.Int32
}

// New returns a Solver with a 20-step lambda path.
func New() *Solver {
	return &Solver{PathLength: 20}
}

func (s *Solver) maybeFail(op string) error {
	if s.FailFirst > 0 && s.calls.Add(1) <= s.FailFirst {
		return errors.NewSolverFailureError(op, "injected failure", nil)
	}
	return nil
}

// univariate soft-threshold coefficients at one lambda, intercept first.
func coefficientsAt(X mat.Matrix, y []float64, lambda float64) []float64 {
	n, p := X.Dims()
	coef := make([]float64, p+1)

	yMean := stat.Mean(y, nil)
	col := make([]float64, n)
	interceptAdj := 0.0
	for j := 0; j < p; j++ {
		mat.Col(col, j, X)
		xMean := stat.Mean(col, nil)
		var cov, varX float64
		for i := 0; i < n; i++ {
			dx := col[i] - xMean
			cov += dx * (y[i] - yMean)
			varX += dx * dx
		}
		if varX == 0 {
			continue
		}
		cov /= float64(n)
		varX /= float64(n)

		soft := math.Abs(cov) - lambda
		if soft <= 0 {
			continue
		}
		b := math.Copysign(soft, cov) / varX
		coef[j+1] = b
		interceptAdj += b * xMean
	}
	coef[0] = yMean - interceptAdj
	return coef
}

// lambdaPath returns a strictly decreasing log-spaced path from the
// smallest lambda that zeroes every coefficient down to 0.1% of it.
func (s *Solver) lambdaPath(X mat.Matrix, y []float64) []float64 {
	n, p := X.Dims()
	yMean := stat.Mean(y, nil)
	col := make([]float64, n)
	lambdaMax := 0.0
	for j := 0; j < p; j++ {
		mat.Col(col, j, X)
		xMean := stat.Mean(col, nil)
		var cov float64
		for i := 0; i < n; i++ {
			cov += (col[i] - xMean) * (y[i] - yMean)
		}
		cov = math.Abs(cov / float64(n))
		if cov > lambdaMax {
			lambdaMax = cov
		}
	}
	if lambdaMax == 0 {
		lambdaMax = 1
	}

	length := s.PathLength
	if length < 2 {
		length = 2
	}
	path := make([]float64, length)
	ratio := math.Pow(1e-3, 1/float64(length-1))
	cur := lambdaMax
	for i := range path {
		path[i] = cur
		cur *= ratio
	}
	return path
}

func trainingError(X mat.Matrix, y []float64, coef []float64, family solver.Family) float64 {
	preds, err := solver.Predict(X, coef, family)
	if err != nil {
		return math.NaN()
	}
	var sum float64
	if family == solver.Binomial {
		const eps = 1e-15
		for i, p := range preds {
			p = math.Min(math.Max(p, eps), 1-eps)
			if y[i] == 1 {
				sum -= math.Log(p)
			} else {
				sum -= math.Log(1 - p)
			}
		}
	} else {
		for i, p := range preds {
			d := y[i] - p
			sum += d * d
		}
	}
	return sum / float64(len(y))
}

// FitCV implements solver.PathSolver. The error curve is the training error
// at each lambda, which generally decreases along the path, so Minimum
// lands near the smallest lambda and OneStandardError earlier.
func (s *Solver) FitCV(X mat.Matrix, y []float64, family solver.Family, folds int, _ *rand.Rand) (*solver.FittedPath, error) {
	if err := s.maybeFail("FitCV"); err != nil {
		return nil, err
	}
	n, _ := X.Dims()
	if len(y) != n {
		return nil, errors.NewDimensionError("solvertest.FitCV", n, len(y), 0)
	}

	lambdas := s.lambdaPath(X, y)
	path := &solver.FittedPath{
		Lambdas:      lambdas,
		CVError:      make([]float64, len(lambdas)),
		CVStdError:   make([]float64, len(lambdas)),
		Coefficients: make([][]float64, len(lambdas)),
	}
	for i, lambda := range lambdas {
		coef := coefficientsAt(X, y, lambda)
		path.Coefficients[i] = coef
		e := trainingError(X, y, coef, family)
		path.CVError[i] = e
		path.CVStdError[i] = e / math.Sqrt(float64(folds))
	}
	return path, nil
}

// FitPath implements solver.PathSolver.
func (s *Solver) FitPath(X mat.Matrix, y []float64, _ solver.Family, lambdas []float64) ([][]float64, error) {
	if err := s.maybeFail("FitPath"); err != nil {
		return nil, err
	}
	n, _ := X.Dims()
	if len(y) != n {
		return nil, errors.NewDimensionError("solvertest.FitPath", n, len(y), 0)
	}
	out := make([][]float64, len(lambdas))
	for i, lambda := range lambdas {
		out[i] = coefficientsAt(X, y, lambda)
	}
	return out, nil
}
