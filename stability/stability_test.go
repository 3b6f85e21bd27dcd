package stability_test

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/akitsu-lab/stabsel/core/random"
	"github.com/akitsu-lab/stabsel/dataset"
	"github.com/akitsu-lab/stabsel/pkg/errors"
	"github.com/akitsu-lab/stabsel/solver"
	"github.com/akitsu-lab/stabsel/solver/solvertest"
	"github.com/akitsu-lab/stabsel/stability"
)

// fiveFeatureData builds n rows over 5 features where only the first two
// carry signal; the last feature is constant so its coefficient is always
// exactly zero.
func fiveFeatureData(t *testing.T, n int) (*dataset.FeatureMatrix, dataset.Response) {
	t.Helper()
	rng := random.New(77, 0)
	data := mat.NewDense(n, 5, nil)
	y := make(dataset.Response, n)
	for i := 0; i < n; i++ {
		x0 := rng.NormFloat64()
		x1 := rng.NormFloat64()
		data.Set(i, 0, x0)
		data.Set(i, 1, x1)
		data.Set(i, 2, rng.NormFloat64())
		data.Set(i, 3, rng.NormFloat64())
		data.Set(i, 4, 1.0) // zero variance, never selected
		y[i] = 4*x0 - 3*x1 + 0.2*rng.NormFloat64()
	}
	m, err := dataset.NewFeatureMatrix(data, []string{"up", "down", "n1", "n2", "flat"})
	require.NoError(t, err)
	return m, y
}

func fixedLambdas(k int) []float64 {
	out := make([]float64, k)
	v := 2.0
	for i := range out {
		out[i] = v
		v *= 0.7
	}
	return out
}

func TestBootstrapTensorShape(t *testing.T) {
	// 5 features, 20 lambdas, 50 replicates must give exactly (5, 20, 50)
	// regardless of which rows were resampled.
	m, y := fiveFeatureData(t, 60)

	boot, err := stability.NewBootstrap(solvertest.New(), stability.WithReplicates(50))
	require.NoError(t, err)

	tensor, err := boot.Run(context.Background(), m, y, dataset.RegressionTask(), fixedLambdas(20))
	require.NoError(t, err)

	p, l, b := tensor.Dims()
	assert.Equal(t, 5, p)
	assert.Equal(t, 20, l)
	assert.Equal(t, 50, b)
	assert.Len(t, tensor.FeatureCells(0), 20*50)
}

func TestBootstrapEmptyLambdaSequence(t *testing.T) {
	m, y := fiveFeatureData(t, 40)

	boot, err := stability.NewBootstrap(solvertest.New())
	require.NoError(t, err)

	_, err = boot.Run(context.Background(), m, y, dataset.RegressionTask(), nil)
	var cfgErr *errors.ConfigurationError
	require.True(t, errors.As(err, &cfgErr), "error = %v", err)
}

func TestBootstrapReplicateFailureAborts(t *testing.T) {
	m, y := fiveFeatureData(t, 40)

	ps := solvertest.New()
	ps.FailFirst = 1

	boot, err := stability.NewBootstrap(ps, stability.WithReplicates(5))
	require.NoError(t, err)

	_, err = boot.Run(context.Background(), m, y, dataset.RegressionTask(), fixedLambdas(4))
	var solverErr *errors.SolverFailureError
	require.True(t, errors.As(err, &solverErr), "error = %v", err)
}

// nanPathSolver returns NaN coefficients from every plain path fit, the way
// an unrecoverably ill-conditioned solve would.
type nanPathSolver struct{}

func (nanPathSolver) FitCV(X mat.Matrix, y []float64, family solver.Family, folds int, rng *rand.Rand) (*solver.FittedPath, error) {
	return solvertest.New().FitCV(X, y, family, folds, rng)
}

func (nanPathSolver) FitPath(X mat.Matrix, _ []float64, _ solver.Family, lambdas []float64) ([][]float64, error) {
	_, p := X.Dims()
	out := make([][]float64, len(lambdas))
	for i := range out {
		out[i] = make([]float64, p+1)
		out[i][1] = math.NaN()
	}
	return out, nil
}

func TestBootstrapNonFiniteCoefficientAborts(t *testing.T) {
	// A NaN coefficient would count as a non-zero tensor cell and skew the
	// stability scores, so the run must fail instead of storing it.
	m, y := fiveFeatureData(t, 40)

	boot, err := stability.NewBootstrap(nanPathSolver{}, stability.WithReplicates(3))
	require.NoError(t, err)

	_, err = boot.Run(context.Background(), m, y, dataset.RegressionTask(), fixedLambdas(4))
	var valErr *errors.ValueError
	require.True(t, errors.As(err, &valErr), "error = %v", err)
}

func TestBootstrapReproducibility(t *testing.T) {
	m, y := fiveFeatureData(t, 50)
	lambdas := fixedLambdas(8)

	run := func(workers int) *stability.CoefficientTensor {
		boot, err := stability.NewBootstrap(solvertest.New(),
			stability.WithReplicates(12),
			stability.WithBaseSeed(5150),
			stability.WithConcurrency(workers),
		)
		require.NoError(t, err)
		tensor, err := boot.Run(context.Background(), m, y, dataset.RegressionTask(), lambdas)
		require.NoError(t, err)
		return tensor
	}

	a := run(1)
	b := run(1)
	c := run(3)

	p, l, r := a.Dims()
	for j := 0; j < p; j++ {
		for li := 0; li < l; li++ {
			for ri := 0; ri < r; ri++ {
				require.Equal(t, a.At(j, li, ri), b.At(j, li, ri))
				require.Equal(t, a.At(j, li, ri), c.At(j, li, ri))
			}
		}
	}
}

func TestSelectorStabilityScores(t *testing.T) {
	m, y := fiveFeatureData(t, 80)

	boot, err := stability.NewBootstrap(solvertest.New(), stability.WithReplicates(30))
	require.NoError(t, err)
	tensor, err := boot.Run(context.Background(), m, y, dataset.RegressionTask(), fixedLambdas(10))
	require.NoError(t, err)

	// The default threshold is 0.7.
	selector, err := stability.NewSelector()
	require.NoError(t, err)
	sel, err := selector.Select(tensor, m)
	require.NoError(t, err)

	require.Len(t, sel.All, 5)
	for _, rec := range sel.All {
		assert.GreaterOrEqual(t, rec.Stability, 0.0, "feature %s", rec.Feature)
		assert.LessOrEqual(t, rec.Stability, 1.0, "feature %s", rec.Feature)
		assert.Len(t, rec.Values, 10*30)
	}

	// Every selected feature passes the threshold and ordering is
	// non-increasing by stability.
	for i, rec := range sel.Selected {
		assert.GreaterOrEqual(t, rec.Stability, 0.7)
		assert.False(t, rec.Degenerate)
		if i > 0 {
			assert.LessOrEqual(t, rec.Stability, sel.Selected[i-1].Stability)
		}
	}

	// The two signal features dominate and carry opposite directions.
	byName := make(map[string]stability.Record)
	for _, rec := range sel.All {
		byName[rec.Feature] = rec
	}
	assert.Equal(t, stability.DirectionPositive, byName["up"].Direction)
	assert.Equal(t, stability.DirectionNegative, byName["down"].Direction)

	// Direction partition only contains selected features with a strict sign.
	for _, rec := range sel.Positive {
		assert.Greater(t, rec.ZScore, 0.0)
	}
	for _, rec := range sel.Negative {
		assert.Less(t, rec.ZScore, 0.0)
	}
}

func TestSelectorZeroCoefficientFeature(t *testing.T) {
	// A feature whose coefficient is identically zero across every cell
	// reports stability 0 and must not blow up on the z-score; the
	// degeneracy is caught and the feature excluded from selection.
	m, y := fiveFeatureData(t, 80)

	var warned []error
	errors.SetWarningHandler(func(w error) { warned = append(warned, w) })
	defer errors.SetWarningHandler(nil)

	boot, err := stability.NewBootstrap(solvertest.New(), stability.WithReplicates(10))
	require.NoError(t, err)
	tensor, err := boot.Run(context.Background(), m, y, dataset.RegressionTask(), fixedLambdas(6))
	require.NoError(t, err)

	selector, err := stability.NewSelector(stability.WithMinStability(0.0))
	require.NoError(t, err)
	sel, err := selector.Select(tensor, m)
	require.NoError(t, err)

	flat := sel.All[4]
	assert.Equal(t, "flat", flat.Feature)
	assert.Equal(t, 0.0, flat.Stability)
	assert.True(t, flat.Degenerate)
	assert.Equal(t, stability.DirectionNone, flat.Direction)

	for _, rec := range sel.Selected {
		assert.NotEqual(t, "flat", rec.Feature, "degenerate feature must not be selected")
	}

	foundDegeneracy := false
	for _, w := range warned {
		var degErr *errors.NumericalDegeneracyError
		if errors.As(w, &degErr) {
			foundDegeneracy = true
		}
	}
	assert.True(t, foundDegeneracy, "NumericalDegeneracy must be surfaced")
}

func TestSelectorDefaultThreshold(t *testing.T) {
	// NewSelector without options selects exactly what an explicit 0.7
	// threshold selects.
	m, y := fiveFeatureData(t, 80)

	boot, err := stability.NewBootstrap(solvertest.New(), stability.WithReplicates(20))
	require.NoError(t, err)
	tensor, err := boot.Run(context.Background(), m, y, dataset.RegressionTask(), fixedLambdas(8))
	require.NoError(t, err)

	def, err := stability.NewSelector()
	require.NoError(t, err)
	explicit, err := stability.NewSelector(stability.WithMinStability(0.7))
	require.NoError(t, err)

	a, err := def.Select(tensor, m)
	require.NoError(t, err)
	b, err := explicit.Select(tensor, m)
	require.NoError(t, err)

	require.Len(t, a.Selected, len(b.Selected))
	for i := range a.Selected {
		assert.Equal(t, b.Selected[i].Feature, a.Selected[i].Feature)
	}
}

func TestSelectorDeterministicOutput(t *testing.T) {
	// The per-feature reduction runs chunked across CPUs; records must be
	// identical between runs regardless of how chunks were scheduled.
	m, y := fiveFeatureData(t, 60)

	boot, err := stability.NewBootstrap(solvertest.New(), stability.WithReplicates(15))
	require.NoError(t, err)
	tensor, err := boot.Run(context.Background(), m, y, dataset.RegressionTask(), fixedLambdas(6))
	require.NoError(t, err)

	selector, err := stability.NewSelector(stability.WithMinStability(0.2))
	require.NoError(t, err)
	a, err := selector.Select(tensor, m)
	require.NoError(t, err)
	b, err := selector.Select(tensor, m)
	require.NoError(t, err)

	require.Len(t, b.All, len(a.All))
	for j := range a.All {
		assert.Equal(t, a.All[j].Feature, b.All[j].Feature)
		assert.Equal(t, a.All[j].Stability, b.All[j].Stability)
		if !a.All[j].Degenerate {
			assert.Equal(t, a.All[j].ZScore, b.All[j].ZScore)
		}
		assert.Equal(t, a.All[j].Direction, b.All[j].Direction)
	}
	require.Len(t, b.Selected, len(a.Selected))
	for i := range a.Selected {
		assert.Equal(t, a.Selected[i].Feature, b.Selected[i].Feature)
	}
}

func TestSelectorThresholdValidation(t *testing.T) {
	for _, bad := range []float64{-0.1, 1.5} {
		_, err := stability.NewSelector(stability.WithMinStability(bad))
		var cfgErr *errors.ConfigurationError
		require.True(t, errors.As(err, &cfgErr), "threshold %v: error = %v", bad, err)
	}
}

func TestSelectorDimensionMismatch(t *testing.T) {
	m, y := fiveFeatureData(t, 40)

	boot, err := stability.NewBootstrap(solvertest.New(), stability.WithReplicates(4))
	require.NoError(t, err)
	tensor, err := boot.Run(context.Background(), m, y, dataset.RegressionTask(), fixedLambdas(3))
	require.NoError(t, err)

	narrow, err := dataset.NewFeatureMatrix(mat.NewDense(4, 2, []float64{1, 2, 3, 4, 5, 6, 7, 8}), nil)
	require.NoError(t, err)

	selector, err := stability.NewSelector(stability.WithMinStability(0.5))
	require.NoError(t, err)
	_, err = selector.Select(tensor, narrow)
	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr), "error = %v", err)
}

func TestNewBootstrapValidation(t *testing.T) {
	_, err := stability.NewBootstrap(nil)
	var cfgErr *errors.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))

	_, err = stability.NewBootstrap(solvertest.New(), stability.WithReplicates(0))
	require.True(t, errors.As(err, &cfgErr))
}
