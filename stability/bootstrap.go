package stability

import (
	"context"

	"github.com/akitsu-lab/stabsel/core/parallel"
	"github.com/akitsu-lab/stabsel/core/random"
	"github.com/akitsu-lab/stabsel/dataset"
	"github.com/akitsu-lab/stabsel/pkg/errors"
	"github.com/akitsu-lab/stabsel/pkg/log"
	"github.com/akitsu-lab/stabsel/solver"
)

// Bootstrap estimates the coefficient ensemble: it refits the model on
// bootstrap-resampled rows at every lambda of a fixed, externally supplied
// sequence, once per replicate.
type Bootstrap struct {
	solver solver.PathSolver
	cfg    config
}

// NewBootstrap validates the options and returns a Bootstrap estimator.
func NewBootstrap(ps solver.PathSolver, opts ...Option) (*Bootstrap, error) {
	if ps == nil {
		return nil, errors.NewConfigurationError("solver", "path solver is required", nil)
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Bootstrap{solver: ps, cfg: cfg}, nil
}

// Run builds the coefficient tensor. The lambda sequence must come from a
// deliberate prior fit (for example crossval.Result.LambdaPath) and is used
// unchanged for every replicate — comparability across replicates depends
// on the shared lambda axis. Each replicate draws n rows with replacement
// (n being the complete-case row count), fits a plain path at every lambda,
// and stores the coefficient vector with the intercept discarded.
//
// A solver failure in any replicate aborts the run: a tensor with missing
// replicate slices would silently bias every stability score computed from
// it.
func (b *Bootstrap) Run(ctx context.Context, m *dataset.FeatureMatrix, y dataset.Response, task dataset.Task, lambdas []float64) (*CoefficientTensor, error) {
	if len(lambdas) == 0 {
		return nil, errors.NewConfigurationError("lambdaSequence", "must be non-empty", lambdas)
	}
	if err := task.Validate(m.Rows()); err != nil {
		return nil, err
	}

	rows, dropped, err := dataset.CompleteCaseIndices(m, y, nil)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		b.cfg.logger.Info("dropped incomplete rows",
			log.ComponentKey, "stability",
			log.DroppedRowsKey, dropped,
			log.SamplesKey, len(rows))
	}
	if len(rows) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "Bootstrap.Run: no complete cases remain")
	}

	family := solver.Gaussian
	if task.Kind() == dataset.Classification {
		family = solver.Binomial
	}

	p := m.Cols()
	tensor, err := NewCoefficientTensor(p, len(lambdas), b.cfg.replicates)
	if err != nil {
		return nil, err
	}

	n := len(rows)
	replicateErrs := make([]error, b.cfg.replicates)
	runErr := parallel.ForEach(ctx, b.cfg.replicates, b.cfg.concurrency, func(r int) {
		rng := random.New(b.cfg.baseSeed, uint64(r))
		draw := random.SampleWithReplacement(rng, n, n)
		resampled := make([]int, n)
		for i, d := range draw {
			resampled[i] = rows[d]
		}

		// The same resampled index set drives both the matrix and the
		// response; they must never come from different draws.
		bootX := m.Subset(resampled)
		bootY := y.Subset(resampled)

		coefs, err := b.solver.FitPath(bootX.RawMatrix(), bootY, family, lambdas)
		if err != nil {
			replicateErrs[r] = errors.Wrapf(err, "replicate %d", r)
			return
		}
		if len(coefs) != len(lambdas) {
			replicateErrs[r] = errors.NewDimensionError("Bootstrap.Run", len(lambdas), len(coefs), 0)
			return
		}
		for l, coef := range coefs {
			if len(coef) != p+1 {
				replicateErrs[r] = errors.NewDimensionError("Bootstrap.Run", p+1, len(coef), 1)
				return
			}
			// A non-finite coefficient would count as a non-zero cell and
			// silently poison every stability score downstream.
			if err := errors.CheckFinite("Bootstrap.Run", coef); err != nil {
				replicateErrs[r] = errors.Wrapf(err, "replicate %d", r)
				return
			}
			for j := 0; j < p; j++ {
				tensor.set(j, l, r, coef[j+1])
			}
		}
	})
	if runErr != nil {
		return nil, runErr
	}
	for _, err := range replicateErrs {
		if err != nil {
			return nil, err
		}
	}

	b.cfg.logger.Info("bootstrap ensemble complete",
		log.ComponentKey, "stability",
		log.OperationKey, "bootstrap",
		log.FeaturesKey, p,
		log.ReplicateKey, b.cfg.replicates)

	return tensor, nil
}
