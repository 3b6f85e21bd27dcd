package crossval

import (
	"github.com/akitsu-lab/stabsel/core/random"
	"github.com/akitsu-lab/stabsel/pkg/errors"
	"github.com/akitsu-lab/stabsel/pkg/log"
	"github.com/akitsu-lab/stabsel/solver"
)

type config struct {
	trainFraction float64
	foldCount     int
	criterion     solver.LambdaCriterion
	trialCount    int
	baseSeed      uint64
	concurrency   int
	logger        log.Logger
}

func defaultConfig() config {
	return config{
		trainFraction: 0.8,
		foldCount:     10,
		criterion:     solver.OneStandardError,
		trialCount:    1,
		baseSeed:      random.DefaultBaseSeed,
		concurrency:   1,
		logger:        log.GetLogger(),
	}
}

func (c config) validate() error {
	if c.trainFraction <= 0 || c.trainFraction > 1 {
		return errors.NewConfigurationError("trainFraction", "must be in (0, 1]", c.trainFraction)
	}
	if c.foldCount < 3 {
		return errors.NewConfigurationError("foldCount", "must be at least 3", c.foldCount)
	}
	if c.trialCount < 1 {
		return errors.NewConfigurationError("trialCount", "must be at least 1", c.trialCount)
	}
	if c.concurrency < 0 {
		return errors.NewConfigurationError("concurrencyLevel", "must be non-negative", c.concurrency)
	}
	return nil
}

// Option configures a Fitter or Evaluator.
type Option func(*config)

// WithTrainFraction sets the train split fraction in (0, 1]. A value of 1
// disables held-out evaluation: the trial still runs but its performance is
// undefined and a DegenerateSplitWarning is emitted.
func WithTrainFraction(f float64) Option {
	return func(c *config) { c.trainFraction = f }
}

// WithFoldCount sets the cross-validation fold count (minimum 3).
func WithFoldCount(k int) Option {
	return func(c *config) { c.foldCount = k }
}

// WithLambdaCriterion sets the rule used to pick a lambda from the path.
func WithLambdaCriterion(criterion solver.LambdaCriterion) Option {
	return func(c *config) { c.criterion = criterion }
}

// WithTrialCount sets the number of repeated train/test trials.
func WithTrialCount(n int) Option {
	return func(c *config) { c.trialCount = n }
}

// WithBaseSeed sets the base seed from which every trial derives its own
// generator. The same seed reproduces the same results at any concurrency.
func WithBaseSeed(seed uint64) Option {
	return func(c *config) { c.baseSeed = seed }
}

// WithConcurrency sets the worker count for ensemble trials. 1 (the
// default) runs sequentially; 0 uses all CPUs.
func WithConcurrency(workers int) Option {
	return func(c *config) { c.concurrency = workers }
}

// WithLogger replaces the diagnostic logger.
func WithLogger(l log.Logger) Option {
	return func(c *config) { c.logger = l }
}
