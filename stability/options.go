package stability

import (
	"github.com/akitsu-lab/stabsel/core/random"
	"github.com/akitsu-lab/stabsel/pkg/errors"
	"github.com/akitsu-lab/stabsel/pkg/log"
)

type config struct {
	replicates   int
	minStability float64
	baseSeed     uint64
	concurrency  int
	logger       log.Logger
}

func defaultConfig() config {
	return config{
		replicates:   100,
		minStability: 0.7,
		baseSeed:     random.DefaultBaseSeed,
		concurrency:  1,
		logger:       log.GetLogger(),
	}
}

func (c config) validate() error {
	if c.replicates < 1 {
		return errors.NewConfigurationError("bootstrapReplicateCount", "must be at least 1", c.replicates)
	}
	if c.minStability < 0 || c.minStability > 1 {
		return errors.NewConfigurationError("minStability", "must be in [0, 1]", c.minStability)
	}
	if c.concurrency < 0 {
		return errors.NewConfigurationError("concurrencyLevel", "must be non-negative", c.concurrency)
	}
	return nil
}

// Option configures a Bootstrap estimator or a Selector. Each component
// reads the fields it needs; a Bootstrap ignores the stability threshold
// and a Selector ignores the replicate and seed settings.
type Option func(*config)

// WithReplicates sets the bootstrap replicate count.
func WithReplicates(n int) Option {
	return func(c *config) { c.replicates = n }
}

// WithMinStability sets the selection threshold: a feature is selected when
// the fraction of non-zero (lambda x replicate) cells reaches this value.
// Defaults to 0.7.
func WithMinStability(threshold float64) Option {
	return func(c *config) { c.minStability = threshold }
}

// WithBaseSeed sets the base seed from which every replicate derives its
// own generator.
func WithBaseSeed(seed uint64) Option {
	return func(c *config) { c.baseSeed = seed }
}

// WithConcurrency sets the worker count for replicates. 1 (the default)
// runs sequentially; 0 uses all CPUs.
func WithConcurrency(workers int) Option {
	return func(c *config) { c.concurrency = workers }
}

// WithLogger replaces the diagnostic logger.
func WithLogger(l log.Logger) Option {
	return func(c *config) { c.logger = l }
}
