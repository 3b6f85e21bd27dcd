// Package crossval fits L1-regularized models under k-fold cross-validation
// on random train/test splits and estimates out-of-sample performance over
// repeated trials.
//
// A Fitter runs one trial: complete-case filtering, class balancing for
// classification, a train/test split, a cross-validated path fit, lambda
// selection, and held-out scoring. An Evaluator repeats independent trials
// over a worker pool and collects the raw per-trial performance records.
package crossval

import (
	"math"
	"math/rand/v2"

	"github.com/akitsu-lab/stabsel/dataset"
	"github.com/akitsu-lab/stabsel/metrics"
	"github.com/akitsu-lab/stabsel/pkg/errors"
	"github.com/akitsu-lab/stabsel/pkg/log"
	"github.com/akitsu-lab/stabsel/solver"
)

// Performance is the held-out score of one trial. Correlation is populated
// for regression tasks, ROC and AUC for classification tasks; the unused
// fields stay at their zero value. A degenerate trial (no held-out rows)
// carries NaN scores.
type Performance struct {
	Correlation float64
	ROC         []metrics.ROCPoint
	AUC         float64
}

// TrialResult is everything one trial produces: the fitted path, the
// selected lambda, the held-out performance, and the filtering diagnostics.
type TrialResult struct {
	Trial       int
	Path        *solver.FittedPath
	Selected    solver.Selected
	Performance Performance
	DroppedRows int
	TrainRows   int
	TestRows    int
	Degenerate  bool
}

// Fitter runs single cross-validated fit trials against a PathSolver.
type Fitter struct {
	solver solver.PathSolver
	cfg    config
}

// NewFitter validates the options and returns a Fitter.
func NewFitter(ps solver.PathSolver, opts ...Option) (*Fitter, error) {
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
	return &Fitter{solver: ps, cfg: cfg}, nil
}

// FitTrial runs one trial with the given index and generator. The trial
// index only labels diagnostics; all randomness comes from rng.
func (f *Fitter) FitTrial(m *dataset.FeatureMatrix, y dataset.Response, task dataset.Task, trial int, rng *rand.Rand) (*TrialResult, error) {
	n := m.Rows()
	if len(y) != n {
		return nil, errors.NewDimensionError("FitTrial", n, len(y), 0)
	}
	if err := task.Validate(n); err != nil {
		return nil, err
	}

	// Classification balances classes on the raw row set first; the
	// complete-case filter is then re-applied to the balanced subset.
	var candidate []int
	if task.Kind() == dataset.Classification {
		balanced, err := dataset.BalanceClasses(rng, n, task.Positives())
		if err != nil {
			return nil, err
		}
		candidate = balanced
	}
	rows, dropped, err := dataset.CompleteCaseIndices(m, y, candidate)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		f.cfg.logger.Info("dropped incomplete rows",
			log.ComponentKey, "crossval",
			log.TrialKey, trial,
			log.DroppedRowsKey, dropped,
			log.SamplesKey, len(rows))
	}
	if len(rows) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "FitTrial: no complete cases remain")
	}

	train, test, err := dataset.SplitTrainTest(rng, rows, f.cfg.trainFraction)
	if err != nil {
		return nil, err
	}
	degenerate := len(test) == 0
	if degenerate {
		errors.Warn(errors.NewDegenerateSplitWarning(trial, f.cfg.trainFraction))
	}

	family := solver.Gaussian
	if task.Kind() == dataset.Classification {
		family = solver.Binomial
	}

	folds := f.cfg.foldCount
	if folds > len(train) {
		return nil, errors.NewConfigurationError("foldCount",
			"exceeds the training row count", folds)
	}

	trainX := m.Subset(train)
	trainY := y.Subset(train)
	path, err := f.solver.FitCV(trainX.RawMatrix(), trainY, family, folds, rng)
	if err != nil {
		return nil, err
	}
	sel, err := solver.SelectLambda(path, f.cfg.criterion)
	if err != nil {
		return nil, err
	}

	result := &TrialResult{
		Trial:       trial,
		Path:        path,
		Selected:    sel,
		DroppedRows: dropped,
		TrainRows:   len(train),
		TestRows:    len(test),
		Degenerate:  degenerate,
	}

	if degenerate {
		result.Performance = Performance{Correlation: math.NaN(), AUC: math.NaN()}
		return result, nil
	}

	testX := m.Subset(test)
	testY := y.Subset(test)
	preds, err := path.PredictAt(sel.Index, testX.RawMatrix(), family)
	if err != nil {
		return nil, err
	}

	switch task.Kind() {
	case dataset.Classification:
		curve, err := metrics.ROCCurve(testY, preds)
		if err != nil {
			return nil, err
		}
		result.Performance = Performance{
			Correlation: 0,
			ROC:         curve,
			AUC:         metrics.AUCFromCurve(curve),
		}
	default:
		r, err := metrics.PearsonCorrelation(testY, preds)
		if err != nil {
			return nil, err
		}
		result.Performance = Performance{Correlation: r}
	}

	f.cfg.logger.Debug("trial complete",
		log.ComponentKey, "crossval",
		log.OperationKey, "fit",
		log.TrialKey, trial,
		log.LambdaKey, sel.Lambda,
		log.TrainRowsKey, len(train),
		log.TestRowsKey, len(test))

	return result, nil
}
