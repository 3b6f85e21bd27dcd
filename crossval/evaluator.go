package crossval

import (
	"context"

	"github.com/akitsu-lab/stabsel/core/parallel"
	"github.com/akitsu-lab/stabsel/core/random"
	"github.com/akitsu-lab/stabsel/dataset"
	"github.com/akitsu-lab/stabsel/metrics"
	"github.com/akitsu-lab/stabsel/pkg/errors"
	"github.com/akitsu-lab/stabsel/pkg/log"
	"github.com/akitsu-lab/stabsel/solver"
)

// Result aggregates an ensemble run. Trials is index-addressed by trial
// number; a slot is nil when that trial's solver failed. The evaluator
// hands back raw per-trial records — summary statistics and hypothesis
// tests belong to the caller.
type Result struct {
	Trials     []*TrialResult
	Failed     int
	Degenerate int
}

// Correlations returns the per-trial held-out Pearson correlations from
// successful, non-degenerate regression trials, in trial order.
func (r *Result) Correlations() []float64 {
	out := make([]float64, 0, len(r.Trials))
	for _, t := range r.Trials {
		if t == nil || t.Degenerate {
			continue
		}
		out = append(out, t.Performance.Correlation)
	}
	return out
}

// AUCs returns the per-trial held-out AUC values from successful,
// non-degenerate classification trials, in trial order.
func (r *Result) AUCs() []float64 {
	out := make([]float64, 0, len(r.Trials))
	for _, t := range r.Trials {
		if t == nil || t.Degenerate {
			continue
		}
		out = append(out, t.Performance.AUC)
	}
	return out
}

// ROCCurves returns one representative ROC curve per successful trial, for
// overlay rendering downstream.
func (r *Result) ROCCurves() [][]metrics.ROCPoint {
	out := make([][]metrics.ROCPoint, 0, len(r.Trials))
	for _, t := range r.Trials {
		if t == nil || t.Degenerate || t.Performance.ROC == nil {
			continue
		}
		out = append(out, t.Performance.ROC)
	}
	return out
}

// LambdaPath returns the lambda sequence fitted by the named trial. It
// exists so a stability analysis is fed from a deliberate, named fit rather
// than whichever fit happened to run last.
func (r *Result) LambdaPath(trial int) ([]float64, error) {
	if trial < 0 || trial >= len(r.Trials) {
		return nil, errors.NewValueError("Result.LambdaPath", "trial index out of range")
	}
	t := r.Trials[trial]
	if t == nil {
		return nil, errors.NewValueError("Result.LambdaPath", "trial failed; no lambda path available")
	}
	out := make([]float64, len(t.Path.Lambdas))
	copy(out, t.Path.Lambdas)
	return out, nil
}

// Evaluator repeats independent cross-validated trials and collects their
// performance records.
type Evaluator struct {
	fitter *Fitter
	cfg    config
}

// NewEvaluator validates the options and returns an Evaluator.
func NewEvaluator(ps solver.PathSolver, opts ...Option) (*Evaluator, error) {
	fitter, err := NewFitter(ps, opts...)
	if err != nil {
		return nil, err
	}
	return &Evaluator{fitter: fitter, cfg: fitter.cfg}, nil
}

// Run executes the configured number of trials. Each trial derives its own
// generator from (baseSeed, trialIndex), so results are byte-identical for
// a fixed seed regardless of worker count. A trial whose solver fails is
// recorded as a missing slot and counted in Failed; the remaining trials
// continue. Cancelling ctx stops scheduling new trials but keeps completed
// results.
func (e *Evaluator) Run(ctx context.Context, m *dataset.FeatureMatrix, y dataset.Response, task dataset.Task) (*Result, error) {
	if err := task.Validate(m.Rows()); err != nil {
		return nil, err
	}

	trials := make([]*TrialResult, e.cfg.trialCount)
	trialErrs := make([]error, e.cfg.trialCount)

	runErr := parallel.ForEach(ctx, e.cfg.trialCount, e.cfg.concurrency, func(i int) {
		rng := random.New(e.cfg.baseSeed, uint64(i))
		res, err := e.fitter.FitTrial(m, y, task, i, rng)
		if err != nil {
			trialErrs[i] = err
			return
		}
		trials[i] = res
	})

	result := &Result{Trials: trials}
	for i, err := range trialErrs {
		if err == nil {
			continue
		}
		// Configuration problems are deterministic across trials; surface
		// them instead of recording the whole ensemble as missing.
		var cfgErr *errors.ConfigurationError
		if errors.As(err, &cfgErr) {
			return nil, err
		}
		result.Failed++
		e.cfg.logger.Error("trial failed",
			log.ComponentKey, "crossval",
			log.TrialKey, i,
			"error", err.Error())
	}
	for _, t := range trials {
		if t != nil && t.Degenerate {
			result.Degenerate++
		}
	}

	e.cfg.logger.Info("ensemble complete",
		log.ComponentKey, "crossval",
		log.OperationKey, "evaluate",
		log.TrialCountKey, e.cfg.trialCount,
		log.FailedTrialsKey, result.Failed)

	if runErr != nil {
		return result, runErr
	}
	return result, nil
}
