// Package stabsel provides a statistical modeling engine for L1-regularized
// linear and logistic models: cross-validated fitting, out-of-sample
// performance estimation over repeated random train/test splits, and
// feature-stability selection from bootstrap-resampled coefficients.
//
// The engine is a pure library. Data loading, plotting and report
// generation live in the caller; stabsel consumes an in-memory feature
// matrix and response vector and returns structured result bundles.
//
// # Quick Start
//
// Estimate a regression performance distribution over 50 random splits:
//
//	X, _ := dataset.NewFeatureMatrix(data, names)
//	eval, err := crossval.NewEvaluator(pathSolver,
//	    crossval.WithTrialCount(50),
//	    crossval.WithTrainFraction(0.8),
//	    crossval.WithConcurrency(4),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := eval.Run(ctx, X, y, dataset.RegressionTask())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Correlations())
//
// Then run a stability analysis on the lambda path of a named trial:
//
//	lambdas, _ := res.LambdaPath(0)
//	boot, _ := stability.NewBootstrap(pathSolver, stability.WithReplicates(100))
//	tensor, err := boot.Run(ctx, X, y, dataset.RegressionTask(), lambdas)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	selector, _ := stability.NewSelector(stability.WithMinStability(0.7))
//	sel, err := selector.Select(tensor, X)
//
// # Packages
//
//   - dataset: feature matrix, response vector, task variants, filtering and samplers
//   - solver: the regularization path solver boundary and lambda selection
//   - crossval: single-trial fitting and repeated-split ensemble evaluation
//   - stability: bootstrap coefficient tensors and stability selection
//   - metrics: Pearson correlation, ROC curves and AUC
//   - pkg/errors, pkg/log: the error taxonomy and structured logging
//
// The coordinate-descent path solver itself is an external capability; any
// implementation of solver.PathSolver plugs in.
package stabsel
