// Standard attribute keys used across stabsel's logging. Using these keys
// keeps log analysis consistent between the cross-validation, ensemble and
// stability components.

package log

// Operation context.
const (
	// OperationKey names the modeling operation being performed.
	// Standard values: "fit", "evaluate", "bootstrap", "select".
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation.
	// Examples: "crossval", "stability", "metrics".
	ComponentKey = "ml.component"

	// TrialKey is the zero-based trial index within an ensemble run.
	TrialKey = "ml.trial"

	// ReplicateKey is the zero-based bootstrap replicate index.
	ReplicateKey = "ml.replicate"
)

// Data shape and filtering.
const (
	// SamplesKey is the number of rows in the data being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns.
	FeaturesKey = "data.features"

	// DroppedRowsKey counts rows removed by complete-case filtering.
	// Missing-value removal is informational, never an error.
	DroppedRowsKey = "data.dropped_rows"

	// TrainRowsKey and TestRowsKey describe one train/test split.
	TrainRowsKey = "data.train_rows"
	TestRowsKey  = "data.test_rows"
)

// Model selection and results.
const (
	// LambdaKey is the selected regularization strength.
	LambdaKey = "model.lambda"

	// FoldCountKey is the cross-validation fold count.
	FoldCountKey = "model.folds"

	// TrialCountKey is the requested ensemble trial count.
	TrialCountKey = "model.trials"

	// FailedTrialsKey counts trials lost to solver failures.
	FailedTrialsKey = "model.failed_trials"

	// DurationMsKey records operation wall time in milliseconds.
	DurationMsKey = "perf.duration_ms"
)
