// Package errors provides the error and warning taxonomy for the stabsel
// library. Errors are structured values carrying the failing operation and
// enough context to log them with zerolog; constructors attach stack traces
// via cockroachdb/errors.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Warning dispatch
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("stabsel-warning: %v\n", w)
	}
	// zerolog hook, injected lazily to avoid an import cycle with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler replaces the library-wide warning handler. Warnings are
// non-fatal diagnostics such as DegenerateSplitWarning; callers who want to
// collect or silence them install a handler here.
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs the zerolog-backed warning sink.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn dispatches a warning. Execution continues at the call site; warnings
// never abort a trial.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// DegenerateSplitWarning is raised when a train fraction of 1.0 leaves no
// held-out rows, so out-of-sample performance is undefined for that trial.
type DegenerateSplitWarning struct {
	Trial         int
	TrainFraction float64
}

func (w *DegenerateSplitWarning) Error() string {
	return fmt.Sprintf("trial %d: train fraction %.2f leaves an empty test set; performance for this trial is undefined",
		w.Trial, w.TrainFraction)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *DegenerateSplitWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Int("trial", w.Trial).
		Float64("train_fraction", w.TrainFraction).
		Str("type", "DegenerateSplitWarning")
}

// NewDegenerateSplitWarning creates a DegenerateSplitWarning for one trial.
func NewDegenerateSplitWarning(trial int, trainFraction float64) *DegenerateSplitWarning {
	return &DegenerateSplitWarning{Trial: trial, TrainFraction: trainFraction}
}

// ===========================================================================
//
//	Error types
//
// ===========================================================================

// ConfigurationError reports an invalid parameter value. It is always fatal
// to the call that received it and is never retried.
type ConfigurationError struct {
	Param  string
	Reason string
	Value  interface{}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("stabsel: invalid configuration for '%s': %s (got: %v)", e.Param, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ConfigurationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param", e.Param).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ConfigurationError")
}

// NewConfigurationError creates a ConfigurationError with a stack trace.
func NewConfigurationError(param, reason string, value interface{}) error {
	err := &ConfigurationError{Param: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// SolverFailureError reports that the regularization path solver could not
// produce a finite-error lambda, for example on a rank-deficient design
// matrix. At the ensemble level a failing trial is recorded as missing and
// the remaining trials continue.
type SolverFailureError struct {
	Op     string
	Reason string
	Err    error
}

func (e *SolverFailureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stabsel: %s: solver failure: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("stabsel: %s: solver failure: %s", e.Op, e.Reason)
}

func (e *SolverFailureError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *SolverFailureError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("reason", e.Reason).
		Str("type", "SolverFailureError")
}

// NewSolverFailureError creates a SolverFailureError with a stack trace.
func NewSolverFailureError(op, reason string, err error) error {
	solverErr := &SolverFailureError{Op: op, Reason: reason, Err: err}
	return errors.WithStack(solverErr)
}

// NumericalDegeneracyError reports a feature whose bootstrap coefficient
// cells have zero variance, leaving its direction z-score undefined. The
// feature is excluded from selection output instead of propagating a
// non-finite score.
type NumericalDegeneracyError struct {
	Feature  string
	Quantity string
}

func (e *NumericalDegeneracyError) Error() string {
	return fmt.Sprintf("stabsel: feature '%s': %s is undefined (zero variance across bootstrap cells)",
		e.Feature, e.Quantity)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NumericalDegeneracyError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("feature", e.Feature).
		Str("quantity", e.Quantity).
		Str("type", "NumericalDegeneracyError")
}

// NewNumericalDegeneracyError creates a NumericalDegeneracyError with a
// stack trace.
func NewNumericalDegeneracyError(feature, quantity string) error {
	err := &NumericalDegeneracyError{Feature: feature, Quantity: quantity}
	return errors.WithStack(err)
}

// DimensionError reports a row or column count mismatch between inputs.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("stabsel: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError reports an argument whose value is out of range or otherwise
// unusable for the given operation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("stabsel: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates an error with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error values
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an empty matrix or vector is supplied.
	ErrEmptyData = New("empty data")
)
