package ml

import "errors"

var (
	// ErrDimensionMismatch is returned when a vector does not have the expected length.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrEmptyTrainingSet is returned when predicting without any stored training data.
	ErrEmptyTrainingSet = errors.New("empty training set")
	// ErrLabelMismatch is returned when features and labels are not parallel.
	ErrLabelMismatch = errors.New("features and labels do not match")
	// ErrNonNumericLabel is returned when regression meets a label that is not a number.
	ErrNonNumericLabel = errors.New("label is not numeric")
	// ErrUnknownFunction is returned for a function name that is not registered.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrInvalidTopology is returned for a network or neighbor configuration that cannot be built.
	ErrInvalidTopology = errors.New("invalid topology")
)
