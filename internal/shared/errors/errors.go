package errors

import "errors"

// Domain errors
var (
	// Document errors
	ErrMissingDocument = errors.New("document is required")
	ErrEmptyDocument   = errors.New("document contains no elements")
	ErrInvalidTarget   = errors.New("invalid target URL")

	// Graph errors
	ErrDanglingEdge    = errors.New("edge references unknown node")
	ErrDuplicateNodeID = errors.New("duplicate node id for distinct resources")

	// Pipeline errors
	ErrNoDetectors    = errors.New("no detectors enabled")
	ErrPhaseTimeout   = errors.New("component timed out")
	ErrComponentPanic = errors.New("component panicked")
	ErrTotalFailure   = errors.New("all detectors failed")

	// Results errors
	ErrResultsNotFound       = errors.New("results file not found")
	ErrDeserializationFailed = errors.New("deserialization failed")
)
