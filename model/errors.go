package model

import "errors"

// Sentinel errors returned by Instance.Validate. Callers should compare
// against these with errors.Is; Validate wraps them with fmt.Errorf("%w", ...)
// to attach the offending identifier.
var (
	// ErrUnknownOperation indicates a table or edge references an operation
	// that does not appear in Instance.Jobs.
	ErrUnknownOperation = errors.New("model: operation not present in instance")

	// ErrUnknownJob indicates a reference to a job absent from Instance.Jobs.
	ErrUnknownJob = errors.New("model: job not present in instance")

	// ErrSelfDueDate indicates a due date constraint relates an operation to
	// itself, which the longest-path engine cannot express as an edge.
	ErrSelfDueDate = errors.New("model: due date operation equals its own reference")

	// ErrBadFixedOrder indicates JobsOutputOrder is not a permutation of the
	// job identifiers present in Jobs, which a FixedOrder shop requires.
	ErrBadFixedOrder = errors.New("model: JobsOutputOrder is not a permutation of Jobs")

	// ErrMissingMachine indicates an operation has no machine assignment in
	// MachineOf.
	ErrMissingMachine = errors.New("model: operation has no machine assignment")
)
