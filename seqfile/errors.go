package seqfile

import "errors"

var (
	// ErrMissingMachineSequences is returned by Load when the document
	// has neither a top-level "machineSequences" key nor a "modules"
	// wrapper containing one.
	ErrMissingMachineSequences = errors.New("seqfile: missing machineSequences")

	// ErrMalformedPair is returned when a sequence entry is not a
	// two-element [job, op] array.
	ErrMalformedPair = errors.New("seqfile: malformed (job, op) pair")

	// ErrPositiveCycle is returned by Reevaluate when the fixed sequence
	// it was given is infeasible against the instance's constraint graph.
	ErrPositiveCycle = errors.New("seqfile: sequence produces a positive cycle")
)
