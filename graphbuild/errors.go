package graphbuild

import "errors"

// ErrInconsistentInput wraps every structural problem Build discovers
// while turning an Instance into a DelayGraph: a missing machine
// assignment, a self-referential due date, or (for a FixedOrder shop) a
// JobsOutputOrder that is not a permutation of the instance's jobs.
// The underlying model or graph error is formatted into the message
// with %v, not wrapped: errors.Is matches ErrInconsistentInput, and
// errors.Unwrap does not reach the underlying error.
var ErrInconsistentInput = errors.New("graphbuild: instance is structurally inconsistent")
