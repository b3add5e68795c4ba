package forward

import "errors"

// ErrNoFeasibleOption indicates every candidate insertion point for an
// operation produced a positive cycle once checked against the current
// partial solution; the instance cannot be completed along this search
// path.
var ErrNoFeasibleOption = errors.New("forward: no feasible insertion point for operation")
