package modular

import "errors"

// ErrNoConvergence is returned by Solve when the line's boundary timings
// have not stabilized within MaxIterations passes.
var ErrNoConvergence = errors.New("modular: no convergence within max iterations")

// ErrUnknownPolicy is returned by Solve for any LinePolicy other than
// BroadcastPolicy or CocktailPolicy.
var ErrUnknownPolicy = errors.New("modular: unknown line policy")
