package schedule

import (
	"errors"
	"fmt"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/delaygraph"
)

// ErrUnknownStrategy is returned by Solve when Options.Strategy names
// neither ForwardHeuristicStrategy nor DecisionDiagramStrategy.
var ErrUnknownStrategy = errors.New("schedule: unknown strategy")

// InputError wraps a model/graphbuild validation failure: the instance
// itself is malformed, independent of whether any schedule could solve
// it.
type InputError struct {
	Err error
}

func (e *InputError) Error() string { return fmt.Sprintf("schedule: invalid input: %v", e.Err) }
func (e *InputError) Unwrap() error { return e.Err }

// InfeasibilityError reports that every sequencing decision the chosen
// strategy could make still leaves the constraint graph with a positive
// cycle: Cycle names one such cycle's edges for diagnostics.
type InfeasibilityError struct {
	Cycle delaygraph.Edges
}

func (e *InfeasibilityError) Error() string {
	return fmt.Sprintf("schedule: infeasible: positive cycle of %d edges", len(e.Cycle))
}
