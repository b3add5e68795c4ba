package maintenance

import "errors"

// ErrPositionOutOfRange is returned when a MaintenanceAction names a
// Position outside the target machine's current chosen-edges slice.
var ErrPositionOutOfRange = errors.New("maintenance: position out of range")

// ErrInfeasibleInsertion is returned when splicing a MaintenanceAction in
// would create a positive cycle in the constraint graph.
var ErrInfeasibleInsertion = errors.New("maintenance: infeasible insertion")
