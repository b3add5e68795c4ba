package dd

import "errors"

// ErrNoReadyOperations names the condition of a vertex with no eligible
// next operation on any machine, which should only happen for a terminal
// vertex. Expand does not return it: for such a vertex it returns no
// children.
var ErrNoReadyOperations = errors.New("dd: vertex has no ready operations")
