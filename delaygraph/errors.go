package delaygraph

import "errors"

var (
	// ErrVertexNotFound indicates an operation referenced a VertexID with
	// no backing vertex.
	ErrVertexNotFound = errors.New("delaygraph: vertex not found")

	// ErrEdgeNotFound indicates GetWeight or GetEdge referenced a pair
	// with no edge between them. RemoveEdge never returns it: removing a
	// missing edge is a no-op.
	ErrEdgeNotFound = errors.New("delaygraph: edge not found")

	// ErrDuplicateVertex indicates AddVertex was called twice for the same
	// model.Operation.
	ErrDuplicateVertex = errors.New("delaygraph: vertex already present for operation")

	// ErrDuplicateSource indicates AddSource was called twice for the same
	// machine.
	ErrDuplicateSource = errors.New("delaygraph: source vertex already present for machine")
)
