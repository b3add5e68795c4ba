// Package delaygraph implements the directed, weighted constraint graph
// that backs every solver in this module: a difference-constraint system
// where an edge u->v of weight w encodes "t(v) >= t(u) + w". Unlike a
// conventional shortest-path graph, edge weights may be negative (a due
// date is expressed as a negative back-edge), so the graph supports
// longest-path rather than shortest-path queries; see package
// longestpath.
//
// Graph is the thread-safe, general-purpose adjacency-list structure
// (grounded on the same sync.RWMutex-guarded map-of-maps shape the
// teacher's graph/core package uses); DelayGraph narrows that structure
// to the scheduling domain by adding the reserved-vertex predicates
// (IsSource, IsTerminus, IsMaint) and per-machine/per-job vertex indices
// that graphbuild, longestpath, partial, forward, and dd all rely on.
//
// # Concurrency
//
// Graph guards vertex and edge/adjacency state with separate RWMutexes,
// the same split the teacher uses to let concurrent readers proceed while
// vertex metadata is queried independently of edge mutation.
//
// # Errors
//
//	ErrVertexNotFound - a referenced VertexID has no backing vertex.
//	ErrEdgeNotFound    - GetWeight / GetEdge referenced a missing edge.
//	ErrDuplicateVertex - AddVertex called twice for the same Operation.
package delaygraph
