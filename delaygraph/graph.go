package delaygraph

import (
	"fmt"
	"sort"
	"sync"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
)

// VertexID indexes a Vertex within a Graph. IDs are assigned sequentially
// by AddVertex starting at 0, so they can double as slice indices for
// the longest-path engine's per-vertex label arrays.
type VertexID int

// Vertex pairs a VertexID with the model.Operation it represents. Source,
// terminal, and maintenance vertices carry a model.Operation whose Job
// field is one of the reserved sentinel ids.
type Vertex struct {
	ID VertexID
	Op model.Operation
}

// Edge is a directed, weighted constraint edge: Dst's start time must be
// at least Src's start time plus Weight.
type Edge struct {
	Src, Dst VertexID
	Weight   model.Delay
}

// Edges is a slice of Edge, returned by builder and longest-path queries
// whenever order is insignificant (callers should treat it as a set).
type Edges []Edge

// Graph is the thread-safe constraint-graph structure. It stores
// vertices by index and outgoing/incoming adjacency as parallel
// slices-of-maps, mirroring the split-mutex, map-of-maps shape of the
// teacher's graph/core.Graph generalized from string vertex ids to
// sequential VertexID indices.
type Graph struct {
	muVert sync.RWMutex
	muEdge sync.RWMutex

	vertices []Vertex
	outgoing []map[VertexID]model.Delay
	incoming []map[VertexID]model.Delay

	opIndex  map[model.Operation]VertexID
	jobIndex map[model.JobID][]VertexID
}

// NewGraph returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		opIndex:  make(map[model.Operation]VertexID),
		jobIndex: make(map[model.JobID][]VertexID),
	}
}

// AddVertex appends a new vertex for op and returns its VertexID. It
// returns ErrDuplicateVertex if op is already present.
func (g *Graph) AddVertex(op model.Operation) (VertexID, error) {
	g.muVert.Lock()
	defer g.muVert.Unlock()

	if _, exists := g.opIndex[op]; exists {
		return 0, fmt.Errorf("%w: job=%d op=%d", ErrDuplicateVertex, op.Job, op.Op)
	}
	id := VertexID(len(g.vertices))
	g.vertices = append(g.vertices, Vertex{ID: id, Op: op})
	g.outgoing = append(g.outgoing, make(map[VertexID]model.Delay))
	g.incoming = append(g.incoming, make(map[VertexID]model.Delay))
	g.opIndex[op] = id
	g.jobIndex[op.Job] = append(g.jobIndex[op.Job], id)

	return id, nil
}

// NumVertices reports the number of vertices currently in the graph.
func (g *Graph) NumVertices() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	return len(g.vertices)
}

// Vertices returns a defensive copy of every vertex in the graph, ordered
// by VertexID.
func (g *Graph) Vertices() []Vertex {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	out := make([]Vertex, len(g.vertices))
	copy(out, g.vertices)
	return out
}

// GetVertex returns the vertex for id.
func (g *Graph) GetVertex(id VertexID) (Vertex, error) {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	if int(id) < 0 || int(id) >= len(g.vertices) {
		return Vertex{}, fmt.Errorf("%w: id=%d", ErrVertexNotFound, id)
	}
	return g.vertices[id], nil
}

// GetVertexID returns the VertexID assigned to op.
func (g *Graph) GetVertexID(op model.Operation) (VertexID, bool) {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	id, ok := g.opIndex[op]
	return id, ok
}

// GetVerticesForJob returns every vertex belonging to job, in the order
// they were added.
func (g *Graph) GetVerticesForJob(job model.JobID) []Vertex {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	ids := g.jobIndex[job]
	out := make([]Vertex, len(ids))
	for i, id := range ids {
		out[i] = g.vertices[id]
	}
	return out
}

// GetVerticesForJobRange returns the vertices of every job in the
// inclusive range [from, to], ordered by job id then vertex id.
func (g *Graph) GetVerticesForJobRange(from, to model.JobID) []Vertex {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	jobs := make([]model.JobID, 0, len(g.jobIndex))
	for job := range g.jobIndex {
		if job >= from && job <= to {
			jobs = append(jobs, job)
		}
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i] < jobs[j] })

	var out []Vertex
	for _, job := range jobs {
		for _, id := range g.jobIndex[job] {
			out = append(out, g.vertices[id])
		}
	}
	return out
}

// AddEdge inserts or overwrites the edge src->dst with the given weight.
func (g *Graph) AddEdge(src, dst VertexID, weight model.Delay) error {
	g.muEdge.Lock()
	defer g.muEdge.Unlock()
	if err := g.checkVertex(src); err != nil {
		return err
	}
	if err := g.checkVertex(dst); err != nil {
		return err
	}
	g.outgoing[src][dst] = weight
	g.incoming[dst][src] = weight
	return nil
}

// AddEdges inserts every edge in edges that is not already present,
// leaving the weight of any pre-existing edge untouched, and returns only
// the edges that were newly added. This matches the builder's "only the
// first write wins" convention for sequence-independent setup tables.
func (g *Graph) AddEdges(edges Edges) (Edges, error) {
	g.muEdge.Lock()
	defer g.muEdge.Unlock()

	added := make(Edges, 0, len(edges))
	for _, e := range edges {
		if err := g.checkVertex(e.Src); err != nil {
			return nil, err
		}
		if err := g.checkVertex(e.Dst); err != nil {
			return nil, err
		}
		if _, exists := g.outgoing[e.Src][e.Dst]; exists {
			continue
		}
		g.outgoing[e.Src][e.Dst] = e.Weight
		g.incoming[e.Dst][e.Src] = e.Weight
		added = append(added, e)
	}
	return added, nil
}

// RemoveEdge deletes the edge src->dst, if present.
func (g *Graph) RemoveEdge(src, dst VertexID) {
	g.muEdge.Lock()
	defer g.muEdge.Unlock()
	if int(src) < len(g.outgoing) {
		delete(g.outgoing[src], dst)
	}
	if int(dst) < len(g.incoming) {
		delete(g.incoming[dst], src)
	}
}

// HasEdge reports whether an edge src->dst exists.
func (g *Graph) HasEdge(src, dst VertexID) bool {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	if int(src) >= len(g.outgoing) {
		return false
	}
	_, ok := g.outgoing[src][dst]
	return ok
}

// GetWeight returns the weight of edge src->dst.
func (g *Graph) GetWeight(src, dst VertexID) (model.Delay, error) {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	if int(src) >= len(g.outgoing) {
		return 0, fmt.Errorf("%w: %d->%d", ErrEdgeNotFound, src, dst)
	}
	w, ok := g.outgoing[src][dst]
	if !ok {
		return 0, fmt.Errorf("%w: %d->%d", ErrEdgeNotFound, src, dst)
	}
	return w, nil
}

// GetEdge returns the Edge value for src->dst.
func (g *Graph) GetEdge(src, dst VertexID) (Edge, error) {
	w, err := g.GetWeight(src, dst)
	if err != nil {
		return Edge{}, err
	}
	return Edge{Src: src, Dst: dst, Weight: w}, nil
}

// Outgoing returns a defensive copy of the outgoing edges of v, the same
// "never hand out the live map" discipline the teacher's Neighbors
// applies under its read lock.
func (g *Graph) Outgoing(v VertexID) Edges {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	if int(v) >= len(g.outgoing) {
		return nil
	}
	out := make(Edges, 0, len(g.outgoing[v]))
	for dst, w := range g.outgoing[v] {
		out = append(out, Edge{Src: v, Dst: dst, Weight: w})
	}
	return out
}

// Incoming returns a defensive copy of the incoming edges of v.
func (g *Graph) Incoming(v VertexID) Edges {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	if int(v) >= len(g.incoming) {
		return nil
	}
	out := make(Edges, 0, len(g.incoming[v]))
	for src, w := range g.incoming[v] {
		out = append(out, Edge{Src: src, Dst: v, Weight: w})
	}
	return out
}

// AllEdges returns every edge in the graph. Order is unspecified.
func (g *Graph) AllEdges() Edges {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()
	var out Edges
	for src, nbrs := range g.outgoing {
		for dst, w := range nbrs {
			out = append(out, Edge{Src: VertexID(src), Dst: dst, Weight: w})
		}
	}
	return out
}

// Clone returns a deep copy of g: an independent set of vertices and
// edges that the caller may mutate without affecting g. Used by the
// const-preserving variants of the incremental longest-path routines.
func (g *Graph) Clone() *Graph {
	g.muVert.RLock()
	g.muEdge.RLock()
	defer g.muVert.RUnlock()
	defer g.muEdge.RUnlock()

	out := &Graph{
		vertices: make([]Vertex, len(g.vertices)),
		outgoing: make([]map[VertexID]model.Delay, len(g.outgoing)),
		incoming: make([]map[VertexID]model.Delay, len(g.incoming)),
		opIndex:  make(map[model.Operation]VertexID, len(g.opIndex)),
		jobIndex: make(map[model.JobID][]VertexID, len(g.jobIndex)),
	}
	copy(out.vertices, g.vertices)
	for i, m := range g.outgoing {
		cp := make(map[VertexID]model.Delay, len(m))
		for k, v := range m {
			cp[k] = v
		}
		out.outgoing[i] = cp
	}
	for i, m := range g.incoming {
		cp := make(map[VertexID]model.Delay, len(m))
		for k, v := range m {
			cp[k] = v
		}
		out.incoming[i] = cp
	}
	for k, v := range g.opIndex {
		out.opIndex[k] = v
	}
	for k, v := range g.jobIndex {
		cp := make([]VertexID, len(v))
		copy(cp, v)
		out.jobIndex[k] = cp
	}
	return out
}

func (g *Graph) checkVertex(id VertexID) error {
	if int(id) < 0 || int(id) >= len(g.vertices) {
		return fmt.Errorf("%w: id=%d", ErrVertexNotFound, id)
	}
	return nil
}
