package longestpath

import (
	"container/heap"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/delaygraph"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
)

// Times holds one longest-path label per vertex, indexed by VertexID.
type Times []model.Delay

// InitializeASAP returns a Times vector with every machine-source vertex
// (and every vertex in sources) set to 0 and every other vertex set to
// model.ASAPNegInf.
func InitializeASAP(dg *delaygraph.DelayGraph, sources []delaygraph.VertexID, graphSources bool) Times {
	n := dg.NumVertices()
	times := make(Times, n)
	for i := 0; i < n; i++ {
		if graphSources && dg.IsSource(delaygraph.VertexID(i)) {
			times[i] = 0
		} else {
			times[i] = model.ASAPNegInf
		}
	}
	for _, s := range sources {
		times[s] = 0
	}
	return times
}

// InitializeALAP returns a Times vector with every machine-source vertex
// set to 0 and every other vertex set to model.ALAPPosInf. It mirrors the
// original implementation's quirk of initializing only from graph
// sources, never from an explicit sources list.
func InitializeALAP(dg *delaygraph.DelayGraph, graphSources bool) Times {
	n := dg.NumVertices()
	times := make(Times, n)
	for i := 0; i < n; i++ {
		if graphSources && dg.IsSource(delaygraph.VertexID(i)) {
			times[i] = 0
		} else {
			times[i] = model.ALAPPosInf
		}
	}
	return times
}

// Compute runs the full-graph Bellman-Ford-Moore ASAP relaxation,
// updating times in place, and returns every edge still relaxable after
// convergence (the positive cycle, or nil if the graph is feasible).
func Compute(dg *delaygraph.DelayGraph, times Times) delaygraph.Edges {
	vertices := dg.Vertices()
	for i := 1; i < len(vertices); i++ {
		if !relaxAllASAP(dg, vertices, times) {
			return nil
		}
	}
	return verifyASAP(dg, vertices, times)
}

// ComputeALAP runs the full-graph ALAP relaxation along incoming edges.
// Relaxing an edge whose source is listed in sources is fatal: it would
// mean retiming a vertex the caller has fixed in place. On a fatal
// relaxation, ComputeALAP stops early (times reflects the partial
// relaxation at that point, mirroring the original's behavior).
func ComputeALAP(dg *delaygraph.DelayGraph, times Times, sources []delaygraph.VertexID) delaygraph.Edges {
	vertices := dg.Vertices()
	isSource := make(map[delaygraph.VertexID]bool, len(sources))
	for _, s := range sources {
		isSource[s] = true
	}

	for i := 1; i < len(vertices); i++ {
		relaxed, fatal := relaxAllALAP(dg, vertices, times, isSource)
		if fatal || !relaxed {
			break
		}
	}

	var infeasible delaygraph.Edges
	for _, v := range vertices {
		for _, e := range dg.Incoming(v.ID) {
			if times[v.ID] != model.ALAPPosInf && times[v.ID]-e.Weight < times[e.Src] {
				infeasible = append(infeasible, delaygraph.Edge{Src: e.Src, Dst: v.ID, Weight: e.Weight})
				break
			}
		}
	}
	return infeasible
}

// ComputeWindowed runs the ASAP relaxation restricted to sources, the
// graph's machine sources, and window: the subset of vertices relevant
// to the operation currently being scheduled. A relaxation that would
// retime a vertex belonging to a job strictly below the minimum job id
// present in window is fatal (it would mean retiming an
// already-committed operation) and is returned immediately as a
// single-edge cycle.
func ComputeWindowed(dg *delaygraph.DelayGraph, times Times, sources, window []delaygraph.Vertex) delaygraph.Edges {
	firstJobID := minJobID(window)

	allVertices := make([]delaygraph.Vertex, 0, len(sources)+len(window))
	allVertices = append(allVertices, sources...)
	allVertices = append(allVertices, dg.Sources()...)
	allVertices = append(allVertices, window...)

	for i := 1; i < len(allVertices); i++ {
		relaxed, fatalEdge, isFatal := relaxWindowASAP(allVertices, dg, firstJobID, times)
		if isFatal {
			return delaygraph.Edges{fatalEdge}
		}
		if !relaxed {
			break
		}
	}

	var infeasible delaygraph.Edges
	for _, v := range allVertices {
		for _, e := range dg.Outgoing(v.ID) {
			if times[v.ID] != model.ASAPNegInf && model.AddSaturating(times[v.ID], e.Weight) > times[e.Dst] {
				infeasible = append(infeasible, e)
				break
			}
		}
	}
	return infeasible
}

func minJobID(window []delaygraph.Vertex) model.JobID {
	min := model.JobID(^uint64(0))
	for _, v := range window {
		if v.Op.Job < min {
			min = v.Op.Job
		}
	}
	return min
}

// relaxAllASAP performs one round of relaxation over every vertex's
// outgoing edges and reports whether anything changed.
func relaxAllASAP(dg *delaygraph.DelayGraph, vertices []delaygraph.Vertex, times Times) bool {
	relaxed := false
	for _, v := range vertices {
		if times[v.ID] == model.ASAPNegInf {
			continue
		}
		for _, e := range dg.Outgoing(v.ID) {
			value := model.AddSaturating(times[v.ID], e.Weight)
			if value > times[e.Dst] {
				times[e.Dst] = value
				relaxed = true
			}
		}
	}
	return relaxed
}

// relaxAllALAP performs one round of relaxation over every vertex's
// incoming edges. fatal is true if the relaxation would retime a vertex
// in isSource.
func relaxAllALAP(dg *delaygraph.DelayGraph, vertices []delaygraph.Vertex, times Times, isSource map[delaygraph.VertexID]bool) (relaxed, fatal bool) {
	for _, v := range vertices {
		if times[v.ID] == model.ALAPPosInf {
			continue
		}
		for _, e := range dg.Incoming(v.ID) {
			value := times[v.ID] - e.Weight
			if value < times[e.Src] {
				if isSource[e.Src] {
					return relaxed, true
				}
				times[e.Src] = value
				relaxed = true
			}
		}
	}
	return relaxed, false
}

func relaxWindowASAP(allVertices []delaygraph.Vertex, dg *delaygraph.DelayGraph, firstJobID model.JobID, times Times) (relaxed bool, fatalEdge delaygraph.Edge, isFatal bool) {
	for _, v := range allVertices {
		if times[v.ID] == model.ASAPNegInf {
			continue
		}
		for _, e := range dg.Outgoing(v.ID) {
			value := model.AddSaturating(times[v.ID], e.Weight)
			if value <= times[e.Dst] {
				continue
			}
			dstVertex, err := dg.GetVertex(e.Dst)
			if err == nil && dstVertex.Op.Job < firstJobID {
				return relaxed, e, true
			}
			times[e.Dst] = value
			relaxed = true
		}
	}
	return relaxed, delaygraph.Edge{}, false
}

// verifyASAP returns every edge still relaxable after convergence: the
// positive cycle, if any, or nil when the graph is feasible.
func verifyASAP(dg *delaygraph.DelayGraph, vertices []delaygraph.Vertex, times Times) delaygraph.Edges {
	var infeasible delaygraph.Edges
	for _, v := range vertices {
		for _, e := range dg.Outgoing(v.ID) {
			if times[v.ID] != model.ASAPNegInf && model.AddSaturating(times[v.ID], e.Weight) > times[e.Dst] {
				infeasible = append(infeasible, e)
			}
		}
	}
	return infeasible
}

// RelaxOneEdge applies a single relaxation of e against times, returning
// the amount the destination's label increased by (0 if no relaxation
// occurred). A destination previously at model.ASAPNegInf relaxes by the
// maximal sentinel amount so the incremental priority queue always pops
// it first.
func RelaxOneEdge(e delaygraph.Edge, times Times) model.Delay {
	if times[e.Src] == model.ASAPNegInf {
		return 0
	}
	value := model.AddSaturating(times[e.Src], e.Weight)
	if value <= times[e.Dst] {
		return 0
	}
	var amount model.Delay
	if times[e.Dst] == model.ASAPNegInf {
		amount = model.ALAPPosInf
	} else {
		amount = value - times[e.Dst]
	}
	times[e.Dst] = value
	return amount
}

type relaxItem struct {
	amount model.Delay
	vertex delaygraph.VertexID
}

type relaxHeap []relaxItem

func (h relaxHeap) Len() int            { return len(h) }
func (h relaxHeap) Less(i, j int) bool  { return h[i].amount > h[j].amount } // max-heap
func (h relaxHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *relaxHeap) Push(x interface{}) { *h = append(*h, x.(relaxItem)) }
func (h *relaxHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// AddEdgeIncremental checks whether adding e to dg would create a
// positive cycle, given already-converged times. It propagates
// relaxation outward from e.Dst using a max-heap ordered by relaxation
// amount (the teacher's container/heap priority-queue idiom), the same
// way the graph library's Dijkstra implementation orders its frontier.
// times is mutated in place regardless of the outcome; the caller is
// responsible for rolling times back if the edge is ultimately rejected.
func AddEdgeIncremental(dg *delaygraph.DelayGraph, e delaygraph.Edge, times Times) bool {
	pq := &relaxHeap{}
	heap.Init(pq)

	if amount := RelaxOneEdge(e, times); amount > 0 {
		heap.Push(pq, relaxItem{amount: amount, vertex: e.Dst})
	}

	for pq.Len() > 0 {
		item := heap.Pop(pq).(relaxItem)
		v := item.vertex

		for _, out := range dg.Outgoing(v) {
			if amount := RelaxOneEdge(out, times); amount > 0 {
				heap.Push(pq, relaxItem{amount: amount, vertex: out.Dst})
			}
		}

		if v == e.Src && RelaxOneEdge(e, times) > 0 {
			return true
		}
	}
	return false
}

// AddEdgesIncremental checks whether adding edges (in order) to dg would
// create a positive cycle. Edges that do not already exist are added to
// dg for the duration of the check and removed again before returning,
// whatever the outcome: this is a feasibility probe, not a commit.
// times is updated in place with the probed relaxations.
func AddEdgesIncremental(dg *delaygraph.DelayGraph, edges delaygraph.Edges, times Times) bool {
	var added delaygraph.Edges
	positiveCycle := false

	for _, e := range edges {
		if AddEdgeIncremental(dg, e, times) {
			positiveCycle = true
			break
		}
		if !dg.HasEdge(e.Src, e.Dst) {
			_ = dg.AddEdge(e.Src, e.Dst, e.Weight)
			added = append(added, e)
		}
	}

	for _, e := range added {
		dg.RemoveEdge(e.Src, e.Dst)
	}
	return positiveCycle
}

// AddEdgesIncrementalConst is the non-mutating variant of
// AddEdgesIncremental: it operates on a clone of dg so the caller's graph
// is never touched.
func AddEdgesIncrementalConst(dg *delaygraph.DelayGraph, edges delaygraph.Edges, times Times) bool {
	clone := &delaygraph.DelayGraph{Graph: dg.Graph.Clone()}
	return AddEdgesIncremental(clone, edges, times)
}

// FindPositiveCycle extracts one positive cycle from dg using the
// classic negative-cycle-finding technique (ported here for positive
// cycles on longest paths): relax for |V| rounds tracking predecessors,
// then walk |V| predecessor hops from the last vertex modified in the
// final round to land inside the cycle, then walk predecessors back to
// that vertex collecting edges.
func FindPositiveCycle(dg *delaygraph.DelayGraph) delaygraph.Edges {
	times := InitializeASAP(dg, nil, true)
	vertices := dg.Vertices()

	previous := make([]int, len(vertices))
	for i := range previous {
		previous[i] = -1
	}
	lastModified := -1

	for i := 0; i < len(vertices); i++ {
		lastModified = -1
		for _, v := range vertices {
			if times[v.ID] == model.ASAPNegInf {
				continue
			}
			for _, e := range dg.Outgoing(v.ID) {
				value := model.AddSaturating(times[v.ID], e.Weight)
				if value > times[e.Dst] {
					times[e.Dst] = value
					previous[e.Dst] = int(v.ID)
					lastModified = int(e.Dst)
				}
			}
		}
	}

	if lastModified == -1 {
		return nil
	}

	v := lastModified
	for i := 0; i < len(vertices); i++ {
		if v == -1 {
			return nil
		}
		v = previous[v]
	}
	if v == -1 {
		return nil
	}

	vLast := v
	var cycle delaygraph.Edges
	first := true
	for cur := vLast; ; cur = previous[cur] {
		if first {
			first = false
		} else {
			src := previous[cur]
			w, err := dg.GetWeight(delaygraph.VertexID(src), delaygraph.VertexID(cur))
			if err == nil {
				cycle = append(cycle, delaygraph.Edge{Src: delaygraph.VertexID(src), Dst: delaygraph.VertexID(cur), Weight: w})
			}
		}
		if cur == vLast && len(cycle) > 1 {
			break
		}
	}

	return cycle
}
