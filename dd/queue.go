package dd

import (
	"container/heap"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/delaygraph"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
)

// Queue is the exploration-order abstraction Solve pops vertices from.
// Implementations are not safe for concurrent use.
type Queue interface {
	Push(v *Vertex)
	Pop() (*Vertex, bool)
	Len() int
}

// BoundAware is implemented by queues whose priority depends on the
// current best known upper bound. Solve calls UpdateBestUpperBound every
// time it records an improved complete solution.
type BoundAware interface {
	UpdateBestUpperBound(model.Delay)
}

// DepthQueue explores depth-first: the most recently pushed vertex is
// popped first, diving to a leaf before backtracking.
type DepthQueue struct {
	items []*Vertex
}

func NewDepthQueue() *DepthQueue { return &DepthQueue{} }

func (q *DepthQueue) Push(v *Vertex) { q.items = append(q.items, v) }

func (q *DepthQueue) Pop() (*Vertex, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	v := q.items[len(q.items)-1]
	q.items = q.items[:len(q.items)-1]
	return v, true
}

func (q *DepthQueue) Len() int { return len(q.items) }

// BreadthQueue explores breadth-first: vertices are popped in the order
// they were pushed, expanding one full depth level before the next.
type BreadthQueue struct {
	items []*Vertex
	head  int
}

func NewBreadthQueue() *BreadthQueue { return &BreadthQueue{} }

func (q *BreadthQueue) Push(v *Vertex) { q.items = append(q.items, v) }

func (q *BreadthQueue) Pop() (*Vertex, bool) {
	if q.head >= len(q.items) {
		return nil, false
	}
	v := q.items[q.head]
	q.items[q.head] = nil
	q.head++
	if q.head > 64 && q.head*2 > len(q.items) {
		q.items = append([]*Vertex(nil), q.items[q.head:]...)
		q.head = 0
	}
	return v, true
}

func (q *BreadthQueue) Len() int { return len(q.items) - q.head }

// heapEntry pairs a vertex with a priority key fixed at push time, so
// BestQueue and StaticQueue can share one container/heap.Interface
// implementation and differ only in how that key is computed.
type heapEntry struct {
	vertex *Vertex
	key    float64
}

type entryHeap []heapEntry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].key < h[j].key }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(heapEntry)) }
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// terminusLowerBound returns v's ASAP value at dg's terminus vertex: the
// length of the longest path already forced into the graph by v's
// committed edges, i.e. a lower bound on the makespan any descendant of v
// can achieve. VertexIDs are assigned in insertion order and are not
// guaranteed to place the terminus last, so the lookup always goes
// through dg.Terminus() rather than indexing the end of v.ASAPST.
func terminusLowerBound(dg *delaygraph.DelayGraph, v *Vertex) model.Delay {
	terminus, ok := dg.Terminus()
	if !ok {
		return model.ASAPNegInf
	}
	return labelAt(v.ASAPST, terminus.ID)
}

// BestQueue explores in order of smallest terminus ASAP lower bound,
// approximating a best-bound-first search: the vertex whose committed
// edges already force the shortest possible completion is explored next.
type BestQueue struct {
	dg *delaygraph.DelayGraph
	h  entryHeap
}

func NewBestQueue(dg *delaygraph.DelayGraph) *BestQueue {
	q := &BestQueue{dg: dg}
	heap.Init(&q.h)
	return q
}

func (q *BestQueue) Push(v *Vertex) {
	bound := terminusLowerBound(q.dg, v)
	heap.Push(&q.h, heapEntry{vertex: v, key: float64(bound)})
}

func (q *BestQueue) Pop() (*Vertex, bool) {
	if q.h.Len() == 0 {
		return nil, false
	}
	return heap.Pop(&q.h).(heapEntry).vertex, true
}

func (q *BestQueue) Len() int { return q.h.Len() }

// defaultStaticRankFactor weighs depth against lower bound for
// StaticQueue's fixed-factor variant.
const defaultStaticRankFactor = 0.8

// StaticQueue explores in order of a weighted combination of search depth
// (favouring vertices close to a complete solution, for an early upper
// bound) and terminus lower bound (favouring promising vertices): key =
// rankFactor*(-depth) + (1-rankFactor)*lowerBound, smallest popped first,
// so larger depth and smaller lower bound both push a vertex towards the
// front. With a fixed rankFactor the key never needs re-evaluating
// against sibling state once pushed, hence "static"; the adaptive variant
// computes rankFactor at each Push from the best upper bound last
// recorded by UpdateBestUpperBound, so already-pushed entries keep their
// original key (a known approximation — the reference comparator that
// ties rankFactor to search progress was not available to copy exactly;
// see DESIGN.md).
type StaticQueue struct {
	dg         *delaygraph.DelayGraph
	h          entryHeap
	rankFactor float64
	adaptive   bool
	bestUpper  model.Delay
}

// NewStaticQueue returns a StaticQueue with the fixed default rank
// factor.
func NewStaticQueue(dg *delaygraph.DelayGraph) *StaticQueue {
	q := &StaticQueue{dg: dg, rankFactor: defaultStaticRankFactor, bestUpper: model.ALAPPosInf}
	heap.Init(&q.h)
	return q
}

// NewAdaptiveStaticQueue returns a StaticQueue whose rank factor is
// recomputed from the best upper bound found so far, via
// UpdateBestUpperBound.
func NewAdaptiveStaticQueue(dg *delaygraph.DelayGraph) *StaticQueue {
	q := NewStaticQueue(dg)
	q.adaptive = true
	return q
}

func (q *StaticQueue) Push(v *Vertex) {
	lowerBound := terminusLowerBound(q.dg, v)
	rf := q.rankFactor
	if q.adaptive && q.bestUpper.IsFinite() && q.bestUpper > 0 && lowerBound.IsFinite() {
		rf = clamp(float64(lowerBound)/float64(q.bestUpper), 0, 1)
	}
	key := rf*(-float64(v.Depth)) + (1-rf)*float64(lowerBound)
	heap.Push(&q.h, heapEntry{vertex: v, key: key})
}

// UpdateBestUpperBound records bound as the current incumbent, so a
// subsequent adaptive Push can recompute its rank factor from it.
func (q *StaticQueue) UpdateBestUpperBound(bound model.Delay) {
	q.bestUpper = bound
}

func (q *StaticQueue) Pop() (*Vertex, bool) {
	if q.h.Len() == 0 {
		return nil, false
	}
	return heap.Pop(&q.h).(heapEntry).vertex, true
}

func (q *StaticQueue) Len() int { return q.h.Len() }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
