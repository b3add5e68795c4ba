package dd

import (
	"sort"
	"strconv"
	"strings"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/delaygraph"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
)

// JobCompletionKey buckets vertices that have scheduled the same set of
// operations, so dominance checks only compare against genuine peers
// instead of the whole live frontier.
type JobCompletionKey string

// completionKey builds a JobCompletionKey from v's scheduled-operations
// set: a sorted list of "job:op" pairs, stable regardless of map
// iteration order.
func completionKey(v *Vertex) JobCompletionKey {
	keys := make([]string, 0, len(v.ScheduledOps))
	for op := range v.ScheduledOps {
		keys = append(keys, strconv.FormatUint(uint64(op.Job), 10)+":"+strconv.FormatUint(uint64(op.Op), 10))
	}
	sort.Strings(keys)
	return JobCompletionKey(strings.Join(keys, ","))
}

// ActiveIndex is the two-level index of live (non-dominated) vertices
// Solve consults before pushing a new child: first by JobCompletionKey
// (same scheduling progress), then by vertex ID. A vertex removed from
// the index may still sit in the exploration Queue as a tombstone;
// Solve skips any popped vertex no longer present here.
type ActiveIndex struct {
	byKey map[JobCompletionKey]map[uint64]*Vertex
}

// NewActiveIndex returns an empty ActiveIndex.
func NewActiveIndex() *ActiveIndex {
	return &ActiveIndex{byKey: make(map[JobCompletionKey]map[uint64]*Vertex)}
}

// Offer checks v against every live peer sharing its JobCompletionKey.
// If any peer dominates v, Offer returns false and leaves the index
// unchanged. Otherwise v is inserted (any peers it dominates are
// removed) and Offer returns true.
func (idx *ActiveIndex) Offer(dg *delaygraph.DelayGraph, in *model.Instance, v *Vertex) bool {
	key := completionKey(v)
	peers := idx.byKey[key]

	for _, peer := range peers {
		if IsDominated(dg, in, v, peer) {
			return false
		}
	}
	for id, peer := range peers {
		if IsDominated(dg, in, peer, v) {
			delete(peers, id)
		}
	}

	if peers == nil {
		peers = make(map[uint64]*Vertex)
		idx.byKey[key] = peers
	}
	peers[v.ID] = v
	return true
}

// Remove tombstones v: it is removed from the index but may still be
// sitting in a Queue.
func (idx *ActiveIndex) Remove(v *Vertex) {
	key := completionKey(v)
	if peers, ok := idx.byKey[key]; ok {
		delete(peers, v.ID)
	}
}

// IsLive reports whether v is still present in the index (not a
// tombstoned duplicate already popped and expanded, or dominated after
// being pushed).
func (idx *ActiveIndex) IsLive(v *Vertex) bool {
	peers, ok := idx.byKey[completionKey(v)]
	if !ok {
		return false
	}
	_, ok = peers[v.ID]
	return ok
}
