package partial

import (
	"sync/atomic"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/delaygraph"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
)

// IDGenerator hands out monotonically increasing Solution identifiers.
// Search callers own one instance and thread it explicitly through their
// loop, rather than relying on package-level mutable state (the original
// implementation's static counter, flagged as global mutable state in
// this module's design notes).
type IDGenerator struct {
	next int64
}

// NewIDGenerator returns an IDGenerator starting at 0.
func NewIDGenerator() *IDGenerator { return &IDGenerator{} }

// Next returns the next identifier and advances the generator.
func (g *IDGenerator) Next() int64 {
	return atomic.AddInt64(&g.next, 1) - 1
}

// Solution is the immutable per-machine sequencing state accumulated by a
// search strategy. The zero value is not usable; construct with New.
type Solution struct {
	chosenEdges   map[model.MachineID]delaygraph.Edges
	lastInserted  map[model.MachineID]int
	firstFeasible map[model.MachineID]int
	firstMaint    map[model.MachineID]int

	asapst []model.Delay

	ranking             float64
	makespanLast        model.Delay
	earliestStartFuture model.Delay
	nrOpsInLoop         uint32

	maintCount, repairCount, reprintCount uint32

	id, prevID int64
}

// New returns an empty Solution with the given id.
func New(id int64) Solution {
	return Solution{
		chosenEdges:   make(map[model.MachineID]delaygraph.Edges),
		lastInserted:  make(map[model.MachineID]int),
		firstFeasible: make(map[model.MachineID]int),
		firstMaint:    make(map[model.MachineID]int),
		id:            id,
		prevID:        -1,
		ranking:       -1,
	}
}

// ID returns this solution's identifier.
func (s Solution) ID() int64 { return s.id }

// PrevID returns the identifier of the solution this one was derived
// from, or -1 for the root solution.
func (s Solution) PrevID() int64 { return s.prevID }

// ChosenEdges returns the committed sequencing edges for machine.
func (s Solution) ChosenEdges(machine model.MachineID) delaygraph.Edges {
	return s.chosenEdges[machine]
}

// ChosenEdgesPerMachine returns the full per-machine edge map. Callers
// must not mutate the returned slices in place.
func (s Solution) ChosenEdgesPerMachine() map[model.MachineID]delaygraph.Edges {
	return s.chosenEdges
}

// AllChosenEdges flattens every machine's committed edges into one slice.
// Order across machines is unspecified.
func (s Solution) AllChosenEdges() delaygraph.Edges {
	var out delaygraph.Edges
	for _, edges := range s.chosenEdges {
		out = append(out, edges...)
	}
	return out
}

// ASAPST returns the longest-path start times this solution was last
// evaluated against.
func (s Solution) ASAPST() []model.Delay { return s.asapst }

// WithASAPST returns a copy of s with its ASAPST labels replaced.
func (s Solution) WithASAPST(asapst []model.Delay) Solution {
	s.asapst = asapst
	return s
}

// Ranking returns the scalar rank a search strategy assigned this
// solution; -1 means unranked.
func (s Solution) Ranking() float64 { return s.ranking }

// WithRanking returns a copy of s with Ranking set to value.
func (s Solution) WithRanking(value float64) Solution {
	s.ranking = value
	return s
}

// MakespanLastScheduledJob returns the makespan contribution recorded the
// last time this solution scheduled an operation.
func (s Solution) MakespanLastScheduledJob() model.Delay { return s.makespanLast }

// WithMakespanLastScheduledJob returns a copy of s with that value set.
func (s Solution) WithMakespanLastScheduledJob(value model.Delay) Solution {
	s.makespanLast = value
	return s
}

// EarliestStartFutureOperation returns the earliest possible start time
// of the next not-yet-scheduled operation.
func (s Solution) EarliestStartFutureOperation() model.Delay { return s.earliestStartFuture }

// WithEarliestStartFutureOperation returns a copy of s with that value set.
func (s Solution) WithEarliestStartFutureOperation(value model.Delay) Solution {
	s.earliestStartFuture = value
	return s
}

// NrOpsInLoop returns the number of operations currently inside the
// re-entrant loop.
func (s Solution) NrOpsInLoop() uint32 { return s.nrOpsInLoop }

// WithNrOpsInLoop returns a copy of s with that value set.
func (s Solution) WithNrOpsInLoop(n uint32) Solution {
	s.nrOpsInLoop = n
	return s
}

// Makespan returns the start time of the last vertex in ASAPST, or -1 if
// ASAPST is empty.
//
// TODO: this is wrong once maintenance is inserted behind ordinary
// operations, since the slice's last entry then belongs to a maintenance
// vertex rather than the true final operation; use RealMakespan instead
// once the instance and graph are available.
func (s Solution) Makespan() model.Delay {
	if len(s.asapst) == 0 {
		return -1
	}
	return s.asapst[len(s.asapst)-1]
}

// RealMakespan returns the true completion time of the last job in the
// instance's output order, looked up through g rather than relying on
// ASAPST's final slice entry.
func (s Solution) RealMakespan(in *model.Instance, g *delaygraph.Graph) model.Delay {
	if len(in.JobsOutputOrder) == 0 {
		return -1
	}
	lastJob := in.JobsOutputOrder[len(in.JobsOutputOrder)-1]
	ops := in.Jobs[lastJob]
	if len(ops) == 0 {
		return -1
	}
	lastOp := ops[len(ops)-1]
	vID, ok := g.GetVertexID(lastOp)
	if !ok || int(vID) >= len(s.asapst) {
		return -1
	}
	return s.asapst[vID] + in.ProcessingTime(lastOp)
}

// FirstPossibleEdge returns the index of the earliest edge machine's
// chosen-edges slice may be inserted at.
func (s Solution) FirstPossibleEdge(machine model.MachineID) int {
	return s.firstFeasible[machine]
}

// FirstMaintEdge returns the earliest index a maintenance option may
// occupy in machine's chosen-edges slice.
func (s Solution) FirstMaintEdge(machine model.MachineID) int {
	return s.firstMaint[machine]
}

// LatestEdge returns the index just past the most recently committed
// edge in machine's chosen-edges slice.
func (s Solution) LatestEdge(machine model.MachineID) int {
	return s.lastInserted[machine]
}

// Add splices Option c into machine's sequence: c.PrevE is inserted at
// c.Position and the edge previously occupying that slot is overwritten
// with c.NextE, matching the original's "insert then overwrite the next
// slot" edge-splicing mechanics. lastInserted always advances to
// Position+1. firstFeasible only advances to Position+1 for a
// non-maintenance option; a maintenance insertion leaves it in place.
func (s Solution) Add(machine model.MachineID, c Option, asapst []model.Delay, gen *IDGenerator) Solution {
	newEdges := cloneEdgeMap(s.chosenEdges)
	machineEdges := newEdges[machine]

	inserted := make(delaygraph.Edges, 0, len(machineEdges)+1)
	inserted = append(inserted, machineEdges[:c.Position]...)
	inserted = append(inserted, c.PrevE)
	inserted = append(inserted, c.NextE)
	inserted = append(inserted, machineEdges[c.Position+1:]...)
	newEdges[machine] = inserted

	newLast := cloneIntMap(s.lastInserted)
	newLast[machine] = c.Position + 1

	newFirstMaint := cloneIntMap(s.firstMaint)

	newFirstFeasible := cloneIntMap(s.firstFeasible)
	if !c.IsMaint {
		newFirstFeasible[machine] = c.Position + 1
	}

	next := Solution{
		chosenEdges:   newEdges,
		lastInserted:  newLast,
		firstFeasible: newFirstFeasible,
		firstMaint:    newFirstMaint,
		asapst:        asapst,
		ranking:       -1,
		id:            gen.Next(),
		prevID:        s.id,
		maintCount:    s.maintCount,
		repairCount:   s.repairCount,
		reprintCount:  s.reprintCount,
	}
	return next
}

// Remove is the inverse of Add: it deletes the edge at c.Position from
// machine's sequence and overwrites the preceding slot with c.PrevE.
// lastInserted only retreats when after is false (removal happened before
// the most recently committed edge); firstFeasible always retreats by
// one.
func (s Solution) Remove(machine model.MachineID, c Option, asapst []model.Delay, after bool, gen *IDGenerator) Solution {
	newEdges := cloneEdgeMap(s.chosenEdges)
	machineEdges := newEdges[machine]

	removed := make(delaygraph.Edges, 0, len(machineEdges)-1)
	removed = append(removed, machineEdges[:c.Position]...)
	removed = append(removed, machineEdges[c.Position+1:]...)
	if c.Position-1 >= 0 && c.Position-1 < len(removed) {
		removed[c.Position-1] = c.PrevE
	}
	newEdges[machine] = removed

	newLast := cloneIntMap(s.lastInserted)
	if !after {
		newLast[machine] = newLast[machine] - 1
	}

	newFirstMaint := cloneIntMap(s.firstMaint)

	newFirstFeasible := cloneIntMap(s.firstFeasible)
	newFirstFeasible[machine] = newFirstFeasible[machine] - 1

	next := Solution{
		chosenEdges:   newEdges,
		lastInserted:  newLast,
		firstFeasible: newFirstFeasible,
		firstMaint:    newFirstMaint,
		asapst:        asapst,
		ranking:       -1,
		id:            gen.Next(),
		prevID:        s.id,
		maintCount:    s.maintCount,
		repairCount:   s.repairCount,
		reprintCount:  s.reprintCount,
	}
	return next
}

// Dominates reports whether s dominates other: s's makespan-of-last-job
// and earliest-start-of-next-operation are no worse, and s keeps at
// least as many operations in the re-entrant loop.
//
// The average-productivity criterion the original comments out is
// intentionally not ported; see this module's design notes.
func (s Solution) Dominates(other Solution) bool {
	return s.makespanLast <= other.makespanLast &&
		s.earliestStartFuture <= other.earliestStartFuture &&
		s.nrOpsInLoop >= other.nrOpsInLoop
}

func cloneEdgeMap(m map[model.MachineID]delaygraph.Edges) map[model.MachineID]delaygraph.Edges {
	out := make(map[model.MachineID]delaygraph.Edges, len(m))
	for k, v := range m {
		cp := make(delaygraph.Edges, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

func cloneIntMap(m map[model.MachineID]int) map[model.MachineID]int {
	out := make(map[model.MachineID]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
