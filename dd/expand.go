package dd

import (
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/delaygraph"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/longestpath"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
)

// Expand produces every feasible child of state: one child per ready
// (job, operations) option. A flow-shop option commits every operation
// of the job at once; otherwise it commits the job's single next
// operation. Each option's real edges always append to the tail of
// their machine's committed chain (DD search never reconsiders an
// earlier insertion point, unlike the forward heuristic). A
// minimum-cost-continuation lower bound over every not-yet-scheduled
// operation is combined with the real edges for the feasibility probe,
// and children whose terminus ASAP value already exceeds upperBound are
// discarded. IDs are handed out from nextID, which the caller advances
// by the number of children returned.
func Expand(dg *delaygraph.DelayGraph, in *model.Instance, state *Vertex, upperBound model.Delay, nextID uint64) []*Vertex {
	ready := state.SetReadyOperations(in, false)
	terminus, ok := dg.Terminus()
	if !ok {
		return nil
	}
	committed := allCommittedEdges(state)

	children := make([]*Vertex, 0, len(ready))
	for job, ops := range ready {
		byMachine, tailIdx, ok := buildOptionEdges(dg, in, state, ops)
		if !ok {
			continue
		}
		var realEdges delaygraph.Edges
		for _, pair := range byMachine {
			realEdges = append(realEdges, pair...)
		}
		infer := inferTimeLeftEdges(dg, in, state, ops, terminus.ID)

		times := append(longestpath.Times(nil), state.ASAPST...)
		probe := append(delaygraph.Edges{}, committed...)
		probe = append(probe, realEdges...)
		probe = append(probe, infer...)
		if longestpath.AddEdgesIncrementalConst(dg, probe, times) {
			continue
		}
		if upperBound.IsFinite() && times[terminus.ID] > upperBound {
			continue
		}

		child := deriveChild(dg, state, in, job, ops, byMachine, tailIdx, times, nextID)
		nextID++
		children = append(children, child)
	}
	return children
}

func allCommittedEdges(state *Vertex) delaygraph.Edges {
	var out delaygraph.Edges
	for _, edges := range state.MachineEdges {
		out = append(out, edges...)
	}
	return out
}

// tailEdgeIndex finds the edge in edges that currently terminates at
// terminusID: the single valid append point for a machine's committed
// chain, since DD only ever extends a chain at its tail.
func tailEdgeIndex(edges delaygraph.Edges, terminusID delaygraph.VertexID) int {
	for i, e := range edges {
		if e.Dst == terminusID {
			return i
		}
	}
	return -1
}

// buildOptionEdges constructs the real new edges for every operation in
// ops, appended to the tail of each operation's machine chain. An option
// may carry several operations sharing a machine (a re-entrant job's
// bundle in a flow-shop): those chain directly off each other rather
// than each independently splicing against the machine's old tail, so
// the old tail edge is replaced exactly once per machine by the whole
// new sub-chain.
func buildOptionEdges(dg *delaygraph.DelayGraph, in *model.Instance, state *Vertex, ops []model.Operation) (map[model.MachineID]delaygraph.Edges, map[model.MachineID]int, bool) {
	terminus, ok := dg.Terminus()
	if !ok {
		return nil, nil, false
	}

	byMachineOps := make(map[model.MachineID][]model.Operation, len(ops))
	var machineOrder []model.MachineID
	for _, op := range ops {
		m := in.MachineOf[op]
		if _, seen := byMachineOps[m]; !seen {
			machineOrder = append(machineOrder, m)
		}
		byMachineOps[m] = append(byMachineOps[m], op)
	}

	byMachine := make(map[model.MachineID]delaygraph.Edges, len(byMachineOps))
	tailIdx := make(map[model.MachineID]int, len(byMachineOps))
	for _, m := range machineOrder {
		mOps := byMachineOps[m]
		idx := tailEdgeIndex(state.MachineEdges[m], terminus.ID)
		if idx < 0 {
			return nil, nil, false
		}
		tail := state.MachineEdges[m][idx]

		chain := make(delaygraph.Edges, 0, len(mOps)+1)
		prevV := tail.Src
		for _, op := range mOps {
			curV, ok := dg.GetVertexID(op)
			if !ok {
				return nil, nil, false
			}
			prevE, _ := buildSplice(dg, in, op, prevV, curV, terminus.ID)
			chain = append(chain, prevE)
			prevV = curV
		}
		last := mOps[len(mOps)-1]
		lastV, _ := dg.GetVertexID(last)
		chain = append(chain, delaygraph.Edge{Src: lastV, Dst: terminus.ID, Weight: in.ProcessingTime(last)})

		byMachine[m] = chain
		tailIdx[m] = idx
	}
	return byMachine, tailIdx, true
}

// inferTimeLeftEdges builds the non-mutating lower-bound edges: for
// every operation not yet scheduled and not part of scheduling (the
// option currently being probed), its processing time is added to its
// machine's running total; one edge per machine then carries that
// total from the machine's current tail to the terminus, so the probe
// sees a lower bound on the work still owed to every machine even
// though none of it has actually been sequenced yet.
func inferTimeLeftEdges(dg *delaygraph.DelayGraph, in *model.Instance, state *Vertex, scheduling []model.Operation, terminusID delaygraph.VertexID) delaygraph.Edges {
	isScheduling := make(map[model.Operation]bool, len(scheduling))
	for _, op := range scheduling {
		isScheduling[op] = true
	}

	machineTotal := make(map[model.MachineID]model.Delay)
	for _, job := range in.JobOrder {
		for _, op := range in.Jobs[job] {
			if state.ScheduledOps[op] || isScheduling[op] {
				continue
			}
			m := in.MachineOf[op]
			machineTotal[m] += in.ProcessingTime(op)
		}
	}

	edges := make(delaygraph.Edges, 0, len(machineTotal))
	for m, total := range machineTotal {
		if total <= 0 {
			continue
		}
		idx := tailEdgeIndex(state.MachineEdges[m], terminusID)
		if idx < 0 {
			continue
		}
		src := state.MachineEdges[m][idx].Src
		edges = append(edges, delaygraph.Edge{Src: src, Dst: terminusID, Weight: total})
	}
	return edges
}

func buildSplice(dg *delaygraph.DelayGraph, in *model.Instance, op model.Operation, prevV, curV, nextV delaygraph.VertexID) (delaygraph.Edge, delaygraph.Edge) {
	prevVertex, _ := dg.GetVertex(prevV)

	var prevWeight model.Delay
	if dg.IsVisible(prevV) {
		prevWeight = in.ProcessingTime(prevVertex.Op) + in.SetupTimes.Get(prevVertex.Op, op)
	}

	// The splice always lands just before the machine's tail (terminus
	// or its current placeholder), so the op's outgoing edge never has
	// a real successor to pay setup time towards yet.
	nextWeight := in.ProcessingTime(op)

	return delaygraph.Edge{Src: prevV, Dst: curV, Weight: prevWeight},
		delaygraph.Edge{Src: curV, Dst: nextV, Weight: nextWeight}
}

func deriveChild(dg *delaygraph.DelayGraph, parent *Vertex, in *model.Instance, job model.JobID, ops []model.Operation, byMachine map[model.MachineID]delaygraph.Edges, tailIdx map[model.MachineID]int, times longestpath.Times, id uint64) *Vertex {
	newEdges := make(map[model.MachineID]delaygraph.Edges, len(parent.MachineEdges))
	for m, edges := range parent.MachineEdges {
		cp := make(delaygraph.Edges, len(edges))
		copy(cp, edges)
		newEdges[m] = cp
	}

	for m, pair := range byMachine {
		idx := tailIdx[m]
		spliced := make(delaygraph.Edges, 0, len(newEdges[m])+1)
		spliced = append(spliced, newEdges[m][:idx]...)
		spliced = append(spliced, pair...)
		spliced = append(spliced, newEdges[m][idx+1:]...)
		newEdges[m] = spliced
	}

	scheduled := make(map[model.Operation]bool, len(parent.ScheduledOps)+len(ops))
	for k, v := range parent.ScheduledOps {
		scheduled[k] = v
	}
	lastOp := make(map[model.MachineID]model.Operation, len(parent.LastOperation))
	for k, v := range parent.LastOperation {
		lastOp[k] = v
	}
	lastFinish := make(map[model.MachineID]model.Delay, len(parent.LastOperationFinish))
	for k, v := range parent.LastOperationFinish {
		lastFinish[k] = v
	}
	encountered := make(map[model.Operation]bool, len(parent.EncounteredOps)+len(ops))
	for k, v := range parent.EncounteredOps {
		encountered[k] = v
	}

	var finish model.Delay
	for _, op := range ops {
		scheduled[op] = true
		encountered[op] = true
		m := in.MachineOf[op]
		lastOp[m] = op
		if curV, ok := dg.GetVertexID(op); ok && int(curV) < len(times) {
			finish = times[curV] + in.ProcessingTime(op)
			lastFinish[m] = finish
		}
	}

	completion := make(map[model.JobID]model.Delay, len(parent.JobCompletion))
	for k, v := range parent.JobCompletion {
		completion[k] = v
	}
	completion[job] = finish

	child := &Vertex{
		ID:                  id,
		MachineEdges:        newEdges,
		ASAPST:              times,
		JobOrder:            parent.JobOrder,
		JobCompletion:       completion,
		LastOperation:       lastOp,
		LastOperationFinish: lastFinish,
		ScheduledOps:        scheduled,
		EncounteredOps:      encountered,
		Depth:               parent.Depth + 1,
	}
	child.ALAPST = recomputeALAP(dg, child)
	return child
}

// recomputeALAP rebuilds child's as-late-as-possible labels against a
// clone of dg carrying every one of child's committed edges, mirroring
// the original's updateVertexALAPST: the as-late labels of a partially
// scheduled state depend on every sequencing decision made so far, not
// just the option just committed, so a full recomputation is run rather
// than an incremental relaxation.
func recomputeALAP(dg *delaygraph.DelayGraph, child *Vertex) longestpath.Times {
	clone := &delaygraph.DelayGraph{Graph: dg.Graph.Clone()}
	for _, edges := range child.MachineEdges {
		for _, e := range edges {
			if !clone.HasEdge(e.Src, e.Dst) {
				_ = clone.AddEdge(e.Src, e.Dst, e.Weight)
			}
		}
	}
	sources := make([]delaygraph.VertexID, 0, len(dg.Sources()))
	for _, s := range dg.Sources() {
		sources = append(sources, s.ID)
	}
	times := longestpath.InitializeALAP(clone, true)
	longestpath.ComputeALAP(clone, times, sources)
	return times
}
