package dd

import (
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/delaygraph"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/longestpath"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/partial"
)

// SeedFromSolution converts a complete partial.Solution (typically the
// forward heuristic's result) into a terminal Vertex: every operation
// scheduled, every machine's committed chain copied verbatim, and ASAPST
// recomputed against dg so Solve can register its makespan as an initial
// incumbent. This mirrors the original's seeded search in effect (the
// decision-diagram search gets a tight upper bound to prune against from
// its very first expansion) without replaying the seed solution's
// intermediate insertion order into the search frontier one operation at
// a time: this Go port's Vertex invariants (a single source->terminus
// chain per machine, always extended at the tail) make a faithful
// step-by-step replay of an externally-ordered insertion history
// materially more involved than reproducing the bound it is meant to
// provide.
func SeedFromSolution(dg *delaygraph.DelayGraph, in *model.Instance, sol partial.Solution) *Vertex {
	v := NewRootVertexForInstance(dg, in)

	v.MachineEdges = make(map[model.MachineID]delaygraph.Edges, len(sol.ChosenEdgesPerMachine()))
	for m, edges := range sol.ChosenEdgesPerMachine() {
		cp := make(delaygraph.Edges, len(edges))
		copy(cp, edges)
		v.MachineEdges[m] = cp
	}

	for _, job := range in.JobOrder {
		for _, op := range in.Jobs[job] {
			v.ScheduledOps[op] = true
			v.EncounteredOps[op] = true
		}
	}

	times := append(longestpath.Times(nil), v.ASAPST...)
	longestpath.AddEdgesIncrementalConst(dg, allCommittedEdges(v), times)
	v.ASAPST = times
	v.ALAPST = recomputeALAP(dg, v)

	terminus, ok := dg.Terminus()
	if ok {
		for m, edges := range v.MachineEdges {
			idx := tailEdgeIndex(edges, terminus.ID)
			if idx <= 0 {
				continue
			}
			lastV := edges[idx].Src
			if !dg.IsVisible(lastV) {
				continue
			}
			vtx, err := dg.GetVertex(lastV)
			if err != nil {
				continue
			}
			v.LastOperation[m] = vtx.Op
			v.LastOperationFinish[m] = labelAt(times, lastV) + in.ProcessingTime(vtx.Op)
		}
	}

	for _, job := range in.JobOrder {
		ops := in.Jobs[job]
		if len(ops) == 0 {
			continue
		}
		last := ops[len(ops)-1]
		id, ok := dg.GetVertexID(last)
		if !ok {
			continue
		}
		v.JobCompletion[job] = labelAt(times, id) + in.ProcessingTime(last)
	}

	return v
}
