package dd

import (
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/delaygraph"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/longestpath"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
)

// Vertex is one state in the schedule-abstraction graph the search
// explores: the sequencing edges committed so far on every machine, the
// longest-path labels those edges imply, which operations are already
// scheduled, and the operations eligible to be scheduled next.
type Vertex struct {
	ID uint64

	MachineEdges map[model.MachineID]delaygraph.Edges

	ASAPST longestpath.Times
	ALAPST longestpath.Times

	JobCompletion map[model.JobID]model.Delay
	JobOrder      []model.JobID

	LastOperation       map[model.MachineID]model.Operation
	LastOperationFinish map[model.MachineID]model.Delay
	ScheduledOps        map[model.Operation]bool
	EncounteredOps      map[model.Operation]bool

	Depth int
	// ReadyOps bundles, per job, the operations a single scheduling
	// option would commit in one step: every operation of the job for
	// a FlowShop instance (a job runs start-to-finish once it begins,
	// so the whole job is one atomic decision), or just its next
	// operation otherwise.
	ReadyOps map[model.JobID][]model.Operation
}

// ImmediatelyReadyOps returns the first operation of every job currently
// in ReadyOps, the same "next thing that could legally start right now"
// view IsDominated's ready-op comparison needs.
func (v *Vertex) ImmediatelyReadyOps() []model.Operation {
	out := make([]model.Operation, 0, len(v.ReadyOps))
	for _, ops := range v.ReadyOps {
		if len(ops) > 0 {
			out = append(out, ops[0])
		}
	}
	return out
}

// NewRootVertex returns the empty vertex every search starts from: no
// operations scheduled, one source->terminus placeholder edge per
// machine, and ASAPST/ALAPST initialised straight from the graph.
func NewRootVertex(dg *delaygraph.DelayGraph) *Vertex {
	v := &Vertex{
		MachineEdges:        make(map[model.MachineID]delaygraph.Edges),
		JobCompletion:       make(map[model.JobID]model.Delay),
		LastOperation:       make(map[model.MachineID]model.Operation),
		LastOperationFinish: make(map[model.MachineID]model.Delay),
		ScheduledOps:        make(map[model.Operation]bool),
		EncounteredOps:      make(map[model.Operation]bool),
	}
	terminus, _ := dg.Terminus()
	for _, src := range dg.Sources() {
		machine := model.MachineID(src.Op.Op)
		v.MachineEdges[machine] = delaygraph.Edges{{Src: src.ID, Dst: terminus.ID, Weight: 0}}
	}
	v.ASAPST = longestpath.InitializeASAP(dg, nil, true)
	v.ALAPST = longestpath.InitializeALAP(dg, true)
	return v
}

// NewRootVertexForInstance is NewRootVertex plus JobOrder initialisation
// from in, so SetReadyOperations and downstream consumers can report a
// deterministic job ordering without recomputing it from the instance on
// every call.
func NewRootVertexForInstance(dg *delaygraph.DelayGraph, in *model.Instance) *Vertex {
	v := NewRootVertex(dg)
	v.JobOrder = append([]model.JobID(nil), in.JobOrder...)
	return v
}

// IsTerminal reports whether every operation of instance has been
// scheduled in this vertex.
func (v *Vertex) IsTerminal(in *model.Instance) bool {
	for _, job := range in.JobOrder {
		for _, op := range in.Jobs[job] {
			if !v.ScheduledOps[op] {
				return false
			}
		}
	}
	return true
}

// SetReadyOperations recomputes ReadyOps. For a FlowShop instance a job
// becomes ready the moment its first operation is unscheduled, and the
// option it offers bundles every operation of the job (a job, once
// started, runs without interruption): that bundle is additionally
// gated by the no-overtaking rule unless relaxed is set (relaxed also
// lifts the FixedOrder gate below; Expand always passes false). For
// FixedOrder and JobShop
// instances only the job's next single operation is offered; FixedOrder
// gates it on the predecessor job in JobsOutputOrder having already
// visited that operation's machine, JobShop has no global output order
// to gate on so every job's next operation is always a candidate.
func (v *Vertex) SetReadyOperations(in *model.Instance, relaxed bool) map[model.JobID][]model.Operation {
	ready := make(map[model.JobID][]model.Operation, len(in.JobOrder))
	outputPos := make(map[model.JobID]int, len(in.JobsOutputOrder))
	for i, job := range in.JobsOutputOrder {
		outputPos[job] = i
	}

	for _, job := range in.JobOrder {
		ops := in.Jobs[job]
		next, ok := firstUnscheduled(v, ops)
		if !ok {
			continue
		}

		if in.ShopType == model.FlowShop {
			if !relaxed && next != ops[0] {
				// Atomic per-job commit means this can only happen if
				// the job's bundle was already (partially) rejected
				// once; treat it as not ready rather than re-offering
				// a partial bundle.
				continue
			}
			if !relaxed {
				machine := in.MachineOf[ops[0]]
				if !v.predecessorCleared(in, job, machine, outputPos) {
					continue
				}
			}
			ready[job] = ops
			continue
		}

		if in.ShopType == model.FixedOrder && !relaxed {
			machine := in.MachineOf[next]
			if !v.predecessorCleared(in, job, machine, outputPos) {
				continue
			}
		}
		ready[job] = []model.Operation{next}
	}
	v.ReadyOps = ready
	return ready
}

func firstUnscheduled(v *Vertex, ops []model.Operation) (model.Operation, bool) {
	for _, op := range ops {
		if !v.ScheduledOps[op] {
			return op, true
		}
	}
	return model.Operation{}, false
}

// predecessorCleared reports whether the job immediately before job in
// the machine's output order has already scheduled its visit to
// machine, i.e. job is not overtaking it.
func (v *Vertex) predecessorCleared(in *model.Instance, job model.JobID, machine model.MachineID, outputPos map[model.JobID]int) bool {
	pos, ok := outputPos[job]
	if !ok || pos == 0 {
		return true
	}
	predecessorJob := in.JobsOutputOrder[pos-1]
	for _, op := range in.Jobs[predecessorJob] {
		if in.MachineOf[op] == machine {
			return v.ScheduledOps[op]
		}
	}
	return true
}
