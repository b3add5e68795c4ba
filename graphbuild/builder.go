package graphbuild

import (
	"fmt"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/delaygraph"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
)

// Build validates in and constructs the rich DelayGraph the forward
// heuristic and FixedOrder sequencing need: one vertex per operation, one
// synthetic source per machine, one shared terminus, precedence edges
// within each job, due-date back-edges, machine-source bootstrap edges,
// and (for a FixedOrder shop) the inter-job sequencing edges its
// JobsOutputOrder already determines.
func Build(in *model.Instance) (*delaygraph.DelayGraph, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInconsistentInput, err)
	}

	dg, vertexOf, err := baseGraph(in)
	if err != nil {
		return nil, err
	}

	addSourceAndTerminusEdges(dg, in, vertexOf)

	if in.ShopType == model.FixedOrder {
		if err := addFixedOrderSequencingEdges(dg, in, vertexOf); err != nil {
			return nil, err
		}
	}

	return dg, nil
}

// BuildDD validates in and constructs the bare DelayGraph the
// decision-diagram search starts from: vertices, machine sources,
// precedence edges, due-date back-edges, and terminus edges, but no
// machine-source bootstrap edges. Unlike Build's rich graph, a DD search
// state builds its own per-machine source->terminus placeholder chain
// dynamically (NewRootVertex) and extends it one committed edge at a
// time, so wiring a static bootstrap edge here would only be overwritten
// immediately; FixedOrder sequencing edges are still committed upfront
// since DD search never revisits that decision.
func BuildDD(in *model.Instance) (*delaygraph.DelayGraph, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInconsistentInput, err)
	}

	dg, vertexOf, err := baseGraph(in)
	if err != nil {
		return nil, err
	}

	addTerminusEdges(dg, in, vertexOf)

	if in.ShopType == model.FixedOrder {
		if err := addFixedOrderSequencingEdges(dg, in, vertexOf); err != nil {
			return nil, err
		}
	}

	return dg, nil
}

// baseGraph builds the vertex set and intra-job structure both Build and
// BuildDD share: sources, terminus, operation vertices, precedence edges,
// and due-date edges.
func baseGraph(in *model.Instance) (*delaygraph.DelayGraph, map[model.Operation]delaygraph.VertexID, error) {
	dg := delaygraph.NewDelayGraph()
	machines := collectMachines(in)
	for _, m := range machines {
		if _, err := dg.AddSource(m); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInconsistentInput, err)
		}
	}
	if _, err := dg.AddTerminus(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInconsistentInput, err)
	}

	vertexOf := make(map[model.Operation]delaygraph.VertexID)
	for _, job := range in.JobOrder {
		for _, op := range in.Jobs[job] {
			v, err := dg.AddVertex(op)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %v", ErrInconsistentInput, err)
			}
			vertexOf[op] = v
		}
	}

	if err := addPrecedenceEdges(dg, in, vertexOf); err != nil {
		return nil, nil, err
	}
	if err := addDueDateEdges(dg, in, vertexOf); err != nil {
		return nil, nil, err
	}
	return dg, vertexOf, nil
}

func collectMachines(in *model.Instance) []model.MachineID {
	seen := make(map[model.MachineID]bool)
	var out []model.MachineID
	for _, job := range in.JobOrder {
		for _, op := range in.Jobs[job] {
			m := in.MachineOf[op]
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}

// addPrecedenceEdges connects each job's operations in flow order,
// weighting the edge by the predecessor's processing time plus the
// applicable setup time (sequence-dependent if an override exists for
// the exact predecessor, otherwise the sequence-independent table).
func addPrecedenceEdges(dg *delaygraph.DelayGraph, in *model.Instance, vertexOf map[model.Operation]delaygraph.VertexID) error {
	for _, job := range in.JobOrder {
		ops := in.Jobs[job]
		for i := 1; i < len(ops); i++ {
			prev, cur := ops[i-1], ops[i]
			weight := in.ProcessingTime(prev) + setupTime(in, prev, cur)
			if err := dg.AddEdge(vertexOf[prev], vertexOf[cur], weight); err != nil {
				return fmt.Errorf("%w: %v", ErrInconsistentInput, err)
			}
		}
	}
	return nil
}

func setupTime(in *model.Instance, prev, cur model.Operation) model.Delay {
	if v, ok := in.SetupTimes.Lookup(prev, cur); ok {
		return v
	}
	return in.SetupTimesIndependent.Get(cur)
}

// addDueDateEdges encodes sequence-independent and absolute due dates as
// negative back-edges from the constrained operation to a machine's
// source vertex, which
// InitializeASAP pins at 0: relaxing op->source with weight -D is only
// feasible while ASAP(op) <= D, so an overdue schedule surfaces as a
// positive cycle at that source. A sequence-independent due date only
// constrains its own operation's machine; an absolute (whole-job) due
// date constrains the job's last operation against every machine's
// source, matching the original builder's jobShop edges, which loop over
// every machine for an absolute due date rather than just the last
// operation's own. Relative due dates between two operations
// (in.DueDates) are not encoded: no edge is added for them.
func addDueDateEdges(dg *delaygraph.DelayGraph, in *model.Instance, vertexOf map[model.Operation]delaygraph.VertexID) error {
	for op, due := range in.DueDatesIndependent.Entries() {
		if err := addDueDateEdge(dg, vertexOf, op, in.MachineOf[op], due); err != nil {
			return err
		}
	}

	machines := collectMachines(in)
	for job, due := range in.AbsoluteDueDates {
		ops := in.Jobs[job]
		if len(ops) == 0 {
			continue
		}
		last := ops[len(ops)-1]
		for _, m := range machines {
			if err := addDueDateEdge(dg, vertexOf, last, m, due); err != nil {
				return err
			}
		}
	}
	return nil
}

func addDueDateEdge(dg *delaygraph.DelayGraph, vertexOf map[model.Operation]delaygraph.VertexID, op model.Operation, machine model.MachineID, due model.Delay) error {
	source, ok := dg.Source(machine)
	if !ok {
		return fmt.Errorf("%w: no source vertex for machine=%d", ErrInconsistentInput, machine)
	}
	return dg.AddEdge(vertexOf[op], source, -due)
}

// addTerminusEdges connects every job's final operation to the shared
// terminus, weighted by that operation's processing time.
func addTerminusEdges(dg *delaygraph.DelayGraph, in *model.Instance, vertexOf map[model.Operation]delaygraph.VertexID) {
	terminus, _ := dg.Terminus()
	for _, job := range in.JobOrder {
		ops := in.Jobs[job]
		if len(ops) == 0 {
			continue
		}
		last := ops[len(ops)-1]
		_ = dg.AddEdge(vertexOf[last], terminus.ID, in.ProcessingTime(last))
	}
}

// addSourceAndTerminusEdges wires a machine's source to every operation
// the very first job in JobOrder performs on it (the first job has no
// predecessor to chain off, so every one of its operations needs a direct
// bootstrap edge), to every other job's own first operation (so a job's
// ReleaseTimes floor — e.g. one propagated across a modular.Link — is
// never dropped just because the job isn't first), and additionally, once
// per machine across all later jobs, to the first operation (in
// job-iteration order) of a later job whose plexity on that machine is
// Duplex, since that is the earliest point
// such a job could legally start on a re-entrant machine ahead of the
// first job's own later passes. Every job's final operation is also
// linked to the shared terminus.
func addSourceAndTerminusEdges(dg *delaygraph.DelayGraph, in *model.Instance, vertexOf map[model.Operation]delaygraph.VertexID) {
	if len(in.JobOrder) > 0 {
		firstJob := in.JobOrder[0]
		for _, op := range in.Jobs[firstJob] {
			source, ok := dg.Source(in.MachineOf[op])
			if !ok {
				continue
			}
			_ = dg.AddEdge(source, vertexOf[op], in.ReleaseTimes[op.Job])
		}
	}

	duplexSourceAdded := make(map[model.MachineID]bool)
	for i, job := range in.JobOrder {
		if i == 0 {
			continue
		}
		ops := in.Jobs[job]
		if len(ops) > 0 {
			first := ops[0]
			if source, ok := dg.Source(in.MachineOf[first]); ok {
				_ = dg.AddEdge(source, vertexOf[first], in.ReleaseTimes[job])
			}
		}
		for _, op := range ops {
			m := in.MachineOf[op]
			if duplexSourceAdded[m] || in.PlexityAt(job, m) != model.Duplex {
				continue
			}
			source, ok := dg.Source(m)
			if !ok {
				continue
			}
			_ = dg.AddEdge(source, vertexOf[op], in.ReleaseTimes[op.Job])
			duplexSourceAdded[m] = true
		}
	}

	addTerminusEdges(dg, in, vertexOf)
}

// addFixedOrderSequencingEdges commits the inter-job sequencing edges a
// FixedOrder shop's JobsOutputOrder already determines on every machine.
// Within a machine, consecutive visits are linked to the most recent
// prior visit of matching plexity; if none exists yet, they fall back to
// the most recent visit overall regardless of plexity. A visit that has
// a same-plexity predecessor is not linked to a more recent visit of a
// different plexity.
func addFixedOrderSequencingEdges(dg *delaygraph.DelayGraph, in *model.Instance, vertexOf map[model.Operation]delaygraph.VertexID) error {
	type lastVisit struct {
		op model.Operation
		ok bool
	}
	lastByPlexity := make(map[model.MachineID]map[model.Plexity]lastVisit)
	lastAny := make(map[model.MachineID]lastVisit)

	for _, job := range in.JobsOutputOrder {
		for _, op := range in.Jobs[job] {
			m := in.MachineOf[op]
			plexity := in.PlexityAt(job, m)

			if lastByPlexity[m] == nil {
				lastByPlexity[m] = make(map[model.Plexity]lastVisit)
			}
			predecessor, ok := lastByPlexity[m][plexity]
			if !ok {
				predecessor, ok = lastAny[m]
			}
			if ok && predecessor.op != op {
				weight := in.ProcessingTime(predecessor.op) + setupTime(in, predecessor.op, op)
				if err := dg.AddEdge(vertexOf[predecessor.op], vertexOf[op], weight); err != nil {
					return fmt.Errorf("%w: %v", ErrInconsistentInput, err)
				}
			}

			lastByPlexity[m][plexity] = lastVisit{op: op, ok: true}
			lastAny[m] = lastVisit{op: op, ok: true}
		}
	}
	return nil
}
