package forward

import (
	"fmt"
	"sort"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/delaygraph"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/longestpath"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/partial"
)

type candidate struct {
	option partial.Option
	times  longestpath.Times

	makespan model.Delay
	slack    model.Delay

	// push is how far curV's ASAP label moved once this option's edges
	// were probed, relative to its label before the probe. pushNext is
	// the same delta for the vertex downstream of the insertion.
	// nrOpsInLoop counts operations whose pre-probe ASAP label already
	// falls between op's job predecessor and op itself; it only depends
	// on op and current, so it is identical across every candidate in one
	// ranking round.
	push        model.Delay
	pushNext    model.Delay
	nrOpsInLoop model.Delay

	index int
}

// ScheduleOneOperation inserts op into current's machine sequence at the
// minimum-rank feasible position, returning ErrNoFeasibleOption if none
// of the enumerated insertion points survive the incremental longest-path
// check.
func ScheduleOneOperation(dg *delaygraph.DelayGraph, in *model.Instance, current partial.Solution, op model.Operation, weights Weights, gen *partial.IDGenerator) (partial.Solution, error) {
	machine := in.MachineOf[op]
	curV, ok := dg.GetVertexID(op)
	if !ok {
		return partial.Solution{}, fmt.Errorf("forward: operation job=%d op=%d has no vertex", op.Job, op.Op)
	}

	candidates := enumerateCandidates(dg, in, current, op, machine, curV)

	committed := current.AllChosenEdges()
	oldASAP := oldASAPLookup(current)
	nrOps := countOpsInLoop(dg, in, op, curV, oldASAP)

	feasible := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		times := append(longestpath.Times(nil), current.ASAPST()...)
		if len(times) == 0 {
			times = longestpath.InitializeASAP(dg, nil, true)
		}
		// committed replays every sequencing edge earlier calls already
		// spliced into other machines' chosen-edges lists, which never
		// touch dg itself, so the incremental check's temporary clone
		// needs them to propagate relaxation through prior insertions.
		probe := append(delaygraph.Edges{}, committed...)
		probe = append(probe, c.option.PrevE, c.option.NextE)
		probe = append(probe, inferProjectionEdges(dg, in, current, machine, c.option)...)

		positive := longestpath.AddEdgesIncrementalConst(dg, probe, times)
		if positive {
			continue
		}
		c.times = times
		c.makespan = times[curV]
		c.slack = slackFor(dg, times, c.option.NextV)
		c.push = times[curV] - oldASAP(curV)
		c.pushNext = lookupDelay(times, c.option.NextV) - oldASAP(c.option.NextV)
		c.nrOpsInLoop = nrOps
		feasible = append(feasible, c)
	}

	if len(feasible) == 0 {
		return partial.Solution{}, fmt.Errorf("%w: job=%d op=%d", ErrNoFeasibleOption, op.Job, op.Op)
	}

	best := rank(feasible, weights)
	next := current.Add(machine, best.option, best.times, gen)
	next = next.WithMakespanLastScheduledJob(best.makespan)
	next = next.WithEarliestStartFutureOperation(best.slack)
	next = next.WithNrOpsInLoop(uint32(nrOps))
	return next, nil
}

// Solve drives ScheduleOneOperation across every job in instance
// JobOrder, in each job's flow order, starting from an empty Solution
// seeded with one source->terminus placeholder edge per machine.
func Solve(dg *delaygraph.DelayGraph, in *model.Instance, weights Weights) (partial.Solution, error) {
	gen := partial.NewIDGenerator()
	sol := initialSolution(dg, in, gen)

	for _, job := range in.JobOrder {
		for _, op := range in.Jobs[job] {
			next, err := ScheduleOneOperation(dg, in, sol, op, weights, gen)
			if err != nil {
				return partial.Solution{}, err
			}
			sol = next
		}
	}
	return sol, nil
}

// initialSolution seeds a placeholder source->terminus edge for every
// machine that appears in the instance, giving ScheduleOneOperation a
// non-empty sequence to splice candidates into from the very first call.
func initialSolution(dg *delaygraph.DelayGraph, in *model.Instance, gen *partial.IDGenerator) partial.Solution {
	sol := partial.New(gen.Next())
	terminus, _ := dg.Terminus()
	for _, v := range dg.Sources() {
		machine := model.MachineID(v.Op.Op)
		sol.ChosenEdgesPerMachine()[machine] = delaygraph.Edges{{Src: v.ID, Dst: terminus.ID, Weight: 0}}
	}
	return sol
}

// enumerateCandidates walks machine's committed edge chain from the
// earliest still-open position, stopping once the cumulative
// processing+setup time already committed across the edges visited
// exceeds curV's smallest outgoing deadline: any option at a later
// position would already violate that due date, so it can't lead to a
// feasible schedule.
func enumerateCandidates(dg *delaygraph.DelayGraph, in *model.Instance, current partial.Solution, op model.Operation, machine model.MachineID, curV delaygraph.VertexID) []candidate {
	edges := current.ChosenEdges(machine)
	first := current.FirstPossibleEdge(machine)
	deadline := smallestOutgoingDeadline(dg, curV)

	out := make([]candidate, 0, len(edges)-first+1)
	var cumulative model.Delay
	for i := first; i < len(edges); i++ {
		prevV, nextV := edges[i].Src, edges[i].Dst
		out = append(out, buildCandidate(dg, in, op, prevV, curV, nextV, i))

		if cumulative > deadline {
			break
		}
		cumulative += edges[i].Weight
	}
	return out
}

// smallestOutgoingDeadline returns the tightest due date reachable from v
// in one hop: due-date edges run op->machine_source with weight -due, so
// the smallest positive -weight among v's negative-weight outgoing edges
// is v's nearest deadline. A vertex with no due-date edge has no
// deadline, represented as ALAPPosInf so enumeration never stops early.
func smallestOutgoingDeadline(dg *delaygraph.DelayGraph, v delaygraph.VertexID) model.Delay {
	deadline := model.ALAPPosInf
	for _, e := range dg.Outgoing(v) {
		if e.Weight >= 0 {
			continue
		}
		if d := -e.Weight; d < deadline {
			deadline = d
		}
	}
	return deadline
}

func buildCandidate(dg *delaygraph.DelayGraph, in *model.Instance, op model.Operation, prevV, curV, nextV delaygraph.VertexID, position int) candidate {
	prevOp, _ := dg.GetVertex(prevV)
	nextOp, _ := dg.GetVertex(nextV)

	var prevWeight model.Delay
	if dg.IsVisible(prevV) {
		prevWeight = in.ProcessingTime(prevOp.Op) + in.SetupTimes.Get(prevOp.Op, op)
	}

	var nextWeight model.Delay
	if dg.IsVisible(nextV) {
		nextWeight = in.ProcessingTime(op) + in.SetupTimes.Get(op, nextOp.Op)
	} else {
		nextWeight = in.ProcessingTime(op)
	}

	return candidate{
		option: partial.Option{
			PrevE:    delaygraph.Edge{Src: prevV, Dst: curV, Weight: prevWeight},
			NextE:    delaygraph.Edge{Src: curV, Dst: nextV, Weight: nextWeight},
			PrevV:    prevV,
			CurV:     curV,
			NextV:    nextV,
			Position: position,
		},
		index: position,
	}
}

// inferProjectionEdges projects the order this option would give
// machine's chain onto every affected job's very first operation: one
// edge per job boundary crossed, chaining from the previous job's first
// operation to the next. This catches interleavings that only the
// option's own two-edge splice wouldn't see, the way the original's
// pass-projection edges did for its single re-entrant machine; here it's
// generalised to any machine a candidate option touches.
func inferProjectionEdges(dg *delaygraph.DelayGraph, in *model.Instance, current partial.Solution, machine model.MachineID, opt partial.Option) delaygraph.Edges {
	src, ok := dg.Source(machine)
	if !ok {
		return nil
	}

	edges := current.ChosenEdges(machine)
	spliced := make(delaygraph.Edges, 0, len(edges)+1)
	spliced = append(spliced, edges[:opt.Position]...)
	spliced = append(spliced, opt.PrevE, opt.NextE)
	spliced = append(spliced, edges[opt.Position+1:]...)

	var out delaygraph.Edges
	lastV := src
	seenJob := make(map[model.JobID]bool)
	for _, e := range spliced {
		if !dg.IsVisible(e.Dst) {
			continue
		}
		dst, err := dg.GetVertex(e.Dst)
		if err != nil {
			continue
		}
		job := dst.Op.Job
		if seenJob[job] {
			continue
		}
		seenJob[job] = true

		jobOps := in.Jobs[job]
		if len(jobOps) == 0 {
			continue
		}
		firstV, ok := dg.GetVertexID(jobOps[0])
		if !ok {
			continue
		}

		var weight model.Delay
		if dg.IsVisible(lastV) {
			if prevVertex, err := dg.GetVertex(lastV); err == nil {
				weight = in.ProcessingTime(prevVertex.Op) + in.SetupTimes.Get(prevVertex.Op, jobOps[0])
			}
		}
		out = append(out, delaygraph.Edge{Src: lastV, Dst: firstV, Weight: weight})
		lastV = firstV
	}
	return out
}

func slackFor(dg *delaygraph.DelayGraph, times longestpath.Times, v delaygraph.VertexID) model.Delay {
	if int(v) >= len(times) {
		return 0
	}
	if times[v] == model.ASAPNegInf {
		return 0
	}
	return times[v]
}

func oldASAPLookup(current partial.Solution) func(delaygraph.VertexID) model.Delay {
	asapst := current.ASAPST()
	return func(v delaygraph.VertexID) model.Delay {
		return lookupDelay(asapst, v)
	}
}

func lookupDelay(times []model.Delay, v delaygraph.VertexID) model.Delay {
	if int(v) < 0 || int(v) >= len(times) {
		return model.ASAPNegInf
	}
	return times[v]
}

// countOpsInLoop counts operations whose pre-probe ASAP label falls
// strictly between op's job predecessor's ASAP label (0 if op is the
// job's first operation) and op's own pre-probe ASAP label: a proxy for
// how many operations are "in flight" inside the re-entrant loop ahead of
// op, used to prefer insertions that keep more work in flight (larger is
// better).
func countOpsInLoop(dg *delaygraph.DelayGraph, in *model.Instance, op model.Operation, curV delaygraph.VertexID, oldASAP func(delaygraph.VertexID) model.Delay) model.Delay {
	ops := in.Jobs[op.Job]
	idx := -1
	for i, o := range ops {
		if o == op {
			idx = i
			break
		}
	}

	var predASAP model.Delay
	if idx > 0 {
		if predV, ok := dg.GetVertexID(ops[idx-1]); ok {
			predASAP = oldASAP(predV)
		}
	}
	curOld := oldASAP(curV)

	var count model.Delay
	for _, job := range in.JobOrder {
		for _, o := range in.Jobs[job] {
			v, ok := dg.GetVertexID(o)
			if !ok {
				continue
			}
			val := oldASAP(v)
			if !val.IsFinite() {
				continue
			}
			if val > predASAP && val < curOld {
				count++
			}
		}
	}
	return count
}

// rank picks the minimum-rank candidate: a min-max-normalized combination
// of push (how much this option delayed curV's own start, lower is
// better), pushNext (how much it delayed the next vertex downstream,
// lower is better), and nrOpsInLoop (how many operations this insertion
// keeps in flight, higher is better, hence the subtraction).
func rank(candidates []candidate, weights Weights) candidate {
	minPush, maxPush := candidates[0].push, candidates[0].push
	minPushNext, maxPushNext := candidates[0].pushNext, candidates[0].pushNext
	minNrOps, maxNrOps := candidates[0].nrOpsInLoop, candidates[0].nrOpsInLoop
	for _, c := range candidates {
		if c.push < minPush {
			minPush = c.push
		}
		if c.push > maxPush {
			maxPush = c.push
		}
		if c.pushNext < minPushNext {
			minPushNext = c.pushNext
		}
		if c.pushNext > maxPushNext {
			maxPushNext = c.pushNext
		}
		if c.nrOpsInLoop < minNrOps {
			minNrOps = c.nrOpsInLoop
		}
		if c.nrOpsInLoop > maxNrOps {
			maxNrOps = c.nrOpsInLoop
		}
	}

	normalize := func(v, lo, hi model.Delay) float64 {
		if hi == lo {
			return 0
		}
		return float64(v-lo) / float64(hi-lo)
	}

	score := func(c candidate) float64 {
		return weights.Flex*normalize(c.push, minPush, maxPush) +
			weights.Prod*normalize(c.pushNext, minPushNext, maxPushNext) -
			weights.Tie*normalize(c.nrOpsInLoop, minNrOps, maxNrOps)
	}

	ranked := make([]candidate, len(candidates))
	copy(ranked, candidates)
	sort.Slice(ranked, func(i, j int) bool {
		ri, rj := score(ranked[i]), score(ranked[j])
		if ri != rj {
			return ri < rj
		}
		return ranked[i].index < ranked[j].index
	})
	return ranked[0]
}
