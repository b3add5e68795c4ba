package seqfile

import (
	"fmt"
	"io"
	"sort"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/delaygraph"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/longestpath"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/partial"
)

// Sequence is one module's committed per-machine operation order.
type Sequence map[model.MachineID][]model.Operation

// Load reads a single-module sequence document: either a bare
// `{"machineSequences": ...}` object, or one wrapped in `{"modules":
// {"0": {"machineSequences": ...}, ...}}`, in which case the lowest
// ModuleID key is returned.
func Load(r io.Reader) (Sequence, error) {
	modules, err := LoadModules(r)
	if err != nil {
		return nil, err
	}
	ids := make([]model.ModuleID, 0, len(modules))
	for id := range modules {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return modules[ids[0]], nil
}

// LoadModules reads every module's machineSequences from r, keyed by
// ModuleID. A document with no "modules" wrapper is treated as a single
// module with id 0.
func LoadModules(r io.Reader) (map[model.ModuleID]Sequence, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("seqfile: reading document: %w", err)
	}
	root := gjson.ParseBytes(data)

	modulesRoot := root.Get("modules")
	if !modulesRoot.Exists() {
		seq, err := parseMachineSequences(root.Get("machineSequences"))
		if err != nil {
			return nil, err
		}
		return map[model.ModuleID]Sequence{0: seq}, nil
	}

	out := make(map[model.ModuleID]Sequence)
	var parseErr error
	modulesRoot.ForEach(func(key, value gjson.Result) bool {
		seq, err := parseMachineSequences(value.Get("machineSequences"))
		if err != nil {
			parseErr = fmt.Errorf("seqfile: module %s: %w", key.String(), err)
			return false
		}
		out[model.ModuleID(key.Uint())] = seq
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return out, nil
}

// parseMachineSequences reads a "machineSequences" object keyed by
// machine id, each value either a plain [[job,op],...] list or an
// iteration-indexed {"0": [[...]], "1": [[...]]} history, of which only
// the highest iteration index is kept.
func parseMachineSequences(v gjson.Result) (Sequence, error) {
	if !v.Exists() {
		return nil, ErrMissingMachineSequences
	}

	out := make(Sequence)
	var parseErr error
	v.ForEach(func(key, value gjson.Result) bool {
		machine := model.MachineID(key.Uint())

		var ops []model.Operation
		var err error
		if value.IsObject() {
			ops, err = parseLatestIteration(value)
		} else {
			ops, err = parsePairs(value)
		}
		if err != nil {
			parseErr = fmt.Errorf("seqfile: machine %s: %w", key.String(), err)
			return false
		}
		out[machine] = ops
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return out, nil
}

func parseLatestIteration(v gjson.Result) ([]model.Operation, error) {
	var latestIter int64 = -1
	var latest gjson.Result
	var iterErr error
	v.ForEach(func(key, value gjson.Result) bool {
		iter := key.Int()
		if iter > latestIter {
			latestIter = iter
			latest = value
		}
		return true
	})
	if latestIter < 0 {
		iterErr = fmt.Errorf("%w: empty iteration history", ErrMalformedPair)
		return nil, iterErr
	}
	return parsePairs(latest)
}

func parsePairs(v gjson.Result) ([]model.Operation, error) {
	var ops []model.Operation
	var parseErr error
	v.ForEach(func(_, el gjson.Result) bool {
		pair := el.Array()
		if len(pair) != 2 {
			parseErr = fmt.Errorf("%w: got %d elements", ErrMalformedPair, len(pair))
			return false
		}
		ops = append(ops, model.Operation{
			Job: model.JobID(pair[0].Int()),
			Op:  model.OperationID(pair[1].Int()),
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return ops, nil
}

// Save writes seq as a bare `{"machineSequences": {...}}` document,
// shape A (a plain ordered [[job,op],...] list per machine, never the
// iteration-history shape — Load's history branch exists to read files
// other tools produced, not ones seqfile itself writes).
func Save(w io.Writer, seq Sequence) error {
	machines := make([]model.MachineID, 0, len(seq))
	for m := range seq {
		machines = append(machines, m)
	}
	sort.Slice(machines, func(i, j int) bool { return machines[i] < machines[j] })

	doc := "{}"
	for _, machine := range machines {
		pairs := make([][2]uint64, len(seq[machine]))
		for i, op := range seq[machine] {
			pairs[i] = [2]uint64{uint64(op.Job), uint64(op.Op)}
		}
		var err error
		doc, err = sjson.Set(doc, fmt.Sprintf("machineSequences.%d", machine), pairs)
		if err != nil {
			return fmt.Errorf("seqfile: writing machine %d: %w", machine, err)
		}
	}
	_, err := io.WriteString(w, doc)
	return err
}

// Reevaluate rebuilds dg's longest-path labeling from seq's fixed
// per-machine operation order — source, then each listed operation in
// order, then terminus, with processing-plus-setup edge weights exactly
// as forward.Solve computes them for an adjacent pair — and returns the
// resulting real makespan. It never mutates dg: the edges it builds only
// ever reach longestpath.AddEdgesIncrementalConst's temporary clone.
func Reevaluate(dg *delaygraph.DelayGraph, in *model.Instance, seq Sequence) (model.Delay, error) {
	gen := partial.NewIDGenerator()
	sol := partial.New(gen.Next())

	for machine, ops := range seq {
		edges, err := sequenceEdges(dg, in, machine, ops)
		if err != nil {
			return 0, err
		}
		sol.ChosenEdgesPerMachine()[machine] = edges
	}

	times := longestpath.InitializeASAP(dg, nil, true)
	if positive := longestpath.AddEdgesIncrementalConst(dg, sol.AllChosenEdges(), times); positive {
		return 0, fmt.Errorf("seqfile: %w", ErrPositiveCycle)
	}
	sol = sol.WithASAPST(times)

	return sol.RealMakespan(in, dg.Graph), nil
}

func sequenceEdges(dg *delaygraph.DelayGraph, in *model.Instance, machine model.MachineID, ops []model.Operation) (delaygraph.Edges, error) {
	source, ok := dg.Source(machine)
	if !ok {
		return nil, fmt.Errorf("seqfile: machine %d has no source vertex", machine)
	}
	terminus, ok := dg.Terminus()
	if !ok {
		return nil, fmt.Errorf("seqfile: graph has no terminus vertex")
	}

	vertices := make([]delaygraph.VertexID, 0, len(ops)+2)
	vertices = append(vertices, source)
	for _, op := range ops {
		v, ok := dg.GetVertexID(op)
		if !ok {
			return nil, fmt.Errorf("seqfile: operation job=%d op=%d has no vertex", op.Job, op.Op)
		}
		vertices = append(vertices, v)
	}
	vertices = append(vertices, terminus.ID)

	edges := make(delaygraph.Edges, 0, len(vertices)-1)
	for i := 0; i+1 < len(vertices); i++ {
		src, dst := vertices[i], vertices[i+1]
		var weight model.Delay
		if dg.IsVisible(src) {
			srcOp, _ := dg.GetVertex(src)
			weight = in.ProcessingTime(srcOp.Op)
			if dg.IsVisible(dst) {
				dstOp, _ := dg.GetVertex(dst)
				weight += in.SetupTimes.Get(srcOp.Op, dstOp.Op)
			}
		}
		edges = append(edges, delaygraph.Edge{Src: src, Dst: dst, Weight: weight})
	}
	return edges, nil
}
