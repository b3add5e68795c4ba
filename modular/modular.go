package modular

import (
	"fmt"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/schedule"
)

// LinePolicy selects how Solve sweeps a production line's modules each
// iteration.
type LinePolicy string

const (
	// BroadcastPolicy re-solves every module once per iteration, in
	// ModuleOrder, and checks convergence after the full sweep.
	BroadcastPolicy LinePolicy = "broadcast"
	// CocktailPolicy alternates a forward sweep (ModuleOrder) with a
	// backward sweep (reverse ModuleOrder) each iteration, the shaker
	// motion that gives the policy its name, converging once a
	// forward+backward pair leaves every boundary unchanged.
	CocktailPolicy LinePolicy = "cocktail"
)

// Link names one inter-module hand-off: JobFrom's completion in module
// From becomes, after TransferTime, a release-time floor on JobTo's
// first operation in module To.
type Link struct {
	From, To       model.ModuleID
	JobFrom, JobTo model.JobID
	TransferTime   model.Delay
}

// Line is one production line's modules, their ordering, and the links
// connecting them.
type Line struct {
	Modules       map[model.ModuleID]*model.Instance
	ModuleOrder   []model.ModuleID
	Links         []Link
	Options       schedule.Options
	MaxIterations int
}

// Solve runs policy's fixed-point sweep over line until every module's
// boundary release times stop changing, or MaxIterations is exceeded.
func Solve(line Line, policy LinePolicy) (map[model.ModuleID]schedule.Result, error) {
	switch policy {
	case BroadcastPolicy, CocktailPolicy:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}

	maxIter := line.MaxIterations
	if maxIter <= 0 {
		maxIter = 50
	}

	results := make(map[model.ModuleID]schedule.Result, len(line.Modules))
	bounds := make(map[model.ModuleID]map[model.JobID]model.Delay)

	for iter := 0; iter < maxIter; iter++ {
		var changed bool
		var err error

		switch policy {
		case BroadcastPolicy:
			changed, err = sweep(line, results, bounds, line.ModuleOrder)
		case CocktailPolicy:
			var changedFwd, changedBack bool
			changedFwd, err = sweep(line, results, bounds, line.ModuleOrder)
			if err == nil {
				changedBack, err = sweep(line, results, bounds, reversed(line.ModuleOrder))
			}
			changed = changedFwd || changedBack
		}
		if err != nil {
			return nil, err
		}
		if !changed {
			return results, nil
		}
	}
	return nil, ErrNoConvergence
}

// sweep solves every module in order, propagating each Link's boundary
// into its downstream module's ReleaseTimes before that module is (re)
// solved, and reports whether any bound changed enough to need another
// iteration.
func sweep(line Line, results map[model.ModuleID]schedule.Result, bounds map[model.ModuleID]map[model.JobID]model.Delay, order []model.ModuleID) (bool, error) {
	changed := false

	for _, id := range order {
		in, ok := line.Modules[id]
		if !ok {
			continue
		}

		applyInboundLinks(line, id, results, in)

		result, err := schedule.Solve(in, line.Options)
		if err != nil {
			return false, fmt.Errorf("modular: module %d: %w", id, err)
		}
		results[id] = result

		newBounds := outboundBounds(line, id, in, result)
		if bounds[id] == nil {
			bounds[id] = make(map[model.JobID]model.Delay)
		}
		for job, v := range newBounds {
			if old, ok := bounds[id][job]; !ok || old != v {
				changed = true
			}
			bounds[id][job] = v
		}
	}
	return changed, nil
}

// applyInboundLinks sets in.ReleaseTimes for every Link terminating at
// module id, using the upstream module's last solved completion time for
// JobFrom. Links whose upstream module has not solved yet are skipped
// for this pass; they take effect once the upstream module has a result.
func applyInboundLinks(line Line, id model.ModuleID, results map[model.ModuleID]schedule.Result, in *model.Instance) {
	for _, link := range line.Links {
		if link.To != id {
			continue
		}
		upstream, ok := results[link.From]
		if !ok {
			continue
		}
		completion, ok := jobCompletion(line.Modules[link.From], upstream, link.JobFrom)
		if !ok {
			continue
		}
		in.ReleaseTimes[link.JobTo] = completion + link.TransferTime
	}
}

// outboundBounds reports, for every Link originating at module id, the
// completion time just computed for JobFrom, used by sweep to detect
// convergence.
func outboundBounds(line Line, id model.ModuleID, in *model.Instance, result schedule.Result) map[model.JobID]model.Delay {
	out := make(map[model.JobID]model.Delay)
	for _, link := range line.Links {
		if link.From != id {
			continue
		}
		if completion, ok := jobCompletion(in, result, link.JobFrom); ok {
			out[link.JobFrom] = completion
		}
	}
	return out
}

func jobCompletion(in *model.Instance, result schedule.Result, job model.JobID) (model.Delay, bool) {
	if in == nil {
		return 0, false
	}
	ops := in.Jobs[job]
	if len(ops) == 0 {
		return 0, false
	}
	last := ops[len(ops)-1]
	perOp, ok := result.Schedule[job]
	if !ok {
		return 0, false
	}
	start, ok := perOp[last.Op]
	if !ok {
		return 0, false
	}
	return start + in.ProcessingTime(last), true
}

func reversed(order []model.ModuleID) []model.ModuleID {
	out := make([]model.ModuleID, len(order))
	copy(out, order)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
