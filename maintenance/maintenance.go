package maintenance

import (
	"fmt"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/delaygraph"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/longestpath"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/partial"
)

// MaintenanceAction names one externally scheduled maintenance event:
// Machine identifies which machine's sequence it interrupts, Position
// the index into that machine's chosen-edges slice whose edge it
// splices into (mirroring maintenanceheuristic.h's option insertion
// point), ActionID tags which maintenance class ran (carried onto the
// inserted vertex's Operation.MaintClass so later passes can tell
// maintenance classes apart), and Duration is how long the action
// occupies the machine.
type MaintenanceAction struct {
	Machine  model.MachineID
	Position int
	ActionID uint32
	Duration model.Delay
}

// InsertFixedActions splices every action into sol's committed sequence
// in order, recomputing ASAPST against dg after each one so a later
// action's Position is checked against the state left by earlier ones.
func InsertFixedActions(dg *delaygraph.DelayGraph, sol partial.Solution, actions []MaintenanceAction, gen *partial.IDGenerator) (partial.Solution, error) {
	for _, action := range actions {
		next, err := insertOne(dg, sol, action, gen)
		if err != nil {
			return sol, err
		}
		sol = next
	}
	return sol, nil
}

func insertOne(dg *delaygraph.DelayGraph, sol partial.Solution, action MaintenanceAction, gen *partial.IDGenerator) (partial.Solution, error) {
	edges := sol.ChosenEdges(action.Machine)
	if action.Position < 0 || action.Position >= len(edges) {
		return sol, fmt.Errorf("%w: machine=%d position=%d", ErrPositionOutOfRange, action.Machine, action.Position)
	}
	old := edges[action.Position]

	dstVertex, err := dg.GetVertex(old.Dst)
	if err != nil {
		return sol, err
	}

	maintV, err := dg.AddMaint(dstVertex.Op.Op, action.ActionID)
	if err != nil {
		return sol, fmt.Errorf("maintenance: add vertex: %w", err)
	}

	opt := partial.Option{
		PrevE:    delaygraph.Edge{Src: old.Src, Dst: maintV, Weight: old.Weight},
		NextE:    delaygraph.Edge{Src: maintV, Dst: old.Dst, Weight: action.Duration},
		PrevV:    old.Src,
		CurV:     maintV,
		NextV:    old.Dst,
		Position: action.Position,
		IsMaint:  true,
	}

	probe := append(delaygraph.Edges{}, sol.AllChosenEdges()...)
	probe = append(probe, opt.PrevE, opt.NextE)

	times := longestpath.InitializeASAP(dg, nil, true)
	if cycle := longestpath.AddEdgesIncrementalConst(dg, probe, times); cycle {
		return sol, fmt.Errorf("%w: machine=%d position=%d", ErrInfeasibleInsertion, action.Machine, action.Position)
	}

	return sol.Add(action.Machine, opt, times, gen), nil
}
