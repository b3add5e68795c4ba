package dd

import (
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/delaygraph"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
)

// IsDominated reports whether newVertex is dominated by old: old reaches
// at least as favourable a position in the search, so newVertex can never
// lead to a strictly better solution and is safe to discard. Three
// conditions must all hold:
//
//  1. old and newVertex have scheduled operations on exactly the same set
//     of machines (they occupy comparable points in the search, just
//     reached by different edge choices).
//  2. for every such machine and every operation immediately ready on it
//     (in either state), the time old's last operation there plus the
//     setup into that ready operation is no later than newVertex's
//     equivalent.
//  3. for every operation not yet scheduled: if it is immediately ready
//     in either state, only its ASAP/ALAP slack window is compared (old's
//     window must be no wider than newVertex's); otherwise old's ASAP
//     value must additionally be no earlier than newVertex's.
func IsDominated(dg *delaygraph.DelayGraph, in *model.Instance, newVertex, old *Vertex) bool {
	if !sameScheduledMachines(newVertex, old) {
		return false
	}
	if !reachesReadyOpsNoLater(in, newVertex, old) {
		return false
	}
	return everyUnscheduledOpNoWorse(dg, in, newVertex, old)
}

func sameScheduledMachines(newVertex, old *Vertex) bool {
	if len(newVertex.LastOperation) != len(old.LastOperation) {
		return false
	}
	for m := range old.LastOperation {
		if _, ok := newVertex.LastOperation[m]; !ok {
			return false
		}
	}
	return true
}

func reachesReadyOpsNoLater(in *model.Instance, newVertex, old *Vertex) bool {
	candidates := append(append([]model.Operation{}, old.ImmediatelyReadyOps()...), newVertex.ImmediatelyReadyOps()...)
	for _, r := range candidates {
		m := in.MachineOf[r]
		oldLast, oldOK := old.LastOperation[m]
		newLast, newOK := newVertex.LastOperation[m]
		if !oldOK || !newOK {
			continue
		}

		oldStart := old.LastOperationFinish[m] + in.SetupTimes.Get(oldLast, r)
		newStart := newVertex.LastOperationFinish[m] + in.SetupTimes.Get(newLast, r)
		if newStart < oldStart {
			return false
		}
	}
	return true
}

func everyUnscheduledOpNoWorse(dg *delaygraph.DelayGraph, in *model.Instance, newVertex, old *Vertex) bool {
	immediatelyReady := make(map[model.Operation]bool)
	for _, op := range old.ImmediatelyReadyOps() {
		immediatelyReady[op] = true
	}
	for _, op := range newVertex.ImmediatelyReadyOps() {
		immediatelyReady[op] = true
	}

	for _, job := range in.JobOrder {
		for _, op := range in.Jobs[job] {
			if old.ScheduledOps[op] {
				continue
			}

			id, ok := dg.GetVertexID(op)
			if !ok {
				continue
			}
			oldASAP, oldALAP := labelAt(old.ASAPST, id), labelAt(old.ALAPST, id)
			newASAP, newALAP := labelAt(newVertex.ASAPST, id), labelAt(newVertex.ALAPST, id)

			if !immediatelyReady[op] {
				if oldASAP.IsFinite() && newASAP.IsFinite() && oldASAP < newASAP {
					return false
				}
			}

			oldSlack, newSlack := slackWindow(oldASAP, oldALAP), slackWindow(newASAP, newALAP)
			if oldSlack > newSlack {
				return false
			}
		}
	}
	return true
}

func labelAt(times []model.Delay, id delaygraph.VertexID) model.Delay {
	if int(id) < 0 || int(id) >= len(times) {
		return model.ASAPNegInf
	}
	return times[id]
}

func slackWindow(asap, alap model.Delay) model.Delay {
	if !asap.IsFinite() || !alap.IsFinite() {
		return model.ALAPPosInf
	}
	return alap - asap
}
