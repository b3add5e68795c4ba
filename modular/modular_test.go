package modular_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/modular"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/schedule"
)

func singleOpInstance(name string, job model.JobID, machine model.MachineID, proc model.Delay) *model.Instance {
	in := model.NewInstance(name, model.FlowShop)
	op := model.Operation{Job: job, Op: 0}
	in.AddJob(job, []model.Operation{op})
	in.MachineOf[op] = machine
	in.ProcessingTimes.Set(op, proc)
	return in
}

func TestSolve_BroadcastPolicyPropagatesReleaseTime(t *testing.T) {
	upstream := singleOpInstance("upstream", 0, 0, 20)
	downstream := singleOpInstance("downstream", 1, 0, 10)

	line := modular.Line{
		Modules:     map[model.ModuleID]*model.Instance{0: upstream, 1: downstream},
		ModuleOrder: []model.ModuleID{0, 1},
		Links: []modular.Link{
			{From: 0, To: 1, JobFrom: 0, JobTo: 1, TransferTime: 5},
		},
		Options: schedule.DefaultOptions(),
	}

	results, err := modular.Solve(line, modular.BroadcastPolicy)
	require.NoError(t, err)
	require.Contains(t, results, model.ModuleID(0))
	require.Contains(t, results, model.ModuleID(1))

	downstreamStart := results[1].Schedule[1][0]
	assert.GreaterOrEqual(t, downstreamStart, model.Delay(25))
}

func TestSolve_UnknownPolicyIsError(t *testing.T) {
	line := modular.Line{
		Modules:     map[model.ModuleID]*model.Instance{0: singleOpInstance("a", 0, 0, 5)},
		ModuleOrder: []model.ModuleID{0},
	}
	_, err := modular.Solve(line, "bogus")
	require.Error(t, err)
	assert.ErrorIs(t, err, modular.ErrUnknownPolicy)
}
