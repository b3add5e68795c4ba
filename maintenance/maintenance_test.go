package maintenance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/forward"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/graphbuild"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/maintenance"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/partial"
)

func twoJobFlowShop() *model.Instance {
	in := model.NewInstance("two-job-flow", model.FlowShop)
	j0o0 := model.Operation{Job: 0, Op: 0}
	j0o1 := model.Operation{Job: 0, Op: 1}
	j1o0 := model.Operation{Job: 1, Op: 0}
	j1o1 := model.Operation{Job: 1, Op: 1}

	in.AddJob(0, []model.Operation{j0o0, j0o1})
	in.AddJob(1, []model.Operation{j1o0, j1o1})
	in.MachineOf[j0o0] = 0
	in.MachineOf[j0o1] = 1
	in.MachineOf[j1o0] = 0
	in.MachineOf[j1o1] = 1

	in.ProcessingTimes.Default = 10
	return in
}

func TestInsertFixedActions_SplicesMaintenanceBetweenOperations(t *testing.T) {
	in := twoJobFlowShop()
	dg, err := graphbuild.Build(in)
	require.NoError(t, err)

	sol, err := forward.Solve(dg, in, forward.DefaultWeights())
	require.NoError(t, err)

	before := len(sol.ChosenEdges(0))
	gen := partial.NewIDGenerator()

	actions := []maintenance.MaintenanceAction{
		{Machine: 0, Position: 0, ActionID: 1, Duration: 5},
	}

	next, err := maintenance.InsertFixedActions(dg, sol, actions, gen)
	require.NoError(t, err)

	assert.Len(t, next.ChosenEdges(0), before+1)
	assert.Greater(t, next.RealMakespan(in, dg.Graph), sol.RealMakespan(in, dg.Graph))
}

func TestInsertFixedActions_RejectsOutOfRangePosition(t *testing.T) {
	in := twoJobFlowShop()
	dg, err := graphbuild.Build(in)
	require.NoError(t, err)

	sol, err := forward.Solve(dg, in, forward.DefaultWeights())
	require.NoError(t, err)

	gen := partial.NewIDGenerator()
	actions := []maintenance.MaintenanceAction{
		{Machine: 0, Position: 99, ActionID: 1, Duration: 5},
	}

	_, err = maintenance.InsertFixedActions(dg, sol, actions, gen)
	require.Error(t, err)
	assert.ErrorIs(t, err, maintenance.ErrPositionOutOfRange)
}
