package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/dd"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/schedule"
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

func TestSolve_ForwardHeuristic(t *testing.T) {
	in := twoJobFlowShop()
	result, err := schedule.Solve(in, schedule.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, result.Solved)
	assert.False(t, result.Timeout)
	assert.Equal(t, "optimal", result.TerminationReason)
	assert.Len(t, result.Schedule, 2)
	assert.Contains(t, result.MachineSequences, model.MachineID(0))
}

func TestSolve_DecisionDiagram(t *testing.T) {
	in := twoJobFlowShop()
	opts := schedule.DefaultOptions()
	opts.Strategy = schedule.DecisionDiagramStrategy
	opts.DDPolicy = dd.DepthPolicy

	result, err := schedule.Solve(in, opts)
	require.NoError(t, err)
	assert.True(t, result.Solved)
	assert.Equal(t, "optimal", result.TerminationReason)
}

func TestSolve_InvalidInstanceIsInputError(t *testing.T) {
	in := twoJobFlowShop()
	delete(in.MachineOf, model.Operation{Job: 0, Op: 0})

	_, err := schedule.Solve(in, schedule.DefaultOptions())
	require.Error(t, err)
	var inputErr *schedule.InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestSolve_UnknownStrategy(t *testing.T) {
	in := twoJobFlowShop()
	opts := schedule.DefaultOptions()
	opts.Strategy = "bogus"

	_, err := schedule.Solve(in, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, schedule.ErrUnknownStrategy)
}
