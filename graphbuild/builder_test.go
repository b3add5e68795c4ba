package graphbuild_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/graphbuild"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/longestpath"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
)

func twoJobFlowShop() *model.Instance {
	in := model.NewInstance("two-job-flow", model.FixedOrder)
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
	in.JobsOutputOrder = []model.JobID{0, 1}
	return in
}

func TestBuild_FixedOrderFeasible(t *testing.T) {
	in := twoJobFlowShop()
	dg, err := graphbuild.Build(in)
	require.NoError(t, err)

	times := longestpath.InitializeASAP(dg, nil, true)
	cycle := longestpath.Compute(dg, times)
	assert.Empty(t, cycle)

	j1o1, _ := dg.GetVertexID(model.Operation{Job: 1, Op: 1})
	assert.True(t, times[j1o1] > 0)
}

func TestBuild_RejectsInconsistentInstance(t *testing.T) {
	in := twoJobFlowShop()
	delete(in.MachineOf, model.Operation{Job: 0, Op: 0})

	_, err := graphbuild.Build(in)
	require.Error(t, err)
	assert.ErrorIs(t, err, graphbuild.ErrInconsistentInput)
}
