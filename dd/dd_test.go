package dd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/dd"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/forward"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/graphbuild"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
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

func TestSolve_DepthPolicyFindsCompleteSchedule(t *testing.T) {
	in := twoJobFlowShop()
	dg2, err := graphbuild.BuildDD(in)
	require.NoError(t, err)

	sol, reason, err := dd.Solve(dg2, in, dd.DepthPolicy, nil, dd.SearchBudget{})
	require.NoError(t, err)
	assert.Equal(t, dd.Optimal, reason)
	require.NotNil(t, sol.Best)
	assert.True(t, sol.Best.IsTerminal(in))
	assert.Greater(t, sol.BestUpperBound, model.Delay(0))
}

func TestSolve_BestPolicyMatchesDepthUpperBound(t *testing.T) {
	in := twoJobFlowShop()
	dg2, err := graphbuild.BuildDD(in)
	require.NoError(t, err)

	depthSol, _, err := dd.Solve(dg2, in, dd.DepthPolicy, nil, dd.SearchBudget{})
	require.NoError(t, err)

	bestSol, _, err := dd.Solve(dg2, in, dd.BestPolicy, nil, dd.SearchBudget{})
	require.NoError(t, err)

	assert.Equal(t, depthSol.BestUpperBound, bestSol.BestUpperBound)
}

func TestSolve_StaticAndAdaptiveStaticPoliciesMatchDepthUpperBound(t *testing.T) {
	in := twoJobFlowShop()
	dg2, err := graphbuild.BuildDD(in)
	require.NoError(t, err)

	depthSol, _, err := dd.Solve(dg2, in, dd.DepthPolicy, nil, dd.SearchBudget{})
	require.NoError(t, err)

	staticSol, _, err := dd.Solve(dg2, in, dd.StaticPolicy, nil, dd.SearchBudget{})
	require.NoError(t, err)
	assert.Equal(t, depthSol.BestUpperBound, staticSol.BestUpperBound)

	adaptiveSol, _, err := dd.Solve(dg2, in, dd.AdaptiveStaticPolicy, nil, dd.SearchBudget{})
	require.NoError(t, err)
	assert.Equal(t, depthSol.BestUpperBound, adaptiveSol.BestUpperBound)
}

func TestSolve_SeededFromForwardHeuristicMatchesUnseededUpperBound(t *testing.T) {
	in := twoJobFlowShop()
	richGraph, err := graphbuild.Build(in)
	require.NoError(t, err)
	ddGraph, err := graphbuild.BuildDD(in)
	require.NoError(t, err)

	seed, err := forward.Solve(richGraph, in, forward.DefaultWeights())
	require.NoError(t, err)

	unseeded, _, err := dd.Solve(ddGraph, in, dd.DepthPolicy, nil, dd.SearchBudget{})
	require.NoError(t, err)

	seeded, reason, err := dd.Solve(ddGraph, in, dd.DepthPolicy, &seed, dd.SearchBudget{})
	require.NoError(t, err)
	assert.Equal(t, dd.Optimal, reason)
	assert.Equal(t, unseeded.BestUpperBound, seeded.BestUpperBound)
}

func TestSeedFromSolution_ProducesTerminalVertexWithMatchingMakespan(t *testing.T) {
	in := twoJobFlowShop()
	richGraph, err := graphbuild.Build(in)
	require.NoError(t, err)
	ddGraph, err := graphbuild.BuildDD(in)
	require.NoError(t, err)

	sol, err := forward.Solve(richGraph, in, forward.DefaultWeights())
	require.NoError(t, err)

	seedVertex := dd.SeedFromSolution(ddGraph, in, sol)
	require.True(t, seedVertex.IsTerminal(in))

	var makespan model.Delay
	for _, finish := range seedVertex.JobCompletion {
		if finish > makespan {
			makespan = finish
		}
	}
	assert.Equal(t, sol.RealMakespan(in, richGraph.Graph), makespan)
}

func TestIsDominated_StrictlyWorseVertexIsDominated(t *testing.T) {
	in := twoJobFlowShop()
	dg2, err := graphbuild.BuildDD(in)
	require.NoError(t, err)

	root := dd.NewRootVertexForInstance(dg2, in)
	root.SetReadyOperations(in, false)
	children := dd.Expand(dg2, in, root, model.ALAPPosInf, 1)
	require.NotEmpty(t, children)
	children[0].SetReadyOperations(in, false)

	worse := &dd.Vertex{
		ID:                  999,
		MachineEdges:        children[0].MachineEdges,
		ASAPST:              children[0].ASAPST,
		ALAPST:              children[0].ALAPST,
		LastOperation:       children[0].LastOperation,
		ScheduledOps:        children[0].ScheduledOps,
		EncounteredOps:      children[0].EncounteredOps,
		ReadyOps:            children[0].ReadyOps,
		JobCompletion:       addDelta(children[0].JobCompletion, 100),
		LastOperationFinish: addMachineDelta(children[0].LastOperationFinish, 100),
	}
	assert.True(t, dd.IsDominated(dg2, in, worse, children[0]))
	assert.False(t, dd.IsDominated(dg2, in, children[0], worse))
}

func addDelta(in map[model.JobID]model.Delay, delta model.Delay) map[model.JobID]model.Delay {
	out := make(map[model.JobID]model.Delay, len(in))
	for k, v := range in {
		out[k] = v + delta
	}
	return out
}

func addMachineDelta(in map[model.MachineID]model.Delay, delta model.Delay) map[model.MachineID]model.Delay {
	out := make(map[model.MachineID]model.Delay, len(in))
	for k, v := range in {
		out[k] = v + delta
	}
	return out
}

func TestActiveIndex_OffersAndPrunes(t *testing.T) {
	in := twoJobFlowShop()
	dg2, err := graphbuild.BuildDD(in)
	require.NoError(t, err)

	root := dd.NewRootVertexForInstance(dg2, in)
	root.SetReadyOperations(in, false)
	children := dd.Expand(dg2, in, root, model.ALAPPosInf, 1)
	require.NotEmpty(t, children)
	children[0].SetReadyOperations(in, false)
	base := children[0]

	idx := dd.NewActiveIndex()
	a := &dd.Vertex{
		ID:                  1,
		MachineEdges:        base.MachineEdges,
		ASAPST:              base.ASAPST,
		ALAPST:              base.ALAPST,
		LastOperation:       base.LastOperation,
		ScheduledOps:        base.ScheduledOps,
		EncounteredOps:      base.EncounteredOps,
		ReadyOps:            base.ReadyOps,
		JobCompletion:       base.JobCompletion,
		LastOperationFinish: addMachineDelta(base.LastOperationFinish, 100),
	}
	b := &dd.Vertex{
		ID:                  2,
		MachineEdges:        base.MachineEdges,
		ASAPST:              base.ASAPST,
		ALAPST:              base.ALAPST,
		LastOperation:       base.LastOperation,
		ScheduledOps:        base.ScheduledOps,
		EncounteredOps:      base.EncounteredOps,
		ReadyOps:            base.ReadyOps,
		JobCompletion:       base.JobCompletion,
		LastOperationFinish: base.LastOperationFinish,
	}

	assert.True(t, idx.Offer(dg2, in, a))
	assert.True(t, idx.Offer(dg2, in, b))
	assert.False(t, idx.IsLive(a), "b dominates a and should have evicted it")
	assert.True(t, idx.IsLive(b))
}

func TestQueues_FIFOAndLIFOOrdering(t *testing.T) {
	v1 := &dd.Vertex{ID: 1}
	v2 := &dd.Vertex{ID: 2}

	depth := dd.NewDepthQueue()
	depth.Push(v1)
	depth.Push(v2)
	first, _ := depth.Pop()
	assert.Equal(t, uint64(2), first.ID)

	breadth := dd.NewBreadthQueue()
	breadth.Push(v1)
	breadth.Push(v2)
	first, _ = breadth.Pop()
	assert.Equal(t, uint64(1), first.ID)
}

func TestBestQueue_OrdersByTerminusLowerBound(t *testing.T) {
	in := twoJobFlowShop()
	dg2, err := graphbuild.BuildDD(in)
	require.NoError(t, err)

	root := dd.NewRootVertexForInstance(dg2, in)
	root.SetReadyOperations(in, false)
	children := dd.Expand(dg2, in, root, model.ALAPPosInf, 1)
	require.NotEmpty(t, children)

	terminus, ok := dg2.Terminus()
	require.True(t, ok)

	q := dd.NewBestQueue(dg2)
	for _, c := range children {
		q.Push(c)
	}

	prev, ok := q.Pop()
	require.True(t, ok)
	for q.Len() > 0 {
		next, ok := q.Pop()
		require.True(t, ok)
		assert.LessOrEqual(t, prev.ASAPST[terminus.ID], next.ASAPST[terminus.ID])
		prev = next
	}
}

func TestStaticQueue_AdaptiveBoundUpdateKeepsQueuedEntry(t *testing.T) {
	in := twoJobFlowShop()
	dg2, err := graphbuild.BuildDD(in)
	require.NoError(t, err)

	q := dd.NewAdaptiveStaticQueue(dg2)
	v := dd.NewRootVertexForInstance(dg2, in)
	q.Push(v)

	q.UpdateBestUpperBound(model.Delay(40))
	assert.Equal(t, 1, q.Len())
}
