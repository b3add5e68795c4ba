package longestpath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/delaygraph"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/longestpath"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
)

func chainGraph(t *testing.T) (*delaygraph.DelayGraph, delaygraph.VertexID, delaygraph.VertexID, delaygraph.VertexID) {
	t.Helper()
	dg := delaygraph.NewDelayGraph()
	src, err := dg.AddSource(0)
	require.NoError(t, err)
	a, err := dg.AddVertex(model.Operation{Job: 0, Op: 0})
	require.NoError(t, err)
	b, err := dg.AddVertex(model.Operation{Job: 0, Op: 1})
	require.NoError(t, err)
	require.NoError(t, dg.AddEdge(src, a, 0))
	require.NoError(t, dg.AddEdge(a, b, 10))
	return dg, src, a, b
}

func TestCompute_SimpleChain(t *testing.T) {
	dg, _, a, b := chainGraph(t)
	times := longestpath.InitializeASAP(dg, nil, true)

	cycle := longestpath.Compute(dg, times)
	assert.Empty(t, cycle)
	assert.Equal(t, model.Delay(0), times[a])
	assert.Equal(t, model.Delay(10), times[b])
}

func TestCompute_PositiveCycleDetected(t *testing.T) {
	dg, _, a, b := chainGraph(t)
	require.NoError(t, dg.AddEdge(b, a, 1)) // creates a +11 cycle a->b->a

	times := longestpath.InitializeASAP(dg, nil, true)
	cycle := longestpath.Compute(dg, times)
	assert.NotEmpty(t, cycle)
}

func TestFindPositiveCycle(t *testing.T) {
	dg, _, _, _ := chainGraph(t)
	a, _ := dg.GetVertexID(model.Operation{Job: 0, Op: 0})
	b, _ := dg.GetVertexID(model.Operation{Job: 0, Op: 1})
	require.NoError(t, dg.AddEdge(b, a, 1))

	cycle := longestpath.FindPositiveCycle(dg)
	require.NotEmpty(t, cycle)
}

func TestAddEdgeIncremental_DetectsCycle(t *testing.T) {
	dg, _, a, b := chainGraph(t)
	times := longestpath.InitializeASAP(dg, nil, true)
	require.Empty(t, longestpath.Compute(dg, times))

	// Adding b->a with weight 1 would create a positive cycle (a->b->a = +11).
	isCycle := longestpath.AddEdgeIncremental(dg, delaygraph.Edge{Src: b, Dst: a, Weight: 1}, times)
	assert.True(t, isCycle)
}

func TestAddEdgesIncremental_RollsBackOnFailure(t *testing.T) {
	dg, _, a, b := chainGraph(t)
	times := longestpath.InitializeASAP(dg, nil, true)
	require.Empty(t, longestpath.Compute(dg, times))

	positive := longestpath.AddEdgesIncremental(dg, delaygraph.Edges{{Src: b, Dst: a, Weight: 1}}, times)
	assert.True(t, positive)
	assert.False(t, dg.HasEdge(b, a))
}
