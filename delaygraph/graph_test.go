package delaygraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/delaygraph"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
)

func TestGraph_AddVertexAndEdge(t *testing.T) {
	g := delaygraph.NewGraph()
	op0 := model.Operation{Job: 0, Op: 0}
	op1 := model.Operation{Job: 0, Op: 1}

	v0, err := g.AddVertex(op0)
	require.NoError(t, err)
	v1, err := g.AddVertex(op1)
	require.NoError(t, err)

	_, err = g.AddVertex(op0)
	require.ErrorIs(t, err, delaygraph.ErrDuplicateVertex)

	require.NoError(t, g.AddEdge(v0, v1, 10))
	assert.True(t, g.HasEdge(v0, v1))
	w, err := g.GetWeight(v0, v1)
	require.NoError(t, err)
	assert.Equal(t, model.Delay(10), w)

	g.RemoveEdge(v0, v1)
	assert.False(t, g.HasEdge(v0, v1))
}

func TestGraph_AddEdgesKeepsFirstWrite(t *testing.T) {
	g := delaygraph.NewGraph()
	v0, _ := g.AddVertex(model.Operation{Job: 0, Op: 0})
	v1, _ := g.AddVertex(model.Operation{Job: 0, Op: 1})

	require.NoError(t, g.AddEdge(v0, v1, 5))

	added, err := g.AddEdges(delaygraph.Edges{{Src: v0, Dst: v1, Weight: 99}})
	require.NoError(t, err)
	assert.Empty(t, added)

	w, err := g.GetWeight(v0, v1)
	require.NoError(t, err)
	assert.Equal(t, model.Delay(5), w)
}

func TestGraph_Clone(t *testing.T) {
	g := delaygraph.NewGraph()
	v0, _ := g.AddVertex(model.Operation{Job: 0, Op: 0})
	v1, _ := g.AddVertex(model.Operation{Job: 0, Op: 1})
	require.NoError(t, g.AddEdge(v0, v1, 7))

	clone := g.Clone()
	clone.RemoveEdge(v0, v1)

	assert.True(t, g.HasEdge(v0, v1))
	assert.False(t, clone.HasEdge(v0, v1))
}

func TestDelayGraph_SentinelPredicates(t *testing.T) {
	dg := delaygraph.NewDelayGraph()
	src, err := dg.AddSource(0)
	require.NoError(t, err)
	term, err := dg.AddTerminus()
	require.NoError(t, err)
	maint, err := dg.AddMaint(3, 1)
	require.NoError(t, err)
	op, err := dg.AddVertex(model.Operation{Job: 0, Op: 0})
	require.NoError(t, err)

	assert.True(t, dg.IsSource(src))
	assert.True(t, dg.IsTerminus(term))
	assert.True(t, dg.IsMaint(maint))
	assert.True(t, dg.IsVisible(op))
	assert.False(t, dg.IsVisible(src))

	_, err = dg.AddSource(0)
	require.ErrorIs(t, err, delaygraph.ErrDuplicateSource)
}
