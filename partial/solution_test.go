package partial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/delaygraph"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/partial"
)

func TestSolution_AddAdvancesMarkers(t *testing.T) {
	gen := partial.NewIDGenerator()
	s := partial.New(gen.Next())

	machine := model.MachineID(0)
	s.ChosenEdgesPerMachine()[machine] = delaygraph.Edges{
		{Src: 0, Dst: 2, Weight: 5},
	}

	opt := partial.Option{
		PrevE:    delaygraph.Edge{Src: 0, Dst: 1, Weight: 1},
		NextE:    delaygraph.Edge{Src: 1, Dst: 2, Weight: 2},
		PrevV:    0,
		CurV:     1,
		NextV:    2,
		Position: 0,
	}

	next := s.Add(machine, opt, []model.Delay{0, 1, 3}, gen)
	require.Len(t, next.ChosenEdges(machine), 2)
	assert.Equal(t, 1, next.LatestEdge(machine))
	assert.Equal(t, 1, next.FirstPossibleEdge(machine))
	assert.Equal(t, s.ID(), next.PrevID())
}

func TestSolution_AddMaintDoesNotAdvanceFeasible(t *testing.T) {
	gen := partial.NewIDGenerator()
	s := partial.New(gen.Next())
	machine := model.MachineID(0)
	s.ChosenEdgesPerMachine()[machine] = delaygraph.Edges{{Src: 0, Dst: 2, Weight: 5}}

	opt := partial.Option{
		PrevE:    delaygraph.Edge{Src: 0, Dst: 1, Weight: 1},
		NextE:    delaygraph.Edge{Src: 1, Dst: 2, Weight: 2},
		Position: 0,
		IsMaint:  true,
	}
	next := s.Add(machine, opt, nil, gen)
	assert.Equal(t, 1, next.LatestEdge(machine))
	assert.Equal(t, 0, next.FirstPossibleEdge(machine))
}

func TestSolution_Dominates(t *testing.T) {
	gen := partial.NewIDGenerator()
	a := partial.New(gen.Next()).
		WithMakespanLastScheduledJob(10).
		WithEarliestStartFutureOperation(5).
		WithNrOpsInLoop(3)
	b := partial.New(gen.Next()).
		WithMakespanLastScheduledJob(20).
		WithEarliestStartFutureOperation(8).
		WithNrOpsInLoop(1)

	assert.True(t, a.Dominates(b))
	assert.False(t, b.Dominates(a))
}

func TestParetoFront_OfferPrunesDominated(t *testing.T) {
	gen := partial.NewIDGenerator()
	front := partial.NewParetoFront()

	good := partial.New(gen.Next()).WithMakespanLastScheduledJob(10).WithNrOpsInLoop(3)
	worse := partial.New(gen.Next()).WithMakespanLastScheduledJob(20).WithNrOpsInLoop(1)

	assert.True(t, front.Offer(good))
	assert.False(t, front.Offer(worse))
	assert.Equal(t, 1, front.Len())
}
