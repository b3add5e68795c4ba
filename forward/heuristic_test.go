package forward_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func TestSolve_TwoJobFlowShop(t *testing.T) {
	in := twoJobFlowShop()
	dg, err := graphbuild.Build(in)
	require.NoError(t, err)

	sol, err := forward.Solve(dg, in, forward.DefaultWeights())
	require.NoError(t, err)

	for _, machine := range []model.MachineID{0, 1} {
		edges := sol.ChosenEdges(machine)
		assert.Len(t, edges, 3, "each of the two insertions on a machine replaces one edge with two")
	}
	assert.Greater(t, sol.RealMakespan(in, dg.Graph), model.Delay(0))
}

// threeJobFlowShop gives ScheduleOneOperation more than one feasible
// insertion candidate per operation (two committed jobs ahead of the
// last), so rank's normalized push/pushNext/nrOpsInLoop combination
// actually has to pick among genuine alternatives instead of a single
// forced position.
func threeJobFlowShop() *model.Instance {
	in := model.NewInstance("three-job-flow", model.FlowShop)
	for job := model.JobID(0); job < 3; job++ {
		o0 := model.Operation{Job: job, Op: 0}
		o1 := model.Operation{Job: job, Op: 1}
		in.AddJob(job, []model.Operation{o0, o1})
		in.MachineOf[o0] = 0
		in.MachineOf[o1] = 1
	}
	in.ProcessingTimes.Default = 5
	return in
}

func TestSolve_ThreeJobFlowShopProducesFeasibleSchedule(t *testing.T) {
	in := threeJobFlowShop()
	dg, err := graphbuild.Build(in)
	require.NoError(t, err)

	sol, err := forward.Solve(dg, in, forward.DefaultWeights())
	require.NoError(t, err)

	for _, machine := range []model.MachineID{0, 1} {
		edges := sol.ChosenEdges(machine)
		assert.Len(t, edges, 4, "each insertion replaces one edge with two, net +1 edge per insertion over three insertions")
	}
	assert.Greater(t, sol.RealMakespan(in, dg.Graph), model.Delay(0))
}

// TestSolve_WeightExtremesBothProduceFeasibleSchedules exercises rank's
// normalized-score combination at both ends of the weighting spectrum:
// an all-Flex weighting picks purely on push, an all-Prod weighting
// picks purely on pushNext, and both must still yield a feasible,
// positive-makespan schedule.
func TestSolve_WeightExtremesBothProduceFeasibleSchedules(t *testing.T) {
	in := threeJobFlowShop()
	dg, err := graphbuild.Build(in)
	require.NoError(t, err)

	flexOnly, err := forward.Solve(dg, in, forward.Weights{Flex: 1})
	require.NoError(t, err)
	assert.Greater(t, flexOnly.RealMakespan(in, dg.Graph), model.Delay(0))

	dg2, err := graphbuild.Build(in)
	require.NoError(t, err)
	prodOnly, err := forward.Solve(dg2, in, forward.Weights{Prod: 1})
	require.NoError(t, err)
	assert.Greater(t, prodOnly.RealMakespan(in, dg2.Graph), model.Delay(0))
}

// reEntrantJobShop sends every job across machine 0 twice (a duplex
// lane), the shape the sequence-dependent setup table and inferred
// projection edges are meant to keep consistent: a job's second visit
// to machine 0 must never be scheduled to finish before another job's
// first visit it was interleaved with.
func reEntrantJobShop() *model.Instance {
	in := model.NewInstance("re-entrant", model.JobShop)
	for job := model.JobID(0); job < 2; job++ {
		o0 := model.Operation{Job: job, Op: 0}
		o1 := model.Operation{Job: job, Op: 1}
		o2 := model.Operation{Job: job, Op: 2}
		in.AddJob(job, []model.Operation{o0, o1, o2})
		in.MachineOf[o0] = 0
		in.MachineOf[o1] = 1
		in.MachineOf[o2] = 0
	}
	in.ProcessingTimes.Default = 4
	in.SetupTimesIndependent.Default = 1
	return in
}

func TestSolve_ReEntrantJobShopProducesFeasibleSchedule(t *testing.T) {
	in := reEntrantJobShop()
	dg, err := graphbuild.Build(in)
	require.NoError(t, err)

	sol, err := forward.Solve(dg, in, forward.DefaultWeights())
	require.NoError(t, err)
	assert.Greater(t, sol.RealMakespan(in, dg.Graph), model.Delay(0))

	machine0 := sol.ChosenEdges(0)
	assert.Len(t, machine0, 5, "four insertions on the re-entrant machine each add one net edge to the single placeholder")
}

// TestSolve_AbsoluteDueDateStillYieldsFeasibleSchedule exercises
// enumerateCandidates' early-stop against smallestOutgoingDeadline: a
// due date tight enough to matter must still be met by some insertion
// the truncated candidate scan considers.
func TestSolve_AbsoluteDueDateStillYieldsFeasibleSchedule(t *testing.T) {
	in := twoJobFlowShop()
	in.AbsoluteDueDates[0] = 100

	dg, err := graphbuild.Build(in)
	require.NoError(t, err)

	sol, err := forward.Solve(dg, in, forward.DefaultWeights())
	require.NoError(t, err)
	assert.LessOrEqual(t, sol.RealMakespan(in, dg.Graph), model.Delay(100))
}
