package seqfile_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/graphbuild"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/seqfile"
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

const bareDocument = `{
  "machineSequences": {
    "0": [[0, 0], [1, 0]],
    "1": [[0, 1], [1, 1]]
  }
}`

const historyDocument = `{
  "machineSequences": {
    "0": {"0": [[1, 0], [0, 0]], "1": [[0, 0], [1, 0]]},
    "1": [[0, 1], [1, 1]]
  }
}`

const wrappedDocument = `{
  "modules": {
    "0": {"machineSequences": {"0": [[0, 0], [1, 0]], "1": [[0, 1], [1, 1]]}}
  }
}`

func TestLoad_BareDocument(t *testing.T) {
	seq, err := seqfile.Load(strings.NewReader(bareDocument))
	require.NoError(t, err)

	require.Len(t, seq[0], 2)
	assert.Equal(t, model.Operation{Job: 0, Op: 0}, seq[0][0])
	assert.Equal(t, model.Operation{Job: 1, Op: 0}, seq[0][1])
}

func TestLoad_HistoryKeepsLatestIteration(t *testing.T) {
	seq, err := seqfile.Load(strings.NewReader(historyDocument))
	require.NoError(t, err)

	require.Len(t, seq[0], 2)
	assert.Equal(t, model.Operation{Job: 0, Op: 0}, seq[0][0])
	assert.Equal(t, model.Operation{Job: 1, Op: 0}, seq[0][1])
}

func TestLoadModules_WrappedDocument(t *testing.T) {
	modules, err := seqfile.LoadModules(strings.NewReader(wrappedDocument))
	require.NoError(t, err)

	require.Contains(t, modules, model.ModuleID(0))
	assert.Len(t, modules[0][0], 2)
}

func TestSaveLoad_RoundTrips(t *testing.T) {
	seq := seqfile.Sequence{
		0: {{Job: 0, Op: 0}, {Job: 1, Op: 0}},
		1: {{Job: 0, Op: 1}, {Job: 1, Op: 1}},
	}

	var buf bytes.Buffer
	require.NoError(t, seqfile.Save(&buf, seq))

	back, err := seqfile.Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, seq, back)
}

func TestReevaluate_TwoJobFlowShop(t *testing.T) {
	in := twoJobFlowShop()
	dg, err := graphbuild.Build(in)
	require.NoError(t, err)

	seq := seqfile.Sequence{
		0: {{Job: 0, Op: 0}, {Job: 1, Op: 0}},
		1: {{Job: 0, Op: 1}, {Job: 1, Op: 1}},
	}

	makespan, err := seqfile.Reevaluate(dg, in, seq)
	require.NoError(t, err)
	assert.Equal(t, model.Delay(30), makespan)
}
