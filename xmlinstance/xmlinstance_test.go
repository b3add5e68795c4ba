package xmlinstance_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/xmlinstance"
)

const twoJobFlowShopXML = `<?xml version="1.0"?>
<SPInstance type="FlowShop">
  <jobs count="2"/>
  <flowVector>
    <entry job="0" index="0" value="0"/>
    <entry job="0" index="1" value="1"/>
    <entry job="1" index="0" value="0"/>
    <entry job="1" index="1" value="1"/>
  </flowVector>
  <processingTimes default="10">
    <entry j="0" op="0" value="12"/>
  </processingTimes>
  <setupTimes default="0">
    <entry j1="0" op1="1" j2="1" op2="1" value="5"/>
    <entry j1="0" op1="0" j2="0" op2="1" value="1"/>
  </setupTimes>
  <absoluteDeadlines>
    <entry j="0" value="100"/>
  </absoluteDeadlines>
</SPInstance>
`

func TestLoad_TwoJobFlowShop(t *testing.T) {
	in, err := xmlinstance.Load(strings.NewReader(twoJobFlowShopXML))
	require.NoError(t, err)

	assert.Equal(t, model.FlowShop, in.ShopType)
	require.Len(t, in.JobOrder, 2)
	assert.Len(t, in.Jobs[0], 2)
	assert.Len(t, in.Jobs[1], 2)

	j0o0 := model.Operation{Job: 0, Op: 0}
	j0o1 := model.Operation{Job: 0, Op: 1}
	j1o1 := model.Operation{Job: 1, Op: 1}

	assert.Equal(t, model.MachineID(0), in.MachineOf[j0o0])
	assert.Equal(t, model.MachineID(1), in.MachineOf[j0o1])

	assert.Equal(t, model.Delay(12), in.ProcessingTime(j0o0))
	assert.Equal(t, model.Delay(10), in.ProcessingTime(j1o1))

	// Same-job setup entry folds into the independent table.
	assert.Equal(t, model.Delay(1), in.SetupTimesIndependent.Get(j0o1))
	// Cross-job setup entry stays a genuine sequencing constraint.
	assert.Equal(t, model.Delay(5), in.SetupTimes.Get(j0o1, j1o1))

	assert.Equal(t, model.Delay(100), in.AbsoluteDueDates[0])
}

func TestLoad_MissingJobsIsError(t *testing.T) {
	_, err := xmlinstance.Load(strings.NewReader(`<SPInstance type="FlowShop"></SPInstance>`))
	require.Error(t, err)
	assert.ErrorIs(t, err, xmlinstance.ErrMissingJobs)
}

func TestLoad_UnknownShopTypeIsError(t *testing.T) {
	_, err := xmlinstance.Load(strings.NewReader(`<SPInstance type="Bogus"><jobs count="1"/></SPInstance>`))
	require.Error(t, err)
	assert.ErrorIs(t, err, xmlinstance.ErrUnknownShopType)
}

func TestSaveLoad_RoundTripsFlowVectorAndProcessingTimes(t *testing.T) {
	in, err := xmlinstance.Load(strings.NewReader(twoJobFlowShopXML))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, xmlinstance.Save(&buf, in))

	out, err := xmlinstance.Load(&buf)
	require.NoError(t, err)

	assert.Equal(t, in.ShopType, out.ShopType)
	assert.Equal(t, len(in.JobOrder), len(out.JobOrder))
	for job := range in.Jobs {
		assert.Len(t, out.Jobs[job], len(in.Jobs[job]))
	}
	assert.Equal(t, in.ProcessingTime(model.Operation{Job: 0, Op: 0}), out.ProcessingTime(model.Operation{Job: 0, Op: 0}))
	assert.Equal(t, in.AbsoluteDueDates, out.AbsoluteDueDates)
}
