package evaluation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/mpsim/evaluation"
	"github.com/tsinghua-fib-lab/mpsim/utils/config"
	"github.com/tsinghua-fib-lab/mpsim/world"
)

func TestSafeDistanceMinDistance(t *testing.T) {
	e := evaluation.NewSafeDistance(config.NewParams(nil))
	// 10*1 + 100/15.68 - 0
	assert.InDelta(t, 10+100/15.68, e.MinDistance(10, 0), 1e-9)
	// 同速时只剩反应距离
	assert.InDelta(t, 10, e.MinDistance(10, 10), 1e-9)
}

func TestSafeDistanceEvaluate(t *testing.T) {
	e := evaluation.NewSafeDistance(config.NewParams(nil))

	free := e.Evaluate(world.MakeTestObservedWorld(0, 10, 0))
	assert.True(t, free.Value)
	assert.Equal(t, evaluation.SafeDistanceLabel, free.Name)

	assert.True(t, e.Evaluate(world.MakeTestObservedWorld(12, 10, 0)).Value)
	assert.False(t, e.Evaluate(world.MakeTestObservedWorld(8, 10, 0)).Value)
	// 前车更快时可以更近
	assert.True(t, e.Evaluate(world.MakeTestObservedWorld(8, 10, 5)).Value)
}

func TestGlobally(t *testing.T) {
	g := evaluation.NewGlobally(evaluation.SafeDistanceLabel)
	assert.True(t, g.Update(evaluation.Label{AgentID: 1, Time: 0, Name: evaluation.SafeDistanceLabel, Value: true}))
	assert.False(t, g.Update(evaluation.Label{AgentID: 1, Time: 1, Name: evaluation.SafeDistanceLabel, Value: false}))
	assert.False(t, g.Update(evaluation.Label{AgentID: 1, Time: 2, Name: evaluation.SafeDistanceLabel, Value: true}))
	assert.True(t, g.Update(evaluation.Label{AgentID: 2, Time: 2, Name: "other", Value: false}))
	assert.Equal(t, map[int32]float64{1: 1}, g.Violations())
	assert.True(t, g.Holds(2))
}
