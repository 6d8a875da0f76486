package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/mpsim/behavior"
	"github.com/tsinghua-fib-lab/mpsim/behavior/motionprimitives"
	"github.com/tsinghua-fib-lab/mpsim/behavior/policy"
	"github.com/tsinghua-fib-lab/mpsim/behavior/primitives"
	"github.com/tsinghua-fib-lab/mpsim/dynamic"
	"github.com/tsinghua-fib-lab/mpsim/utils/config"
	"github.com/tsinghua-fib-lab/mpsim/world"
)

func newMacro() *motionprimitives.MacroActions {
	params := config.NewParams(nil)
	model := dynamic.NewSingleTrack(params)
	return motionprimitives.NewMacroActions(
		primitives.NewConstAcceleration(params, model, 0),
		primitives.NewChangeToLeft(params, model, 0),
		primitives.NewChangeToRight(params, model, 0),
	)
}

func TestRandomChoosesValid(t *testing.T) {
	w := world.MakeTestWorldHighway()
	observed, err := w.Observe(0)
	require.NoError(t, err)

	m := newMacro()
	r := policy.NewRandom(1)
	for i := 0; i < 50; i++ {
		require.NoError(t, r.Decide(observed[0], m))
		idx, ok := m.ActiveMotion()
		require.True(t, ok)
		assert.Contains(t, []behavior.MotionIdx{0, 2}, idx)
	}
}

func TestRandomWeights(t *testing.T) {
	w := world.MakeTestWorldHighway()
	observed, err := w.Observe(3)
	require.NoError(t, err)

	m := newMacro()
	r := policy.NewRandom(7)
	r.SetWeight(0, 0)
	for i := 0; i < 20; i++ {
		require.NoError(t, r.Decide(observed[0], m))
		idx, _ := m.ActiveMotion()
		assert.Equal(t, behavior.MotionIdx(1), idx)
	}

	r.SetWeight(1, 0)
	assert.ErrorIs(t, r.Decide(observed[0], m), policy.ErrNoValidAction)
}

func TestRandomContinuous(t *testing.T) {
	params := config.NewParams(nil)
	m := motionprimitives.NewContinuousActions(dynamic.NewSingleTrack(params), params)
	r := policy.NewRandom(3)
	o := world.MakeTestObservedWorld(0, 5, 0)
	assert.ErrorIs(t, r.Decide(o, m), policy.ErrNoValidAction)

	m.AddMotionPrimitive(dynamic.Input{A: 1})
	require.NoError(t, r.Decide(o, m))
	idx, ok := m.ActiveMotion()
	assert.True(t, ok)
	assert.Equal(t, behavior.MotionIdx(0), idx)
}
