package dynamic_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/mpsim/dynamic"
	"github.com/tsinghua-fib-lab/mpsim/utils/config"
)

func TestSingleTrackStraightAcceleration(t *testing.T) {
	m := dynamic.NewSingleTrack(nil)
	traj := dynamic.Integrate(m, dynamic.State{}, 0.5, 0.01, dynamic.ConstantInput(dynamic.Input{A: 2}))
	require.Len(t, traj, 2)
	last := traj.Last()
	assert.InDelta(t, 0.25, last.X, 1e-9)
	assert.InDelta(t, 0, last.Y, 1e-9)
	assert.InDelta(t, 1.0, last.V, 1e-9)
	assert.InDelta(t, 0.5, last.T, 1e-12)
}

func TestSingleTrackBrakesToStop(t *testing.T) {
	m := dynamic.NewSingleTrack(nil)
	x0 := dynamic.State{V: 2}
	traj := dynamic.Integrate(m, x0, 3, 0.1, dynamic.ConstantInput(dynamic.Input{A: -2}))
	last := traj.Last()
	assert.Equal(t, 0.0, last.V)
	// 刹停距离 v²/2a = 1
	assert.InDelta(t, 1.0, last.X, 1e-9)
}

func TestSingleTrackSteeringTurnsLeft(t *testing.T) {
	params := config.NewParams(nil)
	params.SetReal("wheel_base", 2.0)
	m := dynamic.NewSingleTrack(params)
	assert.Equal(t, 2.0, m.WheelBase())
	traj := dynamic.Integrate(m, dynamic.State{V: 5}, 1, 0.01, dynamic.ConstantInput(dynamic.Input{Delta: 0.3}))
	last := traj.Last()
	assert.Greater(t, last.Theta, 0.0)
	assert.Greater(t, last.Y, 0.0)
	assert.InDelta(t, 5*math.Tan(0.3)/2, last.Theta, 1e-6)
}

func TestIntegrateLastSubStepLandsOnHorizon(t *testing.T) {
	m := dynamic.NewSingleTrack(nil)
	traj := dynamic.Integrate(m, dynamic.State{T: 1, V: 1}, 0.25, 0.1, dynamic.ConstantInput(dynamic.Input{}))
	assert.InDelta(t, 1.25, traj.Last().T, 1e-12)
	assert.InDelta(t, 0.25, traj.Last().X, 1e-9)

	traj = dynamic.Integrate(m, dynamic.State{V: 1}, 0, 0.1, dynamic.ConstantInput(dynamic.Input{}))
	assert.Len(t, traj, 1)
}
