package motionprimitives_test

import (
	"math"
	"testing"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/mpsim/behavior"
	"github.com/tsinghua-fib-lab/mpsim/behavior/motionprimitives"
	"github.com/tsinghua-fib-lab/mpsim/dynamic"
	"github.com/tsinghua-fib-lab/mpsim/entity"
	"github.com/tsinghua-fib-lab/mpsim/utils/config"
)

// 只有本车状态的快照
type dummyWorld struct {
	state dynamic.State
}

func (w dummyWorld) EgoID() int32                          { return 0 }
func (w dummyWorld) CurrentEgoState() dynamic.State        { return w.state }
func (w dummyWorld) CurrentEgoPosition() geometry.Point    { return w.state.Position() }
func (w dummyWorld) LaneCorridor() entity.ILaneCorridor    { return nil }
func (w dummyWorld) RoadCorridor() entity.IRoadCorridor    { return nil }
func (w dummyWorld) FrontAgent() (entity.FrontAgent, bool) { return entity.FrontAgent{}, false }
func (w dummyWorld) WorldTime() float64                    { return 0 }

func newContinuous() (*motionprimitives.ContinuousActions, []behavior.MotionIdx) {
	params := config.NewParams(nil)
	params.SetReal("integration_time_delta", 0.01)
	m := motionprimitives.NewContinuousActions(dynamic.NewSingleTrack(params), params)
	return m, []behavior.MotionIdx{
		m.AddMotionPrimitive(dynamic.Input{A: 2, Delta: 0}),
		m.AddMotionPrimitive(dynamic.Input{A: 0, Delta: 1}),
		m.AddMotionPrimitive(dynamic.Input{A: 0, Delta: 0}),
	}
}

func TestContinuousAdd(t *testing.T) {
	m, idx := newContinuous()
	assert.Equal(t, []behavior.MotionIdx{0, 1, 2}, idx)
	assert.Equal(t, 3, m.NumMotionPrimitives())
	assert.Equal(t, dynamic.Input{A: 0, Delta: 1}, m.MotionPrimitives()[1])
}

func TestContinuousPlan(t *testing.T) {
	m, idx := newContinuous()

	// x方向从静止加速
	require.NoError(t, m.ActionToBehavior(idx[0]))
	traj, err := m.Plan(0.5, dummyWorld{})
	require.NoError(t, err)
	require.Len(t, traj, 2)
	assert.InDelta(t, 0, traj[0].T, 1e-9)
	assert.InDelta(t, 0.5, traj.Last().T, 1e-9)
	assert.InDelta(t, 2.0/2*0.5*0.5, traj.Last().X, 0.05)

	// x方向有初速度
	traj, err = m.Plan(0.5, dummyWorld{state: dynamic.State{V: 5}})
	require.NoError(t, err)
	assert.InDelta(t, 5.0*0.5+2.0/2*0.5*0.5, traj.Last().X, 0.1)

	// y方向
	traj, err = m.Plan(0.5, dummyWorld{state: dynamic.State{Theta: math.Pi / 2}})
	require.NoError(t, err)
	assert.InDelta(t, 2.0/2*0.5*0.5, traj.Last().Y, 0.05)
	assert.InDelta(t, 0, traj.Last().X, 1e-9)

	// x方向匀速
	require.NoError(t, m.ActionToBehavior(idx[2]))
	traj, err = m.Plan(0.5, dummyWorld{state: dynamic.State{V: 2}})
	require.NoError(t, err)
	assert.InDelta(t, 0.5*2, traj.Last().X, 0.005)

	// 转向
	require.NoError(t, m.ActionToBehavior(idx[1]))
	traj, err = m.Plan(0.5, dummyWorld{state: dynamic.State{V: 2}})
	require.NoError(t, err)
	assert.Greater(t, traj.Last().Theta, 0.0)
	assert.Greater(t, traj.Last().Y, 0.0)
}

func TestContinuousErrors(t *testing.T) {
	m, idx := newContinuous()

	_, err := m.Plan(0.5, dummyWorld{})
	assert.ErrorIs(t, err, behavior.ErrPreconditionViolation)

	require.NoError(t, m.ActionToBehavior(idx[1]))
	assert.ErrorIs(t, m.ActionToBehavior(3), behavior.ErrPreconditionViolation)
	assert.ErrorIs(t, m.ActionToBehavior(^behavior.MotionIdx(0)), behavior.ErrPreconditionViolation)
	active, ok := m.ActiveMotion()
	assert.True(t, ok)
	assert.Equal(t, idx[1], active)
}

func TestContinuousClone(t *testing.T) {
	m, idx := newContinuous()
	require.NoError(t, m.ActionToBehavior(idx[0]))

	c, ok := m.Clone().(*motionprimitives.ContinuousActions)
	require.True(t, ok)
	assert.Equal(t, m.MotionPrimitives(), c.MotionPrimitives())
	active, _ := c.ActiveMotion()
	assert.Equal(t, idx[0], active)

	require.NoError(t, c.ActionToBehavior(idx[2]))
	active, _ = m.ActiveMotion()
	assert.Equal(t, idx[0], active)

	// 副本追加不影响原库，原库追加不影响副本
	assert.Equal(t, behavior.MotionIdx(3), c.AddMotionPrimitive(dynamic.Input{A: -1}))
	assert.Equal(t, 3, m.NumMotionPrimitives())
	assert.Equal(t, behavior.MotionIdx(3), m.AddMotionPrimitive(dynamic.Input{A: 1}))
	assert.Equal(t, -1.0, c.MotionPrimitives()[3].A)
	assert.Equal(t, 1.0, m.MotionPrimitives()[3].A)

	trajM, err := m.Plan(0.5, dummyWorld{state: dynamic.State{V: 2}})
	require.NoError(t, err)
	trajC, err := c.Plan(0.5, dummyWorld{state: dynamic.State{V: 2}})
	require.NoError(t, err)
	assert.Greater(t, trajM.Last().X, trajC.Last().X)
}
