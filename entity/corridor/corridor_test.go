package corridor_test

import (
	"testing"

	"git.fiblab.net/general/common/v2/geometry"
	mapv2 "git.fiblab.net/sim/protos/v2/go/city/map/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/mpsim/dynamic"
	"github.com/tsinghua-fib-lab/mpsim/entity"
	"github.com/tsinghua-fib-lab/mpsim/entity/corridor"
	"github.com/tsinghua-fib-lab/mpsim/entity/lane"
	"github.com/tsinghua-fib-lab/mpsim/entity/network"
	"github.com/tsinghua-fib-lab/mpsim/entity/road"
)

func straightLane(id int32, typ mapv2.LaneType, y, x0, x1 float64) *lane.Lane {
	return lane.New(id, typ, 3.5, []geometry.Point{{X: x0, Y: y}, {X: x1, Y: y}})
}

// 两条道路首尾相接，每条道路从左到右为三条行车道与一条人行道
func makeNetwork() *network.RoadNetwork {
	n := network.New()
	driving, walking := mapv2.LaneType_LANE_TYPE_DRIVING, mapv2.LaneType_LANE_TYPE_WALKING
	n.AddRoad(road.New(1, "a", road.NewSection(0,
		straightLane(10, driving, 7, 0, 100),
		straightLane(11, driving, 3.5, 0, 100),
		straightLane(12, driving, 0, 0, 100),
		straightLane(13, walking, -3, 0, 100),
	)))
	n.AddRoad(road.New(2, "b", road.NewSection(0,
		straightLane(20, driving, 7, 100, 200),
		straightLane(21, driving, 3.5, 100, 200),
		straightLane(22, driving, 0, 100, 200),
	)))
	return n
}

type fakeWorld struct {
	pos geometry.Point
	lc  entity.ILaneCorridor
	rc  entity.IRoadCorridor
}

func (w fakeWorld) EgoID() int32 { return 0 }
func (w fakeWorld) CurrentEgoState() dynamic.State {
	return dynamic.State{X: w.pos.X, Y: w.pos.Y}
}
func (w fakeWorld) CurrentEgoPosition() geometry.Point    { return w.pos }
func (w fakeWorld) LaneCorridor() entity.ILaneCorridor    { return w.lc }
func (w fakeWorld) RoadCorridor() entity.IRoadCorridor    { return w.rc }
func (w fakeWorld) FrontAgent() (entity.FrontAgent, bool) { return entity.FrontAgent{}, false }
func (w fakeWorld) WorldTime() float64                    { return 0 }

func TestLaneCorridorStitching(t *testing.T) {
	n := makeNetwork()
	lc, err := corridor.NewLaneCorridor(n.GetLane(11), n.GetLane(21))
	require.NoError(t, err)

	assert.Equal(t, []int32{11, 21}, lc.LaneIDs())
	assert.Len(t, lc.Line(), 3)
	assert.InDelta(t, 200, lc.Length(), 1e-9)
	assert.InDelta(t, 3.5, lc.Width(), 1e-9)

	p := lc.GetPositionByS(150)
	assert.InDelta(t, 150, p.X, 1e-9)
	assert.InDelta(t, 3.5, p.Y, 1e-9)
	assert.InDelta(t, 120, lc.ProjectToCorridor(geometry.Point{X: 120, Y: 5}), 1e-9)
	assert.InDelta(t, 1.5, lc.LateralDistance(geometry.Point{X: 120, Y: 5}), 1e-9)
	assert.InDelta(t, 0, lc.GetDirectionByS(50), 1e-9)

	// 超出范围的s截断到端点
	assert.InDelta(t, 200, lc.GetPositionByS(1000).X, 1e-9)
	assert.InDelta(t, 0, lc.GetPositionByS(-5).X, 1e-9)

	_, err = corridor.NewLaneCorridor()
	assert.Error(t, err)
}

func TestRoadCorridor(t *testing.T) {
	n := makeNetwork()
	rc, err := corridor.NewRoadCorridor(n, []int32{1, 2})
	require.NoError(t, err)

	// 人行道不进入走廊，第二条道路只有三条行车道
	require.Len(t, rc.LaneCorridors(), 3)
	assert.Equal(t, []int32{10, 20}, rc.LaneCorridors()[0].LaneIDs())
	assert.Equal(t, []int32{12, 22}, rc.LaneCorridors()[2].LaneIDs())

	middle := geometry.Point{X: 150, Y: 3.2}
	assert.Equal(t, []int32{11, 21}, rc.LaneCorridorAt(middle).LaneIDs())
	left, right := rc.LeftRightLaneCorridor(middle)
	require.NotNil(t, left)
	require.NotNil(t, right)
	assert.Equal(t, []int32{10, 20}, left.LaneIDs())
	assert.Equal(t, []int32{12, 22}, right.LaneIDs())

	left, right = rc.LeftRightLaneCorridor(geometry.Point{X: 20, Y: 7.5})
	assert.Nil(t, left)
	assert.NotNil(t, right)
	left, right = rc.LeftRightLaneCorridor(geometry.Point{X: 20, Y: -1})
	assert.NotNil(t, left)
	assert.Nil(t, right)

	_, err = corridor.NewRoadCorridor(n, []int32{1, 99})
	assert.ErrorIs(t, err, network.ErrPreconditionViolation)
}

func TestResolve(t *testing.T) {
	n := makeNetwork()
	rc, err := corridor.NewRoadCorridor(n, []int32{1})
	require.NoError(t, err)

	// 最左侧车道：无左邻，有右邻
	pos := geometry.Point{X: 10, Y: 7}
	adj := corridor.Resolve(fakeWorld{pos: pos, lc: rc.LaneCorridorAt(pos), rc: rc})
	assert.NotNil(t, adj.Current)
	assert.Nil(t, adj.Left)
	assert.NotNil(t, adj.Right)

	// 最右侧车道：有左邻，无右邻
	pos = geometry.Point{X: 10, Y: 0}
	adj = corridor.Resolve(fakeWorld{pos: pos, lc: rc.LaneCorridorAt(pos), rc: rc})
	assert.Equal(t, []int32{12}, adj.Current.LaneIDs())
	assert.Equal(t, []int32{11}, adj.Left.LaneIDs())
	assert.Nil(t, adj.Right)

	// 没有道路走廊
	adj = corridor.Resolve(fakeWorld{pos: pos})
	assert.Nil(t, adj.Current)
	assert.Nil(t, adj.Left)
	assert.Nil(t, adj.Right)
}
