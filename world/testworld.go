package world

import (
	"git.fiblab.net/general/common/v2/geometry"
	mapv2 "git.fiblab.net/sim/protos/v2/go/city/map/v2"
	"github.com/tsinghua-fib-lab/mpsim/dynamic"
	"github.com/tsinghua-fib-lab/mpsim/entity/corridor"
	"github.com/tsinghua-fib-lab/mpsim/entity/lane"
	"github.com/tsinghua-fib-lab/mpsim/entity/network"
	"github.com/tsinghua-fib-lab/mpsim/entity/road"
)

// 测试路网车道宽度
const TestLaneWidth = 3.5

func straightRoad(id int32, x0, x1 float64, laneIDs ...int32) *road.Road {
	lanes := make([]*lane.Lane, 0, len(laneIDs))
	for i, laneID := range laneIDs {
		// 从左到右排列，行驶方向为+x，左侧车道y更大
		y := float64(len(laneIDs)-1-i) * TestLaneWidth
		lanes = append(lanes, lane.New(laneID, mapv2.LaneType_LANE_TYPE_DRIVING, TestLaneWidth,
			[]geometry.Point{{X: x0, Y: y}, {X: x1, Y: y}}))
	}
	return road.New(id, "", road.NewSection(0, lanes...))
}

// MakeTestWorldHighway 两车道直线高速公路测试场景
// 说明：
// 道路1（x∈[0,250]）与道路2（x∈[250,500]）首尾相接，左车道y=3.5，右车道y=0
// 智能体0、1在左车道，智能体2、3在右车道，均不受控
func MakeTestWorldHighway() *World {
	n := network.New()
	n.AddRoad(straightRoad(1, 0, 250, 10, 11))
	n.AddRoad(straightRoad(2, 250, 500, 20, 21))
	rc, err := corridor.NewRoadCorridor(n, []int32{1, 2})
	if err != nil {
		log.Panic(err)
	}
	w := New(n)
	for _, a := range []struct {
		id      int32
		x, y, v float64
	}{
		{0, 10, TestLaneWidth, 10},
		{1, 40, TestLaneWidth, 8},
		{2, 50, 0, 8},
		{3, 20, 0, 10},
	} {
		w.AddAgent(NewAgent(a.id, dynamic.State{X: a.x, Y: a.y, V: a.v}, rc))
	}
	return w
}

// MakeTestObservedWorld 单车道直线道路上的测试快照
// 参数：relDistance-前车车距（<=0表示没有前车），egoVelocity-本车速度，velocityDifference-前车与本车的速度差
// 返回：智能体0的快照
func MakeTestObservedWorld(relDistance, egoVelocity, velocityDifference float64) *ObservedWorld {
	n := network.New()
	n.AddRoad(straightRoad(1, 0, 500, 10))
	rc, err := corridor.NewRoadCorridor(n, []int32{1})
	if err != nil {
		log.Panic(err)
	}
	w := New(n)
	ego := NewAgent(0, dynamic.State{X: 10, V: egoVelocity}, rc)
	w.AddAgent(ego)
	if relDistance > 0 {
		x := 10 + relDistance + DefaultAgentLength
		w.AddAgent(NewAgent(1, dynamic.State{X: x, V: egoVelocity + velocityDifference}, rc))
	}
	return w.observe(ego)
}
