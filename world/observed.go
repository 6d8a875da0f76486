package world

import (
	"math"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/tsinghua-fib-lab/mpsim/dynamic"
	"github.com/tsinghua-fib-lab/mpsim/entity"
)

// ObservedWorld 单个智能体在某一时刻观察到的场景快照
// 说明：快照创建后不再修改，可被并发读取
type ObservedWorld struct {
	network      entity.IRoadNetwork
	egoID        int32
	egoState     dynamic.State
	laneCorridor entity.ILaneCorridor
	roadCorridor entity.IRoadCorridor
	front        entity.FrontAgent
	hasFront     bool
	time         float64
}

var _ entity.IObservedWorld = (*ObservedWorld)(nil)

// 路网
func (o *ObservedWorld) Network() entity.IRoadNetwork {
	return o.network
}

func (o *ObservedWorld) EgoID() int32 {
	return o.egoID
}

func (o *ObservedWorld) CurrentEgoState() dynamic.State {
	return o.egoState
}

func (o *ObservedWorld) CurrentEgoPosition() geometry.Point {
	return o.egoState.Position()
}

func (o *ObservedWorld) LaneCorridor() entity.ILaneCorridor {
	return o.laneCorridor
}

func (o *ObservedWorld) RoadCorridor() entity.IRoadCorridor {
	return o.roadCorridor
}

func (o *ObservedWorld) FrontAgent() (entity.FrontAgent, bool) {
	return o.front, o.hasFront
}

func (o *ObservedWorld) WorldTime() float64 {
	return o.time
}

// observe 为ego生成快照
// 算法说明：
// 1. 本车所在车道走廊取道路走廊中距离最近者
// 2. 前车为中心点落在该车道走廊内（横向距离不超过半个车道宽度）且s坐标大于本车的最近车辆
// 3. 车距 = s差 - 两车半长之和
func (w *World) observe(ego *Agent) *ObservedWorld {
	o := &ObservedWorld{
		network:  w.network,
		egoID:    ego.id,
		egoState: ego.state,
		time:     w.time,
	}
	if ego.roadCorridor == nil {
		return o
	}
	o.roadCorridor = ego.roadCorridor
	lc := ego.roadCorridor.LaneCorridorAt(ego.state.Position())
	if lc == nil {
		return o
	}
	o.laneCorridor = lc
	egoS := lc.ProjectToCorridor(ego.state.Position())
	bestS := math.Inf(1)
	for _, other := range w.agents {
		if other == ego {
			continue
		}
		pos := other.state.Position()
		if lc.LateralDistance(pos) > lc.Width()/2 {
			continue
		}
		s := lc.ProjectToCorridor(pos)
		if s <= egoS || s >= bestS {
			continue
		}
		bestS = s
		o.front = entity.FrontAgent{
			ID:       other.id,
			V:        other.state.V,
			Distance: s - egoS - (ego.length+other.length)/2,
		}
		o.hasFront = true
	}
	return o
}
