// 路网：统一持有道路、车道、路口，提供拓扑与几何查询
//
// 路网在初始化阶段由单个写者填充，此后可被多个智能体并发只读访问，内部不加锁。
package network

import (
	"errors"
	"fmt"

	"github.com/tsinghua-fib-lab/mpsim/entity"
	"github.com/tsinghua-fib-lab/mpsim/entity/junction"
	"github.com/tsinghua-fib-lab/mpsim/entity/lane"
	"github.com/tsinghua-fib-lab/mpsim/entity/road"
)

var (
	// 错误：查询的ID不存在
	ErrPreconditionViolation = errors.New("precondition violation")
)

// RoadNetwork 路网
// 功能：按ID管理所有Road、Lane、Junction
// 说明：lanes是车道记录的唯一持有者，Road只保存车道ID
type RoadNetwork struct {
	roads     map[int32]*road.Road
	lanes     map[int32]*lane.Lane
	junctions map[int32]*junction.Junction
}

var _ entity.IRoadNetwork = (*RoadNetwork)(nil)

// New 创建空路网
func New() *RoadNetwork {
	return &RoadNetwork{
		roads:     make(map[int32]*road.Road),
		lanes:     make(map[int32]*lane.Lane),
		junctions: make(map[int32]*junction.Junction),
	}
}

// AddRoad 注册道路
// 功能：按ID注册道路并将其所有车道写入车道表
// 参数：r-道路
// 返回：总是返回true
// 算法说明：
// 1. ID冲突时后写入者覆盖先写入者，并记录警告
// 2. 被覆盖的旧道路仍持有的车道先从车道表中移除，保证车道表恰好是经由道路可达的车道集合
// 3. 新道路的车道写入车道表，车道ID冲突同样覆盖；重复注册同一道路时重新写入其车道
func (n *RoadNetwork) AddRoad(r *road.Road) bool {
	if old, ok := n.roads[r.ID()]; ok {
		if old == r {
			log.Debugf("%v is already registered", r)
		} else {
			log.Warnf("%v is overwritten", r)
			for _, id := range old.LaneIDs() {
				if l, ok := n.lanes[id]; ok && l.ParentRoadID() == old.ID() {
					delete(n.lanes, id)
				}
			}
		}
	}
	n.roads[r.ID()] = r
	for _, l := range r.LaneRecords() {
		if prev, ok := n.lanes[l.ID()]; ok && prev.ParentRoadID() != r.ID() {
			log.Warnf("%v of Road %d is overwritten by Road %d", prev, prev.ParentRoadID(), r.ID())
		}
		n.lanes[l.ID()] = l
	}
	return true
}

// AddJunction 注册路口
// 功能：按ID注册路口，ID冲突时覆盖
// 返回：总是返回true
func (n *RoadNetwork) AddJunction(j *junction.Junction) bool {
	if _, ok := n.junctions[j.ID()]; ok {
		log.Warnf("%v is overwritten", j)
	}
	n.junctions[j.ID()] = j
	return true
}

// GetRoad 根据ID获取Road实例，如果不存在则panic
func (n *RoadNetwork) GetRoad(id int32) entity.IRoad {
	r, err := n.GetRoadOrError(id)
	if err != nil {
		log.Panic(err)
	}
	return r
}

// GetRoadOrError 根据ID获取Road实例，如果不存在则返回错误
func (n *RoadNetwork) GetRoadOrError(id int32) (entity.IRoad, error) {
	if r, ok := n.roads[id]; !ok {
		return nil, fmt.Errorf("%w: no id %d in road data", ErrPreconditionViolation, id)
	} else {
		return r, nil
	}
}

// GetLane 根据ID获取Lane实例，如果不存在则panic
func (n *RoadNetwork) GetLane(id int32) entity.ILane {
	l, err := n.GetLaneOrError(id)
	if err != nil {
		log.Panic(err)
	}
	return l
}

// GetLaneOrError 根据ID获取Lane实例，如果不存在则返回错误
func (n *RoadNetwork) GetLaneOrError(id int32) (entity.ILane, error) {
	if l, ok := n.lanes[id]; !ok {
		return nil, fmt.Errorf("%w: no id %d in lane data", ErrPreconditionViolation, id)
	} else {
		return l, nil
	}
}

// GetJunction 根据ID获取Junction实例，如果不存在则panic
func (n *RoadNetwork) GetJunction(id int32) entity.IJunction {
	j, err := n.GetJunctionOrError(id)
	if err != nil {
		log.Panic(err)
	}
	return j
}

// GetJunctionOrError 根据ID获取Junction实例，如果不存在则返回错误
func (n *RoadNetwork) GetJunctionOrError(id int32) (entity.IJunction, error) {
	if j, ok := n.junctions[id]; !ok {
		return nil, fmt.Errorf("%w: no id %d in junction data", ErrPreconditionViolation, id)
	} else {
		return j, nil
	}
}

// GetRoads 获取全部Road的副本，修改返回值不影响路网
func (n *RoadNetwork) GetRoads() map[int32]entity.IRoad {
	res := make(map[int32]entity.IRoad, len(n.roads))
	for id, r := range n.roads {
		res[id] = r
	}
	return res
}

// GetLanes 获取全部Lane的副本，修改返回值不影响路网
func (n *RoadNetwork) GetLanes() map[int32]entity.ILane {
	res := make(map[int32]entity.ILane, len(n.lanes))
	for id, l := range n.lanes {
		res[id] = l
	}
	return res
}

// GetJunctions 获取全部Junction的副本，修改返回值不影响路网
func (n *RoadNetwork) GetJunctions() map[int32]entity.IJunction {
	res := make(map[int32]entity.IJunction, len(n.junctions))
	for id, j := range n.junctions {
		res[id] = j
	}
	return res
}
