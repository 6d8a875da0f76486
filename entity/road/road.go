package road

import (
	"fmt"

	mapv2 "git.fiblab.net/sim/protos/v2/go/city/map/v2"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/mpsim/entity"
	"github.com/tsinghua-fib-lab/mpsim/entity/lane"
)

// Section 构建道路时使用的车道段
type Section struct {
	S     float64      // 车道段在道路参考线上的起点
	Lanes []*lane.Lane // 车道（从左到右）
}

// NewSection 创建车道段，lanes按从左到右排列
func NewSection(s float64, lanes ...*lane.Lane) Section {
	return Section{S: s, Lanes: lanes}
}

// Road 道路实体
// 功能：表示地图中的道路，由按参考线排列的车道段组成，每个车道段引用若干车道ID
type Road struct {
	id       int32
	name     string
	sections []entity.LaneSection

	lanes []*lane.Lane // 车道记录，供RoadNetwork注册时写入车道表
}

// New 创建并初始化一个新的Road实例
// 功能：根据车道段创建Road对象，设置每条车道所属的道路与偏移量
// 参数：id-道路ID，name-道路名称，sections-车道段（按参考线顺序）
// 返回：初始化完成的Road实例
// 说明：路网查询只通过车道表进行，Road保留的车道记录仅用于注册
func New(id int32, name string, sections ...Section) *Road {
	r := &Road{
		id:       id,
		name:     name,
		sections: make([]entity.LaneSection, 0, len(sections)),
	}
	for _, sec := range sections {
		ids := make([]int32, 0, len(sec.Lanes))
		for i, l := range sec.Lanes {
			if l == nil {
				log.Panicf("Road %d: nil lane at offset %d", id, i)
			}
			l.SetParentRoadWhenInit(id, i)
			ids = append(ids, l.ID())
			r.lanes = append(r.lanes, l)
		}
		r.sections = append(r.sections, entity.LaneSection{S: sec.S, LaneIDs: ids})
	}
	return r
}

// NewFromPb 根据protobuf数据创建Road
// 参数：base-Road的protobuf数据，lanes-车道ID到车道protobuf的映射
// 说明：protobuf中的道路没有车道段概念，全部车道（按LaneIds顺序，即从左到右）归入同一车道段
func NewFromPb(base *mapv2.Road, lanes map[int32]*mapv2.Lane) (*Road, error) {
	ls := make([]*lane.Lane, 0, len(base.LaneIds))
	for _, id := range base.LaneIds {
		pb, ok := lanes[id]
		if !ok {
			return nil, fmt.Errorf("road %d: no lane %d in map", base.Id, id)
		}
		l, err := lane.NewFromPb(pb)
		if err != nil {
			return nil, fmt.Errorf("road %d: %w", base.Id, err)
		}
		ls = append(ls, l)
	}
	return New(base.Id, base.Name, NewSection(0, ls...)), nil
}

// LaneRecords 道路的全部车道记录（按车道段、从左到右）
// 说明：仅供RoadNetwork注册时使用，每次调用都返回完整列表，同一Road可重复注册或注册到多个路网
func (r *Road) LaneRecords() []*lane.Lane {
	return r.lanes
}

// ID 获取Road的唯一标识符
// 返回：Road的ID，如果Road为nil则返回-1
func (r *Road) ID() int32 {
	if r == nil {
		return -1
	}
	return r.id
}

// String 获取Road的字符串表示
func (r *Road) String() string {
	return fmt.Sprintf("Road %d", r.id)
}

// Name 获取Road的名称
func (r *Road) Name() string {
	return r.name
}

// LaneSections 获取Road的所有车道段
func (r *Road) LaneSections() []entity.LaneSection {
	return r.sections
}

// LaneIDs 获取Road的所有车道ID
// 功能：按车道段顺序、段内从左到右展开所有车道ID
func (r *Road) LaneIDs() []int32 {
	return lo.FlatMap(r.sections, func(sec entity.LaneSection, _ int) []int32 {
		return sec.LaneIDs
	})
}
