package junction

import (
	"fmt"
	"sort"

	mapv2 "git.fiblab.net/sim/protos/v2/go/city/map/v2"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/mpsim/entity"
)

// Junction 路口实体
// 功能：记录路口连接的入道路、出道路与路口内车道
type Junction struct {
	id          int32
	connections []entity.JunctionConnection
}

// New 创建Junction
func New(id int32, connections ...entity.JunctionConnection) *Junction {
	return &Junction{
		id:          id,
		connections: connections,
	}
}

// NewFromPb 根据protobuf数据创建Junction
// 功能：把路口的行车道组（入道路, 出道路, 车道）转换为连接关系
// 参数：base-Junction的protobuf数据
// 返回：初始化完成的Junction实例
func NewFromPb(base *mapv2.Junction) *Junction {
	connections := make([]entity.JunctionConnection, 0, len(base.DrivingLaneGroups))
	for _, g := range base.DrivingLaneGroups {
		connections = append(connections, entity.JunctionConnection{
			InRoadID:  g.InRoadId,
			OutRoadID: g.OutRoadId,
			LaneIDs:   g.LaneIds,
		})
	}
	if len(connections) == 0 {
		log.Debugf("Junction %d has no driving lane group", base.Id)
	}
	return New(base.Id, connections...)
}

// ID 获取Junction的唯一标识符
// 返回：Junction的ID，如果Junction为nil则返回-1
func (j *Junction) ID() int32 {
	if j == nil {
		return -1
	}
	return j.id
}

func (j *Junction) String() string {
	return fmt.Sprintf("Junction %d", j.id)
}

// Connections 获取路口连接关系
func (j *Junction) Connections() []entity.JunctionConnection {
	return j.connections
}

// ConnectedRoadIDs 获取与路口相连的全部道路ID（去重、升序）
func (j *Junction) ConnectedRoadIDs() []int32 {
	ids := make([]int32, 0, 2*len(j.connections))
	for _, c := range j.connections {
		ids = append(ids, c.InRoadID, c.OutRoadID)
	}
	ids = lo.Uniq(ids)
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids
}
