package input

import (
	"fmt"

	mapv2 "git.fiblab.net/sim/protos/v2/go/city/map/v2"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/mpsim/entity/junction"
	"github.com/tsinghua-fib-lab/mpsim/entity/network"
	"github.com/tsinghua-fib-lab/mpsim/entity/road"
)

// BuildNetwork 根据地图构建路网
// 功能：把地图中的道路（连同其车道）与路口注册到路网
// 返回：路网；道路引用了不存在的车道时返回错误
// 算法说明：
// 1. 建立车道ID到车道的映射
// 2. 每条道路的车道（从左到右）作为一个车道段，随道路注册到路网
// 3. 路口的行车道组转换为连接关系；引用了不存在的道路的连接只记录警告
// 说明：不属于任何道路的车道（路口内车道）不进入路网的车道表
func (in *Input) BuildNetwork() (*network.RoadNetwork, error) {
	m := in.Map
	if m == nil {
		return nil, fmt.Errorf("input: no map")
	}
	log.Infof("Lane: %v", len(m.Lanes))
	log.Infof("Road: %v", len(m.Roads))
	log.Infof("Junction: %v", len(m.Junctions))

	lanes := lo.SliceToMap(m.Lanes, func(l *mapv2.Lane) (int32, *mapv2.Lane) {
		return l.Id, l
	})
	n := network.New()
	for _, pb := range m.Roads {
		r, err := road.NewFromPb(pb, lanes)
		if err != nil {
			return nil, fmt.Errorf("input: %w", err)
		}
		n.AddRoad(r)
	}
	roadIDs := n.GetRoads()
	for _, pb := range m.Junctions {
		j := junction.NewFromPb(pb)
		for _, id := range j.ConnectedRoadIDs() {
			if _, ok := roadIDs[id]; !ok {
				log.Warnf("%v connects to unknown Road %d", j, id)
			}
		}
		n.AddJunction(j)
	}
	if skipped := len(m.Lanes) - len(n.GetLanes()); skipped > 0 {
		log.Infof("%d lanes are not in any road", skipped)
	}
	return n, nil
}
