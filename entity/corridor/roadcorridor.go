package corridor

import (
	"fmt"
	"math"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/mpsim/entity"
)

// RoadCorridor 道路走廊
// 功能：沿道路序列的一组并排车道走廊，按从左到右排列
type RoadCorridor struct {
	roadIDs       []int32
	laneCorridors []entity.ILaneCorridor
}

var _ entity.IRoadCorridor = (*RoadCorridor)(nil)

// NewRoadCorridor 创建道路走廊
// 功能：把道路序列中每个车道段的行车道按从左到右的序号对齐，同序号的车道拼接为一条车道走廊
// 参数：n-路网，roadIDs-按行驶方向排列的道路ID
// 返回：道路走廊；道路不存在时返回错误
// 算法说明：
// 1. 依次展开每条道路的每个车道段，只保留行车道
// 2. 车道走廊数量取各车道段行车道数量的最小值，多出的车道（如匝道加速车道）不进入走廊
func NewRoadCorridor(n entity.IRoadNetwork, roadIDs []int32) (*RoadCorridor, error) {
	if len(roadIDs) == 0 {
		return nil, fmt.Errorf("road corridor needs at least 1 road")
	}
	var sections [][]entity.ILane
	for _, id := range roadIDs {
		r, err := n.GetRoadOrError(id)
		if err != nil {
			return nil, fmt.Errorf("road corridor: %w", err)
		}
		for _, sec := range r.LaneSections() {
			lanes := make([]entity.ILane, 0, len(sec.LaneIDs))
			for _, laneID := range sec.LaneIDs {
				l, err := n.GetLaneOrError(laneID)
				if err != nil {
					return nil, fmt.Errorf("road corridor: %v: %w", r, err)
				}
				if l.IsDriving() {
					lanes = append(lanes, l)
				}
			}
			sections = append(sections, lanes)
		}
	}
	width := math.MaxInt
	for _, lanes := range sections {
		width = min(width, len(lanes))
	}
	if len(sections) == 0 || width == 0 {
		log.Warnf("road corridor %v has no driving lane", roadIDs)
		width = 0
	}
	rc := &RoadCorridor{
		roadIDs:       append([]int32(nil), roadIDs...),
		laneCorridors: make([]entity.ILaneCorridor, 0, width),
	}
	for k := 0; k < width; k++ {
		lc, err := NewLaneCorridor(lo.Map(sections, func(lanes []entity.ILane, _ int) entity.ILane {
			return lanes[k]
		})...)
		if err != nil {
			return nil, fmt.Errorf("road corridor %v: %w", roadIDs, err)
		}
		rc.laneCorridors = append(rc.laneCorridors, lc)
	}
	return rc, nil
}

// 道路序列
func (rc *RoadCorridor) RoadIDs() []int32 {
	return rc.roadIDs
}

// 所有车道走廊（从左到右）
func (rc *RoadCorridor) LaneCorridors() []entity.ILaneCorridor {
	return rc.laneCorridors
}

// LaneCorridorAt 获取pos所在的车道走廊（到中心线距离最近者），没有车道走廊时返回nil
func (rc *RoadCorridor) LaneCorridorAt(pos geometry.Point) entity.ILaneCorridor {
	if i := rc.indexAt(pos); i >= 0 {
		return rc.laneCorridors[i]
	}
	return nil
}

// LeftRightLaneCorridor 获取pos所在车道走廊左右相邻的车道走廊
// 返回：left-左侧车道走廊，right-右侧车道走廊，不存在时为nil
func (rc *RoadCorridor) LeftRightLaneCorridor(pos geometry.Point) (left, right entity.ILaneCorridor) {
	i := rc.indexAt(pos)
	if i < 0 {
		return nil, nil
	}
	if i > 0 {
		left = rc.laneCorridors[i-1]
	}
	if i+1 < len(rc.laneCorridors) {
		right = rc.laneCorridors[i+1]
	}
	return
}

func (rc *RoadCorridor) indexAt(pos geometry.Point) int {
	best, bestDistance := -1, math.Inf(1)
	for i, lc := range rc.laneCorridors {
		if d := lc.LateralDistance(pos); d < bestDistance {
			best, bestDistance = i, d
		}
	}
	return best
}
