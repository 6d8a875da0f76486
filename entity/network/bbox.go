package network

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
)

var (
	// 错误：路网中没有任何车道，无法计算包围盒
	ErrDegenerateGeometry = errors.New("degenerate geometry: network has no lane")

	// 空路网的包围盒哨兵值，Min为+Inf、Max为-Inf
	EmptyBound = orb.Bound{
		Min: orb.Point{math.Inf(1), math.Inf(1)},
		Max: orb.Point{math.Inf(-1), math.Inf(-1)},
	}
)

// BoundingBox 计算路网的轴对齐包围盒
// 功能：把所有道路、所有车道段中每条车道的中心线拼接成一条折线，返回其包围盒
// 返回：包围盒；路网没有车道时返回EmptyBound与ErrDegenerateGeometry
// 说明：复杂度与全部车道中心线点数之和成线性关系
func (n *RoadNetwork) BoundingBox() (orb.Bound, error) {
	var all orb.LineString
	for _, r := range n.roads {
		for _, sec := range r.LaneSections() {
			for _, id := range sec.LaneIDs {
				l, ok := n.lanes[id]
				if !ok {
					continue
				}
				for _, p := range l.Line() {
					all = append(all, orb.Point{p.X, p.Y})
				}
			}
		}
	}
	if len(all) == 0 {
		return EmptyBound, ErrDegenerateGeometry
	}
	return all.Bound(), nil
}
