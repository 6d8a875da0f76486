package lane

import (
	"fmt"
	"sort"

	"git.fiblab.net/general/common/v2/geometry"
	geov2 "git.fiblab.net/sim/protos/v2/go/city/geo/v2"
	mapv2 "git.fiblab.net/sim/protos/v2/go/city/map/v2"
	"github.com/samber/lo"
)

// Lane 车道实体
// 功能：表示地图中的车道，包含中心线几何信息与所属道路信息
// 说明：Lane记录只由RoadNetwork的车道表持有，Road通过ID引用
type Lane struct {
	id    int32
	typ   mapv2.LaneType // 车道类型
	width float64        // 车道宽度

	parentRoadID int32 // 所在道路，-1表示尚未注册
	offsetInRoad int   // 在车道段中的索引，0为最左侧车道，1为左数第二侧车道，以此类推

	lineLengths    []float64                    // 中心线折线点对应的的长度列表
	length         float64                      // 以中心线的长度为车道长度
	lineDirections []geometry.PolylineDirection // 中心线折线段每一段的方向（atan2）
	line           []geometry.Point             // 中心线折线
}

// New 创建并初始化一个新的Lane实例
// 功能：根据ID、类型、宽度与中心线创建Lane对象，预计算长度与方向
// 参数：id-车道ID，typ-车道类型，width-车道宽度，line-中心线（至少2个点）
// 返回：初始化完成的Lane实例
func New(id int32, typ mapv2.LaneType, width float64, line []geometry.Point) *Lane {
	if len(line) < 2 {
		log.Panicf("lane %d: center line needs at least 2 points, got %d", id, len(line))
	}
	l := &Lane{
		id:           id,
		typ:          typ,
		width:        width,
		parentRoadID: -1,
		line:         append([]geometry.Point(nil), line...),
	}
	l.lineLengths = geometry.GetPolylineLengths2D(l.line)
	l.length = l.lineLengths[len(l.lineLengths)-1]
	l.lineDirections = geometry.GetPolylineDirections(l.line)
	return l
}

// NewFromPb 根据protobuf数据创建Lane
// 返回：中心线缺失或少于2个点时返回错误
func NewFromPb(base *mapv2.Lane) (*Lane, error) {
	if base.CenterLine == nil || len(base.CenterLine.Nodes) < 2 {
		return nil, fmt.Errorf("lane %d: center line needs at least 2 points, got %d",
			base.Id, len(base.GetCenterLine().GetNodes()))
	}
	line := lo.Map(base.CenterLine.Nodes, func(node *geov2.XYPosition, _ int) geometry.Point {
		return geometry.NewPointFromPb(node)
	})
	return New(base.Id, base.Type, base.Width, line), nil
}

// SetParentRoadWhenInit 设置lane所在road与偏移量
// 功能：在道路构建阶段设置Lane所属的道路和车道段内偏移量
func (l *Lane) SetParentRoadWhenInit(roadID int32, offset int) {
	l.parentRoadID = roadID
	l.offsetInRoad = offset
}

func (l *Lane) String() string {
	return fmt.Sprintf("Lane %d", l.id)
}

// 获取Lane ID
func (l *Lane) ID() int32 {
	if l == nil {
		return -1
	}
	return l.id
}

// 获取Lane类型
func (l *Lane) Type() mapv2.LaneType {
	return l.typ
}

// 是否为行车道
func (l *Lane) IsDriving() bool {
	return l.typ == mapv2.LaneType_LANE_TYPE_DRIVING
}

// 获取Lane宽度
func (l *Lane) Width() float64 {
	return l.width
}

// 获取Lane长度
func (l *Lane) Length() float64 {
	return l.length
}

// 获取Lane所在Road的ID
func (l *Lane) ParentRoadID() int32 {
	return l.parentRoadID
}

// Road Lane在车道段中的偏移量，最左侧为0，往右侧递增
func (l *Lane) OffsetInRoad() int {
	if l.parentRoadID < 0 {
		log.Panicf("Lane %d: Not in road", l.id)
	}
	return l.offsetInRoad
}

// 获取Lane的中心线
func (l *Lane) Line() []geometry.Point {
	return l.line
}

// 获取Lane的中心线长度
func (l *Lane) CenterLineLengths() []float64 {
	return l.lineLengths
}

// 根据本车道s坐标计算切向角度
func (l *Lane) GetDirectionByS(s float64) (direction geometry.PolylineDirection) {
	s = l.clampS(s, "direction")
	if i := sort.SearchFloat64s(l.lineLengths, s); i == 0 {
		direction = l.lineDirections[0]
	} else {
		direction = l.lineDirections[i-1]
	}
	return
}

// 将当前车道s坐标转换为xy坐标
func (l *Lane) GetPositionByS(s float64) (pos geometry.Point) {
	s = l.clampS(s, "position")
	if i := sort.SearchFloat64s(l.lineLengths, s); i == 0 {
		pos = l.line[0]
	} else {
		sHigh, sLow := l.lineLengths[i], l.lineLengths[i-1]
		k := (s - sLow) / (sHigh - sLow)
		if k < 0 || k > 1 {
			log.Panicf("lane: GetPositionByS(), bad k %v. sHigh=%f, sLow=%f, s=%f", k, sHigh, sLow, s)
		}
		pos = geometry.Blend(l.line[i-1], l.line[i], k)
	}
	return
}

// 将xy坐标投影到车道折线上，计算出对应的s坐标
func (l *Lane) ProjectToLane(pos geometry.Point) float64 {
	s := geometry.GetClosestPolylineSToPoint2D(l.line, l.lineLengths, pos)
	return lo.Clamp(s, 0, l.length)
}

func (l *Lane) clampS(s float64, what string) float64 {
	low, high := l.lineLengths[0], l.lineLengths[len(l.lineLengths)-1]
	if s < low || s > high {
		log.Debugf("get %s with s %v out of range{%v,%v}", what, s, low, high)
		s = lo.Clamp(s, low, high)
	}
	return s
}
