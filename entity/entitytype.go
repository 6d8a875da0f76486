package entity

import (
	"fmt"

	"git.fiblab.net/general/common/v2/geometry"
	mapv2 "git.fiblab.net/sim/protos/v2/go/city/map/v2"
	"github.com/tsinghua-fib-lab/mpsim/dynamic"
)

// 方位常量
const (
	LEFT  = 0 // 左侧
	RIGHT = 1 // 右侧
)

// 车道段，车道ID按从左到右排序
type LaneSection struct {
	S       float64 // 车道段在道路参考线上的起点
	LaneIDs []int32 // 车道ID（从左到右）
}

// 路口连接关系：从入道路经路口车道驶向出道路
type JunctionConnection struct {
	InRoadID  int32   // 入道路
	OutRoadID int32   // 出道路
	LaneIDs   []int32 // 路口内车道
}

func (c JunctionConnection) String() string {
	return fmt.Sprintf("JunctionConnection{%d->%d, lanes=%v}", c.InRoadID, c.OutRoadID, c.LaneIDs)
}

// 前车信息
type FrontAgent struct {
	ID       int32   // 前车ID
	V        float64 // 前车速度
	Distance float64 // 本车车头到前车车尾的距离
}

// entity/lane/lane.go的依赖倒置
type ILane interface {
	String() string

	ID() int32                    // 获取Lane ID
	Type() mapv2.LaneType         // 获取Lane类型
	Width() float64               // 获取Lane宽度
	Length() float64              // 获取Lane长度
	ParentRoadID() int32          // 获取Lane所在Road的ID，未注册到道路时为-1
	OffsetInRoad() int            // Road Lane在车道段中的偏移量，最左侧为0，往右侧递增
	Line() []geometry.Point       // 获取Lane的中心线
	CenterLineLengths() []float64 // 获取Lane中心线各点对应的累计长度
	IsDriving() bool              // 是否为行车道

	GetPositionByS(s float64) geometry.Point              // 将当前车道s坐标转换为xy坐标
	GetDirectionByS(s float64) geometry.PolylineDirection // 根据本车道s坐标计算切向角度
	ProjectToLane(pos geometry.Point) float64             // 将xy坐标投影到车道上，返回s坐标
}

// entity/road/road.go的依赖倒置
type IRoad interface {
	String() string

	ID() int32                   // 获取Road ID
	Name() string                // 获取Road名称
	LaneSections() []LaneSection // 获取所有车道段（按参考线顺序）
	LaneIDs() []int32            // 获取所有车道ID（按车道段、从左到右）
}

// entity/junction/junction.go的依赖倒置
type IJunction interface {
	String() string

	ID() int32                         // 获取Junction ID
	Connections() []JunctionConnection // 获取路口连接关系
	ConnectedRoadIDs() []int32         // 获取与路口相连的全部道路ID（去重、升序）
}

// entity/corridor/lanecorridor.go的依赖倒置
type ILaneCorridor interface {
	String() string

	LaneIDs() []int32       // 组成车道走廊的车道（按行驶方向）
	Line() []geometry.Point // 拼接后的中心线
	Length() float64        // 走廊总长度
	Width() float64         // 走廊宽度（取各车道宽度的最小值）

	ProjectToCorridor(pos geometry.Point) float64 // 将xy坐标投影到走廊上，返回s坐标
	GetPositionByS(s float64) geometry.Point      // 将走廊s坐标转换为xy坐标
	GetDirectionByS(s float64) float64            // 走廊s处的切向角度（弧度）
	LateralDistance(pos geometry.Point) float64   // xy坐标到中心线的距离
}

// entity/corridor/roadcorridor.go的依赖倒置
type IRoadCorridor interface {
	RoadIDs() []int32                                // 道路序列
	LaneCorridors() []ILaneCorridor                  // 所有车道走廊（从左到右）
	LaneCorridorAt(pos geometry.Point) ILaneCorridor // 获取pos所在的车道走廊
	// 获取pos所在车道走廊左右相邻的车道走廊，不存在时为nil
	LeftRightLaneCorridor(pos geometry.Point) (left, right ILaneCorridor)
}

// 单个智能体在某一规划时刻观察到的场景快照
type IObservedWorld interface {
	EgoID() int32                       // 本车ID
	CurrentEgoState() dynamic.State     // 本车当前状态
	CurrentEgoPosition() geometry.Point // 本车当前位置
	LaneCorridor() ILaneCorridor        // 本车当前所在的车道走廊，可能为nil
	RoadCorridor() IRoadCorridor        // 本车的道路走廊，可能为nil
	FrontAgent() (FrontAgent, bool)     // 当前车道走廊内的前车
	WorldTime() float64                 // 当前仿真时间
}
