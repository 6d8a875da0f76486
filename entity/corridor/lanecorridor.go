package corridor

import (
	"fmt"
	"math"
	"sort"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/mpsim/entity"
)

// 拼接时视为同一点的距离阈值
const joinEpsilon = 1e-6

// LaneCorridor 车道走廊
// 功能：把沿道路序列依次相接的若干车道的中心线拼接为一条连续折线，提供s坐标与xy坐标的互相转换
type LaneCorridor struct {
	laneIDs []int32
	width   float64

	line           []geometry.Point
	lineLengths    []float64
	lineDirections []geometry.PolylineDirection
	length         float64
}

var _ entity.ILaneCorridor = (*LaneCorridor)(nil)

// NewLaneCorridor 创建车道走廊
// 功能：按行驶方向拼接车道中心线
// 参数：lanes-按行驶方向排列的车道，至少1条
// 返回：车道走廊；lanes为空或拼接后不足2个点时返回错误
// 算法说明：
// 1. 后一条车道的首点与前一条车道的末点重合时去掉重复点
// 2. 走廊宽度取各车道宽度的最小值
func NewLaneCorridor(lanes ...entity.ILane) (*LaneCorridor, error) {
	if len(lanes) == 0 {
		return nil, fmt.Errorf("lane corridor needs at least 1 lane")
	}
	c := &LaneCorridor{
		laneIDs: make([]int32, 0, len(lanes)),
		width:   math.Inf(1),
	}
	for _, l := range lanes {
		c.laneIDs = append(c.laneIDs, l.ID())
		c.width = math.Min(c.width, l.Width())
		for _, p := range l.Line() {
			if n := len(c.line); n > 0 && distance2D(c.line[n-1], p) < joinEpsilon {
				continue
			}
			c.line = append(c.line, p)
		}
	}
	if len(c.line) < 2 {
		return nil, fmt.Errorf("lane corridor %v: degenerate center line", c.laneIDs)
	}
	c.lineLengths = geometry.GetPolylineLengths2D(c.line)
	c.length = c.lineLengths[len(c.lineLengths)-1]
	c.lineDirections = geometry.GetPolylineDirections(c.line)
	return c, nil
}

func (c *LaneCorridor) String() string {
	return fmt.Sprintf("LaneCorridor%v", c.laneIDs)
}

// 组成车道走廊的车道
func (c *LaneCorridor) LaneIDs() []int32 {
	return c.laneIDs
}

// 拼接后的中心线
func (c *LaneCorridor) Line() []geometry.Point {
	return c.line
}

func (c *LaneCorridor) Length() float64 {
	return c.length
}

func (c *LaneCorridor) Width() float64 {
	return c.width
}

// ProjectToCorridor 将xy坐标投影到走廊中心线上，计算出对应的s坐标
func (c *LaneCorridor) ProjectToCorridor(pos geometry.Point) float64 {
	s := geometry.GetClosestPolylineSToPoint2D(c.line, c.lineLengths, pos)
	return lo.Clamp(s, 0, c.length)
}

// GetPositionByS 将走廊s坐标转换为xy坐标，超出范围的s被截断到走廊两端
func (c *LaneCorridor) GetPositionByS(s float64) geometry.Point {
	s = lo.Clamp(s, 0, c.length)
	i := sort.SearchFloat64s(c.lineLengths, s)
	if i == 0 {
		return c.line[0]
	}
	sHigh, sLow := c.lineLengths[i], c.lineLengths[i-1]
	return geometry.Blend(c.line[i-1], c.line[i], (s-sLow)/(sHigh-sLow))
}

// GetDirectionByS 走廊s处的切向角度
func (c *LaneCorridor) GetDirectionByS(s float64) float64 {
	s = lo.Clamp(s, 0, c.length)
	if i := sort.SearchFloat64s(c.lineLengths, s); i == 0 {
		return c.lineDirections[0].Direction
	} else {
		return c.lineDirections[i-1].Direction
	}
}

// LateralDistance xy坐标到走廊中心线的距离
func (c *LaneCorridor) LateralDistance(pos geometry.Point) float64 {
	return distance2D(pos, c.GetPositionByS(c.ProjectToCorridor(pos)))
}

func distance2D(a, b geometry.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
