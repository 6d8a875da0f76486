package primitives

import (
	"math"

	"github.com/tsinghua-fib-lab/mpsim/dynamic"
	"github.com/tsinghua-fib-lab/mpsim/entity"
	"github.com/tsinghua-fib-lab/mpsim/utils/config"
)

const (
	defaultWheelBase     = 2.7 // 轴距（米）
	defaultMinLookAhead  = 5.0 // 最小预瞄距离（米）
	defaultLookAheadTime = 1.0 // 预瞄时间（秒）
)

// purePursuit 纯跟踪横向控制律
type purePursuit struct {
	wheelBase     float64
	minLookAhead  float64
	lookAheadTime float64
}

func newPurePursuit(params *config.Params) purePursuit {
	return purePursuit{
		wheelBase:     params.GetReal("wheel_base", defaultWheelBase),
		minLookAhead:  params.GetReal("min_look_ahead_distance", defaultMinLookAhead),
		lookAheadTime: params.GetReal("look_ahead_time", defaultLookAheadTime),
	}
}

// steer 计算跟踪目标车道走廊所需的前轮转角
// 算法说明：
// 1. 把当前位置投影到走廊上，沿走廊前进预瞄距离ld=max(ldMin, v*tLook)得到预瞄点
// 2. α为预瞄点方位与航向之差，δ = atan(2*L*sin(α)/ld)
// 说明：没有目标走廊或预瞄点与当前位置重合时保持直行
func (p purePursuit) steer(x dynamic.State, target entity.ILaneCorridor) float64 {
	if target == nil {
		return 0
	}
	pos := x.Position()
	s := target.ProjectToCorridor(pos)
	goal := target.GetPositionByS(s + math.Max(p.minLookAhead, x.V*p.lookAheadTime))
	ld := math.Hypot(goal.X-pos.X, goal.Y-pos.Y)
	if ld < 1e-6 {
		return 0
	}
	alpha := normalizeAngle(math.Atan2(goal.Y-pos.Y, goal.X-pos.X) - x.Theta)
	return math.Atan2(2*p.wheelBase*math.Sin(alpha), ld)
}

// 将角度归一化到[-π, π)
func normalizeAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
