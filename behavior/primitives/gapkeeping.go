package primitives

import (
	"math"

	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/mpsim/dynamic"
	"github.com/tsinghua-fib-lab/mpsim/entity"
	"github.com/tsinghua-fib-lab/mpsim/entity/corridor"
	"github.com/tsinghua-fib-lab/mpsim/utils/config"
)

const (
	defaultDesiredVelocity        = 15.0 // 期望速度（米/秒）
	defaultMinimumSpacing         = 2.0  // 最小车距（米）
	defaultDesiredTimeHeadway     = 1.5  // 安全车头时距（秒）
	defaultMaxAcceleration        = 1.7  // 最大加速度（米/秒²）
	defaultComfortableBrakingAcc  = 1.67 // 舒适减速度（米/秒²，取正值）
	defaultAccelerationLowerBound = -5.0 // 加速度下限（米/秒²）
	defaultAccelerationUpperBound = 8.0  // 加速度上限（米/秒²）
	idmTheta                      = 4    // IDM速度指数
)

// GapKeeping 跟车基元：沿当前车道走廊按智能驾驶模型(IDM)跟随前车，无前车时按期望速度自由行驶
type GapKeeping struct {
	base
	desiredVelocity float64
	minGap          float64
	headway         float64
	maxA            float64
	usualBrakingA   float64 // 舒适减速度，负值
	lowerA          float64
	upperA          float64
}

// NewGapKeeping 创建跟车基元
func NewGapKeeping(params *config.Params, model dynamic.Model) *GapKeeping {
	return &GapKeeping{
		base:            newBase(params, model),
		desiredVelocity: params.GetReal("desired_velocity", defaultDesiredVelocity),
		minGap:          params.GetReal("minimum_spacing", defaultMinimumSpacing),
		headway:         params.GetReal("desired_time_headway", defaultDesiredTimeHeadway),
		maxA:            params.GetReal("max_acceleration", defaultMaxAcceleration),
		usualBrakingA:   -math.Abs(params.GetReal("comfortable_braking_acceleration", defaultComfortableBrakingAcc)),
		lowerA:          params.GetReal("acceleration_lower_bound", defaultAccelerationLowerBound),
		upperA:          params.GetReal("acceleration_upper_bound", defaultAccelerationUpperBound),
	}
}

func (p *GapKeeping) String() string {
	return "GapKeeping"
}

func (p *GapKeeping) Kind() Kind {
	return KindGapKeeping
}

// IsPreConditionSatisfied 没有前车时总是成立；有前车时要求车距为正，否则IDM无定义
func (p *GapKeeping) IsPreConditionSatisfied(w entity.IObservedWorld, _ corridor.Adjacent) bool {
	if front, ok := w.FrontAgent(); ok {
		return front.Distance > 0
	}
	return true
}

func (p *GapKeeping) SelectTargetCorridor(_ entity.IObservedWorld, adj corridor.Adjacent) entity.ILaneCorridor {
	return adj.Current
}

// Plan 规划跟车轨迹
// 算法说明：规划期内假设前车保持当前速度，车距 = 初始车距 + 前车行驶距离 - 本车行驶距离
func (p *GapKeeping) Plan(
	deltaTime float64, w entity.IObservedWorld, target entity.ILaneCorridor,
) (dynamic.Trajectory, error) {
	front, hasFront := w.FrontAgent()
	return p.integrate(deltaTime, w, target, func(x0, x dynamic.State) float64 {
		if !hasFront {
			return p.follow(x.V, 0, mathutil.INF)
		}
		travelled := math.Hypot(x.X-x0.X, x.Y-x0.Y)
		distance := front.Distance + front.V*(x.T-x0.T) - travelled
		return p.follow(x.V, front.V, distance)
	}), nil
}

// follow 跟车模型
// 功能：实现智能驾驶模型(IDM)的跟车逻辑
// 参数：selfV-本车速度，aheadV-前车速度，distance-车距
// 返回：计算得到的加速度（米/秒²）
// 算法说明：
// 1. 距离小于等于0时紧急制动
// 2. 期望车距：s_star = minGap + max(0, v*headway + v*(v-v_ahead)/(2*sqrt(a*b)))
// 3. 加速度：a = maxA * (1 - (v/targetV)^4 - (s_star/distance)^2)
// 4. 限制加速度在上下限之间
func (p *GapKeeping) follow(selfV, aheadV, distance float64) float64 {
	var acc float64
	if distance <= 0 {
		acc = -mathutil.INF
	} else {
		// https://en.wikipedia.org/wiki/Intelligent_driver_model
		sStar := p.minGap + math.Max(
			0,
			selfV*p.headway+selfV*(selfV-aheadV)/2/math.Sqrt(-p.usualBrakingA*p.maxA),
		)
		acc = p.maxA * (1 - math.Pow(selfV/p.desiredVelocity, idmTheta) - math.Pow(sStar/distance, 2))
	}
	return lo.Clamp(acc, p.lowerA, p.upperA)
}
