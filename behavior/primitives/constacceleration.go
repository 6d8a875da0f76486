package primitives

import (
	"fmt"

	"github.com/tsinghua-fib-lab/mpsim/dynamic"
	"github.com/tsinghua-fib-lab/mpsim/entity"
	"github.com/tsinghua-fib-lab/mpsim/entity/corridor"
	"github.com/tsinghua-fib-lab/mpsim/utils/config"
)

const (
	defaultMaxVelocity       = 30.0 // 最大速度（米/秒）
	defaultMinVelocity       = 0.0  // 最小速度（米/秒）
	defaultVelocityTolerance = 0.1  // 速度容差（米/秒）
)

// ConstAcceleration 匀加速基元：沿当前车道走廊以固定加速度行驶
type ConstAcceleration struct {
	base
	acceleration float64
	maxVelocity  float64
	minVelocity  float64
	tolerance    float64
}

// NewConstAcceleration 创建匀加速基元
// 参数：params-参数表，读取max_velocity、min_velocity、velocity_tolerance，model-动力学模型，acc-加速度
func NewConstAcceleration(params *config.Params, model dynamic.Model, acc float64) *ConstAcceleration {
	return &ConstAcceleration{
		base:         newBase(params, model),
		acceleration: acc,
		maxVelocity:  params.GetReal("max_velocity", defaultMaxVelocity),
		minVelocity:  params.GetReal("min_velocity", defaultMinVelocity),
		tolerance:    params.GetReal("velocity_tolerance", defaultVelocityTolerance),
	}
}

func (p *ConstAcceleration) String() string {
	return fmt.Sprintf("ConstAcceleration{a=%v}", p.acceleration)
}

func (p *ConstAcceleration) Kind() Kind {
	return KindConstAcceleration
}

// Acceleration 获取加速度
func (p *ConstAcceleration) Acceleration() float64 {
	return p.acceleration
}

// IsPreConditionSatisfied 减速时速度不能已接近最小速度，加速时速度不能已接近最大速度
func (p *ConstAcceleration) IsPreConditionSatisfied(w entity.IObservedWorld, _ corridor.Adjacent) bool {
	v := w.CurrentEgoState().V
	switch {
	case p.acceleration < 0 && v <= p.minVelocity+p.tolerance:
		return false
	case p.acceleration > 0 && v >= p.maxVelocity-p.tolerance:
		return false
	default:
		return true
	}
}

func (p *ConstAcceleration) SelectTargetCorridor(_ entity.IObservedWorld, adj corridor.Adjacent) entity.ILaneCorridor {
	return adj.Current
}

func (p *ConstAcceleration) Plan(
	deltaTime float64, w entity.IObservedWorld, target entity.ILaneCorridor,
) (dynamic.Trajectory, error) {
	return p.integrate(deltaTime, w, target, func(_, _ dynamic.State) float64 {
		return p.acceleration
	}), nil
}
