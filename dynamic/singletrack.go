package dynamic

import (
	"math"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/mpsim/utils/config"
)

const (
	defaultWheelBase        = 2.7 // 轴距（米）
	defaultMaxSteeringAngle = 0.6 // 最大前轮转角（弧度）
)

// SingleTrack 单轨（自行车）运动学模型
// 功能：根据纵向加速度与前轮转角推进车辆状态
// 说明：纵向位移采用匀加速精确解，刹停后不倒车
type SingleTrack struct {
	wheelBase        float64
	maxSteeringAngle float64
}

// NewSingleTrack 根据参数创建单轨模型
// 参数：params-参数表，读取wheel_base与max_steering_angle
func NewSingleTrack(params *config.Params) *SingleTrack {
	return &SingleTrack{
		wheelBase:        params.GetReal("wheel_base", defaultWheelBase),
		maxSteeringAngle: params.GetReal("max_steering_angle", defaultMaxSteeringAngle),
	}
}

// WheelBase 获取轴距
func (m *SingleTrack) WheelBase() float64 {
	return m.wheelBase
}

// Step 将状态推进dt秒
// 算法说明：
// 1. 按匀加速计算新速度与行驶距离，速度降到0则在刹停处停止
// 2. 航向变化 dθ = d/L * tan(δ)
// 3. 位置沿平均航向推进
func (m *SingleTrack) Step(x State, u Input, dt float64) State {
	v, d := computeVAndDistance(x.V, u.A, dt)
	delta := lo.Clamp(u.Delta, -m.maxSteeringAngle, m.maxSteeringAngle)
	dTheta := d / m.wheelBase * math.Tan(delta)
	meanTheta := x.Theta + dTheta/2
	return State{
		T:     x.T + dt,
		X:     x.X + d*math.Cos(meanTheta),
		Y:     x.Y + d*math.Sin(meanTheta),
		Theta: x.Theta + dTheta,
		V:     v,
	}
}

// 计算本时刻的速度与移动距离
// v(t)=v(t-1)+acc*dt, ds=v(t-1)*dt+acc*dt*dt/2
func computeVAndDistance(v, a, dt float64) (float64, float64) {
	dv := a * dt
	if v+dv < 0 {
		// 刹车到停止
		return 0, v * v / 2 / -a
	}
	return v + dv, (v + dv/2) * dt
}
