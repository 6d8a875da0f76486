// 车辆动力学模型与积分工具
// 状态布局与控制量定义对所有行为模型通用
package dynamic

import (
	"fmt"
	"math"

	"git.fiblab.net/general/common/v2/geometry"
)

// State 车辆连续状态
type State struct {
	T     float64 // 时间（秒）
	X     float64 // x坐标（米）
	Y     float64 // y坐标（米）
	Theta float64 // 航向角（弧度）
	V     float64 // 速度（米/秒）
}

// Position 获取状态对应的平面坐标
func (s State) Position() geometry.Point {
	return geometry.Point{X: s.X, Y: s.Y}
}

func (s State) String() string {
	return fmt.Sprintf("State{t=%.3f, x=%.3f, y=%.3f, theta=%.3f, v=%.3f}", s.T, s.X, s.Y, s.Theta, s.V)
}

// Input 控制输入
type Input struct {
	A     float64 // 纵向加速度（米/秒²）
	Delta float64 // 前轮转角（弧度）
}

// Trajectory 按时间排列的状态序列
type Trajectory []State

// Last 获取轨迹最后一个状态，空轨迹panic
func (t Trajectory) Last() State {
	return t[len(t)-1]
}

// Model 动力学模型：在控制输入u下将状态x推进dt秒
type Model interface {
	Step(x State, u Input, dt float64) State
}

// Controller 控制律：根据当前状态给出控制输入
type Controller func(x State) Input

// Integrate 以细步长subDT积分动力学模型，返回粗步长边界上的采样
// 功能：在[x0.T, x0.T+horizon]区间内反复调用控制律与模型，返回起点与终点两个采样
// 参数：m-动力学模型，x0-初始状态，horizon-规划时长，subDT-积分步长，control-控制律
// 返回：轨迹（horizon<=0时只含起点）
// 说明：最后一个子步长取余量，保证终点时间恰好为x0.T+horizon
func Integrate(m Model, x0 State, horizon, subDT float64, control Controller) Trajectory {
	if horizon <= 0 {
		return Trajectory{x0}
	}
	if subDT <= 0 || subDT > horizon {
		subDT = horizon
	}
	n := int(math.Ceil(horizon/subDT - 1e-9))
	x := x0
	for i := 0; i < n; i++ {
		dt := subDT
		if i == n-1 {
			dt = horizon - float64(n-1)*subDT
		}
		x = m.Step(x, control(x), dt)
	}
	x.T = x0.T + horizon
	return Trajectory{x0, x}
}

// ConstantInput 返回保持u不变的控制律
func ConstantInput(u Input) Controller {
	return func(State) Input { return u }
}
