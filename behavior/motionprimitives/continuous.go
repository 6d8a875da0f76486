package motionprimitives

import (
	"github.com/tsinghua-fib-lab/mpsim/behavior"
	"github.com/tsinghua-fib-lab/mpsim/dynamic"
	"github.com/tsinghua-fib-lab/mpsim/entity"
	"github.com/tsinghua-fib-lab/mpsim/utils/config"
)

// 积分步长默认值（秒）
const defaultIntegrationTimeDelta = 0.05

// ContinuousActions 原始控制量运动基元库
// 功能：每个动作是一组恒定的控制输入，规划时在整个时域内保持该输入并积分动力学模型
type ContinuousActions struct {
	model                dynamic.Model
	integrationTimeDelta float64

	inputs registry[dynamic.Input]
	active activeSlot
}

var _ behavior.IBehaviorModel = (*ContinuousActions)(nil)

// NewContinuousActions 创建原始控制量运动基元库
// 参数：model-动力学模型，params-参数表，读取integration_time_delta
func NewContinuousActions(model dynamic.Model, params *config.Params) *ContinuousActions {
	return &ContinuousActions{
		model:                model,
		integrationTimeDelta: params.GetReal("integration_time_delta", defaultIntegrationTimeDelta),
	}
}

// AddMotionPrimitive 注册控制输入，返回其索引
func (m *ContinuousActions) AddMotionPrimitive(u dynamic.Input) behavior.MotionIdx {
	return m.inputs.add(u)
}

// NumMotionPrimitives 已注册的动作数量
func (m *ContinuousActions) NumMotionPrimitives() int {
	return len(m.inputs)
}

// MotionPrimitives 已注册的控制输入（拷贝）
func (m *ContinuousActions) MotionPrimitives() []dynamic.Input {
	return m.inputs.items()
}

// ActionToBehavior 激活索引idx对应的动作
// 返回：idx超出范围时返回ErrPreconditionViolation，且激活状态不变
func (m *ContinuousActions) ActionToBehavior(idx behavior.MotionIdx) error {
	active, err := activate(len(m.inputs), idx)
	if err != nil {
		return err
	}
	m.active = active
	return nil
}

// ActiveMotion 当前激活的动作索引
func (m *ContinuousActions) ActiveMotion() (behavior.MotionIdx, bool) {
	return m.active.idx, m.active.set
}

// Plan 在deltaTime时域内保持激活的控制输入不变，以细步长积分动力学模型
// 返回：时域起点与终点两个采样组成的轨迹
func (m *ContinuousActions) Plan(deltaTime float64, w entity.IObservedWorld) (dynamic.Trajectory, error) {
	return planContinuous(m.model, m.integrationTimeDelta, m.inputs, m.active, deltaTime, w)
}

// Clone 复制出共享注册表、激活状态独立的运动基元库
func (m *ContinuousActions) Clone() behavior.IBehaviorModel {
	c := *m
	c.inputs = m.inputs.share()
	return &c
}

func planContinuous(
	model dynamic.Model, subDT float64, inputs registry[dynamic.Input], active activeSlot,
	deltaTime float64, w entity.IObservedWorld,
) (dynamic.Trajectory, error) {
	if !active.set {
		return nil, noActiveError()
	}
	u, ok := inputs.get(active.idx)
	if !ok {
		return nil, indexError(active.idx, len(inputs))
	}
	return dynamic.Integrate(model, w.CurrentEgoState(), deltaTime, subDT, dynamic.ConstantInput(u)), nil
}
