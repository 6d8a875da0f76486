package world

import (
	"errors"
	"fmt"

	"github.com/tsinghua-fib-lab/mpsim/behavior"
	"github.com/tsinghua-fib-lab/mpsim/dynamic"
	"github.com/tsinghua-fib-lab/mpsim/entity"
)

// 车辆默认长度（米）
const DefaultAgentLength = 4.5

var (
	// 错误：决策或规划过程中发生panic
	ErrPlanPanic = errors.New("panic during planning")
)

// Policy 决策策略：在规划前为行为模型选择要激活的动作
type Policy interface {
	Decide(w entity.IObservedWorld, m behavior.IBehaviorModel) error
}

// Agent 智能体（车辆）
// 功能：持有车辆状态、所在道路走廊、行为模型与决策策略
// 说明：behavior为nil的智能体不受控，按当前速度与航向匀速直行
type Agent struct {
	id           int32
	state        dynamic.State
	length       float64
	roadCorridor entity.IRoadCorridor
	behavior     behavior.IBehaviorModel
	policy       Policy

	// 单步临时变量，由prepare/plan写入，update消费

	snapshot *ObservedWorld
	planned  dynamic.Trajectory
	err      error

	lastErr error // 最近一次规划失败的原因，成功后清空
}

// NewAgent 创建智能体
// 参数：id-智能体ID，state-初始状态，rc-道路走廊（可以为nil）
func NewAgent(id int32, state dynamic.State, rc entity.IRoadCorridor) *Agent {
	return &Agent{
		id:           id,
		state:        state,
		length:       DefaultAgentLength,
		roadCorridor: rc,
	}
}

// SetBehavior 设置行为模型与决策策略，policy可以为nil
func (a *Agent) SetBehavior(m behavior.IBehaviorModel, policy Policy) {
	a.behavior = m
	a.policy = policy
}

// SetLength 设置车辆长度
func (a *Agent) SetLength(length float64) {
	a.length = length
}

func (a *Agent) String() string {
	return fmt.Sprintf("Agent %d", a.id)
}

// 获取智能体ID
func (a *Agent) ID() int32 {
	return a.id
}

// 获取当前状态
func (a *Agent) State() dynamic.State {
	return a.state
}

// 获取车辆长度
func (a *Agent) Length() float64 {
	return a.length
}

// 获取行为模型
func (a *Agent) Behavior() behavior.IBehaviorModel {
	return a.behavior
}

// 获取道路走廊
func (a *Agent) RoadCorridor() entity.IRoadCorridor {
	return a.roadCorridor
}

// LastError 最近一次规划失败的原因，最近一次规划成功时为nil
func (a *Agent) LastError() error {
	return a.lastErr
}

// plan 基于本步快照进行决策与规划，结果暂存到agent上
func (a *Agent) plan(dt float64) {
	a.planned, a.err = nil, nil
	defer func() {
		if r := recover(); r != nil {
			a.planned = nil
			a.err = fmt.Errorf("%v: %w: %v", a, ErrPlanPanic, r)
			log.Errorf("%v", a.err)
		}
	}()
	if a.behavior == nil {
		x := a.state
		a.planned = dynamic.Trajectory{x, constantVelocity(x, dt)}
		return
	}
	if a.policy != nil {
		if err := a.policy.Decide(a.snapshot, a.behavior); err != nil {
			a.err = fmt.Errorf("%v decide: %w", a, err)
			return
		}
	}
	traj, err := a.behavior.Plan(dt, a.snapshot)
	if err != nil {
		a.err = fmt.Errorf("%v plan: %w", a, err)
		return
	}
	if len(traj) == 0 {
		a.err = fmt.Errorf("%v plan: empty trajectory", a)
		return
	}
	a.planned = traj
}

// update 应用规划结果，失败时保持原状态
func (a *Agent) update() error {
	defer func() { a.snapshot, a.planned, a.err = nil, nil, nil }()
	a.lastErr = a.err
	if a.err != nil {
		return a.err
	}
	a.state = a.planned.Last()
	return nil
}
