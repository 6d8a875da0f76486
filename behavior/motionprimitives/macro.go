package motionprimitives

import (
	"fmt"

	"github.com/tsinghua-fib-lab/mpsim/behavior"
	"github.com/tsinghua-fib-lab/mpsim/behavior/primitives"
	"github.com/tsinghua-fib-lab/mpsim/dynamic"
	"github.com/tsinghua-fib-lab/mpsim/entity"
	"github.com/tsinghua-fib-lab/mpsim/entity/corridor"
)

// MacroActions 宏动作运动基元库
// 功能：每个动作是一个带前提条件的运动基元，规划时委托给激活的运动基元
type MacroActions struct {
	primitives registry[primitives.Primitive]
	active     activeSlot

	targetCorridor entity.ILaneCorridor // 最近一次成功规划跟踪的车道走廊
}

var _ behavior.IBehaviorModel = (*MacroActions)(nil)

// NewMacroActions 创建宏动作运动基元库，按顺序注册给定的运动基元
func NewMacroActions(ps ...primitives.Primitive) *MacroActions {
	m := &MacroActions{}
	for _, p := range ps {
		m.AddMotionPrimitive(p)
	}
	return m
}

// AddMotionPrimitive 注册运动基元，返回其索引
func (m *MacroActions) AddMotionPrimitive(p primitives.Primitive) behavior.MotionIdx {
	return m.primitives.add(p)
}

// MotionPrimitives 已注册的运动基元（拷贝）
func (m *MacroActions) MotionPrimitives() []primitives.Primitive {
	return m.primitives.items()
}

// NumMotionPrimitives 在当前场景下前提条件成立的运动基元数量
func (m *MacroActions) NumMotionPrimitives(w entity.IObservedWorld) int {
	return len(m.ValidPrimitives(w))
}

// ValidPrimitives 在当前场景下前提条件成立的运动基元索引（升序）
// 说明：每次调用都重新计算相邻车道走廊与前提条件
func (m *MacroActions) ValidPrimitives(w entity.IObservedWorld) []behavior.MotionIdx {
	return validPrimitives(m.primitives, w, corridor.Resolve(w))
}

// ActionToBehavior 激活索引idx对应的运动基元
// 返回：idx超出范围时返回ErrPreconditionViolation，且激活状态不变
func (m *MacroActions) ActionToBehavior(idx behavior.MotionIdx) error {
	active, err := activate(len(m.primitives), idx)
	if err != nil {
		return err
	}
	m.active = active
	return nil
}

// ActiveMotion 当前激活的动作索引
func (m *MacroActions) ActiveMotion() (behavior.MotionIdx, bool) {
	return m.active.idx, m.active.set
}

// TargetCorridor 最近一次成功规划跟踪的车道走廊，可能为nil
func (m *MacroActions) TargetCorridor() entity.ILaneCorridor {
	return m.targetCorridor
}

// Plan 委托激活的运动基元规划轨迹
// 返回：未激活任何动作时返回ErrPreconditionViolation；激活的运动基元前提条件已不成立时返回ErrStaleSelection
// 说明：失败时库的状态不变
func (m *MacroActions) Plan(deltaTime float64, w entity.IObservedWorld) (dynamic.Trajectory, error) {
	traj, target, err := planMacro(m.primitives, m.active, deltaTime, w)
	if err != nil {
		return nil, err
	}
	m.targetCorridor = target
	return traj, nil
}

// Clone 复制出共享注册表、激活状态独立的运动基元库
func (m *MacroActions) Clone() behavior.IBehaviorModel {
	c := *m
	c.primitives = m.primitives.share()
	return &c
}

func validPrimitives(
	ps registry[primitives.Primitive], w entity.IObservedWorld, adj corridor.Adjacent,
) []behavior.MotionIdx {
	valid := make([]behavior.MotionIdx, 0, len(ps))
	for i, p := range ps {
		if p.IsPreConditionSatisfied(w, adj) {
			valid = append(valid, behavior.MotionIdx(i))
		}
	}
	return valid
}

func planMacro(
	ps registry[primitives.Primitive], active activeSlot, deltaTime float64, w entity.IObservedWorld,
) (dynamic.Trajectory, entity.ILaneCorridor, error) {
	if !active.set {
		return nil, nil, noActiveError()
	}
	p, ok := ps.get(active.idx)
	if !ok {
		return nil, nil, indexError(active.idx, len(ps))
	}
	adj := corridor.Resolve(w)
	if !p.IsPreConditionSatisfied(w, adj) {
		log.Debugf("agent %d: %v no longer applicable at t=%v", w.EgoID(), p, w.WorldTime())
		return nil, nil, fmt.Errorf("%v for agent %d: %w", p, w.EgoID(), behavior.ErrStaleSelection)
	}
	target := p.SelectTargetCorridor(w, adj)
	traj, err := p.Plan(deltaTime, w, target)
	if err != nil {
		return nil, nil, fmt.Errorf("%v for agent %d: %w", p, w.EgoID(), err)
	}
	return traj, target, nil
}
