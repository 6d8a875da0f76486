package primitives

import (
	"fmt"

	"github.com/tsinghua-fib-lab/mpsim/behavior"
	"github.com/tsinghua-fib-lab/mpsim/dynamic"
	"github.com/tsinghua-fib-lab/mpsim/entity"
	"github.com/tsinghua-fib-lab/mpsim/entity/corridor"
	"github.com/tsinghua-fib-lab/mpsim/utils/config"
)

// LaneChange 换道基元：以固定加速度向左或向右相邻车道走廊换道
type LaneChange struct {
	base
	side         int // entity.LEFT或entity.RIGHT
	acceleration float64
}

// NewChangeToLeft 创建向左换道基元
func NewChangeToLeft(params *config.Params, model dynamic.Model, acc float64) *LaneChange {
	return &LaneChange{base: newBase(params, model), side: entity.LEFT, acceleration: acc}
}

// NewChangeToRight 创建向右换道基元
func NewChangeToRight(params *config.Params, model dynamic.Model, acc float64) *LaneChange {
	return &LaneChange{base: newBase(params, model), side: entity.RIGHT, acceleration: acc}
}

func (p *LaneChange) String() string {
	return fmt.Sprintf("LaneChange{%v, a=%v}", p.Kind(), p.acceleration)
}

func (p *LaneChange) Kind() Kind {
	if p.side == entity.LEFT {
		return KindChangeToLeft
	}
	return KindChangeToRight
}

// IsPreConditionSatisfied 对应方向存在相邻车道走廊
func (p *LaneChange) IsPreConditionSatisfied(w entity.IObservedWorld, adj corridor.Adjacent) bool {
	return p.SelectTargetCorridor(w, adj) != nil
}

func (p *LaneChange) SelectTargetCorridor(_ entity.IObservedWorld, adj corridor.Adjacent) entity.ILaneCorridor {
	if p.side == entity.LEFT {
		return adj.Left
	}
	return adj.Right
}

func (p *LaneChange) Plan(
	deltaTime float64, w entity.IObservedWorld, target entity.ILaneCorridor,
) (dynamic.Trajectory, error) {
	if target == nil {
		log.Debugf("%v: agent %d has no target corridor", p, w.EgoID())
		return nil, fmt.Errorf("%v: no target corridor: %w", p, behavior.ErrPreconditionViolation)
	}
	return p.integrate(deltaTime, w, target, func(_, _ dynamic.State) float64 {
		return p.acceleration
	}), nil
}
