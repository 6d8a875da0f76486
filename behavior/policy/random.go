// 外部决策策略：为运动基元库选择要激活的动作
package policy

import (
	"errors"
	"fmt"

	"github.com/tsinghua-fib-lab/mpsim/behavior"
	"github.com/tsinghua-fib-lab/mpsim/behavior/motionprimitives"
	"github.com/tsinghua-fib-lab/mpsim/entity"
	"github.com/tsinghua-fib-lab/mpsim/utils/randengine"
)

// 错误：当前场景下没有可行的动作
var ErrNoValidAction = errors.New("no valid action")

// Random 随机策略
// 功能：在当前场景下可行的动作中等概率选择一个
// 说明：每个智能体持有独立的Random，非线程安全
type Random struct {
	generator *randengine.Engine
	weights   map[behavior.MotionIdx]float64 // 动作权重，未列出的动作权重为1
}

// NewRandom 创建随机策略
// 参数：seed-随机数种子
func NewRandom(seed uint64) *Random {
	return &Random{generator: randengine.New(seed)}
}

// SetWeight 设置动作idx的选择权重，权重为0的动作不会被选中
func (r *Random) SetWeight(idx behavior.MotionIdx, w float64) {
	if r.weights == nil {
		r.weights = make(map[behavior.MotionIdx]float64)
	}
	r.weights[idx] = w
}

// Decide 为行为模型选择并激活一个动作
// 功能：宏动作库在ValidPrimitives中选择，原始控制量库在全部动作中选择
// 返回：行为模型类型不支持、没有可选动作时返回错误
func (r *Random) Decide(w entity.IObservedWorld, m behavior.IBehaviorModel) error {
	var candidates []behavior.MotionIdx
	var activate func(behavior.MotionIdx) error
	switch lib := m.(type) {
	case *motionprimitives.MacroActions:
		candidates = lib.ValidPrimitives(w)
		activate = lib.ActionToBehavior
	case *motionprimitives.ContinuousActions:
		for i := 0; i < lib.NumMotionPrimitives(); i++ {
			candidates = append(candidates, behavior.MotionIdx(i))
		}
		activate = lib.ActionToBehavior
	default:
		return fmt.Errorf("random policy: unsupported behavior model %T", m)
	}
	idx, err := r.choose(candidates)
	if err != nil {
		return fmt.Errorf("agent %d: %w", w.EgoID(), err)
	}
	log.Debugf("agent %d chooses action %d among %v", w.EgoID(), idx, candidates)
	return activate(idx)
}

func (r *Random) choose(candidates []behavior.MotionIdx) (behavior.MotionIdx, error) {
	weights := make([]float64, len(candidates))
	total := 0.
	for i, idx := range candidates {
		weights[i] = 1
		if w, ok := r.weights[idx]; ok {
			weights[i] = w
		}
		total += weights[i]
	}
	if total <= 0 {
		return 0, ErrNoValidAction
	}
	return candidates[r.generator.DiscreteDistribution(weights)], nil
}
