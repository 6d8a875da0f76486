// 运动基元：带前提条件的参数化短时机动
package primitives

import (
	"fmt"

	"github.com/tsinghua-fib-lab/mpsim/dynamic"
	"github.com/tsinghua-fib-lab/mpsim/entity"
	"github.com/tsinghua-fib-lab/mpsim/entity/corridor"
	"github.com/tsinghua-fib-lab/mpsim/utils/config"
)

// 积分步长默认值（秒）
const defaultIntegrationTimeDelta = 0.05

// Kind 运动基元种类
type Kind int

const (
	KindConstAcceleration Kind = iota // 匀加速
	KindChangeToLeft                  // 向左换道
	KindChangeToRight                 // 向右换道
	KindGapKeeping                    // 跟车
)

func (k Kind) String() string {
	switch k {
	case KindConstAcceleration:
		return "const_acceleration"
	case KindChangeToLeft:
		return "change_to_left"
	case KindChangeToRight:
		return "change_to_right"
	case KindGapKeeping:
		return "gap_keeping"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind 将配置中的名称转换为运动基元种类
func ParseKind(name string) (Kind, error) {
	for _, k := range []Kind{KindConstAcceleration, KindChangeToLeft, KindChangeToRight, KindGapKeeping} {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown primitive kind %q", name)
}

// Primitive 运动基元
// 说明：运动基元在配置阶段创建，此后不可修改，可被多个运动基元库共享
type Primitive interface {
	fmt.Stringer
	// 运动基元种类
	Kind() Kind
	// 在观察到的场景与相邻车道走廊下，该机动是否可行
	IsPreConditionSatisfied(w entity.IObservedWorld, adj corridor.Adjacent) bool
	// 选择机动跟踪的目标车道走廊，可能为nil
	SelectTargetCorridor(w entity.IObservedWorld, adj corridor.Adjacent) entity.ILaneCorridor
	// 跟踪目标车道走廊规划deltaTime秒的轨迹
	Plan(deltaTime float64, w entity.IObservedWorld, target entity.ILaneCorridor) (dynamic.Trajectory, error)
}

// New 根据种类创建运动基元
// 参数：kind-种类，acc-机动期间的纵向加速度（跟车基元忽略该值），params-参数表，model-动力学模型
func New(kind Kind, acc float64, params *config.Params, model dynamic.Model) (Primitive, error) {
	switch kind {
	case KindConstAcceleration:
		return NewConstAcceleration(params, model, acc), nil
	case KindChangeToLeft:
		return NewChangeToLeft(params, model, acc), nil
	case KindChangeToRight:
		return NewChangeToRight(params, model, acc), nil
	case KindGapKeeping:
		return NewGapKeeping(params, model), nil
	default:
		return nil, fmt.Errorf("unknown primitive kind %v", kind)
	}
}

// base 各运动基元共用的积分部分
type base struct {
	model                dynamic.Model
	integrationTimeDelta float64
	lateral              purePursuit
}

func newBase(params *config.Params, model dynamic.Model) base {
	return base{
		model:                model,
		integrationTimeDelta: params.GetReal("integration_time_delta", defaultIntegrationTimeDelta),
		lateral:              newPurePursuit(params),
	}
}

// integrate 以纵向控制律与横向纯跟踪控制律积分动力学模型
// 参数：longitudinal-给定初始状态与当前状态，返回纵向加速度
func (b *base) integrate(
	deltaTime float64, w entity.IObservedWorld, target entity.ILaneCorridor,
	longitudinal func(x0, x dynamic.State) float64,
) dynamic.Trajectory {
	x0 := w.CurrentEgoState()
	return dynamic.Integrate(b.model, x0, deltaTime, b.integrationTimeDelta, func(x dynamic.State) dynamic.Input {
		return dynamic.Input{
			A:     longitudinal(x0, x),
			Delta: b.lateral.steer(x, target),
		}
	})
}
