// 行为模型：把观察到的场景转换为一段轨迹
package behavior

import (
	"errors"

	"github.com/tsinghua-fib-lab/mpsim/dynamic"
	"github.com/tsinghua-fib-lab/mpsim/entity"
)

var (
	// 错误：调用方违反前置条件，如激活了不存在的索引或尚未激活任何索引就规划
	ErrPreconditionViolation = errors.New("precondition violation")
	// 错误：选定的运动基元在规划时前提条件已不再成立（选择与规划之间场景发生了变化）
	ErrStaleSelection = errors.New("stale selection")
)

// MotionIdx 运动基元在库中的索引，按注册顺序从0开始分配，永不复用
type MotionIdx uint

// 行为模型
type IBehaviorModel interface {
	// 根据观察到的场景规划deltaTime秒的轨迹
	Plan(deltaTime float64, w entity.IObservedWorld) (dynamic.Trajectory, error)
	// 复制出状态相互独立的行为模型
	Clone() IBehaviorModel
}
