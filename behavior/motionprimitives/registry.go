// 运动基元库：按索引注册动作，激活其中之一并据此规划轨迹
package motionprimitives

import "github.com/tsinghua-fib-lab/mpsim/behavior"

// registry 只追加的注册表，索引即注册顺序
// 说明：克隆时共享底层数组，副本的容量被截断为长度，任何一方追加都不会改写另一方可见的元素
type registry[T any] []T

func (r *registry[T]) add(item T) behavior.MotionIdx {
	*r = append(*r, item)
	return behavior.MotionIdx(len(*r) - 1)
}

func (r registry[T]) get(idx behavior.MotionIdx) (item T, ok bool) {
	if idx >= behavior.MotionIdx(len(r)) {
		return
	}
	return r[idx], true
}

// share 返回与r共享底层数组的副本
func (r registry[T]) share() registry[T] {
	return r[:len(r):len(r)]
}

// items 返回注册表内容的拷贝
func (r registry[T]) items() []T {
	return append([]T(nil), r...)
}

// activeSlot 当前激活的动作索引
type activeSlot struct {
	idx behavior.MotionIdx
	set bool
}

// activate 检查索引范围后返回新的激活状态
func activate(size int, idx behavior.MotionIdx) (activeSlot, error) {
	if idx >= behavior.MotionIdx(size) {
		return activeSlot{}, indexError(idx, size)
	}
	return activeSlot{idx: idx, set: true}, nil
}
