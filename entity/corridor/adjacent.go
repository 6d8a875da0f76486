package corridor

import "github.com/tsinghua-fib-lab/mpsim/entity"

// Adjacent 本车当前车道走廊及其左右相邻车道走廊，nil表示不存在
// 说明：每个规划步重新计算，不做缓存
type Adjacent struct {
	Current entity.ILaneCorridor
	Left    entity.ILaneCorridor
	Right   entity.ILaneCorridor
}

// Resolve 根据观察到的场景计算相邻车道走廊
// 功能：Current取本车所在车道走廊，Left/Right由道路走廊按本车位置查询
// 说明：没有道路走廊时只填充Current（可能为nil），从不返回错误
func Resolve(w entity.IObservedWorld) Adjacent {
	adj := Adjacent{Current: w.LaneCorridor()}
	if rc := w.RoadCorridor(); rc != nil {
		adj.Left, adj.Right = rc.LeftRightLaneCorridor(w.CurrentEgoPosition())
	}
	return adj
}
