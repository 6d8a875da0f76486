// 安全标签：为外部时序逻辑监视器提供逐步的布尔标签
package evaluation

import (
	"fmt"
	"math"

	"github.com/tsinghua-fib-lab/mpsim/entity"
	"github.com/tsinghua-fib-lab/mpsim/utils/config"
)

// 安全距离标签名
const SafeDistanceLabel = "safe_distance"

const (
	defaultReactionTime = 1.0   // 反应时间（秒）
	defaultDecelFront   = -7.84 // 前车最大减速度（米/秒²）
	defaultDecelEgo     = -7.84 // 本车最大减速度（米/秒²）
)

// Label 某个智能体在某一时刻的布尔标签
type Label struct {
	AgentID int32
	Time    float64
	Name    string
	Value   bool
}

func (l Label) String() string {
	return fmt.Sprintf("%s(agent=%d, t=%.2f)=%v", l.Name, l.AgentID, l.Time, l.Value)
}

// SafeDistance 安全距离标签
// 功能：判断本车与同车道前车的车距是否不小于安全距离
// 算法说明：
// 安全距离 d_safe = v_ego*t_r + v_ego²/(2|a_ego|) - v_front²/(2|a_front|)
// 即前车以最大减速度刹停、本车经过反应时间后以最大减速度刹停时两车不相撞
// 没有前车时标签为true
type SafeDistance struct {
	reactionTime float64
	decelFront   float64
	decelEgo     float64
}

// NewSafeDistance 创建安全距离标签
// 参数：params-参数表，读取safe_distance_reaction_time、safe_distance_decel_front、safe_distance_decel_ego
func NewSafeDistance(params *config.Params) *SafeDistance {
	return &SafeDistance{
		reactionTime: params.GetReal("safe_distance_reaction_time", defaultReactionTime),
		decelFront:   -math.Abs(params.GetReal("safe_distance_decel_front", defaultDecelFront)),
		decelEgo:     -math.Abs(params.GetReal("safe_distance_decel_ego", defaultDecelEgo)),
	}
}

// MinDistance 本车速度为vEgo、前车速度为vFront时的安全距离
func (e *SafeDistance) MinDistance(vEgo, vFront float64) float64 {
	return vEgo*e.reactionTime + vEgo*vEgo/(2*-e.decelEgo) - vFront*vFront/(2*-e.decelFront)
}

// Evaluate 计算ego在快照w中的安全距离标签
func (e *SafeDistance) Evaluate(w entity.IObservedWorld) Label {
	label := Label{AgentID: w.EgoID(), Time: w.WorldTime(), Name: SafeDistanceLabel, Value: true}
	front, ok := w.FrontAgent()
	if !ok {
		return label
	}
	label.Value = front.Distance >= e.MinDistance(w.CurrentEgoState().V, front.V)
	return label
}

// Globally 对单个标签的全局（G）性质的在线监视
// 功能：记录每个智能体第一次违反的时刻
type Globally struct {
	name      string
	violation map[int32]float64
}

// NewGlobally 创建G name的监视器
func NewGlobally(name string) *Globally {
	return &Globally{name: name, violation: make(map[int32]float64)}
}

// Update 输入一个标签，返回该智能体的性质是否仍然成立
func (g *Globally) Update(l Label) bool {
	if l.Name != g.name {
		return g.Holds(l.AgentID)
	}
	if _, ok := g.violation[l.AgentID]; !ok && !l.Value {
		log.Infof("G %s violated by agent %d at t=%.2f", g.name, l.AgentID, l.Time)
		g.violation[l.AgentID] = l.Time
	}
	return g.Holds(l.AgentID)
}

// Holds 该智能体的性质是否仍然成立
func (g *Globally) Holds(agentID int32) bool {
	_, violated := g.violation[agentID]
	return !violated
}

// Violations 违反性质的智能体及其第一次违反的时刻
func (g *Globally) Violations() map[int32]float64 {
	res := make(map[int32]float64, len(g.violation))
	for id, t := range g.violation {
		res[id] = t
	}
	return res
}
