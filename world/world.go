// 仿真世界：在共享路网上推进多个智能体
package world

import (
	"fmt"
	"math"
	"sort"

	"git.fiblab.net/general/common/v2/parallel"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/mpsim/dynamic"
	"github.com/tsinghua-fib-lab/mpsim/entity"
	"github.com/tsinghua-fib-lab/mpsim/utils"
)

// World 仿真世界
// 功能：管理路网与智能体，生成观察快照并按步推进
// 说明：路网在World创建前完成构建，此后只读
type World struct {
	network entity.IRoadNetwork
	agents  map[int32]*Agent
	time    float64
}

// New 创建仿真世界
func New(n entity.IRoadNetwork) *World {
	return &World{
		network: n,
		agents:  make(map[int32]*Agent),
	}
}

// 路网
func (w *World) Network() entity.IRoadNetwork {
	return w.network
}

// 当前仿真时间
func (w *World) Time() float64 {
	return w.time
}

// SetTime 设置当前仿真时间（仅限初始化阶段）
func (w *World) SetTime(t float64) {
	w.time = t
}

// AddAgent 添加智能体，ID冲突时覆盖
func (w *World) AddAgent(a *Agent) {
	if _, ok := w.agents[a.id]; ok {
		log.Warnf("%v is overwritten", a)
	}
	w.agents[a.id] = a
}

// GetAgent 根据ID获取智能体，如果不存在则panic
func (w *World) GetAgent(id int32) *Agent {
	a, err := w.GetAgentOrError(id)
	if err != nil {
		log.Panic(err)
	}
	return a
}

// GetAgentOrError 根据ID获取智能体，如果不存在则返回错误
func (w *World) GetAgentOrError(id int32) (*Agent, error) {
	if a, ok := w.agents[id]; !ok {
		return nil, fmt.Errorf("no id %d in agent data", id)
	} else {
		return a, nil
	}
}

// AgentIDs 获取全部智能体ID（升序）
func (w *World) AgentIDs() []int32 {
	ids := lo.Keys(w.agents)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Observe 为指定的智能体生成观察快照，顺序与ids一致；ids为空时按ID升序观察全部智能体
func (w *World) Observe(ids ...int32) ([]*ObservedWorld, error) {
	agents, failed := utils.Find(w.agents, w.sortedAgents(), ids)
	if len(failed) > 0 {
		return nil, fmt.Errorf("observe: no id %v in agent data", failed)
	}
	return lo.Map(agents, func(a *Agent, _ int) *ObservedWorld { return w.observe(a) }), nil
}

func (w *World) sortedAgents() []*Agent {
	return lo.Map(w.AgentIDs(), func(id int32, _ int) *Agent { return w.agents[id] })
}

// Step 推进dt秒
// 功能：所有智能体基于同一时刻的快照并行决策与规划，再依次应用结果
// 参数：dt-步长
// 返回：规划失败的智能体ID到错误的映射，失败的智能体保持原状态，不影响其他智能体
// 算法说明：
// 1. prepare：为每个智能体生成快照
// 2. plan：并行调用各智能体的决策策略与行为模型
// 3. update：顺序应用规划结果，推进世界时间
func (w *World) Step(dt float64) map[int32]error {
	agents := w.sortedAgents()
	for _, a := range agents {
		a.snapshot = w.observe(a)
	}
	parallel.GoFor(agents, func(a *Agent) { a.plan(dt) })
	failed := make(map[int32]error)
	for _, a := range agents {
		if err := a.update(); err != nil {
			log.Warnf("%v keeps its state: %v", a, err)
			failed[a.id] = err
		}
	}
	w.time += dt
	return failed
}

// 按当前速度与航向匀速直行dt秒
func constantVelocity(x dynamic.State, dt float64) dynamic.State {
	return dynamic.State{
		T:     x.T + dt,
		X:     x.X + x.V*dt*math.Cos(x.Theta),
		Y:     x.Y + x.V*dt*math.Sin(x.Theta),
		Theta: x.Theta,
		V:     x.V,
	}
}
