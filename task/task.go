package task

import (
	"fmt"
	"sync/atomic"

	"github.com/tsinghua-fib-lab/mpsim/behavior/motionprimitives"
	"github.com/tsinghua-fib-lab/mpsim/behavior/policy"
	"github.com/tsinghua-fib-lab/mpsim/behavior/primitives"
	"github.com/tsinghua-fib-lab/mpsim/clock"
	"github.com/tsinghua-fib-lab/mpsim/dynamic"
	"github.com/tsinghua-fib-lab/mpsim/entity"
	"github.com/tsinghua-fib-lab/mpsim/entity/corridor"
	"github.com/tsinghua-fib-lab/mpsim/evaluation"
	"github.com/tsinghua-fib-lab/mpsim/utils/config"
	"github.com/tsinghua-fib-lab/mpsim/utils/input"
	"github.com/tsinghua-fib-lab/mpsim/world"
)

// 未配置planner.primitives时使用的运动基元
var defaultPrimitives = []config.PrimitiveConfig{
	{Kind: primitives.KindConstAcceleration.String(), Acceleration: 0},
	{Kind: primitives.KindConstAcceleration.String(), Acceleration: 1},
	{Kind: primitives.KindConstAcceleration.String(), Acceleration: -1},
	{Kind: primitives.KindChangeToLeft.String()},
	{Kind: primitives.KindChangeToRight.String()},
	{Kind: primitives.KindGapKeeping.String()},
}

// Context 仿真任务上下文
// 功能：包含一次仿真任务的所有变量和状态
type Context struct {
	// 任务名
	job string
	// 关闭指令
	closed atomic.Bool

	// 时钟
	clock *clock.Clock
	// 运行时配置文件
	runtimeConfig *config.RuntimeConfig

	// 路网
	network entity.IRoadNetwork
	// 仿真世界
	world *world.World
	// 动力学模型，所有智能体共享
	model dynamic.Model
	// 运动基元，所有智能体共享
	primitives []primitives.Primitive

	// 安全距离标签
	safeDistance *evaluation.SafeDistance
	// G safe_distance 监视器
	monitor *evaluation.Globally
}

// NewContext 创建新的仿真任务上下文
// 功能：根据配置与输入数据构建路网、运动基元与智能体
// 参数：job-任务名称，c-配置对象，in-输入数据
// 返回：初始化完成的Context实例
// 算法说明：
// 1. 初始化时钟与运行时配置
// 2. 由地图构建路网
// 3. 按配置创建共享的动力学模型与运动基元
// 4. 为每个智能体创建独立的宏动作库与随机策略
func NewContext(job string, c config.Config, in *input.Input) (*Context, error) {
	ctx := &Context{
		job:           job,
		clock:         clock.New(c.Control.Step),
		runtimeConfig: config.NewRuntimeConfig(c),
	}
	params := ctx.runtimeConfig.P

	n, err := in.BuildNetwork()
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", job, err)
	}
	ctx.network = n
	if b, err := n.BoundingBox(); err != nil {
		log.Warnf("map bounding box: %v", err)
	} else {
		log.Infof("map bounding box: %v - %v", b.Min, b.Max)
	}

	ctx.model = dynamic.NewSingleTrack(params)
	pcs := c.Planner.Primitives
	if len(pcs) == 0 {
		pcs = defaultPrimitives
	}
	for _, pc := range pcs {
		kind, err := primitives.ParseKind(pc.Kind)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", job, err)
		}
		p, err := primitives.New(kind, pc.Acceleration, params, ctx.model)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", job, err)
		}
		ctx.primitives = append(ctx.primitives, p)
	}

	ctx.world = world.New(n)
	ctx.world.SetTime(ctx.clock.T)
	for _, ac := range c.Agents {
		a, err := ctx.newAgent(ac)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", job, err)
		}
		ctx.world.AddAgent(a)
	}

	ctx.safeDistance = evaluation.NewSafeDistance(params)
	ctx.monitor = evaluation.NewGlobally(evaluation.SafeDistanceLabel)
	return ctx, nil
}

// newAgent 根据配置创建智能体
// 算法说明：智能体位于道路走廊中第LaneOffset条车道走廊的s处，航向与走廊切向一致
func (ctx *Context) newAgent(ac config.AgentConfig) (*world.Agent, error) {
	rc, err := corridor.NewRoadCorridor(ctx.network, ac.RoadIDs)
	if err != nil {
		return nil, fmt.Errorf("agent %d: %w", ac.ID, err)
	}
	lcs := rc.LaneCorridors()
	if ac.LaneOffset < 0 || ac.LaneOffset >= len(lcs) {
		return nil, fmt.Errorf("agent %d: lane offset %d out of range [0, %d)", ac.ID, ac.LaneOffset, len(lcs))
	}
	lc := lcs[ac.LaneOffset]
	pos := lc.GetPositionByS(ac.S)
	state := dynamic.State{
		T:     ctx.clock.T,
		X:     pos.X,
		Y:     pos.Y,
		Theta: lc.GetDirectionByS(ac.S),
		V:     ac.V,
	}
	a := world.NewAgent(ac.ID, state, rc)
	a.SetBehavior(motionprimitives.NewMacroActions(ctx.primitives...), policy.NewRandom(ac.Seed))
	return a, nil
}

func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

func (ctx *Context) Network() entity.IRoadNetwork {
	return ctx.network
}

func (ctx *Context) World() *world.World {
	return ctx.world
}

// Violations 违反安全距离性质的智能体及其第一次违反的时刻
func (ctx *Context) Violations() map[int32]float64 {
	return ctx.monitor.Violations()
}

// Close 请求在当前步结束后停止运行
func (ctx *Context) Close() {
	ctx.closed.Store(true)
}
