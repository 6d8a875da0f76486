package task

import (
	"flag"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

// prepare 准备阶段，每步执行一次
// 功能：推进时钟并定期输出心跳日志
func (ctx *Context) prepare() {
	ctx.clock.Tick()
	if *heartBeatInterval > 0 && ctx.clock.InternalStep%int32(*heartBeatInterval) == 0 {
		hour, minute, second := ctx.clock.GetHourMinuteSecond()
		log.Infof(
			"STEP: %d(%d:%d:%.2f) agents: %d",
			ctx.clock.InternalStep,
			hour, minute, second,
			len(ctx.world.AgentIDs()),
		)
	}
}

// update 更新阶段，每步执行一次
// 功能：推进世界一步，并为每个智能体计算安全距离标签
// 算法说明：
// 1. 世界推进：所有智能体并行决策与规划，失败的智能体保持原状态
// 2. 安全标签：基于推进后的快照计算safe_distance标签，送入G safe_distance监视器
func (ctx *Context) update() {
	failed := ctx.world.Step(ctx.clock.DT)
	for id, err := range failed {
		log.Debugf("step %d: agent %d: %v", ctx.clock.InternalStep, id, err)
	}
	observed, err := ctx.world.Observe()
	if err != nil {
		log.Panicf("step %d: %v", ctx.clock.InternalStep, err)
	}
	for _, o := range observed {
		label := ctx.safeDistance.Evaluate(o)
		log.Tracef("%v", label)
		ctx.monitor.Update(label)
	}
}

// Run 运行至结束步或收到关闭指令
func (ctx *Context) Run() {
	log.Infof("job %s start at step %d", ctx.job, ctx.clock.InternalStep)
	for !ctx.clock.Done() && !ctx.closed.Load() {
		ctx.update()
		ctx.prepare()
	}
	log.Infof("engine complete at %v, safe_distance violations: %v", ctx.clock, ctx.monitor.Violations())
}
