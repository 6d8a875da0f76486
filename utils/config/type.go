package config

// InputPath 指定输入数据来源的配置（文件系统）
// 功能：定义数据输入路径的配置结构
type InputPath struct {
	File string `yaml:"file"` // protobuf序列化的地图文件路径
}

// Input 指定模拟器所有输入数据的配置项
type Input struct {
	Map InputPath `yaml:"map"` // 地图
}

// ControlStep 指定模拟器模拟时间范围和间隔的配置项
// 功能：定义仿真时间控制参数
// 说明：控制仿真的时间范围、步长和精度
type ControlStep struct {
	Start    int32   `yaml:"start"`    // 开始步数
	Total    int32   `yaml:"total"`    // 总步数
	Interval float64 `yaml:"interval"` // 每步的时间间隔
}

// Control 模拟器控制配置
type Control struct {
	Step ControlStep `yaml:"step"`
}

// PrimitiveConfig 单个运动基元的配置
// 说明：Kind可选 const_acceleration / change_to_left / change_to_right / gap_keeping
type PrimitiveConfig struct {
	Kind         string  `yaml:"kind"`
	Acceleration float64 `yaml:"acceleration,omitempty"` // 纵向加速度（米/秒²），gap_keeping忽略该项
}

// Planner 行为规划器配置
type Planner struct {
	Params     *Params           `yaml:"params,omitempty"` // 命名参数表
	Primitives []PrimitiveConfig `yaml:"primitives"`       // 按注册顺序排列的运动基元
}

// AgentConfig 智能体初始状态配置
// 功能：指定智能体所在的道路序列、车道偏移、初始位置与速度
type AgentConfig struct {
	ID         int32   `yaml:"id"`
	RoadIDs    []int32 `yaml:"road_ids"`    // 行驶经过的道路序列
	LaneOffset int     `yaml:"lane_offset"` // 所在车道在道路中的偏移量，最左侧为0
	S          float64 `yaml:"s"`           // 在车道走廊上的初始s坐标
	V          float64 `yaml:"v"`           // 初始速度
	Seed       uint64  `yaml:"seed"`        // 动作选择策略的随机数种子
}

// Config YAML配置文件的根结构
// 功能：定义整个仿真系统的配置结构
// 说明：包含输入、控制、规划器、智能体等所有配置项
type Config struct {
	Input   Input         `yaml:"input"`   // 输入
	Control Control       `yaml:"control"` // 模拟过程控制
	Planner Planner       `yaml:"planner"` // 行为规划器
	Agents  []AgentConfig `yaml:"agents"`  // 智能体
}
