package config

import (
	"fmt"

	"gopkg.in/yaml.v2"
)

// RuntimeConfig 运行时配置
// 功能：存储仿真运行时的配置信息
type RuntimeConfig struct {
	All Config  // 全部配置
	C   Control // 全局控制配置
	P   *Params // 规划器参数（不会为nil）
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：创建运行时配置对象，补全缺省值
// 参数：config-原始配置对象
// 返回：初始化的运行时配置指针
// 说明：未配置planner.params时使用空参数表，各模块按自身默认值工作
func NewRuntimeConfig(config Config) *RuntimeConfig {
	rc := &RuntimeConfig{}

	rc.All = config
	rc.C = config.Control
	rc.P = config.Planner.Params
	if rc.P == nil {
		rc.P = NewParams(nil)
	}
	return rc
}

// Parse 严格解析YAML配置
// 功能：将YAML数据解析为Config，未知字段视为错误
func Parse(data []byte) (Config, error) {
	var c Config
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if c.Control.Step.Interval <= 0 {
		return Config{}, fmt.Errorf("config: control.step.interval must be positive, got %v", c.Control.Step.Interval)
	}
	return c, nil
}
