package config

import (
	"fmt"
	"sort"
)

// Params 命名参数表，提供带默认值的实数/整数/布尔参数查询
// 功能：作为规划器、动力学模型、运动基元的统一参数来源
// 说明：配置阶段写入，仿真开始后只读，因此不加锁
type Params struct {
	values map[string]interface{}
}

// NewParams 根据已有的键值对创建参数表
func NewParams(values map[string]interface{}) *Params {
	p := &Params{values: make(map[string]interface{}, len(values))}
	for k, v := range values {
		p.values[k] = v
	}
	return p
}

// UnmarshalYAML 实现yaml.v2的Unmarshaler接口
func (p *Params) UnmarshalYAML(unmarshal func(interface{}) error) error {
	values := make(map[string]interface{})
	if err := unmarshal(&values); err != nil {
		return fmt.Errorf("params: %w", err)
	}
	p.values = values
	return nil
}

// GetReal 获取实数参数，不存在时返回默认值
// 说明：YAML中写成整数的值（如1）同样可以按实数读取
func (p *Params) GetReal(name string, def float64) float64 {
	v, ok := p.lookup(name)
	if !ok {
		return def
	}
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	default:
		log.Warnf("param %s=%v is not a real number, use default %v", name, v, def)
		return def
	}
}

// GetInt 获取整数参数，不存在时返回默认值
func (p *Params) GetInt(name string, def int) int {
	v, ok := p.lookup(name)
	if !ok {
		return def
	}
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	default:
		log.Warnf("param %s=%v is not an integer, use default %v", name, v, def)
		return def
	}
}

// GetBool 获取布尔参数，不存在时返回默认值
func (p *Params) GetBool(name string, def bool) bool {
	v, ok := p.lookup(name)
	if !ok {
		return def
	}
	if x, ok := v.(bool); ok {
		return x
	}
	log.Warnf("param %s=%v is not a bool, use default %v", name, v, def)
	return def
}

// SetReal 设置实数参数（仅限配置阶段）
func (p *Params) SetReal(name string, v float64) {
	p.set(name, v)
}

// SetInt 设置整数参数（仅限配置阶段）
func (p *Params) SetInt(name string, v int) {
	p.set(name, v)
}

// SetBool 设置布尔参数（仅限配置阶段）
func (p *Params) SetBool(name string, v bool) {
	p.set(name, v)
}

// Names 按字典序返回所有已设置的参数名
func (p *Params) Names() []string {
	if p == nil {
		return nil
	}
	names := make([]string, 0, len(p.values))
	for k := range p.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (p *Params) lookup(name string) (interface{}, bool) {
	if p == nil || p.values == nil {
		return nil, false
	}
	v, ok := p.values[name]
	return v, ok
}

func (p *Params) set(name string, v interface{}) {
	if p.values == nil {
		p.values = make(map[string]interface{})
	}
	p.values[name] = v
}
