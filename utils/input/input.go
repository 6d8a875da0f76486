package input

import (
	"fmt"

	"git.fiblab.net/general/common/v2/protoutil"
	mapv2 "git.fiblab.net/sim/protos/v2/go/city/map/v2"
	"github.com/tsinghua-fib-lab/mpsim/utils/config"
	"google.golang.org/protobuf/proto"
)

// Input 输入数据
// 功能：存储仿真所需的输入数据
type Input struct {
	Map *mapv2.Map
}

// Init 加载数据
// 功能：根据配置从文件加载protobuf序列化的地图
// 参数：c-配置对象
// 返回：加载完成的输入数据
func Init(c config.Config) (*Input, error) {
	if c.Input.Map.File == "" {
		return nil, fmt.Errorf("input: input.map.file must be specified")
	}
	var m mapv2.Map
	if err := protoutil.UnmarshalFromFile(&m, c.Input.Map.File); err != nil {
		return nil, fmt.Errorf("input: failed to load map from file %s: %w", c.Input.Map.File, err)
	}
	log.Infof("load map from %s", c.Input.Map.File)
	return &Input{Map: &m}, nil
}

// FromBytes 从protobuf序列化数据加载地图
func FromBytes(data []byte) (*Input, error) {
	var m mapv2.Map
	if err := proto.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("input: failed to unmarshal map: %w", err)
	}
	return &Input{Map: &m}, nil
}
