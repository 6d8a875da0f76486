package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/mpsim/utils/config"
)

const data = `
input:
  map:
    file: data/map.pb
control:
  step:
    start: 0
    total: 100
    interval: 0.1
planner:
  params:
    integration_time_delta: 0.01
    max_velocity: 25
    use_something: true
    horizon_steps: 3
  primitives:
    - kind: const_acceleration
      acceleration: -2.5
    - kind: gap_keeping
agents:
  - id: 7
    road_ids: [1, 2]
    lane_offset: 1
    s: 12.5
    v: 8
    seed: 42
`

func TestParse(t *testing.T) {
	c, err := config.Parse([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, "data/map.pb", c.Input.Map.File)
	assert.Equal(t, int32(100), c.Control.Step.Total)
	assert.InDelta(t, 0.1, c.Control.Step.Interval, 1e-12)
	require.Len(t, c.Planner.Primitives, 2)
	assert.InDelta(t, -2.5, c.Planner.Primitives[0].Acceleration, 1e-12)
	assert.Equal(t, "gap_keeping", c.Planner.Primitives[1].Kind)
	require.Len(t, c.Agents, 1)
	assert.Equal(t, config.AgentConfig{ID: 7, RoadIDs: []int32{1, 2}, LaneOffset: 1, S: 12.5, V: 8, Seed: 42}, c.Agents[0])

	p := config.NewRuntimeConfig(c).P
	assert.InDelta(t, 0.01, p.GetReal("integration_time_delta", 0.05), 1e-12)
	assert.InDelta(t, 25, p.GetReal("max_velocity", 30), 1e-12)
	assert.Equal(t, 3, p.GetInt("horizon_steps", 1))
	assert.True(t, p.GetBool("use_something", false))
	assert.Equal(t, []string{"horizon_steps", "integration_time_delta", "max_velocity", "use_something"}, p.Names())
}

func TestParseStrict(t *testing.T) {
	_, err := config.Parse([]byte("control:\n  step:\n    interval: 0.1\nunknown: 1\n"))
	assert.Error(t, err)
	_, err = config.Parse([]byte("control:\n  step:\n    interval: 0\n"))
	assert.Error(t, err)
}

func TestParamsDefaults(t *testing.T) {
	rc := config.NewRuntimeConfig(config.Config{})
	require.NotNil(t, rc.P)
	assert.InDelta(t, 0.05, rc.P.GetReal("integration_time_delta", 0.05), 1e-12)

	var nilParams *config.Params
	assert.Equal(t, 3, nilParams.GetInt("x", 3))

	p := config.NewParams(map[string]interface{}{"a": "text"})
	assert.InDelta(t, 1.5, p.GetReal("a", 1.5), 1e-12)
	assert.False(t, p.GetBool("a", false))
	p.SetReal("b", 2)
	p.SetInt("c", 4)
	p.SetBool("d", true)
	assert.InDelta(t, 2, p.GetReal("b", 0), 1e-12)
	assert.Equal(t, 4, p.GetInt("c", 0))
	assert.True(t, p.GetBool("d", false))
}
