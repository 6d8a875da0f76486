package input_test

import (
	"os"
	"path/filepath"
	"testing"

	geov2 "git.fiblab.net/sim/protos/v2/go/city/geo/v2"
	mapv2 "git.fiblab.net/sim/protos/v2/go/city/map/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/mpsim/entity/network"
	"github.com/tsinghua-fib-lab/mpsim/utils/config"
	"github.com/tsinghua-fib-lab/mpsim/utils/input"
	"google.golang.org/protobuf/proto"
)

func pbLane(id int32, y float64) *mapv2.Lane {
	return &mapv2.Lane{
		Id:    id,
		Type:  mapv2.LaneType_LANE_TYPE_DRIVING,
		Width: 3.5,
		CenterLine: &geov2.Polyline{Nodes: []*geov2.XYPosition{
			{X: 0, Y: y},
			{X: 100, Y: y},
		}},
	}
}

func testMap() *mapv2.Map {
	return &mapv2.Map{
		Lanes: []*mapv2.Lane{pbLane(1, 3.5), pbLane(2, 0), pbLane(3, -10)},
		Roads: []*mapv2.Road{{Id: 100, Name: "main", LaneIds: []int32{1, 2}}},
		Junctions: []*mapv2.Junction{{
			Id:      200,
			LaneIds: []int32{3},
			DrivingLaneGroups: []*mapv2.JunctionLaneGroup{
				{InRoadId: 100, OutRoadId: 101, LaneIds: []int32{3}},
			},
		}},
	}
}

func TestBuildNetwork(t *testing.T) {
	data, err := proto.Marshal(testMap())
	require.NoError(t, err)
	in, err := input.FromBytes(data)
	require.NoError(t, err)

	n, err := in.BuildNetwork()
	require.NoError(t, err)
	assert.Len(t, n.GetRoads(), 1)
	assert.Len(t, n.GetLanes(), 2)
	assert.Equal(t, []int32{1, 2}, n.GetRoad(100).LaneIDs())
	assert.Equal(t, 1, n.GetLane(2).OffsetInRoad())
	assert.Equal(t, []int32{100, 101}, n.GetJunction(200).ConnectedRoadIDs())
	_, err = n.GetLaneOrError(3)
	assert.ErrorIs(t, err, network.ErrPreconditionViolation)

	b, err := n.BoundingBox()
	require.NoError(t, err)
	assert.InDelta(t, 100, b.Max[0], 1e-9)
	assert.InDelta(t, 3.5, b.Max[1], 1e-9)
}

func TestBuildNetworkMissingLane(t *testing.T) {
	m := testMap()
	m.Roads[0].LaneIds = append(m.Roads[0].LaneIds, 42)
	_, err := (&input.Input{Map: m}).BuildNetwork()
	assert.Error(t, err)
}

func TestBuildNetworkMalformedCenterLine(t *testing.T) {
	m := testMap()
	m.Lanes[0].CenterLine = nil
	var err error
	require.NotPanics(t, func() { _, err = (&input.Input{Map: m}).BuildNetwork() })
	assert.Error(t, err)

	m = testMap()
	m.Lanes[1].CenterLine.Nodes = m.Lanes[1].CenterLine.Nodes[:1]
	require.NotPanics(t, func() { _, err = (&input.Input{Map: m}).BuildNetwork() })
	assert.Error(t, err)
}

func TestInitFromFile(t *testing.T) {
	data, err := proto.Marshal(testMap())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "map.pb")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	in, err := input.Init(config.Config{Input: config.Input{Map: config.InputPath{File: path}}})
	require.NoError(t, err)
	assert.Len(t, in.Map.Lanes, 3)

	_, err = input.Init(config.Config{})
	assert.Error(t, err)
}
