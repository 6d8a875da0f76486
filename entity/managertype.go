package entity

// Manager依赖倒置

// entity/network/network.go的依赖倒置
type IRoadNetwork interface {
	// 输入Road ID，查找Road，如果不存在则panic
	GetRoad(id int32) IRoad
	// 输入Road ID，查找Road，如果不存在则返回error
	GetRoadOrError(id int32) (IRoad, error)
	// 输入Lane ID，查找Lane，如果不存在则panic
	GetLane(id int32) ILane
	// 输入Lane ID，查找Lane，如果不存在则返回error
	GetLaneOrError(id int32) (ILane, error)
	// 输入Junction ID，查找Junction，如果不存在则panic
	GetJunction(id int32) IJunction
	// 输入Junction ID，查找Junction，如果不存在则返回error
	GetJunctionOrError(id int32) (IJunction, error)

	GetRoads() map[int32]IRoad         // 全部Road（副本）
	GetLanes() map[int32]ILane         // 全部Lane（副本）
	GetJunctions() map[int32]IJunction // 全部Junction（副本）
}
