package generation

import (
	"dungeonforge/catalog"
)

// paintZones walks the room graph breadth-first from the entrance,
// records each room's traversal depth, and assigns a difficulty zone via
// the configured depth bands. Special room types override the band
// result: the entrance and treasure rooms are always safe, puzzle rooms
// are always puzzle zones, and boss rooms are always elite.
func paintZones(graph *LevelGraph, policy catalog.ZonePolicy) {
	depths := make([]int, len(graph.Rooms))
	for i := range depths {
		depths[i] = -1
	}

	queue := []int{graph.StartID}
	depths[graph.StartID] = 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, next := range graph.Rooms[id].Adjacent {
			if depths[next] == -1 {
				depths[next] = depths[id] + 1
				queue = append(queue, next)
			}
		}
	}

	for _, room := range graph.Rooms {
		depth := depths[room.ID]
		if depth == -1 {
			// Unreachable room; the validator rejects the level, but paint
			// something sane so a partial inspection isn't misleading.
			depth = 0
		}
		room.Depth = depth

		switch {
		case room.ID == graph.StartID:
			room.Zone = "safe"
		case room.Type == RoomBoss:
			room.Zone = "elite"
		case room.Type == RoomTreasure:
			room.Zone = "safe"
		case room.Type == RoomPuzzle:
			room.Zone = "puzzle"
		default:
			room.Zone = policy.ZoneForDepth(depth)
		}
	}
}

// maxDepthRooms returns the ids of the rooms at the greatest traversal
// depth, in id order. Exit placement uses this so the way down is always
// as far from the entrance as the layout allows.
func maxDepthRooms(graph *LevelGraph) []int {
	maxDepth := 0
	for _, room := range graph.Rooms {
		if room.Depth > maxDepth {
			maxDepth = room.Depth
		}
	}
	var ids []int
	for _, room := range graph.Rooms {
		if room.Depth == maxDepth {
			ids = append(ids, room.ID)
		}
	}
	return ids
}
