package generation

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"dungeonforge/grid"
)

// validate runs the structural checks a level must pass before handoff:
// single connected room graph, tile-level reachability of every room and
// exit from the player start, no stacked spawns, and every hazard and
// feature on a floor tile its room actually owns.
func validate(g *grid.Grid, graph *LevelGraph, entries []SpawnEntry, start grid.Point) *ValidationError {
	if err := validateGraph(graph); err != nil {
		return err
	}
	if err := validateReachability(g, graph, entries, start); err != nil {
		return err
	}
	if err := validateEntries(g, graph, entries); err != nil {
		return err
	}
	return nil
}

// validateGraph checks that every room is reachable from the entrance
// through corridor edges alone.
func validateGraph(graph *LevelGraph) *ValidationError {
	if len(graph.Rooms) == 0 {
		return &ValidationError{Reason: "no rooms"}
	}
	seen := make([]bool, len(graph.Rooms))
	queue := []int{graph.StartID}
	seen[graph.StartID] = true
	count := 1
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, next := range graph.Rooms[id].Adjacent {
			if !seen[next] {
				seen[next] = true
				count++
				queue = append(queue, next)
			}
		}
	}
	if count != len(graph.Rooms) {
		return &ValidationError{
			Reason: fmt.Sprintf("room graph disconnected: %d of %d rooms reachable", count, len(graph.Rooms)),
		}
	}
	return nil
}

// validateReachability flood-fills walkable tiles from the player start
// and confirms every room center and every exit tile was reached. This
// catches carving accidents the graph check cannot see, like a pillar
// cluster sealing a corridor mouth.
func validateReachability(g *grid.Grid, graph *LevelGraph, entries []SpawnEntry, start grid.Point) *ValidationError {
	if !g.Tile(start.X, start.Y).Walkable() {
		return &ValidationError{Reason: "player start is not walkable"}
	}

	reached := mapset.New[grid.Point]()
	queue := []grid.Point{start}
	reached.Put(start)
	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]
		for _, d := range [4]grid.Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}} {
			next := grid.Point{X: pos.X + d.X, Y: pos.Y + d.Y}
			if !g.InBounds(next.X, next.Y) || reached.Has(next) {
				continue
			}
			if !g.Tile(next.X, next.Y).Walkable() {
				continue
			}
			reached.Put(next)
			queue = append(queue, next)
		}
	}

	for _, room := range graph.Rooms {
		if !roomReached(g, room, reached) {
			return &ValidationError{
				Reason: fmt.Sprintf("room %d (%s) unreachable from player start", room.ID, room.Type),
			}
		}
	}
	for _, e := range entries {
		if e.Kind == SpawnExit && !reached.Has(e.Pos) {
			return &ValidationError{
				Reason: fmt.Sprintf("exit at (%d,%d) unreachable from player start", e.Pos.X, e.Pos.Y),
			}
		}
	}
	return nil
}

// roomReached checks the room center first and falls back to scanning
// the room's owned tiles, since circular and irregular rooms may have an
// uncarved bounding-box center.
func roomReached(g *grid.Grid, room *Room, reached mapset.Set[grid.Point]) bool {
	if c := room.Center(); reached.Has(c) {
		return true
	}
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			if g.RoomAt(x, y) == room.ID && reached.Has(grid.Point{X: x, Y: y}) {
				return true
			}
		}
	}
	return false
}

// validateEntries rejects stacked spawns and hazard or feature markers
// that drifted off their room's tiles.
func validateEntries(g *grid.Grid, graph *LevelGraph, entries []SpawnEntry) *ValidationError {
	taken := mapset.New[grid.Point]()
	for _, e := range entries {
		if taken.Has(e.Pos) {
			return &ValidationError{
				Reason: fmt.Sprintf("stacked spawns at (%d,%d)", e.Pos.X, e.Pos.Y),
			}
		}
		taken.Put(e.Pos)

		if e.Kind == SpawnHazard || e.Kind == SpawnFeature {
			if g.RoomAt(e.Pos.X, e.Pos.Y) != e.RoomID {
				return &ValidationError{
					Reason: fmt.Sprintf("%s %q at (%d,%d) outside room %d", e.Kind, e.Name, e.Pos.X, e.Pos.Y, e.RoomID),
				}
			}
		}
		if !g.Tile(e.Pos.X, e.Pos.Y).Walkable() {
			return &ValidationError{
				Reason: fmt.Sprintf("%s %q placed on unwalkable tile (%d,%d)", e.Kind, e.Name, e.Pos.X, e.Pos.Y),
			}
		}
	}
	return nil
}
