package generation

import (
	"log/slog"
	"math/rand"

	"dungeonforge/catalog"
	"dungeonforge/grid"
)

// builder carves rooms and corridors into a grid and produces the level
// graph. One builder lives for one generation attempt.
type builder struct {
	rng   *rand.Rand
	cfg   *catalog.Config
	log   *slog.Logger
	level int
}

// roomMargin is the minimum wall thickness kept between two rooms.
const roomMargin = 1

// build places up to sc.RoomTarget rooms, connects them into a single
// component, and injects a bounded number of loop edges. It returns the
// graph and a partial flag set when the target count was unreachable
// within the attempt budget.
func (b *builder) build(g *grid.Grid, sc Scale, theme catalog.ThemeDef) (*LevelGraph, bool) {
	graph := &LevelGraph{}

	// Attempt budget proportional to map area, so bigger maps get more
	// tries but a cramped grid cannot loop forever.
	maxAttempts := (g.Width * g.Height) / 6
	if maxAttempts < 50 {
		maxAttempts = 50
	}

	for attempt := 0; attempt < maxAttempts && len(graph.Rooms) < sc.RoomTarget; attempt++ {
		room := b.rollRoom(g, theme, len(graph.Rooms))
		if room == nil {
			continue
		}
		if b.overlapsAny(room, graph.Rooms) {
			continue
		}
		room.ID = len(graph.Rooms)
		b.carveRoom(g, room, theme)
		graph.Rooms = append(graph.Rooms, room)
	}

	partial := len(graph.Rooms) < sc.RoomTarget
	if partial {
		b.log.Debug("room placement budget exhausted",
			"placed", len(graph.Rooms), "target", sc.RoomTarget)
	}
	if len(graph.Rooms) == 0 {
		// Degenerate grid: carve a single guaranteed room in the center.
		room := &Room{
			ID: 0, Type: RoomStandard,
			X: g.Width/2 - 2, Y: g.Height/2 - 2, Width: 5, Height: 5,
		}
		if room.X < 1 {
			room.X = 1
		}
		if room.Y < 1 {
			room.Y = 1
		}
		if room.X+room.Width >= g.Width {
			room.Width = g.Width - room.X - 1
		}
		if room.Y+room.Height >= g.Height {
			room.Height = g.Height - room.Y - 1
		}
		b.carveRoom(g, room, theme)
		graph.Rooms = append(graph.Rooms, room)
	}
	graph.StartID = 0

	if b.cfg.Scaling.BossRoomEvery > 0 && b.level%b.cfg.Scaling.BossRoomEvery == 0 && len(graph.Rooms) > 3 {
		b.attachBossRoom(g, graph, theme)
	}

	b.connectRooms(g, graph, theme)
	b.addLoops(g, graph, theme)

	return graph, partial
}

// rollRoom picks a type, size and position for a candidate room. Returns
// nil when the rolled dimensions cannot fit the grid.
func (b *builder) rollRoom(g *grid.Grid, theme catalog.ThemeDef, index int) *Room {
	sc := b.cfg.Scaling
	levelFactor := float64(b.level) / 10.0
	if levelFactor > 1.0 {
		levelFactor = 1.0
	}

	roomType := RoomStandard
	sizeMod := 0
	switch {
	case index == 0:
		// Entrance room is always a plain rectangle.
	case b.rng.Float64() < 0.25+levelFactor*0.15:
		switch roll := b.rng.Float64(); {
		case roll < 0.3:
			roomType = RoomTreasure
			sizeMod = 1
		case roll < 0.6:
			roomType = RoomPuzzle
			sizeMod = 1
		default:
			roomType = RoomLarge
			sizeMod = 3
		}
	case b.rng.Float64() < theme.CircularChance:
		roomType = RoomCircular
		sizeMod = 1
	case b.rng.Float64() < theme.IrregularChance:
		roomType = RoomIrregular
		sizeMod = 1
	case b.rng.Float64() < 0.10:
		roomType = RoomCorridor
	}

	minSize := sc.RoomMinSize + b.level/5
	maxSize := sc.RoomMaxSize + b.level/3
	w := minSize + sizeMod + b.rng.Intn(maxSize-minSize+sizeMod+1)
	h := minSize + sizeMod + b.rng.Intn(maxSize-minSize+sizeMod+1)

	if roomType == RoomCorridor {
		// Long narrow hall.
		w = maxSize + b.rng.Intn(maxSize)
		h = 3
		if b.rng.Intn(2) == 0 {
			w, h = h, w
		}
	}
	if roomType == RoomCircular {
		// Keep the bounding box square so the disc stays round.
		if w < h {
			h = w
		} else {
			w = h
		}
	}

	// Rooms never exceed a quarter of the map in either dimension.
	if w > g.Width/4 {
		w = g.Width / 4
	}
	if h > g.Height/4 {
		h = g.Height / 4
	}
	if w < 3 || h < 3 {
		return nil
	}
	if g.Width-w-2 < 1 || g.Height-h-2 < 1 {
		return nil
	}

	return &Room{
		Type:   roomType,
		X:      1 + b.rng.Intn(g.Width-w-2),
		Y:      1 + b.rng.Intn(g.Height-h-2),
		Width:  w,
		Height: h,
	}
}

func (b *builder) overlapsAny(room *Room, rooms []*Room) bool {
	for _, other := range rooms {
		if room.intersects(other, roomMargin) {
			return true
		}
	}
	return false
}

// carveRoom writes the room's shape into the grid and claims tile
// ownership. Circular rooms carve an inscribed ellipse; irregular rooms
// nibble their edge ring for a natural cave feel.
func (b *builder) carveRoom(g *grid.Grid, room *Room, theme catalog.ThemeDef) {
	cx := float64(room.X) + float64(room.Width)/2.0
	cy := float64(room.Y) + float64(room.Height)/2.0
	rx := float64(room.Width) / 2.0
	ry := float64(room.Height) / 2.0

	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			if !g.InBounds(x, y) {
				continue
			}
			if room.Type == RoomCircular {
				dx := (float64(x) + 0.5 - cx) / rx
				dy := (float64(y) + 0.5 - cy) / ry
				if dx*dx+dy*dy > 1.0 {
					continue
				}
			}
			if room.Type == RoomIrregular && b.onEdge(room, x, y) && b.rng.Float64() < 0.3 {
				continue
			}
			g.SetTile(x, y, grid.TileFloor)
			g.SetRoom(x, y, room.ID)
		}
	}

	b.addPillars(g, room, theme)
}

func (b *builder) onEdge(room *Room, x, y int) bool {
	return x == room.X || x == room.X+room.Width-1 ||
		y == room.Y || y == room.Y+room.Height-1
}

// addPillars places isolated interior wall tiles per the theme's pillar
// frequency. Pillars keep a clear ring around themselves so they can
// never wall off part of the room.
func (b *builder) addPillars(g *grid.Grid, room *Room, theme catalog.ThemeDef) {
	if theme.PillarFrequency <= 0 || room.Width < 7 || room.Height < 7 {
		return
	}
	count := int(float64(room.Width*room.Height) * theme.PillarFrequency)
	for i := 0; i < count; i++ {
		x := room.X + 2 + b.rng.Intn(room.Width-4)
		y := room.Y + 2 + b.rng.Intn(room.Height-4)
		clear := true
		for dy := -1; dy <= 1 && clear; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if (dx != 0 || dy != 0) && g.Tile(x+dx, y+dy) == grid.TileWall {
					clear = false
					break
				}
			}
		}
		if clear {
			g.SetTile(x, y, grid.TileWall)
		}
	}
}

// attachBossRoom tries to place an oversized boss room next to the room
// farthest from the entrance, in the four cardinal directions. Placement
// failure is tolerated; the level simply has no boss room.
func (b *builder) attachBossRoom(g *grid.Grid, graph *LevelGraph, theme catalog.ThemeDef) {
	start := graph.Start().Center()
	var anchor *Room
	maxDist := -1
	for _, room := range graph.Rooms {
		c := room.Center()
		d := abs(c.X-start.X) + abs(c.Y-start.Y)
		if d > maxDist {
			maxDist = d
			anchor = room
		}
	}

	size := b.cfg.Scaling.RoomMaxSize + 4
	if size > g.Width/3 {
		size = g.Width / 3
	}
	if size > g.Height/3 {
		size = g.Height / 3
	}
	if size < 5 {
		return
	}

	ac := anchor.Center()
	dirs := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	b.rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })

	for _, dir := range dirs {
		x := ac.X + dir[0]*(anchor.Width+size)/2 - size/2
		y := ac.Y + dir[1]*(anchor.Height+size)/2 - size/2
		x = clamp(x, 1, g.Width-size-1)
		y = clamp(y, 1, g.Height-size-1)

		boss := &Room{ID: len(graph.Rooms), Type: RoomBoss, X: x, Y: y, Width: size, Height: size}
		if b.overlapsAny(boss, graph.Rooms) {
			continue
		}
		b.carveRoom(g, boss, theme)
		graph.Rooms = append(graph.Rooms, boss)
		b.carveCorridor(g, ac, boss.Center(), theme.CorridorWidth)
		graph.link(anchor.ID, boss.ID)
		return
	}
	b.log.Debug("boss room placement failed, skipping")
}

// connectRooms builds the spanning structure: starting from the entrance,
// it repeatedly links the unconnected room nearest to any connected one.
// Every link carves a corridor, so the resulting graph is a single
// component by construction.
func (b *builder) connectRooms(g *grid.Grid, graph *LevelGraph, theme catalog.ThemeDef) {
	n := len(graph.Rooms)
	if n <= 1 {
		return
	}
	connected := make([]bool, n)
	connected[graph.StartID] = true

	for linked := 1; linked < n; linked++ {
		bestFrom, bestTo, bestDist := -1, -1, 1<<31-1
		for i := 0; i < n; i++ {
			if !connected[i] {
				continue
			}
			ci := graph.Rooms[i].Center()
			for j := 0; j < n; j++ {
				if connected[j] {
					continue
				}
				cj := graph.Rooms[j].Center()
				d := abs(ci.X-cj.X) + abs(ci.Y-cj.Y)
				if d < bestDist {
					bestDist, bestFrom, bestTo = d, i, j
				}
			}
		}
		if bestTo == -1 {
			break
		}
		b.carveCorridor(g, graph.Rooms[bestFrom].Center(), graph.Rooms[bestTo].Center(), theme.CorridorWidth)
		graph.link(bestFrom, bestTo)
		connected[bestTo] = true
	}
}

// addLoops injects a bounded number of extra edges between already
// connected rooms so the level isn't a pure tree of dead ends.
func (b *builder) addLoops(g *grid.Grid, graph *LevelGraph, theme catalog.ThemeDef) {
	n := len(graph.Rooms)
	if n < 4 {
		return
	}
	loops := n / 4
	if loops > 4 {
		loops = 4
	}
	for i := 0; i < loops; i++ {
		a := b.rng.Intn(n)
		c := b.rng.Intn(n)
		if a == c {
			continue
		}
		if adjacent(graph.Rooms[a], c) {
			continue
		}
		b.carveCorridor(g, graph.Rooms[a].Center(), graph.Rooms[c].Center(), theme.CorridorWidth)
		graph.link(a, c)
	}
}

func adjacent(room *Room, id int) bool {
	for _, a := range room.Adjacent {
		if a == id {
			return true
		}
	}
	return false
}

// carveCorridor carves an L-shaped corridor between two points, choosing
// horizontal-first or vertical-first at random. Carving only converts
// wall tiles to floor; tiles already carved (including other rooms'
// floors) are left exactly as they are.
func (b *builder) carveCorridor(g *grid.Grid, from, to grid.Point, width int) {
	if width < 1 {
		width = 1
	}
	if b.rng.Intn(2) == 0 {
		b.carveHorizontal(g, from.X, to.X, from.Y, width)
		b.carveVertical(g, from.Y, to.Y, to.X, width)
	} else {
		b.carveVertical(g, from.Y, to.Y, from.X, width)
		b.carveHorizontal(g, from.X, to.X, to.Y, width)
	}
}

func (b *builder) carveHorizontal(g *grid.Grid, x1, x2, y, width int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		for w := 0; w < width; w++ {
			b.carveTile(g, x, y+w)
		}
	}
}

func (b *builder) carveVertical(g *grid.Grid, y1, y2, x, width int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		for w := 0; w < width; w++ {
			b.carveTile(g, x+w, y)
		}
	}
}

func (b *builder) carveTile(g *grid.Grid, x, y int) {
	// Keep the outer border solid.
	if x < 1 || x >= g.Width-1 || y < 1 || y >= g.Height-1 {
		return
	}
	if g.Tile(x, y) == grid.TileWall {
		g.SetTile(x, y, grid.TileFloor)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
