package generation

import (
	"log/slog"
	"math/rand"
	"testing"

	"dungeonforge/catalog"
	"dungeonforge/grid"
)

// carveTestLevel builds a deterministic small level for population tests.
func carveTestLevel(t *testing.T, seed int64, level int) (*grid.Grid, *LevelGraph, Scale, *catalog.Config) {
	t.Helper()
	cfg := catalog.Default()
	scale := ScaleLevel(cfg.Scaling, level)
	g := grid.New(scale.Width, scale.Height)
	b := &builder{
		rng:   rand.New(rand.NewSource(seed)),
		cfg:   cfg,
		log:   slog.New(slog.DiscardHandler),
		level: level,
	}
	graph, _ := b.build(g, scale, defaultTheme(cfg))
	paintZones(graph, cfg.Policy)
	return g, graph, scale, cfg
}

func TestPopulateRespectsEnemyBudget(t *testing.T) {
	g, graph, scale, cfg := carveTestLevel(t, 5, 3)
	p := newPopulator(rand.New(rand.NewSource(5)), cfg, slog.New(slog.DiscardHandler), 3,
		g, graph, scale, cfg.Biomes[0])
	entries, _, err := p.populate()
	if err != nil {
		t.Fatalf("populate: %v", err)
	}
	enemies := 0
	for _, e := range entries {
		if e.Kind == SpawnEnemy {
			enemies++
		}
	}
	if enemies == 0 {
		t.Fatal("no enemies placed")
	}
	if enemies > scale.MaxEnemies {
		t.Errorf("placed %d enemies, budget %d", enemies, scale.MaxEnemies)
	}
}

func TestPopulateZeroBudgetPlacesNoEnemies(t *testing.T) {
	g, graph, scale, cfg := carveTestLevel(t, 5, 1)
	scale.MaxEnemies = 0
	p := newPopulator(rand.New(rand.NewSource(5)), cfg, slog.New(slog.DiscardHandler), 1,
		g, graph, scale, cfg.Biomes[0])
	entries, _, err := p.populate()
	if err != nil {
		t.Fatalf("populate: %v", err)
	}
	for _, e := range entries {
		if e.Kind == SpawnEnemy {
			t.Fatalf("enemy %q placed with zero budget", e.Name)
		}
	}
	// Exits must still exist.
	exits := 0
	for _, e := range entries {
		if e.Kind == SpawnExit {
			exits++
		}
	}
	if exits == 0 {
		t.Error("no exits placed")
	}
}

func TestPopulateNoStackedSpawns(t *testing.T) {
	g, graph, scale, cfg := carveTestLevel(t, 9, 4)
	p := newPopulator(rand.New(rand.NewSource(9)), cfg, slog.New(slog.DiscardHandler), 4,
		g, graph, scale, cfg.Biomes[0])
	entries, _, err := p.populate()
	if err != nil {
		t.Fatalf("populate: %v", err)
	}
	seen := map[grid.Point]SpawnEntry{}
	for _, e := range entries {
		if prev, ok := seen[e.Pos]; ok {
			t.Errorf("stacked spawns at (%d,%d): %s %q over %s %q",
				e.Pos.X, e.Pos.Y, e.Kind, e.Name, prev.Kind, prev.Name)
		}
		seen[e.Pos] = e
	}
}

func TestPopulateStartRoomHasNoEnemies(t *testing.T) {
	g, graph, scale, cfg := carveTestLevel(t, 13, 2)
	p := newPopulator(rand.New(rand.NewSource(13)), cfg, slog.New(slog.DiscardHandler), 2,
		g, graph, scale, cfg.Biomes[0])
	entries, _, err := p.populate()
	if err != nil {
		t.Fatalf("populate: %v", err)
	}
	for _, e := range entries {
		if e.Kind == SpawnEnemy && e.RoomID == graph.StartID {
			t.Fatalf("enemy %q in the entrance room", e.Name)
		}
	}
}

func TestPopulateGroupsShareStrengthScaling(t *testing.T) {
	g, graph, scale, cfg := carveTestLevel(t, 21, 6)
	p := newPopulator(rand.New(rand.NewSource(21)), cfg, slog.New(slog.DiscardHandler), 6,
		g, graph, scale, cfg.Biomes[0])
	entries, _, err := p.populate()
	if err != nil {
		t.Fatalf("populate: %v", err)
	}
	for _, e := range entries {
		if e.Kind != SpawnEnemy {
			continue
		}
		if e.Group <= 0 {
			t.Errorf("enemy %q has no group id", e.Name)
		}
		if e.Strength <= 0 {
			t.Errorf("enemy %q has non-positive strength %v", e.Name, e.Strength)
		}
	}
}

func TestFormationOffsetsSizes(t *testing.T) {
	cfg := catalog.Default()
	p := &populator{rng: rand.New(rand.NewSource(1)), cfg: cfg}
	for _, f := range cfg.Formations {
		offsets := p.formationOffsets(f, f.BaseSize)
		if f.Shape == "circle" && f.BaseSize > 8 {
			continue
		}
		if len(offsets) != f.BaseSize {
			t.Errorf("formation %q produced %d offsets, want %d", f.Name, len(offsets), f.BaseSize)
		}
	}
}

func TestChooseEnemyTierDrift(t *testing.T) {
	cfg := catalog.Default()
	countHighTier := func(level int) int {
		p := &populator{rng: rand.New(rand.NewSource(99)), cfg: cfg, level: level}
		high := 0
		for i := 0; i < 2000; i++ {
			def := p.chooseEnemy()
			if def.Tier >= 3 {
				high++
			}
		}
		return high
	}
	early := countHighTier(1)
	late := countHighTier(15)
	if late <= early {
		t.Errorf("tier 3+ draws did not increase with level: %d at level 1, %d at level 15", early, late)
	}
}

func TestHazardsAvoidStartRoom(t *testing.T) {
	g, graph, scale, cfg := carveTestLevel(t, 33, 5)
	scale.HazardDensity = 2.5
	p := newPopulator(rand.New(rand.NewSource(33)), cfg, slog.New(slog.DiscardHandler), 5,
		g, graph, scale, cfg.Biomes[0])
	entries, _, err := p.populate()
	if err != nil {
		t.Fatalf("populate: %v", err)
	}
	for _, e := range entries {
		if e.Kind == SpawnHazard && e.RoomID == graph.StartID {
			t.Fatalf("hazard %q in the entrance room", e.Name)
		}
	}
}

// carveRect carves a plain rectangular room with ownership, for tests
// that build layouts by hand.
func carveRect(g *grid.Grid, room *Room) {
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			g.SetTile(x, y, grid.TileFloor)
			g.SetRoom(x, y, room.ID)
		}
	}
}

func TestExitSkipsSaturatedDeepRoom(t *testing.T) {
	cfg := catalog.Default()
	g := grid.New(30, 12)
	start := &Room{ID: 0, Type: RoomStandard, X: 2, Y: 2, Width: 7, Height: 7}
	deep := &Room{ID: 1, Type: RoomBoss, X: 15, Y: 2, Width: 5, Height: 5}
	carveRect(g, start)
	carveRect(g, deep)
	graph := &LevelGraph{Rooms: []*Room{start, deep}}
	graph.link(0, 1)
	paintZones(graph, cfg.Policy)

	p := newPopulator(rand.New(rand.NewSource(1)), cfg, slog.New(slog.DiscardHandler), 1,
		g, graph, ScaleLevel(cfg.Scaling, 1), cfg.Biomes[0])
	// Saturate the deep room's interior, center included, as a settled
	// boss group would.
	for y := deep.Y + 1; y < deep.Y+deep.Height-1; y++ {
		for x := deep.X + 1; x < deep.X+deep.Width-1; x++ {
			p.occupied.Put(grid.Point{X: x, Y: y})
		}
	}
	p.placeExits()

	exits := 0
	for _, e := range p.entries {
		if e.Kind != SpawnExit {
			continue
		}
		exits++
		if e.RoomID != start.ID {
			t.Errorf("exit landed in saturated room %d at (%d,%d)", e.RoomID, e.Pos.X, e.Pos.Y)
		}
		if g.Tile(e.Pos.X, e.Pos.Y) != grid.TileExit {
			t.Errorf("exit tile at (%d,%d) not marked", e.Pos.X, e.Pos.Y)
		}
	}
	if exits != 1 {
		t.Fatalf("placed %d exits, want 1", exits)
	}
}

func TestSingleRoomExitAvoidsOccupiedCorner(t *testing.T) {
	cfg := catalog.Default()
	g := grid.New(12, 12)
	room := &Room{ID: 0, Type: RoomStandard, X: 2, Y: 2, Width: 7, Height: 7}
	carveRect(g, room)
	graph := &LevelGraph{Rooms: []*Room{room}}
	paintZones(graph, cfg.Policy)

	p := newPopulator(rand.New(rand.NewSource(1)), cfg, slog.New(slog.DiscardHandler), 1,
		g, graph, ScaleLevel(cfg.Scaling, 1), cfg.Biomes[0])
	corner := grid.Point{X: room.X + 1, Y: room.Y + 1}
	p.occupied.Put(corner)        // a loot marker took the corner
	p.occupied.Put(room.Center()) // player start
	p.placeExits()

	exits := 0
	for _, e := range p.entries {
		if e.Kind != SpawnExit {
			continue
		}
		exits++
		if e.Pos == corner || e.Pos == room.Center() {
			t.Errorf("exit stacked on occupied tile (%d,%d)", e.Pos.X, e.Pos.Y)
		}
	}
	if exits != 1 {
		t.Fatalf("placed %d exits, want 1", exits)
	}
}

func TestExitsInDeepestRooms(t *testing.T) {
	g, graph, scale, cfg := carveTestLevel(t, 47, 2)
	p := newPopulator(rand.New(rand.NewSource(47)), cfg, slog.New(slog.DiscardHandler), 2,
		g, graph, scale, cfg.Biomes[0])
	entries, _, err := p.populate()
	if err != nil {
		t.Fatalf("populate: %v", err)
	}
	maxDepth := 0
	for _, room := range graph.Rooms {
		if room.Depth > maxDepth {
			maxDepth = room.Depth
		}
	}
	found := false
	for _, e := range entries {
		if e.Kind != SpawnExit {
			continue
		}
		found = true
		if len(graph.Rooms) > 1 && graph.Room(e.RoomID).Depth != maxDepth {
			t.Errorf("exit in room %d at depth %d, max depth is %d", e.RoomID, graph.Room(e.RoomID).Depth, maxDepth)
		}
		if g.Tile(e.Pos.X, e.Pos.Y) != grid.TileExit {
			t.Errorf("exit tile at (%d,%d) not marked", e.Pos.X, e.Pos.Y)
		}
	}
	if !found {
		t.Fatal("no exit placed")
	}
}
