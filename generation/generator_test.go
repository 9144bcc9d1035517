package generation

import (
	"errors"
	"reflect"
	"testing"

	"dungeonforge/catalog"
	"dungeonforge/grid"
)

func TestGenerateFirstLevel(t *testing.T) {
	gen := New(catalog.Default(), nil)
	result, err := gen.Generate(42, 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if result.Level != 1 || result.Seed != 42 {
		t.Errorf("result tagged seed=%d level=%d, want 42/1", result.Seed, result.Level)
	}
	if len(result.Graph.Rooms) == 0 {
		t.Fatal("no rooms")
	}
	if err := validateGraph(result.Graph); err != nil {
		t.Errorf("room graph not connected: %v", err)
	}

	exits := 0
	for _, e := range result.Entries {
		if e.Kind == SpawnExit {
			exits++
		}
		if !result.Grid.InBounds(e.Pos.X, e.Pos.Y) {
			t.Errorf("%s %q out of bounds at (%d,%d)", e.Kind, e.Name, e.Pos.X, e.Pos.Y)
		}
	}
	if exits < 1 {
		t.Error("no exit placed")
	}

	if !result.Grid.Tile(result.PlayerStart.X, result.PlayerStart.Y).Walkable() {
		t.Error("player start is not walkable")
	}
	if result.Biome == "" || result.Theme == "" {
		t.Errorf("missing biome/theme: %q/%q", result.Biome, result.Theme)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := catalog.Default()
	a, err := New(cfg, nil).Generate(1234, 7)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := New(cfg, nil).Generate(1234, 7)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if !reflect.DeepEqual(a.Grid, b.Grid) {
		t.Error("grids differ between runs with the same seed")
	}
	if !reflect.DeepEqual(a.Entries, b.Entries) {
		t.Error("spawn lists differ between runs with the same seed")
	}
	if !reflect.DeepEqual(a.Graph, b.Graph) {
		t.Error("room graphs differ between runs with the same seed")
	}
	if a.Biome != b.Biome || a.Theme != b.Theme {
		t.Errorf("biome/theme differ: %s/%s vs %s/%s", a.Biome, a.Theme, b.Biome, b.Theme)
	}
}

func TestGenerateSeedsDiverge(t *testing.T) {
	cfg := catalog.Default()
	a, err := New(cfg, nil).Generate(1, 3)
	if err != nil {
		t.Fatalf("seed 1: %v", err)
	}
	b, err := New(cfg, nil).Generate(2, 3)
	if err != nil {
		t.Fatalf("seed 2: %v", err)
	}
	if reflect.DeepEqual(a.Grid, b.Grid) && reflect.DeepEqual(a.Entries, b.Entries) {
		t.Error("different seeds produced identical levels")
	}
}

func TestGenerateZeroEnemyCap(t *testing.T) {
	cfg := catalog.Default()
	cfg.Scaling.MaxEnemies = 0
	result, err := New(cfg, nil).Generate(7, 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, e := range result.Entries {
		if e.Kind == SpawnEnemy {
			t.Fatalf("enemy %q placed with zero cap", e.Name)
		}
	}
	if err := validateGraph(result.Graph); err != nil {
		t.Errorf("level not connected: %v", err)
	}
}

func TestGenerateCrampedGridPartial(t *testing.T) {
	cfg := catalog.Default()
	cfg.Scaling.BaseWidth = 20
	cfg.Scaling.BaseHeight = 20
	cfg.Scaling.BaseRooms = 14
	result, err := New(cfg, nil).Generate(3, 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !result.Partial {
		t.Errorf("placed %d rooms on a 20x20 grid, expected a partial layout", len(result.Graph.Rooms))
	}
	if err := validateGraph(result.Graph); err != nil {
		t.Errorf("partial level not connected: %v", err)
	}
}

func TestGenerateBossLevel(t *testing.T) {
	cfg := catalog.Default()
	level := cfg.Scaling.BossRoomEvery
	result, err := New(cfg, nil).Generate(8, level)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	bossRooms := 0
	for _, room := range result.Graph.Rooms {
		if room.Type == RoomBoss {
			bossRooms++
			if room.Zone != "elite" {
				t.Errorf("boss room zone = %q, want elite", room.Zone)
			}
		}
	}
	if bossRooms > 1 {
		t.Errorf("%d boss rooms, want at most one", bossRooms)
	}
	if bossRooms == 1 {
		hasBoss := false
		for _, e := range result.Entries {
			if e.Kind == SpawnEnemy && e.Name == cfg.BossEnemy {
				hasBoss = true
			}
		}
		if !hasBoss {
			t.Error("boss room present but no boss spawn")
		}
	}
}

func TestGenerateScalesAcrossLevels(t *testing.T) {
	gen := New(catalog.Default(), nil)
	small, err := gen.Generate(5, 1)
	if err != nil {
		t.Fatalf("level 1: %v", err)
	}
	big, err := gen.Generate(5, 12)
	if err != nil {
		t.Fatalf("level 12: %v", err)
	}
	if big.Grid.Width <= small.Grid.Width || big.Grid.Height <= small.Grid.Height {
		t.Errorf("level 12 grid %dx%d not larger than level 1 grid %dx%d",
			big.Grid.Width, big.Grid.Height, small.Grid.Width, small.Grid.Height)
	}
	if len(big.Graph.Rooms) <= len(small.Graph.Rooms) {
		t.Errorf("level 12 has %d rooms, level 1 has %d", len(big.Graph.Rooms), len(small.Graph.Rooms))
	}
}

func TestGenerateErrorAfterRetries(t *testing.T) {
	// Zeroing every zone density collapses each room's enemy budget to
	// zero while the level cap stays positive, so the populator rejects
	// every attempt.
	cfg := catalog.Default()
	for i := range cfg.Policy.Zones {
		cfg.Policy.Zones[i].Density = 0
	}
	cfg.Retries = 1

	_, err := New(cfg, nil).Generate(1, 1)
	if err == nil {
		t.Fatal("expected generation to fail")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error type %T, want *GenerationError", err)
	}
	if genErr.Attempts != cfg.Retries+1 {
		t.Errorf("attempts = %d, want %d", genErr.Attempts, cfg.Retries+1)
	}
	if genErr.Unwrap() == nil {
		t.Error("GenerationError carries no cause")
	}
}

func TestGenerateEmptyEnemyTable(t *testing.T) {
	cfg := catalog.Default()
	cfg.Enemies = nil
	if err := cfg.Validate(); err == nil {
		t.Error("catalog with no enemy types passed validation")
	}
	// Even when validation is skipped, generation must fail cleanly
	// instead of crashing in the weighted draw.
	result, err := New(cfg, nil).Generate(42, 1)
	if err == nil {
		t.Fatalf("expected error, got level with %d entries", len(result.Entries))
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error type %T, want *GenerationError", err)
	}
}

func TestGenerateLevelZeroClamped(t *testing.T) {
	gen := New(catalog.Default(), nil)
	result, err := gen.Generate(9, 0)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Level != 1 {
		t.Errorf("level = %d, want clamped to 1", result.Level)
	}
}

func TestGenerateHazardTilesMarked(t *testing.T) {
	cfg := catalog.Default()
	result, err := New(cfg, nil).Generate(64, 9)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, e := range result.Entries {
		switch e.Kind {
		case SpawnHazard:
			if result.Grid.Tile(e.Pos.X, e.Pos.Y) != grid.TileHazard {
				t.Errorf("hazard %q tile not marked at (%d,%d)", e.Name, e.Pos.X, e.Pos.Y)
			}
		case SpawnFeature:
			if result.Grid.Tile(e.Pos.X, e.Pos.Y) != grid.TileFeature {
				t.Errorf("feature %q tile not marked at (%d,%d)", e.Name, e.Pos.X, e.Pos.Y)
			}
		}
	}
}
