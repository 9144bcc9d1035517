package generation

import (
	"math/rand"

	"dungeonforge/catalog"
	"dungeonforge/grid"
)

// chooseBiome draws the level's biome from the catalog, restricted to
// biomes whose MinLevel has been reached. The draw is weighted so common
// biomes dominate early and rare ones stay rare even once unlocked.
func chooseBiome(rng *rand.Rand, cfg *catalog.Config, level int) catalog.BiomeDef {
	eligible := make([]catalog.BiomeDef, 0, len(cfg.Biomes))
	total := 0
	for _, b := range cfg.Biomes {
		if b.MinLevel <= level {
			eligible = append(eligible, b)
			total += b.Weight
		}
	}
	if len(eligible) == 0 {
		// MinLevel misconfiguration; the first biome is the universal fallback.
		return cfg.Biomes[0]
	}
	roll := rng.Intn(total)
	for _, b := range eligible {
		roll -= b.Weight
		if roll < 0 {
			return b
		}
	}
	return eligible[len(eligible)-1]
}

// chooseTheme draws an architectural theme compatible with the biome.
// The biome lists its compatible themes by name; the weighted draw runs
// over that subset.
func chooseTheme(rng *rand.Rand, cfg *catalog.Config, biome catalog.BiomeDef) catalog.ThemeDef {
	eligible := make([]catalog.ThemeDef, 0, len(biome.Themes))
	total := 0
	for _, name := range biome.Themes {
		if t, ok := cfg.Theme(name); ok {
			eligible = append(eligible, t)
			total += t.Weight
		}
	}
	if len(eligible) == 0 || total <= 0 {
		return cfg.Themes[0]
	}
	roll := rng.Intn(total)
	for _, t := range eligible {
		roll -= t.Weight
		if roll < 0 {
			return t
		}
	}
	return eligible[len(eligible)-1]
}

// applyPalette sprinkles the biome's floor variants over carved room
// tiles. Corridors stay plain floor so they read as connective tissue
// rather than terrain.
func applyPalette(rng *rand.Rand, g *grid.Grid, biome catalog.BiomeDef) {
	primary := floorTile(biome.PrimaryFloor)
	secondary := floorTile(biome.SecondaryFloor)

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Tile(x, y) != grid.TileFloor || g.RoomAt(x, y) == grid.NoRoom {
				continue
			}
			switch roll := rng.Float64(); {
			case roll < 0.05 && primary != grid.TileFloor:
				g.SetTile(x, y, primary)
			case roll < 0.07 && secondary != grid.TileFloor:
				g.SetTile(x, y, secondary)
			}
		}
	}
}

// floorTile maps a catalog floor name to its tile type. Unknown names
// fall back to plain floor so a bad catalog degrades visually, not
// structurally.
func floorTile(name string) grid.TileType {
	switch name {
	case "rubble":
		return grid.TileRubble
	case "grass":
		return grid.TileGrass
	case "moss":
		return grid.TileMoss
	case "ice":
		return grid.TileIce
	}
	return grid.TileFloor
}
