// Command levelgen generates a single dungeon level and renders it as
// ASCII, with a summary of rooms, zones and spawns. Useful for eyeballing
// catalog changes without booting a game client.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"dungeonforge/catalog"
	"dungeonforge/generation"
	"dungeonforge/grid"
	"dungeonforge/logger"
)

func main() {
	seed := flag.Int64("seed", 1, "generation seed")
	level := flag.Int("level", 1, "level number (1-based)")
	configPath := flag.String("config", "", "optional catalog YAML file")
	logConfig := flag.String("log-config", "", "optional logging YAML file")
	flag.Parse()

	log := logger.New(logger.LoadConfig(*logConfig))

	cfg := catalog.Default()
	if *configPath != "" {
		loaded, err := catalog.Load(*configPath)
		if err != nil {
			log.Error("failed to load catalog", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	gen := generation.New(cfg, log)
	result, err := gen.Generate(*seed, *level)
	if err != nil {
		log.Error("generation failed", "error", err)
		os.Exit(1)
	}

	fmt.Print(render(result))
	printSummary(result)
}

// render draws the level as ASCII, overlaying spawns on the terrain.
func render(result *generation.LevelResult) string {
	g := result.Grid
	rows := make([][]byte, g.Height)
	for y := 0; y < g.Height; y++ {
		rows[y] = make([]byte, g.Width)
		for x := 0; x < g.Width; x++ {
			rows[y][x] = tileGlyph(g.Tile(x, y))
		}
	}
	for _, e := range result.Entries {
		rows[e.Pos.Y][e.Pos.X] = entryGlyph(e)
	}
	rows[result.PlayerStart.Y][result.PlayerStart.X] = '@'

	var sb strings.Builder
	for _, row := range rows {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func tileGlyph(t grid.TileType) byte {
	switch t {
	case grid.TileWall:
		return '#'
	case grid.TileRubble:
		return ','
	case grid.TileGrass:
		return '"'
	case grid.TileMoss:
		return '\''
	case grid.TileIce:
		return '~'
	case grid.TileWater:
		return '='
	case grid.TileLava:
		return '%'
	case grid.TileDoor:
		return '+'
	case grid.TileHazard:
		return '^'
	case grid.TileFeature:
		return '*'
	case grid.TileExit:
		return '>'
	}
	return '.'
}

func entryGlyph(e generation.SpawnEntry) byte {
	switch e.Kind {
	case generation.SpawnEnemy:
		if len(e.Name) > 0 {
			return strings.ToUpper(e.Name[:1])[0]
		}
		return 'E'
	case generation.SpawnLoot:
		return '$'
	case generation.SpawnExit:
		return '>'
	case generation.SpawnHazard:
		return '^'
	case generation.SpawnFeature:
		return '*'
	}
	return '?'
}

func printSummary(result *generation.LevelResult) {
	fmt.Printf("\nseed=%d level=%d biome=%s theme=%s lighting=%s %dx%d\n",
		result.Seed, result.Level, result.Biome, result.Theme, result.Lighting,
		result.Grid.Width, result.Grid.Height)
	if result.Partial {
		fmt.Println("note: partial layout, room target not reached")
	}

	fmt.Printf("rooms (%d):\n", len(result.Graph.Rooms))
	for _, room := range result.Graph.Rooms {
		fmt.Printf("  #%-3d %-9s %2dx%-2d at (%d,%d) depth=%d zone=%s\n",
			room.ID, room.Type, room.Width, room.Height, room.X, room.Y, room.Depth, room.Zone)
	}

	counts := map[string]int{}
	for _, e := range result.Entries {
		counts[e.Kind.String()]++
	}
	fmt.Printf("spawns (%d):", len(result.Entries))
	for _, kind := range []string{"enemy", "hazard", "feature", "loot", "exit"} {
		if counts[kind] > 0 {
			fmt.Printf(" %s=%d", kind, counts[kind])
		}
	}
	fmt.Println()
}
