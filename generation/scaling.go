package generation

import (
	"math"

	"dungeonforge/catalog"
)

// Scale holds the level-number-driven knobs the rest of the pipeline
// consumes.
type Scale struct {
	Width  int
	Height int

	RoomTarget int

	MaxEnemies    int
	EnemyDensity  float64
	HazardDensity float64
	Aggression    float64

	Exits int
}

// ScaleLevel computes the generation knobs for a level number. It is a
// pure function of its inputs: no randomness, no side effects, and every
// output is non-decreasing in levelNumber so later levels are never
// smaller or emptier than earlier ones.
func ScaleLevel(cfg catalog.ScalingConfig, levelNumber int) Scale {
	if levelNumber < 1 {
		levelNumber = 1
	}

	// Map dimensions grow by the configured factor every GrowthEvery
	// levels, with total area capped (default 8x the base tile count).
	step := (levelNumber - 1) / cfg.GrowthEvery
	areaFactor := math.Pow(cfg.GrowthFactor, float64(2*step))
	if areaFactor > cfg.MaxAreaFactor {
		areaFactor = cfg.MaxAreaFactor
	}
	dim := math.Sqrt(areaFactor)
	width := int(math.Ceil(float64(cfg.BaseWidth) * dim))
	height := int(math.Ceil(float64(cfg.BaseHeight) * dim))

	rooms := cfg.BaseRooms + (levelNumber-1)*cfg.RoomsPerLevel
	if rooms > cfg.MaxRooms {
		rooms = cfg.MaxRooms
	}

	enemies := cfg.BaseEnemies + (levelNumber-1)*cfg.EnemiesPerLevel
	if enemies > cfg.MaxEnemies {
		enemies = cfg.MaxEnemies
	}

	hazard := cfg.BaseHazardDensity + float64(levelNumber-1)*cfg.HazardDensityPerLevel
	if hazard > cfg.MaxHazardDensity {
		hazard = cfg.MaxHazardDensity
	}

	aggression := 1.0 + float64(levelNumber-1)*cfg.AggressionPerLevel
	if aggression > cfg.MaxAggression {
		aggression = cfg.MaxAggression
	}

	return Scale{
		Width:         width,
		Height:        height,
		RoomTarget:    rooms,
		MaxEnemies:    enemies,
		EnemyDensity:  1.0 + float64(levelNumber-1)*cfg.DensityPerLevel,
		HazardDensity: hazard,
		Aggression:    aggression,
		Exits:         cfg.Exits,
	}
}
