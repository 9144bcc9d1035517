package generation

import (
	"log/slog"
	"math/rand"

	"dungeonforge/catalog"
	"dungeonforge/grid"
)

// attemptStride separates the derived seeds of successive attempts so a
// retry explores a genuinely different layout.
const attemptStride = 0x9e3779b9

// Generator produces complete dungeon levels from a seed and a level
// number. It is safe to share across goroutines: all mutable state lives
// in per-call values.
type Generator struct {
	cfg *catalog.Config
	log *slog.Logger
}

// New builds a generator over the given catalog. A nil logger disables
// generation logging.
func New(cfg *catalog.Config, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Generator{cfg: cfg, log: log}
}

// Generate runs the full pipeline for (seed, levelNumber): scale, carve,
// theme, paint zones, populate, validate. A validation failure triggers a
// full regeneration with a derived seed, bounded by the configured retry
// budget; exhausting the budget returns a *GenerationError.
//
// The same seed and level number always produce the same level.
func (gen *Generator) Generate(seed int64, levelNumber int) (*LevelResult, error) {
	if levelNumber < 1 {
		levelNumber = 1
	}
	scale := ScaleLevel(gen.cfg.Scaling, levelNumber)

	var lastErr error
	attempts := gen.cfg.Retries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		attemptSeed := seed + int64(attempt)*attemptStride
		result, err := gen.generateOnce(attemptSeed, levelNumber, scale)
		if err == nil {
			result.Seed = seed
			gen.log.Info("level generated",
				"seed", seed, "level", levelNumber,
				"biome", result.Biome, "theme", result.Theme,
				"rooms", len(result.Graph.Rooms), "entries", len(result.Entries),
				"attempt", attempt+1, "partial", result.Partial)
			return result, nil
		}
		lastErr = err
		gen.log.Warn("generation attempt rejected",
			"seed", seed, "level", levelNumber, "attempt", attempt+1, "reason", err)
	}

	return nil, &GenerationError{
		Seed:     seed,
		Level:    levelNumber,
		Attempts: attempts,
		Reason:   lastErr,
	}
}

func (gen *Generator) generateOnce(seed int64, levelNumber int, scale Scale) (*LevelResult, error) {
	rng := rand.New(rand.NewSource(seed))

	biome := chooseBiome(rng, gen.cfg, levelNumber)
	theme := chooseTheme(rng, gen.cfg, biome)

	g := grid.New(scale.Width, scale.Height)
	b := &builder{rng: rng, cfg: gen.cfg, log: gen.log, level: levelNumber}
	graph, partial := b.build(g, scale, theme)

	paintZones(graph, gen.cfg.Policy)
	applyPalette(rng, g, biome)

	p := newPopulator(rng, gen.cfg, gen.log, levelNumber, g, graph, scale, biome)
	entries, start, err := p.populate()
	if err != nil {
		return nil, err
	}

	if verr := validate(g, graph, entries, start); verr != nil {
		return nil, verr
	}

	return &LevelResult{
		Level:       levelNumber,
		Grid:        g,
		Graph:       graph,
		Entries:     entries,
		Biome:       biome.Name,
		Theme:       theme.Name,
		Lighting:    biome.Lighting,
		Scale:       scale,
		Partial:     partial,
		PlayerStart: start,
	}, nil
}
