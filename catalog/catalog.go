package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BiomeDef describes a level-wide environment: floor palette, lighting tag
// and the hazard/feature pools eligible for it. Weight drives the biome
// draw; MinLevel gates rare biomes away from early levels.
type BiomeDef struct {
	Name           string       `yaml:"name"`
	Weight         int          `yaml:"weight"`
	MinLevel       int          `yaml:"min_level"`
	PrimaryFloor   string       `yaml:"primary_floor"`
	SecondaryFloor string       `yaml:"secondary_floor"`
	Lighting       string       `yaml:"lighting"`
	Hazards        []HazardDef  `yaml:"hazards"`
	Features       []FeatureDef `yaml:"features"`
	Themes         []string     `yaml:"themes"`
}

// ThemeDef describes an architectural style: room-shape bias and
// decoration rules, orthogonal to the biome.
type ThemeDef struct {
	Name            string  `yaml:"name"`
	Weight          int     `yaml:"weight"`
	CircularChance  float64 `yaml:"circular_chance"`
	IrregularChance float64 `yaml:"irregular_chance"`
	PillarFrequency float64 `yaml:"pillar_frequency"`
	CorridorWidth   int     `yaml:"corridor_width"`
	Decoration      string  `yaml:"decoration"`
}

// EnemyDef is one row of the enemy type table. Tier feeds the
// level-dependent weight boost so stronger types become gradually more
// common instead of unlocking at a threshold.
type EnemyDef struct {
	Name     string  `yaml:"name"`
	Tier     int     `yaml:"tier"`
	Weight   int     `yaml:"weight"`
	Strength float64 `yaml:"strength"`
}

// HazardDef is an environmental hazard eligible for a biome.
type HazardDef struct {
	Name       string  `yaml:"name"`
	Weight     int     `yaml:"weight"`
	RoomChance float64 `yaml:"room_chance"`
	MinSpacing int     `yaml:"min_spacing"`
}

// FeatureDef is a special feature eligible for a biome.
type FeatureDef struct {
	Name       string  `yaml:"name"`
	Weight     int     `yaml:"weight"`
	RoomChance float64 `yaml:"room_chance"`
	MinSpacing int     `yaml:"min_spacing"`
}

// FormationDef describes a tactical enemy group template. Offsets are
// generated parametrically from Shape and Spacing; MinWidth/MinHeight gate
// the template to rooms big enough to hold it. Group size starts at
// BaseSize and grows by one every GrowEvery levels, capped at MaxSize.
type FormationDef struct {
	Name      string `yaml:"name"`
	Shape     string `yaml:"shape"`
	Spacing   int    `yaml:"spacing"`
	MinWidth  int    `yaml:"min_width"`
	MinHeight int    `yaml:"min_height"`
	BaseSize  int    `yaml:"base_size"`
	MaxSize   int    `yaml:"max_size"`
	GrowEvery int    `yaml:"grow_every"`
	Tactical  bool   `yaml:"tactical"`
}

// ZoneBand maps a breadth-first traversal depth band to a zone type.
// Bands are checked in order; the first band whose MaxDepth is >= the
// room's depth wins, and the last band catches everything deeper.
type ZoneBand struct {
	MaxDepth int    `yaml:"max_depth"`
	Zone     string `yaml:"zone"`
}

// ZoneDef carries the multipliers a difficulty zone applies to local
// spawn density and enemy strength.
type ZoneDef struct {
	Name     string  `yaml:"name"`
	Density  float64 `yaml:"density"`
	Strength float64 `yaml:"strength"`
}

// ZonePolicy is the configurable depth-to-zone mapping plus the zone
// multiplier table.
type ZonePolicy struct {
	Bands []ZoneBand `yaml:"bands"`
	Zones []ZoneDef  `yaml:"zones"`
}

// Zone returns the zone definition by name, falling back to a neutral
// zone when the name is unknown.
func (p ZonePolicy) Zone(name string) ZoneDef {
	for _, z := range p.Zones {
		if z.Name == name {
			return z
		}
	}
	return ZoneDef{Name: name, Density: 1.0, Strength: 1.0}
}

// ZoneForDepth resolves a traversal depth to a zone type via the bands.
func (p ZonePolicy) ZoneForDepth(depth int) string {
	for _, b := range p.Bands {
		if depth <= b.MaxDepth {
			return b.Zone
		}
	}
	if len(p.Bands) > 0 {
		return p.Bands[len(p.Bands)-1].Zone
	}
	return "safe"
}

// ScalingConfig holds the constants the scaling controller turns into
// per-level generation knobs.
type ScalingConfig struct {
	BaseWidth     int     `yaml:"base_width"`
	BaseHeight    int     `yaml:"base_height"`
	GrowthFactor  float64 `yaml:"growth_factor"`
	GrowthEvery   int     `yaml:"growth_every"`
	MaxAreaFactor float64 `yaml:"max_area_factor"`

	BaseRooms     int `yaml:"base_rooms"`
	RoomsPerLevel int `yaml:"rooms_per_level"`
	MaxRooms      int `yaml:"max_rooms"`

	RoomMinSize int `yaml:"room_min_size"`
	RoomMaxSize int `yaml:"room_max_size"`

	BaseEnemies     int     `yaml:"base_enemies"`
	EnemiesPerLevel int     `yaml:"enemies_per_level"`
	MaxEnemies      int     `yaml:"max_enemies"`
	DensityPerLevel float64 `yaml:"density_per_level"`

	BaseHazardDensity     float64 `yaml:"base_hazard_density"`
	HazardDensityPerLevel float64 `yaml:"hazard_density_per_level"`
	MaxHazardDensity      float64 `yaml:"max_hazard_density"`

	AggressionPerLevel float64 `yaml:"aggression_per_level"`
	MaxAggression      float64 `yaml:"max_aggression"`

	Exits         int `yaml:"exits"`
	BossRoomEvery int `yaml:"boss_room_every"`
}

// LootDef is one row of the loot marker table.
type LootDef struct {
	Name   string `yaml:"name"`
	Weight int    `yaml:"weight"`
}

// Config aggregates every read-only table the generator consumes. The
// generator never mutates it and holds no other configuration state.
type Config struct {
	Biomes     []BiomeDef     `yaml:"biomes"`
	Themes     []ThemeDef     `yaml:"themes"`
	Enemies    []EnemyDef     `yaml:"enemies"`
	BossEnemy  string         `yaml:"boss_enemy"`
	Formations []FormationDef `yaml:"formations"`
	Loot       []LootDef      `yaml:"loot"`
	Policy     ZonePolicy     `yaml:"zone_policy"`
	Scaling    ScalingConfig  `yaml:"scaling"`

	// Retries bounds full-regeneration attempts after a validation failure.
	Retries int `yaml:"retries"`
}

// Theme returns the architectural theme definition by name.
func (c *Config) Theme(name string) (ThemeDef, bool) {
	for _, t := range c.Themes {
		if t.Name == name {
			return t, true
		}
	}
	return ThemeDef{}, false
}

// Validate checks the tables for the holes that would make generation
// meaningless rather than merely dull.
func (c *Config) Validate() error {
	if len(c.Biomes) == 0 {
		return fmt.Errorf("catalog: no biomes defined")
	}
	if len(c.Themes) == 0 {
		return fmt.Errorf("catalog: no architectural themes defined")
	}
	if len(c.Formations) == 0 {
		return fmt.Errorf("catalog: no formation templates defined")
	}
	if len(c.Enemies) == 0 {
		return fmt.Errorf("catalog: no enemy types defined")
	}
	if c.BossEnemy == "" {
		return fmt.Errorf("catalog: boss enemy not named")
	}
	for _, e := range c.Enemies {
		if e.Weight <= 0 {
			return fmt.Errorf("catalog: enemy %q has non-positive weight", e.Name)
		}
	}
	if len(c.Policy.Bands) == 0 || len(c.Policy.Zones) == 0 {
		return fmt.Errorf("catalog: zone policy is empty")
	}
	for _, b := range c.Biomes {
		if b.Weight <= 0 {
			return fmt.Errorf("catalog: biome %q has non-positive weight", b.Name)
		}
		for _, theme := range b.Themes {
			if _, ok := c.Theme(theme); !ok {
				return fmt.Errorf("catalog: biome %q references unknown theme %q", b.Name, theme)
			}
		}
	}
	s := c.Scaling
	if s.BaseWidth < 16 || s.BaseHeight < 16 {
		return fmt.Errorf("catalog: base map dimensions %dx%d too small", s.BaseWidth, s.BaseHeight)
	}
	if s.GrowthFactor < 1.0 || s.GrowthEvery < 1 {
		return fmt.Errorf("catalog: growth factor %.2f every %d levels is not monotonic", s.GrowthFactor, s.GrowthEvery)
	}
	if s.RoomMinSize < 3 || s.RoomMaxSize < s.RoomMinSize {
		return fmt.Errorf("catalog: room size range %d-%d invalid", s.RoomMinSize, s.RoomMaxSize)
	}
	return nil
}

// Load reads a YAML catalog file, layered over the compiled-in defaults so
// partial files only override what they mention.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
