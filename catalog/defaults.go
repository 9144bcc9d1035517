package catalog

// Default returns the compiled-in tables. Callers get a fresh copy each
// time; the generator treats it as immutable either way.
func Default() *Config {
	return &Config{
		Biomes: []BiomeDef{
			{
				Name: "dungeon", Weight: 30, MinLevel: 1,
				PrimaryFloor: "rubble", SecondaryFloor: "moss", Lighting: "torchlit",
				Hazards: []HazardDef{
					{Name: "spike_trap", Weight: 4, RoomChance: 0.30, MinSpacing: 3},
					{Name: "poison_gas", Weight: 2, RoomChance: 0.20, MinSpacing: 4},
					{Name: "falling_rocks", Weight: 2, RoomChance: 0.15, MinSpacing: 4},
				},
				Features: []FeatureDef{
					{Name: "secret_door", Weight: 2, RoomChance: 0.10, MinSpacing: 5},
					{Name: "treasure_alcove", Weight: 3, RoomChance: 0.15, MinSpacing: 5},
					{Name: "ancient_tomb", Weight: 1, RoomChance: 0.05, MinSpacing: 6},
				},
				Themes: []string{"fortress", "ruins", "laboratory"},
			},
			{
				Name: "cave", Weight: 25, MinLevel: 1,
				PrimaryFloor: "rubble", SecondaryFloor: "grass", Lighting: "dark",
				Hazards: []HazardDef{
					{Name: "falling_rocks", Weight: 4, RoomChance: 0.30, MinSpacing: 3},
					{Name: "quicksand", Weight: 2, RoomChance: 0.15, MinSpacing: 4},
				},
				Features: []FeatureDef{
					{Name: "crystal_formation", Weight: 3, RoomChance: 0.15, MinSpacing: 4},
					{Name: "hidden_grove", Weight: 1, RoomChance: 0.05, MinSpacing: 6},
				},
				Themes: []string{"cavern", "ruins"},
			},
			{
				Name: "forest", Weight: 20, MinLevel: 2,
				PrimaryFloor: "grass", SecondaryFloor: "moss", Lighting: "dappled",
				Hazards: []HazardDef{
					{Name: "thorn_bush", Weight: 4, RoomChance: 0.35, MinSpacing: 2},
					{Name: "quicksand", Weight: 2, RoomChance: 0.20, MinSpacing: 4},
				},
				Features: []FeatureDef{
					{Name: "hidden_grove", Weight: 3, RoomChance: 0.20, MinSpacing: 5},
					{Name: "runic_circle", Weight: 1, RoomChance: 0.08, MinSpacing: 6},
				},
				Themes: []string{"ruins", "temple"},
			},
			{
				Name: "volcanic", Weight: 12, MinLevel: 4,
				PrimaryFloor: "rubble", SecondaryFloor: "rubble", Lighting: "ember",
				Hazards: []HazardDef{
					{Name: "lava_pool", Weight: 5, RoomChance: 0.35, MinSpacing: 3},
					{Name: "poison_gas", Weight: 2, RoomChance: 0.20, MinSpacing: 4},
				},
				Features: []FeatureDef{
					{Name: "power_crystal", Weight: 2, RoomChance: 0.10, MinSpacing: 5},
				},
				Themes: []string{"fortress", "laboratory"},
			},
			{
				Name: "crystal_cavern", Weight: 8, MinLevel: 6,
				PrimaryFloor: "rubble", SecondaryFloor: "ice", Lighting: "glowing",
				Hazards: []HazardDef{
					{Name: "crystal_shard", Weight: 5, RoomChance: 0.30, MinSpacing: 2},
				},
				Features: []FeatureDef{
					{Name: "crystal_formation", Weight: 4, RoomChance: 0.25, MinSpacing: 4},
					{Name: "power_crystal", Weight: 2, RoomChance: 0.10, MinSpacing: 5},
				},
				Themes: []string{"cavern", "temple"},
			},
			{
				Name: "necropolis", Weight: 8, MinLevel: 8,
				PrimaryFloor: "rubble", SecondaryFloor: "moss", Lighting: "gloom",
				Hazards: []HazardDef{
					{Name: "cursed_ground", Weight: 4, RoomChance: 0.30, MinSpacing: 3},
					{Name: "spike_trap", Weight: 2, RoomChance: 0.20, MinSpacing: 3},
				},
				Features: []FeatureDef{
					{Name: "ancient_tomb", Weight: 4, RoomChance: 0.20, MinSpacing: 5},
					{Name: "runic_circle", Weight: 2, RoomChance: 0.10, MinSpacing: 6},
				},
				Themes: []string{"ruins", "temple", "cathedral"},
			},
			{
				Name: "frozen_wastes", Weight: 6, MinLevel: 10,
				PrimaryFloor: "ice", SecondaryFloor: "rubble", Lighting: "pale",
				Hazards: []HazardDef{
					{Name: "crystal_shard", Weight: 3, RoomChance: 0.25, MinSpacing: 3},
					{Name: "falling_rocks", Weight: 2, RoomChance: 0.15, MinSpacing: 4},
				},
				Features: []FeatureDef{
					{Name: "crystal_formation", Weight: 3, RoomChance: 0.15, MinSpacing: 4},
				},
				Themes: []string{"fortress", "ruins"},
			},
			{
				Name: "shadow_realm", Weight: 5, MinLevel: 14,
				PrimaryFloor: "moss", SecondaryFloor: "rubble", Lighting: "void",
				Hazards: []HazardDef{
					{Name: "cursed_ground", Weight: 5, RoomChance: 0.35, MinSpacing: 3},
					{Name: "poison_gas", Weight: 2, RoomChance: 0.20, MinSpacing: 4},
				},
				Features: []FeatureDef{
					{Name: "runic_circle", Weight: 3, RoomChance: 0.15, MinSpacing: 5},
					{Name: "ancient_tomb", Weight: 2, RoomChance: 0.10, MinSpacing: 6},
				},
				Themes: []string{"temple", "laboratory", "cathedral"},
			},
		},
		Themes: []ThemeDef{
			{Name: "fortress", Weight: 4, CircularChance: 0.00, IrregularChance: 0.00, PillarFrequency: 0.02, CorridorWidth: 1, Decoration: "battlements"},
			{Name: "ruins", Weight: 4, CircularChance: 0.05, IrregularChance: 0.30, PillarFrequency: 0.01, CorridorWidth: 1, Decoration: "collapsed"},
			{Name: "cavern", Weight: 3, CircularChance: 0.20, IrregularChance: 0.50, PillarFrequency: 0.03, CorridorWidth: 2, Decoration: "stalactites"},
			{Name: "temple", Weight: 3, CircularChance: 0.25, IrregularChance: 0.00, PillarFrequency: 0.04, CorridorWidth: 2, Decoration: "altars"},
			{Name: "laboratory", Weight: 2, CircularChance: 0.10, IrregularChance: 0.00, PillarFrequency: 0.00, CorridorWidth: 1, Decoration: "machinery"},
			{Name: "cathedral", Weight: 1, CircularChance: 0.30, IrregularChance: 0.00, PillarFrequency: 0.05, CorridorWidth: 2, Decoration: "stained_glass"},
		},
		Enemies: []EnemyDef{
			{Name: "skitterer", Tier: 1, Weight: 10, Strength: 0.8},
			{Name: "grunt", Tier: 1, Weight: 10, Strength: 1.0},
			{Name: "stalker", Tier: 2, Weight: 6, Strength: 1.3},
			{Name: "warden", Tier: 2, Weight: 5, Strength: 1.5},
			{Name: "hexer", Tier: 3, Weight: 3, Strength: 1.9},
			{Name: "juggernaut", Tier: 3, Weight: 2, Strength: 2.4},
			{Name: "revenant", Tier: 4, Weight: 1, Strength: 3.0},
		},
		BossEnemy: "boss",
		Formations: []FormationDef{
			{Name: "cluster", Shape: "cluster", Spacing: 2, MinWidth: 5, MinHeight: 5, BaseSize: 2, MaxSize: 5, GrowEvery: 4, Tactical: false},
			{Name: "line", Shape: "line", Spacing: 2, MinWidth: 8, MinHeight: 4, BaseSize: 3, MaxSize: 6, GrowEvery: 5, Tactical: false},
			{Name: "circle", Shape: "circle", Spacing: 2, MinWidth: 8, MinHeight: 8, BaseSize: 4, MaxSize: 8, GrowEvery: 4, Tactical: true},
			{Name: "wedge", Shape: "wedge", Spacing: 2, MinWidth: 7, MinHeight: 7, BaseSize: 3, MaxSize: 7, GrowEvery: 4, Tactical: true},
			{Name: "defensive", Shape: "circle", Spacing: 3, MinWidth: 9, MinHeight: 9, BaseSize: 4, MaxSize: 6, GrowEvery: 6, Tactical: true},
			{Name: "ambush", Shape: "scatter", Spacing: 3, MinWidth: 5, MinHeight: 5, BaseSize: 2, MaxSize: 6, GrowEvery: 3, Tactical: true},
		},
		Loot: []LootDef{
			{Name: "health_potion", Weight: 6},
			{Name: "damage_boost", Weight: 3},
			{Name: "speed_boost", Weight: 3},
			{Name: "equipment_cache", Weight: 2},
		},
		Policy: ZonePolicy{
			Bands: []ZoneBand{
				{MaxDepth: 1, Zone: "safe"},
				{MaxDepth: 3, Zone: "challenge"},
				{MaxDepth: 5, Zone: "puzzle"},
				{MaxDepth: 7, Zone: "ambush"},
				{MaxDepth: 1 << 30, Zone: "elite"},
			},
			Zones: []ZoneDef{
				{Name: "safe", Density: 0.5, Strength: 0.8},
				{Name: "challenge", Density: 1.5, Strength: 1.2},
				{Name: "puzzle", Density: 1.0, Strength: 1.0},
				{Name: "ambush", Density: 1.8, Strength: 1.3},
				{Name: "elite", Density: 2.0, Strength: 1.6},
			},
		},
		Scaling: ScalingConfig{
			BaseWidth:     60,
			BaseHeight:    45,
			GrowthFactor:  1.8,
			GrowthEvery:   5,
			MaxAreaFactor: 8.0,

			BaseRooms:     8,
			RoomsPerLevel: 2,
			MaxRooms:      40,

			RoomMinSize: 6,
			RoomMaxSize: 12,

			BaseEnemies:     10,
			EnemiesPerLevel: 3,
			MaxEnemies:      60,
			DensityPerLevel: 0.1,

			BaseHazardDensity:     1.0,
			HazardDensityPerLevel: 0.08,
			MaxHazardDensity:      2.5,

			AggressionPerLevel: 0.05,
			MaxAggression:      2.0,

			Exits:         1,
			BossRoomEvery: 5,
		},
		Retries: 3,
	}
}
