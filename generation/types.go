package generation

import (
	"fmt"

	"dungeonforge/grid"
)

// RoomType classifies a room's role in the level.
type RoomType int

const (
	RoomStandard RoomType = iota
	RoomLarge
	RoomCorridor
	RoomCircular
	RoomIrregular
	RoomTreasure
	RoomPuzzle
	RoomBoss
)

func (t RoomType) String() string {
	switch t {
	case RoomStandard:
		return "standard"
	case RoomLarge:
		return "large"
	case RoomCorridor:
		return "corridor"
	case RoomCircular:
		return "circular"
	case RoomIrregular:
		return "irregular"
	case RoomTreasure:
		return "treasure"
	case RoomPuzzle:
		return "puzzle"
	case RoomBoss:
		return "boss"
	}
	return "unknown"
}

// Room is a placed room. The bounding rectangle covers the carved shape;
// for circular and irregular rooms some rectangle tiles remain wall.
// Rooms are not mutated after the connectivity pass, except for the zone
// fields the painter fills in.
type Room struct {
	ID     int
	Type   RoomType
	X, Y   int
	Width  int
	Height int

	Adjacent []int

	// Filled by the zone painter.
	Zone  string
	Depth int
}

// Center returns the room's center tile.
func (r *Room) Center() grid.Point {
	return grid.Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether (x, y) lies inside the bounding rectangle.
func (r *Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// intersects checks rectangle overlap with a surrounding margin, so rooms
// keep at least margin wall tiles between them.
func (r *Room) intersects(other *Room, margin int) bool {
	return r.X-margin < other.X+other.Width+margin &&
		r.X+r.Width+margin > other.X-margin &&
		r.Y-margin < other.Y+other.Height+margin &&
		r.Y+r.Height+margin > other.Y-margin
}

// LevelGraph is the set of rooms plus their corridor adjacency. The
// builder guarantees a single connected component rooted at the start
// room.
type LevelGraph struct {
	Rooms   []*Room
	StartID int
}

// Start returns the entrance room.
func (g *LevelGraph) Start() *Room {
	return g.Rooms[g.StartID]
}

// Room returns the room with the given id, or nil.
func (g *LevelGraph) Room(id int) *Room {
	if id < 0 || id >= len(g.Rooms) {
		return nil
	}
	return g.Rooms[id]
}

// link records a bidirectional corridor edge between two rooms.
func (g *LevelGraph) link(a, b int) {
	ra, rb := g.Rooms[a], g.Rooms[b]
	for _, id := range ra.Adjacent {
		if id == b {
			return
		}
	}
	ra.Adjacent = append(ra.Adjacent, b)
	rb.Adjacent = append(rb.Adjacent, a)
}

// SpawnKind tags the payload of a SpawnEntry.
type SpawnKind int

const (
	SpawnEnemy SpawnKind = iota
	SpawnHazard
	SpawnFeature
	SpawnLoot
	SpawnExit
)

func (k SpawnKind) String() string {
	switch k {
	case SpawnEnemy:
		return "enemy"
	case SpawnHazard:
		return "hazard"
	case SpawnFeature:
		return "feature"
	case SpawnLoot:
		return "loot"
	case SpawnExit:
		return "exit"
	}
	return "unknown"
}

// SpawnEntry is one placed object awaiting instantiation by the runtime.
// Kind selects which fields are meaningful: Group and Strength apply to
// enemies only, everything else uses Name and Pos.
type SpawnEntry struct {
	Kind   SpawnKind
	Name   string
	Pos    grid.Point
	RoomID int

	// Enemy payload.
	Group    int
	Strength float64
}

// LevelResult is the fully validated output of one generation run. The
// caller owns it after handoff; the generator keeps no reference.
type LevelResult struct {
	Seed  int64
	Level int

	Grid    *grid.Grid
	Graph   *LevelGraph
	Entries []SpawnEntry

	Biome    string
	Theme    string
	Lighting string

	Scale Scale

	// Partial is set when room placement could not reach the target count
	// within its attempt budget; the level is still connected and valid.
	Partial bool

	// PlayerStart is the entrance tile in the start room.
	PlayerStart grid.Point
}

// ValidationError is the structured reason a generated level was rejected.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "level validation failed: " + e.Reason
}

// GenerationError reports that the retry budget was exhausted without
// producing a valid level. The caller is expected to fall back to a
// pre-authored level.
type GenerationError struct {
	Seed     int64
	Level    int
	Attempts int
	Reason   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("level generation failed after %d attempts (seed=%d level=%d): %v",
		e.Attempts, e.Seed, e.Level, e.Reason)
}

func (e *GenerationError) Unwrap() error {
	return e.Reason
}
