package generation

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"dungeonforge/catalog"
	"dungeonforge/grid"
)

// populator fills a carved level with enemies, hazards, features, loot
// markers and exits. One populator lives for one generation attempt.
type populator struct {
	rng   *rand.Rand
	cfg   *catalog.Config
	log   *slog.Logger
	level int

	g     *grid.Grid
	graph *LevelGraph
	scale Scale
	biome catalog.BiomeDef

	occupied mapset.Set[grid.Point]
	groupSeq int
	entries  []SpawnEntry
}

func newPopulator(rng *rand.Rand, cfg *catalog.Config, log *slog.Logger, level int,
	g *grid.Grid, graph *LevelGraph, scale Scale, biome catalog.BiomeDef) *populator {
	return &populator{
		rng:      rng,
		cfg:      cfg,
		log:      log,
		level:    level,
		g:        g,
		graph:    graph,
		scale:    scale,
		biome:    biome,
		occupied: mapset.New[grid.Point](),
	}
}

// populate runs every placement pass and returns the spawn list plus the
// player start tile. It errors when the enemy budget was nonzero but not
// a single enemy could be placed, which signals a broken layout worth a
// full regeneration attempt.
func (p *populator) populate() ([]SpawnEntry, grid.Point, error) {
	start := p.placePlayerStart()

	placed := 0
	for _, room := range p.graph.Rooms {
		if room.ID == p.graph.StartID {
			continue
		}
		if room.Type == RoomBoss {
			placed += p.placeBossGroup(room)
			continue
		}
		placed += p.placeEnemies(room)
	}
	if p.scale.MaxEnemies > 0 && placed == 0 && len(p.graph.Rooms) > 1 {
		return nil, start, fmt.Errorf("no enemies placed with budget %d", p.scale.MaxEnemies)
	}

	for _, room := range p.graph.Rooms {
		p.placeLoot(room)
		p.placeHazards(room)
		p.placeFeatures(room)
	}

	p.placeExits()

	return p.entries, start, nil
}

// placePlayerStart reserves the entrance tile. The start room center is
// always carved floor for every room shape, so no search is needed.
func (p *populator) placePlayerStart() grid.Point {
	start := p.graph.Start().Center()
	if !p.g.Tile(start.X, start.Y).IsFloor() {
		// Pillar or irregular nibble landed on the center; probe outward.
		if pos, ok := p.samplePosition(p.graph.Start(), 16); ok {
			start = pos
		}
	}
	p.occupied.Put(start)
	return start
}

// enemyBudget computes the target group size for a room: a base count by
// room type, scaled by the level's enemy density and the room's zone
// multiplier.
func (p *populator) enemyBudget(room *Room) int {
	base := 2.0
	switch room.Type {
	case RoomLarge:
		base = 4.0
	case RoomCorridor:
		base = 1.0
	case RoomTreasure:
		base = 1.0
	case RoomPuzzle:
		base = 1.0
	}
	zone := p.cfg.Policy.Zone(room.Zone)
	n := int(base * p.scale.EnemyDensity * zone.Density)
	if n < 0 {
		n = 0
	}
	return n
}

// placeEnemies fills one room with a formation-shaped enemy group.
// Returns the number of enemies actually placed.
func (p *populator) placeEnemies(room *Room) int {
	if len(p.cfg.Enemies) == 0 {
		return 0
	}
	remaining := p.scale.MaxEnemies - p.countEnemies()
	if remaining <= 0 {
		return 0
	}
	budget := p.enemyBudget(room)
	if budget > remaining {
		budget = remaining
	}
	if budget <= 0 {
		return 0
	}

	formation := p.chooseFormation(room)
	size := formation.BaseSize + p.level/max(formation.GrowEvery, 1)
	if size > formation.MaxSize {
		size = formation.MaxSize
	}
	if size > budget {
		size = budget
	}

	anchor, ok := p.samplePosition(room, 12)
	if !ok {
		p.log.Debug("no anchor tile for enemy group", "room", room.ID)
		return 0
	}

	zone := p.cfg.Policy.Zone(room.Zone)
	group := p.nextGroup()
	placed := 0
	for _, offset := range p.formationOffsets(formation, size) {
		pos := grid.Point{X: anchor.X + offset.X, Y: anchor.Y + offset.Y}
		pos, ok := p.settle(room, pos, 8)
		if !ok {
			continue
		}
		def := p.chooseEnemy()
		p.occupied.Put(pos)
		p.entries = append(p.entries, SpawnEntry{
			Kind:     SpawnEnemy,
			Name:     def.Name,
			Pos:      pos,
			RoomID:   room.ID,
			Group:    group,
			Strength: def.Strength * zone.Strength * p.scale.Aggression,
		})
		placed++
	}
	return placed
}

// placeBossGroup spawns the boss at the room center with a defensive
// ring of regular enemies around it.
func (p *populator) placeBossGroup(room *Room) int {
	center, ok := p.settle(room, room.Center(), 12)
	if !ok {
		p.log.Debug("boss room center blocked", "room", room.ID)
		return 0
	}
	zone := p.cfg.Policy.Zone(room.Zone)
	group := p.nextGroup()

	p.occupied.Put(center)
	p.entries = append(p.entries, SpawnEntry{
		Kind:     SpawnEnemy,
		Name:     p.cfg.BossEnemy,
		Pos:      center,
		RoomID:   room.ID,
		Group:    group,
		Strength: 4.0 * zone.Strength * p.scale.Aggression,
	})
	placed := 1
	if len(p.cfg.Enemies) == 0 {
		return placed
	}

	ring := []grid.Point{{X: -2, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: -2}, {X: 0, Y: 2}}
	for _, offset := range ring {
		pos := grid.Point{X: center.X + offset.X, Y: center.Y + offset.Y}
		pos, ok := p.settle(room, pos, 6)
		if !ok {
			continue
		}
		def := p.chooseEnemy()
		p.occupied.Put(pos)
		p.entries = append(p.entries, SpawnEntry{
			Kind:     SpawnEnemy,
			Name:     def.Name,
			Pos:      pos,
			RoomID:   room.ID,
			Group:    group,
			Strength: def.Strength * zone.Strength * p.scale.Aggression,
		})
		placed++
	}
	return placed
}

// chooseFormation picks a formation template that fits the room, with
// tactical templates reserved for ambush and elite zones.
func (p *populator) chooseFormation(room *Room) catalog.FormationDef {
	tacticalZone := room.Zone == "ambush" || room.Zone == "elite"
	var eligible []catalog.FormationDef
	for _, f := range p.cfg.Formations {
		if room.Width < f.MinWidth || room.Height < f.MinHeight {
			continue
		}
		if f.Tactical && !tacticalZone {
			continue
		}
		eligible = append(eligible, f)
	}
	if len(eligible) == 0 {
		return p.cfg.Formations[0]
	}
	return eligible[p.rng.Intn(len(eligible))]
}

// formationOffsets expands a formation template into concrete offsets
// around an anchor tile.
func (p *populator) formationOffsets(f catalog.FormationDef, size int) []grid.Point {
	offsets := make([]grid.Point, 0, size)
	switch f.Shape {
	case "line":
		for i := 0; i < size; i++ {
			offsets = append(offsets, grid.Point{X: (i - size/2) * f.Spacing, Y: 0})
		}
	case "circle":
		// Cardinal and diagonal ring positions, nearest first.
		ring := []grid.Point{
			{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0},
			{X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1},
		}
		for i := 0; i < size && i < len(ring); i++ {
			offsets = append(offsets, grid.Point{X: ring[i].X * f.Spacing, Y: ring[i].Y * f.Spacing})
		}
	case "wedge":
		for i := 0; i < size; i++ {
			row := i / 2
			side := i % 2
			dx := row
			if side == 1 {
				dx = -row
			}
			offsets = append(offsets, grid.Point{X: dx * f.Spacing / max(f.Spacing/2, 1), Y: row})
		}
	case "scatter":
		for i := 0; i < size; i++ {
			offsets = append(offsets, grid.Point{
				X: p.rng.Intn(2*f.Spacing+1) - f.Spacing,
				Y: p.rng.Intn(2*f.Spacing+1) - f.Spacing,
			})
		}
	default: // cluster
		for i := 0; i < size; i++ {
			offsets = append(offsets, grid.Point{
				X: p.rng.Intn(f.Spacing+1) - f.Spacing/2,
				Y: p.rng.Intn(f.Spacing+1) - f.Spacing/2,
			})
		}
	}
	return offsets
}

// chooseEnemy draws an enemy type. Each type's weight is boosted by a
// tier-and-level term so higher tiers drift from rare to common as the
// level number climbs, without ever dropping the low tiers to zero.
func (p *populator) chooseEnemy() catalog.EnemyDef {
	if len(p.cfg.Enemies) == 0 {
		return catalog.EnemyDef{}
	}
	total := 0.0
	weights := make([]float64, len(p.cfg.Enemies))
	for i, def := range p.cfg.Enemies {
		w := float64(def.Weight) * (1.0 + float64(p.level-1)*float64(def.Tier-1)/4.0)
		weights[i] = w
		total += w
	}
	roll := p.rng.Float64() * total
	for i, def := range p.cfg.Enemies {
		roll -= weights[i]
		if roll < 0 {
			return def
		}
	}
	return p.cfg.Enemies[len(p.cfg.Enemies)-1]
}

// placeLoot drops loot markers by room type: treasure and boss rooms get
// a guaranteed haul, puzzle rooms a single reward, normal rooms a coin
// flip.
func (p *populator) placeLoot(room *Room) {
	var count int
	switch room.Type {
	case RoomTreasure, RoomBoss:
		count = 2 + p.rng.Intn(2)
	case RoomPuzzle:
		count = 1
	default:
		count = p.rng.Intn(2)
	}
	for i := 0; i < count; i++ {
		pos, ok := p.samplePosition(room, 8)
		if !ok {
			return
		}
		p.occupied.Put(pos)
		p.entries = append(p.entries, SpawnEntry{
			Kind:   SpawnLoot,
			Name:   p.chooseLoot(),
			Pos:    pos,
			RoomID: room.ID,
		})
	}
}

func (p *populator) chooseLoot() string {
	total := 0
	for _, l := range p.cfg.Loot {
		total += l.Weight
	}
	if total == 0 {
		return "health_potion"
	}
	roll := p.rng.Intn(total)
	for _, l := range p.cfg.Loot {
		roll -= l.Weight
		if roll < 0 {
			return l.Name
		}
	}
	return p.cfg.Loot[len(p.cfg.Loot)-1].Name
}

// placeHazards rolls each of the biome's hazard types against the room,
// scaled by the level's hazard density and the zone multiplier. Hazard
// tiles never land on corridor mouths so they cannot soft-block a choke
// point, and they respect each type's minimum spacing.
func (p *populator) placeHazards(room *Room) {
	if room.ID == p.graph.StartID {
		return
	}
	zone := p.cfg.Policy.Zone(room.Zone)
	for _, h := range p.biome.Hazards {
		chance := h.RoomChance * p.scale.HazardDensity * zone.Density
		if p.rng.Float64() >= chance {
			continue
		}
		pos, ok := p.sampleMarkerPosition(room, h.Name, h.MinSpacing, SpawnHazard)
		if !ok {
			p.log.Debug("hazard placement skipped", "hazard", h.Name, "room", room.ID)
			continue
		}
		p.g.SetTile(pos.X, pos.Y, grid.TileHazard)
		p.occupied.Put(pos)
		p.entries = append(p.entries, SpawnEntry{
			Kind:   SpawnHazard,
			Name:   h.Name,
			Pos:    pos,
			RoomID: room.ID,
		})
	}
}

// placeFeatures mirrors placeHazards for the biome's special features.
func (p *populator) placeFeatures(room *Room) {
	for _, f := range p.biome.Features {
		if p.rng.Float64() >= f.RoomChance {
			continue
		}
		pos, ok := p.sampleMarkerPosition(room, f.Name, f.MinSpacing, SpawnFeature)
		if !ok {
			p.log.Debug("feature placement skipped", "feature", f.Name, "room", room.ID)
			continue
		}
		p.g.SetTile(pos.X, pos.Y, grid.TileFeature)
		p.occupied.Put(pos)
		p.entries = append(p.entries, SpawnEntry{
			Kind:   SpawnFeature,
			Name:   f.Name,
			Pos:    pos,
			RoomID: room.ID,
		})
	}
}

// placeExits marks descent stairs in the deepest rooms. With fewer than
// two rooms the exit lands in a corner of the only room, away from the
// player start.
func (p *populator) placeExits() {
	if len(p.graph.Rooms) < 2 {
		room := p.graph.Start()
		pos := grid.Point{X: room.X + 1, Y: room.Y + 1}
		if p.occupied.Has(pos) || !p.g.Tile(pos.X, pos.Y).IsFloor() {
			if alt, ok := p.samplePosition(room, 16); ok {
				pos = alt
			}
		}
		p.markExit(pos, room.ID)
		return
	}

	placed := 0
	for _, id := range maxDepthRooms(p.graph) {
		if placed >= p.scale.Exits {
			break
		}
		room := p.graph.Room(id)
		pos, ok := p.samplePosition(room, 12)
		if !ok {
			// Saturated room; the settled center may hold a boss already.
			c := room.Center()
			if p.occupied.Has(c) || !p.g.Tile(c.X, c.Y).IsFloor() {
				p.log.Debug("exit placement skipped", "room", room.ID)
				continue
			}
			pos = c
		}
		p.markExit(pos, room.ID)
		placed++
	}
	if placed > 0 {
		return
	}
	// Every deepest room was saturated; take any room with a free tile.
	for _, room := range p.graph.Rooms {
		if pos, ok := p.samplePosition(room, 20); ok {
			p.markExit(pos, room.ID)
			return
		}
	}
}

func (p *populator) markExit(pos grid.Point, roomID int) {
	p.g.SetTile(pos.X, pos.Y, grid.TileExit)
	p.occupied.Put(pos)
	p.entries = append(p.entries, SpawnEntry{
		Kind: SpawnExit, Name: "stairs_down", Pos: pos, RoomID: roomID,
	})
}

// samplePosition draws a free interior floor tile of the room, retrying
// up to attempts times. The sampled rectangle is shrunk by one so spawns
// hug neither the walls nor the corridor mouths.
func (p *populator) samplePosition(room *Room, attempts int) (grid.Point, bool) {
	if room.Width < 3 || room.Height < 3 {
		return grid.Point{}, false
	}
	for i := 0; i < attempts; i++ {
		pos := grid.Point{
			X: room.X + 1 + p.rng.Intn(room.Width-2),
			Y: room.Y + 1 + p.rng.Intn(room.Height-2),
		}
		if p.usable(room, pos) {
			return pos, true
		}
	}
	return grid.Point{}, false
}

// settle nudges a proposed position to a usable tile: the position
// itself if free, otherwise a fresh sample from the room.
func (p *populator) settle(room *Room, pos grid.Point, attempts int) (grid.Point, bool) {
	if p.usable(room, pos) {
		return pos, true
	}
	return p.samplePosition(room, attempts)
}

// usable reports whether a tile can take a spawn: carved floor, owned by
// the room, inside the interior rectangle, and not already taken.
func (p *populator) usable(room *Room, pos grid.Point) bool {
	if pos.X <= room.X || pos.X >= room.X+room.Width-1 ||
		pos.Y <= room.Y || pos.Y >= room.Y+room.Height-1 {
		return false
	}
	if !p.g.Tile(pos.X, pos.Y).IsFloor() {
		return false
	}
	if p.g.RoomAt(pos.X, pos.Y) != room.ID {
		return false
	}
	return !p.occupied.Has(pos)
}

// sampleMarkerPosition finds a tile for a hazard or feature marker. On
// top of the usual constraints it rejects tiles adjacent to corridor
// floor (choke points) and tiles within minSpacing of another marker of
// the same kind.
func (p *populator) sampleMarkerPosition(room *Room, name string, minSpacing int, kind SpawnKind) (grid.Point, bool) {
	for i := 0; i < 10; i++ {
		pos, ok := p.samplePosition(room, 4)
		if !ok {
			return grid.Point{}, false
		}
		if p.nearCorridor(pos) {
			continue
		}
		if p.tooClose(pos, name, kind, minSpacing) {
			continue
		}
		return pos, true
	}
	return grid.Point{}, false
}

// nearCorridor reports whether any neighbor is corridor floor, which
// marks the tile as a potential choke point.
func (p *populator) nearCorridor(pos grid.Point) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			x, y := pos.X+dx, pos.Y+dy
			if p.g.Tile(x, y).Walkable() && p.g.RoomAt(x, y) == grid.NoRoom {
				return true
			}
		}
	}
	return false
}

// tooClose checks Chebyshev distance against existing markers of the
// same kind and name.
func (p *populator) tooClose(pos grid.Point, name string, kind SpawnKind, minSpacing int) bool {
	for _, e := range p.entries {
		if e.Kind != kind || e.Name != name {
			continue
		}
		dx := abs(e.Pos.X - pos.X)
		dy := abs(e.Pos.Y - pos.Y)
		if max(dx, dy) < minSpacing {
			return true
		}
	}
	return false
}

func (p *populator) countEnemies() int {
	n := 0
	for _, e := range p.entries {
		if e.Kind == SpawnEnemy {
			n++
		}
	}
	return n
}

func (p *populator) nextGroup() int {
	p.groupSeq++
	return p.groupSeq
}
