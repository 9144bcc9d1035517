package grid

// TileType identifies what occupies a map tile.
type TileType int

const (
	TileWall TileType = iota
	TileFloor
	TileRubble
	TileGrass
	TileMoss
	TileIce
	TileWater
	TileLava
	TileDoor
	TileHazard
	TileFeature
	TileExit
)

// NoRoom marks tiles not owned by any room (walls and corridors).
const NoRoom = -1

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

// Grid is the addressable 2D tile space for one level. Each tile carries a
// type and the id of the room that owns it (NoRoom for corridors and walls).
type Grid struct {
	Width  int
	Height int
	Tiles  [][]TileType
	Rooms  [][]int
}

// New creates a grid of the given dimensions filled with walls.
func New(width, height int) *Grid {
	g := &Grid{
		Width:  width,
		Height: height,
		Tiles:  make([][]TileType, height),
		Rooms:  make([][]int, height),
	}
	for y := 0; y < height; y++ {
		g.Tiles[y] = make([]TileType, width)
		g.Rooms[y] = make([]int, width)
		for x := 0; x < width; x++ {
			g.Tiles[y][x] = TileWall
			g.Rooms[y][x] = NoRoom
		}
	}
	return g
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Tile returns the tile type at (x, y). Out of bounds reads as wall.
func (g *Grid) Tile(x, y int) TileType {
	if !g.InBounds(x, y) {
		return TileWall
	}
	return g.Tiles[y][x]
}

// SetTile sets the tile at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) SetTile(x, y int, t TileType) {
	if g.InBounds(x, y) {
		g.Tiles[y][x] = t
	}
}

// RoomAt returns the id of the room owning (x, y), or NoRoom.
func (g *Grid) RoomAt(x, y int) int {
	if !g.InBounds(x, y) {
		return NoRoom
	}
	return g.Rooms[y][x]
}

// SetRoom assigns room ownership of the tile at (x, y).
func (g *Grid) SetRoom(x, y, id int) {
	if g.InBounds(x, y) {
		g.Rooms[y][x] = id
	}
}

// IsWall returns true if the tile at (x, y) blocks movement.
func (g *Grid) IsWall(x, y int) bool {
	return !g.Tile(x, y).Walkable()
}

// Walkable reports whether entities can stand on this tile type. Hazard and
// water/lava tiles are walkable; they hurt, they don't block.
func (t TileType) Walkable() bool {
	return t != TileWall
}

// IsFloor reports whether the tile is plain ground an object may be placed
// on: any floor variant, but not doors, exits or already-claimed tiles.
func (t TileType) IsFloor() bool {
	switch t {
	case TileFloor, TileRubble, TileGrass, TileMoss, TileIce:
		return true
	}
	return false
}
