package world

import "fmt"

// Island holds the square tile grid generated for one world coordinate.
// Tiles are stored row-major: index = y*Size + x.
type Island struct {
	WorldX int `json:"world_x"`
	WorldY int `json:"world_y"`
	Size   int `json:"size"`

	tiles []Tile
}

// newIsland creates an island of the given size with every cell set to water.
func newIsland(worldX, worldY, size int) *Island {
	is := &Island{
		WorldX: worldX,
		WorldY: worldY,
		Size:   size,
		tiles:  make([]Tile, size*size),
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			is.tiles[y*size+x] = NewWater(Coordinate{X: x, Y: y})
		}
	}
	return is
}

// RestoreIsland rebuilds an island from a previously exported tile grid.
func RestoreIsland(worldX, worldY, size int, tiles []Tile) (*Island, error) {
	if size <= 0 {
		return nil, fmt.Errorf("restore island: invalid size %d", size)
	}
	if len(tiles) != size*size {
		return nil, fmt.Errorf("restore island: got %d tiles for size %d", len(tiles), size)
	}
	for i, t := range tiles {
		if t.Position.X != i%size || t.Position.Y != i/size {
			return nil, fmt.Errorf("restore island: tile %d has position %s", i, t.Position)
		}
	}
	return &Island{
		WorldX: worldX,
		WorldY: worldY,
		Size:   size,
		tiles:  append([]Tile(nil), tiles...),
	}, nil
}

// InBounds returns true if (x, y) lies inside the grid.
func (is *Island) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < is.Size && y < is.Size
}

// At returns the tile at (x, y). The boolean is false outside the grid.
func (is *Island) At(x, y int) (Tile, bool) {
	if !is.InBounds(x, y) {
		return Tile{}, false
	}
	return is.tiles[y*is.Size+x], true
}

// Tiles returns a copy of the grid in row-major order.
func (is *Island) Tiles() []Tile {
	return append([]Tile(nil), is.tiles...)
}

// Center returns the centre cell the flood fill starts from.
func (is *Island) Center() Coordinate {
	return Coordinate{X: is.Size / 2, Y: is.Size / 2}
}

// LandCount returns the number of land tiles.
func (is *Island) LandCount() int {
	n := 0
	for _, t := range is.tiles {
		if t.IsLand() {
			n++
		}
	}
	return n
}

// String returns a summary of the island.
func (is *Island) String() string {
	return fmt.Sprintf("Island(world=(%d, %d), size=%d, land=%d)", is.WorldX, is.WorldY, is.Size, is.LandCount())
}

func (is *Island) set(x, y int, t Tile) {
	is.tiles[y*is.Size+x] = t
}
