// Package world provides island terrain: tiles, the island grid and the
// noise-driven island generator.
package world

import "fmt"

// Coordinate identifies a cell within a grid. Valid cells never have
// negative components.
type Coordinate struct {
	X int `json:"x" msgpack:"x"`
	Y int `json:"y" msgpack:"y"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// TileKind classifies a tile's terrain.
type TileKind uint8

const (
	TileWater TileKind = iota // Open sea, not buildable
	TileLand                  // Buildable ground carrying a fertility score
)

// Tile is a single island cell. Tiles are values; once stored in an Island
// they are never modified.
type Tile struct {
	Position  Coordinate `json:"position" msgpack:"p"`
	Kind      TileKind   `json:"kind" msgpack:"k"`
	Fertility float64    `json:"fertility,omitempty" msgpack:"f"` // Land only, nominally 0.0–1.0 but not clamped
}

// NewWater returns a water tile at pos.
func NewWater(pos Coordinate) Tile {
	return Tile{Position: pos, Kind: TileWater}
}

// NewLand returns a land tile at pos with the given fertility.
func NewLand(pos Coordinate, fertility float64) Tile {
	return Tile{Position: pos, Kind: TileLand, Fertility: fertility}
}

// IsLand reports whether the tile is land.
func (t Tile) IsLand() bool {
	return t.Kind == TileLand
}

// TileKindName returns a human-readable name for a tile kind.
func TileKindName(k TileKind) string {
	switch k {
	case TileWater:
		return "Water"
	case TileLand:
		return "Land"
	default:
		return "Unknown"
	}
}
