// Package entity provides the things placed on a chunk grid and the
// cardinal directions linking them.
package entity

import (
	"github.com/google/uuid"

	"github.com/talgya/citysupplier/internal/resource"
	"github.com/talgya/citysupplier/internal/world"
)

// Direction is one of the four cardinal neighbours.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists all four directions in declaration order.
var Directions = [4]Direction{Up, Down, Left, Right}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Offset returns the grid delta for d. Up is towards smaller y.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 1, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// Entity is anything a chunk can hold. Neighbour references are
// non-owning and maintained by the chunk.
type Entity interface {
	ID() uuid.UUID
	Position() world.Coordinate
	SetPosition(world.Coordinate)
	Neighbor(Direction) Entity
	SetNeighbor(Direction, Entity)
}

// Base implements Entity and is embedded by concrete entity kinds.
type Base struct {
	id        uuid.UUID
	pos       world.Coordinate
	neighbors [4]Entity
}

// NewBase returns a Base with a fresh identity.
func NewBase() Base {
	return Base{id: uuid.New()}
}

func (b *Base) ID() uuid.UUID { return b.id }
func (b *Base) Position() world.Coordinate { return b.pos }
func (b *Base) SetPosition(p world.Coordinate) { b.pos = p }

func (b *Base) Neighbor(d Direction) Entity {
	if int(d) >= len(b.neighbors) {
		return nil
	}
	return b.neighbors[d]
}

func (b *Base) SetNeighbor(d Direction, e Entity) {
	if int(d) >= len(b.neighbors) {
		return
	}
	b.neighbors[d] = e
}

// Building is an entity that runs a recipe while placed.
type Building struct {
	Base
	Name   string
	recipe resource.Recipe
}

// NewBuilding creates a building; its recipe is fixed for its lifetime.
func NewBuilding(name string, recipe resource.Recipe) *Building {
	return &Building{Base: NewBase(), Name: name, recipe: recipe}
}

// Recipe returns the building's recipe.
func (b *Building) Recipe() resource.Recipe {
	return b.recipe
}

// Marker is a plain entity with no behaviour, such as a road or decoration.
type Marker struct {
	Base
	Kind string
}

// NewMarker creates a marker of the given kind.
func NewMarker(kind string) *Marker {
	return &Marker{Base: NewBase(), Kind: kind}
}
