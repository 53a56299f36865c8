// Package chunk holds a fixed-size grid of placed entities together with the
// chunk's resource ledger: the stock on hand and the net per-tick balance
// produced by active building recipes.
//
// A Chunk is not safe for concurrent use; callers serialise placement,
// removal and Update.
package chunk

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/talgya/citysupplier/internal/entity"
	"github.com/talgya/citysupplier/internal/resource"
	"github.com/talgya/citysupplier/internal/world"
)

// Size is the side length of a chunk in cells.
const Size = 16

// ErrOutOfBounds is matched by every error returned for coordinates outside
// [0, Size).
var ErrOutOfBounds = errors.New("outside chunk boundary")

// BoundsError reports the rejected coordinate.
type BoundsError struct {
	Op   string
	X, Y int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("can not %s entity outside of chunk boundary (%d, %d)", e.Op, e.X, e.Y)
}

func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }

// Coord locates a chunk in the world. It is informational only.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Chunk owns the entities placed in it. Cells are stored row-major:
// index = y*Size + x.
type Chunk struct {
	Coord Coord

	cells [Size * Size]entity.Entity

	// applied marks cells whose occupant's recipe is counted in balance.
	applied [Size * Size]bool

	stock   map[resource.Type]float64
	balance map[resource.Type]float64
}

// New creates an empty chunk.
func New(coord Coord) *Chunk {
	return &Chunk{
		Coord:   coord,
		stock:   make(map[resource.Type]float64),
		balance: make(map[resource.Type]float64),
	}
}

func inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < Size && y < Size
}

func index(x, y int) int {
	return y*Size + x
}

// At returns the entity at (x, y), or nil if the cell is empty.
func (c *Chunk) At(x, y int) (entity.Entity, error) {
	if !inBounds(x, y) {
		return nil, &BoundsError{Op: "get", X: x, Y: y}
	}
	return c.cells[index(x, y)], nil
}

// Neighbor resolves the occupant next to (x, y) in direction d from the grid
// itself. It returns nil outside the chunk or for an empty cell.
func (c *Chunk) Neighbor(x, y int, d entity.Direction) entity.Entity {
	dx, dy := d.Offset()
	nx, ny := x+dx, y+dy
	if !inBounds(nx, ny) {
		return nil
	}
	return c.cells[index(nx, ny)]
}

// Set places e at (x, y), assigning its position and linking it with the
// four adjacent occupants in both directions.
//
// A different entity already in the cell is displaced: its links are cleared
// and, if it was placed with PlaceBuilding, its recipe leaves the balance.
// If e already sits elsewhere in this chunk it is moved, keeping its recipe.
func (c *Chunk) Set(x, y int, e entity.Entity) error {
	if !inBounds(x, y) {
		return &BoundsError{Op: "set", X: x, Y: y}
	}
	if e == nil {
		return fmt.Errorf("set (%d, %d): nil entity", x, y)
	}
	c.set(x, y, e)
	return nil
}

func (c *Chunk) set(x, y int, e entity.Entity) {
	idx := index(x, y)

	carried := false
	if old := e.Position(); inBounds(old.X, old.Y) {
		oldIdx := index(old.X, old.Y)
		if oldIdx != idx && c.cells[oldIdx] == e {
			carried = c.detach(oldIdx)
		}
	}

	if prev := c.cells[idx]; prev != nil && prev != e {
		if c.detach(idx) {
			if b, ok := prev.(*entity.Building); ok {
				c.applyRecipe(b.Recipe(), -1)
			}
		}
		slog.Debug("chunk cell overwritten", "chunk", c.Coord, "x", x, "y", y, "displaced", prev.ID())
	}

	e.SetPosition(world.Coordinate{X: x, Y: y})
	for _, d := range entity.Directions {
		n := c.Neighbor(x, y, d)
		e.SetNeighbor(d, n)
		if n != nil {
			n.SetNeighbor(d.Opposite(), e)
		}
	}

	c.cells[idx] = e
	if carried {
		c.applied[idx] = true
	}
}

// detach empties a cell and clears the links to and from its occupant.
// It reports whether the occupant's recipe was counted in balance; the caller
// decides whether to reverse or carry it.
func (c *Chunk) detach(idx int) bool {
	e := c.cells[idx]
	if e == nil {
		return false
	}
	for _, d := range entity.Directions {
		n := e.Neighbor(d)
		if n != nil && n.Neighbor(d.Opposite()) == e {
			n.SetNeighbor(d.Opposite(), nil)
		}
		e.SetNeighbor(d, nil)
	}
	applied := c.applied[idx]
	c.cells[idx] = nil
	c.applied[idx] = false
	return applied
}

// Clear empties (x, y) and returns the previous occupant, if any. A building
// cleared this way stops contributing to balance.
func (c *Chunk) Clear(x, y int) (entity.Entity, error) {
	if !inBounds(x, y) {
		return nil, &BoundsError{Op: "clear", X: x, Y: y}
	}
	idx := index(x, y)
	prev := c.cells[idx]
	if prev == nil {
		return nil, nil
	}
	if c.detach(idx) {
		if b, ok := prev.(*entity.Building); ok {
			c.applyRecipe(b.Recipe(), -1)
		}
	}
	return prev, nil
}

// PlaceBuilding sets b at (x, y) and adds its recipe to the balance:
// inputs draw down, outputs build up. Placing the same building again does
// not count its recipe twice.
func (c *Chunk) PlaceBuilding(x, y int, b *entity.Building) error {
	if err := c.Set(x, y, b); err != nil {
		return err
	}
	idx := index(x, y)
	if !c.applied[idx] {
		c.applyRecipe(b.Recipe(), 1)
		c.applied[idx] = true
	}
	slog.Debug("building placed", "chunk", c.Coord, "name", b.Name, "x", x, "y", y, "recipe", b.Recipe())
	return nil
}

// RemoveBuilding takes b out of the chunk and reverses its recipe. It does
// nothing and returns false unless b is the occupant of its own recorded
// position.
func (c *Chunk) RemoveBuilding(b *entity.Building) bool {
	pos := b.Position()
	if !inBounds(pos.X, pos.Y) {
		return false
	}
	idx := index(pos.X, pos.Y)
	if c.cells[idx] != entity.Entity(b) {
		return false
	}
	if c.detach(idx) {
		c.applyRecipe(b.Recipe(), -1)
	}
	slog.Debug("building removed", "chunk", c.Coord, "name", b.Name, "x", pos.X, "y", pos.Y)
	return true
}

// applyRecipe adds sign times the recipe's net flow to balance.
func (c *Chunk) applyRecipe(r resource.Recipe, sign float64) {
	for _, in := range r.Inputs() {
		c.growBalance(in.Type, -sign*in.Amount)
	}
	for _, out := range r.Outputs() {
		c.growBalance(out.Type, sign*out.Amount)
	}
}

// growBalance also opens a zero stock entry so the type advances on Update.
func (c *Chunk) growBalance(t resource.Type, by float64) {
	c.balance[t] += by
	if _, ok := c.stock[t]; !ok {
		c.stock[t] = 0
	}
}

// Stock returns the quantity of t on hand. Unknown types hold zero.
func (c *Chunk) Stock(t resource.Type) float64 {
	return c.stock[t]
}

// Balance returns the net per-tick change of t. Unknown types hold zero.
func (c *Chunk) Balance(t resource.Type) float64 {
	return c.balance[t]
}

// Deposit adds amount of t to the stock.
func (c *Chunk) Deposit(t resource.Type, amount float64) {
	c.stock[t] += amount
}

// Update advances every stocked resource by its balance. The tick is not
// used for scaling yet; every call applies exactly one balance.
func (c *Chunk) Update(tick uint64) {
	for t, v := range c.stock {
		c.stock[t] = v + c.balance[t]
	}
}

// Occupied returns the number of non-empty cells.
func (c *Chunk) Occupied() int {
	n := 0
	for _, e := range c.cells {
		if e != nil {
			n++
		}
	}
	return n
}

// LedgerEntry is one resource line of a chunk's ledger.
type LedgerEntry struct {
	Type    resource.Type `json:"type"`
	Stock   float64       `json:"stock"`
	Balance float64       `json:"balance"`
}

// Ledger returns every resource the chunk has touched, ordered by type.
func (c *Chunk) Ledger() []LedgerEntry {
	entries := make([]LedgerEntry, 0, len(c.stock))
	for t, s := range c.stock {
		entries = append(entries, LedgerEntry{Type: t, Stock: s, Balance: c.balance[t]})
	}
	slices.SortFunc(entries, func(a, b LedgerEntry) int {
		return int(a.Type) - int(b.Type)
	})
	return entries
}
