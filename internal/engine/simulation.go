// Simulation ties an island to the chunks built on it and advances them each tick.
package engine

import (
	"log/slog"

	"github.com/talgya/citysupplier/internal/chunk"
	"github.com/talgya/citysupplier/internal/world"
)

// Simulation holds the world state driven by the engine.
type Simulation struct {
	Island   *world.Island
	Chunks   []*chunk.Chunk
	LastTick uint64 // Most recent tick processed
}

// NewSimulation creates a Simulation over a generated island.
func NewSimulation(is *world.Island, chunks ...*chunk.Chunk) *Simulation {
	return &Simulation{
		Island: is,
		Chunks: chunks,
	}
}

// CurrentTick returns the most recently processed tick number.
func (s *Simulation) CurrentTick() uint64 {
	return s.LastTick
}

// AddChunk registers a chunk to be advanced every tick.
func (s *Simulation) AddChunk(c *chunk.Chunk) {
	s.Chunks = append(s.Chunks, c)
}

// TickMinute runs every tick: integrate each chunk's balance into its stock.
func (s *Simulation) TickMinute(tick uint64) {
	s.LastTick = tick
	for _, c := range s.Chunks {
		c.Update(tick)
	}
}

// TickDay logs a ledger summary for every chunk.
func (s *Simulation) TickDay(tick uint64) {
	for _, c := range s.Chunks {
		for _, e := range c.Ledger() {
			slog.Info("chunk ledger",
				"time", SimTime(tick),
				"chunk", c.Coord,
				"resource", e.Type,
				"stock", e.Stock,
				"balance", e.Balance,
			)
		}
	}
}

var _ Updateable = (*chunk.Chunk)(nil)
