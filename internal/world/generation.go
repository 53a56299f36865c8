// Island generation: a noisy coastline ring swept around the grid centre,
// then a flood fill that turns the ring's interior into one landmass.
package world

import (
	"fmt"
	"log/slog"
	"math"
)

const (
	// angleStep is the sweep increment. The number of samples, not the
	// angular range, sets coastline density; changing it changes every island.
	angleStep = 0.01

	// fertilityScale and fertilitySpread shape the fertility noise lookup.
	fertilityScale  = 0.1
	fertilitySpread = 1.1

	// fillMargin bounds the flood fill to the disc the sweep reached, plus
	// enough slack to cover cells whose floor() put them just past it.
	fillMargin = 2.0
)

// Generator produces islands from a noise source and fixed parameters.
// A Generator holds no per-island state and may be shared by goroutines as
// long as its Noise is safe for concurrent reads.
type Generator struct {
	cfg   GenConfig
	noise Noise
}

// NewGenerator validates cfg and returns a generator sampling noise.
func NewGenerator(cfg GenConfig, noise Noise) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if noise == nil {
		return nil, fmt.Errorf("%w: nil noise source", ErrInvalidConfig)
	}
	return &Generator{cfg: cfg, noise: noise}, nil
}

// Config returns the generator's parameters.
func (g *Generator) Config() GenConfig {
	return g.cfg
}

// Generate builds the island for world coordinate (worldX, worldY).
// The same coordinate, config and noise always produce the same island.
func (g *Generator) Generate(worldX, worldY int) *Island {
	size := g.cfg.IslandSize
	middle := float64(size) / 2
	radius := math.Floor(middle * g.cfg.FillRatio)

	is := newIsland(worldX, worldY, size)

	originX := float64(worldX * size)
	originY := float64(worldY * size)

	// reach stays negative when the sweep draws nothing (radius 0).
	reach := -1.0
	samples := 0

	for angle := 0.0; angle < 2*math.Pi*radius; angle += angleStep {
		n := g.noise.Eval2(originX+math.Sin(angle), originY+math.Cos(angle))
		r := radius + n*g.cfg.CoastVariation
		if math.Abs(r) > reach {
			reach = math.Abs(r)
		}
		samples++

		x := int(math.Floor(r*math.Cos(angle) + middle))
		y := int(math.Floor(r*math.Sin(angle) + middle))
		if !is.InBounds(x, y) {
			continue
		}
		is.set(x, y, NewLand(Coordinate{X: x, Y: y}, g.fertility(worldX, x, y)))
	}

	g.floodFill(is, reach)

	slog.Debug("island generated",
		"world_x", worldX,
		"world_y", worldY,
		"size", size,
		"radius", radius,
		"samples", samples,
		"land", is.LandCount(),
	)
	return is
}

// fertility scores a land cell. Both noise axes are offset by worldX; islands
// that share a worldX therefore share a fertility field.
func (g *Generator) fertility(worldX, x, y int) float64 {
	base := float64(worldX * g.cfg.IslandSize)
	return 1 - g.noise.Eval2(base+float64(x)*fertilityScale, base+float64(y)*fertilityScale)*fertilitySpread
}

// floodFill converts every water cell 4-connected to the centre into land,
// stopping at existing land. It walks an explicit stack so depth is bounded
// by grid area rather than the call stack.
func (g *Generator) floodFill(is *Island, reach float64) {
	size := is.Size
	c := is.Center()

	if reach < 0 {
		// No coastline to stop at: plant the centre only.
		if t, _ := is.At(c.X, c.Y); !t.IsLand() {
			is.set(c.X, c.Y, NewLand(c, g.fertility(is.WorldX, c.X, c.Y)))
		}
		return
	}

	middle := float64(size) / 2
	limit := reach + fillMargin

	stack := make([]int, 0, size)
	stack = append(stack, c.Y*size+c.X)

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if is.tiles[idx].IsLand() {
			continue
		}
		x, y := idx%size, idx/size
		if math.Hypot(float64(x)+0.5-middle, float64(y)+0.5-middle) > limit {
			continue
		}

		is.tiles[idx] = NewLand(Coordinate{X: x, Y: y}, g.fertility(is.WorldX, x, y))

		if x+1 < size {
			stack = append(stack, idx+1)
		}
		if x > 0 {
			stack = append(stack, idx-1)
		}
		if y+1 < size {
			stack = append(stack, idx+size)
		}
		if y > 0 {
			stack = append(stack, idx-size)
		}
	}
}

// TerrainCounts returns a summary of tile kind distribution.
func TerrainCounts(is *Island) map[TileKind]int {
	counts := make(map[TileKind]int)
	for _, t := range is.tiles {
		counts[t.Kind]++
	}
	return counts
}

// MeanFertility returns the average fertility over land tiles, or 0 for an
// island without land.
func MeanFertility(is *Island) float64 {
	total, n := 0.0, 0
	for _, t := range is.tiles {
		if t.IsLand() {
			total += t.Fertility
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}
