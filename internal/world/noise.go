package world

import opensimplex "github.com/ojrac/opensimplex-go"

// Noise is a deterministic 2D coherent-noise source.
// opensimplex.Noise satisfies it.
type Noise interface {
	Eval2(x, y float64) float64
}

// NewNoise returns simplex noise in [-1, 1] for the given seed.
func NewNoise(seed int64) Noise {
	return opensimplex.New(seed)
}

// NoiseFunc adapts a plain function to the Noise interface.
type NoiseFunc func(x, y float64) float64

func (f NoiseFunc) Eval2(x, y float64) float64 { return f(x, y) }
