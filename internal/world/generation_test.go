package world

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func mustGenerator(t *testing.T, cfg GenConfig, noise Noise) *Generator {
	t.Helper()
	g, err := NewGenerator(cfg, noise)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return g
}

// landComponentSize counts land cells 4-connected to the centre.
func landComponentSize(is *Island) int {
	c := is.Center()
	if t, _ := is.At(c.X, c.Y); !t.IsLand() {
		return 0
	}
	seen := make([]bool, is.Size*is.Size)
	queue := []Coordinate{c}
	seen[c.Y*is.Size+c.X] = true
	n := 0
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		n++
		for _, d := range [4]Coordinate{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := p.X+d.X, p.Y+d.Y
			t, ok := is.At(nx, ny)
			if !ok || !t.IsLand() || seen[ny*is.Size+nx] {
				continue
			}
			seen[ny*is.Size+nx] = true
			queue = append(queue, Coordinate{nx, ny})
		}
	}
	return n
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultGenConfig()
	g := mustGenerator(t, cfg, NewNoise(cfg.Seed))

	first := g.Generate(3, -2).Tiles()
	second := g.Generate(3, -2).Tiles()
	if !slices.Equal(first, second) {
		t.Fatal("Generate not deterministic for the same world coordinate")
	}

	// A fresh noise source with the same seed must reproduce the island too.
	other := mustGenerator(t, cfg, NewNoise(cfg.Seed))
	if !slices.Equal(first, other.Generate(3, -2).Tiles()) {
		t.Fatal("Generate not deterministic across generators with equal seed")
	}

	if slices.Equal(first, g.Generate(4, -2).Tiles()) {
		t.Fatal("different world coordinates produced identical islands")
	}
}

func TestGenerateSingleConnectedLandmass(t *testing.T) {
	configs := map[string]GenConfig{
		"default": DefaultGenConfig(),
		"small":   SmallTestConfig(),
	}
	for name, cfg := range configs {
		g := mustGenerator(t, cfg, NewNoise(cfg.Seed))
		for wx := -2; wx <= 2; wx++ {
			for wy := -2; wy <= 2; wy++ {
				is := g.Generate(wx, wy)
				land := is.LandCount()
				if land == 0 {
					t.Fatalf("%s (%d,%d): no land", name, wx, wy)
				}
				if got := landComponentSize(is); got != land {
					t.Fatalf("%s (%d,%d): centre component has %d of %d land tiles", name, wx, wy, got, land)
				}
			}
		}
	}
}

func TestGenerateEveryCellSet(t *testing.T) {
	cfg := SmallTestConfig()
	is := mustGenerator(t, cfg, NewNoise(cfg.Seed)).Generate(1, 1)

	tiles := is.Tiles()
	if len(tiles) != cfg.IslandSize*cfg.IslandSize {
		t.Fatalf("got %d tiles, want %d", len(tiles), cfg.IslandSize*cfg.IslandSize)
	}
	for i, tile := range tiles {
		want := Coordinate{X: i % cfg.IslandSize, Y: i / cfg.IslandSize}
		if tile.Position != want {
			t.Fatalf("tile %d at %s, want %s", i, tile.Position, want)
		}
		if tile.Kind != TileWater && tile.Kind != TileLand {
			t.Fatalf("tile %d has unknown kind %d", i, tile.Kind)
		}
	}

	counts := TerrainCounts(is)
	if counts[TileWater]+counts[TileLand] != len(tiles) {
		t.Fatalf("terrain counts %v do not cover %d tiles", counts, len(tiles))
	}
	if counts[TileWater] == 0 {
		t.Fatal("expected open water around the island")
	}
}

func TestGenerateTinyFillRatioPlantsCentreOnly(t *testing.T) {
	cfg := GenConfig{IslandSize: 32, FillRatio: 0.01, CoastVariation: 5, Seed: 7}
	is := mustGenerator(t, cfg, NewNoise(cfg.Seed)).Generate(0, 0)

	if got := is.LandCount(); got != 1 {
		t.Fatalf("LandCount = %d, want 1", got)
	}
	c := is.Center()
	if tile, _ := is.At(c.X, c.Y); !tile.IsLand() {
		t.Fatalf("centre %s is not land", c)
	}
}

func TestGenerateFlatNoiseFillsDisc(t *testing.T) {
	cfg := GenConfig{IslandSize: 40, FillRatio: 0.5, CoastVariation: 3}
	flat := NoiseFunc(func(x, y float64) float64 { return 0 })
	is := mustGenerator(t, cfg, flat).Generate(0, 0)

	// radius = floor(20 * 0.5) = 10: the disc interior is land, corners are water.
	for _, p := range []Coordinate{{20, 20}, {15, 20}, {20, 25}, {25, 24}} {
		if tile, _ := is.At(p.X, p.Y); !tile.IsLand() {
			t.Fatalf("%s inside the coastline is not land", p)
		}
	}
	for _, p := range []Coordinate{{0, 0}, {39, 0}, {0, 39}, {39, 39}, {20, 35}, {4, 20}} {
		if tile, _ := is.At(p.X, p.Y); tile.IsLand() {
			t.Fatalf("%s outside the coastline is land", p)
		}
	}
	// Zero noise gives fertility exactly 1 everywhere.
	if got := MeanFertility(is); got != 1 {
		t.Fatalf("MeanFertility = %v, want 1", got)
	}
}

func TestGenerateCoastOutsideGridIgnored(t *testing.T) {
	cfg := GenConfig{IslandSize: 16, FillRatio: 1, CoastVariation: 12, Seed: 3}
	is := mustGenerator(t, cfg, NewNoise(cfg.Seed)).Generate(5, 9)

	if got := len(is.Tiles()); got != 16*16 {
		t.Fatalf("got %d tiles, want 256", got)
	}
	c := is.Center()
	if tile, _ := is.At(c.X, c.Y); !tile.IsLand() {
		t.Fatal("centre must be land")
	}
}

func TestFertilityUsesWorldXOnBothAxes(t *testing.T) {
	cfg := SmallTestConfig()
	noise := NewNoise(cfg.Seed)
	g := mustGenerator(t, cfg, noise)

	a := g.Generate(3, 0)
	b := g.Generate(3, 7)

	for _, tile := range a.Tiles() {
		if !tile.IsLand() {
			continue
		}
		x, y := tile.Position.X, tile.Position.Y
		base := float64(3 * cfg.IslandSize)
		want := 1 - noise.Eval2(base+float64(x)*0.1, base+float64(y)*0.1)*1.1
		if tile.Fertility != want {
			t.Fatalf("fertility at %s = %v, want %v", tile.Position, tile.Fertility, want)
		}
		if other, _ := b.At(x, y); other.IsLand() && other.Fertility != tile.Fertility {
			t.Fatalf("fertility at %s differs between world rows: %v vs %v", tile.Position, tile.Fertility, other.Fertility)
		}
	}
}

func TestFertilityNotClamped(t *testing.T) {
	cfg := GenConfig{IslandSize: 20, FillRatio: 0.5, CoastVariation: 0}
	high := NoiseFunc(func(x, y float64) float64 { return -1 })
	is := mustGenerator(t, cfg, high).Generate(0, 0)

	want := 1 + 1.1
	if got := MeanFertility(is); math.Abs(got-want) > 1e-12 {
		t.Fatalf("MeanFertility = %v, want %v", got, want)
	}
}

func TestGenerateLargeIsland(t *testing.T) {
	if testing.Short() {
		t.Skip("large island in short mode")
	}
	cfg := GenConfig{IslandSize: 600, FillRatio: 0.9, CoastVariation: 10, Seed: 11}
	is := mustGenerator(t, cfg, NewNoise(cfg.Seed)).Generate(0, 0)
	if land := is.LandCount(); land < 600*600/4 {
		t.Fatalf("LandCount = %d, expected a large filled island", land)
	}
}

func TestNewGeneratorRejectsBadInput(t *testing.T) {
	if _, err := NewGenerator(GenConfig{IslandSize: 0, FillRatio: 0.5}, NewNoise(1)); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("size 0: err = %v, want ErrInvalidConfig", err)
	}
	if _, err := NewGenerator(DefaultGenConfig(), nil); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("nil noise: err = %v, want ErrInvalidConfig", err)
	}
}
