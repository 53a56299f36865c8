package world

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Environment variables read by GenConfigFromEnv.
const (
	EnvIslandSize     = "ISLAND_SIZE"
	EnvFillRatio      = "ISLAND_FILL_RATIO"
	EnvCoastVariation = "COAST_VARIATION"
	EnvNoiseSeed      = "NOISE_SEED"
)

// ErrInvalidConfig is returned when generation parameters are out of range.
var ErrInvalidConfig = errors.New("invalid generation config")

// GenConfig holds island generation parameters.
type GenConfig struct {
	IslandSize     int     // Grid side length in tiles
	FillRatio      float64 // Base radius as a fraction of half the grid (0.0–1.0]
	CoastVariation float64 // Tiles of radius perturbation per unit of noise
	Seed           int64   // Noise seed
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		IslandSize:     64,
		FillRatio:      0.6,
		CoastVariation: 6,
		Seed:           42,
	}
}

// SmallTestConfig returns a tiny island for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		IslandSize:     24,
		FillRatio:      0.5,
		CoastVariation: 2,
		Seed:           42,
	}
}

// Validate checks that the parameters describe a generatable island.
func (c GenConfig) Validate() error {
	if c.IslandSize <= 0 {
		return fmt.Errorf("%w: island size %d must be positive", ErrInvalidConfig, c.IslandSize)
	}
	if math.IsNaN(c.FillRatio) || c.FillRatio <= 0 || c.FillRatio > 1 {
		return fmt.Errorf("%w: fill ratio %v must be in (0, 1]", ErrInvalidConfig, c.FillRatio)
	}
	if math.IsNaN(c.CoastVariation) || math.IsInf(c.CoastVariation, 0) {
		return fmt.Errorf("%w: coast variation %v must be finite", ErrInvalidConfig, c.CoastVariation)
	}
	return nil
}

// GenConfigFromEnv overlays environment values onto DefaultGenConfig.
// Unset or empty variables keep their default.
func GenConfigFromEnv(getenv func(string) string) (GenConfig, error) {
	cfg := DefaultGenConfig()

	if v := getenv(EnvIslandSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("parse %s: %w", EnvIslandSize, err)
		}
		cfg.IslandSize = n
	}
	if v := getenv(EnvFillRatio); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("parse %s: %w", EnvFillRatio, err)
		}
		cfg.FillRatio = f
	}
	if v := getenv(EnvCoastVariation); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("parse %s: %w", EnvCoastVariation, err)
		}
		cfg.CoastVariation = f
	}
	if v := getenv(EnvNoiseSeed); v != "" {
		s, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("parse %s: %w", EnvNoiseSeed, err)
		}
		cfg.Seed = s
	}

	return cfg, cfg.Validate()
}
