// Command islandsim generates an island, stores it, and runs a demo chunk
// economy on top of it.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/citysupplier/internal/chunk"
	"github.com/talgya/citysupplier/internal/engine"
	"github.com/talgya/citysupplier/internal/entity"
	"github.com/talgya/citysupplier/internal/persistence"
	"github.com/talgya/citysupplier/internal/resource"
	"github.com/talgya/citysupplier/internal/world"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Configuration from environment.
	cfg, err := world.GenConfigFromEnv(os.Getenv)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	worldX := envIntOrDefault("WORLD_X", 0)
	worldY := envIntOrDefault("WORLD_Y", 0)
	dbPath := envOrDefault("ISLANDSIM_DB", "data/islands.db")
	maxTicks := envIntOrDefault("ISLANDSIM_TICKS", engine.TicksPerSimDay)
	tickMs := envIntOrDefault("ISLANDSIM_TICK_MS", 5)

	slog.Info("island simulation starting",
		"island_size", cfg.IslandSize,
		"fill_ratio", cfg.FillRatio,
		"coast_variation", cfg.CoastVariation,
		"seed", cfg.Seed,
		"world_x", worldX,
		"world_y", worldY,
	)

	// ── Database ──────────────────────────────────────────────────────
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		slog.Error("failed to create data directory", "error", err)
		os.Exit(1)
	}
	db, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", dbPath)

	// ── Island ────────────────────────────────────────────────────────
	island, err := loadOrGenerate(db, cfg, worldX, worldY)
	if err != nil {
		slog.Error("failed to prepare island", "error", err)
		os.Exit(1)
	}

	counts := world.TerrainCounts(island)
	for kind, n := range counts {
		slog.Info("terrain", "type", world.TileKindName(kind), "count", humanize.Comma(int64(n)))
	}
	slog.Info("island ready",
		"island", island.String(),
		"mean_fertility", fmt.Sprintf("%.3f", world.MeanFertility(island)),
	)

	// ── Chunk ─────────────────────────────────────────────────────────
	home := chunk.New(chunk.Coord{X: worldX, Y: worldY})
	placed := seedChunk(home, island)
	slog.Info("chunk seeded", "buildings", placed, "occupied", home.Occupied())

	// ── Simulation ────────────────────────────────────────────────────
	sim := engine.NewSimulation(island, home)

	var startTick uint64
	if tickStr, err := db.GetMeta("last_tick"); err == nil {
		if t, err := strconv.ParseUint(tickStr, 10, 64); err == nil {
			startTick = t
		}
	}

	eng := engine.NewEngine()
	eng.Tick = startTick
	eng.Interval = time.Duration(tickMs) * time.Millisecond
	eng.MaxTicks = startTick + uint64(maxTicks)

	eng.OnTick = sim.TickMinute
	eng.OnDay = func(tick uint64) {
		sim.TickDay(tick)
		saveTick(db, tick)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	fmt.Printf("\n%s: %s land tiles, %d buildings producing.\n",
		island, humanize.Comma(int64(counts[world.TileLand])), placed)
	fmt.Printf("Running %s ticks from %s... (Ctrl+C to stop)\n",
		humanize.Comma(int64(maxTicks)), engine.SimTime(startTick))

	eng.Run()

	saveTick(db, eng.Tick)
	for _, e := range home.Ledger() {
		fmt.Printf("  %-6s stock %10.1f  balance %+6.1f/tick\n", e.Type, e.Stock, e.Balance)
	}
	fmt.Println("Simulation stopped at", engine.SimTime(eng.Tick))
}

// loadOrGenerate returns the stored island for the coordinate when it matches
// the configured size, generating and storing a fresh one otherwise.
func loadOrGenerate(db *persistence.DB, cfg world.GenConfig, worldX, worldY int) (*world.Island, error) {
	stored, err := db.LoadIsland(worldX, worldY)
	switch {
	case err == nil && stored.Size == cfg.IslandSize:
		slog.Info("loaded stored island", "world_x", worldX, "world_y", worldY)
		return stored, nil
	case err != nil && !errors.Is(err, persistence.ErrNotFound):
		return nil, err
	}

	gen, err := world.NewGenerator(cfg, world.NewNoise(cfg.Seed))
	if err != nil {
		return nil, err
	}

	start := time.Now()
	island := gen.Generate(worldX, worldY)
	slog.Info("island generated", "elapsed", time.Since(start))

	if err := db.SaveIsland(island); err != nil {
		return nil, fmt.Errorf("save island: %w", err)
	}
	return island, nil
}

// starterBuildings is the demo production chain placed on new chunks.
var starterBuildings = []struct {
	name   string
	recipe resource.Recipe
}{
	{"lumber camp", resource.NewRecipe(nil, []resource.Amount{{Type: resource.Wood, Amount: 3}})},
	{"sawmill", resource.NewRecipe(
		[]resource.Amount{{Type: resource.Wood, Amount: 2}},
		[]resource.Amount{{Type: resource.Plank, Amount: 1}},
	)},
	{"farm", resource.NewRecipe(nil, []resource.Amount{{Type: resource.Grain, Amount: 2}})},
	{"mill", resource.NewRecipe(
		[]resource.Amount{{Type: resource.Grain, Amount: 2}},
		[]resource.Amount{{Type: resource.Flour, Amount: 1}},
	)},
	{"well", resource.NewRecipe(nil, []resource.Amount{{Type: resource.Water, Amount: 1}})},
	{"bakery", resource.NewRecipe(
		[]resource.Amount{{Type: resource.Flour, Amount: 1}, {Type: resource.Water, Amount: 1}},
		[]resource.Amount{{Type: resource.Bread, Amount: 2}},
	)},
}

// seedChunk places the starter buildings in a row on land cells around the
// island centre and returns how many were placed.
func seedChunk(c *chunk.Chunk, island *world.Island) int {
	centre := island.Center()
	originX := centre.X - chunk.Size/2
	originY := centre.Y - chunk.Size/2

	placed := 0
	for y := 0; y < chunk.Size && placed < len(starterBuildings); y++ {
		for x := 0; x < chunk.Size && placed < len(starterBuildings); x++ {
			tile, ok := island.At(originX+x, originY+y)
			if !ok || !tile.IsLand() {
				continue
			}
			sb := starterBuildings[placed]
			if err := c.PlaceBuilding(x, y, entity.NewBuilding(sb.name, sb.recipe)); err != nil {
				slog.Warn("placement failed", "building", sb.name, "error", err)
				continue
			}
			placed++
		}
	}
	return placed
}

func saveTick(db *persistence.DB, tick uint64) {
	if err := db.SaveMeta("last_tick", strconv.FormatUint(tick, 10)); err != nil {
		slog.Error("save tick failed", "error", err)
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOrDefault(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}
