package persistence

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/talgya/citysupplier/internal/world"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "islands.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveLoadIsland(t *testing.T) {
	db := openTestDB(t)

	cfg := world.SmallTestConfig()
	g, err := world.NewGenerator(cfg, world.NewNoise(cfg.Seed))
	if err != nil {
		t.Fatal(err)
	}
	is := g.Generate(-1, 4)

	if ok, err := db.HasIsland(-1, 4); err != nil || ok {
		t.Fatalf("HasIsland before save = %v, %v", ok, err)
	}
	if err := db.SaveIsland(is); err != nil {
		t.Fatalf("SaveIsland: %v", err)
	}
	// Saving again replaces rather than duplicates.
	if err := db.SaveIsland(is); err != nil {
		t.Fatalf("SaveIsland again: %v", err)
	}
	if n, err := db.IslandCount(); err != nil || n != 1 {
		t.Fatalf("IslandCount = %d, %v", n, err)
	}
	if ok, err := db.HasIsland(-1, 4); err != nil || !ok {
		t.Fatalf("HasIsland after save = %v, %v", ok, err)
	}

	got, err := db.LoadIsland(-1, 4)
	if err != nil {
		t.Fatalf("LoadIsland: %v", err)
	}
	if got.WorldX != -1 || got.WorldY != 4 || got.Size != is.Size {
		t.Fatalf("loaded header %s, want %s", got, is)
	}
	if !slices.Equal(got.Tiles(), is.Tiles()) {
		t.Fatal("loaded tiles differ from generated tiles")
	}
}

func TestLoadMissingIsland(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.LoadIsland(9, 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMeta(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.GetMeta("last_tick"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetMeta missing: err = %v", err)
	}
	if err := db.SaveMeta("last_tick", "42"); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveMeta("last_tick", "43"); err != nil {
		t.Fatal(err)
	}
	v, err := db.GetMeta("last_tick")
	if err != nil || v != "43" {
		t.Fatalf("GetMeta = %q, %v", v, err)
	}
}
