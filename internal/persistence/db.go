// Package persistence provides SQLite-based storage for generated islands.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/vmihailenco/msgpack"
	_ "modernc.org/sqlite"

	"github.com/talgya/citysupplier/internal/world"
)

// ErrNotFound is returned when no row matches the lookup.
var ErrNotFound = errors.New("not found")

// DB wraps a SQLite connection for island storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS islands (
		world_x INTEGER NOT NULL,
		world_y INTEGER NOT NULL,
		size INTEGER NOT NULL,
		land_count INTEGER NOT NULL,
		tiles BLOB NOT NULL,
		PRIMARY KEY (world_x, world_y)
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

type islandRow struct {
	WorldX    int    `db:"world_x"`
	WorldY    int    `db:"world_y"`
	Size      int    `db:"size"`
	LandCount int    `db:"land_count"`
	Tiles     []byte `db:"tiles"`
}

// SaveIsland stores an island, replacing any previous island at the same
// world coordinate.
func (db *DB) SaveIsland(is *world.Island) error {
	blob, err := msgpack.Marshal(is.Tiles())
	if err != nil {
		return fmt.Errorf("encode island (%d, %d): %w", is.WorldX, is.WorldY, err)
	}

	_, err = db.conn.NamedExec(`INSERT OR REPLACE INTO islands
		(world_x, world_y, size, land_count, tiles)
		VALUES (:world_x, :world_y, :size, :land_count, :tiles)`,
		islandRow{
			WorldX:    is.WorldX,
			WorldY:    is.WorldY,
			Size:      is.Size,
			LandCount: is.LandCount(),
			Tiles:     blob,
		},
	)
	if err != nil {
		return fmt.Errorf("insert island (%d, %d): %w", is.WorldX, is.WorldY, err)
	}

	slog.Debug("island saved", "world_x", is.WorldX, "world_y", is.WorldY, "bytes", len(blob))
	return nil
}

// LoadIsland reads the island stored for a world coordinate.
func (db *DB) LoadIsland(worldX, worldY int) (*world.Island, error) {
	var row islandRow
	err := db.conn.Get(&row,
		"SELECT world_x, world_y, size, land_count, tiles FROM islands WHERE world_x = ? AND world_y = ?",
		worldX, worldY,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("island (%d, %d): %w", worldX, worldY, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select island (%d, %d): %w", worldX, worldY, err)
	}

	var tiles []world.Tile
	if err := msgpack.Unmarshal(row.Tiles, &tiles); err != nil {
		return nil, fmt.Errorf("decode island (%d, %d): %w", worldX, worldY, err)
	}
	return world.RestoreIsland(row.WorldX, row.WorldY, row.Size, tiles)
}

// HasIsland reports whether an island is stored for a world coordinate.
func (db *DB) HasIsland(worldX, worldY int) (bool, error) {
	var n int
	err := db.conn.Get(&n, "SELECT COUNT(*) FROM islands WHERE world_x = ? AND world_y = ?", worldX, worldY)
	return n > 0, err
}

// IslandCount returns the number of stored islands.
func (db *DB) IslandCount() (int, error) {
	var n int
	err := db.conn.Get(&n, "SELECT COUNT(*) FROM islands")
	return n, err
}

// SaveMeta stores a key-value pair in world metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("meta %q: %w", key, ErrNotFound)
	}
	return value, err
}
