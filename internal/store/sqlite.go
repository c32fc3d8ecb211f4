package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/cartscan/cartscan/internal/model"
)

// snapshotKey is the key the serialized list is stored under: one key,
// one JSON blob, replaced wholesale on every write.
const snapshotKey = "shoppingList"

// SQLitePersister stores the list snapshot in a single-row key-value
// table inside a SQLite database file.
//
// Design decision: SQLite rather than a bare JSON file because writes are
// atomic without rename dances, and the database gives us a natural place
// for future keys (settings, multiple named lists) without a format
// migration.
type SQLitePersister struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures SQLitePersister behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging. Recommended for most uses.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// OpenSQLite opens or creates the list database in dataDir.
func OpenSQLite(dataDir string, opts Options) (*SQLitePersister, error) {
	dbPath := filepath.Join(dataDir, "cartscan.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dataDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to refuse creating new files and
	// mode=rwc to allow creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports only one writer; a larger pool buys nothing here.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	p := &SQLitePersister{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := p.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return p, nil
}

// Close closes the database connection.
func (p *SQLitePersister) Close() error {
	return p.db.Close()
}

// Path returns the database file path, for log messages.
func (p *SQLitePersister) Path() string {
	return p.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (p *SQLitePersister) createTables() error {
	schema := `
	-- Snapshots is a key-value table; the list lives under one key as a
	-- JSON blob. Extra keys (settings, named lists) can join later.
	CREATE TABLE IF NOT EXISTS snapshots (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := p.db.ExecContext(context.Background(), schema)
	return err
}

// Load implements Persister. Missing or corrupt state yields an empty
// snapshot, never an error: recoverable damage must not block startup.
func (p *SQLitePersister) Load(ctx context.Context) (model.Snapshot, error) {
	var raw string
	err := p.db.QueryRowContext(ctx,
		"SELECT value FROM snapshots WHERE key = ?", snapshotKey,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snapshot model.Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		// Corrupt blob: start empty rather than refusing to run.
		return model.Snapshot{}, nil
	}
	return snapshot, nil
}

// Save implements Persister. The full snapshot replaces the stored value.
func (p *SQLitePersister) Save(ctx context.Context, snapshot model.Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP`,
		snapshotKey, string(raw),
	)
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
