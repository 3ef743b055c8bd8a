package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/archlens/backend/pkg/logger"
	"github.com/archlens/backend/pkg/retry"
)

// ErrNotFound is returned when a record lookup matches no row.
var ErrNotFound = errors.New("record not found")

type Client struct {
	db *sql.DB
}

func NewClient(dbPath string) (*Client, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	_, err = db.Exec("PRAGMA journal_mode = WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	logger.Info("SQLite client initialized", zap.String("path", dbPath))

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS lenses (
		key TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		lens TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		lifecycle_status TEXT,
		parent TEXT,
		tags TEXT,
		primary_architect TEXT,
		secondary_architects TEXT,
		business_contact TEXT,
		tech_contact TEXT,
		architecture_manager TEXT,
		hyperlinks TEXT,
		skills_gaps TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		UNIQUE(lens, name)
	);
	CREATE INDEX IF NOT EXISTS idx_items_lens ON items(lens);
	CREATE INDEX IF NOT EXISTS idx_items_parent ON items(parent);

	CREATE TABLE IF NOT EXISTS relationships (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		from_item_id INTEGER NOT NULL,
		to_item_id INTEGER NOT NULL,
		from_lens TEXT NOT NULL,
		to_lens TEXT NOT NULL,
		relationship_type TEXT,
		from_role TEXT,
		to_role TEXT,
		lifecycle_status TEXT,
		note TEXT,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_relationships_from ON relationships(from_item_id);
	CREATE INDEX IF NOT EXISTS idx_relationships_to ON relationships(to_item_id);
	CREATE INDEX IF NOT EXISTS idx_relationships_from_lens ON relationships(from_lens);
	CREATE INDEX IF NOT EXISTS idx_relationships_to_lens ON relationships(to_lens);

	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		description TEXT NOT NULL,
		assigned_to TEXT,
		item_references TEXT,
		meeting_note_id INTEGER,
		completed_at INTEGER,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tasks_note ON tasks(meeting_note_id);

	CREATE TABLE IF NOT EXISTS meeting_notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		participants TEXT,
		date_time INTEGER NOT NULL,
		content TEXT,
		related_items TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_notes_date ON meeting_notes(date_time);

	CREATE TABLE IF NOT EXISTS team_members (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		manager TEXT
	);
	`

	_, err := c.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("SQLite schema initialized")
	return nil
}

// exec runs a write statement, retrying transient SQLITE_BUSY failures.
func (c *Client) exec(query string, args ...interface{}) (sql.Result, error) {
	var result sql.Result

	cfg := retry.Config{
		MaxAttempts:  3,
		InitialDelay: 25 * time.Millisecond,
		MaxDelay:     250 * time.Millisecond,
		Multiplier:   2.0,
		IsRetryable:  isBusy,
		Logger:       logger.Log,
	}

	err := retry.Do(context.Background(), cfg, func() error {
		var err error
		result, err = c.db.Exec(query, args...)
		return err
	})

	return result, err
}

func isBusy(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return false
}
