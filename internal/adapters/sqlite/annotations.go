package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"deriverse-dashboard/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// AnnotationStore implements ports.AnnotationStore using SQLite. Notes are the
// only state the dashboard persists; everything else is recomputed in memory.
type AnnotationStore struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite annotation store.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewAnnotationStore opens (and if needed creates) the notes database.
func NewAnnotationStore(cfg Config) (*AnnotationStore, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite annotation store")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/deriverse_notes.db"
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "annotation store initialization failed")
		return nil, err
	}

	// WAL mode for better concurrency between the HTTP handlers.
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "annotation store initialization failed")
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "annotation store initialization failed")
		return nil, err
	}

	// SQLite handles concurrency internally; the Go driver benefits from a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	store := &AnnotationStore{db: db, logger: cfg.Logger}
	if err := store.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize notes schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "annotation store initialization failed")
		return nil, err
	}

	cfg.Logger.Info(context.Background(), "annotation store ready", map[string]interface{}{"path": dbPath})
	return store, nil
}

func (s *AnnotationStore) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS trade_notes (
		trade_id   TEXT PRIMARY KEY,
		note       TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Get returns the note for a trade ID.
func (s *AnnotationStore) Get(ctx context.Context, tradeID string) (string, bool, error) {
	var note string
	err := s.db.QueryRowContext(ctx, `SELECT note FROM trade_notes WHERE trade_id = ?`, tradeID).Scan(&note)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query note for trade '%s': %w", tradeID, err)
	}
	return note, true, nil
}

// Set stores or replaces the note for a trade ID.
func (s *AnnotationStore) Set(ctx context.Context, tradeID, note string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO trade_notes (trade_id, note, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(trade_id) DO UPDATE SET note = excluded.note, updated_at = excluded.updated_at`,
		tradeID, note, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to store note for trade '%s': %w", tradeID, err)
	}
	return nil
}

// Delete removes the note for a trade ID. Deleting a missing note is a no-op.
func (s *AnnotationStore) Delete(ctx context.Context, tradeID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM trade_notes WHERE trade_id = ?`, tradeID)
	if err != nil {
		return fmt.Errorf("failed to delete note for trade '%s': %w", tradeID, err)
	}
	return nil
}

// All returns every stored note keyed by trade ID.
func (s *AnnotationStore) All(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT trade_id, note FROM trade_notes`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make(map[string]string)
	for rows.Next() {
		var tradeID, note string
		if err := rows.Scan(&tradeID, &note); err != nil {
			return nil, fmt.Errorf("failed to scan note row: %w", err)
		}
		notes[tradeID] = note
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating note rows: %w", err)
	}
	return notes, nil
}

// Lookup adapts the store into a ports.NoteLookup snapshot. Errors degrade to
// "no override" so a broken notes DB never blocks snapshot builds.
func (s *AnnotationStore) Lookup(ctx context.Context) ports.NoteLookup {
	return func(tradeID string) (string, bool) {
		note, ok, err := s.Get(ctx, tradeID)
		if err != nil {
			s.logger.Warn(ctx, "note lookup failed, ignoring override", map[string]interface{}{"tradeID": tradeID})
			return "", false
		}
		return note, ok
	}
}

// Close closes the underlying database connection.
func (s *AnnotationStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
