package saves

import (
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/savegame"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS saves (
	slot     TEXT PRIMARY KEY,
	saved_at INTEGER NOT NULL,
	level    INTEGER NOT NULL,
	race     TEXT NOT NULL,
	class    TEXT NOT NULL,
	turns    INTEGER NOT NULL,
	document TEXT NOT NULL
)`

// SQLiteConfig holds the configuration for the SQLite repository
type SQLiteConfig struct {
	// Path is a database file, or ":memory:"
	Path string
}

// Validate ensures all required settings are provided
func (c *SQLiteConfig) Validate() error {
	if strings.TrimSpace(c.Path) == "" {
		return errors.InvalidArgument("sqlite path is required")
	}
	return nil
}

// SQLiteRepository stores saves in one SQLite table. Close releases the
// database handle.
type SQLiteRepository struct {
	db *sql.DB
}

// Ensure SQLiteRepository implements Repository
var _ Repository = (*SQLiteRepository)(nil)

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

// NewSQLiteRepository opens the database and creates the saves table
func NewSQLiteRepository(ctx context.Context, cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	dsn := cfg.Path
	if dsn != ":memory:" {
		dsn = filepath.Clean(dsn) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}
	// one connection keeps ":memory:" databases alive and serialises writes
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to ping sqlite database")
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create saves table")
	}
	return &SQLiteRepository{db: db}, nil
}

// Close closes the database handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Save upserts the slot
func (r *SQLiteRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	data, err := savegame.Encode(input.Document)
	if err != nil {
		return nil, err
	}
	summary := Summarize(input.Slot, input.Document)

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO saves (slot, saved_at, level, race, class, turns, document)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
		   saved_at = excluded.saved_at,
		   level = excluded.level,
		   race = excluded.race,
		   class = excluded.class,
		   turns = excluded.turns,
		   document = excluded.document`,
		input.Slot,
		toMillis(summary.SavedAt),
		summary.Level,
		summary.Race,
		summary.Class,
		summary.Turns,
		string(data),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save slot %s", input.Slot)
	}

	slog.Info("Game saved", "backend", "sqlite", "slot", input.Slot, "bytes", len(data))
	return &SaveOutput{Summary: summary}, nil
}

// Get reads the slot's document
func (r *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := ValidateSlot(input.Slot); err != nil {
		return nil, err
	}

	var data string
	err := r.db.QueryRowContext(ctx, `SELECT document FROM saves WHERE slot = ?`, input.Slot).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf(errSlotNotFound, input.Slot)
		}
		return nil, errors.Wrapf(err, "failed to get save slot %s", input.Slot)
	}

	doc, err := decode(input.Slot, []byte(data))
	if err != nil {
		return nil, err
	}
	return &GetOutput{Document: doc}, nil
}

// List reads the summary columns without decoding documents
func (r *SQLiteRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT slot, saved_at, level, race, class, turns FROM saves ORDER BY saved_at DESC, slot ASC`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list save slots")
	}
	defer rows.Close()

	saves := []Summary{}
	for rows.Next() {
		var s Summary
		var savedAt int64
		if err := rows.Scan(&s.Slot, &savedAt, &s.Level, &s.Race, &s.Class, &s.Turns); err != nil {
			return nil, errors.Wrap(err, "failed to scan save slot")
		}
		s.SavedAt = fromMillis(savedAt)
		saves = append(saves, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list save slots")
	}
	return &ListOutput{Saves: saves}, nil
}

// Delete removes the slot
func (r *SQLiteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := ValidateSlot(input.Slot); err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, input.Slot)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete save slot %s", input.Slot)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, errors.NotFoundf(errSlotNotFound, input.Slot)
	}

	slog.Info("Save deleted", "backend", "sqlite", "slot", input.Slot)
	return &DeleteOutput{}, nil
}
