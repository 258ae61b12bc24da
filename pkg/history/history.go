// Package history persists tool invocation outcomes in a local SQLite
// database so past skill runs can be inspected with the history command.
package history

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	tooltypes "github.com/skillet-dev/skillet/pkg/types/tools"
)

const schema = `
CREATE TABLE IF NOT EXISTS invocations (
	id          TEXT PRIMARY KEY,
	tool        TEXT NOT NULL,
	parameters  TEXT NOT NULL,
	success     INTEGER NOT NULL,
	error       TEXT NOT NULL DEFAULT '',
	duration_ms INTEGER NOT NULL,
	created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_invocations_created_at ON invocations(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_invocations_tool ON invocations(tool);
`

// Entry is one recorded invocation row.
type Entry struct {
	ID         string    `db:"id" json:"id"`
	Tool       string    `db:"tool" json:"tool"`
	Parameters string    `db:"parameters" json:"parameters"`
	Success    bool      `db:"success" json:"success"`
	Error      string    `db:"error" json:"error,omitempty"`
	DurationMS int64     `db:"duration_ms" json:"durationMs"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// Store records and lists tool invocations.
type Store struct {
	db *sqlx.DB
}

var _ tooltypes.InvocationRecorder = (*Store)(nil)

// DefaultDBPath returns the default path of the history database.
func DefaultDBPath() (string, error) {
	if basePath := os.Getenv("SKILLET_BASE_PATH"); basePath != "" {
		return filepath.Join(basePath, "history.db"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, ".skillet", "history.db"), nil
}

// Open opens or creates the history database at the given path.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create database directory")
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	if err := configure(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create schema")
	}

	return &Store{db: db}, nil
}

func configure(ctx context.Context, db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return errors.Wrapf(err, "failed to execute pragma: %s", pragma)
		}
	}

	db.SetMaxIdleConns(1)
	db.SetMaxOpenConns(1)

	var journalMode string
	if err := db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode); err != nil {
		return errors.Wrap(err, "failed to query journal mode")
	}
	if strings.ToLower(journalMode) != "wal" {
		return errors.Errorf("WAL mode not enabled, current mode: %s", journalMode)
	}

	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one invocation outcome.
func (s *Store) Record(ctx context.Context, inv tooltypes.Invocation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO invocations (id, tool, parameters, success, error, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Tool, inv.Parameters, inv.Success, inv.Error, inv.DurationMS, time.Now().UTC())
	return errors.Wrap(err, "failed to record invocation")
}

// ListOptions filters a history listing.
type ListOptions struct {
	Limit      int
	FailedOnly bool
	Tool       string
}

// List returns the most recent invocations, newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	if opts.Limit <= 0 {
		opts.Limit = 20
	}

	query := "SELECT id, tool, parameters, success, error, duration_ms, created_at FROM invocations"
	var conds []string
	var args []any

	if opts.FailedOnly {
		conds = append(conds, "success = 0")
	}
	if opts.Tool != "" {
		conds = append(conds, "tool = ?")
		args = append(args, opts.Tool)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, opts.Limit)

	var entries []Entry
	if err := s.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, errors.Wrap(err, "failed to list invocations")
	}
	return entries, nil
}
