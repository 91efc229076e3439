package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/akash-eu-prime/leadgen-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS batches (
	id         TEXT PRIMARY KEY,
	count      INTEGER NOT NULL,
	leads      TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_batches_created_at ON batches(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveBatch(ctx context.Context, leads []model.Lead) (*Batch, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	leadsJSON, err := json.Marshal(leads)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal leads")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO batches (id, count, leads, created_at) VALUES (?, ?, ?, ?)`,
		id, len(leads), string(leadsJSON), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert batch")
	}

	return &Batch{ID: id, Count: len(leads), Leads: leads, CreatedAt: now}, nil
}

func (s *SQLiteStore) GetBatch(ctx context.Context, id string) (*Batch, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, count, leads, created_at FROM batches WHERE id = ?`,
		id,
	)
	return scanSQLiteBatch(row)
}

func (s *SQLiteStore) LatestBatch(ctx context.Context) (*Batch, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, count, leads, created_at FROM batches ORDER BY created_at DESC, id DESC LIMIT 1`,
	)
	return scanSQLiteBatch(row)
}

func (s *SQLiteStore) ListBatches(ctx context.Context, limit int) ([]BatchInfo, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, count, created_at FROM batches ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list batches")
	}
	defer rows.Close()

	var infos []BatchInfo
	for rows.Next() {
		var info BatchInfo
		if err := rows.Scan(&info.ID, &info.Count, &info.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan batch info")
		}
		infos = append(infos, info)
	}
	return infos, eris.Wrap(rows.Err(), "sqlite: iterate batches")
}

func scanSQLiteBatch(row *sql.Row) (*Batch, error) {
	var b Batch
	var leadsJSON string
	err := row.Scan(&b.ID, &b.Count, &leadsJSON, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan batch")
	}
	if err := json.Unmarshal([]byte(leadsJSON), &b.Leads); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal leads")
	}
	return &b, nil
}
