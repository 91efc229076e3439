package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/akash-eu-prime/leadgen-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it
// too, so tests run without a live database.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool creates a PostgresStore over an existing pool.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS batches (
	id         TEXT PRIMARY KEY,
	count      INTEGER NOT NULL,
	leads      JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_batches_created_at ON batches(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveBatch(ctx context.Context, leads []model.Lead) (*Batch, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	leadsJSON, err := json.Marshal(leads)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal leads")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO batches (id, count, leads, created_at) VALUES ($1, $2, $3, $4)`,
		id, len(leads), leadsJSON, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert batch")
	}

	return &Batch{ID: id, Count: len(leads), Leads: leads, CreatedAt: now}, nil
}

func (s *PostgresStore) GetBatch(ctx context.Context, id string) (*Batch, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, count, leads, created_at FROM batches WHERE id = $1`,
		id,
	)
	return scanPostgresBatch(row)
}

func (s *PostgresStore) LatestBatch(ctx context.Context) (*Batch, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, count, leads, created_at FROM batches ORDER BY created_at DESC, id DESC LIMIT 1`,
	)
	return scanPostgresBatch(row)
}

func (s *PostgresStore) ListBatches(ctx context.Context, limit int) ([]BatchInfo, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, count, created_at FROM batches ORDER BY created_at DESC, id DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list batches")
	}
	defer rows.Close()

	var infos []BatchInfo
	for rows.Next() {
		var info BatchInfo
		if err := rows.Scan(&info.ID, &info.Count, &info.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan batch info")
		}
		infos = append(infos, info)
	}
	return infos, eris.Wrap(rows.Err(), "postgres: iterate batches")
}

func scanPostgresBatch(row pgx.Row) (*Batch, error) {
	var b Batch
	var leadsJSON []byte
	err := row.Scan(&b.ID, &b.Count, &leadsJSON, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan batch")
	}
	if err := json.Unmarshal(leadsJSON, &b.Leads); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal leads")
	}
	return &b, nil
}
