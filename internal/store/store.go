// Package store persists generated lead batches so filter, stats, and
// export commands can operate on a prior generation run.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/akash-eu-prime/leadgen-cli/internal/config"
	"github.com/akash-eu-prime/leadgen-cli/internal/model"
)

// ErrNotFound is returned when a requested batch does not exist.
var ErrNotFound = eris.New("store: batch not found")

// Batch is one saved generation run.
type Batch struct {
	ID        string       `json:"id"`
	Count     int          `json:"count"`
	Leads     []model.Lead `json:"leads"`
	CreatedAt time.Time    `json:"created_at"`
}

// BatchInfo is a batch header without its leads, for listings.
type BatchInfo struct {
	ID        string    `json:"id"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}

// Store defines the persistence interface for lead batches.
type Store interface {
	SaveBatch(ctx context.Context, leads []model.Lead) (*Batch, error)
	GetBatch(ctx context.Context, id string) (*Batch, error)
	LatestBatch(ctx context.Context) (*Batch, error)
	ListBatches(ctx context.Context, limit int) ([]BatchInfo, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver and runs migrations.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Driver {
	case "sqlite":
		s, err = NewSQLite(cfg.DatabaseURL)
	case "postgres":
		s, err = NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unsupported driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
