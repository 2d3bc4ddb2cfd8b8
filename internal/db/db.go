package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/geocoder89/tourneyhub/internal/config"
	"github.com/geocoder89/tourneyhub/internal/domain/tournament"
	"github.com/geocoder89/tourneyhub/internal/observability"
	"github.com/geocoder89/tourneyhub/internal/store"
	"github.com/geocoder89/tourneyhub/internal/store/memstore"
	"github.com/geocoder89/tourneyhub/internal/store/mongostore"
	"github.com/geocoder89/tourneyhub/internal/store/pgstore"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

func NewPool(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dbURL)

	if err != nil {
		return nil, err
	}

	cfg.MaxConns = 5

	// pgxpool connects lazily, a dead server shows up on first use
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Open builds the document store selected by cfg. Without a connection string
// it returns a nil store and the service runs without a database.
func Open(ctx context.Context, cfg config.Config, log *slog.Logger, prom *observability.Prom) (store.Store, error) {
	if cfg.DBURL == "" && cfg.StoreDriver != DriverMemory {
		log.Warn("DATABASE_URL not set, running without a database")
		return nil, nil
	}

	var backend store.Store

	switch cfg.StoreDriver {
	case DriverMongo:
		s, err := mongostore.Connect(ctx, cfg.DBURL, cfg.DBName)
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		backend = s

	case DriverPostgres:
		pool, err := NewPool(ctx, cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("postgres pool: %w", err)
		}
		backend = pgstore.New(pool)

	case DriverMemory:
		backend = memstore.New(cfg.DBName)

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := backend.Ping(ctx); err != nil {
		log.Warn("database ping failed, continuing", "driver", cfg.StoreDriver, "err", err)
	}

	// titles are the natural key of tournaments; a unique index keeps
	// concurrent first listings from seeding the demo records twice
	if idx, ok := backend.(store.Indexer); ok {
		if err := idx.EnsureUnique(ctx, tournament.Collection, "title"); err != nil {
			log.Warn("could not ensure unique tournament titles", "err", err)
		}
	}

	log.Info("database configured", "driver", cfg.StoreDriver, "name", backend.Name())

	return store.NewInstrumented(backend, prom, cfg.StoreDriver), nil
}
