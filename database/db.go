package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool constants are fixed, not runtime-tunable. The directory sits behind
// a single shared physical connection; one idle connection is kept warm,
// checkouts give up after 30s, and connections are recycled after ten
// minutes idle or alive.
const (
	poolMaxConns        = 1
	poolMinConns        = 1
	poolConnectTimeout  = 30 * time.Second
	poolMaxConnIdleTime = 10 * time.Minute
	poolMaxConnLifetime = 10 * time.Minute
)

// DB wraps the shared connection pool to the relational user directory.
// Constructed once at process start and injected into everything that
// needs it; Close on shutdown.
type DB struct {
	Pool *pgxpool.Pool
}

func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = poolMaxConns
	config.MinConns = poolMinConns
	config.MaxConnLifetime = poolMaxConnLifetime
	config.MaxConnIdleTime = poolMaxConnIdleTime
	config.ConnConfig.ConnectTimeout = poolConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established")
	return &DB{Pool: pool}, nil
}

func (db *DB) Close() {
	db.Pool.Close()
	log.Println("Database connection closed")
}
