package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockseed/stockseed/internal/config"
)

// DBTX is the subset of pgx operations the provisioner and seeders
// need. Both *pgxpool.Pool and pgx.Tx satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Connection wraps the single pgx pool the run operates on.
type Connection struct {
	Pool *pgxpool.Pool
}

// Connect opens and pings the database named by the configured
// environment variable. Provisioning is destructive, so the pool is
// kept to a single connection; there is never a second writer.
func Connect(ctx context.Context, cfg *config.Config) (*Connection, error) {
	dbURL := os.Getenv(cfg.Database.URLEnv)
	if dbURL == "" {
		return nil, fmt.Errorf("%w: database URL not found in environment variable %s", ErrConnectivity, cfg.Database.URLEnv)
	}

	poolCfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse connection URL: %v", ErrConnectivity, err)
	}

	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec
	poolCfg.MaxConns = 1
	poolCfg.MinConns = 0
	poolCfg.MaxConnLifetime = 15 * time.Minute
	poolCfg.MaxConnIdleTime = 3 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create connection pool: %v", ErrConnectivity, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: failed to ping database: %v", ErrConnectivity, err)
	}

	return &Connection{Pool: pool}, nil
}

// Close releases the pool.
func (c *Connection) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}
