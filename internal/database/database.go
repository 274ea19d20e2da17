// Package database provides the Postgres connection pool and transaction
// helpers the repositories build on.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/carefac/roster/internal/config"
	"github.com/carefac/roster/pkg/logger"

	_ "github.com/lib/pq"
)

// DB wraps *sql.DB with slow-query logging and transaction helpers.
type DB struct {
	*sql.DB
	cfg *config.DatabaseConfig
}

// New opens a connection pool and verifies it with a ping.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Name).
		Msg("connected to database")

	return &DB{DB: db, cfg: cfg}, nil
}

// Close closes the underlying pool.
func (db *DB) Close() error {
	if db.DB != nil {
		logger.Info().Msg("closing database connection")
		return db.DB.Close()
	}
	return nil
}

// Health pings the database.
func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// Transaction runs fn inside a transaction, rolling back on error or panic.
func (db *DB) Transaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// LockMonth takes a transaction-scoped advisory lock keyed on (year,
// month), serializing concurrent ReplaceMonth calls for the same month
// without blocking generation for a different month. The lock is released
// automatically when tx commits or rolls back.
func LockMonth(ctx context.Context, tx *sql.Tx, year, month int) error {
	h := fnv.New64a()
	fmt.Fprintf(h, "roster-month:%04d-%02d", year, month)
	key := int64(h.Sum64())
	_, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", key)
	return err
}

// Stats returns the pool's current statistics.
func (db *DB) Stats() sql.DBStats {
	return db.DB.Stats()
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := db.DB.ExecContext(ctx, query, args...)
	if duration := time.Since(start); duration > 100*time.Millisecond {
		logger.Warn().Str("query", truncateQuery(query)).Dur("duration", duration).Msg("slow query")
	}
	return result, err
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := db.DB.QueryContext(ctx, query, args...)
	if duration := time.Since(start); duration > 100*time.Millisecond {
		logger.Warn().Str("query", truncateQuery(query)).Dur("duration", duration).Msg("slow query")
	}
	return rows, err
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return db.DB.QueryRowContext(ctx, query, args...)
}

func truncateQuery(query string) string {
	if len(query) > 200 {
		return query[:200] + "..."
	}
	return query
}
