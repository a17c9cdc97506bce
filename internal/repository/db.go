package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
)

// Open creates a Postgres connection pool and verifies connectivity,
// retrying a fixed number of times with a fixed delay between attempts.
// The caller decides what exhaustion means; for the services it is a
// fatal startup error.
func Open(ctx context.Context, dsn string, attempts int, delay time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		lastErr = db.PingContext(pingCtx)
		cancel()
		if lastErr == nil {
			return db, nil
		}

		slog.Warn("database not reachable, retrying",
			"attempt", attempt, "of", attempts, "error", lastErr)

		if attempt < attempts {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				db.Close()
				return nil, ctx.Err()
			}
		}
	}

	db.Close()
	return nil, fmt.Errorf("database unreachable after %d attempts: %w", attempts, lastErr)
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
