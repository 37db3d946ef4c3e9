package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"equipment-rental-manager/internal/logger"

	_ "github.com/lib/pq"
)

// Schema creates the single-row document table.
const Schema = `CREATE TABLE IF NOT EXISTS rental_documents (
	id         INTEGER PRIMARY KEY,
	body       JSONB NOT NULL,
	revision   BIGINT NOT NULL DEFAULT 1,
	updated_on TIMESTAMPTZ NOT NULL
)`

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the document table when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	logger.StorageCall("postgres", "migrate")
	_, err := db.ExecContext(ctx, Schema)
	logger.StorageResult("postgres", "migrate", err)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
