package repository

import (
	"context"

	"equipment-rental-manager/internal/domain"
)

// DocumentStore persists the whole Database as one document. Save writes the
// reconciled snapshot; Load returns a normalized, reconciled one.
type DocumentStore interface {
	Load(ctx context.Context) (domain.Database, error)
	Save(ctx context.Context, db domain.Database) error

	// ReadRaw returns the current document bytes as stored
	ReadRaw(ctx context.Context) ([]byte, error)
	// WriteRaw overwrites the primary document with data
	WriteRaw(ctx context.Context, data []byte) error
}
