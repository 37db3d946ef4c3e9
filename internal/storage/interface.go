package storage

import (
	"context"
	"errors"
)

// ErrNotExist is returned by ReadFile when the key is absent.
var ErrNotExist = errors.New("file does not exist")

// Location is one place a document can be kept. The file store walks an
// ordered list of them.
type Location interface {
	// Name identifies the location in logs (e.g. "app-data").
	Name() string

	// ReadFile returns the full content stored under key
	ReadFile(ctx context.Context, key string) ([]byte, error)

	// WriteFile replaces the content stored under key. A reader never sees a
	// partially written file.
	WriteFile(ctx context.Context, key string, data []byte) error

	// FileExists checks if a file exists and returns its size
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)
}
