package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// LocalDirectory keeps files in one directory of the local filesystem.
type LocalDirectory struct {
	name    string
	root    string
	timeout time.Duration
}

// NewLocalDirectory creates a location rooted at root. The directory is
// created on first write.
func NewLocalDirectory(name, root string, timeout time.Duration) *LocalDirectory {
	return &LocalDirectory{name: name, root: root, timeout: timeout}
}

func (l *LocalDirectory) Name() string {
	return l.name
}

// Root returns the directory backing this location
func (l *LocalDirectory) Root() string {
	return l.root
}

// GetLocalPath returns the filesystem path for a key
func (l *LocalDirectory) GetLocalPath(key string) string {
	return filepath.Join(l.root, key)
}

// ReadFile reads file from local filesystem
func (l *LocalDirectory) ReadFile(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := l.withTimeout(ctx, func(context.Context) error {
		var err error
		data, err = os.ReadFile(l.GetLocalPath(key))
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s/%s: %w", l.name, key, ErrNotExist)
		}
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		return nil
	})
	return data, err
}

// WriteFile writes data to a uniquely named temp file next to the target,
// flushes and closes it, then renames it over the target. A write whose
// deadline passed is abandoned before the rename.
func (l *LocalDirectory) WriteFile(ctx context.Context, key string, data []byte) error {
	return l.withTimeout(ctx, func(ctx context.Context) error {
		fullPath := l.GetLocalPath(key)

		// Create parent directories
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return fmt.Errorf("failed to create directories: %w", err)
		}

		tmpPath := fmt.Sprintf("%s.%s.tmp", fullPath, uuid.New().String())
		file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to create file: %w", err)
		}
		committed := false
		defer func() {
			if !committed {
				_ = os.Remove(tmpPath)
			}
		}()

		if _, err := file.Write(data); err != nil {
			file.Close()
			return fmt.Errorf("failed to write file: %w", err)
		}
		if err := file.Sync(); err != nil {
			file.Close()
			return fmt.Errorf("failed to flush file: %w", err)
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("failed to close file: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := os.Rename(tmpPath, fullPath); err != nil {
			return fmt.Errorf("failed to replace file: %w", err)
		}
		committed = true
		return nil
	})
}

// FileExists checks if file exists in local filesystem
func (l *LocalDirectory) FileExists(ctx context.Context, key string) (bool, int64, error) {
	var exists bool
	var size int64
	err := l.withTimeout(ctx, func(context.Context) error {
		info, err := os.Stat(l.GetLocalPath(key))
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		exists, size = true, info.Size()
		return nil
	})
	return exists, size, err
}

// withTimeout runs fn and gives up waiting once the context or the
// location's timeout expires. Filesystem calls cannot be interrupted, so a
// timed-out fn keeps running in the background; fn receives the bounded
// context to stop before any step that must not happen late.
func (l *LocalDirectory) withTimeout(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		done <- fn(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", l.name, ctx.Err())
	}
}
