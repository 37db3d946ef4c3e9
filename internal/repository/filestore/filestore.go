// Package filestore keeps the database document as a JSON file, searching an
// ordered list of storage locations.
package filestore

import (
	"context"
	"errors"
	"fmt"

	"equipment-rental-manager/internal/domain"
	"equipment-rental-manager/internal/logger"
	"equipment-rental-manager/internal/repository"
	"equipment-rental-manager/internal/storage"
)

const DefaultFileName = "database.json"

type fileStore struct {
	locations []storage.Location
	fileName  string
}

// NewFileStore returns a store over locations; the first one is primary.
func NewFileStore(locations []storage.Location, fileName string) repository.DocumentStore {
	if fileName == "" {
		fileName = DefaultFileName
	}
	return &fileStore{locations: locations, fileName: fileName}
}

// Load returns the document from the first location that yields a readable,
// parseable file. A default document is created in the primary location
// only when no location has a file at all; a file that exists but cannot be
// read or parsed is never overwritten.
func (s *fileStore) Load(ctx context.Context) (domain.Database, error) {
	var attempts []error
	missing := true
	for _, loc := range s.locations {
		logger.StorageCall(loc.Name(), "load", "file", s.fileName)
		data, err := loc.ReadFile(ctx, s.fileName)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return domain.Database{}, &domain.StorageError{Op: "load", Err: ctxErr, Attempts: append(attempts, ctxErr)}
			}
			attempts = append(attempts, err)
			if !errors.Is(err, storage.ErrNotExist) {
				missing = false
				logger.Warn("Database file not readable, trying next location", "location", loc.Name(), "error", err)
			}
			continue
		}
		db, err := repository.Decode(data)
		if err != nil {
			missing = false
			attempts = append(attempts, fmt.Errorf("%s: %w", loc.Name(), err))
			logger.Warn("Database file not parseable, trying next location", "location", loc.Name(), "error", err)
			continue
		}
		logger.StorageResult(loc.Name(), "load", nil, "bytes", len(data))
		return db, nil
	}

	if !missing {
		logger.Error("No usable database file found", "attempts", len(attempts), "error", attempts[0])
		return domain.Database{}, &domain.StorageError{Op: "load", Err: attempts[0], Attempts: attempts}
	}

	logger.Warn("Database file not found in any location, creating a new one")
	db := domain.NewDatabase()
	if err := s.Save(ctx, db); err != nil {
		return domain.Database{}, err
	}
	return db, nil
}

func (s *fileStore) Save(ctx context.Context, db domain.Database) error {
	data, err := repository.Encode(db)
	if err != nil {
		return err
	}
	return s.write(ctx, "save", data)
}

// ReadRaw returns the bytes of the first readable document.
func (s *fileStore) ReadRaw(ctx context.Context) ([]byte, error) {
	var attempts []error
	for _, loc := range s.locations {
		data, err := loc.ReadFile(ctx, s.fileName)
		if err == nil {
			return data, nil
		}
		attempts = append(attempts, err)
	}
	if len(attempts) == 0 {
		attempts = append(attempts, errors.New("no storage locations configured"))
	}
	return nil, &domain.StorageError{Op: "read", Err: attempts[0], Attempts: attempts}
}

// WriteRaw replaces the document in the primary location only, the one Load
// reads first. Falling back here would leave the old primary in effect.
func (s *fileStore) WriteRaw(ctx context.Context, data []byte) error {
	if len(s.locations) == 0 {
		err := errors.New("no storage locations configured")
		return &domain.StorageError{Op: "import", Err: err, Attempts: []error{err}}
	}
	primary := s.locations[0]
	logger.StorageCall(primary.Name(), "import", "file", s.fileName, "bytes", len(data))
	err := primary.WriteFile(ctx, s.fileName, data)
	logger.StorageResult(primary.Name(), "import", err)
	if err != nil {
		return &domain.StorageError{Op: "import", Err: err, Attempts: []error{err}}
	}
	return nil
}

// write tries the primary location and then every fallback in order. Only
// when all of them fail is the primary's error surfaced.
func (s *fileStore) write(ctx context.Context, op string, data []byte) error {
	var attempts []error
	for _, loc := range s.locations {
		logger.StorageCall(loc.Name(), op, "file", s.fileName, "bytes", len(data))
		err := loc.WriteFile(ctx, s.fileName, data)
		logger.StorageResult(loc.Name(), op, err)
		if err == nil {
			return nil
		}
		attempts = append(attempts, err)
		if ctx.Err() != nil {
			break
		}
	}
	if len(attempts) == 0 {
		attempts = append(attempts, errors.New("no storage locations configured"))
	}
	logger.Error("All storage locations failed", "op", op, "attempts", len(attempts), "error", attempts[0])
	return &domain.StorageError{Op: op, Err: attempts[0], Attempts: attempts}
}
