package postgres

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"equipment-rental-manager/internal/domain"
	"equipment-rental-manager/internal/logger"
	"equipment-rental-manager/internal/repository"
)

// DocumentID is the key of the one row holding the database document.
const DocumentID = 1

const location = "postgres"

type documentStore struct {
	db *sql.DB

	mu       sync.Mutex
	revision int64
}

// NewDocumentStore keeps the whole document in a single JSONB row. Save is
// rejected with domain.ErrConflict when the row changed after the last Load.
func NewDocumentStore(db *sql.DB) repository.DocumentStore {
	return &documentStore{db: db}
}

func (s *documentStore) Load(ctx context.Context) (domain.Database, error) {
	data, revision, err := s.read(ctx, "load")
	if errors.Is(err, sql.ErrNoRows) {
		logger.Warn("Database document not found, creating a new one")
		return s.create(ctx)
	}
	if err != nil {
		return domain.Database{}, err
	}

	db, err := repository.Decode(data)
	if err != nil {
		return domain.Database{}, &domain.StorageError{Op: "load", Err: err, Attempts: []error{err}}
	}
	s.setRevision(revision)
	return db, nil
}

func (s *documentStore) Save(ctx context.Context, db domain.Database) error {
	data, err := repository.Encode(db)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `UPDATE rental_documents SET body = $1, revision = revision + 1, updated_on = $2 WHERE id = $3 AND revision = $4`
	logger.StorageCall(location, "save", "revision", s.revision)
	res, err := s.db.ExecContext(ctx, query, data, time.Now(), DocumentID, s.revision)
	if err != nil {
		logger.StorageResult(location, "save", err)
		return &domain.StorageError{Op: "save", Err: err, Attempts: []error{err}}
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return &domain.StorageError{Op: "save", Err: err, Attempts: []error{err}}
	}
	if rows == 0 {
		logger.StorageResult(location, "save", domain.ErrConflict, "revision", s.revision)
		return domain.ErrConflict
	}
	s.revision++
	logger.StorageResult(location, "save", nil, "revision", s.revision)
	return nil
}

func (s *documentStore) ReadRaw(ctx context.Context) ([]byte, error) {
	data, _, err := s.read(ctx, "read")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.StorageError{Op: "read", Err: err, Attempts: []error{err}}
		}
		return nil, err
	}
	return data, nil
}

// WriteRaw replaces the document regardless of revision.
func (s *documentStore) WriteRaw(ctx context.Context, data []byte) error {
	query := `INSERT INTO rental_documents (id, body, revision, updated_on) VALUES ($1, $2, 1, $3)
	          ON CONFLICT (id) DO UPDATE SET body = EXCLUDED.body, revision = rental_documents.revision + 1, updated_on = EXCLUDED.updated_on`
	logger.StorageCall(location, "import", "bytes", len(data))
	_, err := s.db.ExecContext(ctx, query, DocumentID, data, time.Now())
	logger.StorageResult(location, "import", err)
	if err != nil {
		return &domain.StorageError{Op: "import", Err: err, Attempts: []error{err}}
	}
	return nil
}

func (s *documentStore) read(ctx context.Context, op string) ([]byte, int64, error) {
	var data []byte
	var revision int64
	query := `SELECT body, revision FROM rental_documents WHERE id = $1`
	logger.StorageCall(location, op)
	err := s.db.QueryRowContext(ctx, query, DocumentID).Scan(&data, &revision)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, err
	}
	logger.StorageResult(location, op, err)
	if err != nil {
		return nil, 0, &domain.StorageError{Op: op, Err: err, Attempts: []error{err}}
	}
	return data, revision, nil
}

func (s *documentStore) create(ctx context.Context) (domain.Database, error) {
	db := domain.NewDatabase()
	data, err := repository.Encode(db)
	if err != nil {
		return domain.Database{}, err
	}

	query := `INSERT INTO rental_documents (id, body, revision, updated_on) VALUES ($1, $2, 1, $3) ON CONFLICT (id) DO NOTHING`
	logger.StorageCall(location, "create")
	_, err = s.db.ExecContext(ctx, query, DocumentID, data, time.Now())
	logger.StorageResult(location, "create", err)
	if err != nil {
		return domain.Database{}, &domain.StorageError{Op: "create", Err: err, Attempts: []error{err}}
	}
	s.setRevision(1)
	return repository.Decode(data)
}

func (s *documentStore) setRevision(revision int64) {
	s.mu.Lock()
	s.revision = revision
	s.mu.Unlock()
}
