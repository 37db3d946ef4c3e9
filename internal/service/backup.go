package service

import (
	"context"
	"fmt"
	"io"

	"equipment-rental-manager/internal/domain"
	"equipment-rental-manager/internal/logger"
	"equipment-rental-manager/internal/repository"
)

// MaxImportSize bounds an uploaded document; logos and equipment images are
// stored inline as base64.
const MaxImportSize = 64 << 20

type backupService struct {
	ws *Workspace
}

func NewBackupService(ws *Workspace) BackupService {
	return &backupService{ws: ws}
}

// Export copies the raw persisted document to w.
func (s *backupService) Export(ctx context.Context, w io.Writer) (int64, error) {
	logger.EnterMethod("backupService.Export")

	// Make sure a document exists before reading it raw.
	if _, err := s.ws.Snapshot(ctx); err != nil {
		logger.ExitMethodWithError("backupService.Export", err)
		return 0, err
	}
	data, err := s.ws.Store().ReadRaw(ctx)
	if err != nil {
		logger.ExitMethodWithError("backupService.Export", err)
		return 0, err
	}
	n, err := w.Write(data)
	if err != nil {
		err = fmt.Errorf("failed to write export: %w", err)
		logger.ExitMethodWithError("backupService.Export", err)
		return int64(n), err
	}

	logger.ExitMethod("backupService.Export", "bytes", n)
	return int64(n), nil
}

// Import replaces the persisted document with the bytes read from r and
// reloads the workspace from storage. The bytes must parse as a database.
func (s *backupService) Import(ctx context.Context, r io.Reader) error {
	logger.EnterMethod("backupService.Import")

	data, err := io.ReadAll(io.LimitReader(r, MaxImportSize+1))
	if err != nil {
		err = fmt.Errorf("failed to read import: %w", err)
		logger.ExitMethodWithError("backupService.Import", err)
		return err
	}
	if len(data) > MaxImportSize {
		err := domain.NewValidationError(domain.CodeInvalidValue, "file", "import file exceeds %d bytes", MaxImportSize)
		logger.ExitMethodWithError("backupService.Import", err)
		return err
	}
	if _, err := repository.Decode(data); err != nil {
		verr := domain.NewValidationError(domain.CodeInvalidValue, "file", "not a valid database file: %v", err)
		logger.ExitMethodWithError("backupService.Import", verr)
		return verr
	}

	if err := s.ws.Store().WriteRaw(ctx, data); err != nil {
		logger.ExitMethodWithError("backupService.Import", err)
		return err
	}
	if err := s.ws.Reload(ctx); err != nil {
		logger.ExitMethodWithError("backupService.Import", err)
		return err
	}

	logger.ExitMethod("backupService.Import", "bytes", len(data))
	return nil
}
