package jobs

import (
	"bytes"
	"context"
	"fmt"

	"equipment-rental-manager/internal/logger"
)

// BackupFilePrefix starts every scheduled backup file name
const BackupFilePrefix = "database-"

// BackupDatabase copies the current document into the backup directory
// under a timestamped name.
func (jr *JobRunner) BackupDatabase() {
	jr.runWithRecovery("BackupDatabase", func(ctx context.Context) error {
		_, err := jr.backupDatabase(ctx)
		return err
	})
}

func (jr *JobRunner) backupDatabase(ctx context.Context) (string, error) {
	var buf bytes.Buffer
	if _, err := jr.services.Backup.Export(ctx, &buf); err != nil {
		return "", fmt.Errorf("failed to export database: %w", err)
	}

	name := fmt.Sprintf("%s%s.json", BackupFilePrefix, jr.now().Format("20060102-150405"))
	logger.StorageCall(jr.backups.Name(), "backup", "file", name, "bytes", buf.Len())
	err := jr.backups.WriteFile(ctx, name, buf.Bytes())
	logger.StorageResult(jr.backups.Name(), "backup", err)
	if err != nil {
		return "", fmt.Errorf("failed to write backup %s: %w", name, err)
	}

	logger.Info("Database backed up", "file", name, "bytes", buf.Len())
	return name, nil
}
