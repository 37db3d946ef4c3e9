package jobs

import (
	"context"
	"time"

	"equipment-rental-manager/internal/config"
	"equipment-rental-manager/internal/logger"
	"equipment-rental-manager/internal/service"
	"equipment-rental-manager/internal/storage"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	config   *config.Config
	backups  storage.Location
	now      func() time.Time
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Rental service.RentalService
	Backup service.BackupService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		services: services,
		config:   cfg,
		backups:  storage.NewLocalDirectory("backups", cfg.Storage.BackupDir, cfg.IOTimeout()),
		now:      time.Now,
	}
}

// Config returns the configuration the jobs were built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	logger.Info("Starting job", "job", jobName)
	if err := jobFunc(ctx); err != nil {
		logger.Error("Job failed", "job", jobName, "error", err)
		return
	}
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.ReportOverdueRentals()
	jr.BackupDatabase()
}
