package scheduler

import (
	"testing"
	"time"

	"equipment-rental-manager/internal/config"
	"equipment-rental-manager/internal/jobs"

	"github.com/stretchr/testify/assert"
)

func TestNewScheduler_RegistersJobs(t *testing.T) {
	cfg := &config.Config{
		Storage: config.StorageConfig{BackupDir: t.TempDir()},
		Scheduler: config.SchedulerConfig{
			ReportOverdueRentals: "0 0 8 * * *",
			BackupDatabase:       "0 0 23 * * *",
		},
	}
	s := NewScheduler(jobs.NewJobRunner(&jobs.Services{}, cfg), time.UTC)

	assert.True(t, s.IsRunning())
	next := s.NextRuns()
	assert.Len(t, next, 2)
	for _, n := range next {
		assert.Equal(t, 0, n.Second())
		assert.Equal(t, 0, n.Minute())
	}
}

func TestNewScheduler_InvalidSpecSkipped(t *testing.T) {
	cfg := &config.Config{
		Storage: config.StorageConfig{BackupDir: t.TempDir()},
		Scheduler: config.SchedulerConfig{
			ReportOverdueRentals: "every now and then",
			BackupDatabase:       "0 30 22 * * *",
		},
	}
	s := NewScheduler(jobs.NewJobRunner(&jobs.Services{}, cfg), time.UTC)
	assert.Len(t, s.NextRuns(), 1)
}
