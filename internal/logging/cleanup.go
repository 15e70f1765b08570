package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/models"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// StartCleanup schedules a daily purge of system_logs older than retentionDays.
// The caller owns the returned scheduler and must Shutdown it.
func StartCleanup(db *gorm.DB, retentionDays int) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			deleted, err := PurgeOldLogs(db, retentionDays, time.Now())
			if err != nil {
				slog.Error("log cleanup failed", "action", "log_cleanup", "error", err)
				return
			}
			if deleted > 0 {
				slog.Info("log cleanup completed", "deleted", deleted)
			}
		}),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, err
	}

	sched.Start()
	return sched, nil
}

// PurgeOldLogs deletes rows stamped before now minus retentionDays.
func PurgeOldLogs(db *gorm.DB, retentionDays int, now time.Time) (int64, error) {
	if retentionDays < 1 {
		retentionDays = 30
	}
	cutoff := now.AddDate(0, 0, -retentionDays)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
