package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/models"
	"gorm.io/gorm"
)

// StartCleanup runs a goroutine that deletes system_logs older than
// retentionDays every interval until done is closed.
func StartCleanup(db *gorm.DB, retentionDays int, interval time.Duration, done <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				purgeOlderThan(db, time.Now().AddDate(0, 0, -retentionDays))
			case <-done:
				return
			}
		}
	}()
}

func purgeOlderThan(db *gorm.DB, cutoff time.Time) int64 {
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		slog.Warn("log cleanup failed", "error", result.Error)
		return 0
	}
	if result.RowsAffected > 0 {
		slog.Info("log cleanup completed", "deleted", result.RowsAffected)
	}
	return result.RowsAffected
}
