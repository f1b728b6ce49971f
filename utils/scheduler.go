package utils

import (
	"log"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"learnhub/models"
	"learnhub/services"
)

// InitializeScheduler starts the nightly maintenance jobs
func InitializeScheduler(db *gorm.DB, enrollmentSvc *services.EnrollmentService) {
	log.Println("[SCHEDULER] Initializing maintenance scheduler...")

	c := cron.New()

	// Run daily at 02:30
	c.AddFunc("30 2 * * *", func() {
		log.Println("[SCHEDULER] Running nightly maintenance...")
		PurgeExpiredResetCodes(db)
		if err := enrollmentSvc.Reconcile(); err != nil {
			log.Printf("[SCHEDULER] Error reconciling enrollment progress: %v", err)
		}
	})

	c.Start()
	log.Println("[SCHEDULER] Maintenance scheduler started - runs daily at 02:30")
}

// PurgeExpiredResetCodes hard-deletes used and stale password reset codes.
// Rows from before today's day boundary are always stale by then.
func PurgeExpiredResetCodes(db *gorm.DB) {
	cutoff := now.BeginningOfDay()

	result := db.Unscoped().
		Where("is_used = ? OR expires_at < ?", true, cutoff).
		Delete(&models.PasswordReset{})
	if result.Error != nil {
		log.Printf("[SCHEDULER] Error purging reset codes: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[SCHEDULER] Purged %d password reset codes", result.RowsAffected)
	}
}
