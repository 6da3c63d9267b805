package utils

import (
	"fmt"
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeReviewScheduler sets up the daily check for certificate
// uploads that have been sitting in PENDING too long.
func InitializeReviewScheduler() {
	log.Println("[REVIEW-SCHEDULER] Initializing review scheduler...")

	c := cron.New()

	// Run daily at 9 AM
	c.AddFunc("0 9 * * *", func() {
		log.Println("[REVIEW-SCHEDULER] Running daily pending upload check...")
		RemindPendingUploads()
	})

	c.Start()
	log.Println("[REVIEW-SCHEDULER] Review scheduler started - runs daily at 9 AM")
}

// RemindPendingUploads emails admins about uploads pending review for more
// than 7 days.
func RemindPendingUploads() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -7)

	var stale []courseModels.StudentCertificate
	if err := db.
		Where("status = ? AND is_deleted = ? AND created_at < ?", courseModels.UploadPending, false, cutoff).
		Order("created_at asc").
		Find(&stale).Error; err != nil {
		log.Printf("[REVIEW-SCHEDULER] Error fetching pending uploads: %v", err)
		return
	}

	if len(stale) == 0 {
		return
	}

	log.Printf("[REVIEW-SCHEDULER] Found %d uploads pending for over 7 days", len(stale))

	var admins []models.User
	if err := db.Where("role = ? AND is_deleted = ?", models.RoleAdmin, false).Find(&admins).Error; err != nil {
		log.Printf("[REVIEW-SCHEDULER] Error fetching admins: %v", err)
		return
	}

	oldest := stale[0].CreatedAt.Format("January 2, 2006")
	subject := "Certificate uploads awaiting review"
	body := fmt.Sprintf(`
		<p>There are <strong>%d</strong> certificate uploads pending review for more than 7 days.</p>
		<div class="info-box">Oldest upload: %s</div>
		<p>Please review them in the admin dashboard.</p>
	`, len(stale), oldest)

	for _, admin := range admins {
		go SendEmail(admin.Email, admin.Name, subject, body)
	}
}
