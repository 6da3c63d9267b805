package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"lms/config"
	"lms/models"
	courseModels "lms/models/course"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Badge names and the certificate counts that grant them
const (
	BadgeFirstCertificate = "First Certificate"
	BadgeKnowledgeSeeker  = "Knowledge Seeker"
	BadgeLearningChampion = "Learning Champion"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title: lowercase, runs of
// non-alphanumeric characters collapse to a single hyphen, trimmed.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = nonAlphanumeric.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// UniqueCourseSlug returns the slug for title, suffixed with the first free
// numeric suffix (-2, -3, ...) when the plain slug is already taken by
// another course. excludeID skips the course being updated.
func UniqueCourseSlug(db *gorm.DB, title string, excludeID uint) string {
	base := Slugify(title)
	if base == "" {
		base = "course"
	}

	slug := base
	for n := 2; ; n++ {
		var count int64
		db.Model(&courseModels.Course{}).Where("slug = ? AND id != ?", slug, excludeID).Count(&count)
		if count == 0 {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

// GenerateCertificateNumber builds a certificate identifier from a prefix,
// a millisecond timestamp and 4 random bytes. The unique column index on
// certificate_number catches the residual collision case.
func GenerateCertificateNumber() string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand failing is unrecoverable for ID generation
		panic(err)
	}
	return fmt.Sprintf("CERT-%d-%s", time.Now().UnixMilli(), hex.EncodeToString(suffix))
}

// BadgeForCertificateCount returns the badge granted by reaching count
// earned certificates, if count crosses a milestone exactly.
func BadgeForCertificateCount(count int64) (string, bool) {
	switch count {
	case 1:
		return BadgeFirstCertificate, true
	case 5:
		return BadgeKnowledgeSeeker, true
	case 10:
		return BadgeLearningChampion, true
	}
	return "", false
}

// AssignRole is the registration-time role policy. Allowlisted emails become
// admins, instructor requests are honored (subject to later approval),
// everyone else is a student.
func AssignRole(email, requestedRole string) string {
	if config.AppConfig.IsAdminEmail(email) {
		return models.RoleAdmin
	}
	if strings.EqualFold(requestedRole, models.RoleInstructor) {
		return models.RoleInstructor
	}
	return models.RoleStudent
}

// ComputeCourseTotals walks a loaded curriculum tree and returns the lesson
// count and the summed duration (seconds) of video nodes. Totals are always
// recomputed from the tree, never stored, since sections are replaced
// wholesale on update.
func ComputeCourseTotals(sections []courseModels.Section) (lessonCount int, totalDuration int) {
	for _, s := range sections {
		for _, l := range s.Lessons {
			lessonCount++
			if l.Type == courseModels.LessonVideo {
				totalDuration += l.VideoDuration
			}
			for _, sp := range l.SubParts {
				if sp.Type == courseModels.LessonVideo {
					totalDuration += sp.VideoDuration
				}
				for _, ssp := range sp.SubSubParts {
					if ssp.Type == courseModels.LessonVideo {
						totalDuration += ssp.VideoDuration
					}
				}
			}
		}
	}
	return lessonCount, totalDuration
}
