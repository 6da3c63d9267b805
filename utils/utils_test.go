package utils

import (
	"lms/config"
	"lms/models"
	courseModels "lms/models/course"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Go For Beginners":        "go-for-beginners",
		"  Advanced   Go!  ":      "advanced-go",
		"C++ & Rust: a deep dive": "c-rust-a-deep-dive",
		"---":                     "",
		"Already-Slugged":         "already-slugged",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}

func TestUniqueCourseSlug(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&courseModels.Course{}))

	assert.Equal(t, "go-basics", UniqueCourseSlug(db, "Go Basics", 0))

	require.NoError(t, db.Create(&courseModels.Course{Title: "Go Basics", Slug: "go-basics", InstructorID: 1}).Error)
	assert.Equal(t, "go-basics-2", UniqueCourseSlug(db, "Go Basics", 0))

	require.NoError(t, db.Create(&courseModels.Course{Title: "Go Basics", Slug: "go-basics-2", InstructorID: 1}).Error)
	assert.Equal(t, "go-basics-3", UniqueCourseSlug(db, "Go Basics", 0))

	// Updating a course keeps its own slug available
	var existing courseModels.Course
	require.NoError(t, db.Where("slug = ?", "go-basics").First(&existing).Error)
	assert.Equal(t, "go-basics", UniqueCourseSlug(db, "Go Basics", existing.ID))

	// Empty titles still produce a usable slug
	assert.Equal(t, "course", UniqueCourseSlug(db, "!!!", 0))
}

func TestGenerateCertificateNumber(t *testing.T) {
	first := GenerateCertificateNumber()
	second := GenerateCertificateNumber()

	assert.True(t, strings.HasPrefix(first, "CERT-"))
	assert.NotEqual(t, first, second)

	parts := strings.Split(first, "-")
	require.Len(t, parts, 3)
	assert.Len(t, parts[2], 8) // 4 random bytes, hex encoded
}

func TestBadgeForCertificateCount(t *testing.T) {
	badge, crossed := BadgeForCertificateCount(1)
	assert.True(t, crossed)
	assert.Equal(t, BadgeFirstCertificate, badge)

	badge, crossed = BadgeForCertificateCount(5)
	assert.True(t, crossed)
	assert.Equal(t, BadgeKnowledgeSeeker, badge)

	badge, crossed = BadgeForCertificateCount(10)
	assert.True(t, crossed)
	assert.Equal(t, BadgeLearningChampion, badge)

	// Only exact milestones grant badges
	for _, count := range []int64{0, 2, 4, 6, 9, 11, 100} {
		_, crossed := BadgeForCertificateCount(count)
		assert.False(t, crossed, "count %d", count)
	}
}

func TestAssignRole(t *testing.T) {
	config.LoadConfig()
	config.AppConfig.SetAdminEmails("boss@lms.test")

	assert.Equal(t, models.RoleAdmin, AssignRole("boss@lms.test", "STUDENT"))
	assert.Equal(t, models.RoleInstructor, AssignRole("teach@lms.test", "INSTRUCTOR"))
	assert.Equal(t, models.RoleInstructor, AssignRole("teach@lms.test", "instructor"))
	assert.Equal(t, models.RoleStudent, AssignRole("kid@lms.test", "STUDENT"))
	assert.Equal(t, models.RoleStudent, AssignRole("kid@lms.test", ""))
}

func TestComputeCourseTotals(t *testing.T) {
	sections := []courseModels.Section{
		{
			Title: "One",
			Lessons: []courseModels.Lesson{
				{Title: "Video", Type: courseModels.LessonVideo, VideoDuration: 300},
				{Title: "Reading", Type: courseModels.LessonText, VideoDuration: 999}, // text duration ignored
				{
					Title: "Nested", Type: courseModels.LessonVideo, VideoDuration: 60,
					SubParts: []courseModels.SubPart{
						{
							Title: "Part", Type: courseModels.LessonVideo, VideoDuration: 30,
							SubSubParts: []courseModels.SubSubPart{
								{Title: "Leaf", Type: courseModels.LessonVideo, VideoDuration: 10},
							},
						},
					},
				},
			},
		},
		{
			Title: "Two",
			Lessons: []courseModels.Lesson{
				{Title: "Outro", Type: courseModels.LessonVideo, VideoDuration: 100},
			},
		},
	}

	lessonCount, totalDuration := ComputeCourseTotals(sections)
	assert.Equal(t, 4, lessonCount)
	assert.Equal(t, 500, totalDuration)
}
