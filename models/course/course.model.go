package course

import "gorm.io/gorm"

// Course lifecycle states
const (
	StatusDraft    = "DRAFT"
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Admin review states
const (
	ApprovalPending  = "PENDING"
	ApprovalApproved = "APPROVED"
	ApprovalRejected = "REJECTED"
)

// Course represents a learning course. A course is publicly listed only
// when status is ACTIVE and approval_status is APPROVED.
type Course struct {
	gorm.Model
	Title          string  `json:"title"`
	Slug           string  `json:"slug" gorm:"uniqueIndex"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	Level          string  `json:"level"`
	Price          float64 `json:"price" gorm:"default:0"`
	PointsRequired uint    `json:"points_required" gorm:"default:0"`
	ThumbnailURL   string  `json:"thumbnail_url"`
	Status         string  `json:"status" gorm:"default:'DRAFT'"`           // DRAFT, ACTIVE, INACTIVE
	ApprovalStatus string  `json:"approval_status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED
	InstructorID   uint    `json:"instructor_id" gorm:"index;not null"`
	IsDeleted      bool    `gorm:"default:false"`

	Sections       []Section       `json:"sections,omitempty" gorm:"foreignKey:CourseID"`
	SyllabusTopics []SyllabusTopic `json:"syllabus_topics,omitempty" gorm:"foreignKey:CourseID"`
}

// PubliclyVisible reports whether the course may appear in the public listing
func (c *Course) PubliclyVisible() bool {
	return c.Status == StatusActive && c.ApprovalStatus == ApprovalApproved && !c.IsDeleted
}

// SyllabusTopic is a display-only outline entry, decoupled from sections
type SyllabusTopic struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsDeleted   bool   `gorm:"default:false"`
}
