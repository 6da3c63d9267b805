package course

import "gorm.io/gorm"

// Lesson content types
const (
	LessonVideo = "VIDEO"
	LessonText  = "TEXT"
	LessonQuiz  = "QUIZ"
)

// Section is the top level of a course curriculum. Sections are replaced
// wholesale on update; insertion order is display order.
type Section struct {
	gorm.Model
	CourseID    uint     `json:"course_id" gorm:"index"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	OrderIndex  int      `json:"order_index" gorm:"default:0"`
	Lessons     []Lesson `json:"lessons,omitempty" gorm:"foreignKey:SectionID"`
}

// Lesson sits inside a section. A lesson may carry sub-parts, and a
// sub-part may carry sub-sub-parts; SubSubPart has no child type, which
// caps the nesting depth at three.
type Lesson struct {
	gorm.Model
	SectionID     uint   `json:"section_id" gorm:"index"`
	Title         string `json:"title"`
	Type          string `json:"type" gorm:"default:'VIDEO'"` // VIDEO, TEXT, QUIZ
	VideoKey      string `json:"video_key"`
	VideoDuration int    `json:"video_duration" gorm:"default:0"` // seconds
	Description   string `json:"description"`
	IsFree        bool   `json:"is_free" gorm:"default:false"`
	OrderIndex    int    `json:"order_index" gorm:"default:0"`

	SubParts     []SubPart     `json:"sub_parts,omitempty" gorm:"foreignKey:LessonID"`
	Resources    []Resource    `json:"resources,omitempty" gorm:"polymorphic:Owner"`
	CodeSnippets []CodeSnippet `json:"code_snippets,omitempty" gorm:"polymorphic:Owner"`
	Quizzes      []Quiz        `json:"quizzes,omitempty" gorm:"polymorphic:Owner"`
}

type SubPart struct {
	gorm.Model
	LessonID      uint   `json:"lesson_id" gorm:"index"`
	Title         string `json:"title"`
	Type          string `json:"type" gorm:"default:'VIDEO'"`
	VideoKey      string `json:"video_key"`
	VideoDuration int    `json:"video_duration" gorm:"default:0"`
	Description   string `json:"description"`
	IsFree        bool   `json:"is_free" gorm:"default:false"`
	OrderIndex    int    `json:"order_index" gorm:"default:0"`

	SubSubParts  []SubSubPart  `json:"sub_sub_parts,omitempty" gorm:"foreignKey:SubPartID"`
	Resources    []Resource    `json:"resources,omitempty" gorm:"polymorphic:Owner"`
	CodeSnippets []CodeSnippet `json:"code_snippets,omitempty" gorm:"polymorphic:Owner"`
	Quizzes      []Quiz        `json:"quizzes,omitempty" gorm:"polymorphic:Owner"`
}

// SubSubPart is the curriculum leaf
type SubSubPart struct {
	gorm.Model
	SubPartID     uint   `json:"sub_part_id" gorm:"index"`
	Title         string `json:"title"`
	Type          string `json:"type" gorm:"default:'VIDEO'"`
	VideoKey      string `json:"video_key"`
	VideoDuration int    `json:"video_duration" gorm:"default:0"`
	Description   string `json:"description"`
	IsFree        bool   `json:"is_free" gorm:"default:false"`
	OrderIndex    int    `json:"order_index" gorm:"default:0"`

	Resources    []Resource    `json:"resources,omitempty" gorm:"polymorphic:Owner"`
	CodeSnippets []CodeSnippet `json:"code_snippets,omitempty" gorm:"polymorphic:Owner"`
	Quizzes      []Quiz        `json:"quizzes,omitempty" gorm:"polymorphic:Owner"`
}

// Resource is a downloadable or linked attachment on any curriculum node
type Resource struct {
	gorm.Model
	OwnerType string `json:"-" gorm:"index"`
	OwnerID   uint   `json:"-" gorm:"index"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	FileURL   string `json:"file_url"`
}

type CodeSnippet struct {
	gorm.Model
	OwnerType string `json:"-" gorm:"index"`
	OwnerID   uint   `json:"-" gorm:"index"`
	Language  string `json:"language"`
	Code      string `json:"code" gorm:"type:text"`
}

// Quiz must have exactly one correct option at save time; the curriculum
// validator enforces this before anything reaches the database.
type Quiz struct {
	gorm.Model
	OwnerType string       `json:"-" gorm:"index"`
	OwnerID   uint         `json:"-" gorm:"index"`
	Question  string       `json:"question"`
	Options   []QuizOption `json:"options,omitempty" gorm:"foreignKey:QuizID"`
}

type QuizOption struct {
	gorm.Model
	QuizID    uint   `json:"quiz_id" gorm:"index"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct" gorm:"default:false"`
}
