package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      Role      `json:"role" gorm:"type:varchar(20);default:'student'"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

type Course struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Slug         string    `json:"slug" gorm:"uniqueIndex;not null"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description" gorm:"type:text"`
	Category     string    `json:"category"`
	Level        Level     `json:"level" gorm:"type:varchar(20)"`
	DurationMins int       `json:"duration_mins"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relations
	Lessons []Lesson `json:"lessons" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Quiz    *Quiz    `json:"quiz,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

// Lesson - Resources is an ordered list of {label, url} pairs kept as an
// opaque JSON column; the server never inspects it.
type Lesson struct {
	ID        string         `json:"id" gorm:"primaryKey"`
	CourseID  string         `json:"course_id" gorm:"not null;index"`
	Title     string         `json:"title" gorm:"not null"`
	Content   string         `json:"content" gorm:"type:text"`
	Resources datatypes.JSON `json:"resources,omitempty"`
	Order     int            `json:"order" gorm:"column:sort_order"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// Quiz - at most one per course.
type Quiz struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CourseID  string    `json:"course_id" gorm:"uniqueIndex;not null"`
	Title     string    `json:"title" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relations
	Questions []Question `json:"questions" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}

type Question struct {
	ID          string   `json:"id" gorm:"primaryKey"`
	QuizID      string   `json:"quiz_id" gorm:"not null;index"`
	Prompt      string   `json:"prompt" gorm:"not null"`
	Choices     []string `json:"choices" gorm:"serializer:json"`
	AnswerIndex int      `json:"answer_index"`
	Order       int      `json:"order" gorm:"column:sort_order"`
}

// Enrollment - unique per (user, course); re-enrolling is a no-op.
type Enrollment struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID  string    `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relations
	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

// Progress - per (user, course) completed-lesson set and latest quiz score.
// QuizScore nil means "never scored"; a stored 0 is real data and must be
// counted by the dashboard aggregation.
type Progress struct {
	ID                 string    `json:"id" gorm:"primaryKey"`
	UserID             string    `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_course"`
	CourseID           string    `json:"course_id" gorm:"not null;uniqueIndex:idx_progress_user_course"`
	CompletedLessonIDs []string  `json:"completed_lesson_ids" gorm:"serializer:json"`
	QuizScore          *int      `json:"quiz_score"`
	CreatedAt          time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// ========== RESPONSE DTOs ==========

// DashboardSummary - Cross-course statistics for one user. TotalLessons spans
// the whole catalog, not just enrolled courses, matching the product's
// current behavior. AverageScore is nil until any quiz has been scored.
type DashboardSummary struct {
	EnrolledCount  int  `json:"enrolled_count"`
	TotalLessons   int  `json:"total_lessons"`
	CompletedCount int  `json:"completed_count"`
	AverageScore   *int `json:"average_score"`
}

// QuizResult - outcome of a server-scored quiz submission.
type QuizResult struct {
	CourseID  string `json:"course_id"`
	QuizID    string `json:"quiz_id"`
	Score     int    `json:"score"`
	Questions int    `json:"questions"`
	Correct   int    `json:"correct"`
}
