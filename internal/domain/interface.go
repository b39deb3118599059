package domain

import "context"

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
}

type CourseRepository interface {
	Create(ctx context.Context, course *Course) error
	GetAll(ctx context.Context) ([]Course, error)
	GetByID(ctx context.Context, id string) (*Course, error)
	GetBySlug(ctx context.Context, slug string) (*Course, error)
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountLessons(ctx context.Context) (int64, error)
}

type LessonRepository interface {
	Create(ctx context.Context, lesson *Lesson) error
	GetByID(ctx context.Context, id string) (*Lesson, error)
	Update(ctx context.Context, lesson *Lesson) error
	Delete(ctx context.Context, id string) error
}

type QuizRepository interface {
	GetByCourseID(ctx context.Context, courseID string) (*Quiz, error)
	Replace(ctx context.Context, quiz *Quiz) error
	DeleteByCourseID(ctx context.Context, courseID string) error
}

type EnrollmentRepository interface {
	// Upsert is keyed on (user_id, course_id); a duplicate enroll is a no-op.
	Upsert(ctx context.Context, enrollment *Enrollment) error
	GetByUserID(ctx context.Context, userID string) ([]Enrollment, error)
	GetByUserAndCourse(ctx context.Context, userID, courseID string) (*Enrollment, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
}

type ProgressRepository interface {
	// Upsert is keyed on (user_id, course_id) so concurrent submissions by
	// the same user never produce a second record.
	Upsert(ctx context.Context, progress *Progress) error
	GetByUserAndCourse(ctx context.Context, userID, courseID string) (*Progress, error)
	GetByUserID(ctx context.Context, userID string) ([]Progress, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, user *User) error
	Login(ctx context.Context, email, password string) (string, error)
	UpdateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
}

type CourseUsecase interface {
	CreateCourse(ctx context.Context, course *Course) error
	UpdateCourse(ctx context.Context, course *Course) (*Course, error)
	DeleteCourse(ctx context.Context, id string) error
	GetCatalog(ctx context.Context) ([]Course, error)
	GetCourseBySlug(ctx context.Context, slug string) (*Course, error)
	GetCourseByID(ctx context.Context, id string) (*Course, error)
	AddLesson(ctx context.Context, lesson *Lesson) error
	UpdateLesson(ctx context.Context, lesson *Lesson) (*Lesson, error)
	DeleteLesson(ctx context.Context, id string) error
	ReplaceQuiz(ctx context.Context, quiz *Quiz) error
	DeleteQuiz(ctx context.Context, courseID string) error
	InvalidateCache(ctx context.Context) error
}

type ProgressUsecase interface {
	Enroll(ctx context.Context, userID, courseID string) (*Enrollment, error)
	GetEnrollments(ctx context.Context, userID string) ([]Enrollment, error)
	SubmitProgress(ctx context.Context, userID, courseID string, completedLessonID string, score *int) (*Progress, error)
	SubmitQuiz(ctx context.Context, userID, courseID string, answers []int) (*QuizResult, error)
	GetDashboard(ctx context.Context, userID string) (*DashboardSummary, error)
}
