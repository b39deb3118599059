package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"minilms-backend/internal/domain"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrCourseNotFound = errors.New("course not found")
	ErrLessonNotFound = errors.New("lesson not found")
	ErrQuizNotFound   = errors.New("quiz not found")
)

// ========== USER REPOSITORY ==========

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepo{db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return &user, err
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return &user, err
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// ========== COURSE REPOSITORY ==========

type courseRepo struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) domain.CourseRepository {
	return &courseRepo{db}
}

func (r *courseRepo) Create(ctx context.Context, course *domain.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetAll(ctx context.Context) ([]domain.Course, error) {
	var courses []domain.Course
	err := r.db.WithContext(ctx).
		Preload("Lessons", orderLessons).
		Preload("Quiz.Questions", orderQuestions).
		Order("created_at ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *courseRepo) GetBySlug(ctx context.Context, slug string) (*domain.Course, error) {
	return r.getOne(ctx, "slug = ?", slug)
}

func (r *courseRepo) getOne(ctx context.Context, query string, arg string) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).
		Preload("Lessons", orderLessons).
		Preload("Quiz.Questions", orderQuestions).
		Where(query, arg).
		First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCourseNotFound
	}
	return &course, err
}

func (r *courseRepo) Update(ctx context.Context, course *domain.Course) error {
	return r.db.WithContext(ctx).Omit("Lessons", "Quiz").Save(course).Error
}

// Delete cascades to the course's lessons and quiz.
func (r *courseRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&domain.Lesson{}).Error; err != nil {
			return err
		}
		var quiz domain.Quiz
		err := tx.Where("course_id = ?", id).First(&quiz).Error
		if err == nil {
			if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&domain.Question{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&quiz).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Delete(&domain.Course{}, "id = ?", id).Error
	})
}

func (r *courseRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Course{}).Count(&count).Error
	return count, err
}

func (r *courseRepo) CountLessons(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Lesson{}).Count(&count).Error
	return count, err
}

func orderLessons(db *gorm.DB) *gorm.DB {
	return db.Order("lessons.sort_order ASC")
}

func orderQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("questions.sort_order ASC")
}

// ========== LESSON REPOSITORY ==========

type lessonRepo struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) domain.LessonRepository {
	return &lessonRepo{db}
}

func (r *lessonRepo) Create(ctx context.Context, lesson *domain.Lesson) error {
	if lesson.ID == "" {
		lesson.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(lesson).Error
}

func (r *lessonRepo) GetByID(ctx context.Context, id string) (*domain.Lesson, error) {
	var lesson domain.Lesson
	err := r.db.WithContext(ctx).First(&lesson, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLessonNotFound
	}
	return &lesson, err
}

func (r *lessonRepo) Update(ctx context.Context, lesson *domain.Lesson) error {
	return r.db.WithContext(ctx).Save(lesson).Error
}

func (r *lessonRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Lesson{}, "id = ?", id).Error
}

// ========== QUIZ REPOSITORY ==========

type quizRepo struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) domain.QuizRepository {
	return &quizRepo{db}
}

func (r *quizRepo) GetByCourseID(ctx context.Context, courseID string) (*domain.Quiz, error) {
	var quiz domain.Quiz
	err := r.db.WithContext(ctx).
		Preload("Questions", orderQuestions).
		Where("course_id = ?", courseID).
		First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuizNotFound
	}
	return &quiz, err
}

// Replace swaps the course's quiz wholesale; a course carries at most one.
func (r *quizRepo) Replace(ctx context.Context, quiz *domain.Quiz) error {
	if quiz.ID == "" {
		quiz.ID = uuid.NewString()
	}
	for i := range quiz.Questions {
		if quiz.Questions[i].ID == "" {
			quiz.Questions[i].ID = uuid.NewString()
		}
		quiz.Questions[i].QuizID = quiz.ID
		quiz.Questions[i].Order = i
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteQuizTx(tx, quiz.CourseID); err != nil {
			return err
		}
		return tx.Create(quiz).Error
	})
}

func (r *quizRepo) DeleteByCourseID(ctx context.Context, courseID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteQuizTx(tx, courseID)
	})
}

func deleteQuizTx(tx *gorm.DB, courseID string) error {
	var existing domain.Quiz
	err := tx.Where("course_id = ?", courseID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := tx.Where("quiz_id = ?", existing.ID).Delete(&domain.Question{}).Error; err != nil {
		return err
	}
	return tx.Delete(&existing).Error
}

// ========== ENROLLMENT REPOSITORY ==========

type enrollmentRepo struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) domain.EnrollmentRepository {
	return &enrollmentRepo{db}
}

// Upsert inserts the enrollment or does nothing when the (user, course) pair
// already exists, so two concurrent enrolls still yield exactly one record.
func (r *enrollmentRepo) Upsert(ctx context.Context, enrollment *domain.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(enrollment).Error
}

func (r *enrollmentRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Enrollment, error) {
	var enrollments []domain.Enrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Course").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *enrollmentRepo) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.Enrollment, error) {
	var enrollment domain.Enrollment
	err := r.db.WithContext(ctx).Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &enrollment, err
}

func (r *enrollmentRepo) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// ========== PROGRESS REPOSITORY ==========

type progressRepo struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) domain.ProgressRepository {
	return &progressRepo{db}
}

// Upsert writes the record as a single conditional insert keyed on
// (user_id, course_id), never a separate read-then-write, so concurrent
// submissions by the same user cannot create a duplicate row.
func (r *progressRepo) Upsert(ctx context.Context, progress *domain.Progress) error {
	if progress.ID == "" {
		progress.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed_lesson_ids", "quiz_score", "updated_at"}),
	}).Create(progress).Error
}

func (r *progressRepo) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.Progress, error) {
	var progress domain.Progress
	err := r.db.WithContext(ctx).Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &progress, err
}

func (r *progressRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Progress, error) {
	var progress []domain.Progress
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&progress).Error
	return progress, err
}
