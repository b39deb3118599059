package usecase

import (
	"context"
	"errors"

	"minilms-backend/internal/domain"
)

var ErrNoQuiz = errors.New("course has no quiz")

type progressUsecase struct {
	courseRepo     domain.CourseRepository
	enrollmentRepo domain.EnrollmentRepository
	progressRepo   domain.ProgressRepository
}

func NewProgressUsecase(
	cr domain.CourseRepository,
	er domain.EnrollmentRepository,
	pr domain.ProgressRepository,
) domain.ProgressUsecase {
	return &progressUsecase{
		courseRepo:     cr,
		enrollmentRepo: er,
		progressRepo:   pr,
	}
}

// ========== ENROLLMENT ==========

// Enroll is idempotent: enrolling twice in the same course leaves exactly
// one record and is not an error.
func (uc *progressUsecase) Enroll(ctx context.Context, userID, courseID string) (*domain.Enrollment, error) {
	if _, err := uc.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	enrollment := &domain.Enrollment{
		UserID:   userID,
		CourseID: courseID,
	}
	if err := uc.enrollmentRepo.Upsert(ctx, enrollment); err != nil {
		return nil, err
	}

	// The upsert may have been a no-op; return the stored record either way.
	return uc.enrollmentRepo.GetByUserAndCourse(ctx, userID, courseID)
}

func (uc *progressUsecase) GetEnrollments(ctx context.Context, userID string) ([]domain.Enrollment, error) {
	return uc.enrollmentRepo.GetByUserID(ctx, userID)
}

// ========== PROGRESS ==========

// SubmitProgress merges a completed lesson and/or a quiz score into the
// user's progress for the course, creating the record on first touch. An
// absent record is an empty completed set with no score.
func (uc *progressUsecase) SubmitProgress(ctx context.Context, userID, courseID string, completedLessonID string, score *int) (*domain.Progress, error) {
	if _, err := uc.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	prev, err := uc.progressRepo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	next := &domain.Progress{
		UserID:   userID,
		CourseID: courseID,
	}
	if prev != nil {
		next.ID = prev.ID
		next.CompletedLessonIDs = prev.CompletedLessonIDs
		next.QuizScore = prev.QuizScore
		next.CreatedAt = prev.CreatedAt
	}

	next.CompletedLessonIDs = mergeCompletedLessons(next.CompletedLessonIDs, completedLessonID)
	if score != nil {
		// Latest attempt wins; no history is kept.
		next.QuizScore = score
	}

	if err := uc.progressRepo.Upsert(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// SubmitQuiz grades the answers server-side against the course's quiz and
// records the percentage as the latest score.
func (uc *progressUsecase) SubmitQuiz(ctx context.Context, userID, courseID string, answers []int) (*domain.QuizResult, error) {
	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.Quiz == nil {
		return nil, ErrNoQuiz
	}

	score, correct := scoreQuiz(course.Quiz.Questions, answers)
	if _, err := uc.SubmitProgress(ctx, userID, course.ID, "", &score); err != nil {
		return nil, err
	}

	return &domain.QuizResult{
		CourseID:  course.ID,
		QuizID:    course.Quiz.ID,
		Score:     score,
		Questions: len(course.Quiz.Questions),
		Correct:   correct,
	}, nil
}

// ========== DASHBOARD ==========

func (uc *progressUsecase) GetDashboard(ctx context.Context, userID string) (*domain.DashboardSummary, error) {
	enrolled, err := uc.enrollmentRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalLessons, err := uc.courseRepo.CountLessons(ctx)
	if err != nil {
		return nil, err
	}

	records, err := uc.progressRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return aggregateDashboard(int(enrolled), int(totalLessons), records), nil
}
