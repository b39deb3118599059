package usecase

import (
	"context"
	"errors"

	"minilms-backend/internal/cache"
	"minilms-backend/internal/domain"
)

type courseUsecase struct {
	courseRepo domain.CourseRepository
	lessonRepo domain.LessonRepository
	quizRepo   domain.QuizRepository
	cache      *cache.CatalogCache
}

func NewCourseUsecase(
	cr domain.CourseRepository,
	lr domain.LessonRepository,
	qr domain.QuizRepository,
	cc *cache.CatalogCache,
) domain.CourseUsecase {
	return &courseUsecase{
		courseRepo: cr,
		lessonRepo: lr,
		quizRepo:   qr,
		cache:      cc,
	}
}

// ========== COURSE CRUD ==========

func (uc *courseUsecase) CreateCourse(ctx context.Context, course *domain.Course) error {
	existing, _ := uc.courseRepo.GetBySlug(ctx, course.Slug)
	if existing != nil {
		return errors.New("slug already in use")
	}
	if err := uc.courseRepo.Create(ctx, course); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx)
	return nil
}

func (uc *courseUsecase) UpdateCourse(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	existing, err := uc.courseRepo.GetByID(ctx, course.ID)
	if err != nil {
		return nil, err
	}

	// Update only metadata fields; lessons and quiz have their own routes.
	if course.Slug != "" {
		existing.Slug = course.Slug
	}
	if course.Title != "" {
		existing.Title = course.Title
	}
	if course.Description != "" {
		existing.Description = course.Description
	}
	if course.Category != "" {
		existing.Category = course.Category
	}
	if course.Level != "" {
		existing.Level = course.Level
	}
	if course.DurationMins > 0 {
		existing.DurationMins = course.DurationMins
	}

	if err := uc.courseRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx)
	return existing, nil
}

func (uc *courseUsecase) DeleteCourse(ctx context.Context, id string) error {
	if _, err := uc.courseRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := uc.courseRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx)
	return nil
}

func (uc *courseUsecase) GetCatalog(ctx context.Context) ([]domain.Course, error) {
	if courses, ok := uc.cache.GetCatalog(ctx); ok {
		return courses, nil
	}
	courses, err := uc.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	uc.cache.SetCatalog(ctx, courses)
	return courses, nil
}

func (uc *courseUsecase) GetCourseBySlug(ctx context.Context, slug string) (*domain.Course, error) {
	if course, ok := uc.cache.GetCourse(ctx, slug); ok {
		return course, nil
	}
	course, err := uc.courseRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	uc.cache.SetCourse(ctx, course)
	return course, nil
}

func (uc *courseUsecase) GetCourseByID(ctx context.Context, id string) (*domain.Course, error) {
	return uc.courseRepo.GetByID(ctx, id)
}

// ========== LESSON CRUD ==========

func (uc *courseUsecase) AddLesson(ctx context.Context, lesson *domain.Lesson) error {
	if _, err := uc.courseRepo.GetByID(ctx, lesson.CourseID); err != nil {
		return err
	}
	if err := uc.lessonRepo.Create(ctx, lesson); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx)
	return nil
}

func (uc *courseUsecase) UpdateLesson(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	existing, err := uc.lessonRepo.GetByID(ctx, lesson.ID)
	if err != nil {
		return nil, err
	}

	if lesson.Title != "" {
		existing.Title = lesson.Title
	}
	if lesson.Content != "" {
		existing.Content = lesson.Content
	}
	if lesson.Resources != nil {
		existing.Resources = lesson.Resources
	}
	if lesson.Order != 0 {
		existing.Order = lesson.Order
	}

	if err := uc.lessonRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx)
	return existing, nil
}

func (uc *courseUsecase) DeleteLesson(ctx context.Context, id string) error {
	if _, err := uc.lessonRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := uc.lessonRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx)
	return nil
}

// ========== QUIZ ==========

// ReplaceQuiz swaps the course's quiz for the submitted one. Question
// shape (choice count, answer index range) is validated at the handler.
func (uc *courseUsecase) ReplaceQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if _, err := uc.courseRepo.GetByID(ctx, quiz.CourseID); err != nil {
		return err
	}
	if err := uc.quizRepo.Replace(ctx, quiz); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx)
	return nil
}

func (uc *courseUsecase) DeleteQuiz(ctx context.Context, courseID string) error {
	if _, err := uc.courseRepo.GetByID(ctx, courseID); err != nil {
		return err
	}
	if err := uc.quizRepo.DeleteByCourseID(ctx, courseID); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx)
	return nil
}

// ========== CACHE ==========

func (uc *courseUsecase) InvalidateCache(ctx context.Context) error {
	return uc.cache.Invalidate(ctx)
}
