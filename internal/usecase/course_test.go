package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"minilms-backend/internal/domain"
)

type MockLessonRepo struct {
	mock.Mock
}

func (m *MockLessonRepo) Create(ctx context.Context, lesson *domain.Lesson) error {
	return m.Called(ctx, lesson).Error(0)
}

func (m *MockLessonRepo) GetByID(ctx context.Context, id string) (*domain.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lesson), args.Error(1)
}

func (m *MockLessonRepo) Update(ctx context.Context, lesson *domain.Lesson) error {
	return m.Called(ctx, lesson).Error(0)
}

func (m *MockLessonRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockQuizRepo struct {
	mock.Mock
}

func (m *MockQuizRepo) GetByCourseID(ctx context.Context, courseID string) (*domain.Quiz, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepo) Replace(ctx context.Context, quiz *domain.Quiz) error {
	return m.Called(ctx, quiz).Error(0)
}

func (m *MockQuizRepo) DeleteByCourseID(ctx context.Context, courseID string) error {
	return m.Called(ctx, courseID).Error(0)
}

func newCourseUsecase() (domain.CourseUsecase, *MockCourseRepo, *MockLessonRepo, *MockQuizRepo) {
	cr := new(MockCourseRepo)
	lr := new(MockLessonRepo)
	qr := new(MockQuizRepo)
	// nil cache disables caching; reads fall through to the repository.
	return NewCourseUsecase(cr, lr, qr, nil), cr, lr, qr
}

func TestCreateCourseRejectsDuplicateSlug(t *testing.T) {
	uc, cr, _, _ := newCourseUsecase()

	cr.On("GetBySlug", mock.Anything, "javascript-fundamentals").
		Return(&domain.Course{ID: "c-js-101", Slug: "javascript-fundamentals"}, nil)

	err := uc.CreateCourse(context.Background(), &domain.Course{Slug: "javascript-fundamentals"})
	assert.Error(t, err)
	cr.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateCoursePartial(t *testing.T) {
	uc, cr, _, _ := newCourseUsecase()

	existing := &domain.Course{
		ID:           "c-js-101",
		Slug:         "javascript-fundamentals",
		Title:        "JavaScript Fundamentals",
		Description:  "Start coding with JS: variables, functions, arrays, and DOM.",
		Category:     "Programming",
		Level:        domain.LevelBeginner,
		DurationMins: 180,
	}

	cr.On("GetByID", mock.Anything, "c-js-101").Return(existing, nil)
	cr.On("Update", mock.Anything, mock.Anything).Return(nil)

	updated, err := uc.UpdateCourse(context.Background(), &domain.Course{
		ID:    "c-js-101",
		Title: "JavaScript Fundamentals, 2nd Edition",
	})
	assert.NoError(t, err)
	assert.Equal(t, "JavaScript Fundamentals, 2nd Edition", updated.Title)
	// Untouched fields survive a partial update.
	assert.Equal(t, "javascript-fundamentals", updated.Slug)
	assert.Equal(t, 180, updated.DurationMins)
}

func TestReplaceQuizUnknownCourse(t *testing.T) {
	uc, cr, _, qr := newCourseUsecase()

	cr.On("GetByID", mock.Anything, "missing").Return(nil, assert.AnError)

	err := uc.ReplaceQuiz(context.Background(), &domain.Quiz{CourseID: "missing"})
	assert.Error(t, err)
	qr.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}

func TestDeleteCourseChecksExistence(t *testing.T) {
	uc, cr, _, _ := newCourseUsecase()

	cr.On("GetByID", mock.Anything, "missing").Return(nil, assert.AnError)

	err := uc.DeleteCourse(context.Background(), "missing")
	assert.Error(t, err)
	cr.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
