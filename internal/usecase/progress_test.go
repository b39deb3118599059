package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"minilms-backend/internal/domain"
)

type MockCourseRepo struct {
	mock.Mock
}

func (m *MockCourseRepo) Create(ctx context.Context, course *domain.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *MockCourseRepo) GetAll(ctx context.Context) ([]domain.Course, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Course), args.Error(1)
}

func (m *MockCourseRepo) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseRepo) GetBySlug(ctx context.Context, slug string) (*domain.Course, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseRepo) Update(ctx context.Context, course *domain.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *MockCourseRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCourseRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCourseRepo) CountLessons(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockEnrollmentRepo struct {
	mock.Mock
}

func (m *MockEnrollmentRepo) Upsert(ctx context.Context, e *domain.Enrollment) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEnrollmentRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Enrollment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepo) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.Enrollment, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepo) CountByUserID(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockProgressRepo struct {
	mock.Mock
}

func (m *MockProgressRepo) Upsert(ctx context.Context, p *domain.Progress) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProgressRepo) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.Progress, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Progress), args.Error(1)
}

func (m *MockProgressRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Progress, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Progress), args.Error(1)
}

func newProgressUsecase() (domain.ProgressUsecase, *MockCourseRepo, *MockEnrollmentRepo, *MockProgressRepo) {
	cr := new(MockCourseRepo)
	er := new(MockEnrollmentRepo)
	pr := new(MockProgressRepo)
	return NewProgressUsecase(cr, er, pr), cr, er, pr
}

func TestEnrollUpserts(t *testing.T) {
	uc, cr, er, _ := newProgressUsecase()

	course := &domain.Course{ID: "c-js-101", Slug: "javascript-fundamentals"}
	stored := &domain.Enrollment{ID: "e1", UserID: "u1", CourseID: "c-js-101"}

	cr.On("GetByID", mock.Anything, "c-js-101").Return(course, nil).Twice()
	er.On("Upsert", mock.Anything, mock.Anything).Return(nil).Twice()
	er.On("GetByUserAndCourse", mock.Anything, "u1", "c-js-101").Return(stored, nil).Twice()

	// Enrolling twice goes through the same conflict-ignoring upsert and
	// resolves to the same stored record.
	first, err := uc.Enroll(context.Background(), "u1", "c-js-101")
	assert.NoError(t, err)
	second, err := uc.Enroll(context.Background(), "u1", "c-js-101")
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	er.AssertExpectations(t)
}

func TestEnrollUnknownCourse(t *testing.T) {
	uc, cr, er, _ := newProgressUsecase()

	cr.On("GetByID", mock.Anything, "missing").Return(nil, assert.AnError)

	_, err := uc.Enroll(context.Background(), "u1", "missing")
	assert.Error(t, err)
	er.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestSubmitProgressFirstTouch(t *testing.T) {
	uc, cr, _, pr := newProgressUsecase()

	cr.On("GetByID", mock.Anything, "c-js-101").Return(&domain.Course{ID: "c-js-101"}, nil)
	pr.On("GetByUserAndCourse", mock.Anything, "u1", "c-js-101").Return(nil, nil)
	pr.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	progress, err := uc.SubmitProgress(context.Background(), "u1", "c-js-101", "l-js-1", nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"l-js-1"}, progress.CompletedLessonIDs)
	assert.Nil(t, progress.QuizScore)
}

func TestSubmitProgressMergesAndKeepsScore(t *testing.T) {
	uc, cr, _, pr := newProgressUsecase()

	prev := &domain.Progress{
		ID:                 "p1",
		UserID:             "u1",
		CourseID:           "c-js-101",
		CompletedLessonIDs: []string{"l-js-1"},
		QuizScore:          intPtr(50),
	}

	cr.On("GetByID", mock.Anything, "c-js-101").Return(&domain.Course{ID: "c-js-101"}, nil)
	pr.On("GetByUserAndCourse", mock.Anything, "u1", "c-js-101").Return(prev, nil)
	pr.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	progress, err := uc.SubmitProgress(context.Background(), "u1", "c-js-101", "l-js-2", nil)
	assert.NoError(t, err)
	assert.Equal(t, "p1", progress.ID)
	assert.Equal(t, []string{"l-js-1", "l-js-2"}, progress.CompletedLessonIDs)
	// Marking a lesson must not disturb the recorded score.
	assert.Equal(t, 50, *progress.QuizScore)
}

func TestSubmitProgressOverwritesScore(t *testing.T) {
	uc, cr, _, pr := newProgressUsecase()

	prev := &domain.Progress{
		ID:        "p1",
		UserID:    "u1",
		CourseID:  "c-js-101",
		QuizScore: intPtr(100),
	}

	cr.On("GetByID", mock.Anything, "c-js-101").Return(&domain.Course{ID: "c-js-101"}, nil)
	pr.On("GetByUserAndCourse", mock.Anything, "u1", "c-js-101").Return(prev, nil)
	pr.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	progress, err := uc.SubmitProgress(context.Background(), "u1", "c-js-101", "", intPtr(40))
	assert.NoError(t, err)
	// Latest attempt wins, even when worse.
	assert.Equal(t, 40, *progress.QuizScore)
}

func TestSubmitQuizScoresAndRecords(t *testing.T) {
	uc, cr, _, pr := newProgressUsecase()

	course := &domain.Course{
		ID:   "c-js-101",
		Slug: "javascript-fundamentals",
		Quiz: &domain.Quiz{
			ID:        "q-js-1",
			CourseID:  "c-js-101",
			Questions: twoQuestionKey(),
		},
	}

	cr.On("GetByID", mock.Anything, "c-js-101").Return(course, nil)
	pr.On("GetByUserAndCourse", mock.Anything, "u1", "c-js-101").Return(nil, nil)
	pr.On("Upsert", mock.Anything, mock.MatchedBy(func(p *domain.Progress) bool {
		return p.QuizScore != nil && *p.QuizScore == 50
	})).Return(nil)

	result, err := uc.SubmitQuiz(context.Background(), "u1", "c-js-101", []int{1, 0})
	assert.NoError(t, err)
	assert.Equal(t, 50, result.Score)
	assert.Equal(t, 1, result.Correct)
	assert.Equal(t, 2, result.Questions)
	pr.AssertExpectations(t)
}

func TestSubmitQuizNoQuiz(t *testing.T) {
	uc, cr, _, pr := newProgressUsecase()

	cr.On("GetByID", mock.Anything, "c-ui-201").Return(&domain.Course{ID: "c-ui-201"}, nil)

	_, err := uc.SubmitQuiz(context.Background(), "u1", "c-ui-201", []int{0})
	assert.ErrorIs(t, err, ErrNoQuiz)
	pr.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestGetDashboard(t *testing.T) {
	uc, cr, er, pr := newProgressUsecase()

	er.On("CountByUserID", mock.Anything, "u1").Return(int64(1), nil)
	// Lesson total spans the whole catalog, not just enrolled courses.
	cr.On("CountLessons", mock.Anything).Return(int64(5), nil)
	pr.On("GetByUserID", mock.Anything, "u1").Return([]domain.Progress{
		{CourseID: "c-js-101", CompletedLessonIDs: []string{"l-js-1", "l-js-2"}},
	}, nil)

	summary, err := uc.GetDashboard(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.EnrolledCount)
	assert.Equal(t, 5, summary.TotalLessons)
	assert.Equal(t, 2, summary.CompletedCount)
	assert.Nil(t, summary.AverageScore)
}
