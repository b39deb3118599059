package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"

	"minilms-backend/internal/domain"
	"minilms-backend/internal/usecase"
)

type Handler struct {
	AuthUsecase     domain.AuthUsecase
	CourseUsecase   domain.CourseUsecase
	ProgressUsecase domain.ProgressUsecase
}

func NewHandler(
	au domain.AuthUsecase,
	cu domain.CourseUsecase,
	pu domain.ProgressUsecase,
) *Handler {
	return &Handler{
		AuthUsecase:     au,
		CourseUsecase:   cu,
		ProgressUsecase: pu,
	}
}

// ========== UTILITY FUNCTIONS ==========

func formatValidationErrors(err error) gin.H {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		details := make(map[string]string)
		for _, f := range ve {
			details[f.Field()] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", f.Field(), f.Tag())
		}
		return gin.H{"error": "Validation failed", "details": details}
	}
	return gin.H{"error": "Invalid request: " + err.Error()}
}

func getUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", errors.New("user ID not found in token")
	}
	return userID.(string), nil
}

// minutes accepts a JSON number or a numeric string; duration inputs arrive
// both ways from the catalog form.
type minutes int

func (m *minutes) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*m = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("duration_mins must be a number")
	}
	*m = minutes(n)
	return nil
}

// ========== AUTH HANDLERS ==========

func (h *Handler) Register(c *gin.Context) {
	var input struct {
		Name     string      `json:"name" binding:"required"`
		Email    string      `json:"email" binding:"required,email"`
		Password string      `json:"password" binding:"required,min=6"`
		Role     domain.Role `json:"role" binding:"omitempty,oneof=student instructor admin"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	user := domain.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	}
	if err := h.AuthUsecase.Register(c.Request.Context(), &user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

func (h *Handler) Login(c *gin.Context) {
	var creds struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	token, err := h.AuthUsecase.Login(c.Request.Context(), creds.Email, creds.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var input struct {
		Name     string `json:"name"`
		Password string `json:"password" binding:"omitempty,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	user := domain.User{ID: userID, Name: input.Name, Password: input.Password}
	if err := h.AuthUsecase.UpdateUser(c.Request.Context(), &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// ========== COURSE HANDLERS ==========

type courseInput struct {
	Slug         string       `json:"slug" binding:"required,min=3"`
	Title        string       `json:"title" binding:"required,min=3"`
	Description  string       `json:"description" binding:"required,min=10"`
	Category     string       `json:"category" binding:"required,min=2"`
	Level        domain.Level `json:"level" binding:"required,oneof=beginner intermediate advanced"`
	DurationMins minutes      `json:"duration_mins" binding:"required,gt=0"`
}

func (h *Handler) GetCatalog(c *gin.Context) {
	courses, err := h.CourseUsecase.GetCatalog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"courses": courses,
		"count":   len(courses),
	})
}

func (h *Handler) GetCourseBySlug(c *gin.Context) {
	course, err := h.CourseUsecase.GetCourseBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *Handler) CreateCourse(c *gin.Context) {
	var input courseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	course := domain.Course{
		Slug:         input.Slug,
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		Level:        input.Level,
		DurationMins: int(input.DurationMins),
	}
	if err := h.CourseUsecase.CreateCourse(c.Request.Context(), &course); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, course)
}

func (h *Handler) UpdateCourse(c *gin.Context) {
	var input struct {
		Slug         string       `json:"slug" binding:"omitempty,min=3"`
		Title        string       `json:"title" binding:"omitempty,min=3"`
		Description  string       `json:"description" binding:"omitempty,min=10"`
		Category     string       `json:"category" binding:"omitempty,min=2"`
		Level        domain.Level `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
		DurationMins minutes      `json:"duration_mins" binding:"omitempty,gt=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	course := domain.Course{
		ID:           c.Param("id"),
		Slug:         input.Slug,
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		Level:        input.Level,
		DurationMins: int(input.DurationMins),
	}
	updated, err := h.CourseUsecase.UpdateCourse(c.Request.Context(), &course)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course updated successfully", "course": updated})
}

func (h *Handler) DeleteCourse(c *gin.Context) {
	if err := h.CourseUsecase.DeleteCourse(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ========== LESSON HANDLERS ==========

type lessonInput struct {
	Title     string         `json:"title" binding:"required,min=2"`
	Content   string         `json:"content" binding:"required,min=1"`
	Resources datatypes.JSON `json:"resources"`
	Order     int            `json:"order" binding:"omitempty,gte=0"`
}

func (h *Handler) AddLesson(c *gin.Context) {
	var input lessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	lesson := domain.Lesson{
		CourseID:  c.Param("id"),
		Title:     input.Title,
		Content:   input.Content,
		Resources: input.Resources,
		Order:     input.Order,
	}
	if err := h.CourseUsecase.AddLesson(c.Request.Context(), &lesson); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	c.JSON(http.StatusCreated, lesson)
}

func (h *Handler) UpdateLesson(c *gin.Context) {
	var input struct {
		Title     string         `json:"title" binding:"omitempty,min=2"`
		Content   string         `json:"content"`
		Resources datatypes.JSON `json:"resources"`
		Order     int            `json:"order" binding:"omitempty,gte=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	lesson := domain.Lesson{
		ID:        c.Param("id"),
		Title:     input.Title,
		Content:   input.Content,
		Resources: input.Resources,
		Order:     input.Order,
	}
	updated, err := h.CourseUsecase.UpdateLesson(c.Request.Context(), &lesson)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lesson updated successfully", "lesson": updated})
}

func (h *Handler) DeleteLesson(c *gin.Context) {
	if err := h.CourseUsecase.DeleteLesson(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ========== QUIZ HANDLERS ==========

type questionInput struct {
	ID          string   `json:"id"`
	Prompt      string   `json:"prompt" binding:"required,min=2"`
	Choices     []string `json:"choices" binding:"required,min=2"`
	AnswerIndex int      `json:"answer_index" binding:"gte=0"`
}

func (h *Handler) ReplaceQuiz(c *gin.Context) {
	var input struct {
		Title     string          `json:"title" binding:"required,min=2"`
		Questions []questionInput `json:"questions" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	quiz := domain.Quiz{
		CourseID: c.Param("id"),
		Title:    input.Title,
	}
	for i, q := range input.Questions {
		if q.AnswerIndex >= len(q.Choices) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("question %d: answer_index %d out of range for %d choices", i+1, q.AnswerIndex, len(q.Choices)),
			})
			return
		}
		quiz.Questions = append(quiz.Questions, domain.Question{
			ID:          q.ID,
			Prompt:      q.Prompt,
			Choices:     q.Choices,
			AnswerIndex: q.AnswerIndex,
		})
	}

	if err := h.CourseUsecase.ReplaceQuiz(c.Request.Context(), &quiz); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quiz saved successfully", "quiz": quiz})
}

func (h *Handler) DeleteQuiz(c *gin.Context) {
	if err := h.CourseUsecase.DeleteQuiz(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) SubmitQuiz(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var input struct {
		CourseID string `json:"course_id" binding:"required"`
		Answers  []int  `json:"answers"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	result, err := h.ProgressUsecase.SubmitQuiz(c.Request.Context(), userID, input.CourseID, input.Answers)
	if err != nil {
		if errors.Is(err, usecase.ErrNoQuiz) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course has no quiz"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ========== ENROLLMENT & PROGRESS HANDLERS ==========

func (h *Handler) Enroll(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var input struct {
		CourseID string `json:"course_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	enrollment, err := h.ProgressUsecase.Enroll(c.Request.Context(), userID, input.CourseID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}

func (h *Handler) GetMyEnrollments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	enrollments, err := h.ProgressUsecase.GetEnrollments(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"enrollments": enrollments,
		"count":       len(enrollments),
	})
}

func (h *Handler) SubmitProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var input struct {
		CourseID          string `json:"course_id" binding:"required"`
		CompletedLessonID string `json:"completed_lesson_id"`
		Score             *int   `json:"score" binding:"omitempty,gte=0,lte=100"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	progress, err := h.ProgressUsecase.SubmitProgress(c.Request.Context(), userID, input.CourseID, input.CompletedLessonID, input.Score)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	c.JSON(http.StatusCreated, progress)
}

func (h *Handler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.ProgressUsecase.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ========== CACHE ==========

func (h *Handler) Revalidate(c *gin.Context) {
	var input struct {
		Path string `json:"path" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	if err := h.CourseUsecase.InvalidateCache(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"revalidated": true, "path": input.Path})
}
