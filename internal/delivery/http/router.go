package http

import (
	"github.com/gin-gonic/gin"

	"minilms-backend/internal/authz"
)

func InitRouter(handler *Handler) *gin.Engine {
	r := gin.Default()

	// Every route runs through Authenticate so the gate can tell an anonymous
	// caller (401) apart from an authenticated one lacking the role (403).
	api := r.Group("/api/v1")
	api.Use(Authenticate())

	// Public Routes
	{
		api.POST("/register", handler.Register)
		api.POST("/login", handler.Login)
		api.GET("/courses", handler.GetCatalog)
		api.GET("/courses/:slug", handler.GetCourseBySlug)
	}

	// Authenticated (Student, Instructor, Admin)
	{
		api.PUT("/profile", handler.UpdateProfile)
		api.POST("/enroll", RequireAction(authz.ActionEnroll), handler.Enroll)
		api.GET("/enrollments", RequireAction(authz.ActionViewDashboard), handler.GetMyEnrollments)
		api.POST("/progress", RequireAction(authz.ActionSubmitProgress), handler.SubmitProgress)
		api.POST("/quiz/submit", RequireAction(authz.ActionSubmitQuiz), handler.SubmitQuiz)
		api.GET("/dashboard", RequireAction(authz.ActionViewDashboard), handler.GetDashboard)
	}

	// Instructor & Admin Only
	{
		api.POST("/courses", RequireAction(authz.ActionCreateCourse), handler.CreateCourse)
		api.PUT("/courses/:id", RequireAction(authz.ActionEditCourse), handler.UpdateCourse)
		api.DELETE("/courses/:id", RequireAction(authz.ActionDeleteCourse), handler.DeleteCourse)

		api.POST("/courses/:id/lessons", RequireAction(authz.ActionManageContent), handler.AddLesson)
		api.PUT("/lessons/:id", RequireAction(authz.ActionManageContent), handler.UpdateLesson)
		api.DELETE("/lessons/:id", RequireAction(authz.ActionManageContent), handler.DeleteLesson)

		api.PUT("/courses/:id/quiz", RequireAction(authz.ActionManageContent), handler.ReplaceQuiz)
		api.DELETE("/courses/:id/quiz", RequireAction(authz.ActionManageContent), handler.DeleteQuiz)

		api.POST("/revalidate", RequireAction(authz.ActionRevalidate), handler.Revalidate)
	}

	return r
}
