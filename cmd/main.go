package main

import (
	"context"
	"log"
	"os"

	"minilms-backend/config"
	"minilms-backend/internal/cache"
	httpDelivery "minilms-backend/internal/delivery/http"
	"minilms-backend/internal/domain"
	"minilms-backend/internal/repository"
	"minilms-backend/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Connect to database (PostgreSQL, or a local sqlite file in demo mode)
	db := config.ConnectDB()

	// Auto migrate
	if err := config.AutoMigrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	// Optional Redis catalog cache (nil-safe when REDIS_ADDR is unset)
	catalogCache := cache.New()

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(userRepo)
	courseUsecase := usecase.NewCourseUsecase(courseRepo, lessonRepo, quizRepo, catalogCache)
	progressUsecase := usecase.NewProgressUsecase(courseRepo, enrollmentRepo, progressRepo)

	// Seed demo users and catalog
	seedUsers(authUsecase)
	seedCatalog(courseRepo)

	// Initialize handler and router
	apiHandler := httpDelivery.NewHandler(authUsecase, courseUsecase, progressUsecase)
	router := httpDelivery.InitRouter(apiHandler)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server running on port %s", port)
	log.Printf("API: http://localhost:%s/api/v1", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func seedUsers(authUsecase domain.AuthUsecase) {
	// Student
	student := &domain.User{
		Name:     "Demo Student",
		Email:    "student@example.com",
		Password: "password",
		Role:     domain.RoleStudent,
	}
	err := authUsecase.Register(context.Background(), student)
	if err != nil && err.Error() != "email already registered" {
		log.Printf("Failed to seed student: %v", err)
	}

	// Instructor
	instructor := &domain.User{
		Name:     "Demo Instructor",
		Email:    "instructor@example.com",
		Password: "password",
		Role:     domain.RoleInstructor,
	}
	err = authUsecase.Register(context.Background(), instructor)
	if err != nil && err.Error() != "email already registered" {
		log.Printf("Failed to seed instructor: %v", err)
	}
}

// seedCatalog loads the demo courses on first boot. It only runs against an
// empty catalog so operator edits survive restarts.
func seedCatalog(courseRepo domain.CourseRepository) {
	ctx := context.Background()

	count, err := courseRepo.Count(ctx)
	if err != nil {
		log.Printf("Failed to check catalog: %v", err)
		return
	}
	if count > 0 {
		return
	}

	courses := []domain.Course{
		{
			ID:           "c-js-101",
			Slug:         "javascript-fundamentals",
			Title:        "JavaScript Fundamentals",
			Description:  "Start coding with JS: variables, functions, arrays, and DOM.",
			Category:     "Programming",
			Level:        domain.LevelBeginner,
			DurationMins: 180,
			Lessons: []domain.Lesson{
				{ID: "l-js-1", Title: "Intro & Setup", Content: "Install VS Code. Try console.log('Hello').", Order: 1},
				{ID: "l-js-2", Title: "Variables & Types", Content: "let/const, primitive types.", Order: 2},
				{ID: "l-js-3", Title: "Functions & Arrays", Content: "Encapsulate logic, map/filter.", Order: 3},
			},
			Quiz: &domain.Quiz{
				ID:    "q-js-1",
				Title: "JS Basics Quiz",
				Questions: []domain.Question{
					{ID: "q1", Prompt: "Which keyword creates a block-scoped variable?", Choices: []string{"var", "let", "function", "scope"}, AnswerIndex: 1, Order: 0},
					{ID: "q2", Prompt: "What method filters items by test?", Choices: []string{"forEach", "map", "reduce", "filter"}, AnswerIndex: 3, Order: 1},
				},
			},
		},
		{
			ID:           "c-ui-201",
			Slug:         "ui-ux-essentials",
			Title:        "UI/UX Design Essentials",
			Description:  "Design interfaces that feel good: hierarchy, contrast, spacing.",
			Category:     "Design",
			Level:        domain.LevelIntermediate,
			DurationMins: 120,
			Lessons: []domain.Lesson{
				{ID: "l-ui-1", Title: "Design Principles", Content: "Hierarchy, contrast, spacing.", Order: 1},
				{ID: "l-ui-2", Title: "Wireframing", Content: "Validate ideas with low-fi wireframes.", Order: 2},
			},
			Quiz: &domain.Quiz{
				ID:    "q-ui-1",
				Title: "UI Essentials Quiz",
				Questions: []domain.Question{
					{ID: "u1", Prompt: "Which is NOT a core design principle?", Choices: []string{"Hierarchy", "Repetition", "Confusion", "Contrast"}, AnswerIndex: 2, Order: 0},
				},
			},
		},
	}

	for i := range courses {
		if err := courseRepo.Create(ctx, &courses[i]); err != nil {
			log.Printf("Failed to seed course %s: %v", courses[i].Slug, err)
			continue
		}
		log.Printf("Seeded course %s", courses[i].Slug)
	}
}
