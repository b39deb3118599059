package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"minilms-backend/internal/domain"
)

// ConnectDB opens the persistent store. With DB_HOST set it connects to
// PostgreSQL; otherwise it falls back to a local sqlite file so the app runs
// standalone in demo mode with identical semantics. A missing or corrupt
// local file is simply recreated by the driver and re-seeded at startup.
func ConnectDB() *gorm.DB {
	err := godotenv.Load()
	if err != nil {
		log.Println("Note: .env file not found, using system environment variables")
	}

	if host := os.Getenv("DB_HOST"); host != "" {
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			host,
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
		)
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL:", err)
		}
		log.Println("Connected to PostgreSQL")
		return db
	}

	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = "minilms.db"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to open local database:", err)
	}
	log.Printf("DB_HOST not set, using local database %s", path)
	return db
}

func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Course{},
		&domain.Lesson{},
		&domain.Quiz{},
		&domain.Question{},
		&domain.Enrollment{},
		&domain.Progress{},
	)
	if err != nil {
		return err
	}
	log.Println("Database migration completed!")
	return nil
}
