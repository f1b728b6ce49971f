package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"learnhub/config"
	"learnhub/models"
)

// Connect establishes a connection to PostgreSQL, runs migrations and seeds
// the role table. The returned handle is injected into services and
// middleware at construction; there is no package-level instance.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := SeedRoles(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate performs database migrations
func Migrate(db *gorm.DB) error {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Course{},
		&models.Lesson{},
		&models.Enrollment{},
		&models.LessonProgress{},
		&models.Assignment{},
		&models.Submission{},
		&models.Tag{},
		&models.CourseTag{},
		&models.Review{},
		&models.PasswordReset{},
		&models.LoginTracking{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Println("Migrations completed successfully.")
	return nil
}

// SeedRoles inserts the predefined roles if they are missing
func SeedRoles(db *gorm.DB) error {
	for _, name := range models.AllRoles() {
		var role models.Role
		if err := db.Where("name = ?", name).First(&role).Error; err == nil {
			continue
		}
		if err := db.Create(&models.Role{Name: name}).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", name, err)
		}
	}
	return nil
}
