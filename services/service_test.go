package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"learnhub/database"
	"learnhub/models"
)

// newTestDB opens an isolated in-memory database with the full schema and
// seeded roles. Single connection so every query sees the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedRoles(db))

	return db
}

var testUserSeq int

// createUser inserts an active user with the named role. The password hash
// is a placeholder; auth flows that need a real hash go through Register.
func createUser(t *testing.T, db *gorm.DB, roleName string) *models.User {
	t.Helper()

	var role models.Role
	require.NoError(t, db.Where("name = ?", roleName).First(&role).Error)

	testUserSeq++
	user := models.User{
		Email:    fmt.Sprintf("user%d@example.com", testUserSeq),
		Username: fmt.Sprintf("user%d", testUserSeq),
		Password: "x",
		FullName: fmt.Sprintf("User %d", testUserSeq),
		RoleID:   &role.ID,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	user.Role = &role
	return &user
}

// createCourse inserts a course for the tutor, published by default
func createCourse(t *testing.T, db *gorm.DB, tutorID uint, published bool) *models.Course {
	t.Helper()

	course := models.Course{
		Title:       "Go from Scratch",
		Description: "Learn Go step by step",
		Category:    "programming",
		Level:       "beginner",
		TutorID:     tutorID,
		IsPublished: published,
	}
	require.NoError(t, db.Create(&course).Error)
	return &course
}

// createLessons appends n ordered lessons to the course
func createLessons(t *testing.T, db *gorm.DB, courseID uint, n int) []models.Lesson {
	t.Helper()

	lessons := make([]models.Lesson, n)
	for i := 0; i < n; i++ {
		lessons[i] = models.Lesson{
			CourseID:   courseID,
			Title:      fmt.Sprintf("Lesson %d", i+1),
			Content:    "content",
			OrderIndex: i + 1,
		}
		require.NoError(t, db.Create(&lessons[i]).Error)
	}
	return lessons
}

func createAssignment(t *testing.T, db *gorm.DB, lessonID uint, maxScore int) *models.Assignment {
	t.Helper()

	assignment := models.Assignment{
		LessonID:    lessonID,
		Title:       "Build a CLI",
		Description: "Ship it",
		MaxScore:    maxScore,
	}
	require.NoError(t, db.Create(&assignment).Error)
	return &assignment
}
