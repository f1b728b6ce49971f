package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/models"
)

func TestUserAdministration(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)
	auth := NewAuthService(db, 4)

	user := createUser(t, db, models.RoleStudent)

	t.Run("listing strips password hashes", func(t *testing.T) {
		users, total, err := svc.ListUsers(1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, users, 1)
		assert.Empty(t, users[0].Password)
	})

	t.Run("deactivation locks the account out", func(t *testing.T) {
		updated, err := svc.SetUserActive(user.ID, false)
		require.NoError(t, err)
		assert.False(t, updated.IsActive)

		_, err = auth.Authenticate(user.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)

		reactivated, err := svc.SetUserActive(user.ID, true)
		require.NoError(t, err)
		assert.True(t, reactivated.IsActive)
	})

	t.Run("role changes", func(t *testing.T) {
		updated, err := svc.SetUserRole(user.ID, models.RoleTutor)
		require.NoError(t, err)
		assert.Equal(t, models.RoleTutor, updated.RoleName())
	})

	t.Run("unknown roles are rejected", func(t *testing.T) {
		_, err := svc.SetUserRole(user.ID, "superuser")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.SetUserActive(99999, true)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)
	enrollments := NewEnrollmentService(db)

	tutor := createUser(t, db, models.RoleTutor)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, tutor.ID, true)
	createCourse(t, db, tutor.ID, false)

	_, err := enrollments.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalCourses)
	assert.Equal(t, int64(1), stats.PublishedCourses)
	assert.Equal(t, int64(1), stats.TotalEnrollments)
	assert.Equal(t, int64(2), stats.SignupsToday)
	assert.Equal(t, int64(1), stats.EnrollmentsToday)
}
