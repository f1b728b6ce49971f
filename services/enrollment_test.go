package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/models"
)

func TestEnroll(t *testing.T) {
	db := newTestDB(t)
	svc := NewEnrollmentService(db)

	tutor := createUser(t, db, models.RoleTutor)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, tutor.ID, true)
	createLessons(t, db, course.ID, 3)

	t.Run("seeds one progress row per lesson", func(t *testing.T) {
		enrollment, err := svc.Enroll(student.ID, course.ID)
		require.NoError(t, err)
		assert.Equal(t, float64(0), enrollment.Progress)
		require.NotNil(t, enrollment.Course)
		assert.Equal(t, course.Title, enrollment.Course.Title)

		var rows []models.LessonProgress
		require.NoError(t, db.Where("enrollment_id = ?", enrollment.ID).Find(&rows).Error)
		assert.Len(t, rows, 3)
		for _, row := range rows {
			assert.False(t, row.IsCompleted)
			assert.Nil(t, row.CompletedAt)
		}
	})

	t.Run("double enrollment is rejected", func(t *testing.T) {
		_, err := svc.Enroll(student.ID, course.ID)
		assert.ErrorIs(t, err, ErrAlreadyEnrolled)
	})

	t.Run("unpublished course looks missing", func(t *testing.T) {
		draft := createCourse(t, db, tutor.ID, false)
		_, err := svc.Enroll(student.ID, draft.ID)
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})

	t.Run("course without lessons enrolls with zero rows", func(t *testing.T) {
		empty := createCourse(t, db, tutor.ID, true)
		enrollment, err := svc.Enroll(student.ID, empty.ID)
		require.NoError(t, err)

		var count int64
		db.Model(&models.LessonProgress{}).Where("enrollment_id = ?", enrollment.ID).Count(&count)
		assert.Zero(t, count)
	})
}

func TestCompleteLesson(t *testing.T) {
	db := newTestDB(t)
	svc := NewEnrollmentService(db)

	tutor := createUser(t, db, models.RoleTutor)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, tutor.ID, true)
	lessons := createLessons(t, db, course.ID, 3)

	_, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	t.Run("progress advances lesson by lesson", func(t *testing.T) {
		_, pct, err := svc.CompleteLesson(student.ID, lessons[0].ID)
		require.NoError(t, err)
		assert.Equal(t, float64(33), pct)

		_, pct, err = svc.CompleteLesson(student.ID, lessons[1].ID)
		require.NoError(t, err)
		assert.Equal(t, float64(67), pct)

		_, pct, err = svc.CompleteLesson(student.ID, lessons[2].ID)
		require.NoError(t, err)
		assert.Equal(t, float64(100), pct)
	})

	t.Run("repeat completion is a no-op", func(t *testing.T) {
		first, pct, err := svc.CompleteLesson(student.ID, lessons[0].ID)
		require.NoError(t, err)
		assert.Equal(t, float64(100), pct)

		again, pct, err := svc.CompleteLesson(student.ID, lessons[0].ID)
		require.NoError(t, err)
		assert.Equal(t, float64(100), pct)
		require.NotNil(t, again.CompletedAt)
		assert.Equal(t, first.CompletedAt.Unix(), again.CompletedAt.Unix())
	})

	t.Run("lesson added after enrollment still completes", func(t *testing.T) {
		late := models.Lesson{CourseID: course.ID, Title: "Lesson 4", Content: "c", OrderIndex: 4}
		require.NoError(t, db.Create(&late).Error)

		// 3 of 4 done now
		var enrollment models.Enrollment
		require.NoError(t, db.Where("student_id = ? AND course_id = ?", student.ID, course.ID).
			First(&enrollment).Error)

		row, pct, err := svc.CompleteLesson(student.ID, late.ID)
		require.NoError(t, err)
		assert.True(t, row.IsCompleted)
		assert.Equal(t, float64(100), pct)
	})

	t.Run("unknown lesson", func(t *testing.T) {
		_, _, err := svc.CompleteLesson(student.ID, 99999)
		assert.ErrorIs(t, err, ErrLessonNotFound)
	})

	t.Run("not enrolled", func(t *testing.T) {
		outsider := createUser(t, db, models.RoleStudent)
		_, _, err := svc.CompleteLesson(outsider.ID, lessons[0].ID)
		assert.ErrorIs(t, err, ErrNotEnrolled)
	})
}

func TestUnenroll(t *testing.T) {
	db := newTestDB(t)
	svc := NewEnrollmentService(db)

	tutor := createUser(t, db, models.RoleTutor)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, tutor.ID, true)
	lessons := createLessons(t, db, course.ID, 2)

	enrollment, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	_, _, err = svc.CompleteLesson(student.ID, lessons[0].ID)
	require.NoError(t, err)

	require.NoError(t, svc.Unenroll(student.ID, course.ID))

	t.Run("progress rows are gone", func(t *testing.T) {
		var count int64
		db.Unscoped().Model(&models.LessonProgress{}).
			Where("enrollment_id = ?", enrollment.ID).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("completing after unenroll fails", func(t *testing.T) {
		_, _, err := svc.CompleteLesson(student.ID, lessons[1].ID)
		assert.ErrorIs(t, err, ErrNotEnrolled)
	})

	t.Run("unenrolling twice fails", func(t *testing.T) {
		assert.ErrorIs(t, svc.Unenroll(student.ID, course.ID), ErrNotEnrolled)
	})

	t.Run("re-enrollment starts fresh", func(t *testing.T) {
		fresh, err := svc.Enroll(student.ID, course.ID)
		require.NoError(t, err)
		assert.Equal(t, float64(0), fresh.Progress)

		var rows []models.LessonProgress
		require.NoError(t, db.Where("enrollment_id = ?", fresh.ID).Find(&rows).Error)
		assert.Len(t, rows, 2)
		for _, row := range rows {
			assert.False(t, row.IsCompleted)
		}
	})
}

func TestProgressSummary(t *testing.T) {
	db := newTestDB(t)
	svc := NewEnrollmentService(db)

	tutor := createUser(t, db, models.RoleTutor)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, tutor.ID, true)
	lessons := createLessons(t, db, course.ID, 4)

	_, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	_, _, err = svc.CompleteLesson(student.ID, lessons[0].ID)
	require.NoError(t, err)

	summary, err := svc.Progress(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), summary.TotalLessons)
	assert.Equal(t, int64(1), summary.CompletedLessons)
	assert.Equal(t, float64(25), summary.Progress)
	assert.Len(t, summary.Lessons, 4)

	t.Run("requires enrollment", func(t *testing.T) {
		outsider := createUser(t, db, models.RoleStudent)
		_, err := svc.Progress(outsider.ID, course.ID)
		assert.ErrorIs(t, err, ErrNotEnrolled)
	})
}

func TestReconcile(t *testing.T) {
	db := newTestDB(t)
	svc := NewEnrollmentService(db)

	tutor := createUser(t, db, models.RoleTutor)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, tutor.ID, true)
	lessons := createLessons(t, db, course.ID, 4)

	_, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	_, _, err = svc.CompleteLesson(student.ID, lessons[0].ID)
	require.NoError(t, err)
	_, _, err = svc.CompleteLesson(student.ID, lessons[1].ID)
	require.NoError(t, err)

	// Drop two incomplete lessons behind the service's back, then reconcile
	require.NoError(t, db.Unscoped().Delete(&lessons[2]).Error)
	require.NoError(t, db.Unscoped().Delete(&lessons[3]).Error)
	require.NoError(t, db.Unscoped().
		Where("lesson_id IN ?", []uint{lessons[2].ID, lessons[3].ID}).
		Delete(&models.LessonProgress{}).Error)

	require.NoError(t, svc.Reconcile())

	var enrollment models.Enrollment
	require.NoError(t, db.Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		First(&enrollment).Error)
	assert.Equal(t, float64(100), enrollment.Progress)
}
