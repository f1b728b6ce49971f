package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/models"
)

func TestSubmit(t *testing.T) {
	db := newTestDB(t)
	enrollments := NewEnrollmentService(db)
	svc := NewGradingService(db)

	tutor := createUser(t, db, models.RoleTutor)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, tutor.ID, true)
	lessons := createLessons(t, db, course.ID, 1)
	assignment := createAssignment(t, db, lessons[0].ID, 100)

	t.Run("requires enrollment", func(t *testing.T) {
		_, err := svc.Submit(student.ID, assignment.ID, "package main")
		assert.ErrorIs(t, err, ErrNotEnrolled)
	})

	_, err := enrollments.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	t.Run("creates a submission", func(t *testing.T) {
		submission, err := svc.Submit(student.ID, assignment.ID, "package main")
		require.NoError(t, err)
		assert.Nil(t, submission.Grade)
		assert.Equal(t, "package main", submission.CodeSubmission)
	})

	t.Run("resubmission replaces ungraded code", func(t *testing.T) {
		submission, err := svc.Submit(student.ID, assignment.ID, "package main // v2")
		require.NoError(t, err)
		assert.Equal(t, "package main // v2", submission.CodeSubmission)

		var count int64
		db.Model(&models.Submission{}).
			Where("assignment_id = ? AND student_id = ?", assignment.ID, student.ID).
			Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("unknown assignment", func(t *testing.T) {
		_, err := svc.Submit(student.ID, 99999, "code")
		assert.ErrorIs(t, err, ErrAssignmentNotFound)
	})
}

func TestGrade(t *testing.T) {
	db := newTestDB(t)
	enrollments := NewEnrollmentService(db)
	svc := NewGradingService(db)

	tutor := createUser(t, db, models.RoleTutor)
	otherTutor := createUser(t, db, models.RoleTutor)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, tutor.ID, true)
	lessons := createLessons(t, db, course.ID, 1)
	assignment := createAssignment(t, db, lessons[0].ID, 50)

	_, err := enrollments.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	submission, err := svc.Submit(student.ID, assignment.ID, "package main")
	require.NoError(t, err)

	t.Run("only the owning tutor may grade", func(t *testing.T) {
		_, err := svc.Grade(otherTutor.ID, submission.ID, 40, "nice")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("grade must fit the max score", func(t *testing.T) {
		_, err := svc.Grade(tutor.ID, submission.ID, 51, "")
		assert.ErrorIs(t, err, ErrInvalidGrade)

		_, err = svc.Grade(tutor.ID, submission.ID, -1, "")
		assert.ErrorIs(t, err, ErrInvalidGrade)
	})

	t.Run("owning tutor grades", func(t *testing.T) {
		graded, err := svc.Grade(tutor.ID, submission.ID, 45, "solid work")
		require.NoError(t, err)
		require.NotNil(t, graded.Grade)
		assert.Equal(t, 45, *graded.Grade)
		assert.Equal(t, "solid work", graded.Feedback)
	})

	t.Run("resubmitting a graded submission fails", func(t *testing.T) {
		_, err := svc.Submit(student.ID, assignment.ID, "package main // v3")
		assert.ErrorIs(t, err, ErrAlreadyGraded)
	})

	t.Run("unknown submission", func(t *testing.T) {
		_, err := svc.Grade(tutor.ID, 99999, 10, "")
		assert.ErrorIs(t, err, ErrSubmissionNotFound)
	})
}

func TestListSubmissions(t *testing.T) {
	db := newTestDB(t)
	enrollments := NewEnrollmentService(db)
	svc := NewGradingService(db)

	tutor := createUser(t, db, models.RoleTutor)
	otherTutor := createUser(t, db, models.RoleTutor)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, tutor.ID, true)
	lessons := createLessons(t, db, course.ID, 1)
	assignment := createAssignment(t, db, lessons[0].ID, 100)

	_, err := enrollments.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	_, err = svc.Submit(student.ID, assignment.ID, "package main")
	require.NoError(t, err)

	t.Run("owning tutor sees submissions without password hashes", func(t *testing.T) {
		submissions, err := svc.ListForAssignment(tutor.ID, assignment.ID)
		require.NoError(t, err)
		require.Len(t, submissions, 1)
		require.NotNil(t, submissions[0].Student)
		assert.Empty(t, submissions[0].Student.Password)
	})

	t.Run("other tutors are rejected", func(t *testing.T) {
		_, err := svc.ListForAssignment(otherTutor.ID, assignment.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("student sees own submissions", func(t *testing.T) {
		submissions, err := svc.ListForStudent(student.ID)
		require.NoError(t, err)
		require.Len(t, submissions, 1)
		require.NotNil(t, submissions[0].Assignment)
		assert.Equal(t, assignment.Title, submissions[0].Assignment.Title)
	})
}
