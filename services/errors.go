package services

import "errors"

// Domain failures raised by the services. Controllers translate them to
// transport status codes in middleware.ServiceErrorResponse; nothing in this
// package knows about HTTP.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrUserNotFound       = errors.New("user not found or inactive")
	ErrInvalidResetCode   = errors.New("invalid or expired reset code")

	ErrCourseNotFound     = errors.New("course not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrNotEnrolled        = errors.New("not enrolled in this course")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadyGraded      = errors.New("submission has already been graded")
	ErrInvalidGrade       = errors.New("grade is out of range for this assignment")
	ErrAlreadyReviewed    = errors.New("course already reviewed")
	ErrReviewNotFound     = errors.New("review not found")

	ErrForbidden = errors.New("operation not permitted")
)
