package services

import (
	"fmt"

	"gorm.io/gorm"

	"learnhub/models"
)

// GradingService owns assignment submissions and grading.
type GradingService struct {
	db *gorm.DB
}

func NewGradingService(db *gorm.DB) *GradingService {
	return &GradingService{db: db}
}

// Submit stores a student's answer to an assignment. The student must be
// enrolled in the course the assignment's lesson belongs to. Resubmitting
// replaces the code while the submission is still ungraded.
func (s *GradingService) Submit(studentID, assignmentID uint, code string) (*models.Submission, error) {
	var assignment models.Assignment
	if err := s.db.Preload("Lesson").First(&assignment, assignmentID).Error; err != nil {
		return nil, ErrAssignmentNotFound
	}

	if err := s.db.Where("student_id = ? AND course_id = ?", studentID, assignment.Lesson.CourseID).
		First(&models.Enrollment{}).Error; err != nil {
		return nil, ErrNotEnrolled
	}

	var submission models.Submission
	err := s.db.Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&submission).Error
	if err == nil {
		if submission.Grade != nil {
			return nil, ErrAlreadyGraded
		}
		submission.CodeSubmission = code
		if err := s.db.Save(&submission).Error; err != nil {
			return nil, fmt.Errorf("failed to update submission: %w", err)
		}
		return &submission, nil
	}

	submission = models.Submission{
		AssignmentID:   assignmentID,
		StudentID:      studentID,
		CodeSubmission: code,
	}
	if err := s.db.Create(&submission).Error; err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}
	return &submission, nil
}

// Grade records a grade and feedback on a submission. Only the tutor owning
// the course the submission's assignment belongs to may grade it; the grade
// must fit the assignment's MaxScore.
func (s *GradingService) Grade(tutorID, submissionID uint, grade int, feedback string) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.Preload("Assignment.Lesson").First(&submission, submissionID).Error; err != nil {
		return nil, ErrSubmissionNotFound
	}

	var course models.Course
	if err := s.db.First(&course, submission.Assignment.Lesson.CourseID).Error; err != nil {
		return nil, ErrCourseNotFound
	}
	if course.TutorID != tutorID {
		return nil, ErrForbidden
	}

	if grade < 0 || grade > submission.Assignment.MaxScore {
		return nil, ErrInvalidGrade
	}

	submission.Grade = &grade
	submission.Feedback = feedback
	if err := s.db.Save(&submission).Error; err != nil {
		return nil, fmt.Errorf("failed to grade submission: %w", err)
	}
	return &submission, nil
}

// ListForAssignment returns an assignment's submissions for the owning tutor
func (s *GradingService) ListForAssignment(tutorID, assignmentID uint) ([]models.Submission, error) {
	var assignment models.Assignment
	if err := s.db.Preload("Lesson").First(&assignment, assignmentID).Error; err != nil {
		return nil, ErrAssignmentNotFound
	}

	var course models.Course
	if err := s.db.First(&course, assignment.Lesson.CourseID).Error; err != nil {
		return nil, ErrCourseNotFound
	}
	if course.TutorID != tutorID {
		return nil, ErrForbidden
	}

	var submissions []models.Submission
	err := s.db.Preload("Student").Where("assignment_id = ?", assignmentID).
		Order("created_at asc").Find(&submissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submissions: %w", err)
	}
	for i := range submissions {
		if submissions[i].Student != nil {
			submissions[i].Student.Password = ""
		}
	}
	return submissions, nil
}

// ListForStudent returns the student's own submissions
func (s *GradingService) ListForStudent(studentID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	err := s.db.Preload("Assignment").Where("student_id = ?", studentID).
		Order("created_at desc").Find(&submissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submissions: %w", err)
	}
	return submissions, nil
}
