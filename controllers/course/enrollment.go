package controllers

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/middleware"
	"learnhub/utils"
	courseValidator "learnhub/validators/course"
)

// Student-facing enrollment and progress handlers.

func (ctl *Controller) Enroll(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID := c.Locals("courseID").(uint)

	enrollment, err := ctl.enrollments.Enroll(userID, courseID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	if student, err := ctl.auth.Authenticate(userID); err == nil {
		go utils.SendEnrollmentEmail(student.Email, student.FullName, enrollment.Course.Title)
	}
	utils.NotifyEvent("student.enrolled", map[string]interface{}{
		"student_id": userID,
		"course_id":  courseID,
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled successfully!", enrollment)
}

func (ctl *Controller) Unenroll(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID := c.Locals("courseID").(uint)

	if err := ctl.enrollments.Unenroll(userID, courseID); err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unenrolled successfully!", nil)
}

func (ctl *Controller) MyEnrollments(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	page := c.Locals("page").(int)
	limit := c.Locals("limit").(int)

	enrollments, total, err := ctl.enrollments.ListForStudent(userID, page, limit)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// CompleteLesson marks the lesson done and returns the recomputed
// course completion percentage alongside the progress row
func (ctl *Controller) CompleteLesson(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	lessonID := c.Locals("lessonID").(uint)

	progress, percentage, err := ctl.enrollments.CompleteLesson(userID, lessonID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson completed!", fiber.Map{
		"lesson_progress":       progress,
		"completion_percentage": percentage,
	})
}

func (ctl *Controller) GetProgress(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID := c.Locals("courseID").(uint)

	summary, err := ctl.enrollments.Progress(userID, courseID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", summary)
}

func (ctl *Controller) SubmitAssignment(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	assignmentID := c.Locals("assignmentID").(uint)

	reqData, ok := c.Locals("validatedSubmission").(*courseValidator.SubmitRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	submission, err := ctl.grading.Submit(userID, assignmentID, reqData.Code)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Submission received!", submission)
}

func (ctl *Controller) MySubmissions(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	submissions, err := ctl.grading.ListForStudent(userID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submissions fetched successfully!", submissions)
}
