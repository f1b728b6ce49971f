package controllers

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/middleware"
	"learnhub/services"
	"learnhub/utils"
	courseValidator "learnhub/validators/course"
)

// Handlers for tutors managing their own courses. Admins pass the same
// ownership checks through the service layer.

func (ctl *Controller) CreateCourse(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := ctl.courses.Create(userID, services.CourseInput{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Category:     reqData.Category,
		Level:        reqData.Level,
		ThumbnailURL: reqData.ThumbnailURL,
	})
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

func (ctl *Controller) UpdateCourse(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	role := c.Locals("role").(string)
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := ctl.courses.Update(userID, role, courseID, services.CourseInput{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Category:     reqData.Category,
		Level:        reqData.Level,
		ThumbnailURL: reqData.ThumbnailURL,
	})
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

func (ctl *Controller) DeleteCourse(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	role := c.Locals("role").(string)
	courseID := c.Locals("courseID").(uint)

	if err := ctl.courses.Delete(userID, role, courseID); err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

func (ctl *Controller) PublishCourse(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	role := c.Locals("role").(string)
	courseID := c.Locals("courseID").(uint)

	course, err := ctl.courses.Publish(userID, role, courseID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	utils.NotifyEvent("course.published", map[string]interface{}{
		"course_id": course.ID,
		"title":     course.Title,
		"tutor_id":  course.TutorID,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// MyCourses lists the tutor's own courses, drafts included
func (ctl *Controller) MyCourses(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	page := c.Locals("page").(int)
	limit := c.Locals("limit").(int)

	courses, total, err := ctl.courses.ListByTutor(userID, page, limit)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

func (ctl *Controller) AddLesson(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	role := c.Locals("role").(string)
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedLesson").(*courseValidator.CreateLessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson, err := ctl.courses.AddLesson(userID, role, courseID, services.LessonInput{
		Title:      reqData.Title,
		Content:    reqData.Content,
		VideoURL:   reqData.VideoURL,
		OrderIndex: reqData.OrderIndex,
	})
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

func (ctl *Controller) UpdateLesson(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	role := c.Locals("role").(string)
	lessonID := c.Locals("lessonID").(uint)

	reqData, ok := c.Locals("validatedLessonUpdate").(*courseValidator.UpdateLessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson, err := ctl.courses.UpdateLesson(userID, role, lessonID, services.LessonInput{
		Title:      reqData.Title,
		Content:    reqData.Content,
		VideoURL:   reqData.VideoURL,
		OrderIndex: reqData.OrderIndex,
	})
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

func (ctl *Controller) DeleteLesson(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	role := c.Locals("role").(string)
	lessonID := c.Locals("lessonID").(uint)

	if err := ctl.courses.DeleteLesson(userID, role, lessonID); err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

func (ctl *Controller) ListLessons(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	lessons, err := ctl.courses.ListLessons(courseID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", lessons)
}

func (ctl *Controller) AddAssignment(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	role := c.Locals("role").(string)
	lessonID := c.Locals("lessonID").(uint)

	reqData, ok := c.Locals("validatedAssignment").(*courseValidator.CreateAssignmentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	assignment, err := ctl.courses.AddAssignment(userID, role, lessonID, services.AssignmentInput{
		Title:       reqData.Title,
		Description: reqData.Description,
		MaxScore:    reqData.MaxScore,
	})
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment created successfully!", assignment)
}

func (ctl *Controller) DeleteAssignment(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	role := c.Locals("role").(string)
	assignmentID := c.Locals("assignmentID").(uint)

	if err := ctl.courses.DeleteAssignment(userID, role, assignmentID); err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment deleted successfully!", nil)
}

func (ctl *Controller) AttachTag(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	role := c.Locals("role").(string)
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedTag").(*courseValidator.TagRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	tag, err := ctl.courses.AttachTag(userID, role, courseID, reqData.Name)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tag attached successfully!", tag)
}

func (ctl *Controller) DetachTag(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	role := c.Locals("role").(string)
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedTag").(*courseValidator.TagRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := ctl.courses.DetachTag(userID, role, courseID, reqData.Name); err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tag detached successfully!", nil)
}

// ListSubmissions returns the submissions for an assignment the tutor owns
func (ctl *Controller) ListSubmissions(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	assignmentID := c.Locals("assignmentID").(uint)

	submissions, err := ctl.grading.ListForAssignment(userID, assignmentID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submissions fetched successfully!", submissions)
}

// GradeSubmission records a grade; only the owning tutor passes the service check
func (ctl *Controller) GradeSubmission(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	submissionID := c.Locals("submissionID").(uint)

	reqData, ok := c.Locals("validatedGrade").(*courseValidator.GradeRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	submission, err := ctl.grading.Grade(userID, submissionID, *reqData.Grade, reqData.Feedback)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	if student, err := ctl.auth.Authenticate(submission.StudentID); err == nil {
		go utils.SendGradeEmail(student.Email, student.FullName,
			submission.Assignment.Title, *submission.Grade, submission.Assignment.MaxScore)
	}
	utils.NotifyEvent("submission.graded", map[string]interface{}{
		"submission_id": submission.ID,
		"grade":         *submission.Grade,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission graded successfully!", submission)
}
