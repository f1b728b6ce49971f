package controllers

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/middleware"
	"learnhub/services"
)

// Controller bundles the course-facing handlers with their injected services
type Controller struct {
	courses     *services.CourseService
	enrollments *services.EnrollmentService
	grading     *services.GradingService
	reviews     *services.ReviewService
	auth        *services.AuthService
}

func NewController(
	courses *services.CourseService,
	enrollments *services.EnrollmentService,
	grading *services.GradingService,
	reviews *services.ReviewService,
	auth *services.AuthService,
) *Controller {
	return &Controller{
		courses:     courses,
		enrollments: enrollments,
		grading:     grading,
		reviews:     reviews,
		auth:        auth,
	}
}

// ListCourses returns published courses with pagination and optional
// category/level/tag filters
func (ctl *Controller) ListCourses(c *fiber.Ctx) error {
	page := c.Locals("page").(int)
	limit := c.Locals("limit").(int)

	courses, total, err := ctl.courses.List(page, limit,
		c.Query("category"), c.Query("level"), c.Query("tag"))
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

// GetCourse returns a published course's detail. Works anonymously; an
// authenticated viewer additionally sees their enrollment state.
func (ctl *Controller) GetCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var viewerID uint
	if id, ok := c.Locals("userId").(uint); ok {
		viewerID = id
	}

	detail, err := ctl.courses.Get(courseID, viewerID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", detail)
}
