package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"learnhub/services"
)

// JsonResponse writes the uniform response envelope
func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// ValidationErrorResponse writes field-level validation errors
func ValidationErrorResponse(c *fiber.Ctx, errs map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errs)
}

// ServiceErrorResponse maps domain failures to transport status codes.
// This is the only place the error taxonomy meets HTTP; anything unknown
// is logged and surfaced as a generic 500.
func ServiceErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return JsonResponse(c, fiber.StatusUnauthorized, false, err.Error(), nil)

	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrForbidden):
		return JsonResponse(c, fiber.StatusForbidden, false, err.Error(), nil)

	case errors.Is(err, services.ErrCourseNotFound),
		errors.Is(err, services.ErrLessonNotFound),
		errors.Is(err, services.ErrTagNotFound),
		errors.Is(err, services.ErrNotEnrolled),
		errors.Is(err, services.ErrAssignmentNotFound),
		errors.Is(err, services.ErrSubmissionNotFound),
		errors.Is(err, services.ErrReviewNotFound):
		return JsonResponse(c, fiber.StatusNotFound, false, err.Error(), nil)

	case errors.Is(err, services.ErrAlreadyEnrolled),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrAlreadyReviewed),
		errors.Is(err, services.ErrAlreadyGraded):
		return JsonResponse(c, fiber.StatusConflict, false, err.Error(), nil)

	case errors.Is(err, services.ErrInvalidGrade),
		errors.Is(err, services.ErrInvalidResetCode):
		return JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	log.Printf("Unexpected service error on %s %s: %v", c.Method(), c.Path(), err)
	return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
}
