package controllers

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/middleware"
	courseValidator "learnhub/validators/course"
)

// Review handlers. Students write reviews for courses they are enrolled
// in; moderators work the approval queue.

func (ctl *Controller) CreateReview(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedReview").(*courseValidator.ReviewRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	review, err := ctl.reviews.Create(userID, courseID, reqData.Rating, reqData.Comment)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review submitted for moderation!", review)
}

func (ctl *Controller) ListPendingReviews(c *fiber.Ctx) error {
	page := c.Locals("page").(int)
	limit := c.Locals("limit").(int)

	reviews, total, err := ctl.reviews.ListPending(page, limit)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending reviews fetched successfully!", fiber.Map{
		"reviews": reviews,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

func (ctl *Controller) ApproveReview(c *fiber.Ctx) error {
	reviewID := c.Locals("reviewID").(uint)

	review, err := ctl.reviews.Approve(reviewID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review approved!", review)
}

func (ctl *Controller) RemoveReview(c *fiber.Ctx) error {
	reviewID := c.Locals("reviewID").(uint)

	if err := ctl.reviews.Remove(reviewID); err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review removed!", nil)
}
