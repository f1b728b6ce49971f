package adminController

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/middleware"
	"learnhub/services"
	"learnhub/utils"
	adminValidators "learnhub/validators/admin"
)

// Controller bundles the admin handlers with the admin service
type Controller struct {
	admin *services.AdminService
}

func NewController(admin *services.AdminService) *Controller {
	return &Controller{admin: admin}
}

func (ctl *Controller) ListUsers(c *fiber.Ctx) error {
	page := c.Locals("page").(int)
	limit := c.Locals("limit").(int)

	users, total, err := ctl.admin.ListUsers(page, limit)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

func (ctl *Controller) SetUserActive(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(uint)

	reqData, ok := c.Locals("validatedActive").(*adminValidators.SetActiveRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, err := ctl.admin.SetUserActive(userID, *reqData.IsActive)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	utils.NotifyEvent("user.active_changed", map[string]interface{}{
		"user_id":   user.ID,
		"is_active": user.IsActive,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User status updated successfully!", user)
}

func (ctl *Controller) SetUserRole(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(uint)

	reqData, ok := c.Locals("validatedRole").(*adminValidators.SetRoleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, err := ctl.admin.SetUserRole(userID, reqData.Role)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User role updated successfully!", user)
}

func (ctl *Controller) Stats(c *fiber.Ctx) error {
	stats, err := ctl.admin.Stats()
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", stats)
}
