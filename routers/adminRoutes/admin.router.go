package adminRoutes

import (
	"github.com/gofiber/fiber/v2"

	adminController "learnhub/controllers/admin"
	"learnhub/middleware"
	"learnhub/models"
	adminValidators "learnhub/validators/admin"
	validators "learnhub/validators/course"
)

// SetupAdminRoutes registers the admin-only user management and stats routes
func SetupAdminRoutes(app *fiber.App, ctl *adminController.Controller, protected fiber.Handler) {
	adminGroup := app.Group("/admin", protected, middleware.RequireRoles(models.RoleAdmin))

	adminGroup.Get("/users", validators.Pagination(), ctl.ListUsers)
	adminGroup.Patch("/users/:id/active", validators.IDParam("id", "targetUserID"), adminValidators.SetActive(), ctl.SetUserActive)
	adminGroup.Patch("/users/:id/role", validators.IDParam("id", "targetUserID"), adminValidators.SetRole(), ctl.SetUserRole)
	adminGroup.Get("/stats", ctl.Stats)
}
