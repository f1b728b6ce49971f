package middleware

import "github.com/gofiber/fiber/v2"

// RequireRoles allows the request through only when the authenticated role
// exactly matches one of allowedRoles. Matching is case-sensitive and there
// is no hierarchy; an admin is not implicitly granted tutor-only routes.
func RequireRoles(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}
