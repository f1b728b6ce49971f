package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"learnhub/services"
	"learnhub/token"
)

// Protected returns the authentication middleware. A missing or unverifiable
// token yields 401; a token that decodes to a missing or deactivated account
// yields 403. On success the identity is stored in the request locals.
func Protected(codec *token.Codec, authSvc *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing Authorization header", nil)
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid Authorization header format", nil)
		}
		tokenString := authHeader[len("Bearer "):]

		userID, err := codec.Verify(tokenString)
		if err != nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
		}

		user, err := authSvc.Authenticate(userID)
		if err != nil {
			// Token checked out but the account is gone or deactivated
			return JsonResponse(c, fiber.StatusForbidden, false, "Account not found or deactivated", nil)
		}

		c.Locals("userId", user.ID)
		c.Locals("role", user.RoleName())
		c.Locals("username", user.Username)
		return c.Next()
	}
}

// OptionalAuth resolves an identity when a valid bearer token is present but
// lets anonymous requests through untouched. Bad tokens are treated as
// anonymous here, never rejected.
func OptionalAuth(codec *token.Codec, authSvc *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Next()
		}

		userID, err := codec.Verify(authHeader[len("Bearer "):])
		if err != nil {
			return c.Next()
		}

		user, err := authSvc.Authenticate(userID)
		if err != nil {
			return c.Next()
		}

		c.Locals("userId", user.ID)
		c.Locals("role", user.RoleName())
		c.Locals("username", user.Username)
		return c.Next()
	}
}
