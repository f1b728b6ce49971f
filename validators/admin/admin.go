package adminValidators

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"learnhub/middleware"
)

var validate = validator.New()

// SetRoleRequest assigns a predefined role to a user
type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=student tutor admin moderator"`
}

// SetActiveRequest toggles an account's active flag
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func SetRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SetRoleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedRole", reqData)
		return c.Next()
	}
}

func SetActive() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SetActiveRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedActive", reqData)
		return c.Next()
	}
}

func fieldErrors(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["body"] = "Validation failed!"
		return out
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = field + " is required!"
		case "oneof":
			out[field] = field + " must be one of: " + fe.Param() + "!"
		default:
			out[field] = field + " is invalid!"
		}
	}
	return out
}
