package authValidators

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"learnhub/middleware"
)

var validate = validator.New()

// SignupRequest is the validated signup body
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
}

// LoginRequest accepts an email or username plus the password
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// ChangePasswordRequest carries the old and new passwords
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ForgotPasswordRequest starts the reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest finishes the reset flow
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// UpdateProfileRequest carries the optional profile fields
type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Bio      string `json:"bio" validate:"omitempty,max=1000"`
}

func Signup() fiber.Handler {
	return bodyValidator("validatedSignup", func() interface{} { return new(SignupRequest) })
}

func Login() fiber.Handler {
	return bodyValidator("validatedLogin", func() interface{} { return new(LoginRequest) })
}

func ChangePassword() fiber.Handler {
	return bodyValidator("validatedChangePassword", func() interface{} { return new(ChangePasswordRequest) })
}

func ForgotPassword() fiber.Handler {
	return bodyValidator("validatedForgotPassword", func() interface{} { return new(ForgotPasswordRequest) })
}

func ResetPassword() fiber.Handler {
	return bodyValidator("validatedResetPassword", func() interface{} { return new(ResetPasswordRequest) })
}

func UpdateProfile() fiber.Handler {
	return bodyValidator("validatedUpdateProfile", func() interface{} { return new(UpdateProfileRequest) })
}

// bodyValidator parses the request body into a fresh struct, runs the
// validate tags and stashes the result in the request locals
func bodyValidator(localKey string, newReq func() interface{}) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := newReq()
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals(localKey, reqData)
		return c.Next()
	}
}

// fieldErrors converts validator errors into the field->message response map
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
		case "email":
			out[field] = "Invalid email address!"
		case "min":
			out[field] = field + " must be at least " + fe.Param() + " characters long!"
		case "max":
			out[field] = field + " must be at most " + fe.Param() + " characters long!"
		case "len":
			out[field] = field + " must be exactly " + fe.Param() + " characters!"
		default:
			out[field] = field + " is invalid!"
		}
	}
	return out
}
