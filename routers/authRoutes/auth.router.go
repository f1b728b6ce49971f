package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	authController "learnhub/controllers/auth"
	authValidators "learnhub/validators/auth"
)

// SetupAuthRoutes registers signup, login and account self-service routes.
// protected is the bearer-token middleware chain.
func SetupAuthRoutes(app *fiber.App, ctl *authController.Controller, protected fiber.Handler) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), ctl.Signup)
	authGroup.Post("/login", authValidators.Login(), ctl.Login)
	authGroup.Post("/forgot/password", authValidators.ForgotPassword(), ctl.ForgotPassword)
	authGroup.Patch("/reset/password", authValidators.ResetPassword(), ctl.ResetPassword)

	authGroup.Get("/me", protected, ctl.Me)
	authGroup.Patch("/me", protected, authValidators.UpdateProfile(), ctl.UpdateProfile)
	authGroup.Post("/me/picture", protected, ctl.UploadProfilePicture)
	authGroup.Put("/change/password", protected, authValidators.ChangePassword(), ctl.ChangePassword)
	authGroup.Get("/login/history", protected, ctl.LoginHistory)
}
