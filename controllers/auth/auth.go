package authController

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"learnhub/config"
	"learnhub/middleware"
	"learnhub/services"
	"learnhub/token"
	"learnhub/utils"
	authValidators "learnhub/validators/auth"
)

// Controller bundles the auth handlers with their injected dependencies
type Controller struct {
	auth  *services.AuthService
	codec *token.Codec
}

func NewController(auth *services.AuthService, codec *token.Codec) *Controller {
	return &Controller{auth: auth, codec: codec}
}

func (ctl *Controller) Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*authValidators.SignupRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, err := ctl.auth.Register(reqData.Email, reqData.Username, reqData.Password, reqData.FullName)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	go utils.SendWelcomeEmail(user.Email, user.FullName)
	utils.NotifyEvent("user.registered", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", user)
}

func (ctl *Controller) Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidators.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, err := ctl.auth.Login(reqData.Identifier, reqData.Password)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	tokenString, err := ctl.codec.Issue(user.ID)
	if err != nil {
		log.Printf("Error issuing token for user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue token!", nil)
	}

	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = forwarded
	}
	ctl.auth.RecordLogin(user.ID, ip, c.Get("User-Agent"))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"token": tokenString,
		"user":  user,
	})
}

func (ctl *Controller) Me(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	user, err := ctl.auth.Authenticate(userID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}

func (ctl *Controller) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedUpdateProfile").(*authValidators.UpdateProfileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, err := ctl.auth.UpdateProfile(userID, reqData.FullName, reqData.Bio, "")
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", user)
}

// UploadProfilePicture stores the uploaded image and records its URL
func (ctl *Controller) UploadProfilePicture(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing file upload!", nil)
	}

	path, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Error saving profile picture: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save file!", nil)
	}

	user, err := ctl.auth.UpdateProfile(userID, "", "", utils.GetFileURL(path))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile picture updated!", user)
}

func (ctl *Controller) ChangePassword(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedChangePassword").(*authValidators.ChangePasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := ctl.auth.ChangePassword(userID, reqData.OldPassword, reqData.NewPassword); err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password changed successfully!", nil)
}

func (ctl *Controller) ForgotPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedForgotPassword").(*authValidators.ForgotPasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, code, err := ctl.auth.InitiatePasswordReset(reqData.Email)
	if err != nil {
		// Do not reveal whether the address exists
		return middleware.JsonResponse(c, fiber.StatusOK, true, "If the address exists, a reset code was sent.", nil)
	}

	go utils.SendPasswordResetEmail(user.Email, user.FullName, code)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "If the address exists, a reset code was sent.", nil)
}

func (ctl *Controller) ResetPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResetPassword").(*authValidators.ResetPasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := ctl.auth.ResetPassword(reqData.Email, reqData.Code, reqData.NewPassword); err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully!", nil)
}

func (ctl *Controller) LoginHistory(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	rows, err := ctl.auth.LoginHistory(userID, c.QueryInt("limit", 20))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login history fetched successfully!", rows)
}
