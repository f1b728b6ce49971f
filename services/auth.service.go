package services

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"learnhub/models"
)

// AuthService handles registration, login and account recovery.
// The store handle is injected so the service can be tested against a fake.
type AuthService struct {
	db        *gorm.DB
	saltRound int
}

func NewAuthService(db *gorm.DB, saltRound int) *AuthService {
	return &AuthService{db: db, saltRound: saltRound}
}

// Register creates a new account with the default student role.
// Email uniqueness is case-insensitive; usernames match exactly.
func (s *AuthService) Register(email, username, password, fullName string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	if err := s.db.Where("LOWER(email) = ?", email).First(&models.User{}).Error; err == nil {
		return nil, ErrEmailTaken
	}
	if err := s.db.Where("username = ?", username).First(&models.User{}).Error; err == nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.saltRound)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var studentRole models.Role
	if err := s.db.Where("name = ?", models.RoleStudent).First(&studentRole).Error; err != nil {
		return nil, fmt.Errorf("student role missing: %w", err)
	}

	user := models.User{
		Email:    email,
		Username: username,
		Password: string(hashed),
		FullName: fullName,
		RoleID:   &studentRole.ID,
		IsActive: true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.Role = &studentRole
	return &user, nil
}

// Login resolves an account by email or username and checks the password.
// Deactivated accounts cannot log in.
func (s *AuthService) Login(identifier, password string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)

	var user models.User
	err := s.db.Preload("Role").
		Where("LOWER(email) = ? OR username = ?", strings.ToLower(identifier), identifier).
		First(&user).Error
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserNotFound
	}

	return &user, nil
}

// Authenticate resolves a verified token's user id to a live identity.
// A missing or deactivated account fails the same way so callers cannot
// distinguish the two.
func (s *AuthService) Authenticate(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Role").First(&user, userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// ChangePassword verifies the current password before setting a new one
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.saltRound)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Model(&user).Update("password", string(hashed)).Error
}

// InitiatePasswordReset creates a short-lived 6-digit reset code for the
// account behind email. The caller is responsible for delivering the code.
func (s *AuthService) InitiatePasswordReset(email string) (*models.User, string, error) {
	var user models.User
	err := s.db.Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil || !user.IsActive {
		return nil, "", ErrUserNotFound
	}

	code := generateResetCode()
	reset := models.PasswordReset{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}
	if err := s.db.Create(&reset).Error; err != nil {
		return nil, "", fmt.Errorf("failed to store reset code: %w", err)
	}

	return &user, code, nil
}

// ResetPassword consumes a valid reset code and sets the new password
func (s *AuthService) ResetPassword(email, code, newPassword string) error {
	var user models.User
	err := s.db.Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		return ErrUserNotFound
	}

	var reset models.PasswordReset
	err = s.db.Where("user_id = ? AND code = ? AND is_used = ? AND expires_at > ?",
		user.ID, code, false, time.Now()).First(&reset).Error
	if err != nil {
		return ErrInvalidResetCode
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.saltRound)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("password", string(hashed)).Error; err != nil {
			return err
		}
		return tx.Model(&reset).Update("is_used", true).Error
	})
}

// UpdateProfile updates the mutable profile fields, skipping empty inputs
func (s *AuthService) UpdateProfile(userID uint, fullName, bio, profilePicture string) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Role").First(&user, userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if fullName != "" {
		user.FullName = fullName
	}
	if bio != "" {
		user.Bio = bio
	}
	if profilePicture != "" {
		user.ProfilePicture = profilePicture
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &user, nil
}

// RecordLogin stores a login audit row; failures are logged, never surfaced
func (s *AuthService) RecordLogin(userID uint, ip, userAgent string) {
	device, err := json.Marshal(map[string]string{"user_agent": userAgent})
	if err != nil {
		device = []byte(`{}`)
	}

	tracking := models.LoginTracking{
		UserID:    userID,
		IPAddress: ip,
		Device:    datatypes.JSON(device),
		Timestamp: time.Now(),
	}
	if err := s.db.Create(&tracking).Error; err != nil {
		log.Printf("Error recording login for user %d: %v", userID, err)
	}
}

// LoginHistory returns the most recent login audit rows for a user
func (s *AuthService) LoginHistory(userID uint, limit int) ([]models.LoginTracking, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []models.LoginTracking
	err := s.db.Where("user_id = ?", userID).Order("timestamp desc").Limit(limit).Find(&rows).Error
	return rows, err
}

// generateResetCode returns 6 random digits from the CSPRNG
func generateResetCode() string {
	code := ""
	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			log.Printf("Error generating reset code digit: %v", err)
			n = big.NewInt(0)
		}
		code += n.String()
	}
	return code
}
