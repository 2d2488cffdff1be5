package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gyanghar/internal/models"
	"gyanghar/internal/repository"
	"gyanghar/internal/security"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotApproved        = errors.New("account pending approval")
	ErrAccountInactive    = errors.New("account deactivated")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

const resetTokenLifetime = 30 * time.Minute

// AuthService handles authentication business logic
type AuthService struct {
	userRepo     *repository.UserRepository
	emailService *EmailService
	jwtSecret    string
	jwtExpiry    time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, emailService *EmailService, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		emailService: emailService,
		jwtSecret:    jwtSecret,
		jwtExpiry:    jwtExpiry,
	}
}

// Register creates a new student account pending admin approval.
// The very first account becomes an approved admin instead.
func (s *AuthService) Register(email, password, firstName, lastName string, roomNumber *string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Role:         models.RoleStudent,
		RoomNumber:   roomNumber,
		IsApproved:   false,
		IsActive:     true,
	}
	return s.userRepo.CreateUser(user)
}

// Login authenticates a user and issues a JWT.
// Unapproved and deactivated accounts cannot log in.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}
	if !security.VerifyPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsApproved {
		return "", nil, ErrNotApproved
	}
	if !user.IsActive {
		return "", nil, ErrAccountInactive
	}

	token, err := security.GenerateToken(user.ID, user.Email, user.Role, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, user, nil
}

// RequestPasswordReset creates a reset token and emails it to the user.
// Unknown emails are ignored so the endpoint does not leak account existence.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		log.Printf("Password reset requested for unknown email: %s", email)
		return nil
	}

	token := &models.PasswordResetToken{
		Token:     security.GenerateResetToken(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(resetTokenLifetime),
	}
	if err := s.userRepo.CreateResetToken(token); err != nil {
		return err
	}

	return s.emailService.SendPasswordResetEmail(ctx, user.Email, user.FullName(), token.Token)
}

// ResetPassword sets a new password using a valid reset token
func (s *AuthService) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	token, err := s.userRepo.GetResetToken(tokenString)
	if err != nil {
		return err
	}
	if token == nil || token.IsExpired() {
		return ErrInvalidResetToken
	}

	user, err := s.userRepo.GetUserByID(token.UserID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrInvalidResetToken
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(user.ID, passwordHash); err != nil {
		return err
	}
	if err := s.userRepo.MarkResetTokenUsed(tokenString); err != nil {
		return err
	}

	// Confirmation is best effort
	s.emailService.SendPasswordChangeConfirmation(ctx, user.Email, user.FullName())
	return nil
}

// ChangePassword updates the password of a logged-in user after
// verifying the current one
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrInvalidCredentials
	}
	if !security.VerifyPassword(user.PasswordHash, currentPassword) {
		return ErrInvalidCredentials
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(user.ID, passwordHash); err != nil {
		return err
	}

	// Confirmation is best effort
	s.emailService.SendPasswordChangeConfirmation(ctx, user.Email, user.FullName())
	return nil
}
