package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kikgames18/service-kpi-dashboard/authenticator"
	"github.com/kikgames18/service-kpi-dashboard/models"
	"github.com/kikgames18/service-kpi-dashboard/repositories"
)

// ErrInvalidCredentials is returned for any bad email/password combination.
// The message never says which half was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthResult carries the issued token and the authenticated profile
type AuthResult struct {
	Token   string          `json:"token"`
	Profile *models.Profile `json:"user"`
}

// AuthService interface defines account authentication business logic
type AuthService interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, form *models.RegisterForm) (*AuthResult, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

// authService implements AuthService interface
type authService struct {
	profileRepo repositories.ProfileRepository
	tokens      authenticator.TokenProvider
	audit       AuditService
}

// NewAuthService creates a new auth service
func NewAuthService(profileRepo repositories.ProfileRepository, tokens authenticator.TokenProvider, audit AuditService) AuthService {
	return &authService{
		profileRepo: profileRepo,
		tokens:      tokens,
		audit:       audit,
	}
}

// Login verifies credentials and issues a token
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// Accounts without a hash cannot log in until a password is set
	if profile.PasswordHash == nil || !authenticator.ComparePassword(password, *profile.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(profile.ID, profile.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResult{Token: token, Profile: profile}, nil
}

// Register creates a new account with the user role and issues a token
func (s *authService) Register(ctx context.Context, form *models.RegisterForm) (*AuthResult, error) {
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}

	email := strings.TrimSpace(form.Email)
	if _, err := s.profileRepo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("user already exists")
	}

	hash, err := authenticator.HashPassword(form.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	fullName := strings.TrimSpace(form.FullName)
	profile := &models.Profile{
		Email:        email,
		FullName:     &fullName,
		Role:         models.RoleUser,
		PasswordHash: &hash,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	token, err := s.tokens.IssueToken(profile.ID, profile.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResult{Token: token, Profile: profile}, nil
}

// ChangePassword verifies the current password, stores the new hash, and
// records the change. Both snapshots carry only the password_changed
// marker next to the regular profile fields, never a password or hash.
func (s *authService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return fmt.Errorf("current password and new password are required")
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("new password must be at least 6 characters")
	}

	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("profile not found: %w", err)
	}

	if profile.PasswordHash == nil || !authenticator.ComparePassword(currentPassword, *profile.PasswordHash) {
		return fmt.Errorf("current password is incorrect")
	}

	before := profile.PasswordChangeSnapshot()

	hash, err := authenticator.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.profileRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.audit.Record(ctx, models.EntityProfile, userID, models.ActionUpdate,
		&userID, before, profile.PasswordChangeSnapshot())

	return nil
}
