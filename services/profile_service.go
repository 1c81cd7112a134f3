package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kikgames18/service-kpi-dashboard/models"
	"github.com/kikgames18/service-kpi-dashboard/repositories"
)

// ProfileService interface defines profile business logic
type ProfileService interface {
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id string, form *models.ProfileForm) (*models.Profile, error)
}

// profileService implements ProfileService interface
type profileService struct {
	profileRepo repositories.ProfileRepository
	audit       AuditService
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo repositories.ProfileRepository, audit AuditService) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		audit:       audit,
	}
}

// GetProfile retrieves a profile by ID
func (s *profileService) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	if id == "" {
		return nil, fmt.Errorf("profile ID is required")
	}
	return s.profileRepo.GetByID(ctx, id)
}

// UpdateProfile updates a profile's name/email and records the change.
// Snapshots are built by Profile.Snapshot, which never carries credentials.
func (s *profileService) UpdateProfile(ctx context.Context, id string, form *models.ProfileForm) (*models.Profile, error) {
	if id == "" {
		return nil, fmt.Errorf("profile ID is required")
	}
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}

	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("profile not found: %w", err)
	}
	before := profile.Snapshot()

	if form.Email != nil {
		email := strings.TrimSpace(*form.Email)
		if email != profile.Email {
			if existing, err := s.profileRepo.GetByEmail(ctx, email); err == nil && existing.ID != id {
				return nil, fmt.Errorf("profile with email %s already exists", email)
			}
		}
		profile.Email = email
	}
	if form.FullName != nil {
		name := strings.TrimSpace(*form.FullName)
		profile.FullName = &name
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.audit.Record(ctx, models.EntityProfile, profile.ID, models.ActionUpdate,
		actorID(ctx), before, profile.Snapshot())

	return profile, nil
}
