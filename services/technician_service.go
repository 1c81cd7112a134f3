package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kikgames18/service-kpi-dashboard/models"
	"github.com/kikgames18/service-kpi-dashboard/repositories"
)

// TechnicianService interface defines technician management business logic
type TechnicianService interface {
	GetAllTechnicians(ctx context.Context) ([]models.Technician, error)
	GetTechnicianByID(ctx context.Context, id string) (*models.Technician, error)
	CreateTechnician(ctx context.Context, form *models.TechnicianForm) (*models.Technician, error)
	UpdateTechnician(ctx context.Context, id string, form *models.TechnicianForm) (*models.Technician, error)
	DeleteTechnician(ctx context.Context, id string) error
}

// technicianService implements TechnicianService interface
type technicianService struct {
	techRepo repositories.TechnicianRepository
	audit    AuditService
}

// NewTechnicianService creates a new technician service
func NewTechnicianService(techRepo repositories.TechnicianRepository, audit AuditService) TechnicianService {
	return &technicianService{
		techRepo: techRepo,
		audit:    audit,
	}
}

// GetAllTechnicians retrieves all technicians
func (s *technicianService) GetAllTechnicians(ctx context.Context) ([]models.Technician, error) {
	return s.techRepo.GetAll(ctx)
}

// GetTechnicianByID retrieves a technician by ID
func (s *technicianService) GetTechnicianByID(ctx context.Context, id string) (*models.Technician, error) {
	if id == "" {
		return nil, fmt.Errorf("technician ID is required")
	}
	return s.techRepo.GetByID(ctx, id)
}

// CreateTechnician creates a new technician with validation and records it
func (s *technicianService) CreateTechnician(ctx context.Context, form *models.TechnicianForm) (*models.Technician, error) {
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}

	technician := &models.Technician{
		FullName:       strings.TrimSpace(form.FullName),
		Specialization: form.Specialization,
		IsActive:       true,
	}
	if form.IsActive != nil {
		technician.IsActive = *form.IsActive
	}
	if form.HireDate != nil {
		hireDate, err := models.ParseDate(*form.HireDate)
		if err != nil {
			return nil, fmt.Errorf("invalid hire date: %w", err)
		}
		technician.HireDate = hireDate
	}

	if err := s.techRepo.Create(ctx, technician); err != nil {
		return nil, fmt.Errorf("failed to create technician: %w", err)
	}

	s.audit.Record(ctx, models.EntityTechnician, technician.ID, models.ActionCreate,
		actorID(ctx), nil, technician.Snapshot())

	return technician, nil
}

// UpdateTechnician updates an existing technician and records the change
func (s *technicianService) UpdateTechnician(ctx context.Context, id string, form *models.TechnicianForm) (*models.Technician, error) {
	if id == "" {
		return nil, fmt.Errorf("technician ID is required")
	}
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errors, ", "))
	}

	technician, err := s.techRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("technician not found: %w", err)
	}
	before := technician.Snapshot()

	technician.FullName = strings.TrimSpace(form.FullName)
	technician.Specialization = form.Specialization
	if form.IsActive != nil {
		technician.IsActive = *form.IsActive
	}
	if form.HireDate != nil {
		hireDate, err := models.ParseDate(*form.HireDate)
		if err != nil {
			return nil, fmt.Errorf("invalid hire date: %w", err)
		}
		technician.HireDate = hireDate
	}

	if err := s.techRepo.Update(ctx, technician); err != nil {
		return nil, fmt.Errorf("failed to update technician: %w", err)
	}

	s.audit.Record(ctx, models.EntityTechnician, technician.ID, models.ActionUpdate,
		actorID(ctx), before, technician.Snapshot())

	return technician, nil
}

// DeleteTechnician deletes a technician and records the deletion
func (s *technicianService) DeleteTechnician(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("technician ID is required")
	}

	technician, err := s.techRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("technician not found: %w", err)
	}
	before := technician.Snapshot()

	if err := s.techRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete technician: %w", err)
	}

	s.audit.Record(ctx, models.EntityTechnician, id, models.ActionDelete,
		actorID(ctx), before, nil)

	return nil
}
