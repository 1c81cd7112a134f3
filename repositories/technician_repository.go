package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kikgames18/service-kpi-dashboard/models"
)

// TechnicianRepository interface defines technician database operations
type TechnicianRepository interface {
	GetAll(ctx context.Context) ([]models.Technician, error)
	GetByID(ctx context.Context, id string) (*models.Technician, error)
	Create(ctx context.Context, technician *models.Technician) error
	Update(ctx context.Context, technician *models.Technician) error
	Delete(ctx context.Context, id string) error
}

// technicianRepository implements TechnicianRepository interface
type technicianRepository struct {
	db *sql.DB
}

// NewTechnicianRepository creates a new technician repository
func NewTechnicianRepository(db *sql.DB) TechnicianRepository {
	return &technicianRepository{db: db}
}

// GetAll retrieves all technicians ordered by name
func (r *technicianRepository) GetAll(ctx context.Context) ([]models.Technician, error) {
	query := `
		SELECT id, full_name, specialization, hire_date, is_active, created_at
		FROM technicians
		ORDER BY full_name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query technicians: %w", err)
	}
	defer rows.Close()

	var technicians []models.Technician
	for rows.Next() {
		var technician models.Technician
		var specialization sql.NullString

		err := rows.Scan(
			&technician.ID,
			&technician.FullName,
			&specialization,
			&technician.HireDate,
			&technician.IsActive,
			&technician.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan technician: %w", err)
		}

		if specialization.Valid {
			technician.Specialization = &specialization.String
		}

		technicians = append(technicians, technician)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating technicians: %w", err)
	}

	return technicians, nil
}

// GetByID retrieves a technician by ID
func (r *technicianRepository) GetByID(ctx context.Context, id string) (*models.Technician, error) {
	query := `
		SELECT id, full_name, specialization, hire_date, is_active, created_at
		FROM technicians
		WHERE id = ?
	`

	var technician models.Technician
	var specialization sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&technician.ID,
		&technician.FullName,
		&specialization,
		&technician.HireDate,
		&technician.IsActive,
		&technician.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("technician with ID %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get technician: %w", err)
	}

	if specialization.Valid {
		technician.Specialization = &specialization.String
	}

	return &technician, nil
}

// Create creates a new technician
func (r *technicianRepository) Create(ctx context.Context, technician *models.Technician) error {
	if technician.ID == "" {
		technician.ID = uuid.NewString()
	}
	if technician.HireDate.IsZero() {
		technician.HireDate = models.Today()
	}
	if technician.CreatedAt.IsZero() {
		technician.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO technicians (id, full_name, specialization, hire_date, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		technician.ID,
		technician.FullName,
		technician.Specialization,
		technician.HireDate,
		technician.IsActive,
		technician.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create technician: %w", err)
	}

	return nil
}

// Update updates an existing technician
func (r *technicianRepository) Update(ctx context.Context, technician *models.Technician) error {
	query := `
		UPDATE technicians
		SET full_name = ?, specialization = ?, hire_date = ?, is_active = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		technician.FullName,
		technician.Specialization,
		technician.HireDate,
		technician.IsActive,
		technician.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update technician: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("technician with ID %s not found", technician.ID)
	}

	return nil
}

// Delete deletes a technician by ID
func (r *technicianRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM technicians WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete technician: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("technician with ID %s not found", id)
	}

	return nil
}
