package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kikgames18/service-kpi-dashboard/models"
)

// ProfileRepository interface defines user profile database operations
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// profileRepository implements ProfileRepository interface
type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, email, full_name, role, password_hash, created_at, updated_at`

// GetByID retrieves a profile by ID
func (r *profileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	return scanProfile(row, fmt.Sprintf("profile with ID %s not found", id))
}

// GetByEmail retrieves a profile by email
func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE email = ?`, email)
	return scanProfile(row, fmt.Sprintf("profile with email %s not found", email))
}

// Create creates a new profile
func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	query := `
		INSERT INTO profiles (id, email, full_name, role, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.Email,
		profile.FullName,
		profile.Role,
		profile.PasswordHash,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// Update updates a profile's email and full name
func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	profile.UpdatedAt = time.Now()

	query := `
		UPDATE profiles SET email = ?, full_name = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		profile.Email,
		profile.FullName,
		profile.UpdatedAt,
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("profile with ID %s not found", profile.ID)
	}

	return nil
}

// UpdatePassword replaces a profile's password hash
func (r *profileRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET password_hash = ?, updated_at = ? WHERE id = ?`,
		passwordHash, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("profile with ID %s not found", id)
	}

	return nil
}

func scanProfile(row *sql.Row, notFound string) (*models.Profile, error) {
	var profile models.Profile
	var fullName, passwordHash sql.NullString

	err := row.Scan(
		&profile.ID,
		&profile.Email,
		&fullName,
		&profile.Role,
		&passwordHash,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s", notFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if fullName.Valid {
		profile.FullName = &fullName.String
	}
	if passwordHash.Valid {
		profile.PasswordHash = &passwordHash.String
	}

	return &profile, nil
}
