package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kikgames18/service-kpi-dashboard/models"
)

// BackupRepository exports and restores the whole database. Restore is the
// one operation in the system that must be atomic: it runs inside a single
// transaction and rolls back completely on any failure.
type BackupRepository interface {
	Export(ctx context.Context) (*models.Backup, error)
	Restore(ctx context.Context, backup *models.Backup) error
}

type backupRepository struct {
	db *sql.DB
}

// NewBackupRepository creates a new backup repository
func NewBackupRepository(db *sql.DB) BackupRepository {
	return &backupRepository{db: db}
}

// Export reads every row of every domain table into one backup document
func (r *backupRepository) Export(ctx context.Context) (*models.Backup, error) {
	backup := &models.Backup{CreatedAt: time.Now()}

	profiles, err := r.exportProfiles(ctx)
	if err != nil {
		return nil, err
	}
	backup.Profiles = profiles

	technicians, err := NewTechnicianRepository(r.db).GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export technicians: %w", err)
	}
	backup.Technicians = technicians

	orders, err := NewOrderRepository(r.db).GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export orders: %w", err)
	}
	backup.Orders = orders

	// Export all metric history, not just the dashboard window
	metrics, err := NewKPIRepository(r.db).GetRecent(ctx, 100000)
	if err != nil {
		return nil, fmt.Errorf("failed to export KPI metrics: %w", err)
	}
	backup.KPIMetrics = metrics

	return backup, nil
}

// Restore replaces all domain data with the backup's contents in one
// transaction: delete in reverse dependency order, insert in forward order.
// Any failure leaves the database untouched.
func (r *backupRepository) Restore(ctx context.Context, backup *models.Backup) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin restore transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"service_orders", "kpi_metrics", "technicians", "profiles"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, p := range backup.Profiles {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO profiles (id, email, full_name, role, password_hash, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Email, p.FullName, p.Role, p.PasswordHash, p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to restore profile %s: %w", p.ID, err)
		}
	}

	for _, t := range backup.Technicians {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO technicians (id, full_name, specialization, hire_date, is_active, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, t.FullName, t.Specialization, t.HireDate, t.IsActive, t.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to restore technician %s: %w", t.ID, err)
		}
	}

	for _, o := range backup.Orders {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO service_orders (
				id, order_number, customer_name, customer_phone, device_type,
				device_brand, device_model, issue_description, status, priority,
				estimated_cost, final_cost, assigned_to, received_date,
				completed_date, updated_at
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			o.ID, o.OrderNumber, o.CustomerName, o.CustomerPhone, o.DeviceType,
			o.DeviceBrand, o.DeviceModel, o.IssueDescription, o.Status, o.Priority,
			o.EstimatedCost, o.FinalCost, o.AssignedTo, o.ReceivedDate,
			o.CompletedDate, o.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to restore order %s: %w", o.ID, err)
		}
	}

	for _, m := range backup.KPIMetrics {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO kpi_metrics (
				metric_date, total_orders, completed_orders, cancelled_orders,
				revenue, avg_completion_time_hours, customer_satisfaction
			)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			models.FormatDate(m.MetricDate), m.TotalOrders, m.CompletedOrders,
			m.CancelledOrders, m.Revenue, m.AvgCompletionTimeHours, m.CustomerSatisfaction,
		)
		if err != nil {
			return fmt.Errorf("failed to restore KPI metric for %s: %w",
				models.FormatDate(m.MetricDate), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit restore: %w", err)
	}

	return nil
}

func (r *backupRepository) exportProfiles(ctx context.Context) ([]models.BackupProfile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, full_name, role, password_hash, created_at, updated_at
		FROM profiles ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to export profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.BackupProfile
	for rows.Next() {
		var p models.BackupProfile
		var fullName, passwordHash sql.NullString

		err := rows.Scan(&p.ID, &p.Email, &fullName, &p.Role, &passwordHash, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}

		if fullName.Valid {
			p.FullName = &fullName.String
		}
		if passwordHash.Valid {
			p.PasswordHash = &passwordHash.String
		}

		profiles = append(profiles, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}

	return profiles, nil
}
